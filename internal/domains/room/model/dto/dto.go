package dto

import (
	"net/http"

	"riverside/internal/domains/room/model"
	"riverside/shared"
	"riverside/shared/constant"
)

// RoomQuery holds the listing filters taken from the query string.
type RoomQuery struct {
	Category  string   `json:"category"   validate:"omitempty,oneof=all standard deluxe suite penthouse"`
	MinGuests int      `json:"min_guests" validate:"gte=0"`
	MinPrice  int64    `json:"min_price"  validate:"gte=0"`
	MaxPrice  int64    `json:"max_price"  validate:"gte=0"`
	Amenities []string `json:"amenities"  validate:"dive,oneof=wifi tv minibar ac safe desk coffee bathtub balcony view jacuzzi butler kitchen living"`
	Available *bool    `json:"available"`
	Featured  *bool    `json:"featured"`
	Sort      string   `json:"sort"       validate:"omitempty,oneof=price-low price-high size guests"`
}

func (q *RoomQuery) FromRequest(r *http.Request) {
	query := r.URL.Query()

	q.Category = query.Get(constant.RequestParamCategory)
	q.Amenities = shared.SplitCSV(query.Get(constant.RequestParamAmenities))
	q.Available = shared.ConvertStringToBool(query.Get(constant.RequestParamAvailable))
	q.Featured = shared.ConvertStringToBool(query.Get(constant.RequestParamFeatured))
	q.Sort = query.Get(constant.RequestParamSort)

	if v := shared.ConvertStringToInt64(query.Get(constant.RequestParamMinGuests)); v != nil {
		q.MinGuests = int(*v)
	}

	if v := shared.ConvertStringToInt64(query.Get(constant.RequestParamMinPrice)); v != nil {
		q.MinPrice = *v
	}

	if v := shared.ConvertStringToInt64(query.Get(constant.RequestParamMaxPrice)); v != nil {
		q.MaxPrice = *v
	}
}

func (q *RoomQuery) ToFilter() model.RoomFilter {
	amenities := make([]model.Amenity, len(q.Amenities))
	for i, a := range q.Amenities {
		amenities[i] = model.Amenity(a)
	}

	return model.RoomFilter{
		MinPrice:  q.MinPrice,
		MaxPrice:  q.MaxPrice,
		MinGuests: q.MinGuests,
		Amenities: amenities,
	}
}

type AmenityResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

func AmenitiesFromModel(amenities []model.Amenity) []AmenityResponse {
	res := make([]AmenityResponse, len(amenities))
	for i, a := range amenities {
		res[i] = AmenityResponse{Key: string(a), Label: a.Label()}
	}

	return res
}

type CategoryResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type RoomResponse struct {
	ID               string            `json:"id"`
	Slug             string            `json:"slug"`
	Name             string            `json:"name"`
	Category         string            `json:"category"`
	ShortDescription string            `json:"short_description"`
	Description      string            `json:"description"`
	Price            int64             `json:"price"`
	OriginalPrice    *int64            `json:"original_price,omitempty"`
	DiscountPercent  int               `json:"discount_percent,omitempty"`
	Size             int               `json:"size"`
	MaxGuests        int               `json:"max_guests"`
	Beds             string            `json:"beds"`
	Amenities        []AmenityResponse `json:"amenities"`
	Images           []string          `json:"images"`
	Featured         bool              `json:"featured"`
	Available        bool              `json:"available"`
}

func (r *RoomResponse) FromModel(m model.Room) {
	r.ID = m.ID
	r.Slug = m.Slug
	r.Name = m.Name
	r.Category = string(m.Category)
	r.ShortDescription = m.ShortDescription
	r.Description = m.Description
	r.Price = m.Price
	r.OriginalPrice = m.OriginalPrice
	r.DiscountPercent = DiscountPercent(m)
	r.Size = m.Size
	r.MaxGuests = m.MaxGuests
	r.Beds = m.Beds
	r.Amenities = AmenitiesFromModel(m.Amenities)
	r.Images = m.Images
	r.Featured = m.Featured
	r.Available = m.Available
}

// DiscountPercent is the whole percentage saved against the original price,
// rounded down. Rooms without a higher original price have none.
func DiscountPercent(m model.Room) int {
	if m.OriginalPrice == nil || *m.OriginalPrice <= m.Price {
		return 0
	}

	return int((*m.OriginalPrice - m.Price) * 100 / *m.OriginalPrice)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room) {
	r.TotalData = len(models)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

type ExtraResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	PriceType   string `json:"price_type"`
}

func (e *ExtraResponse) FromModel(m model.Extra) {
	e.ID = m.ID
	e.Name = m.Name
	e.Description = m.Description
	e.Price = m.Price
	e.PriceType = string(m.PriceType)
}

func ExtrasFromModels(models []model.Extra) []ExtraResponse {
	res := make([]ExtraResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res
}
