package model

const (
	EntityName      = "room"
	ExtraEntityName = "extra"
)

type Category string

const (
	CategoryAll       Category = "all"
	CategoryStandard  Category = "standard"
	CategoryDeluxe    Category = "deluxe"
	CategorySuite     Category = "suite"
	CategoryPenthouse Category = "penthouse"
)

// Categories is the ordered category list offered as filters, "all" first.
var Categories = []CategoryLabel{
	{ID: CategoryAll, Label: "All Rooms"},
	{ID: CategoryStandard, Label: "Standard"},
	{ID: CategoryDeluxe, Label: "Deluxe"},
	{ID: CategorySuite, Label: "Suites"},
	{ID: CategoryPenthouse, Label: "Penthouse"},
}

type CategoryLabel struct {
	ID    Category
	Label string
}

func (c Category) Valid() bool {
	switch c {
	case CategoryStandard, CategoryDeluxe, CategorySuite, CategoryPenthouse:
		return true
	default:
		return false
	}
}

// Amenity is a key from the fixed amenity vocabulary.
type Amenity string

const (
	AmenityWifi    Amenity = "wifi"
	AmenityTV      Amenity = "tv"
	AmenityMinibar Amenity = "minibar"
	AmenityAC      Amenity = "ac"
	AmenitySafe    Amenity = "safe"
	AmenityDesk    Amenity = "desk"
	AmenityCoffee  Amenity = "coffee"
	AmenityBathtub Amenity = "bathtub"
	AmenityBalcony Amenity = "balcony"
	AmenityView    Amenity = "view"
	AmenityJacuzzi Amenity = "jacuzzi"
	AmenityButler  Amenity = "butler"
	AmenityKitchen Amenity = "kitchen"
	AmenityLiving  Amenity = "living"
)

// Amenities lists the vocabulary in display order.
var Amenities = []Amenity{
	AmenityWifi, AmenityTV, AmenityMinibar, AmenityAC, AmenitySafe, AmenityDesk, AmenityCoffee,
	AmenityBathtub, AmenityBalcony, AmenityView, AmenityJacuzzi, AmenityButler, AmenityKitchen, AmenityLiving,
}

var amenityLabels = map[Amenity]string{
	AmenityWifi:    "Free WiFi",
	AmenityTV:      "Smart TV",
	AmenityMinibar: "Mini Bar",
	AmenityAC:      "Air Conditioning",
	AmenitySafe:    "In-room Safe",
	AmenityDesk:    "Work Desk",
	AmenityCoffee:  "Coffee Machine",
	AmenityBathtub: "Bathtub",
	AmenityBalcony: "Private Balcony",
	AmenityView:    "River View",
	AmenityJacuzzi: "Jacuzzi",
	AmenityButler:  "Butler Service",
	AmenityKitchen: "Kitchenette",
	AmenityLiving:  "Living Room",
}

func (a Amenity) Label() string {
	return amenityLabels[a]
}

func (a Amenity) Valid() bool {
	_, ok := amenityLabels[a]

	return ok
}

type PriceType string

const (
	PriceTypePerStay  PriceType = "per-stay"
	PriceTypePerNight PriceType = "per-night"
)

func (p PriceType) Valid() bool {
	return p == PriceTypePerStay || p == PriceTypePerNight
}

// Room is an immutable catalog entry. Prices are whole currency units per night.
type Room struct {
	ID               string    `json:"id"`
	Slug             string    `json:"slug"`
	Name             string    `json:"name"`
	Category         Category  `json:"category"`
	ShortDescription string    `json:"shortDescription"`
	Description      string    `json:"description"`
	Price            int64     `json:"price"`
	OriginalPrice    *int64    `json:"originalPrice,omitempty"`
	Size             int       `json:"size"`
	MaxGuests        int       `json:"maxGuests"`
	Beds             string    `json:"beds"`
	Amenities        []Amenity `json:"amenities"`
	Images           []string  `json:"images"`
	Featured         bool      `json:"featured"`
	Available        bool      `json:"available"`
}

func (r *Room) HasAmenity(amenity Amenity) bool {
	for _, a := range r.Amenities {
		if a == amenity {
			return true
		}
	}

	return false
}

// Extra is an optional add-on service.
type Extra struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	PriceType   PriceType `json:"priceType"`
}

// Amount is what the extra contributes to a stay of the given length.
func (e *Extra) Amount(nights int) int64 {
	if e.PriceType == PriceTypePerNight {
		return e.Price * int64(nights)
	}

	return e.Price
}

// RoomFilter bounds a room listing. Zero values are ignored.
type RoomFilter struct {
	MinPrice  int64
	MaxPrice  int64
	MinGuests int
	Amenities []Amenity
}

type SortKey string

const (
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortSize      SortKey = "size"
	SortGuests    SortKey = "guests"
)
