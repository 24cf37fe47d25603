package repository

import (
	"cmp"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"riverside/config"
	"riverside/internal/domains/room/model"
	"riverside/shared/constant"

	"github.com/rs/zerolog/log"
)

//go:embed catalog.json
var defaultCatalog []byte

// Catalog is the read-only room and extra catalog. Every method is pure and
// slices it returns are copies the caller may reorder.
type Catalog interface {
	All() []model.Room
	Extras() []model.Extra
	FindBySlug(slug string) (model.Room, bool)
	FindByID(id string) (model.Room, bool)
	FindExtra(id string) (model.Extra, bool)
	FilterByCategory(category model.Category) []model.Room
	FilterByCapacity(minGuests int) []model.Room
	Featured() []model.Room
	Selectable(totalGuests int) []model.Room
}

type catalogFile struct {
	Rooms  []model.Room  `json:"rooms"`
	Extras []model.Extra `json:"extras"`
}

type catalogImpl struct {
	rooms  []model.Room
	extras []model.Extra
	bySlug map[string]int
	byID   map[string]int
	extra  map[string]int
}

// New loads the embedded catalog, or the file at BOOKING_CATALOG_PATH when set.
func New(cfg *config.Config) (Catalog, error) {
	data := defaultCatalog
	source := "embedded"

	if path := cfg.Booking.CatalogPath; path != constant.Empty {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file: %w", err)
		}

		data = raw
		source = path
	}

	catalog, err := Load(data)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("source", source).
		Int("rooms", len(catalog.All())).
		Int("extras", len(catalog.Extras())).
		Msg("Room catalog loaded")

	return catalog, nil
}

// Load parses and validates a catalog document.
func Load(data []byte) (Catalog, error) {
	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	c := &catalogImpl{
		rooms:  file.Rooms,
		extras: file.Extras,
		bySlug: make(map[string]int, len(file.Rooms)),
		byID:   make(map[string]int, len(file.Rooms)),
		extra:  make(map[string]int, len(file.Extras)),
	}

	for i := range c.rooms {
		if err := c.indexRoom(i); err != nil {
			return nil, err
		}
	}

	for i, extra := range c.extras {
		if extra.ID == constant.Empty {
			return nil, fmt.Errorf("extra at position %d has no id", i)
		}

		if _, dup := c.extra[extra.ID]; dup {
			return nil, fmt.Errorf("duplicate extra id %q", extra.ID)
		}

		if !extra.PriceType.Valid() {
			return nil, fmt.Errorf("extra %q has unknown price type %q", extra.ID, extra.PriceType)
		}

		if extra.Price < 0 {
			return nil, fmt.Errorf("extra %q has a negative price", extra.ID)
		}

		c.extra[extra.ID] = i
	}

	return c, nil
}

func (c *catalogImpl) indexRoom(i int) error {
	room := c.rooms[i]

	if room.ID == constant.Empty || room.Slug == constant.Empty {
		return fmt.Errorf("room at position %d needs both id and slug", i)
	}

	if _, dup := c.byID[room.ID]; dup {
		return fmt.Errorf("duplicate room id %q", room.ID)
	}

	if _, dup := c.bySlug[room.Slug]; dup {
		return fmt.Errorf("duplicate room slug %q", room.Slug)
	}

	if !room.Category.Valid() {
		return fmt.Errorf("room %q has unknown category %q", room.ID, room.Category)
	}

	if room.Price <= 0 {
		return fmt.Errorf("room %q must have a positive price", room.ID)
	}

	if room.MaxGuests < 1 {
		return fmt.Errorf("room %q must fit at least one guest", room.ID)
	}

	for _, amenity := range room.Amenities {
		if !amenity.Valid() {
			return fmt.Errorf("room %q has unknown amenity %q", room.ID, amenity)
		}
	}

	c.byID[room.ID] = i
	c.bySlug[room.Slug] = i

	return nil
}

func (c *catalogImpl) All() []model.Room {
	return slices.Clone(c.rooms)
}

func (c *catalogImpl) Extras() []model.Extra {
	return slices.Clone(c.extras)
}

func (c *catalogImpl) FindBySlug(slug string) (model.Room, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return model.Room{}, false
	}

	return c.rooms[i], true
}

func (c *catalogImpl) FindByID(id string) (model.Room, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Room{}, false
	}

	return c.rooms[i], true
}

func (c *catalogImpl) FindExtra(id string) (model.Extra, bool) {
	i, ok := c.extra[id]
	if !ok {
		return model.Extra{}, false
	}

	return c.extras[i], true
}

func (c *catalogImpl) FilterByCategory(category model.Category) []model.Room {
	if category == model.CategoryAll {
		return c.All()
	}

	return where(c.rooms, func(r model.Room) bool { return r.Category == category })
}

func (c *catalogImpl) FilterByCapacity(minGuests int) []model.Room {
	return where(c.rooms, func(r model.Room) bool { return r.MaxGuests >= minGuests })
}

func (c *catalogImpl) Featured() []model.Room {
	return where(c.rooms, func(r model.Room) bool { return r.Featured })
}

// Selectable lists the rooms offered at the room selection step.
func (c *catalogImpl) Selectable(totalGuests int) []model.Room {
	return where(c.rooms, func(r model.Room) bool { return r.Available && r.MaxGuests >= totalGuests })
}

// AvailableOnly keeps the rooms that can currently be booked.
func AvailableOnly(rooms []model.Room) []model.Room {
	return where(rooms, func(r model.Room) bool { return r.Available })
}

// Filter applies price, capacity and amenity bounds. Every listed amenity
// must be present.
func Filter(rooms []model.Room, filter model.RoomFilter) []model.Room {
	return where(rooms, func(r model.Room) bool {
		if filter.MinPrice > 0 && r.Price < filter.MinPrice {
			return false
		}

		if filter.MaxPrice > 0 && r.Price > filter.MaxPrice {
			return false
		}

		if filter.MinGuests > 0 && r.MaxGuests < filter.MinGuests {
			return false
		}

		for _, amenity := range filter.Amenities {
			if !r.HasAmenity(amenity) {
				return false
			}
		}

		return true
	})
}

// SortBy returns a stably sorted copy. An unknown key returns the copy in
// its original order.
func SortBy(rooms []model.Room, key model.SortKey) []model.Room {
	sorted := slices.Clone(rooms)

	var order func(a, b model.Room) int

	switch key {
	case model.SortPriceLow:
		order = func(a, b model.Room) int { return cmp.Compare(a.Price, b.Price) }
	case model.SortPriceHigh:
		order = func(a, b model.Room) int { return cmp.Compare(b.Price, a.Price) }
	case model.SortSize:
		order = func(a, b model.Room) int { return cmp.Compare(b.Size, a.Size) }
	case model.SortGuests:
		order = func(a, b model.Room) int { return cmp.Compare(b.MaxGuests, a.MaxGuests) }
	default:
		return sorted
	}

	slices.SortStableFunc(sorted, order)

	return sorted
}

func where(rooms []model.Room, keep func(model.Room) bool) []model.Room {
	res := make([]model.Room, 0, len(rooms))

	for _, room := range rooms {
		if keep(room) {
			res = append(res, room)
		}
	}

	return res
}
