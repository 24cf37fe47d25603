package repository_test

import (
	"time"

	roomModel "riverside/internal/domains/room/model"
)

var room = roomModel.Room{ID: "deluxe-river", Name: "Deluxe River View", Price: 350000, MaxGuests: 2, Available: true}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	return &t
}
