package pricing_test

import (
	"testing"
	"time"

	"riverside/internal/domains/booking/model"
	"riverside/internal/domains/booking/pricing"
	roomModel "riverside/internal/domains/room/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	return &t
}

var (
	room300k  = &roomModel.Room{ID: "river", Price: 300000, MaxGuests: 2, Available: true}
	breakfast = roomModel.Extra{ID: "breakfast", Name: "Breakfast", Price: 75000, PriceType: roomModel.PriceTypePerNight}
	transfer  = roomModel.Extra{ID: "transfer", Name: "Transfer", Price: 150000, PriceType: roomModel.PriceTypePerStay}
)

func TestCompute_Scenario(t *testing.T) {
	res, err := pricing.Compute(date(2024, 6, 1), date(2024, 6, 4), room300k, nil)
	require.NoError(t, err)

	assert.Equal(t, model.Pricing{
		Nights:        3,
		PricePerNight: 300000,
		RoomSubtotal:  900000,
		TaxableBase:   900000,
		Taxes:         108000,
		ServiceFee:    45000,
		Total:         1053000,
		RoomSelected:  true,
	}, res)
}

func TestCompute_Extras(t *testing.T) {
	res, err := pricing.Compute(date(2024, 6, 1), date(2024, 6, 4), room300k, []roomModel.Extra{breakfast, transfer})
	require.NoError(t, err)

	require.Len(t, res.Extras, 2)
	assert.Equal(t, int64(225000), res.Extras[0].Amount)
	assert.Equal(t, int64(150000), res.Extras[1].Amount)
	assert.Equal(t, int64(375000), res.ExtrasTotal)
	assert.Equal(t, int64(1275000), res.TaxableBase)
	assert.Equal(t, int64(153000), res.Taxes)
	assert.Equal(t, int64(63750), res.ServiceFee)
	assert.Equal(t, int64(1491750), res.Total)
}

func TestCompute_InvalidRange(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  *time.Time
		checkOut *time.Time
	}{
		{name: "missing check-in", checkIn: nil, checkOut: date(2024, 6, 4)},
		{name: "missing check-out", checkIn: date(2024, 6, 1), checkOut: nil},
		{name: "equal dates", checkIn: date(2024, 6, 1), checkOut: date(2024, 6, 1)},
		{name: "reversed dates", checkIn: date(2024, 6, 4), checkOut: date(2024, 6, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pricing.Compute(tt.checkIn, tt.checkOut, room300k, nil)

			assert.ErrorIs(t, err, pricing.ErrInvalidDateRange)
		})
	}
}

func TestCompute_NoRoom(t *testing.T) {
	res, err := pricing.Compute(date(2024, 6, 1), date(2024, 6, 4), nil, []roomModel.Extra{breakfast})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Nights)
	assert.False(t, res.RoomSelected)
	assert.Zero(t, res.PricePerNight)
	assert.Zero(t, res.RoomSubtotal)
	assert.Zero(t, res.ExtrasTotal)
	assert.Zero(t, res.Total)
}

func TestCompute_Properties(t *testing.T) {
	prices := []int64{1, 99, 150000, 333333, 800000}
	extras := []roomModel.Extra{breakfast, transfer, {ID: "odd", Price: 7, PriceType: roomModel.PriceTypePerNight}}
	checkIn := date(2024, 2, 27)

	for _, price := range prices {
		for n := 1; n <= 10; n++ {
			checkOut := checkIn.AddDate(0, 0, n)
			room := &roomModel.Room{ID: "r", Price: price}

			first, err := pricing.Compute(checkIn, &checkOut, room, extras)
			require.NoError(t, err)

			second, err := pricing.Compute(checkIn, &checkOut, room, extras)
			require.NoError(t, err)

			assert.Equal(t, first, second, "compute must be idempotent")
			assert.Equal(t, n, first.Nights)
			assert.Equal(t, price*int64(n), first.RoomSubtotal)
			assert.Equal(t, first.Total, first.RoomSubtotal+first.ExtrasTotal+first.Taxes+first.ServiceFee)
		}
	}
}

func TestNights(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		expected int
	}{
		{
			name:     "clock time is ignored",
			checkIn:  time.Date(2024, 6, 1, 23, 0, 0, 0, time.UTC),
			checkOut: time.Date(2024, 6, 2, 1, 0, 0, 0, time.UTC),
			expected: 1,
		},
		{
			name:     "zone offset is ignored",
			checkIn:  time.Date(2024, 6, 1, 0, 0, 0, 0, jakarta),
			checkOut: time.Date(2024, 6, 4, 0, 0, 0, 0, jakarta),
			expected: 3,
		},
		{
			name:     "across a leap day",
			checkIn:  time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			expected: 2,
		},
		{
			name:     "across a month and year",
			checkIn:  time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pricing.Nights(tt.checkIn, tt.checkOut))
		})
	}
}

func TestSummarize(t *testing.T) {
	draft := model.NewDraft("d-1", time.Now())
	draft.Room = room300k

	res := pricing.Summarize(&draft)
	assert.Zero(t, res.Total)
	assert.Zero(t, res.Nights)
	assert.True(t, res.RoomSelected)

	draft.CheckIn = date(2024, 6, 1)
	draft.CheckOut = date(2024, 6, 4)

	res = pricing.Summarize(&draft)
	assert.Equal(t, int64(1053000), res.Total)
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   int64
		expected string
	}{
		{amount: 0, expected: "IDR 0"},
		{amount: 999, expected: "IDR 999"},
		{amount: 45000, expected: "IDR 45,000"},
		{amount: 1053000, expected: "IDR 1,053,000"},
		{amount: 1234567890, expected: "IDR 1,234,567,890"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, pricing.FormatCurrency("IDR", tt.amount))
		})
	}
}
