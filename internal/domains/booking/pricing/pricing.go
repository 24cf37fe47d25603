package pricing

import (
	"errors"
	"time"

	"riverside/internal/domains/booking/model"
	roomModel "riverside/internal/domains/room/model"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	TaxPercent        = 12
	ServiceFeePercent = 5
)

const hoursPerDay = 24

var ErrInvalidDateRange = errors.New("check-out must be after check-in")

// Nights counts calendar days between the two dates, ignoring clock time and
// zone offsets.
func Nights(checkIn, checkOut time.Time) int {
	return int(day(checkOut).Sub(day(checkIn)).Hours() / hoursPerDay)
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Compute derives the pricing snapshot for a stay. Without a room every
// amount is zero.
func Compute(checkIn, checkOut *time.Time, room *roomModel.Room, extras []roomModel.Extra) (model.Pricing, error) {
	if checkIn == nil || checkOut == nil {
		return model.Pricing{}, ErrInvalidDateRange
	}

	nights := Nights(*checkIn, *checkOut)
	if nights <= 0 {
		return model.Pricing{}, ErrInvalidDateRange
	}

	res := model.Pricing{Nights: nights}
	if room == nil {
		return res, nil
	}

	res.RoomSelected = true
	res.PricePerNight = room.Price
	res.RoomSubtotal = room.Price * int64(nights)

	if len(extras) > 0 {
		res.Extras = make([]model.LineItem, len(extras))
	}

	for i, extra := range extras {
		amount := extra.Amount(nights)

		res.Extras[i] = model.LineItem{
			ExtraID:   extra.ID,
			Name:      extra.Name,
			PriceType: extra.PriceType,
			Price:     extra.Price,
			Amount:    amount,
		}
		res.ExtrasTotal += amount
	}

	res.TaxableBase = res.RoomSubtotal + res.ExtrasTotal
	res.Taxes = percentOf(res.TaxableBase, TaxPercent)
	res.ServiceFee = percentOf(res.TaxableBase, ServiceFeePercent)
	res.Total = res.TaxableBase + res.Taxes + res.ServiceFee

	return res, nil
}

// Summarize prices a draft. Incomplete or invalid dates give the zero snapshot.
func Summarize(d *model.Draft) model.Pricing {
	res, err := Compute(d.CheckIn, d.CheckOut, d.Room, d.Extras)
	if err != nil {
		return model.Pricing{RoomSelected: d.Room != nil}
	}

	return res
}

// percentOf rounds half up in integer arithmetic.
func percentOf(base int64, percent int64) int64 {
	return (base*percent + 50) / 100
}

var printer = message.NewPrinter(language.English)

// FormatCurrency renders whole units with thousands separators, e.g. "IDR 1,053,000".
func FormatCurrency(currency string, amount int64) string {
	return printer.Sprintf("%s %d", currency, amount)
}
