package dto_test

import (
	"net/http"
	"testing"
	"time"

	"riverside/internal/domains/booking/model"
	"riverside/internal/domains/booking/model/dto"
	roomModel "riverside/internal/domains/room/model"
	"riverside/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDatesRequest_ToDates(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.SetDatesRequest
		checkIn  string
		checkOut string
		code     int
	}{
		{name: "both", req: dto.SetDatesRequest{CheckIn: "2024-06-01", CheckOut: "2024-06-04"}, checkIn: "2024-06-01", checkOut: "2024-06-04"},
		{name: "check-in only", req: dto.SetDatesRequest{CheckIn: "2024-06-01"}, checkIn: "2024-06-01"},
		{name: "neither", req: dto.SetDatesRequest{}},
		{name: "impossible day", req: dto.SetDatesRequest{CheckIn: "2024-02-30"}, code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkIn, checkOut, err := tt.req.ToDates()
			if tt.code != 0 {
				assert.Equal(t, tt.code, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.checkIn, day(checkIn))
			assert.Equal(t, tt.checkOut, day(checkOut))
		})
	}
}

func day(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.Format("2006-01-02")
}

func TestSetDetailsRequest_ToModel(t *testing.T) {
	req := dto.SetDetailsRequest{
		FirstName: "  Ayu ",
		LastName:  "Lestari",
		Email:     " ayu@example.com",
		Phone:     "+62 812 0000 ",
	}

	assert.Equal(t, model.GuestDetails{
		FirstName: "Ayu",
		LastName:  "Lestari",
		Email:     "ayu@example.com",
		Phone:     "+62 812 0000",
	}, req.ToModel())
}

func TestDraftResponse_FromModel(t *testing.T) {
	now := time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)

	t.Run("fresh draft", func(t *testing.T) {
		var res dto.DraftResponse
		res.FromModel(model.NewDraft("d-1", now), false, "IDR")

		assert.Equal(t, "draft", res.Status)
		assert.Equal(t, 1, res.Step.Number)
		assert.Equal(t, "Dates & Guests", res.Step.Title)
		assert.Nil(t, res.Room)
		assert.NotNil(t, res.Extras)
		assert.NotNil(t, res.Pricing.Extras)
		assert.False(t, res.CanProceed)
		assert.Equal(t, []string{"check-in date is required", "check-out date is required"}, res.Issues)
		assert.Equal(t, "2024-05-20T09:00:00Z", res.CreatedAt)
	})

	t.Run("priced draft", func(t *testing.T) {
		checkIn := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		checkOut := checkIn.AddDate(0, 0, 3)

		d := model.NewDraft("d-2", now)
		d.CheckIn, d.CheckOut = &checkIn, &checkOut
		d.Guests = model.Guests{Adults: 2}
		d.Room = &roomModel.Room{ID: "r-1", Slug: "deluxe-river", Name: "Deluxe River View", Price: 350000, MaxGuests: 2, Available: true}
		d.Pricing = model.Pricing{
			Nights:        3,
			PricePerNight: 350000,
			RoomSubtotal:  1050000,
			TaxableBase:   1050000,
			Taxes:         126000,
			ServiceFee:    52500,
			Total:         1228500,
			RoomSelected:  true,
		}

		var res dto.DraftResponse
		res.FromModel(d, true, "IDR")

		assert.True(t, res.Applied)
		assert.True(t, res.CanProceed)
		assert.Empty(t, res.Issues)
		assert.Equal(t, "2024-06-01", res.CheckIn)
		assert.Equal(t, "2024-06-04", res.CheckOut)
		require.NotNil(t, res.Room)
		assert.Equal(t, "deluxe-river", res.Room.Slug)
		assert.Equal(t, "IDR 1,228,500", res.Pricing.Formatted.Total)
		assert.Equal(t, "IDR 52,500", res.Pricing.Formatted.ServiceFee)
	})
}

func TestDraftResponse_CanProceedFollowsStatus(t *testing.T) {
	checkIn := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	checkOut := checkIn.AddDate(0, 0, 3)

	tests := []struct {
		status   model.Status
		expected bool
	}{
		{status: model.StatusDraft, expected: true},
		{status: model.StatusFailed, expected: true},
		{status: model.StatusLoading, expected: false},
		{status: model.StatusConfirmed, expected: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			d := model.NewDraft("d-3", checkIn)
			d.CheckIn, d.CheckOut = &checkIn, &checkOut
			d.Guests = model.Guests{Adults: 2}
			d.Room = &roomModel.Room{ID: "r-1", Name: "Deluxe River View", Price: 300000, MaxGuests: 2, Available: true}
			d.Details = model.GuestDetails{FirstName: "Ayu", Email: "ayu@example.com"}
			d.Step = model.StepConfirmation
			d.Status = tt.status

			var res dto.DraftResponse
			res.FromModel(d, false, "IDR")

			assert.Empty(t, res.Issues)
			assert.Equal(t, tt.expected, res.CanProceed)
		})
	}
}

func TestReceiptResponse_FromModel(t *testing.T) {
	receipt := model.Receipt{
		Number:      "RS-20240520-0A1B2C3D",
		ConfirmedAt: time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC),
		CheckIn:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:    time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
		Guests:      model.Guests{Adults: 2},
		RoomID:      "r-1",
		RoomName:    "Deluxe River View",
		Details:     model.GuestDetails{FirstName: "Ayu", Email: "ayu@example.com"},
		Pricing:     model.Pricing{Total: 1228500},
	}

	var res dto.ReceiptResponse
	res.FromModel(receipt, "IDR")

	assert.Equal(t, "Ayu", res.GuestName)
	assert.Equal(t, "2024-06-01", res.CheckIn)
	assert.Equal(t, "2024-06-04", res.CheckOut)
	assert.Equal(t, "IDR 1,228,500", res.Pricing.Formatted.Total)
}
