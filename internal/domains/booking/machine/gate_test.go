package machine_test

import (
	"testing"
	"time"

	"riverside/internal/domains/booking/machine"
	"riverside/internal/domains/booking/model"
	roomModel "riverside/internal/domains/room/model"

	"github.com/stretchr/testify/assert"
)

func TestGateIssues(t *testing.T) {
	base := func() model.Draft {
		d := model.NewDraft("d-1", time.Now())
		d.CheckIn = day(2024, 6, 1)
		d.CheckOut = day(2024, 6, 4)
		d.Guests = model.Guests{Adults: 2}
		d.Room = &deluxe
		d.Details = model.GuestDetails{FirstName: "Ayu", Email: "ayu@example.com"}

		return d
	}

	tests := []struct {
		name     string
		step     model.Step
		mutate   func(d *model.Draft)
		expected []string
	}{
		{
			name:   "dates and guests complete",
			step:   model.StepDatesGuests,
			mutate: func(_ *model.Draft) {},
		},
		{
			name:     "missing dates",
			step:     model.StepDatesGuests,
			mutate:   func(d *model.Draft) { d.CheckIn, d.CheckOut = nil, nil },
			expected: []string{"check-in date is required", "check-out date is required"},
		},
		{
			name:     "equal dates",
			step:     model.StepDatesGuests,
			mutate:   func(d *model.Draft) { d.CheckOut = day(2024, 6, 1) },
			expected: []string{"check-out must be after check-in"},
		},
		{
			name:     "no adults",
			step:     model.StepDatesGuests,
			mutate:   func(d *model.Draft) { d.Guests = model.Guests{} },
			expected: []string{"at least one adult is required", "at least one guest is required"},
		},
		{
			name:     "no room",
			step:     model.StepSelectRoom,
			mutate:   func(d *model.Draft) { d.Room = nil },
			expected: []string{"a room must be selected"},
		},
		{
			name:     "room too small",
			step:     model.StepSelectRoom,
			mutate:   func(d *model.Draft) { d.Guests = model.Guests{Adults: 2, Children: 1} },
			expected: []string{"Deluxe River View fits at most 2 guests"},
		},
		{
			name:     "room unavailable",
			step:     model.StepSelectRoom,
			mutate:   func(d *model.Draft) { d.Room = &roomModel.Room{Name: "Loft", MaxGuests: 4} },
			expected: []string{"Loft is not available"},
		},
		{
			name:     "blank name and bad email",
			step:     model.StepDetails,
			mutate:   func(d *model.Draft) { d.Details = model.GuestDetails{FirstName: "   ", Email: "ayu@"} },
			expected: []string{"first_name is required", "email must be a valid email address"},
		},
		{
			name:     "email with padding is trimmed",
			step:     model.StepDetails,
			mutate:   func(d *model.Draft) { d.Details.Email = "  ayu@example.com " },
			expected: nil,
		},
		{
			name:     "confirmation requires every earlier step",
			step:     model.StepConfirmation,
			mutate:   func(d *model.Draft) { d.CheckOut = nil; d.Room = nil; d.Details.Email = "" },
			expected: []string{"check-out date is required", "a room must be selected", "email is required"},
		},
		{
			name:     "unknown step",
			step:     model.Step(9),
			mutate:   func(_ *model.Draft) {},
			expected: []string{"unknown step 9"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := base()
			tt.mutate(&d)
			d.Step = tt.step

			issues := machine.GateIssues(&d, tt.step)

			assert.Equal(t, tt.expected, issues)
			assert.Equal(t, len(tt.expected) == 0, machine.CanProceed(&d))
		})
	}
}

func TestCanProceed_StepOneRejectsNonIncreasingDates(t *testing.T) {
	checkIn := day(2024, 6, 10)

	for offset := -5; offset <= 0; offset++ {
		d := model.NewDraft("d-1", time.Now())
		d.CheckIn = checkIn
		checkOut := checkIn.AddDate(0, 0, offset)
		d.CheckOut = &checkOut

		assert.False(t, machine.CanProceed(&d), "offset %d", offset)
	}
}
