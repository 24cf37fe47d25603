package machine

import (
	"fmt"
	"strings"

	"riverside/internal/domains/booking/model"
	"riverside/internal/domains/booking/pricing"
	"riverside/shared/validator"
)

// CanProceed reports whether the draft may leave its current step.
func CanProceed(d *model.Draft) bool {
	return len(GateIssues(d, d.Step)) == 0
}

// GateIssues lists what keeps the given step from being complete. The last
// step requires every earlier step to hold.
func GateIssues(d *model.Draft, step model.Step) []string {
	switch step {
	case model.StepDatesGuests:
		return datesGuestsIssues(d)
	case model.StepSelectRoom:
		return roomIssues(d)
	case model.StepDetails:
		return detailsIssues(d)
	case model.StepConfirmation:
		var issues []string
		issues = append(issues, datesGuestsIssues(d)...)
		issues = append(issues, roomIssues(d)...)
		issues = append(issues, detailsIssues(d)...)

		return issues
	default:
		return []string{fmt.Sprintf("unknown step %d", step)}
	}
}

func datesGuestsIssues(d *model.Draft) []string {
	var issues []string

	if d.CheckIn == nil {
		issues = append(issues, "check-in date is required")
	}

	if d.CheckOut == nil {
		issues = append(issues, "check-out date is required")
	}

	if d.CheckIn != nil && d.CheckOut != nil && pricing.Nights(*d.CheckIn, *d.CheckOut) <= 0 {
		issues = append(issues, pricing.ErrInvalidDateRange.Error())
	}

	if d.Guests.Adults < 1 {
		issues = append(issues, "at least one adult is required")
	}

	if d.Guests.Total() < 1 {
		issues = append(issues, "at least one guest is required")
	}

	return issues
}

func roomIssues(d *model.Draft) []string {
	if d.Room == nil {
		return []string{"a room must be selected"}
	}

	var issues []string

	if d.Room.MaxGuests < d.Guests.Total() {
		issues = append(issues, fmt.Sprintf("%s fits at most %d guests", d.Room.Name, d.Room.MaxGuests))
	}

	if !d.Room.Available {
		issues = append(issues, fmt.Sprintf("%s is not available", d.Room.Name))
	}

	return issues
}

func detailsIssues(d *model.Draft) []string {
	details := model.GuestDetails{
		FirstName: strings.TrimSpace(d.Details.FirstName),
		Email:     strings.TrimSpace(d.Details.Email),
	}

	return validator.Issues(&details)
}
