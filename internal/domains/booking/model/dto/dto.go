package dto

import (
	"fmt"
	"strings"
	"time"

	"riverside/infras/jwt"
	"riverside/internal/domains/booking/machine"
	"riverside/internal/domains/booking/model"
	"riverside/internal/domains/booking/pricing"
	roomDto "riverside/internal/domains/room/model/dto"
	"riverside/shared/constant"
	"riverside/shared/failure"
	"riverside/shared/timezone"
)

// SetDatesRequest carries the stay dates as YYYY-MM-DD. Either may be empty
// while the guest is still choosing.
type SetDatesRequest struct {
	CheckIn  string `json:"check_in"  validate:"omitempty,day"`
	CheckOut string `json:"check_out" validate:"omitempty,day"`
}

func (r *SetDatesRequest) ToDates() (checkIn, checkOut *time.Time, err error) {
	if checkIn, err = parseDay(r.CheckIn); err != nil {
		return nil, nil, err
	}

	if checkOut, err = parseDay(r.CheckOut); err != nil {
		return nil, nil, err
	}

	return checkIn, checkOut, nil
}

func parseDay(value string) (*time.Time, error) {
	if value == constant.Empty {
		return nil, nil
	}

	t, err := timezone.Parse(constant.DayFormat, value)
	if err != nil {
		return nil, failure.BadRequest(fmt.Errorf("failed to parse date %q: %w", value, err))
	}

	return &t, nil
}

// SetGuestsRequest is range checked by the booking itself so an out of range
// count is reported as not applied instead of a bad request.
type SetGuestsRequest struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

// SelectRoomRequest names the room by id or by slug.
type SelectRoomRequest struct {
	Room string `json:"room" validate:"required"`
}

type AddExtraRequest struct {
	ExtraID string `json:"extra_id" validate:"required"`
}

type SetDetailsRequest struct {
	FirstName       string `json:"first_name"       validate:"max=100"`
	LastName        string `json:"last_name"        validate:"max=100"`
	Email           string `json:"email"            validate:"max=254"`
	Phone           string `json:"phone"            validate:"max=30"`
	SpecialRequests string `json:"special_requests" validate:"max=1000"`
}

func (r *SetDetailsRequest) ToModel() model.GuestDetails {
	return model.GuestDetails{
		FirstName:       strings.TrimSpace(r.FirstName),
		LastName:        strings.TrimSpace(r.LastName),
		Email:           strings.TrimSpace(r.Email),
		Phone:           strings.TrimSpace(r.Phone),
		SpecialRequests: strings.TrimSpace(r.SpecialRequests),
	}
}

type StepResponse struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
}

func (s *StepResponse) FromModel(step model.Step) {
	s.Number = int(step)
	s.Title = step.Title()
}

func StepsFromModel(steps []model.Step) []StepResponse {
	res := make([]StepResponse, len(steps))
	for i, step := range steps {
		res[i].FromModel(step)
	}

	return res
}

type RoomSummary struct {
	ID        string `json:"id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	MaxGuests int    `json:"max_guests"`
}

// FormattedTotals holds the money fields rendered for display.
type FormattedTotals struct {
	PricePerNight string `json:"price_per_night"`
	RoomSubtotal  string `json:"room_subtotal"`
	ExtrasTotal   string `json:"extras_total"`
	Taxes         string `json:"taxes"`
	ServiceFee    string `json:"service_fee"`
	Total         string `json:"total"`
}

type PricingResponse struct {
	model.Pricing
	Currency  string          `json:"currency"`
	Formatted FormattedTotals `json:"formatted"`
}

func (p *PricingResponse) FromModel(m model.Pricing, currency string) {
	p.Pricing = m
	p.Currency = currency
	p.Formatted = FormattedTotals{
		PricePerNight: pricing.FormatCurrency(currency, m.PricePerNight),
		RoomSubtotal:  pricing.FormatCurrency(currency, m.RoomSubtotal),
		ExtrasTotal:   pricing.FormatCurrency(currency, m.ExtrasTotal),
		Taxes:         pricing.FormatCurrency(currency, m.Taxes),
		ServiceFee:    pricing.FormatCurrency(currency, m.ServiceFee),
		Total:         pricing.FormatCurrency(currency, m.Total),
	}

	if p.Extras == nil {
		p.Extras = []model.LineItem{}
	}
}

type ConfirmationResponse struct {
	Number      string `json:"number"`
	ConfirmedAt string `json:"confirmed_at"`
}

// DraftResponse is the booking as the wizard shows it, including whether the
// last action changed anything and what blocks the current step.
type DraftResponse struct {
	ID            string                  `json:"id"`
	Status        string                  `json:"status"`
	Step          StepResponse            `json:"step"`
	CheckIn       string                  `json:"check_in,omitempty"`
	CheckOut      string                  `json:"check_out,omitempty"`
	Guests        model.Guests            `json:"guests"`
	Room          *RoomSummary            `json:"room"`
	Extras        []roomDto.ExtraResponse `json:"extras"`
	Details       model.GuestDetails      `json:"details"`
	Pricing       PricingResponse         `json:"pricing"`
	CanProceed    bool                    `json:"can_proceed"`
	Issues        []string                `json:"issues"`
	Confirmation  *ConfirmationResponse   `json:"confirmation,omitempty"`
	FailureReason string                  `json:"failure_reason,omitempty"`
	Applied       bool                    `json:"applied"`
	CreatedAt     string                  `json:"created_at"`
	UpdatedAt     string                  `json:"updated_at"`
}

func (r *DraftResponse) FromModel(d model.Draft, applied bool, currency string) {
	r.ID = d.ID
	r.Status = string(d.Status)
	r.Step.FromModel(d.Step)
	r.Guests = d.Guests
	r.Extras = roomDto.ExtrasFromModels(d.Extras)
	r.Details = d.Details
	r.Pricing.FromModel(d.Pricing, currency)
	r.FailureReason = d.FailureReason
	r.Applied = applied
	r.CreatedAt = timezone.Format(d.CreatedAt, constant.DateFormat)
	r.UpdatedAt = timezone.Format(d.UpdatedAt, constant.DateFormat)

	if d.CheckIn != nil {
		r.CheckIn = d.CheckIn.Format(constant.DayFormat)
	}

	if d.CheckOut != nil {
		r.CheckOut = d.CheckOut.Format(constant.DayFormat)
	}

	if d.Room != nil {
		r.Room = &RoomSummary{
			ID:        d.Room.ID,
			Slug:      d.Room.Slug,
			Name:      d.Room.Name,
			Price:     d.Room.Price,
			MaxGuests: d.Room.MaxGuests,
		}
	}

	if d.Confirmation != nil {
		r.Confirmation = &ConfirmationResponse{
			Number:      d.Confirmation.Number,
			ConfirmedAt: timezone.Format(d.Confirmation.ConfirmedAt, constant.DateFormat),
		}
	}

	r.Issues = machine.GateIssues(&d, d.Step)
	if r.Issues == nil {
		r.Issues = []string{}
	}

	r.CanProceed = len(r.Issues) == 0 && machine.Editable(d.Status)
}

// SelectableRoomsResponse lists the rooms that can hold the draft's party.
type SelectableRoomsResponse struct {
	Guests int `json:"guests"`
	roomDto.GetRoomsResponse
}

// StartResponse is returned once per draft; the session token is required
// for every later call on it.
type StartResponse struct {
	Draft   DraftResponse     `json:"draft"`
	Session *jwt.SessionToken `json:"session"`
}

type ReceiptResponse struct {
	Number      string          `json:"number"`
	ConfirmedAt string          `json:"confirmed_at"`
	CheckIn     string          `json:"check_in"`
	CheckOut    string          `json:"check_out"`
	Guests      model.Guests    `json:"guests"`
	RoomID      string          `json:"room_id"`
	RoomName    string          `json:"room_name"`
	GuestName   string          `json:"guest_name"`
	Email       string          `json:"email"`
	Pricing     PricingResponse `json:"pricing"`
}

func (r *ReceiptResponse) FromModel(m model.Receipt, currency string) {
	r.Number = m.Number
	r.ConfirmedAt = timezone.Format(m.ConfirmedAt, constant.DateFormat)
	r.CheckIn = m.CheckIn.Format(constant.DayFormat)
	r.CheckOut = m.CheckOut.Format(constant.DayFormat)
	r.Guests = m.Guests
	r.RoomID = m.RoomID
	r.RoomName = m.RoomName
	r.GuestName = strings.TrimSpace(m.Details.FirstName + " " + m.Details.LastName)
	r.Email = m.Details.Email
	r.Pricing.FromModel(m.Pricing, currency)
}
