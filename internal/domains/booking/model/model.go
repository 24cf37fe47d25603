package model

import (
	"slices"
	"time"

	roomModel "riverside/internal/domains/room/model"
)

const (
	EntityName        = "booking"
	ReceiptEntityName = "receipt"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusLoading   Status = "loading"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
)

type Step int

const (
	StepDatesGuests Step = iota + 1
	StepSelectRoom
	StepDetails
	StepConfirmation
)

const (
	FirstStep = StepDatesGuests
	LastStep  = StepConfirmation
)

var stepTitles = map[Step]string{
	StepDatesGuests:  "Dates & Guests",
	StepSelectRoom:   "Select Room",
	StepDetails:      "Your Details",
	StepConfirmation: "Confirmation",
}

// Steps lists the wizard steps in order.
var Steps = []Step{StepDatesGuests, StepSelectRoom, StepDetails, StepConfirmation}

func (s Step) Title() string {
	return stepTitles[s]
}

type Guests struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

func (g Guests) Total() int {
	return g.Adults + g.Children
}

// GuestDetails is the contact information collected at the details step.
type GuestDetails struct {
	FirstName       string `json:"first_name"       validate:"required"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"            validate:"required,email"`
	Phone           string `json:"phone"`
	SpecialRequests string `json:"special_requests"`
}

// LineItem is one extra's contribution to the stay.
type LineItem struct {
	ExtraID   string              `json:"extra_id"`
	Name      string              `json:"name"`
	PriceType roomModel.PriceType `json:"price_type"`
	Price     int64               `json:"price"`
	Amount    int64               `json:"amount"`
}

// Pricing is derived from dates, room and extras and never set on its own.
type Pricing struct {
	Nights        int        `json:"nights"`
	PricePerNight int64      `json:"price_per_night"`
	RoomSubtotal  int64      `json:"room_subtotal"`
	Extras        []LineItem `json:"extras"`
	ExtrasTotal   int64      `json:"extras_total"`
	TaxableBase   int64      `json:"taxable_base"`
	Taxes         int64      `json:"taxes"`
	ServiceFee    int64      `json:"service_fee"`
	Total         int64      `json:"total"`
	RoomSelected  bool       `json:"room_selected"`
}

type Confirmation struct {
	Number      string    `json:"number"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

// Draft is the wizard state. Reference is the confirmation number reserved
// by the first confirm attempt; retries reuse it and Reset clears it.
type Draft struct {
	ID            string
	CheckIn       *time.Time
	CheckOut      *time.Time
	Guests        Guests
	Room          *roomModel.Room
	Extras        []roomModel.Extra
	Details       GuestDetails
	Step          Step
	Status        Status
	Pricing       Pricing
	Confirmation  *Confirmation
	Reference     string
	FailureReason string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewDraft is the initial state of the wizard.
func NewDraft(id string, now time.Time) Draft {
	return Draft{
		ID:        id,
		Guests:    Guests{Adults: 1},
		Step:      FirstStep,
		Status:    StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (d *Draft) HasExtra(id string) bool {
	return slices.ContainsFunc(d.Extras, func(e roomModel.Extra) bool { return e.ID == id })
}

// Clone copies the draft so the result shares no mutable state with d.
func (d *Draft) Clone() Draft {
	res := *d

	if d.CheckIn != nil {
		checkIn := *d.CheckIn
		res.CheckIn = &checkIn
	}

	if d.CheckOut != nil {
		checkOut := *d.CheckOut
		res.CheckOut = &checkOut
	}

	if d.Room != nil {
		room := *d.Room
		res.Room = &room
	}

	if d.Confirmation != nil {
		confirmation := *d.Confirmation
		res.Confirmation = &confirmation
	}

	res.Extras = slices.Clone(d.Extras)
	res.Pricing.Extras = slices.Clone(d.Pricing.Extras)

	return res
}

type Action string

const (
	ActionSetDates    Action = "set_dates"
	ActionSetGuests   Action = "set_guests"
	ActionSelectRoom  Action = "select_room"
	ActionClearRoom   Action = "clear_room"
	ActionAddExtra    Action = "add_extra"
	ActionRemoveExtra Action = "remove_extra"
	ActionSetDetails  Action = "set_details"
	ActionNextStep    Action = "next_step"
	ActionPrevStep    Action = "prev_step"
	ActionConfirm     Action = "confirm"
	ActionConfirmed   Action = "confirmed"
	ActionFailed      Action = "confirm_failed"
	ActionReset       Action = "reset"
)

// Event describes an applied change and the draft it produced.
type Event struct {
	Action Action
	Draft  Draft
}

// Receipt is what stays retrievable by confirmation number after the draft
// itself has expired.
type Receipt struct {
	Number      string       `json:"number"`
	DraftID     string       `json:"draft_id"`
	ConfirmedAt time.Time    `json:"confirmed_at"`
	CheckIn     time.Time    `json:"check_in"`
	CheckOut    time.Time    `json:"check_out"`
	Guests      Guests       `json:"guests"`
	RoomID      string       `json:"room_id"`
	RoomName    string       `json:"room_name"`
	Details     GuestDetails `json:"details"`
	Pricing     Pricing      `json:"pricing"`
}

// NewReceipt reports false unless d is confirmed.
func NewReceipt(d *Draft) (Receipt, bool) {
	if d.Status != StatusConfirmed || d.Confirmation == nil || d.Room == nil || d.CheckIn == nil || d.CheckOut == nil {
		return Receipt{}, false
	}

	return Receipt{
		Number:      d.Confirmation.Number,
		DraftID:     d.ID,
		ConfirmedAt: d.Confirmation.ConfirmedAt,
		CheckIn:     *d.CheckIn,
		CheckOut:    *d.CheckOut,
		Guests:      d.Guests,
		RoomID:      d.Room.ID,
		RoomName:    d.Room.Name,
		Details:     d.Details,
		Pricing:     d.Pricing,
	}, true
}
