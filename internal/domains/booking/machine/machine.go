package machine

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"riverside/internal/domains/booking/confirmer"
	"riverside/internal/domains/booking/model"
	"riverside/internal/domains/booking/pricing"
	roomModel "riverside/internal/domains/room/model"
	"riverside/shared/timezone"
)

// ErrConfirmerPanic is reported when the confirmation backend panics.
var ErrConfirmerPanic = errors.New("confirmation backend crashed")

// Listener receives every applied change. It runs after the draft lock is
// released and may call back into the machine.
type Listener func(event model.Event)

type Option func(m *Machine)

func WithListener(listener Listener) Option {
	return func(m *Machine) {
		m.listener = listener
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		m.now = now
	}
}

// Machine owns one booking draft. Actions are serialized. A rejected action
// leaves the draft untouched and reports applied=false; it is not an error.
type Machine struct {
	mu        sync.Mutex
	id        string
	draft     model.Draft
	confirmer confirmer.Confirmer
	listener  Listener
	now       func() time.Time
	discarded bool
}

func New(id string, c confirmer.Confirmer, opts ...Option) *Machine {
	m := &Machine{
		id:        id,
		confirmer: c,
		now:       timezone.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.draft = model.NewDraft(id, m.now())

	return m
}

func (m *Machine) ID() string {
	return m.id
}

// Snapshot returns a copy of the current draft.
func (m *Machine) Snapshot() model.Draft {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.draft.Clone()
}

// SetDates records the stay. Either date may be nil while the guest is still
// choosing; a complete pair must span at least one night.
func (m *Machine) SetDates(checkIn, checkOut *time.Time) (model.Draft, bool) {
	return m.mutate(model.ActionSetDates, func(d *model.Draft) bool {
		if checkIn != nil && checkOut != nil && pricing.Nights(*checkIn, *checkOut) <= 0 {
			return false
		}

		d.CheckIn = dateOnly(checkIn)
		d.CheckOut = dateOnly(checkOut)

		return true
	})
}

func (m *Machine) SetGuests(adults, children int) (model.Draft, bool) {
	return m.mutate(model.ActionSetGuests, func(d *model.Draft) bool {
		if adults < 1 || children < 0 {
			return false
		}

		d.Guests = model.Guests{Adults: adults, Children: children}

		return true
	})
}

// SelectRoom always records the choice; capacity and availability are
// reported by the room step gate.
func (m *Machine) SelectRoom(room roomModel.Room) (model.Draft, bool) {
	return m.mutate(model.ActionSelectRoom, func(d *model.Draft) bool {
		d.Room = &room

		return true
	})
}

func (m *Machine) ClearRoom() (model.Draft, bool) {
	return m.mutate(model.ActionClearRoom, func(d *model.Draft) bool {
		if d.Room == nil {
			return false
		}

		d.Room = nil

		return true
	})
}

func (m *Machine) AddExtra(extra roomModel.Extra) (model.Draft, bool) {
	return m.mutate(model.ActionAddExtra, func(d *model.Draft) bool {
		if d.HasExtra(extra.ID) {
			return false
		}

		d.Extras = append(d.Extras, extra)

		return true
	})
}

func (m *Machine) RemoveExtra(id string) (model.Draft, bool) {
	return m.mutate(model.ActionRemoveExtra, func(d *model.Draft) bool {
		i := slices.IndexFunc(d.Extras, func(e roomModel.Extra) bool { return e.ID == id })
		if i < 0 {
			return false
		}

		d.Extras = slices.Delete(d.Extras, i, i+1)

		return true
	})
}

func (m *Machine) SetDetails(details model.GuestDetails) (model.Draft, bool) {
	return m.mutate(model.ActionSetDetails, func(d *model.Draft) bool {
		d.Details = details

		return true
	})
}

func (m *Machine) NextStep() (model.Draft, bool) {
	return m.mutate(model.ActionNextStep, func(d *model.Draft) bool {
		if d.Step >= model.LastStep || !CanProceed(d) {
			return false
		}

		d.Step++

		return true
	})
}

// PrevStep moves back one step. Entered data is kept.
func (m *Machine) PrevStep() (model.Draft, bool) {
	return m.mutate(model.ActionPrevStep, func(d *model.Draft) bool {
		if d.Step <= model.FirstStep {
			return false
		}

		d.Step--

		return true
	})
}

// Confirm submits the draft from the last step. The lock is not held while
// the confirmer runs, so concurrent actions see the loading status and are
// rejected. The returned error is the confirmer's; the draft is then failed
// and may be retried.
func (m *Machine) Confirm(ctx context.Context) (model.Draft, bool, error) {
	m.mu.Lock()

	if m.discarded || m.draft.Step != model.LastStep || !Editable(m.draft.Status) || !CanProceed(&m.draft) {
		res := m.draft.Clone()
		m.mu.Unlock()

		return res, false, nil
	}

	// Retries reuse the number so a backend that saw a timed out attempt
	// can tell the retry is the same booking.
	if m.draft.Reference == "" {
		m.draft.Reference = confirmer.NewNumber(m.now())
	}

	m.draft.Status = model.StatusLoading
	m.draft.FailureReason = ""
	m.draft.UpdatedAt = m.now()
	pending := m.draft.Clone()
	m.mu.Unlock()

	m.emit(model.ActionConfirm, pending)

	confirmation, err := m.settle(ctx, pending)

	m.mu.Lock()

	action := model.ActionConfirmed
	if err != nil {
		action = model.ActionFailed
		m.draft.Status = model.StatusFailed
		m.draft.FailureReason = err.Error()
	} else {
		m.draft.Status = model.StatusConfirmed
		m.draft.Confirmation = &confirmation
	}

	m.draft.UpdatedAt = m.now()
	res := m.draft.Clone()
	m.mu.Unlock()

	m.emit(action, res)

	return res, true, err
}

// settle runs the confirmer. A panic fails the draft instead of leaving it
// loading forever.
func (m *Machine) settle(ctx context.Context, draft model.Draft) (res model.Confirmation, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = model.Confirmation{}, fmt.Errorf("%w: %v", ErrConfirmerPanic, r)
		}
	}()

	return m.confirmer.Confirm(ctx, draft)
}

// Discard closes the machine for good: every later action is rejected. It
// fails while a confirmation is running.
func (m *Machine) Discard() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.draft.Status == model.StatusLoading {
		return false
	}

	m.discarded = true

	return true
}

// Reset returns to the initial draft under the same id. It is the only way
// out of the confirmed status and is rejected while a confirmation is running.
func (m *Machine) Reset() (model.Draft, bool) {
	m.mu.Lock()

	if m.discarded || m.draft.Status == model.StatusLoading {
		res := m.draft.Clone()
		m.mu.Unlock()

		return res, false
	}

	m.draft = model.NewDraft(m.id, m.now())
	res := m.draft.Clone()
	m.mu.Unlock()

	m.emit(model.ActionReset, res)

	return res, true
}

// mutate applies fn when the draft accepts edits and fn reports a change,
// then recomputes pricing before the lock is released.
func (m *Machine) mutate(action model.Action, fn func(d *model.Draft) bool) (model.Draft, bool) {
	m.mu.Lock()

	if m.discarded || !Editable(m.draft.Status) || !fn(&m.draft) {
		res := m.draft.Clone()
		m.mu.Unlock()

		return res, false
	}

	// An edit after a failed confirmation makes the failure stale.
	if m.draft.Status == model.StatusFailed {
		m.draft.Status = model.StatusDraft
		m.draft.FailureReason = ""
	}

	m.draft.Pricing = pricing.Summarize(&m.draft)
	m.draft.UpdatedAt = m.now()
	res := m.draft.Clone()
	m.mu.Unlock()

	m.emit(action, res)

	return res, true
}

func (m *Machine) emit(action model.Action, draft model.Draft) {
	if m.listener != nil {
		m.listener(model.Event{Action: action, Draft: draft})
	}
}

// Editable reports whether a draft in status accepts actions.
func Editable(status model.Status) bool {
	return status == model.StatusDraft || status == model.StatusFailed
}

func dateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	y, mo, d := t.Date()
	res := time.Date(y, mo, d, 0, 0, 0, 0, t.Location())

	return &res
}
