package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"riverside/config"
	"riverside/infras/jwt"
	"riverside/infras/otel"
	"riverside/internal/domains/booking/confirmer"
	"riverside/internal/domains/booking/machine"
	"riverside/internal/domains/booking/model"
	"riverside/internal/domains/booking/model/dto"
	"riverside/internal/domains/booking/repository"
	roomRepo "riverside/internal/domains/room/repository"
	"riverside/shared/constant"
	"riverside/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	otelAttributeBookingID = "booking.id"
	otelAttributeApplied   = "booking.applied"
	otelAttributeStatus    = "booking.status"
	otelAttributeStep      = "booking.step"
)

type Booking interface {
	Start(ctx context.Context) (dto.StartResponse, error)
	Get(ctx context.Context, id string) (dto.DraftResponse, error)
	SetDates(ctx context.Context, id string, req dto.SetDatesRequest) (dto.DraftResponse, error)
	SetGuests(ctx context.Context, id string, req dto.SetGuestsRequest) (dto.DraftResponse, error)
	SelectRoom(ctx context.Context, id string, req dto.SelectRoomRequest) (dto.DraftResponse, error)
	ClearRoom(ctx context.Context, id string) (dto.DraftResponse, error)
	AddExtra(ctx context.Context, id string, req dto.AddExtraRequest) (dto.DraftResponse, error)
	RemoveExtra(ctx context.Context, id, extraID string) (dto.DraftResponse, error)
	SetDetails(ctx context.Context, id string, req dto.SetDetailsRequest) (dto.DraftResponse, error)
	Next(ctx context.Context, id string) (dto.DraftResponse, error)
	Prev(ctx context.Context, id string) (dto.DraftResponse, error)
	Confirm(ctx context.Context, id string) (dto.DraftResponse, error)
	Reset(ctx context.Context, id string) (dto.DraftResponse, error)
	Discard(ctx context.Context, id string) error
	SelectableRooms(ctx context.Context, id string) (dto.SelectableRoomsResponse, error)
	Steps(ctx context.Context) []dto.StepResponse
	GetReceipt(ctx context.Context, number string) (dto.ReceiptResponse, error)
}

type serviceImpl struct {
	drafts    repository.Drafts
	receipts  repository.Receipts
	catalog   roomRepo.Catalog
	confirmer confirmer.Confirmer
	jwt       jwt.JWT
	cfg       *config.Config
	otel      otel.Otel
}

func New(
	drafts repository.Drafts,
	receipts repository.Receipts,
	catalog roomRepo.Catalog,
	confirmer confirmer.Confirmer,
	jwt jwt.JWT,
	cfg *config.Config,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		drafts:    drafts,
		receipts:  receipts,
		catalog:   catalog,
		confirmer: confirmer,
		jwt:       jwt,
		cfg:       cfg,
		otel:      otel,
	}
}

// Start opens a new draft and the session token that owns it.
func (s *serviceImpl) Start(ctx context.Context) (res dto.StartResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Start")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	id := uuid.NewString()
	scope.SetAttribute(otelAttributeBookingID, id)

	m := machine.New(id, s.confirmer, machine.WithListener(s.listen))
	s.drafts.Save(m)

	session, err := s.jwt.Issue(id)
	if err != nil {
		s.drafts.Delete(id)
		log.Error().Err(err).Str("draft_id", id).Msg("failed to issue session token")

		return res, fmt.Errorf("failed to issue session token: %w", err)
	}

	log.Info().Str("draft_id", id).Int("drafts", s.drafts.Len()).Msg("Booking draft started")

	res.Draft.FromModel(m.Snapshot(), true, s.cfg.App.Currency)
	res.Session = session

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (dto.DraftResponse, error) {
	return s.apply(ctx, "Get", id, func(m *machine.Machine) (model.Draft, bool) {
		return m.Snapshot(), false
	})
}

func (s *serviceImpl) SetDates(ctx context.Context, id string, req dto.SetDatesRequest) (dto.DraftResponse, error) {
	checkIn, checkOut, err := req.ToDates()
	if err != nil {
		return dto.DraftResponse{}, err
	}

	return s.apply(ctx, "SetDates", id, func(m *machine.Machine) (model.Draft, bool) {
		return m.SetDates(checkIn, checkOut)
	})
}

func (s *serviceImpl) SetGuests(ctx context.Context, id string, req dto.SetGuestsRequest) (dto.DraftResponse, error) {
	return s.apply(ctx, "SetGuests", id, func(m *machine.Machine) (model.Draft, bool) {
		return m.SetGuests(req.Adults, req.Children)
	})
}

// SelectRoom accepts a room id or slug.
func (s *serviceImpl) SelectRoom(ctx context.Context, id string, req dto.SelectRoomRequest) (dto.DraftResponse, error) {
	room, ok := s.catalog.FindByID(req.Room)
	if !ok {
		room, ok = s.catalog.FindBySlug(req.Room)
	}

	if !ok {
		return dto.DraftResponse{}, failure.RoomNotFound
	}

	return s.apply(ctx, "SelectRoom", id, func(m *machine.Machine) (model.Draft, bool) {
		return m.SelectRoom(room)
	})
}

func (s *serviceImpl) ClearRoom(ctx context.Context, id string) (dto.DraftResponse, error) {
	return s.apply(ctx, "ClearRoom", id, (*machine.Machine).ClearRoom)
}

func (s *serviceImpl) AddExtra(ctx context.Context, id string, req dto.AddExtraRequest) (dto.DraftResponse, error) {
	extra, ok := s.catalog.FindExtra(req.ExtraID)
	if !ok {
		return dto.DraftResponse{}, failure.ExtraNotFound
	}

	return s.apply(ctx, "AddExtra", id, func(m *machine.Machine) (model.Draft, bool) {
		return m.AddExtra(extra)
	})
}

// RemoveExtra of an extra that is not on the draft reports not applied.
func (s *serviceImpl) RemoveExtra(ctx context.Context, id, extraID string) (dto.DraftResponse, error) {
	return s.apply(ctx, "RemoveExtra", id, func(m *machine.Machine) (model.Draft, bool) {
		return m.RemoveExtra(extraID)
	})
}

func (s *serviceImpl) SetDetails(ctx context.Context, id string, req dto.SetDetailsRequest) (dto.DraftResponse, error) {
	details := req.ToModel()

	return s.apply(ctx, "SetDetails", id, func(m *machine.Machine) (model.Draft, bool) {
		return m.SetDetails(details)
	})
}

func (s *serviceImpl) Next(ctx context.Context, id string) (dto.DraftResponse, error) {
	return s.apply(ctx, "Next", id, (*machine.Machine).NextStep)
}

func (s *serviceImpl) Prev(ctx context.Context, id string) (dto.DraftResponse, error) {
	return s.apply(ctx, "Prev", id, (*machine.Machine).PrevStep)
}

// Confirm runs the confirmation to completion even if the caller goes away;
// the confirmer's own timeout bounds it. A rejected confirmation is not an
// error here: the draft comes back failed with its reason.
func (s *serviceImpl) Confirm(ctx context.Context, id string) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelAttributeBookingID, id)

	m, err := s.find(id)
	if err != nil {
		return res, err
	}

	d, applied, confirmErr := m.Confirm(context.WithoutCancel(ctx))
	if confirmErr != nil {
		log.Warn().Err(confirmErr).Str("draft_id", id).Msg("Booking confirmation failed")
		scope.TraceError(confirmErr)
	}

	if applied && d.Status == model.StatusConfirmed {
		s.saveReceipt(ctx, &d)
	}

	scope.SetAttribute(otelAttributeApplied, applied)
	scope.SetAttribute(otelAttributeStatus, string(d.Status))

	res.FromModel(d, applied, s.cfg.App.Currency)

	return res, nil
}

// saveReceipt keeps the confirmation retrievable after the draft expires.
// The booking stands even when the receipt cannot be stored.
func (s *serviceImpl) saveReceipt(ctx context.Context, d *model.Draft) {
	receipt, ok := model.NewReceipt(d)
	if !ok {
		return
	}

	if err := s.receipts.Save(context.WithoutCancel(ctx), receipt); err != nil {
		log.Warn().Err(err).Str("number", receipt.Number).Msg("failed to store booking receipt")
	}
}

func (s *serviceImpl) Reset(ctx context.Context, id string) (dto.DraftResponse, error) {
	return s.apply(ctx, "Reset", id, (*machine.Machine).Reset)
}

func (s *serviceImpl) Discard(ctx context.Context, id string) (err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Discard")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelAttributeBookingID, id)

	found, err := s.drafts.Discard(id)
	if !found {
		return failure.BookingNotFound
	}

	if errors.Is(err, repository.ErrDraftBusy) {
		return failure.Conflict(err.Error())
	}

	log.Info().Str("draft_id", id).Msg("Booking draft discarded")

	return nil
}

// SelectableRooms lists the rooms that fit the draft's party and can be booked.
func (s *serviceImpl) SelectableRooms(ctx context.Context, id string) (res dto.SelectableRoomsResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SelectableRooms")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelAttributeBookingID, id)

	m, err := s.find(id)
	if err != nil {
		return res, err
	}

	d := m.Snapshot()
	res.Guests = d.Guests.Total()
	res.FromModels(s.catalog.Selectable(res.Guests))

	return res, nil
}

func (s *serviceImpl) Steps(ctx context.Context) []dto.StepResponse {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Steps")
	defer scope.End()

	return dto.StepsFromModel(model.Steps)
}

func (s *serviceImpl) GetReceipt(ctx context.Context, number string) (res dto.ReceiptResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetReceipt")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	receipt, err := s.receipts.Get(ctx, number)
	if err != nil {
		if failure.GetCode(err) != http.StatusNotFound {
			log.Error().Err(err).Str("number", number).Msg("failed to get booking receipt")
		}

		return res, err
	}

	res.FromModel(receipt, s.cfg.App.Currency)

	return res, nil
}

func (s *serviceImpl) apply(
	ctx context.Context,
	op, id string,
	fn func(m *machine.Machine) (model.Draft, bool),
) (res dto.DraftResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+"."+op)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelAttributeBookingID, id)

	m, err := s.find(id)
	if err != nil {
		return res, err
	}

	d, applied := fn(m)

	scope.SetAttribute(otelAttributeApplied, applied)
	scope.SetAttribute(otelAttributeStep, int(d.Step))

	res.FromModel(d, applied, s.cfg.App.Currency)

	return res, nil
}

func (s *serviceImpl) find(id string) (*machine.Machine, error) {
	m, ok := s.drafts.Get(id)
	if !ok {
		return nil, failure.BookingNotFound
	}

	return m, nil
}

// listen records every applied change as a span of its own.
func (s *serviceImpl) listen(event model.Event) {
	_, scope := s.otel.NewScope(context.Background(), constant.OtelEventScopeName, constant.OtelEventScopeName+".booking."+string(event.Action))
	defer scope.End()

	scope.SetAttributes(map[string]any{
		otelAttributeBookingID: event.Draft.ID,
		otelAttributeStatus:    string(event.Draft.Status),
		otelAttributeStep:      int(event.Draft.Step),
	})

	logEvent := log.Debug()

	switch event.Action {
	case model.ActionConfirmed:
		logEvent = log.Info().Str("number", event.Draft.Confirmation.Number).Int64("total", event.Draft.Pricing.Total)
	case model.ActionFailed:
		logEvent = log.Warn().Str("reason", event.Draft.FailureReason)
	}

	logEvent.
		Str("draft_id", event.Draft.ID).
		Str("action", string(event.Action)).
		Int("step", int(event.Draft.Step)).
		Str("status", string(event.Draft.Status)).
		Msg("Booking draft changed")
}
