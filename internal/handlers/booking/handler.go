package booking

import (
	"context"
	"net/http"

	"riverside/infras/otel"
	"riverside/internal/domains/booking/model/dto"
	"riverside/internal/domains/booking/service"
	"riverside/shared/constant"
	"riverside/shared/validator"
	"riverside/transport/http/middleware"
	"riverside/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const requestParamNumber = "number"

type Handler struct {
	service service.Booking
	session middleware.Session
	otel    otel.Otel
}

func New(service service.Booking, session middleware.Session, otel otel.Otel) Handler {
	return Handler{
		service: service,
		session: session,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.Start)
		routerGroup.Get("/steps", handler.GetSteps)

		routerGroup.Route("/{id}", func(draft chi.Router) {
			draft.Use(handler.session.Session)

			draft.Get("/", handler.Get)
			draft.Delete("/", handler.Discard)
			draft.Put("/dates", handler.SetDates)
			draft.Put("/guests", handler.SetGuests)
			draft.Get("/rooms", handler.GetSelectableRooms)
			draft.Put("/room", handler.SelectRoom)
			draft.Delete("/room", handler.ClearRoom)
			draft.Post("/extras", handler.AddExtra)
			draft.Delete("/extras/{extraID}", handler.RemoveExtra)
			draft.Put("/details", handler.SetDetails)
			draft.Post("/next", handler.Next)
			draft.Post("/prev", handler.Prev)
			draft.Post("/confirm", handler.Confirm)
			draft.Post("/reset", handler.Reset)
		})
	})

	router.Get("/confirmations/{number}", handler.GetConfirmation)
}

// Start opens a booking draft.
// @Summary Start a booking
// @Description Open a new booking draft. The returned session token must be sent as a bearer token on every call for this draft.
// @Tags Booking
// @Produce json
// @Success 201 {object} response.Data[dto.StartResponse] "Draft and session token"
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
func (handler *Handler) Start(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Start")
	defer scope.End()

	res, err := handler.service.Start(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to start booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking draft started")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetSteps lists the wizard steps.
// @Summary List booking steps
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[[]dto.StepResponse] "Steps in order"
// @Router /v1/bookings/steps [get]
func (handler *Handler) GetSteps(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSteps")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, handler.service.Steps(ctx))
}

// Get returns the current draft.
// @Summary Get a booking draft
// @Tags Booking
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Data[dto.DraftResponse] "Draft"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) Get(w http.ResponseWriter, r *http.Request) {
	handler.respond(w, r, "Get", handler.service.Get)
}

// Discard drops the draft.
// @Summary Discard a booking draft
// @Tags Booking
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Message "Draft discarded"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) Discard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Discard")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Discard(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("draft_id", id).Msg("failed to discard booking")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking discarded")
}

// SetDates records the stay dates.
// @Summary Set stay dates
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body dto.SetDatesRequest true "Dates as YYYY-MM-DD"
// @Success 200 {object} response.Data[dto.DraftResponse] "Draft, applied is false when the range was rejected"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/dates [put]
// @Security BearerAuth
func (handler *Handler) SetDates(w http.ResponseWriter, r *http.Request) {
	decodeAndRespond(handler, w, r, "SetDates", handler.service.SetDates)
}

// SetGuests records the party size.
// @Summary Set guests
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body dto.SetGuestsRequest true "Adults and children"
// @Success 200 {object} response.Data[dto.DraftResponse] "Draft, applied is false when the counts were rejected"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/guests [put]
// @Security BearerAuth
func (handler *Handler) SetGuests(w http.ResponseWriter, r *http.Request) {
	decodeAndRespond(handler, w, r, "SetGuests", handler.service.SetGuests)
}

// GetSelectableRooms lists the rooms that can hold the draft's party.
// @Summary List selectable rooms
// @Tags Booking
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Data[dto.SelectableRoomsResponse] "Available rooms with enough capacity"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/rooms [get]
// @Security BearerAuth
func (handler *Handler) GetSelectableRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSelectableRooms")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	rooms, err := handler.service.SelectableRooms(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("draft_id", id).Msg("failed to get selectable rooms")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}

// SelectRoom picks a room by id or slug.
// @Summary Select a room
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body dto.SelectRoomRequest true "Room id or slug"
// @Success 200 {object} response.Data[dto.DraftResponse] "Draft"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/room [put]
// @Security BearerAuth
func (handler *Handler) SelectRoom(w http.ResponseWriter, r *http.Request) {
	decodeAndRespond(handler, w, r, "SelectRoom", handler.service.SelectRoom)
}

// ClearRoom removes the selected room.
// @Summary Clear the selected room
// @Tags Booking
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Data[dto.DraftResponse] "Draft"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/room [delete]
// @Security BearerAuth
func (handler *Handler) ClearRoom(w http.ResponseWriter, r *http.Request) {
	handler.respond(w, r, "ClearRoom", handler.service.ClearRoom)
}

// AddExtra adds an add-on service.
// @Summary Add an extra
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body dto.AddExtraRequest true "Extra id"
// @Success 200 {object} response.Data[dto.DraftResponse] "Draft, applied is false when the extra was already added"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/extras [post]
// @Security BearerAuth
func (handler *Handler) AddExtra(w http.ResponseWriter, r *http.Request) {
	decodeAndRespond(handler, w, r, "AddExtra", handler.service.AddExtra)
}

// RemoveExtra removes an add-on service.
// @Summary Remove an extra
// @Tags Booking
// @Produce json
// @Param id path string true "Draft ID"
// @Param extraID path string true "Extra ID"
// @Success 200 {object} response.Data[dto.DraftResponse] "Draft, applied is false when the extra was not on the draft"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/extras/{extraID} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveExtra(w http.ResponseWriter, r *http.Request) {
	extraID := chi.URLParam(r, constant.RequestParamExtraID)

	handler.respond(w, r, "RemoveExtra", func(ctx context.Context, id string) (dto.DraftResponse, error) {
		return handler.service.RemoveExtra(ctx, id, extraID)
	})
}

// SetDetails records the guest's contact details.
// @Summary Set guest details
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body dto.SetDetailsRequest true "Guest details"
// @Success 200 {object} response.Data[dto.DraftResponse] "Draft"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/details [put]
// @Security BearerAuth
func (handler *Handler) SetDetails(w http.ResponseWriter, r *http.Request) {
	decodeAndRespond(handler, w, r, "SetDetails", handler.service.SetDetails)
}

// Next moves to the following step when the current one is complete.
// @Summary Next step
// @Tags Booking
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Data[dto.DraftResponse] "Draft, issues list what blocks the step"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/next [post]
// @Security BearerAuth
func (handler *Handler) Next(w http.ResponseWriter, r *http.Request) {
	handler.respond(w, r, "Next", handler.service.Next)
}

// Prev moves back one step.
// @Summary Previous step
// @Tags Booking
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Data[dto.DraftResponse] "Draft"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/prev [post]
// @Security BearerAuth
func (handler *Handler) Prev(w http.ResponseWriter, r *http.Request) {
	handler.respond(w, r, "Prev", handler.service.Prev)
}

// Confirm submits the booking from the confirmation step.
// @Summary Confirm the booking
// @Description Blocks until the booking is confirmed or fails. A failed booking stays on the confirmation step and may be retried.
// @Tags Booking
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Data[dto.DraftResponse] "Draft with confirmation or failure reason"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/confirm [post]
// @Security BearerAuth
func (handler *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	handler.respond(w, r, "Confirm", handler.service.Confirm)
}

// Reset starts the draft over under the same id.
// @Summary Reset the booking
// @Tags Booking
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Data[dto.DraftResponse] "Fresh draft"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/reset [post]
// @Security BearerAuth
func (handler *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	handler.respond(w, r, "Reset", handler.service.Reset)
}

// GetConfirmation looks up a confirmed booking.
// @Summary Get a confirmation
// @Tags Booking
// @Produce json
// @Param number path string true "Confirmation number"
// @Success 200 {object} response.Data[dto.ReceiptResponse] "Receipt"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/confirmations/{number} [get]
func (handler *Handler) GetConfirmation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetConfirmation")
	defer scope.End()

	number := chi.URLParam(r, requestParamNumber)

	receipt, err := handler.service.GetReceipt(ctx, number)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("number", number).Msg("failed to get confirmation")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, receipt)
}

func (handler *Handler) respond(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	fn func(ctx context.Context, id string) (dto.DraftResponse, error),
) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+op)
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	draft, err := fn(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("draft_id", id).Str("op", op).Msg("failed to update booking")

		response.WithError(w, err)

		return
	}

	scope.SetAttribute("booking.applied", draft.Applied)

	response.WithJSON(w, http.StatusOK, draft)
}

func decodeAndRespond[T any](
	handler *Handler,
	w http.ResponseWriter,
	r *http.Request,
	op string,
	fn func(ctx context.Context, id string, req T) (dto.DraftResponse, error),
) {
	var req T

	if err := validator.Validate(r.Body, &req); err != nil {
		log.Error().Err(err).Str("op", op).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	handler.respond(w, r, op, func(ctx context.Context, id string) (dto.DraftResponse, error) {
		return fn(ctx, id, req)
	})
}
