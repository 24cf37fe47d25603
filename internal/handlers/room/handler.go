package room

import (
	"net/http"

	"riverside/infras/otel"
	"riverside/internal/domains/room/model/dto"
	"riverside/internal/domains/room/service"
	"riverside/shared/constant"
	"riverside/shared/validator"
	"riverside/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const rateSheetFilename = "riverside-rates.xlsx"

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/categories", handler.GetCategories)
		routerGroup.Get("/amenities", handler.GetAmenities)
		routerGroup.Get("/rates.xlsx", handler.GetRateSheet)
		routerGroup.Get("/{slug}", handler.GetRoom)
	})

	router.Get("/extras", handler.GetExtras)
}

// GetRooms lists catalog rooms.
// @Summary List rooms
// @Description List catalog rooms, optionally filtered by category, capacity, price range and amenities, and sorted.
// @Tags Room
// @Produce json
// @Param category query string false "Category" Enums(all, standard, deluxe, suite, penthouse)
// @Param min_guests query integer false "Minimum capacity"
// @Param min_price query integer false "Minimum nightly price"
// @Param max_price query integer false "Maximum nightly price"
// @Param amenities query string false "Comma separated amenity keys, all required"
// @Param available query boolean false "Only available rooms"
// @Param featured query boolean false "Only featured rooms"
// @Param sort query string false "Sort key" Enums(price-low, price-high, size, guests)
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "List of rooms"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	query := dto.RoomQuery{}
	query.FromRequest(r)

	if err := validator.ValidateStruct(&query); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate room query")

		response.WithError(w, err)

		return
	}

	rooms, err := handler.service.GetAll(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rooms retrieved successfully")

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoom retrieves a room by its slug.
// @Summary Get a room
// @Description Retrieve a catalog room by its slug.
// @Tags Room
// @Produce json
// @Param slug path string true "Room slug"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{slug} [get]
func (handler *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoom")
	defer scope.End()

	slug := chi.URLParam(r, constant.RequestParamSlug)

	room, err := handler.service.Get(ctx, slug)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("slug", slug).Msg("failed to get room")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// GetCategories lists the room categories.
// @Summary List room categories
// @Tags Room
// @Produce json
// @Success 200 {object} response.Data[[]dto.CategoryResponse] "Categories, all first"
// @Router /v1/rooms/categories [get]
func (handler *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCategories")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, handler.service.Categories(ctx))
}

// GetAmenities lists the amenity vocabulary.
// @Summary List amenities
// @Tags Room
// @Produce json
// @Success 200 {object} response.Data[[]dto.AmenityResponse] "Amenities with labels"
// @Router /v1/rooms/amenities [get]
func (handler *Handler) GetAmenities(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAmenities")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, handler.service.Amenities(ctx))
}

// GetExtras lists the optional add-on services.
// @Summary List extras
// @Tags Room
// @Produce json
// @Success 200 {object} response.Data[[]dto.ExtraResponse] "Extras"
// @Router /v1/extras [get]
func (handler *Handler) GetExtras(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExtras")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, handler.service.Extras(ctx))
}

// GetRateSheet downloads the nightly rates as a spreadsheet.
// @Summary Download rate sheet
// @Tags Room
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "Rate sheet"
// @Failure 500 {object} response.Error
// @Router /v1/rooms/rates.xlsx [get]
func (handler *Handler) GetRateSheet(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRateSheet")
	defer scope.End()

	sheet, err := handler.service.RateSheet(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build rate sheet")

		response.WithError(w, err)

		return
	}

	response.WithFile(w, constant.ContentTypeXLSX, rateSheetFilename, sheet)
}
