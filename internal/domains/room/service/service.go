package service

import (
	"context"
	"fmt"

	"riverside/config"
	"riverside/infras/otel"
	"riverside/internal/domains/room/model"
	"riverside/internal/domains/room/model/dto"
	"riverside/internal/domains/room/repository"
	"riverside/shared/constant"
	"riverside/shared/failure"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

const (
	rateSheetName      = "Rates"
	rateSheetNumFmt    = 3 // #,##0
	rateSheetWideCol   = 28
	rateSheetSlimCol   = 14
	rateSheetHeaderRow = 1
)

type Room interface {
	GetAll(ctx context.Context, query dto.RoomQuery) (dto.GetRoomsResponse, error)
	Get(ctx context.Context, slug string) (dto.RoomResponse, error)
	Categories(ctx context.Context) []dto.CategoryResponse
	Amenities(ctx context.Context) []dto.AmenityResponse
	Extras(ctx context.Context) []dto.ExtraResponse
	RateSheet(ctx context.Context) ([]byte, error)
}

type serviceImpl struct {
	catalog repository.Catalog
	cfg     *config.Config
	otel    otel.Otel
}

func New(catalog repository.Catalog, cfg *config.Config, otel otel.Otel) Room {
	return &serviceImpl{
		catalog: catalog,
		cfg:     cfg,
		otel:    otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, query dto.RoomQuery) (res dto.GetRoomsResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()

	category := model.Category(query.Category)
	if category == constant.Empty {
		category = model.CategoryAll
	}

	rooms := s.catalog.FilterByCategory(category)
	rooms = repository.Filter(rooms, query.ToFilter())

	if query.Available != nil && *query.Available {
		rooms = repository.AvailableOnly(rooms)
	}

	if query.Featured != nil {
		featured := rooms[:0]
		for _, room := range rooms {
			if room.Featured == *query.Featured {
				featured = append(featured, room)
			}
		}

		rooms = featured
	}

	rooms = repository.SortBy(rooms, model.SortKey(query.Sort))

	scope.SetAttributes(map[string]any{
		"room.category": string(category),
		"room.sort":     query.Sort,
		"room.count":    len(rooms),
	})

	res.FromModels(rooms)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, slug string) (res dto.RoomResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()

	scope.SetAttribute("room.slug", slug)

	room, ok := s.catalog.FindBySlug(slug)
	if !ok {
		log.Info().Str("slug", slug).Msg("room not found")
		scope.TraceError(failure.RoomNotFound)

		return res, failure.RoomNotFound
	}

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) Categories(_ context.Context) []dto.CategoryResponse {
	res := make([]dto.CategoryResponse, len(model.Categories))
	for i, c := range model.Categories {
		res[i] = dto.CategoryResponse{ID: string(c.ID), Label: c.Label}
	}

	return res
}

func (s *serviceImpl) Amenities(_ context.Context) []dto.AmenityResponse {
	return dto.AmenitiesFromModel(model.Amenities)
}

func (s *serviceImpl) Extras(_ context.Context) []dto.ExtraResponse {
	return dto.ExtrasFromModels(s.catalog.Extras())
}

// RateSheet renders the room rate card as an xlsx workbook.
func (s *serviceImpl) RateSheet(ctx context.Context) (res []byte, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RateSheet")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	file := excelize.NewFile()
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close rate sheet")
		}
	}()

	if err = s.writeRateSheet(file); err != nil {
		log.Error().Err(err).Msg("failed to write rate sheet")

		return nil, fmt.Errorf("failed to write rate sheet: %w", err)
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		log.Error().Err(err).Msg("failed to encode rate sheet")

		return nil, fmt.Errorf("failed to encode rate sheet: %w", err)
	}

	scope.SetAttribute("rate_sheet.bytes", buf.Len())

	return buf.Bytes(), nil
}

func (s *serviceImpl) writeRateSheet(file *excelize.File) error {
	if err := file.SetSheetName(file.GetSheetName(0), rateSheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	currency := s.cfg.App.Currency
	header := []any{
		"Room", "Category",
		"Price (" + currency + ")", "Original Price (" + currency + ")", "Discount (%)",
		"Size (m2)", "Max Guests", "Beds", "Available",
	}

	if err := file.SetSheetRow(rateSheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	money, err := file.NewStyle(&excelize.Style{NumFmt: rateSheetNumFmt})
	if err != nil {
		return fmt.Errorf("money style: %w", err)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err = file.SetCellStyle(rateSheetName, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	rooms := s.catalog.All()
	for i, room := range rooms {
		row := rateSheetHeaderRow + 1 + i

		var original any
		if room.OriginalPrice != nil {
			original = *room.OriginalPrice
		}

		values := []any{
			room.Name, string(room.Category),
			room.Price, original, dto.DiscountPercent(room),
			room.Size, room.MaxGuests, room.Beds, room.Available,
		}

		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err = file.SetSheetRow(rateSheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
	}

	if len(rooms) > 0 {
		last := rateSheetHeaderRow + len(rooms)
		if err = file.SetCellStyle(rateSheetName, "C2", fmt.Sprintf("D%d", last), money); err != nil {
			return fmt.Errorf("apply money style: %w", err)
		}
	}

	if err = file.SetColWidth(rateSheetName, "A", "A", rateSheetWideCol); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err = file.SetColWidth(rateSheetName, "B", lastCol, rateSheetSlimCol); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	return nil
}
