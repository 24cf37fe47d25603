package repository

//go:generate go run go.uber.org/mock/mockgen -source=./receipt.go -destination=../mocks/receipt_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"riverside/config"
	"riverside/infras/otel"
	"riverside/internal/domains/booking/model"
	"riverside/shared"
	"riverside/shared/cache"
	"riverside/shared/constant"
	"riverside/shared/failure"
)

// Receipts stores confirmed bookings by confirmation number.
type Receipts interface {
	Save(ctx context.Context, receipt model.Receipt) error
	Get(ctx context.Context, number string) (model.Receipt, error)
}

type receiptsImpl struct {
	cache cache.RedisCache
	ttl   int
	otel  otel.Otel
}

func NewReceipts(redisCache cache.RedisCache, cfg *config.Config, otel otel.Otel) Receipts {
	return &receiptsImpl{
		cache: redisCache,
		ttl:   cfg.ReceiptTTLSeconds(),
		otel:  otel,
	}
}

func (r *receiptsImpl) Save(ctx context.Context, receipt model.Receipt) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Receipts.Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("receipt.number", receipt.Number)

	if err = r.cache.Save(ctx, receiptKey(receipt.Number), receipt, r.ttl); err != nil {
		return fmt.Errorf("failed to save receipt: %w", err)
	}

	return nil
}

func (r *receiptsImpl) Get(ctx context.Context, number string) (res model.Receipt, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Receipts.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("receipt.number", number)

	if err = r.cache.Get(ctx, receiptKey(number), &res); err != nil {
		if errors.Is(err, cache.Nil) {
			return res, failure.NotFound(model.ReceiptEntityName + " not found")
		}

		return res, fmt.Errorf("failed to get receipt: %w", err)
	}

	return res, nil
}

func receiptKey(number string) string {
	return shared.BuildCacheKey(model.ReceiptEntityName, number)
}
