//go:build wireinject
// +build wireinject

package di

import (
	"riverside/config"
	"riverside/infras/jwt"
	"riverside/infras/kafka"
	"riverside/infras/otel"
	"riverside/infras/redis"
	"riverside/shared/cache"
	"riverside/transport/http"
	"riverside/transport/http/middleware"
	"riverside/transport/http/router"

	bookingConfirmer "riverside/internal/domains/booking/confirmer"
	bookingRepository "riverside/internal/domains/booking/repository"
	bookingService "riverside/internal/domains/booking/service"
	bookingHandler "riverside/internal/handlers/booking"

	roomRepository "riverside/internal/domains/room/repository"
	roomService "riverside/internal/domains/room/service"
	roomHandler "riverside/internal/handlers/room"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	redis.New,
	kafka.New,
	jwt.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewSessionMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	provideDrafts,
	provideAudit,
	bookingRepository.NewReceipts,
	bookingConfirmer.New,
	bookingService.New,
)

var domains = wire.NewSet(
	roomDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	roomHandler.New,
	bookingHandler.New,
	router.New,
)

func InitializeService() (*App, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}, nil
}
