package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"riverside/config"
	"riverside/di"
	"riverside/shared/logger"
	"riverside/shared/timezone"

	"github.com/rs/zerolog/log"
)

const otelShutdownTimeout = 5 * time.Second

// @title Riverside Suites Booking API
// @version 1.0
// @description Room catalog and guided booking for Riverside Suites.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token returned by POST /v1/bookings, as "Bearer <token>".
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	timezone.Init(cfg.App.Timezone)

	app, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go app.Drafts.Run(ctx, cfg.SweepInterval())

	if cfg.Kafka.AuditEnable {
		go app.Audit.Run(ctx)
	}

	if err := app.HTTP.Serve(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server stopped with error")
	}

	if err := app.Kafka.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close kafka client")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer cancel()

	if err := app.Otel.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to flush traces")
	}
}
