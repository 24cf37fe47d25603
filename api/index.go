package handler

import (
	"net/http"
	"sync"

	"riverside/config"
	"riverside/di"
	"riverside/shared/logger"
	"riverside/shared/timezone"

	"github.com/rs/zerolog/log"
)

var (
	app     *di.App
	appOnce sync.Once
)

// Handler serves the API as a single serverless function. Drafts live only
// as long as the function instance does.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	appOnce.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)

		logger.SetLogLevel(cfg)

		timezone.Init(cfg.App.Timezone)

		var err error

		app, err = di.InitializeService()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize service")
		}
	})

	app.HTTP.ServeHTTP(w, r)
}
