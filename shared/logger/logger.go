package logger

import (
	"io"
	"os"
	"time"

	"riverside/config"
	"riverside/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger sets up the global zerolog logger. Development gets the console
// writer, every other environment writes JSON lines to stdout.
func InitLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = zerolog.New(writer(cfg.Server.Env, os.Stdout)).
		With().
		Timestamp().
		Str("app", cfg.App.Name).
		Logger()

	log.Trace().Str("env", cfg.Server.Env).Msg("Zerolog initialized.")
}

func writer(env string, out io.Writer) io.Writer {
	if env == constant.ServerEnvDevelopment {
		return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return out
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

func SetLogLevel(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil || cfg.Server.LogLevel == constant.Empty {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}
