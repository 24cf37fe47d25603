package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"       default:"development"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		Port     string `envconfig:"PORT"      default:"8080"`
		Host     string `envconfig:"HOST"      default:"0.0.0.0"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"2"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"5"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME" default:"riverside-suites"`
		Timezone string `envconfig:"TIMEZONE" default:"Asia/Jakarta"`
		Currency string `envconfig:"CURRENCY" default:"IDR"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"   default:"Authorization,Content-Type"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"   default:"GET,POST,PUT,DELETE,OPTIONS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"   default:"*"`
			Enable           bool     `envconfig:"ENABLE"            default:"true"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"   default:"300"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"   default:"120"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
		} `envconfig:"RATE_LIMITER"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST" default:"localhost"`
				Port     string `envconfig:"PORT" default:"6379"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
	} `envconfig:"CACHE"`

	Session struct {
		Secret string `envconfig:"SECRET" default:"change-me"`
	} `envconfig:"SESSION"`

	Booking struct {
		CatalogPath          string `envconfig:"CATALOG_PATH"`
		DraftTTLMinutes      int    `envconfig:"DRAFT_TTL_MINUTES"       default:"60"`
		SweepIntervalSeconds int    `envconfig:"SWEEP_INTERVAL_SECONDS"  default:"60"`
		Confirmer            string `envconfig:"CONFIRMER"               default:"simulated"`
		ConfirmLatencyMs     int    `envconfig:"CONFIRM_LATENCY_MS"      default:"1500"`
		ConfirmTimeoutSecs   int    `envconfig:"CONFIRM_TIMEOUT_SECONDS" default:"10"`
		ReceiptTTLHours      int    `envconfig:"RECEIPT_TTL_HOURS"       default:"720"`
	} `envconfig:"BOOKING"`

	Kafka struct {
		Brokers           []string `envconfig:"BROKERS"            default:"localhost:9092"`
		ConsumerGroup     string   `envconfig:"CONSUMER_GROUP"     default:"riverside"`
		ConfirmationTopic string   `envconfig:"CONFIRMATION_TOPIC" default:"booking.confirmed"`
		AuditEnable       bool     `envconfig:"AUDIT_ENABLE"`
		SASL              struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
	} `envconfig:"KAFKA"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
	}
}

// DraftTTL is how long an untouched booking draft is kept. Session tokens
// share it.
func (c *Config) DraftTTL() time.Duration {
	return time.Duration(c.Booking.DraftTTLMinutes) * time.Minute
}

func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.Booking.SweepIntervalSeconds) * time.Second
}

func (c *Config) ConfirmLatency() time.Duration {
	return time.Duration(c.Booking.ConfirmLatencyMs) * time.Millisecond
}

func (c *Config) ConfirmTimeout() time.Duration {
	return time.Duration(c.Booking.ConfirmTimeoutSecs) * time.Second
}

// ReceiptTTLSeconds is how long a confirmation receipt stays retrievable.
func (c *Config) ReceiptTTLSeconds() int {
	return int((time.Duration(c.Booking.ReceiptTTLHours) * time.Hour).Seconds())
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		if loadErr := godotenv.Load(".env"); loadErr != nil {
			log.Warn().Err(loadErr).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			return
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("processing environment variables: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}
