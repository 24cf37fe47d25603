package confirmer

//go:generate go run go.uber.org/mock/mockgen -source=./confirmer.go -destination=../mocks/confirmer_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"riverside/config"
	"riverside/infras/kafka"
	"riverside/internal/domains/booking/model"
	"riverside/shared/constant"
	"riverside/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	numberPrefix    = "RS"
	numberRandomLen = 8
)

var ErrTimeout = errors.New("confirmation timed out")

// Confirmer settles a booking with whatever backend holds reservations.
type Confirmer interface {
	Confirm(ctx context.Context, draft model.Draft) (model.Confirmation, error)
}

// New picks the backend named by BOOKING_CONFIRMER and bounds it with the
// configured timeout.
func New(cfg *config.Config, client kafka.Client) (Confirmer, error) {
	var backend Confirmer

	switch cfg.Booking.Confirmer {
	case constant.ConfirmerSimulated, constant.Empty:
		backend = NewSimulated(cfg.ConfirmLatency())
	case constant.ConfirmerKafka:
		backend = NewKafka(client, cfg.Kafka.ConfirmationTopic)
	default:
		return nil, fmt.Errorf("unknown confirmer %q", cfg.Booking.Confirmer)
	}

	log.Info().
		Str("confirmer", cfg.Booking.Confirmer).
		Dur("timeout", cfg.ConfirmTimeout()).
		Msg("Booking confirmer configured")

	return WithTimeout(backend, cfg.ConfirmTimeout()), nil
}

// NewNumber builds a confirmation number such as RS-20240601-3F9A0C1B.
func NewNumber(at time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", constant.Empty)[:numberRandomLen]

	return fmt.Sprintf("%s-%s-%s", numberPrefix, timezone.Format(at, constant.DayFormatSlim), strings.ToUpper(random))
}

// numberFor returns the number reserved on the draft, or a fresh one for a
// draft that never reserved any.
func numberFor(draft model.Draft, at time.Time) string {
	if draft.Reference != constant.Empty {
		return draft.Reference
	}

	return NewNumber(at)
}

type timeoutConfirmer struct {
	next    Confirmer
	timeout time.Duration
}

// WithTimeout fails a confirmation with ErrTimeout once d has elapsed. A
// non-positive d leaves next unbounded.
func WithTimeout(next Confirmer, d time.Duration) Confirmer {
	if d <= 0 {
		return next
	}

	return &timeoutConfirmer{next: next, timeout: d}
}

func (t *timeoutConfirmer) Confirm(ctx context.Context, draft model.Draft) (model.Confirmation, error) {
	ctx, cancel := context.WithTimeoutCause(ctx, t.timeout, ErrTimeout)
	defer cancel()

	res, err := t.next.Confirm(ctx, draft)
	if err != nil && errors.Is(context.Cause(ctx), ErrTimeout) {
		return model.Confirmation{}, ErrTimeout
	}

	return res, err
}
