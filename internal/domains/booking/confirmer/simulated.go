package confirmer

import (
	"context"
	"fmt"
	"time"

	"riverside/internal/domains/booking/model"
	"riverside/shared/timezone"
)

// Simulated stands in for a reservation backend: it waits out a fixed latency
// and always succeeds unless ctx ends first.
type Simulated struct {
	latency time.Duration
}

func NewSimulated(latency time.Duration) *Simulated {
	return &Simulated{latency: latency}
}

func (s *Simulated) Confirm(ctx context.Context, draft model.Draft) (model.Confirmation, error) {
	timer := time.NewTimer(s.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return model.Confirmation{}, fmt.Errorf("simulated confirmation interrupted: %w", ctx.Err())
	case <-timer.C:
	}

	now := timezone.Now()

	return model.Confirmation{
		Number:      numberFor(draft, now),
		ConfirmedAt: now,
	}, nil
}
