package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"riverside/internal/domains/booking/machine"
	"riverside/shared/timezone"

	"github.com/rs/zerolog/log"
)

var ErrDraftBusy = errors.New("booking is being confirmed")

// Drafts holds the live booking drafts. Drafts exist only in memory; a
// restart discards them.
type Drafts interface {
	Save(m *machine.Machine)
	Get(id string) (*machine.Machine, bool)
	Delete(id string) bool
	Discard(id string) (bool, error)
	Len() int
	Sweep() int
	Run(ctx context.Context, interval time.Duration)
}

type entry struct {
	machine *machine.Machine
	touched time.Time
}

type draftsImpl struct {
	mu      sync.RWMutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
}

// NewDrafts keeps a draft until it has gone ttl without being read. A
// non-positive ttl keeps drafts forever.
func NewDrafts(ttl time.Duration, now func() time.Time) Drafts {
	if now == nil {
		now = timezone.Now
	}

	return &draftsImpl{
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     now,
	}
}

func (r *draftsImpl) Save(m *machine.Machine) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[m.ID()] = &entry{machine: m, touched: r.now()}
}

// Get returns the draft and marks it as recently used.
func (r *draftsImpl) Get(id string) (*machine.Machine, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}

	e.touched = r.now()

	return e.machine, true
}

func (r *draftsImpl) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return false
	}

	delete(r.entries, id)

	return true
}

// Discard closes and removes the draft in one step, so no request can start
// a confirmation on it in between. It reports whether the draft existed and
// returns ErrDraftBusy, keeping the draft, while a confirmation is running.
func (r *draftsImpl) Discard(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return false, nil
	}

	if !e.machine.Discard() {
		return true, ErrDraftBusy
	}

	delete(r.entries, id)

	return true, nil
}

func (r *draftsImpl) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// Sweep drops expired drafts and returns how many were dropped. A draft
// waiting on its confirmation is never dropped.
func (r *draftsImpl) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}

	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	var swept int

	for id, e := range r.entries {
		if !e.touched.Before(cutoff) {
			continue
		}

		if !e.machine.Discard() {
			continue
		}

		delete(r.entries, id)
		swept++
	}

	return swept
}

// Run sweeps every interval until ctx is done.
func (r *draftsImpl) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		log.Warn().Dur("interval", interval).Msg("Draft sweeper disabled")

		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Draft sweeper stopped")

			return
		case <-ticker.C:
			if swept := r.Sweep(); swept > 0 {
				log.Info().Int("swept", swept).Int("remaining", r.Len()).Msg("Expired booking drafts removed")
			}
		}
	}
}
