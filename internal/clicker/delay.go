// Package clicker schedules and dispatches synthetic mouse clicks.
package clicker

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

// RandSource yields uniform jitter offsets in [0, max]. Implementations must be safe for concurrent use.
type RandSource interface {
	Jitter(max time.Duration) time.Duration
}

// Sleeper blocks for d or until ctx is done, returning ctx.Err() on cancellation.
type Sleeper func(ctx context.Context, d time.Duration) error

// lockedRand guards a math/rand/v2 generator for concurrent runs.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandSource returns a seeded, concurrency-safe RandSource.
func NewRandSource(seed uint64) RandSource {
	return &lockedRand{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Jitter returns a uniform offset in [0, max]; max <= 0 yields 0.
func (r *lockedRand) Jitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return time.Duration(r.rng.Int64N(int64(max) + 1))
}

// nextDelay returns the base interval plus a uniform offset in [0, jitter].
func nextDelay(cfg ClickConfig, src RandSource) time.Duration {
	jitter := cfg.effectiveJitter()
	if jitter <= 0 {
		return cfg.Interval
	}
	offset := src.Jitter(jitter)
	if offset < 0 {
		offset = 0
	}
	if offset > jitter {
		offset = jitter
	}
	return cfg.Interval + offset
}

// defaultSleeper waits on a timer and returns early when ctx is done.
func defaultSleeper(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
