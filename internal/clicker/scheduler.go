// Package clicker schedules and dispatches synthetic mouse clicks.
package clicker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/frudas24/lazyfinger/internal/events"
	"github.com/google/uuid"
)

// DefaultDispatchTimeout bounds a single dispatch call.
const DefaultDispatchTimeout = 2 * time.Second

// Stop reasons carried by run.stopped events.
const (
	ReasonCancelled = "cancelled"
	ReasonCompleted = "completed"
)

// Options configure a Scheduler.
type Options struct {
	Dispatcher ClickDispatcher
	Rand       RandSource
	Sleeper    Sleeper
	Logger     *slog.Logger
	NewRunID   func() string
	Clock      func() time.Time

	// Publisher receives status events; it must not call back into the Scheduler.
	Publisher events.Publisher

	// DispatchTimeout bounds each dispatch; zero selects DefaultDispatchTimeout, negative disables it.
	DispatchTimeout time.Duration
}

// Status is a read-only view of the scheduler state.
type Status struct {
	Running   bool        `json:"running"`
	RunID     string      `json:"runId,omitempty"`
	Clicks    int         `json:"clicks"`
	Failures  int         `json:"failures"`
	StartedAt time.Time   `json:"startedAt"`
	Config    ClickConfig `json:"-"`
}

// Scheduler owns the idle/running state machine and the click loop.
type Scheduler struct {
	dispatcher      ClickDispatcher
	rand            RandSource
	sleep           Sleeper
	publisher       events.Publisher
	logger          *slog.Logger
	dispatchTimeout time.Duration
	newRunID        func() string
	clock           func() time.Time

	mu        sync.Mutex
	running   bool
	gen       uint64
	cancel    context.CancelFunc
	runID     string
	cfg       ClickConfig
	startedAt time.Time
	clicks    int
	failures  int

	// dispatchMu keeps an in-flight click of a stopped run from overlapping the next run's clicks.
	dispatchMu sync.Mutex

	wg sync.WaitGroup
}

// NewScheduler validates options and returns an idle scheduler.
func NewScheduler(opts Options) (*Scheduler, error) {
	if opts.Dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}
	s := &Scheduler{
		dispatcher:      opts.Dispatcher,
		rand:            opts.Rand,
		sleep:           opts.Sleeper,
		publisher:       opts.Publisher,
		logger:          opts.Logger,
		dispatchTimeout: opts.DispatchTimeout,
		newRunID:        opts.NewRunID,
		clock:           opts.Clock,
	}
	if s.rand == nil {
		s.rand = NewRandSource(uint64(time.Now().UnixNano()))
	}
	if s.sleep == nil {
		s.sleep = defaultSleeper
	}
	if s.publisher == nil {
		s.publisher = events.PublisherFunc(func(events.Event) {})
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.dispatchTimeout == 0 {
		s.dispatchTimeout = DefaultDispatchTimeout
	}
	if s.newRunID == nil {
		s.newRunID = uuid.NewString
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	return s, nil
}

// Start begins a run with cfg. It returns ErrAlreadyRunning while a run is active
// and a *ConfigError when cfg is invalid. It never blocks on the click loop.
func (s *Scheduler) Start(cfg ClickConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return ErrAlreadyRunning
	}
	s.startLocked(cfg)
	return nil
}

// Stop requests cancellation of the active run and returns to idle at once.
// A click already in flight still completes, and a run started right after
// Stop dispatches only once that click is done. It is a no-op while idle.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// Toggle stops an active run or starts a new one with cfg.
// It reports whether a run is active after the call.
func (s *Scheduler) Toggle(cfg ClickConfig) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.stopLocked()
		return false, nil
	}
	if err := cfg.Validate(); err != nil {
		return false, err
	}
	s.startLocked(cfg)
	return true, nil
}

// IsRunning reports whether a run is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Status returns a snapshot of the current or most recent run.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Status{
		Running:   s.running,
		RunID:     s.runID,
		Clicks:    s.clicks,
		Failures:  s.failures,
		StartedAt: s.startedAt,
	}
	if s.running {
		st.Config = s.cfg
	}
	return st
}

// Wait blocks until every click loop has exited.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// startLocked transitions to running and launches the loop. Caller holds s.mu.
func (s *Scheduler) startLocked(cfg ClickConfig) {
	ctx, cancel := context.WithCancel(context.Background())
	s.gen++
	s.running = true
	s.cancel = cancel
	s.runID = s.newRunID()
	s.cfg = cfg
	s.startedAt = s.clock()
	s.clicks = 0
	s.failures = 0

	s.logger.Info("click run started",
		"run", s.runID,
		"interval", cfg.Interval,
		"jitter", cfg.effectiveJitter(),
		"button", cfg.Button.String(),
		"type", cfg.ClickType.String(),
		"target", cfg.Target.String(),
		"repeat", cfg.Repeat.String(),
	)
	s.publisher.Publish(events.Event{Type: events.TypeRunStarted, RunID: s.runID})

	s.wg.Add(1)
	go s.loop(ctx, s.gen, s.runID, cfg)
}

// stopLocked cancels the active run and returns to idle. Caller holds s.mu.
func (s *Scheduler) stopLocked() {
	if !s.running {
		return
	}
	s.running = false
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.logger.Info("click run stop requested", "run", s.runID)
}

// loop waits, dispatches and counts down until cancelled or complete.
func (s *Scheduler) loop(ctx context.Context, gen uint64, runID string, cfg ClickConfig) {
	defer s.wg.Done()

	click := Click{Button: cfg.Button, Type: cfg.ClickType, Target: cfg.Target}
	remaining := cfg.Repeat.Count
	clicks, failures := 0, 0
	reason := ReasonCancelled

	defer func() {
		s.finish(gen, runID, reason, clicks, failures)
	}()

	for {
		if ctx.Err() != nil {
			return
		}
		if err := s.sleep(ctx, nextDelay(cfg, s.rand)); err != nil {
			return
		}
		if ctx.Err() != nil {
			return
		}

		if err := s.dispatch(ctx, click); err != nil {
			failures++
			s.logger.Warn("click dispatch failed", "run", runID, "err", err)
			s.record(gen, clicks, failures)
			s.publisher.Publish(events.Event{
				Type:     events.TypeClickFailed,
				RunID:    runID,
				Clicks:   clicks,
				Failures: failures,
				Error:    err.Error(),
			})
		} else {
			clicks++
			s.record(gen, clicks, failures)
			s.publisher.Publish(events.Event{
				Type:     events.TypeClick,
				RunID:    runID,
				Clicks:   clicks,
				Failures: failures,
			})
		}

		if !cfg.Repeat.Infinite {
			remaining--
			if remaining <= 0 {
				reason = ReasonCompleted
				return
			}
		}
	}
}

// dispatch runs one click, bounded by the dispatch timeout.
func (s *Scheduler) dispatch(ctx context.Context, c Click) error {
	if s.dispatchTimeout < 0 {
		return s.dispatchLocked(ctx, c)
	}
	done := make(chan error, 1)
	go func() {
		done <- s.dispatchLocked(ctx, c)
	}()
	timer := time.NewTimer(s.dispatchTimeout)
	defer timer.Stop()
	select {
	case err := <-done:
		return err
	case <-timer.C:
		return fmt.Errorf("%w: timed out after %s", ErrDispatch, s.dispatchTimeout)
	}
}

// dispatchLocked serializes dispatcher calls across runs.
func (s *Scheduler) dispatchLocked(ctx context.Context, c Click) error {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()
	return s.dispatcher.Dispatch(ctx, c)
}

// record stores the loop counters when gen is still the current run.
func (s *Scheduler) record(gen uint64, clicks, failures int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	s.clicks = clicks
	s.failures = failures
}

// finish returns to idle if gen is still current and publishes the stop event.
func (s *Scheduler) finish(gen uint64, runID, reason string, clicks, failures int) {
	s.mu.Lock()
	if s.gen == gen && s.running {
		s.running = false
		if s.cancel != nil {
			s.cancel()
			s.cancel = nil
		}
	}
	s.mu.Unlock()

	s.logger.Info("click run stopped", "run", runID, "reason", reason, "clicks", clicks, "failures", failures)
	s.publisher.Publish(events.Event{
		Type:     events.TypeRunStopped,
		RunID:    runID,
		Clicks:   clicks,
		Failures: failures,
		Reason:   reason,
	})
}
