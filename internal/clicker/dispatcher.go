// Package clicker schedules and dispatches synthetic mouse clicks.
package clicker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/frudas24/lazyfinger/internal/mouse"
)

// DefaultDoubleClickGap separates the two pulses of a double click.
const DefaultDoubleClickGap = 30 * time.Millisecond

// Click is one dispatch request.
type Click struct {
	Button mouse.Button
	Type   ClickType
	Target Target
}

// ClickDispatcher issues one simulated mouse action.
type ClickDispatcher interface {
	Dispatch(ctx context.Context, c Click) error
}

// Dispatcher turns a Click into injector calls.
type Dispatcher struct {
	injector mouse.Injector
	gap      time.Duration
	sleep    Sleeper
}

// NewDispatcher returns a dispatcher using gap between double-click pulses.
// A non-positive gap selects DefaultDoubleClickGap.
func NewDispatcher(injector mouse.Injector, gap time.Duration) (*Dispatcher, error) {
	if injector == nil {
		return nil, errors.New("injector is required")
	}
	if gap <= 0 {
		gap = DefaultDoubleClickGap
	}
	return &Dispatcher{injector: injector, gap: gap, sleep: defaultSleeper}, nil
}

// Dispatch moves to a fixed target if needed and performs the click.
// Every failure wraps ErrDispatch.
func (d *Dispatcher) Dispatch(ctx context.Context, c Click) error {
	if c.Target.Fixed {
		if err := d.injector.MoveAbs(c.Target.X, c.Target.Y); err != nil {
			return fmt.Errorf("%w: move to %s: %w", ErrDispatch, c.Target, err)
		}
	}

	if err := d.pulse(c.Button); err != nil {
		return err
	}
	if c.Type != ClickDouble {
		return nil
	}
	// The gap ignores cancellation so a started double click always completes.
	if err := d.sleep(context.WithoutCancel(ctx), d.gap); err != nil {
		return fmt.Errorf("%w: %w", ErrDispatch, err)
	}
	return d.pulse(c.Button)
}

// pulse presses and releases b, retrying the release once so the button is never left down.
func (d *Dispatcher) pulse(b mouse.Button) error {
	if err := d.injector.ButtonDown(b); err != nil {
		return fmt.Errorf("%w: %s down: %w", ErrDispatch, b, err)
	}
	if err := d.injector.ButtonUp(b); err != nil {
		if retryErr := d.injector.ButtonUp(b); retryErr == nil {
			return nil
		}
		return fmt.Errorf("%w: %s up: %w", ErrDispatch, b, err)
	}
	return nil
}
