// Package clicker schedules and dispatches synthetic mouse clicks.
package clicker

import (
	"fmt"
	"time"

	"github.com/frudas24/lazyfinger/internal/mouse"
)

// ClickType selects a single or double click per scheduled attempt.
type ClickType int

const (
	// ClickSingle issues one press/release pulse.
	ClickSingle ClickType = iota
	// ClickDouble issues two pulses separated by the dispatcher's double-click gap.
	ClickDouble
)

// String returns the click type name.
func (c ClickType) String() string {
	switch c {
	case ClickSingle:
		return "single"
	case ClickDouble:
		return "double"
	default:
		return fmt.Sprintf("clicktype(%d)", int(c))
	}
}

// Target selects where a click lands.
type Target struct {
	Fixed bool
	X     int
	Y     int
}

// CurrentLocation targets wherever the cursor currently is.
func CurrentLocation() Target {
	return Target{}
}

// FixedLocation targets a fixed screen coordinate. The coordinate is not checked against the screen.
func FixedLocation(x, y int) Target {
	return Target{Fixed: true, X: x, Y: y}
}

// String describes the target for logs.
func (t Target) String() string {
	if !t.Fixed {
		return "current"
	}
	return fmt.Sprintf("(%d,%d)", t.X, t.Y)
}

// Repeat selects how many clicks a run performs.
type Repeat struct {
	Infinite bool
	Count    int
}

// RepeatCount performs exactly n clicks and then completes.
func RepeatCount(n int) Repeat {
	return Repeat{Count: n}
}

// RepeatInfinite clicks until stopped.
func RepeatInfinite() Repeat {
	return Repeat{Infinite: true}
}

// String describes the repeat policy for logs.
func (r Repeat) String() string {
	if r.Infinite {
		return "infinite"
	}
	return fmt.Sprintf("count(%d)", r.Count)
}

// ClickConfig is an immutable snapshot consumed once per run start.
type ClickConfig struct {
	Interval      time.Duration
	JitterEnabled bool
	JitterMax     time.Duration
	Button        mouse.Button
	ClickType     ClickType
	Target        Target
	Repeat        Repeat
}

// IntervalFromParts sums hours, minutes, seconds and milliseconds into one interval.
func IntervalFromParts(hours, minutes, seconds, millis int) time.Duration {
	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond
}

// Validate reports the first invalid field as a *ConfigError wrapping ErrInvalidConfig.
// A zero total delay is valid.
func (c ClickConfig) Validate() error {
	if c.Interval < 0 {
		return &ConfigError{Field: "interval", Reason: "must be >= 0"}
	}
	if c.JitterMax < 0 {
		return &ConfigError{Field: "jitter", Reason: "must be >= 0"}
	}
	if !c.Button.Valid() {
		return &ConfigError{Field: "button", Reason: fmt.Sprintf("unknown button %s", c.Button)}
	}
	if c.ClickType != ClickSingle && c.ClickType != ClickDouble {
		return &ConfigError{Field: "clickType", Reason: fmt.Sprintf("unknown click type %s", c.ClickType)}
	}
	if !c.Repeat.Infinite && c.Repeat.Count <= 0 {
		return &ConfigError{Field: "repeat", Reason: "count must be > 0"}
	}
	return nil
}

// effectiveJitter returns the jitter bound actually applied to each delay.
func (c ClickConfig) effectiveJitter() time.Duration {
	if !c.JitterEnabled || c.JitterMax <= 0 {
		return 0
	}
	return c.JitterMax
}
