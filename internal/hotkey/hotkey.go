// Package hotkey registers the global start/stop hotkey.
package hotkey

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ErrUnsupported is returned when no global hotkey backend is available.
var ErrUnsupported = errors.New("global hotkey not supported")

const (
	// DefaultKey toggles the clicker.
	DefaultKey = "F6"
	// DefaultDebounce is the minimum spacing between accepted presses.
	DefaultDebounce = 250 * time.Millisecond
)

// Listener is an active hotkey registration.
type Listener interface {
	Close() error
}

// Debouncer forwards at most one press per window to fn.
type Debouncer struct {
	limiter *rate.Limiter
	fn      func()
	now     func() time.Time
}

// NewDebouncer wraps fn so presses closer than window are dropped.
func NewDebouncer(window time.Duration, fn func()) *Debouncer {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &Debouncer{
		limiter: rate.NewLimiter(rate.Every(window), 1),
		fn:      fn,
		now:     time.Now,
	}
}

// Fire invokes fn unless a press was accepted within the window.
func (d *Debouncer) Fire() {
	if !d.limiter.AllowN(d.now(), 1) {
		return
	}
	if d.fn != nil {
		d.fn()
	}
}

// keyLatch turns raw press/release events into one press per physical key stroke.
// X11 auto-repeat either repeats presses while held, or emits a release and a
// press sharing one server timestamp; both are swallowed.
type keyLatch struct {
	held        bool
	released    bool
	lastRelease uint32
}

// press records a key press and reports whether it starts a new stroke.
func (k *keyLatch) press(ts uint32) bool {
	if k.held {
		return false
	}
	k.held = true
	if k.released && ts == k.lastRelease {
		return false
	}
	return true
}

// release records a key release.
func (k *keyLatch) release(ts uint32) {
	k.held = false
	k.released = true
	k.lastRelease = ts
}

// functionKey maps "F1".."F24" to its number.
func functionKey(name string) (int, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if len(name) < 2 || name[0] != 'F' {
		return 0, false
	}
	n, err := strconv.Atoi(name[1:])
	if err != nil || n < 1 || n > 24 {
		return 0, false
	}
	return n, true
}
