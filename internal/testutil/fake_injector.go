// Package testutil provides fakes shared by package tests.
package testutil

import (
	"sync"

	"github.com/frudas24/lazyfinger/internal/mouse"
)

// Call records a single injected action.
type Call struct {
	Name   string
	Button mouse.Button
	X      int
	Y      int
}

// FakeInjector implements mouse.Injector and records calls for tests.
// It is safe for concurrent use by a click loop and a test goroutine.
type FakeInjector struct {
	mu sync.Mutex

	// X and Y are reported by CursorPos.
	X int
	Y int

	// FailDown makes ButtonDown fail for the listed 1-based press numbers.
	FailDown map[int]error
	// FailUp makes ButtonUp fail for the listed 1-based release attempts.
	FailUp map[int]error
	// MoveErr is returned by every MoveAbs call when set.
	MoveErr error

	calls   []Call
	downs   int
	ups     int
	closed  bool
	OnClick func()
}

// Ensure FakeInjector implements the interface.
var _ mouse.Injector = (*FakeInjector)(nil)

// MoveAbs records an absolute move and updates the reported cursor position.
func (f *FakeInjector) MoveAbs(x, y int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Name: "MoveAbs", X: x, Y: y})
	if f.MoveErr != nil {
		return f.MoveErr
	}
	f.X = x
	f.Y = y
	return nil
}

// ButtonDown records a button press.
func (f *FakeInjector) ButtonDown(b mouse.Button) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downs++
	f.calls = append(f.calls, Call{Name: "ButtonDown", Button: b, X: f.X, Y: f.Y})
	if err, ok := f.FailDown[f.downs]; ok {
		return err
	}
	return nil
}

// ButtonUp records a button release.
func (f *FakeInjector) ButtonUp(b mouse.Button) error {
	f.mu.Lock()
	f.ups++
	f.calls = append(f.calls, Call{Name: "ButtonUp", Button: b, X: f.X, Y: f.Y})
	err, fail := f.FailUp[f.ups]
	hook := f.OnClick
	f.mu.Unlock()
	if fail {
		return err
	}
	if hook != nil {
		hook()
	}
	return nil
}

// CursorPos returns the fake cursor position.
func (f *FakeInjector) CursorPos() (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.X, f.Y, nil
}

// Close marks the injector closed.
func (f *FakeInjector) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// Calls returns a copy of the recorded calls.
func (f *FakeInjector) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// Count returns how many recorded calls have the given name.
func (f *FakeInjector) Count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Closed reports whether Close was called.
func (f *FakeInjector) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
