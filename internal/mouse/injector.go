// Package mouse defines synthetic mouse input injection.
package mouse

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupported indicates input injection is not available on this platform or session.
var ErrUnsupported = errors.New("mouse input injection is not supported on this platform")

// Button identifies a mouse button.
type Button int

const (
	// Left is the primary mouse button.
	Left Button = iota
	// Right is the secondary mouse button.
	Right
	// Middle is the wheel button.
	Middle
)

// String returns the lowercase button name.
func (b Button) String() string {
	switch b {
	case Left:
		return "left"
	case Right:
		return "right"
	case Middle:
		return "middle"
	default:
		return fmt.Sprintf("button(%d)", int(b))
	}
}

// Valid reports whether b is a known button.
func (b Button) Valid() bool {
	return b == Left || b == Right || b == Middle
}

// ParseButton maps a case-insensitive name to a Button.
func ParseButton(name string) (Button, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "left", "":
		return Left, nil
	case "right":
		return Right, nil
	case "middle":
		return Middle, nil
	default:
		return Left, fmt.Errorf("unknown mouse button %q", name)
	}
}

// Injector defines the OS input operations used by the click dispatcher.
type Injector interface {
	MoveAbs(x, y int) error
	ButtonDown(b Button) error
	ButtonUp(b Button) error
	CursorPos() (x, y int, err error)
	Close() error
}
