//go:build linux

// Package mouse defines synthetic mouse input injection.
package mouse

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
)

// X11Injector injects mouse input through the XTest extension.
type X11Injector struct {
	mu   sync.Mutex
	conn *xgb.Conn
	root xproto.Window
}

// NewInjector opens the X11 display and returns an XTest injector.
// Without a reachable display it returns a NoopInjector and an error wrapping ErrUnsupported.
func NewInjector() (Injector, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return &NoopInjector{}, fmt.Errorf("%w: open X11 display: %v", ErrUnsupported, err)
	}
	if err := xtest.Init(conn); err != nil {
		conn.Close()
		return &NoopInjector{}, fmt.Errorf("%w: XTest extension: %v", ErrUnsupported, err)
	}
	setup := xproto.Setup(conn)
	if setup == nil || len(setup.Roots) == 0 {
		conn.Close()
		return &NoopInjector{}, fmt.Errorf("%w: X11 display has no screens", ErrUnsupported)
	}
	return &X11Injector{
		conn: conn,
		root: setup.DefaultScreen(conn).Root,
	}, nil
}

// MoveAbs warps the pointer to an absolute root-window coordinate.
func (i *X11Injector) MoveAbs(x, y int) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.conn == nil {
		return fmt.Errorf("%w: X11 connection closed", ErrUnsupported)
	}
	if err := xproto.WarpPointerChecked(
		i.conn,
		xproto.WindowNone,
		i.root,
		0,
		0,
		0,
		0,
		clampInt16(x),
		clampInt16(y),
	).Check(); err != nil {
		return fmt.Errorf("warp pointer: %w", err)
	}
	i.conn.Sync()
	return nil
}

// ButtonDown presses the given mouse button.
func (i *X11Injector) ButtonDown(b Button) error {
	return i.fakeButton(xproto.ButtonPress, b)
}

// ButtonUp releases the given mouse button.
func (i *X11Injector) ButtonUp(b Button) error {
	return i.fakeButton(xproto.ButtonRelease, b)
}

// CursorPos returns the pointer position relative to the root window.
func (i *X11Injector) CursorPos() (int, int, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.conn == nil {
		return 0, 0, fmt.Errorf("%w: X11 connection closed", ErrUnsupported)
	}
	reply, err := xproto.QueryPointer(i.conn, i.root).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("query pointer: %w", err)
	}
	return int(reply.RootX), int(reply.RootY), nil
}

// Close releases the X11 connection.
func (i *X11Injector) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.conn != nil {
		i.conn.Close()
		i.conn = nil
	}
	return nil
}

// fakeButton emits a single XTest button event.
func (i *X11Injector) fakeButton(eventType byte, b Button) error {
	detail, err := xButton(b)
	if err != nil {
		return err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.conn == nil {
		return fmt.Errorf("%w: X11 connection closed", ErrUnsupported)
	}
	if err := xtest.FakeInputChecked(
		i.conn,
		eventType,
		detail,
		xproto.TimeCurrentTime,
		i.root,
		0,
		0,
		0,
	).Check(); err != nil {
		return fmt.Errorf("xtest fake input: %w", err)
	}
	i.conn.Sync()
	return nil
}

// xButton maps a Button to the X11 core button index.
func xButton(b Button) (byte, error) {
	switch b {
	case Left:
		return byte(xproto.ButtonIndex1), nil
	case Middle:
		return byte(xproto.ButtonIndex2), nil
	case Right:
		return byte(xproto.ButtonIndex3), nil
	default:
		return 0, fmt.Errorf("unsupported button %s", b)
	}
}

// clampInt16 bounds a coordinate to the X11 wire range.
func clampInt16(v int) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
