//go:build windows

// Package mouse defines synthetic mouse input injection.
package mouse

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
)

// WinInjector injects mouse input using WinAPI SendInput.
type WinInjector struct{}

// NewInjector returns a Windows input injector.
func NewInjector() (Injector, error) {
	return &WinInjector{}, nil
}

// MoveAbs moves the cursor to an absolute virtual-desktop coordinate.
func (w *WinInjector) MoveAbs(x, y int) error {
	dx, dy := mapAbsolute(x, y)
	flags := uint32(win.MOUSEEVENTF_MOVE | win.MOUSEEVENTF_ABSOLUTE | win.MOUSEEVENTF_VIRTUALDESK)
	if err := sendMouseInput(flags, dx, dy, 0); err != nil {
		if win.SetCursorPos(int32(x), int32(y)) {
			return nil
		}
		return err
	}
	win.SetCursorPos(int32(x), int32(y))
	return nil
}

// ButtonDown presses the given mouse button.
func (w *WinInjector) ButtonDown(b Button) error {
	flags, _, err := buttonFlags(b)
	if err != nil {
		return err
	}
	return sendMouseInput(flags, 0, 0, 0)
}

// ButtonUp releases the given mouse button.
func (w *WinInjector) ButtonUp(b Button) error {
	_, flags, err := buttonFlags(b)
	if err != nil {
		return err
	}
	return sendMouseInput(flags, 0, 0, 0)
}

// CursorPos returns the current cursor position in screen coordinates.
func (w *WinInjector) CursorPos() (int, int, error) {
	var pt win.POINT
	if !win.GetCursorPos(&pt) {
		return 0, 0, fmt.Errorf("GetCursorPos failed: %w", syscall.Errno(win.GetLastError()))
	}
	return int(pt.X), int(pt.Y), nil
}

// Close is a no-op; SendInput holds no resources.
func (w *WinInjector) Close() error {
	return nil
}

// buttonFlags returns the down/up SendInput flags for a button.
func buttonFlags(b Button) (uint32, uint32, error) {
	switch b {
	case Left:
		return win.MOUSEEVENTF_LEFTDOWN, win.MOUSEEVENTF_LEFTUP, nil
	case Right:
		return win.MOUSEEVENTF_RIGHTDOWN, win.MOUSEEVENTF_RIGHTUP, nil
	case Middle:
		return win.MOUSEEVENTF_MIDDLEDOWN, win.MOUSEEVENTF_MIDDLEUP, nil
	default:
		return 0, 0, fmt.Errorf("unsupported button %s", b)
	}
}

// sendMouseInput dispatches a single mouse input event.
func sendMouseInput(flags uint32, dx, dy int32, data uint32) error {
	input := win.MOUSE_INPUT{
		Type: win.INPUT_MOUSE,
		Mi: win.MOUSEINPUT{
			Dx:        dx,
			Dy:        dy,
			MouseData: data,
			DwFlags:   flags,
		},
	}
	if win.SendInput(1, unsafe.Pointer(&input), int32(unsafe.Sizeof(input))) != 1 {
		return fmt.Errorf("SendInput failed: %w", syscall.Errno(win.GetLastError()))
	}
	return nil
}

// mapAbsolute converts screen coordinates to the WinAPI absolute range.
func mapAbsolute(x, y int) (int32, int32) {
	vx := win.GetSystemMetrics(win.SM_XVIRTUALSCREEN)
	vy := win.GetSystemMetrics(win.SM_YVIRTUALSCREEN)
	vw := win.GetSystemMetrics(win.SM_CXVIRTUALSCREEN)
	vh := win.GetSystemMetrics(win.SM_CYVIRTUALSCREEN)
	if vw <= 1 {
		vw = 2
	}
	if vh <= 1 {
		vh = 2
	}
	dx := (int64(x) - int64(vx)) * 65535 / int64(vw-1)
	dy := (int64(y) - int64(vy)) * 65535 / int64(vh-1)
	return int32(dx), int32(dy)
}
