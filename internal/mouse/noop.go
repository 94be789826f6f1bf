// Package mouse defines synthetic mouse input injection.
package mouse

// NoopInjector is a placeholder injector used when no input backend is available.
type NoopInjector struct{}

// MoveAbs returns ErrUnsupported.
func (n *NoopInjector) MoveAbs(x, y int) error {
	_ = x
	_ = y
	return ErrUnsupported
}

// ButtonDown returns ErrUnsupported.
func (n *NoopInjector) ButtonDown(b Button) error {
	_ = b
	return ErrUnsupported
}

// ButtonUp returns ErrUnsupported.
func (n *NoopInjector) ButtonUp(b Button) error {
	_ = b
	return ErrUnsupported
}

// CursorPos returns ErrUnsupported.
func (n *NoopInjector) CursorPos() (int, int, error) {
	return 0, 0, ErrUnsupported
}

// Close is a no-op.
func (n *NoopInjector) Close() error {
	return nil
}
