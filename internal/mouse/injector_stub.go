//go:build !windows && !linux

// Package mouse defines synthetic mouse input injection.
package mouse

// NewInjector returns a non-functional injector on unsupported platforms.
func NewInjector() (Injector, error) {
	return &NoopInjector{}, ErrUnsupported
}
