//go:build !windows && !linux

// Package hotkey registers the global start/stop hotkey.
package hotkey

import "log/slog"

// Listen reports ErrUnsupported on platforms without a hotkey backend.
func Listen(key string, fn func(), logger *slog.Logger) (Listener, error) {
	return nil, ErrUnsupported
}
