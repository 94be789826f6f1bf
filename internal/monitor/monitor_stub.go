//go:build !windows && !linux

// Package monitor describes display geometry and enumeration.
package monitor

// ListMonitors reports ErrUnsupported on platforms without a display backend.
func ListMonitors() ([]Monitor, error) {
	return nil, ErrUnsupported
}
