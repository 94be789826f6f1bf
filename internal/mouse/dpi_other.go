//go:build !windows

// Package mouse defines synthetic mouse input injection.
package mouse

// DPIAwareness reports the DPI awareness applied at process start.
// Only Windows virtualizes coordinates per process.
func DPIAwareness() string {
	return "native"
}
