// Package clicker schedules and dispatches synthetic mouse clicks.
package clicker

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig marks a ClickConfig that cannot start a run.
	ErrInvalidConfig = errors.New("invalid click configuration")
	// ErrDispatch marks a failed click attempt. It never stops a run.
	ErrDispatch = errors.New("click dispatch failed")
	// ErrAlreadyRunning is returned by Start while a run is active. Callers treat it as a no-op.
	ErrAlreadyRunning = errors.New("click scheduler already running")
)

// ConfigError describes an invalid ClickConfig field.
type ConfigError struct {
	Field  string
	Reason string
}

// Error implements error.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidConfig.Error(), e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
