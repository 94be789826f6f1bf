// Package settings holds the form-shaped click settings and their persisted document.
package settings

import (
	"fmt"
	"strings"

	"github.com/frudas24/lazyfinger/internal/clicker"
	"github.com/frudas24/lazyfinger/internal/mouse"
)

// Repeat and cursor modes as stored in the settings file.
const (
	RepeatModeCount        = "repeat"
	RepeatModeUntilStopped = "until_stopped"
	CursorModeCurrent      = "current"
	CursorModePick         = "pick"
)

// AppInfo identifies the application that wrote the document.
type AppInfo struct {
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`
}

// Form mirrors the control-surface form. Durations are split into their parts.
type Form struct {
	Hours           int    `yaml:"hours" json:"hours"`
	Minutes         int    `yaml:"minutes" json:"minutes"`
	Seconds         int    `yaml:"seconds" json:"seconds"`
	Milliseconds    int    `yaml:"milliseconds" json:"milliseconds"`
	UseRandomOffset bool   `yaml:"use_random_offset" json:"useRandomOffset"`
	RandomOffset    int    `yaml:"random_offset" json:"randomOffset"`
	MouseButton     string `yaml:"mouse_button" json:"mouseButton"`
	ClickType       string `yaml:"click_type" json:"clickType"`
	RepeatMode      string `yaml:"repeat_mode" json:"repeatMode"`
	RepeatCount     int    `yaml:"repeat_count" json:"repeatCount"`
	CursorMode      string `yaml:"cursor_mode" json:"cursorMode"`
	X               int    `yaml:"x" json:"x"`
	Y               int    `yaml:"y" json:"y"`
}

// Metadata tracks bookkeeping for the document.
type Metadata struct {
	LastModified string `yaml:"last_modified" json:"lastModified"`
	TotalClicks  int64  `yaml:"total_clicks" json:"totalClicks"`
}

// Document is the persisted settings file.
type Document struct {
	AppInfo  AppInfo  `yaml:"app_info" json:"appInfo"`
	Settings Form     `yaml:"settings" json:"settings"`
	Metadata Metadata `yaml:"metadata" json:"metadata"`
}

// DefaultForm returns the form shown on first launch.
func DefaultForm() Form {
	return Form{
		Milliseconds: 100,
		RandomOffset: 40,
		MouseButton:  "left",
		ClickType:    "single",
		RepeatMode:   RepeatModeUntilStopped,
		RepeatCount:  1,
		CursorMode:   CursorModeCurrent,
	}
}

// Defaults returns a fresh document.
func Defaults() Document {
	return Document{
		AppInfo:  AppInfo{Name: "LazyFinger", Version: "1.0.0"},
		Settings: DefaultForm(),
	}
}

// WithFixedLocation switches the form to a picked location.
func (f Form) WithFixedLocation(x, y int) Form {
	f.CursorMode = CursorModePick
	f.X = x
	f.Y = y
	return f
}

// ToClickConfig converts the form into a validated ClickConfig.
func (f Form) ToClickConfig() (clicker.ClickConfig, error) {
	parts := []struct {
		name  string
		value int
	}{
		{"hours", f.Hours},
		{"minutes", f.Minutes},
		{"seconds", f.Seconds},
		{"milliseconds", f.Milliseconds},
		{"random_offset", f.RandomOffset},
	}
	for _, p := range parts {
		if p.value < 0 {
			return clicker.ClickConfig{}, &clicker.ConfigError{Field: p.name, Reason: "must be >= 0"}
		}
	}

	button, err := mouse.ParseButton(f.MouseButton)
	if err != nil {
		return clicker.ClickConfig{}, &clicker.ConfigError{Field: "mouse_button", Reason: err.Error()}
	}

	var clickType clicker.ClickType
	switch strings.ToLower(strings.TrimSpace(f.ClickType)) {
	case "", "single":
		clickType = clicker.ClickSingle
	case "double":
		clickType = clicker.ClickDouble
	default:
		return clicker.ClickConfig{}, &clicker.ConfigError{Field: "click_type", Reason: fmt.Sprintf("unknown click type %q", f.ClickType)}
	}

	var repeat clicker.Repeat
	switch strings.ToLower(strings.TrimSpace(f.RepeatMode)) {
	case "", RepeatModeUntilStopped:
		repeat = clicker.RepeatInfinite()
	case RepeatModeCount:
		repeat = clicker.RepeatCount(f.RepeatCount)
	default:
		return clicker.ClickConfig{}, &clicker.ConfigError{Field: "repeat_mode", Reason: fmt.Sprintf("unknown repeat mode %q", f.RepeatMode)}
	}

	var target clicker.Target
	switch strings.ToLower(strings.TrimSpace(f.CursorMode)) {
	case "", CursorModeCurrent:
		target = clicker.CurrentLocation()
	case CursorModePick:
		target = clicker.FixedLocation(f.X, f.Y)
	default:
		return clicker.ClickConfig{}, &clicker.ConfigError{Field: "cursor_mode", Reason: fmt.Sprintf("unknown cursor mode %q", f.CursorMode)}
	}

	cfg := clicker.ClickConfig{
		Interval:      clicker.IntervalFromParts(f.Hours, f.Minutes, f.Seconds, f.Milliseconds),
		JitterEnabled: f.UseRandomOffset,
		JitterMax:     clicker.IntervalFromParts(0, 0, 0, f.RandomOffset),
		Button:        button,
		ClickType:     clickType,
		Target:        target,
		Repeat:        repeat,
	}
	if err := cfg.Validate(); err != nil {
		return clicker.ClickConfig{}, err
	}
	return cfg, nil
}
