package clicker

import (
	"errors"
	"testing"
	"time"

	"github.com/frudas24/lazyfinger/internal/mouse"
)

// TestIntervalFromParts verifies the four interval fields are summed.
func TestIntervalFromParts(t *testing.T) {
	got := IntervalFromParts(1, 2, 3, 4)
	want := time.Hour + 2*time.Minute + 3*time.Second + 4*time.Millisecond
	if got != want {
		t.Fatalf("IntervalFromParts = %s, want %s", got, want)
	}
	if IntervalFromParts(0, 0, 0, 0) != 0 {
		t.Fatalf("expected zero interval")
	}
}

// TestClickConfig_Validate verifies each invalid field is reported.
func TestClickConfig_Validate(t *testing.T) {
	valid := ClickConfig{Interval: 100 * time.Millisecond, Button: mouse.Left, Repeat: RepeatInfinite()}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	zero := ClickConfig{Repeat: RepeatCount(1)}
	if err := zero.Validate(); err != nil {
		t.Fatalf("zero interval rejected: %v", err)
	}

	cases := []struct {
		name  string
		mut   func(*ClickConfig)
		field string
	}{
		{"negative interval", func(c *ClickConfig) { c.Interval = -time.Millisecond }, "interval"},
		{"negative jitter", func(c *ClickConfig) { c.JitterMax = -1 }, "jitter"},
		{"bad button", func(c *ClickConfig) { c.Button = mouse.Button(9) }, "button"},
		{"bad click type", func(c *ClickConfig) { c.ClickType = ClickType(7) }, "clickType"},
		{"zero count", func(c *ClickConfig) { c.Repeat = RepeatCount(0) }, "repeat"},
		{"negative count", func(c *ClickConfig) { c.Repeat = RepeatCount(-3) }, "repeat"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mut(&cfg)
			err := cfg.Validate()
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if cfgErr.Field != tc.field {
				t.Fatalf("field = %q, want %q", cfgErr.Field, tc.field)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig")
			}
		})
	}
}

// TestTargetAndRepeatStrings verifies the log descriptions.
func TestTargetAndRepeatStrings(t *testing.T) {
	if got := CurrentLocation().String(); got != "current" {
		t.Fatalf("current = %q", got)
	}
	if got := FixedLocation(400, 300).String(); got != "(400,300)" {
		t.Fatalf("fixed = %q", got)
	}
	if got := RepeatCount(5).String(); got != "count(5)" {
		t.Fatalf("count = %q", got)
	}
	if got := RepeatInfinite().String(); got != "infinite" {
		t.Fatalf("infinite = %q", got)
	}
	if ClickDouble.String() != "double" || ClickSingle.String() != "single" {
		t.Fatalf("unexpected click type names")
	}
}
