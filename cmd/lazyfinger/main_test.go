package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/frudas24/lazyfinger/internal/clicker"
	"github.com/frudas24/lazyfinger/internal/mouse"
)

// TestClickFlags_Defaults verifies the default flags click left at the cursor until stopped.
func TestClickFlags_Defaults(t *testing.T) {
	f := clickFlags{interval: 100 * time.Millisecond, button: "left"}
	cfg, err := f.clickConfig()
	if err != nil {
		t.Fatalf("clickConfig: %v", err)
	}
	if cfg.Interval != 100*time.Millisecond || cfg.Button != mouse.Left || cfg.JitterEnabled {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if !cfg.Repeat.Infinite || cfg.Target.Fixed || cfg.ClickType != clicker.ClickSingle {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

// TestClickFlags_Full verifies every flag reaches the config.
func TestClickFlags_Full(t *testing.T) {
	f := clickFlags{
		interval: time.Second,
		jitter:   200 * time.Millisecond,
		button:   "right",
		double:   true,
		count:    5,
		x:        400,
		y:        300,
		fixed:    true,
	}
	cfg, err := f.clickConfig()
	if err != nil {
		t.Fatalf("clickConfig: %v", err)
	}
	if !cfg.JitterEnabled || cfg.JitterMax != 200*time.Millisecond || cfg.Button != mouse.Right {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.ClickType != clicker.ClickDouble || cfg.Repeat != clicker.RepeatCount(5) || cfg.Target != clicker.FixedLocation(400, 300) {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

// TestClickFlags_Invalid verifies bad flags are rejected before any click.
func TestClickFlags_Invalid(t *testing.T) {
	if _, err := (clickFlags{button: "thumb"}).clickConfig(); err == nil {
		t.Fatalf("expected button error")
	}
	if _, err := (clickFlags{count: -1}).clickConfig(); !errors.Is(err, clicker.ErrInvalidConfig) {
		t.Fatalf("expected count error, got %v", err)
	}
	if _, err := (clickFlags{interval: -time.Second}).clickConfig(); !errors.Is(err, clicker.ErrInvalidConfig) {
		t.Fatalf("expected interval error, got %v", err)
	}
}

// TestVersionCmd verifies the version output.
func TestVersionCmd(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out.String(), "lazyfinger version dev") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

// TestLocalURL verifies wildcard hosts map to localhost.
func TestLocalURL(t *testing.T) {
	cases := map[string]string{
		"0.0.0.0:8788":   "http://localhost:8788",
		"127.0.0.1:8788": "http://127.0.0.1:8788",
		":9000":          "http://localhost:9000",
		"bad":            "",
	}
	for in, want := range cases {
		if got := localURL(in); got != want {
			t.Fatalf("localURL(%q) = %q, want %q", in, got, want)
		}
	}
}
