package mouse

import (
	"errors"
	"testing"
)

// TestParseButton_Names verifies button names parse case-insensitively.
func TestParseButton_Names(t *testing.T) {
	cases := map[string]Button{
		"left":   Left,
		"Right":  Right,
		"MIDDLE": Middle,
		"":       Left,
	}
	for name, want := range cases {
		got, err := ParseButton(name)
		if err != nil {
			t.Fatalf("ParseButton(%q) error = %v", name, err)
		}
		if got != want {
			t.Fatalf("ParseButton(%q) = %s, want %s", name, got, want)
		}
	}
}

// TestParseButton_Unknown verifies unknown names are rejected.
func TestParseButton_Unknown(t *testing.T) {
	if _, err := ParseButton("side"); err == nil {
		t.Fatalf("expected error for unknown button")
	}
}

// TestButton_StringRoundTrip verifies String output parses back to the same button.
func TestButton_StringRoundTrip(t *testing.T) {
	for _, b := range []Button{Left, Right, Middle} {
		got, err := ParseButton(b.String())
		if err != nil || got != b {
			t.Fatalf("round trip %s: got %s err=%v", b, got, err)
		}
	}
	if Button(7).Valid() {
		t.Fatalf("expected out-of-range button to be invalid")
	}
}

// TestNoopInjector_Unsupported verifies the placeholder injector reports ErrUnsupported.
func TestNoopInjector_Unsupported(t *testing.T) {
	var inj Injector = &NoopInjector{}
	if err := inj.MoveAbs(1, 2); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("MoveAbs error = %v", err)
	}
	if err := inj.ButtonDown(Left); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("ButtonDown error = %v", err)
	}
	if err := inj.ButtonUp(Left); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("ButtonUp error = %v", err)
	}
	if _, _, err := inj.CursorPos(); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("CursorPos error = %v", err)
	}
	if err := inj.Close(); err != nil {
		t.Fatalf("Close error = %v", err)
	}
}
