package control

import (
	"testing"

	"github.com/frudas24/lazyfinger/internal/monitor"
)

// TestNormToAbs_TopLeft verifies the top-left mapping.
func TestNormToAbs_TopLeft(t *testing.T) {
	m := monitor.Monitor{X: 100, Y: 200, W: 300, H: 400}
	x, y := NormToAbs(0, 0, m)
	if x != 100 || y != 200 {
		t.Fatalf("expected (100,200), got (%d,%d)", x, y)
	}
}

// TestNormToAbs_Center verifies center mapping.
func TestNormToAbs_Center(t *testing.T) {
	m := monitor.Monitor{X: 100, Y: 200, W: 300, H: 400}
	x, y := NormToAbs(0.5, 0.5, m)
	if x != 250 || y != 400 {
		t.Fatalf("expected (250,400), got (%d,%d)", x, y)
	}
}

// TestNormToAbs_BottomRight verifies bottom-right mapping.
func TestNormToAbs_BottomRight(t *testing.T) {
	m := monitor.Monitor{X: 100, Y: 200, W: 300, H: 400}
	x, y := NormToAbs(1, 1, m)
	if x != 399 || y != 599 {
		t.Fatalf("expected (399,599), got (%d,%d)", x, y)
	}
}

// TestNormToAbs_NegativeOrigin verifies monitors left of the primary map correctly.
func TestNormToAbs_NegativeOrigin(t *testing.T) {
	m := monitor.Monitor{X: -1280, Y: 0, W: 1281, H: 1025}
	x, y := NormToAbs(0.5, 0.5, m)
	if x != -640 || y != 512 {
		t.Fatalf("expected (-640,512), got (%d,%d)", x, y)
	}
}

// TestNormToAbs_ClampOutOfRange verifies normalization clamps out-of-range values.
func TestNormToAbs_ClampOutOfRange(t *testing.T) {
	m := monitor.Monitor{X: 100, Y: 200, W: 300, H: 400}
	x, y := NormToAbs(-1, 2, m)
	if x != 100 || y != 599 {
		t.Fatalf("expected clamped (100,599), got (%d,%d)", x, y)
	}
}
