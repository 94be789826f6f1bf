//go:build windows

package mouse

import "testing"

// TestDPIAwareness_EnabledAtStart verifies the process opts out of DPI virtualization.
func TestDPIAwareness_EnabledAtStart(t *testing.T) {
	if got := DPIAwareness(); got == "unaware" || got == "" {
		t.Fatalf("expected DPI awareness enabled, got %q", got)
	}
	if again := enableDPIAwareness(); again == "unaware" {
		t.Fatalf("expected repeat call to report an aware process, got %q", again)
	}
}
