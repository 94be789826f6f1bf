package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestSaveLoad_RoundTrip verifies saving and loading preserves the document.
func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	in := Defaults()
	in.Settings = in.Settings.WithFixedLocation(400, 300)
	in.Settings.RepeatMode = RepeatModeCount
	in.Settings.RepeatCount = 5
	in.Metadata.TotalClicks = 42

	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.FixedZone("X", 3600))
	saved, err := Save(path, in, now)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if saved.Metadata.LastModified != "2026-03-04T04:06:07Z" {
		t.Fatalf("unexpected stamp %q", saved.Metadata.LastModified)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if out != saved {
		t.Fatalf("expected %+v, got %+v", saved, out)
	}
}

// TestLoad_MissingFile_ReturnsDefaults verifies missing files return defaults.
func TestLoad_MissingFile_ReturnsDefaults(t *testing.T) {
	out, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if out != Defaults() {
		t.Fatalf("expected defaults, got %+v", out)
	}
}

// TestLoad_PartialFile_KeepsDefaults verifies absent keys keep their default values.
func TestLoad_PartialFile_KeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	body := "settings:\n  mouse_button: right\nmetadata:\n  total_clicks: 7\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.Settings.MouseButton != "right" || out.Settings.Milliseconds != 100 || out.Metadata.TotalClicks != 7 {
		t.Fatalf("unexpected merge %+v", out)
	}
	if out.AppInfo.Name != "LazyFinger" {
		t.Fatalf("expected default app info, got %+v", out.AppInfo)
	}
}

// TestLoad_Malformed verifies a broken file reports an error and defaults.
func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("settings: [oops"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "parse") {
		t.Fatalf("expected parse error, got %v", err)
	}
	if out != Defaults() {
		t.Fatalf("expected defaults on error")
	}
}

// TestLoad_IgnoresHotkeyKey verifies an old hotkey entry neither fails the load nor survives a save.
func TestLoad_IgnoresHotkeyKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	body := "settings:\n  hotkey: banana\n  mouse_button: middle\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.Settings.MouseButton != "middle" {
		t.Fatalf("unexpected settings %+v", out.Settings)
	}
	if _, err := Save(path, out, time.Now()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(string(raw), "hotkey") {
		t.Fatalf("hotkey written back: %s", raw)
	}
}
