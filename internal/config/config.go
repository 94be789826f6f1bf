// Package config loads environment configuration for LazyFinger.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultListenAddr        = "127.0.0.1:8788"
	defaultDataDir           = "./data"
	defaultLogLevel          = "info"
	defaultLogFormat         = "text"
	defaultDoubleClickGapMs  = 30
	defaultDispatchTimeoutMs = 2000
	defaultHotkeyEnabled     = true
)

// Config holds runtime configuration values.
type Config struct {
	ListenAddr        string
	UIPassword        string
	DataDir           string
	SettingsPath      string
	LogLevel          string
	LogFormat         string
	DoubleClickGapMs  int
	DispatchTimeoutMs int
	HotkeyEnabled     bool
}

// DoubleClickGap returns the pause between the two pulses of a double click.
func (c Config) DoubleClickGap() time.Duration {
	return time.Duration(c.DoubleClickGapMs) * time.Millisecond
}

// DispatchTimeout returns the bound on a single click dispatch.
func (c Config) DispatchTimeout() time.Duration {
	return time.Duration(c.DispatchTimeoutMs) * time.Millisecond
}

// Load reads configuration from ./data/.env and environment variables.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:        defaultListenAddr,
		DataDir:           defaultDataDir,
		SettingsPath:      filepath.Join(defaultDataDir, "settings.yaml"),
		LogLevel:          defaultLogLevel,
		LogFormat:         defaultLogFormat,
		DoubleClickGapMs:  defaultDoubleClickGapMs,
		DispatchTimeoutMs: defaultDispatchTimeoutMs,
		HotkeyEnabled:     defaultHotkeyEnabled,
	}

	if err := loadEnvFile(filepath.Join(cfg.DataDir, ".env")); err != nil {
		return Config{}, err
	}

	cfg.ListenAddr = envString("LISTEN_ADDR", cfg.ListenAddr)
	cfg.DataDir = envString("DATA_DIR", cfg.DataDir)
	cfg.SettingsPath = envString("SETTINGS_PATH", filepath.Join(cfg.DataDir, "settings.yaml"))
	cfg.UIPassword = strings.TrimSpace(os.Getenv("UI_PASSWORD"))
	cfg.LogLevel = strings.ToLower(envString("LOG_LEVEL", cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(envString("LOG_FORMAT", cfg.LogFormat))
	cfg.HotkeyEnabled = envBool("HOTKEY_ENABLED", cfg.HotkeyEnabled)

	gap, err := envInt("DOUBLE_CLICK_GAP_MS", cfg.DoubleClickGapMs)
	if err != nil {
		return Config{}, err
	}
	if gap <= 0 {
		return Config{}, errors.New("DOUBLE_CLICK_GAP_MS must be > 0")
	}
	cfg.DoubleClickGapMs = gap

	timeout, err := envInt("DISPATCH_TIMEOUT_MS", cfg.DispatchTimeoutMs)
	if err != nil {
		return Config{}, err
	}
	if timeout <= 0 {
		return Config{}, errors.New("DISPATCH_TIMEOUT_MS must be > 0")
	}
	cfg.DispatchTimeoutMs = timeout

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error")
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("LOG_FORMAT must be text or json")
	}

	return cfg, nil
}

// envString returns an env override when present, otherwise a default.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt returns an int env override when present, otherwise a default.
func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

// envBool returns a bool env override when present, otherwise a default.
func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// loadEnvFile loads KEY=VALUE pairs from a .env file.
func loadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}
	}

	return nil
}

// parseEnvLine parses a single .env line into key/value.
func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	if strings.HasPrefix(line, "export ") {
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
	}
	parts := strings.SplitN(line, "=", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", false
	}
	value = strings.Trim(value, `"'`)
	return key, value, true
}
