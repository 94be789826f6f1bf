// Package main runs the LazyFinger auto clicker.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/frudas24/lazyfinger/internal/app"
	"github.com/frudas24/lazyfinger/internal/config"
	"github.com/frudas24/lazyfinger/internal/logging"
	"github.com/frudas24/lazyfinger/internal/mouse"
	"github.com/frudas24/lazyfinger/internal/session"
	"github.com/frudas24/lazyfinger/internal/settings"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var staticDir string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the control panel, hotkey listener and click scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), staticDir)
		},
	}
	cmd.Flags().StringVar(&staticDir, "static-dir", "", "Serve UI assets from this directory instead of the embedded copy")
	return cmd
}

// runServe wires the application and blocks until shutdown.
func runServe(parent context.Context, staticDir string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	logStartup(logger, cfg)

	doc, err := settings.Load(cfg.SettingsPath)
	if err != nil {
		logger.Warn("settings unreadable, using defaults", "path", cfg.SettingsPath, "err", err)
	}
	sess := session.New(cfg.UIPassword, doc)

	injector, err := mouse.NewInjector()
	if err != nil {
		logger.Warn("mouse injection unavailable, clicks will fail", "err", err)
	}
	logger.Info("dpi awareness", "mode", mouse.DPIAwareness())

	appInstance, err := app.New(cfg, sess, injector, logger)
	if err != nil {
		return err
	}
	if err := appInstance.Start(); err != nil {
		return err
	}
	defer func() {
		if err := appInstance.Close(); err != nil {
			logger.Warn("shutdown", "err", err)
		}
		_ = injector.Close()
	}()

	mux := http.NewServeMux()
	appInstance.RegisterRoutes(mux, staticDir)
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// logStartup reports configuration checks and connection info.
func logStartup(logger *slog.Logger, cfg config.Config) {
	logger.Info("LazyFinger starting", "version", version)

	envPath := filepath.Join(cfg.DataDir, ".env")
	if fileExists(envPath) {
		logger.Info("env check: ok", "path", envPath)
	} else {
		logger.Info("env check: missing", "path", envPath)
	}
	if cfg.UIPassword == "" {
		logger.Info("UI_PASSWORD not set, control panel is open")
	}
	logger.Info("settings file", "path", cfg.SettingsPath)

	logger.Info("listen addr", "addr", cfg.ListenAddr)
	if url := localURL(cfg.ListenAddr); url != "" {
		logger.Info("local url", "url", url)
	}
}

// localURL returns a browsable URL for addr.
func localURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return ""
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

// fileExists reports whether a path exists and is a file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
