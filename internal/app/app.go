// Package app wires the click scheduler, control surface and hotkey together.
package app

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/frudas24/lazyfinger/internal/clicker"
	"github.com/frudas24/lazyfinger/internal/config"
	"github.com/frudas24/lazyfinger/internal/control"
	"github.com/frudas24/lazyfinger/internal/events"
	"github.com/frudas24/lazyfinger/internal/hotkey"
	"github.com/frudas24/lazyfinger/internal/monitor"
	"github.com/frudas24/lazyfinger/internal/mouse"
	"github.com/frudas24/lazyfinger/internal/session"
	"github.com/frudas24/lazyfinger/internal/settings"
)

// App coordinates the HTTP API, the control websocket and the click scheduler.
type App struct {
	cfg       config.Config
	logger    *slog.Logger
	session   *session.Session
	injector  mouse.Injector
	bus       *events.Bus
	scheduler *clicker.Scheduler
	control   *control.Server

	mu       sync.Mutex
	monitors []monitor.Monitor
	hotkey   hotkey.Listener

	saveMu    sync.Mutex
	closeOnce sync.Once
}

// New creates a new application with its dependencies wired.
func New(cfg config.Config, sess *session.Session, injector mouse.Injector, logger *slog.Logger) (*App, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	if injector == nil {
		return nil, errors.New("injector is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	dispatcher, err := clicker.NewDispatcher(injector, cfg.DoubleClickGap())
	if err != nil {
		return nil, err
	}

	app := &App{
		cfg:      cfg,
		logger:   logger,
		session:  sess,
		injector: injector,
		bus:      events.New(200),
	}

	app.scheduler, err = clicker.NewScheduler(clicker.Options{
		Dispatcher:      dispatcher,
		Logger:          logger,
		Publisher:       events.PublisherFunc(app.publish),
		DispatchTimeout: cfg.DispatchTimeout(),
	})
	if err != nil {
		return nil, err
	}

	app.control = control.NewServer(control.Options{
		Session:      sess,
		Runner:       app,
		Events:       app.bus,
		Monitors:     app.ListMonitors,
		Cursor:       injector,
		SaveSettings: app.SaveSettings,
		Logger:       logger,
	})

	return app, nil
}

// Start loads the monitor layout and registers the global hotkey.
func (a *App) Start() error {
	monitors, err := monitor.ListMonitors()
	if err != nil {
		a.logger.Warn("monitor enumeration unavailable", "err", err)
	}
	a.mu.Lock()
	a.monitors = monitors
	a.mu.Unlock()

	if cfg, err := a.ClickConfig(); err == nil {
		a.warnOffscreen(cfg)
	}

	if !a.cfg.HotkeyEnabled {
		return nil
	}
	key := hotkey.DefaultKey
	debounce := hotkey.NewDebouncer(hotkey.DefaultDebounce, a.onHotkey)
	listener, err := hotkey.Listen(key, debounce.Fire, a.logger)
	if err != nil {
		a.logger.Warn("global hotkey unavailable", "key", key, "err", err)
		return nil
	}
	a.mu.Lock()
	a.hotkey = listener
	a.mu.Unlock()
	a.logger.Info("global hotkey registered", "key", key)
	return nil
}

// Close stops the run, releases the hotkey and persists settings.
func (a *App) Close() error {
	var saveErr error
	a.closeOnce.Do(func() {
		a.mu.Lock()
		listener := a.hotkey
		a.hotkey = nil
		a.mu.Unlock()
		if listener != nil {
			_ = listener.Close()
		}

		a.scheduler.Stop()
		a.scheduler.Wait()
		saveErr = a.SaveSettings()
		a.bus.Close()
	})
	return saveErr
}

// ClickConfig converts the session settings into a run configuration.
func (a *App) ClickConfig() (clicker.ClickConfig, error) {
	return a.session.Settings().ToClickConfig()
}

// StartRun begins a run from the current settings. An active run is left untouched.
func (a *App) StartRun() error {
	cfg, err := a.ClickConfig()
	if err != nil {
		return err
	}
	a.warnOffscreen(cfg)
	if err := a.scheduler.Start(cfg); err != nil && !errors.Is(err, clicker.ErrAlreadyRunning) {
		return err
	}
	return nil
}

// Stop cancels the active run, if any.
func (a *App) Stop() {
	a.scheduler.Stop()
}

// Toggle stops an active run or starts one from the current settings.
// An active run is always stoppable even when the stored settings are invalid.
func (a *App) Toggle() (bool, error) {
	cfg, err := a.ClickConfig()
	if err != nil {
		if a.scheduler.IsRunning() {
			a.scheduler.Stop()
			return false, nil
		}
		return false, err
	}
	running, err := a.scheduler.Toggle(cfg)
	if err == nil && running {
		a.warnOffscreen(cfg)
	}
	return running, err
}

// Status returns the scheduler status.
func (a *App) Status() clicker.Status {
	return a.scheduler.Status()
}

// ListMonitors returns the cached monitor list.
func (a *App) ListMonitors() ([]monitor.Monitor, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.monitors) == 0 {
		return nil, monitor.ErrUnsupported
	}
	out := make([]monitor.Monitor, len(a.monitors))
	copy(out, a.monitors)
	return out, nil
}

// SaveSettings writes the session document to the settings path.
func (a *App) SaveSettings() error {
	a.saveMu.Lock()
	defer a.saveMu.Unlock()
	saved, err := settings.Save(a.cfg.SettingsPath, a.session.Document(), time.Now())
	if err != nil {
		return err
	}
	a.session.MarkSaved(saved)
	return nil
}

// Events returns the status event bus.
func (a *App) Events() *events.Bus {
	return a.bus
}

// Control returns the control websocket handler.
func (a *App) Control() *control.Server {
	return a.control
}

// publish folds finished runs into the click total and forwards to the bus.
func (a *App) publish(ev events.Event) {
	if ev.Type == events.TypeRunStopped {
		a.session.AddClicks(ev.Clicks)
	}
	a.bus.Publish(ev)
}

// onHotkey toggles the scheduler from the hotkey listener.
func (a *App) onHotkey() {
	running, err := a.Toggle()
	if err != nil {
		a.logger.Warn("hotkey toggle rejected", "err", err)
		return
	}
	a.logger.Debug("hotkey toggled", "running", running)
}

// warnOffscreen logs when a fixed target lies outside every known monitor.
func (a *App) warnOffscreen(cfg clicker.ClickConfig) {
	if !cfg.Target.Fixed {
		return
	}
	a.mu.Lock()
	monitors := a.monitors
	a.mu.Unlock()
	if len(monitors) == 0 {
		return
	}
	if _, ok := monitor.FindContaining(monitors, cfg.Target.X, cfg.Target.Y); !ok {
		a.logger.Warn("fixed click target is outside every monitor", "target", cfg.Target.String())
	}
}
