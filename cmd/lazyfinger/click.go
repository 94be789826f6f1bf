// Package main runs the LazyFinger auto clicker.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frudas24/lazyfinger/internal/clicker"
	"github.com/frudas24/lazyfinger/internal/events"
	"github.com/frudas24/lazyfinger/internal/logging"
	"github.com/frudas24/lazyfinger/internal/mouse"
	"github.com/spf13/cobra"
)

// clickFlags holds the headless run options.
type clickFlags struct {
	interval  time.Duration
	jitter    time.Duration
	button    string
	double    bool
	count     int
	x         int
	y         int
	fixed     bool
	gap       time.Duration
	logLevel  string
	logFormat string
}

func newClickCmd() *cobra.Command {
	var f clickFlags
	cmd := &cobra.Command{
		Use:   "click",
		Short: "Run the clicker headless until the count is reached or interrupted",
		Example: `  lazyfinger click --interval 100ms --count 5
  lazyfinger click --interval 1s --jitter 200ms --x 400 --y 300`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.fixed = cmd.Flags().Changed("x") || cmd.Flags().Changed("y")
			cfg, err := f.clickConfig()
			if err != nil {
				return err
			}
			return runClick(cmd, cfg, f)
		},
	}
	cmd.Flags().DurationVar(&f.interval, "interval", 100*time.Millisecond, "Delay before each click")
	cmd.Flags().DurationVar(&f.jitter, "jitter", 0, "Maximum random delay added to each interval")
	cmd.Flags().StringVar(&f.button, "button", "left", "Mouse button: left, right or middle")
	cmd.Flags().BoolVar(&f.double, "double", false, "Issue double clicks")
	cmd.Flags().IntVar(&f.count, "count", 0, "Number of clicks; 0 clicks until interrupted")
	cmd.Flags().IntVar(&f.x, "x", 0, "Fixed target X coordinate")
	cmd.Flags().IntVar(&f.y, "y", 0, "Fixed target Y coordinate")
	cmd.Flags().DurationVar(&f.gap, "double-gap", clicker.DefaultDoubleClickGap, "Pause between the pulses of a double click")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	cmd.Flags().StringVar(&f.logFormat, "log-format", "text", "Log format: text or json")
	return cmd
}

// clickConfig converts the flags into a validated ClickConfig.
func (f clickFlags) clickConfig() (clicker.ClickConfig, error) {
	button, err := mouse.ParseButton(f.button)
	if err != nil {
		return clicker.ClickConfig{}, err
	}
	cfg := clicker.ClickConfig{
		Interval:      f.interval,
		JitterEnabled: f.jitter > 0,
		JitterMax:     f.jitter,
		Button:        button,
		ClickType:     clicker.ClickSingle,
		Target:        clicker.CurrentLocation(),
		Repeat:        clicker.RepeatInfinite(),
	}
	if f.double {
		cfg.ClickType = clicker.ClickDouble
	}
	if f.fixed {
		cfg.Target = clicker.FixedLocation(f.x, f.y)
	}
	if f.count < 0 {
		return clicker.ClickConfig{}, &clicker.ConfigError{Field: "count", Reason: "must be >= 0"}
	}
	if f.count > 0 {
		cfg.Repeat = clicker.RepeatCount(f.count)
	}
	if err := cfg.Validate(); err != nil {
		return clicker.ClickConfig{}, err
	}
	return cfg, nil
}

// runClick drives one run and blocks until it completes or a signal arrives.
func runClick(cmd *cobra.Command, cfg clicker.ClickConfig, f clickFlags) error {
	logger, err := logging.New(logging.Options{Level: f.logLevel, Format: f.logFormat, Output: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}

	injector, err := mouse.NewInjector()
	if err != nil {
		return err
	}
	defer injector.Close()

	dispatcher, err := clicker.NewDispatcher(injector, f.gap)
	if err != nil {
		return err
	}

	done := make(chan events.Event, 1)
	scheduler, err := clicker.NewScheduler(clicker.Options{
		Dispatcher: dispatcher,
		Logger:     logger,
		Publisher: events.PublisherFunc(func(ev events.Event) {
			if ev.Type == events.TypeRunStopped {
				select {
				case done <- ev:
				default:
				}
			}
		}),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := scheduler.Start(cfg); err != nil {
		return err
	}

	var last events.Event
	select {
	case last = <-done:
	case <-ctx.Done():
		scheduler.Stop()
		last = <-done
	}
	scheduler.Wait()

	fmt.Fprintf(cmd.OutOrStdout(), "%d clicks, %d failed (%s)\n", last.Clicks, last.Failures, last.Reason)
	return nil
}
