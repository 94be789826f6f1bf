//go:build linux

// Package hotkey registers the global start/stop hotkey.
package hotkey

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

type x11Listener struct {
	conn *xgb.Conn
	root xproto.Window
	keys []xproto.Keycode

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// Listen grabs key on the X11 root window and calls fn on every press.
func Listen(key string, fn func(), logger *slog.Logger) (Listener, error) {
	if logger == nil {
		logger = slog.Default()
	}
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}
	conn := xu.Conn()
	keybind.Initialize(xu)

	codes := keybind.StrToKeycodes(xu, key)
	if len(codes) == 0 {
		conn.Close()
		return nil, fmt.Errorf("unknown hotkey %q", key)
	}

	l := &x11Listener{
		conn:   conn,
		root:   xu.RootWin(),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	for _, code := range codes {
		if err := xproto.GrabKeyChecked(
			conn,
			false,
			l.root,
			xproto.ModMaskAny,
			code,
			xproto.GrabModeAsync,
			xproto.GrabModeAsync,
		).Check(); err != nil {
			l.ungrab()
			conn.Close()
			return nil, fmt.Errorf("grab hotkey %s: %w", key, err)
		}
		l.keys = append(l.keys, code)
	}

	go l.eventLoop(fn, logger)
	return l, nil
}

func (l *x11Listener) eventLoop(fn func(), logger *slog.Logger) {
	defer close(l.doneCh)

	var latch keyLatch

	for {
		event, xerr := l.conn.WaitForEvent()
		if xerr != nil {
			select {
			case <-l.stopCh:
				return
			default:
			}
			logger.Warn("X11 hotkey event error", "err", xerr)
			continue
		}
		if event == nil {
			return
		}
		switch ev := event.(type) {
		case xproto.KeyPressEvent:
			if latch.press(uint32(ev.Time)) && fn != nil {
				fn()
			}
		case xproto.KeyReleaseEvent:
			latch.release(uint32(ev.Time))
		}
	}
}

func (l *x11Listener) ungrab() {
	for _, code := range l.keys {
		xproto.UngrabKey(l.conn, code, l.root, xproto.ModMaskAny)
	}
	l.keys = nil
}

// Close releases the grab and waits for the event loop to exit.
func (l *x11Listener) Close() error {
	l.stopOnce.Do(func() {
		close(l.stopCh)
		l.ungrab()
		l.conn.Close()
		<-l.doneCh
	})
	return nil
}
