//go:build windows

// Package hotkey registers the global start/stop hotkey.
package hotkey

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	hotkeyID    = 1
	modNoRepeat = 0x4000
	wmHotkey    = 0x0312
	wmQuit      = 0x0012
	vkF1        = 0x70
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procRegisterHotKey     = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey   = user32.NewProc("UnregisterHotKey")
	procGetMessageW        = user32.NewProc("GetMessageW")
	procPostThreadMessageW = user32.NewProc("PostThreadMessageW")
)

type point struct {
	X int32
	Y int32
}

type message struct {
	Hwnd     uintptr
	Message  uint32
	WParam   uintptr
	LParam   uintptr
	Time     uint32
	Pt       point
	LPrivate uint32
}

type winListener struct {
	threadID atomic.Uint32
	done     chan struct{}
	once     sync.Once
}

// Listen registers key with RegisterHotKey and calls fn on every press.
func Listen(key string, fn func(), logger *slog.Logger) (Listener, error) {
	n, ok := functionKey(key)
	if !ok {
		return nil, fmt.Errorf("unsupported hotkey %q", key)
	}
	if logger == nil {
		logger = slog.Default()
	}
	l := &winListener{done: make(chan struct{})}
	ready := make(chan error, 1)
	go l.loop(key, uintptr(vkF1+n-1), fn, logger, ready)
	if err := <-ready; err != nil {
		return nil, err
	}
	return l, nil
}

// loop owns the registration; RegisterHotKey binds WM_HOTKEY to the calling thread.
func (l *winListener) loop(key string, vk uintptr, fn func(), logger *slog.Logger, ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(l.done)

	l.threadID.Store(windows.GetCurrentThreadId())
	ret, _, callErr := procRegisterHotKey.Call(0, hotkeyID, modNoRepeat, vk)
	if ret == 0 {
		ready <- fmt.Errorf("register hotkey %s: %w", key, callErr)
		return
	}
	defer func() {
		_, _, _ = procUnregisterHotKey.Call(0, hotkeyID)
	}()
	ready <- nil

	var msg message
	for {
		ret, _, callErr := procGetMessageW.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
		switch int32(ret) {
		case -1:
			logger.Warn("hotkey message loop failed", "err", callErr)
			return
		case 0:
			return
		default:
			if msg.Message == wmHotkey && msg.WParam == hotkeyID && fn != nil {
				fn()
			}
		}
	}
}

// Close unregisters the hotkey and waits for the message loop to exit.
func (l *winListener) Close() error {
	l.once.Do(func() {
		if id := l.threadID.Load(); id != 0 {
			_, _, _ = procPostThreadMessageW.Call(uintptr(id), wmQuit, 0, 0)
		}
		<-l.done
	})
	return nil
}
