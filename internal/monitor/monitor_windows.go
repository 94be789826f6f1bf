//go:build windows

// Package monitor describes display geometry and enumeration.
package monitor

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procEnumDisplayMonitors = user32.NewProc("EnumDisplayMonitors")

	// handles is filled by the callback; enumMu serializes enumerations.
	enumMu   sync.Mutex
	handles  []win.HMONITOR
	callback = windows.NewCallback(func(hMonitor, _, _, _ uintptr) uintptr {
		handles = append(handles, win.HMONITOR(hMonitor))
		return 1
	})
)

// ListMonitors returns the attached displays in enumeration order.
func ListMonitors() ([]Monitor, error) {
	found, err := enumHandles()
	if err != nil {
		return nil, err
	}
	list := make([]Monitor, 0, len(found))
	for _, h := range found {
		m, ok := describe(h)
		if !ok {
			continue
		}
		m.Index = len(list) + 1
		list = append(list, m)
	}
	if len(list) == 0 {
		return nil, errors.New("no monitors detected")
	}
	return list, nil
}

// enumHandles collects every HMONITOR on the virtual desktop.
func enumHandles() ([]win.HMONITOR, error) {
	if err := procEnumDisplayMonitors.Find(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}
	enumMu.Lock()
	defer enumMu.Unlock()
	handles = handles[:0]
	ret, _, callErr := procEnumDisplayMonitors.Call(0, 0, callback, 0)
	if ret == 0 {
		return nil, fmt.Errorf("EnumDisplayMonitors: %w", callErr)
	}
	out := make([]win.HMONITOR, len(handles))
	copy(out, handles)
	return out, nil
}

// describe reads the monitor rectangle and primary flag.
func describe(h win.HMONITOR) (Monitor, bool) {
	var info win.MONITORINFO
	info.CbSize = uint32(unsafe.Sizeof(info))
	if !win.GetMonitorInfo(h, &info) {
		return Monitor{}, false
	}
	r := info.RcMonitor
	return Monitor{
		X:       int(r.Left),
		Y:       int(r.Top),
		W:       int(r.Right - r.Left),
		H:       int(r.Bottom - r.Top),
		Primary: info.DwFlags&win.MONITORINFOF_PRIMARY != 0,
	}, true
}
