//go:build windows

// Package mouse defines synthetic mouse input injection.
package mouse

import (
	"errors"

	"golang.org/x/sys/windows"
)

// DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2 is the handle value -4.
const perMonitorAwareV2 = ^uintptr(3)

// shcore PROCESS_PER_MONITOR_DPI_AWARE.
const processPerMonitorDPIAware = 2

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	shcore = windows.NewLazySystemDLL("shcore.dll")

	procSetProcessDpiAwarenessContext = user32.NewProc("SetProcessDpiAwarenessContext")
	procSetProcessDPIAware            = user32.NewProc("SetProcessDPIAware")
	procSetProcessDpiAwareness        = shcore.NewProc("SetProcessDpiAwareness")
)

var dpiMode = enableDPIAwareness()

// enableDPIAwareness makes GetSystemMetrics, GetCursorPos and SetCursorPos
// agree on physical pixels across scaled monitors. It returns the mode applied.
func enableDPIAwareness() string {
	if procSetProcessDpiAwarenessContext.Find() == nil {
		ret, _, err := procSetProcessDpiAwarenessContext.Call(perMonitorAwareV2)
		if ret != 0 {
			return "per-monitor-v2"
		}
		// Set earlier by a manifest or the host process.
		if errors.Is(err, windows.ERROR_ACCESS_DENIED) {
			return "preset"
		}
	}
	if procSetProcessDpiAwareness.Find() == nil {
		ret, _, _ := procSetProcessDpiAwareness.Call(processPerMonitorDPIAware)
		if ret == 0 { // S_OK
			return "per-monitor"
		}
	}
	if procSetProcessDPIAware.Find() == nil {
		if ret, _, _ := procSetProcessDPIAware.Call(); ret != 0 {
			return "system"
		}
	}
	return "unaware"
}

// DPIAwareness reports the DPI awareness applied at process start.
func DPIAwareness() string {
	return dpiMode
}
