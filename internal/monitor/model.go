// Package monitor describes display geometry and enumeration.
package monitor

import "errors"

// ErrUnsupported is returned where displays cannot be enumerated.
var ErrUnsupported = errors.New("monitor enumeration not supported")

// Monitor describes a display and its bounds in virtual-screen pixels.
type Monitor struct {
	Index   int  `json:"index"`
	X       int  `json:"x"`
	Y       int  `json:"y"`
	W       int  `json:"w"`
	H       int  `json:"h"`
	Primary bool `json:"primary"`
}

// Contains reports whether the pixel (x, y) lies on the monitor.
func (m Monitor) Contains(x, y int) bool {
	return x >= m.X && x < m.X+m.W && y >= m.Y && y < m.Y+m.H
}

// GetMonitorByIndex returns the monitor matching the 1-based index.
func GetMonitorByIndex(list []Monitor, idx int) (Monitor, bool) {
	for _, m := range list {
		if m.Index == idx {
			return m, true
		}
	}
	return Monitor{}, false
}

// FindContaining returns the first monitor that contains (x, y).
func FindContaining(list []Monitor, x, y int) (Monitor, bool) {
	for _, m := range list {
		if m.Contains(x, y) {
			return m, true
		}
	}
	return Monitor{}, false
}

// PrimaryOf returns the primary monitor, or the first one when none is flagged.
func PrimaryOf(list []Monitor) (Monitor, bool) {
	for _, m := range list {
		if m.Primary {
			return m, true
		}
	}
	if len(list) > 0 {
		return list[0], true
	}
	return Monitor{}, false
}
