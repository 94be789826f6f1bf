// Package control serves the websocket control protocol and the coordinate picker.
package control

import "github.com/frudas24/lazyfinger/internal/monitor"

// CursorReader reports the current OS cursor position.
type CursorReader interface {
	CursorPos() (x, y int, err error)
}

// ClampPointToMonitor clamps (x,y) to stay inside m.
func ClampPointToMonitor(m monitor.Monitor, x, y int) (int, int) {
	if m.W <= 0 || m.H <= 0 {
		return x, y
	}
	minX := m.X
	minY := m.Y
	maxX := m.X + m.W - 1
	maxY := m.Y + m.H - 1
	if x < minX {
		x = minX
	}
	if x > maxX {
		x = maxX
	}
	if y < minY {
		y = minY
	}
	if y > maxY {
		y = maxY
	}
	return x, y
}

// CageToMonitors keeps (x,y) on screen: a point on any monitor is returned as is,
// anything else is clamped onto the primary monitor.
func CageToMonitors(list []monitor.Monitor, x, y int) (int, int) {
	if _, ok := monitor.FindContaining(list, x, y); ok {
		return x, y
	}
	primary, ok := monitor.PrimaryOf(list)
	if !ok {
		return x, y
	}
	return ClampPointToMonitor(primary, x, y)
}
