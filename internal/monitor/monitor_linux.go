//go:build linux

// Package monitor describes display geometry and enumeration.
package monitor

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgb/xproto"
)

// ListMonitors returns the X11 heads via Xinerama, or the root screen when Xinerama is absent.
func ListMonitors() ([]Monitor, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}
	defer conn.Close()

	if list := xineramaHeads(conn); len(list) > 0 {
		return list, nil
	}

	screen := xproto.Setup(conn).DefaultScreen(conn)
	return []Monitor{{
		Index:   1,
		W:       int(screen.WidthInPixels),
		H:       int(screen.HeightInPixels),
		Primary: true,
	}}, nil
}

func xineramaHeads(conn *xgb.Conn) []Monitor {
	if err := xinerama.Init(conn); err != nil {
		return nil
	}
	reply, err := xinerama.QueryScreens(conn).Reply()
	if err != nil || reply == nil {
		return nil
	}
	list := make([]Monitor, 0, len(reply.ScreenInfo))
	for i, head := range reply.ScreenInfo {
		list = append(list, Monitor{
			Index:   i + 1,
			X:       int(head.XOrg),
			Y:       int(head.YOrg),
			W:       int(head.Width),
			H:       int(head.Height),
			Primary: i == 0,
		})
	}
	return list
}
