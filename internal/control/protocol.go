// Package control serves the websocket control protocol and the coordinate picker.
package control

import (
	"github.com/frudas24/lazyfinger/internal/clicker"
	"github.com/frudas24/lazyfinger/internal/events"
	"github.com/frudas24/lazyfinger/internal/settings"
)

// Inbound message types.
const (
	MsgStart      = "start"
	MsgStop       = "stop"
	MsgToggle     = "toggle"
	MsgSettings   = "settings"
	MsgPick       = "pick"
	MsgPickCursor = "pickCursor"
)

// Outbound frame types.
const (
	FrameStatus   = "status"
	FrameEvent    = "event"
	FrameError    = "error"
	FrameSettings = "settings"
)

// Message is a control websocket payload sent by the client.
// Pick coordinates are normalized to [0..1] on monitor Idx.
type Message struct {
	T        string         `json:"t"`
	X        float64        `json:"x,omitempty"`
	Y        float64        `json:"y,omitempty"`
	Idx      int            `json:"idx,omitempty"`
	Settings *settings.Form `json:"settings,omitempty"`
}

// Frame is a server push.
type Frame struct {
	T        string          `json:"t"`
	Status   *clicker.Status `json:"status,omitempty"`
	Settings *settings.Form  `json:"settings,omitempty"`
	Event    *events.Event   `json:"event,omitempty"`
	Error    string          `json:"error,omitempty"`
}
