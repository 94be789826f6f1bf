// Package control serves the websocket control protocol and the coordinate picker.
package control

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/frudas24/lazyfinger/internal/clicker"
	"github.com/frudas24/lazyfinger/internal/events"
	"github.com/frudas24/lazyfinger/internal/monitor"
	"github.com/frudas24/lazyfinger/internal/session"
	"github.com/gorilla/websocket"
)

const writeTimeout = 5 * time.Second

// MonitorProvider returns the current list of monitors.
type MonitorProvider func() ([]monitor.Monitor, error)

// Runner drives the click scheduler from the current session settings.
type Runner interface {
	StartRun() error
	Stop()
	Toggle() (bool, error)
	Status() clicker.Status
}

// Subscriber streams scheduler events.
type Subscriber interface {
	Subscribe(buffer int) (<-chan events.Event, func())
}

// Options configure a Server.
type Options struct {
	Session      *session.Session
	Runner       Runner
	Events       Subscriber
	Monitors     MonitorProvider
	Cursor       CursorReader
	SaveSettings func() error
	Logger       *slog.Logger
}

// Server handles websocket control input.
type Server struct {
	mu           sync.Mutex
	upgrader     websocket.Upgrader
	session      *session.Session
	runner       Runner
	events       Subscriber
	listMonitors MonitorProvider
	cursor       CursorReader
	saveSettings func() error
	logger       *slog.Logger
	conn         *websocket.Conn
}

// NewServer creates a control websocket server.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		session:      opts.Session,
		runner:       opts.Runner,
		events:       opts.Events,
		listMonitors: opts.Monitors,
		cursor:       opts.Cursor,
		saveSettings: opts.SaveSettings,
		logger:       logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     SameOrigin,
		},
	}
}

// client serializes writes to one websocket connection.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) write(f Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(f)
}

// ServeHTTP upgrades the connection, pushes status events and processes control messages.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	if err := s.acceptConn(conn); err != nil {
		s.logger.Warn("control connection rejected", "err", err)
		_ = conn.Close()
		return
	}
	defer s.cleanupConn(conn)

	c := &client{conn: conn}
	if s.events != nil {
		evs, cancel := s.events.Subscribe(64)
		defer cancel()
		done := make(chan struct{})
		defer close(done)
		go s.pushEvents(c, evs, done)
	}

	if err := c.write(s.statusFrame()); err != nil {
		return
	}
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		for _, f := range s.handleMessage(msg) {
			if err := c.write(f); err != nil {
				return
			}
		}
	}
}

// acceptConn ensures only one active control connection exists.
func (s *Server) acceptConn(conn *websocket.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return fmt.Errorf("control connection already active")
	}
	s.conn = conn
	return nil
}

// cleanupConn clears the active connection when closed.
func (s *Server) cleanupConn(conn *websocket.Conn) {
	s.mu.Lock()
	if s.conn == conn {
		s.conn = nil
	}
	s.mu.Unlock()
	_ = conn.Close()
}

// pushEvents forwards bus events to the client until done or the subscription closes.
func (s *Server) pushEvents(c *client, evs <-chan events.Event, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case ev, ok := <-evs:
			if !ok {
				return
			}
			if err := c.write(Frame{T: FrameEvent, Event: &ev}); err != nil {
				return
			}
			if ev.Type == events.TypeRunStarted || ev.Type == events.TypeRunStopped {
				if err := c.write(s.statusFrame()); err != nil {
					return
				}
			}
		}
	}
}

// handleMessage dispatches a single control message and returns the replies.
func (s *Server) handleMessage(msg Message) []Frame {
	switch msg.T {
	case MsgStart:
		if err := s.runner.StartRun(); err != nil {
			return []Frame{errorFrame(err), s.statusFrame()}
		}
		return []Frame{s.statusFrame()}
	case MsgStop:
		s.runner.Stop()
		return []Frame{s.statusFrame()}
	case MsgToggle:
		if _, err := s.runner.Toggle(); err != nil {
			return []Frame{errorFrame(err), s.statusFrame()}
		}
		return []Frame{s.statusFrame()}
	case MsgSettings:
		return s.handleSettings(msg)
	case MsgPick:
		return s.handlePick(msg)
	case MsgPickCursor:
		return s.handlePickCursor()
	default:
		return []Frame{errorFrame(fmt.Errorf("unknown message type %q", msg.T))}
	}
}

// handleSettings validates and stores a full settings form.
func (s *Server) handleSettings(msg Message) []Frame {
	if msg.Settings == nil {
		return []Frame{errorFrame(errors.New("settings payload missing"))}
	}
	form := *msg.Settings
	if _, err := form.ToClickConfig(); err != nil {
		return []Frame{errorFrame(err)}
	}
	s.session.SetSettings(form)
	return s.settingsReply()
}

// handlePick maps a normalized point on a monitor to a fixed click location.
func (s *Server) handlePick(msg Message) []Frame {
	if s.listMonitors == nil {
		return []Frame{errorFrame(monitor.ErrUnsupported)}
	}
	monitors, err := s.listMonitors()
	if err != nil {
		return []Frame{errorFrame(err)}
	}
	var m monitor.Monitor
	var ok bool
	if msg.Idx <= 0 {
		m, ok = monitor.PrimaryOf(monitors)
	} else {
		m, ok = monitor.GetMonitorByIndex(monitors, msg.Idx)
	}
	if !ok {
		return []Frame{errorFrame(fmt.Errorf("monitor %d not found", msg.Idx))}
	}
	x, y := NormToAbs(msg.X, msg.Y, m)
	s.session.PickLocation(x, y)
	return s.settingsReply()
}

// handlePickCursor captures the current cursor position as a fixed click location.
func (s *Server) handlePickCursor() []Frame {
	if s.cursor == nil {
		return []Frame{errorFrame(errors.New("cursor position unavailable"))}
	}
	x, y, err := s.cursor.CursorPos()
	if err != nil {
		return []Frame{errorFrame(err)}
	}
	if s.listMonitors != nil {
		if monitors, err := s.listMonitors(); err == nil {
			x, y = CageToMonitors(monitors, x, y)
		}
	}
	s.session.PickLocation(x, y)
	return s.settingsReply()
}

// settingsReply persists the session settings and echoes them back.
func (s *Server) settingsReply() []Frame {
	var frames []Frame
	if s.saveSettings != nil {
		if err := s.saveSettings(); err != nil {
			s.logger.Warn("settings save failed", "err", err)
			frames = append(frames, errorFrame(err))
		}
	}
	form := s.session.Settings()
	return append(frames, Frame{T: FrameSettings, Settings: &form})
}

func (s *Server) statusFrame() Frame {
	st := s.runner.Status()
	return Frame{T: FrameStatus, Status: &st}
}

func errorFrame(err error) Frame {
	return Frame{T: FrameError, Error: err.Error()}
}
