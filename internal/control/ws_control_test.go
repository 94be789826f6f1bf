package control

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/frudas24/lazyfinger/internal/clicker"
	"github.com/frudas24/lazyfinger/internal/events"
	"github.com/frudas24/lazyfinger/internal/monitor"
	"github.com/frudas24/lazyfinger/internal/session"
	"github.com/frudas24/lazyfinger/internal/settings"
	"github.com/frudas24/lazyfinger/internal/testutil"
	"github.com/gorilla/websocket"
)

type fakeRunner struct {
	mu       sync.Mutex
	running  bool
	startErr error
	starts   int
	stops    int
}

func (f *fakeRunner) StartRun() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
	if f.startErr != nil {
		return f.startErr
	}
	f.running = true
	return nil
}

func (f *fakeRunner) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	f.running = false
}

func (f *fakeRunner) Toggle() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = !f.running
	return f.running, nil
}

func (f *fakeRunner) Status() clicker.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return clicker.Status{Running: f.running}
}

type harness struct {
	sess   *session.Session
	runner *fakeRunner
	bus    *events.Bus
	inj    *testutil.FakeInjector
	saves  int
	mu     sync.Mutex
	srv    *httptest.Server
}

func newHarness(t *testing.T, password string) *harness {
	t.Helper()
	h := &harness{
		sess:   session.New(password, settings.Defaults()),
		runner: &fakeRunner{},
		bus:    events.New(16),
		inj:    &testutil.FakeInjector{X: 5000, Y: 10},
	}
	monitors := []monitor.Monitor{
		{Index: 1, X: 0, Y: 0, W: 1920, H: 1080, Primary: true},
		{Index: 2, X: 1920, Y: 0, W: 1281, H: 1025},
	}
	server := NewServer(Options{
		Session:  h.sess,
		Runner:   h.runner,
		Events:   h.bus,
		Monitors: func() ([]monitor.Monitor, error) { return monitors, nil },
		Cursor:   h.inj,
		SaveSettings: func() error {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.saves++
			return nil
		},
	})
	h.srv = httptest.NewServer(server)
	t.Cleanup(func() {
		h.srv.Close()
		h.bus.Close()
	})
	return h
}

func (h *harness) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(h.srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	first := readFrame(t, conn)
	if first.T != FrameStatus {
		t.Fatalf("expected initial status frame, got %+v", first)
	}
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var f Frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return f
}

func send(t *testing.T, conn *websocket.Conn, msg Message) {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write: %v", err)
	}
}

// TestServer_Unauthorized verifies the upgrade is refused without a session.
func TestServer_Unauthorized(t *testing.T) {
	h := newHarness(t, "pw")
	resp, err := http.Get(h.srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

// TestServer_StartStopToggle verifies run commands reply with status frames.
func TestServer_StartStopToggle(t *testing.T) {
	h := newHarness(t, "")
	conn := h.dial(t)

	send(t, conn, Message{T: MsgStart})
	if f := readFrame(t, conn); f.T != FrameStatus || f.Status == nil || !f.Status.Running {
		t.Fatalf("expected running status, got %+v", f)
	}
	send(t, conn, Message{T: MsgStop})
	if f := readFrame(t, conn); f.T != FrameStatus || f.Status.Running {
		t.Fatalf("expected idle status, got %+v", f)
	}
	send(t, conn, Message{T: MsgToggle})
	if f := readFrame(t, conn); !f.Status.Running {
		t.Fatalf("expected toggle to start, got %+v", f)
	}
	send(t, conn, Message{T: MsgToggle})
	if f := readFrame(t, conn); f.Status.Running {
		t.Fatalf("expected toggle to stop, got %+v", f)
	}
}

// TestServer_StartError verifies a start failure is reported before the status.
func TestServer_StartError(t *testing.T) {
	h := newHarness(t, "")
	h.runner.startErr = errors.New("invalid click configuration: repeat count must be > 0")
	conn := h.dial(t)

	send(t, conn, Message{T: MsgStart})
	if f := readFrame(t, conn); f.T != FrameError || !strings.Contains(f.Error, "repeat") {
		t.Fatalf("expected error frame, got %+v", f)
	}
	if f := readFrame(t, conn); f.T != FrameStatus || f.Status.Running {
		t.Fatalf("expected idle status, got %+v", f)
	}
}

// TestServer_Settings verifies valid forms are stored and invalid ones rejected.
func TestServer_Settings(t *testing.T) {
	h := newHarness(t, "")
	conn := h.dial(t)

	bad := settings.DefaultForm()
	bad.RepeatMode = settings.RepeatModeCount
	bad.RepeatCount = 0
	send(t, conn, Message{T: MsgSettings, Settings: &bad})
	if f := readFrame(t, conn); f.T != FrameError {
		t.Fatalf("expected error frame, got %+v", f)
	}

	good := settings.DefaultForm()
	good.Milliseconds = 250
	good.MouseButton = "right"
	send(t, conn, Message{T: MsgSettings, Settings: &good})
	f := readFrame(t, conn)
	if f.T != FrameSettings || f.Settings == nil || f.Settings.Milliseconds != 250 {
		t.Fatalf("expected settings echo, got %+v", f)
	}
	if h.sess.Settings().MouseButton != "right" {
		t.Fatalf("expected session to hold new settings")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.saves != 1 {
		t.Fatalf("expected one save, got %d", h.saves)
	}
}

// TestServer_Pick verifies a normalized pick on monitor 2 becomes a fixed location.
func TestServer_Pick(t *testing.T) {
	h := newHarness(t, "")
	conn := h.dial(t)

	send(t, conn, Message{T: MsgPick, Idx: 2, X: 0.5, Y: 0.5})
	f := readFrame(t, conn)
	if f.T != FrameSettings || f.Settings.CursorMode != settings.CursorModePick {
		t.Fatalf("expected picked settings, got %+v", f)
	}
	if f.Settings.X != 2560 || f.Settings.Y != 512 {
		t.Fatalf("expected (2560,512), got (%d,%d)", f.Settings.X, f.Settings.Y)
	}

	send(t, conn, Message{T: MsgPick, Idx: 9})
	if f := readFrame(t, conn); f.T != FrameError {
		t.Fatalf("expected missing monitor error, got %+v", f)
	}
}

// TestServer_PickCursor verifies an off-screen cursor is caged onto the primary monitor.
func TestServer_PickCursor(t *testing.T) {
	h := newHarness(t, "")
	conn := h.dial(t)

	send(t, conn, Message{T: MsgPickCursor})
	f := readFrame(t, conn)
	if f.T != FrameSettings || f.Settings.X != 1919 || f.Settings.Y != 10 {
		t.Fatalf("expected caged pick (1919,10), got %+v", f.Settings)
	}
}

// TestServer_PushesEvents verifies bus events reach the client with a status refresh.
func TestServer_PushesEvents(t *testing.T) {
	h := newHarness(t, "")
	conn := h.dial(t)

	h.bus.Publish(events.Event{Type: events.TypeRunStopped, RunID: "r1", Clicks: 5, Reason: clicker.ReasonCompleted})
	f := readFrame(t, conn)
	if f.T != FrameEvent || f.Event == nil || f.Event.RunID != "r1" || f.Event.Clicks != 5 {
		t.Fatalf("expected event frame, got %+v", f)
	}
	if f := readFrame(t, conn); f.T != FrameStatus {
		t.Fatalf("expected status refresh, got %+v", f)
	}
}

// TestServer_UnknownMessage verifies unknown types produce an error frame.
func TestServer_UnknownMessage(t *testing.T) {
	h := newHarness(t, "")
	conn := h.dial(t)
	send(t, conn, Message{T: "dance"})
	if f := readFrame(t, conn); f.T != FrameError || !strings.Contains(f.Error, "dance") {
		t.Fatalf("expected error frame, got %+v", f)
	}
}
