// Package app wires the click scheduler, control surface and hotkey together.
package app

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"os"

	"github.com/frudas24/lazyfinger/internal/clicker"
	"github.com/frudas24/lazyfinger/internal/control"
	"github.com/frudas24/lazyfinger/internal/events"
	"github.com/frudas24/lazyfinger/internal/session"
	"github.com/frudas24/lazyfinger/internal/settings"
	"github.com/frudas24/lazyfinger/internal/web"
)

// RegisterRoutes wires API and static handlers onto the mux.
func (a *App) RegisterRoutes(mux *http.ServeMux, staticDir string) {
	mux.HandleFunc("/login", a.handleLogin)
	mux.HandleFunc("/logout", a.handleLogout)
	mux.HandleFunc("/api/state", a.handleState)
	mux.HandleFunc("/api/settings", a.handleSettings)
	mux.HandleFunc("/api/start", a.handleStart)
	mux.HandleFunc("/api/stop", a.handleStop)
	mux.HandleFunc("/api/toggle", a.handleToggle)
	mux.HandleFunc("/api/monitors", a.handleMonitors)
	mux.HandleFunc("/api/cursor", a.handleCursor)
	mux.HandleFunc("/api/events", a.handleEvents)
	mux.Handle("/ws/control", a.Control())
	mux.HandleFunc("/favicon.ico", handleFavicon)

	mux.Handle("/", a.staticFileServer(staticDir))
}

type loginRequest struct {
	Password string `json:"password"`
}

type stateResponse struct {
	Session session.Snapshot `json:"session"`
	Status  clicker.Status   `json:"status"`
}

type cursorResponse struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleLogin authenticates the session.
func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !checkWrite(w, r, http.MethodPost) {
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if !a.session.Authenticate(req.Password) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleLogout clears authentication state.
func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	if !checkWrite(w, r, http.MethodPost) {
		return
	}
	a.session.Logout()
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleState returns the session snapshot and scheduler status.
func (a *App) handleState(w http.ResponseWriter, _ *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{
		Session: a.session.Snapshot(),
		Status:  a.Status(),
	})
}

// handleSettings returns or replaces the settings form.
func (a *App) handleSettings(w http.ResponseWriter, r *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, a.session.Settings())
	case http.MethodPut:
		if !checkWrite(w, r, http.MethodPut) {
			return
		}
		form := settings.DefaultForm()
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if _, err := form.ToClickConfig(); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		a.session.SetSettings(form)
		if err := a.SaveSettings(); err != nil {
			a.logger.Warn("settings save failed", "err", err)
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, a.session.Settings())
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleStart starts a run from the stored settings.
func (a *App) handleStart(w http.ResponseWriter, r *http.Request) {
	if !a.requirePost(w, r) {
		return
	}
	if err := a.StartRun(); err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, a.Status())
}

// handleStop cancels the active run.
func (a *App) handleStop(w http.ResponseWriter, r *http.Request) {
	if !a.requirePost(w, r) {
		return
	}
	a.Stop()
	writeJSON(w, http.StatusOK, a.Status())
}

// handleToggle flips between running and idle.
func (a *App) handleToggle(w http.ResponseWriter, r *http.Request) {
	if !a.requirePost(w, r) {
		return
	}
	if _, err := a.Toggle(); err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, a.Status())
}

// handleMonitors returns the list of monitors.
func (a *App) handleMonitors(w http.ResponseWriter, _ *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	list, err := a.ListMonitors()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleCursor returns the current cursor position.
func (a *App) handleCursor(w http.ResponseWriter, _ *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	x, y, err := a.injector.CursorPos()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, cursorResponse{X: x, Y: y})
}

// handleEvents returns the retained status event history.
func (a *App) handleEvents(w http.ResponseWriter, _ *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	history := a.bus.Snapshot()
	if history == nil {
		history = []events.Event{}
	}
	writeJSON(w, http.StatusOK, history)
}

// requireAuth returns false and writes an error if the session is not authenticated.
func (a *App) requireAuth(w http.ResponseWriter) bool {
	if !a.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

// requirePost combines the auth check with the checks for a state-changing POST.
func (a *App) requirePost(w http.ResponseWriter, r *http.Request) bool {
	if !a.requireAuth(w) {
		return false
	}
	return checkWrite(w, r, http.MethodPost)
}

// checkWrite enforces the method, a same-origin caller and a JSON body type.
func checkWrite(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if !control.SameOrigin(r) {
		http.Error(w, "cross-origin request rejected", http.StatusForbidden)
		return false
	}
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		http.Error(w, "content type must be application/json", http.StatusUnsupportedMediaType)
		return false
	}
	return true
}

// statusForError maps invalid configurations to 400 and everything else to 500.
func statusForError(err error) int {
	if errors.Is(err, clicker.ErrInvalidConfig) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, errorResponse{Error: err.Error()})
}

// staticFileServer returns a handler for static assets, preferring disk then embed.
func (a *App) staticFileServer(staticDir string) http.Handler {
	if staticDir != "" {
		if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
			return http.FileServer(http.Dir(staticDir))
		}
	}

	embedded, err := web.StaticFS()
	if err != nil {
		a.logger.Warn("static assets unavailable", "err", err)
		return http.NotFoundHandler()
	}
	return http.FileServer(http.FS(embedded))
}

// handleFavicon avoids noisy 404s for the default browser request.
func handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
