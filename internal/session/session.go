// Package session holds runtime state for the control surface.
package session

import (
	"sync"

	"github.com/frudas24/lazyfinger/internal/settings"
)

// Snapshot represents a read-only view of the current session state.
type Snapshot struct {
	Authenticated bool              `json:"authenticated"`
	AuthRequired  bool              `json:"authRequired"`
	Settings      settings.Form     `json:"settings"`
	Metadata      settings.Metadata `json:"metadata"`
}

// Session owns the control-surface state: authentication and the settings document.
type Session struct {
	mu            sync.RWMutex
	password      string
	authenticated bool
	doc           settings.Document
	dirty         bool
}

// New returns a session with the given password and initial document.
// An empty password disables authentication.
func New(password string, doc settings.Document) *Session {
	return &Session{
		password: password,
		doc:      doc,
	}
}

// AuthRequired reports whether a password has been configured.
func (s *Session) AuthRequired() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.password != ""
}

// Authenticate validates the password and marks the session as authenticated.
func (s *Session) Authenticate(pass string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.password == "" {
		s.authenticated = true
		return true
	}
	if pass != "" && pass == s.password {
		s.authenticated = true
		return true
	}
	s.authenticated = false
	return false
}

// Logout clears authentication state.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
}

// IsAuthenticated reports whether requests may use the control surface.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.password == "" || s.authenticated
}

// Settings returns the current form.
func (s *Session) Settings() settings.Form {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Settings
}

// SetSettings replaces the current form.
func (s *Session) SetSettings(f settings.Form) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Settings = f
	s.dirty = true
}

// PickLocation switches the form to a fixed target at (x, y) and returns the new form.
func (s *Session) PickLocation(x, y int) settings.Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Settings = s.doc.Settings.WithFixedLocation(x, y)
	s.dirty = true
	return s.doc.Settings
}

// AddClicks accumulates successful clicks into the document metadata.
func (s *Session) AddClicks(n int) {
	if n <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Metadata.TotalClicks += int64(n)
	s.dirty = true
}

// Document returns a copy of the settings document.
func (s *Session) Document() settings.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// MarkSaved records a persisted document and clears the dirty flag.
func (s *Session) MarkSaved(doc settings.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Metadata.LastModified = doc.Metadata.LastModified
	s.dirty = false
}

// Dirty reports whether the document changed since the last save.
func (s *Session) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Authenticated: s.password == "" || s.authenticated,
		AuthRequired:  s.password != "",
		Settings:      s.doc.Settings,
		Metadata:      s.doc.Metadata,
	}
}
