package api

import (
	"errors"
	"sync"
	"time"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/wizard"
)

// ErrSessionNotFound is returned for unknown or expired session ids
var ErrSessionNotFound = errors.New("sesión no encontrada o expirada")

// SessionStore keeps wizard sessions in memory. Sessions idle for longer
// than the TTL are dropped; a zero TTL keeps them forever.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
	now      func() time.Time
}

type sessionEntry struct {
	mu       sync.Mutex
	session  *wizard.Session
	lastUsed time.Time
}

// NewSessionStore creates an empty store
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Add registers a session under its own id
func (s *SessionStore) Add(session *wizard.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID()] = &sessionEntry{session: session, lastUsed: s.now()}
}

// With runs fn while holding the session's lock. Requests against one
// session are serialized; different sessions proceed in parallel.
func (s *SessionStore) With(id string, fn func(*wizard.Session) error) error {
	entry, err := s.lookup(id)
	if err != nil {
		return err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.session)
}

func (s *SessionStore) lookup(id string) (*sessionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	now := s.now()
	if s.expired(entry, now) {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}
	entry.lastUsed = now
	return entry, nil
}

func (s *SessionStore) expired(entry *sessionEntry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(entry.lastUsed) > s.ttl
}

// Delete removes a session, reporting whether it existed
func (s *SessionStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

// Prune drops expired sessions and returns how many were removed
func (s *SessionStore) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, entry := range s.sessions {
		if s.expired(entry, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
