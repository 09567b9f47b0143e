package store

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/vitascope/models"
)

// memorySessionStore keeps sessions in process memory. Expired sessions are
// dropped lazily on read and by [memorySessionStore.sweep].
type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
	now      func() time.Time
}

// NewMemorySessionStore returns a [SessionStore] for single-process
// deployments.
func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{
		sessions: make(map[string]models.Session),
		now:      time.Now,
	}
}

func (s *memorySessionStore) Save(_ context.Context, session models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep()
	s.sessions[session.ID] = cloneSession(session)
	return nil
}

func (s *memorySessionStore) Get(_ context.Context, sessionID string) (models.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok || !session.ExpiresAt.After(s.now()) {
		return models.Session{}, ErrSessionNotFound
	}
	return cloneSession(session), nil
}

func (s *memorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

// sweep removes expired sessions. Callers must hold the write lock.
func (s *memorySessionStore) sweep() {
	now := s.now()
	for id, session := range s.sessions {
		if !session.ExpiresAt.After(now) {
			delete(s.sessions, id)
		}
	}
}

// cloneSession detaches the pending state and the flashes from the caller.
func cloneSession(session models.Session) models.Session {
	if session.Pending != nil {
		pending := *session.Pending
		session.Pending = &pending
	}
	if session.Flashes != nil {
		session.Flashes = append([]models.Flash(nil), session.Flashes...)
	}
	return session
}
