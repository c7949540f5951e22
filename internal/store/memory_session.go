package store

import (
	"context"
	"sync"
	"time"

	"github.com/globalmart/auth-service/models"
)

// SessionRepositoryMemory is an in-memory [SessionRepository] keyed by token.
// It is used in tests and in single-process deployments that keep user
// records in SQL but do not want session churn hitting the database.
type SessionRepositoryMemory struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

// NewSessionRepositoryMemory constructs an empty [SessionRepositoryMemory].
func NewSessionRepositoryMemory() *SessionRepositoryMemory {
	return &SessionRepositoryMemory{
		sessions: make(map[string]models.Session),
	}
}

// CreateSession implements [SessionRepository].
func (r *SessionRepositoryMemory) CreateSession(_ context.Context, session models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.Token] = session

	return nil
}

// FindSessionByToken implements [SessionRepository].
func (r *SessionRepositoryMemory) FindSessionByToken(_ context.Context, token string) (models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[token]
	if !ok {
		return models.Session{}, ErrSessionNotFound
	}

	return session, nil
}

// DeleteSession implements [SessionRepository]. Absent tokens are ignored.
func (r *SessionRepositoryMemory) DeleteSession(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, token)

	return nil
}

// DeleteExpiredSessions implements [SessionRepository].
func (r *SessionRepositoryMemory) DeleteExpiredSessions(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for token, session := range r.sessions {
		if session.ExpiredAt(now) {
			delete(r.sessions, token)
			removed++
		}
	}

	return removed, nil
}
