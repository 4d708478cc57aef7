// Package memory holds sessions in process memory. Suited to single-instance
// deployments and tests; restarts log everyone out.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ligafantasy/portal/internal/domain/session"
)

type Store struct {
	mu       sync.RWMutex
	sessions map[string]session.Session
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]session.Session),
		now:      time.Now,
	}
}

func (s *Store) Get(_ context.Context, token string) (session.Session, bool, error) {
	s.mu.RLock()
	stored, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok || stored.Expired(s.now()) {
		return session.Session{}, false, nil
	}

	return clone(stored), true, nil
}

func (s *Store) Upsert(_ context.Context, sess session.Session) error {
	s.mu.Lock()
	s.sessions[sess.Token] = clone(sess)
	s.mu.Unlock()
	return nil
}

func (s *Store) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

func (s *Store) DeleteExpired(_ context.Context) (int64, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for token, stored := range s.sessions {
		if stored.Expired(now) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed, nil
}

// clone keeps callers from mutating the stored Selection through a shared
// pointer.
func clone(s session.Session) session.Session {
	if s.Selection != nil {
		sel := *s.Selection
		s.Selection = &sel
	}
	return s
}
