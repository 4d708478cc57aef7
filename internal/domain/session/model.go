package session

import (
	"fmt"
	"time"

	"github.com/ligafantasy/portal/internal/domain/user"
)

// Selection is the lineup editor's "chosen player" pointer. It remembers the
// roster generation it was made against so a selection cannot survive a
// roster change it never saw.
type Selection struct {
	PlayerID   int64
	Generation uint64
}

// Session is one authenticated browser. It carries the denormalized user,
// the backend's auth cookie (opaque to the portal) and the editor state.
type Session struct {
	Token         string
	User          user.User
	BackendCookie string
	Selection     *Selection
	CreatedAt     time.Time
	ExpiresAt     time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// Validate guards against stale or malformed persisted rows; anything that
// fails here is discarded at load instead of propagated.
func (s Session) Validate(now time.Time) error {
	if s.Token == "" {
		return fmt.Errorf("session token is required")
	}
	if err := s.User.Validate(); err != nil {
		return fmt.Errorf("session user: %w", err)
	}
	if s.Expired(now) {
		return fmt.Errorf("session expired at %s", s.ExpiresAt)
	}

	return nil
}
