package postgres

import (
	"database/sql"
	"time"

	"github.com/ligafantasy/portal/internal/domain/session"
	"github.com/ligafantasy/portal/internal/domain/user"
)

type sessionTableModel struct {
	TokenHash           string        `db:"token_hash"`
	UserID              int64         `db:"user_id"`
	Username            string        `db:"username"`
	Email               string        `db:"email"`
	Role                string        `db:"role"`
	BackendCookie       string        `db:"backend_cookie"`
	SelectionPlayerID   sql.NullInt64 `db:"selection_player_id"`
	SelectionGeneration sql.NullInt64 `db:"selection_generation"`
	CreatedAt           time.Time     `db:"created_at"`
	UpdatedAt           time.Time     `db:"updated_at"`
	ExpiresAt           time.Time     `db:"expires_at"`
}

// toDomain rebuilds the session minus the raw token, which is never stored.
// The caller re-attaches the token it looked the row up with.
func (m sessionTableModel) toDomain() session.Session {
	out := session.Session{
		User: user.User{
			ID:       m.UserID,
			Username: m.Username,
			Email:    m.Email,
			Role:     user.Role(m.Role),
		},
		BackendCookie: m.BackendCookie,
		CreatedAt:     m.CreatedAt,
		ExpiresAt:     m.ExpiresAt,
	}
	if m.SelectionPlayerID.Valid {
		out.Selection = &session.Selection{
			PlayerID: m.SelectionPlayerID.Int64,
			// Generations are hashes; the sign bit survives the round trip
			// through BIGINT unchanged.
			Generation: uint64(m.SelectionGeneration.Int64),
		}
	}
	return out
}

func toTableModel(tokenHash string, s session.Session) sessionTableModel {
	m := sessionTableModel{
		TokenHash:     tokenHash,
		UserID:        s.User.ID,
		Username:      s.User.Username,
		Email:         s.User.Email,
		Role:          string(s.User.Role),
		BackendCookie: s.BackendCookie,
		CreatedAt:     s.CreatedAt,
		ExpiresAt:     s.ExpiresAt,
	}
	if s.Selection != nil {
		m.SelectionPlayerID = sql.NullInt64{Int64: s.Selection.PlayerID, Valid: true}
		m.SelectionGeneration = sql.NullInt64{Int64: int64(s.Selection.Generation), Valid: true}
	}
	return m
}
