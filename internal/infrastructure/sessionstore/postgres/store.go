// Package postgres persists portal sessions so logins survive restarts and
// multiple portal instances can share one session space. Only a hash of the
// session token is stored.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ligafantasy/portal/internal/domain/session"
	"github.com/ligafantasy/portal/internal/platform/token"
)

const (
	getSessionQuery = `
		SELECT token_hash, user_id, username, email, role, backend_cookie,
		       selection_player_id, selection_generation,
		       created_at, updated_at, expires_at
		FROM portal_sessions
		WHERE token_hash = $1 AND expires_at > NOW()`

	upsertSessionQuery = `
		INSERT INTO portal_sessions (
			token_hash, user_id, username, email, role, backend_cookie,
			selection_player_id, selection_generation, created_at, updated_at, expires_at
		) VALUES (
			:token_hash, :user_id, :username, :email, :role, :backend_cookie,
			:selection_player_id, :selection_generation, :created_at, NOW(), :expires_at
		)
		ON CONFLICT (token_hash) DO UPDATE SET
			backend_cookie = EXCLUDED.backend_cookie,
			selection_player_id = EXCLUDED.selection_player_id,
			selection_generation = EXCLUDED.selection_generation,
			updated_at = NOW(),
			expires_at = EXCLUDED.expires_at`

	deleteSessionQuery = `DELETE FROM portal_sessions WHERE token_hash = $1`

	deleteExpiredQuery = `DELETE FROM portal_sessions WHERE expires_at <= NOW()`
)

type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, rawToken string) (session.Session, bool, error) {
	var row sessionTableModel
	err := s.db.GetContext(ctx, &row, getSessionQuery, token.Hash(rawToken))
	if errors.Is(err, sql.ErrNoRows) {
		return session.Session{}, false, nil
	}
	if err != nil {
		return session.Session{}, false, fmt.Errorf("get session: %w", err)
	}

	out := row.toDomain()
	out.Token = rawToken
	if err := out.Validate(time.Now()); err != nil {
		// A malformed row is dropped, not served.
		return session.Session{}, false, nil
	}

	return out, true, nil
}

func (s *Store) Upsert(ctx context.Context, sess session.Session) error {
	row := toTableModel(token.Hash(sess.Token), sess)
	if _, err := s.db.NamedExecContext(ctx, upsertSessionQuery, row); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, rawToken string) error {
	if _, err := s.db.ExecContext(ctx, deleteSessionQuery, token.Hash(rawToken)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

func (s *Store) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, deleteExpiredQuery)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected delete expired sessions: %w", err)
	}

	return affected, nil
}
