package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ligafantasy/portal/internal/domain/session"
	"github.com/ligafantasy/portal/internal/domain/user"
	"github.com/ligafantasy/portal/internal/platform/logging"
	"github.com/ligafantasy/portal/internal/platform/token"
)

// Credentials is a login attempt.
type Credentials struct {
	Username string
	Password string
}

// Registration is a new-account request.
type Registration struct {
	Username string
	Email    string
	Password string
}

// AuthGateway is the slice of the backend client the auth flow needs.
type AuthGateway interface {
	Login(ctx context.Context, creds Credentials) (user.User, string, error)
	Register(ctx context.Context, reg Registration) (user.User, string, error)
	Logout(ctx context.Context, cookie string) error
}

type AuthService struct {
	gateway    AuthGateway
	sessions   session.Repository
	tokens     token.Generator
	sessionTTL time.Duration
	logger     *logging.Logger
}

func NewAuthService(gateway AuthGateway, sessions session.Repository, tokens token.Generator, sessionTTL time.Duration, logger *logging.Logger) *AuthService {
	if logger == nil {
		logger = logging.Default()
	}
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}

	return &AuthService{
		gateway:    gateway,
		sessions:   sessions,
		tokens:     tokens,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (session.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "AuthService.Login")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return session.Session{}, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	account, cookie, err := s.gateway.Login(ctx, Credentials{Username: username, Password: password})
	if err != nil {
		return session.Session{}, fmt.Errorf("backend login: %w", err)
	}

	return s.issueSession(ctx, account, cookie)
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (session.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "AuthService.Register")
	defer span.End()

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return session.Session{}, fmt.Errorf("%w: username, email and password are required", ErrInvalidInput)
	}

	account, cookie, err := s.gateway.Register(ctx, Registration{Username: username, Email: email, Password: password})
	if err != nil {
		return session.Session{}, fmt.Errorf("backend register: %w", err)
	}

	return s.issueSession(ctx, account, cookie)
}

// Logout tears the portal session down. The backend logout is best effort:
// a dead backend must not keep a user logged in locally.
func (s *AuthService) Logout(ctx context.Context, sess session.Session) error {
	ctx, span := startUsecaseSpan(ctx, "AuthService.Logout")
	defer span.End()

	if err := s.gateway.Logout(ctx, sess.BackendCookie); err != nil {
		s.logger.WarnContext(ctx, "backend logout failed", "user_id", sess.User.ID, "error", err)
	}

	if err := s.sessions.Delete(ctx, sess.Token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// Restore resolves a session cookie back to a live session.
func (s *AuthService) Restore(ctx context.Context, rawToken string) (session.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "AuthService.Restore")
	defer span.End()

	if rawToken == "" {
		return session.Session{}, fmt.Errorf("%w: missing session", ErrUnauthorized)
	}

	sess, ok, err := s.sessions.Get(ctx, rawToken)
	if err != nil {
		return session.Session{}, fmt.Errorf("get session: %w", err)
	}
	if !ok {
		return session.Session{}, fmt.Errorf("%w: unknown or expired session", ErrSessionExpired)
	}

	return sess, nil
}

// SweepExpired removes dead sessions. Called periodically by the app janitor.
func (s *AuthService) SweepExpired(ctx context.Context) (int64, error) {
	removed, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("sweep expired sessions: %w", err)
	}
	if removed > 0 {
		s.logger.InfoContext(ctx, "swept expired sessions", "removed", removed)
	}
	return removed, nil
}

func (s *AuthService) issueSession(ctx context.Context, account user.User, cookie string) (session.Session, error) {
	rawToken, err := s.tokens.NewToken()
	if err != nil {
		return session.Session{}, fmt.Errorf("mint session token: %w", err)
	}

	now := time.Now()
	sess := session.Session{
		Token:         rawToken,
		User:          account,
		BackendCookie: cookie,
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.sessionTTL),
	}
	if err := s.sessions.Upsert(ctx, sess); err != nil {
		return session.Session{}, fmt.Errorf("store session: %w", err)
	}

	s.logger.InfoContext(ctx, "session issued", "user_id", account.ID, "role", account.Role, "token_hash", token.Hash(rawToken))
	return sess, nil
}
