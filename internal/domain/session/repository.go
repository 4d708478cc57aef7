package session

import "context"

// Repository stores sessions by token. Implementations must return
// (zero, false, nil) for unknown or expired tokens rather than an error.
type Repository interface {
	Get(ctx context.Context, token string) (Session, bool, error)
	Upsert(ctx context.Context, s Session) error
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
