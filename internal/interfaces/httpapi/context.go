package httpapi

import (
	"context"

	"github.com/ligafantasy/portal/internal/domain/session"
)

type contextKey string

const sessionContextKey contextKey = "portal_session"

func withSession(ctx context.Context, sess session.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

func sessionFromContext(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey).(session.Session)
	return sess, ok
}
