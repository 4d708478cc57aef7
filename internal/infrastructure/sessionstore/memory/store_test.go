package memory

import (
	"context"
	"testing"
	"time"

	"github.com/ligafantasy/portal/internal/domain/session"
	"github.com/ligafantasy/portal/internal/domain/user"
)

func testSession(token string, expiresAt time.Time) session.Session {
	return session.Session{
		Token:         token,
		User:          user.User{ID: 1, Username: "ana", Email: "ana@example.com", Role: user.RoleUsuario},
		BackendCookie: "auth=tok",
		CreatedAt:     expiresAt.Add(-time.Hour),
		ExpiresAt:     expiresAt,
	}
}

func TestGetReturnsStoredSession(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	sess := testSession("t1", time.Now().Add(time.Hour))
	if err := store.Upsert(ctx, sess); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, ok, err := store.Get(ctx, "t1")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.User.Username != "ana" || got.BackendCookie != "auth=tok" {
		t.Fatalf("unexpected session %+v", got)
	}
}

func TestGetUnknownTokenIsNotAnError(t *testing.T) {
	store := NewStore()

	_, ok, err := store.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("unknown token reported as found")
	}
}

func TestExpiredSessionIsInvisible(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if err := store.Upsert(ctx, testSession("t1", time.Now().Add(-time.Minute))); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	_, ok, err := store.Get(ctx, "t1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expired session still visible")
	}
}

func TestDeleteExpiredSweeps(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_ = store.Upsert(ctx, testSession("live", time.Now().Add(time.Hour)))
	_ = store.Upsert(ctx, testSession("dead1", time.Now().Add(-time.Minute)))
	_ = store.Upsert(ctx, testSession("dead2", time.Now().Add(-time.Hour)))

	removed, err := store.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}

	if _, ok, _ := store.Get(ctx, "live"); !ok {
		t.Fatal("live session swept")
	}
}

func TestStoredSelectionIsIsolated(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	sess := testSession("t1", time.Now().Add(time.Hour))
	sess.Selection = &session.Selection{PlayerID: 5, Generation: 42}
	_ = store.Upsert(ctx, sess)

	got, _, _ := store.Get(ctx, "t1")
	got.Selection.PlayerID = 99

	again, _, _ := store.Get(ctx, "t1")
	if again.Selection.PlayerID != 5 {
		t.Fatalf("stored selection mutated through returned pointer: %d", again.Selection.PlayerID)
	}
}
