package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)

	store.Set(ctx, "clubs:list", []string{"azul", "rojo"})
	value, ok := store.Get(ctx, "clubs:list")
	if !ok {
		t.Fatal("expected cached value")
	}
	if clubs := value.([]string); len(clubs) != 2 {
		t.Fatalf("expected 2 clubs, got %d", len(clubs))
	}

	store.Delete(ctx, "clubs:list")
	if _, ok := store.Get(ctx, "clubs:list"); ok {
		t.Fatal("expected value deleted")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)

	store.Set(ctx, "equipo:1", "a")
	store.Set(ctx, "equipo:2", "b")
	store.Set(ctx, "jornada:1", "c")

	store.DeletePrefix(ctx, "equipo:")

	if _, ok := store.Get(ctx, "equipo:1"); ok {
		t.Fatal("expected equipo:1 evicted")
	}
	if _, ok := store.Get(ctx, "jornada:1"); !ok {
		t.Fatal("expected jornada:1 kept")
	}
}

func TestStore_GetOrLoad_LoadsOncePerKey(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)

	var loads atomic.Int32
	loader := func(context.Context) (any, error) {
		loads.Add(1)
		return "loaded", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.GetOrLoad(ctx, "key", loader); err != nil {
				t.Errorf("load failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if loads.Load() != 1 {
		t.Fatalf("expected a single load, got %d", loads.Load())
	}
}

func TestStore_GetOrLoad_ErrorNotCached(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)

	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		if calls == 1 {
			return nil, fmt.Errorf("boom")
		}
		return "ok", nil
	}

	if _, err := store.GetOrLoad(ctx, "key", loader); err == nil {
		t.Fatal("expected first load to fail")
	}
	value, err := store.GetOrLoad(ctx, "key", loader)
	if err != nil {
		t.Fatalf("expected second load to succeed: %v", err)
	}
	if value != "ok" {
		t.Fatalf("expected reloaded value, got %v", value)
	}
}
