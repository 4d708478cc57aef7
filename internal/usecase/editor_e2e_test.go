package usecase_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/ligafantasy/portal/internal/domain/session"
	"github.com/ligafantasy/portal/internal/domain/user"
	"github.com/ligafantasy/portal/internal/infrastructure/backend"
	"github.com/ligafantasy/portal/internal/infrastructure/sessionstore/memory"
	"github.com/ligafantasy/portal/internal/platform/cache"
	"github.com/ligafantasy/portal/internal/platform/logging"
	"github.com/ligafantasy/portal/internal/usecase"
)

// fakeGameBackend is a minimal stateful stand-in for the game backend: a
// 15-man roster whose titular flags flip when the alineación PATCH arrives.
type fakeGameBackend struct {
	mu        sync.Mutex
	titular   map[int64]bool
	positions map[int64]any
	swapBody  string
}

func newFakeGameBackend() *fakeGameBackend {
	f := &fakeGameBackend{
		titular:   make(map[int64]bool),
		positions: make(map[int64]any),
	}
	assign := func(id int64, pos any, titular bool) {
		f.positions[id] = pos
		f.titular[id] = titular
	}

	// Position shapes vary on purpose: codes, ES names, EN names, objects.
	assign(1, 1, true)
	assign(2, "Defensa", true)
	assign(3, "Defender", true)
	assign(4, map[string]any{"id": 2, "description": "Defensa"}, true)
	assign(5, 2, true)
	assign(6, "Centrocampista", true)
	assign(7, "Midfielder", true)
	assign(8, 3, true)
	assign(9, "Delantero", true)
	assign(10, "Attacker", true)
	assign(11, 4, true)
	assign(12, 1, false)
	assign(13, "Defensa", false)
	assign(14, 3, false)
	assign(15, 4, false)
	return f
}

func (f *fakeGameBackend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /equipos/mi-equipo", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		jugadores := make([]map[string]any, 0, len(f.titular))
		for id := int64(1); id <= 15; id++ {
			jugadores = append(jugadores, map[string]any{
				"jugador": map[string]any{
					"id":       id,
					"name":     fmt.Sprintf("Jugador %d", id),
					"position": f.positions[id],
				},
				"es_titular": f.titular[id],
			})
		}
		payload, _ := sonic.Marshal(map[string]any{
			"id": 7, "nombre": "Los Rayos", "usuarioId": 3, "jugadores": jugadores,
		})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(payload)
	})

	mux.HandleFunc("PATCH /equipos/mi-equipo/alineacion", func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)

		var body struct {
			TitularID  int64 `json:"titularId"`
			SuplenteID int64 `json:"suplenteId"`
		}
		if err := sonic.Unmarshal(raw, &body); err != nil {
			t.Errorf("bad swap body: %v", err)
		}

		f.mu.Lock()
		f.swapBody = string(raw)
		f.titular[body.TitularID] = false
		f.titular[body.SuplenteID] = true
		f.mu.Unlock()

		w.WriteHeader(http.StatusOK)
	})

	return mux
}

// The full gesture: select titular defender #5, click bench defender #13,
// watch the exact PATCH hit the wire and the confirmed roster come back.
func TestLineupSwapEndToEnd(t *testing.T) {
	fake := newFakeGameBackend()
	server := httptest.NewServer(fake.handler(t))
	t.Cleanup(server.Close)

	client := backend.NewClient(backend.ClientConfig{
		BaseURL: server.URL,
		Logger:  logging.NewNop(),
	})

	store := memory.NewStore()
	sess := session.Session{
		Token:         "tok",
		User:          user.User{ID: 3, Username: "ana", Email: "ana@example.com", Role: user.RoleUsuario},
		BackendCookie: "auth=backend",
		CreatedAt:     time.Now(),
		ExpiresAt:     time.Now().Add(time.Hour),
	}
	ctx := context.Background()
	if err := store.Upsert(ctx, sess); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	service := usecase.NewEquipoService(client, store, cache.NewStore(time.Minute), logging.NewNop())

	result, err := service.Click(ctx, sess, 5)
	if err != nil {
		t.Fatalf("select defender: %v", err)
	}
	if result.Action != usecase.ActionSelected {
		t.Fatalf("expected selection, got %+v", result)
	}

	sess, ok, err := store.Get(ctx, "tok")
	if err != nil || !ok {
		t.Fatalf("reload session: ok=%v err=%v", ok, err)
	}

	result, err = service.Click(ctx, sess, 13)
	if err != nil {
		t.Fatalf("swap click: %v", err)
	}
	if result.Action != usecase.ActionSwapped {
		t.Fatalf("expected swap, got %+v", result)
	}

	if !strings.Contains(fake.swapBody, `"titularId":5`) || !strings.Contains(fake.swapBody, `"suplenteId":13`) {
		t.Fatalf("unexpected PATCH body: %s", fake.swapBody)
	}

	five, _ := result.Equipo.Find(5)
	thirteen, _ := result.Equipo.Find(13)
	if five.EsTitular || !thirteen.EsTitular {
		t.Fatalf("confirmed roster did not flip: five=%v thirteen=%v", five.EsTitular, thirteen.EsTitular)
	}
	if got := len(result.Equipo.Titulares()); got != 11 {
		t.Fatalf("expected 11 titulares, got %d", got)
	}
}
