package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ligafantasy/portal/internal/domain/player"
	"github.com/ligafantasy/portal/internal/domain/user"
	"github.com/ligafantasy/portal/internal/platform/logging"
	"github.com/ligafantasy/portal/internal/platform/resilience"
	"github.com/ligafantasy/portal/internal/usecase"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
		Logger:  logging.NewNop(),
	})
}

func TestMiEquipoDecodesRoster(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/equipos/mi-equipo" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Cookie"); got != "auth=tok" {
			t.Errorf("cookie not forwarded, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": 7, "nombre": "Los Rayos", "usuarioId": 3,
			"jugadores": [
				{"jugador": {"id": 5, "name": "A. Portero", "position": {"code": 1}}, "es_titular": true},
				{"jugador": {"id": 13, "name": "B. Banca", "position": "Delantero"}, "es_titular": false}
			]
		}`))
	})

	client := newTestClient(t, handler)
	team, err := client.MiEquipo(context.Background(), "auth=tok")
	if err != nil {
		t.Fatalf("MiEquipo: %v", err)
	}
	if team.ID != 7 || team.Nombre != "Los Rayos" {
		t.Fatalf("unexpected equipo %+v", team)
	}
	if len(team.Plantel) != 2 {
		t.Fatalf("expected 2 players, got %d", len(team.Plantel))
	}
	if got := team.Plantel[0].Player.Position; got != player.PositionPortero {
		t.Errorf("position code 1 normalized to %q", got)
	}
	if got := team.Plantel[1].Player.Position; got != player.PositionDelantero {
		t.Errorf("position name normalized to %q", got)
	}
	if !team.Plantel[0].EsTitular || team.Plantel[1].EsTitular {
		t.Errorf("titular flags not carried over")
	}
}

func TestMiEquipoNotFoundIsNotTransient(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "el usuario no tiene equipo"}`))
	})

	client := newTestClient(t, handler)
	_, err := client.MiEquipo(context.Background(), "auth=tok")
	if !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("404 must not map to the transient sentinel: %v", err)
	}
	if !strings.Contains(err.Error(), "el usuario no tiene equipo") {
		t.Errorf("server message dropped: %v", err)
	}
}

func TestServerErrorMapsToDependencyUnavailable(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	client := newTestClient(t, handler)
	_, err := client.MiEquipo(context.Background(), "auth=tok")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestUnauthorizedMapsToSessionExpired(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client := newTestClient(t, handler)
	_, err := client.MiEquipo(context.Background(), "auth=tok")
	if !errors.Is(err, usecase.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestBadRequestKeepsServerMessage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "el suplente no juega en esa posicion"}`))
	})

	client := newTestClient(t, handler)
	err := client.SwapAlineacion(context.Background(), "auth=tok", 5, 13)
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "el suplente no juega en esa posicion") {
		t.Fatalf("server message dropped: %v", err)
	}
}

func TestSwapAlineacionSendsBothIDs(t *testing.T) {
	var gotBody string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		buf := make([]byte, 1024)
		n, _ := r.Body.Read(buf)
		gotBody = string(buf[:n])
		w.WriteHeader(http.StatusOK)
	})

	client := newTestClient(t, handler)
	if err := client.SwapAlineacion(context.Background(), "auth=tok", 5, 13); err != nil {
		t.Fatalf("SwapAlineacion: %v", err)
	}
	if !strings.Contains(gotBody, `"titularId":5`) || !strings.Contains(gotBody, `"suplenteId":13`) {
		t.Fatalf("unexpected swap body %s", gotBody)
	}
}

func TestLoginCapturesSetCookie(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		http.SetCookie(w, &http.Cookie{Name: "auth", Value: "backend-token", HttpOnly: true})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 3, "username": "ana", "email": "ana@example.com", "role": "usuario"}`))
	})

	client := newTestClient(t, handler)
	account, cookie, err := client.Login(context.Background(), usecase.Credentials{Username: "ana", Password: "secret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if account.Username != "ana" || account.Role != user.RoleUsuario {
		t.Fatalf("unexpected user %+v", account)
	}
	if cookie != "auth=backend-token" {
		t.Fatalf("cookie not captured, got %q", cookie)
	}
}

func TestLoginRejectionIsUnauthorizedNotExpired(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client := newTestClient(t, handler)
	_, _, err := client.Login(context.Background(), usecase.Credentials{Username: "ana", Password: "wrong"})
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if errors.Is(err, usecase.ErrSessionExpired) {
		t.Fatalf("a login rejection is not an expired session: %v", err)
	}
}

func TestGetRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		MaxRetries: 1,
		Logger:     logging.NewNop(),
	})

	if _, err := client.ListJornadas(context.Background(), "auth=tok"); err != nil {
		t.Fatalf("ListJornadas after retry: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestMutationsAreNeverRetried(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		MaxRetries: 3,
		Logger:     logging.NewNop(),
	})

	err := client.SwapAlineacion(context.Background(), "auth=tok", 5, 13)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("mutation retried: %d attempts", got)
	}
}

func TestCircuitBreakerShortCircuitsAfterFailures(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Logger:  logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
		},
	})

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := client.SwapAlineacion(ctx, "auth=tok", 1, 2); err == nil {
			t.Fatal("expected failure")
		}
	}
	before := calls.Load()

	err := client.SwapAlineacion(ctx, "auth=tok", 1, 2)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if calls.Load() != before {
		t.Fatal("open breaker still reached the backend")
	}
}

func TestConcurrentIdenticalReadsCollapse(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		_, _ = w.Write([]byte(`[]`))
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{BaseURL: server.URL, Logger: logging.NewNop()})

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, _ = client.ListJornadas(context.Background(), "auth=tok")
		}()
	}
	close(start)
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single backend call, got %d", got)
	}
}
