package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func corsTarget() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORSAllowedOriginIsPinned(t *testing.T) {
	handler := CORS([]string{"https://liga.example.com"}, corsTarget())

	req := httptest.NewRequest(http.MethodGet, "/v1/jornadas", nil)
	req.Header.Set("Origin", "https://liga.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://liga.example.com" {
		t.Fatalf("allow-origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("allow-credentials = %q", got)
	}
}

func TestCORSWildcardStillPinsOrigin(t *testing.T) {
	handler := CORS([]string{"*"}, corsTarget())

	req := httptest.NewRequest(http.MethodGet, "/v1/jornadas", nil)
	req.Header.Set("Origin", "https://anywhere.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// A literal "*" would break credentialed requests.
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://anywhere.example.com" {
		t.Fatalf("allow-origin = %q", got)
	}
}

func TestCORSUnknownOriginGetsNoHeaders(t *testing.T) {
	handler := CORS([]string{"https://liga.example.com"}, corsTarget())

	req := httptest.NewRequest(http.MethodGet, "/v1/jornadas", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("allow-origin = %q, want empty", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	var reached bool
	handler := CORS([]string{"https://liga.example.com"}, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reached = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/v1/equipos/mi-equipo/seleccion", nil)
	req.Header.Set("Origin", "https://liga.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if reached {
		t.Fatal("preflight reached the inner handler")
	}
}
