package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/ligafantasy/portal/internal/domain/equipo"
	"github.com/ligafantasy/portal/internal/domain/user"
	"github.com/ligafantasy/portal/internal/platform/logging"
	"github.com/ligafantasy/portal/internal/usecase"
)

type fakeHistorialGateway struct {
	mu    sync.Mutex
	calls []int64
	fail  map[int64]error
}

func (f *fakeHistorialGateway) Historial(_ context.Context, _ string, _ int64) ([]equipo.HistorialEntry, error) {
	return nil, nil
}

func (f *fakeHistorialGateway) JornadaDetail(_ context.Context, _ string, equipoID, jornadaID int64) (equipo.JornadaDetail, error) {
	f.mu.Lock()
	f.calls = append(f.calls, jornadaID)
	f.mu.Unlock()

	if err := f.fail[jornadaID]; err != nil {
		return equipo.JornadaDetail{}, err
	}
	return equipo.JornadaDetail{JornadaID: jornadaID, EquipoID: equipoID, Puntos: int(jornadaID) * 10}, nil
}

func newDetailsMux(gateway *fakeHistorialGateway) *http.ServeMux {
	service := usecase.NewHistorialService(gateway, logging.NewNop())
	handler := NewHandler(nil, nil, nil, nil, nil, service, nil)

	mux := http.NewServeMux()
	mux.Handle("GET /v1/equipos/{equipoID}/jornadas",
		RequireSession(fakeResolver{sess: liveSession(user.RoleUsuario)}, http.HandlerFunc(handler.GetJornadaDetails)))
	return mux
}

func getDetails(t *testing.T, mux *http.ServeMux, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "tok"})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestGetJornadaDetailsFansOut(t *testing.T) {
	gateway := &fakeHistorialGateway{}
	mux := newDetailsMux(gateway)

	rec := getDetails(t, mux, "/v1/equipos/7/jornadas?ids=3,1,2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data []jornadaDetailDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Data) != 3 {
		t.Fatalf("got %d rows, want 3", len(body.Data))
	}
	for i, want := range []int64{1, 2, 3} {
		if body.Data[i].JornadaID != want {
			t.Fatalf("row %d is jornada %d, want %d", i, body.Data[i].JornadaID, want)
		}
		if body.Data[i].EquipoID != 7 {
			t.Fatalf("row %d carries equipo %d, want 7", i, body.Data[i].EquipoID)
		}
	}

	sort.Slice(gateway.calls, func(i, j int) bool { return gateway.calls[i] < gateway.calls[j] })
	if len(gateway.calls) != 3 || gateway.calls[0] != 1 || gateway.calls[2] != 3 {
		t.Fatalf("backend saw calls %v", gateway.calls)
	}
}

func TestGetJornadaDetailsSkipsFailedRounds(t *testing.T) {
	gateway := &fakeHistorialGateway{fail: map[int64]error{2: fmt.Errorf("%w: boom", usecase.ErrDependencyUnavailable)}}
	mux := newDetailsMux(gateway)

	rec := getDetails(t, mux, "/v1/equipos/7/jornadas?ids=1,2,3")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Data []jornadaDetailDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Data) != 2 {
		t.Fatalf("got %d rows, want the 2 rounds that loaded", len(body.Data))
	}
}

func TestGetJornadaDetailsRejectsBadIDList(t *testing.T) {
	gateway := &fakeHistorialGateway{}
	mux := newDetailsMux(gateway)

	for _, target := range []string{
		"/v1/equipos/7/jornadas",
		"/v1/equipos/7/jornadas?ids=",
		"/v1/equipos/7/jornadas?ids=1,x",
		"/v1/equipos/7/jornadas?ids=0",
	} {
		rec := getDetails(t, mux, target)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", target, rec.Code)
		}
	}
	if len(gateway.calls) != 0 {
		t.Fatalf("rejected requests reached the backend: %v", gateway.calls)
	}
}
