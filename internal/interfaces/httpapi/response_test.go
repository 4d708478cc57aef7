package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/ligafantasy/portal/internal/usecase"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) googleResponseEnvelope {
	t.Helper()
	var envelope googleResponseEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return envelope
}

func TestWriteSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"hello": "world"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.APIVersion != googleAPIVersion {
		t.Fatalf("apiVersion = %q", envelope.APIVersion)
	}
	if envelope.Error != nil {
		t.Fatalf("unexpected error body: %+v", envelope.Error)
	}
}

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
		wantNotice string
	}{
		{"invalid input", fmt.Errorf("%w: nope", usecase.ErrInvalidInput), http.StatusBadRequest, "invalidInput", noticeError},
		{"not found", fmt.Errorf("%w: nope", usecase.ErrNotFound), http.StatusNotFound, "notFound", noticeError},
		{"unauthorized", fmt.Errorf("%w: nope", usecase.ErrUnauthorized), http.StatusUnauthorized, "unauthorized", noticeError},
		{"session expired", fmt.Errorf("%w: nope", usecase.ErrSessionExpired), http.StatusUnauthorized, "sessionExpired", noticeWarning},
		{"forbidden", fmt.Errorf("%w: nope", usecase.ErrForbidden), http.StatusForbidden, "forbidden", noticeError},
		{"dependency down", fmt.Errorf("%w: nope", usecase.ErrDependencyUnavailable), http.StatusServiceUnavailable, "dependencyUnavailable", noticeError},
		{"equipo required", fmt.Errorf("%w: nope", usecase.ErrEquipoRequired), http.StatusConflict, "equipoRequired", noticeInfo},
		{"position mismatch", fmt.Errorf("%w: nope", usecase.ErrPositionMismatch), http.StatusConflict, "positionMismatch", noticeWarning},
		{"both titular", fmt.Errorf("%w: nope", usecase.ErrMixedTitularRequired), http.StatusConflict, "mixedTitularRequired", noticeWarning},
		{"stale selection", fmt.Errorf("%w: nope", usecase.ErrStaleSelection), http.StatusConflict, "staleSelection", noticeWarning},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "internalError", noticeError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(context.Background(), rec, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			envelope := decodeEnvelope(t, rec)
			if envelope.Error == nil || len(envelope.Error.Errors) != 1 {
				t.Fatalf("malformed error body: %+v", envelope.Error)
			}
			if got := envelope.Error.Errors[0].Reason; got != tc.wantReason {
				t.Fatalf("reason = %q, want %q", got, tc.wantReason)
			}
			if envelope.Notification == nil || envelope.Notification.Type != tc.wantNotice {
				t.Fatalf("notification = %+v, want type %q", envelope.Notification, tc.wantNotice)
			}
		})
	}
}
