package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/ligafantasy/portal/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "liga-fantasy-portal"
)

const (
	noticeSuccess = "success"
	noticeError   = "error"
	noticeWarning = "warning"
	noticeInfo    = "info"
)

type googleResponseEnvelope struct {
	APIVersion   string           `json:"apiVersion"`
	Data         any              `json:"data,omitempty"`
	Error        *googleErrorBody `json:"error,omitempty"`
	Notification *notificationDTO `json:"notification,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// notificationDTO mirrors the toast the screen shows for the outcome.
type notificationDTO struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
	Notice     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

// writeSuccessNotice is writeSuccess plus a toast message.
func writeSuccessNotice(ctx context.Context, w http.ResponseWriter, status int, data any, message string) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccessNotice")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion:   googleAPIVersion,
		Data:         data,
		Notification: &notificationDTO{Type: noticeSuccess, Message: message},
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: err.Error(),
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: err.Error(),
				},
			},
		},
		Notification: &notificationDTO{Type: mapped.Notice, Message: err.Error()},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  "INTERNAL",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "internalError",
					Message: msg,
				},
			},
		},
		Notification: &notificationDTO{Type: noticeError, Message: msg},
	})
}

func mapError(ctx context.Context, err error) mappedError {
	ctx, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	// Editor preconditions are warnings: the gesture was understood, the
	// pair just cannot swap. Nothing reached the backend.
	case errors.Is(err, usecase.ErrPositionMismatch):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "positionMismatch",
			Status:     "FAILED_PRECONDITION",
			Notice:     noticeWarning,
		}
	case errors.Is(err, usecase.ErrMixedTitularRequired):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "mixedTitularRequired",
			Status:     "FAILED_PRECONDITION",
			Notice:     noticeWarning,
		}
	case errors.Is(err, usecase.ErrStaleSelection):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "staleSelection",
			Status:     "FAILED_PRECONDITION",
			Notice:     noticeWarning,
		}
	case errors.Is(err, usecase.ErrEquipoRequired):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "equipoRequired",
			Status:     "FAILED_PRECONDITION",
			Notice:     noticeInfo,
		}
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidInput",
			Status:     "INVALID_ARGUMENT",
			Notice:     noticeError,
		}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "notFound",
			Status:     "NOT_FOUND",
			Notice:     noticeError,
		}
	case errors.Is(err, usecase.ErrSessionExpired):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Reason:     "sessionExpired",
			Status:     "UNAUTHENTICATED",
			Notice:     noticeWarning,
		}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Reason:     "unauthorized",
			Status:     "UNAUTHENTICATED",
			Notice:     noticeError,
		}
	case errors.Is(err, usecase.ErrForbidden):
		return mappedError{
			HTTPStatus: http.StatusForbidden,
			Reason:     "forbidden",
			Status:     "PERMISSION_DENIED",
			Notice:     noticeError,
		}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Reason:     "dependencyUnavailable",
			Status:     "UNAVAILABLE",
			Notice:     noticeError,
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
			Status:     "INTERNAL",
			Notice:     noticeError,
		}
	}
}
