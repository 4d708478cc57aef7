package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrSessionExpired        = errors.New("session expired")
	ErrEquipoRequired        = errors.New("equipo required")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// Lineup editor preconditions. These reject before any backend call and
	// surface as warnings, not errors.
	ErrPositionMismatch     = errors.New("positions do not match")
	ErrMixedTitularRequired = errors.New("swap requires one titular and one suplente")
	ErrStaleSelection       = errors.New("selection no longer matches the roster")
)
