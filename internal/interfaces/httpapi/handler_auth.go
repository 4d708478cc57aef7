package httpapi

import (
	"net/http"
)

type loginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Login")
	defer span.End()

	var req loginRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sess, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "login failed", "username", req.Username, "error", err)
		writeError(ctx, w, err)
		return
	}

	setSessionCookie(w, sess.Token, sess.ExpiresAt)
	writeSuccessNotice(ctx, w, http.StatusOK, sessionToDTO(sess), "sesión iniciada")
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Register")
	defer span.End()

	var req registerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sess, err := h.authService.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "registration failed", "username", req.Username, "error", err)
		writeError(ctx, w, err)
		return
	}

	setSessionCookie(w, sess.Token, sess.ExpiresAt)
	writeSuccessNotice(ctx, w, http.StatusCreated, sessionToDTO(sess), "cuenta creada")
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Logout")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}

	if err := h.authService.Logout(ctx, sess); err != nil {
		writeError(ctx, w, err)
		return
	}

	clearSessionCookie(w)
	writeSuccessNotice(ctx, w, http.StatusOK, nil, "sesión cerrada")
}

// GetSession restores the denormalized user for a returning browser.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSession")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionToDTO(sess))
}
