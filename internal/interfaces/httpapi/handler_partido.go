package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ligafantasy/portal/internal/domain/partido"
)

type partidoRequest struct {
	Fecha         time.Time `json:"fecha" validate:"required"`
	Estado        string    `json:"estado" validate:"omitempty,max=10"`
	EstadoDetalle string    `json:"estadoDetalle" validate:"omitempty,max=100"`
	LocalID       int64     `json:"localId" validate:"required,gt=0"`
	VisitanteID   int64     `json:"visitanteId" validate:"required,gt=0"`
	JornadaID     int64     `json:"jornadaId" validate:"required,gt=0"`
}

func (req partidoRequest) toDomain(id int64) partido.Partido {
	return partido.Partido{
		ID:            id,
		Fecha:         req.Fecha,
		Estado:        partido.Estado(req.Estado),
		EstadoDetalle: req.EstadoDetalle,
		LocalID:       req.LocalID,
		VisitanteID:   req.VisitanteID,
		JornadaID:     req.JornadaID,
	}
}

func (h *Handler) ListPartidos(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPartidos")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}

	var jornadaID int64
	if raw := r.URL.Query().Get("jornadaId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err == nil && parsed > 0 {
			jornadaID = parsed
		}
	}

	partidos, err := h.partidoService.List(ctx, sess, jornadaID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]partidoDTO, 0, len(partidos))
	for _, p := range partidos {
		items = append(items, partidoToDTO(p))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListPartidosByJornada(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPartidosByJornada")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}
	jornadaID, err := pathID(r, "jornadaID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	partidos, err := h.partidoService.List(ctx, sess, jornadaID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]partidoDTO, 0, len(partidos))
	for _, p := range partidos {
		items = append(items, partidoToDTO(p))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreatePartido(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePartido")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}

	var req partidoRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.partidoService.Create(ctx, sess, req.toDomain(0))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccessNotice(ctx, w, http.StatusCreated, partidoToDTO(created), "partido creado")
}

func (h *Handler) UpdatePartido(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePartido")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}
	partidoID, err := pathID(r, "partidoID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req partidoRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.partidoService.Update(ctx, sess, req.toDomain(partidoID))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccessNotice(ctx, w, http.StatusOK, partidoToDTO(updated), "partido actualizado")
}

func (h *Handler) DeletePartido(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePartido")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}
	partidoID, err := pathID(r, "partidoID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.partidoService.Delete(ctx, sess, partidoID); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccessNotice(ctx, w, http.StatusOK, nil, "partido eliminado")
}
