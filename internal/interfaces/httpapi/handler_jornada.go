package httpapi

import (
	"net/http"

	"github.com/ligafantasy/portal/internal/domain/jornada"
)

type updateConfigRequest struct {
	JornadaActiva             int64 `json:"jornadaActiva" validate:"required,gt=0"`
	ModificacionesHabilitadas bool  `json:"modificacionesHabilitadas"`
}

func (h *Handler) ListJornadas(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListJornadas")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}

	jornadas, err := h.jornadaService.List(ctx, sess)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]jornadaDTO, 0, len(jornadas))
	for _, j := range jornadas {
		items = append(items, jornadaToDTO(j))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetJornada(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetJornada")
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

	item, err := h.jornadaService.Get(ctx, sess, jornadaID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, jornadaToDTO(item))
}

// GetConfig exposes the round switchboard to every screen that needs to know
// whether lineup edits are currently allowed.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetConfig")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}

	config, err := h.jornadaService.Config(ctx, sess)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, configToDTO(config))
}

func (h *Handler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateConfig")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}

	var req updateConfigRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	confirmed, err := h.jornadaService.UpdateConfig(ctx, sess, jornada.SystemConfig{
		JornadaActiva:             req.JornadaActiva,
		ModificacionesHabilitadas: req.ModificacionesHabilitadas,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccessNotice(ctx, w, http.StatusOK, configToDTO(confirmed), "configuración actualizada")
}

func (h *Handler) ProcesarJornada(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ProcesarJornada")
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

	if err := h.jornadaService.Procesar(ctx, sess, jornadaID); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccessNotice(ctx, w, http.StatusAccepted, nil, "procesamiento de jornada iniciado")
}

func (h *Handler) RecalcularJornada(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalcularJornada")
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

	if err := h.jornadaService.Recalcular(ctx, sess, jornadaID); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccessNotice(ctx, w, http.StatusAccepted, nil, "recálculo de jornada iniciado")
}
