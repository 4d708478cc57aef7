package httpapi

import (
	"net/http"

	"github.com/ligafantasy/portal/internal/usecase"
)

type createEquipoRequest struct {
	Nombre string `json:"nombre" validate:"required,min=3,max=100"`
}

type clickRequest struct {
	JugadorID int64 `json:"jugadorId" validate:"required,gt=0"`
}

func (h *Handler) CreateEquipo(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateEquipo")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}

	var req createEquipoRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	team, err := h.equipoService.Create(ctx, sess, req.Nombre)
	if err != nil {
		h.logger.WarnContext(ctx, "create equipo failed", "user_id", sess.User.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccessNotice(ctx, w, http.StatusCreated, equipoToDTO(team), "equipo creado")
}

// GetMiEquipo renders the formation screen view model. The optional
// layout=ordered query switches to the index-sliced grid for rosters the
// backend already serves in line order.
func (h *Handler) GetMiEquipo(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMiEquipo")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}

	mode := usecase.LayoutNormalized
	if r.URL.Query().Get("layout") == string(usecase.LayoutOrdered) {
		mode = usecase.LayoutOrdered
	}

	view, err := h.equipoService.View(ctx, sess, mode)
	if err != nil {
		h.logger.WarnContext(ctx, "mi equipo fetch failed", "user_id", sess.User.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamViewToDTO(view))
}

// ClickPlayer advances the lineup editor by one click.
func (h *Handler) ClickPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClickPlayer")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}

	var req clickRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.equipoService.Click(ctx, sess, req.JugadorID)
	if err != nil {
		h.logger.InfoContext(ctx, "click rejected", "user_id", sess.User.ID, "jugador_id", req.JugadorID, "error", err)
		writeError(ctx, w, err)
		return
	}

	if result.Warning != "" {
		writeJSON(ctx, w, http.StatusOK, googleResponseEnvelope{
			APIVersion:   googleAPIVersion,
			Data:         clickResultToDTO(result),
			Notification: &notificationDTO{Type: noticeWarning, Message: result.Warning},
		})
		return
	}

	writeSuccess(ctx, w, http.StatusOK, clickResultToDTO(result))
}

func (h *Handler) GetHistorial(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHistorial")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}
	equipoID, err := pathID(r, "equipoID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.historialService.History(ctx, sess, equipoID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]historialEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, historialEntryDTO{
			JornadaID:     entry.JornadaID,
			JornadaNombre: entry.JornadaNombre,
			Puntos:        entry.Puntos,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetJornadaDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetJornadaDetail")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}
	equipoID, err := pathID(r, "equipoID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	jornadaID, err := pathID(r, "jornadaID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	detail, err := h.historialService.Detail(ctx, sess, equipoID, jornadaID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, jornadaDetailToDTO(detail))
}

// GetJornadaDetails resolves several per-round snapshots in one request. The
// rounds arrive as a comma separated "ids" query parameter.
func (h *Handler) GetJornadaDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetJornadaDetails")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}
	equipoID, err := pathID(r, "equipoID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	jornadaIDs, err := queryIDs(r, "ids")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	details, err := h.historialService.Details(ctx, sess, equipoID, jornadaIDs)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]jornadaDetailDTO, 0, len(details))
	for _, detail := range details {
		items = append(items, jornadaDetailToDTO(detail))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
