package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ligafantasy/portal/internal/domain/club"
	"github.com/ligafantasy/portal/internal/domain/player"
	"github.com/ligafantasy/portal/internal/domain/user"
	"github.com/ligafantasy/portal/internal/usecase"
)

type clubRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2,max=100"`
	Escudo string `json:"escudo" validate:"omitempty,url"`
}

type playerRequest struct {
	Nombre       string `json:"nombre" validate:"omitempty,max=150"`
	FirstName    string `json:"firstName" validate:"omitempty,max=100"`
	LastName     string `json:"lastName" validate:"omitempty,max=100"`
	Edad         int    `json:"edad" validate:"omitempty,gte=15,lte=50"`
	Nacionalidad string `json:"nacionalidad" validate:"omitempty,max=100"`
	Photo        string `json:"photo" validate:"omitempty,url"`
	JerseyNumber int    `json:"jerseyNumber" validate:"omitempty,gte=1,lte=99"`
	ClubID       int64  `json:"clubId" validate:"required,gt=0"`
	PositionID   int    `json:"positionId" validate:"required,gte=1,lte=4"`
}

func (req playerRequest) toDomain(id int64) player.Player {
	raw := player.RawPosition{Code: int64(req.PositionID)}
	return player.Player{
		ID:           id,
		Nombre:       req.Nombre,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Edad:         req.Edad,
		Nacionalidad: req.Nacionalidad,
		Photo:        req.Photo,
		JerseyNumber: req.JerseyNumber,
		ClubID:       req.ClubID,
		RawPosition:  raw,
		Position:     raw.Normalize(),
	}
}

type positionRequest struct {
	Description string `json:"description" validate:"required,min=2,max=100"`
}

type userRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=usuario admin"`
}

func (h *Handler) ListClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubs")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}

	clubs, err := h.catalogService.Clubs(ctx, sess)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]clubDTO, 0, len(clubs))
	for _, c := range clubs {
		items = append(items, clubToDTO(c))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateClub")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}

	var req clubRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.catalogService.CreateClub(ctx, sess, club.Club{Nombre: req.Nombre, Escudo: req.Escudo})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccessNotice(ctx, w, http.StatusCreated, clubToDTO(created), "club creado")
}

func (h *Handler) UpdateClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateClub")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}
	clubID, err := pathID(r, "clubID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req clubRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.catalogService.UpdateClub(ctx, sess, club.Club{ID: clubID, Nombre: req.Nombre, Escudo: req.Escudo})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccessNotice(ctx, w, http.StatusOK, clubToDTO(updated), "club actualizado")
}

func (h *Handler) DeleteClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteClub")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}
	clubID, err := pathID(r, "clubID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.catalogService.DeleteClub(ctx, sess, clubID); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccessNotice(ctx, w, http.StatusOK, nil, "club eliminado")
}

func (h *Handler) ListPositions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPositions")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}

	positions, err := h.catalogService.Positions(ctx, sess)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]positionDTO, 0, len(positions))
	for _, p := range positions {
		items = append(items, positionDTO{ID: p.ID, Description: p.Description})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreatePosition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePosition")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}

	var req positionRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.catalogService.CreatePosition(ctx, sess, club.PositionRef{Description: req.Description})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccessNotice(ctx, w, http.StatusCreated, positionDTO{ID: created.ID, Description: created.Description}, "posición creada")
}

func (h *Handler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePosition")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}
	positionID, err := pathID(r, "positionID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req positionRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.catalogService.UpdatePosition(ctx, sess, club.PositionRef{ID: positionID, Description: req.Description})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccessNotice(ctx, w, http.StatusOK, positionDTO{ID: updated.ID, Description: updated.Description}, "posición actualizada")
}

func (h *Handler) DeletePosition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePosition")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}
	positionID, err := pathID(r, "positionID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.catalogService.DeletePosition(ctx, sess, positionID); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccessNotice(ctx, w, http.StatusOK, nil, "posición eliminada")
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}

	filter := usecase.PlayerFilter{Search: strings.TrimSpace(r.URL.Query().Get("search"))}
	if raw := r.URL.Query().Get("clubId"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.ClubID = parsed
		}
	}
	if raw := r.URL.Query().Get("positionId"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.PositionID = parsed
		}
	}

	players, err := h.catalogService.Players(ctx, sess, filter)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(players))
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}
	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.catalogService.Player(ctx, sess, playerID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}

	var req playerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.catalogService.CreatePlayer(ctx, sess, req.toDomain(0))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccessNotice(ctx, w, http.StatusCreated, playerToDTO(created), "jugador creado")
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}
	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req playerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.catalogService.UpdatePlayer(ctx, sess, req.toDomain(playerID))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccessNotice(ctx, w, http.StatusOK, playerToDTO(updated), "jugador actualizado")
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}
	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.catalogService.DeletePlayer(ctx, sess, playerID); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccessNotice(ctx, w, http.StatusOK, nil, "jugador eliminado")
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUsers")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}

	users, err := h.catalogService.Users(ctx, sess)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]userDTO, 0, len(users))
	for _, u := range users {
		items = append(items, userToDTO(u))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateUserRole")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}
	userID, err := pathID(r, "userID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req userRoleRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.catalogService.UpdateUserRole(ctx, sess, userID, user.Role(req.Role))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccessNotice(ctx, w, http.StatusOK, userToDTO(updated), "rol actualizado")
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteUser")
	defer span.End()

	sess, ok := mustSession(ctx, w)
	if !ok {
		return
	}
	userID, err := pathID(r, "userID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.catalogService.DeleteUser(ctx, sess, userID); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccessNotice(ctx, w, http.StatusOK, nil, "usuario eliminado")
}
