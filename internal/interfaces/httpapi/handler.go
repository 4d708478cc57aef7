package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/ligafantasy/portal/internal/domain/session"
	"github.com/ligafantasy/portal/internal/usecase"
)

type Handler struct {
	authService      *usecase.AuthService
	equipoService    *usecase.EquipoService
	jornadaService   *usecase.JornadaService
	partidoService   *usecase.PartidoService
	catalogService   *usecase.CatalogService
	historialService *usecase.HistorialService
	logger           *slog.Logger
	validator        *validator.Validate
}

func NewHandler(
	authService *usecase.AuthService,
	equipoService *usecase.EquipoService,
	jornadaService *usecase.JornadaService,
	partidoService *usecase.PartidoService,
	catalogService *usecase.CatalogService,
	historialService *usecase.HistorialService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		authService:      authService,
		equipoService:    equipoService,
		jornadaService:   jornadaService,
		partidoService:   partidoService,
		catalogService:   catalogService,
		historialService: historialService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeRequest reads the body into payload and runs struct validation.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, payload any) error {
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(payload); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, payload)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// mustSession pulls the session placed in context by RequireSession. Routes
// that reach a handler without it are wiring mistakes.
func mustSession(ctx context.Context, w http.ResponseWriter) (session.Session, bool) {
	sess, ok := sessionFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: no session", usecase.ErrUnauthorized))
		return session.Session{}, false
	}
	return sess, true
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", usecase.ErrInvalidInput, name, raw)
	}
	return id, nil
}

// queryIDs parses a comma separated id list from the query string.
func queryIDs(r *http.Request, name string) ([]int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, fmt.Errorf("%w: %s query parameter is required", usecase.ErrInvalidInput, name)
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: invalid %s value %q", usecase.ErrInvalidInput, name, part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
