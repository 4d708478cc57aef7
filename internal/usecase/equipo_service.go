package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ligafantasy/portal/internal/domain/equipo"
	"github.com/ligafantasy/portal/internal/domain/formation"
	"github.com/ligafantasy/portal/internal/domain/player"
	"github.com/ligafantasy/portal/internal/domain/session"
	"github.com/ligafantasy/portal/internal/platform/cache"
	"github.com/ligafantasy/portal/internal/platform/logging"
)

// EquipoGateway is the slice of the backend client the team flows need.
type EquipoGateway interface {
	MiEquipo(ctx context.Context, cookie string) (equipo.Equipo, error)
	CrearEquipo(ctx context.Context, cookie, nombre string) (equipo.Equipo, error)
	SwapAlineacion(ctx context.Context, cookie string, titularID, suplenteID int64) error
	Intercambio(ctx context.Context, cookie string, salienteID, entranteID int64) error
	GetPlayer(ctx context.Context, cookie string, playerID int64) (player.Player, error)
}

// ClickAction names the outcome of one click in the lineup editor.
type ClickAction string

const (
	ActionSelected    ClickAction = "selected"
	ActionDeselected  ClickAction = "deselected"
	ActionSwapped     ClickAction = "swapped"
	ActionSubstituted ClickAction = "substituted"
)

// ClickResult is what one click gesture produced. Equipo is always the
// server-confirmed roster, never a locally patched one.
type ClickResult struct {
	Action    ClickAction
	Equipo    equipo.Equipo
	Selection *session.Selection
	Warning   string
}

// LayoutMode picks the formation bucketing for the view model. The ordered
// mode trusts the backend's roster ordering (forwards, midfielders, defenders,
// goalkeeper, then bench) and slices by index; anything else buckets by
// normalized position.
type LayoutMode string

const (
	LayoutNormalized LayoutMode = "normalized"
	LayoutOrdered    LayoutMode = "ordered"
)

// TeamView is the formation screen's view model.
type TeamView struct {
	Equipo    equipo.Equipo
	Layout    formation.Layout
	Selection *session.Selection
}

type EquipoService struct {
	gateway  EquipoGateway
	sessions session.Repository
	probes   *cache.Store
	logger   *logging.Logger
}

func NewEquipoService(gateway EquipoGateway, sessions session.Repository, probes *cache.Store, logger *logging.Logger) *EquipoService {
	if logger == nil {
		logger = logging.Default()
	}

	return &EquipoService{
		gateway:  gateway,
		sessions: sessions,
		probes:   probes,
		logger:   logger,
	}
}

func probeKey(userID int64) string {
	return "mi-equipo:" + strconv.FormatInt(userID, 10)
}

// HasEquipo is the route-guard probe. A 404 from the backend is a definite
// "no team"; transport failure propagates so the guard can answer 503 instead
// of bouncing the user into team creation. Positive and negative answers are
// cached briefly per user.
func (s *EquipoService) HasEquipo(ctx context.Context, sess session.Session) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "EquipoService.HasEquipo")
	defer span.End()

	value, err := s.probes.GetOrLoad(ctx, probeKey(sess.User.ID), func(ctx context.Context) (any, error) {
		_, err := s.gateway.MiEquipo(ctx, sess.BackendCookie)
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return nil, err
		}
		return true, nil
	})
	if err != nil {
		return false, fmt.Errorf("probe mi equipo: %w", err)
	}

	return value.(bool), nil
}

// View fetches the confirmed roster and shapes it into the formation grid.
func (s *EquipoService) View(ctx context.Context, sess session.Session, mode LayoutMode) (TeamView, error) {
	ctx, span := startUsecaseSpan(ctx, "EquipoService.View")
	defer span.End()

	team, err := s.gateway.MiEquipo(ctx, sess.BackendCookie)
	if err != nil {
		return TeamView{}, err
	}
	s.probes.Set(ctx, probeKey(sess.User.ID), true)

	selection := sess.Selection
	if selection != nil && selection.Generation != team.Generation() {
		// The roster changed under the selection; drop it.
		selection = nil
		s.clearSelection(ctx, sess)
	}

	return TeamView{
		Equipo:    team,
		Layout:    layoutOf(team, mode),
		Selection: selection,
	}, nil
}

func (s *EquipoService) Create(ctx context.Context, sess session.Session, nombre string) (equipo.Equipo, error) {
	ctx, span := startUsecaseSpan(ctx, "EquipoService.Create")
	defer span.End()

	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return equipo.Equipo{}, fmt.Errorf("%w: equipo name is required", ErrInvalidInput)
	}

	team, err := s.gateway.CrearEquipo(ctx, sess.BackendCookie, nombre)
	if err != nil {
		return equipo.Equipo{}, err
	}

	s.probes.Set(ctx, probeKey(sess.User.ID), true)
	s.logger.InfoContext(ctx, "equipo created", "user_id", sess.User.ID, "equipo_id", team.ID)
	return team, nil
}

// Click advances the two-click editor state machine.
//
// First click selects. Clicking the selected player again deselects. Clicking
// a different player resolves a swap: positions must match, and the pair is
// either an intra-team titular/suplente flip or an external substitution.
// Whatever happens, the selection is cleared on the second click, and the
// returned roster is re-fetched from the backend after every mutation.
func (s *EquipoService) Click(ctx context.Context, sess session.Session, playerID int64) (ClickResult, error) {
	ctx, span := startUsecaseSpan(ctx, "EquipoService.Click")
	defer span.End()

	if playerID <= 0 {
		return ClickResult{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	team, err := s.gateway.MiEquipo(ctx, sess.BackendCookie)
	if err != nil {
		return ClickResult{}, err
	}
	generation := team.Generation()

	selection := sess.Selection
	staleDropped := false
	if selection != nil && selection.Generation != generation {
		selection = nil
		staleDropped = true
	}

	if selection == nil {
		result, err := s.beginSelection(ctx, sess, team, generation, playerID)
		if err != nil {
			return ClickResult{}, err
		}
		if staleDropped {
			result.Warning = "la selección anterior caducó al cambiar la plantilla"
		}
		return result, nil
	}

	if selection.PlayerID == playerID {
		s.clearSelection(ctx, sess)
		return ClickResult{Action: ActionDeselected, Equipo: team}, nil
	}

	return s.resolveSwap(ctx, sess, team, *selection, playerID)
}

func (s *EquipoService) beginSelection(ctx context.Context, sess session.Session, team equipo.Equipo, generation uint64, playerID int64) (ClickResult, error) {
	if _, ok := team.Find(playerID); !ok {
		return ClickResult{}, fmt.Errorf("%w: jugador=%d is not on the team", ErrInvalidInput, playerID)
	}

	selection := &session.Selection{PlayerID: playerID, Generation: generation}
	sess.Selection = selection
	if err := s.sessions.Upsert(ctx, sess); err != nil {
		return ClickResult{}, fmt.Errorf("store selection: %w", err)
	}

	return ClickResult{Action: ActionSelected, Equipo: team, Selection: selection}, nil
}

func (s *EquipoService) resolveSwap(ctx context.Context, sess session.Session, team equipo.Equipo, selection session.Selection, targetID int64) (ClickResult, error) {
	// The second click always consumes the selection, even when the swap is
	// rejected.
	s.clearSelection(ctx, sess)

	origin, ok := team.Find(selection.PlayerID)
	if !ok {
		return ClickResult{}, fmt.Errorf("%w: selected jugador=%d left the team", ErrStaleSelection, selection.PlayerID)
	}

	target, onTeam := team.Find(targetID)
	var targetPlayer player.Player
	if onTeam {
		targetPlayer = target.Player
	} else {
		pool, err := s.gateway.GetPlayer(ctx, sess.BackendCookie, targetID)
		if err != nil {
			return ClickResult{}, fmt.Errorf("resolve substitution target: %w", err)
		}
		targetPlayer = pool
	}

	// Position gate: rejected before any mutation reaches the backend.
	originPos := origin.Player.Normalized()
	targetPos := targetPlayer.Normalized()
	if originPos != targetPos {
		return ClickResult{}, fmt.Errorf("%w: %s vs %s", ErrPositionMismatch, originPos, targetPos)
	}

	if onTeam {
		if origin.EsTitular == target.EsTitular {
			return ClickResult{}, fmt.Errorf("%w: jugador=%d and jugador=%d", ErrMixedTitularRequired, origin.Player.ID, target.Player.ID)
		}

		titularID, suplenteID := origin.Player.ID, target.Player.ID
		if !origin.EsTitular {
			titularID, suplenteID = target.Player.ID, origin.Player.ID
		}
		if err := s.gateway.SwapAlineacion(ctx, sess.BackendCookie, titularID, suplenteID); err != nil {
			return ClickResult{}, err
		}

		confirmed, err := s.refetch(ctx, sess)
		if err != nil {
			return ClickResult{}, err
		}
		s.logger.InfoContext(ctx, "alineacion swapped", "user_id", sess.User.ID, "titular_id", titularID, "suplente_id", suplenteID)
		return ClickResult{Action: ActionSwapped, Equipo: confirmed}, nil
	}

	if err := s.gateway.Intercambio(ctx, sess.BackendCookie, origin.Player.ID, targetPlayer.ID); err != nil {
		return ClickResult{}, err
	}

	confirmed, err := s.refetch(ctx, sess)
	if err != nil {
		return ClickResult{}, err
	}
	s.logger.InfoContext(ctx, "intercambio applied", "user_id", sess.User.ID, "saliente_id", origin.Player.ID, "entrante_id", targetPlayer.ID)
	return ClickResult{Action: ActionSubstituted, Equipo: confirmed}, nil
}

// refetch pulls the authoritative roster after a mutation. The portal never
// patches its own copy of the lineup.
func (s *EquipoService) refetch(ctx context.Context, sess session.Session) (equipo.Equipo, error) {
	confirmed, err := s.gateway.MiEquipo(ctx, sess.BackendCookie)
	if err != nil {
		return equipo.Equipo{}, fmt.Errorf("refetch after mutation: %w", err)
	}
	return confirmed, nil
}

func (s *EquipoService) clearSelection(ctx context.Context, sess session.Session) {
	if sess.Selection == nil {
		return
	}
	sess.Selection = nil
	if err := s.sessions.Upsert(ctx, sess); err != nil {
		s.logger.WarnContext(ctx, "clear selection failed", "user_id", sess.User.ID, "error", err)
	}
}

func layoutOf(team equipo.Equipo, mode LayoutMode) formation.Layout {
	players := make([]player.Player, 0, len(team.Plantel))
	for _, link := range team.Plantel {
		p := link.Player
		p.EsTitular = link.EsTitular
		players = append(players, p)
	}
	if mode == LayoutOrdered {
		return formation.SliceOrdered(players)
	}
	return formation.GroupByPosition(players)
}
