package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ligafantasy/portal/internal/domain/equipo"
	"github.com/ligafantasy/portal/internal/domain/player"
	"github.com/ligafantasy/portal/internal/domain/session"
	"github.com/ligafantasy/portal/internal/domain/user"
	"github.com/ligafantasy/portal/internal/infrastructure/sessionstore/memory"
	"github.com/ligafantasy/portal/internal/platform/cache"
	"github.com/ligafantasy/portal/internal/platform/logging"
)

type fakeEquipoGateway struct {
	team          equipo.Equipo
	teamErr       error
	pool          map[int64]player.Player
	miEquipoCalls int
	swapCalls     int
	interCalls    int
}

func (f *fakeEquipoGateway) MiEquipo(_ context.Context, _ string) (equipo.Equipo, error) {
	f.miEquipoCalls++
	if f.teamErr != nil {
		return equipo.Equipo{}, f.teamErr
	}
	return cloneTeam(f.team), nil
}

func (f *fakeEquipoGateway) CrearEquipo(_ context.Context, _, nombre string) (equipo.Equipo, error) {
	f.team.Nombre = nombre
	return cloneTeam(f.team), nil
}

func (f *fakeEquipoGateway) SwapAlineacion(_ context.Context, _ string, titularID, suplenteID int64) error {
	f.swapCalls++
	for i := range f.team.Plantel {
		switch f.team.Plantel[i].Player.ID {
		case titularID:
			f.team.Plantel[i].EsTitular = false
		case suplenteID:
			f.team.Plantel[i].EsTitular = true
		}
	}
	return nil
}

func (f *fakeEquipoGateway) Intercambio(_ context.Context, _ string, salienteID, entranteID int64) error {
	f.interCalls++
	entrante, ok := f.pool[entranteID]
	if !ok {
		return fmt.Errorf("%w: jugador=%d", ErrNotFound, entranteID)
	}
	for i := range f.team.Plantel {
		if f.team.Plantel[i].Player.ID == salienteID {
			f.team.Plantel[i].Player = entrante
		}
	}
	return nil
}

func (f *fakeEquipoGateway) GetPlayer(_ context.Context, _ string, playerID int64) (player.Player, error) {
	if p, ok := f.pool[playerID]; ok {
		return p, nil
	}
	return player.Player{}, fmt.Errorf("%w: jugador=%d", ErrNotFound, playerID)
}

func cloneTeam(team equipo.Equipo) equipo.Equipo {
	out := team
	out.Plantel = append([]equipo.PlayerLink(nil), team.Plantel...)
	return out
}

func fieldPlayer(id int64, pos player.Position) player.Player {
	return player.Player{ID: id, Nombre: fmt.Sprintf("Jugador %d", id), Position: pos}
}

// fullRoster builds the standard 15-man squad: 11 titulares (3-4-3 plus GK)
// and 4 suplentes, one per line.
func fullRoster() equipo.Equipo {
	team := equipo.Equipo{ID: 7, Nombre: "Los Rayos", UserID: 3}
	add := func(id int64, pos player.Position, titular bool) {
		team.Plantel = append(team.Plantel, equipo.PlayerLink{Player: fieldPlayer(id, pos), EsTitular: titular})
	}

	add(1, player.PositionPortero, true)
	for id := int64(2); id <= 5; id++ {
		add(id, player.PositionDefensa, true)
	}
	for id := int64(6); id <= 8; id++ {
		add(id, player.PositionCentrocampista, true)
	}
	for id := int64(9); id <= 11; id++ {
		add(id, player.PositionDelantero, true)
	}
	add(12, player.PositionPortero, false)
	add(13, player.PositionDefensa, false)
	add(14, player.PositionCentrocampista, false)
	add(15, player.PositionDelantero, false)
	return team
}

func newEditorFixture(t *testing.T, gateway *fakeEquipoGateway) (*EquipoService, *memory.Store, session.Session) {
	t.Helper()

	store := memory.NewStore()
	sess := session.Session{
		Token:         "tok",
		User:          user.User{ID: 3, Username: "ana", Email: "ana@example.com", Role: user.RoleUsuario},
		BackendCookie: "auth=backend",
		CreatedAt:     time.Now(),
		ExpiresAt:     time.Now().Add(time.Hour),
	}
	if err := store.Upsert(context.Background(), sess); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	service := NewEquipoService(gateway, store, cache.NewStore(time.Minute), logging.NewNop())
	return service, store, sess
}

func currentSession(t *testing.T, store *memory.Store) session.Session {
	t.Helper()
	sess, ok, err := store.Get(context.Background(), "tok")
	if err != nil || !ok {
		t.Fatalf("session lost: ok=%v err=%v", ok, err)
	}
	return sess
}

func TestClickSelectsAndDeselects(t *testing.T) {
	gateway := &fakeEquipoGateway{team: fullRoster()}
	service, store, sess := newEditorFixture(t, gateway)
	ctx := context.Background()

	result, err := service.Click(ctx, sess, 5)
	if err != nil {
		t.Fatalf("first click: %v", err)
	}
	if result.Action != ActionSelected || result.Selection == nil || result.Selection.PlayerID != 5 {
		t.Fatalf("unexpected result %+v", result)
	}

	// Clicking the selected player again returns to the no-selection state.
	result, err = service.Click(ctx, currentSession(t, store), 5)
	if err != nil {
		t.Fatalf("second click: %v", err)
	}
	if result.Action != ActionDeselected || result.Selection != nil {
		t.Fatalf("unexpected result %+v", result)
	}
	if stored := currentSession(t, store); stored.Selection != nil {
		t.Fatal("selection survived deselection")
	}

	// And a third click selects again; deselection is idempotent, not sticky.
	result, err = service.Click(ctx, currentSession(t, store), 5)
	if err != nil {
		t.Fatalf("third click: %v", err)
	}
	if result.Action != ActionSelected {
		t.Fatalf("unexpected result %+v", result)
	}
	if gateway.swapCalls+gateway.interCalls != 0 {
		t.Fatal("select/deselect must not reach the backend")
	}
}

func TestPositionMismatchRejectsBeforeBackend(t *testing.T) {
	gateway := &fakeEquipoGateway{team: fullRoster()}
	service, store, sess := newEditorFixture(t, gateway)
	ctx := context.Background()

	if _, err := service.Click(ctx, sess, 5); err != nil {
		t.Fatalf("select defensa: %v", err)
	}

	// Defensa selected, delantero clicked: rejected locally.
	_, err := service.Click(ctx, currentSession(t, store), 15)
	if !errors.Is(err, ErrPositionMismatch) {
		t.Fatalf("expected ErrPositionMismatch, got %v", err)
	}
	if gateway.swapCalls != 0 || gateway.interCalls != 0 {
		t.Fatal("mismatched positions must not reach the backend")
	}
	if stored := currentSession(t, store); stored.Selection != nil {
		t.Fatal("rejected swap must still clear the selection")
	}
}

func TestBothTitularesRejected(t *testing.T) {
	gateway := &fakeEquipoGateway{team: fullRoster()}
	service, store, sess := newEditorFixture(t, gateway)
	ctx := context.Background()

	if _, err := service.Click(ctx, sess, 4); err != nil {
		t.Fatalf("select titular: %v", err)
	}

	// Two titular defenders: same position, but nothing to swap.
	_, err := service.Click(ctx, currentSession(t, store), 5)
	if !errors.Is(err, ErrMixedTitularRequired) {
		t.Fatalf("expected ErrMixedTitularRequired, got %v", err)
	}
	if gateway.swapCalls != 0 {
		t.Fatal("same-side pair must not reach the backend")
	}
}

func TestSwapFlipsExactlyTwoFlags(t *testing.T) {
	gateway := &fakeEquipoGateway{team: fullRoster()}
	service, store, sess := newEditorFixture(t, gateway)
	ctx := context.Background()

	before := cloneTeam(gateway.team)

	if _, err := service.Click(ctx, sess, 5); err != nil {
		t.Fatalf("select titular defensa: %v", err)
	}
	result, err := service.Click(ctx, currentSession(t, store), 13)
	if err != nil {
		t.Fatalf("click suplente defensa: %v", err)
	}
	if result.Action != ActionSwapped {
		t.Fatalf("expected swap, got %+v", result)
	}
	if gateway.swapCalls != 1 {
		t.Fatalf("expected exactly one swap call, got %d", gateway.swapCalls)
	}

	flipped := 0
	for _, link := range result.Equipo.Plantel {
		beforeLink, _ := before.Find(link.Player.ID)
		if link.EsTitular != beforeLink.EsTitular {
			flipped++
			if link.Player.ID != 5 && link.Player.ID != 13 {
				t.Fatalf("unexpected flag flip on jugador=%d", link.Player.ID)
			}
		}
	}
	if flipped != 2 {
		t.Fatalf("expected exactly 2 flipped flags, got %d", flipped)
	}
	if got := len(result.Equipo.Titulares()); got != 11 {
		t.Fatalf("expected 11 titulares after swap, got %d", got)
	}
}

func TestSubstitutionReturnsConfirmedSnapshot(t *testing.T) {
	gateway := &fakeEquipoGateway{
		team: fullRoster(),
		pool: map[int64]player.Player{
			99: fieldPlayer(99, player.PositionDefensa),
		},
	}
	service, store, sess := newEditorFixture(t, gateway)
	ctx := context.Background()

	if _, err := service.Click(ctx, sess, 5); err != nil {
		t.Fatalf("select saliente: %v", err)
	}
	result, err := service.Click(ctx, currentSession(t, store), 99)
	if err != nil {
		t.Fatalf("click entrante: %v", err)
	}
	if result.Action != ActionSubstituted {
		t.Fatalf("expected substitution, got %+v", result)
	}
	if gateway.interCalls != 1 {
		t.Fatalf("expected one intercambio call, got %d", gateway.interCalls)
	}

	// The result must equal what the backend now reports, not a local patch.
	confirmed, _ := gateway.MiEquipo(ctx, "auth=backend")
	if result.Equipo.Generation() != confirmed.Generation() {
		t.Fatal("substitution result diverges from the backend snapshot")
	}
	if _, stillThere := result.Equipo.Find(5); stillThere {
		t.Fatal("saliente still on the roster")
	}
	link, ok := result.Equipo.Find(99)
	if !ok || !link.EsTitular {
		t.Fatalf("entrante missing or not titular: %+v", link)
	}
}

func TestStaleSelectionIsDiscarded(t *testing.T) {
	gateway := &fakeEquipoGateway{team: fullRoster()}
	service, store, sess := newEditorFixture(t, gateway)
	ctx := context.Background()

	if _, err := service.Click(ctx, sess, 5); err != nil {
		t.Fatalf("select: %v", err)
	}

	// The roster changes behind the session's back.
	gateway.team.Plantel[1].EsTitular = false

	result, err := service.Click(ctx, currentSession(t, store), 13)
	if err != nil {
		t.Fatalf("click after roster change: %v", err)
	}
	if result.Action != ActionSelected || result.Selection == nil || result.Selection.PlayerID != 13 {
		t.Fatalf("stale selection should restart the gesture, got %+v", result)
	}
	if result.Warning == "" {
		t.Fatal("expected a warning about the dropped selection")
	}
	if gateway.swapCalls != 0 {
		t.Fatal("stale selection must never produce a swap")
	}
}

func TestFirstClickMustBeOnTheTeam(t *testing.T) {
	gateway := &fakeEquipoGateway{team: fullRoster()}
	service, _, sess := newEditorFixture(t, gateway)

	_, err := service.Click(context.Background(), sess, 999)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestViewDropsStaleSelection(t *testing.T) {
	gateway := &fakeEquipoGateway{team: fullRoster()}
	service, store, sess := newEditorFixture(t, gateway)
	ctx := context.Background()

	if _, err := service.Click(ctx, sess, 5); err != nil {
		t.Fatalf("select: %v", err)
	}
	gateway.team.Plantel[1].EsTitular = false

	view, err := service.View(ctx, currentSession(t, store), LayoutNormalized)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if view.Selection != nil {
		t.Fatal("view carries a selection made against an older roster")
	}
	if got := view.Layout.Starters(); got != 10 {
		t.Fatalf("expected 10 starters after the external change, got %d", got)
	}
}

func TestViewOrderedLayoutSlicesByIndex(t *testing.T) {
	gateway := &fakeEquipoGateway{team: fullRoster()}
	service, _, sess := newEditorFixture(t, gateway)

	view, err := service.View(context.Background(), sess, LayoutOrdered)
	if err != nil {
		t.Fatalf("View: %v", err)
	}

	// The ordered grid is a positional contract: the first three roster slots
	// land on the forward line no matter what their positions say.
	if got := len(view.Layout.Delanteros); got != 3 {
		t.Fatalf("forward line has %d players, want 3", got)
	}
	if view.Layout.Delanteros[0].ID != 1 {
		t.Fatalf("first roster slot went to player %d", view.Layout.Delanteros[0].ID)
	}
	if got := len(view.Layout.Banquillo); got != 4 {
		t.Fatalf("bench has %d players, want 4", got)
	}
	if view.Layout.Banquillo[0].ID != 12 {
		t.Fatalf("bench starts at player %d, want 12", view.Layout.Banquillo[0].ID)
	}

	normalized, err := service.View(context.Background(), sess, LayoutNormalized)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if got := len(normalized.Layout.Delanteros); got != 3 {
		t.Fatalf("normalized forward line has %d players, want 3", got)
	}
	if normalized.Layout.Delanteros[0].ID != 9 {
		t.Fatalf("normalized grid should bucket by position, got player %d up front", normalized.Layout.Delanteros[0].ID)
	}
}

func TestHasEquipoDistinguishesMissingFromUnavailable(t *testing.T) {
	t.Run("no team", func(t *testing.T) {
		gateway := &fakeEquipoGateway{teamErr: fmt.Errorf("%w: no equipo", ErrNotFound)}
		service, _, sess := newEditorFixture(t, gateway)

		has, err := service.HasEquipo(context.Background(), sess)
		if err != nil {
			t.Fatalf("HasEquipo: %v", err)
		}
		if has {
			t.Fatal("404 probe reported a team")
		}
	})

	t.Run("backend down", func(t *testing.T) {
		gateway := &fakeEquipoGateway{teamErr: fmt.Errorf("%w: boom", ErrDependencyUnavailable)}
		service, _, sess := newEditorFixture(t, gateway)

		_, err := service.HasEquipo(context.Background(), sess)
		if !errors.Is(err, ErrDependencyUnavailable) {
			t.Fatalf("transport failure must propagate, got %v", err)
		}
	})
}

func TestHasEquipoCachesTheProbe(t *testing.T) {
	gateway := &fakeEquipoGateway{team: fullRoster()}
	service, _, sess := newEditorFixture(t, gateway)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		has, err := service.HasEquipo(ctx, sess)
		if err != nil || !has {
			t.Fatalf("HasEquipo: has=%v err=%v", has, err)
		}
	}
	if gateway.miEquipoCalls != 1 {
		t.Fatalf("probe not cached: %d backend calls", gateway.miEquipoCalls)
	}
}
