package formation

import (
	"testing"

	"github.com/ligafantasy/portal/internal/domain/player"
)

func orderedRoster(total int) []player.Player {
	players := make([]player.Player, 0, total)
	for i := 1; i <= total; i++ {
		players = append(players, player.Player{ID: int64(i), Nombre: "P"})
	}
	return players
}

func TestSliceOrdered_FullRoster(t *testing.T) {
	layout := SliceOrdered(orderedRoster(15))

	if len(layout.Delanteros) != 3 {
		t.Fatalf("expected 3 forwards, got %d", len(layout.Delanteros))
	}
	if len(layout.Centrocampistas) != 3 {
		t.Fatalf("expected 3 midfielders, got %d", len(layout.Centrocampistas))
	}
	if len(layout.Defensas) != 4 {
		t.Fatalf("expected 4 defenders, got %d", len(layout.Defensas))
	}
	if len(layout.Portero) != 1 {
		t.Fatalf("expected 1 goalkeeper, got %d", len(layout.Portero))
	}
	if len(layout.Banquillo) != 4 {
		t.Fatalf("expected 4 bench players, got %d", len(layout.Banquillo))
	}
	if layout.Portero[0].ID != 11 {
		t.Fatalf("expected player 11 in goal, got %d", layout.Portero[0].ID)
	}
}

func TestSliceOrdered_ShortRosterDoesNotPanic(t *testing.T) {
	layout := SliceOrdered(orderedRoster(5))

	if layout.Starters() != 5 {
		t.Fatalf("expected 5 placed players, got %d", layout.Starters())
	}
	if len(layout.Banquillo) != 0 {
		t.Fatalf("expected empty bench, got %d", len(layout.Banquillo))
	}
}

func TestGroupByPosition_BucketsByNormalizedPosition(t *testing.T) {
	players := []player.Player{
		{ID: 1, RawPosition: player.RawPosition{Description: "Goalkeeper"}, EsTitular: true},
		{ID: 2, RawPosition: player.RawPosition{Code: 2}, EsTitular: true},
		{ID: 3, RawPosition: player.RawPosition{Text: "centrocampista"}, EsTitular: true},
		{ID: 4, RawPosition: player.RawPosition{Text: "4"}, EsTitular: true},
		{ID: 5, RawPosition: player.RawPosition{Code: 2}, EsTitular: false},
	}

	layout := GroupByPosition(players)

	if len(layout.Portero) != 1 || layout.Portero[0].ID != 1 {
		t.Fatalf("goalkeeper bucket wrong: %+v", layout.Portero)
	}
	if len(layout.Defensas) != 1 || layout.Defensas[0].ID != 2 {
		t.Fatalf("defender bucket wrong: %+v", layout.Defensas)
	}
	if len(layout.Centrocampistas) != 1 || layout.Centrocampistas[0].ID != 3 {
		t.Fatalf("midfielder bucket wrong: %+v", layout.Centrocampistas)
	}
	if len(layout.Delanteros) != 1 || layout.Delanteros[0].ID != 4 {
		t.Fatalf("forward bucket wrong: %+v", layout.Delanteros)
	}
	if len(layout.Banquillo) != 1 || layout.Banquillo[0].ID != 5 {
		t.Fatalf("bench wrong: %+v", layout.Banquillo)
	}
}

func TestGroupByPosition_UnknownPlayersExcludedFromEveryLine(t *testing.T) {
	players := []player.Player{
		{ID: 1, RawPosition: player.RawPosition{Text: "libero"}, EsTitular: true},
		{ID: 2, RawPosition: player.RawPosition{Code: 1}, EsTitular: true},
	}

	layout := GroupByPosition(players)

	if layout.Starters() != 1 {
		t.Fatalf("expected only the goalkeeper placed, got %d", layout.Starters())
	}
	if len(layout.Banquillo) != 0 {
		t.Fatalf("unknown starter must not land on the bench: %+v", layout.Banquillo)
	}
}

func TestGroupByPosition_PrefersAlreadyNormalizedPosition(t *testing.T) {
	players := []player.Player{
		{ID: 1, Position: player.PositionDelantero, RawPosition: player.RawPosition{Code: 1}, EsTitular: true},
	}

	layout := GroupByPosition(players)
	if len(layout.Delanteros) != 1 {
		t.Fatalf("expected canonical position to win, got %+v", layout)
	}
}
