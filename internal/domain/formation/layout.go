package formation

import (
	"github.com/ligafantasy/portal/internal/domain/player"
)

// Layout is the visual grid every formation screen renders: one row per
// line plus the bench.
type Layout struct {
	Delanteros      []player.Player
	Centrocampistas []player.Player
	Defensas        []player.Player
	Portero         []player.Player
	Banquillo       []player.Player
}

// Index boundaries of the ordered-roster contract: the caller guarantees
// forwards first, then midfielders, defenders, the goalkeeper and the bench.
const (
	orderedForwards    = 3
	orderedMidfielders = 6
	orderedDefenders   = 10
	orderedGoalkeeper  = 11
)

// SliceOrdered buckets a pre-ordered roster by fixed index ranges. This is a
// positional contract with the caller; a roster that is not ordered by role
// comes back mis-classified, so callers that cannot guarantee ordering must
// use GroupByPosition instead.
func SliceOrdered(players []player.Player) Layout {
	clamp := func(limit int) int {
		if limit > len(players) {
			return len(players)
		}
		return limit
	}

	layout := Layout{
		Delanteros:      clonePlayers(players[0:clamp(orderedForwards)]),
		Centrocampistas: clonePlayers(players[clamp(orderedForwards):clamp(orderedMidfielders)]),
		Defensas:        clonePlayers(players[clamp(orderedMidfielders):clamp(orderedDefenders)]),
		Portero:         clonePlayers(players[clamp(orderedDefenders):clamp(orderedGoalkeeper)]),
	}
	if len(players) > orderedGoalkeeper {
		layout.Banquillo = clonePlayers(players[orderedGoalkeeper:])
	}

	return layout
}

// GroupByPosition buckets starters by normalized position and sends
// non-starters to the bench. Players whose position normalizes to unknown are
// excluded from every line: no bucket claims them.
func GroupByPosition(players []player.Player) Layout {
	var layout Layout
	for _, p := range players {
		if !p.EsTitular {
			layout.Banquillo = append(layout.Banquillo, p)
			continue
		}

		switch p.Normalized() {
		case player.PositionDelantero:
			layout.Delanteros = append(layout.Delanteros, p)
		case player.PositionCentrocampista:
			layout.Centrocampistas = append(layout.Centrocampistas, p)
		case player.PositionDefensa:
			layout.Defensas = append(layout.Defensas, p)
		case player.PositionPortero:
			layout.Portero = append(layout.Portero, p)
		}
	}

	return layout
}

// Starters counts the players placed on a line (bench excluded).
func (l Layout) Starters() int {
	return len(l.Delanteros) + len(l.Centrocampistas) + len(l.Defensas) + len(l.Portero)
}

func clonePlayers(in []player.Player) []player.Player {
	if len(in) == 0 {
		return nil
	}
	return append([]player.Player(nil), in...)
}
