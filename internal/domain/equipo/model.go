package equipo

import (
	"fmt"

	"github.com/ligafantasy/portal/internal/domain/player"
)

// PlayerLink ties a player to an equipo. Titular/suplente is a property of
// the relationship, not of the player.
type PlayerLink struct {
	Player    player.Player
	EsTitular bool
}

// Equipo is the caller's fantasy team as the backend last confirmed it.
type Equipo struct {
	ID      int64
	Nombre  string
	UserID  int64
	Plantel []PlayerLink
}

func (e Equipo) Validate() error {
	if e.ID <= 0 {
		return fmt.Errorf("equipo id is required")
	}
	if e.Nombre == "" {
		return fmt.Errorf("equipo name is required")
	}

	return nil
}

// Titulares returns the starters in backend order.
func (e Equipo) Titulares() []player.Player {
	out := make([]player.Player, 0, len(e.Plantel))
	for _, link := range e.Plantel {
		if link.EsTitular {
			out = append(out, link.Player)
		}
	}
	return out
}

// Suplentes returns the bench in backend order.
func (e Equipo) Suplentes() []player.Player {
	out := make([]player.Player, 0, len(e.Plantel))
	for _, link := range e.Plantel {
		if !link.EsTitular {
			out = append(out, link.Player)
		}
	}
	return out
}

// Find returns the link for a player id, when the player is on the team.
func (e Equipo) Find(playerID int64) (PlayerLink, bool) {
	for _, link := range e.Plantel {
		if link.Player.ID == playerID {
			return link, true
		}
	}
	return PlayerLink{}, false
}

// Generation fingerprints the roster composition. Two rosters with the same
// players and titular flags share a generation; any swap, substitution or
// refetch that changed the plantel yields a different value. Selections made
// against an older generation must be discarded.
func (e Equipo) Generation() uint64 {
	const prime = 1099511628211
	var hash uint64 = 14695981039346656037
	for _, link := range e.Plantel {
		hash ^= uint64(link.Player.ID)
		hash *= prime
		if link.EsTitular {
			hash ^= 1
			hash *= prime
		}
	}
	return hash
}

// HistorialEntry is one row of the per-jornada scoring history.
type HistorialEntry struct {
	JornadaID     int64
	JornadaNombre string
	Puntos        int
}

// JornadaDetail is the roster snapshot with per-player scores for one round.
type JornadaDetail struct {
	JornadaID int64
	EquipoID  int64
	Puntos    int
	Plantel   []PlayerLink
}
