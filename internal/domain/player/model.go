package player

import (
	"fmt"
	"strings"
)

// Player mirrors the backend player DTO. The portal does not own the
// canonical schema; every field is a transient copy of what the backend
// returned for the current screen.
type Player struct {
	ID           int64
	APIID        int64
	Nombre       string
	FirstName    string
	LastName     string
	Edad         int
	Nacionalidad string
	Altura       string
	Peso         string
	Photo        string
	JerseyNumber int
	ClubID       int64
	RawPosition  RawPosition
	Position     Position

	// Round-scoped fields, only meaningful when the player is rendered
	// inside a jornada context.
	Puntaje   int
	EsTitular bool
}

// DisplayName resolves the name the way the backend feeds it: a precomposed
// name wins, then first/last composition, then a jersey-number placeholder.
func (p Player) DisplayName() string {
	if name := strings.TrimSpace(p.Nombre); name != "" {
		return name
	}

	first := strings.TrimSpace(p.FirstName)
	last := strings.TrimSpace(p.LastName)
	switch {
	case first != "" && last != "":
		return first + " " + last
	case last != "":
		return last
	case first != "":
		return first
	}

	if p.JerseyNumber > 0 {
		return fmt.Sprintf("Jugador #%d", p.JerseyNumber)
	}

	return "Jugador"
}

// Normalized prefers the canonical Position when it is already set and
// falls back to normalizing the raw backend shape.
func (p Player) Normalized() Position {
	if _, ok := AllPositions[p.Position]; ok {
		return p.Position
	}
	return p.RawPosition.Normalize()
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id is required")
	}

	return nil
}
