package club

import "fmt"

// Club is a real-world club referenced by players and partidos.
type Club struct {
	ID     int64
	APIID  int64
	Nombre string
	Escudo string
}

func (c Club) Validate() error {
	if c.Nombre == "" {
		return fmt.Errorf("club name is required")
	}

	return nil
}

// PositionRef is the backend's reference-data row for a playing position.
// It is catalog data only; formation logic uses player.Position instead.
type PositionRef struct {
	ID          int64
	Description string
}
