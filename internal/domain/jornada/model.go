package jornada

import (
	"fmt"
	"time"
)

// Jornada is a match round in the competition.
type Jornada struct {
	ID               int64
	Numero           int
	Nombre           string
	Temporada        string
	Etapa            string
	Activa           bool
	PuntosCalculados bool
	FechaInicio      *time.Time
	FechaFin         *time.Time
}

func (j Jornada) Validate() error {
	if j.ID <= 0 {
		return fmt.Errorf("jornada id is required")
	}

	return nil
}

// SystemConfig is the backend's singleton round-lifecycle switchboard.
type SystemConfig struct {
	JornadaActiva             int64
	ModificacionesHabilitadas bool
}
