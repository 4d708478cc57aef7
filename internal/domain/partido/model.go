package partido

import (
	"fmt"
	"time"
)

// Estado is the backend's match lifecycle code.
type Estado string

const (
	EstadoNotStarted Estado = "NS"
	EstadoLive       Estado = "LIVE"
	EstadoFullTime   Estado = "FT"
	EstadoPostponed  Estado = "PST"
	EstadoCancelled  Estado = "CANC"
	EstadoAbandoned  Estado = "ABD"
)

var knownEstados = map[Estado]struct{}{
	EstadoNotStarted: {},
	EstadoLive:       {},
	EstadoFullTime:   {},
	EstadoPostponed:  {},
	EstadoCancelled:  {},
	EstadoAbandoned:  {},
}

// Known reports whether the lifecycle code is one the portal understands.
// Unknown codes still render; they just carry the backend's detail label.
func (e Estado) Known() bool {
	_, ok := knownEstados[e]
	return ok
}

// Partido is a real-world match inside a jornada.
type Partido struct {
	ID            int64
	APIID         int64
	Fecha         time.Time
	Estado        Estado
	EstadoDetalle string
	LocalID       int64
	VisitanteID   int64
	JornadaID     int64
}

func (p Partido) Validate() error {
	if p.JornadaID <= 0 {
		return fmt.Errorf("partido jornada id is required")
	}
	if p.LocalID <= 0 || p.VisitanteID <= 0 {
		return fmt.Errorf("partido clubs are required")
	}

	return nil
}
