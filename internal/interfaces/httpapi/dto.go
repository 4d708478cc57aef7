package httpapi

import (
	"time"

	"github.com/ligafantasy/portal/internal/domain/club"
	"github.com/ligafantasy/portal/internal/domain/equipo"
	"github.com/ligafantasy/portal/internal/domain/formation"
	"github.com/ligafantasy/portal/internal/domain/jornada"
	"github.com/ligafantasy/portal/internal/domain/partido"
	"github.com/ligafantasy/portal/internal/domain/player"
	"github.com/ligafantasy/portal/internal/domain/session"
	"github.com/ligafantasy/portal/internal/domain/user"
	"github.com/ligafantasy/portal/internal/usecase"
)

type userDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func userToDTO(u user.User) userDTO {
	return userDTO{ID: u.ID, Username: u.Username, Email: u.Email, Role: string(u.Role)}
}

type sessionDTO struct {
	User      userDTO   `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func sessionToDTO(s session.Session) sessionDTO {
	return sessionDTO{User: userToDTO(s.User), ExpiresAt: s.ExpiresAt}
}

type playerDTO struct {
	ID           int64  `json:"id"`
	Nombre       string `json:"nombre"`
	Posicion     string `json:"posicion"`
	ClubID       int64  `json:"clubId,omitempty"`
	Photo        string `json:"photo,omitempty"`
	JerseyNumber int    `json:"jerseyNumber,omitempty"`
	Puntaje      int    `json:"puntaje"`
	EsTitular    bool   `json:"esTitular"`
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:           p.ID,
		Nombre:       p.DisplayName(),
		Posicion:     string(p.Normalized()),
		ClubID:       p.ClubID,
		Photo:        p.Photo,
		JerseyNumber: p.JerseyNumber,
		Puntaje:      p.Puntaje,
		EsTitular:    p.EsTitular,
	}
}

func playersToDTO(players []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(players))
	for _, p := range players {
		out = append(out, playerToDTO(p))
	}
	return out
}

type layoutDTO struct {
	Delanteros      []playerDTO `json:"delanteros"`
	Centrocampistas []playerDTO `json:"centrocampistas"`
	Defensas        []playerDTO `json:"defensas"`
	Portero         []playerDTO `json:"portero"`
	Banquillo       []playerDTO `json:"banquillo"`
}

func layoutToDTO(l formation.Layout) layoutDTO {
	return layoutDTO{
		Delanteros:      playersToDTO(l.Delanteros),
		Centrocampistas: playersToDTO(l.Centrocampistas),
		Defensas:        playersToDTO(l.Defensas),
		Portero:         playersToDTO(l.Portero),
		Banquillo:       playersToDTO(l.Banquillo),
	}
}

type equipoDTO struct {
	ID        int64       `json:"id"`
	Nombre    string      `json:"nombre"`
	UserID    int64       `json:"usuarioId"`
	Jugadores []playerDTO `json:"jugadores"`
}

func equipoToDTO(e equipo.Equipo) equipoDTO {
	out := equipoDTO{ID: e.ID, Nombre: e.Nombre, UserID: e.UserID, Jugadores: make([]playerDTO, 0, len(e.Plantel))}
	for _, link := range e.Plantel {
		p := link.Player
		p.EsTitular = link.EsTitular
		out.Jugadores = append(out.Jugadores, playerToDTO(p))
	}
	return out
}

type selectionDTO struct {
	JugadorID int64 `json:"jugadorId"`
}

type teamViewDTO struct {
	Equipo    equipoDTO     `json:"equipo"`
	Layout    layoutDTO     `json:"layout"`
	Seleccion *selectionDTO `json:"seleccion,omitempty"`
}

func teamViewToDTO(view usecase.TeamView) teamViewDTO {
	out := teamViewDTO{
		Equipo: equipoToDTO(view.Equipo),
		Layout: layoutToDTO(view.Layout),
	}
	if view.Selection != nil {
		out.Seleccion = &selectionDTO{JugadorID: view.Selection.PlayerID}
	}
	return out
}

type clickResultDTO struct {
	Accion    string        `json:"accion"`
	Equipo    equipoDTO     `json:"equipo"`
	Seleccion *selectionDTO `json:"seleccion,omitempty"`
}

func clickResultToDTO(result usecase.ClickResult) clickResultDTO {
	out := clickResultDTO{
		Accion: string(result.Action),
		Equipo: equipoToDTO(result.Equipo),
	}
	if result.Selection != nil {
		out.Seleccion = &selectionDTO{JugadorID: result.Selection.PlayerID}
	}
	return out
}

type jornadaDTO struct {
	ID               int64      `json:"id"`
	Numero           int        `json:"numero"`
	Nombre           string     `json:"nombre"`
	Temporada        string     `json:"temporada"`
	Etapa            string     `json:"etapa"`
	Activa           bool       `json:"activa"`
	PuntosCalculados bool       `json:"puntosCalculados"`
	FechaInicio      *time.Time `json:"fechaInicio,omitempty"`
	FechaFin         *time.Time `json:"fechaFin,omitempty"`
}

func jornadaToDTO(j jornada.Jornada) jornadaDTO {
	return jornadaDTO{
		ID:               j.ID,
		Numero:           j.Numero,
		Nombre:           j.Nombre,
		Temporada:        j.Temporada,
		Etapa:            j.Etapa,
		Activa:           j.Activa,
		PuntosCalculados: j.PuntosCalculados,
		FechaInicio:      j.FechaInicio,
		FechaFin:         j.FechaFin,
	}
}

type configDTO struct {
	JornadaActiva             int64 `json:"jornadaActiva"`
	ModificacionesHabilitadas bool  `json:"modificacionesHabilitadas"`
}

func configToDTO(c jornada.SystemConfig) configDTO {
	return configDTO{JornadaActiva: c.JornadaActiva, ModificacionesHabilitadas: c.ModificacionesHabilitadas}
}

type partidoDTO struct {
	ID            int64     `json:"id"`
	APIID         int64     `json:"idApi,omitempty"`
	Fecha         time.Time `json:"fecha"`
	Estado        string    `json:"estado"`
	EstadoDetalle string    `json:"estadoDetalle,omitempty"`
	LocalID       int64     `json:"localId"`
	VisitanteID   int64     `json:"visitanteId"`
	JornadaID     int64     `json:"jornadaId"`
}

func partidoToDTO(p partido.Partido) partidoDTO {
	return partidoDTO{
		ID:            p.ID,
		APIID:         p.APIID,
		Fecha:         p.Fecha,
		Estado:        string(p.Estado),
		EstadoDetalle: p.EstadoDetalle,
		LocalID:       p.LocalID,
		VisitanteID:   p.VisitanteID,
		JornadaID:     p.JornadaID,
	}
}

type clubDTO struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
	Escudo string `json:"escudo,omitempty"`
}

func clubToDTO(c club.Club) clubDTO {
	return clubDTO{ID: c.ID, Nombre: c.Nombre, Escudo: c.Escudo}
}

type positionDTO struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

type historialEntryDTO struct {
	JornadaID     int64  `json:"jornadaId"`
	JornadaNombre string `json:"jornadaNombre"`
	Puntos        int    `json:"puntos"`
}

type jornadaDetailDTO struct {
	JornadaID int64       `json:"jornadaId"`
	EquipoID  int64       `json:"equipoId"`
	Puntos    int         `json:"puntos"`
	Jugadores []playerDTO `json:"jugadores"`
}

func jornadaDetailToDTO(d equipo.JornadaDetail) jornadaDetailDTO {
	out := jornadaDetailDTO{
		JornadaID: d.JornadaID,
		EquipoID:  d.EquipoID,
		Puntos:    d.Puntos,
		Jugadores: make([]playerDTO, 0, len(d.Plantel)),
	}
	for _, link := range d.Plantel {
		p := link.Player
		p.EsTitular = link.EsTitular
		out.Jugadores = append(out.Jugadores, playerToDTO(p))
	}
	return out
}
