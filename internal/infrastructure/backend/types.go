package backend

import (
	"time"

	"github.com/ligafantasy/portal/internal/domain/club"
	"github.com/ligafantasy/portal/internal/domain/equipo"
	"github.com/ligafantasy/portal/internal/domain/jornada"
	"github.com/ligafantasy/portal/internal/domain/partido"
	"github.com/ligafantasy/portal/internal/domain/player"
	"github.com/ligafantasy/portal/internal/domain/user"
)

type playerDTO struct {
	ID           int64              `json:"id"`
	APIID        int64              `json:"apiId"`
	Nombre       string             `json:"name"`
	FirstName    string             `json:"firstName"`
	LastName     string             `json:"lastName"`
	Edad         int                `json:"age"`
	Nacionalidad string             `json:"nationality"`
	Altura       string             `json:"height"`
	Peso         string             `json:"weight"`
	Photo        string             `json:"photo"`
	JerseyNumber int                `json:"jerseyNumber"`
	ClubID       int64              `json:"clubId"`
	Position     player.RawPosition `json:"position"`
	Puntaje      int                `json:"puntaje"`
	EsTitular    bool               `json:"esTitular"`
}

func (d playerDTO) toDomain() player.Player {
	return player.Player{
		ID:           d.ID,
		APIID:        d.APIID,
		Nombre:       d.Nombre,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Edad:         d.Edad,
		Nacionalidad: d.Nacionalidad,
		Altura:       d.Altura,
		Peso:         d.Peso,
		Photo:        d.Photo,
		JerseyNumber: d.JerseyNumber,
		ClubID:       d.ClubID,
		RawPosition:  d.Position,
		Position:     d.Position.Normalize(),
		Puntaje:      d.Puntaje,
		EsTitular:    d.EsTitular,
	}
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:           p.ID,
		APIID:        p.APIID,
		Nombre:       p.Nombre,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Edad:         p.Edad,
		Nacionalidad: p.Nacionalidad,
		Altura:       p.Altura,
		Peso:         p.Peso,
		Photo:        p.Photo,
		JerseyNumber: p.JerseyNumber,
		ClubID:       p.ClubID,
		Position:     p.RawPosition,
		Puntaje:      p.Puntaje,
	}
}

type playerLinkDTO struct {
	Jugador   playerDTO `json:"jugador"`
	EsTitular bool      `json:"es_titular"`
}

type equipoDTO struct {
	ID        int64           `json:"id"`
	Nombre    string          `json:"nombre"`
	UserID    int64           `json:"usuarioId"`
	Jugadores []playerLinkDTO `json:"jugadores"`
}

func (d equipoDTO) toDomain() equipo.Equipo {
	out := equipo.Equipo{
		ID:      d.ID,
		Nombre:  d.Nombre,
		UserID:  d.UserID,
		Plantel: make([]equipo.PlayerLink, 0, len(d.Jugadores)),
	}
	for _, link := range d.Jugadores {
		p := link.Jugador.toDomain()
		p.EsTitular = link.EsTitular
		out.Plantel = append(out.Plantel, equipo.PlayerLink{
			Player:    p,
			EsTitular: link.EsTitular,
		})
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
	FechaInicio      *time.Time `json:"fechaInicio"`
	FechaFin         *time.Time `json:"fechaFin"`
}

func (d jornadaDTO) toDomain() jornada.Jornada {
	return jornada.Jornada{
		ID:               d.ID,
		Numero:           d.Numero,
		Nombre:           d.Nombre,
		Temporada:        d.Temporada,
		Etapa:            d.Etapa,
		Activa:           d.Activa,
		PuntosCalculados: d.PuntosCalculados,
		FechaInicio:      d.FechaInicio,
		FechaFin:         d.FechaFin,
	}
}

type configDTO struct {
	JornadaActiva             int64 `json:"jornadaActiva"`
	ModificacionesHabilitadas bool  `json:"modificacionesHabilitadas"`
}

func (d configDTO) toDomain() jornada.SystemConfig {
	return jornada.SystemConfig{
		JornadaActiva:             d.JornadaActiva,
		ModificacionesHabilitadas: d.ModificacionesHabilitadas,
	}
}

type partidoDTO struct {
	ID            int64     `json:"id"`
	APIID         int64     `json:"id_api"`
	Fecha         time.Time `json:"fecha"`
	Estado        string    `json:"estado"`
	EstadoDetalle string    `json:"estado_detalle"`
	LocalID       int64     `json:"localId"`
	VisitanteID   int64     `json:"visitanteId"`
	JornadaID     int64     `json:"jornadaId"`
}

func (d partidoDTO) toDomain() partido.Partido {
	return partido.Partido{
		ID:            d.ID,
		APIID:         d.APIID,
		Fecha:         d.Fecha,
		Estado:        partido.Estado(d.Estado),
		EstadoDetalle: d.EstadoDetalle,
		LocalID:       d.LocalID,
		VisitanteID:   d.VisitanteID,
		JornadaID:     d.JornadaID,
	}
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
	APIID  int64  `json:"apiId"`
	Nombre string `json:"name"`
	Escudo string `json:"logo"`
}

func (d clubDTO) toDomain() club.Club {
	return club.Club{ID: d.ID, APIID: d.APIID, Nombre: d.Nombre, Escudo: d.Escudo}
}

func clubToDTO(c club.Club) clubDTO {
	return clubDTO{ID: c.ID, APIID: c.APIID, Nombre: c.Nombre, Escudo: c.Escudo}
}

type positionDTO struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

func (d positionDTO) toDomain() club.PositionRef {
	return club.PositionRef{ID: d.ID, Description: d.Description}
}

func positionToDTO(p club.PositionRef) positionDTO {
	return positionDTO{ID: p.ID, Description: p.Description}
}

type userDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (d userDTO) toDomain() user.User {
	role := user.Role(d.Role)
	if role != user.RoleAdmin {
		role = user.RoleUsuario
	}
	return user.User{ID: d.ID, Username: d.Username, Email: d.Email, Role: role}
}

type historialEntryDTO struct {
	JornadaID     int64  `json:"jornadaId"`
	JornadaNombre string `json:"jornadaNombre"`
	Puntos        int    `json:"puntos"`
}

func (d historialEntryDTO) toDomain() equipo.HistorialEntry {
	return equipo.HistorialEntry{
		JornadaID:     d.JornadaID,
		JornadaNombre: d.JornadaNombre,
		Puntos:        d.Puntos,
	}
}

type jornadaDetailDTO struct {
	JornadaID int64           `json:"jornadaId"`
	EquipoID  int64           `json:"equipoId"`
	Puntos    int             `json:"puntos"`
	Jugadores []playerLinkDTO `json:"jugadores"`
}

func (d jornadaDetailDTO) toDomain() equipo.JornadaDetail {
	out := equipo.JornadaDetail{
		JornadaID: d.JornadaID,
		EquipoID:  d.EquipoID,
		Puntos:    d.Puntos,
		Plantel:   make([]equipo.PlayerLink, 0, len(d.Jugadores)),
	}
	for _, link := range d.Jugadores {
		p := link.Jugador.toDomain()
		p.EsTitular = link.EsTitular
		out.Plantel = append(out.Plantel, equipo.PlayerLink{Player: p, EsTitular: link.EsTitular})
	}
	return out
}
