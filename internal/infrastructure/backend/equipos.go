package backend

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ligafantasy/portal/internal/domain/equipo"
	"github.com/ligafantasy/portal/internal/usecase"
)

// MiEquipo fetches the caller's team. A 404 means "no team yet" and surfaces
// as usecase.ErrNotFound; transport trouble keeps its transient mapping so
// callers never mistake an outage for an empty answer.
func (c *Client) MiEquipo(ctx context.Context, cookie string) (equipo.Equipo, error) {
	var dto equipoDTO
	if err := c.getJSON(ctx, request{path: "/equipos/mi-equipo", cookie: cookie}, &dto); err != nil {
		return equipo.Equipo{}, fmt.Errorf("fetch mi equipo: %w", err)
	}

	team := dto.toDomain()
	if err := team.Validate(); err != nil {
		return equipo.Equipo{}, fmt.Errorf("backend returned malformed equipo: %w", err)
	}

	return team, nil
}

// CrearEquipo registers a new team; the backend fills it with a randomly
// generated squad and returns the result.
func (c *Client) CrearEquipo(ctx context.Context, cookie, nombre string) (equipo.Equipo, error) {
	if nombre == "" {
		return equipo.Equipo{}, fmt.Errorf("%w: equipo name is required", usecase.ErrInvalidInput)
	}

	var dto equipoDTO
	err := c.sendJSON(ctx, request{
		method: http.MethodPost,
		path:   "/equipos",
		body:   map[string]string{"nombre": nombre},
		cookie: cookie,
	}, &dto)
	if err != nil {
		return equipo.Equipo{}, fmt.Errorf("create equipo: %w", err)
	}

	return dto.toDomain(), nil
}

// SwapAlineacion flips a titular and a suplente on the caller's team.
func (c *Client) SwapAlineacion(ctx context.Context, cookie string, titularID, suplenteID int64) error {
	err := c.sendJSON(ctx, request{
		method: http.MethodPatch,
		path:   "/equipos/mi-equipo/alineacion",
		body: map[string]int64{
			"titularId":  titularID,
			"suplenteId": suplenteID,
		},
		cookie: cookie,
	}, nil)
	if err != nil {
		return fmt.Errorf("swap alineacion: %w", err)
	}

	return nil
}

// Intercambio replaces an owned player with one from the open pool.
func (c *Client) Intercambio(ctx context.Context, cookie string, salienteID, entranteID int64) error {
	err := c.sendJSON(ctx, request{
		method: http.MethodPatch,
		path:   "/equipos/mi-equipo/intercambio",
		body: map[string]int64{
			"jugadorSalienteId": salienteID,
			"jugadorEntranteId": entranteID,
		},
		cookie: cookie,
	}, nil)
	if err != nil {
		return fmt.Errorf("intercambio: %w", err)
	}

	return nil
}

func (c *Client) Historial(ctx context.Context, cookie string, equipoID int64) ([]equipo.HistorialEntry, error) {
	var dtos []historialEntryDTO
	path := "/equipos/" + strconv.FormatInt(equipoID, 10) + "/historial"
	if err := c.getJSON(ctx, request{path: path, cookie: cookie}, &dtos); err != nil {
		return nil, fmt.Errorf("fetch historial equipo=%d: %w", equipoID, err)
	}

	out := make([]equipo.HistorialEntry, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, dto.toDomain())
	}
	return out, nil
}

func (c *Client) JornadaDetail(ctx context.Context, cookie string, equipoID, jornadaID int64) (equipo.JornadaDetail, error) {
	var dto jornadaDetailDTO
	path := "/equipos/" + strconv.FormatInt(equipoID, 10) + "/jornadas/" + strconv.FormatInt(jornadaID, 10)
	if err := c.getJSON(ctx, request{path: path, cookie: cookie}, &dto); err != nil {
		return equipo.JornadaDetail{}, fmt.Errorf("fetch jornada detail equipo=%d jornada=%d: %w", equipoID, jornadaID, err)
	}

	return dto.toDomain(), nil
}
