package backend

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ligafantasy/portal/internal/domain/partido"
)

func (c *Client) ListPartidos(ctx context.Context, cookie string, jornadaID int64) ([]partido.Partido, error) {
	req := request{path: "/partidos", cookie: cookie}
	if jornadaID > 0 {
		req.query = map[string]string{"jornadaId": strconv.FormatInt(jornadaID, 10)}
	}

	var dtos []partidoDTO
	if err := c.getJSON(ctx, req, &dtos); err != nil {
		return nil, fmt.Errorf("list partidos: %w", err)
	}

	out := make([]partido.Partido, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, dto.toDomain())
	}
	return out, nil
}

func (c *Client) CreatePartido(ctx context.Context, cookie string, p partido.Partido) (partido.Partido, error) {
	var dto partidoDTO
	err := c.sendJSON(ctx, request{
		method: http.MethodPost,
		path:   "/partidos",
		body:   partidoToDTO(p),
		cookie: cookie,
	}, &dto)
	if err != nil {
		return partido.Partido{}, fmt.Errorf("create partido: %w", err)
	}

	return dto.toDomain(), nil
}

func (c *Client) UpdatePartido(ctx context.Context, cookie string, p partido.Partido) (partido.Partido, error) {
	var dto partidoDTO
	err := c.sendJSON(ctx, request{
		method: http.MethodPut,
		path:   "/partidos/" + strconv.FormatInt(p.ID, 10),
		body:   partidoToDTO(p),
		cookie: cookie,
	}, &dto)
	if err != nil {
		return partido.Partido{}, fmt.Errorf("update partido=%d: %w", p.ID, err)
	}

	return dto.toDomain(), nil
}

func (c *Client) DeletePartido(ctx context.Context, cookie string, partidoID int64) error {
	err := c.sendJSON(ctx, request{
		method: http.MethodDelete,
		path:   "/partidos/" + strconv.FormatInt(partidoID, 10),
		cookie: cookie,
	}, nil)
	if err != nil {
		return fmt.Errorf("delete partido=%d: %w", partidoID, err)
	}

	return nil
}
