package backend

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ligafantasy/portal/internal/domain/jornada"
)

func (c *Client) ListJornadas(ctx context.Context, cookie string) ([]jornada.Jornada, error) {
	var dtos []jornadaDTO
	if err := c.getJSON(ctx, request{path: "/jornadas", cookie: cookie}, &dtos); err != nil {
		return nil, fmt.Errorf("list jornadas: %w", err)
	}

	out := make([]jornada.Jornada, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, dto.toDomain())
	}
	return out, nil
}

func (c *Client) GetJornada(ctx context.Context, cookie string, jornadaID int64) (jornada.Jornada, error) {
	var dto jornadaDTO
	path := "/jornadas/" + strconv.FormatInt(jornadaID, 10)
	if err := c.getJSON(ctx, request{path: path, cookie: cookie}, &dto); err != nil {
		return jornada.Jornada{}, fmt.Errorf("get jornada=%d: %w", jornadaID, err)
	}

	return dto.toDomain(), nil
}

// GetConfig reads the round-lifecycle switchboard. Never cached beyond the
// caller's screen: stale config is how users end up editing locked lineups.
func (c *Client) GetConfig(ctx context.Context, cookie string) (jornada.SystemConfig, error) {
	var dto configDTO
	if err := c.getJSON(ctx, request{path: "/admin/config", cookie: cookie}, &dto); err != nil {
		return jornada.SystemConfig{}, fmt.Errorf("get config: %w", err)
	}

	return dto.toDomain(), nil
}

// UpdateConfig patches the switchboard and returns the confirmed state the
// backend now holds; callers must render that, not what they sent.
func (c *Client) UpdateConfig(ctx context.Context, cookie string, update jornada.SystemConfig) (jornada.SystemConfig, error) {
	var dto configDTO
	err := c.sendJSON(ctx, request{
		method: http.MethodPatch,
		path:   "/admin/config",
		body: configDTO{
			JornadaActiva:             update.JornadaActiva,
			ModificacionesHabilitadas: update.ModificacionesHabilitadas,
		},
		cookie: cookie,
	}, &dto)
	if err != nil {
		return jornada.SystemConfig{}, fmt.Errorf("update config: %w", err)
	}

	return dto.toDomain(), nil
}

// ProcesarJornada asks the backend to compute scores for a round.
func (c *Client) ProcesarJornada(ctx context.Context, cookie string, jornadaID int64) error {
	path := "/admin/jornadas/" + strconv.FormatInt(jornadaID, 10) + "/procesar"
	if err := c.sendJSON(ctx, request{method: http.MethodPost, path: path, cookie: cookie}, nil); err != nil {
		return fmt.Errorf("procesar jornada=%d: %w", jornadaID, err)
	}

	return nil
}

// RecalcularJornada re-runs scoring over an already-processed round.
func (c *Client) RecalcularJornada(ctx context.Context, cookie string, jornadaID int64) error {
	path := "/admin/jornadas/" + strconv.FormatInt(jornadaID, 10) + "/recalcular"
	if err := c.sendJSON(ctx, request{method: http.MethodPost, path: path, cookie: cookie}, nil); err != nil {
		return fmt.Errorf("recalcular jornada=%d: %w", jornadaID, err)
	}

	return nil
}
