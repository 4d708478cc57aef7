package backend

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ligafantasy/portal/internal/domain/club"
	"github.com/ligafantasy/portal/internal/domain/player"
	"github.com/ligafantasy/portal/internal/domain/user"
	"github.com/ligafantasy/portal/internal/usecase"
)

func playerFilterQuery(f usecase.PlayerFilter) map[string]string {
	query := map[string]string{}
	if f.ClubID > 0 {
		query["clubId"] = strconv.FormatInt(f.ClubID, 10)
	}
	if f.PositionID > 0 {
		query["positionId"] = strconv.FormatInt(f.PositionID, 10)
	}
	if f.Search != "" {
		query["search"] = f.Search
	}
	return query
}

func (c *Client) ListClubs(ctx context.Context, cookie string) ([]club.Club, error) {
	var dtos []clubDTO
	if err := c.getJSON(ctx, request{path: "/clubs", cookie: cookie}, &dtos); err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}

	out := make([]club.Club, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, dto.toDomain())
	}
	return out, nil
}

func (c *Client) CreateClub(ctx context.Context, cookie string, item club.Club) (club.Club, error) {
	var dto clubDTO
	err := c.sendJSON(ctx, request{
		method: http.MethodPost,
		path:   "/clubs",
		body:   clubToDTO(item),
		cookie: cookie,
	}, &dto)
	if err != nil {
		return club.Club{}, fmt.Errorf("create club: %w", err)
	}

	return dto.toDomain(), nil
}

func (c *Client) UpdateClub(ctx context.Context, cookie string, item club.Club) (club.Club, error) {
	var dto clubDTO
	err := c.sendJSON(ctx, request{
		method: http.MethodPut,
		path:   "/clubs/" + strconv.FormatInt(item.ID, 10),
		body:   clubToDTO(item),
		cookie: cookie,
	}, &dto)
	if err != nil {
		return club.Club{}, fmt.Errorf("update club=%d: %w", item.ID, err)
	}

	return dto.toDomain(), nil
}

func (c *Client) DeleteClub(ctx context.Context, cookie string, clubID int64) error {
	err := c.sendJSON(ctx, request{
		method: http.MethodDelete,
		path:   "/clubs/" + strconv.FormatInt(clubID, 10),
		cookie: cookie,
	}, nil)
	if err != nil {
		return fmt.Errorf("delete club=%d: %w", clubID, err)
	}

	return nil
}

func (c *Client) ListPositions(ctx context.Context, cookie string) ([]club.PositionRef, error) {
	var dtos []positionDTO
	if err := c.getJSON(ctx, request{path: "/positions", cookie: cookie}, &dtos); err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}

	out := make([]club.PositionRef, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, dto.toDomain())
	}
	return out, nil
}

func (c *Client) CreatePosition(ctx context.Context, cookie string, item club.PositionRef) (club.PositionRef, error) {
	var dto positionDTO
	err := c.sendJSON(ctx, request{
		method: http.MethodPost,
		path:   "/positions",
		body:   positionToDTO(item),
		cookie: cookie,
	}, &dto)
	if err != nil {
		return club.PositionRef{}, fmt.Errorf("create position: %w", err)
	}

	return dto.toDomain(), nil
}

func (c *Client) UpdatePosition(ctx context.Context, cookie string, item club.PositionRef) (club.PositionRef, error) {
	var dto positionDTO
	err := c.sendJSON(ctx, request{
		method: http.MethodPut,
		path:   "/positions/" + strconv.FormatInt(item.ID, 10),
		body:   positionToDTO(item),
		cookie: cookie,
	}, &dto)
	if err != nil {
		return club.PositionRef{}, fmt.Errorf("update position=%d: %w", item.ID, err)
	}

	return dto.toDomain(), nil
}

func (c *Client) DeletePosition(ctx context.Context, cookie string, positionID int64) error {
	err := c.sendJSON(ctx, request{
		method: http.MethodDelete,
		path:   "/positions/" + strconv.FormatInt(positionID, 10),
		cookie: cookie,
	}, nil)
	if err != nil {
		return fmt.Errorf("delete position=%d: %w", positionID, err)
	}

	return nil
}

func (c *Client) ListPlayers(ctx context.Context, cookie string, filter usecase.PlayerFilter) ([]player.Player, error) {
	var dtos []playerDTO
	if err := c.getJSON(ctx, request{path: "/players", query: playerFilterQuery(filter), cookie: cookie}, &dtos); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Player, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, dto.toDomain())
	}
	return out, nil
}

func (c *Client) GetPlayer(ctx context.Context, cookie string, playerID int64) (player.Player, error) {
	var dto playerDTO
	path := "/players/" + strconv.FormatInt(playerID, 10)
	if err := c.getJSON(ctx, request{path: path, cookie: cookie}, &dto); err != nil {
		return player.Player{}, fmt.Errorf("get player=%d: %w", playerID, err)
	}

	return dto.toDomain(), nil
}

func (c *Client) CreatePlayer(ctx context.Context, cookie string, item player.Player) (player.Player, error) {
	var dto playerDTO
	err := c.sendJSON(ctx, request{
		method: http.MethodPost,
		path:   "/players",
		body:   playerToDTO(item),
		cookie: cookie,
	}, &dto)
	if err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	return dto.toDomain(), nil
}

func (c *Client) UpdatePlayer(ctx context.Context, cookie string, item player.Player) (player.Player, error) {
	var dto playerDTO
	err := c.sendJSON(ctx, request{
		method: http.MethodPut,
		path:   "/players/" + strconv.FormatInt(item.ID, 10),
		body:   playerToDTO(item),
		cookie: cookie,
	}, &dto)
	if err != nil {
		return player.Player{}, fmt.Errorf("update player=%d: %w", item.ID, err)
	}

	return dto.toDomain(), nil
}

func (c *Client) DeletePlayer(ctx context.Context, cookie string, playerID int64) error {
	err := c.sendJSON(ctx, request{
		method: http.MethodDelete,
		path:   "/players/" + strconv.FormatInt(playerID, 10),
		cookie: cookie,
	}, nil)
	if err != nil {
		return fmt.Errorf("delete player=%d: %w", playerID, err)
	}

	return nil
}

func (c *Client) ListUsers(ctx context.Context, cookie string) ([]user.User, error) {
	var dtos []userDTO
	if err := c.getJSON(ctx, request{path: "/users", cookie: cookie}, &dtos); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]user.User, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, dto.toDomain())
	}
	return out, nil
}

func (c *Client) UpdateUserRole(ctx context.Context, cookie string, userID int64, role user.Role) (user.User, error) {
	var dto userDTO
	err := c.sendJSON(ctx, request{
		method: http.MethodPatch,
		path:   "/users/" + strconv.FormatInt(userID, 10),
		body:   map[string]string{"role": string(role)},
		cookie: cookie,
	}, &dto)
	if err != nil {
		return user.User{}, fmt.Errorf("update user=%d: %w", userID, err)
	}

	return dto.toDomain(), nil
}

func (c *Client) DeleteUser(ctx context.Context, cookie string, userID int64) error {
	err := c.sendJSON(ctx, request{
		method: http.MethodDelete,
		path:   "/users/" + strconv.FormatInt(userID, 10),
		cookie: cookie,
	}, nil)
	if err != nil {
		return fmt.Errorf("delete user=%d: %w", userID, err)
	}

	return nil
}
