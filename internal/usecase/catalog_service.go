package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/ligafantasy/portal/internal/domain/club"
	"github.com/ligafantasy/portal/internal/domain/player"
	"github.com/ligafantasy/portal/internal/domain/session"
	"github.com/ligafantasy/portal/internal/domain/user"
	"github.com/ligafantasy/portal/internal/platform/cache"
	"github.com/ligafantasy/portal/internal/platform/logging"
)

const (
	clubsCacheKey     = "catalog:clubs"
	positionsCacheKey = "catalog:positions"
)

// CatalogGateway is the slice of the backend client the reference-data and
// admin CRUD flows need.
type CatalogGateway interface {
	ListClubs(ctx context.Context, cookie string) ([]club.Club, error)
	CreateClub(ctx context.Context, cookie string, item club.Club) (club.Club, error)
	UpdateClub(ctx context.Context, cookie string, item club.Club) (club.Club, error)
	DeleteClub(ctx context.Context, cookie string, clubID int64) error

	ListPositions(ctx context.Context, cookie string) ([]club.PositionRef, error)
	CreatePosition(ctx context.Context, cookie string, item club.PositionRef) (club.PositionRef, error)
	UpdatePosition(ctx context.Context, cookie string, item club.PositionRef) (club.PositionRef, error)
	DeletePosition(ctx context.Context, cookie string, positionID int64) error

	ListPlayers(ctx context.Context, cookie string, filter PlayerFilter) ([]player.Player, error)
	GetPlayer(ctx context.Context, cookie string, playerID int64) (player.Player, error)
	CreatePlayer(ctx context.Context, cookie string, item player.Player) (player.Player, error)
	UpdatePlayer(ctx context.Context, cookie string, item player.Player) (player.Player, error)
	DeletePlayer(ctx context.Context, cookie string, playerID int64) error

	ListUsers(ctx context.Context, cookie string) ([]user.User, error)
	UpdateUserRole(ctx context.Context, cookie string, userID int64, role user.Role) (user.User, error)
	DeleteUser(ctx context.Context, cookie string, userID int64) error
}

// PlayerFilter narrows player listings. Zero values mean "no filter".
type PlayerFilter struct {
	ClubID     int64
	PositionID int64
	Search     string
}

type CatalogService struct {
	gateway CatalogGateway
	cache   *cache.Store
	logger  *logging.Logger
}

func NewCatalogService(gateway CatalogGateway, store *cache.Store, logger *logging.Logger) *CatalogService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CatalogService{gateway: gateway, cache: store, logger: logger}
}

// Warmup pre-loads the reference catalogs so the first screens after a deploy
// do not all pay the backend round trip. Failures are logged and tolerated.
func (s *CatalogService) Warmup(ctx context.Context, cookie string) {
	p := pool.New().WithContext(ctx).WithMaxGoroutines(2)
	p.Go(func(ctx context.Context) error {
		if _, err := s.Clubs(ctx, session.Session{BackendCookie: cookie}); err != nil {
			s.logger.WarnContext(ctx, "clubs warmup failed", "error", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		if _, err := s.Positions(ctx, session.Session{BackendCookie: cookie}); err != nil {
			s.logger.WarnContext(ctx, "positions warmup failed", "error", err)
		}
		return nil
	})
	_ = p.Wait()
}

// Clubs serves the club catalog from cache, loading it at most once per TTL.
func (s *CatalogService) Clubs(ctx context.Context, sess session.Session) ([]club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.Clubs")
	defer span.End()

	value, err := s.cache.GetOrLoad(ctx, clubsCacheKey, func(ctx context.Context) (any, error) {
		return s.gateway.ListClubs(ctx, sess.BackendCookie)
	})
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}

	return value.([]club.Club), nil
}

func (s *CatalogService) CreateClub(ctx context.Context, sess session.Session, item club.Club) (club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.CreateClub")
	defer span.End()

	if err := validateClub(item); err != nil {
		return club.Club{}, err
	}

	created, err := s.gateway.CreateClub(ctx, sess.BackendCookie, item)
	if err != nil {
		return club.Club{}, err
	}

	s.cache.Delete(ctx, clubsCacheKey)
	s.logger.InfoContext(ctx, "club created", "admin_id", sess.User.ID, "club_id", created.ID)
	return created, nil
}

func (s *CatalogService) UpdateClub(ctx context.Context, sess session.Session, item club.Club) (club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.UpdateClub")
	defer span.End()

	if item.ID <= 0 {
		return club.Club{}, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}
	if err := validateClub(item); err != nil {
		return club.Club{}, err
	}

	updated, err := s.gateway.UpdateClub(ctx, sess.BackendCookie, item)
	if err != nil {
		return club.Club{}, err
	}

	s.cache.Delete(ctx, clubsCacheKey)
	return updated, nil
}

func (s *CatalogService) DeleteClub(ctx context.Context, sess session.Session, clubID int64) error {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.DeleteClub")
	defer span.End()

	if clubID <= 0 {
		return fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}
	if err := s.gateway.DeleteClub(ctx, sess.BackendCookie, clubID); err != nil {
		return err
	}

	s.cache.Delete(ctx, clubsCacheKey)
	s.logger.InfoContext(ctx, "club deleted", "admin_id", sess.User.ID, "club_id", clubID)
	return nil
}

// Positions serves the position reference list from cache.
func (s *CatalogService) Positions(ctx context.Context, sess session.Session) ([]club.PositionRef, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.Positions")
	defer span.End()

	value, err := s.cache.GetOrLoad(ctx, positionsCacheKey, func(ctx context.Context) (any, error) {
		return s.gateway.ListPositions(ctx, sess.BackendCookie)
	})
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}

	return value.([]club.PositionRef), nil
}

func (s *CatalogService) CreatePosition(ctx context.Context, sess session.Session, item club.PositionRef) (club.PositionRef, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.CreatePosition")
	defer span.End()

	if err := validatePosition(item); err != nil {
		return club.PositionRef{}, err
	}

	created, err := s.gateway.CreatePosition(ctx, sess.BackendCookie, item)
	if err != nil {
		return club.PositionRef{}, err
	}

	s.cache.Delete(ctx, positionsCacheKey)
	s.logger.InfoContext(ctx, "position created", "admin_id", sess.User.ID, "position_id", created.ID)
	return created, nil
}

func (s *CatalogService) UpdatePosition(ctx context.Context, sess session.Session, item club.PositionRef) (club.PositionRef, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.UpdatePosition")
	defer span.End()

	if item.ID <= 0 {
		return club.PositionRef{}, fmt.Errorf("%w: position id is required", ErrInvalidInput)
	}
	if err := validatePosition(item); err != nil {
		return club.PositionRef{}, err
	}

	updated, err := s.gateway.UpdatePosition(ctx, sess.BackendCookie, item)
	if err != nil {
		return club.PositionRef{}, err
	}

	s.cache.Delete(ctx, positionsCacheKey)
	return updated, nil
}

func (s *CatalogService) DeletePosition(ctx context.Context, sess session.Session, positionID int64) error {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.DeletePosition")
	defer span.End()

	if positionID <= 0 {
		return fmt.Errorf("%w: position id is required", ErrInvalidInput)
	}
	if err := s.gateway.DeletePosition(ctx, sess.BackendCookie, positionID); err != nil {
		return err
	}

	s.cache.Delete(ctx, positionsCacheKey)
	s.logger.InfoContext(ctx, "position deleted", "admin_id", sess.User.ID, "position_id", positionID)
	return nil
}

// Players is never cached: puntaje and ownership move during a round.
func (s *CatalogService) Players(ctx context.Context, sess session.Session, filter PlayerFilter) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.Players")
	defer span.End()

	return s.gateway.ListPlayers(ctx, sess.BackendCookie, filter)
}

func (s *CatalogService) Player(ctx context.Context, sess session.Session, playerID int64) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.Player")
	defer span.End()

	if playerID <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	return s.gateway.GetPlayer(ctx, sess.BackendCookie, playerID)
}

func (s *CatalogService) CreatePlayer(ctx context.Context, sess session.Session, item player.Player) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.CreatePlayer")
	defer span.End()

	if err := validatePlayer(item); err != nil {
		return player.Player{}, err
	}

	created, err := s.gateway.CreatePlayer(ctx, sess.BackendCookie, item)
	if err != nil {
		return player.Player{}, err
	}

	s.logger.InfoContext(ctx, "player created", "admin_id", sess.User.ID, "player_id", created.ID)
	return created, nil
}

func (s *CatalogService) UpdatePlayer(ctx context.Context, sess session.Session, item player.Player) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.UpdatePlayer")
	defer span.End()

	if item.ID <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if err := validatePlayer(item); err != nil {
		return player.Player{}, err
	}

	return s.gateway.UpdatePlayer(ctx, sess.BackendCookie, item)
}

func (s *CatalogService) DeletePlayer(ctx context.Context, sess session.Session, playerID int64) error {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.DeletePlayer")
	defer span.End()

	if playerID <= 0 {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if err := s.gateway.DeletePlayer(ctx, sess.BackendCookie, playerID); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "player deleted", "admin_id", sess.User.ID, "player_id", playerID)
	return nil
}

func (s *CatalogService) Users(ctx context.Context, sess session.Session) ([]user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.Users")
	defer span.End()

	return s.gateway.ListUsers(ctx, sess.BackendCookie)
}

func (s *CatalogService) UpdateUserRole(ctx context.Context, sess session.Session, userID int64, role user.Role) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.UpdateUserRole")
	defer span.End()

	if userID <= 0 {
		return user.User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if role != user.RoleUsuario && role != user.RoleAdmin {
		return user.User{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	if userID == sess.User.ID && role != user.RoleAdmin {
		return user.User{}, fmt.Errorf("%w: cannot demote yourself", ErrInvalidInput)
	}

	updated, err := s.gateway.UpdateUserRole(ctx, sess.BackendCookie, userID, role)
	if err != nil {
		return user.User{}, err
	}

	s.logger.InfoContext(ctx, "user role updated", "admin_id", sess.User.ID, "user_id", userID, "role", role)
	return updated, nil
}

func (s *CatalogService) DeleteUser(ctx context.Context, sess session.Session, userID int64) error {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.DeleteUser")
	defer span.End()

	if userID <= 0 {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if userID == sess.User.ID {
		return fmt.Errorf("%w: cannot delete yourself", ErrInvalidInput)
	}

	if err := s.gateway.DeleteUser(ctx, sess.BackendCookie, userID); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "user deleted", "admin_id", sess.User.ID, "user_id", userID)
	return nil
}

func validateClub(item club.Club) error {
	if strings.TrimSpace(item.Nombre) == "" {
		return fmt.Errorf("%w: club name is required", ErrInvalidInput)
	}
	return nil
}

func validatePosition(item club.PositionRef) error {
	if strings.TrimSpace(item.Description) == "" {
		return fmt.Errorf("%w: position description is required", ErrInvalidInput)
	}
	return nil
}

func validatePlayer(item player.Player) error {
	if strings.TrimSpace(item.Nombre) == "" &&
		strings.TrimSpace(item.FirstName) == "" && strings.TrimSpace(item.LastName) == "" {
		return fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	if item.ClubID <= 0 {
		return fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}
	return nil
}
