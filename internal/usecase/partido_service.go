package usecase

import (
	"context"
	"fmt"

	"github.com/ligafantasy/portal/internal/domain/partido"
	"github.com/ligafantasy/portal/internal/domain/session"
	"github.com/ligafantasy/portal/internal/platform/logging"
)

// PartidoGateway is the slice of the backend client the fixtures flows need.
type PartidoGateway interface {
	ListPartidos(ctx context.Context, cookie string, jornadaID int64) ([]partido.Partido, error)
	CreatePartido(ctx context.Context, cookie string, p partido.Partido) (partido.Partido, error)
	UpdatePartido(ctx context.Context, cookie string, p partido.Partido) (partido.Partido, error)
	DeletePartido(ctx context.Context, cookie string, partidoID int64) error
}

type PartidoService struct {
	gateway PartidoGateway
	logger  *logging.Logger
}

func NewPartidoService(gateway PartidoGateway, logger *logging.Logger) *PartidoService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PartidoService{gateway: gateway, logger: logger}
}

// List returns fixtures, optionally scoped to one jornada.
func (s *PartidoService) List(ctx context.Context, sess session.Session, jornadaID int64) ([]partido.Partido, error) {
	ctx, span := startUsecaseSpan(ctx, "PartidoService.List")
	defer span.End()

	return s.gateway.ListPartidos(ctx, sess.BackendCookie, jornadaID)
}

func (s *PartidoService) Create(ctx context.Context, sess session.Session, p partido.Partido) (partido.Partido, error) {
	ctx, span := startUsecaseSpan(ctx, "PartidoService.Create")
	defer span.End()

	if err := validatePartido(p); err != nil {
		return partido.Partido{}, err
	}

	created, err := s.gateway.CreatePartido(ctx, sess.BackendCookie, p)
	if err != nil {
		return partido.Partido{}, err
	}

	s.logger.InfoContext(ctx, "partido created", "admin_id", sess.User.ID, "partido_id", created.ID)
	return created, nil
}

func (s *PartidoService) Update(ctx context.Context, sess session.Session, p partido.Partido) (partido.Partido, error) {
	ctx, span := startUsecaseSpan(ctx, "PartidoService.Update")
	defer span.End()

	if p.ID <= 0 {
		return partido.Partido{}, fmt.Errorf("%w: partido id is required", ErrInvalidInput)
	}
	if err := validatePartido(p); err != nil {
		return partido.Partido{}, err
	}

	return s.gateway.UpdatePartido(ctx, sess.BackendCookie, p)
}

func (s *PartidoService) Delete(ctx context.Context, sess session.Session, partidoID int64) error {
	ctx, span := startUsecaseSpan(ctx, "PartidoService.Delete")
	defer span.End()

	if partidoID <= 0 {
		return fmt.Errorf("%w: partido id is required", ErrInvalidInput)
	}
	if err := s.gateway.DeletePartido(ctx, sess.BackendCookie, partidoID); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "partido deleted", "admin_id", sess.User.ID, "partido_id", partidoID)
	return nil
}

func validatePartido(p partido.Partido) error {
	if p.LocalID <= 0 || p.VisitanteID <= 0 {
		return fmt.Errorf("%w: both clubs are required", ErrInvalidInput)
	}
	if p.LocalID == p.VisitanteID {
		return fmt.Errorf("%w: a club cannot play itself", ErrInvalidInput)
	}
	if p.JornadaID <= 0 {
		return fmt.Errorf("%w: jornada id is required", ErrInvalidInput)
	}
	if p.Estado != "" && !p.Estado.Known() {
		return fmt.Errorf("%w: unknown estado %q", ErrInvalidInput, p.Estado)
	}

	return nil
}
