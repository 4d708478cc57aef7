package usecase

import (
	"context"
	"fmt"

	"github.com/ligafantasy/portal/internal/domain/jornada"
	"github.com/ligafantasy/portal/internal/domain/session"
	"github.com/ligafantasy/portal/internal/platform/logging"
)

// JornadaGateway is the slice of the backend client the rounds flows need.
type JornadaGateway interface {
	ListJornadas(ctx context.Context, cookie string) ([]jornada.Jornada, error)
	GetJornada(ctx context.Context, cookie string, jornadaID int64) (jornada.Jornada, error)
	GetConfig(ctx context.Context, cookie string) (jornada.SystemConfig, error)
	UpdateConfig(ctx context.Context, cookie string, update jornada.SystemConfig) (jornada.SystemConfig, error)
	ProcesarJornada(ctx context.Context, cookie string, jornadaID int64) error
	RecalcularJornada(ctx context.Context, cookie string, jornadaID int64) error
}

type JornadaService struct {
	gateway JornadaGateway
	logger  *logging.Logger
}

func NewJornadaService(gateway JornadaGateway, logger *logging.Logger) *JornadaService {
	if logger == nil {
		logger = logging.Default()
	}
	return &JornadaService{gateway: gateway, logger: logger}
}

func (s *JornadaService) List(ctx context.Context, sess session.Session) ([]jornada.Jornada, error) {
	ctx, span := startUsecaseSpan(ctx, "JornadaService.List")
	defer span.End()

	return s.gateway.ListJornadas(ctx, sess.BackendCookie)
}

func (s *JornadaService) Get(ctx context.Context, sess session.Session, jornadaID int64) (jornada.Jornada, error) {
	ctx, span := startUsecaseSpan(ctx, "JornadaService.Get")
	defer span.End()

	if jornadaID <= 0 {
		return jornada.Jornada{}, fmt.Errorf("%w: jornada id is required", ErrInvalidInput)
	}
	return s.gateway.GetJornada(ctx, sess.BackendCookie, jornadaID)
}

func (s *JornadaService) Config(ctx context.Context, sess session.Session) (jornada.SystemConfig, error) {
	ctx, span := startUsecaseSpan(ctx, "JornadaService.Config")
	defer span.End()

	return s.gateway.GetConfig(ctx, sess.BackendCookie)
}

// UpdateConfig activates a round or toggles modificaciones. The returned
// state is the backend's confirmed one, which is what screens must render.
func (s *JornadaService) UpdateConfig(ctx context.Context, sess session.Session, update jornada.SystemConfig) (jornada.SystemConfig, error) {
	ctx, span := startUsecaseSpan(ctx, "JornadaService.UpdateConfig")
	defer span.End()

	if update.JornadaActiva <= 0 {
		return jornada.SystemConfig{}, fmt.Errorf("%w: jornada activa is required", ErrInvalidInput)
	}

	confirmed, err := s.gateway.UpdateConfig(ctx, sess.BackendCookie, update)
	if err != nil {
		return jornada.SystemConfig{}, err
	}

	s.logger.InfoContext(ctx, "system config updated",
		"admin_id", sess.User.ID,
		"jornada_activa", confirmed.JornadaActiva,
		"modificaciones", confirmed.ModificacionesHabilitadas)
	return confirmed, nil
}

func (s *JornadaService) Procesar(ctx context.Context, sess session.Session, jornadaID int64) error {
	ctx, span := startUsecaseSpan(ctx, "JornadaService.Procesar")
	defer span.End()

	if jornadaID <= 0 {
		return fmt.Errorf("%w: jornada id is required", ErrInvalidInput)
	}
	if err := s.gateway.ProcesarJornada(ctx, sess.BackendCookie, jornadaID); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "jornada processing triggered", "admin_id", sess.User.ID, "jornada_id", jornadaID)
	return nil
}

func (s *JornadaService) Recalcular(ctx context.Context, sess session.Session, jornadaID int64) error {
	ctx, span := startUsecaseSpan(ctx, "JornadaService.Recalcular")
	defer span.End()

	if jornadaID <= 0 {
		return fmt.Errorf("%w: jornada id is required", ErrInvalidInput)
	}
	if err := s.gateway.RecalcularJornada(ctx, sess.BackendCookie, jornadaID); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "jornada recalculation triggered", "admin_id", sess.User.ID, "jornada_id", jornadaID)
	return nil
}
