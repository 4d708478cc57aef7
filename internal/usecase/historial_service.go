package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/ligafantasy/portal/internal/domain/equipo"
	"github.com/ligafantasy/portal/internal/domain/session"
	"github.com/ligafantasy/portal/internal/platform/logging"
)

const historialWorkers = 4

// HistorialGateway is the slice of the backend client the history screens need.
type HistorialGateway interface {
	Historial(ctx context.Context, cookie string, equipoID int64) ([]equipo.HistorialEntry, error)
	JornadaDetail(ctx context.Context, cookie string, equipoID, jornadaID int64) (equipo.JornadaDetail, error)
}

type HistorialService struct {
	gateway HistorialGateway
	logger  *logging.Logger
}

func NewHistorialService(gateway HistorialGateway, logger *logging.Logger) *HistorialService {
	if logger == nil {
		logger = logging.Default()
	}
	return &HistorialService{gateway: gateway, logger: logger}
}

func (s *HistorialService) History(ctx context.Context, sess session.Session, equipoID int64) ([]equipo.HistorialEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "HistorialService.History")
	defer span.End()

	if equipoID <= 0 {
		return nil, fmt.Errorf("%w: equipo id is required", ErrInvalidInput)
	}
	return s.gateway.Historial(ctx, sess.BackendCookie, equipoID)
}

func (s *HistorialService) Detail(ctx context.Context, sess session.Session, equipoID, jornadaID int64) (equipo.JornadaDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "HistorialService.Detail")
	defer span.End()

	if equipoID <= 0 || jornadaID <= 0 {
		return equipo.JornadaDetail{}, fmt.Errorf("%w: equipo id and jornada id are required", ErrInvalidInput)
	}
	return s.gateway.JornadaDetail(ctx, sess.BackendCookie, equipoID, jornadaID)
}

// Details fetches per-round snapshots for several jornadas through a bounded
// worker pool. Rows come back in jornada order; rounds that fail to load are
// skipped and counted, not fatal to the rest of the screen.
func (s *HistorialService) Details(ctx context.Context, sess session.Session, equipoID int64, jornadaIDs []int64) ([]equipo.JornadaDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "HistorialService.Details")
	defer span.End()

	if equipoID <= 0 {
		return nil, fmt.Errorf("%w: equipo id is required", ErrInvalidInput)
	}
	if len(jornadaIDs) == 0 {
		return nil, nil
	}

	workerCount := historialWorkers
	if len(jornadaIDs) < workerCount {
		workerCount = len(jornadaIDs)
	}
	p, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer p.Release()

	results := make(chan equipo.JornadaDetail, len(jornadaIDs))
	var failed sync.Map

	var workers sync.WaitGroup
	for _, jornadaID := range jornadaIDs {
		jornadaID := jornadaID
		workers.Add(1)
		if err := p.Submit(func() {
			defer workers.Done()

			detail, err := s.gateway.JornadaDetail(ctx, sess.BackendCookie, equipoID, jornadaID)
			if err != nil {
				failed.Store(jornadaID, err)
				return
			}
			results <- detail
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	out := make([]equipo.JornadaDetail, 0, len(jornadaIDs))
	for detail := range results {
		out = append(out, detail)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JornadaID < out[j].JornadaID })

	failed.Range(func(key, value any) bool {
		s.logger.WarnContext(ctx, "jornada detail fetch failed", "equipo_id", equipoID, "jornada_id", key, "error", value)
		return true
	})

	return out, nil
}
