// Package app assembles the portal: backend client, session store, services
// and the HTTP server, all driven by config.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/ligafantasy/portal/internal/config"
	"github.com/ligafantasy/portal/internal/domain/session"
	"github.com/ligafantasy/portal/internal/infrastructure/backend"
	"github.com/ligafantasy/portal/internal/infrastructure/sessionstore/memory"
	"github.com/ligafantasy/portal/internal/infrastructure/sessionstore/postgres"
	"github.com/ligafantasy/portal/internal/interfaces/httpapi"
	"github.com/ligafantasy/portal/internal/platform/cache"
	"github.com/ligafantasy/portal/internal/platform/logging"
	"github.com/ligafantasy/portal/internal/platform/resilience"
	"github.com/ligafantasy/portal/internal/platform/token"
	"github.com/ligafantasy/portal/internal/usecase"
)

// App holds the wired portal plus the handles main needs for lifecycle work.
type App struct {
	Server *http.Server

	cfg     config.Config
	db      *sqlx.DB
	auth    *usecase.AuthService
	catalog *usecase.CatalogService
	logger  *logging.Logger
}

func New(cfg config.Config, logger *logging.Logger, httpLogger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	client := backend.NewClient(backend.ClientConfig{
		BaseURL:    cfg.BackendBaseURL,
		Timeout:    cfg.BackendTimeout,
		MaxRetries: cfg.BackendMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.BackendCircuitEnabled,
			FailureThreshold: cfg.BackendCircuitFailureCount,
			OpenTimeout:      cfg.BackendCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.BackendCircuitHalfOpenMaxReq,
		},
	})

	sessions, db, err := newSessionRepository(cfg)
	if err != nil {
		return nil, err
	}

	cacheTTL := cfg.CacheTTL
	if !cfg.CacheEnabled {
		// Entries written with a one-nanosecond TTL are already expired on
		// the next read.
		cacheTTL = time.Nanosecond
	}

	authSvc := usecase.NewAuthService(client, sessions, token.NewRandomGenerator(), cfg.SessionTTL, logger)
	equipoSvc := usecase.NewEquipoService(client, sessions, cache.NewStore(cacheTTL), logger)
	jornadaSvc := usecase.NewJornadaService(client, logger)
	partidoSvc := usecase.NewPartidoService(client, logger)
	catalogSvc := usecase.NewCatalogService(client, cache.NewStore(cacheTTL), logger)
	historialSvc := usecase.NewHistorialService(client, logger)

	handler := httpapi.NewHandler(authSvc, equipoSvc, jornadaSvc, partidoSvc, catalogSvc, historialSvc, httpLogger)
	router := httpapi.NewRouter(handler, authSvc, equipoSvc, httpLogger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server:  server,
		cfg:     cfg,
		db:      db,
		auth:    authSvc,
		catalog: catalogSvc,
		logger:  logger,
	}, nil
}

func newSessionRepository(cfg config.Config) (session.Repository, *sqlx.DB, error) {
	if cfg.SessionStore != config.SessionStorePostgres {
		return memory.NewStore(), nil, nil
	}

	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("connect session db: %w", err)
	}

	return postgres.NewStore(db), db, nil
}

// WarmCatalog pre-loads the club and position catalogs, authenticating with
// the service cookie when one is configured. Best effort.
func (a *App) WarmCatalog(ctx context.Context) {
	a.catalog.Warmup(ctx, a.cfg.BackendServiceCookie)
}

// RunSessionJanitor deletes expired sessions on an interval until ctx ends.
func (a *App) RunSessionJanitor(ctx context.Context) {
	ticker := time.NewTicker(a.cfg.SessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := a.auth.SweepExpired(ctx); err != nil {
				a.logger.WarnContext(ctx, "session sweep failed", "error", err)
			}
		}
	}
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
