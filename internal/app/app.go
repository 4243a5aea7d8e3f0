// Package app wires together all dependencies and runs the catalog service.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/dhyabi2/luxury-module-creator-sub000/internal/config"
	handler "github.com/dhyabi2/luxury-module-creator-sub000/internal/handler/http"
	"github.com/dhyabi2/luxury-module-creator-sub000/internal/repository"
	pgrepo "github.com/dhyabi2/luxury-module-creator-sub000/internal/repository/postgres"
	"github.com/dhyabi2/luxury-module-creator-sub000/internal/repository/postgres/migrations"
	"github.com/dhyabi2/luxury-module-creator-sub000/internal/service"
	"github.com/dhyabi2/luxury-module-creator-sub000/pkg/database"
	"github.com/dhyabi2/luxury-module-creator-sub000/pkg/health"
	"github.com/dhyabi2/luxury-module-creator-sub000/pkg/tracing"
)

const serviceName = "catalog"

// App wires together all dependencies and runs the catalog service.
type App struct {
	cfg          *config.Config
	logger       *slog.Logger
	pool         *pgxpool.Pool
	cache        *redis.Client
	httpServer   *http.Server
	shutdownOTEL func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	shutdownOTEL, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:  serviceName,
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTELEndpoint,
		SampleRate:   cfg.OTELSampleRate,
		Enabled:      cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), logger)
	if err != nil {
		return nil, fmt.Errorf("init postgres pool: %w", err)
	}
	prometheus.MustRegister(database.NewPoolStatsCollector(pool, serviceName))
	database.SetSlowQueryLogging(time.Duration(cfg.SlowQueryThresholdMs)*time.Millisecond, logger)

	if cfg.RunMigrations {
		if err := database.RunMigrations(ctx, pool, migrations.Files, logger); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	var cache *redis.Client
	if cfg.RedisEnabled {
		cache, err = database.NewRedisClient(ctx, cfg.Redis())
		if err != nil {
			// The facet cache is an optimization; run without it.
			logger.Warn("redis unavailable, facet caching disabled", slog.String("error", err.Error()))
			cache = nil
		}
	}

	var store repository.CatalogStore = pgrepo.NewCatalogRepository(pool)
	store = repository.NewBreakerStore(store, repository.DefaultBreakerSettings(), logger)

	browseService := service.NewBrowseService(store)
	facetService := service.NewFacetService(store, cache, cfg.FacetTTL())

	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", store.Ping)
	if cache != nil {
		healthHandler.Register("redis", func(ctx context.Context) error {
			return cache.Ping(ctx).Err()
		})
	}

	router := handler.NewRouter(handler.RouterConfig{
		Products:       handler.NewProductHandler(browseService, logger),
		Filters:        handler.NewFilterHandler(facetService, logger),
		Health:         healthHandler,
		Logger:         logger,
		ServiceName:    serviceName,
		Environment:    cfg.Environment,
		AllowedOrigins: cfg.AllowedOrigins,
		RequestTimeout: cfg.RequestTimeout(),
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:          cfg,
		logger:       logger,
		pool:         pool,
		cache:        cache,
		httpServer:   httpServer,
		shutdownOTEL: shutdownOTEL,
	}, nil
}

// Run starts the HTTP server, blocking until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	a.pool.Close()

	if err := a.shutdownOTEL(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
