// Package http wires the catalog browse endpoints onto a chi router.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dhyabi2/luxury-module-creator-sub000/pkg/health"
	"github.com/dhyabi2/luxury-module-creator-sub000/pkg/middleware"
)

// RouterConfig carries the handler dependencies and cross-cutting settings.
type RouterConfig struct {
	Products       *ProductHandler
	Filters        *FilterHandler
	Health         *health.Handler
	Logger         *slog.Logger
	ServiceName    string
	Environment    string
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter assembles the HTTP routing tree with the standard middleware
// chain.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		Environment:    cfg.Environment,
	}))
	if cfg.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", cfg.Products.List)
		r.Get("/products/{id}", cfg.Products.Get)
		r.With(middleware.CacheControl(60)).Get("/filters", cfg.Filters.Get)
	})

	// Storefront-compatible aliases without the version prefix.
	r.Get("/products", cfg.Products.List)
	r.Get("/products/{id}", cfg.Products.Get)
	r.With(middleware.CacheControl(60)).Get("/filters", cfg.Filters.Get)

	return r
}
