package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/dhyabi2/luxury-module-creator-sub000/internal/domain"
	"github.com/dhyabi2/luxury-module-creator-sub000/internal/repository"
	"github.com/dhyabi2/luxury-module-creator-sub000/pkg/logger"
)

const (
	facetCacheKey = "catalog:facets"
	// DefaultFacetTTL keeps facet counts slightly stale rather than hitting
	// the store with six aggregate queries per filter panel render.
	DefaultFacetTTL = 30 * time.Second
)

var facetFallbacks = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "facet_fallbacks_total",
		Help: "Times the static default facet set was served because live aggregation failed.",
	},
)

func init() {
	prometheus.MustRegister(facetFallbacks)
}

// FacetService serves filter metadata. Live counts come from the store and
// are cached in Redis; when both the cache and the store are unavailable the
// static default set is served, so the endpoint never fails.
type FacetService struct {
	store repository.CatalogStore
	cache *redis.Client
	ttl   time.Duration
}

// NewFacetService creates a facet service. The cache client may be nil, in
// which case every call aggregates from the store.
func NewFacetService(store repository.CatalogStore, cache *redis.Client, ttl time.Duration) *FacetService {
	if ttl <= 0 {
		ttl = DefaultFacetTTL
	}
	return &FacetService{store: store, cache: cache, ttl: ttl}
}

// GetFacets returns the current facet set. It never returns an error; the
// static defaults are the floor.
func (s *FacetService) GetFacets(ctx context.Context) domain.FacetSet {
	log := logger.FromContext(ctx)

	if f, ok := s.fromCache(ctx, log); ok {
		return f
	}

	f, err := s.store.FacetCounts(ctx)
	if err != nil {
		facetFallbacks.Inc()
		log.Warn("facet aggregation failed, serving defaults", slog.String("error", err.Error()))
		return domain.DefaultFacetSet()
	}
	// An empty catalog produces no usable facets either.
	if len(f.Categories) == 0 {
		facetFallbacks.Inc()
		return domain.DefaultFacetSet()
	}

	s.toCache(ctx, log, f)
	return f
}

func (s *FacetService) fromCache(ctx context.Context, log *slog.Logger) (domain.FacetSet, bool) {
	if s.cache == nil {
		return domain.FacetSet{}, false
	}

	raw, err := s.cache.Get(ctx, facetCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn("facet cache read failed", slog.String("error", err.Error()))
		}
		return domain.FacetSet{}, false
	}

	var f domain.FacetSet
	if err := json.Unmarshal(raw, &f); err != nil {
		log.Warn("facet cache entry corrupt", slog.String("error", err.Error()))
		return domain.FacetSet{}, false
	}
	return f, true
}

func (s *FacetService) toCache(ctx context.Context, log *slog.Logger, f domain.FacetSet) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(f)
	if err != nil {
		log.Warn("facet cache encode failed", slog.String("error", err.Error()))
		return
	}
	if err := s.cache.Set(ctx, facetCacheKey, raw, s.ttl).Err(); err != nil {
		log.Warn("facet cache write failed", slog.String("error", err.Error()))
	}
}
