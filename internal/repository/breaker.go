package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker/v2"

	apperrors "github.com/dhyabi2/luxury-module-creator-sub000/pkg/errors"
	"github.com/dhyabi2/luxury-module-creator-sub000/internal/domain"
)

// BreakerSettings tunes the circuit breaker guarding the catalog store.
type BreakerSettings struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
	MinRequests  uint32
}

// DefaultBreakerSettings trips after 60% failures over at least 5 requests
// and probes again after 15 seconds open.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:  3,
		Interval:     60 * time.Second,
		Timeout:      15 * time.Second,
		FailureRatio: 0.6,
		MinRequests:  5,
	}
}

var breakerState = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "catalog_store_breaker_state",
		Help: "Circuit breaker state for the catalog store (0=closed, 1=half-open, 2=open).",
	},
	[]string{"name"},
)

func init() {
	prometheus.MustRegister(breakerState)
}

// BreakerStore decorates a CatalogStore with a shared circuit breaker. While
// the breaker is open every call fails fast with ErrUnavailable, letting the
// browse flow fall through to its degraded responses without waiting on a
// struggling database.
type BreakerStore struct {
	next CatalogStore
	cb   *gobreaker.CircuitBreaker[any]
}

// NewBreakerStore wraps next with a circuit breaker.
func NewBreakerStore(next CatalogStore, s BreakerSettings, logger *slog.Logger) *BreakerStore {
	name := "catalog-store"
	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= s.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			// Client cancellations say nothing about store health.
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			return errors.Is(err, apperrors.ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			breakerState.WithLabelValues(name).Set(stateValue(to))
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})
	breakerState.WithLabelValues(name).Set(stateValue(gobreaker.StateClosed))
	return &BreakerStore{next: next, cb: cb}
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

func (b *BreakerStore) execute(fn func() (any, error)) (any, error) {
	res, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, apperrors.Unavailable("catalog store circuit open")
		}
		return res, err
	}
	return res, nil
}

func (b *BreakerStore) Count(ctx context.Context, groups []PredicateGroup) (int, error) {
	res, err := b.execute(func() (any, error) {
		return b.next.Count(ctx, groups)
	})
	if err != nil {
		return 0, err
	}
	return res.(int), nil
}

func (b *BreakerStore) Fetch(ctx context.Context, groups []PredicateGroup, sort Sort, limit, offset int) ([]domain.Product, error) {
	res, err := b.execute(func() (any, error) {
		return b.next.Fetch(ctx, groups, sort, limit, offset)
	})
	if err != nil {
		return nil, err
	}
	return res.([]domain.Product), nil
}

func (b *BreakerStore) GetByID(ctx context.Context, id string) (domain.Product, error) {
	res, err := b.execute(func() (any, error) {
		return b.next.GetByID(ctx, id)
	})
	if err != nil {
		return domain.Product{}, err
	}
	return res.(domain.Product), nil
}

func (b *BreakerStore) FacetCounts(ctx context.Context) (domain.FacetSet, error) {
	res, err := b.execute(func() (any, error) {
		return b.next.FacetCounts(ctx)
	})
	if err != nil {
		return domain.FacetSet{}, err
	}
	return res.(domain.FacetSet), nil
}

func (b *BreakerStore) Ping(ctx context.Context) error {
	_, err := b.execute(func() (any, error) {
		return nil, b.next.Ping(ctx)
	})
	return err
}
