package service

import (
	"context"
	"log/slog"
	"sort"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dhyabi2/luxury-module-creator-sub000/internal/domain"
	"github.com/dhyabi2/luxury-module-creator-sub000/internal/query"
	"github.com/dhyabi2/luxury-module-creator-sub000/internal/repository"
	"github.com/dhyabi2/luxury-module-creator-sub000/pkg/logger"
	"github.com/dhyabi2/luxury-module-creator-sub000/pkg/pagination"
)

type browseState int

const (
	stateCount browseState = iota
	stateFetch
	stateDegrade
	stateDone
	stateFailed
)

var (
	browseDegradations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "browse_degradations_total",
			Help: "Times the browse flow stepped down the relaxation ladder, by rung reached.",
		},
		[]string{"rung"},
	)
	browseFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "browse_failures_total",
			Help: "Browse requests that exhausted the ladder and returned an empty page.",
		},
	)
)

func init() {
	prometheus.MustRegister(browseDegradations, browseFailures)
}

// BrowseResult is the payload served for a product listing request.
type BrowseResult struct {
	Products   []domain.Product `json:"products"`
	Pagination pagination.Meta  `json:"pagination"`
}

// BrowseService runs listing queries against the catalog store, stepping
// down a relaxation ladder instead of surfacing errors. Callers always get a
// well-formed result; an empty page is the worst case.
type BrowseService struct {
	store repository.CatalogStore
}

// NewBrowseService creates a browse service over the given store.
func NewBrowseService(store repository.CatalogStore) *BrowseService {
	return &BrowseService{store: store}
}

// Browse executes criteria against the store and returns one page. The
// criteria are normalized first, so callers may pass raw parsed input.
//
// The flow is a small state machine. Each ladder rung is counted, then
// fetched; a store error moves to the next rung. A count of zero is an
// answer, not a failure, and finishes with an empty page. A canceled or
// expired context aborts the ladder instead of hammering a store the caller
// has already given up on.
func (s *BrowseService) Browse(ctx context.Context, c domain.FilterCriteria, page pagination.Params) BrowseResult {
	log := logger.FromContext(ctx)

	c = c.Normalized()
	page = page.Clamp()

	rungs := query.Ladder(c)

	var (
		state     = stateCount
		rungIdx   = 0
		total     int
		products  []domain.Product
		pageOrder = c.SortBy
	)

	for state != stateDone && state != stateFailed {
		if ctx.Err() != nil {
			state = stateFailed
			break
		}

		// The terminal rung serves at most one page of the newest products;
		// requesting deeper pages of a degraded result yields nothing.
		rung := rungs[rungIdx]
		sortKey := c.SortBy
		limit, offset := page.PageSize, page.Offset
		resultCap := 0
		if rung.Unfiltered {
			sortKey = domain.SortNewest
			pageOrder = domain.SortNewest
			resultCap = page.PageSize
			if offset+limit > resultCap {
				limit = max(0, resultCap-offset)
			}
		}

		switch state {
		case stateCount:
			n, err := s.store.Count(ctx, rung.Groups)
			if err != nil {
				log.Warn("count failed, relaxing filters",
					slog.Int("rung", rung.Level),
					slog.String("error", err.Error()),
				)
				state = stateDegrade
				break
			}
			if n == 0 {
				// Nothing matches. That is a valid result; serving unrelated
				// products instead would misreport the catalog.
				products = []domain.Product{}
				total = 0
				state = stateDone
				break
			}
			total = n
			if resultCap > 0 && total > resultCap {
				total = resultCap
			}
			state = stateFetch

		case stateFetch:
			if limit == 0 {
				products = []domain.Product{}
				state = stateDone
				break
			}
			items, err := s.store.Fetch(ctx, rung.Groups, repository.Sort{Key: sortKey}, limit, offset)
			if err != nil {
				log.Warn("fetch failed, relaxing filters",
					slog.Int("rung", rung.Level),
					slog.String("error", err.Error()),
				)
				state = stateDegrade
				break
			}
			products = items
			state = stateDone

		case stateDegrade:
			rungIdx++
			if rungIdx >= len(rungs) {
				state = stateFailed
				break
			}
			browseDegradations.WithLabelValues(strconv.Itoa(rungs[rungIdx].Level)).Inc()
			state = stateCount
		}
	}

	if state == stateFailed {
		browseFailures.Inc()
		log.Error("browse exhausted relaxation ladder, serving empty page")
		return BrowseResult{
			Products:   []domain.Product{},
			Pagination: pagination.NewMeta(0, page),
		}
	}

	sortPage(products, pageOrder)
	for i := range products {
		products[i].SanitizeImage()
	}

	return BrowseResult{
		Products:   products,
		Pagination: pagination.NewMeta(total, page),
	}
}

// GetProduct returns a single product with its image sanitized.
func (s *BrowseService) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	p, err := s.store.GetByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	p.SanitizeImage()
	return p, nil
}

// sortPage applies the effective-price ordering to a fetched page. The
// comparison runs over the page only; rows keep their store order across
// pages.
func sortPage(products []domain.Product, sortKey string) {
	switch sortKey {
	case domain.SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].EffectivePrice() < products[j].EffectivePrice()
		})
	case domain.SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].EffectivePrice() > products[j].EffectivePrice()
		})
	}
}
