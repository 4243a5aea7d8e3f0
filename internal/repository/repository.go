package repository

import (
	"context"

	"github.com/dhyabi2/luxury-module-creator-sub000/internal/domain"
)

// Operator identifies how a predicate group matches product fields.
type Operator string

const (
	// OpEquals matches a field exactly against any of the group values.
	OpEquals Operator = "equals"
	// OpContains matches when the field contains any group value as a
	// case-insensitive substring.
	OpContains Operator = "containsSubstring"
	// OpMemberOf matches when the field equals one of the group values.
	OpMemberOf Operator = "memberOf"
	// OpRange matches when a numeric field lies inside [Min, Max].
	OpRange Operator = "range"
	// OpGreaterThan matches when a numeric field exceeds Min.
	OpGreaterThan Operator = "greaterThan"
)

// PredicateGroup is one conjunct of a compiled query. Values within a group
// combine with OR; the groups of a query combine with AND.
type PredicateGroup struct {
	Name   string
	Op     Operator
	Fields []string
	Values []string
	Min    float64
	Max    float64
}

// Sort describes the ordering a store should apply server-side. Price sorts
// are finished in memory per page, so the store only needs a stable base
// order for them.
type Sort struct {
	Key string
}

// CatalogStore is the persistence surface the browse flow runs against.
type CatalogStore interface {
	// Count returns the number of products matching the predicate groups.
	Count(ctx context.Context, groups []PredicateGroup) (int, error)
	// Fetch returns one page of matching products in store order.
	Fetch(ctx context.Context, groups []PredicateGroup, sort Sort, limit, offset int) ([]domain.Product, error)
	// GetByID returns a single product or errors.ErrNotFound.
	GetByID(ctx context.Context, id string) (domain.Product, error)
	// FacetCounts aggregates live facet values over in-stock products.
	FacetCounts(ctx context.Context) (domain.FacetSet, error)
	// Ping reports store reachability for health checks.
	Ping(ctx context.Context) error
}
