package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhyabi2/luxury-module-creator-sub000/internal/domain"
)

func TestGetFacets_LiveAggregation(t *testing.T) {
	live := domain.FacetSet{
		PriceRange: domain.RangeFacet{Min: 10, Max: 900, Unit: "OMR"},
		Categories: []domain.FacetOption{{ID: "watches", Name: "Watches", Count: 40}},
		Brands:     []domain.FacetOption{{ID: "tissot", Name: "Tissot", Count: 12}},
	}
	store := &stubStore{facets: live}
	svc := NewFacetService(store, nil, time.Second)

	got := svc.GetFacets(context.Background())
	assert.Equal(t, live, got)
}

func TestGetFacets_FallsBackToDefaults(t *testing.T) {
	store := &stubStore{facetsErr: errors.New("database down")}
	svc := NewFacetService(store, nil, time.Second)

	got := svc.GetFacets(context.Background())

	assert.Equal(t, domain.DefaultFacetSet(), got)
	require.NotEmpty(t, got.Categories)
	for _, cat := range got.Categories {
		assert.NotEmpty(t, got.CategoryBrands[cat.ID])
	}
}

func TestGetFacets_EmptyCatalogServesDefaults(t *testing.T) {
	store := &stubStore{facets: domain.FacetSet{}}
	svc := NewFacetService(store, nil, time.Second)

	got := svc.GetFacets(context.Background())
	assert.Equal(t, domain.DefaultFacetSet(), got)
}

func TestNewFacetService_DefaultTTL(t *testing.T) {
	svc := NewFacetService(&stubStore{}, nil, 0)
	assert.Equal(t, DefaultFacetTTL, svc.ttl)
}
