package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhyabi2/luxury-module-creator-sub000/internal/domain"
	"github.com/dhyabi2/luxury-module-creator-sub000/internal/repository"
)

func groupNames(groups []repository.PredicateGroup) []string {
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name)
	}
	return names
}

func TestCompile_EmptyCriteria(t *testing.T) {
	assert.Empty(t, Compile(domain.FilterCriteria{}))
}

func TestCompile_AllCriteria(t *testing.T) {
	c := domain.FilterCriteria{
		Search:      "chrono",
		Categories:  []string{"watches"},
		Brands:      []string{"aigner", "tissot"},
		Genders:     []string{"men"},
		Bands:       []string{"leather"},
		CaseColors:  []string{"gold"},
		Colors:      []string{"black"},
		Price:       domain.Range{Min: 50, Max: 500, Set: true},
		CaseSize:    domain.Range{Min: 36, Max: 44, Set: true},
		InStockOnly: true,
		Clearance:   true,
	}

	groups := Compile(c)

	assert.Equal(t, []string{
		"search", "category", "brand", "gender", "band", "caseColor",
		"color", "price", "caseSize", "inStock", "clearance",
	}, groupNames(groups))

	byName := make(map[string]repository.PredicateGroup, len(groups))
	for _, g := range groups {
		byName[g.Name] = g
	}

	assert.Equal(t, repository.OpContains, byName["search"].Op)
	assert.Equal(t, []string{"name", "brand", "category"}, byName["search"].Fields)
	assert.Equal(t, []string{"aigner", "tissot"}, byName["brand"].Values)
	assert.Equal(t, repository.OpMemberOf, byName["gender"].Op)
	assert.Equal(t, repository.OpRange, byName["price"].Op)
	assert.Equal(t, 50.0, byName["price"].Min)
	assert.Equal(t, 500.0, byName["price"].Max)
	assert.Equal(t, repository.OpGreaterThan, byName["inStock"].Op)
	assert.Equal(t, repository.OpGreaterThan, byName["clearance"].Op)
	assert.Equal(t, []string{"discount"}, byName["clearance"].Fields)
}

func TestLadder_FullCriteria(t *testing.T) {
	c := domain.FilterCriteria{
		Categories:  []string{"watches"},
		Brands:      []string{"tissot"},
		Genders:     []string{"men"},
		CaseSize:    domain.Range{Min: 38, Max: 44, Set: true},
		InStockOnly: true,
	}

	rungs := Ladder(c)
	require.Len(t, rungs, 4)

	assert.Equal(t, []string{"category", "brand", "gender", "caseSize", "inStock"}, groupNames(rungs[0].Groups))
	assert.Equal(t, []string{"category", "brand", "inStock"}, groupNames(rungs[1].Groups))
	assert.Equal(t, []string{"category", "inStock"}, groupNames(rungs[2].Groups))
	assert.Empty(t, rungs[3].Groups)
	assert.True(t, rungs[3].Unfiltered)

	// Each rung is a subset of the one before it.
	for i := 1; i < len(rungs); i++ {
		prev := make(map[string]bool)
		for _, n := range groupNames(rungs[i-1].Groups) {
			prev[n] = true
		}
		for _, n := range groupNames(rungs[i].Groups) {
			assert.Truef(t, prev[n], "rung %d introduced group %s", i+1, n)
		}
	}
}

func TestLadder_SkipsIdenticalRungs(t *testing.T) {
	// No watch attributes: rung 2 equals rung 1 and is skipped.
	c := domain.FilterCriteria{
		Categories:  []string{"bags"},
		InStockOnly: true,
	}

	rungs := Ladder(c)
	require.Len(t, rungs, 2)
	assert.Equal(t, 1, rungs[0].Level)
	assert.True(t, rungs[1].Unfiltered)
}

func TestLadder_BrandOnly(t *testing.T) {
	c := domain.FilterCriteria{Brands: []string{"guess"}}

	rungs := Ladder(c)
	require.Len(t, rungs, 2)
	assert.Equal(t, []string{"brand"}, groupNames(rungs[0].Groups))
	assert.True(t, rungs[1].Unfiltered)
}

func TestLadder_EmptyCriteria(t *testing.T) {
	rungs := Ladder(domain.FilterCriteria{})
	require.Len(t, rungs, 1)
	assert.Empty(t, rungs[0].Groups)
	assert.False(t, rungs[0].Unfiltered)
}
