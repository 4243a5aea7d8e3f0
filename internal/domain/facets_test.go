package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacetSet_BackfillCategoryBrands(t *testing.T) {
	f := FacetSet{
		Categories: []FacetOption{
			{ID: "watches", Name: "Watches", Count: 10},
			{ID: "bags", Name: "Bags", Count: 4},
		},
		Brands: []FacetOption{
			{ID: "aigner", Name: "AIGNER", Count: 8},
			{ID: "guess", Name: "Guess", Count: 5},
			{ID: "tissot", Name: "Tissot", Count: 3},
			{ID: "fossil", Name: "Fossil", Count: 1},
		},
		CategoryBrands: map[string][]FacetOption{
			"watches": {{ID: "tissot", Name: "Tissot", Count: 3}},
		},
	}

	f.BackfillCategoryBrands()

	// Observed associations are untouched.
	assert.Equal(t, []FacetOption{{ID: "tissot", Name: "Tissot", Count: 3}}, f.CategoryBrands["watches"])

	// Empty categories receive at most three global brands with count 1.
	filled := f.CategoryBrands["bags"]
	require.Len(t, filled, 3)
	assert.Equal(t, "aigner", filled[0].ID)
	for _, b := range filled {
		assert.Equal(t, 1, b.Count)
	}
}

func TestFacetSet_BackfillCategoryBrands_NilMap(t *testing.T) {
	f := FacetSet{
		Categories: []FacetOption{{ID: "perfumes", Name: "Perfumes", Count: 2}},
		Brands:     []FacetOption{{ID: "chanel", Name: "Chanel", Count: 2}},
	}

	f.BackfillCategoryBrands()

	require.NotNil(t, f.CategoryBrands)
	assert.Len(t, f.CategoryBrands["perfumes"], 1)
}

func TestDefaultFacetSet(t *testing.T) {
	f := DefaultFacetSet()

	assert.Equal(t, RangeFacet{Min: 16, Max: 1225, Unit: "OMR"}, f.PriceRange)
	assert.Equal(t, RangeFacet{Min: 20, Max: 45, Unit: "mm"}, f.CaseSizeRange)
	assert.NotEmpty(t, f.Categories)
	assert.NotEmpty(t, f.Brands)
	assert.NotEmpty(t, f.Genders)

	// Every category must carry at least one brand association.
	for _, cat := range f.Categories {
		assert.NotEmptyf(t, f.CategoryBrands[cat.ID], "category %s has no brands", cat.ID)
	}
}
