package domain

// FacetOption is one selectable value inside a facet, with the number of
// in-stock products that carry it.
type FacetOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// RangeFacet bounds a numeric slider facet.
type RangeFacet struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Unit string  `json:"unit"`
}

// FacetSet is the complete filter metadata payload served by GET /filters.
type FacetSet struct {
	PriceRange     RangeFacet               `json:"priceRange"`
	CaseSizeRange  RangeFacet               `json:"caseSizeRange"`
	Categories     []FacetOption            `json:"categories"`
	Brands         []FacetOption            `json:"brands"`
	Bands          []FacetOption            `json:"bands"`
	CaseColors     []FacetOption            `json:"caseColors"`
	Colors         []FacetOption            `json:"colors"`
	Genders        []FacetOption            `json:"genders"`
	CategoryBrands map[string][]FacetOption `json:"categoryBrands"`
}

// maxBackfillBrands caps how many global brands get copied into an empty
// per-category brand list.
const maxBackfillBrands = 3

// BackfillCategoryBrands ensures every category listed in the facet set has a
// non-empty brand list. Categories with no observed brands receive up to
// three of the global brands, each with a count of 1 to signal the
// association is inferred rather than measured.
func (f *FacetSet) BackfillCategoryBrands() {
	if f.CategoryBrands == nil {
		f.CategoryBrands = make(map[string][]FacetOption, len(f.Categories))
	}
	for _, cat := range f.Categories {
		if len(f.CategoryBrands[cat.ID]) > 0 {
			continue
		}
		n := len(f.Brands)
		if n > maxBackfillBrands {
			n = maxBackfillBrands
		}
		filled := make([]FacetOption, 0, n)
		for _, b := range f.Brands[:n] {
			filled = append(filled, FacetOption{ID: b.ID, Name: b.Name, Count: 1})
		}
		f.CategoryBrands[cat.ID] = filled
	}
}

// DefaultFacetSet is the static fallback served when live aggregation is
// unavailable. Values mirror the breadth of the full catalog so the
// storefront filter panel stays usable.
func DefaultFacetSet() FacetSet {
	f := FacetSet{
		PriceRange:    RangeFacet{Min: 16, Max: 1225, Unit: "OMR"},
		CaseSizeRange: RangeFacet{Min: 20, Max: 45, Unit: "mm"},
		Categories: []FacetOption{
			{ID: "watches", Name: "Watches", Count: 85},
			{ID: "accessories", Name: "Accessories", Count: 24},
			{ID: "bags", Name: "Bags", Count: 18},
			{ID: "perfumes", Name: "Perfumes", Count: 15},
		},
		Brands: []FacetOption{
			{ID: "aigner", Name: "AIGNER", Count: 26},
			{ID: "calvin klein", Name: "Calvin Klein", Count: 18},
			{ID: "michael kors", Name: "Michael Kors", Count: 15},
			{ID: "tissot", Name: "Tissot", Count: 12},
			{ID: "guess", Name: "Guess", Count: 11},
		},
		Bands: []FacetOption{
			{ID: "stainless steel", Name: "Stainless Steel", Count: 34},
			{ID: "leather", Name: "Leather", Count: 28},
			{ID: "silicone", Name: "Silicone", Count: 9},
			{ID: "mesh", Name: "Mesh", Count: 7},
		},
		CaseColors: []FacetOption{
			{ID: "silver", Name: "Silver", Count: 30},
			{ID: "gold", Name: "Gold", Count: 22},
			{ID: "rose gold", Name: "Rose Gold", Count: 16},
			{ID: "black", Name: "Black", Count: 12},
		},
		Colors: []FacetOption{
			{ID: "black", Name: "Black", Count: 25},
			{ID: "silver", Name: "Silver", Count: 21},
			{ID: "gold", Name: "Gold", Count: 17},
			{ID: "blue", Name: "Blue", Count: 10},
			{ID: "white", Name: "White", Count: 8},
		},
		Genders: []FacetOption{
			{ID: "men", Name: "Men", Count: 44},
			{ID: "women", Name: "Women", Count: 38},
			{ID: "unisex", Name: "Unisex", Count: 12},
		},
		CategoryBrands: map[string][]FacetOption{
			"watches": {
				{ID: "aigner", Name: "AIGNER", Count: 22},
				{ID: "tissot", Name: "Tissot", Count: 12},
				{ID: "michael kors", Name: "Michael Kors", Count: 10},
			},
		},
	}
	f.BackfillCategoryBrands()
	return f
}
