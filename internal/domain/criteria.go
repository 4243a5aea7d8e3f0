package domain

import (
	"strings"
)

// Sort keys accepted by the browse API. Anything else normalizes to
// SortFeatured.
const (
	SortFeatured  = "featured"
	SortNewest    = "newest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
)

// NormalizeSort maps an arbitrary sort parameter onto a supported key.
func NormalizeSort(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case SortNewest:
		return SortNewest
	case SortPriceLow:
		return SortPriceLow
	case SortPriceHigh:
		return SortPriceHigh
	default:
		return SortFeatured
	}
}

// Range is a closed numeric interval. It only takes part in filtering when
// both bounds were supplied, tracked by Set.
type Range struct {
	Min float64
	Max float64
	Set bool
}

// nonWatchCategories are the category terms that switch off watch-specific
// filtering. Matching is by substring against the normalized category tokens.
var nonWatchCategories = []string{"accessories", "bags", "perfumes"}

// FilterCriteria is the normalized form of the browse query parameters.
// All list fields are lowercase, trimmed and de-duplicated.
type FilterCriteria struct {
	Categories  []string
	Brands      []string
	Genders     []string
	Bands       []string
	CaseColors  []string
	Colors      []string
	Price       Range
	CaseSize    Range
	InStockOnly bool
	Clearance   bool
	SortBy      string
	Search      string
}

// NormalizeList splits a comma-separated parameter into lowercase trimmed
// tokens, dropping empties and duplicates while preserving first-seen order.
func NormalizeList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.ToLower(strings.TrimSpace(p))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// HasNonWatchCategory reports whether any requested category refers to a
// non-watch line (accessories, bags, perfumes). Watch attribute filters are
// meaningless as soon as one of those is in play and get cleared during
// normalization; an empty category set keeps them applicable.
func (c FilterCriteria) HasNonWatchCategory() bool {
	for _, cat := range c.Categories {
		for _, nw := range nonWatchCategories {
			if strings.Contains(cat, nw) {
				return true
			}
		}
	}
	return false
}

// Normalized returns a copy with the applicability regime applied: when the
// request includes a non-watch category, the watch-specific attributes
// (gender, case size, band, case colour, colour) are cleared so they can
// never mismatch records lacking those keys. Calling Normalized on an
// already-normalized value is a no-op.
func (c FilterCriteria) Normalized() FilterCriteria {
	c.SortBy = NormalizeSort(c.SortBy)
	c.Search = strings.ToLower(strings.TrimSpace(c.Search))
	if c.HasNonWatchCategory() {
		c.Genders = nil
		c.Bands = nil
		c.CaseColors = nil
		c.Colors = nil
		c.CaseSize = Range{}
	}
	return c
}

// HasWatchAttributes reports whether any watch-specific filter survives
// normalization.
func (c FilterCriteria) HasWatchAttributes() bool {
	return len(c.Genders) > 0 || len(c.Bands) > 0 || len(c.CaseColors) > 0 ||
		len(c.Colors) > 0 || c.CaseSize.Set
}

// IsEmpty reports whether no filtering at all was requested.
func (c FilterCriteria) IsEmpty() bool {
	return len(c.Categories) == 0 && len(c.Brands) == 0 && !c.HasWatchAttributes() &&
		!c.Price.Set && !c.InStockOnly && !c.Clearance &&
		c.Search == ""
}
