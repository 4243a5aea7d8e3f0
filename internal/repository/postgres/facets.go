package postgres

import (
	"context"
	"fmt"

	"github.com/dhyabi2/luxury-module-creator-sub000/internal/domain"
	"github.com/dhyabi2/luxury-module-creator-sub000/pkg/database"
)

// Facet counts only consider purchasable items; out-of-stock products would
// otherwise advertise filter values that return empty pages.
const facetStockCond = "stock > 0"

// FacetCounts aggregates live facet values over in-stock products.
func (r *CatalogRepository) FacetCounts(ctx context.Context) (domain.FacetSet, error) {
	var f domain.FacetSet

	if err := r.rangeFacets(ctx, &f); err != nil {
		return domain.FacetSet{}, err
	}

	var err error
	if f.Categories, err = r.optionFacet(ctx, "category"); err != nil {
		return domain.FacetSet{}, err
	}
	if f.Brands, err = r.optionFacet(ctx, "brand"); err != nil {
		return domain.FacetSet{}, err
	}
	if f.Bands, err = r.optionFacet(ctx, "band"); err != nil {
		return domain.FacetSet{}, err
	}
	if f.CaseColors, err = r.optionFacet(ctx, "case_color"); err != nil {
		return domain.FacetSet{}, err
	}
	if f.Colors, err = r.optionFacet(ctx, "color"); err != nil {
		return domain.FacetSet{}, err
	}
	if f.Genders, err = r.optionFacet(ctx, "gender"); err != nil {
		return domain.FacetSet{}, err
	}
	if f.CategoryBrands, err = r.categoryBrandFacet(ctx); err != nil {
		return domain.FacetSet{}, err
	}

	f.BackfillCategoryBrands()
	return f, nil
}

func (r *CatalogRepository) rangeFacets(ctx context.Context, f *domain.FacetSet) error {
	query := fmt.Sprintf(`
		SELECT
			coalesce(min(price), 0),
			coalesce(max(price), 0),
			coalesce(min(%[1]s), 0),
			coalesce(max(%[1]s), 0)
		FROM products
		WHERE %[2]s`,
		fieldExprs["caseSize"], facetStockCond,
	)

	ctx, end := database.TraceQuery(ctx, "FacetRanges", query)
	err := r.db.QueryRow(ctx, query).Scan(
		&f.PriceRange.Min,
		&f.PriceRange.Max,
		&f.CaseSizeRange.Min,
		&f.CaseSizeRange.Max,
	)
	end(err)
	if err != nil {
		return fmt.Errorf("facet ranges: %w", err)
	}

	f.PriceRange.Unit = "OMR"
	f.CaseSizeRange.Unit = "mm"

	// Without any parseable case size the slider still needs usable bounds.
	if f.CaseSizeRange.Min == 0 && f.CaseSizeRange.Max == 0 {
		f.CaseSizeRange.Min, f.CaseSizeRange.Max = 20, 45
	}
	return nil
}

// optionFacet counts distinct values of one column. The column name comes
// from a fixed call-site whitelist, never from user input.
func (r *CatalogRepository) optionFacet(ctx context.Context, column string) ([]domain.FacetOption, error) {
	query := fmt.Sprintf(`
		SELECT lower(%[1]s), min(%[1]s), count(*)
		FROM products
		WHERE %[2]s AND %[1]s <> ''
		GROUP BY lower(%[1]s)
		ORDER BY count(*) DESC, lower(%[1]s)`,
		column, facetStockCond,
	)

	ctx, end := database.TraceQuery(ctx, "FacetOptions", query)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		end(err)
		return nil, fmt.Errorf("facet %s: %w", column, err)
	}
	defer rows.Close()

	var options []domain.FacetOption
	for rows.Next() {
		var o domain.FacetOption
		if err := rows.Scan(&o.ID, &o.Name, &o.Count); err != nil {
			end(err)
			return nil, fmt.Errorf("scan facet %s: %w", column, err)
		}
		options = append(options, o)
	}
	err = rows.Err()
	end(err)
	if err != nil {
		return nil, fmt.Errorf("iterate facet %s: %w", column, err)
	}

	if options == nil {
		options = []domain.FacetOption{}
	}
	return options, nil
}

func (r *CatalogRepository) categoryBrandFacet(ctx context.Context) (map[string][]domain.FacetOption, error) {
	query := fmt.Sprintf(`
		SELECT lower(category), lower(brand), min(brand), count(*)
		FROM products
		WHERE %s AND category <> '' AND brand <> ''
		GROUP BY lower(category), lower(brand)
		ORDER BY lower(category), count(*) DESC, lower(brand)`,
		facetStockCond,
	)

	ctx, end := database.TraceQuery(ctx, "FacetCategoryBrands", query)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		end(err)
		return nil, fmt.Errorf("facet category brands: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.FacetOption)
	for rows.Next() {
		var (
			category string
			o        domain.FacetOption
		)
		if err := rows.Scan(&category, &o.ID, &o.Name, &o.Count); err != nil {
			end(err)
			return nil, fmt.Errorf("scan category brand: %w", err)
		}
		out[category] = append(out[category], o)
	}
	err = rows.Err()
	end(err)
	if err != nil {
		return nil, fmt.Errorf("iterate category brands: %w", err)
	}

	return out, nil
}
