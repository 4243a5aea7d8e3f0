package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dhyabi2/luxury-module-creator-sub000/internal/domain"
	"github.com/dhyabi2/luxury-module-creator-sub000/internal/service"
	"github.com/dhyabi2/luxury-module-creator-sub000/pkg/httputil"
	"github.com/dhyabi2/luxury-module-creator-sub000/pkg/pagination"
)

// ProductHandler serves the product listing endpoints.
type ProductHandler struct {
	browse *service.BrowseService
	logger *slog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(browse *service.BrowseService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{browse: browse, logger: logger}
}

// List handles GET /products. It always responds 200 with a products array
// and pagination block; filter problems relax into broader results rather
// than erroring.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	criteria := criteriaFromRequest(r)
	page := pagination.FromRequest(r)

	result := h.browse.Browse(r.Context(), criteria, page)
	httputil.WriteJSON(w, http.StatusOK, result)
}

// Get handles GET /products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.browse.GetProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: p})
}

// criteriaFromRequest parses the listing query string. Unknown or malformed
// values are ignored, not rejected.
func criteriaFromRequest(r *http.Request) domain.FilterCriteria {
	q := r.URL.Query()

	return domain.FilterCriteria{
		Categories:  domain.NormalizeList(q.Get("category")),
		Brands:      domain.NormalizeList(q.Get("brand")),
		Genders:     domain.NormalizeList(q.Get("gender")),
		Bands:       domain.NormalizeList(q.Get("band")),
		CaseColors:  domain.NormalizeList(q.Get("caseColor")),
		Colors:      domain.NormalizeList(q.Get("color")),
		Price:       rangeFromQuery(q.Get("minPrice"), q.Get("maxPrice")),
		CaseSize:    caseSizeFromQuery(q.Get("minCaseSize"), q.Get("maxCaseSize")),
		InStockOnly: boolParam(q.Get("instock")),
		Clearance:   boolParam(q.Get("clearance")),
		SortBy:      q.Get("sortBy"),
		Search:      q.Get("search"),
	}
}

// rangeFromQuery builds a numeric range. Both bounds must parse for the
// range to take part in filtering.
func rangeFromQuery(minRaw, maxRaw string) domain.Range {
	lo, err1 := strconv.ParseFloat(minRaw, 64)
	hi, err2 := strconv.ParseFloat(maxRaw, 64)
	if err1 != nil || err2 != nil || lo > hi {
		return domain.Range{}
	}
	return domain.Range{Min: lo, Max: hi, Set: true}
}

// caseSizeFromQuery tolerates unit suffixes like "41mm" on either bound.
func caseSizeFromQuery(minRaw, maxRaw string) domain.Range {
	lo, ok1 := domain.ParseCaseSize(minRaw)
	hi, ok2 := domain.ParseCaseSize(maxRaw)
	if !ok1 || !ok2 || lo > hi {
		return domain.Range{}
	}
	return domain.Range{Min: lo, Max: hi, Set: true}
}

func boolParam(raw string) bool {
	v, err := strconv.ParseBool(raw)
	return err == nil && v
}
