package http

import (
	"log/slog"
	"net/http"

	"github.com/dhyabi2/luxury-module-creator-sub000/internal/service"
	"github.com/dhyabi2/luxury-module-creator-sub000/pkg/httputil"
)

// FilterHandler serves the filter metadata endpoint.
type FilterHandler struct {
	facets *service.FacetService
	logger *slog.Logger
}

// NewFilterHandler creates a new filter handler.
func NewFilterHandler(facets *service.FacetService, logger *slog.Logger) *FilterHandler {
	return &FilterHandler{facets: facets, logger: logger}
}

// Get handles GET /filters. The facet service falls back to a static default
// set internally, so this endpoint always responds 200.
func (h *FilterHandler) Get(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.facets.GetFacets(r.Context()))
}
