package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhyabi2/luxury-module-creator-sub000/internal/domain"
	"github.com/dhyabi2/luxury-module-creator-sub000/internal/repository"
	"github.com/dhyabi2/luxury-module-creator-sub000/internal/service"
	apperrors "github.com/dhyabi2/luxury-module-creator-sub000/pkg/errors"
	"github.com/dhyabi2/luxury-module-creator-sub000/pkg/health"
)

// memStore serves a fixed product list, filtered only by counting; enough to
// drive the handlers end to end.
type memStore struct {
	products []domain.Product
	getErr   error
	facets   domain.FacetSet
	facetErr error
}

func (s *memStore) Count(context.Context, []repository.PredicateGroup) (int, error) {
	return len(s.products), nil
}

func (s *memStore) Fetch(_ context.Context, _ []repository.PredicateGroup, _ repository.Sort, limit, offset int) ([]domain.Product, error) {
	if offset >= len(s.products) {
		return []domain.Product{}, nil
	}
	end := offset + limit
	if end > len(s.products) {
		end = len(s.products)
	}
	return append([]domain.Product{}, s.products[offset:end]...), nil
}

func (s *memStore) GetByID(_ context.Context, id string) (domain.Product, error) {
	if s.getErr != nil {
		return domain.Product{}, s.getErr
	}
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, apperrors.NotFound("product", id)
}

func (s *memStore) FacetCounts(context.Context) (domain.FacetSet, error) {
	return s.facets, s.facetErr
}

func (s *memStore) Ping(context.Context) error { return nil }

func newTestRouter(store repository.CatalogStore) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewRouter(RouterConfig{
		Products:       NewProductHandler(service.NewBrowseService(store), logger),
		Filters:        NewFilterHandler(service.NewFacetService(store, nil, time.Second), logger),
		Health:         health.NewHandler(),
		Logger:         logger,
		ServiceName:    "catalog-test",
		Environment:    "development",
		AllowedOrigins: []string{"*"},
	})
}

func doGet(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func testProducts(n int) []domain.Product {
	out := make([]domain.Product, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Product{
			ID:       string(rune('a' + i)),
			Name:     "Watch",
			Brand:    "Tissot",
			Category: "Watches",
			Price:    100 + float64(i),
			ImageURL: "https://cdn.example.com/w.jpg",
			Stock:    3,
		})
	}
	return out
}

func TestListProducts_OK(t *testing.T) {
	router := newTestRouter(&memStore{products: testProducts(3)})

	rec := doGet(t, router, "/products?category=watches&sortBy=newest")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Products   []domain.Product `json:"products"`
		Pagination struct {
			TotalCount  int `json:"totalCount"`
			TotalPages  int `json:"totalPages"`
			CurrentPage int `json:"currentPage"`
			PageSize    int `json:"pageSize"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Products, 3)
	assert.Equal(t, 3, body.Pagination.TotalCount)
	assert.Equal(t, 1, body.Pagination.TotalPages)
	assert.Equal(t, 8, body.Pagination.PageSize)
}

func TestListProducts_DefaultPageSize(t *testing.T) {
	router := newTestRouter(&memStore{products: testProducts(12)})

	rec := doGet(t, router, "/products")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Products   []domain.Product `json:"products"`
		Pagination struct {
			TotalPages int `json:"totalPages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Products, 8)
	assert.Equal(t, 2, body.Pagination.TotalPages)
}

func TestListProducts_MalformedParamsStillOK(t *testing.T) {
	router := newTestRouter(&memStore{products: testProducts(2)})

	rec := doGet(t, router, "/products?page=abc&pageSize=-5&minPrice=low&maxPrice=high&sortBy=unknown")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Products []domain.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Products, 2)
}

func TestListProducts_EmptyCatalog(t *testing.T) {
	router := newTestRouter(&memStore{})

	rec := doGet(t, router, "/products")
	require.Equal(t, http.StatusOK, rec.Code)

	// products must be a JSON array even when empty, never null.
	assert.Contains(t, rec.Body.String(), `"products":[]`)
}

func TestGetProduct_OK(t *testing.T) {
	products := testProducts(1)
	router := newTestRouter(&memStore{products: products})

	rec := doGet(t, router, "/products/"+products[0].ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), products[0].Name)
}

func TestGetProduct_NotFound(t *testing.T) {
	router := newTestRouter(&memStore{products: testProducts(1)})

	rec := doGet(t, router, "/products/missing")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestVersionedRoutes(t *testing.T) {
	router := newTestRouter(&memStore{products: testProducts(1)})

	rec := doGet(t, router, "/api/v1/products")
	assert.Equal(t, http.StatusOK, rec.Code)
}
