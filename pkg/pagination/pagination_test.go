package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/products", nil)
	p := FromRequest(r)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Equal(t, 0, p.Offset)
}

func TestFromRequest_Valid(t *testing.T) {
	r := httptest.NewRequest("GET", "/products?page=3&pageSize=20", nil)
	p := FromRequest(r)

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 20, p.PageSize)
	assert.Equal(t, 40, p.Offset)
}

func TestFromRequest_MalformedFallsBack(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"non-numeric", "?page=abc&pageSize=xyz"},
		{"negative", "?page=-1&pageSize=-8"},
		{"zero", "?page=0&pageSize=0"},
		{"oversized pageSize", "?pageSize=5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/products"+tt.query, nil)
			p := FromRequest(r)
			assert.Equal(t, 1, p.Page)
			assert.Equal(t, DefaultPageSize, p.PageSize)
		})
	}
}

func TestClamp(t *testing.T) {
	p := Params{Page: -2, PageSize: 500}.Clamp()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxPageSize, p.PageSize)
	assert.Equal(t, 0, p.Offset)

	p = Params{Page: 4, PageSize: 10}.Clamp()
	assert.Equal(t, 30, p.Offset)
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		pageSize   int
		wantPages  int
	}{
		{"zero items", 0, 8, 0},
		{"exact fit", 16, 8, 2},
		{"remainder rounds up", 17, 8, 3},
		{"single item", 1, 8, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMeta(tt.total, Params{Page: 1, PageSize: tt.pageSize})
			assert.Equal(t, tt.wantPages, m.TotalPages)
			assert.Equal(t, tt.total, m.TotalCount)
		})
	}
}
