package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultPageSize is applied when pageSize is absent or unparseable.
	DefaultPageSize = 8
	// MaxPageSize caps a caller-supplied pageSize.
	MaxPageSize = 100
)

// Params holds pagination parameters extracted from query strings.
type Params struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Offset   int `json:"-"`
}

// DefaultParams returns the default pagination parameters.
func DefaultParams() Params {
	return Params{
		Page:     1,
		PageSize: DefaultPageSize,
		Offset:   0,
	}
}

// FromRequest extracts pagination parameters from an HTTP request. Malformed
// or out-of-range values fall back to the defaults; they are never an error.
func FromRequest(r *http.Request) Params {
	p := DefaultParams()

	if page := r.URL.Query().Get("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 0 {
			p.Page = v
		}
	}

	if size := r.URL.Query().Get("pageSize"); size != "" {
		if v, err := strconv.Atoi(size); err == nil && v > 0 && v <= MaxPageSize {
			p.PageSize = v
		}
	}

	p.Offset = (p.Page - 1) * p.PageSize
	return p
}

// Clamp normalizes the parameters: page ≥ 1, pageSize in [1, MaxPageSize],
// offset recomputed. It returns the normalized copy.
func (p Params) Clamp() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	p.Offset = (p.Page - 1) * p.PageSize
	return p
}

// Meta describes one page of a result set.
type Meta struct {
	TotalCount  int `json:"totalCount"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
}

// NewMeta computes page metadata for the given total count.
// TotalPages is ceil(totalCount/pageSize) and 0 when the count is 0.
func NewMeta(totalCount int, params Params) Meta {
	totalPages := totalCount / params.PageSize
	if totalCount%params.PageSize > 0 {
		totalPages++
	}
	return Meta{
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		CurrentPage: params.Page,
		PageSize:    params.PageSize,
	}
}
