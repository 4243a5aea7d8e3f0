package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFound(t *testing.T) {
	err := NotFound("product", "w-1")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Contains(t, err.Error(), "w-1")
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error", InvalidInput("bad range"), http.StatusBadRequest},
		{"wrapped sentinel", fmt.Errorf("lookup: %w", ErrNotFound), http.StatusNotFound},
		{"unavailable", Unavailable("circuit open"), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestWrap(t *testing.T) {
	base := errors.New("timeout")
	err := Wrap(base, "fetch products")

	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), "fetch products")
}

func TestAppError_Unwrap(t *testing.T) {
	err := Internal(errors.New("pool closed"))
	assert.Contains(t, err.Error(), "INTERNAL_ERROR")
	assert.EqualError(t, errors.Unwrap(err), "pool closed")
}
