package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_EffectivePrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount float64
		want     float64
	}{
		{"no discount", 100, 0, 100},
		{"ten percent", 100, 10, 90},
		{"half off", 250, 50, 125},
		{"fractional", 199.5, 25, 149.625},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Price: tt.price, Discount: tt.discount}
			assert.InDelta(t, tt.want, p.EffectivePrice(), 1e-9)
		})
	}
}

func TestProduct_SanitizeImage(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"https kept", "https://cdn.example.com/w.jpg", "https://cdn.example.com/w.jpg"},
		{"http kept", "http://cdn.example.com/w.jpg", "http://cdn.example.com/w.jpg"},
		{"empty replaced", "", FallbackImageURL},
		{"relative replaced", "/images/w.jpg", FallbackImageURL},
		{"scheme-relative replaced", "//cdn.example.com/w.jpg", FallbackImageURL},
		{"surrounding whitespace trimmed", "  https://cdn.example.com/w.jpg  ", "https://cdn.example.com/w.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{ImageURL: tt.url}
			p.SanitizeImage()
			assert.Equal(t, tt.want, p.ImageURL)
		})
	}
}

func TestParseCaseSize(t *testing.T) {
	v, ok := ParseCaseSize("41")
	assert.True(t, ok)
	assert.Equal(t, 41.0, v)

	v, ok = ParseCaseSize("41mm")
	assert.True(t, ok)
	assert.Equal(t, 41.0, v)

	v, ok = ParseCaseSize("40.5 mm")
	assert.True(t, ok)
	assert.Equal(t, 40.5, v)

	_, ok = ParseCaseSize("")
	assert.False(t, ok)

	_, ok = ParseCaseSize("large")
	assert.False(t, ok)
}
