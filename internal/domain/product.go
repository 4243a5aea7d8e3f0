package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FallbackImageURL is substituted for any product image that is missing or
// not an absolute http(s) URL, so API responses never carry a broken image
// reference.
const FallbackImageURL = "https://placehold.co/600x400?text=No+Image"

// Product is a catalog item as served by the browse API. Watch-specific
// attributes (case size, band, case colour, gender) live inside
// Specifications since not every category carries them.
type Product struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Brand          string         `json:"brand"`
	Category       string         `json:"category"`
	Price          float64        `json:"price"`
	Discount       float64        `json:"discount"`
	Currency       string         `json:"currency"`
	ImageURL       string         `json:"image"`
	Stock          int            `json:"stock"`
	Rating         float64        `json:"rating"`
	Reviews        int            `json:"reviews"`
	Gender         string         `json:"gender,omitempty"`
	CaseSize       string         `json:"caseSize,omitempty"`
	Specifications map[string]any `json:"specifications,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// EffectivePrice returns the price after applying the percentage discount.
// A discount of 0 leaves the price unchanged.
func (p Product) EffectivePrice() float64 {
	return p.Price - p.Price*p.Discount/100
}

// SanitizeImage replaces a missing or non-absolute image URL with the
// fallback placeholder.
func (p *Product) SanitizeImage() {
	u := strings.TrimSpace(p.ImageURL)
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		p.ImageURL = FallbackImageURL
		return
	}
	p.ImageURL = u
}

var caseSizeDigits = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)

// ParseCaseSize extracts the numeric millimetre value from a case size
// string such as "41" or "41mm". The second return is false when no
// number is present.
func ParseCaseSize(s string) (float64, bool) {
	m := caseSizeDigits.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
