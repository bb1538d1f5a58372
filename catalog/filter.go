// Package catalog derives the visible product list from the cached catalogue
// and a set of filter criteria.
package catalog

import (
	"math"
	"sort"
	"strings"

	"github.com/princinho/boutique/models"
)

const (
	// All is the sentinel meaning "no constraint on this dimension".
	All = string(models.CategoryAll)

	MinPrice = 0
	MaxPrice = 10000
)

type Criteria struct {
	Category string  `json:"category"`
	MaxPrice float64 `json:"maxPrice"`
	Size     string  `json:"size"`
	Color    string  `json:"color"`
	Search   string  `json:"search"`
}

// DefaultCriteria matches every product.
func DefaultCriteria() Criteria {
	return Criteria{
		Category: All,
		MaxPrice: MaxPrice,
		Size:     All,
		Color:    All,
	}
}

// Normalize fills empty dimensions with All, clamps the price ceiling and
// brings size and color to token form. Search is kept verbatim.
func (c Criteria) Normalize() Criteria {
	if strings.TrimSpace(c.Category) == "" {
		c.Category = All
	}
	if math.IsNaN(c.MaxPrice) || c.MaxPrice < MinPrice {
		c.MaxPrice = MinPrice
	}
	if c.MaxPrice > MaxPrice {
		c.MaxPrice = MaxPrice
	}
	c.Size = normalizeDimension(c.Size)
	c.Color = normalizeDimension(c.Color)
	return c
}

func normalizeDimension(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, All) {
		return All
	}
	return Token(v)
}

// Token brings one size or color value to the form ParseTokens yields.
func Token(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

// ParseTokens splits a comma-delimited size or color field into trimmed,
// uppercased tokens. Empty tokens are dropped.
func ParseTokens(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = Token(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func hasToken(raw, token string) bool {
	for _, t := range ParseTokens(raw) {
		if t == token {
			return true
		}
	}
	return false
}

// Match reports whether p satisfies every constraint of c. c must be normalized.
func (c Criteria) Match(p models.Product) bool {
	if c.Category != All && string(p.Category) != c.Category {
		return false
	}
	if p.Price > c.MaxPrice {
		return false
	}
	if c.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(c.Search)) {
		return false
	}
	if c.Size != All && !hasToken(p.Sizes, c.Size) {
		return false
	}
	if c.Color != All && !hasToken(p.Colors, c.Color) {
		return false
	}
	return true
}

// Filter returns the products matching criteria, in input order.
func Filter(products []models.Product, criteria Criteria) []models.Product {
	c := criteria.Normalize()
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if c.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// SortByRecency orders products newest first. Ties keep their input order.
func SortByRecency(products []models.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
}
