package catalog

import (
	"sort"

	"github.com/princinho/boutique/models"
)

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Facets lists the values a storefront offers in its filter controls.
type Facets struct {
	Categories []string   `json:"categories"`
	Sizes      []string   `json:"sizes"`
	Colors     []string   `json:"colors"`
	PriceRange PriceRange `json:"priceRange"`
}

func BuildFacets(products []models.Product) Facets {
	f := Facets{
		Categories: []string{All},
		Sizes:      DistinctSizes(products),
		Colors:     DistinctColors(products),
	}

	seen := map[models.Category]bool{}
	for i, p := range products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
		}
		if i == 0 || p.Price < f.PriceRange.Min {
			f.PriceRange.Min = p.Price
		}
		if p.Price > f.PriceRange.Max {
			f.PriceRange.Max = p.Price
		}
	}
	// known categories first, in their declared order, then anything else
	for _, c := range models.Categories {
		if seen[c] {
			f.Categories = append(f.Categories, string(c))
			delete(seen, c)
		}
	}
	rest := make([]string, 0, len(seen))
	for c := range seen {
		rest = append(rest, string(c))
	}
	sort.Strings(rest)
	f.Categories = append(f.Categories, rest...)
	return f
}

func DistinctSizes(products []models.Product) []string {
	return distinct(products, func(p models.Product) string { return p.Sizes })
}

func DistinctColors(products []models.Product) []string {
	return distinct(products, func(p models.Product) string { return p.Colors })
}

// distinct is the set union of all parsed tokens plus All, sorted.
func distinct(products []models.Product, field func(models.Product) string) []string {
	set := map[string]struct{}{All: {}}
	for _, p := range products {
		for _, t := range ParseTokens(field(p)) {
			set[t] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
