// Package i18n holds the storefront string table for the two supported
// languages and formats amounts for display.
package i18n

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Lang string

const (
	English Lang = "en"
	French  Lang = "fr"
)

const DefaultCurrency = "MAD"

var supported = []language.Tag{language.French, language.English}

var matcher = language.NewMatcher(supported)

var table = map[Lang]map[string]string{
	English: {
		"cart.added":           "Added to cart",
		"cart.max_stock":       "Maximum stock reached",
		"cart.max_stock_limit": "Maximum stock limit reached",
		"cart.removed":         "Removed from cart",
		"cart.empty":           "Your cart is empty",
		"wishlist.added":       "Added to wishlist",
		"wishlist.removed":     "Removed from wishlist",
		"store.closed":         "The store is currently closed",
		"order.title":          "New order",
		"order.size":           "Size",
		"order.color":          "Color",
		"order.quantity":       "Qty",
		"order.total":          "Total",
		"order.image":          "Image",
		"share.price":          "Price",
		"filter.all":           "All",
		"product.not_found":    "Product not found",
	},
	French: {
		"cart.added":           "Ajouté au panier",
		"cart.max_stock":       "Stock maximum atteint",
		"cart.max_stock_limit": "Limite de stock maximale atteinte",
		"cart.removed":         "Retiré du panier",
		"cart.empty":           "Votre panier est vide",
		"wishlist.added":       "Ajouté aux favoris",
		"wishlist.removed":     "Retiré des favoris",
		"store.closed":         "La boutique est actuellement fermée",
		"order.title":          "Nouvelle commande",
		"order.size":           "Taille",
		"order.color":          "Couleur",
		"order.quantity":       "Qté",
		"order.total":          "Total",
		"order.image":          "Image",
		"share.price":          "Prix",
		"filter.all":           "Tous",
		"product.not_found":    "Produit introuvable",
	},
}

// Parse returns the supported language closest to v (a stored preference or
// an Accept-Language header). It falls back to def.
func Parse(v string, def Lang) Lang {
	if v == "" {
		return def
	}
	tags, _, err := language.ParseAcceptLanguage(v)
	if err != nil || len(tags) == 0 {
		return def
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return def
	}
	return langOf(supported[idx])
}

func langOf(tag language.Tag) Lang {
	base, _ := tag.Base()
	return Lang(base.String())
}

func (l Lang) Valid() bool {
	_, ok := table[l]
	return ok
}

func (l Lang) tag() language.Tag {
	if l == French {
		return language.French
	}
	return language.English
}

// T returns the string for key, falling back to English then to the key.
func T(lang Lang, key string) string {
	if s, ok := table[lang][key]; ok {
		return s
	}
	if s, ok := table[English][key]; ok {
		return s
	}
	return key
}

// Table returns a copy of the strings for lang.
func Table(lang Lang) map[string]string {
	src, ok := table[lang]
	if !ok {
		src = table[English]
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// Money formats amount with two decimals in the conventions of lang.
func Money(lang Lang, amount decimal.Decimal, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	p := message.NewPrinter(lang.tag())
	return p.Sprintf("%.2f %s", amount.Round(2).InexactFloat64(), currency)
}
