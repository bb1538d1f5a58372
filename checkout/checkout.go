// Package checkout builds the order summary handed to the messaging app and
// the share payload for a single product.
package checkout

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/princinho/boutique/cart"
	"github.com/princinho/boutique/i18n"
	"github.com/princinho/boutique/models"
	"github.com/shopspring/decimal"
)

const deepLinkBase = "https://wa.me/"

// Summary renders the order as multi-line text: one block per line, then the
// grand total.
func Summary(lines []models.CartLine, lang i18n.Lang, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", i18n.T(lang, "order.title"))

	for i, l := range lines {
		fmt.Fprintf(&b, "%d. %s\n", i+1, l.Name)

		var variant []string
		if l.Size != "" {
			variant = append(variant, fmt.Sprintf("%s: %s", i18n.T(lang, "order.size"), l.Size))
		}
		if l.Color != "" {
			variant = append(variant, fmt.Sprintf("%s: %s", i18n.T(lang, "order.color"), l.Color))
		}
		if len(variant) > 0 {
			fmt.Fprintf(&b, "   %s\n", strings.Join(variant, " | "))
		}

		fmt.Fprintf(&b, "   %s: %d x %s = %s\n",
			i18n.T(lang, "order.quantity"),
			l.Quantity,
			i18n.Money(lang, decimal.NewFromFloat(l.Price), currency),
			i18n.Money(lang, cart.LineTotal(l), currency),
		)
		if l.Image != "" {
			fmt.Fprintf(&b, "   %s: %s\n", i18n.T(lang, "order.image"), l.Image)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%s: %s", i18n.T(lang, "order.total"), i18n.Money(lang, cart.Total(lines), currency))
	return b.String()
}

// Link builds the messaging deep link. Without a phone number the link has no
// target and the user picks the recipient.
func Link(phone, message string) string {
	return deepLinkBase + digits(phone) + "?text=" + encode(message)
}

// encode escapes like encodeURIComponent: spaces become %20, not +.
func encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func digits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Share is the payload for the platform share sheet; Text is the clipboard
// fallback.
type Share struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

func ShareProduct(p models.Product, productURL string, lang i18n.Lang, currency string) Share {
	price := i18n.Money(lang, decimal.NewFromFloat(p.Price), currency)
	return Share{
		Title: p.Name,
		Text:  fmt.Sprintf("%s - %s: %s\n%s", p.Name, i18n.T(lang, "share.price"), price, productURL),
		URL:   productURL,
	}
}
