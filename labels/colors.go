// Package labels maps catalogue color names to display values.
package labels

import "strings"

// Fallback is shown for colors the table does not know.
const Fallback = "#CCCCCC"

var colors = map[string]string{
	"BLACK":  "#000000",
	"WHITE":  "#FFFFFF",
	"RED":    "#D32F2F",
	"BLUE":   "#1976D2",
	"NAVY":   "#1A237E",
	"GREEN":  "#388E3C",
	"YELLOW": "#FBC02D",
	"ORANGE": "#F57C00",
	"PINK":   "#EC407A",
	"PURPLE": "#7B1FA2",
	"BROWN":  "#6D4C41",
	"BEIGE":  "#D7CCC8",
	"GREY":   "#9E9E9E",
	"GRAY":   "#9E9E9E",
	"KHAKI":  "#BDB76B",
	"GOLD":   "#C9A227",
	"SILVER": "#BDBDBD",
	"CREAM":  "#FFFDD0",
	"NOIR":   "#000000",
	"BLANC":  "#FFFFFF",
	"ROUGE":  "#D32F2F",
	"BLEU":   "#1976D2",
	"VERT":   "#388E3C",
	"JAUNE":  "#FBC02D",
	"ROSE":   "#EC407A",
	"VIOLET": "#7B1FA2",
	"MARRON": "#6D4C41",
	"GRIS":   "#9E9E9E",
}

// Lookup returns the display value for a color token and whether it was known.
func Lookup(name string) (string, bool) {
	v, ok := colors[strings.ToUpper(strings.TrimSpace(name))]
	return v, ok
}

// Display returns the display value for name, or Fallback.
func Display(name string) string {
	if v, ok := Lookup(name); ok {
		return v
	}
	return Fallback
}

// Swatches maps every token to its display value.
func Swatches(tokens []string) map[string]string {
	out := make(map[string]string, len(tokens))
	for _, t := range tokens {
		out[t] = Display(t)
	}
	return out
}
