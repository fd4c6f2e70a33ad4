package metrics

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const vndSign = "₫"

var vnPrinter = message.NewPrinter(language.Vietnamese)

// FormatLargeNumber abrège les millions en "M" et les milliers en "K" avec
// une décimale ; en dessous, la valeur entière.
func FormatLargeNumber(v float64) string {
	v = finite(v)
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	default:
		r := math.Round(v)
		if r == 0 {
			r = 0 // pas de "-0"
		}
		return strconv.FormatFloat(r, 'f', 0, 64)
	}
}

// FormatCurrencyVND : montant entier en dong avec séparateurs vietnamiens,
// ex. "1.250.000 ₫".
func FormatCurrencyVND(v float64) string {
	return vnPrinter.Sprintf("%d %s", toInt64(math.Round(finite(v))), vndSign)
}

// FormatCompactVND : forme abrégée des cartes du dashboard.
func FormatCompactVND(v float64) string {
	return FormatLargeNumber(v) + " " + vndSign
}
