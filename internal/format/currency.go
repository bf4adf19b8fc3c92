// Package format renders money, dates and measurements for display in pt-BR.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mmynk/serralheria/internal/models"
)

// CurrencyPrefix is printed before every amount. It is plain text, not a
// locale currency symbol, so no formatting layer adds a second symbol.
const CurrencyPrefix = "R$ "

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Number formats amount with pt-BR grouping and exactly two decimals (1.234,50).
// Amounts are rounded half away from zero at the cent.
func Number(amount float64) string {
	rounded := decimal.NewFromFloat(amount).Round(2)
	return printer.Sprintf("%.2f", rounded.InexactFloat64())
}

// Currency formats amount as "R$ 1.234,50". Negative amounts read "-R$ 10,00".
func Currency(amount float64) string {
	s := Number(amount)
	if strings.HasPrefix(s, "-") {
		return "-" + CurrencyPrefix + s[1:]
	}
	return CurrencyPrefix + s
}

// Measure formats a measurement in meters ("1,20 m"), or "-" when blank.
func Measure(n models.Number) string {
	if !n.IsSet() {
		return "-"
	}
	return Number(n.Value()) + " m"
}

// Quantity formats a count without decimals when whole, otherwise with two.
func Quantity(n models.Number) string {
	v := n.Value()
	if decimal.NewFromFloat(v).IsInteger() {
		return printer.Sprintf("%.0f", v)
	}
	return Number(v)
}
