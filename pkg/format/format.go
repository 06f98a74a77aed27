// Package format da formato localizado (es) a cantidades y montos para reportes.
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Spanish)

// Quantity formatea un entero con separador de miles: 12500 -> "12.500".
func Quantity(n int) string {
	return printer.Sprintf("%d", n)
}

// Money formatea un monto con 2 decimales y la moneda: 12345.5, "BOB" -> "12.345,50 BOB".
func Money(amount decimal.Decimal, currency string) string {
	f, _ := amount.Round(2).Float64()
	s := printer.Sprintf("%.2f", f)
	if currency == "" {
		return s
	}
	return s + " " + currency
}
