// Package calculator is the conversion and ledger engine: it parses user
// amounts, records payments and derives totals in both currencies.
package calculator

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Magnitude bounds, in decimal digits, of a value a float64 can hold.
const (
	maxIntegerDigits = 309
	minFractionDigit = -330
)

// Parse reads a user-entered decimal. Both "." and "," are accepted as the
// decimal separator. ok is false for empty or non-numeric text and for
// values too large to be finite as a float64. Values too small to be
// represented read as zero.
func Parse(text string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero, false
	}
	s = strings.Replace(s, ",", ".", 1)

	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}

	// Check the exponent before any arithmetic: rescaling 1e99999999
	// builds a hundred-million-digit integer.
	magnitude := int(v.Exponent()) + len(strings.TrimPrefix(v.Coefficient().String(), "-"))
	switch {
	case magnitude > maxIntegerDigits:
		return decimal.Zero, false
	case magnitude < minFractionDigit:
		return decimal.Zero, true
	}
	if math.IsInf(v.InexactFloat64(), 0) {
		return decimal.Zero, false
	}
	return v, true
}

// ParseOrZero is Parse with failures read as zero.
func ParseOrZero(text string) decimal.Decimal {
	v, _ := Parse(text)
	return v
}

// Round2 rounds x to two decimal places, half away from zero.
func Round2(x decimal.Decimal) decimal.Decimal {
	return x.Round(2)
}

// Format renders x with exactly two decimals.
func Format(x decimal.Decimal) string {
	return x.StringFixed(2)
}
