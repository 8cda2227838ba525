// Package forex implements the conversion primitives of the currency pair.
package forex

import (
	"github.com/shopspring/decimal"

	"eurocalc/internal/domain"
)

// Converter converts amounts between the primary and secondary currency
// at a single rate. A Converter built from an unusable rate holds zero and
// every division short-circuits to zero.
type Converter struct {
	rate decimal.Decimal
}

// NewConverter captures the provider's current rate.
func NewConverter(p RateProvider) Converter {
	rate, ok := p.Rate()
	if !ok {
		rate = decimal.Zero
	}
	return Converter{rate: rate}
}

// NewConverterFromRate builds a Converter for a known rate.
func NewConverterFromRate(rate decimal.Decimal) Converter {
	if !rate.IsPositive() {
		rate = decimal.Zero
	}
	return Converter{rate: rate}
}

// Rate returns the effective rate; zero when the source rate was unusable.
func (c Converter) Rate() decimal.Decimal {
	return c.rate
}

// Valid reports whether the converter holds a usable rate.
func (c Converter) Valid() bool {
	return c.rate.IsPositive()
}

// ToPrimary returns m expressed in the primary currency.
func (c Converter) ToPrimary(m domain.Money) decimal.Decimal {
	if m.Currency == domain.Primary {
		return m.Amount
	}
	if c.rate.IsZero() {
		return decimal.Zero
	}
	return m.Amount.Div(c.rate)
}

// ToSecondary returns m expressed in the secondary currency.
func (c Converter) ToSecondary(m domain.Money) decimal.Decimal {
	if m.Currency == domain.Secondary {
		return m.Amount
	}
	return m.Amount.Mul(c.rate)
}

// To returns m expressed in target.
func (c Converter) To(target domain.Currency, m domain.Money) decimal.Decimal {
	if target == domain.Secondary {
		return c.ToSecondary(m)
	}
	return c.ToPrimary(m)
}
