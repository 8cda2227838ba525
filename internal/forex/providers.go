package forex

import (
	"github.com/shopspring/decimal"
)

// RateProvider supplies the conversion rate of the currency pair: units of
// the secondary currency per one unit of the primary currency.
type RateProvider interface {
	Name() string
	// Rate returns the current rate and whether it may be used for
	// conversion. An unusable rate must not be divided by.
	Rate() (decimal.Decimal, bool)
	Editable() bool
}

// FixedRateProvider serves a constant rate.
type FixedRateProvider struct {
	rate decimal.Decimal
}

func NewFixedRateProvider(rate decimal.Decimal) *FixedRateProvider {
	return &FixedRateProvider{rate: rate}
}

func (p *FixedRateProvider) Name() string {
	return "FixedProvider"
}

func (p *FixedRateProvider) Rate() (decimal.Decimal, bool) {
	return p.rate, p.rate.IsPositive()
}

func (p *FixedRateProvider) Editable() bool {
	return false
}

// ManualRateProvider serves a rate entered by the user. Zero, negative and
// unparseable input all leave the provider invalid until corrected.
type ManualRateProvider struct {
	rate decimal.Decimal
}

func NewManualRateProvider(initial decimal.Decimal) *ManualRateProvider {
	return &ManualRateProvider{rate: initial}
}

func (p *ManualRateProvider) Name() string {
	return "ManualProvider"
}

func (p *ManualRateProvider) Rate() (decimal.Decimal, bool) {
	return p.rate, p.rate.IsPositive()
}

func (p *ManualRateProvider) Editable() bool {
	return true
}

// Set replaces the rate. Callers pass decimal.Zero for input that failed
// to parse.
func (p *ManualRateProvider) Set(rate decimal.Decimal) {
	p.rate = rate
}
