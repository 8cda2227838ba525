// Package domain defines the core entities of the EUR/BGN payment calculator.
package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is one side of the calculator's currency pair. Only Primary
// and Secondary exist; anything else fails Valid.
type Currency int

const (
	Primary Currency = iota + 1
	Secondary
)

// Valid reports whether c is one of the two known currencies.
func (c Currency) Valid() bool {
	return c == Primary || c == Secondary
}

// Other returns the opposite side of the pair.
func (c Currency) Other() Currency {
	if c == Primary {
		return Secondary
	}
	return Primary
}

func (c Currency) String() string {
	switch c {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	default:
		return fmt.Sprintf("currency(%d)", int(c))
	}
}

// DefaultRate is the fixed EUR/BGN conversion rate: 1 EUR = 1.95583 BGN.
var DefaultRate = decimal.RequireFromString("1.95583")

// Unit carries the display metadata of a currency.
type Unit struct {
	Code   string `json:"code" validate:"required"`
	Symbol string `json:"symbol"`
}

// Money represents a monetary amount with currency
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency Currency        `json:"currency"`
}

// Payment is a single recorded payment. Payments are immutable once
// created; ID is unique within a ledger and never reused.
type Payment struct {
	ID       int64           `json:"id"`
	Currency Currency        `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

// Money returns the payment as a Money value.
func (p Payment) Money() Money {
	return Money{Amount: p.Amount, Currency: p.Currency}
}

// PaymentInput is the validated shape of a payment before it enters a ledger.
type PaymentInput struct {
	Currency Currency        `json:"currency" validate:"currency"`
	Amount   decimal.Decimal `json:"amount" validate:"gt=0"`
}

// Profile names
const (
	ProfileFixed    = "fixed"
	ProfileEditable = "editable"
)

// Profile fixes which currency the document is denominated in, whether the
// rate may be edited and which pending currency a reset returns to.
type Profile struct {
	Name                   string
	Primary                Unit
	Secondary              Unit
	DocumentCurrency       Currency
	RateEditable           bool
	DefaultRate            decimal.Decimal
	DefaultPendingCurrency Currency
	QuickAmounts           []decimal.Decimal
}

// Unit returns the display metadata for c.
func (p Profile) Unit(c Currency) Unit {
	if c == Secondary {
		return p.Secondary
	}
	return p.Primary
}

// CurrencyByCode resolves an ISO code (case-insensitive) to a Currency.
func (p Profile) CurrencyByCode(code string) (Currency, bool) {
	code = strings.TrimSpace(code)
	switch {
	case strings.EqualFold(code, p.Primary.Code):
		return Primary, true
	case strings.EqualFold(code, p.Secondary.Code):
		return Secondary, true
	}
	return 0, false
}

// DefaultQuickAmounts are the preset payment shortcuts offered for the
// primary currency.
func DefaultQuickAmounts() []decimal.Decimal {
	return []decimal.Decimal{
		decimal.NewFromInt(5),
		decimal.NewFromInt(10),
		decimal.NewFromInt(20),
		decimal.NewFromInt(50),
		decimal.NewFromInt(100),
	}
}

// FixedRateProfile denominates the document in the primary currency and
// never lets the rate change.
func FixedRateProfile(primary, secondary Unit, rate decimal.Decimal) Profile {
	return Profile{
		Name:                   ProfileFixed,
		Primary:                primary,
		Secondary:              secondary,
		DocumentCurrency:       Primary,
		RateEditable:           false,
		DefaultRate:            rate,
		DefaultPendingCurrency: Primary,
		QuickAmounts:           DefaultQuickAmounts(),
	}
}

// EditableRateProfile denominates the document in the secondary currency
// and starts from rate, which the user may then edit.
func EditableRateProfile(primary, secondary Unit, rate decimal.Decimal) Profile {
	return Profile{
		Name:                   ProfileEditable,
		Primary:                primary,
		Secondary:              secondary,
		DocumentCurrency:       Secondary,
		RateEditable:           true,
		DefaultRate:            rate,
		DefaultPendingCurrency: Secondary,
		QuickAmounts:           DefaultQuickAmounts(),
	}
}

// EUR and BGN are the default units.
var (
	EUR = Unit{Code: "EUR", Symbol: "€"}
	BGN = Unit{Code: "BGN", Symbol: "лв"}
)
