// Package domain re-exports core domain types so internal code can import
// `eurocalc/internal/domain` while using definitions from `eurocalc/pkg/domain`.
package domain

import pkg "eurocalc/pkg/domain"

// Currency is one side of the currency pair.
type Currency = pkg.Currency

// Unit carries a currency's code and symbol.
type Unit = pkg.Unit

// Money represents a monetary amount.
type Money = pkg.Money

// Payment represents a recorded payment.
type Payment = pkg.Payment

// PaymentInput is a payment awaiting validation.
type PaymentInput = pkg.PaymentInput

// Profile is a calculator configuration profile.
type Profile = pkg.Profile

// Re-exported currencies.
const (
	Primary   = pkg.Primary
	Secondary = pkg.Secondary
)

// Re-exported profile names.
const (
	ProfileFixed    = pkg.ProfileFixed
	ProfileEditable = pkg.ProfileEditable
)

// Re-exported units and defaults.
var (
	EUR         = pkg.EUR
	BGN         = pkg.BGN
	DefaultRate = pkg.DefaultRate
)

// Re-exported profile constructors.
var (
	FixedRateProfile    = pkg.FixedRateProfile
	EditableRateProfile = pkg.EditableRateProfile
	DefaultQuickAmounts = pkg.DefaultQuickAmounts
)
