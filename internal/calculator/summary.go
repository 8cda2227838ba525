package calculator

import (
	"github.com/shopspring/decimal"

	"eurocalc/internal/domain"
	"eurocalc/internal/forex"
)

// Snapshot is an immutable copy of a session's state.
type Snapshot struct {
	Profile         domain.Profile
	DocumentAmount  decimal.Decimal
	Rate            decimal.Decimal
	RateValid       bool
	Payments        []domain.Payment
	PendingCurrency domain.Currency
	PendingAmount   string
	CanAddPayment   bool
}

// Balance is one figure expressed in both currencies.
type Balance struct {
	Primary   decimal.Decimal `json:"primary"`
	Secondary decimal.Decimal `json:"secondary"`
}

// In returns the side of b for c.
func (b Balance) In(c domain.Currency) decimal.Decimal {
	if c == domain.Secondary {
		return b.Secondary
	}
	return b.Primary
}

// PaymentLine is a recorded payment with its value in both currencies.
type PaymentLine struct {
	Position  int             `json:"position"`
	Payment   domain.Payment  `json:"payment"`
	Primary   decimal.Decimal `json:"primary"`
	Secondary decimal.Decimal `json:"secondary"`
}

// Summary holds every derived output of a session.
type Summary struct {
	Profile         domain.Profile
	Rate            decimal.Decimal
	RateValid       bool
	Document        Balance
	Payments        []PaymentLine
	TotalPaid       Balance
	Remaining       Balance
	Overpaid        bool
	CanAddPayment   bool
	PendingCurrency domain.Currency
	PendingAmount   string
	QuickAmounts    []decimal.Decimal
}

// RemainingNegative reports an overpayment as seen in currency c.
func (s Summary) RemainingNegative(c domain.Currency) bool {
	return s.Remaining.In(c).IsNegative()
}

// Summarize derives the displayed figures from snap. It has no side
// effects; call it again whenever the state changes.
//
// Totals convert every payment, sum, and round once. Document figures are
// rounded to two decimals before the remaining balance is taken, so a
// remaining balance is negative exactly when the total paid exceeds the
// document amount shown next to it.
func Summarize(snap Snapshot) Summary {
	conv := forex.NewConverterFromRate(snap.Rate)
	if !snap.RateValid {
		conv = forex.NewConverterFromRate(decimal.Zero)
	}

	doc := domain.Money{Amount: snap.DocumentAmount, Currency: snap.Profile.DocumentCurrency}
	document := Balance{
		Primary:   Round2(conv.ToPrimary(doc)),
		Secondary: Round2(conv.ToSecondary(doc)),
	}

	lines := make([]PaymentLine, 0, len(snap.Payments))
	paidPrimary := decimal.Zero
	paidSecondary := decimal.Zero
	for i, p := range snap.Payments {
		primary := conv.ToPrimary(p.Money())
		secondary := conv.ToSecondary(p.Money())
		paidPrimary = paidPrimary.Add(primary)
		paidSecondary = paidSecondary.Add(secondary)

		lines = append(lines, PaymentLine{
			Position:  i + 1,
			Payment:   p,
			Primary:   Round2(primary),
			Secondary: Round2(secondary),
		})
	}

	totalPaid := Balance{
		Primary:   Round2(paidPrimary),
		Secondary: Round2(paidSecondary),
	}
	remaining := Balance{
		Primary:   Round2(document.Primary.Sub(totalPaid.Primary)),
		Secondary: Round2(document.Secondary.Sub(totalPaid.Secondary)),
	}

	return Summary{
		Profile:         snap.Profile,
		Rate:            conv.Rate(),
		RateValid:       snap.RateValid,
		Document:        document,
		Payments:        lines,
		TotalPaid:       totalPaid,
		Remaining:       remaining,
		Overpaid:        remaining.In(snap.Profile.DocumentCurrency).IsNegative(),
		CanAddPayment:   snap.CanAddPayment,
		PendingCurrency: snap.PendingCurrency,
		PendingAmount:   snap.PendingAmount,
		QuickAmounts:    quickAmounts(snap.Profile, snap.PendingCurrency),
	}
}

func quickAmounts(profile domain.Profile, pending domain.Currency) []decimal.Decimal {
	if pending != domain.Primary {
		return nil
	}
	out := make([]decimal.Decimal, len(profile.QuickAmounts))
	copy(out, profile.QuickAmounts)
	return out
}
