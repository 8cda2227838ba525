package console

import (
	"fmt"
	"strings"

	"github.com/mitchellh/colorstring"
	"github.com/shopspring/decimal"

	"eurocalc/internal/calculator"
	"eurocalc/internal/domain"
)

func newColorize(enabled bool) colorstring.Colorize {
	return colorstring.Colorize{
		Colors:  colorstring.DefaultColors,
		Disable: !enabled,
		Reset:   true,
	}
}

func money(p domain.Profile, c domain.Currency, v decimal.Decimal) string {
	return fmt.Sprintf("%s %s", calculator.Format(v), p.Unit(c).Symbol)
}

func pair(p domain.Profile, b calculator.Balance, first domain.Currency) string {
	return fmt.Sprintf("%s (%s)", money(p, first, b.In(first)), money(p, first.Other(), b.In(first.Other())))
}

func placeholder(c domain.Currency) string {
	if c == domain.Primary {
		return "e.g. 20"
	}
	return "e.g. 50"
}

// Render formats a summary for the terminal.
func Render(sum calculator.Summary, color colorstring.Colorize) string {
	p := sum.Profile
	doc := p.DocumentCurrency
	var b strings.Builder

	fmt.Fprintf(&b, "Document:    %s\n", pair(p, sum.Document, doc))

	switch {
	case !sum.RateValid:
		fmt.Fprintln(&b, color.Color("[red]Rate:        invalid, enter a rate greater than zero"))
	case p.RateEditable:
		fmt.Fprintf(&b, "Rate:        1 %s = %s %s (editable)\n", p.Primary.Code, sum.Rate.StringFixed(5), p.Secondary.Symbol)
	default:
		fmt.Fprintf(&b, "Rate:        1 %s = %s %s (fixed)\n", p.Primary.Code, sum.Rate.StringFixed(5), p.Secondary.Symbol)
	}

	if len(sum.Payments) > 0 {
		fmt.Fprintln(&b, "Payments:")
		for _, l := range sum.Payments {
			fmt.Fprintf(&b, "  %d. %s %s  #%d  = %s · %s\n",
				l.Position,
				calculator.Format(l.Payment.Amount),
				p.Unit(l.Payment.Currency).Code,
				l.Payment.ID,
				money(p, domain.Primary, l.Primary),
				money(p, domain.Secondary, l.Secondary),
			)
		}
	}

	fmt.Fprintf(&b, "Total paid:  %s\n", pair(p, sum.TotalPaid, doc))

	remaining := fmt.Sprintf("Remaining:   %s", pair(p, sum.Remaining, doc))
	if sum.Overpaid {
		fmt.Fprintln(&b, color.Color("[yellow]"+remaining))
		fmt.Fprintln(&b, color.Color("[yellow]! Paid more than the document amount (change / overpayment)."))
	} else {
		fmt.Fprintln(&b, color.Color("[green]"+remaining))
	}

	pending := sum.PendingAmount
	if pending == "" {
		pending = placeholder(sum.PendingCurrency)
	}
	state := "ready"
	if !sum.CanAddPayment {
		state = "disabled"
	}
	fmt.Fprintf(&b, "Next payment: %s %s (add %s)\n", p.Unit(sum.PendingCurrency).Code, pending, state)

	if len(sum.QuickAmounts) > 0 {
		quick := make([]string, 0, len(sum.QuickAmounts))
		for _, q := range sum.QuickAmounts {
			quick = append(quick, q.String()+" "+p.Primary.Symbol)
		}
		fmt.Fprintf(&b, "Quick:       %s\n", strings.Join(quick, " | "))
	}

	return b.String()
}
