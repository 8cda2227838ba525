// Package report renders a calculator summary as an XLSX statement.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"eurocalc/internal/calculator"
	"eurocalc/internal/domain"
)

const (
	PaymentsSheet = "Payments"
	SummarySheet  = "Summary"
)

type paymentColumn struct {
	Header func(p domain.Profile) string
	Value  func(p domain.Profile, l calculator.PaymentLine) any
}

func fixed(header string) func(domain.Profile) string {
	return func(domain.Profile) string { return header }
}

var paymentColumns = []paymentColumn{
	{Header: fixed("No"), Value: func(_ domain.Profile, l calculator.PaymentLine) any { return l.Position }},
	{Header: fixed("ID"), Value: func(_ domain.Profile, l calculator.PaymentLine) any { return l.Payment.ID }},
	{Header: fixed("Currency"), Value: func(p domain.Profile, l calculator.PaymentLine) any { return p.Unit(l.Payment.Currency).Code }},
	{Header: fixed("Amount"), Value: func(_ domain.Profile, l calculator.PaymentLine) any { return amount(l.Payment.Amount) }},
	{Header: func(p domain.Profile) string { return p.Primary.Code }, Value: func(_ domain.Profile, l calculator.PaymentLine) any { return amount(l.Primary) }},
	{Header: func(p domain.Profile) string { return p.Secondary.Code }, Value: func(_ domain.Profile, l calculator.PaymentLine) any { return amount(l.Secondary) }},
}

func amount(d decimal.Decimal) float64 {
	return calculator.Round2(d).InexactFloat64()
}

// WriteStatement writes sum as an XLSX workbook to w.
func WriteStatement(w io.Writer, sum calculator.Summary) error {
	f, err := build(sum)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write statement: %w", err)
	}
	return nil
}

// SaveStatement writes sum as an XLSX workbook to path.
func SaveStatement(path string, sum calculator.Summary) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create statement: %w", err)
	}
	if err := WriteStatement(out, sum); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func build(sum calculator.Summary) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), SummarySheet)
	if _, err := f.NewSheet(PaymentsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	money, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create style: %w", err)
	}
	warn, err := f.NewStyle(&excelize.Style{NumFmt: 2, Font: &excelize.Font{Color: "B45309", Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create style: %w", err)
	}

	writeSummary(f, sum, money, warn)
	writePayments(f, sum, money)

	return f, nil
}

func writeSummary(f *excelize.File, sum calculator.Summary, money, warn int) {
	p := sum.Profile
	_ = f.SetSheetRow(SummarySheet, "A1", &[]any{"", p.Primary.Code, p.Secondary.Code})

	rows := []struct {
		label string
		value calculator.Balance
	}{
		{"Document", sum.Document},
		{"Total paid", sum.TotalPaid},
		{"Remaining", sum.Remaining},
	}
	for i, r := range rows {
		row := i + 2
		_ = f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", row), &[]any{r.label, amount(r.value.Primary), amount(r.value.Secondary)})
		_ = f.SetCellStyle(SummarySheet, fmt.Sprintf("B%d", row), fmt.Sprintf("C%d", row), money)
	}
	if sum.Overpaid {
		_ = f.SetCellStyle(SummarySheet, "B4", "C4", warn)
	}

	rate := "invalid"
	if sum.RateValid {
		rate = sum.Rate.StringFixed(5)
	}
	_ = f.SetSheetRow(SummarySheet, "A6", &[]any{"Rate", fmt.Sprintf("1 %s = %s %s", p.Primary.Code, rate, p.Secondary.Code)})
	overpaid := "no"
	if sum.Overpaid {
		overpaid = "yes"
	}
	_ = f.SetSheetRow(SummarySheet, "A7", &[]any{"Overpaid", overpaid})
}

func writePayments(f *excelize.File, sum calculator.Summary, money int) {
	for i, col := range paymentColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(PaymentsSheet, cell, col.Header(sum.Profile))
	}

	for rowIdx, line := range sum.Payments {
		for colIdx, col := range paymentColumns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			_ = f.SetCellValue(PaymentsSheet, cell, col.Value(sum.Profile, line))
		}
	}

	if n := len(sum.Payments); n > 0 {
		_ = f.SetCellStyle(PaymentsSheet, "D2", fmt.Sprintf("F%d", n+1), money)
	}
}
