package models

import "fmt"

// FinancialInput carries the raw figures for one calculation. It is built
// fresh per calculation (interactive prompts, CLI flags, or a saved
// history record) and discarded afterwards.
type FinancialInput struct {
	// SalesGross is the revenue for the period, VAT-exclusive. Output VAT
	// is computed on this figure as given.
	SalesGross float64

	// InputVAT is the VAT paid on purchases, offset against output VAT.
	InputVAT float64

	// VATRate is the sales VAT rate in [0, 1], e.g. 0.22.
	VATRate float64

	// Expenses is the total deductible costs, net of VAT.
	Expenses float64

	// Partners is the partner list the profit is distributed over.
	Partners []Partner
}

// Validate runs the fail-fast checks the engine requires before any tax
// math: non-negative money amounts, rate in range, and a valid partner
// list.
func (in FinancialInput) Validate() error {
	if in.SalesGross < 0 {
		return &ValidationError{Field: "sales_gross", Message: nonNegative(in.SalesGross)}
	}
	if in.InputVAT < 0 {
		return &ValidationError{Field: "input_vat", Message: nonNegative(in.InputVAT)}
	}
	if in.Expenses < 0 {
		return &ValidationError{Field: "expenses", Message: nonNegative(in.Expenses)}
	}
	if in.VATRate < 0 || in.VATRate > 1 {
		return &ValidationError{
			Field:   "vat_rate",
			Message: fmt.Sprintf("must be in [0, 1], got %v", in.VATRate),
		}
	}
	return ValidatePartners(in.Partners)
}

func nonNegative(got float64) string {
	return fmt.Sprintf("must be non-negative, got %v", got)
}
