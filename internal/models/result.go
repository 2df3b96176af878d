package models

// PartnerTax is one partner's slice of a TaxResult.
type PartnerTax struct {
	// ProfitShare is the partner's share of the taxable profit. Negative
	// when the company made a loss.
	ProfitShare float64

	// IRPEFDue is the progressive income tax on the partner's share.
	// Zero when the share is not positive.
	IRPEFDue float64

	// INPSDue is the social-security contribution. Always zero for
	// accomandante partners.
	INPSDue float64

	// NetIncome is ProfitShare minus IRPEFDue and INPSDue.
	NetIncome float64
}

// TaxResult is the structured output of one engine run. It is immutable
// once produced: either rendered and discarded, or appended to history.
type TaxResult struct {
	// Year is the fiscal year whose rule tables produced this result.
	Year int

	// VATDebit is the VAT collected on sales (SalesGross × VATRate).
	VATDebit float64

	// VATCredit is the VAT paid on purchases.
	VATCredit float64

	// VATBalance is VATDebit − VATCredit. Positive means VAT owed to the
	// tax authority, negative means credit carried forward.
	VATBalance float64

	// TaxableProfit is SalesGross − Expenses. Reported transparently when
	// negative rather than clamped.
	TaxableProfit float64

	// PerPartner maps partner name to that partner's figures.
	PerPartner map[string]PartnerTax

	// TotalIRPEF and TotalINPS aggregate the per-partner amounts.
	TotalIRPEF float64
	TotalINPS  float64

	// NetProfit is TaxableProfit minus all IRPEF and INPS due.
	NetProfit float64

	// EffectiveRate is (TotalIRPEF + TotalINPS) / TaxableProfit when the
	// profit is positive, 0 otherwise.
	EffectiveRate float64
}

// CalculationRecord is a TaxResult together with the input snapshot that
// produced it, as stored in history.
type CalculationRecord struct {
	// ID is the unique identifier for the record (UUID format).
	ID string

	// Name is the user-chosen label for this calculation.
	Name string

	// CompanyID references the company the calculation was run for.
	CompanyID string

	// CompanyName is denormalized for history listings.
	CompanyName string

	// Input is the snapshot of the figures the engine was given.
	Input FinancialInput

	// Result is the engine output.
	Result TaxResult

	// CreatedAt is the Unix timestamp when the record was saved.
	CreatedAt int64
}
