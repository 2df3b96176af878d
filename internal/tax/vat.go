package tax

// VATSettlement is the VAT side of a calculation.
type VATSettlement struct {
	Debit   float64 // VAT collected on sales
	Credit  float64 // VAT paid on purchases
	Balance float64 // Debit − Credit; negative means credit carried forward
}

// SettleVAT computes the VAT settlement. Sales are taken as VAT-exclusive
// revenue: the debit is salesGross × vatRate with no stripping of
// VAT-inclusive pricing. A negative balance is a credit carried forward,
// not a cash refund.
func SettleVAT(salesGross, vatRate, inputVAT float64) VATSettlement {
	debit := salesGross * vatRate
	return VATSettlement{
		Debit:   debit,
		Credit:  inputVAT,
		Balance: debit - inputVAT,
	}
}
