// Package render writes tax results as human-readable text. Both front
// ends use it; the engine itself defines only the structured result.
package render

import (
	"fmt"
	"io"

	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/models"
)

// Result writes a full calculation report. Partners appear in input
// order; order never affects the figures.
func Result(w io.Writer, in models.FinancialInput, res *models.TaxResult) {
	fmt.Fprintf(w, "\n--- S.a.s. tax calculation (fiscal year %d) ---\n", res.Year)
	fmt.Fprintf(w, "VAT debit (on sales):    %10.2f €\n", res.VATDebit)
	fmt.Fprintf(w, "VAT credit (purchases):  %10.2f €\n", res.VATCredit)
	if res.VATBalance >= 0 {
		fmt.Fprintf(w, "VAT balance due:         %10.2f €\n", res.VATBalance)
	} else {
		fmt.Fprintf(w, "VAT credit carried fwd:  %10.2f €\n", -res.VATBalance)
	}

	fmt.Fprintf(w, "\nTaxable profit:          %10.2f €\n", res.TaxableProfit)
	if res.TaxableProfit < 0 {
		fmt.Fprintln(w, "(loss: no IRPEF or INPS due)")
	}

	for _, p := range in.Partners {
		pt := res.PerPartner[p.Name]
		fmt.Fprintf(w, "\nPartner %s (%s, %.4g%%)\n", p.Name, p.Role, p.SharePercent)
		fmt.Fprintf(w, "  Profit share:          %10.2f €\n", pt.ProfitShare)
		fmt.Fprintf(w, "  IRPEF due:             %10.2f €\n", pt.IRPEFDue)
		fmt.Fprintf(w, "  INPS due:              %10.2f €\n", pt.INPSDue)
		fmt.Fprintf(w, "  Net income:            %10.2f €\n", pt.NetIncome)
	}

	fmt.Fprintf(w, "\nTotal IRPEF:             %10.2f €\n", res.TotalIRPEF)
	fmt.Fprintf(w, "Total INPS:              %10.2f €\n", res.TotalINPS)
	fmt.Fprintf(w, "Net profit after taxes:  %10.2f €\n", res.NetProfit)
	fmt.Fprintf(w, "Effective tax rate:      %10.2f%%\n", res.EffectiveRate*100)
}

// Company writes a one-company profile summary.
func Company(w io.Writer, c *models.Company) {
	fmt.Fprintf(w, "\nCompany: %s\n", c.Name)
	for _, p := range c.Partners {
		fmt.Fprintf(w, "  - %s: %.4g%% (%s)\n", p.Name, p.SharePercent, p.Role)
	}
}
