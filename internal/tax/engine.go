package tax

import (
	"fmt"

	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/models"
)

// Compute runs one full calculation: validation, VAT settlement, profit
// distribution, and per-partner IRPEF and INPS.
//
// On any validation failure it returns the error and no partial result.
// A loss (expenses > sales) is not an error: the taxable profit and the
// partner shares are reported negative, and IRPEF/INPS on a negative
// share are zero.
func Compute(in models.FinancialInput, rules RuleSet) (*models.TaxResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	vat := SettleVAT(in.SalesGross, in.VATRate, in.InputVAT)
	profit := in.SalesGross - in.Expenses

	res := &models.TaxResult{
		Year:          rules.Year,
		VATDebit:      vat.Debit,
		VATCredit:     vat.Credit,
		VATBalance:    vat.Balance,
		TaxableProfit: profit,
		PerPartner:    make(map[string]models.PartnerTax, len(in.Partners)),
	}

	for _, p := range in.Partners {
		share := profit * p.SharePercent / 100

		taxable := share
		if taxable < 0 {
			taxable = 0
		}
		irpef, err := IRPEF(taxable, rules.Brackets)
		if err != nil {
			return nil, fmt.Errorf("IRPEF for %q: %w", p.Name, err)
		}
		inps := INPS(taxable, p.Role, rules.INPS)

		res.PerPartner[p.Name] = models.PartnerTax{
			ProfitShare: share,
			IRPEFDue:    irpef,
			INPSDue:     inps,
			NetIncome:   share - irpef - inps,
		}
		res.TotalIRPEF += irpef
		res.TotalINPS += inps
	}

	res.NetProfit = profit - res.TotalIRPEF - res.TotalINPS
	if profit > 0 {
		res.EffectiveRate = (res.TotalIRPEF + res.TotalINPS) / profit
	}
	return res, nil
}
