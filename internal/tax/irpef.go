package tax

import (
	"math"

	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/models"
)

// IRPEF computes the progressive income tax on a non-negative taxable
// amount: each band taxes min(amount, upper) − lower at the band's rate.
// A boundary amount belongs to the lower band, so nothing is ever
// double-counted. Negative amounts are rejected.
func IRPEF(amount float64, brackets []Bracket) (float64, error) {
	if amount < 0 {
		return 0, &models.ValidationError{Field: "taxable_amount", Message: "must be non-negative"}
	}

	var due float64
	for _, b := range brackets {
		if amount <= b.Lower {
			break
		}
		due += (math.Min(amount, b.Upper) - b.Lower) * b.Rate
	}
	return due, nil
}
