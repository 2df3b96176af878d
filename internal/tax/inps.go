package tax

import (
	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/models"
)

// INPS computes the social-security contribution on a partner's profit
// share. Accomandante partners are exempt; accomandatario partners pay
// Rate on the part of the share above Threshold. Shares at or below the
// threshold owe nothing.
func INPS(share float64, role models.Role, rule ContributionRule) float64 {
	if role != models.RoleAccomandatario {
		return 0
	}
	excess := share - rule.Threshold
	if excess <= 0 {
		return 0
	}
	return excess * rule.Rate
}
