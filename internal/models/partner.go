package models

import (
	"fmt"
	"math"
	"strings"
)

// Role is the legal role of a partner in a società in accomandita
// semplice. There are exactly two.
type Role string

const (
	// RoleAccomandante is the limited partner: liability capped, exempt
	// from INPS contributions.
	RoleAccomandante Role = "accomandante"

	// RoleAccomandatario is the managing partner: unlimited liability,
	// subject to INPS contributions above the threshold.
	RoleAccomandatario Role = "accomandatario"
)

// ParseRole converts a role token to a Role.
// Matching is case-insensitive; anything but the two recognized tokens
// fails.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAccomandante:
		return RoleAccomandante, nil
	case RoleAccomandatario:
		return RoleAccomandatario, nil
	default:
		return "", &ValidationError{
			Field:   "role",
			Message: fmt.Sprintf("%q is not a recognized role (want %q or %q)", s, RoleAccomandante, RoleAccomandatario),
		}
	}
}

// Valid reports whether the role is one of the two recognized values.
func (r Role) Valid() bool {
	return r == RoleAccomandante || r == RoleAccomandatario
}

// Partner represents one partner of a company.
type Partner struct {
	// Name identifies the partner, unique within a company
	// (case-sensitive).
	Name string

	// SharePercent is the partner's profit share in (0, 100].
	// Across a company's partners the shares must sum to 100.
	SharePercent float64

	// Role is accomandante or accomandatario.
	Role Role
}

// Validate checks a single partner in isolation.
func (p Partner) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "partner.name", Message: "name must not be empty"}
	}
	if p.SharePercent <= 0 || p.SharePercent > 100 {
		return &ValidationError{
			Field:   "partner.share_percent",
			Message: fmt.Sprintf("share for %q must be in (0, 100], got %v", p.Name, p.SharePercent),
		}
	}
	if !p.Role.Valid() {
		return &ValidationError{
			Field:   "partner.role",
			Message: fmt.Sprintf("%q has unrecognized role %q", p.Name, p.Role),
		}
	}
	return nil
}

// ShareTolerance absorbs floating-point rounding when checking that
// partner shares sum to 100.
const ShareTolerance = 1e-6

// ValidatePartners checks a whole partner list: non-empty, each partner
// individually valid, names unique, shares summing to exactly 100 within
// ShareTolerance.
func ValidatePartners(partners []Partner) error {
	if len(partners) == 0 {
		return &ValidationError{Field: "partners", Message: "at least one partner is required"}
	}
	seen := make(map[string]bool, len(partners))
	total := 0.0
	for _, p := range partners {
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p.Name] {
			return &ValidationError{
				Field:   "partner.name",
				Message: fmt.Sprintf("duplicate partner name %q", p.Name),
			}
		}
		seen[p.Name] = true
		total += p.SharePercent
	}
	if math.Abs(total-100) > ShareTolerance {
		return &ValidationError{
			Field:   "partners",
			Message: fmt.Sprintf("shares must sum to 100, got %v", total),
		}
	}
	return nil
}
