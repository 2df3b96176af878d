// Package tax implements the S.a.s. tax engine: progressive IRPEF,
// threshold-based INPS contributions, VAT settlement, and net-profit
// distribution across partners.
//
// Every computation is a pure function of its inputs and an immutable
// RuleSet; the package holds no mutable state and is safe for concurrent
// use.
package tax

import (
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Bracket is one IRPEF band. The band taxes income in [Lower, Upper) at
// Rate; the last band has Upper = +Inf.
type Bracket struct {
	Lower float64 `yaml:"lower"`
	Upper float64 `yaml:"upper"` // omitted or <= 0 in YAML means open-ended
	Rate  float64 `yaml:"rate"`
}

// ContributionRule is the INPS parameterization: contributions apply to
// the profit share above Threshold, at Rate.
type ContributionRule struct {
	Threshold float64 `yaml:"threshold"`
	Rate      float64 `yaml:"rate"`
}

// RuleSet is the immutable rule configuration for one fiscal year. It is
// passed into the engine explicitly so multiple years can coexist.
type RuleSet struct {
	Year     int              `yaml:"year"`
	Brackets []Bracket        `yaml:"irpef_brackets"`
	INPS     ContributionRule `yaml:"inps"`
}

// Year2025 returns the 2025 rule tables: IRPEF bands at 23/25/35/43% and
// INPS at 24% over the 18415 threshold.
func Year2025() RuleSet {
	return RuleSet{
		Year: 2025,
		Brackets: []Bracket{
			{Lower: 0, Upper: 15000, Rate: 0.23},
			{Lower: 15000, Upper: 28000, Rate: 0.25},
			{Lower: 28000, Upper: 50000, Rate: 0.35},
			{Lower: 50000, Upper: math.Inf(1), Rate: 0.43},
		},
		INPS: ContributionRule{Threshold: 18415, Rate: 0.24},
	}
}

// ForYear resolves the built-in rule set for a fiscal year.
func ForYear(year int) (RuleSet, error) {
	if year == 2025 {
		return Year2025(), nil
	}
	return RuleSet{}, fmt.Errorf("no rule tables for fiscal year %d", year)
}

// Validate checks the construction-time invariants of a rule set: at
// least one bracket, sorted ascending, no gaps or overlaps, starting at 0
// and ending open, all rates in [0, 1], and a sane contribution rule.
func (r RuleSet) Validate() error {
	if len(r.Brackets) == 0 {
		return fmt.Errorf("rule set for %d has no IRPEF brackets", r.Year)
	}
	if r.Brackets[0].Lower != 0 {
		return fmt.Errorf("first IRPEF bracket must start at 0, got %v", r.Brackets[0].Lower)
	}
	for i, b := range r.Brackets {
		if b.Rate < 0 || b.Rate > 1 {
			return fmt.Errorf("IRPEF bracket %d has rate %v outside [0, 1]", i, b.Rate)
		}
		if b.Upper <= b.Lower {
			return fmt.Errorf("IRPEF bracket %d is empty or inverted (%v..%v)", i, b.Lower, b.Upper)
		}
		if i > 0 && b.Lower != r.Brackets[i-1].Upper {
			return fmt.Errorf("IRPEF bracket %d does not continue from %v (starts at %v)",
				i, r.Brackets[i-1].Upper, b.Lower)
		}
	}
	if last := r.Brackets[len(r.Brackets)-1]; !math.IsInf(last.Upper, 1) {
		return fmt.Errorf("last IRPEF bracket must be open-ended, got upper %v", last.Upper)
	}
	if r.INPS.Threshold < 0 {
		return fmt.Errorf("INPS threshold must be non-negative, got %v", r.INPS.Threshold)
	}
	if r.INPS.Rate < 0 || r.INPS.Rate > 1 {
		return fmt.Errorf("INPS rate %v outside [0, 1]", r.INPS.Rate)
	}
	return nil
}

// LoadRules reads a rule set from a YAML file. An omitted or non-positive
// upper bound on the last bracket is treated as open-ended. The loaded
// set is validated before being returned.
func LoadRules(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, fmt.Errorf("failed to read rules file: %w", err)
	}
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return RuleSet{}, fmt.Errorf("failed to parse rules file: %w", err)
	}
	sort.Slice(rs.Brackets, func(i, j int) bool {
		return rs.Brackets[i].Lower < rs.Brackets[j].Lower
	})
	for i := range rs.Brackets {
		if rs.Brackets[i].Upper <= 0 {
			rs.Brackets[i].Upper = math.Inf(1)
		}
	}
	if err := rs.Validate(); err != nil {
		return RuleSet{}, fmt.Errorf("invalid rules in %s: %w", path, err)
	}
	return rs, nil
}
