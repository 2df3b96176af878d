package tax

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestYear2025Valid(t *testing.T) {
	if err := Year2025().Validate(); err != nil {
		t.Fatalf("built-in 2025 rules invalid: %v", err)
	}
}

func TestForYear(t *testing.T) {
	rs, err := ForYear(2025)
	if err != nil {
		t.Fatalf("ForYear(2025) failed: %v", err)
	}
	if rs.Year != 2025 {
		t.Errorf("Year = %d, want 2025", rs.Year)
	}
	if _, err := ForYear(1999); err == nil {
		t.Error("expected error for unknown year, got nil")
	}
}

func TestRuleSetValidate(t *testing.T) {
	tests := []struct {
		name string
		rs   RuleSet
	}{
		{"no brackets", RuleSet{Year: 2025}},
		{
			"first bracket not at zero",
			RuleSet{Year: 2025, Brackets: []Bracket{{Lower: 1000, Upper: math.Inf(1), Rate: 0.2}}},
		},
		{
			"gap between brackets",
			RuleSet{Year: 2025, Brackets: []Bracket{
				{Lower: 0, Upper: 10000, Rate: 0.2},
				{Lower: 20000, Upper: math.Inf(1), Rate: 0.3},
			}},
		},
		{
			"last bracket not open-ended",
			RuleSet{Year: 2025, Brackets: []Bracket{{Lower: 0, Upper: 50000, Rate: 0.2}}},
		},
		{
			"rate above 1",
			RuleSet{Year: 2025, Brackets: []Bracket{{Lower: 0, Upper: math.Inf(1), Rate: 1.5}}},
		},
		{
			"negative INPS threshold",
			RuleSet{
				Year:     2025,
				Brackets: []Bracket{{Lower: 0, Upper: math.Inf(1), Rate: 0.2}},
				INPS:     ContributionRule{Threshold: -1, Rate: 0.24},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.rs.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestLoadRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")

	yamlDoc := `year: 2026
irpef_brackets:
  - lower: 0
    upper: 28000
    rate: 0.23
  - lower: 28000
    upper: 50000
    rate: 0.35
  - lower: 50000
    rate: 0.43
inps:
  threshold: 18800
  rate: 0.24
`
	if err := os.WriteFile(path, []byte(yamlDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	rs, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	if rs.Year != 2026 {
		t.Errorf("Year = %d, want 2026", rs.Year)
	}
	if len(rs.Brackets) != 3 {
		t.Fatalf("got %d brackets, want 3", len(rs.Brackets))
	}
	if !math.IsInf(rs.Brackets[2].Upper, 1) {
		t.Errorf("last bracket upper = %v, want +Inf", rs.Brackets[2].Upper)
	}
	if rs.INPS.Threshold != 18800 {
		t.Errorf("INPS threshold = %v, want 18800", rs.INPS.Threshold)
	}

	// A loaded set must pass the same checks as the built-ins.
	if err := rs.Validate(); err != nil {
		t.Errorf("loaded rules invalid: %v", err)
	}
}

func TestLoadRulesRejectsBrokenTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")

	yamlDoc := `year: 2026
irpef_brackets:
  - lower: 5000
    rate: 0.23
inps:
  threshold: 18800
  rate: 0.24
`
	if err := os.WriteFile(path, []byte(yamlDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRules(path); err == nil {
		t.Error("expected error for table with a gap below the first bracket")
	}
}
