package tax

import (
	"math"
	"testing"
)

const tol = 1e-9

func TestIRPEF(t *testing.T) {
	brackets := Year2025().Brackets

	tests := []struct {
		name   string
		amount float64
		want   float64
	}{
		{"zero income", 0, 0},
		{"inside first band", 10000, 2300},
		{"exactly on first boundary", 15000, 3450},
		{"just past first boundary", 15000.01, 3450 + 0.01*0.25},
		{"inside second band", 20000, 3450 + 5000*0.25},
		{"exactly on second boundary", 28000, 3450 + 13000*0.25},
		{"inside third band", 30000, 6700 + 2000*0.35},
		{"exactly on third boundary", 50000, 6700 + 22000*0.35},
		{"top band", 60000, 14400 + 10000*0.43},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IRPEF(tt.amount, brackets)
			if err != nil {
				t.Fatalf("IRPEF(%v) failed: %v", tt.amount, err)
			}
			if math.Abs(got-tt.want) > 0.005 {
				t.Errorf("IRPEF(%v) = %v, want %v", tt.amount, got, tt.want)
			}
		})
	}
}

func TestIRPEFNegativeAmount(t *testing.T) {
	if _, err := IRPEF(-1, Year2025().Brackets); err == nil {
		t.Error("expected error for negative amount, got nil")
	}
}

// Tax due must never decrease as income increases.
func TestIRPEFMonotonic(t *testing.T) {
	brackets := Year2025().Brackets

	prev := 0.0
	for amount := 0.0; amount <= 120000; amount += 250 {
		due, err := IRPEF(amount, brackets)
		if err != nil {
			t.Fatalf("IRPEF(%v) failed: %v", amount, err)
		}
		if due < prev-tol {
			t.Fatalf("IRPEF decreased: IRPEF(%v) = %v < %v", amount, due, prev)
		}
		prev = due
	}
}

// Crossing a bracket boundary changes the marginal rate, not the tax
// already accrued: there must be no jump discontinuity.
func TestIRPEFContinuousAtBoundaries(t *testing.T) {
	brackets := Year2025().Brackets

	const eps = 0.0001
	for _, boundary := range []float64{15000, 28000, 50000} {
		below, err := IRPEF(boundary-eps, brackets)
		if err != nil {
			t.Fatal(err)
		}
		above, err := IRPEF(boundary+eps, brackets)
		if err != nil {
			t.Fatal(err)
		}
		// Maximum possible difference is eps at the top marginal rate.
		if math.Abs(above-below) > 2*eps {
			t.Errorf("discontinuity at %v: IRPEF jumps from %v to %v", boundary, below, above)
		}
	}
}
