package menu

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/service"
	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/storage/sqlite"
	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/tax"
)

func setupMenuService(t *testing.T) *service.TaxService {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "sas-tax-menu-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return service.NewTaxService(store, tax.Year2025())
}

func TestPromptHelpers(t *testing.T) {
	t.Run("readFloat re-prompts on bad input", func(t *testing.T) {
		var out strings.Builder
		p := newPrompter(strings.NewReader("abc\n12.5\n"), &out)
		v, err := p.readFloat("amount: ")
		if err != nil {
			t.Fatal(err)
		}
		if v != 12.5 {
			t.Errorf("readFloat = %v, want 12.5", v)
		}
		if !strings.Contains(out.String(), "valid number") {
			t.Error("expected a re-prompt message")
		}
	})

	t.Run("readYesNo accepts Italian answers", func(t *testing.T) {
		var out strings.Builder
		p := newPrompter(strings.NewReader("sì\n"), &out)
		v, err := p.readYesNo("save? ")
		if err != nil {
			t.Fatal(err)
		}
		if !v {
			t.Error("expected true for sì")
		}
	})

	t.Run("readRole re-prompts on unknown role", func(t *testing.T) {
		var out strings.Builder
		p := newPrompter(strings.NewReader("socio\naccomandatario\n"), &out)
		role, err := p.readRole("role: ")
		if err != nil {
			t.Fatal(err)
		}
		if string(role) != "accomandatario" {
			t.Errorf("readRole = %q", role)
		}
	})

	t.Run("closed input surfaces errQuit", func(t *testing.T) {
		var out strings.Builder
		p := newPrompter(strings.NewReader(""), &out)
		if _, err := p.readName("name: "); err != errQuit {
			t.Errorf("err = %v, want errQuit", err)
		}
	})
}

func TestRunCreateCompanyCalculateAndSave(t *testing.T) {
	svc := setupMenuService(t)
	ctx := context.Background()

	script := strings.Join([]string{
		"1",                      // new calculation
		"2",                      // create a new company
		"Rossi & Bianchi S.a.s.", // company name
		"2",                      // two partners
		"Mario Rossi", "70", "accomandatario",
		"Luigi Bianchi", "30", "accomandante",
		"30000", "2000", "0.22", "10000", // financial inputs
		"y", "Esercizio 2025", // save to history
		"0", // quit
	}, "\n") + "\n"

	var out strings.Builder
	m := New(svc, strings.NewReader(script), &out)
	if err := m.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, want := range []string{
		"Company \"Rossi & Bianchi S.a.s.\" saved.",
		"Taxable profit",
		"20000.00",
		"4600.00",
		"Calculation \"Esercizio 2025\" saved.",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q", want)
		}
	}

	company, err := svc.Company(ctx, "Rossi & Bianchi S.a.s.")
	if err != nil {
		t.Fatalf("company not persisted: %v", err)
	}
	if len(company.Partners) != 2 {
		t.Errorf("got %d partners, want 2", len(company.Partners))
	}

	history, err := svc.History(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0].Name != "Esercizio 2025" {
		t.Errorf("unexpected history: %+v", history)
	}
}

func TestRunRejectsCompanyWithoutAccomandatario(t *testing.T) {
	svc := setupMenuService(t)

	script := strings.Join([]string{
		"1", // new calculation
		"2", // create a new company
		"Solo S.a.s.",
		"1",
		"Anna", "100", "accomandante",
		"0", // quit
	}, "\n") + "\n"

	var out strings.Builder
	m := New(svc, strings.NewReader(script), &out)
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "at least one accomandatario") {
		t.Errorf("missing accomandatario check message:\n%s", out.String())
	}

	companies, err := svc.Companies(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(companies) != 0 {
		t.Errorf("invalid company was saved: %+v", companies)
	}
}

func TestRunShareNormalization(t *testing.T) {
	svc := setupMenuService(t)

	script := strings.Join([]string{
		"1", // new calculation
		"2", // create a new company
		"Beta S.a.s.",
		"2",
		"A", "60", "accomandatario",
		"B", "60", "accomandante",
		"y", "y", // continue anyway, normalize
		"1000", "0", "0.22", "0", // financial inputs
		"n", // don't save
		"0", // quit
	}, "\n") + "\n"

	var out strings.Builder
	m := New(svc, strings.NewReader(script), &out)
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	company, err := svc.Company(context.Background(), "Beta S.a.s.")
	if err != nil {
		t.Fatalf("company not saved after normalization: %v", err)
	}
	for _, p := range company.Partners {
		if p.SharePercent != 50 {
			t.Errorf("%s share = %v, want 50 after normalization", p.Name, p.SharePercent)
		}
	}
}

func TestRunQuitsCleanlyOnEOF(t *testing.T) {
	svc := setupMenuService(t)
	var out strings.Builder
	m := New(svc, strings.NewReader(""), &out)
	if err := m.Run(context.Background()); err != nil {
		t.Errorf("Run on closed input = %v, want nil", err)
	}
}
