package service

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/models"
	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/storage/sqlite"
	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/tax"
)

func setupService(t *testing.T) *TaxService {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "sas-tax-service-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewTaxService(store, tax.Year2025())
}

func TestCalculateAndSave(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	company := &models.Company{
		Name: "Rossi & Bianchi S.a.s.",
		Partners: []models.Partner{
			{Name: "Mario Rossi", SharePercent: 70, Role: models.RoleAccomandatario},
			{Name: "Luigi Bianchi", SharePercent: 30, Role: models.RoleAccomandante},
		},
	}
	if err := svc.SaveCompany(ctx, company); err != nil {
		t.Fatalf("SaveCompany failed: %v", err)
	}

	in := models.FinancialInput{
		SalesGross: 30000,
		InputVAT:   2000,
		VATRate:    0.22,
		Expenses:   10000,
	}
	rec, err := svc.CalculateAndSave(ctx, "Esercizio 2025", company, in)
	if err != nil {
		t.Fatalf("CalculateAndSave failed: %v", err)
	}
	if rec.ID == "" {
		t.Error("expected record ID to be assigned")
	}
	if math.Abs(rec.Result.TaxableProfit-20000) > 1e-9 {
		t.Errorf("TaxableProfit = %v, want 20000", rec.Result.TaxableProfit)
	}

	history, err := svc.History(ctx)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 1 || history[0].Name != "Esercizio 2025" {
		t.Errorf("unexpected history: %+v", history)
	}

	// Recomputing from the stored snapshot must reproduce the result.
	again, err := svc.Recalculate(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Recalculate failed: %v", err)
	}
	if math.Abs(again.TotalIRPEF-rec.Result.TotalIRPEF) > 1e-9 {
		t.Errorf("Recalculate TotalIRPEF = %v, want %v", again.TotalIRPEF, rec.Result.TotalIRPEF)
	}
}

func TestCalculateAndSaveRejectsInvalidInput(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	company := &models.Company{
		Name: "Alfa S.a.s.",
		Partners: []models.Partner{
			{Name: "A", SharePercent: 100, Role: models.RoleAccomandatario},
		},
	}
	if err := svc.SaveCompany(ctx, company); err != nil {
		t.Fatal(err)
	}

	in := models.FinancialInput{SalesGross: -1, VATRate: 0.22}
	if _, err := svc.CalculateAndSave(ctx, "bad", company, in); err == nil {
		t.Fatal("expected validation error")
	}

	// Nothing may be persisted on failure.
	history, err := svc.History(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 0 {
		t.Errorf("failed calculation was persisted: %+v", history)
	}
}

func TestRecalculateUnknownID(t *testing.T) {
	svc := setupService(t)
	_, err := svc.Recalculate(context.Background(), "no-such-id")
	if !errors.Is(err, sqlite.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
