// Package service orchestrates the tax engine and the store for the two
// front ends (interactive menu and CLI).
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/models"
	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/storage"
	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/tax"
)

// TaxService ties a rule set and a store together. The engine stays pure;
// everything stateful goes through the store.
type TaxService struct {
	store storage.Store
	rules tax.RuleSet
}

// NewTaxService creates a TaxService with the given storage backend and
// fiscal-year rules.
func NewTaxService(store storage.Store, rules tax.RuleSet) *TaxService {
	return &TaxService{store: store, rules: rules}
}

// Rules returns the rule set the service computes with.
func (s *TaxService) Rules() tax.RuleSet {
	return s.rules
}

// Calculate runs the engine on the given input without persisting
// anything.
func (s *TaxService) Calculate(in models.FinancialInput) (*models.TaxResult, error) {
	res, err := tax.Compute(in, s.rules)
	if err != nil {
		slog.Error("calculation rejected", "error", err)
		return nil, err
	}
	slog.Info("calculation completed",
		"year", res.Year,
		"taxable_profit", res.TaxableProfit,
		"partners", len(res.PerPartner),
	)
	return res, nil
}

// CalculateAndSave runs the engine for a saved company and appends the
// result to history under the given name.
func (s *TaxService) CalculateAndSave(ctx context.Context, name string, company *models.Company, in models.FinancialInput) (*models.CalculationRecord, error) {
	in.Partners = company.Partners
	res, err := s.Calculate(in)
	if err != nil {
		return nil, err
	}

	rec := &models.CalculationRecord{
		Name:        name,
		CompanyID:   company.ID,
		CompanyName: company.Name,
		Input:       in,
		Result:      *res,
	}
	if err := s.store.SaveCalculation(ctx, rec); err != nil {
		slog.Error("failed to save calculation", "name", name, "error", err)
		return nil, fmt.Errorf("failed to save calculation: %w", err)
	}
	slog.Info("calculation saved", "id", rec.ID, "name", name, "company", company.Name)
	return rec, nil
}

// Recalculate re-runs a saved calculation from its input snapshot. The
// engine is pure, so the result matches the stored one unless the rule
// tables differ.
func (s *TaxService) Recalculate(ctx context.Context, id string) (*models.TaxResult, error) {
	rec, err := s.store.GetCalculation(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Calculate(rec.Input)
}

// SaveCompany persists a company profile.
func (s *TaxService) SaveCompany(ctx context.Context, company *models.Company) error {
	if err := s.store.SaveCompany(ctx, company); err != nil {
		slog.Error("failed to save company", "company", company.Name, "error", err)
		return err
	}
	slog.Info("company saved", "id", company.ID, "company", company.Name)
	return nil
}

// Company loads a company profile by name.
func (s *TaxService) Company(ctx context.Context, name string) (*models.Company, error) {
	return s.store.GetCompany(ctx, name)
}

// Companies lists all saved company profiles.
func (s *TaxService) Companies(ctx context.Context) ([]models.Company, error) {
	return s.store.ListCompanies(ctx)
}

// DeleteCompany removes a company profile and its history.
func (s *TaxService) DeleteCompany(ctx context.Context, name string) error {
	if err := s.store.DeleteCompany(ctx, name); err != nil {
		return err
	}
	slog.Info("company deleted", "company", name)
	return nil
}

// History lists saved calculations, newest first.
func (s *TaxService) History(ctx context.Context) ([]storage.CalculationSummary, error) {
	return s.store.ListCalculations(ctx)
}

// Calculation loads one full history record.
func (s *TaxService) Calculation(ctx context.Context, id string) (*models.CalculationRecord, error) {
	return s.store.GetCalculation(ctx, id)
}

// DeleteCalculation removes one history record.
func (s *TaxService) DeleteCalculation(ctx context.Context, id string) error {
	if err := s.store.DeleteCalculation(ctx, id); err != nil {
		return err
	}
	slog.Info("calculation deleted", "id", id)
	return nil
}
