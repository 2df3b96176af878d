// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/models"
)

// CalculationSummary is one row of a history listing.
type CalculationSummary struct {
	ID          string
	Name        string
	CompanyName string
	CreatedAt   int64
}

// Store defines the interface for company-profile and calculation-history
// persistence. The tax engine never touches it; front ends feed it the
// engine's inputs and results. The abstraction allows swapping storage
// backends without changing the service layer.
type Store interface {
	// SaveCompany persists a company profile, replacing the partner set
	// of an existing company with the same name. The company.ID field is
	// populated by the store.
	SaveCompany(ctx context.Context, company *models.Company) error

	// GetCompany retrieves a company profile by name.
	GetCompany(ctx context.Context, name string) (*models.Company, error)

	// ListCompanies returns all saved companies ordered by name.
	ListCompanies(ctx context.Context) ([]models.Company, error)

	// DeleteCompany removes a company and everything that references it.
	DeleteCompany(ctx context.Context, name string) error

	// SaveCalculation appends a calculation record to history. The
	// record.ID field is populated by the store.
	SaveCalculation(ctx context.Context, rec *models.CalculationRecord) error

	// GetCalculation retrieves a full history record by ID.
	GetCalculation(ctx context.Context, id string) (*models.CalculationRecord, error)

	// ListCalculations returns history summaries, newest first.
	ListCalculations(ctx context.Context) ([]CalculationSummary, error)

	// DeleteCalculation removes one history record.
	DeleteCalculation(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
