// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/models"
	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// ErrNotFound is returned when a company or calculation does not exist.
var ErrNotFound = errors.New("not found")

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveCompany persists a company profile. Saving a name that already
// exists replaces that company's partner set in place, keeping its ID
// and any history that references it.
func (s *SQLiteStore) SaveCompany(ctx context.Context, company *models.Company) error {
	if err := company.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existingID string
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM companies WHERE name = ?", company.Name,
	).Scan(&existingID)
	switch {
	case err == sql.ErrNoRows:
		if company.ID == "" {
			company.ID = uuid.New().String()
		}
		if company.CreatedAt == 0 {
			company.CreatedAt = time.Now().Unix()
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO companies (id, name, created_at) VALUES (?, ?, ?)",
			company.ID, company.Name, company.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert company: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to look up company: %w", err)
	default:
		company.ID = existingID
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM partners WHERE company_id = ?", company.ID,
		); err != nil {
			return fmt.Errorf("failed to clear partners: %w", err)
		}
	}

	for i, p := range company.Partners {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO partners (company_id, name, share_percent, role, position) VALUES (?, ?, ?, ?, ?)",
			company.ID, p.Name, p.SharePercent, string(p.Role), i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert partner: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetCompany retrieves a company profile by name, including its partners
// in their original order.
func (s *SQLiteStore) GetCompany(ctx context.Context, name string) (*models.Company, error) {
	company := &models.Company{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM companies WHERE name = ?", name,
	).Scan(&company.ID, &company.Name, &company.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("company %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	partners, err := s.companyPartners(ctx, company.ID)
	if err != nil {
		return nil, err
	}
	company.Partners = partners
	return company, nil
}

func (s *SQLiteStore) companyPartners(ctx context.Context, companyID string) ([]models.Partner, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, share_percent, role FROM partners WHERE company_id = ? ORDER BY position",
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get partners: %w", err)
	}
	defer rows.Close()

	var partners []models.Partner
	for rows.Next() {
		var p models.Partner
		var role string
		if err := rows.Scan(&p.Name, &p.SharePercent, &role); err != nil {
			return nil, fmt.Errorf("failed to scan partner: %w", err)
		}
		p.Role = models.Role(role)
		partners = append(partners, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate partners: %w", err)
	}
	return partners, nil
}

// ListCompanies returns all saved companies with their partners, ordered
// by name.
func (s *SQLiteStore) ListCompanies(ctx context.Context) ([]models.Company, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM companies ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate companies: %w", err)
	}

	for i := range companies {
		partners, err := s.companyPartners(ctx, companies[i].ID)
		if err != nil {
			return nil, err
		}
		companies[i].Partners = partners
	}
	return companies, nil
}

// DeleteCompany removes a company; its partners and history cascade.
func (s *SQLiteStore) DeleteCompany(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM companies WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("company %q: %w", name, ErrNotFound)
	}
	return nil
}
