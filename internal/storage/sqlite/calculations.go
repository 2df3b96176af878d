package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/models"
	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/storage"
)

// SaveCalculation appends a record to history. The partner snapshot is
// stored with the record so it survives later edits to the company
// profile.
func (s *SQLiteStore) SaveCalculation(ctx context.Context, rec *models.CalculationRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt == 0 {
		rec.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO calculations (
			id, name, company_id,
			sales_gross, input_vat, vat_rate, expenses, fiscal_year,
			vat_debit, vat_credit, vat_balance, taxable_profit,
			total_irpef, total_inps, net_profit, effective_rate,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.CompanyID,
		rec.Input.SalesGross, rec.Input.InputVAT, rec.Input.VATRate, rec.Input.Expenses, rec.Result.Year,
		rec.Result.VATDebit, rec.Result.VATCredit, rec.Result.VATBalance, rec.Result.TaxableProfit,
		rec.Result.TotalIRPEF, rec.Result.TotalINPS, rec.Result.NetProfit, rec.Result.EffectiveRate,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert calculation: %w", err)
	}

	for i, p := range rec.Input.Partners {
		pt := rec.Result.PerPartner[p.Name]
		_, err = tx.ExecContext(ctx, `
			INSERT INTO calculation_results (
				calculation_id, partner_name, share_percent, role,
				profit_share, irpef, inps, net_income, position
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, p.Name, p.SharePercent, string(p.Role),
			pt.ProfitShare, pt.IRPEFDue, pt.INPSDue, pt.NetIncome, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert calculation result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetCalculation retrieves a full history record, input snapshot and
// per-partner results included.
func (s *SQLiteStore) GetCalculation(ctx context.Context, id string) (*models.CalculationRecord, error) {
	rec := &models.CalculationRecord{}
	err := s.db.QueryRowContext(ctx, `
		SELECT c.id, c.name, c.company_id, co.name,
		       c.sales_gross, c.input_vat, c.vat_rate, c.expenses, c.fiscal_year,
		       c.vat_debit, c.vat_credit, c.vat_balance, c.taxable_profit,
		       c.total_irpef, c.total_inps, c.net_profit, c.effective_rate,
		       c.created_at
		FROM calculations c
		JOIN companies co ON c.company_id = co.id
		WHERE c.id = ?`, id,
	).Scan(
		&rec.ID, &rec.Name, &rec.CompanyID, &rec.CompanyName,
		&rec.Input.SalesGross, &rec.Input.InputVAT, &rec.Input.VATRate, &rec.Input.Expenses, &rec.Result.Year,
		&rec.Result.VATDebit, &rec.Result.VATCredit, &rec.Result.VATBalance, &rec.Result.TaxableProfit,
		&rec.Result.TotalIRPEF, &rec.Result.TotalINPS, &rec.Result.NetProfit, &rec.Result.EffectiveRate,
		&rec.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("calculation %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get calculation: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT partner_name, share_percent, role, profit_share, irpef, inps, net_income
		FROM calculation_results
		WHERE calculation_id = ?
		ORDER BY position`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get calculation results: %w", err)
	}
	defer rows.Close()

	rec.Result.PerPartner = make(map[string]models.PartnerTax)
	for rows.Next() {
		var p models.Partner
		var role string
		var pt models.PartnerTax
		if err := rows.Scan(&p.Name, &p.SharePercent, &role, &pt.ProfitShare, &pt.IRPEFDue, &pt.INPSDue, &pt.NetIncome); err != nil {
			return nil, fmt.Errorf("failed to scan calculation result: %w", err)
		}
		p.Role = models.Role(role)
		rec.Input.Partners = append(rec.Input.Partners, p)
		rec.Result.PerPartner[p.Name] = pt
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate calculation results: %w", err)
	}

	return rec, nil
}

// ListCalculations returns history summaries, newest first.
func (s *SQLiteStore) ListCalculations(ctx context.Context) ([]storage.CalculationSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.name, co.name, c.created_at
		FROM calculations c
		JOIN companies co ON c.company_id = co.id
		ORDER BY c.created_at DESC, c.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	defer rows.Close()

	var summaries []storage.CalculationSummary
	for rows.Next() {
		var sum storage.CalculationSummary
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.CompanyName, &sum.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan calculation summary: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate calculations: %w", err)
	}
	return summaries, nil
}

// DeleteCalculation removes one history record; its result rows cascade.
func (s *SQLiteStore) DeleteCalculation(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM calculations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete calculation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("calculation %q: %w", id, ErrNotFound)
	}
	return nil
}
