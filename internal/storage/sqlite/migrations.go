package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database.
// These run on startup to ensure tables exist.
// IMPORTANT: companies must be created before partners and calculations
// due to foreign key constraints.
const schema = `
CREATE TABLE IF NOT EXISTS companies (
    id TEXT PRIMARY KEY,
    name TEXT UNIQUE NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS partners (
    company_id TEXT NOT NULL,
    name TEXT NOT NULL,
    share_percent REAL NOT NULL,
    role TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (company_id, name),
    FOREIGN KEY (company_id) REFERENCES companies(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS calculations (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    company_id TEXT NOT NULL,
    sales_gross REAL NOT NULL,
    input_vat REAL NOT NULL,
    vat_rate REAL NOT NULL,
    expenses REAL NOT NULL,
    fiscal_year INTEGER NOT NULL,
    vat_debit REAL NOT NULL,
    vat_credit REAL NOT NULL,
    vat_balance REAL NOT NULL,
    taxable_profit REAL NOT NULL,
    total_irpef REAL NOT NULL,
    total_inps REAL NOT NULL,
    net_profit REAL NOT NULL,
    effective_rate REAL NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (company_id) REFERENCES companies(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS calculation_results (
    calculation_id TEXT NOT NULL,
    partner_name TEXT NOT NULL,
    share_percent REAL NOT NULL,
    role TEXT NOT NULL,
    profit_share REAL NOT NULL,
    irpef REAL NOT NULL,
    inps REAL NOT NULL,
    net_income REAL NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (calculation_id, partner_name),
    FOREIGN KEY (calculation_id) REFERENCES calculations(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_partners_company_id ON partners(company_id);
CREATE INDEX IF NOT EXISTS idx_calculations_company_id ON calculations(company_id);
CREATE INDEX IF NOT EXISTS idx_calculations_created_at ON calculations(created_at);
CREATE INDEX IF NOT EXISTS idx_calculation_results_calc_id ON calculation_results(calculation_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
