// Command sas-tax computes IRPEF, INPS, and VAT obligations for an
// Italian S.a.s. partnership.
//
// With no arguments it starts the interactive menu. With flags it runs a
// single calculation and exits: 0 on success, 1 on validation or parse
// failure with the message on stderr.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/cliparse"
	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/menu"
	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/models"
	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/render"
	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/service"
	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/storage/sqlite"
	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/tax"
	"github.com/babaz8/contabilita-sas-fisaclita-italiana/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	if len(os.Args) > 1 {
		if err := runCLI(os.Args[1:]); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		return
	}

	if err := runInteractive(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	ctx := context.Background()

	opts, err := cliparse.ParseFlags(args)
	if err != nil {
		return err
	}

	rules, err := resolveRules(opts.Year, opts.RulesFile)
	if err != nil {
		return err
	}

	in := opts.Input()
	res, err := tax.Compute(in, rules)
	if err != nil {
		return err
	}
	render.Result(os.Stdout, in, res)

	if opts.SaveAs == "" {
		return nil
	}

	// Persist only when asked: open the store, upsert the company
	// profile, and append the record.
	store, err := sqlite.New(opts.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	svc := service.NewTaxService(store, rules)

	company := &models.Company{Name: opts.Company, Partners: opts.Partners}
	if err := svc.SaveCompany(ctx, company); err != nil {
		return err
	}
	rec, err := svc.CalculateAndSave(ctx, opts.SaveAs, company, in)
	if err != nil {
		return err
	}
	fmt.Printf("\nSaved to history as %q (id %s).\n", rec.Name, rec.ID)
	return nil
}

func runInteractive() error {
	dbPath := getEnv("SAS_DB_PATH", "./data/sas.db")
	store, err := sqlite.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}
	defer store.Close()
	slog.Info("storage initialized", "database", dbPath)

	rules, err := resolveRules(2025, os.Getenv("SAS_RULES_FILE"))
	if err != nil {
		return err
	}

	svc := service.NewTaxService(store, rules)
	return menu.New(svc, os.Stdin, os.Stdout).Run(context.Background())
}

func resolveRules(year int, rulesFile string) (tax.RuleSet, error) {
	if rulesFile != "" {
		return tax.LoadRules(rulesFile)
	}
	return tax.ForYear(year)
}
