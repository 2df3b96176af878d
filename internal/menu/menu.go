// Package menu implements the interactive front end: a looping text menu
// that collects inputs, runs calculations through the service, and
// browses saved companies and history.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/models"
	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/render"
	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/service"
)

// Menu drives the interactive session.
type Menu struct {
	svc *service.TaxService
	p   *prompter
	out io.Writer
}

// New creates a Menu reading prompts from in and writing to out.
func New(svc *service.TaxService, in io.Reader, out io.Writer) *Menu {
	return &Menu{svc: svc, p: newPrompter(in, out), out: out}
}

// Run loops over the main menu until the user quits or input closes.
func (m *Menu) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(m.out, "\n===== S.a.s. Tax Calculator =====")
		fmt.Fprintln(m.out, "1. New calculation")
		fmt.Fprintln(m.out, "2. Manage companies")
		fmt.Fprintln(m.out, "3. Calculation history")
		fmt.Fprintln(m.out, "0. Quit")

		choice, err := m.p.readInt("Select an option: ")
		if err != nil {
			return quitErr(err)
		}

		switch choice {
		case 0:
			fmt.Fprintln(m.out, "Goodbye.")
			return nil
		case 1:
			err = m.newCalculation(ctx)
		case 2:
			err = m.manageCompanies(ctx)
		case 3:
			err = m.history(ctx)
		default:
			fmt.Fprintln(m.out, "Invalid option.")
		}
		if err != nil {
			return quitErr(err)
		}
	}
}

// quitErr turns a closed input stream into a clean exit.
func quitErr(err error) error {
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func (m *Menu) newCalculation(ctx context.Context) error {
	company, err := m.selectCompany(ctx)
	if err != nil || company == nil {
		return err
	}

	fmt.Fprintf(m.out, "\n===== New calculation for %s =====\n", company.Name)
	in := models.FinancialInput{Partners: company.Partners}
	if in.SalesGross, err = m.p.readNonNegativeFloat("Sales revenue, VAT-exclusive (€): "); err != nil {
		return err
	}
	if in.InputVAT, err = m.p.readNonNegativeFloat("VAT paid on purchases (€): "); err != nil {
		return err
	}
	for {
		if in.VATRate, err = m.p.readFloat("Sales VAT rate (e.g. 0.22): "); err != nil {
			return err
		}
		if in.VATRate >= 0 && in.VATRate <= 1 {
			break
		}
		fmt.Fprintln(m.out, "The VAT rate must be between 0 and 1.")
	}
	if in.Expenses, err = m.p.readNonNegativeFloat("Total deductible costs, net of VAT (€): "); err != nil {
		return err
	}

	res, err := m.svc.Calculate(in)
	if err != nil {
		fmt.Fprintf(m.out, "Calculation rejected: %v\n", err)
		return nil
	}
	render.Result(m.out, in, res)

	save, err := m.p.readYesNo("\nSave this calculation to history? (y/n): ")
	if err != nil || !save {
		return err
	}
	name, err := m.p.readName("Name for this calculation: ")
	if err != nil {
		return err
	}
	if _, err := m.svc.CalculateAndSave(ctx, name, company, in); err != nil {
		fmt.Fprintf(m.out, "Failed to save: %v\n", err)
		return nil
	}
	fmt.Fprintf(m.out, "Calculation %q saved.\n", name)
	return nil
}

// selectCompany lets the user pick an existing company or create a new
// one. Returns nil without error when the user backs out.
func (m *Menu) selectCompany(ctx context.Context) (*models.Company, error) {
	fmt.Fprintln(m.out, "\n===== Company selection =====")
	fmt.Fprintln(m.out, "1. Use an existing company")
	fmt.Fprintln(m.out, "2. Create a new company")
	fmt.Fprintln(m.out, "0. Back")

	choice, err := m.p.readInt("Select an option: ")
	if err != nil {
		return nil, err
	}
	switch choice {
	case 1:
		return m.pickExistingCompany(ctx)
	case 2:
		return m.createCompany(ctx)
	default:
		return nil, nil
	}
}

func (m *Menu) pickExistingCompany(ctx context.Context) (*models.Company, error) {
	companies, err := m.svc.Companies(ctx)
	if err != nil {
		fmt.Fprintf(m.out, "Failed to list companies: %v\n", err)
		return nil, nil
	}
	if len(companies) == 0 {
		fmt.Fprintln(m.out, "No saved companies.")
		return nil, nil
	}

	for i, c := range companies {
		fmt.Fprintf(m.out, "%d. %s\n", i+1, c.Name)
	}
	choice, err := m.p.readInt("Select a company (0 to go back): ")
	if err != nil {
		return nil, err
	}
	if choice < 1 || choice > len(companies) {
		return nil, nil
	}
	c := companies[choice-1]
	return &c, nil
}

func (m *Menu) createCompany(ctx context.Context) (*models.Company, error) {
	fmt.Fprintln(m.out, "\n===== New company =====")
	name, err := m.p.readName("Company name: ")
	if err != nil {
		return nil, err
	}

	n, err := m.p.readInt("Number of partners: ")
	if err != nil {
		return nil, err
	}
	if n < 1 {
		fmt.Fprintln(m.out, "A company needs at least one partner.")
		return nil, nil
	}

	partners := make([]models.Partner, 0, n)
	total := 0.0
	for i := 1; i <= n; i++ {
		var p models.Partner
		if p.Name, err = m.p.readName(fmt.Sprintf("Partner #%d name: ", i)); err != nil {
			return nil, err
		}
		if p.SharePercent, err = m.p.readFloat(fmt.Sprintf("Share percent for %q (e.g. 70): ", p.Name)); err != nil {
			return nil, err
		}
		prompt := fmt.Sprintf("Role for %q (accomandante or accomandatario): ", p.Name)
		if p.Role, err = m.p.readRole(prompt); err != nil {
			return nil, err
		}
		total += p.SharePercent
		partners = append(partners, p)
	}

	if math.Abs(total-100) > models.ShareTolerance {
		fmt.Fprintf(m.out, "Warning: shares sum to %v%%, not 100%%.\n", total)
		cont, err := m.p.readYesNo("Continue anyway? (y/n): ")
		if err != nil {
			return nil, err
		}
		if !cont {
			fmt.Fprintln(m.out, "Cancelled.")
			return nil, nil
		}
		normalize, err := m.p.readYesNo("Normalize the shares to 100%? (y/n): ")
		if err != nil {
			return nil, err
		}
		if normalize && total > 0 {
			factor := 100 / total
			for i := range partners {
				partners[i].SharePercent *= factor
			}
			fmt.Fprintln(m.out, "Shares normalized to 100%.")
		}
	}

	hasAccomandatario := false
	for _, p := range partners {
		if p.Role == models.RoleAccomandatario {
			hasAccomandatario = true
			break
		}
	}
	if !hasAccomandatario {
		fmt.Fprintln(m.out, "An S.a.s. needs at least one accomandatario partner.")
		return nil, nil
	}

	company := &models.Company{Name: name, Partners: partners}
	if err := m.svc.SaveCompany(ctx, company); err != nil {
		fmt.Fprintf(m.out, "Failed to save company: %v\n", err)
		return nil, nil
	}
	fmt.Fprintf(m.out, "Company %q saved.\n", name)
	return company, nil
}

func (m *Menu) manageCompanies(ctx context.Context) error {
	for {
		fmt.Fprintln(m.out, "\n===== Companies =====")
		company, err := m.pickExistingCompany(ctx)
		if err != nil {
			return err
		}
		if company == nil {
			return nil
		}

		render.Company(m.out, company)
		fmt.Fprintln(m.out, "\n1. Replace company")
		fmt.Fprintln(m.out, "2. Delete company")
		fmt.Fprintln(m.out, "0. Back")

		choice, err := m.p.readInt("Select an option: ")
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			if _, err := m.createCompany(ctx); err != nil {
				return err
			}
		case 2:
			sure, err := m.p.readYesNo(fmt.Sprintf("Delete company %q and its history? (y/n): ", company.Name))
			if err != nil {
				return err
			}
			if !sure {
				continue
			}
			if err := m.svc.DeleteCompany(ctx, company.Name); err != nil {
				fmt.Fprintf(m.out, "Failed to delete: %v\n", err)
				continue
			}
			fmt.Fprintln(m.out, "Company deleted.")
		}
	}
}

func (m *Menu) history(ctx context.Context) error {
	for {
		fmt.Fprintln(m.out, "\n===== Calculation history =====")
		summaries, err := m.svc.History(ctx)
		if err != nil {
			fmt.Fprintf(m.out, "Failed to list history: %v\n", err)
			return nil
		}
		if len(summaries) == 0 {
			fmt.Fprintln(m.out, "No saved calculations.")
			return nil
		}

		for i, s := range summaries {
			when := time.Unix(s.CreatedAt, 0).Format("02/01/2006 15:04")
			fmt.Fprintf(m.out, "%d. [%s] %s - %s\n", i+1, when, s.Name, s.CompanyName)
		}
		choice, err := m.p.readInt("Select a calculation (0 to go back): ")
		if err != nil {
			return err
		}
		if choice < 1 || choice > len(summaries) {
			return nil
		}

		rec, err := m.svc.Calculation(ctx, summaries[choice-1].ID)
		if err != nil {
			fmt.Fprintf(m.out, "Failed to load calculation: %v\n", err)
			continue
		}

		fmt.Fprintf(m.out, "\n===== %s (%s) =====\n", rec.Name, rec.CompanyName)
		render.Result(m.out, rec.Input, &rec.Result)

		fmt.Fprintln(m.out, "\n1. Repeat this calculation")
		fmt.Fprintln(m.out, "2. Delete this calculation")
		fmt.Fprintln(m.out, "0. Back")

		sub, err := m.p.readInt("Select an option: ")
		if err != nil {
			return err
		}
		switch sub {
		case 1:
			res, err := m.svc.Recalculate(ctx, rec.ID)
			if err != nil {
				fmt.Fprintf(m.out, "Failed to recalculate: %v\n", err)
				continue
			}
			render.Result(m.out, rec.Input, res)
		case 2:
			sure, err := m.p.readYesNo("Delete this calculation? (y/n): ")
			if err != nil {
				return err
			}
			if !sure {
				continue
			}
			if err := m.svc.DeleteCalculation(ctx, rec.ID); err != nil {
				fmt.Fprintf(m.out, "Failed to delete: %v\n", err)
				continue
			}
			fmt.Fprintln(m.out, "Calculation deleted.")
		}
	}
}
