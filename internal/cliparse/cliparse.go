// Package cliparse turns command-line arguments into validated engine
// inputs for one-shot (non-interactive) runs.
package cliparse

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/models"
)

// ParseError reports a malformed structured flag, e.g. a --partner value
// that is not name:share:role.
type ParseError struct {
	Input   string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %s", e.Input, e.Message)
}

// Options is the parsed CLI invocation.
type Options struct {
	SalesGross float64
	InputVAT   float64
	Expenses   float64
	VATRate    float64
	Partners   []models.Partner

	Year      int
	RulesFile string // optional YAML rule-table override
	DBPath    string
	SaveAs    string // history entry name; empty means compute only
	Company   string // company profile to save under, required with SaveAs
}

// ParsePartner parses a partner flag of the form name:share_percent:role.
func ParsePartner(arg string) (models.Partner, error) {
	parts := strings.Split(arg, ":")
	if len(parts) != 3 {
		return models.Partner{}, &ParseError{
			Input:   arg,
			Message: "want exactly three colon-separated fields name:share_percent:role",
		}
	}

	share, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return models.Partner{}, &ParseError{
			Input:   arg,
			Message: fmt.Sprintf("share %q is not a number", parts[1]),
		}
	}

	role, err := models.ParseRole(parts[2])
	if err != nil {
		return models.Partner{}, &ParseError{
			Input:   arg,
			Message: fmt.Sprintf("role %q is not %q or %q", parts[2], models.RoleAccomandante, models.RoleAccomandatario),
		}
	}

	return models.Partner{Name: parts[0], SharePercent: share, Role: role}, nil
}

// partnerList implements flag.Value for the repeatable --partner flag.
type partnerList []models.Partner

func (l *partnerList) String() string {
	specs := make([]string, len(*l))
	for i, p := range *l {
		specs[i] = fmt.Sprintf("%s:%v:%s", p.Name, p.SharePercent, p.Role)
	}
	return strings.Join(specs, ",")
}

func (l *partnerList) Set(arg string) error {
	p, err := ParsePartner(arg)
	if err != nil {
		return err
	}
	*l = append(*l, p)
	return nil
}

// ParseFlags parses and validates the CLI arguments (everything after the
// program name).
func ParseFlags(args []string) (Options, error) {
	var opts Options
	var partners partnerList

	fs := flag.NewFlagSet("sas-tax", flag.ContinueOnError)
	fs.Float64Var(&opts.SalesGross, "sales-gross", -1, "Revenue for the period, VAT-exclusive")
	fs.Float64Var(&opts.InputVAT, "input-vat", -1, "Deductible VAT paid on purchases")
	fs.Float64Var(&opts.VATRate, "vat-rate", 0.22, "Sales VAT rate, e.g. 0.22")
	fs.Float64Var(&opts.Expenses, "expenses", -1, "Total deductible costs, net of VAT")
	fs.Var(&partners, "partner", "Partner as name:share_percent:role (repeatable)")
	fs.IntVar(&opts.Year, "year", 2025, "Fiscal year of the rule tables")
	fs.StringVar(&opts.RulesFile, "rules", "", "YAML rule-table file overriding the built-in year")
	fs.StringVar(&opts.DBPath, "db", "", "SQLite database path")
	fs.StringVar(&opts.SaveAs, "save", "", "Save the calculation to history under this name")
	fs.StringVar(&opts.Company, "company", "", "Company profile name (required with -save)")

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	opts.Partners = partners

	// Fall back to environment for the database path
	if opts.DBPath == "" {
		opts.DBPath = os.Getenv("SAS_DB_PATH")
	}
	if opts.DBPath == "" {
		opts.DBPath = "./data/sas.db"
	}

	if opts.SalesGross < 0 {
		return Options{}, &models.ValidationError{Field: "sales_gross", Message: "flag -sales-gross is required and must be non-negative"}
	}
	if opts.InputVAT < 0 {
		return Options{}, &models.ValidationError{Field: "input_vat", Message: "flag -input-vat is required and must be non-negative"}
	}
	if opts.Expenses < 0 {
		return Options{}, &models.ValidationError{Field: "expenses", Message: "flag -expenses is required and must be non-negative"}
	}
	if len(opts.Partners) == 0 {
		return Options{}, &models.ValidationError{Field: "partners", Message: "at least one -partner flag is required"}
	}
	if opts.SaveAs != "" && opts.Company == "" {
		return Options{}, &models.ValidationError{Field: "company", Message: "flag -company is required with -save"}
	}

	return opts, nil
}

// Input converts the options to an engine input.
func (o Options) Input() models.FinancialInput {
	return models.FinancialInput{
		SalesGross: o.SalesGross,
		InputVAT:   o.InputVAT,
		VATRate:    o.VATRate,
		Expenses:   o.Expenses,
		Partners:   o.Partners,
	}
}
