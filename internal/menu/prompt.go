package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/babaz8/contabilita-sas-fisaclita-italiana/internal/models"
)

// errQuit signals that stdin was closed mid-prompt.
var errQuit = errors.New("input closed")

// prompter reads validated values from an input stream, re-prompting on
// bad input instead of failing.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

func (p *prompter) readLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", errQuit
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *prompter) readFloat(prompt string) (float64, error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			fmt.Fprintln(p.out, "Please enter a valid number.")
			continue
		}
		return v, nil
	}
}

func (p *prompter) readNonNegativeFloat(prompt string) (float64, error) {
	for {
		v, err := p.readFloat(prompt)
		if err != nil {
			return 0, err
		}
		if v < 0 {
			fmt.Fprintln(p.out, "The amount must be non-negative.")
			continue
		}
		return v, nil
	}
}

func (p *prompter) readInt(prompt string) (int, error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(p.out, "Please enter a whole number.")
			continue
		}
		return v, nil
	}
}

func (p *prompter) readYesNo(prompt string) (bool, error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes", "s", "si", "sì":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please answer y or n.")
	}
}

func (p *prompter) readName(prompt string) (string, error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
		fmt.Fprintln(p.out, "The name must not be empty.")
	}
}

func (p *prompter) readRole(prompt string) (models.Role, error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return "", err
		}
		role, err := models.ParseRole(line)
		if err != nil {
			fmt.Fprintf(p.out, "Unknown role; use %q or %q.\n",
				models.RoleAccomandante, models.RoleAccomandatario)
			continue
		}
		return role, nil
	}
}
