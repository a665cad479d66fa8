package domain

import (
	"errors"
	"fmt"
	"strings"
)

// CheckDefinition is one declarative validation: a query plus how to read
// its verdict. Definitions are created at configuration load and never
// mutated.
type CheckDefinition struct {
	Name         string `yaml:"name"                json:"name"`
	Description  string `yaml:"description"         json:"description"`
	Query        string `yaml:"query"               json:"query"`
	StatusColumn string `yaml:"status_check_column" json:"status_check_column"`
	MultiRow     bool   `yaml:"multi_row"           json:"multi_row"`
}

// Validate checks that the definition can be executed.
func (d CheckDefinition) Validate() error {
	var errs []string
	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(d.Query) == "" {
		errs = append(errs, "query is required")
	}
	if strings.TrimSpace(d.StatusColumn) == "" {
		errs = append(errs, "status_check_column is required")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Registry is the ordered sequence of checks for one run.
type Registry []CheckDefinition

// Validate checks every definition and that names are unique.
func (r Registry) Validate() error {
	if len(r) == 0 {
		return errors.New("at least one check is required")
	}
	seen := make(map[string]int, len(r))
	for i, d := range r {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("checks[%d]: %w", i, err)
		}
		if prev, ok := seen[d.Name]; ok {
			return fmt.Errorf("checks[%d]: duplicate name %q (first defined at checks[%d])", i, d.Name, prev)
		}
		seen[d.Name] = i
	}
	return nil
}

// Find returns the check with the given name.
func (r Registry) Find(name string) (CheckDefinition, bool) {
	for _, d := range r {
		if d.Name == name {
			return d, true
		}
	}
	return CheckDefinition{}, false
}

// CheckOutcome is the reduced result of running one check. Details is never
// empty: failures carry a single Error column describing what went wrong.
type CheckOutcome struct {
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Status       Status    `json:"status"`
	Details      ResultSet `json:"details"`
	MultiRow     bool      `json:"multi_row"`
	StatusColumn string    `json:"status_check_column"`
	Err          string    `json:"error,omitempty"`
}

// ErrorColumn is the single column of the details attached to a failed check.
const ErrorColumn = "Error"

// FailedOutcome builds the ERROR outcome for def, keeping its metadata so the
// report can render it like any other check.
func FailedOutcome(def CheckDefinition, err error) CheckOutcome {
	msg := err.Error()
	return CheckOutcome{
		Name:         def.Name,
		Description:  def.Description,
		Status:       StatusError,
		Details:      ResultSet{Columns: []string{ErrorColumn}, Rows: [][]any{{msg}}},
		MultiRow:     def.MultiRow,
		StatusColumn: def.StatusColumn,
		Err:          msg,
	}
}
