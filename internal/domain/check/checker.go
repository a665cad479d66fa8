package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/abdidvp/integrity/internal/domain"
)

// Executor runs check definitions against a data source.
type Executor struct {
	source domain.DataSource
	logger *slog.Logger
}

// NewExecutor creates an Executor. A nil logger discards output.
func NewExecutor(source domain.DataSource, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Executor{source: source, logger: logger}
}

// Run executes one check and reduces its rows to a CheckOutcome. It never
// returns an error: query failures, empty results and malformed rows all
// become ERROR outcomes whose details describe the failure.
func (e *Executor) Run(ctx context.Context, def domain.CheckDefinition) (outcome domain.CheckOutcome) {
	log := e.logger.With("check", def.Name, "multi_row", def.MultiRow)
	log.Info("executing check")

	defer func() {
		if r := recover(); r != nil {
			outcome = domain.FailedOutcome(def, fmt.Errorf("check panicked: %v", r))
		}
		if outcome.Err != "" {
			log.Error("check failed", "error", outcome.Err)
			return
		}
		log.Info("check finished", "status", outcome.Status, "rows", outcome.Details.Len())
	}()

	if e.source == nil {
		return domain.FailedOutcome(def, errors.New("no data source configured"))
	}

	rs, err := e.source.Query(ctx, def.Query)
	if err != nil {
		return domain.FailedOutcome(def, err)
	}

	if rs.IsEmpty() {
		log.Warn("check returned no rows")
		return domain.FailedOutcome(def, domain.ErrEmptyResult)
	}

	if def.MultiRow {
		return reduceMultiRow(def, rs)
	}
	return reduceSingleRow(def, rs)
}

// RunAll executes the registry in order, one check at a time.
func (e *Executor) RunAll(ctx context.Context, checks domain.Registry) []domain.CheckOutcome {
	outcomes := make([]domain.CheckOutcome, 0, len(checks))
	for _, def := range checks {
		outcomes = append(outcomes, e.Run(ctx, def))
	}
	return outcomes
}

// reduceSingleRow reads the verdict from the first row. A missing status
// column yields UNKNOWN rather than an error.
func reduceSingleRow(def domain.CheckDefinition, rs domain.ResultSet) domain.CheckOutcome {
	head := rs.Head()
	status := domain.StatusUnknown
	if v, ok := head.Row(0).Get(def.StatusColumn); ok {
		status = domain.ParseStatus(StatusText(v))
	}

	return domain.CheckOutcome{
		Name:         def.Name,
		Description:  def.Description,
		Status:       status,
		Details:      head,
		MultiRow:     false,
		StatusColumn: def.StatusColumn,
	}
}

// reduceMultiRow folds every row's status value into one verdict and keeps
// the whole result set as details.
func reduceMultiRow(def domain.CheckDefinition, rs domain.ResultSet) domain.CheckOutcome {
	idx := rs.ColumnIndex(def.StatusColumn)
	if idx < 0 {
		return domain.FailedOutcome(def, fmt.Errorf("%w: %q (columns: %s)",
			domain.ErrStatusColumnMissing, def.StatusColumn, strings.Join(rs.Columns, ", ")))
	}

	values := make([]string, 0, rs.Len())
	for i, row := range rs.Rows {
		if idx >= len(row) {
			return domain.FailedOutcome(def, fmt.Errorf("row %d has %d values, expected %d", i, len(row), len(rs.Columns)))
		}
		values = append(values, strings.ToUpper(StatusText(row[idx])))
	}

	return domain.CheckOutcome{
		Name:         def.Name,
		Description:  def.Description,
		Status:       domain.ReduceRowStatuses(values),
		Details:      rs,
		MultiRow:     true,
		StatusColumn: def.StatusColumn,
	}
}

// StatusText converts a status cell to text before parsing.
func StatusText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}
