package report

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/abdidvp/integrity/internal/domain"
)

const (
	issuesBanner  = "🚨 Issues Found (Action Required)"
	allGoodBanner = "✅ Data Integrity Check Status: ALL GOOD"
	fatalBanner   = "FATAL ERROR: Database Connection Failed"
	tableCaption  = "Validation details per record/day:"

	titleTimeLayout = "2006-01-02 15:04"
)

// Options carries the per-run inputs of the compiler that do not come from
// the outcomes themselves.
type Options struct {
	Title       string
	SourceLabel string
	Now         time.Time
	Revision    string
}

// Compile builds the report for one run. Outcomes that did not pass come
// first; relative order inside each group is kept and the input slice is not
// modified. Compiling the same outcomes with the same Options always yields
// an equal Document.
func Compile(outcomes []domain.CheckOutcome, opts Options) *domain.Document {
	doc := newDocument(opts)
	doc.Severity = domain.SeverityForOutcomes(outcomes)
	doc.Summary = summarize(outcomes)
	doc.HasIssues = doc.Summary.Failing > 0

	if doc.HasIssues {
		doc.Banner = issuesBanner
	} else {
		doc.Banner = allGoodBanner
	}

	doc.Entries = make([]domain.ReportEntry, 0, len(outcomes))
	for _, o := range FailuresFirst(outcomes) {
		doc.Entries = append(doc.Entries, compileEntry(o))
	}
	return doc
}

// CompileFatal builds the alert report sent when the run aborted before any
// check executed.
func CompileFatal(cause error, opts Options) *domain.Document {
	doc := newDocument(opts)
	doc.Severity = domain.SeverityAlert
	doc.HasIssues = true
	doc.Banner = fatalBanner
	doc.Fatal = cause.Error()
	doc.Summary = summarize(nil)
	return doc
}

// FailuresFirst returns a new slice with every non-TRUE outcome ahead of the
// TRUE ones.
func FailuresFirst(outcomes []domain.CheckOutcome) []domain.CheckOutcome {
	sorted := make([]domain.CheckOutcome, 0, len(outcomes))
	for _, o := range outcomes {
		if !o.Status.IsPass() {
			sorted = append(sorted, o)
		}
	}
	for _, o := range outcomes {
		if o.Status.IsPass() {
			sorted = append(sorted, o)
		}
	}
	return sorted
}

func newDocument(opts Options) *domain.Document {
	title := opts.Title
	if title == "" {
		title = domain.DefaultConfig().Report.Title
	}
	doc := &domain.Document{
		Title:       fmt.Sprintf("%s - %s", title, opts.Now.Format(titleTimeLayout)),
		GeneratedAt: opts.Now,
		Revision:    opts.Revision,
	}
	if opts.SourceLabel != "" {
		doc.Subtitle = fmt.Sprintf("Report generated for %s data validation.", opts.SourceLabel)
	}
	return doc
}

func summarize(outcomes []domain.CheckOutcome) domain.Summary {
	s := domain.Summary{
		Total:    len(outcomes),
		ByStatus: make(map[domain.Status]int, len(domain.ValidStatuses)),
	}
	for _, o := range outcomes {
		s.ByStatus[o.Status]++
		if !o.Status.IsPass() {
			s.Failing++
		}
	}

	p := message.NewPrinter(language.English)
	s.Text = p.Sprintf("%d of %d checks need attention", s.Failing, s.Total)
	return s
}

func compileEntry(o domain.CheckOutcome) domain.ReportEntry {
	entry := domain.ReportEntry{
		Name:        o.Name,
		Status:      o.Status,
		Description: o.Description,
	}
	if o.MultiRow {
		entry.Kind = domain.KindTable
		entry.Caption = tableCaption
		entry.Columns, entry.Rows = tableLayout(o)
	} else {
		entry.Kind = domain.KindKeyValue
		entry.Columns, entry.Rows = keyValueLayout(o)
	}
	return entry
}

// tableLayout renders one line per record, highlighting the status column.
func tableLayout(o domain.CheckOutcome) ([]domain.Column, [][]domain.Cell) {
	details := o.Details
	statusIdx := statusColumnIndex(o)

	cols := make([]domain.Column, len(details.Columns))
	for i, c := range details.Columns {
		cols[i] = domain.Column{Key: c, Label: HumanizeColumn(c)}
	}

	rows := make([][]domain.Cell, 0, details.Len())
	for _, values := range details.Rows {
		cells := make([]domain.Cell, len(details.Columns))
		for i := range details.Columns {
			var v any
			if i < len(values) {
				v = values[i]
			}
			cells[i] = domain.Cell{Text: FormatValue(v)}
			if i == statusIdx {
				cells[i].Highlight = domain.ParseStatus(cells[i].Text)
			}
		}
		rows = append(rows, cells)
	}
	return cols, rows
}

// keyValueLayout renders the first record as field/value pairs, labelled
// like table headers.
func keyValueLayout(o domain.CheckOutcome) ([]domain.Column, [][]domain.Cell) {
	cols := []domain.Column{
		{Key: "field", Label: "Field"},
		{Key: "value", Label: "Value"},
	}
	details := o.Details
	if details.IsEmpty() {
		return cols, nil
	}

	statusIdx := statusColumnIndex(o)
	values := details.Rows[0]
	rows := make([][]domain.Cell, 0, len(details.Columns))
	for i, c := range details.Columns {
		var v any
		if i < len(values) {
			v = values[i]
		}
		value := domain.Cell{Text: FormatValue(v)}
		if i == statusIdx {
			value.Highlight = domain.ParseStatus(value.Text)
		}
		rows = append(rows, []domain.Cell{{Text: HumanizeColumn(c)}, value})
	}
	return cols, rows
}

// statusColumnIndex locates the status column in an outcome's details. Error
// details never highlight.
func statusColumnIndex(o domain.CheckOutcome) int {
	if o.Err != "" {
		return -1
	}
	return o.Details.ColumnIndex(o.StatusColumn)
}
