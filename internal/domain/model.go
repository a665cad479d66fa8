package domain

import "time"

// Document is the compiled, renderer-independent report for one run.
type Document struct {
	Title       string        `json:"title"`
	Subtitle    string        `json:"subtitle,omitempty"`
	GeneratedAt time.Time     `json:"generated_at"`
	Severity    Severity      `json:"severity"`
	HasIssues   bool          `json:"has_issues"`
	Banner      string        `json:"banner"`
	Summary     Summary       `json:"summary"`
	Entries     []ReportEntry `json:"entries"`
	Revision    string        `json:"revision,omitempty"`

	// Fatal is set when the run aborted before any check executed.
	Fatal string `json:"fatal,omitempty"`
}

// Summary counts outcomes per status.
type Summary struct {
	Total    int            `json:"total"`
	Failing  int            `json:"failing"`
	ByStatus map[Status]int `json:"by_status"`
	Text     string         `json:"text"`
}

// DetailsKind selects how a report entry's details are laid out.
type DetailsKind string

const (
	// KindKeyValue renders one field per line: single-row checks and
	// execution errors of single-row checks.
	KindKeyValue DetailsKind = "key_value"
	// KindTable renders one line per record and one column per field.
	KindTable DetailsKind = "table"
)

// ReportEntry is one check rendered in the report.
type ReportEntry struct {
	Name        string      `json:"name"`
	Status      Status      `json:"status"`
	Description string      `json:"description"`
	Kind        DetailsKind `json:"kind"`
	Columns     []Column    `json:"columns"`
	Rows        [][]Cell    `json:"rows"`
	Caption     string      `json:"caption,omitempty"`
}

// Column is a details column. Key is the raw field name, Label its display
// form.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Cell is one formatted value. Highlight is set on the status-bearing cell
// and carries the status its text parses to.
type Cell struct {
	Text      string `json:"text"`
	Highlight Status `json:"highlight,omitempty"`
}
