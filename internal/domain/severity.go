package domain

import (
	"strings"
	"time"
)

// Severity is the run-wide priority derived from all outcomes. It picks the
// notification subject.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityAlert   Severity = "alert"
)

// SeverityFor applies strict priority over the statuses of one run: any
// FALSE, ERROR or UNKNOWN is an alert, otherwise any WARNING is a warning,
// otherwise the run succeeded. UNKNOWN is alert-level because its cause is
// indeterminate.
func SeverityFor(statuses []Status) Severity {
	warning := false
	for _, s := range statuses {
		switch s {
		case StatusFalse, StatusError, StatusUnknown:
			return SeverityAlert
		case StatusWarning:
			warning = true
		}
	}
	if warning {
		return SeverityWarning
	}
	return SeveritySuccess
}

// SeverityForOutcomes is SeverityFor over the outcomes' statuses.
func SeverityForOutcomes(outcomes []CheckOutcome) Severity {
	statuses := make([]Status, 0, len(outcomes))
	for _, o := range outcomes {
		statuses = append(statuses, o.Status)
	}
	return SeverityFor(statuses)
}

// SubjectDateLayout is the date format substituted for {date} in subjects.
const SubjectDateLayout = "2006-01-02"

// SubjectTemplates holds one subject line per severity plus the subject used
// when the run could not reach the data source at all. {date} is replaced by
// the run date.
type SubjectTemplates struct {
	Alert   string `yaml:"alert"   json:"alert,omitempty"`
	Warning string `yaml:"warning" json:"warning,omitempty"`
	Success string `yaml:"success" json:"success,omitempty"`
	Fatal   string `yaml:"fatal"   json:"fatal,omitempty"`
}

// DefaultSubjectTemplates returns the built-in subject lines.
func DefaultSubjectTemplates() SubjectTemplates {
	return SubjectTemplates{
		Alert:   "🚨 DATA INTEGRITY ALERT: failures found on {date}",
		Warning: "⚠️ DATA INTEGRITY WARNING: partial inconsistencies on {date}",
		Success: "✅ Data Integrity Check SUCCESS on {date}",
		Fatal:   "FATAL: Database Integrity Check Failed",
	}
}

// withDefaults fills empty templates from DefaultSubjectTemplates.
func (t SubjectTemplates) withDefaults() SubjectTemplates {
	d := DefaultSubjectTemplates()
	if t.Alert == "" {
		t.Alert = d.Alert
	}
	if t.Warning == "" {
		t.Warning = d.Warning
	}
	if t.Success == "" {
		t.Success = d.Success
	}
	if t.Fatal == "" {
		t.Fatal = d.Fatal
	}
	return t
}

// Subject returns the subject line for a completed run.
func (t SubjectTemplates) Subject(sev Severity, now time.Time) string {
	t = t.withDefaults()
	var tmpl string
	switch sev {
	case SeverityAlert:
		tmpl = t.Alert
	case SeverityWarning:
		tmpl = t.Warning
	default:
		tmpl = t.Success
	}
	return substituteDate(tmpl, now)
}

// FatalSubject returns the subject line for a run aborted at startup.
func (t SubjectTemplates) FatalSubject(now time.Time) string {
	return substituteDate(t.withDefaults().Fatal, now)
}

func substituteDate(tmpl string, now time.Time) string {
	return strings.ReplaceAll(tmpl, "{date}", now.Format(SubjectDateLayout))
}
