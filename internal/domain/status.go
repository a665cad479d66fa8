package domain

import "strings"

// Status is the verdict of a single check.
type Status string

const (
	StatusTrue    Status = "TRUE"
	StatusFalse   Status = "FALSE"
	StatusWarning Status = "WARNING"
	StatusError   Status = "ERROR"
	StatusUnknown Status = "UNKNOWN"
)

// ValidStatuses enumerates every status a CheckOutcome may carry.
var ValidStatuses = []Status{
	StatusTrue,
	StatusFalse,
	StatusWarning,
	StatusError,
	StatusUnknown,
}

// ParseStatus maps raw source text to a Status. Matching is case-insensitive
// and ignores surrounding whitespace; anything unrecognized is StatusUnknown.
func ParseStatus(raw string) Status {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case StatusTrue, StatusFalse, StatusWarning, StatusError:
		return s
	default:
		return StatusUnknown
	}
}

// IsPass reports whether the status counts as a passing check.
func (s Status) IsPass() bool { return s == StatusTrue }

// IsValid reports whether s is one of the five fixed values.
func (s Status) IsValid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s Status) String() string { return string(s) }

// ReduceRowStatuses folds the upper-cased status values of a multi-row check
// into one verdict. Mixed TRUE and FALSE is a partial failure (WARNING), any
// FALSE without TRUE is FALSE, and everything else is TRUE.
func ReduceRowStatuses(values []string) Status {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		seen[strings.ToUpper(v)] = true
	}

	switch {
	case seen[string(StatusTrue)] && seen[string(StatusFalse)]:
		return StatusWarning
	case seen[string(StatusFalse)]:
		return StatusFalse
	default:
		return StatusTrue
	}
}
