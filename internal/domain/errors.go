package domain

import "errors"

var (
	// ErrEmptyResult marks a check whose query returned zero rows.
	ErrEmptyResult = errors.New("query returned 0 rows")

	// ErrStatusColumnMissing marks a multi-row check whose result lacks the
	// status-bearing column.
	ErrStatusColumnMissing = errors.New("status column not found in result")

	// ErrStartupConnection marks a run aborted because the data source was
	// unreachable before any check ran.
	ErrStartupConnection = errors.New("database connection failed")

	// ErrDelivery marks a failed final send of the report.
	ErrDelivery = errors.New("report delivery failed")
)
