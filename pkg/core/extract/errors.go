// Package extract turns a company page into aligned per-year metric series:
// table location, row selection, numeric coercion and year alignment.
package extract

import (
	"errors"
	"fmt"

	"financial_analyzer/pkg/models"
)

// ErrRowNotFound matches both RowNotFoundError and AmbiguousRowError via errors.Is.
var ErrRowNotFound = errors.New("row not found")

// StructureError reports a named section that is missing or holds no table.
type StructureError struct {
	Section string
}

func (e *StructureError) Error() string {
	return "Could not locate financial tables on page."
}

// TableParseError reports a table whose rows could not be read into a grid.
type TableParseError struct {
	Section string
	Detail  string
}

func (e *TableParseError) Error() string {
	return "Error reading financial tables."
}

// RowNotFoundError reports that no row label matched the keyword pattern.
type RowNotFoundError struct {
	Pattern string
}

func (e *RowNotFoundError) Error() string {
	return fmt.Sprintf("row not found for keyword %q", e.Pattern)
}

func (e *RowNotFoundError) Is(target error) bool { return target == ErrRowNotFound }

// AmbiguousRowError reports several rows matching where one was expected.
// Outwardly it reads the same as RowNotFoundError.
type AmbiguousRowError struct {
	Pattern string
	Count   int
}

func (e *AmbiguousRowError) Error() string {
	return fmt.Sprintf("row not found for keyword %q", e.Pattern)
}

func (e *AmbiguousRowError) Is(target error) bool { return target == ErrRowNotFound }

// MissingMetricError reports a required metric row that is absent or structurally empty.
type MissingMetricError struct {
	Metric  models.Metric
	Company string
}

func (e *MissingMetricError) Error() string {
	return fmt.Sprintf("%s data not found for company '%s'.", e.Metric.DisplayName(), e.Company)
}

// InsufficientYearsError reports that the required rows share no reporting year.
type InsufficientYearsError struct{}

func (e *InsufficientYearsError) Error() string {
	return "Data for some years could not be parsed correctly."
}
