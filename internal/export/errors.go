package export

import (
	"errors"
	"fmt"

	"facturex/pkg/models"
)

// Common export errors
var (
	// ErrNoInvoices is returned when the date-filtered invoice set is empty.
	// No export file is ever produced for an empty set.
	ErrNoInvoices = errors.New("no invoices to export")

	// ErrUnknownFormat is returned when a format name cannot be resolved to
	// one of the supported export formats.
	ErrUnknownFormat = errors.New("unknown export format")
)

// EmptyRangeError reports an empty filtered invoice set. Its message is the
// French text shown to the user and distinguishes "no invoices at all" from
// "none in this range" by carrying the pre-filter count.
type EmptyRangeError struct {
	// Range is the requested date filter (nil for unfiltered exports).
	Range *models.DateRange

	// Total is the invoice count before filtering.
	Total int
}

// Error implements the error interface.
func (e *EmptyRangeError) Error() string {
	return fmt.Sprintf("aucune facture à exporter pour la période %s (%d facture(s) au total avant filtrage)",
		e.Range.Describe(), e.Total)
}

// Unwrap allows errors.Is(err, ErrNoInvoices).
func (e *EmptyRangeError) Unwrap() error {
	return ErrNoInvoices
}

// ExportError wraps failures with the operation and target format.
type ExportError struct {
	// Op is the operation that failed (e.g. "Export", "Save").
	Op string

	// Format is the target export format.
	Format Format

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ExportError) Error() string {
	return fmt.Sprintf("export: %s (%s) failed: %v", e.Op, e.Format, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ExportError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *ExportError) Is(target error) bool {
	return errors.Is(e.Err, target)
}
