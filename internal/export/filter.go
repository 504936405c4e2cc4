package export

import (
	"time"

	"facturex/pkg/models"
)

// FilterByRange selects the invoices whose normalized issue date falls
// inside the optional inclusive range. Without a bounded range the input is
// returned unchanged. Invoices whose issue date cannot be normalized are
// excluded from a bounded filter, never treated as an error.
//
// Bounds compare by calendar day, not by instant: an invoice issued any
// time on the From or To day is kept, whatever zone its date was parsed in.
func FilterByRange(invoices []models.Invoice, rng *models.DateRange) []models.Invoice {
	if !rng.IsBounded() {
		return invoices
	}

	filtered := make([]models.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		issued, ok := NormalizeDate(inv.IssueDate)
		if !ok {
			continue
		}
		day := calendarDay(issued)
		if rng.From != nil && day.Before(calendarDay(*rng.From)) {
			continue
		}
		if rng.To != nil && day.After(calendarDay(*rng.To)) {
			continue
		}
		filtered = append(filtered, inv)
	}
	return filtered
}

// calendarDay collapses t to its calendar date in its own zone, anchored in
// UTC so dates carried in different zones still compare day by day.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
