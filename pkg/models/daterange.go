package models

import "time"

// DateRange is an optional inclusive issue-date filter. Either bound may be
// nil; a nil range (or a range with both bounds nil) means no filtering.
type DateRange struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// IsBounded reports whether at least one bound is set.
func (r *DateRange) IsBounded() bool {
	return r != nil && (r.From != nil || r.To != nil)
}

// Describe returns a French human-readable description of the range,
// suitable for error messages shown to the user.
func (r *DateRange) Describe() string {
	const layout = "02/01/2006"
	switch {
	case !r.IsBounded():
		return "toutes dates"
	case r.From != nil && r.To != nil:
		return "du " + r.From.Format(layout) + " au " + r.To.Format(layout)
	case r.From != nil:
		return "à partir du " + r.From.Format(layout)
	default:
		return "jusqu'au " + r.To.Format(layout)
	}
}
