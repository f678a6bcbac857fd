package models

import "time"

// DateLayout is the ISO-8601 date format used for period tags and
// provider filters.
const DateLayout = "2006-01-02"

// DateRange is a half-open date interval [Start, End) matching the
// provider's filter semantics.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange builds a range from start (inclusive) to end (exclusive).
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: start, End: end}
}

// Contains reports whether d falls inside the range.
func (dr DateRange) Contains(d time.Time) bool {
	return !d.Before(dr.Start) && d.Before(dr.End)
}
