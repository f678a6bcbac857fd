package models

import "time"

// WindowDays is the fixed window length shared by all accumulated
// sources.
const WindowDays = 16

// Period is one aligned window of the schedule. End is always
// Start + WindowDays.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewPeriod builds the fixed-length window starting at the given anchor.
func NewPeriod(anchor time.Time) Period {
	return Period{Start: anchor, End: anchor.AddDate(0, 0, WindowDays)}
}

// DateRange returns the period as a half-open provider filter range.
func (p Period) DateRange() DateRange {
	return DateRange{Start: p.Start, End: p.End}
}

// StartDate returns the window's start formatted as an ISO-8601 date.
func (p Period) StartDate() string {
	return p.Start.Format(DateLayout)
}
