package domain

import (
	"time"
)

// RegionAll is the sentinel region value meaning "no region filter".
const RegionAll = "All"

// FilterMode identifies the time window a filter request asks for.
type FilterMode string

const (
	ModeShowAll FilterMode = ""
	ModeDaily   FilterMode = "daily"
	ModeWeekly  FilterMode = "weekly"
	ModeMonthly FilterMode = "monthly"
)

// FilterRequest is the raw, untrusted filter input from the boundary
// layer. Everything is a string because it arrives from form fields or
// JSON; it is resolved into a typed Filter exactly once.
type FilterRequest struct {
	Mode      string `json:"time_filter" validate:"omitempty,max=20"`
	Month     string `json:"month" validate:"omitempty,max=20"`
	Year      string `json:"year" validate:"omitempty,max=8"`
	Region    string `json:"state" validate:"omitempty,max=64"`
	StartDate string `json:"start_date" validate:"omitempty,max=16"`
	EndDate   string `json:"end_date" validate:"omitempty,max=16"`
}

// Filter is the resolved form of a FilterRequest. Exactly the fields
// relevant to Mode are populated; the aggregation engine never parses
// strings. A request axis that failed to parse resolves to ModeShowAll
// rather than to an error.
type Filter struct {
	Mode   FilterMode
	Day    time.Time  // ModeDaily: the single calendar date to keep
	Start  time.Time  // ModeWeekly: inclusive range start
	End    time.Time  // ModeWeekly: inclusive range end
	Month  time.Month // ModeMonthly
	Year   int        // ModeMonthly
	Region string     // RegionAll or an exact region value
}

// ShowAll reports whether the filter applies no time restriction.
func (f Filter) ShowAll() bool {
	return f.Mode == ModeShowAll
}
