package domain

import (
	"time"
)

// UnknownField is substituted for missing or blank text fields so that
// grouping and filtering never see an empty key.
const UnknownField = "Unknown"

// SentinelDate replaces timestamps that could not be parsed. Rows are
// kept, not dropped, so input and output row counts always match.
var SentinelDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// VisitRecord is a normalized sales-visit row. One record is one visit
// event by an agent to a location. All fields are populated during
// normalization; Timestamp is either a real parsed time or SentinelDate.
type VisitRecord struct {
	Timestamp    time.Time `json:"timestamp" csv:"Timestamp"`
	AgentName    string    `json:"agent_name" csv:"BDM Name"`
	LocationName string    `json:"location_name" csv:"Shop Name"`
	Region       string    `json:"region" csv:"State"`
	UnitsSold    int64     `json:"units_sold" csv:"Keys Sold"`
	Amount       float64   `json:"amount" csv:"Key Amount"`

	// SentinelFilled marks rows whose source timestamp failed to parse.
	SentinelFilled bool `json:"sentinel_filled,omitempty"`
}

// MonthName returns the English month name of the visit ("March").
func (v VisitRecord) MonthName() string {
	return v.Timestamp.Month().String()
}

// ISOWeek returns the ISO 8601 week number of the visit.
func (v VisitRecord) ISOWeek() int {
	_, week := v.Timestamp.ISOWeek()
	return week
}

// Year returns the calendar year of the visit.
func (v VisitRecord) Year() int {
	return v.Timestamp.Year()
}

// Date returns the visit timestamp truncated to its calendar date.
func (v VisitRecord) Date() time.Time {
	y, m, d := v.Timestamp.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, v.Timestamp.Location())
}

// SameDay reports whether the visit falls on the given calendar date.
func (v VisitRecord) SameDay(day time.Time) bool {
	vy, vm, vd := v.Timestamp.Date()
	dy, dm, dd := day.Date()
	return vy == dy && vm == dm && vd == dd
}
