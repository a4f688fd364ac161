package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVisitRecordCalendarHelpers(t *testing.T) {
	v := VisitRecord{Timestamp: time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)}

	assert.Equal(t, "March", v.MonthName())
	assert.Equal(t, 2025, v.Year())
	assert.Equal(t, 11, v.ISOWeek())
	assert.True(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC).Equal(v.Date()))
}

func TestVisitRecordSameDay(t *testing.T) {
	v := VisitRecord{Timestamp: time.Date(2025, 3, 15, 23, 59, 0, 0, time.UTC)}

	assert.True(t, v.SameDay(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, v.SameDay(time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)), "time of day is ignored")
	assert.False(t, v.SameDay(time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)))
}

func TestSentinelDateIsStable(t *testing.T) {
	assert.Equal(t, 2000, SentinelDate.Year())
	assert.Equal(t, time.January, SentinelDate.Month())
	assert.Equal(t, time.UTC, SentinelDate.Location())
}

func TestFilterShowAll(t *testing.T) {
	assert.True(t, Filter{Mode: ModeShowAll}.ShowAll())
	assert.False(t, Filter{Mode: ModeMonthly}.ShowAll())
}
