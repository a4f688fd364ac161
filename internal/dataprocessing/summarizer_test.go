package dataprocessing

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldpulse/pkg/contracts/domain"
)

func newTestSummarizer() *Summarizer {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSummarizer(logger, SummarizerConfig{CurrencySymbol: "₹"})
}

func visit(ts time.Time, agent, location, region string, units int64, amount float64) domain.VisitRecord {
	return domain.VisitRecord{
		Timestamp:    ts,
		AgentName:    agent,
		LocationName: location,
		Region:       region,
		UnitsSold:    units,
		Amount:       amount,
	}
}

func marchRecords() []domain.VisitRecord {
	return []domain.VisitRecord{
		visit(time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC), "A", "S1", "GUJARAT", 5, 100),
		visit(time.Date(2025, 3, 12, 11, 0, 0, 0, time.UTC), "A", "S1", "GUJARAT", 3, 50),
		visit(time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC), "A", "S2", "GUJARAT", 1, 10),
		visit(time.Date(2025, 3, 11, 14, 0, 0, 0, time.UTC), "B", "S3", "DELHI", 2, 75),
	}
}

func TestSummarizeMonthlyAggregation(t *testing.T) {
	s := newTestSummarizer()

	rows := s.Summarize(context.Background(), marchRecords(), domain.Filter{
		Mode:   domain.ModeMonthly,
		Month:  time.March,
		Year:   2025,
		Region: domain.RegionAll,
	})

	require.Len(t, rows, 2)

	// Ordered by agent name ascending
	assert.Equal(t, "A", rows[0].AgentName)
	assert.Equal(t, 2, rows[0].Visits)
	assert.Equal(t, 1, rows[0].UniqueLocations)
	assert.Equal(t, int64(8), rows[0].UnitsSold)
	assert.Equal(t, "₹150.00", rows[0].Amount)
	assert.Equal(t, 150.0, rows[0].AmountRaw)

	assert.Equal(t, "B", rows[1].AgentName)
	assert.Equal(t, 1, rows[1].Visits)
}

func TestSummarizeShowAllKeepsEverything(t *testing.T) {
	s := newTestSummarizer()
	records := marchRecords()

	rows := s.Summarize(context.Background(), records, domain.Filter{
		Mode:   domain.ModeShowAll,
		Region: domain.RegionAll,
	})

	require.Len(t, rows, 2)
	// Agent A: all three visits including the April one
	assert.Equal(t, 3, rows[0].Visits)
	assert.Equal(t, 2, rows[0].UniqueLocations)
	assert.Equal(t, int64(9), rows[0].UnitsSold)
}

func TestSummarizeDaily(t *testing.T) {
	s := newTestSummarizer()

	rows := s.Summarize(context.Background(), marchRecords(), domain.Filter{
		Mode:   domain.ModeDaily,
		Day:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Region: domain.RegionAll,
	})

	require.Len(t, rows, 1)
	assert.Equal(t, "A", rows[0].AgentName)
	assert.Equal(t, 1, rows[0].Visits)
	assert.Equal(t, int64(5), rows[0].UnitsSold)
}

func TestSummarizeWeeklyBoundsAreInclusive(t *testing.T) {
	s := newTestSummarizer()
	records := []domain.VisitRecord{
		visit(time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC), "A", "S1", "GUJARAT", 1, 10),
		visit(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "A", "S1", "GUJARAT", 1, 10),
		visit(time.Date(2025, 3, 16, 23, 59, 0, 0, time.UTC), "A", "S1", "GUJARAT", 1, 10),
		visit(time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC), "A", "S1", "GUJARAT", 1, 10),
	}

	rows := s.Summarize(context.Background(), records, domain.Filter{
		Mode:   domain.ModeWeekly,
		Start:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC),
		Region: domain.RegionAll,
	})

	require.Len(t, rows, 1)
	// Both boundary days are in; the days either side are out.
	assert.Equal(t, 2, rows[0].Visits)
}

func TestSummarizeRegionFilterIsExact(t *testing.T) {
	s := newTestSummarizer()
	records := marchRecords()

	t.Run("exact match", func(t *testing.T) {
		rows := s.Summarize(context.Background(), records, domain.Filter{
			Mode:   domain.ModeShowAll,
			Region: "GUJARAT",
		})
		require.Len(t, rows, 1)
		assert.Equal(t, "A", rows[0].AgentName)
	})

	t.Run("case matters", func(t *testing.T) {
		rows := s.Summarize(context.Background(), records, domain.Filter{
			Mode:   domain.ModeShowAll,
			Region: "gujarat",
		})
		assert.Empty(t, rows)
	})

	t.Run("all regions", func(t *testing.T) {
		rows := s.Summarize(context.Background(), records, domain.Filter{
			Mode:   domain.ModeShowAll,
			Region: domain.RegionAll,
		})
		assert.Len(t, rows, 2)
	})
}

func TestSummarizeEmptyInput(t *testing.T) {
	s := newTestSummarizer()

	rows := s.Summarize(context.Background(), nil, domain.Filter{Mode: domain.ModeShowAll, Region: domain.RegionAll})

	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestSummarizeNoMatchesYieldsEmptySlice(t *testing.T) {
	s := newTestSummarizer()

	rows := s.Summarize(context.Background(), marchRecords(), domain.Filter{
		Mode:   domain.ModeMonthly,
		Month:  time.December,
		Year:   2030,
		Region: domain.RegionAll,
	})

	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestFormatAmount(t *testing.T) {
	s := newTestSummarizer()

	tests := []struct {
		amount float64
		want   string
	}{
		{amount: 150, want: "₹150.00"},
		{amount: 1234.5, want: "₹1,234.50"},
		{amount: 0, want: "₹0.00"},
		{amount: 1000000, want: "₹1,000,000.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, s.FormatAmount(tt.amount))
	}
}

func TestBuildOptions(t *testing.T) {
	records := []domain.VisitRecord{
		visit(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "A", "S1", "GUJARAT", 1, 10),
		visit(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), "A", "S1", "DELHI", 1, 10),
		visit(time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), "B", "S2", "DELHI", 1, 10),
		visit(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), "B", "S2", domain.UnknownField, 1, 10),
	}

	opts := BuildOptions(records, nil)

	// Months in calendar order, not occurrence or alphabetical order
	assert.Equal(t, []string{"January", "March", "December"}, opts.Months)
	assert.Equal(t, []int{2024, 2025}, opts.Years)
	// Regions sorted, All first, Unknown excluded
	assert.Equal(t, []string{domain.RegionAll, "DELHI", "GUJARAT"}, opts.Regions)
}

func TestBuildOptionsFallsBackToConfiguredRegions(t *testing.T) {
	records := []domain.VisitRecord{
		visit(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "A", "S1", domain.UnknownField, 1, 10),
	}

	opts := BuildOptions(records, []string{"KERALA", "GOA"})

	assert.Equal(t, []string{domain.RegionAll, "GOA", "KERALA"}, opts.Regions)
}
