package dataprocessing

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"fieldpulse/pkg/contracts/domain"
)

// Summarizer aggregates filtered visit records into per-agent
// performance rows.
type Summarizer struct {
	logger         *slog.Logger
	currencySymbol string
}

// SummarizerConfig holds configuration options for the Summarizer.
type SummarizerConfig struct {
	CurrencySymbol string // Prefix for formatted amounts
}

// NewSummarizer creates a new performance summarizer.
func NewSummarizer(logger *slog.Logger, config SummarizerConfig) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	if config.CurrencySymbol == "" {
		config.CurrencySymbol = "₹"
	}

	return &Summarizer{
		logger:         logger.With(slog.String("component", "summarizer")),
		currencySymbol: config.CurrencySymbol,
	}
}

// Summarize applies the filter to the record set and aggregates the
// survivors by agent. The result is ordered by agent name ascending.
// An empty input or an empty filtered set yields an empty slice, never
// an error.
func (s *Summarizer) Summarize(ctx context.Context, records []domain.VisitRecord, filter domain.Filter) []domain.PerformanceRow {
	before := len(records)
	filtered := applyTimeFilter(records, filter)
	afterTime := len(filtered)
	filtered = applyRegionFilter(filtered, filter.Region)

	s.logger.InfoContext(ctx, "filters applied",
		slog.Int("input_rows", before),
		slog.Int("after_time_filter", afterTime),
		slog.Int("after_region_filter", len(filtered)),
		slog.String("mode", string(filter.Mode)),
		slog.String("region", filter.Region))

	if len(filtered) == 0 {
		return []domain.PerformanceRow{}
	}

	type agentAgg struct {
		visits    int
		locations map[string]struct{}
		units     int64
		amount    float64
	}

	groups := make(map[string]*agentAgg)
	for _, record := range filtered {
		agg, ok := groups[record.AgentName]
		if !ok {
			agg = &agentAgg{locations: make(map[string]struct{})}
			groups[record.AgentName] = agg
		}
		agg.visits++
		agg.locations[record.LocationName] = struct{}{}
		agg.units += record.UnitsSold
		agg.amount += record.Amount
	}

	rows := make([]domain.PerformanceRow, 0, len(groups))
	for agent, agg := range groups {
		rows = append(rows, domain.PerformanceRow{
			AgentName:       agent,
			Visits:          agg.visits,
			UniqueLocations: len(agg.locations),
			UnitsSold:       agg.units,
			Amount:          s.FormatAmount(agg.amount),
			AmountRaw:       agg.amount,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].AgentName < rows[j].AgentName
	})

	s.logger.InfoContext(ctx, "performance rows generated",
		slog.Int("agent_count", len(rows)))

	return rows
}

// FormatAmount renders a sales amount as a currency string with
// thousands separators and two decimal places, e.g. "₹1,234.50".
func (s *Summarizer) FormatAmount(amount float64) string {
	return s.currencySymbol + humanize.FormatFloat("#,###.##", amount)
}

// applyTimeFilter keeps the records matching the filter's time window.
func applyTimeFilter(records []domain.VisitRecord, filter domain.Filter) []domain.VisitRecord {
	switch filter.Mode {
	case domain.ModeDaily:
		return keep(records, func(v domain.VisitRecord) bool {
			return v.SameDay(filter.Day)
		})
	case domain.ModeWeekly:
		return keep(records, func(v domain.VisitRecord) bool {
			d := v.Date()
			return !d.Before(dateOnly(filter.Start)) && !d.After(dateOnly(filter.End))
		})
	case domain.ModeMonthly:
		return keep(records, func(v domain.VisitRecord) bool {
			return v.Timestamp.Month() == filter.Month && v.Timestamp.Year() == filter.Year
		})
	default:
		return records
	}
}

// applyRegionFilter keeps records with an exactly matching region.
// Matching is case-sensitive: the configured region list is uppercase
// and stored values are compared verbatim.
func applyRegionFilter(records []domain.VisitRecord, region string) []domain.VisitRecord {
	if region == "" || region == domain.RegionAll {
		return records
	}
	return keep(records, func(v domain.VisitRecord) bool {
		return v.Region == region
	})
}

func keep(records []domain.VisitRecord, pred func(domain.VisitRecord) bool) []domain.VisitRecord {
	out := make([]domain.VisitRecord, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
