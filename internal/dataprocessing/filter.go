package dataprocessing

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"fieldpulse/internal/infrastructure"
	"fieldpulse/pkg/contracts/domain"
)

// dateLayouts are the accepted formats for start/end date parameters:
// the HTML date-input format first, then day-first variants.
var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
}

// Resolver turns raw filter requests into typed Filters. Resolution
// happens exactly once per request; the aggregation engine downstream
// never sees raw strings. Any axis that fails to parse degrades to
// show-all for that axis, never to an error.
type Resolver struct {
	logger  *slog.Logger
	metrics *infrastructure.Metrics
}

// NewResolver creates a filter resolver.
func NewResolver(logger *slog.Logger, metrics *infrastructure.Metrics) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		logger:  logger.With(slog.String("component", "filter_resolver")),
		metrics: metrics,
	}
}

// Resolve validates and types a raw filter request.
func (r *Resolver) Resolve(ctx context.Context, req domain.FilterRequest) domain.Filter {
	filter := domain.Filter{
		Mode:   domain.ModeShowAll,
		Region: strings.TrimSpace(req.Region),
	}
	if filter.Region == "" {
		filter.Region = domain.RegionAll
	}

	switch strings.ToLower(strings.TrimSpace(req.Mode)) {
	case "daily":
		r.resolveDaily(ctx, req, &filter)
	case "weekly":
		r.resolveWeekly(ctx, req, &filter)
	case "monthly":
		r.resolveMonthly(ctx, req, &filter)
	default:
		// "", "none" and anything unrecognized mean no time filter.
	}

	return filter
}

// resolveDaily keeps a single calendar date. A missing date is the
// show-all shortcut; an unparseable one degrades the same way so a bad
// input never empties the result silently.
func (r *Resolver) resolveDaily(ctx context.Context, req domain.FilterRequest, filter *domain.Filter) {
	start := strings.TrimSpace(req.StartDate)
	if start == "" {
		return
	}

	day, ok := parseDate(start)
	if !ok {
		r.fallback(ctx, "daily_start_date", start)
		return
	}

	filter.Mode = domain.ModeDaily
	filter.Day = day
}

// resolveWeekly keeps an inclusive [start, end] date range. Both bounds
// are required; a missing or unparseable bound degrades to show-all.
func (r *Resolver) resolveWeekly(ctx context.Context, req domain.FilterRequest, filter *domain.Filter) {
	start := strings.TrimSpace(req.StartDate)
	end := strings.TrimSpace(req.EndDate)
	if start == "" || end == "" {
		return
	}

	startDate, okStart := parseDate(start)
	if !okStart {
		r.fallback(ctx, "weekly_start_date", start)
		return
	}
	endDate, okEnd := parseDate(end)
	if !okEnd {
		r.fallback(ctx, "weekly_end_date", end)
		return
	}

	filter.Mode = domain.ModeWeekly
	filter.Start = startDate
	filter.End = endDate
}

// resolveMonthly keeps a (month, year) pair. Month accepts a 1-12
// number, a full month name, or a 3-letter abbreviation, tried in that
// order. Either field missing or unparseable degrades to show-all.
func (r *Resolver) resolveMonthly(ctx context.Context, req domain.FilterRequest, filter *domain.Filter) {
	monthRaw := strings.TrimSpace(req.Month)
	yearRaw := strings.TrimSpace(req.Year)
	if monthRaw == "" || yearRaw == "" {
		return
	}

	month, ok := ResolveMonth(monthRaw)
	if !ok {
		r.fallback(ctx, "month", monthRaw)
		return
	}

	year, err := strconv.Atoi(yearRaw)
	if err != nil {
		r.fallback(ctx, "year", yearRaw)
		return
	}

	filter.Mode = domain.ModeMonthly
	filter.Month = month
	filter.Year = year
}

// ResolveMonth resolves a month given as a 1-12 number, a full English
// name, or a 3-letter abbreviation. Numeric parse is attempted first,
// then full name, then abbreviation; the first success wins.
func ResolveMonth(raw string) (time.Month, bool) {
	if n, err := strconv.Atoi(raw); err == nil {
		if n >= 1 && n <= 12 {
			return time.Month(n), true
		}
		return 0, false
	}

	if t, err := time.Parse("January", raw); err == nil {
		return t.Month(), true
	}

	if t, err := time.Parse("Jan", raw); err == nil {
		return t.Month(), true
	}

	return 0, false
}

// parseDate parses a filter date parameter, trying each accepted
// layout in order.
func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// fallback records that a filter axis degraded to show-all.
func (r *Resolver) fallback(ctx context.Context, axis, value string) {
	r.logger.WarnContext(ctx, "filter parameter unusable, axis degraded to show-all",
		slog.String("axis", axis),
		slog.String("value", value))
	if r.metrics != nil {
		r.metrics.FilterFallbacks.WithLabelValues(axis).Inc()
	}
}
