package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"fieldpulse/internal/config"
	"fieldpulse/internal/dataprocessing"
	apperrors "fieldpulse/internal/errors"
	"fieldpulse/pkg/contracts/domain"
)

// ReportService provides the dashboard and filter operations on top of
// the loaded visit records.
type ReportService struct {
	config     *config.Config
	logger     *slog.Logger
	loader     *dataprocessing.Loader
	resolver   *dataprocessing.Resolver
	summarizer *dataprocessing.Summarizer

	mu      sync.RWMutex
	records []domain.VisitRecord
	stats   dataprocessing.LoadStats
	loaded  bool
	loadErr error

	// Source fingerprint at the time of the last load. The snapshot is
	// keyed on it: a changed file is re-read on the next request.
	sourceMod  time.Time
	sourceSize int64
}

// NewReportService creates a new report service. Data is loaded on
// first use; call Reload to load eagerly.
func NewReportService(cfg *config.Config, logger *slog.Logger, loader *dataprocessing.Loader, resolver *dataprocessing.Resolver, summarizer *dataprocessing.Summarizer) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("ReportService initialized",
		slog.String("data_file", cfg.Data.File),
		slog.String("currency_symbol", cfg.Data.CurrencySymbol))

	return &ReportService{
		config:     cfg,
		logger:     logger,
		loader:     loader,
		resolver:   resolver,
		summarizer: summarizer,
	}
}

// Reload loads the visit records from the configured source, replacing
// the in-memory set. The loader falls back to a synthetic data set when
// the source is unusable, so an error here means something pathological
// happened.
func (rs *ReportService) Reload(ctx context.Context) error {
	mod, size, _ := rs.sourceFingerprint()
	records, stats, err := rs.loader.Load(ctx)

	rs.mu.Lock()
	rs.records = records
	rs.stats = stats
	rs.loaded = true
	rs.loadErr = err
	rs.sourceMod = mod
	rs.sourceSize = size
	rs.mu.Unlock()

	if err != nil {
		rs.logger.ErrorContext(ctx, "data reload failed",
			slog.String("error", err.Error()))
		return apperrors.NewSourceUnavailableError(rs.config.Data.File, err)
	}

	rs.logger.InfoContext(ctx, "data reloaded",
		slog.Int("rows", len(records)),
		slog.Int("sentinel_filled", stats.SentinelFilled),
		slog.Bool("synthetic", stats.Synthetic))

	return nil
}

// snapshot returns the current record set, re-reading the source when
// its fingerprint (modification time + size) no longer matches the one
// recorded at the last load. A missing source keeps serving the cached
// set, which the loader already filled with synthetic data.
func (rs *ReportService) snapshot(ctx context.Context) ([]domain.VisitRecord, error) {
	mod, size, ok := rs.sourceFingerprint()

	rs.mu.RLock()
	fresh := rs.loaded && (!ok || (mod.Equal(rs.sourceMod) && size == rs.sourceSize))
	if fresh {
		records, loadErr := rs.records, rs.loadErr
		rs.mu.RUnlock()
		return records, loadErr
	}
	rs.mu.RUnlock()

	if err := rs.Reload(ctx); err != nil {
		return nil, err
	}

	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.records, rs.loadErr
}

// sourceFingerprint stats the configured data file. ok is false when
// the file cannot be statted.
func (rs *ReportService) sourceFingerprint() (time.Time, int64, bool) {
	info, err := os.Stat(rs.config.Data.File)
	if err != nil {
		return time.Time{}, 0, false
	}
	return info.ModTime(), info.Size(), true
}

// Stats returns the statistics from the most recent load.
func (rs *ReportService) Stats() dataprocessing.LoadStats {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.stats
}

// DashboardView builds the initial dashboard: all rows summarized with
// no filter applied, plus the option sets for the filter controls. A
// failed load degrades to an empty table with single-entry option sets
// for the current month and year, and an advisory message for the
// page, rather than an error page.
func (rs *ReportService) DashboardView(ctx context.Context) domain.DashboardView {
	records, err := rs.snapshot(ctx)
	if err != nil {
		rs.logger.ErrorContext(ctx, "dashboard degraded to empty view",
			slog.String("error", err.Error()))

		now := time.Now()
		return domain.DashboardView{
			Rows:         []domain.PerformanceRow{},
			Months:       []string{now.Month().String()},
			Years:        []int{now.Year()},
			Regions:      append([]string{domain.RegionAll}, rs.config.Data.Regions...),
			ErrorMessage: fmt.Sprintf("Error loading data: %v", err),
		}
	}

	rows := rs.summarizer.Summarize(ctx, records, domain.Filter{Mode: domain.ModeShowAll})
	options := dataprocessing.BuildOptions(records, rs.config.Data.Regions)

	return domain.DashboardView{
		Rows:    rows,
		Months:  options.Months,
		Years:   options.Years,
		Regions: options.Regions,
	}
}

// Filter resolves the raw filter request and returns the matching
// performance rows. Unusable filter values degrade to the show-all
// behavior inside the resolver; only a failed load yields an error.
func (rs *ReportService) Filter(ctx context.Context, req domain.FilterRequest) ([]domain.PerformanceRow, error) {
	records, err := rs.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	filter := rs.resolver.Resolve(ctx, req)
	return rs.summarizer.Summarize(ctx, records, filter), nil
}
