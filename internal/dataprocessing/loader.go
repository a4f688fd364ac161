package dataprocessing

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"fieldpulse/internal/config"
	"fieldpulse/internal/errors"
	"fieldpulse/internal/infrastructure"
	"fieldpulse/pkg/contracts/domain"
)

// LoadStats summarizes one ingestion pass for diagnostics.
type LoadStats struct {
	RawRows         int
	SentinelFilled  int
	NumericRepairs  int
	TextRepairs     int
	UniqueAgents    int
	Synthetic       bool
	SyntheticReason string
}

// Loader reads the raw visit table and produces normalized records.
// A Loader is stateless between calls; every Load is a fresh pass over
// the source.
type Loader struct {
	cfg     config.DataConfig
	logger  *slog.Logger
	metrics *infrastructure.Metrics
	layouts []string
}

// NewLoader creates a loader for the configured data source.
func NewLoader(cfg config.DataConfig, logger *slog.Logger, metrics *infrastructure.Metrics) *Loader {
	if logger == nil {
		logger = slog.Default()
	}

	// Day-first layouts tried in order; the configured format wins.
	layouts := []string{
		cfg.DateFormat,
		"02-01-2006 15:04:05",
		"02-01-2006 15:04",
		"02-01-2006",
		"02/01/2006 15:04:05",
		"02/01/2006 15:04",
		"02/01/2006",
		"2-1-2006 15:04",
		"2/1/2006 15:04",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}

	return &Loader{
		cfg:     cfg,
		logger:  logger.With(slog.String("component", "loader")),
		metrics: metrics,
		layouts: layouts,
	}
}

// Load reads the configured source and returns normalized visit
// records. It never returns an error for an unusable source: that case
// degrades to the synthetic fallback dataset with Stats.Synthetic set.
// The returned error is reserved for internal failures that should not
// normally occur.
func (l *Loader) Load(ctx context.Context) ([]domain.VisitRecord, LoadStats, error) {
	rows, err := l.readTable(ctx, l.cfg.File)
	if err != nil {
		l.logger.WarnContext(ctx, "source unusable, serving synthetic data",
			slog.String("file", l.cfg.File),
			slog.String("error", err.Error()))
		if l.metrics != nil {
			l.metrics.SyntheticFallback.Inc()
		}
		records := Synthetic(time.Now())
		return records, LoadStats{
			RawRows:         len(records),
			UniqueAgents:    countUniqueAgents(records),
			Synthetic:       true,
			SyntheticReason: err.Error(),
		}, nil
	}

	records, stats := l.normalize(ctx, rows)

	if len(records) == 0 {
		l.logger.WarnContext(ctx, "source yielded zero usable rows, serving synthetic data",
			slog.String("file", l.cfg.File))
		if l.metrics != nil {
			l.metrics.SyntheticFallback.Inc()
		}
		records = Synthetic(time.Now())
		return records, LoadStats{
			RawRows:         len(records),
			UniqueAgents:    countUniqueAgents(records),
			Synthetic:       true,
			SyntheticReason: "no usable rows",
		}, nil
	}

	return records, stats, nil
}

// rawTable is a parsed but un-normalized source: a header row and data
// rows, both as raw strings.
type rawTable struct {
	header []string
	rows   [][]string
}

// readTable reads the source file into raw rows, dispatching on the
// file extension. CSV is the primary format; XLSX sources are read
// through excelize.
func (l *Loader) readTable(ctx context.Context, path string) (*rawTable, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.NewSourceUnavailableError("data file not accessible", err)
	}
	if info.IsDir() {
		return nil, errors.NewSourceUnavailableError(fmt.Sprintf("%s is a directory", path), nil)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return l.readExcel(ctx, path)
	default:
		return l.readCSV(ctx, path)
	}
}

// readCSV reads a delimited text source. The bytes are decoded as
// UTF-8 first; invalid UTF-8 falls back to ISO 8859-1 so legacy
// exports still load.
func (l *Loader) readCSV(ctx context.Context, path string) (*rawTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewSourceUnavailableError("failed to read data file", err)
	}

	if !utf8.Valid(data) {
		l.logger.InfoContext(ctx, "source is not valid UTF-8, decoding as ISO 8859-1",
			slog.String("file", path))
		decoded, decErr := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if decErr != nil {
			return nil, errors.NewSourceUnavailableError("failed to decode data file", decErr)
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	all, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewSourceUnavailableError("failed to parse CSV", err)
	}
	if len(all) < 2 {
		return nil, errors.NewSourceUnavailableError("CSV has no data rows", nil)
	}

	return &rawTable{header: all[0], rows: all[1:]}, nil
}

// readExcel reads an XLSX workbook, using the first sheet whose first
// row looks like the recognized header.
func (l *Loader) readExcel(ctx context.Context, path string) (*rawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewSourceUnavailableError("failed to open workbook", err)
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) < 2 {
			continue
		}
		if cols := mapColumns(rows[0]); cols[config.ColumnTimestamp] >= 0 {
			l.logger.InfoContext(ctx, "found visit data sheet",
				slog.String("sheet_name", name),
				slog.Int("total_rows", len(rows)))
			return &rawTable{header: rows[0], rows: rows[1:]}, nil
		}
	}

	return nil, errors.NewSourceUnavailableError("no sheet with recognized visit columns", nil)
}

// mapColumns maps recognized column names to their positions in the
// header row. Matching is case-insensitive and whitespace-trimmed, so
// " bdm name " still binds. Missing columns map to -1.
func mapColumns(header []string) map[string]int {
	cols := map[string]int{
		config.ColumnTimestamp: -1,
		config.ColumnAgent:     -1,
		config.ColumnLocation:  -1,
		config.ColumnRegion:    -1,
		config.ColumnUnits:     -1,
		config.ColumnAmount:    -1,
	}

	for i, h := range header {
		normalized := strings.ToLower(strings.TrimSpace(h))
		for name := range cols {
			if cols[name] == -1 && normalized == strings.ToLower(name) {
				cols[name] = i
			}
		}
	}

	return cols
}

// normalize coerces raw rows into VisitRecords. Every input row yields
// exactly one output record; repairs are counted, never fatal.
func (l *Loader) normalize(ctx context.Context, table *rawTable) ([]domain.VisitRecord, LoadStats) {
	cols := mapColumns(table.header)
	stats := LoadStats{RawRows: len(table.rows)}

	if cols[config.ColumnTimestamp] == -1 {
		l.logger.WarnContext(ctx, "timestamp column not found in header",
			slog.Any("header", table.header))
		return nil, stats
	}

	if l.metrics != nil {
		l.metrics.IngestRowsTotal.Add(float64(len(table.rows)))
	}

	records := make([]domain.VisitRecord, 0, len(table.rows))
	for _, row := range table.rows {
		record := domain.VisitRecord{}

		raw := cell(row, cols[config.ColumnTimestamp])
		if ts, ok := l.parseTimestamp(raw); ok {
			record.Timestamp = ts
		} else {
			record.Timestamp = domain.SentinelDate
			record.SentinelFilled = true
			stats.SentinelFilled++
			l.countRepair("timestamp")
		}

		record.AgentName = l.coerceText(cell(row, cols[config.ColumnAgent]), &stats)
		record.LocationName = l.coerceText(cell(row, cols[config.ColumnLocation]), &stats)
		record.Region = l.coerceText(cell(row, cols[config.ColumnRegion]), &stats)
		record.UnitsSold = l.coerceInt(cell(row, cols[config.ColumnUnits]), &stats)
		record.Amount = l.coerceFloat(cell(row, cols[config.ColumnAmount]), &stats)

		records = append(records, record)
	}

	stats.UniqueAgents = countUniqueAgents(records)

	l.logger.InfoContext(ctx, "normalization complete",
		slog.Int("raw_rows", stats.RawRows),
		slog.Int("sentinel_filled", stats.SentinelFilled),
		slog.Int("numeric_repairs", stats.NumericRepairs),
		slog.Int("text_repairs", stats.TextRepairs),
		slog.Int("unique_agents", stats.UniqueAgents))

	return records, stats
}

// parseTimestamp tries the configured layout and the day-first
// fallbacks in order; first success wins.
func (l *Loader) parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range l.layouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}

	return time.Time{}, false
}

// coerceText trims and defaults blank fields to "Unknown".
func (l *Loader) coerceText(raw string, stats *LoadStats) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		stats.TextRepairs++
		l.countRepair("text")
		return domain.UnknownField
	}
	return raw
}

// coerceInt parses a non-negative integer, tolerating thousand
// separators and decimal notation. Anything unusable becomes 0.
func (l *Loader) coerceInt(raw string, stats *LoadStats) int64 {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		stats.NumericRepairs++
		l.countRepair("units")
		return 0
	}

	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if v < 0 {
			stats.NumericRepairs++
			l.countRepair("units")
			return 0
		}
		return v
	}

	// Some exports write integers as floats ("3.0")
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f >= 0 {
		v := int64(f)
		if float64(v) != f {
			stats.NumericRepairs++
			l.countRepair("units")
		}
		return v
	}

	stats.NumericRepairs++
	l.countRepair("units")
	return 0
}

// coerceFloat parses a non-negative amount, tolerating thousand
// separators and a leading currency symbol. Anything unusable becomes 0.
func (l *Loader) coerceFloat(raw string, stats *LoadStats) float64 {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, l.cfg.CurrencySymbol)
	raw = strings.ReplaceAll(raw, ",", "")
	if raw == "" {
		stats.NumericRepairs++
		l.countRepair("amount")
		return 0
	}

	if f, err := strconv.ParseFloat(raw, 64); err == nil && f >= 0 {
		return f
	}

	stats.NumericRepairs++
	l.countRepair("amount")
	return 0
}

func (l *Loader) countRepair(field string) {
	if l.metrics != nil {
		l.metrics.IngestRepairs.WithLabelValues(field).Inc()
	}
}

// cell returns row[idx] or "" when the column is absent or the row is
// short.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func countUniqueAgents(records []domain.VisitRecord) int {
	agents := make(map[string]struct{}, 16)
	for _, r := range records {
		agents[r.AgentName] = struct{}{}
	}
	return len(agents)
}
