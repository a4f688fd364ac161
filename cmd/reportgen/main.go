package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"fieldpulse/internal/config"
	"fieldpulse/internal/dataprocessing"
	"fieldpulse/internal/exporter"
	"fieldpulse/internal/infrastructure"
	"fieldpulse/pkg/contracts/domain"
)

func main() {
	input := flag.String("input", "", "visit data file (defaults to the configured data file)")
	out := flag.String("out", "performance.csv", "output csv file path")
	outDir := flag.String("outdir", "reports", "directory for relative output paths")
	timeFilter := flag.String("time", "", "time filter: daily | weekly | monthly (empty = all)")
	month := flag.String("month", "", "month name or number for monthly filter")
	year := flag.String("year", "", "year for monthly filter")
	state := flag.String("state", "", "region filter (empty = all)")
	start := flag.String("start", "", "start date for daily/weekly filter (YYYY-MM-DD)")
	end := flag.String("end", "", "end date for weekly filter (YYYY-MM-DD)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	if *input != "" {
		cfg.Data.File = *input
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	logger.Info("Starting report generation",
		slog.String("input", cfg.Data.File),
		slog.String("output", *out),
		slog.String("time_filter", *timeFilter),
		slog.String("state", *state))

	ctx := context.Background()
	metrics := infrastructure.NewMetrics()

	loader := dataprocessing.NewLoader(cfg.Data, logger, metrics)
	records, stats, err := loader.Load(ctx)
	if err != nil {
		logger.Error("Failed to load visit records",
			slog.String("file", cfg.Data.File),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	if stats.Synthetic {
		logger.Warn("Source unusable, report built from synthetic data",
			slog.String("reason", stats.SyntheticReason))
	}

	resolver := dataprocessing.NewResolver(logger, metrics)
	filter := resolver.Resolve(ctx, domain.FilterRequest{
		Mode:      *timeFilter,
		Month:     *month,
		Year:      *year,
		Region:    *state,
		StartDate: *start,
		EndDate:   *end,
	})

	summarizer := dataprocessing.NewSummarizer(logger, dataprocessing.SummarizerConfig{
		CurrencySymbol: cfg.Data.CurrencySymbol,
	})
	rows := summarizer.Summarize(ctx, records, filter)

	writer := exporter.NewCSVWriter(*outDir)
	if err := writer.WritePerformanceReport(*out, rows); err != nil {
		logger.Error("Failed to write report",
			slog.String("path", *out),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Report generation completed",
		slog.Int("input_rows", len(records)),
		slog.Int("agent_rows", len(rows)),
		slog.String("output_path", *out))

	fmt.Printf("Report written: %s (%d agents)\n", *out, len(rows))
}
