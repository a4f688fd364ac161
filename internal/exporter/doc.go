// Package exporter provides CSV export functionality for FieldPulse
// performance reports.
//
// CSVWriter is the core writing component, with support for headers,
// appending, and a UTF-8 BOM for Excel compatibility. Amount columns
// carry the currency symbol, so the BOM matters.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter("reports")
//	err := writer.WritePerformanceReport("performance.csv", rows)
package exporter
