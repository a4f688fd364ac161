package exporter

import (
	"fieldpulse/pkg/contracts/domain"
)

// performanceHeaders are the column names for exported performance
// reports. The order mirrors the dashboard table.
var performanceHeaders = []string{
	"Agent Name",
	"Visits Made",
	"Unique Locations",
	"Units Sold",
	"Total Amount",
}

// WritePerformanceReport exports per-agent performance rows to a CSV
// file. Formatted amounts are written as-is, currency symbol included.
func (w *CSVWriter) WritePerformanceReport(filePath string, rows []domain.PerformanceRow) error {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			row.AgentName,
			formatInt(int64(row.Visits)),
			formatInt(int64(row.UniqueLocations)),
			formatInt(row.UnitsSold),
			row.Amount,
		})
	}

	return w.WriteSimpleCSV(filePath, performanceHeaders, records)
}
