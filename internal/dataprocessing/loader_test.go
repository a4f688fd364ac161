package dataprocessing

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fieldpulse/internal/config"
	"fieldpulse/pkg/contracts/domain"
)

func testDataConfig(file string) config.DataConfig {
	return config.DataConfig{
		File:           file,
		DateFormat:     "02-01-2006 15:04",
		CurrencySymbol: "₹",
	}
}

func newTestLoader(file string) *Loader {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewLoader(testDataConfig(file), logger, nil)
}

func writeTestCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "visits.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoaderPreservesEveryRow(t *testing.T) {
	csv := `Timestamp,Shop Name,State,BDM Name,Keys Sold,Key Amount
15-03-2025 10:30,Shop A,GUJARAT,Agent One,5,100.50
not a date,Shop B,GUJARAT,Agent Two,3,50
16-03-2025 11:00,,MAHARASHTRA,Agent One,-2,abc
`
	loader := newTestLoader(writeTestCSV(t, csv))
	records, stats, err := loader.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 3, "every input row must yield exactly one record")
	assert.Equal(t, 3, stats.RawRows)
	assert.False(t, stats.Synthetic)

	// Row 1 is fully parseable
	assert.Equal(t, time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC), records[0].Timestamp)
	assert.Equal(t, "Agent One", records[0].AgentName)
	assert.Equal(t, int64(5), records[0].UnitsSold)
	assert.Equal(t, 100.50, records[0].Amount)
	assert.False(t, records[0].SentinelFilled)

	// Row 2 has an unusable timestamp, repaired with the sentinel date
	assert.True(t, records[1].SentinelFilled)
	assert.Equal(t, domain.SentinelDate, records[1].Timestamp)
	assert.Equal(t, 1, stats.SentinelFilled)

	// Row 3: blank shop becomes Unknown, negative units and garbage
	// amount become zero
	assert.Equal(t, domain.UnknownField, records[2].LocationName)
	assert.Equal(t, int64(0), records[2].UnitsSold)
	assert.Equal(t, float64(0), records[2].Amount)
}

func TestLoaderFieldCoercion(t *testing.T) {
	tests := []struct {
		name       string
		units      string
		amount     string
		wantUnits  int64
		wantAmount float64
	}{
		{name: "plain integers", units: "7", amount: "250", wantUnits: 7, wantAmount: 250},
		{name: "thousand separators", units: "1,200", amount: "1,234.50", wantUnits: 1200, wantAmount: 1234.50},
		{name: "float-typed units", units: "3.0", amount: "99.99", wantUnits: 3, wantAmount: 99.99},
		{name: "currency prefix", units: "2", amount: "₹150.00", wantUnits: 2, wantAmount: 150},
		{name: "negative values zeroed", units: "-4", amount: "-10.5", wantUnits: 0, wantAmount: 0},
		{name: "blank values zeroed", units: "", amount: "", wantUnits: 0, wantAmount: 0},
		{name: "garbage zeroed", units: "many", amount: "lots", wantUnits: 0, wantAmount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			csv := "Timestamp,Shop Name,State,BDM Name,Keys Sold,Key Amount\n" +
				"15-03-2025 10:30,Shop A,GUJARAT,Agent One,\"" + tt.units + "\",\"" + tt.amount + "\"\n"
			loader := newTestLoader(writeTestCSV(t, csv))

			records, _, err := loader.Load(context.Background())
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, tt.wantUnits, records[0].UnitsSold)
			assert.Equal(t, tt.wantAmount, records[0].Amount)
		})
	}
}

func TestLoaderHeaderMatchingIsForgiving(t *testing.T) {
	csv := ` timestamp , SHOP NAME ,state, bdm name ,Keys Sold,key amount
15-03-2025 10:30,Shop A,GUJARAT,Agent One,5,100
`
	loader := newTestLoader(writeTestCSV(t, csv))
	records, stats, err := loader.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, stats.Synthetic)
	assert.Equal(t, "Agent One", records[0].AgentName)
	assert.Equal(t, "Shop A", records[0].LocationName)
}

func TestLoaderTimestampLayouts(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{name: "configured format", raw: "15-03-2025 10:30", want: time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)},
		{name: "with seconds", raw: "15-03-2025 10:30:45", want: time.Date(2025, 3, 15, 10, 30, 45, 0, time.UTC)},
		{name: "slash separated", raw: "15/03/2025 10:30", want: time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)},
		{name: "date only", raw: "15-03-2025", want: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "iso", raw: "2025-03-15 10:30:45", want: time.Date(2025, 3, 15, 10, 30, 45, 0, time.UTC)},
	}

	loader := newTestLoader("unused")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, ok := loader.parseTimestamp(tt.raw)
			require.True(t, ok)
			assert.True(t, tt.want.Equal(ts))
		})
	}
}

func TestLoaderMissingFileFallsBackToSynthetic(t *testing.T) {
	loader := newTestLoader(filepath.Join(t.TempDir(), "missing.csv"))
	records, stats, err := loader.Load(context.Background())

	require.NoError(t, err, "an unusable source must never surface as an error")
	assert.True(t, stats.Synthetic)
	assert.NotEmpty(t, stats.SyntheticReason)
	assert.NotEmpty(t, records)
}

func TestLoaderMissingTimestampColumnFallsBackToSynthetic(t *testing.T) {
	csv := `Shop Name,State,BDM Name,Keys Sold,Key Amount
Shop A,GUJARAT,Agent One,5,100
`
	loader := newTestLoader(writeTestCSV(t, csv))
	records, stats, err := loader.Load(context.Background())

	require.NoError(t, err)
	assert.True(t, stats.Synthetic)
	assert.Equal(t, "no usable rows", stats.SyntheticReason)
	assert.NotEmpty(t, records)
}

func TestLoaderDecodesLatin1Sources(t *testing.T) {
	// "Caf\xe9 Corner" is ISO 8859-1 for "Café Corner" and is not
	// valid UTF-8.
	raw := "Timestamp,Shop Name,State,BDM Name,Keys Sold,Key Amount\n" +
		"15-03-2025 10:30,Caf\xe9 Corner,GUJARAT,Agent One,5,100\n"
	path := filepath.Join(t.TempDir(), "legacy.csv")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	loader := newTestLoader(path)
	records, stats, err := loader.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, stats.Synthetic)
	assert.Equal(t, "Café Corner", records[0].LocationName)
}

func TestLoaderReadsExcelWorkbooks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "visits.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Timestamp", "Shop Name", "State", "BDM Name", "Keys Sold", "Key Amount"},
		{"15-03-2025 10:30", "Shop A", "GUJARAT", "Agent One", "5", "100.50"},
		{"16-03-2025 11:00", "Shop B", "DELHI", "Agent Two", "3", "75"},
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	loader := newTestLoader(path)
	records, stats, err := loader.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.False(t, stats.Synthetic)
	assert.Equal(t, "Agent One", records[0].AgentName)
	assert.Equal(t, int64(3), records[1].UnitsSold)
}

func TestLoaderStatsCountRepairs(t *testing.T) {
	csv := `Timestamp,Shop Name,State,BDM Name,Keys Sold,Key Amount
bad,Shop A,,Agent One,x,y
15-03-2025 10:30,Shop B,GUJARAT,,2,20
`
	loader := newTestLoader(writeTestCSV(t, csv))
	_, stats, err := loader.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, stats.SentinelFilled)
	assert.Equal(t, 2, stats.NumericRepairs)
	assert.Equal(t, 2, stats.TextRepairs)
	assert.Equal(t, 2, stats.UniqueAgents)
}

func TestLoaderCountsTruncatedFloatUnits(t *testing.T) {
	csv := `Timestamp,Shop Name,State,BDM Name,Keys Sold,Key Amount
15-03-2025 10:30,Shop A,GUJARAT,Agent One,3.9,100
15-03-2025 11:00,Shop B,GUJARAT,Agent One,4.0,50
`
	loader := newTestLoader(writeTestCSV(t, csv))
	records, stats, err := loader.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(3), records[0].UnitsSold)
	assert.Equal(t, int64(4), records[1].UnitsSold)
	// Only the lossy truncation counts as a repair.
	assert.Equal(t, 1, stats.NumericRepairs)
}
