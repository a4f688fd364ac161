package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldpulse/pkg/contracts/domain"
)

func TestWritePerformanceReport(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	rows := []domain.PerformanceRow{
		{AgentName: "A", Visits: 2, UniqueLocations: 1, UnitsSold: 8, Amount: "₹150.00", AmountRaw: 150},
		{AgentName: "B", Visits: 1, UniqueLocations: 1, UnitsSold: 2, Amount: "₹75.00", AmountRaw: 75},
	}

	require.NoError(t, writer.WritePerformanceReport("performance.csv", rows))

	data, err := os.ReadFile(filepath.Join(dir, "performance.csv"))
	require.NoError(t, err)

	// BOM first so Excel renders the currency symbol
	assert.True(t, strings.HasPrefix(string(data), "\xEF\xBB\xBF"))

	content := strings.TrimPrefix(string(data), "\xEF\xBB\xBF")
	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Agent Name,Visits Made,Unique Locations,Units Sold,Total Amount", lines[0])
	assert.Equal(t, "A,2,1,8,₹150.00", lines[1])
	assert.Equal(t, "B,1,1,2,₹75.00", lines[2])
}

func TestWritePerformanceReportEmpty(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	require.NoError(t, writer.WritePerformanceReport("empty.csv", nil))

	data, err := os.ReadFile(filepath.Join(dir, "empty.csv"))
	require.NoError(t, err)

	content := strings.TrimPrefix(string(data), "\xEF\xBB\xBF")
	lines := strings.Split(strings.TrimSpace(content), "\n")
	// Header only
	require.Len(t, lines, 1)
}

func TestWriteCSVCreatesNestedDirectories(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	err := writer.WriteSimpleCSV(filepath.Join("nested", "out.csv"),
		[]string{"h1"}, [][]string{{"v1"}})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "nested", "out.csv"))
	assert.NoError(t, err)
}

func TestAppendToCSV(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	require.NoError(t, writer.WriteSimpleCSV("append.csv", []string{"h1"}, [][]string{{"a"}}))
	require.NoError(t, writer.AppendToCSV("append.csv", [][]string{{"b"}}))

	data, err := os.ReadFile(filepath.Join(dir, "append.csv"))
	require.NoError(t, err)

	content := strings.TrimPrefix(string(data), "\xEF\xBB\xBF")
	lines := strings.Split(strings.TrimSpace(content), "\n")
	assert.Equal(t, []string{"h1", "a", "b"}, lines)
}
