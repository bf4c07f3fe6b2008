package perf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCSVRecorder_WritesHeaderOnceThenAppends(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.csv")
	rec := NewCSVRecorder(path)

	ts := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	require.NoError(t, rec.Record(Result{
		WallTimestamp: ts,
		TotalTimeUs:   1000,
		NSymbols:      4,
		NOrders:       100,
		UsPerOrder:    10.5,
		Description:   "baseline, 4 workers",
	}))
	require.NoError(t, rec.Record(Result{
		WallTimestamp: ts.Add(time.Minute),
		TotalTimeUs:   2000,
		NSymbols:      4,
		NOrders:       200,
		UsPerOrder:    10.0,
		Description:   "second run",
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "Timestamp,Total_Time_Microseconds,Number_of_Symbols,Number_of_Orders,Time_per_Order_Microseconds,Description", lines[0])
	require.Contains(t, lines[1], "2026-07-31 12:00:00.000")
	require.Contains(t, lines[1], "baseline, 4 workers")
}

func TestCSVRecorder_AppendsToExistingFileWithoutDuplicateHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale-header-line\n"), 0o644))

	rec := NewCSVRecorder(path)
	require.NoError(t, rec.Record(Result{WallTimestamp: time.Now(), NOrders: 1}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "stale-header-line", lines[0])
}
