// Package perf records one CSV row per benchmark run, grounded on
// _examples/original_source/src/perf/PerformanceRecorder.cpp: same column
// set, same "write header iff the file is new" behavior, same quoted
// description field.
package perf

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Result is one benchmark run's summary row.
type Result struct {
	WallTimestamp time.Time
	TotalTimeUs   int64
	NSymbols      int64
	NOrders       int64
	UsPerOrder    float64
	Description   string
}

// ResultRecorder persists a Result. Implementations must be safe for
// concurrent use only if the caller actually calls Record concurrently;
// CSVRecorder takes no lock of its own: each Record call opens the file in
// append mode, writes the header (if new) and one row, and closes it.
type ResultRecorder interface {
	Record(result Result) error
}

// CSVRecorder appends one row per Record call to a CSV file, writing the
// header row first iff the file did not already exist. Matches the C++
// original's column order exactly so existing spreadsheets built against it
// keep working: Timestamp, Total_Time_Microseconds, Number_of_Symbols,
// Number_of_Orders, Time_per_Order_Microseconds, Description.
type CSVRecorder struct {
	path string
}

const csvHeader = "Timestamp,Total_Time_Microseconds,Number_of_Symbols,Number_of_Orders,Time_per_Order_Microseconds,Description\n"

// NewCSVRecorder returns a recorder that appends to path, creating it (with
// a header row) on first Record if it does not already exist.
func NewCSVRecorder(path string) *CSVRecorder {
	return &CSVRecorder{path: path}
}

// Record appends result as one row, opening and closing path each call so
// concurrent recorders across processes still append cleanly.
func (r *CSVRecorder) Record(result Result) error {
	existed := fileExists(r.path)

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("perf: open %s: %w", r.path, err)
	}
	defer f.Close()

	if !existed {
		if _, err := f.WriteString(csvHeader); err != nil {
			return fmt.Errorf("perf: write header: %w", err)
		}
	}

	row := strings.Join([]string{
		formatTimestamp(result.WallTimestamp),
		strconv.FormatInt(result.TotalTimeUs, 10),
		strconv.FormatInt(result.NSymbols, 10),
		strconv.FormatInt(result.NOrders, 10),
		strconv.FormatFloat(result.UsPerOrder, 'f', 6, 64),
		quoteCSVField(result.Description),
	}, ",") + "\n"

	if _, err := f.WriteString(row); err != nil {
		return fmt.Errorf("perf: write row: %w", err)
	}
	return nil
}

// quoteCSVField unconditionally double-quote-wraps s, matching the original
// PerformanceRecorder.cpp's `"..." << description << "\""`. Embedded quotes
// are doubled (the standard CSV escape) so the field still round-trips
// through any CSV reader; the original never needed this since its
// descriptions never contained a quote character.
func quoteCSVField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05.000")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
