// Package parquet provides data structures and functions for exporting the
// recovered records and weekly series to Parquet using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/confcast/schema"
	"github.com/parquet-go/parquet-go"
)

// WeekRow represents one bucket of the dense weekly series.
type WeekRow struct {
	// WeekStart is the first day of the bucket
	WeekStart time.Time `parquet:"week_start,snappy"`

	// WeekEnd is the last day of the bucket
	WeekEnd time.Time `parquet:"week_end,snappy"`

	// Year and Week identify the bucket under the calendar policy used
	Year int32 `parquet:"year,snappy"`
	Week int32 `parquet:"week,snappy"`

	// Count is the number of records starting in the bucket
	Count int32 `parquet:"count,snappy"`
}

// FutureWindowRow is one (week, period) cell of the future-window series in long form.
// Periods vary per run, so the series is stored one window per row.
type FutureWindowRow struct {
	WeekStart time.Time `parquet:"week_start,snappy"`
	WeekEnd   time.Time `parquet:"week_end,snappy"`
	Count     int32     `parquet:"count,snappy"`

	// PeriodWeeks is the window length in weeks
	PeriodWeeks int32 `parquet:"period_weeks,snappy"`

	// Sum is null when fewer than PeriodWeeks weeks follow the bucket
	Sum *int32 `parquet:"sum,optional,snappy"`
}

// RecordFieldRow is one field of one recovered record in long form.
type RecordFieldRow struct {
	// RecordIndex is the position of the record after sorting by date
	RecordIndex int32 `parquet:"record_index,snappy"`

	// Field is the schema field name
	Field string `parquet:"field,snappy"`

	// Kind is the decoded value kind (null, int, string, date)
	Kind string `parquet:"kind,snappy"`

	// Value is the rendered value, null when the field was absent
	Value *string `parquet:"value,optional,snappy"`
}

// WriteRows encodes rows as a Parquet file to w.
func WriteRows[T any](w io.Writer, rows []T) error {
	// The schema is derived from the struct tags of T
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return nil
}

// WriteRowsFile writes rows to a Parquet file at outputPath.
func WriteRowsFile[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := WriteRows(file, rows); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// ConvertWeekCounts converts the weekly series for Parquet export.
func ConvertWeekCounts(series []schema.WeekCount) []WeekRow {
	result := make([]WeekRow, len(series))
	for i, wc := range series {
		result[i] = WeekRow{
			WeekStart: wc.Start,
			WeekEnd:   wc.End,
			Year:      int32(wc.Bucket.Year),
			Week:      int32(wc.Bucket.Week),
			Count:     int32(wc.Count),
		}
	}
	return result
}

// ConvertFutureRows flattens the future-window series into one row per window.
func ConvertFutureRows(rows []schema.FutureRow) []FutureWindowRow {
	var result []FutureWindowRow
	for _, row := range rows {
		for _, win := range row.Windows {
			out := FutureWindowRow{
				WeekStart:   row.Start,
				WeekEnd:     row.End,
				Count:       int32(row.Count),
				PeriodWeeks: int32(win.Period),
			}
			if win.Sum != nil {
				sum := int32(*win.Sum)
				out.Sum = &sum
			}
			result = append(result, out)
		}
	}
	return result
}

// ConvertRecords flattens records into one row per field.
func ConvertRecords(records []schema.Record) []RecordFieldRow {
	var result []RecordFieldRow
	for i, rec := range records {
		for _, f := range rec.Fields {
			out := RecordFieldRow{
				RecordIndex: int32(i),
				Field:       f.Name,
				Kind:        f.Value.Kind.String(),
			}
			if !f.Value.IsNull() {
				value := f.Value.String()
				out.Value = &value
			}
			result = append(result, out)
		}
	}
	return result
}
