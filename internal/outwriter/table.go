package outwriter

import (
	"io"
	"strconv"

	"github.com/huangsam/confcast/core/dump"
	"github.com/huangsam/confcast/internal/contract"
	"github.com/huangsam/confcast/internal/parquet"
	"github.com/huangsam/confcast/schema"
)

// Table is a result rendered once and encodable in every output format.
type Table struct {
	// Name describes the table in messages and names the xlsx sheet
	Name   string
	Header []string
	// Rows hold the delimited-text rendering; undefined cells are empty
	Rows [][]string

	json        any
	parquet     func(io.Writer) error
	numericFrom int // first column holding integers, or -1
	counts      [][]*int
}

// cell returns the text table rendering of a cell.
func (t Table) cell(row, col int, useColors bool) string {
	if t.counts != nil && col >= t.numericFrom {
		return contract.FormatCount(t.counts[row][col-t.numericFrom], useColors)
	}
	return t.Rows[row][col]
}

// RecordsTable renders records with one column per schema field.
func RecordsTable(names []string, records []schema.Record) Table {
	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(names))
		for j, name := range names {
			if v, ok := rec.Get(name); ok {
				row[j] = v.String()
			}
		}
		rows[i] = row
	}
	if records == nil {
		records = []schema.Record{}
	}
	return Table{
		Name:        "records",
		Header:      names,
		Rows:        rows,
		json:        records,
		numericFrom: -1,
		parquet: func(w io.Writer) error {
			return parquet.WriteRows(w, parquet.ConvertRecords(records))
		},
	}
}

type weekJSON struct {
	WeekStart string `json:"week_start"`
	WeekEnd   string `json:"week_end"`
	Year      int    `json:"year"`
	Week      int    `json:"week"`
	Count     int    `json:"count"`
}

func toWeekJSON(wc schema.WeekCount) weekJSON {
	return weekJSON{
		WeekStart: schema.Stamp(wc.Start),
		WeekEnd:   schema.Stamp(wc.End),
		Year:      wc.Bucket.Year,
		Week:      wc.Bucket.Week,
		Count:     wc.Count,
	}
}

// WeeklyTable renders the dense weekly series.
func WeeklyTable(series []schema.WeekCount) Table {
	rows := make([][]string, len(series))
	counts := make([][]*int, len(series))
	out := make([]weekJSON, len(series))
	for i, wc := range series {
		rows[i] = []string{schema.Stamp(wc.Start), schema.Stamp(wc.End), strconv.Itoa(wc.Count)}
		counts[i] = []*int{&series[i].Count}
		out[i] = toWeekJSON(wc)
	}
	return Table{
		Name:        "weekly series",
		Header:      schema.WeeklyHeader(),
		Rows:        rows,
		json:        out,
		numericFrom: 2,
		counts:      counts,
		parquet: func(w io.Writer) error {
			return parquet.WriteRows(w, parquet.ConvertWeekCounts(series))
		},
	}
}

type windowJSON struct {
	PeriodWeeks int  `json:"period_weeks"`
	Sum         *int `json:"sum"`
}

type futureJSON struct {
	weekJSON
	Windows []windowJSON `json:"windows"`
}

// FutureTable renders the future-window series with one column per period.
func FutureTable(rows []schema.FutureRow, periods []int) Table {
	text := make([][]string, len(rows))
	counts := make([][]*int, len(rows))
	out := make([]futureJSON, len(rows))
	for i, row := range rows {
		line := []string{schema.Stamp(row.Start), schema.Stamp(row.End), strconv.Itoa(row.Count)}
		cells := []*int{&rows[i].Count}
		windows := make([]windowJSON, len(row.Windows))
		for j, win := range row.Windows {
			line = append(line, schema.FormatSum(win.Sum))
			cells = append(cells, win.Sum)
			windows[j] = windowJSON{PeriodWeeks: win.Period, Sum: win.Sum}
		}
		text[i] = line
		counts[i] = cells
		out[i] = futureJSON{weekJSON: toWeekJSON(row.WeekCount), Windows: windows}
	}
	return Table{
		Name:        "future series",
		Header:      schema.FutureHeader(periods),
		Rows:        text,
		json:        out,
		numericFrom: 2,
		counts:      counts,
		parquet: func(w io.Writer) error {
			return parquet.WriteRows(w, parquet.ConvertFutureRows(rows))
		},
	}
}

type fieldJSON struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Kind string `json:"kind"`
}

// SchemaTable renders the fields of a schema with their decoded kind.
func SchemaTable(s *dump.Schema) Table {
	rows := make([][]string, len(s.Fields))
	out := make([]fieldJSON, len(s.Fields))
	for i, f := range s.Fields {
		kind := "none"
		if f.Decoder != nil {
			kind = f.Decoder.Kind().String()
		}
		rows[i] = []string{f.Name, f.Type, kind}
		out[i] = fieldJSON{Name: f.Name, Type: f.Type, Kind: kind}
	}
	return Table{
		Name:        "schema",
		Header:      []string{"name", "type", "kind"},
		Rows:        rows,
		json:        out,
		numericFrom: -1,
	}
}
