package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/confcast/internal/contract"
	"github.com/huangsam/confcast/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/xuri/excelize/v2"
)

// Encode writes t to w in the given output format.
func Encode(w io.Writer, mode schema.OutputMode, t Table, cfg *contract.Config, duration time.Duration) error {
	switch mode {
	case schema.CSVOut:
		if err := writeDelimited(w, ',', t); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.TSVOut:
		if err := writeDelimited(w, '\t', t); err != nil {
			return fmt.Errorf("error writing TSV output: %w", err)
		}
	case schema.JSONOut:
		if err := writeJSON(w, t.json); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.ParquetOut:
		if t.parquet == nil {
			return fmt.Errorf("parquet output is not supported for %s", t.Name)
		}
		if err := t.parquet(w); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	case schema.XLSXOut:
		if err := writeXLSX(w, t); err != nil {
			return fmt.Errorf("error writing XLSX output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := writeTextTable(w, t, cfg, duration); err != nil {
			return fmt.Errorf("error writing %s table output: %w", t.Name, err)
		}
	}
	return nil
}

// writeDelimited writes the header and rows with the given field separator.
func writeDelimited(w io.Writer, comma rune, t Table) error {
	return writeCSVWithHeader(w, comma, t.Header, func(cw *csv.Writer) error {
		for _, row := range t.Rows {
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeTextTable prints t as a human-readable table followed by a summary line.
func writeTextTable(w io.Writer, t Table, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header(t.Header)

	if t.numericFrom >= 0 {
		table.Configure(func(c *tablewriter.Config) {
			c.Row.Alignment.Global = tw.AlignRight
		})
	}

	maxWidth := GetMaxCellWidth(cfg, len(t.Header))
	data := make([][]string, len(t.Rows))
	for i := range t.Rows {
		row := make([]string, len(t.Rows[i]))
		for j := range t.Rows[i] {
			row[j] = contract.TruncateText(t.cell(i, j, cfg.UseColors), maxWidth)
		}
		data[i] = row
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if duration > 0 {
		_, _ = fmt.Fprintf(w, "Wrote %d %s rows in %v with %d workers.\n", len(t.Rows), t.Name, duration, cfg.Workers)
	}
	return nil
}

// writeXLSX writes t to a single-sheet workbook.
func writeXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := sheetName(t.Name)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, row := range t.Rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = xlsxValue(t, j, v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return err
		}
	}
	return f.Write(w)
}

// xlsxValue keeps count columns numeric and leaves empty cells blank.
func xlsxValue(t Table, col int, v string) any {
	if v == "" {
		return nil
	}
	if t.numericFrom >= 0 && col >= t.numericFrom {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return v
}

// sheetName derives a valid worksheet name (at most 31 characters).
func sheetName(name string) string {
	if len(name) > 31 {
		return name[:31]
	}
	return name
}
