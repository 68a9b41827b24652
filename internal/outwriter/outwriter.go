// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/confcast/core/dump"
	"github.com/huangsam/confcast/internal/contract"
	"github.com/huangsam/confcast/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteRecords prints the recovered records using the configured output format.
func (ow *OutWriter) WriteRecords(names []string, records []schema.Record, cfg *contract.Config, duration time.Duration) error {
	mode := cfg.OutputOr(ModeForPath(cfg.OutputFile, schema.TSVOut))
	return writeTable(RecordsTable(names, records), mode, cfg, duration)
}

// WriteWeekly prints the weekly series using the configured output format.
func (ow *OutWriter) WriteWeekly(series []schema.WeekCount, cfg *contract.Config, duration time.Duration) error {
	mode := cfg.OutputOr(ModeForPath(cfg.OutputFile, schema.CSVOut))
	return writeTable(WeeklyTable(series), mode, cfg, duration)
}

// WriteFuture prints the future-window series using the configured output format.
func (ow *OutWriter) WriteFuture(rows []schema.FutureRow, periods []int, cfg *contract.Config, duration time.Duration) error {
	mode := cfg.OutputOr(ModeForPath(cfg.OutputFile, schema.CSVOut))
	return writeTable(FutureTable(rows, periods), mode, cfg, duration)
}

// WriteSchema prints the loaded schema using the configured output format.
func (ow *OutWriter) WriteSchema(s *dump.Schema, cfg *contract.Config) error {
	mode := cfg.OutputOr(ModeForPath(cfg.OutputFile, schema.TextOut))
	return writeTable(SchemaTable(s), mode, cfg, 0)
}

// WriteRun writes every requested table of a full run. All tables are staged
// next to their destinations and only renamed into place once every one of
// them encoded successfully.
func (ow *OutWriter) WriteRun(tables []RunTable, cfg *contract.Config) error {
	stage := NewStage()
	for _, rt := range tables {
		if rt.Path == "" {
			continue
		}
		mode := cfg.OutputOr(ModeForPath(rt.Path, rt.Fallback))
		if err := stage.Add(rt.Path, func(w io.Writer) error {
			return Encode(w, mode, rt.Table, cfg, 0)
		}, fmt.Sprintf("Wrote %s %s", strings.ToUpper(string(mode)), rt.Table.Name)); err != nil {
			stage.Discard()
			return err
		}
	}
	if stage.Len() == 0 {
		return fmt.Errorf("run needs at least one of --records-file, --weekly-file, --future-file")
	}
	return stage.Commit()
}

// RunTable pairs a table with its destination in a full run.
type RunTable struct {
	Table    Table
	Path     string
	Fallback schema.OutputMode
}

// writeTable validates the target and writes a single table.
func writeTable(t Table, mode schema.OutputMode, cfg *contract.Config, duration time.Duration) error {
	if err := contract.ValidateOutputTarget(mode, cfg.OutputFile); err != nil {
		return err
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return Encode(w, mode, t, cfg, duration)
	}, fmt.Sprintf("Wrote %s %s", strings.ToUpper(string(mode)), t.Name))
}

// ModeForPath infers the output format from a file extension, or returns fallback.
func ModeForPath(path string, fallback schema.OutputMode) schema.OutputMode {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		return schema.CSVOut
	case ".tsv", ".tab":
		return schema.TSVOut
	case ".json":
		return schema.JSONOut
	case ".txt":
		return schema.TextOut
	case ".parquet":
		return schema.ParquetOut
	case ".xlsx":
		return schema.XLSXOut
	default:
		return fallback
	}
}

// GetMaxCellWidth calculates the maximum width of a text table cell
// based on terminal width and the number of columns.
func GetMaxCellWidth(cfg *contract.Config, columns int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	if columns < 1 {
		columns = 1
	}
	// Each column costs a separator and two padding spaces
	available := (termWidth - 1 - 3*columns) / columns
	if available < 8 {
		return 8
	}
	if available > 60 {
		return 60
	}
	return available
}
