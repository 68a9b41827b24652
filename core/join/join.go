// Package join appends the weekly or future series to per-dataset access
// frames whose file names carry a YYYYMMDD-YYYYMMDD week token.
package join

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"

	"github.com/huangsam/confcast/internal/source"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
	"gocloud.dev/blob"
)

// stampPattern finds the week token embedded in a frame file name.
var stampPattern = regexp.MustCompile(`\d{8}-\d{8}`)

// StampOf returns the first week token in name.
func StampOf(name string) (string, error) {
	stamp := stampPattern.FindString(name)
	if stamp == "" {
		return "", fmt.Errorf("file name %s has no YYYYMMDD-YYYYMMDD token", name)
	}
	return stamp, nil
}

// Series is a week-keyed table ready to be appended to frame rows.
type Series struct {
	Columns []string
	rows    map[string][]string
}

// Len returns the number of weeks in the series.
func (s *Series) Len() int { return len(s.rows) }

// Lookup returns the columns stored for a week token.
func (s *Series) Lookup(stamp string) ([]string, bool) {
	row, ok := s.rows[stamp]
	return row, ok
}

// ReadSeries parses a series CSV. The week key is either a leading tstamp
// column or the week_start and week_end columns.
func ReadSeries(r io.Reader) (*Series, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read series header: %w", err)
	}

	keyCols := 0
	switch {
	case len(header) >= 1 && header[0] == "tstamp":
		keyCols = 1
	case len(header) >= 2 && header[0] == "week_start" && header[1] == "week_end":
		keyCols = 2
	default:
		return nil, fmt.Errorf("series header must start with tstamp or week_start,week_end")
	}

	s := &Series{Columns: header[keyCols:], rows: make(map[string][]string)}
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read series line %d: %w", line, err)
		}
		key := row[0]
		if keyCols == 2 {
			key = row[0] + "-" + row[1]
		}
		if _, dup := s.rows[key]; dup {
			return nil, fmt.Errorf("series line %d repeats week %s", line, key)
		}
		s.rows[key] = row[keyCols:]
	}
	return s, nil
}

// LoadSeries reads a possibly compressed series resource.
func LoadSeries(ctx context.Context, location string) (*Series, error) {
	data, err := source.ReadAll(ctx, location)
	if err != nil {
		return nil, err
	}
	return ReadSeries(bytes.NewReader(data))
}

// Options tunes Run.
type Options struct {
	InDir   string
	OutDir  string
	Pattern string // glob on frame base names
	Logger  *zap.Logger
}

// Summary reports what Run produced.
type Summary struct {
	Files int
	Rows  int
}

// Run joins series into every frame of InDir matching Pattern and writes
// gzip CSVs of the same base name to OutDir.
func Run(ctx context.Context, series *Series, opts Options) (*Summary, error) {
	if _, err := path.Match(opts.Pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid join pattern %s: %w", opts.Pattern, err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	in, err := source.OpenDir(ctx, opts.InDir, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", opts.InDir, err)
	}
	defer func() { _ = in.Close() }()

	out, err := source.OpenDir(ctx, opts.OutDir, true)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", opts.OutDir, err)
	}
	defer func() { _ = out.Close() }()

	summary := &Summary{}
	iter := in.List(&blob.ListOptions{Delimiter: "/"})
	for {
		obj, err := iter.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", opts.InDir, err)
		}
		if obj.IsDir {
			continue
		}
		if ok, _ := path.Match(opts.Pattern, path.Base(obj.Key)); !ok {
			continue
		}

		rows, err := joinFrame(ctx, in, out, obj.Key, series)
		if err != nil {
			return nil, fmt.Errorf("failed to join %s: %w", obj.Key, err)
		}
		logger.Info("Joined frame", zap.String("frame", obj.Key), zap.Int("rows", rows))
		summary.Files++
		summary.Rows += rows
	}
	return summary, nil
}

// joinFrame rewrites one frame with the series columns of its week appended.
func joinFrame(ctx context.Context, in, out *blob.Bucket, key string, series *Series) (int, error) {
	stamp, err := StampOf(path.Base(key))
	if err != nil {
		return 0, err
	}
	extra, ok := series.Lookup(stamp)
	if !ok {
		return 0, fmt.Errorf("week %s is not in the series", stamp)
	}

	data, err := in.ReadAll(ctx, key)
	if err != nil {
		return 0, err
	}
	data, err = source.Decompress(data)
	if err != nil {
		return 0, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	frame, err := reader.ReadAll()
	if err != nil {
		return 0, err
	}
	if len(frame) == 0 {
		return 0, fmt.Errorf("frame has no header")
	}

	// Cancelling the writer context discards the object instead of committing it
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()
	w, err := out.NewWriter(wctx, path.Base(key), &blob.WriterOptions{ContentType: "application/gzip"})
	if err != nil {
		return 0, err
	}
	if err := writeFrame(w, frame, series.Columns, extra); err != nil {
		cancel()
		_ = w.Close()
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return len(frame) - 1, nil
}

// writeFrame gzips the frame with the series header and values appended.
func writeFrame(w io.Writer, frame [][]string, columns, extra []string) error {
	zw := gzip.NewWriter(w)
	cw := csv.NewWriter(zw)

	for i, row := range frame {
		tail := extra
		if i == 0 {
			tail = columns
		}
		merged := make([]string, 0, len(row)+len(tail))
		merged = append(merged, row...)
		merged = append(merged, tail...)
		if err := cw.Write(merged); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return zw.Close()
}
