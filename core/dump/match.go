package dump

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/huangsam/confcast/schema"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// recordPattern matches one record of the fixed multi-line layout. The title
// group may span several lines and stops at the first line that fits the
// short category field. Fixed widths count UTF-8 characters, not bytes.
var recordPattern = regexp.MustCompile(`(?m)` +
	`^(.{10}),(.{10})$\n` +
	`^(.*)$\n` +
	`^(.{100}),(.{9}),(.{0,8})$\n` +
	`^(.*)$\n` +
	`^(.*)$\n` +
	`^(.*)$\n` +
	`^(.*)$\n` +
	`^([\s\S]*?)\n` +
	`^(.{0,8})$\n` +
	`^(.*)$`)

// PositionalFields is the number of fields captured by the positional layout.
const PositionalFields = 13

// matchTokens returns the trimmed capture groups of every record in text.
func matchTokens(text string) [][]*string {
	matches := recordPattern.FindAllStringSubmatch(text, -1)
	rows := make([][]*string, 0, len(matches))
	for _, m := range matches {
		row := make([]*string, PositionalFields)
		for i := range row {
			tok := strings.TrimSpace(m[i+1])
			row[i] = &tok
		}
		rows = append(rows, row)
	}
	return rows
}

// RecoverPositional recovers records with the fixed multi-line layout.
// Matched records are decoded concurrently and returned in file order.
func RecoverPositional(ctx context.Context, text string, s *Schema, opts Options) ([]schema.Record, int, error) {
	if s.Len() != PositionalFields {
		return nil, 0, &SchemaError{Reason: fmt.Sprintf("positional layout needs %d fields, schema has %d", PositionalFields, s.Len())}
	}
	opts = opts.withDefaults()

	rows := matchTokens(normalize(text))
	records, errs, err := decodeRows(ctx, s, rows, opts.Workers)
	if err != nil {
		return nil, 0, err
	}

	out := make([]schema.Record, 0, len(records))
	skipped := 0
	for i, rec := range records {
		if errs[i] == nil {
			out = append(out, rec)
			continue
		}
		if !opts.Lenient {
			return nil, 0, errs[i]
		}
		skipped++
		opts.Logger.Warn("Skipping undecodable record",
			zap.Int("record", i),
			zap.String("strategy", string(schema.MatchStrategy)),
			zap.Error(errs[i]))
	}
	return out, skipped, nil
}

// decodeRows decodes every row with at most workers goroutines. Per-row
// errors are returned by index so callers can pick the earliest one.
func decodeRows(ctx context.Context, s *Schema, rows [][]*string, workers int) ([]schema.Record, []error, error) {
	records := make([]schema.Record, len(rows))
	errs := make([]error, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range rows {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records[i], errs[i] = s.build(rows[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return records, errs, nil
}

// normalize converts CRLF line endings so line anchors behave.
func normalize(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}
