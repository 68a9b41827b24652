// Package dump recovers typed records from fixed-layout conference dumps.
package dump

import (
	"context"
	"errors"
	"runtime"

	"github.com/huangsam/confcast/schema"
	"go.uber.org/zap"
)

// Options tunes record recovery. The zero value is strict auto recovery.
type Options struct {
	Strategy schema.Strategy
	Workers  int
	SkipHead int
	SkipTail int

	// Lenient logs and skips malformed or undecodable records instead of
	// failing the whole run.
	Lenient bool

	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Strategy == "" {
		o.Strategy = schema.AutoStrategy
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.SkipHead < 0 {
		o.SkipHead = 0
	}
	if o.SkipTail < 0 {
		o.SkipTail = 0
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// DefaultOptions returns strict auto recovery with the SQL export margins.
func DefaultOptions() Options {
	return Options{
		Strategy: schema.AutoStrategy,
		SkipHead: DefaultSkipHead,
		SkipTail: DefaultSkipTail,
	}
}

// Result holds the records recovered from a dump in file order.
type Result struct {
	Records  []schema.Record
	Strategy schema.Strategy // strategy that produced Records
	Skipped  int             // records dropped in lenient mode
}

// Recover extracts records from text. The positional layout is tried first
// and the split strategy runs only when it yields no records.
func Recover(ctx context.Context, text string, s *Schema, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	switch opts.Strategy {
	case schema.MatchStrategy:
		records, skipped, err := RecoverPositional(ctx, text, s, opts)
		if err != nil {
			return nil, err
		}
		return finish(records, skipped, schema.MatchStrategy)

	case schema.SplitStrategy:
		records, skipped, err := RecoverSplit(text, s, opts)
		if err != nil {
			return nil, err
		}
		return finish(records, skipped, schema.SplitStrategy)
	}

	records, skipped, err := RecoverPositional(ctx, text, s, opts)
	var se *SchemaError
	switch {
	case errors.As(err, &se):
		opts.Logger.Info("Positional layout not applicable", zap.Error(err))
	case err != nil:
		return nil, err
	case len(records) > 0 || skipped > 0:
		return finish(records, skipped, schema.MatchStrategy)
	}

	opts.Logger.Info("Falling back to split strategy")
	records, skipped, err = RecoverSplit(text, s, opts)
	if err != nil {
		return nil, err
	}
	return finish(records, skipped, schema.SplitStrategy)
}

func finish(records []schema.Record, skipped int, strategy schema.Strategy) (*Result, error) {
	if len(records) == 0 {
		return nil, &MalformedRecordError{Record: -1, Strategy: string(strategy), Reason: "no records recovered"}
	}
	return &Result{Records: records, Strategy: strategy, Skipped: skipped}, nil
}
