package core

import (
	"bytes"
	"context"
	"fmt"

	"github.com/huangsam/confcast/core/agg"
	"github.com/huangsam/confcast/core/calendar"
	"github.com/huangsam/confcast/core/dump"
	"github.com/huangsam/confcast/internal/contract"
	"github.com/huangsam/confcast/schema"
	"go.uber.org/zap"
)

// Analysis is the outcome of one pass over a dump.
type Analysis struct {
	Schema    *dump.Schema
	Recovery  *dump.Result
	DateField string
	Records   []schema.Record // sorted by DateField
	Series    []schema.WeekCount
	Future    []schema.FutureRow
	Periods   []int
}

// LoadSchema reads and parses the schema resource named by the config.
func LoadSchema(ctx context.Context, cfg *contract.Config, reader contract.ResourceReader) (*dump.Schema, error) {
	data, err := reader.ReadAll(ctx, cfg.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	s, err := dump.LoadSchema(bytes.NewReader(data), dump.SchemaOptions{AllowUnknownTypes: cfg.AllowUnknownTypes})
	if err != nil {
		return nil, fmt.Errorf("failed to load schema %s: %w", cfg.SchemaPath, err)
	}
	return s, nil
}

// resolveDateField picks the field used for ordering and bucketing.
func resolveDateField(s *dump.Schema, name string) (string, error) {
	if name == "" {
		f, ok := s.FirstOfKind(schema.DateKind)
		if !ok {
			return "", fmt.Errorf("schema has no DATE field to bucket by")
		}
		return f.Name, nil
	}
	i := s.Index(name)
	if i < 0 {
		return "", fmt.Errorf("date field %s is not in the schema", name)
	}
	if d := s.Fields[i].Decoder; d == nil || d.Kind() != schema.DateKind {
		return "", fmt.Errorf("field %s is %s, not a DATE", name, s.Fields[i].Type)
	}
	return name, nil
}

// runAnalysis loads the schema and dump, recovers the records, and derives
// the weekly and future-window series.
func runAnalysis(ctx context.Context, cfg *contract.Config, reader contract.ResourceReader) (*Analysis, error) {
	logger := runLogger(ctx)

	s, err := LoadSchema(ctx, cfg, reader)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded schema", zap.String("schema", cfg.SchemaPath), zap.Int("fields", s.Len()))

	dateField, err := resolveDateField(s, cfg.DateField)
	if err != nil {
		return nil, err
	}

	data, err := reader.ReadAll(ctx, cfg.DumpPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read dump: %w", err)
	}

	res, err := dump.Recover(ctx, string(data), s, dump.Options{
		Strategy: cfg.Strategy,
		Workers:  cfg.Workers,
		SkipHead: cfg.SkipHead,
		SkipTail: cfg.SkipTail,
		Lenient:  cfg.Lenient,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to recover records from %s: %w", cfg.DumpPath, err)
	}
	logger.Info("Recovered records",
		zap.String("strategy", string(res.Strategy)),
		zap.Int("records", len(res.Records)),
		zap.Int("skipped", res.Skipped))

	records := res.Records
	if err := calendar.SortByDate(records, dateField); err != nil {
		return nil, err
	}

	policy, err := calendar.PolicyFor(cfg.Policy)
	if err != nil {
		return nil, err
	}
	groups, err := calendar.GroupByBucket(records, dateField, policy)
	if err != nil {
		return nil, err
	}
	series, err := agg.CountByWeek(groups, policy)
	if err != nil {
		return nil, fmt.Errorf("failed to count weeks: %w", err)
	}
	logger.Info("Counted weeks",
		zap.String("policy", string(cfg.Policy)),
		zap.Int("occupied", len(groups)),
		zap.Int("weeks", len(series)))

	periods := cfg.Periods
	if len(periods) == 0 {
		periods = schema.DefaultPeriods
	}
	future, err := agg.Future(series, periods)
	if err != nil {
		return nil, fmt.Errorf("failed to compute future windows: %w", err)
	}

	return &Analysis{
		Schema:    s,
		Recovery:  res,
		DateField: dateField,
		Records:   records,
		Series:    series,
		Future:    future,
		Periods:   periods,
	}, nil
}

// Analyze runs the full pipeline with its own run identifier.
func Analyze(ctx context.Context, cfg *contract.Config, reader contract.ResourceReader) (*Analysis, error) {
	return runAnalysis(withRunID(ctx), cfg, reader)
}

// AnalyzeQuietly runs the full pipeline without stage logs.
func AnalyzeQuietly(ctx context.Context, cfg *contract.Config, reader contract.ResourceReader) (*Analysis, error) {
	return runAnalysis(withSuppressReport(ctx), cfg, reader)
}
