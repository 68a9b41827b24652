// Package core has the pipeline logic for recovering, bucketing and counting records.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/confcast/core/join"
	"github.com/huangsam/confcast/internal/contract"
	"github.com/huangsam/confcast/internal/outwriter"
	"github.com/huangsam/confcast/schema"
	"go.uber.org/zap"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, reader contract.ResourceReader, w *outwriter.OutWriter) error

// ExecuteParse recovers the records of a dump and prints them sorted by date.
func ExecuteParse(ctx context.Context, cfg *contract.Config, reader contract.ResourceReader, w *outwriter.OutWriter) error {
	start := time.Now()
	analysis, err := Analyze(ctx, cfg, reader)
	if err != nil {
		return err
	}
	return w.WriteRecords(analysis.Schema.Names(), analysis.Records, cfg, time.Since(start))
}

// ExecuteWeekly prints the dense weekly series of a dump.
func ExecuteWeekly(ctx context.Context, cfg *contract.Config, reader contract.ResourceReader, w *outwriter.OutWriter) error {
	start := time.Now()
	analysis, err := Analyze(ctx, cfg, reader)
	if err != nil {
		return err
	}
	return w.WriteWeekly(analysis.Series, cfg, time.Since(start))
}

// ExecuteFuture prints the future-window series of a dump.
func ExecuteFuture(ctx context.Context, cfg *contract.Config, reader contract.ResourceReader, w *outwriter.OutWriter) error {
	start := time.Now()
	analysis, err := Analyze(ctx, cfg, reader)
	if err != nil {
		return err
	}
	return w.WriteFuture(analysis.Future, analysis.Periods, cfg, time.Since(start))
}

// ExecuteRun computes every table before writing any of them, so a failed
// run leaves no partial outputs behind.
func ExecuteRun(ctx context.Context, cfg *contract.Config, reader contract.ResourceReader, w *outwriter.OutWriter) error {
	analysis, err := Analyze(ctx, cfg, reader)
	if err != nil {
		return err
	}
	return w.WriteRun([]outwriter.RunTable{
		{
			Table:    outwriter.RecordsTable(analysis.Schema.Names(), analysis.Records),
			Path:     cfg.RecordsFile,
			Fallback: schema.TSVOut,
		},
		{
			Table:    outwriter.WeeklyTable(analysis.Series),
			Path:     cfg.WeeklyFile,
			Fallback: schema.CSVOut,
		},
		{
			Table:    outwriter.FutureTable(analysis.Future, analysis.Periods),
			Path:     cfg.FutureFile,
			Fallback: schema.CSVOut,
		},
	}, cfg)
}

// ExecuteSchema loads a schema and prints its fields with their decoders.
func ExecuteSchema(ctx context.Context, cfg *contract.Config, reader contract.ResourceReader, w *outwriter.OutWriter) error {
	s, err := LoadSchema(ctx, cfg, reader)
	if err != nil {
		return err
	}
	return w.WriteSchema(s, cfg)
}

// ExecuteJoin appends a series to every matching access frame.
func ExecuteJoin(ctx context.Context, cfg *contract.Config, _ contract.ResourceReader, _ *outwriter.OutWriter) error {
	ctx = withRunID(ctx)
	logger := runLogger(ctx)

	series, err := join.LoadSeries(ctx, cfg.JoinSeries)
	if err != nil {
		return fmt.Errorf("failed to load series %s: %w", cfg.JoinSeries, err)
	}
	logger.Info("Loaded series", zap.String("series", cfg.JoinSeries), zap.Int("weeks", series.Len()))

	summary, err := join.Run(ctx, series, join.Options{
		InDir:   cfg.JoinInDir,
		OutDir:  cfg.JoinOutDir,
		Pattern: cfg.JoinPattern,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	logger.Info("Joined frames", zap.Int("files", summary.Files), zap.Int("rows", summary.Rows))
	if summary.Files == 0 {
		contract.LogWarn("join", fmt.Errorf("no files in %s match %s", cfg.JoinInDir, cfg.JoinPattern))
	}
	return nil
}
