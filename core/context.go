package core

import (
	"context"

	"github.com/google/uuid"
	"github.com/huangsam/confcast/internal/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Context keys for run options
type contextKey string

const (
	runIDKey          contextKey = "runID"
	suppressReportKey contextKey = "suppressReport"
)

// withRunID tags the context with a fresh run identifier
func withRunID(ctx context.Context) context.Context {
	return context.WithValue(ctx, runIDKey, uuid.NewString())
}

// getRunID returns the run identifier stored in the context
func getRunID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok && id != ""
}

// withSuppressReport silences the info-level stage logs of a run
func withSuppressReport(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressReportKey, true)
}

// shouldSuppressReport returns whether stage logs are silenced
func shouldSuppressReport(ctx context.Context) bool {
	val := ctx.Value(suppressReportKey)
	if val == nil {
		return false // default: report stages
	}
	suppress, ok := val.(bool)
	return ok && suppress
}

// runLogger returns the global logger carrying the run identifier. A
// suppressed run still emits warnings such as lenient skips.
func runLogger(ctx context.Context) *zap.Logger {
	logger := logging.Get()
	if shouldSuppressReport(ctx) && logger.Level() < zapcore.WarnLevel {
		logger = logger.WithOptions(zap.IncreaseLevel(zapcore.WarnLevel))
	}
	if id, ok := getRunID(ctx); ok {
		logger = logger.With(zap.String("run_id", id))
	}
	return logger
}
