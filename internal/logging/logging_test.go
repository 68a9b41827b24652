package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	logger, err := New(Config{Level: "debug", Encoding: "json", OutputPaths: []string{path}})
	require.NoError(t, err)
	logger.Info("Recovered records", zap.Int("records", 3), zap.String("run_id", "abc"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	assert.Contains(t, line, `"message":"Recovered records"`)
	assert.Contains(t, line, `"records":3`)
	assert.Contains(t, line, `"level":"info"`)
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	logger, err := New(Config{Level: "warn", Encoding: "json", OutputPaths: []string{path}})
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestGlobalLogger(t *testing.T) {
	original := Get()
	t.Cleanup(func() { Set(original) })

	require.NotNil(t, Get())
	require.NoError(t, Init(Config{Level: "error", OutputPaths: []string{filepath.Join(t.TempDir(), "x.log")}}))
	assert.NotSame(t, original, Get())
	assert.NoError(t, Sync())
}
