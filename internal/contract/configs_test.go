package contract

import (
	"testing"

	"github.com/huangsam/confcast/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Schema:   "conf.schema",
		Dump:     "conf.sql",
		Workers:  4,
		SkipHead: DefaultSkipHead,
		SkipTail: DefaultSkipTail,
		Color:    "no",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		needs       Needs
		expectError bool
	}{
		{
			name:   "valid minimal config",
			mutate: func(*ConfigRawInput) {},
			needs:  NeedPipeline,
		},
		{
			name:        "invalid strategy",
			mutate:      func(in *ConfigRawInput) { in.Strategy = "guess" },
			needs:       NeedPipeline,
			expectError: true,
		},
		{
			name:   "strategy is case insensitive",
			mutate: func(in *ConfigRawInput) { in.Strategy = "SPLIT" },
			needs:  NeedPipeline,
		},
		{
			name:        "invalid policy",
			mutate:      func(in *ConfigRawInput) { in.Policy = "lunar" },
			needs:       NeedPipeline,
			expectError: true,
		},
		{
			name:        "zero workers",
			mutate:      func(in *ConfigRawInput) { in.Workers = 0 },
			needs:       NeedPipeline,
			expectError: true,
		},
		{
			name:        "negative skip head",
			mutate:      func(in *ConfigRawInput) { in.SkipHead = -1 },
			needs:       NeedPipeline,
			expectError: true,
		},
		{
			name:        "duplicate periods",
			mutate:      func(in *ConfigRawInput) { in.Periods = "1,2,2" },
			needs:       NeedPipeline,
			expectError: true,
		},
		{
			name:        "invalid output",
			mutate:      func(in *ConfigRawInput) { in.Output = "yaml" },
			needs:       NeedPipeline,
			expectError: true,
		},
		{
			name:        "invalid color",
			mutate:      func(in *ConfigRawInput) { in.Color = "maybe" },
			needs:       NeedPipeline,
			expectError: true,
		},
		{
			name:        "invalid log level",
			mutate:      func(in *ConfigRawInput) { in.LogLevel = "trace" },
			needs:       NeedPipeline,
			expectError: true,
		},
		{
			name:        "invalid log format",
			mutate:      func(in *ConfigRawInput) { in.LogFormat = "xml" },
			needs:       NeedPipeline,
			expectError: true,
		},
		{
			name:        "missing schema",
			mutate:      func(in *ConfigRawInput) { in.Schema = "" },
			needs:       NeedPipeline,
			expectError: true,
		},
		{
			name:   "missing schema is fine without the need",
			mutate: func(in *ConfigRawInput) { in.Schema = "" },
			needs:  NeedDump,
		},
		{
			name: "positional dump",
			mutate: func(in *ConfigRawInput) {
				in.Dump = ""
				in.PositionalPath = "conf.sql"
			},
			needs: NeedPipeline,
		},
		{
			name:        "missing dump",
			mutate:      func(in *ConfigRawInput) { in.Dump = "" },
			needs:       NeedPipeline,
			expectError: true,
		},
		{
			name: "join with all inputs",
			mutate: func(in *ConfigRawInput) {
				in.JoinSeries = "future.csv"
				in.JoinInDir = "in"
				in.JoinOutDir = "out"
			},
			needs: NeedJoin,
		},
		{
			name: "join with the same directories",
			mutate: func(in *ConfigRawInput) {
				in.JoinSeries = "future.csv"
				in.JoinInDir = "frames"
				in.JoinOutDir = "frames"
			},
			needs:       NeedJoin,
			expectError: true,
		},
		{
			name:        "join without series",
			mutate:      func(in *ConfigRawInput) { in.JoinInDir, in.JoinOutDir = "in", "out" },
			needs:       NeedJoin,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input, tt.needs)

			if tt.expectError {
				assert.Error(t, err, "contract.ProcessAndValidate should return an error for %s", tt.name)
				return
			}
			assert.NoError(t, err, "contract.ProcessAndValidate should not return an error for %s", tt.name)
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput(), NeedPipeline))

	assert.Equal(t, schema.AutoStrategy, cfg.Strategy)
	assert.Equal(t, schema.CustomPolicy, cfg.Policy)
	assert.Equal(t, schema.DefaultPeriods, cfg.Periods)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, schema.ConsoleLog, cfg.LogFormat)
	assert.Equal(t, DefaultJoinPattern, cfg.JoinPattern)
	assert.Equal(t, schema.OutputMode(""), cfg.Output)
	assert.Equal(t, schema.CSVOut, cfg.OutputOr(schema.CSVOut))
	assert.False(t, cfg.UseColors)
}

func TestParsePeriods(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    []int
		expectError bool
	}{
		{name: "empty uses defaults", input: "", expected: schema.DefaultPeriods},
		{name: "single", input: "4", expected: []int{4}},
		{name: "spaces", input: " 1, 3 ,5 ", expected: []int{1, 3, 5}},
		{name: "trailing comma", input: "2,", expected: []int{2}},
		{name: "not a number", input: "1,x", expectError: true},
		{name: "zero", input: "0", expectError: true},
		{name: "negative", input: "-2", expectError: true},
		{name: "duplicates", input: "3,3", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			periods, err := ParsePeriods(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, periods)
		})
	}
}

func TestFormatPeriods(t *testing.T) {
	assert.Equal(t, "1,2,4,6,10,15,20", FormatPeriods(schema.DefaultPeriods))
	assert.Equal(t, "", FormatPeriods(nil))
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Periods: []int{1, 2}, DateField: "CONF_START"}
	clone := cfg.Clone()
	clone.Periods[0] = 9

	assert.Equal(t, 1, cfg.Periods[0])
	assert.Equal(t, "CONF_START", clone.DateField)
}

func TestValidateOutputTarget(t *testing.T) {
	assert.NoError(t, ValidateOutputTarget(schema.CSVOut, ""))
	assert.NoError(t, ValidateOutputTarget(schema.ParquetOut, "weekly.parquet"))
	assert.Error(t, ValidateOutputTarget(schema.ParquetOut, ""))
	assert.Error(t, ValidateOutputTarget(schema.XLSXOut, ""))
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	require.NoError(t, ProcessProfilingConfig(profile, ""))
	assert.False(t, profile.Enabled)

	require.NoError(t, ProcessProfilingConfig(profile, "confcast"))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "confcast", profile.Prefix)
}

func TestRevalidateRecovery(t *testing.T) {
	base := &Config{}
	require.NoError(t, ProcessAndValidate(base, validInput(), NeedPipeline))

	cfg := base.Clone()
	require.NoError(t, RevalidateRecovery(cfg, "split", "", "3,5"))
	assert.Equal(t, schema.SplitStrategy, cfg.Strategy)
	assert.Equal(t, schema.CustomPolicy, cfg.Policy)
	assert.Equal(t, []int{3, 5}, cfg.Periods)
	assert.Equal(t, DefaultSkipHead, cfg.SkipHead)

	assert.Error(t, RevalidateRecovery(base.Clone(), "", "lunar", ""))
	assert.Error(t, RevalidateRecovery(base.Clone(), "", "", "0"))
}
