package contract

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/huangsam/confcast/core/agg"
	"github.com/huangsam/confcast/core/dump"
	"github.com/huangsam/confcast/schema"
)

// Default values for configuration.
const (
	DefaultSkipHead    = dump.DefaultSkipHead
	DefaultSkipTail    = dump.DefaultSkipTail
	DefaultLogLevel    = "info"
	DefaultJoinPattern = "dataframe*"
)

// DefaultWorkers is the default number of concurrent decode workers.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DefaultPeriodsString is the flag form of schema.DefaultPeriods.
var DefaultPeriodsString = FormatPeriods(schema.DefaultPeriods)

// Needs lists the inputs a command cannot run without.
type Needs int

// Inputs a command may require.
const (
	NeedSchema Needs = 1 << iota
	NeedDump
	NeedJoin

	NeedPipeline = NeedSchema | NeedDump
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a run.
// This struct remains the "final, validated" config.
type Config struct {
	SchemaPath string
	DumpPath   string
	DateField  string // empty selects the first DATE field

	Strategy          schema.Strategy
	Policy            schema.CalendarPolicy
	Periods           []int
	Lenient           bool
	AllowUnknownTypes bool
	SkipHead          int
	SkipTail          int
	Workers           int

	Output      schema.OutputMode // empty lets each command pick its default
	OutputFile  string
	RecordsFile string
	WeeklyFile  string
	FutureFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	LogLevel  string
	LogFormat schema.LogFormat

	JoinSeries  string
	JoinInDir   string
	JoinOutDir  string
	JoinPattern string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	PositionalPath string

	// --- Fields from rootCmd.PersistentFlags() ---
	Schema            string `mapstructure:"schema"`
	Dump              string `mapstructure:"dump"`
	DateField         string `mapstructure:"date-field"`
	Strategy          string `mapstructure:"strategy"`
	Policy            string `mapstructure:"policy"`
	Periods           string `mapstructure:"periods"`
	Lenient           bool   `mapstructure:"lenient"`
	AllowUnknownTypes bool   `mapstructure:"allow-unknown-types"`
	SkipHead          int    `mapstructure:"skip-head"`
	SkipTail          int    `mapstructure:"skip-tail"`
	Workers           int    `mapstructure:"workers"`
	Output            string `mapstructure:"output"`
	OutputFile        string `mapstructure:"output-file"`
	Width             int    `mapstructure:"width"`
	Color             string `mapstructure:"color"`
	LogLevel          string `mapstructure:"log-level"`
	LogFormat         string `mapstructure:"log-format"`

	// --- Fields from runCmd.Flags() ---
	RecordsFile string `mapstructure:"records-file"`
	WeeklyFile  string `mapstructure:"weekly-file"`
	FutureFile  string `mapstructure:"future-file"`

	// --- Fields from joinCmd.Flags() ---
	JoinSeries  string `mapstructure:"join-series"`
	JoinInDir   string `mapstructure:"join-indir"`
	JoinOutDir  string `mapstructure:"join-outdir"`
	JoinPattern string `mapstructure:"join-pattern"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Periods != nil {
		clone.Periods = make([]int, len(c.Periods))
		copy(clone.Periods, c.Periods)
	}
	return &clone
}

// OutputOr returns the configured output mode, or fallback when none was set.
func (c *Config) OutputOr(fallback schema.OutputMode) schema.OutputMode {
	if c.Output == "" {
		return fallback
	}
	return c.Output
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput, needs Needs) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processRecovery(cfg, input); err != nil {
		return err
	}
	if err := processOutputs(cfg, input); err != nil {
		return err
	}
	if err := processJoin(cfg, input); err != nil {
		return err
	}
	return validateNeeds(cfg, needs)
}

// validateSimpleInputs processes and validates fields without cross-checks.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.SchemaPath = strings.TrimSpace(input.Schema)
	cfg.DumpPath = strings.TrimSpace(input.Dump)
	if cfg.DumpPath == "" {
		cfg.DumpPath = strings.TrimSpace(input.PositionalPath)
	}
	cfg.DateField = strings.TrimSpace(input.DateField)
	cfg.Width = input.Width

	if input.Color != "" {
		colors, err := ParseBoolString(input.Color)
		if err != nil {
			return fmt.Errorf("invalid --color value: %w", err)
		}
		cfg.UseColors = colors
	}

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(input.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level '%s'. must be debug, info, warn, error", input.LogLevel)
	}

	cfg.LogFormat = schema.LogFormat(strings.ToLower(input.LogFormat))
	if cfg.LogFormat == "" {
		cfg.LogFormat = schema.ConsoleLog
	}
	if _, ok := schema.ValidLogFormats[cfg.LogFormat]; !ok {
		return fmt.Errorf("invalid log format '%s'. must be console, json", input.LogFormat)
	}
	return nil
}

// processRecovery handles the parser and aggregation settings.
func processRecovery(cfg *Config, input *ConfigRawInput) error {
	cfg.Strategy = schema.Strategy(strings.ToLower(input.Strategy))
	if cfg.Strategy == "" {
		cfg.Strategy = schema.AutoStrategy
	}
	if _, ok := schema.ValidStrategies[cfg.Strategy]; !ok {
		return fmt.Errorf("invalid strategy '%s'. must be auto, match, split", input.Strategy)
	}

	cfg.Policy = schema.CalendarPolicy(strings.ToLower(input.Policy))
	if cfg.Policy == "" {
		cfg.Policy = schema.CustomPolicy
	}
	if _, ok := schema.ValidCalendarPolicies[cfg.Policy]; !ok {
		return fmt.Errorf("invalid policy '%s'. must be custom, iso", input.Policy)
	}

	periods, err := ParsePeriods(input.Periods)
	if err != nil {
		return err
	}
	cfg.Periods = periods

	if input.SkipHead < 0 || input.SkipTail < 0 {
		return fmt.Errorf("skip-head and skip-tail cannot be negative (received %d, %d)", input.SkipHead, input.SkipTail)
	}
	cfg.SkipHead = input.SkipHead
	cfg.SkipTail = input.SkipTail
	cfg.Lenient = input.Lenient
	cfg.AllowUnknownTypes = input.AllowUnknownTypes
	return nil
}

// processOutputs validates the output format and destinations.
func processOutputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = strings.TrimSpace(input.OutputFile)
	cfg.RecordsFile = strings.TrimSpace(input.RecordsFile)
	cfg.WeeklyFile = strings.TrimSpace(input.WeeklyFile)
	cfg.FutureFile = strings.TrimSpace(input.FutureFile)

	cfg.Output = schema.OutputMode(strings.ToLower(strings.TrimSpace(input.Output)))
	if cfg.Output == "" {
		return nil
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be csv, tsv, json, text, parquet, xlsx", input.Output)
	}
	return nil
}

// processJoin handles the settings of the join command.
func processJoin(cfg *Config, input *ConfigRawInput) error {
	cfg.JoinSeries = strings.TrimSpace(input.JoinSeries)
	cfg.JoinInDir = strings.TrimSpace(input.JoinInDir)
	cfg.JoinOutDir = strings.TrimSpace(input.JoinOutDir)
	cfg.JoinPattern = strings.TrimSpace(input.JoinPattern)
	if cfg.JoinPattern == "" {
		cfg.JoinPattern = DefaultJoinPattern
	}
	return nil
}

// validateNeeds checks that the inputs a command requires are present.
func validateNeeds(cfg *Config, needs Needs) error {
	if needs&NeedSchema != 0 && cfg.SchemaPath == "" {
		return fmt.Errorf("must specify --schema")
	}
	if needs&NeedDump != 0 && cfg.DumpPath == "" {
		return fmt.Errorf("must specify --dump or pass the dump as an argument")
	}
	if needs&NeedJoin != 0 {
		switch {
		case cfg.JoinSeries == "":
			return fmt.Errorf("must specify --join-series")
		case cfg.JoinInDir == "":
			return fmt.Errorf("must specify --join-indir")
		case cfg.JoinOutDir == "":
			return fmt.Errorf("must specify --join-outdir")
		case cfg.JoinInDir == cfg.JoinOutDir:
			return fmt.Errorf("join-indir and join-outdir must differ (both are %s)", cfg.JoinInDir)
		}
	}
	return nil
}

// ValidateOutputTarget rejects binary formats aimed at stdout.
func ValidateOutputTarget(mode schema.OutputMode, path string) error {
	if _, fileOnly := schema.FileOnlyOutputModes[mode]; fileOnly && path == "" {
		return fmt.Errorf("%s output requires an output file", mode)
	}
	return nil
}

// ParsePeriods parses a comma-separated list of window lengths in weeks.
func ParsePeriods(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return append([]int(nil), schema.DefaultPeriods...), nil
	}
	var periods []int
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		p, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid period '%s': %w", part, err)
		}
		periods = append(periods, p)
	}
	if err := agg.ValidatePeriods(periods); err != nil {
		return nil, fmt.Errorf("invalid periods '%s': %w", s, err)
	}
	return periods, nil
}

// FormatPeriods renders periods in their flag form.
func FormatPeriods(periods []int) string {
	parts := make([]string, len(periods))
	for i, p := range periods {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}

// ProcessProfilingConfig processes the profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// RevalidateRecovery applies per-request overrides of the recovery settings.
// Empty overrides keep the current values.
func RevalidateRecovery(cfg *Config, strategy, policy, periods string) error {
	input := &ConfigRawInput{
		Strategy:          string(cfg.Strategy),
		Policy:            string(cfg.Policy),
		Periods:           FormatPeriods(cfg.Periods),
		SkipHead:          cfg.SkipHead,
		SkipTail:          cfg.SkipTail,
		Lenient:           cfg.Lenient,
		AllowUnknownTypes: cfg.AllowUnknownTypes,
	}
	if strategy != "" {
		input.Strategy = strategy
	}
	if policy != "" {
		input.Policy = policy
	}
	if periods != "" {
		input.Periods = periods
	}
	return processRecovery(cfg, input)
}
