package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/huangsam/confcast/internal/contract"
	"github.com/huangsam/confcast/internal/logging"
	"github.com/huangsam/confcast/internal/outwriter"
	"github.com/huangsam/confcast/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// profile holds profiling configuration.
var profile = &contract.ProfileConfig{}

// reader fetches schema and dump resources for every command.
var reader contract.ResourceReader = contract.NewBlobReader()

// writer prints and stores command results.
var writer = outwriter.NewOutWriter()

// startProfiling starts CPU and memory profiling if enabled.
func startProfiling() error {
	if !profile.Enabled {
		return nil
	}

	// Start CPU profiling
	cpuFile, err := os.Create(profile.Prefix + ".cpu.prof")
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		return fmt.Errorf("could not start CPU profiling: %w", err)
	}

	// Memory profiling will be captured at the end
	_, err = fmt.Fprintf(os.Stderr, "Profiling enabled. CPU profile: %s.cpu.prof, Memory profile: %s.mem.prof\n", profile.Prefix, profile.Prefix)
	return err
}

// stopProfiling stops profiling and writes memory profile.
func stopProfiling() error {
	if !profile.Enabled {
		return nil
	}

	pprof.StopCPUProfile()

	// Write memory profile
	memFile, err := os.Create(profile.Prefix + ".mem.prof")
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	defer func() { _ = memFile.Close() }()

	if err := pprof.WriteHeapProfile(memFile); err != nil {
		return fmt.Errorf("could not write memory profile: %w", err)
	}

	_, err = fmt.Fprintf(os.Stderr, "Profiling complete. Use 'go tool pprof %s.cpu.prof' to analyze.\n", profile.Prefix)
	return err
}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:   "confcast",
	Short: "Turn conference dumps into weekly count series.",
	Long: `Confcast recovers typed records from fixed-layout conference dumps, buckets them
into calendar weeks, and derives the dense weekly and future-window count series.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig sets the config file search paths, ENV variables and defaults.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".confcast") // Name of config file (without extension)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("CONFCAST")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("strategy", string(schema.AutoStrategy))
	viper.SetDefault("policy", string(schema.CustomPolicy))
	viper.SetDefault("periods", contract.DefaultPeriodsString)
	viper.SetDefault("skip-head", contract.DefaultSkipHead)
	viper.SetDefault("skip-tail", contract.DefaultSkipTail)
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("log-level", contract.DefaultLogLevel)
	viper.SetDefault("log-format", string(schema.ConsoleLog))
	viper.SetDefault("join-pattern", contract.DefaultJoinPattern)
	viper.SetDefault("color", "yes")
}

// sharedSetup unmarshals config, runs validation and starts the logger.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string, needs contract.Needs) error {
	// Handle profiling flag
	profilePrefix := viper.GetString("profile")
	if err := contract.ProcessProfilingConfig(profile, profilePrefix); err != nil {
		return fmt.Errorf("failed to process profiling config: %w", err)
	}
	if profile.Enabled {
		if err := startProfiling(); err != nil {
			return fmt.Errorf("failed to start profiling: %w", err)
		}
	}

	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	if len(args) == 1 {
		input.PositionalPath = args[0]
	}

	// 4. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input, needs); err != nil {
		return err
	}

	// 5. Start the structured logger with the validated settings
	return logging.Init(logging.Config{
		Level:    cfg.LogLevel,
		Encoding: string(cfg.LogFormat),
	})
}

// setupFor returns a PreRunE that validates the inputs a command needs.
func setupFor(needs contract.Needs) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return sharedSetup(rootCtx, cmd, args, needs)
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// StopProfiling stops profiling if enabled and flushes the logger.
func StopProfiling() error {
	_ = logging.Sync()
	return stopProfiling()
}
