// Package cmd defines the command-line interface for confcast.
package cmd

import (
	"github.com/huangsam/confcast/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(weeklyCmd)
	rootCmd.AddCommand(futureCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(joinCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("schema", "", "Path or URL of the schema describing the dump fields")
	rootCmd.PersistentFlags().String("dump", "", "Path or URL of the record dump (file://, s3://, gs://)")
	rootCmd.PersistentFlags().String("date-field", "", "DATE field used for sorting and bucketing (default: first DATE field)")
	rootCmd.PersistentFlags().String("strategy", "auto", "Recovery strategy: auto or match or split")
	rootCmd.PersistentFlags().String("policy", "custom", "Calendar policy: custom or iso")
	rootCmd.PersistentFlags().String("periods", contract.DefaultPeriodsString, "Comma-separated future window lengths in weeks")
	rootCmd.PersistentFlags().Bool("lenient", false, "Log and skip malformed records instead of failing")
	rootCmd.PersistentFlags().Bool("allow-unknown-types", false, "Accept schema types without a decoder")
	rootCmd.PersistentFlags().Int("skip-head", contract.DefaultSkipHead, "Preamble lines dropped before splitting the dump")
	rootCmd.PersistentFlags().Int("skip-tail", contract.DefaultSkipTail, "Footer lines dropped before splitting the dump")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent decode workers")
	rootCmd.PersistentFlags().String("output", "", "Output format: csv or tsv or json or text or parquet or xlsx")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored counts in text output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("log-format", "console", "Log format: console or json")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of runCmd to Viper
	runCmd.Flags().String("records-file", "", "Destination of the sorted records table")
	runCmd.Flags().String("weekly-file", "", "Destination of the weekly series")
	runCmd.Flags().String("future-file", "", "Destination of the future-window series")
	if err := viper.BindPFlags(runCmd.Flags()); err != nil {
		contract.LogFatal("Error binding run flags", err)
	}

	// Bind all flags of joinCmd to Viper
	joinCmd.Flags().String("join-series", "", "Weekly or future series CSV (optionally gzip)")
	joinCmd.Flags().String("join-indir", "", "Directory or bucket URL holding the access frames")
	joinCmd.Flags().String("join-outdir", "", "Directory or bucket URL receiving the joined frames")
	joinCmd.Flags().String("join-pattern", contract.DefaultJoinPattern, "Glob selecting frame files by base name")
	if err := viper.BindPFlags(joinCmd.Flags()); err != nil {
		contract.LogFatal("Error binding join flags", err)
	}
}
