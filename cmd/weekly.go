package cmd

import (
	"github.com/huangsam/confcast/core"
	"github.com/huangsam/confcast/internal/contract"
	"github.com/spf13/cobra"
)

// weeklyCmd prints the dense weekly count series.
var weeklyCmd = &cobra.Command{
	Use:   "weekly [dump]",
	Short: "Count records per calendar week.",
	Long: `The weekly command buckets records into calendar weeks and emits one row per week
between the first and last record, including weeks with no records.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: setupFor(contract.NeedPipeline),
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteWeekly(rootCtx, cfg, reader, writer); err != nil {
			contract.LogFatal("Cannot build weekly series", err)
		}
	},
}
