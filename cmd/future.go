package cmd

import (
	"github.com/huangsam/confcast/core"
	"github.com/huangsam/confcast/internal/contract"
	"github.com/spf13/cobra"
)

// futureCmd prints the future-window count series.
var futureCmd = &cobra.Command{
	Use:   "future [dump]",
	Short: "Sum upcoming weekly counts over several horizons.",
	Long: `The future command extends the weekly series with one column per period, holding
the number of records in the next N weeks. Windows that run past the last week are left undefined.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: setupFor(contract.NeedPipeline),
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFuture(rootCtx, cfg, reader, writer); err != nil {
			contract.LogFatal("Cannot build future series", err)
		}
	},
}
