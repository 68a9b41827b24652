package cmd

import (
	"github.com/huangsam/confcast/core"
	"github.com/huangsam/confcast/internal/contract"
	"github.com/spf13/cobra"
)

// runCmd executes the full pipeline and stores every requested table.
var runCmd = &cobra.Command{
	Use:   "run [dump]",
	Short: "Run the full pipeline and write records, weekly and future tables.",
	Long: `The run command parses the dump once and writes each requested table to its own file.
Files are committed together: if any table fails, none are left behind.`,
	Example: `confcast run conf.sql --schema conf.schema --records-file records.tsv --weekly-file weekly.csv --future-file future.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: setupFor(contract.NeedPipeline),
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRun(rootCtx, cfg, reader, writer); err != nil {
			contract.LogFatal("Cannot run pipeline", err)
		}
	},
}
