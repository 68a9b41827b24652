package cmd

import (
	"github.com/huangsam/confcast/core"
	"github.com/huangsam/confcast/internal/contract"
	"github.com/spf13/cobra"
)

// parseCmd recovers the typed records of a dump.
var parseCmd = &cobra.Command{
	Use:   "parse [dump]",
	Short: "Recover typed records from a conference dump.",
	Long: `The parse command splits the dump into records, decodes every field against the
schema and prints the records sorted by their date field.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: setupFor(contract.NeedPipeline),
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteParse(rootCtx, cfg, reader, writer); err != nil {
			contract.LogFatal("Cannot parse dump", err)
		}
	},
}
