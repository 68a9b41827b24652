package cmd

import (
	"github.com/huangsam/confcast/core"
	"github.com/huangsam/confcast/internal/contract"
	"github.com/spf13/cobra"
)

// joinCmd appends a count series to dated access frames.
var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Append series columns to stamped access frames.",
	Long: `The join command reads every frame whose name carries a YYYYMMDD-YYYYMMDD stamp,
looks up the series row of the week that stamp names and writes a gzip copy with the
series values appended.`,
	Example: `confcast join --join-series future.csv --join-indir ./frames --join-outdir s3://bucket/joined`,
	Args:    cobra.NoArgs,
	PreRunE: setupFor(contract.NeedJoin),
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteJoin(rootCtx, cfg, reader, writer); err != nil {
			contract.LogFatal("Cannot join frames", err)
		}
	},
}
