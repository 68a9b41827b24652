package cmd

import (
	"github.com/huangsam/confcast/core"
	"github.com/huangsam/confcast/internal/contract"
	"github.com/spf13/cobra"
)

// schemaCmd shows the parsed schema.
var schemaCmd = &cobra.Command{
	Use:     "schema",
	Short:   "Show the fields of a schema and their decoders.",
	Args:    cobra.NoArgs,
	PreRunE: setupFor(contract.NeedSchema),
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSchema(rootCtx, cfg, reader, writer); err != nil {
			contract.LogFatal("Cannot load schema", err)
		}
	},
}
