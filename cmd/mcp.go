package cmd

import (
	"github.com/huangsam/confcast/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd starts an MCP server over stdio.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server exposing the count pipeline as tools.",
	Long: `The mcp command serves recover_records, weekly_counts and future_counts over stdio.
Flags and config values act as defaults that each tool call may override.`,
	Args:    cobra.NoArgs,
	PreRunE: setupFor(0),
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, reader)
	},
}
