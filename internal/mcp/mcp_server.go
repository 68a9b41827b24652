// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/confcast/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the confcast MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, reader contract.ResourceReader) *server.MCPServer {
	s := server.NewMCPServer(
		"Conference Count Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		reader:  reader,
	}

	// --- 1. Tool: recover_records ---
	s.AddTool(mcp.NewTool("recover_records",
		mcp.WithDescription("Recover typed conference records from a fixed-layout dump, sorted by date."),
		mcp.WithString("schema", mcp.Description("Schema path or URL (defaults to the configured schema).")),
		mcp.WithString("dump", mcp.Description("Dump path or URL (defaults to the configured dump).")),
		mcp.WithString("strategy", mcp.Description("Recovery strategy. Defaults to 'auto'."), mcp.Enum("auto", "match", "split")),
		mcp.WithBoolean("lenient", mcp.Description("Skip malformed records instead of failing.")),
	), h.handleRecoverRecords)

	// --- 2. Tool: weekly_counts ---
	s.AddTool(mcp.NewTool("weekly_counts",
		mcp.WithDescription("Count conferences per calendar week, with empty weeks filled in."),
		mcp.WithString("schema", mcp.Description("Schema path or URL.")),
		mcp.WithString("dump", mcp.Description("Dump path or URL.")),
		mcp.WithString("policy", mcp.Description("Calendar policy. Defaults to 'custom'."), mcp.Enum("custom", "iso")),
		mcp.WithString("strategy", mcp.Description("Recovery strategy."), mcp.Enum("auto", "match", "split")),
	), h.handleWeeklyCounts)

	// --- 3. Tool: future_counts ---
	s.AddTool(mcp.NewTool("future_counts",
		mcp.WithDescription("Sum the conferences of the next N weeks for every week of the series."),
		mcp.WithString("schema", mcp.Description("Schema path or URL.")),
		mcp.WithString("dump", mcp.Description("Dump path or URL.")),
		mcp.WithString("periods", mcp.Description("Comma-separated window lengths in weeks (e.g. '1,2,4').")),
		mcp.WithString("policy", mcp.Description("Calendar policy."), mcp.Enum("custom", "iso")),
		mcp.WithString("strategy", mcp.Description("Recovery strategy."), mcp.Enum("auto", "match", "split")),
	), h.handleFutureCounts)

	return s
}

// StartMCPServer starts the confcast MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, reader contract.ResourceReader) error {
	s := NewMCPServer(baseCfg, reader)
	return server.ServeStdio(s)
}
