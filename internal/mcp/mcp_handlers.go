package mcp

import (
	"bytes"
	"context"
	"fmt"

	"github.com/huangsam/confcast/core"
	"github.com/huangsam/confcast/internal/contract"
	"github.com/huangsam/confcast/internal/outwriter"
	"github.com/huangsam/confcast/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	reader  contract.ResourceReader
}

// requestConfig applies the request arguments shared by every tool.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("schema", ""); p != "" {
		cfg.SchemaPath = p
	}
	if p := request.GetString("dump", ""); p != "" {
		cfg.DumpPath = p
	}
	cfg.Lenient = request.GetBool("lenient", cfg.Lenient)

	if cfg.SchemaPath == "" {
		return nil, fmt.Errorf("schema is required")
	}
	if cfg.DumpPath == "" {
		return nil, fmt.Errorf("dump is required")
	}

	err := contract.RevalidateRecovery(cfg,
		request.GetString("strategy", ""),
		request.GetString("policy", ""),
		request.GetString("periods", ""))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// analyze runs the pipeline and encodes the selected table as JSON.
func (h *toolHandler) analyze(ctx context.Context, request mcp.CallToolRequest, pick func(*core.Analysis) outwriter.Table) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	analysis, err := core.AnalyzeQuietly(ctx, cfg, h.reader)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	var buf bytes.Buffer
	if err := outwriter.Encode(&buf, schema.JSONOut, pick(analysis), cfg, 0); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding failed: %v", err)), nil
	}
	result := mcp.NewToolResultText(buf.String())
	if n := analysis.Recovery.Skipped; n > 0 {
		result.Content = append(result.Content,
			mcp.NewTextContent(fmt.Sprintf("lenient mode skipped %d malformed records; counts exclude them", n)))
	}
	return result, nil
}

func (h *toolHandler) handleRecoverRecords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.analyze(ctx, request, func(a *core.Analysis) outwriter.Table {
		return outwriter.RecordsTable(a.Schema.Names(), a.Records)
	})
}

func (h *toolHandler) handleWeeklyCounts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.analyze(ctx, request, func(a *core.Analysis) outwriter.Table {
		return outwriter.WeeklyTable(a.Series)
	})
}

func (h *toolHandler) handleFutureCounts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.analyze(ctx, request, func(a *core.Analysis) outwriter.Table {
		return outwriter.FutureTable(a.Future, a.Periods)
	})
}
