// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/auralab/aura/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Aura MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Aura Scoring Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: score_face ---
	s.AddTool(mcp.NewTool("score_face",
		mcp.WithDescription("Score a validated face measurement file and return the calibrated analysis."),
		mcp.WithString("measurements_file", mcp.Description("Path to the face measurements JSON file."), mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Cap on the number of ranked signals returned.")),
		mcp.WithBoolean("no_cache", mcp.Description("Bypass the determinism cache and recompute.")),
	), h.handleScoreFace)

	// --- 2. Tool: score_body ---
	s.AddTool(mcp.NewTool("score_body",
		mcp.WithDescription("Score a validated body measurement file and return the calibrated analysis."),
		mcp.WithString("measurements_file", mcp.Description("Path to the body measurements JSON file."), mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Cap on the number of ranked signals returned.")),
		mcp.WithBoolean("no_cache", mcp.Description("Bypass the determinism cache and recompute.")),
	), h.handleScoreBody)

	// --- 3. Tool: estimate_reachability ---
	s.AddTool(mcp.NewTool("estimate_reachability",
		mcp.WithDescription("Estimate the time window to reach the changes allowed at an enhancement level."),
		mcp.WithString("measurements_file", mcp.Description("Path to the body measurements JSON file."), mcp.Required()),
		mcp.WithNumber("level", mcp.Description("Enhancement level: 1 (subtle), 2 (noticeable), 3 (transformed).")),
	), h.handleEstimateReachability)

	// --- 4. Tool: get_change_budget ---
	s.AddTool(mcp.NewTool("get_change_budget",
		mcp.WithDescription("Return the per-dimension change budget for an enhancement level."),
		mcp.WithNumber("level", mcp.Description("Enhancement level: 1 (subtle), 2 (noticeable), 3 (transformed).")),
	), h.handleGetChangeBudget)

	return s
}

// StartMCPServer starts the Aura MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
