package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/auralab/aura/core"
	"github.com/auralab/aura/internal/contract"
	"github.com/auralab/aura/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// scoringConfig applies the shared scoring tool arguments onto a fresh copy
// of the base config.
func (h *toolHandler) scoringConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	cfg.InputFile = request.GetString("measurements_file", "")
	if cfg.InputFile == "" {
		return nil, fmt.Errorf("measurements_file is required")
	}
	if l := request.GetInt("limit", 0); l > 0 {
		if l > contract.MaxSignalLimit {
			return nil, fmt.Errorf("limit cannot exceed %d", contract.MaxSignalLimit)
		}
		cfg.SignalLimit = l
	}
	if request.GetBool("no_cache", false) {
		cfg.NoCache = true
	}
	return cfg, nil
}

// resolveLevel reads the level argument, falling back to the base config.
func (h *toolHandler) resolveLevel(request mcp.CallToolRequest) (schema.EnhancementLevel, error) {
	level := schema.EnhancementLevel(request.GetInt("level", int(h.baseCfg.Level)))
	if _, ok := schema.ValidEnhancementLevels[level]; !ok {
		return 0, fmt.Errorf("invalid level %d. must be 1 (subtle), 2 (noticeable), 3 (transformed)", level)
	}
	return level, nil
}

func (h *toolHandler) handleScoreFace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.scoringConfig(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	analysis, _, err := core.GetFaceAnalysisResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("face scoring failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(analysis, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleScoreBody(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.scoringConfig(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	analysis, _, err := core.GetBodyAnalysisResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("body scoring failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(analysis, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleEstimateReachability(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.InputFile = request.GetString("measurements_file", "")
	if cfg.InputFile == "" {
		return mcp.NewToolResultError("measurements_file is required"), nil
	}
	level, err := h.resolveLevel(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg.Level = level

	estimate, _, err := core.GetReachEstimateResults(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reachability estimate failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(estimate, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetChangeBudget(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	level, err := h.resolveLevel(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	budget, err := core.ChangeBudgetFor(h.baseCfg.Scoring, level)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("budget lookup failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(budget, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
