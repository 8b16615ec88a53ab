// Package core has core logic for scoring, calibration and reachability.
package core

import (
	"context"
	"time"

	"github.com/auralab/aura/internal/contract"
	"github.com/auralab/aura/internal/ingest"
	"github.com/auralab/aura/internal/outwriter"
	"github.com/auralab/aura/schema"
)

// ExecutorFunc defines the function signature for executing different scoring modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// GetFaceAnalysisResults loads face measurements, scores them through the
// cache and records the run. Both the CLI path and the MCP server use this.
func GetFaceAnalysisResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.FaceAnalysis, time.Duration, error) {
	start := time.Now()
	m, err := ingest.LoadFaceMeasurements(cfg.InputFile)
	if err != nil {
		return nil, 0, err
	}

	if !shouldSuppressHeader(ctx) {
		contract.LogAnalysisHeader(cfg, "face", m.PhotoHash)
	}

	analysis, cacheHit, err := CachedFaceAnalysis(cfg, resultStore(cfg, mgr), m)
	if err != nil {
		return nil, 0, err
	}
	analysis.Signals = rankSignals(cfg.Scoring.FaceRatios, analysis.Signals, cfg.SignalLimit)

	recordRun(mgr, schema.RunRecord{
		StartedAt:     start,
		Kind:          "face",
		PhotoHash:     m.PhotoHash,
		ConfigVersion: cfg.ConfigVersion,
		Score10:       analysis.Overall.CurrentScore10,
		PotentialMin:  analysis.Overall.Potential.Min,
		PotentialMax:  analysis.Overall.Potential.Max,
		Confidence:    analysis.Overall.Confidence,
		PhotoQuality:  m.PhotoQuality,
		CacheHit:      cacheHit,
	})

	return analysis, time.Since(start), nil
}

// ExecuteAuraFace runs face scoring on a measurement file and prints results
// to stdout. It serves as the main entry point for the 'face' command.
func ExecuteAuraFace(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	analysis, duration, err := GetFaceAnalysisResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintFaceAnalysis(analysis, cfg, duration)
}

// GetBodyAnalysisResults loads body measurements, scores them through the
// cache and records the run.
func GetBodyAnalysisResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.BodyAnalysis, time.Duration, error) {
	start := time.Now()
	m, err := ingest.LoadBodyMeasurements(cfg.InputFile)
	if err != nil {
		return nil, 0, err
	}

	if !shouldSuppressHeader(ctx) {
		contract.LogAnalysisHeader(cfg, "body", m.PhotoHash)
	}

	analysis, cacheHit, err := CachedBodyAnalysis(cfg, resultStore(cfg, mgr), m)
	if err != nil {
		return nil, 0, err
	}
	specs := cfg.Scoring.BodyRatios[m.Presentation]
	if specs == nil {
		specs = cfg.Scoring.BodyRatios[schema.PresentationNeutral]
	}
	analysis.Signals = rankSignals(specs, analysis.Signals, cfg.SignalLimit)

	recordRun(mgr, schema.RunRecord{
		StartedAt:     start,
		Kind:          "body",
		PhotoHash:     m.PhotoHash,
		ConfigVersion: cfg.ConfigVersion,
		Score10:       analysis.Overall.CurrentScore10,
		PotentialMin:  analysis.Overall.Potential.Min,
		PotentialMax:  analysis.Overall.Potential.Max,
		Confidence:    analysis.Overall.Confidence,
		PhotoQuality:  m.PhotoQuality,
		CacheHit:      cacheHit,
	})

	return analysis, time.Since(start), nil
}

// ExecuteAuraBody runs body scoring on a measurement file and prints results
// to stdout. It serves as the main entry point for the 'body' command.
func ExecuteAuraBody(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	analysis, duration, err := GetBodyAnalysisResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintBodyAnalysis(analysis, cfg, duration)
}

// GetReachEstimateResults estimates the time window for the changes allowed
// at the configured enhancement level, using a body measurement file for
// quality and view context.
func GetReachEstimateResults(ctx context.Context, cfg *contract.Config) (*schema.ReachEstimate, time.Duration, error) {
	start := time.Now()
	m, err := ingest.LoadBodyMeasurements(cfg.InputFile)
	if err != nil {
		return nil, 0, err
	}

	if !shouldSuppressHeader(ctx) {
		contract.LogReachHeader(cfg, m.PhotoHash)
	}

	dims, err := ClampRequestedDimensions(cfg.Scoring, cfg.Level, cfg.Dimensions)
	if err != nil {
		return nil, 0, err
	}

	estimate, err := EstimateReachability(cfg.Scoring, cfg.Level, dims, m.PhotoQuality, m.HasSideView, m.HairLength)
	if err != nil {
		return nil, 0, err
	}
	return estimate, time.Since(start), nil
}

// ExecuteAuraReach estimates and prints the reachability window. It serves
// as the main entry point for the 'reach' command.
func ExecuteAuraReach(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	estimate, duration, err := GetReachEstimateResults(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.PrintReachEstimate(estimate, cfg, duration)
}

// ExecuteAuraBudget displays the change budget for the configured
// enhancement level. This is a static display that needs no measurements.
func ExecuteAuraBudget(_ context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	budget, err := ChangeBudgetFor(cfg.Scoring, cfg.Level)
	if err != nil {
		return err
	}
	dims, err := DimensionsForLevel(cfg.Scoring, cfg.Level)
	if err != nil {
		return err
	}
	return outwriter.PrintChangeBudget(&budget, dims, cfg)
}

// ExecuteAuraMetrics displays the formal definitions of all scoring tables.
// This is a static display that does not require measurements.
func ExecuteAuraMetrics(_ context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	return outwriter.PrintMetricsDefinitions(cfg)
}

// resultStore resolves the cache store to use, honoring --no-cache.
func resultStore(cfg *contract.Config, mgr contract.CacheManager) contract.CacheStore {
	if cfg.NoCache || mgr == nil {
		return nil
	}
	return mgr.GetResultStore()
}

// recordRun persists one run record best-effort. History is diagnostics,
// never a reason to fail a scoring request.
func recordRun(mgr contract.CacheManager, record schema.RunRecord) {
	if mgr == nil {
		return
	}
	history := mgr.GetHistoryStore()
	if history == nil {
		return
	}
	if _, err := history.RecordRun(record); err != nil {
		contract.LogWarn("history write failed", err)
	}
}
