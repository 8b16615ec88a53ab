// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/auralab/aura/internal/contract"
	"github.com/auralab/aura/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteFace prints a face analysis using the configured output format.
func (ow *OutWriter) WriteFace(analysis *schema.FaceAnalysis, cfg *contract.Config, duration time.Duration) error {
	return PrintFaceAnalysis(analysis, cfg, duration)
}

// WriteBody prints a body analysis using the configured output format.
func (ow *OutWriter) WriteBody(analysis *schema.BodyAnalysis, cfg *contract.Config, duration time.Duration) error {
	return PrintBodyAnalysis(analysis, cfg, duration)
}

// WriteReach prints a reachability estimate using the configured output format.
func (ow *OutWriter) WriteReach(estimate *schema.ReachEstimate, cfg *contract.Config, duration time.Duration) error {
	return PrintReachEstimate(estimate, cfg, duration)
}

// WriteBudget prints a change budget using the configured output format.
func (ow *OutWriter) WriteBudget(budget *schema.ChangeBudget, dims []schema.ChangeDimension, cfg *contract.Config) error {
	return PrintChangeBudget(budget, dims, cfg)
}

// WriteHistory prints recorded scoring runs using the configured output format.
func (ow *OutWriter) WriteHistory(runs []schema.RunRecord, cfg *contract.Config) error {
	return PrintRunHistory(runs, cfg)
}
