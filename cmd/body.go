package cmd

import (
	"github.com/auralab/aura/core"
	"github.com/auralab/aura/internal/contract"
	"github.com/spf13/cobra"
)

// bodyCmd scores a body measurement file.
var bodyCmd = &cobra.Command{
	Use:   "body <measurements-file>",
	Short: "Score a body measurement file on the calibrated 0-10 scale.",
	Long: `Score a validated body measurement file deterministically.

Computes the weighted pillar breakdown (proportion, symmetry, posture,
composition) against the ideal table for the detected presentation and
reports:
- Calibrated overall score on the 0-10 scale
- Potential range reachable with modifiable changes
- Posture severity buckets when a side view is available
- Composition as a band, never a point estimate

Without a side view the posture pillar is dropped and its weight is
redistributed, with confidence discounted accordingly.

Examples:
  # Score a body measurement file
  aura body body.json

  # Export ranked signals to CSV for tracking
  aura body body.json --output csv --output-file body-signals.csv

  # Force a fresh computation
  aura body body.json --no-cache`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAuraBody(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot score body measurements", err)
		}
	},
}
