package cmd

import (
	"github.com/auralab/aura/core"
	"github.com/auralab/aura/internal/contract"
	"github.com/spf13/cobra"
)

// faceCmd scores a face measurement file.
var faceCmd = &cobra.Command{
	Use:   "face <measurements-file>",
	Short: "Score a face measurement file on the calibrated 0-10 scale.",
	Long: `Score a validated face measurement file deterministically.

Computes the weighted pillar breakdown (harmony, symmetry, thirds, geometry,
presentation), ranks the most informative ratio signals and reports:
- Calibrated overall score on the 0-10 scale
- Potential range reachable with modifiable changes
- Measurement confidence derived from photo quality

Identical measurements always produce identical output. Results are cached
by photo hash and config version, so repeat scoring is instant.

Examples:
  # Score a face measurement file
  aura face face.json

  # Show more ranked signals with two decimals
  aura face face.json --limit 10 --precision 2

  # Force a fresh computation
  aura face face.json --no-cache

  # Export the full analysis as JSON
  aura face face.json --output json --output-file face-analysis.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAuraFace(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot score face measurements", err)
		}
	},
}
