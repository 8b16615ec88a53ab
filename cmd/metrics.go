package cmd

import (
	"github.com/auralab/aura/core"
	"github.com/auralab/aura/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd displays the formal definitions of all scoring tables.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display scoring definitions, weights, bands and curves",
	Long: `Show the formal definitions behind every score Aura produces.

Provides complete transparency into scoring, including:
- Pillar weight tables for face and body scoring
- Ideal ratio targets, tolerances and classification bands
- The monotonic calibration curve from raw aggregate to 0-10 display
- Posture severity thresholds in degrees
- Custom pillar weights if configured via .aura.yaml

No measurements are scored - this is purely informational.

Use this to:
- Understand what each pillar measures
- Validate custom weight configurations
- Document scoring methodology

Examples:
  # Show default scoring definitions
  aura metrics

  # View with custom weights from config file
  aura metrics --config .aura.yaml`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAuraMetrics(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
