package cmd

import (
	"github.com/auralab/aura/core"
	"github.com/auralab/aura/internal/contract"
	"github.com/spf13/cobra"
)

// reachCmd estimates the time window to reach an enhancement level.
var reachCmd = &cobra.Command{
	Use:   "reach <measurements-file>",
	Short: "Estimate the weeks needed to reach an enhancement level.",
	Long: `Estimate how long the changes allowed at an enhancement level would take.

Maps each modifiable dimension at the selected level to a realistic time
window (grooming is same-day, composition change takes months) and merges
them into one min/max estimate in weeks. By default every dimension the
level's budget permits is included; use --option to estimate a specific
request instead. The estimate always carries:
- A confidence discounted by photo quality and missing side view
- The explicit assumptions it rests on

Estimates are honest rather than optimistic: poor input photos widen the
window instead of shrinking it.

Examples:
  # Estimate for subtle changes (default)
  aura reach body.json

  # Estimate for a full transformation
  aura reach body.json --level 3

  # Estimate a specific change request
  aura reach body.json --level 2 --option hair --option grooming

  # Machine-readable estimate
  aura reach body.json --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: levelSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAuraReach(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot estimate reachability", err)
		}
	},
}
