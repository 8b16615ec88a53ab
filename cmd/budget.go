package cmd

import (
	"github.com/auralab/aura/core"
	"github.com/auralab/aura/internal/contract"
	"github.com/spf13/cobra"
)

// budgetCmd displays the change budget for an enhancement level.
var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Show the per-dimension change budget for an enhancement level.",
	Long: `Show how much each modifiable dimension may change at an enhancement level.

The budget caps what a generated preview is allowed to alter: hair, skin,
grooming, composition and posture each get an allowance that grows with
the level. Budgets are pure configuration and need no measurements.

Examples:
  # Budget for subtle changes (default)
  aura budget

  # Budget for a full transformation
  aura budget --level 3

  # Machine-readable budget
  aura budget --output json`,
	Args:    cobra.NoArgs,
	PreRunE: levelSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAuraBudget(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot display change budget", err)
		}
	},
}
