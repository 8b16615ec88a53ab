// Package cmd defines the command-line interface for aura.
package cmd

import (
	"github.com/auralab/aura/internal/contract"
	"github.com/auralab/aura/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(faceCmd)
	rootCmd.AddCommand(bodyCmd)
	rootCmd.AddCommand(reachCmd)
	rootCmd.AddCommand(budgetCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(historyCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultSignalLimit, "Number of ranked signals to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for score columns (1 or 2)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().Bool("no-cache", false, "Bypass the determinism cache and recompute")
	rootCmd.PersistentFlags().String("endpoint-version", contract.DefaultEndpointVersion, "Scoring endpoint revision (part of every cache key)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or redis or memory or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Connection string for mysql/postgresql/redis (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("history-backend", "", "Run history backend: sqlite or mysql or postgresql or memory or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Connection string for run history (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// reachCmd and budgetCmd both define a level flag. The viper binding
	// happens in their PreRunE so the active command's flag wins.
	reachCmd.Flags().Int("level", int(schema.LevelSubtle), "Enhancement level: 1 (subtle), 2 (noticeable), 3 (transformed)")
	budgetCmd.Flags().Int("level", int(schema.LevelSubtle), "Enhancement level: 1 (subtle), 2 (noticeable), 3 (transformed)")

	// The option flag exists only on reach, so binding at init is safe.
	reachCmd.Flags().StringSlice("option", nil, "Requested change dimension (repeatable): hair, skin, grooming, glasses, lighting, outfit, composition, posture")
	if err := viper.BindPFlag("option", reachCmd.Flags().Lookup("option")); err != nil {
		contract.LogFatal("Error binding reach option flag", err)
	}

	// Bind all flags of historyListCmd to Viper
	historyListCmd.Flags().Int("runs", 20, "Number of recent runs to display (0 = all)")
	if err := viper.BindPFlags(historyListCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history list flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
