// main is the entry point for the aura CLI.
package main

import (
	"github.com/auralab/aura/cmd"
	"github.com/auralab/aura/internal/contract"
	"github.com/auralab/aura/internal/iocache"
)

func main() {
	defer iocache.CloseStores()

	cmd.SetCacheManager(iocache.Manager)

	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}

	if err := cmd.StopProfiling(); err != nil {
		contract.LogFatal("Failed to stop profiling", err)
	}
}
