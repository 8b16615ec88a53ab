package contract

import (
	"fmt"
)

// LogAnalysisHeader prints a concise, 2-line header for each scoring phase.
func LogAnalysisHeader(cfg *Config, kind string, photoHash string) {
	prefix := ""
	if cfg.UseEmojis {
		prefix = "🔎 "
	}
	fmt.Printf("%sPhoto: %s (Kind: %s)\n", prefix, ShortHash(photoHash), kind)

	prefix = ""
	if cfg.UseEmojis {
		prefix = "📐 "
	}
	fmt.Printf("%sScoring: %s (Endpoint: %s)\n", prefix, cfg.ConfigVersion, cfg.EndpointVersion)
}

// LogReachHeader prints a header for reachability estimation.
func LogReachHeader(cfg *Config, photoHash string) {
	prefix := ""
	if cfg.UseEmojis {
		prefix = "🔎 "
	}
	fmt.Printf("%sPhoto: %s (Level: %d)\n", prefix, ShortHash(photoHash), cfg.Level)

	prefix = ""
	if cfg.UseEmojis {
		prefix = "📐 "
	}
	fmt.Printf("%sScoring: %s (Endpoint: %s)\n", prefix, cfg.ConfigVersion, cfg.EndpointVersion)
}
