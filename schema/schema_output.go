package schema

// EnrichedSignal adds presentation data to a RatioSignal.
type EnrichedSignal struct {
	Rank  int    `json:"rank"`
	Label string `json:"statusLabel"`
	RatioSignal
}

// GetScoreLabel returns a plain text label for a 0-10 display score.
func GetScoreLabel(score10 float64) string {
	switch {
	case score10 >= 8:
		return "Excellent"
	case score10 >= 6.5:
		return "Strong"
	case score10 >= 5:
		return "Solid"
	case score10 >= 3.5:
		return "Developing"
	default:
		return "Needs work"
	}
}

// GetStatusLabel returns a plain text label for a signal status.
func GetStatusLabel(status SignalStatus) string {
	switch status {
	case StatusGood:
		return "In range"
	case StatusOK:
		return "Near range"
	default:
		return "Out of range"
	}
}

// GetLevelLabel returns a plain text label for an enhancement level.
func GetLevelLabel(level EnhancementLevel) string {
	switch level {
	case LevelSubtle:
		return "subtle"
	case LevelNoticeable:
		return "noticeable"
	case LevelTransformed:
		return "transformed"
	default:
		return "unknown"
	}
}

// EnrichSignals adds rank and status label to a list of ratio signals.
func EnrichSignals(signals []RatioSignal) []EnrichedSignal {
	output := make([]EnrichedSignal, len(signals))
	for i, s := range signals {
		output[i] = EnrichedSignal{
			Rank:        i + 1,
			Label:       GetStatusLabel(s.Status),
			RatioSignal: s,
		}
	}
	return output
}
