package core

import (
	"sort"

	"github.com/auralab/aura/schema"
)

// rankSignals orders ratio signals by informativeness and keeps the top
// limit entries. Informativeness is the table weight times the score
// deficit: a heavily weighted ratio that is far from ideal tells the user
// the most. Ties break on key so output order never depends on map
// iteration.
func rankSignals(specs []schema.RatioSpec, signals []schema.RatioSignal, limit int) []schema.RatioSignal {
	weightByKey := make(map[schema.RatioKey]float64, len(specs))
	for _, spec := range specs {
		weightByKey[spec.Key] = spec.Weight
	}

	ranked := make([]schema.RatioSignal, len(signals))
	copy(ranked, signals)

	informativeness := func(s schema.RatioSignal) float64 {
		return weightByKey[s.Key] * (1 - s.Score)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := informativeness(ranked[i]), informativeness(ranked[j])
		if a != b {
			return a > b
		}
		return ranked[i].Key < ranked[j].Key
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
