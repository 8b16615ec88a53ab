package core

import (
	"fmt"
	"sort"

	"github.com/auralab/aura/core/algo"
	"github.com/auralab/aura/schema"
)

// aggregatePillars combines pillar raw scores into a single 0-1 aggregate,
// weighting each by its table weight times its confidence. Pillar order in
// the returned slice is fixed by the given key order so serialized output
// is reproducible.
func aggregatePillars(pillars map[schema.PillarKey]schema.PillarScore, order []schema.PillarKey) (float64, float64, []schema.PillarScore) {
	values := make([]float64, 0, len(order))
	weights := make([]float64, 0, len(order))
	confidences := make([]float64, 0, len(order))
	out := make([]schema.PillarScore, 0, len(order))

	for _, key := range order {
		p, ok := pillars[key]
		if !ok {
			continue
		}
		p.Contribution = algo.RoundTo(p.RawScore*p.Weight, 4)
		out = append(out, p)
		values = append(values, p.RawScore)
		weights = append(weights, p.Weight)
		confidences = append(confidences, p.Confidence)
	}

	raw := algo.WeightedMean(values, weights, confidences)

	// Overall confidence is the weight-blended pillar confidence.
	var confSum, weightSum float64
	for i, w := range weights {
		confSum += confidences[i] * w
		weightSum += w
	}
	confidence := algo.NeutralScore
	if weightSum > 0 {
		confidence = confSum / weightSum
	}
	return algo.Clamp01(raw), algo.Clamp01(confidence), out
}

// calibrateOverall maps the raw aggregate onto the display scale and applies
// the honest-extremes policy: below the confidence threshold the engine will
// not claim scores near the ends of the scale.
func calibrateOverall(raw, confidence float64, sc *schema.ScoringConfig) float64 {
	score := algo.Calibrate(raw, sc.Curve)
	if confidence < sc.AllowExtremesThreshold {
		score = algo.Clamp(score, sc.ExtremeFloor, sc.ExtremeCeiling)
	}
	return algo.Clamp(score, 0, sc.ScoreCeiling)
}

// computePotential bounds the achievable improvement from modifiable factors
// only. The floor of the range is the current score; the ceiling adds the
// estimated room, capped per kind, and widens at low confidence because an
// uncertain measurement hides both flaws and upside.
func computePotential(current, room, cap_, confidence float64, sc *schema.ScoringConfig) schema.PotentialRange {
	gain := algo.Clamp(room, 0, cap_)
	if confidence < sc.AllowExtremesThreshold {
		gain *= sc.LowConfidenceWiden
	}
	return schema.PotentialRange{
		Min: current,
		Max: algo.Clamp(current+gain, current, sc.ScoreCeiling),
	}
}

// summarize builds the one-line summary attached to every overall result.
func summarize(kind string, score10 float64, potential schema.PotentialRange, confidence float64) string {
	label := schema.GetScoreLabel(score10)
	return fmt.Sprintf("%s score %.1f (%s), potential %.1f-%.1f, confidence %.0f%%",
		kind, score10, label, potential.Min, potential.Max, confidence*100)
}

// roundResult normalizes an overall result for output. All floats crossing
// the serialization boundary are rounded so repeated runs emit identical bytes.
func roundResult(r schema.OverallResult) schema.OverallResult {
	r.CurrentScore10 = algo.RoundTo(r.CurrentScore10, 1)
	r.Potential.Min = algo.RoundTo(r.Potential.Min, 1)
	r.Potential.Max = algo.RoundTo(r.Potential.Max, 1)
	r.Confidence = algo.RoundTo(r.Confidence, 2)
	if r.Potential.Min > r.CurrentScore10 {
		r.Potential.Min = r.CurrentScore10
	}
	if r.Potential.Max < r.Potential.Min {
		r.Potential.Max = r.Potential.Min
	}
	return r
}

// roundSignals normalizes signal floats for output.
func roundSignals(signals []schema.RatioSignal) []schema.RatioSignal {
	for i := range signals {
		signals[i].Value = algo.RoundTo(signals[i].Value, 3)
		signals[i].Score = algo.RoundTo(signals[i].Score, 3)
		signals[i].Confidence = algo.RoundTo(signals[i].Confidence, 2)
	}
	return signals
}

// sortedFeatureKeys returns map keys in stable order for deterministic
// iteration.
func sortedFeatureKeys(features map[schema.FeatureKey]schema.FeatureScore) []schema.FeatureKey {
	keys := make([]schema.FeatureKey, 0, len(features))
	for k := range features {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// featurePillar averages a named subset of feature sub-scores into a pillar
// raw score. Missing features are skipped; an empty subset yields the
// neutral score with zero confidence.
func featurePillar(features map[schema.FeatureKey]schema.FeatureScore, subset []schema.FeatureKey) (float64, float64) {
	var values, confidences []float64
	for _, key := range subset {
		f, ok := features[key]
		if !ok {
			continue
		}
		values = append(values, algo.Clamp01(f.Score10/10))
		confidences = append(confidences, algo.Clamp01(f.Confidence))
	}
	if len(values) == 0 {
		return algo.NeutralScore, 0
	}

	weights := make([]float64, len(values))
	for i := range weights {
		weights[i] = 1
	}
	raw := algo.WeightedMean(values, weights, confidences)

	var confSum float64
	for _, c := range confidences {
		confSum += c
	}
	return raw, confSum / float64(len(confidences))
}
