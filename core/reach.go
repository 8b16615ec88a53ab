package core

import (
	"fmt"
	"slices"
	"sort"

	"github.com/auralab/aura/core/algo"
	"github.com/auralab/aura/schema"
)

// Photo quality tiers for reachability discounting.
const (
	qualityPoor = 0.5
	qualityFair = 0.75
)

// ChangeBudgetFor returns the per-dimension change caps for an enhancement
// level.
func ChangeBudgetFor(sc *schema.ScoringConfig, level schema.EnhancementLevel) (schema.ChangeBudget, error) {
	budget, ok := sc.Budgets[level]
	if !ok {
		return schema.ChangeBudget{}, fmt.Errorf("no change budget for level %d", level)
	}
	return budget, nil
}

// DimensionsForLevel derives the change dimensions a level's budget permits.
// Composition drops out when its budget is "none"; posture only enters once
// the budget allows actual correction rather than a momentary cue.
func DimensionsForLevel(sc *schema.ScoringConfig, level schema.EnhancementLevel) ([]schema.ChangeDimension, error) {
	budget, err := ChangeBudgetFor(sc, level)
	if err != nil {
		return nil, err
	}

	dims := []schema.ChangeDimension{
		schema.DimHair,
		schema.DimSkin,
		schema.DimGrooming,
		schema.DimGlasses,
		schema.DimLighting,
		schema.DimOutfit,
	}
	if budget.Composition != "none" {
		dims = append(dims, schema.DimComposition)
	}
	if budget.Posture == "corrected" {
		dims = append(dims, schema.DimPosture)
	}
	return dims, nil
}

// ClampRequestedDimensions intersects an explicitly requested change set
// with what the level's budget permits. Disallowed dimensions are dropped,
// not errors; a request with nothing left is rejected so the caller never
// gets a silently-empty estimate. An empty request passes through and lets
// the estimator use the level's full permitted set.
func ClampRequestedDimensions(sc *schema.ScoringConfig, level schema.EnhancementLevel, requested []schema.ChangeDimension) ([]schema.ChangeDimension, error) {
	if len(requested) == 0 {
		return nil, nil
	}

	allowed, err := DimensionsForLevel(sc, level)
	if err != nil {
		return nil, err
	}

	clamped := make([]schema.ChangeDimension, 0, len(requested))
	for _, dim := range requested {
		if slices.Contains(allowed, dim) && !slices.Contains(clamped, dim) {
			clamped = append(clamped, dim)
		}
	}
	if len(clamped) == 0 {
		return nil, fmt.Errorf("none of the requested changes are permitted at level %d", level)
	}
	return clamped, nil
}

// hairChangeTimes resolves the hair window from the level's hair budget and
// the current hair length. A tidy is always same-day. A restyle or transform
// from short hair needs growing out; from medium or long hair a cut gets
// there. Unknown length keeps the wide fallback from ChangeTimes.
func hairChangeTimes(sc *schema.ScoringConfig, budget schema.ChangeBudget, hairLength schema.HairLength) (schema.WeeksRange, bool) {
	if budget.Hair == "tidy" {
		return sc.HairCutTimes, false
	}
	switch hairLength {
	case schema.HairBuzz, schema.HairShort:
		return sc.HairGrowthTimes, true
	case schema.HairMedium, schema.HairLong:
		return sc.HairCutTimes, false
	default:
		return sc.ChangeTimes[schema.DimHair], false
	}
}

// EstimateReachability maps a requested change set to a time window. The
// slowest dimension dominates: every other change completes inside its
// window. Poor inputs never fail the estimate; they discount its confidence
// and stretch its upper bound instead.
func EstimateReachability(sc *schema.ScoringConfig, level schema.EnhancementLevel, dims []schema.ChangeDimension, photoQuality float64, hasSideView bool, hairLength schema.HairLength) (*schema.ReachEstimate, error) {
	if len(dims) == 0 {
		var err error
		dims, err = DimensionsForLevel(sc, level)
		if err != nil {
			return nil, err
		}
	}
	budget, err := ChangeBudgetFor(sc, level)
	if err != nil {
		return nil, err
	}

	var window schema.WeeksRange
	hairGrowth := false
	hairUnknown := false
	used := make([]schema.ChangeDimension, 0, len(dims))
	for _, dim := range dims {
		times, ok := sc.ChangeTimes[dim]
		if !ok {
			return nil, fmt.Errorf("unknown change dimension '%s'", dim)
		}
		if dim == schema.DimHair {
			times, hairGrowth = hairChangeTimes(sc, budget, hairLength)
			hairUnknown = hairLength == "" && budget.Hair != "tidy"
		}
		used = append(used, dim)
		if times.MinWeeks > window.MinWeeks {
			window.MinWeeks = times.MinWeeks
		}
		if times.MaxWeeks > window.MaxWeeks {
			window.MaxWeeks = times.MaxWeeks
		}
	}
	sort.Slice(used, func(i, j int) bool { return used[i] < used[j] })

	// Confidence starts from photo quality; the tier discounts stack on top.
	quality := algo.Clamp01(photoQuality)
	confidence := quality
	assumptions := []string{
		"estimates assume consistent week-over-week adherence",
		"the slowest requested change gates the whole window",
	}

	switch {
	case quality < qualityPoor:
		confidence *= sc.QualityDiscountLo
		window.MaxWeeks *= sc.InflateLo
		assumptions = append(assumptions, "photo quality is poor; the window upper bound was stretched accordingly")
	case quality < qualityFair:
		confidence *= sc.QualityDiscountHi
		window.MaxWeeks *= sc.InflateHi
		assumptions = append(assumptions, "photo quality is fair; the window upper bound was stretched slightly")
	}

	if !hasSideView && (slices.Contains(used, schema.DimPosture) || slices.Contains(used, schema.DimComposition)) {
		confidence *= sc.NoSideDiscount
		window.MaxWeeks *= sc.InflateHi
		assumptions = append(assumptions, "no side view was provided; posture and composition baselines are approximate and the window upper bound was stretched")
	}

	if hairGrowth {
		assumptions = append(assumptions, "the requested hair style needs the current length grown out first")
	}
	if hairUnknown {
		assumptions = append(assumptions, "current hair length is unknown; the hair window spans cut-only through grow-out")
	}
	if slices.Contains(used, schema.DimComposition) {
		assumptions = append(assumptions, "composition change assumes a moderate, sustainable pace")
	}
	if slices.Contains(used, schema.DimPosture) {
		assumptions = append(assumptions, "posture change assumes daily corrective practice")
	}

	return &schema.ReachEstimate{
		Window: schema.WeeksRange{
			MinWeeks: algo.RoundTo(window.MinWeeks, 1),
			MaxWeeks: algo.RoundTo(window.MaxWeeks, 1),
		},
		Confidence:  algo.RoundTo(algo.Clamp01(confidence), 2),
		Level:       level,
		Dimensions:  used,
		Assumptions: assumptions,
	}, nil
}