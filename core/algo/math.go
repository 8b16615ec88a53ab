package algo

import (
	"math"

	"github.com/auralab/aura/schema"
)

// NeutralScore is returned when a signal cannot be measured. It sits at the
// middle of the 0-1 scale and always pairs with confidence 0.
const NeutralScore = 0.5

// nearZero guards ratio denominators. Measurements are in arbitrary
// positive units, so anything at or below this is unmeasurable.
const nearZero = 1e-9

// Clamp bounds x to [lo,hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Clamp01 bounds x to [0,1].
func Clamp01(x float64) float64 {
	return Clamp(x, 0, 1)
}

// RoundTo rounds x to the given number of decimal places. Rounding is part
// of the output contract: repeated analyses must produce byte-identical
// serialized results.
func RoundTo(x float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(x*pow) / pow
}

// Sanitize replaces NaN and infinities with a fallback. No internal value
// may cross the output boundary unguarded.
func Sanitize(x, fallback float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fallback
	}
	return x
}

// SafeRatio divides numerator by denominator, reporting ok=false when the
// denominator is zero or near-zero. Unmeasurable is an expected condition,
// not an error.
func SafeRatio(numerator, denominator float64) (float64, bool) {
	if math.Abs(denominator) <= nearZero {
		return 0, false
	}
	r := numerator / denominator
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}

// RatioScore converts a measured ratio to a 0-1 score with Gaussian falloff
// around the ideal midpoint. A wider sigma is more forgiving. The score
// peaks at exactly 1.0 when value equals idealMid.
func RatioScore(value, idealMid, sigma float64) float64 {
	if sigma <= 0 {
		return NeutralScore
	}
	z := (value - idealMid) / sigma
	return Clamp01(math.Exp(-z * z / 2))
}

// RatioStatus classifies value against the good band. Values within 1.5x
// the band's half-width of its center are "ok"; everything else is "off".
func RatioStatus(value float64, band [2]float64) schema.SignalStatus {
	if value >= band[0] && value <= band[1] {
		return schema.StatusGood
	}
	center := (band[0] + band[1]) / 2
	halfWidth := (band[1] - band[0]) / 2
	if math.Abs(value-center) <= 1.5*halfWidth {
		return schema.StatusOK
	}
	return schema.StatusOff
}

// WeightedMean combines values weighted by weight x confidence. When every
// effective weight is zero it falls back to the unweighted mean, and an
// empty input yields the neutral score so a missing signal group can never
// crash the aggregate.
func WeightedMean(values, weights, confidences []float64) float64 {
	if len(values) == 0 {
		return NeutralScore
	}

	var sum, weightSum float64
	for i, v := range values {
		w := 1.0
		if i < len(weights) {
			w = weights[i]
		}
		c := 1.0
		if i < len(confidences) {
			c = confidences[i]
		}
		effective := w * c
		sum += v * effective
		weightSum += effective
	}

	if weightSum <= nearZero {
		var plain float64
		for _, v := range values {
			plain += v
		}
		return plain / float64(len(values))
	}
	return sum / weightSum
}

// SymmetryScore compares paired left/right measurements. Each pair scores
// 1 - min(1, |left-right| / (tolerance x max)), and pairs average into a
// 0-1 index. Identical vectors score exactly 1. Extra unpaired entries are
// ignored; an empty pairing yields the neutral score.
func SymmetryScore(left, right []float64, tolerance float64) float64 {
	n := min(len(left), len(right))
	if n == 0 || tolerance <= 0 {
		return NeutralScore
	}

	var sum float64
	for i := range n {
		larger := math.Max(math.Abs(left[i]), math.Abs(right[i]))
		if larger <= nearZero {
			sum += 1.0 // both sides zero: perfectly symmetric
			continue
		}
		deviation := math.Abs(left[i]-right[i]) / (tolerance * larger)
		sum += 1.0 - math.Min(1.0, deviation)
	}
	return sum / float64(n)
}

// ThirdsBalanceScore penalizes deviation of three segments from an equal
// one-third share of their sum. Perfectly equal segments score 1.
func ThirdsBalanceScore(a, b, c float64) float64 {
	total := a + b + c
	if total <= nearZero {
		return NeutralScore
	}
	deviation := math.Abs(a/total-1.0/3) + math.Abs(b/total-1.0/3) + math.Abs(c/total-1.0/3)
	// Max possible deviation is 4/3 (one segment holds everything).
	return Clamp01(1.0 - deviation/(4.0/3))
}

// Calibrate maps a raw 0-1 aggregate onto the display 0-10 scale through
// the configured piecewise-linear curve. Inputs outside [0,1] are clamped;
// the curve's monotonicity makes the output monotone in raw.
func Calibrate(raw float64, curve []schema.CurvePoint) float64 {
	if len(curve) == 0 {
		return Clamp01(raw) * 10
	}
	raw = Clamp01(raw)

	if raw <= curve[0].Raw {
		return curve[0].Display
	}
	for i := 1; i < len(curve); i++ {
		if raw <= curve[i].Raw {
			lo, hi := curve[i-1], curve[i]
			t := (raw - lo.Raw) / (hi.Raw - lo.Raw)
			return lo.Display + t*(hi.Display-lo.Display)
		}
	}
	return curve[len(curve)-1].Display
}
