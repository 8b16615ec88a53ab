package algo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auralab/aura/schema"
)

const scoreDelta = 1e-9

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		x        float64
		lo       float64
		hi       float64
		expected float64
	}{
		{name: "inside", x: 0.5, lo: 0, hi: 1, expected: 0.5},
		{name: "below", x: -3, lo: 0, hi: 1, expected: 0},
		{name: "above", x: 42, lo: 0, hi: 1, expected: 1},
		{name: "at lower bound", x: 2, lo: 2, hi: 8, expected: 2},
		{name: "at upper bound", x: 8, lo: 2, hi: 8, expected: 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clamp(tt.x, tt.lo, tt.hi))
		})
	}
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 7.13, RoundTo(7.1251, 2))
	assert.Equal(t, 7.1, RoundTo(7.1251, 1))
	assert.Equal(t, 7.0, RoundTo(7.1251, 0))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, 0.5, Sanitize(math.NaN(), 0.5))
	assert.Equal(t, 0.5, Sanitize(math.Inf(1), 0.5))
	assert.Equal(t, 0.5, Sanitize(math.Inf(-1), 0.5))
	assert.Equal(t, 3.2, Sanitize(3.2, 0.5))
}

func TestSafeRatio(t *testing.T) {
	r, ok := SafeRatio(1.0, 2.0)
	require.True(t, ok)
	assert.Equal(t, 0.5, r)

	_, ok = SafeRatio(1.0, 0)
	assert.False(t, ok)

	_, ok = SafeRatio(1.0, 1e-12)
	assert.False(t, ok)
}

// TestRatioScorePeak verifies the score is exactly 1 at the ideal midpoint
// and falls off symmetrically.
func TestRatioScorePeak(t *testing.T) {
	assert.InDelta(t, 1.0, RatioScore(0.74, 0.74, 0.08), scoreDelta)

	left := RatioScore(0.70, 0.74, 0.08)
	right := RatioScore(0.78, 0.74, 0.08)
	assert.InDelta(t, left, right, scoreDelta)
	assert.Less(t, left, 1.0)
}

func TestRatioScoreWiderSigmaIsMoreForgiving(t *testing.T) {
	narrow := RatioScore(0.85, 0.74, 0.05)
	wide := RatioScore(0.85, 0.74, 0.15)
	assert.Greater(t, wide, narrow)
}

func TestRatioScoreInvalidSigma(t *testing.T) {
	assert.Equal(t, NeutralScore, RatioScore(0.74, 0.74, 0))
	assert.Equal(t, NeutralScore, RatioScore(0.74, 0.74, -1))
}

func TestRatioStatus(t *testing.T) {
	band := [2]float64{0.66, 0.82}
	tests := []struct {
		name     string
		value    float64
		expected schema.SignalStatus
	}{
		{name: "center", value: 0.74, expected: schema.StatusGood},
		{name: "band edge", value: 0.82, expected: schema.StatusGood},
		{name: "just outside", value: 0.85, expected: schema.StatusOK},
		{name: "far outside", value: 1.2, expected: schema.StatusOff},
		{name: "far below", value: 0.3, expected: schema.StatusOff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RatioStatus(tt.value, band))
		})
	}
}

// TestWeightedMeanZeroWeightFallback verifies the unweighted-mean fallback
// when every effective weight vanishes.
func TestWeightedMeanZeroWeightFallback(t *testing.T) {
	got := WeightedMean([]float64{0.2, 0.8}, []float64{0, 0}, []float64{1, 1})
	assert.InDelta(t, 0.5, got, scoreDelta)

	got = WeightedMean([]float64{0.2, 0.8}, []float64{1, 1}, []float64{0, 0})
	assert.InDelta(t, 0.5, got, scoreDelta)
}

func TestWeightedMeanEmpty(t *testing.T) {
	assert.Equal(t, NeutralScore, WeightedMean(nil, nil, nil))
}

func TestWeightedMeanConfidenceShiftsResult(t *testing.T) {
	// Equal weights but confidence favors the second value.
	got := WeightedMean([]float64{0.2, 0.8}, []float64{1, 1}, []float64{0.1, 0.9})
	assert.Greater(t, got, 0.5)
	assert.InDelta(t, (0.2*0.1+0.8*0.9)/1.0, got, scoreDelta)
}

// TestSymmetryScoreIdentity verifies identical vectors score exactly 1.
func TestSymmetryScoreIdentity(t *testing.T) {
	x := []float64{1.2, 3.4, 5.6}
	assert.InDelta(t, 1.0, SymmetryScore(x, x, 0.12), scoreDelta)
}

func TestSymmetryScore(t *testing.T) {
	tests := []struct {
		name     string
		left     []float64
		right    []float64
		expected float64
	}{
		// |10-11|/(0.12*11) = 0.7575..; score 0.2424..
		{name: "mild asymmetry", left: []float64{10}, right: []float64{11}, expected: 1 - 1.0/(0.12*11)},
		{name: "beyond tolerance", left: []float64{10}, right: []float64{20}, expected: 0},
		{name: "both zero", left: []float64{0}, right: []float64{0}, expected: 1},
		{name: "empty", left: nil, right: nil, expected: NeutralScore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SymmetryScore(tt.left, tt.right, 0.12), scoreDelta)
		})
	}
}

func TestSymmetryScoreUnpairedIgnored(t *testing.T) {
	left := []float64{5, 5, 99}
	right := []float64{5, 5}
	assert.InDelta(t, 1.0, SymmetryScore(left, right, 0.12), scoreDelta)
}

func TestThirdsBalanceScore(t *testing.T) {
	assert.InDelta(t, 1.0, ThirdsBalanceScore(10, 10, 10), scoreDelta)
	assert.InDelta(t, 0.0, ThirdsBalanceScore(30, 0, 0), scoreDelta)
	assert.Equal(t, NeutralScore, ThirdsBalanceScore(0, 0, 0))

	uneven := ThirdsBalanceScore(12, 10, 8)
	assert.Greater(t, uneven, 0.5)
	assert.Less(t, uneven, 1.0)
}

// TestCalibrateMonotone verifies the piecewise curve interpolates, clamps,
// and preserves order.
func TestCalibrateMonotone(t *testing.T) {
	curve := schema.DefaultScoringConfig().Curve

	assert.InDelta(t, 0.0, Calibrate(0, curve), scoreDelta)
	assert.InDelta(t, 5.0, Calibrate(0.5, curve), scoreDelta)
	assert.InDelta(t, 6.0, Calibrate(0.62, curve), scoreDelta)
	assert.InDelta(t, 9.5, Calibrate(1.0, curve), scoreDelta)

	// Out-of-range raw values clamp to the endpoints.
	assert.InDelta(t, 0.0, Calibrate(-0.2, curve), scoreDelta)
	assert.InDelta(t, 9.5, Calibrate(1.7, curve), scoreDelta)

	prev := -1.0
	for raw := 0.0; raw <= 1.0; raw += 0.01 {
		got := Calibrate(raw, curve)
		assert.GreaterOrEqual(t, got, prev, "curve regressed at raw=%f", raw)
		prev = got
	}
}

func TestCalibrateEmptyCurve(t *testing.T) {
	assert.InDelta(t, 7.0, Calibrate(0.7, nil), scoreDelta)
}

// FuzzCalibrate checks the output always lands on the display scale no
// matter the raw input.
func FuzzCalibrate(f *testing.F) {
	f.Add(0.0)
	f.Add(0.5)
	f.Add(1.0)
	f.Add(-3.7)
	f.Add(math.NaN())
	curve := schema.DefaultScoringConfig().Curve
	f.Fuzz(func(t *testing.T, raw float64) {
		got := Calibrate(Sanitize(raw, NeutralScore), curve)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 9.5)
	})
}
