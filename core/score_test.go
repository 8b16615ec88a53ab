package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auralab/aura/schema"
)

func TestAggregatePillarsOrdering(t *testing.T) {
	pillars := map[schema.PillarKey]schema.PillarScore{
		schema.PillarSymmetry: {Key: schema.PillarSymmetry, RawScore: 0.8, Weight: 0.5, Confidence: 1},
		schema.PillarHarmony:  {Key: schema.PillarHarmony, RawScore: 0.6, Weight: 0.5, Confidence: 1},
	}

	raw, confidence, ordered := aggregatePillars(pillars, []schema.PillarKey{schema.PillarHarmony, schema.PillarSymmetry})

	require.Len(t, ordered, 2)
	assert.Equal(t, schema.PillarHarmony, ordered[0].Key)
	assert.Equal(t, schema.PillarSymmetry, ordered[1].Key)
	assert.InDelta(t, 0.7, raw, 0.0001)
	assert.InDelta(t, 1.0, confidence, 0.0001)
	assert.InDelta(t, 0.3, ordered[0].Contribution, 0.0001)
}

func TestAggregatePillarsSkipsMissingKeys(t *testing.T) {
	pillars := map[schema.PillarKey]schema.PillarScore{
		schema.PillarHarmony: {Key: schema.PillarHarmony, RawScore: 0.6, Weight: 1.0, Confidence: 0.9},
	}

	raw, _, ordered := aggregatePillars(pillars, []schema.PillarKey{schema.PillarHarmony, schema.PillarPosture})
	assert.Len(t, ordered, 1)
	assert.InDelta(t, 0.6, raw, 0.0001)
}

func TestCalibrateOverallHonestExtremes(t *testing.T) {
	sc := schema.DefaultScoringConfig()

	tests := []struct {
		name       string
		raw        float64
		confidence float64
		checkMin   float64
		checkMax   float64
	}{
		{name: "low confidence high raw clamps to ceiling 8", raw: 1.0, confidence: 0.2, checkMin: sc.ExtremeFloor, checkMax: sc.ExtremeCeiling},
		{name: "low confidence low raw clamps to floor 2", raw: 0.0, confidence: 0.2, checkMin: sc.ExtremeFloor, checkMax: sc.ExtremeCeiling},
		{name: "high confidence reaches ceiling", raw: 1.0, confidence: 0.9, checkMin: 9.0, checkMax: sc.ScoreCeiling},
		{name: "high confidence reaches floor", raw: 0.0, confidence: 0.9, checkMin: 0.0, checkMax: 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calibrateOverall(tt.raw, tt.confidence, sc)
			assert.GreaterOrEqual(t, got, tt.checkMin)
			assert.LessOrEqual(t, got, tt.checkMax)
		})
	}
}

func TestComputePotential(t *testing.T) {
	sc := schema.DefaultScoringConfig()

	t.Run("gain capped", func(t *testing.T) {
		p := computePotential(5.0, 3.0, sc.FaceGainCap, 0.9, sc)
		assert.Equal(t, 5.0, p.Min)
		assert.InDelta(t, 5.0+sc.FaceGainCap, p.Max, 0.0001)
	})

	t.Run("low confidence widens", func(t *testing.T) {
		confident := computePotential(5.0, 1.0, sc.FaceGainCap, 0.9, sc)
		uncertain := computePotential(5.0, 1.0, sc.FaceGainCap, 0.2, sc)
		assert.Greater(t, uncertain.Max, confident.Max)
		assert.InDelta(t, 5.0+1.0*sc.LowConfidenceWiden, uncertain.Max, 0.0001)
	})

	t.Run("ceiling binds", func(t *testing.T) {
		p := computePotential(9.0, 2.0, sc.BodyGainCap, 0.9, sc)
		assert.Equal(t, sc.ScoreCeiling, p.Max)
	})

	t.Run("no negative room", func(t *testing.T) {
		p := computePotential(5.0, -1.0, sc.FaceGainCap, 0.9, sc)
		assert.Equal(t, 5.0, p.Min)
		assert.Equal(t, 5.0, p.Max)
	})
}

func TestRoundResultNormalizes(t *testing.T) {
	r := roundResult(schema.OverallResult{
		CurrentScore10: 7.123456,
		Potential:      schema.PotentialRange{Min: 7.126, Max: 8.4449},
		Confidence:     0.87654,
	})

	assert.Equal(t, 7.1, r.CurrentScore10)
	// Rounding can push min above current; it gets pulled back down.
	assert.Equal(t, 7.1, r.Potential.Min)
	assert.Equal(t, 8.4, r.Potential.Max)
	assert.Equal(t, 0.88, r.Confidence)
}

func TestFeaturePillar(t *testing.T) {
	features := map[schema.FeatureKey]schema.FeatureScore{
		schema.FeatureEyes: {Score10: 8, Confidence: 1},
		schema.FeatureNose: {Score10: 6, Confidence: 1},
	}

	raw, conf := featurePillar(features, []schema.FeatureKey{schema.FeatureEyes, schema.FeatureNose})
	assert.InDelta(t, 0.7, raw, 0.0001)
	assert.InDelta(t, 1.0, conf, 0.0001)

	// Missing subset members are skipped.
	raw, conf = featurePillar(features, []schema.FeatureKey{schema.FeatureEyes, schema.FeatureHair})
	assert.InDelta(t, 0.8, raw, 0.0001)
	assert.InDelta(t, 1.0, conf, 0.0001)

	// Empty subset degrades to neutral with zero confidence.
	raw, conf = featurePillar(features, []schema.FeatureKey{schema.FeatureHair})
	assert.Equal(t, 0.5, raw)
	assert.Equal(t, 0.0, conf)
}
