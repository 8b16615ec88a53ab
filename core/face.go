package core

import (
	"fmt"

	"github.com/auralab/aura/core/algo"
	"github.com/auralab/aura/schema"
)

// facePillarOrder fixes pillar ordering in serialized face output.
var facePillarOrder = []schema.PillarKey{
	schema.PillarHarmony,
	schema.PillarSymmetry,
	schema.PillarThirds,
	schema.PillarGeometry,
	schema.PillarPresentation,
}

// faceRatioValue measures one named ratio from the landmarks. ok is false
// when a needed landmark is zero or missing.
func faceRatioValue(key schema.RatioKey, lm *schema.FaceLandmarks) (float64, bool) {
	avgEye := (lm.EyeWidthLeft + lm.EyeWidthRight) / 2
	switch key {
	case schema.RatioWidthLength:
		return algo.SafeRatio(lm.FaceWidth, lm.FaceLength)
	case schema.RatioEyeSpacing:
		return algo.SafeRatio(lm.InterEye, avgEye)
	case schema.RatioNoseEye:
		return algo.SafeRatio(lm.NoseWidth, lm.InterEye)
	case schema.RatioMouthNose:
		return algo.SafeRatio(lm.MouthWidth, lm.NoseWidth)
	case schema.RatioEyeFace:
		return algo.SafeRatio(avgEye, lm.FaceWidth)
	case schema.RatioJawFace:
		return algo.SafeRatio(lm.JawWidth, lm.FaceWidth)
	default:
		return 0, false
	}
}

// buildRatioSignals scores a ratio table against measured values. An
// unmeasurable ratio yields a neutral-score signal with zero confidence so
// it neither helps nor hurts the aggregate.
func buildRatioSignals(specs []schema.RatioSpec, measure func(schema.RatioKey) (float64, bool), baseConfidence float64) []schema.RatioSignal {
	signals := make([]schema.RatioSignal, 0, len(specs))
	for _, spec := range specs {
		signal := schema.RatioSignal{
			Key:   spec.Key,
			Label: spec.Label,
			Band:  spec.Band,
		}
		value, ok := measure(spec.Key)
		if !ok {
			signal.Status = schema.StatusOff
			signal.Score = algo.NeutralScore
			signal.Confidence = 0
		} else {
			signal.Value = value
			signal.Status = algo.RatioStatus(value, spec.Band)
			signal.Score = algo.RatioScore(value, spec.IdealMid, spec.Sigma)
			signal.Confidence = algo.Clamp01(baseConfidence)
		}
		signals = append(signals, signal)
	}
	return signals
}

// harmonyFromSignals folds ratio signals into a weighted 0-1 pillar score.
func harmonyFromSignals(specs []schema.RatioSpec, signals []schema.RatioSignal) (float64, float64) {
	values := make([]float64, len(signals))
	weights := make([]float64, len(signals))
	confidences := make([]float64, len(signals))
	for i, s := range signals {
		values[i] = s.Score
		weights[i] = specs[i].Weight
		confidences[i] = s.Confidence
	}
	raw := algo.WeightedMean(values, weights, confidences)

	var confSum, weightSum float64
	for i, w := range weights {
		confSum += confidences[i] * w
		weightSum += w
	}
	confidence := 0.0
	if weightSum > 0 {
		confidence = confSum / weightSum
	}
	return raw, confidence
}

// AnalyzeFace scores one set of validated face measurements. The result is
// a pure function of the measurements and the scoring config: no clocks, no
// randomness beyond the photo-hash-seeded jitter stream.
func AnalyzeFace(sc *schema.ScoringConfig, m *schema.FaceMeasurements) (*schema.FaceAnalysis, error) {
	if m == nil {
		return nil, fmt.Errorf("nil face measurements")
	}
	seed, err := algo.HashToSeed(m.PhotoHash)
	if err != nil {
		return nil, fmt.Errorf("face analysis: %w", err)
	}

	quality := algo.Clamp01(m.PhotoQuality)
	signals := buildRatioSignals(sc.FaceRatios, func(key schema.RatioKey) (float64, bool) {
		return faceRatioValue(key, &m.Landmarks)
	}, quality)

	pillars := make(map[schema.PillarKey]schema.PillarScore)

	harmonyRaw, harmonyConf := harmonyFromSignals(sc.FaceRatios, signals)
	pillars[schema.PillarHarmony] = schema.PillarScore{
		Key:        schema.PillarHarmony,
		RawScore:   harmonyRaw,
		Weight:     sc.FacePillarWeights[schema.PillarHarmony],
		Confidence: harmonyConf,
	}

	symmetryConf := quality
	if len(m.PairedLeft) == 0 || len(m.PairedRight) == 0 {
		symmetryConf = 0
	}
	pillars[schema.PillarSymmetry] = schema.PillarScore{
		Key:        schema.PillarSymmetry,
		RawScore:   algo.SymmetryScore(m.PairedLeft, m.PairedRight, sc.SymmetryTolerance),
		Weight:     sc.FacePillarWeights[schema.PillarSymmetry],
		Confidence: symmetryConf,
	}

	thirdsConf := quality
	if m.Landmarks.Forehead+m.Landmarks.Midface+m.Landmarks.LowerFace <= 0 {
		thirdsConf = 0
	}
	pillars[schema.PillarThirds] = schema.PillarScore{
		Key:        schema.PillarThirds,
		RawScore:   algo.ThirdsBalanceScore(m.Landmarks.Forehead, m.Landmarks.Midface, m.Landmarks.LowerFace),
		Weight:     sc.FacePillarWeights[schema.PillarThirds],
		Confidence: thirdsConf,
	}

	geometryRaw, geometryConf := featurePillar(m.Features, schema.GeometryFeatures)
	pillars[schema.PillarGeometry] = schema.PillarScore{
		Key:        schema.PillarGeometry,
		RawScore:   geometryRaw,
		Weight:     sc.FacePillarWeights[schema.PillarGeometry],
		Confidence: geometryConf * quality,
	}

	presentationRaw, presentationConf := featurePillar(m.Features, schema.PresentationFeatures)
	pillars[schema.PillarPresentation] = schema.PillarScore{
		Key:        schema.PillarPresentation,
		RawScore:   presentationRaw,
		Weight:     sc.FacePillarWeights[schema.PillarPresentation],
		Confidence: presentationConf * quality,
	}

	raw, confidence, ordered := aggregatePillars(pillars, facePillarOrder)
	score10 := calibrateOverall(raw, confidence, sc)

	room := faceRoom(sc, m.Features)
	potential := computePotential(score10, room, sc.FaceGainCap, confidence, sc)

	overall := roundResult(schema.OverallResult{
		CurrentScore10: score10,
		Potential:      potential,
		Confidence:     confidence,
	})
	overall.Summary = summarize("Face", overall.CurrentScore10, overall.Potential, overall.Confidence)

	return &schema.FaceAnalysis{
		Overall: overall,
		Pillars: ordered,
		Signals: roundSignals(signals),
		Jitter:  algo.GenerateJitterParams(seed, sc.JitterSamples),
	}, nil
}

// faceRoom estimates improvement headroom from the modifiable face features
// only. Bone-structure pillars contribute nothing here on purpose.
func faceRoom(sc *schema.ScoringConfig, features map[schema.FeatureKey]schema.FeatureScore) float64 {
	var room float64
	if skin, ok := features[schema.FeatureSkin]; ok {
		room += (10 - algo.Clamp(skin.Score10, 0, 10)) * sc.SkinRoomFactor
	}
	if hair, ok := features[schema.FeatureHair]; ok {
		room += (10 - algo.Clamp(hair.Score10, 0, 10)) * sc.HairRoomFactor
	}
	return room
}
