package core

import (
	"fmt"

	"github.com/auralab/aura/core/algo"
	"github.com/auralab/aura/schema"
)

// bodyPillarOrder fixes pillar ordering in serialized body output.
var bodyPillarOrder = []schema.PillarKey{
	schema.PillarProportion,
	schema.PillarSymmetry,
	schema.PillarPosture,
	schema.PillarComposition,
}

// bodyRatioValue measures one named ratio from the body measurements.
func bodyRatioValue(key schema.RatioKey, m *schema.BodyMeasurements) (float64, bool) {
	switch key {
	case schema.RatioShoulderWaist:
		return algo.SafeRatio(m.Shoulder, m.Waist)
	case schema.RatioWaistHip:
		return algo.SafeRatio(m.Waist, m.Hip)
	case schema.RatioShoulderHip:
		return algo.SafeRatio(m.Shoulder, m.Hip)
	case schema.RatioLegTorso:
		return algo.SafeRatio(m.Leg, m.Torso)
	default:
		return 0, false
	}
}

// bucketPostureAngle classifies an absolute angle deviation by the
// configured degree cutoffs.
func bucketPostureAngle(angle float64, th schema.SeverityThresholds) schema.Severity {
	switch {
	case angle < th.Mild:
		return schema.SeverityNone
	case angle < th.Moderate:
		return schema.SeverityMild
	case angle < th.Significant:
		return schema.SeverityModerate
	default:
		return schema.SeveritySignificant
	}
}

// postureSignals buckets all side-view angles. The returned pillar score is
// the mean of the discrete severity scores.
func postureSignals(sc *schema.ScoringConfig, angles *schema.PostureAngles) ([]schema.PostureSignal, float64) {
	byKey := map[string]float64{
		"forward_head":      angles.ForwardHeadDeg,
		"shoulder_rounding": angles.ShoulderRoundingDeg,
		"pelvic_tilt":       angles.PelvicTiltDeg,
		"rib_flare":         angles.RibFlareDeg,
	}

	signals := make([]schema.PostureSignal, 0, len(sc.PostureThresholds))
	var sum float64
	for _, th := range sc.PostureThresholds {
		angle := algo.Sanitize(byKey[th.Key], 0)
		if angle < 0 {
			angle = -angle
		}
		severity := bucketPostureAngle(angle, th)
		score := schema.SeverityScore[severity]
		signals = append(signals, schema.PostureSignal{
			Key:      th.Key,
			Label:    th.Label,
			AngleDeg: algo.RoundTo(angle, 1),
			Severity: severity,
			Score:    score,
		})
		sum += score
	}
	if len(signals) == 0 {
		return signals, algo.NeutralScore
	}
	return signals, sum / float64(len(signals))
}

// compositionBand converts the leanness estimate into a range whose width
// grows as photo quality drops. The band is the only composition output;
// a point estimate would overstate what a photo can support.
func compositionBand(sc *schema.ScoringConfig, leanness10, confidence float64) schema.CompositionBand {
	center := algo.Clamp(leanness10, 0, 10)
	spread := (1 - algo.Clamp01(confidence)) * sc.CompositionSpreadFactor
	if spread < 0.5 {
		spread = 0.5 // a photo never supports a tighter claim than this
	}
	return schema.CompositionBand{
		Min:        algo.RoundTo(algo.Clamp(center-spread, 0, 10), 1),
		Max:        algo.RoundTo(algo.Clamp(center+spread, 0, 10), 1),
		Confidence: algo.RoundTo(algo.Clamp01(confidence), 2),
	}
}

// AnalyzeBody scores one set of validated body measurements. Without a side
// view the posture pillar is omitted entirely and its weight redistributed,
// never silently zero-scored.
func AnalyzeBody(sc *schema.ScoringConfig, m *schema.BodyMeasurements) (*schema.BodyAnalysis, error) {
	if m == nil {
		return nil, fmt.Errorf("nil body measurements")
	}
	seed, err := algo.HashToSeed(m.PhotoHash)
	if err != nil {
		return nil, fmt.Errorf("body analysis: %w", err)
	}

	presentation := m.Presentation
	if _, ok := schema.ValidPresentations[presentation]; !ok {
		presentation = schema.PresentationNeutral
	}
	specs, ok := sc.BodyRatios[presentation]
	if !ok {
		specs = sc.BodyRatios[schema.PresentationNeutral]
	}

	quality := algo.Clamp01(m.PhotoQuality)
	fitReliability, ok := sc.FitReliability[m.ClothingFit]
	if !ok {
		fitReliability = sc.FitReliability[schema.FitLoose]
	}
	measureConfidence := quality * fitReliability

	signals := buildRatioSignals(specs, func(key schema.RatioKey) (float64, bool) {
		return bodyRatioValue(key, m)
	}, measureConfidence)

	weightTable := sc.BodyPillarWeights
	hasPosture := m.HasSideView && m.Posture != nil
	if !hasPosture {
		weightTable = sc.BodyPillarWeightsNoSide
	}

	pillars := make(map[schema.PillarKey]schema.PillarScore)

	proportionRaw, proportionConf := harmonyFromSignals(specs, signals)
	pillars[schema.PillarProportion] = schema.PillarScore{
		Key:        schema.PillarProportion,
		RawScore:   proportionRaw,
		Weight:     weightTable[schema.PillarProportion],
		Confidence: proportionConf,
	}

	symmetryConf := measureConfidence
	if len(m.PairedLeft) == 0 || len(m.PairedRight) == 0 {
		symmetryConf = 0
	}
	pillars[schema.PillarSymmetry] = schema.PillarScore{
		Key:        schema.PillarSymmetry,
		RawScore:   algo.SymmetryScore(m.PairedLeft, m.PairedRight, sc.SymmetryTolerance),
		Weight:     weightTable[schema.PillarSymmetry],
		Confidence: symmetryConf,
	}

	var posture []schema.PostureSignal
	if hasPosture {
		var postureRaw float64
		posture, postureRaw = postureSignals(sc, m.Posture)
		pillars[schema.PillarPosture] = schema.PillarScore{
			Key:        schema.PillarPosture,
			RawScore:   postureRaw,
			Weight:     weightTable[schema.PillarPosture],
			Confidence: quality,
		}
	}

	composition := compositionBand(sc, m.Leanness10, measureConfidence)
	pillars[schema.PillarComposition] = schema.PillarScore{
		Key:        schema.PillarComposition,
		RawScore:   algo.Clamp01(m.Leanness10 / 10),
		Weight:     weightTable[schema.PillarComposition],
		Confidence: measureConfidence,
	}

	raw, confidence, ordered := aggregatePillars(pillars, bodyPillarOrder)
	if !hasPosture {
		// Missing side view caps how sure the engine can be overall.
		confidence *= sc.NoSideDiscount
	}
	score10 := calibrateOverall(raw, confidence, sc)

	room := bodyRoom(sc, m, posture)
	potential := computePotential(score10, room, sc.BodyGainCap, confidence, sc)

	overall := roundResult(schema.OverallResult{
		CurrentScore10: score10,
		Potential:      potential,
		Confidence:     confidence,
	})
	overall.Summary = summarize("Body", overall.CurrentScore10, overall.Potential, overall.Confidence)

	return &schema.BodyAnalysis{
		Overall:     overall,
		Pillars:     ordered,
		Signals:     roundSignals(signals),
		Posture:     posture,
		Composition: composition,
		Jitter:      algo.GenerateJitterParams(seed, sc.JitterSamples),
	}, nil
}

// bodyRoom estimates improvement headroom from composition and posture, the
// two modifiable body dimensions. Skeletal proportion never contributes.
func bodyRoom(sc *schema.ScoringConfig, m *schema.BodyMeasurements, posture []schema.PostureSignal) float64 {
	room := (10 - algo.Clamp(m.Leanness10, 0, 10)) * sc.CompositionRoomFactor

	if len(posture) > 0 {
		var deficit float64
		for _, p := range posture {
			deficit += 1 - p.Score
		}
		meanDeficit := deficit / float64(len(posture))
		room += algo.Clamp(meanDeficit*sc.PostureRoomCap, 0, sc.PostureRoomCap)
	}
	return room
}
