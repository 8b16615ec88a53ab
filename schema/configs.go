package schema

// ScoringConfigVersion pins the active scoring constants. It participates in
// every cache key, so it MUST be bumped whenever any table, band, curve or
// factor in this file changes. Forgetting the bump serves stale results.
const ScoringConfigVersion = "2025.08.3"

// RatioSpec defines the ideal target and tolerance for one named ratio.
type RatioSpec struct {
	Key      RatioKey
	Label    string
	IdealMid float64    // bell curve peak
	Sigma    float64    // bell curve width; wider is more forgiving
	Band     [2]float64 // "good" classification range
	Weight   float64    // share of the harmony/proportion index
}

// CurvePoint is one knot of the monotonic calibration curve.
type CurvePoint struct {
	Raw     float64 // 0-1 weighted aggregate
	Display float64 // 0-10 user-facing scale
}

// SeverityThresholds buckets one posture angle by degree cutoffs.
// A deviation below Mild is "none"; below Moderate is "mild"; below
// Significant is "moderate"; anything above is "significant".
type SeverityThresholds struct {
	Key         string
	Label       string
	Mild        float64
	Moderate    float64
	Significant float64
}

// ScoringConfig is the single versioned, immutable configuration structure
// for the whole engine, loaded once at startup. Tuned constants live here
// and nowhere else so that the version string always covers them.
type ScoringConfig struct {
	Version string

	// Ratio tables.
	FaceRatios []RatioSpec
	BodyRatios map[Presentation][]RatioSpec

	// Pillar weight tables. Each table sums to 1.0.
	FacePillarWeights        map[PillarKey]float64
	BodyPillarWeights        map[PillarKey]float64 // with side view
	BodyPillarWeightsNoSide  map[PillarKey]float64 // posture pillar redistributed
	SymmetryTolerance        float64

	// Calibration.
	Curve []CurvePoint

	// Honest extremes policy. Tuned empirically; treat as product
	// calibration knobs, not derived constants.
	AllowExtremesThreshold float64
	ExtremeFloor           float64
	ExtremeCeiling         float64
	ScoreCeiling           float64
	LowConfidenceWiden     float64

	// Potential-range factors.
	SkinRoomFactor        float64
	HairRoomFactor        float64
	CompositionRoomFactor float64
	FaceGainCap           float64
	BodyGainCap           float64
	PostureRoomCap        float64

	// Posture bucketing.
	PostureThresholds []SeverityThresholds

	// Measurement reliability by clothing fit.
	FitReliability map[ClothingFit]float64

	// Composition band width grows with (1 - photoQuality) x this factor.
	CompositionSpreadFactor float64

	// Reachability.
	ChangeTimes       map[ChangeDimension]WeeksRange
	HairCutTimes      WeeksRange // requested style reachable by cutting alone
	HairGrowthTimes   WeeksRange // requested style needs growing out first
	QualityDiscountLo float64 // confidence multiplier when quality is poor
	QualityDiscountHi float64 // confidence multiplier when quality is middling
	NoSideDiscount    float64
	InflateLo         float64 // max-bound inflation when quality is poor
	InflateHi         float64

	// Change budgets per enhancement level.
	Budgets map[EnhancementLevel]ChangeBudget

	// Preview jitter sampling count.
	JitterSamples int
}

// DefaultScoringConfig returns the pinned table set for ScoringConfigVersion.
// Ideal mids follow the usual facial-proportion literature values; bands and
// sigmas were tuned against the calibration corpus.
func DefaultScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		Version: ScoringConfigVersion,

		FaceRatios: []RatioSpec{
			{Key: RatioWidthLength, Label: "Face width to length", IdealMid: 0.74, Sigma: 0.08, Band: [2]float64{0.66, 0.82}, Weight: 0.24},
			{Key: RatioEyeSpacing, Label: "Eye spacing to eye width", IdealMid: 1.00, Sigma: 0.12, Band: [2]float64{0.85, 1.15}, Weight: 0.22},
			{Key: RatioNoseEye, Label: "Nose width to eye spacing", IdealMid: 1.05, Sigma: 0.15, Band: [2]float64{0.85, 1.25}, Weight: 0.15},
			{Key: RatioMouthNose, Label: "Mouth width to nose width", IdealMid: 1.55, Sigma: 0.20, Band: [2]float64{1.35, 1.75}, Weight: 0.15},
			{Key: RatioEyeFace, Label: "Eye width to face width", IdealMid: 0.22, Sigma: 0.035, Band: [2]float64{0.19, 0.25}, Weight: 0.14},
			{Key: RatioJawFace, Label: "Jaw width to face width", IdealMid: 0.88, Sigma: 0.10, Band: [2]float64{0.78, 0.98}, Weight: 0.10},
		},

		BodyRatios: map[Presentation][]RatioSpec{
			PresentationVTaper: {
				{Key: RatioShoulderWaist, Label: "Shoulder to waist", IdealMid: 1.60, Sigma: 0.15, Band: [2]float64{1.45, 1.75}, Weight: 0.35},
				{Key: RatioWaistHip, Label: "Waist to hip", IdealMid: 0.87, Sigma: 0.08, Band: [2]float64{0.80, 0.95}, Weight: 0.20},
				{Key: RatioShoulderHip, Label: "Shoulder to hip", IdealMid: 1.40, Sigma: 0.15, Band: [2]float64{1.25, 1.55}, Weight: 0.20},
				{Key: RatioLegTorso, Label: "Leg to torso", IdealMid: 1.15, Sigma: 0.10, Band: [2]float64{1.05, 1.25}, Weight: 0.25},
			},
			PresentationHourglass: {
				{Key: RatioShoulderWaist, Label: "Shoulder to waist", IdealMid: 1.40, Sigma: 0.15, Band: [2]float64{1.25, 1.55}, Weight: 0.25},
				{Key: RatioWaistHip, Label: "Waist to hip", IdealMid: 0.72, Sigma: 0.07, Band: [2]float64{0.65, 0.80}, Weight: 0.35},
				{Key: RatioShoulderHip, Label: "Shoulder to hip", IdealMid: 1.00, Sigma: 0.10, Band: [2]float64{0.90, 1.10}, Weight: 0.15},
				{Key: RatioLegTorso, Label: "Leg to torso", IdealMid: 1.20, Sigma: 0.10, Band: [2]float64{1.10, 1.30}, Weight: 0.25},
			},
			PresentationNeutral: {
				{Key: RatioShoulderWaist, Label: "Shoulder to waist", IdealMid: 1.50, Sigma: 0.15, Band: [2]float64{1.35, 1.65}, Weight: 0.30},
				{Key: RatioWaistHip, Label: "Waist to hip", IdealMid: 0.80, Sigma: 0.08, Band: [2]float64{0.72, 0.88}, Weight: 0.25},
				{Key: RatioShoulderHip, Label: "Shoulder to hip", IdealMid: 1.20, Sigma: 0.15, Band: [2]float64{1.05, 1.35}, Weight: 0.20},
				{Key: RatioLegTorso, Label: "Leg to torso", IdealMid: 1.18, Sigma: 0.10, Band: [2]float64{1.08, 1.28}, Weight: 0.25},
			},
		},

		FacePillarWeights: map[PillarKey]float64{
			PillarHarmony:      0.40,
			PillarSymmetry:     0.18,
			PillarThirds:       0.12,
			PillarGeometry:     0.18,
			PillarPresentation: 0.12,
		},
		BodyPillarWeights: map[PillarKey]float64{
			PillarProportion:  0.40,
			PillarSymmetry:    0.15,
			PillarPosture:     0.25,
			PillarComposition: 0.20,
		},
		BodyPillarWeightsNoSide: map[PillarKey]float64{
			PillarProportion:  0.50,
			PillarSymmetry:    0.20,
			PillarComposition: 0.30,
		},
		SymmetryTolerance: 0.12,

		Curve: []CurvePoint{
			{Raw: 0.00, Display: 0.0},
			{Raw: 0.30, Display: 3.2},
			{Raw: 0.50, Display: 5.0},
			{Raw: 0.62, Display: 6.0},
			{Raw: 0.75, Display: 7.0},
			{Raw: 0.85, Display: 8.0},
			{Raw: 1.00, Display: 9.5},
		},

		AllowExtremesThreshold: 0.45,
		ExtremeFloor:           2.0,
		ExtremeCeiling:         8.0,
		ScoreCeiling:           9.5,
		LowConfidenceWiden:     1.5,

		SkinRoomFactor:        0.15,
		HairRoomFactor:        0.10,
		CompositionRoomFactor: 0.15,
		FaceGainCap:           1.5,
		BodyGainCap:           2.0,
		PostureRoomCap:        0.8,

		PostureThresholds: []SeverityThresholds{
			{Key: "forward_head", Label: "Forward head angle", Mild: 8, Moderate: 15, Significant: 25},
			{Key: "shoulder_rounding", Label: "Shoulder rounding", Mild: 10, Moderate: 20, Significant: 30},
			{Key: "pelvic_tilt", Label: "Pelvic tilt", Mild: 7, Moderate: 12, Significant: 20},
			{Key: "rib_flare", Label: "Rib flare", Mild: 5, Moderate: 10, Significant: 15},
		},

		FitReliability: map[ClothingFit]float64{
			FitFitted:  1.0,
			FitRegular: 0.85,
			FitLoose:   0.6,
		},
		CompositionSpreadFactor: 2.0,

		ChangeTimes: map[ChangeDimension]WeeksRange{
			DimHair:        {MinWeeks: 0, MaxWeeks: 10}, // fallback when current hair length is unknown
			DimSkin:        {MinWeeks: 2, MaxWeeks: 8},
			DimGrooming:    {MinWeeks: 0, MaxWeeks: 0},
			DimGlasses:     {MinWeeks: 0, MaxWeeks: 0},
			DimLighting:    {MinWeeks: 0, MaxWeeks: 0},
			DimOutfit:      {MinWeeks: 0, MaxWeeks: 1},
			DimComposition: {MinWeeks: 8, MaxWeeks: 16}, // moderate fat-loss pace
			DimPosture:     {MinWeeks: 6, MaxWeeks: 12},
		},
		HairCutTimes:      WeeksRange{MinWeeks: 0, MaxWeeks: 0},
		HairGrowthTimes:   WeeksRange{MinWeeks: 4, MaxWeeks: 10}, // roughly one length category of growth
		QualityDiscountLo: 0.70,
		QualityDiscountHi: 0.85,
		NoSideDiscount:    0.85,
		InflateLo:         1.4,
		InflateHi:         1.3,

		Budgets: map[EnhancementLevel]ChangeBudget{
			LevelSubtle: {
				Level:       LevelSubtle,
				Hair:        "tidy",
				Skin:        "lighting-only",
				Grooming:    "light",
				Composition: "none",
				Posture:     "subtle cue",
			},
			LevelNoticeable: {
				Level:       LevelNoticeable,
				Hair:        "restyle",
				Skin:        "texture smoothing",
				Grooming:    "full",
				Composition: "moderate",
				Posture:     "corrected",
			},
			LevelTransformed: {
				Level:       LevelTransformed,
				Hair:        "transform",
				Skin:        "clear",
				Grooming:    "full",
				Composition: "significant",
				Posture:     "corrected",
			},
		},

		JitterSamples: 3,
	}
}

// GeometryFeatures are the feature sub-scores averaged into the geometry
// pillar. Skin and hair are intentionally excluded: presentation is the
// only pillar treated as modifiable by the potential-range rule.
var GeometryFeatures = []FeatureKey{
	FeatureEyes, FeatureBrows, FeatureNose, FeatureLips, FeatureCheekbones, FeatureJawline,
}

// PresentationFeatures compose the presentation pillar.
var PresentationFeatures = []FeatureKey{FeatureSkin, FeatureHair}
