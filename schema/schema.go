// Package schema has configs, models and shared types for all parts of aura.
package schema

// RatioSignal is one measured geometric ratio with its classification.
// Signals are created fresh per analysis request and embedded in the
// response payload; they are never persisted standalone.
type RatioSignal struct {
	Key        RatioKey     `json:"key"`        // Stable identifier, e.g. "eye_spacing"
	Label      string       `json:"label"`      // Human-readable display name
	Value      float64      `json:"value"`      // Measured ratio
	Band       [2]float64   `json:"band"`       // [min,max] acceptable range for "good"
	Status     SignalStatus `json:"status"`     // good, ok or off relative to Band
	Score      float64      `json:"score"`      // Normalized 0-1 contribution
	Confidence float64      `json:"confidence"` // 0-1, photo quality x measurement reliability
}

// FeatureScore is one named feature sub-score on the display scale.
type FeatureScore struct {
	Score10    float64 `json:"score10"`    // 0-10
	Confidence float64 `json:"confidence"` // 0-1
}

// PillarScore is one weighted category of the overall rating.
type PillarScore struct {
	Key          PillarKey `json:"key"`
	RawScore     float64   `json:"rawScore"` // 0-1 before weighting
	Weight       float64   `json:"weight"`
	Confidence   float64   `json:"confidence"`
	Contribution float64   `json:"contribution"` // RawScore x Weight
}

// PotentialRange bounds the achievable score improvement considering only
// modifiable factors. Min is never below the current score and Max never
// exceeds the score ceiling.
type PotentialRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// OverallResult is the calibrated, confidence-aware rating.
type OverallResult struct {
	CurrentScore10 float64        `json:"currentScore10"`
	Potential      PotentialRange `json:"potentialRange"`
	Confidence     float64        `json:"confidence"`
	Summary        string         `json:"summary"`
}

// JitterParams is one small deterministic perturbation vector used by the
// preview layer for stability sampling.
type JitterParams struct {
	RotationDeg float64 `json:"rotationDeg"`
	Scale       float64 `json:"scale"`
	CropX       float64 `json:"cropX"`
	CropY       float64 `json:"cropY"`
	Brightness  float64 `json:"brightness"`
}

// FaceLandmarks holds raw facial distances in arbitrary consistent units.
// Only ratios between them are ever used.
type FaceLandmarks struct {
	FaceWidth    float64 `json:"faceWidth"`
	FaceLength   float64 `json:"faceLength"`
	InterEye     float64 `json:"interEye"`
	EyeWidthLeft float64 `json:"eyeWidthLeft"`
	EyeWidthRight float64 `json:"eyeWidthRight"`
	NoseWidth    float64 `json:"noseWidth"`
	MouthWidth   float64 `json:"mouthWidth"`
	JawWidth     float64 `json:"jawWidth"`
	Forehead     float64 `json:"forehead"`  // upper third segment length
	Midface      float64 `json:"midface"`   // middle third segment length
	LowerFace    float64 `json:"lowerFace"` // lower third segment length
}

// FaceMeasurements is the validated input contract for face scoring.
// It arrives from the upstream AI layer already parsed and schema-checked.
type FaceMeasurements struct {
	PhotoHash    string                       `json:"photoHash"`    // hex digest of the input photo bytes
	PhotoQuality float64                      `json:"photoQuality"` // 0-1
	Landmarks    FaceLandmarks                `json:"landmarks"`
	Features     map[FeatureKey]FeatureScore  `json:"features"`
	PairedLeft   []float64                    `json:"pairedLeft"`  // left-side symmetry measurements
	PairedRight  []float64                    `json:"pairedRight"` // right-side counterparts, same order
}

// PostureAngles holds side-view posture deviations in degrees.
type PostureAngles struct {
	ForwardHeadDeg      float64 `json:"forwardHeadDeg"`
	ShoulderRoundingDeg float64 `json:"shoulderRoundingDeg"`
	PelvicTiltDeg       float64 `json:"pelvicTiltDeg"`
	RibFlareDeg         float64 `json:"ribFlareDeg"`
}

// BodyMeasurements is the validated input contract for body scoring.
type BodyMeasurements struct {
	PhotoHash    string        `json:"photoHash"`
	PhotoQuality float64       `json:"photoQuality"`
	Presentation Presentation  `json:"presentation"`
	ClothingFit  ClothingFit   `json:"clothingFit"`
	HairLength   HairLength    `json:"hairLength"` // empty when not detected
	HasSideView  bool          `json:"hasSideView"`
	Shoulder     float64       `json:"shoulder"` // widths/lengths in arbitrary consistent units
	Waist        float64       `json:"waist"`
	Hip          float64       `json:"hip"`
	Leg          float64       `json:"leg"`
	Torso        float64       `json:"torso"`
	Posture      *PostureAngles `json:"posture,omitempty"` // nil unless HasSideView
	Leanness10   float64       `json:"leanness10"`         // 0-10 leanness presentation estimate
	PairedLeft   []float64     `json:"pairedLeft"`
	PairedRight  []float64     `json:"pairedRight"`
}

// PostureSignal is one bucketed posture angle in the response.
type PostureSignal struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	AngleDeg float64  `json:"angleDeg"`
	Severity Severity `json:"severity"`
	Score    float64  `json:"score"` // discrete severity score
}

// CompositionBand reports leanness presentation strictly as a range,
// never a point estimate and never a body-fat percentage.
type CompositionBand struct {
	Min        float64 `json:"min"` // 0-10
	Max        float64 `json:"max"` // 0-10
	Confidence float64 `json:"confidence"`
}

// FaceAnalysis is the full face scoring response.
type FaceAnalysis struct {
	Overall OverallResult  `json:"overall"`
	Pillars []PillarScore  `json:"pillars"`
	Signals []RatioSignal  `json:"signals"` // capped to the most informative
	Jitter  []JitterParams `json:"jitter"`  // deterministic preview perturbations
}

// BodyAnalysis is the full body scoring response.
type BodyAnalysis struct {
	Overall     OverallResult   `json:"overall"`
	Pillars     []PillarScore   `json:"pillars"`
	Signals     []RatioSignal   `json:"signals"`
	Posture     []PostureSignal `json:"posture,omitempty"` // absent without a side view
	Composition CompositionBand `json:"composition"`
	Jitter      []JitterParams  `json:"jitter"`
}

// WeeksRange is an estimated time-to-achieve window.
type WeeksRange struct {
	MinWeeks float64 `json:"minWeeks"`
	MaxWeeks float64 `json:"maxWeeks"`
}

// ReachEstimate maps a requested change set to a time estimate. The
// assumptions list is always populated; an estimate without its
// assumptions is considered malformed.
type ReachEstimate struct {
	Window      WeeksRange        `json:"window"`
	Confidence  float64           `json:"confidence"`
	Level       EnhancementLevel  `json:"level"`
	Dimensions  []ChangeDimension `json:"dimensions"`
	Assumptions []string          `json:"assumptions"`
}

// ChangeBudget caps how much each modifiable dimension may change in a
// generated preview at a given enhancement level. Pure configuration,
// read-only at request time.
type ChangeBudget struct {
	Level       EnhancementLevel `json:"level"`
	Hair        string           `json:"hair"`
	Skin        string           `json:"skin"`
	Grooming    string           `json:"grooming"`
	Composition string           `json:"composition"`
	Posture     string           `json:"posture"`
}
