package schema

// Custom string types for type safety.
type (
	// SignalStatus classifies where a measured ratio falls relative to its band.
	SignalStatus string

	// PillarKey identifies one weighted scoring category.
	PillarKey string

	// FeatureKey identifies one named feature sub-score.
	FeatureKey string

	// RatioKey identifies one named geometric ratio.
	RatioKey string

	// Severity buckets a posture angle deviation.
	Severity string

	// Presentation selects which body ratio ideal table applies.
	Presentation string

	// ClothingFit drives body measurement reliability.
	ClothingFit string

	// HairLength is the coarse current hair length category. It decides
	// whether a requested style needs growing out or just a cut.
	HairLength string

	// ChangeDimension is one modifiable styling/physique dimension.
	ChangeDimension string

	// EnhancementLevel caps how aggressive a requested change may be.
	EnhancementLevel int

	// OutputMode represents the format of the output.
	OutputMode string

	// StoreBackend represents the storage backend for caching and history.
	StoreBackend string
)

// All signal statuses supported.
const (
	StatusGood SignalStatus = "good"
	StatusOK   SignalStatus = "ok"
	StatusOff  SignalStatus = "off"
)

// Face pillars.
const (
	PillarHarmony      PillarKey = "harmony"
	PillarSymmetry     PillarKey = "symmetry"
	PillarThirds       PillarKey = "thirds"
	PillarGeometry     PillarKey = "geometry"
	PillarPresentation PillarKey = "presentation"
)

// Body pillars. Symmetry is shared with the face pillar set.
const (
	PillarProportion  PillarKey = "proportion"
	PillarPosture     PillarKey = "posture"
	PillarComposition PillarKey = "composition"
)

// Face feature sub-scores.
const (
	FeatureEyes       FeatureKey = "eyes"
	FeatureBrows      FeatureKey = "brows"
	FeatureNose       FeatureKey = "nose"
	FeatureLips       FeatureKey = "lips"
	FeatureCheekbones FeatureKey = "cheekbones"
	FeatureJawline    FeatureKey = "jawline"
	FeatureSkin       FeatureKey = "skin"
	FeatureHair       FeatureKey = "hair"
)

// Face ratio keys.
const (
	RatioWidthLength RatioKey = "width_length"
	RatioEyeSpacing  RatioKey = "eye_spacing"
	RatioNoseEye     RatioKey = "nose_eye"
	RatioMouthNose   RatioKey = "mouth_nose"
	RatioEyeFace     RatioKey = "eye_face"
	RatioJawFace     RatioKey = "jaw_face"
)

// Body ratio keys.
const (
	RatioShoulderWaist RatioKey = "shoulder_waist"
	RatioWaistHip      RatioKey = "waist_hip"
	RatioShoulderHip   RatioKey = "shoulder_hip"
	RatioLegTorso      RatioKey = "leg_torso"
)

// Posture severity buckets, from best to worst.
const (
	SeverityNone        Severity = "none"
	SeverityMild        Severity = "mild"
	SeverityModerate    Severity = "moderate"
	SeveritySignificant Severity = "significant"
)

// All body presentation contexts supported.
const (
	PresentationVTaper    Presentation = "v_taper"
	PresentationHourglass Presentation = "hourglass"
	PresentationNeutral   Presentation = "neutral" // fallback when ambiguous
)

// All clothing fits supported.
const (
	FitFitted  ClothingFit = "fitted"
	FitRegular ClothingFit = "regular"
	FitLoose   ClothingFit = "loose"
)

// All hair length categories, shortest to longest. Empty means unknown.
const (
	HairBuzz   HairLength = "buzz"
	HairShort  HairLength = "short"
	HairMedium HairLength = "medium"
	HairLong   HairLength = "long"
)

// All modifiable change dimensions.
const (
	DimHair        ChangeDimension = "hair"
	DimSkin        ChangeDimension = "skin"
	DimGrooming    ChangeDimension = "grooming"
	DimGlasses     ChangeDimension = "glasses"
	DimLighting    ChangeDimension = "lighting"
	DimOutfit      ChangeDimension = "outfit"
	DimComposition ChangeDimension = "composition"
	DimPosture     ChangeDimension = "posture"
)

// Enhancement levels, least to most aggressive.
const (
	LevelSubtle      EnhancementLevel = 1
	LevelNoticeable  EnhancementLevel = 2
	LevelTransformed EnhancementLevel = 3
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All store backends supported.
const (
	SQLiteBackend     StoreBackend = "sqlite" // default
	MySQLBackend      StoreBackend = "mysql"
	PostgreSQLBackend StoreBackend = "postgresql"
	RedisBackend      StoreBackend = "redis"
	MemoryBackend     StoreBackend = "memory"
	NoneBackend       StoreBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidStoreBackends lists all valid store backends.
var ValidStoreBackends = map[StoreBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	RedisBackend:      {},
	MemoryBackend:     {},
	NoneBackend:       {},
}

// ValidPresentations lists all valid presentation contexts.
var ValidPresentations = map[Presentation]struct{}{
	PresentationVTaper:    {},
	PresentationHourglass: {},
	PresentationNeutral:   {},
}

// ValidClothingFits lists all valid clothing fits.
var ValidClothingFits = map[ClothingFit]struct{}{
	FitFitted:  {},
	FitRegular: {},
	FitLoose:   {},
}

// ValidEnhancementLevels lists all valid enhancement levels.
var ValidEnhancementLevels = map[EnhancementLevel]struct{}{
	LevelSubtle:      {},
	LevelNoticeable:  {},
	LevelTransformed: {},
}

// ValidChangeDimensions lists all valid change dimensions.
var ValidChangeDimensions = map[ChangeDimension]struct{}{
	DimHair:        {},
	DimSkin:        {},
	DimGrooming:    {},
	DimGlasses:     {},
	DimLighting:    {},
	DimOutfit:      {},
	DimComposition: {},
	DimPosture:     {},
}

// SeverityScore maps a posture severity bucket to its discrete pillar score.
var SeverityScore = map[Severity]float64{
	SeverityNone:        1.0,
	SeverityMild:        0.75,
	SeverityModerate:    0.5,
	SeveritySignificant: 0.25,
}
