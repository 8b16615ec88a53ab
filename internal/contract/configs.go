package contract

import (
	"fmt"
	"maps"
	"strings"

	"github.com/auralab/aura/schema"
)

// Default values for configuration.
const (
	DefaultSignalLimit     = 6
	MaxSignalLimit         = 20
	DefaultPrecision       = 1
	DefaultEndpointVersion = "v1"
)

// customVersionSuffix marks a scoring config whose weight tables were
// overridden. It keeps custom-weight results out of the stock cache lines.
const customVersionSuffix = "+custom"

// PillarWeightsRaw holds custom pillar weights from the YAML config file.
// Only provided fields override the defaults. Use float64 pointers so
// absence is distinguishable from zero.
type PillarWeightsRaw struct {
	Harmony      *float64 `mapstructure:"harmony"`
	Symmetry     *float64 `mapstructure:"symmetry"`
	Thirds       *float64 `mapstructure:"thirds"`
	Geometry     *float64 `mapstructure:"geometry"`
	Presentation *float64 `mapstructure:"presentation"`
	Proportion   *float64 `mapstructure:"proportion"`
	Posture      *float64 `mapstructure:"posture"`
	Composition  *float64 `mapstructure:"composition"`
}

// WeightsRawInput holds all custom pillar weight definitions from the YAML
// config file.
type WeightsRawInput struct {
	Face *PillarWeightsRaw `mapstructure:"face"`
	Body *PillarWeightsRaw `mapstructure:"body"`
}

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// Config holds the runtime configuration for scoring.
// This struct remains the "final, validated" config.
type Config struct {
	InputFile   string
	Level       schema.EnhancementLevel
	SignalLimit int

	// Dimensions holds the explicitly requested change dimensions for
	// reachability estimates. Empty means "everything the level permits".
	Dimensions []schema.ChangeDimension
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	NoCache     bool

	// EndpointVersion identifies the scoring endpoint revision. It is part
	// of every cache key alongside the scoring config version.
	EndpointVersion string

	CacheBackend   schema.StoreBackend
	CacheDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.StoreBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	// Scoring is the immutable table set used for this run, with any
	// custom pillar weight overrides already applied.
	Scoring *schema.ScoringConfig

	// ConfigVersion is Scoring.Version, suffixed when custom weights are
	// in effect. Use this, never Scoring.Version directly, for cache keys.
	ConfigVersion string

	// CustomFaceWeights / CustomBodyWeights echo the raw overrides for
	// display in metrics output. Nil when no override was given.
	CustomFaceWeights map[schema.PillarKey]float64
	CustomBodyWeights map[schema.PillarKey]float64

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputFileStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Limit            int    `mapstructure:"limit"`
	Precision        int    `mapstructure:"precision"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Width            int    `mapstructure:"width"`
	NoCache          bool   `mapstructure:"no-cache"`
	EndpointVersion  string `mapstructure:"endpoint-version"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	Emoji            string `mapstructure:"emoji"`
	Color            string `mapstructure:"color"`

	// --- Fields from reachCmd/budgetCmd.Flags() ---
	Level   int      `mapstructure:"level"`
	Options []string `mapstructure:"option"`

	// --- Custom weights from config file ---
	Weights WeightsRawInput `mapstructure:"weights"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Dimensions != nil {
		clone.Dimensions = make([]schema.ChangeDimension, len(c.Dimensions))
		copy(clone.Dimensions, c.Dimensions)
	}
	if c.CustomFaceWeights != nil {
		clone.CustomFaceWeights = make(map[schema.PillarKey]float64)
		maps.Copy(clone.CustomFaceWeights, c.CustomFaceWeights)
	}
	if c.CustomBodyWeights != nil {
		clone.CustomBodyWeights = make(map[schema.PillarKey]float64)
		maps.Copy(clone.CustomBodyWeights, c.CustomBodyWeights)
	}
	return &clone
}

// ProcessAndValidate performs all complex parsing and validation on the raw
// inputs and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processCustomWeights(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateStoreConnectionString validates the format of connection strings
// for the networked store backends.
func ValidateStoreConnectionString(backend schema.StoreBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.MemoryBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	case schema.RedisBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, ":") {
			return fmt.Errorf("Redis connection string must contain host:port")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.StoreBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidStoreBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, redis, memory, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateStoreConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.StoreBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend != "" {
		if _, ok := schema.ValidStoreBackends[cfg.HistoryBackend]; !ok {
			return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, memory, none", input.HistoryBackend)
		}
		if cfg.HistoryBackend == schema.RedisBackend {
			return fmt.Errorf("history backend does not support redis; run records need relational queries")
		}
		cfg.HistoryDBConnect = input.HistoryDBConnect
		if err := ValidateStoreConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
			return err
		}

		// Validate that cache and history use different databases
		if cfg.CacheBackend == cfg.HistoryBackend && cfg.CacheBackend == schema.SQLiteBackend {
			cacheDBPath := cfg.CacheDBConnect
			if cacheDBPath == "" {
				cacheDBPath = GetCacheDBFilePath()
			}
			historyDBPath := cfg.HistoryDBConnect
			if historyDBPath == "" {
				historyDBPath = GetHistoryDBFilePath()
			}
			if cacheDBPath == historyDBPath {
				return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
			}
		}
	}

	return nil
}

// validateSimpleInputs processes and validates all non-weight fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.InputFile = input.InputFileStr
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.NoCache = input.NoCache

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. SignalLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxSignalLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxSignalLimit, input.Limit)
	}
	cfg.SignalLimit = input.Limit

	// --- 2. Level Validation ---
	cfg.Level = schema.EnhancementLevel(input.Level)
	if _, ok := schema.ValidEnhancementLevels[cfg.Level]; !ok {
		return fmt.Errorf("invalid level %d. must be 1 (subtle), 2 (noticeable), 3 (transformed)", input.Level)
	}

	// --- 2b. Requested Change Dimensions ---
	cfg.Dimensions = nil
	for _, opt := range input.Options {
		dim := schema.ChangeDimension(strings.ToLower(strings.TrimSpace(opt)))
		if _, ok := schema.ValidChangeDimensions[dim]; !ok {
			return fmt.Errorf("invalid option '%s'. must be one of hair, skin, grooming, glasses, lighting, outfit, composition, posture", opt)
		}
		cfg.Dimensions = append(cfg.Dimensions, dim)
	}

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}

	// --- 4. Endpoint Version ---
	cfg.EndpointVersion = strings.TrimSpace(input.EndpointVersion)
	if cfg.EndpointVersion == "" {
		cfg.EndpointVersion = DefaultEndpointVersion
	}

	// --- 5. Backend Validation ---
	return validateBackendConfigs(cfg, input)
}

// faceWeightFields maps raw face override fields to pillar keys.
func faceWeightFields(raw *PillarWeightsRaw) map[schema.PillarKey]*float64 {
	return map[schema.PillarKey]*float64{
		schema.PillarHarmony:      raw.Harmony,
		schema.PillarSymmetry:     raw.Symmetry,
		schema.PillarThirds:       raw.Thirds,
		schema.PillarGeometry:     raw.Geometry,
		schema.PillarPresentation: raw.Presentation,
	}
}

// bodyWeightFields maps raw body override fields to pillar keys.
func bodyWeightFields(raw *PillarWeightsRaw) map[schema.PillarKey]*float64 {
	return map[schema.PillarKey]*float64{
		schema.PillarProportion:  raw.Proportion,
		schema.PillarSymmetry:    raw.Symmetry,
		schema.PillarPosture:     raw.Posture,
		schema.PillarComposition: raw.Composition,
	}
}

// collectWeights extracts the provided overrides into a plain map.
func collectWeights(fields map[schema.PillarKey]*float64) map[schema.PillarKey]float64 {
	out := make(map[schema.PillarKey]float64)
	for key, ptr := range fields {
		if ptr != nil {
			out[key] = *ptr
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// mergeAndValidateWeights applies overrides onto a default table and checks
// the merged table still distributes its full weight.
func mergeAndValidateWeights(name string, defaults, overrides map[schema.PillarKey]float64) (map[schema.PillarKey]float64, error) {
	merged := make(map[schema.PillarKey]float64)
	maps.Copy(merged, defaults)
	for key, w := range overrides {
		if _, ok := merged[key]; !ok {
			return nil, fmt.Errorf("unknown %s pillar '%s' in custom weights", name, key)
		}
		if w < 0 {
			return nil, fmt.Errorf("custom %s weight for '%s' must be non-negative, got %.3f", name, key, w)
		}
		merged[key] = w
	}

	var sum float64
	for _, w := range merged {
		sum += w
	}
	if sum < 0.999 || sum > 1.001 {
		return nil, fmt.Errorf("custom %s pillar weights must sum to 1.0, got %.3f", name, sum)
	}
	return merged, nil
}

// processCustomWeights installs the default scoring tables and applies any
// custom pillar weight overrides. Any override changes the effective config
// version so cached stock results can never be served for custom runs.
func processCustomWeights(cfg *Config, input *ConfigRawInput) error {
	cfg.Scoring = schema.DefaultScoringConfig()
	cfg.ConfigVersion = cfg.Scoring.Version

	customized := false

	if input.Weights.Face != nil {
		overrides := collectWeights(faceWeightFields(input.Weights.Face))
		if overrides != nil {
			merged, err := mergeAndValidateWeights("face", cfg.Scoring.FacePillarWeights, overrides)
			if err != nil {
				return err
			}
			cfg.Scoring.FacePillarWeights = merged
			cfg.CustomFaceWeights = overrides
			customized = true
		}
	}

	if input.Weights.Body != nil {
		overrides := collectWeights(bodyWeightFields(input.Weights.Body))
		if overrides != nil {
			merged, err := mergeAndValidateWeights("body", cfg.Scoring.BodyPillarWeights, overrides)
			if err != nil {
				return err
			}
			cfg.Scoring.BodyPillarWeights = merged
			cfg.Scoring.BodyPillarWeightsNoSide = redistributeWithoutPosture(merged)
			cfg.CustomBodyWeights = overrides
			customized = true
		}
	}

	if customized {
		cfg.ConfigVersion = cfg.Scoring.Version + customVersionSuffix
	}
	return nil
}

// redistributeWithoutPosture removes the posture pillar and renormalizes the
// remaining weights so the table still sums to 1.0.
func redistributeWithoutPosture(weights map[schema.PillarKey]float64) map[schema.PillarKey]float64 {
	var rest float64
	for key, w := range weights {
		if key != schema.PillarPosture {
			rest += w
		}
	}
	out := make(map[schema.PillarKey]float64)
	if rest <= 0 {
		return out
	}
	for key, w := range weights {
		if key != schema.PillarPosture {
			out[key] = w / rest
		}
	}
	return out
}
