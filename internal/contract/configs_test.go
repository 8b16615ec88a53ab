package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auralab/aura/schema"
)

func ptr(v float64) *float64 { return &v }

func defaultRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		InputFileStr:    "measurements.json",
		Limit:           DefaultSignalLimit,
		Precision:       DefaultPrecision,
		Output:          "text",
		Level:           1,
		EndpointVersion: "",
		CacheBackend:    "sqlite",
		HistoryBackend:  "none",
		Emoji:           "yes",
		Color:           "yes",
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, defaultRawInput()))

	assert.Equal(t, "measurements.json", cfg.InputFile)
	assert.Equal(t, DefaultSignalLimit, cfg.SignalLimit)
	assert.Equal(t, schema.LevelSubtle, cfg.Level)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, DefaultEndpointVersion, cfg.EndpointVersion)
	assert.Equal(t, schema.SQLiteBackend, cfg.CacheBackend)
	assert.True(t, cfg.UseEmojis)
	assert.True(t, cfg.UseColors)
	require.NotNil(t, cfg.Scoring)
	assert.Equal(t, cfg.Scoring.Version, cfg.ConfigVersion)
}

func TestProcessAndValidateRejectsBadInputs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{name: "zero limit", mutate: func(in *ConfigRawInput) { in.Limit = 0 }},
		{name: "huge limit", mutate: func(in *ConfigRawInput) { in.Limit = MaxSignalLimit + 1 }},
		{name: "bad level", mutate: func(in *ConfigRawInput) { in.Level = 4 }},
		{name: "bad precision", mutate: func(in *ConfigRawInput) { in.Precision = 3 }},
		{name: "bad output", mutate: func(in *ConfigRawInput) { in.Output = "yaml" }},
		{name: "bad emoji", mutate: func(in *ConfigRawInput) { in.Emoji = "maybe" }},
		{name: "bad cache backend", mutate: func(in *ConfigRawInput) { in.CacheBackend = "mongodb" }},
		{name: "redis history", mutate: func(in *ConfigRawInput) {
			in.HistoryBackend = "redis"
			in.HistoryDBConnect = "localhost:6379"
		}},
		{name: "bad option", mutate: func(in *ConfigRawInput) { in.Options = []string{"teleport"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := defaultRawInput()
			tt.mutate(input)
			assert.Error(t, ProcessAndValidate(&Config{}, input))
		})
	}
}

func TestProcessAndValidateOptions(t *testing.T) {
	cfg := &Config{}
	input := defaultRawInput()
	input.Options = []string{"Hair", " grooming "}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, []schema.ChangeDimension{schema.DimHair, schema.DimGrooming}, cfg.Dimensions)
}

func TestValidateStoreConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.StoreBackend
		conn    string
		wantErr bool
	}{
		{name: "sqlite empty ok", backend: schema.SQLiteBackend, conn: ""},
		{name: "memory empty ok", backend: schema.MemoryBackend, conn: ""},
		{name: "mysql valid", backend: schema.MySQLBackend, conn: "user:pass@tcp(localhost:3306)/aura"},
		{name: "mysql missing tcp", backend: schema.MySQLBackend, conn: "user:pass/aura", wantErr: true},
		{name: "mysql empty", backend: schema.MySQLBackend, conn: "", wantErr: true},
		{name: "postgres valid", backend: schema.PostgreSQLBackend, conn: "host=localhost dbname=aura sslmode=disable"},
		{name: "postgres missing dbname", backend: schema.PostgreSQLBackend, conn: "host=localhost", wantErr: true},
		{name: "redis valid", backend: schema.RedisBackend, conn: "localhost:6379"},
		{name: "redis missing port", backend: schema.RedisBackend, conn: "localhost", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStoreConnectionString(tt.backend, tt.conn)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestCustomWeightsChangeConfigVersion guards the cache identity rule: any
// weight override must produce a distinct config version.
func TestCustomWeightsChangeConfigVersion(t *testing.T) {
	input := defaultRawInput()
	input.Weights.Face = &PillarWeightsRaw{
		Harmony:      ptr(0.50),
		Symmetry:     ptr(0.20),
		Thirds:       ptr(0.10),
		Geometry:     ptr(0.10),
		Presentation: ptr(0.10),
	}

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.NotEqual(t, cfg.Scoring.Version, cfg.ConfigVersion)
	assert.Contains(t, cfg.ConfigVersion, cfg.Scoring.Version)
	assert.Equal(t, 0.50, cfg.Scoring.FacePillarWeights[schema.PillarHarmony])
	assert.NotNil(t, cfg.CustomFaceWeights)
}

func TestCustomWeightsMustSumToOne(t *testing.T) {
	input := defaultRawInput()
	// Bumping one pillar without rebalancing breaks the sum.
	input.Weights.Face = &PillarWeightsRaw{Harmony: ptr(0.60)}

	assert.Error(t, ProcessAndValidate(&Config{}, input))
}

func TestCustomWeightsUnknownPillar(t *testing.T) {
	input := defaultRawInput()
	// Proportion is a body pillar; it has no slot in the face table.
	input.Weights.Face = &PillarWeightsRaw{Proportion: ptr(0.40)}

	assert.Error(t, ProcessAndValidate(&Config{}, input))
}

// TestCustomBodyWeightsRebuildNoSideTable verifies the no-side table is
// rederived from overridden body weights with posture redistributed.
func TestCustomBodyWeightsRebuildNoSideTable(t *testing.T) {
	input := defaultRawInput()
	input.Weights.Body = &PillarWeightsRaw{
		Proportion:  ptr(0.50),
		Symmetry:    ptr(0.10),
		Posture:     ptr(0.20),
		Composition: ptr(0.20),
	}

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	noSide := cfg.Scoring.BodyPillarWeightsNoSide
	assert.NotContains(t, noSide, schema.PillarPosture)

	var sum float64
	for _, w := range noSide {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 0.0001)
	assert.InDelta(t, 0.50/0.80, noSide[schema.PillarProportion], 0.0001)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{}
	input := defaultRawInput()
	input.Weights.Face = &PillarWeightsRaw{
		Harmony:      ptr(0.50),
		Symmetry:     ptr(0.20),
		Thirds:       ptr(0.10),
		Geometry:     ptr(0.10),
		Presentation: ptr(0.10),
	}
	require.NoError(t, ProcessAndValidate(cfg, input))

	clone := cfg.Clone()
	clone.CustomFaceWeights[schema.PillarHarmony] = 0.99

	assert.Equal(t, 0.50, cfg.CustomFaceWeights[schema.PillarHarmony])
}
