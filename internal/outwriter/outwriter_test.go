package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auralab/aura/internal/contract"
	"github.com/auralab/aura/schema"
)

func testConfig(t *testing.T, mode schema.OutputMode) *contract.Config {
	t.Helper()
	return &contract.Config{
		Output:        mode,
		OutputFile:    filepath.Join(t.TempDir(), "out"),
		Precision:     2,
		Width:         120,
		Scoring:       schema.DefaultScoringConfig(),
		ConfigVersion: schema.ScoringConfigVersion,
	}
}

func readOutput(t *testing.T, cfg *contract.Config) string {
	t.Helper()
	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	return string(data)
}

func sampleFaceAnalysis() *schema.FaceAnalysis {
	return &schema.FaceAnalysis{
		Overall: schema.OverallResult{
			CurrentScore10: 7.4,
			Potential:      schema.PotentialRange{Min: 7.4, Max: 8.6},
			Confidence:     0.88,
			Summary:        "Strong harmony with room in presentation.",
		},
		Pillars: []schema.PillarScore{
			{Key: schema.PillarHarmony, RawScore: 0.82, Weight: 0.40, Confidence: 0.9, Contribution: 0.328},
			{Key: schema.PillarSymmetry, RawScore: 0.75, Weight: 0.18, Confidence: 0.85, Contribution: 0.135},
		},
		Signals: []schema.RatioSignal{
			{
				Key: schema.RatioWidthLength, Label: "Face width to length",
				Value: 0.73, Band: [2]float64{0.66, 0.82},
				Status: schema.StatusGood, Score: 0.98, Confidence: 0.9,
			},
			{
				Key: schema.RatioEyeSpacing, Label: "Eye spacing to eye width",
				Value: 1.21, Band: [2]float64{0.85, 1.15},
				Status: schema.StatusOff, Score: 0.41, Confidence: 0.9,
			},
		},
	}
}

func sampleBodyAnalysis() *schema.BodyAnalysis {
	return &schema.BodyAnalysis{
		Overall: schema.OverallResult{
			CurrentScore10: 6.1,
			Potential:      schema.PotentialRange{Min: 6.1, Max: 7.9},
			Confidence:     0.72,
			Summary:        "Solid proportions, posture drags the total.",
		},
		Pillars: []schema.PillarScore{
			{Key: schema.PillarProportion, RawScore: 0.70, Weight: 0.40, Confidence: 0.8, Contribution: 0.28},
		},
		Signals: []schema.RatioSignal{
			{
				Key: schema.RatioShoulderWaist, Label: "Shoulder to waist",
				Value: 1.52, Band: [2]float64{1.45, 1.75},
				Status: schema.StatusGood, Score: 0.88, Confidence: 0.8,
			},
		},
		Posture: []schema.PostureSignal{
			{Key: "forward_head", Label: "Forward head angle", AngleDeg: 12, Severity: schema.SeverityMild, Score: 0.75},
		},
		Composition: schema.CompositionBand{Min: 5.5, Max: 7.0, Confidence: 0.7},
	}
}

func sampleEstimate() *schema.ReachEstimate {
	return &schema.ReachEstimate{
		Window:     schema.WeeksRange{MinWeeks: 8, MaxWeeks: 16},
		Confidence: 0.65,
		Level:      schema.LevelNoticeable,
		Dimensions: []schema.ChangeDimension{schema.DimComposition, schema.DimPosture},
		Assumptions: []string{
			"Consistent training 3x per week",
			"Moderate caloric deficit",
		},
	}
}

func TestPrintFaceAnalysisJSON(t *testing.T) {
	cfg := testConfig(t, schema.JSONOut)
	analysis := sampleFaceAnalysis()

	require.NoError(t, PrintFaceAnalysis(analysis, cfg, 5*time.Millisecond))

	var decoded schema.FaceAnalysis
	require.NoError(t, json.Unmarshal([]byte(readOutput(t, cfg)), &decoded))
	assert.InDelta(t, 7.4, decoded.Overall.CurrentScore10, 0.001)
	assert.Len(t, decoded.Signals, 2)
	assert.Equal(t, schema.RatioEyeSpacing, decoded.Signals[1].Key)
}

func TestPrintFaceAnalysisCSV(t *testing.T) {
	cfg := testConfig(t, schema.CSVOut)

	require.NoError(t, PrintFaceAnalysis(sampleFaceAnalysis(), cfg, time.Millisecond))

	records, err := csv.NewReader(strings.NewReader(readOutput(t, cfg))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, signalCSVHeader, records[0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "width_length", records[1][1])
	assert.Equal(t, "off", records[2][6])
}

func TestPrintFaceAnalysisText(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)

	require.NoError(t, PrintFaceAnalysis(sampleFaceAnalysis(), cfg, 12*time.Millisecond))

	out := readOutput(t, cfg)
	assert.Contains(t, out, "Face analysis (config "+schema.ScoringConfigVersion+")")
	assert.Contains(t, out, "Overall: 7.40/10 (Strong)")
	assert.Contains(t, out, "Potential: 7.40-8.60")
	assert.Contains(t, out, "harmony")
	assert.Contains(t, out, "Face width to length")
	assert.Contains(t, out, "Out of range")
	assert.Contains(t, out, "Scored in 12ms")
}

func TestPrintBodyAnalysisText(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)

	require.NoError(t, PrintBodyAnalysis(sampleBodyAnalysis(), cfg, time.Millisecond))

	out := readOutput(t, cfg)
	assert.Contains(t, out, "Body analysis")
	assert.Contains(t, out, "Forward head angle")
	assert.Contains(t, out, "mild")
	assert.Contains(t, out, "Composition band: 5.50-7.00/10 (confidence 0.70)")
}

func TestPrintBodyAnalysisTextNoPosture(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)
	analysis := sampleBodyAnalysis()
	analysis.Posture = nil

	require.NoError(t, PrintBodyAnalysis(analysis, cfg, time.Millisecond))

	out := readOutput(t, cfg)
	assert.NotContains(t, out, "Forward head angle")
	assert.Contains(t, out, "Composition band")
}

func TestPrintBodyAnalysisJSON(t *testing.T) {
	cfg := testConfig(t, schema.JSONOut)

	require.NoError(t, PrintBodyAnalysis(sampleBodyAnalysis(), cfg, time.Millisecond))

	var decoded schema.BodyAnalysis
	require.NoError(t, json.Unmarshal([]byte(readOutput(t, cfg)), &decoded))
	assert.Len(t, decoded.Posture, 1)
	assert.InDelta(t, 5.5, decoded.Composition.Min, 0.001)
}

func TestPrintReachEstimateText(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)

	require.NoError(t, PrintReachEstimate(sampleEstimate(), cfg, time.Millisecond))

	out := readOutput(t, cfg)
	assert.Contains(t, out, "Level: noticeable")
	assert.Contains(t, out, "Dimensions: composition, posture")
	assert.Contains(t, out, "Window: 8.0-16.0 weeks")
	assert.Contains(t, out, "Assumptions:")
	assert.Contains(t, out, "Moderate caloric deficit")
}

func TestPrintReachEstimateCSV(t *testing.T) {
	cfg := testConfig(t, schema.CSVOut)

	require.NoError(t, PrintReachEstimate(sampleEstimate(), cfg, time.Millisecond))

	records, err := csv.NewReader(strings.NewReader(readOutput(t, cfg))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "noticeable", records[1][0])
	assert.Equal(t, "composition, posture", records[1][1])
	assert.Equal(t, "8.0", records[1][2])
}

func TestPrintChangeBudgetText(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)
	budget := cfg.Scoring.Budgets[schema.LevelSubtle]

	require.NoError(t, PrintChangeBudget(&budget, nil, cfg))

	out := readOutput(t, cfg)
	assert.Contains(t, out, "Change budget, level subtle")
	assert.Contains(t, out, "hair")
	assert.Contains(t, out, "tidy")
	assert.Contains(t, out, "lighting-only")
}

func TestPrintChangeBudgetFiltered(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)
	budget := cfg.Scoring.Budgets[schema.LevelTransformed]

	dims := []schema.ChangeDimension{schema.DimHair}
	require.NoError(t, PrintChangeBudget(&budget, dims, cfg))

	out := readOutput(t, cfg)
	assert.Contains(t, out, "transform")
	assert.NotContains(t, out, "significant")
}

func TestBudgetRows(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)
	budget := cfg.Scoring.Budgets[schema.LevelNoticeable]

	all := budgetRows(&budget, nil)
	require.Len(t, all, 5)
	assert.Equal(t, []string{"hair", "restyle"}, all[0])

	filtered := budgetRows(&budget, []schema.ChangeDimension{schema.DimPosture, schema.DimSkin})
	require.Len(t, filtered, 2)
	assert.Equal(t, "skin", filtered[0][0])
	assert.Equal(t, "posture", filtered[1][0])
}

func TestPrintMetricsDefinitionsJSON(t *testing.T) {
	cfg := testConfig(t, schema.JSONOut)
	cfg.CustomFaceWeights = map[schema.PillarKey]float64{schema.PillarHarmony: 0.5}

	require.NoError(t, PrintMetricsDefinitions(cfg))

	var report metricsReport
	require.NoError(t, json.Unmarshal([]byte(readOutput(t, cfg)), &report))
	assert.Equal(t, schema.ScoringConfigVersion, report.ConfigVersion)
	assert.Len(t, report.FaceRatios, 6)
	assert.Len(t, report.BodyRatios, 3)
	assert.Len(t, report.Curve, 7)

	var harmony *weightEntry
	for i := range report.FaceWeights {
		if report.FaceWeights[i].Pillar == schema.PillarHarmony {
			harmony = &report.FaceWeights[i]
		}
	}
	require.NotNil(t, harmony)
	assert.True(t, harmony.Custom)
}

func TestPrintMetricsDefinitionsText(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)

	require.NoError(t, PrintMetricsDefinitions(cfg))

	out := readOutput(t, cfg)
	assert.Contains(t, out, "Scoring definitions")
	assert.Contains(t, out, "Face pillar weights")
	assert.Contains(t, out, "Body pillar weights without side view")
	assert.Contains(t, out, "Body ratios, v_taper")
	assert.Contains(t, out, "Calibration curve")
	assert.Contains(t, out, "Posture thresholds")
	assert.Contains(t, out, "Shoulder to waist")
}

func TestPrintMetricsDefinitionsCSV(t *testing.T) {
	cfg := testConfig(t, schema.CSVOut)

	require.NoError(t, PrintMetricsDefinitions(cfg))

	records, err := csv.NewReader(strings.NewReader(readOutput(t, cfg))).ReadAll()
	require.NoError(t, err)
	// Header plus 6 face ratios plus 4 ratios per presentation.
	require.Len(t, records, 1+6+3*4)
	assert.Equal(t, "face", records[1][0])
	assert.Equal(t, "body_hourglass", records[7][0])
}

func TestPrintRunHistoryText(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)
	runs := []schema.RunRecord{
		{
			RunID: 2, StartedAt: time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC),
			Kind: "body", PhotoHash: "cafebabe00112233", ConfigVersion: schema.ScoringConfigVersion,
			Score10: 6.1, PotentialMin: 6.1, PotentialMax: 7.9, Confidence: 0.72,
			PhotoQuality: 0.8, CacheHit: true,
		},
		{
			RunID: 1, StartedAt: time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC),
			Kind: "face", PhotoHash: "deadbeefcafe0123", ConfigVersion: schema.ScoringConfigVersion,
			Score10: 7.4, PotentialMin: 7.4, PotentialMax: 8.6, Confidence: 0.88,
			PhotoQuality: 0.9, CacheHit: false,
		},
	}

	require.NoError(t, PrintRunHistory(runs, cfg))

	out := readOutput(t, cfg)
	assert.Contains(t, out, "Scoring runs (2)")
	assert.Contains(t, out, "face")
	assert.Contains(t, out, "6.10-7.90")
	assert.Contains(t, out, "yes")
}

func TestPrintRunHistoryEmpty(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)

	require.NoError(t, PrintRunHistory(nil, cfg))

	assert.Contains(t, readOutput(t, cfg), "No runs recorded.")
}

func TestPrintRunHistoryCSV(t *testing.T) {
	cfg := testConfig(t, schema.CSVOut)
	runs := []schema.RunRecord{
		{
			RunID: 1, StartedAt: time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC),
			Kind: "face", PhotoHash: "deadbeefcafe0123", ConfigVersion: schema.ScoringConfigVersion,
			Score10: 7.4, PotentialMin: 7.4, PotentialMax: 8.6, Confidence: 0.88,
			PhotoQuality: 0.9, CacheHit: false,
		},
	}

	require.NoError(t, PrintRunHistory(runs, cfg))

	records, err := csv.NewReader(strings.NewReader(readOutput(t, cfg))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "run_id", records[0][0])
	assert.Equal(t, "2026-08-20T10:30:00Z", records[1][1])
	assert.Equal(t, "false", records[1][10])
}

func TestOutWriterFacade(t *testing.T) {
	cfg := testConfig(t, schema.JSONOut)
	ow := NewOutWriter()

	require.NoError(t, ow.WriteFace(sampleFaceAnalysis(), cfg, time.Millisecond))

	var decoded schema.FaceAnalysis
	require.NoError(t, json.Unmarshal([]byte(readOutput(t, cfg)), &decoded))
	assert.Len(t, decoded.Pillars, 2)
}

func TestCreateFormatters(t *testing.T) {
	fmtFloat, fmtConf := createFormatters(1)
	assert.Equal(t, "7.4", fmtFloat(7.42))
	assert.Equal(t, "0.88", fmtConf(0.881))
}

func TestFormatBand(t *testing.T) {
	assert.Equal(t, "0.66-0.82", formatBand([2]float64{0.66, 0.82}))
}

func TestGetMaxTableLabelWidth(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  int
	}{
		{name: "narrow clamps to minimum", width: 40, want: 12},
		{name: "typical terminal", width: 80, want: 25},
		{name: "wide clamps to maximum", width: 200, want: 40},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tc.width}
			assert.Equal(t, tc.want, getMaxTableLabelWidth(cfg))
		})
	}
}
