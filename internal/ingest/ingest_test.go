package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auralab/aura/schema"
)

const validFaceJSON = `{
	"photoHash": "deadbeefcafe0123",
	"photoQuality": 0.9,
	"landmarks": {
		"faceWidth": 74, "faceLength": 100, "interEye": 16,
		"eyeWidthLeft": 16, "eyeWidthRight": 16,
		"noseWidth": 16.8, "mouthWidth": 26, "jawWidth": 65,
		"forehead": 33, "midface": 33, "lowerFace": 33
	},
	"features": {
		"eyes": {"score10": 8, "confidence": 0.9},
		"skin": {"score10": 6, "confidence": 0.8}
	},
	"pairedLeft": [16, 10],
	"pairedRight": [16, 10]
}`

const validBodyJSON = `{
	"photoHash": "cafebabe00112233",
	"photoQuality": 0.85,
	"presentation": "v_taper",
	"clothingFit": "fitted",
	"hasSideView": true,
	"shoulder": 48, "waist": 30, "hip": 34.5, "leg": 46, "torso": 40,
	"posture": {"forwardHeadDeg": 3, "shoulderRoundingDeg": 4, "pelvicTiltDeg": 2, "ribFlareDeg": 1},
	"leanness10": 8,
	"pairedLeft": [48],
	"pairedRight": [48]
}`

func TestParseFaceMeasurementsValid(t *testing.T) {
	m, err := ParseFaceMeasurements([]byte(validFaceJSON))
	require.NoError(t, err)

	assert.Equal(t, "deadbeefcafe0123", m.PhotoHash)
	assert.Equal(t, 0.9, m.PhotoQuality)
	assert.Equal(t, 74.0, m.Landmarks.FaceWidth)
	assert.Equal(t, 8.0, m.Features[schema.FeatureEyes].Score10)
}

func TestParseFaceMeasurementsInvalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{name: "not json", json: `{{`},
		{name: "missing hash", json: `{"photoQuality": 0.9, "landmarks": {}}`},
		{name: "short hash", json: `{"photoHash": "ab12", "photoQuality": 0.9, "landmarks": {}}`},
		{name: "non-hex hash", json: `{"photoHash": "zzzzzzzzzzzz", "photoQuality": 0.9, "landmarks": {}}`},
		{name: "quality out of range", json: `{"photoHash": "deadbeefcafe", "photoQuality": 1.5, "landmarks": {}}`},
		{name: "unknown field", json: `{"photoHash": "deadbeefcafe", "photoQuality": 0.9, "landmarks": {}, "bogus": 1}`},
		{name: "unknown feature", json: `{"photoHash": "deadbeefcafe", "photoQuality": 0.9, "landmarks": {}, "features": {"tail": {"score10": 5, "confidence": 1}}}`},
		{name: "negative landmark", json: `{"photoHash": "deadbeefcafe", "photoQuality": 0.9, "landmarks": {"faceWidth": -3}}`},
		{name: "unpaired symmetry", json: `{"photoHash": "deadbeefcafe", "photoQuality": 0.9, "landmarks": {}, "pairedLeft": [1, 2], "pairedRight": [1]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFaceMeasurements([]byte(tt.json))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput), "expected ErrInvalidInput, got %v", err)
		})
	}
}

func TestParseBodyMeasurementsValid(t *testing.T) {
	m, err := ParseBodyMeasurements([]byte(validBodyJSON))
	require.NoError(t, err)

	assert.Equal(t, schema.PresentationVTaper, m.Presentation)
	assert.Equal(t, schema.FitFitted, m.ClothingFit)
	assert.True(t, m.HasSideView)
	require.NotNil(t, m.Posture)
	assert.Equal(t, 3.0, m.Posture.ForwardHeadDeg)
}

func TestParseBodyMeasurementsDefaults(t *testing.T) {
	m, err := ParseBodyMeasurements([]byte(`{
		"photoHash": "cafebabe0011",
		"photoQuality": 0.5,
		"shoulder": 48, "waist": 30, "hip": 34, "leg": 46, "torso": 40,
		"leanness10": 5
	}`))
	require.NoError(t, err)

	// Unreported context degrades to the most conservative assumptions.
	assert.Equal(t, schema.PresentationNeutral, m.Presentation)
	assert.Equal(t, schema.FitLoose, m.ClothingFit)
	assert.False(t, m.HasSideView)
}

func TestParseBodyMeasurementsInvalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{name: "bad presentation", json: `{"photoHash": "cafebabe0011", "photoQuality": 0.5, "presentation": "triangle"}`},
		{name: "bad fit", json: `{"photoHash": "cafebabe0011", "photoQuality": 0.5, "clothingFit": "painted-on"}`},
		{name: "leanness out of range", json: `{"photoHash": "cafebabe0011", "photoQuality": 0.5, "leanness10": 14}`},
		{name: "side view without posture", json: `{"photoHash": "cafebabe0011", "photoQuality": 0.5, "hasSideView": true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBodyMeasurements([]byte(tt.json))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput), "expected ErrInvalidInput, got %v", err)
		})
	}
}

func TestLoadFaceMeasurements(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "face.json")
	require.NoError(t, os.WriteFile(path, []byte(validFaceJSON), 0o600))

	m, err := LoadFaceMeasurements(path)
	require.NoError(t, err)
	assert.Equal(t, "deadbeefcafe0123", m.PhotoHash)

	_, err = LoadFaceMeasurements(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestLoadBodyMeasurements(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "body.json")
	require.NoError(t, os.WriteFile(path, []byte(validBodyJSON), 0o600))

	m, err := LoadBodyMeasurements(path)
	require.NoError(t, err)
	assert.Equal(t, "cafebabe00112233", m.PhotoHash)
}
