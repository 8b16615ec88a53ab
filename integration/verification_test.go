//go:build integration

// Package integration contains integration tests for aura.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
// Or use: make test-integration
package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// determinismFixture is a face measurement payload used to verify that
// repeated scoring runs produce byte-identical output.
const determinismFixture = `{
  "photoHash": "0123456789abcdef",
  "photoQuality": 0.9,
  "landmarks": {
    "faceWidth": 13.8,
    "faceLength": 20.0,
    "interEye": 6.3,
    "eyeWidthLeft": 3.1,
    "eyeWidthRight": 3.1,
    "noseWidth": 3.5,
    "mouthWidth": 5.3,
    "jawWidth": 12.0,
    "forehead": 6.6,
    "midface": 6.7,
    "lowerFace": 6.7
  },
  "features": {
    "eyes": {"score10": 7.0, "confidence": 0.85},
    "skin": {"score10": 6.0, "confidence": 0.75}
  }
}`

// TestScoringDeterminism scores the same fixture repeatedly and verifies the
// JSON output never changes, with and without the determinism cache.
func TestScoringDeterminism(t *testing.T) {
	workDir := t.TempDir()

	// Build aura binary
	auraPath := filepath.Join(workDir, "aura")
	buildCmd := exec.Command("go", "build", "-o", auraPath, "./cmd/aura")
	buildCmd.Dir = ".." // Project root
	err := buildCmd.Run()
	require.NoError(t, err)

	fixturePath := filepath.Join(workDir, "face.json")
	err = os.WriteFile(fixturePath, []byte(determinismFixture), 0o644)
	require.NoError(t, err)

	// Keep cache state inside the temp dir so runs never see a stale store.
	cacheDB := filepath.Join(workDir, "cache.db")

	first := scoreToFile(t, auraPath, workDir, fixturePath, cacheDB, "first.json", false)
	second := scoreToFile(t, auraPath, workDir, fixturePath, cacheDB, "second.json", false)
	uncached := scoreToFile(t, auraPath, workDir, fixturePath, cacheDB, "uncached.json", true)

	assert.Equal(t, string(first), string(second),
		"cached rerun must match the first run byte for byte")
	assert.Equal(t, string(first), string(uncached),
		"recomputed run must match the cached run byte for byte")
	assert.NotEmpty(t, first)
}

// scoreToFile runs a face scoring pass writing JSON output to a file and
// returns the file's contents.
func scoreToFile(t *testing.T, auraPath, workDir, fixturePath, cacheDB, outName string, noCache bool) []byte {
	t.Helper()

	outPath := filepath.Join(workDir, outName)
	args := []string{
		"face", fixturePath,
		"--output", "json",
		"--output-file", outPath,
		"--cache-backend", "sqlite",
		"--cache-db-connect", cacheDB,
	}
	if noCache {
		args = append(args, "--no-cache")
	}

	cmd := exec.Command(auraPath, args...)
	cmd.Dir = workDir
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "scoring run failed: %s", string(output))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	return data
}
