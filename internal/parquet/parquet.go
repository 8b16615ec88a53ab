// Package parquet exports recorded scoring runs to Parquet files using
// github.com/parquet-go/parquet-go, so calibration drift can be reviewed
// with columnar tooling.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/auralab/aura/schema"
)

// ScoringRun is one recorded scoring run in columnar form. It maps to the
// aura_scoring_runs database table.
type ScoringRun struct {
	// RunID is the unique identifier assigned by the history store
	RunID int64 `parquet:"run_id,snappy"`

	// StartedAt is when the run began (TIMESTAMP with nanosecond precision)
	StartedAt time.Time `parquet:"started_at,snappy"`

	// Kind is the scoring endpoint, face or body
	Kind string `parquet:"kind,snappy"`

	// PhotoHash is the content hash of the scored photo
	PhotoHash string `parquet:"photo_hash,snappy"`

	// ConfigVersion is the scoring config version used for the run
	ConfigVersion string `parquet:"config_version,snappy"`

	// Score10 is the calibrated overall score on the 0-10 scale
	Score10 float64 `parquet:"score10,snappy"`

	// PotentialMin is the lower bound of the reachable-score range
	PotentialMin float64 `parquet:"potential_min,snappy"`

	// PotentialMax is the upper bound of the reachable-score range
	PotentialMax float64 `parquet:"potential_max,snappy"`

	// Confidence is the overall measurement confidence (0-1)
	Confidence float64 `parquet:"confidence,snappy"`

	// PhotoQuality is the upstream photo quality estimate (0-1)
	PhotoQuality float64 `parquet:"photo_quality,snappy"`

	// CacheHit records whether the run was served from the determinism cache
	CacheHit bool `parquet:"cache_hit,snappy"`
}

// WriteRunsParquet writes a slice of ScoringRun structs to a Parquet file.
func WriteRunsParquet(data []ScoringRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the ScoringRun struct tags
	writer := parquet.NewGenericWriter[ScoringRun](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertRunRecords converts schema.RunRecord to ScoringRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []ScoringRun {
	result := make([]ScoringRun, len(records))
	for i, record := range records {
		result[i] = ScoringRun{
			RunID:         record.RunID,
			StartedAt:     record.StartedAt,
			Kind:          record.Kind,
			PhotoHash:     record.PhotoHash,
			ConfigVersion: record.ConfigVersion,
			Score10:       record.Score10,
			PotentialMin:  record.PotentialMin,
			PotentialMax:  record.PotentialMax,
			Confidence:    record.Confidence,
			PhotoQuality:  record.PhotoQuality,
			CacheHit:      record.CacheHit,
		}
	}
	return result
}
