package schema

import "time"

// CacheStatus holds diagnostics for a result cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int64     `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// HistoryStatus holds diagnostics for the scoring-run history store.
type HistoryStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int64            `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// RunRecord is one recorded scoring run, kept for calibration review.
type RunRecord struct {
	RunID         int64     `json:"run_id"`
	StartedAt     time.Time `json:"started_at"`
	Kind          string    `json:"kind"` // face or body
	PhotoHash     string    `json:"photo_hash"`
	ConfigVersion string    `json:"config_version"`
	Score10       float64   `json:"score10"`
	PotentialMin  float64   `json:"potential_min"`
	PotentialMax  float64   `json:"potential_max"`
	Confidence    float64   `json:"confidence"`
	PhotoQuality  float64   `json:"photo_quality"`
	CacheHit      bool      `json:"cache_hit"`
}
