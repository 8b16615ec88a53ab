// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"github.com/auralab/aura/schema"
)

// CacheManager defines the interface for managing persistence stores.
// This allows the storage layer to be mocked for testing.
type CacheManager interface {
	GetResultStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for determinism-cache storage.
// Values are opaque serialized analysis payloads keyed by the request
// identity digest.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for recording scoring runs so that
// calibration drift can be reviewed offline.
type HistoryStore interface {
	// RecordRun persists one scoring run and returns its unique ID.
	RecordRun(record schema.RunRecord) (int64, error)

	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]schema.RunRecord, error)

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection.
	Close() error
}
