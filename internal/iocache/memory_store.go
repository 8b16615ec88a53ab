package iocache

import (
	"database/sql"
	"sync"
	"time"

	"github.com/auralab/aura/internal/contract"
	"github.com/auralab/aura/schema"
)

// memoryEntry is one cached payload held in process memory.
type memoryEntry struct {
	payload  []byte
	version  int
	storedAt int64
}

// MemoryStore is an in-process CacheStore. It is the default for one-shot
// runs and for tests that should not touch disk.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

var _ contract.CacheStore = &MemoryStore{} // Compile-time check

// NewMemoryStore creates an empty in-process cache store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

// Get retrieves a cached payload by key. Missing keys report sql.ErrNoRows
// so callers can treat every backend the same way.
func (ms *MemoryStore) Get(key string) ([]byte, int, int64, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	entry, ok := ms.entries[key]
	if !ok {
		return nil, 0, 0, sql.ErrNoRows
	}
	payload := make([]byte, len(entry.payload))
	copy(payload, entry.payload)
	return payload, entry.version, entry.storedAt, nil
}

// Set inserts or replaces a cache entry. The payload is copied so later
// mutation of the caller's slice cannot corrupt the cache.
func (ms *MemoryStore) Set(key string, value []byte, version int, timestamp int64) error {
	payload := make([]byte, len(value))
	copy(payload, value)

	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.entries[key] = memoryEntry{payload: payload, version: version, storedAt: timestamp}
	return nil
}

// GetStatus returns status information about the in-process store.
func (ms *MemoryStore) GetStatus() (schema.CacheStatus, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	status := schema.CacheStatus{
		Backend:      string(schema.MemoryBackend),
		Connected:    true,
		TotalEntries: int64(len(ms.entries)),
	}

	var sizeBytes int64
	var lastTs, oldestTs int64
	for _, entry := range ms.entries {
		sizeBytes += int64(len(entry.payload))
		if lastTs == 0 || entry.storedAt > lastTs {
			lastTs = entry.storedAt
		}
		if oldestTs == 0 || entry.storedAt < oldestTs {
			oldestTs = entry.storedAt
		}
	}
	if status.TotalEntries > 0 {
		status.LastEntryTime = time.Unix(lastTs, 0)
		status.OldestEntryTime = time.Unix(oldestTs, 0)
	}
	status.TableSizeBytes = sizeBytes
	return status, nil
}

// Close drops all entries.
func (ms *MemoryStore) Close() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.entries = make(map[string]memoryEntry)
	return nil
}
