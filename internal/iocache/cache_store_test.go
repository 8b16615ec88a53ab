package iocache

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auralab/aura/schema"
)

func newSQLiteCacheStore(t *testing.T) *SQLCacheStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewSQLCacheStore(resultTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*SQLCacheStore)
}

func TestSQLCacheStoreRoundTrip(t *testing.T) {
	store := newSQLiteCacheStore(t)

	require.NoError(t, store.Set("key-a", []byte(`{"score": 7.5}`), 1, 1700000000))

	payload, version, ts, err := store.Get("key-a")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"score": 7.5}`), payload)
	assert.Equal(t, 1, version)
	assert.Equal(t, int64(1700000000), ts)
}

func TestSQLCacheStoreOverwrite(t *testing.T) {
	store := newSQLiteCacheStore(t)

	require.NoError(t, store.Set("key-a", []byte("first"), 1, 100))
	require.NoError(t, store.Set("key-a", []byte("second"), 2, 200))

	payload, version, ts, err := store.Get("key-a")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), payload)
	assert.Equal(t, 2, version)
	assert.Equal(t, int64(200), ts)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(1), status.TotalEntries)
}

func TestSQLCacheStoreMissingKey(t *testing.T) {
	store := newSQLiteCacheStore(t)

	_, _, _, err := store.Get("nonexistent")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestSQLCacheStoreStatus(t *testing.T) {
	store := newSQLiteCacheStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, string(schema.SQLiteBackend), status.Backend)
	assert.Equal(t, int64(0), status.TotalEntries)

	require.NoError(t, store.Set("key-a", []byte("a"), 1, 100))
	require.NoError(t, store.Set("key-b", []byte("b"), 1, 300))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.TotalEntries)
	assert.Equal(t, int64(300), status.LastEntryTime.Unix())
	assert.Equal(t, int64(100), status.OldestEntryTime.Unix())
	assert.Positive(t, status.TableSizeBytes)
}

func TestNoneBackendCacheStore(t *testing.T) {
	store, err := NewSQLCacheStore(resultTable, schema.NoneBackend, "")
	require.NoError(t, err)

	assert.NoError(t, store.Set("key", []byte("value"), 1, 100))

	_, _, _, err = store.Get("key")
	assert.True(t, errors.Is(err, sql.ErrNoRows))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}

func TestNewSQLCacheStoreRejectsBadTableName(t *testing.T) {
	_, err := NewSQLCacheStore("bad; DROP TABLE", schema.SQLiteBackend, "")
	assert.Error(t, err)

	_, err = NewSQLCacheStore("", schema.SQLiteBackend, "")
	assert.Error(t, err)
}

func TestNewSQLCacheStoreRejectsUnknownBackend(t *testing.T) {
	_, err := NewSQLCacheStore(resultTable, schema.StoreBackend("mongodb"), "")
	assert.Error(t, err)
}
