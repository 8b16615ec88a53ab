package iocache

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auralab/aura/schema"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Set("key-a", []byte("payload"), 1, 500))

	payload, version, ts, err := store.Get("key-a")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), payload)
	assert.Equal(t, 1, version)
	assert.Equal(t, int64(500), ts)
}

func TestMemoryStoreMissingKey(t *testing.T) {
	store := NewMemoryStore()

	_, _, _, err := store.Get("nonexistent")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestMemoryStoreCopiesPayload(t *testing.T) {
	store := NewMemoryStore()

	input := []byte("original")
	require.NoError(t, store.Set("key-a", input, 1, 100))
	input[0] = 'X'

	payload, _, _, err := store.Get("key-a")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), payload)

	// Mutating the returned slice must not corrupt the stored entry either.
	payload[0] = 'Y'
	again, _, _, err := store.Get("key-a")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), again)
}

func TestMemoryStoreStatus(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Set("key-a", []byte("aa"), 1, 100))
	require.NoError(t, store.Set("key-b", []byte("bbbb"), 1, 300))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, string(schema.MemoryBackend), status.Backend)
	assert.Equal(t, int64(2), status.TotalEntries)
	assert.Equal(t, int64(300), status.LastEntryTime.Unix())
	assert.Equal(t, int64(100), status.OldestEntryTime.Unix())
	assert.Equal(t, int64(6), status.TableSizeBytes)
}

func TestMemoryStoreCloseDropsEntries(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Set("key-a", []byte("payload"), 1, 100))
	require.NoError(t, store.Close())

	_, _, _, err := store.Get("key-a")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}
