package iocache

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auralab/aura/schema"
)

func newTestRedisStore(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return mr, store.(*RedisStore)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	_, store := newTestRedisStore(t)

	require.NoError(t, store.Set("key-a", []byte(`{"score": 7.5}`), 1, 1700000000))

	payload, version, ts, err := store.Get("key-a")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"score": 7.5}`), payload)
	assert.Equal(t, 1, version)
	assert.Equal(t, int64(1700000000), ts)
}

func TestRedisStoreMissingKey(t *testing.T) {
	_, store := newTestRedisStore(t)

	_, _, _, err := store.Get("nonexistent")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestRedisStoreOverwrite(t *testing.T) {
	_, store := newTestRedisStore(t)

	require.NoError(t, store.Set("key-a", []byte("first"), 1, 100))
	require.NoError(t, store.Set("key-a", []byte("second"), 2, 200))

	payload, version, ts, err := store.Get("key-a")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), payload)
	assert.Equal(t, 2, version)
	assert.Equal(t, int64(200), ts)
}

func TestRedisStoreKeysAreNamespaced(t *testing.T) {
	mr, store := newTestRedisStore(t)

	require.NoError(t, store.Set("abc123", []byte("payload"), 1, 100))
	assert.True(t, mr.Exists(redisKeyPrefix+"abc123"))
}

func TestRedisStoreStatus(t *testing.T) {
	_, store := newTestRedisStore(t)

	require.NoError(t, store.Set("key-a", []byte("a"), 1, 100))
	require.NoError(t, store.Set("key-b", []byte("b"), 1, 300))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, string(schema.RedisBackend), status.Backend)
	assert.Equal(t, int64(2), status.TotalEntries)
	assert.Equal(t, int64(300), status.LastEntryTime.Unix())
	assert.Equal(t, int64(100), status.OldestEntryTime.Unix())
}

func TestNewRedisStoreBadAddress(t *testing.T) {
	_, err := NewRedisStore("localhost:1")
	assert.Error(t, err)

	_, err = NewRedisStore("not-a-url://%%")
	assert.Error(t, err)
}

func TestClearRedisCache(t *testing.T) {
	mr, store := newTestRedisStore(t)

	require.NoError(t, store.Set("key-a", []byte("a"), 1, 100))
	require.NoError(t, mr.Set("unrelated", "keep me"))

	require.NoError(t, clearRedisCache(mr.Addr()))

	_, _, _, err := store.Get("key-a")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.True(t, mr.Exists("unrelated"))
}
