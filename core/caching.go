package core

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/auralab/aura/internal/contract"
	"github.com/auralab/aura/schema"
)

// currentCacheVersion defines the version of the cache entry layout. It is
// independent of the scoring config version, which lives in the key itself.
const currentCacheVersion = 1

// GenerateCacheKey creates the request identity digest. Two requests share
// an entry exactly when the photo bytes, the scoring tables and the endpoint
// revision all match.
func GenerateCacheKey(photoHash, configVersion, endpointVersion string) string {
	key := fmt.Sprintf("%s:%s:%s", photoHash, configVersion, endpointVersion)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}

// cachedAnalysis wraps computation with the determinism cache. A hit is
// decoded and returned as-is; a miss computes, stores best-effort, and
// returns the fresh result. Store failures never fail the request.
func cachedAnalysis[T any](store contract.CacheStore, key string, compute func() (*T, error)) (*T, bool, error) {
	if store == nil {
		result, err := compute()
		return result, false, err
	}

	if result := checkCacheHit[T](store, key); result != nil {
		return result, true, nil
	}

	result, err := computeAndStore(store, key, compute)
	return result, false, err
}

// checkCacheHit attempts to retrieve and validate a cached result.
func checkCacheHit[T any](store contract.CacheStore, key string) *T {
	data, version, _, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Any layout version mismatch is a miss. Entries never expire by age:
	// the key already encodes everything that could change the answer.
	if version == currentCacheVersion {
		var result T
		if err := json.Unmarshal(data, &result); err == nil {
			return &result // Cache hit
		}
	}

	return nil // Cache miss (layout mismatch or corrupt payload)
}

// computeAndStore computes the result and stores it in cache.
func computeAndStore[T any](store contract.CacheStore, key string, compute func() (*T, error)) (*T, error) {
	result, err := compute()
	if err != nil {
		return nil, err
	}

	// Store best-effort; a write failure degrades to recompute-next-time.
	if data, err := json.Marshal(result); err == nil {
		if setErr := store.Set(key, data, currentCacheVersion, time.Now().Unix()); setErr != nil {
			contract.LogWarn("cache write failed", setErr)
		}
	}

	return result, nil
}

// CachedFaceAnalysis runs face scoring through the determinism cache.
// The second return reports whether the result came from cache.
func CachedFaceAnalysis(cfg *contract.Config, store contract.CacheStore, m *schema.FaceMeasurements) (*schema.FaceAnalysis, bool, error) {
	key := GenerateCacheKey(m.PhotoHash, cfg.ConfigVersion, "face-"+cfg.EndpointVersion)
	return cachedAnalysis(store, key, func() (*schema.FaceAnalysis, error) {
		return AnalyzeFace(cfg.Scoring, m)
	})
}

// CachedBodyAnalysis runs body scoring through the determinism cache.
func CachedBodyAnalysis(cfg *contract.Config, store contract.CacheStore, m *schema.BodyMeasurements) (*schema.BodyAnalysis, bool, error) {
	key := GenerateCacheKey(m.PhotoHash, cfg.ConfigVersion, "body-"+cfg.EndpointVersion)
	return cachedAnalysis(store, key, func() (*schema.BodyAnalysis, error) {
		return AnalyzeBody(cfg.Scoring, m)
	})
}
