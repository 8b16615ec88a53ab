package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auralab/aura/schema"
)

func TestRankSignalsOrdersByInformativeness(t *testing.T) {
	specs := []schema.RatioSpec{
		{Key: "a", Weight: 0.5},
		{Key: "b", Weight: 0.3},
		{Key: "c", Weight: 0.2},
	}
	signals := []schema.RatioSignal{
		{Key: "a", Score: 0.9}, // 0.5 * 0.1 = 0.05
		{Key: "b", Score: 0.2}, // 0.3 * 0.8 = 0.24
		{Key: "c", Score: 0.1}, // 0.2 * 0.9 = 0.18
	}

	ranked := rankSignals(specs, signals, 0)
	require.Len(t, ranked, 3)
	assert.Equal(t, schema.RatioKey("b"), ranked[0].Key)
	assert.Equal(t, schema.RatioKey("c"), ranked[1].Key)
	assert.Equal(t, schema.RatioKey("a"), ranked[2].Key)
}

func TestRankSignalsCapsToLimit(t *testing.T) {
	specs := []schema.RatioSpec{
		{Key: "a", Weight: 0.4},
		{Key: "b", Weight: 0.3},
		{Key: "c", Weight: 0.3},
	}
	signals := []schema.RatioSignal{
		{Key: "a", Score: 0.5},
		{Key: "b", Score: 0.5},
		{Key: "c", Score: 0.5},
	}

	ranked := rankSignals(specs, signals, 2)
	assert.Len(t, ranked, 2)
}

// TestRankSignalsStableTieBreak verifies equal informativeness sorts by key
// so output never depends on input order quirks.
func TestRankSignalsStableTieBreak(t *testing.T) {
	specs := []schema.RatioSpec{
		{Key: "zed", Weight: 0.5},
		{Key: "alpha", Weight: 0.5},
	}
	signals := []schema.RatioSignal{
		{Key: "zed", Score: 0.5},
		{Key: "alpha", Score: 0.5},
	}

	ranked := rankSignals(specs, signals, 0)
	assert.Equal(t, schema.RatioKey("alpha"), ranked[0].Key)
	assert.Equal(t, schema.RatioKey("zed"), ranked[1].Key)
}

func TestRankSignalsDoesNotMutateInput(t *testing.T) {
	specs := []schema.RatioSpec{
		{Key: "a", Weight: 0.9},
		{Key: "b", Weight: 0.1},
	}
	signals := []schema.RatioSignal{
		{Key: "b", Score: 0.1},
		{Key: "a", Score: 0.1},
	}

	_ = rankSignals(specs, signals, 1)
	assert.Equal(t, schema.RatioKey("b"), signals[0].Key)
}
