package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restaurant-intel/app/models"
)

func snapshot(name string) *models.RestaurantIntelligence {
	return &models.RestaurantIntelligence{
		Identity:   models.RestaurantIdentity{Name: name, Address: "서울특별시 강남구 역삼동 1", Category: "한식"},
		ResolvedAt: time.Now(),
	}
}

// brokenCache fails every operation, to verify degradation to a miss.
type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (*models.SnapshotEntry, bool, error) {
	return nil, false, errors.New("backend down")
}
func (brokenCache) Set(context.Context, string, *models.SnapshotEntry) error {
	return errors.New("backend down")
}
func (brokenCache) Exists(context.Context, string) (bool, error) {
	return false, errors.New("backend down")
}
func (brokenCache) Delete(context.Context, string) error { return errors.New("backend down") }
func (brokenCache) Clear(context.Context) error          { return errors.New("backend down") }
func (brokenCache) Stats(context.Context) (*CacheStats, error) {
	return nil, errors.New("backend down")
}
func (brokenCache) Close() error { return nil }

func TestCachedFetcher_ValueRoundTrip(t *testing.T) {
	ctx := context.Background()
	fetcher := NewCachedFetcher(NewMemoryCacheService(16, time.Minute), false, nil)

	computed := 0
	compute := func(context.Context) (*models.RestaurantIntelligence, error) {
		computed++
		return snapshot("본죽"), nil
	}

	first, err := fetcher.Fetch(ctx, "k1", compute)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := fetcher.Fetch(ctx, "k1", compute)
	require.NoError(t, err)
	assert.Equal(t, 1, computed, "second fetch must come from cache")
	assert.Equal(t, first, second, "cache hit returns the snapshot verbatim")
}

func TestCachedFetcher_NullableCachesNegativeOutcome(t *testing.T) {
	ctx := context.Background()
	fetcher := NewCachedFetcher(NewMemoryCacheService(16, time.Minute), false, nil)

	computed := 0
	compute := func(context.Context) (*models.RestaurantIntelligence, error) {
		computed++
		return nil, nil
	}

	first, err := fetcher.FetchNullable(ctx, "missing", compute)
	require.NoError(t, err)
	assert.Nil(t, first)

	second, err := fetcher.FetchNullable(ctx, "missing", compute)
	require.NoError(t, err)
	assert.Nil(t, second)
	assert.Equal(t, 1, computed, "cached null must not recompute")
}

func TestCachedFetcher_PlainFetchRecomputesOnCachedNull(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCacheService(16, time.Minute)
	fetcher := NewCachedFetcher(cache, false, nil)

	_, err := fetcher.FetchNullable(ctx, "k", func(context.Context) (*models.RestaurantIntelligence, error) {
		return nil, nil
	})
	require.NoError(t, err)

	computed := 0
	got, err := fetcher.Fetch(ctx, "k", func(context.Context) (*models.RestaurantIntelligence, error) {
		computed++
		return snapshot("본죽"), nil
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, computed, "plain fetch treats a cached null as a miss")
}

func TestCachedFetcher_DisabledBypassesReadAndWrite(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCacheService(16, time.Minute)
	fetcher := NewCachedFetcher(cache, true, nil)

	computed := 0
	compute := func(context.Context) (*models.RestaurantIntelligence, error) {
		computed++
		return snapshot("본죽"), nil
	}

	_, err := fetcher.Fetch(ctx, "k", compute)
	require.NoError(t, err)
	_, err = fetcher.Fetch(ctx, "k", compute)
	require.NoError(t, err)
	assert.Equal(t, 2, computed)

	_, found, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found, "disabled fetcher must not write the backend")
}

func TestCachedFetcher_BackendErrorsDegradeToMiss(t *testing.T) {
	ctx := context.Background()
	fetcher := NewCachedFetcher(brokenCache{}, false, nil)

	got, err := fetcher.FetchNullable(ctx, "k", func(context.Context) (*models.RestaurantIntelligence, error) {
		return snapshot("본죽"), nil
	})
	require.NoError(t, err, "backend failures must never reach the caller")
	require.NotNil(t, got)
	assert.Equal(t, "본죽", got.Identity.Name)
}

func TestCachedFetcher_ComputeErrorPropagatesUnstored(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCacheService(16, time.Minute)
	fetcher := NewCachedFetcher(cache, false, nil)

	wantErr := errors.New("provider exploded")
	_, err := fetcher.Fetch(ctx, "k", func(context.Context) (*models.RestaurantIntelligence, error) {
		return nil, wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	_, found, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found, "failed computations are not cached")
}

func TestMemoryCacheService(t *testing.T) {
	ctx := context.Background()

	t.Run("set get delete", func(t *testing.T) {
		cache := NewMemoryCacheService(16, time.Minute)
		entry := &models.SnapshotEntry{Value: snapshot("본죽"), Key: "k", CreatedAt: time.Now()}

		require.NoError(t, cache.Set(ctx, "k", entry))
		got, found, err := cache.Get(ctx, "k")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, entry, got)

		ok, err := cache.Exists(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = cache.Exists(ctx, "absent")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, cache.Delete(ctx, "k"))
		_, found, err = cache.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("entries expire", func(t *testing.T) {
		cache := NewMemoryCacheService(16, 20*time.Millisecond)
		entry := &models.SnapshotEntry{Value: snapshot("본죽"), Key: "k", CreatedAt: time.Now()}
		require.NoError(t, cache.Set(ctx, "k", entry))

		time.Sleep(50 * time.Millisecond)
		_, found, err := cache.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("stats track hits and misses", func(t *testing.T) {
		cache := NewMemoryCacheService(16, time.Minute)
		require.NoError(t, cache.Set(ctx, "k", &models.SnapshotEntry{Key: "k", CreatedAt: time.Now()}))

		cache.Get(ctx, "k")
		cache.Get(ctx, "absent")

		stats, err := cache.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stats.TotalHits)
		assert.Equal(t, int64(1), stats.TotalMiss)
		assert.Equal(t, 0.5, stats.HitRate)
	})
}
