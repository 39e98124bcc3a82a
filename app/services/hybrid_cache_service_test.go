package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restaurant-intel/app/models"
)

func TestHybridCacheService(t *testing.T) {
	ctx := context.Background()

	t.Run("writes land in both levels", func(t *testing.T) {
		l1 := NewMemoryCacheService(16, time.Minute)
		l2 := NewMemoryCacheService(16, time.Minute)
		hybrid := NewHybridCacheService(l1, l2, nil)

		entry := &models.SnapshotEntry{Value: snapshot("본죽"), Key: "k", CreatedAt: time.Now()}
		require.NoError(t, hybrid.Set(ctx, "k", entry))

		_, found, err := l1.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, found)
		_, found, err = l2.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("L2 hit survives an empty L1", func(t *testing.T) {
		l1 := NewMemoryCacheService(16, time.Minute)
		l2 := NewMemoryCacheService(16, time.Minute)
		hybrid := NewHybridCacheService(l1, l2, nil)

		entry := &models.SnapshotEntry{Value: snapshot("본죽"), Key: "k", CreatedAt: time.Now()}
		require.NoError(t, l2.Set(ctx, "k", entry))

		got, found, err := hybrid.Get(ctx, "k")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "본죽", got.Value.Identity.Name)
	})

	t.Run("broken L1 degrades to L2", func(t *testing.T) {
		l2 := NewMemoryCacheService(16, time.Minute)
		hybrid := NewHybridCacheService(brokenCache{}, l2, nil)

		entry := &models.SnapshotEntry{Value: snapshot("본죽"), Key: "k", CreatedAt: time.Now()}
		require.NoError(t, l2.Set(ctx, "k", entry))

		_, found, err := hybrid.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("miss on both levels", func(t *testing.T) {
		hybrid := NewHybridCacheService(NewMemoryCacheService(16, time.Minute), NewMemoryCacheService(16, time.Minute), nil)
		_, found, err := hybrid.Get(ctx, "absent")
		require.NoError(t, err)
		assert.False(t, found)
	})
}
