package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/restaurant-intel/app/models"
)

// ComputeFunc produces a fresh snapshot on a cache miss. A nil snapshot with
// a nil error is a legitimate "not found" outcome. Kept an alias so any
// function literal of this shape satisfies caller-side interfaces.
type ComputeFunc = func(ctx context.Context) (*models.RestaurantIntelligence, error)

// CachedFetcher is the get-or-compute layer over a Cache backend. Backend
// errors on either side degrade to a recompute and are only logged; the
// caller never sees them. When disabled, reads and writes are both skipped.
type CachedFetcher struct {
	cache    Cache
	disabled bool
	logger   *zap.Logger
}

// NewCachedFetcher wraps a backend. A nil cache behaves as disabled.
func NewCachedFetcher(cache Cache, disabled bool, logger *zap.Logger) *CachedFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedFetcher{cache: cache, disabled: disabled || cache == nil, logger: logger}
}

// Fetch returns the cached snapshot for key or computes and stores one.
// A stored entry wrapping a nil snapshot counts as a miss here; use
// FetchNullable when negative outcomes must be cached too.
func (f *CachedFetcher) Fetch(ctx context.Context, key string, compute ComputeFunc) (*models.RestaurantIntelligence, error) {
	if f.disabled {
		return compute(ctx)
	}
	if entry, ok := f.read(ctx, key); ok && entry.Value != nil {
		return entry.Value, nil
	}
	return f.computeAndStore(ctx, key, compute)
}

// FetchNullable is Fetch with negative caching: presence of the wrapper
// entry, not the snapshot inside it, signals a hit, so a cached "not found"
// is returned without recomputation.
func (f *CachedFetcher) FetchNullable(ctx context.Context, key string, compute ComputeFunc) (*models.RestaurantIntelligence, error) {
	if f.disabled {
		return compute(ctx)
	}
	if entry, ok := f.read(ctx, key); ok {
		return entry.Value, nil
	}
	return f.computeAndStore(ctx, key, compute)
}

// Invalidate drops the entry for key. Backend errors are logged only.
func (f *CachedFetcher) Invalidate(ctx context.Context, key string) {
	if f.disabled {
		return
	}
	if err := f.cache.Delete(ctx, key); err != nil {
		f.logger.Warn("cache delete failed", zap.Error(err), zap.String("key", key))
	}
}

func (f *CachedFetcher) read(ctx context.Context, key string) (*models.SnapshotEntry, bool) {
	entry, found, err := f.cache.Get(ctx, key)
	if err != nil {
		f.logger.Warn("cache read failed, treating as miss", zap.Error(err), zap.String("key", key))
		return nil, false
	}
	return entry, found
}

// computeAndStore runs compute and unconditionally stores the outcome,
// nil snapshots included.
func (f *CachedFetcher) computeAndStore(ctx context.Context, key string, compute ComputeFunc) (*models.RestaurantIntelligence, error) {
	value, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	entry := &models.SnapshotEntry{Value: value, Key: key, CreatedAt: time.Now()}
	if err := f.cache.Set(ctx, key, entry); err != nil {
		f.logger.Warn("cache write failed", zap.Error(err), zap.String("key", key))
	}
	return value, nil
}
