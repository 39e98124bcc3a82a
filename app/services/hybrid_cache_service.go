package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/restaurant-intel/app/models"
)

// HybridCacheService composes a fast L1 (memory) with a shared L2 (Redis or
// Mongo). Reads fall through L1 to L2 and backfill L1 asynchronously; writes
// go to both levels.
type HybridCacheService struct {
	l1     Cache
	l2     Cache
	logger *zap.Logger
}

// NewHybridCacheService wires the two levels together.
func NewHybridCacheService(l1, l2 Cache, logger *zap.Logger) *HybridCacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HybridCacheService{l1: l1, l2: l2, logger: logger}
}

// Get tries L1, then L2. An L1 error degrades to an L2 read rather than
// failing the lookup.
func (h *HybridCacheService) Get(ctx context.Context, key string) (*models.SnapshotEntry, bool, error) {
	entry, found, err := h.l1.Get(ctx, key)
	if err != nil {
		h.logger.Warn("L1 cache error, falling through to L2", zap.Error(err), zap.String("key", key))
	} else if found {
		h.logger.Debug("L1 cache hit", zap.String("key", key))
		return entry, true, nil
	}

	entry, found, err = h.l2.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !found {
		h.logger.Debug("cache miss on both levels", zap.String("key", key))
		return nil, false, nil
	}

	// Backfill L1 off the request path.
	go func(entry *models.SnapshotEntry) {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.l1.Set(bgCtx, key, entry); err != nil {
			h.logger.Warn("L2->L1 backfill failed", zap.Error(err), zap.String("key", key))
		}
	}(entry)

	h.logger.Debug("L2 cache hit", zap.String("key", key))
	return entry, true, nil
}

// Exists checks L1 first, then L2. An L1 error degrades to the L2 answer.
func (h *HybridCacheService) Exists(ctx context.Context, key string) (bool, error) {
	ok, err := h.l1.Exists(ctx, key)
	if err != nil {
		h.logger.Warn("L1 cache exists check failed", zap.Error(err), zap.String("key", key))
	} else if ok {
		return true, nil
	}
	return h.l2.Exists(ctx, key)
}

// Set writes both levels; an L1 failure is logged, an L2 failure returned.
func (h *HybridCacheService) Set(ctx context.Context, key string, entry *models.SnapshotEntry) error {
	if err := h.l1.Set(ctx, key, entry); err != nil {
		h.logger.Warn("L1 cache set failed", zap.Error(err), zap.String("key", key))
	}
	return h.l2.Set(ctx, key, entry)
}

// Delete removes key from both levels.
func (h *HybridCacheService) Delete(ctx context.Context, key string) error {
	if err := h.l1.Delete(ctx, key); err != nil {
		h.logger.Warn("L1 cache delete failed", zap.Error(err), zap.String("key", key))
	}
	return h.l2.Delete(ctx, key)
}

// Clear empties both levels.
func (h *HybridCacheService) Clear(ctx context.Context) error {
	if err := h.l1.Clear(ctx); err != nil {
		h.logger.Warn("L1 cache clear failed", zap.Error(err))
	}
	return h.l2.Clear(ctx)
}

// Stats merges counters from both levels; item count comes from L2, the
// authoritative level.
func (h *HybridCacheService) Stats(ctx context.Context) (*CacheStats, error) {
	l1Stats, err := h.l1.Stats(ctx)
	if err != nil {
		return nil, err
	}
	l2Stats, err := h.l2.Stats(ctx)
	if err != nil {
		return nil, err
	}

	hits := l1Stats.TotalHits + l2Stats.TotalHits
	misses := l2Stats.TotalMiss // L1 misses that hit L2 are not real misses
	return &CacheStats{
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: l2Stats.TotalItems,
	}, nil
}

// Close closes both levels, returning the first error.
func (h *HybridCacheService) Close() error {
	err1 := h.l1.Close()
	err2 := h.l2.Close()
	if err1 != nil {
		return err1
	}
	return err2
}
