package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/restaurant-intel/app/models"
)

// MemoryCacheService is the in-process backend: a size-bounded LRU whose
// entries expire after the configured TTL.
type MemoryCacheService struct {
	cache *expirable.LRU[string, *models.SnapshotEntry]

	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemoryCacheService builds an in-memory cache holding up to size
// entries for ttl each.
func NewMemoryCacheService(size int, ttl time.Duration) *MemoryCacheService {
	return &MemoryCacheService{
		cache: expirable.NewLRU[string, *models.SnapshotEntry](size, nil, ttl),
	}
}

// Get returns the cached entry, counting hits and misses.
func (m *MemoryCacheService) Get(_ context.Context, key string) (*models.SnapshotEntry, bool, error) {
	entry, found := m.cache.Get(key)
	if !found {
		m.misses.Add(1)
		return nil, false, nil
	}
	m.hits.Add(1)
	return entry, true, nil
}

// Set stores the entry. The LRU owns eviction and expiry.
func (m *MemoryCacheService) Set(_ context.Context, key string, entry *models.SnapshotEntry) error {
	m.cache.Add(key, entry)
	return nil
}

// Exists reports whether key is present without touching the counters.
func (m *MemoryCacheService) Exists(_ context.Context, key string) (bool, error) {
	return m.cache.Contains(key), nil
}

// Delete removes key.
func (m *MemoryCacheService) Delete(_ context.Context, key string) error {
	m.cache.Remove(key)
	return nil
}

// Clear removes every entry.
func (m *MemoryCacheService) Clear(_ context.Context) error {
	m.cache.Purge()
	return nil
}

// Stats reports hit/miss counters and the live entry count.
func (m *MemoryCacheService) Stats(_ context.Context) (*CacheStats, error) {
	hits := m.hits.Load()
	misses := m.misses.Load()
	return &CacheStats{
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: int64(m.cache.Len()),
	}, nil
}

// Close is a no-op for the in-memory backend.
func (m *MemoryCacheService) Close() error { return nil }
