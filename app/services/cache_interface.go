package services

import (
	"context"

	"github.com/restaurant-intel/app/models"
)

// CacheStats summarizes one backend's traffic.
type CacheStats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// Cache stores whole resolution snapshots under fingerprint keys.
// Implementations must treat entries as opaque and immutable: a Get returns
// exactly what Set stored, including entries wrapping a nil snapshot.
type Cache interface {
	// Get returns the entry for key. found=false on miss or expiry.
	Get(ctx context.Context, key string) (*models.SnapshotEntry, bool, error)

	// Set stores the entry under key with the backend's TTL.
	Set(ctx context.Context, key string, entry *models.SnapshotEntry) error

	// Exists reports whether key holds a live entry, without counting
	// toward hit/miss stats.
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes key.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Stats reports hit/miss counters.
	Stats(ctx context.Context) (*CacheStats, error)

	// Close releases backend connections, if any.
	Close() error
}

func hitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
