package services

import (
	"context"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/restaurant-intel/app/models"
)

const mongoCacheCollection = "intel_cache"

// MongoCacheService is the Mongo backend: a TTL-indexed collection of
// snapshot entries fronted by a small in-process LRU. The TTL index keeps
// this a short-lived cache, not durable storage.
type MongoCacheService struct {
	collection *mongo.Collection
	l1         *lru.Cache[string, *models.SnapshotEntry]
	logger     *zap.Logger
	ttl        time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewMongoCacheService builds the backend and ensures its indexes: a unique
// key index and a TTL index expiring entries after ttl.
func NewMongoCacheService(db *mongo.Database, l1Size int, ttl time.Duration, logger *zap.Logger) (*MongoCacheService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	l1, err := lru.New[string, *models.SnapshotEntry](l1Size)
	if err != nil {
		return nil, err
	}

	collection := db.Collection(mongoCacheCollection)
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "key", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(ttl.Seconds())),
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn("intel_cache index creation failed", zap.Error(err))
	}

	return &MongoCacheService{
		collection: collection,
		l1:         l1,
		logger:     logger,
		ttl:        ttl,
	}, nil
}

// Get checks the L1 LRU first, then Mongo. Entries past their TTL are
// treated as misses even before Mongo's sweeper removes them.
func (m *MongoCacheService) Get(ctx context.Context, key string) (*models.SnapshotEntry, bool, error) {
	if entry, ok := m.l1.Get(key); ok {
		if time.Since(entry.CreatedAt) < m.ttl {
			m.hits.Add(1)
			m.logger.Debug("mongo cache L1 hit", zap.String("key", key))
			return entry, true, nil
		}
		m.l1.Remove(key)
	}

	var entry models.SnapshotEntry
	err := m.collection.FindOne(ctx, bson.M{"key": key}).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		m.misses.Add(1)
		return nil, false, nil
	}
	if err != nil {
		m.logger.Error("mongo cache get failed", zap.Error(err), zap.String("key", key))
		return nil, false, err
	}
	if time.Since(entry.CreatedAt) >= m.ttl {
		m.misses.Add(1)
		return nil, false, nil
	}

	m.l1.Add(key, &entry)
	m.hits.Add(1)
	m.logger.Debug("mongo cache hit", zap.String("key", key))
	return &entry, true, nil
}

// Set upserts the entry and mirrors it into the L1 LRU.
func (m *MongoCacheService) Set(ctx context.Context, key string, entry *models.SnapshotEntry) error {
	_, err := m.collection.ReplaceOne(ctx, bson.M{"key": key}, entry, options.Replace().SetUpsert(true))
	if err != nil {
		m.logger.Error("mongo cache set failed", zap.Error(err), zap.String("key", key))
		return err
	}
	m.l1.Add(key, entry)
	return nil
}

// Exists reports whether a live entry for key is stored in either level.
func (m *MongoCacheService) Exists(ctx context.Context, key string) (bool, error) {
	if entry, ok := m.l1.Get(key); ok && time.Since(entry.CreatedAt) < m.ttl {
		return true, nil
	}
	n, err := m.collection.CountDocuments(ctx, bson.M{
		"key":        key,
		"created_at": bson.M{"$gt": time.Now().Add(-m.ttl)},
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes key from both levels.
func (m *MongoCacheService) Delete(ctx context.Context, key string) error {
	m.l1.Remove(key)
	_, err := m.collection.DeleteOne(ctx, bson.M{"key": key})
	return err
}

// Clear drops every entry from both levels.
func (m *MongoCacheService) Clear(ctx context.Context) error {
	m.l1.Purge()
	_, err := m.collection.DeleteMany(ctx, bson.M{})
	return err
}

// Stats reports hit/miss counters and the collection's entry count.
func (m *MongoCacheService) Stats(ctx context.Context) (*CacheStats, error) {
	hits := m.hits.Load()
	misses := m.misses.Load()

	items, err := m.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	return &CacheStats{
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: items,
	}, nil
}

// Close is a no-op; the mongo client is owned by the caller.
func (m *MongoCacheService) Close() error { return nil }
