package models

import "time"

// SnapshotEntry is the unit stored by every cache backend. Wrapping the
// snapshot lets the cache distinguish "never looked up" (no entry) from
// "looked up, restaurant not found" (entry with a nil Value).
type SnapshotEntry struct {
	Value     *RestaurantIntelligence `json:"value" bson:"value"`
	Key       string                  `json:"key" bson:"key"`
	CreatedAt time.Time               `json:"created_at" bson:"created_at"`
}
