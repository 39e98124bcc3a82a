// Package providers declares the narrow interfaces this module consumes from
// external data sources. Implementations (HTTP clients, API keys, retries)
// live outside the core; tests supply fakes.
package providers

import (
	"context"

	"github.com/restaurant-intel/app/models"
)

// Directory category partitions queried for restaurant searches.
const (
	CategoryRestaurant = "FD6"
	CategoryCafe       = "CE7"
)

// DirectoryPlace is one business entry from the map/business directory.
type DirectoryPlace struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Address       string            `json:"address"`
	RoadAddress   string            `json:"road_address"`
	Phone         string            `json:"phone"`
	Category      string            `json:"category"`
	X             float64           `json:"x"`
	Y             float64           `json:"y"`
	ExternalURL   string            `json:"external_url"`
	PriceRange    models.PriceRange `json:"price_range"`
	BusinessHours string            `json:"business_hours"`
}

// Area search statuses.
const (
	AreaStatusNotFound = "not_found"
	AreaStatusTooMany  = "too_many"
	AreaStatusReady    = "ready"
)

// AreaSearchResult is the directory's answer to an area-wide search.
// Suggestions carries narrower-area hints when the status is too_many.
type AreaSearchResult struct {
	Status      string           `json:"status"`
	TotalCount  int              `json:"total_count"`
	Candidates  []DirectoryPlace `json:"candidates"`
	Suggestions []string         `json:"suggestions,omitempty"`
}

// DirectorySearch is the map/business directory lookup.
type DirectorySearch interface {
	// SearchByText runs a free-text search within one category partition.
	// Callers must dedupe by ID when querying multiple partitions.
	SearchByText(ctx context.Context, query, categoryPartition string) ([]DirectoryPlace, error)

	// SearchArea lists candidate restaurants in an area, optionally
	// narrowed by a category filter.
	SearchArea(ctx context.Context, area, categoryFilter string) (*AreaSearchResult, error)
}

// GradeRecord is one hygiene-grade entry from the government registry.
type GradeRecord struct {
	Name         string              `json:"name"`
	Address      string              `json:"address"`
	Grade        models.HygieneGrade `json:"grade"`
	BusinessType string              `json:"business_type"`
	LicenseNo    string              `json:"license_no"`
}

// RegistrySearch is the government food-safety registry lookup.
type RegistrySearch interface {
	// ByNameRegion looks for an exact (name, region) grade record.
	// Returns (nil, nil) when the registry has no matching entry.
	ByNameRegion(ctx context.Context, name, region string) (*GradeRecord, error)

	// ByName pages through grade records by name only. Last-resort
	// fallback when region-scoped lookups come back empty.
	ByName(ctx context.Context, name string, page, pageSize int) ([]GradeRecord, error)
}

// ViolationHistory is the capped recent-violations answer for one restaurant.
type ViolationHistory struct {
	TotalCount int                `json:"total_count"`
	Recent     []models.Violation `json:"recent"`
	HasMore    bool               `json:"has_more"`
}

// ViolationRegistry is the administrative-disposition registry lookup.
type ViolationRegistry interface {
	ForRestaurant(ctx context.Context, name, region string, limit int) (*ViolationHistory, error)
}

// RatingCandidate is one consumer-platform listing that may or may not be
// the restaurant in question; the resolver's match heuristic decides.
type RatingCandidate struct {
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Category    string   `json:"category"`
	Platform    string   `json:"platform"`
	Score       *float64 `json:"score,omitempty"`
	ReviewCount int      `json:"review_count"`
}

// RatingsProvider is the consumer ratings platform lookup.
type RatingsProvider interface {
	Search(ctx context.Context, query string) ([]RatingCandidate, error)
}
