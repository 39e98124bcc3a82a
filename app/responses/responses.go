package responses

import "github.com/restaurant-intel/app/models"

// Lookup statuses for the single-restaurant flow.
const (
	LookupStatusFound     = "found"
	LookupStatusNotFound  = "not_found"
	LookupStatusAmbiguous = "ambiguous"
)

// LookupResult is the outcome of a single-restaurant lookup. An ambiguous
// registry search is surfaced to the caller with the full candidate list
// instead of being auto-resolved.
type LookupResult struct {
	Status       string                          `json:"status"`
	Intelligence *models.RestaurantIntelligence  `json:"intelligence,omitempty"`
	Candidates   []models.RestaurantIdentity     `json:"candidates,omitempty"`
	Message      string                          `json:"message,omitempty"`
}

// Recommendation statuses.
const (
	RecommendStatusOK        = "ok"
	RecommendStatusNotFound  = "not_found"
	RecommendStatusTooMany   = "too_many"
	RecommendStatusNoResults = "no_results"
)

// RecommendResult is the envelope returned by the recommendation ranker.
type RecommendResult struct {
	Status          string                         `json:"status"`
	Recommendations []models.RecommendedRestaurant `json:"recommendations"`
	TotalCandidates int                            `json:"total_candidates"`
	Suggestions     []string                       `json:"suggestions,omitempty"`
	Message         string                         `json:"message"`
}

// Comparison statuses.
const (
	CompareStatusComplete = "complete"
	CompareStatusPartial  = "partial"
)

// CompareResult is the envelope returned by the comparison analyzer.
// Comparison is nil when fewer than two restaurants resolved.
type CompareResult struct {
	Status     string                     `json:"status"`
	Found      []string                   `json:"found"`
	NotFound   []string                   `json:"not_found"`
	Comparison *models.ComparisonAnalysis `json:"comparison"`
	Message    string                     `json:"message,omitempty"`
}
