package models

import "time"

// HygieneGrade is the government food-safety grade. Absence of a grade means
// the restaurant never applied or qualified, not that hygiene is poor.
type HygieneGrade string

const (
	GradeAAA  HygieneGrade = "AAA"
	GradeAA   HygieneGrade = "AA"
	GradeA    HygieneGrade = "A"
	GradeNone HygieneGrade = "none"
)

// Label returns the Korean display label published by the registry.
func (g HygieneGrade) Label() string {
	switch g {
	case GradeAAA:
		return "매우우수"
	case GradeAA:
		return "우수"
	case GradeA:
		return "좋음"
	default:
		return "등급없음"
	}
}

// StarRating maps the grade onto the 0-3 star scale used in listings.
func (g HygieneGrade) StarRating() int {
	switch g {
	case GradeAAA:
		return 3
	case GradeAA:
		return 2
	case GradeA:
		return 1
	default:
		return 0
	}
}

// Rank orders grades for tie-breaking: AAA > AA > A > none.
func (g HygieneGrade) Rank() int {
	return g.StarRating()
}

// PriceRange is the coarse price tier reported by the directory, when known.
type PriceRange string

const (
	PriceLow     PriceRange = "low"
	PriceMedium  PriceRange = "medium"
	PriceHigh    PriceRange = "high"
	PriceUnknown PriceRange = "none"
)

// RestaurantIdentity is the resolved identity of one restaurant. It is
// produced fresh by the resolver on every query and never persisted.
type RestaurantIdentity struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	RoadAddress string `json:"road_address,omitempty"`
	Category    string `json:"category"`
	Phone       string `json:"phone,omitempty"`
	ExternalRef string `json:"external_ref,omitempty"`
}

// Violation is one administrative disciplinary action from the public
// registry (suspension, fine, corrective order).
type Violation struct {
	Date   string `json:"date"`
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// HygieneInfo aggregates the registry grade with the violation history.
// StarRating is a pure function of Grade and HasViolations of ViolationCount;
// both are kept denormalized so cached snapshots round-trip as plain data.
type HygieneInfo struct {
	Grade            HygieneGrade `json:"grade"`
	GradeLabel       string       `json:"grade_label"`
	StarRating       int          `json:"star_rating"`
	HasViolations    bool         `json:"has_violations"`
	ViolationCount   int          `json:"violation_count"`
	RecentViolations []Violation  `json:"recent_violations,omitempty"`
}

// NewHygieneInfo builds a HygieneInfo honoring the derived-field invariants.
func NewHygieneInfo(grade HygieneGrade, violationCount int, recent []Violation) HygieneInfo {
	return HygieneInfo{
		Grade:            grade,
		GradeLabel:       grade.Label(),
		StarRating:       grade.StarRating(),
		HasViolations:    violationCount > 0,
		ViolationCount:   violationCount,
		RecentViolations: recent,
	}
}

// PlatformRating is one consumer platform's rating for the restaurant.
// Score is nil when the platform lists the place without a score.
type PlatformRating struct {
	Platform    string   `json:"platform"`
	Score       *float64 `json:"score,omitempty"`
	ReviewCount int      `json:"review_count"`
}

// RatingInfo holds per-platform ratings plus the derived combined rating.
// Combined is nil iff no platform has a score.
type RatingInfo struct {
	Platforms []PlatformRating `json:"platforms,omitempty"`
	Combined  *float64         `json:"combined,omitempty"`
}

// TotalReviews sums review counts across platforms.
func (r RatingInfo) TotalReviews() int {
	total := 0
	for _, p := range r.Platforms {
		total += p.ReviewCount
	}
	return total
}

// ScoreSet carries the three derived scores, each in [0,100]. It is
// recomputed on every resolution, never cached on its own.
type ScoreSet struct {
	Hygiene    int `json:"hygiene"`
	Popularity int `json:"popularity"`
	Overall    int `json:"overall"`
}

// RestaurantIntelligence is the aggregate record produced by one
// (name, region) resolution. It is cached whole as an immutable snapshot;
// a cache hit returns the snapshot verbatim, never merged or mutated.
type RestaurantIntelligence struct {
	Identity      RestaurantIdentity `json:"identity"`
	Hygiene       HygieneInfo        `json:"hygiene"`
	Rating        RatingInfo         `json:"rating"`
	PriceRange    PriceRange         `json:"price_range"`
	BusinessHours string             `json:"business_hours,omitempty"`
	Scores        ScoreSet           `json:"scores"`
	ResolvedAt    time.Time          `json:"resolved_at"`
}

// RestaurantRef names one restaurant to resolve: a display name plus the
// administrative region the caller is searching in.
type RestaurantRef struct {
	Name   string `json:"name"`
	Region string `json:"region"`
}
