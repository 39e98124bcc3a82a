// Package scoring computes the derived hygiene/popularity/overall scores
// for a resolved restaurant. Everything here is a pure function of its
// inputs; nothing reads or writes shared state.
package scoring

import (
	"math"

	"github.com/restaurant-intel/app/models"
)

// Overall score blend.
const (
	hygieneWeight    = 0.6
	popularityWeight = 0.4
)

// Violation penalty applied to the hygiene score.
const (
	violationPenaltyStep = 20
	violationPenaltyCap  = 40
)

// GradeBase returns the base hygiene score for a grade: 100/80/60/40 for
// AAA/AA/A/none.
func GradeBase(grade models.HygieneGrade) int {
	switch grade {
	case models.GradeAAA:
		return 100
	case models.GradeAA:
		return 80
	case models.GradeA:
		return 60
	default:
		return 40
	}
}

// HygieneScore is the grade base minus a capped violation penalty,
// floored at zero.
func HygieneScore(grade models.HygieneGrade, violationCount int) int {
	penalty := violationCount * violationPenaltyStep
	if penalty > violationPenaltyCap {
		penalty = violationPenaltyCap
	}
	score := GradeBase(grade) - penalty
	if score < 0 {
		score = 0
	}
	return score
}

// PopularityScore maps a combined rating onto [0,100]. A restaurant with
// no rating at all sits at the neutral 50, not at the bottom.
func PopularityScore(combined *float64) int {
	if combined == nil {
		return 50
	}
	score := int(math.Round(*combined * 20))
	if score > 100 {
		score = 100
	}
	return score
}

// OverallScore blends hygiene and popularity 60/40.
func OverallScore(hygiene, popularity int) int {
	return int(math.Round(hygieneWeight*float64(hygiene) + popularityWeight*float64(popularity)))
}

// CombinedRating blends per-platform scores into one 0-5 rating, weighted
// by review count, falling back to an unweighted mean when no platform
// reports any reviews. Rounded to one decimal. Nil iff no platform has a
// score at all.
func CombinedRating(platforms []models.PlatformRating) *float64 {
	var weightedSum, weightTotal float64
	var plainSum float64
	scored := 0

	for _, p := range platforms {
		if p.Score == nil {
			continue
		}
		scored++
		plainSum += *p.Score
		weightedSum += *p.Score * float64(p.ReviewCount)
		weightTotal += float64(p.ReviewCount)
	}
	if scored == 0 {
		return nil
	}

	var combined float64
	if weightTotal > 0 {
		combined = weightedSum / weightTotal
	} else {
		combined = plainSum / float64(scored)
	}
	combined = math.Round(combined*10) / 10
	return &combined
}

// Compute derives the full ScoreSet for a resolved record.
func Compute(hygiene models.HygieneInfo, rating models.RatingInfo) models.ScoreSet {
	h := HygieneScore(hygiene.Grade, hygiene.ViolationCount)
	p := PopularityScore(rating.Combined)
	return models.ScoreSet{
		Hygiene:    h,
		Popularity: p,
		Overall:    OverallScore(h, p),
	}
}
