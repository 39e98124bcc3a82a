package recommend

import (
	"fmt"
	"math"
	"strings"

	"github.com/restaurant-intel/app/models"
	"github.com/restaurant-intel/internal/scoring"
)

// Dining-occasion affinity table: a venue whose category hits one of the
// purpose's keywords gets the full boost.
var purposeKeywords = map[string][]string{
	"회식":     {"고기", "삼겹살", "갈비", "구이", "주점", "호프"},
	"데이트":    {"파스타", "이탈리", "와인", "카페", "레스토랑", "브런치"},
	"가족모임":   {"한정식", "갈비", "뷔페", "패밀리", "샤브"},
	"혼밥":     {"국밥", "분식", "덮밥", "라멘", "백반", "우동"},
	"비즈니스미팅": {"한정식", "일식", "코스", "호텔", "레스토랑"},
}

const (
	purposeScoreExact   = 100
	purposeScorePartial = 60
	purposeScoreNone    = 30
	purposeScoreOmitted = 50
)

// hygieneSubScore reuses the grade base values; the violation deduction is
// applied separately as the weighted penalty.
func hygieneSubScore(grade models.HygieneGrade) int {
	return scoring.GradeBase(grade)
}

// ratingSubScore maps the combined rating to [0,100], neutral 50 if absent.
func ratingSubScore(combined *float64) int {
	if combined == nil {
		return 50
	}
	score := int(math.Round(*combined * 20))
	if score > 100 {
		score = 100
	}
	return score
}

// reviewsSubScore rewards review volume on a log scale: 30 with no reviews,
// 100 from a thousand up.
func reviewsSubScore(count int) int {
	if count <= 0 {
		return 30
	}
	if count >= 1000 {
		return 100
	}
	score := int(math.Round(30 + 25*math.Log10(float64(count)+1)))
	if score > 100 {
		score = 100
	}
	return score
}

// violationPenalty is subtracted from the weighted total: 50 points per
// recorded violation, capped at 100.
func violationPenalty(count int) int {
	penalty := count * 50
	if penalty > 100 {
		penalty = 100
	}
	return penalty
}

// purposeSubScore scores how well a venue category fits the dining
// occasion: full keyword containment 100, a single shared character with
// any keyword 60, nothing shared 30, neutral 50 when no purpose was given.
func purposeSubScore(purpose, category string) int {
	if purpose == "" {
		return purposeScoreOmitted
	}
	keywords, known := purposeKeywords[purpose]
	if !known {
		return purposeScoreOmitted
	}

	for _, kw := range keywords {
		if strings.Contains(category, kw) {
			return purposeScoreExact
		}
	}
	for _, kw := range keywords {
		for _, ch := range kw {
			if strings.ContainsRune(category, ch) {
				return purposeScorePartial
			}
		}
	}
	return purposeScoreNone
}

// buildHighlights produces the informational display strings; they never
// influence scoring.
func buildHighlights(intel *models.RestaurantIntelligence) []string {
	highlights := make([]string, 0, 5)

	if intel.Hygiene.Grade != models.GradeNone {
		highlights = append(highlights, fmt.Sprintf("위생등급 %s", intel.Hygiene.GradeLabel))
	}
	if intel.Rating.Combined != nil {
		highlights = append(highlights, fmt.Sprintf("평점 %.1f", *intel.Rating.Combined))
	}
	if !intel.Hygiene.HasViolations {
		highlights = append(highlights, "행정처분 이력 없음")
	}
	if reviews := intel.Rating.TotalReviews(); reviews >= 100 {
		highlights = append(highlights, fmt.Sprintf("리뷰 %d개", reviews))
	}
	if intel.PriceRange == models.PriceLow {
		highlights = append(highlights, "가성비 좋음")
	}
	return highlights
}
