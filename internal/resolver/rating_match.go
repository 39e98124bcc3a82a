package resolver

import (
	"strings"

	"github.com/restaurant-intel/internal/matcher"
	"github.com/restaurant-intel/internal/providers"
)

// Rating sub-match scoring. A candidate needs at least minRatingMatchScore
// to be accepted; below that the restaurant simply has no rating data.
const (
	ratingScoreExactName   = 100
	ratingScoreNameContain = 50
	ratingScoreAddress     = 30
	ratingScoreCategory    = 10
	minRatingMatchScore    = 30
)

// Category terms suggesting the candidate is an eating establishment.
var foodCategoryTerms = []string{"음식", "식당", "레스토랑", "카페", "커피", "맛집"}

// bestRatingMatch picks the ratings-platform listing most likely to be the
// resolved restaurant. Candidates are scored 0-140: exact normalized name
// equality 100, bidirectional name containment 50, address containment +30,
// food-related category +10. The best candidate wins only with a score of
// at least 30; otherwise there is no match, which is not an error.
func bestRatingMatch(candidates []providers.RatingCandidate, name, address string) *providers.RatingCandidate {
	bestScore := 0
	best := -1

	for i, cand := range candidates {
		score := ratingMatchScore(cand, name, address)
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	if best < 0 || bestScore < minRatingMatchScore {
		return nil
	}
	chosen := candidates[best]
	return &chosen
}

func ratingMatchScore(cand providers.RatingCandidate, name, address string) int {
	score := 0

	candName := matcher.Normalize(cand.Name)
	wantName := matcher.Normalize(name)
	switch {
	case candName != "" && candName == wantName:
		score += ratingScoreExactName
	case matcher.MatchName(cand.Name, name):
		score += ratingScoreNameContain
	}

	candAddr := matcher.Normalize(cand.Address)
	wantAddr := matcher.Normalize(address)
	if candAddr != "" && wantAddr != "" &&
		(strings.Contains(candAddr, wantAddr) || strings.Contains(wantAddr, candAddr)) {
		score += ratingScoreAddress
	}

	category := matcher.Normalize(cand.Category)
	for _, term := range foodCategoryTerms {
		if strings.Contains(category, term) {
			score += ratingScoreCategory
			break
		}
	}
	return score
}
