package models

// ComparisonAnalysis names the winner per requested criterion. A nil field
// means that criterion was not requested, not that nobody won it.
type ComparisonAnalysis struct {
	BestHygiene    *string `json:"best_hygiene"`
	BestRating     *string `json:"best_rating"`
	BestValue      *string `json:"best_value"`
	Recommendation string  `json:"recommendation"`
}
