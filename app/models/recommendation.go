package models

// RecommendScores breaks a recommendation total down into its weighted
// sub-scores. Penalty is the violation deduction already applied to Total.
type RecommendScores struct {
	Total   int `json:"total"`
	Hygiene int `json:"hygiene"`
	Rating  int `json:"rating"`
	Reviews int `json:"reviews"`
	Purpose int `json:"purpose"`
	Penalty int `json:"penalty"`
}

// RecommendedRestaurant is one ranked entry of a recommendation response.
// Rank is 1-based and contiguous after sorting. Highlights are informational
// strings for display; they play no part in scoring.
type RecommendedRestaurant struct {
	Rank        int             `json:"rank"`
	Name        string          `json:"name"`
	Address     string          `json:"address"`
	Category    string          `json:"category"`
	PriceRange  PriceRange      `json:"price_range"`
	GradeLabel  string          `json:"grade_label"`
	Rating      *float64        `json:"rating,omitempty"`
	ReviewCount int             `json:"review_count"`
	Scores      RecommendScores `json:"scores"`
	Highlights  []string        `json:"highlights"`
}
