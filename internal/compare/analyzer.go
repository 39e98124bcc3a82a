// Package compare resolves a small group of named restaurants and decides
// which is best per requested criterion, with deterministic tie-breaks.
package compare

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/restaurant-intel/app/models"
	"github.com/restaurant-intel/app/responses"
	"github.com/restaurant-intel/internal/resolver"
)

// Criterion is one comparable dimension.
type Criterion string

const (
	CriterionHygiene Criterion = "hygiene"
	CriterionRating  Criterion = "rating"
	CriterionPrice   Criterion = "price"
	CriterionReviews Criterion = "reviews"
)

const (
	minRestaurants = 2
	maxRestaurants = 5
	minCriteria    = 1
	maxCriteria    = 4
)

// ValidationError is a fatal, pre-lookup request problem with a
// human-readable reason.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Price tier weights dividing the overall score for best-value ranking.
var priceWeights = map[models.PriceRange]float64{
	models.PriceLow:     1.0,
	models.PriceMedium:  1.5,
	models.PriceHigh:    2.0,
	models.PriceUnknown: 1.5,
}

// Analyzer compares restaurants after resolving each one.
type Analyzer struct {
	resolver *resolver.Resolver
	logger   *zap.Logger
}

// NewAnalyzer builds an Analyzer.
func NewAnalyzer(res *resolver.Resolver, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{resolver: res, logger: logger}
}

// Compare validates the request, resolves every restaurant concurrently and
// analyzes the requested criteria. A restaurant that fails to resolve is
// reported as not-found rather than failing the comparison; fewer than two
// resolved restaurants yields a partial result with no comparison.
func (a *Analyzer) Compare(ctx context.Context, refs []models.RestaurantRef, criteria []Criterion) (*responses.CompareResult, error) {
	if err := validate(refs, criteria); err != nil {
		return nil, err
	}

	resolved := a.resolver.ResolveMany(ctx, refs)

	var found []string
	var notFound []string
	var views []comparisonView
	for i, intel := range resolved {
		if intel == nil {
			notFound = append(notFound, refs[i].Name)
			continue
		}
		found = append(found, refs[i].Name)
		views = append(views, newView(refs[i].Name, intel))
	}

	if len(views) < minRestaurants {
		return &responses.CompareResult{
			Status:   responses.CompareStatusPartial,
			Found:    found,
			NotFound: notFound,
			Message:  partialMessage(found, notFound),
		}, nil
	}

	analysis := analyze(views, criteria)

	status := responses.CompareStatusComplete
	if len(notFound) > 0 {
		status = responses.CompareStatusPartial
	}
	return &responses.CompareResult{
		Status:     status,
		Found:      found,
		NotFound:   notFound,
		Comparison: analysis,
	}, nil
}

func validate(refs []models.RestaurantRef, criteria []Criterion) error {
	if len(refs) < minRestaurants || len(refs) > maxRestaurants {
		return &ValidationError{Reason: fmt.Sprintf("비교할 음식점은 %d~%d곳이어야 합니다", minRestaurants, maxRestaurants)}
	}
	for _, ref := range refs {
		if strings.TrimSpace(ref.Name) == "" || strings.TrimSpace(ref.Region) == "" {
			return &ValidationError{Reason: "음식점 이름과 지역은 비워 둘 수 없습니다"}
		}
	}
	if len(criteria) < minCriteria || len(criteria) > maxCriteria {
		return &ValidationError{Reason: fmt.Sprintf("비교 기준은 %d~%d개여야 합니다", minCriteria, maxCriteria)}
	}
	for _, c := range criteria {
		switch c {
		case CriterionHygiene, CriterionRating, CriterionPrice, CriterionReviews:
		default:
			return &ValidationError{Reason: fmt.Sprintf("알 수 없는 비교 기준입니다: %s", c)}
		}
	}
	return nil
}

func partialMessage(found, notFound []string) string {
	if len(found) == 0 {
		return fmt.Sprintf("요청한 음식점을 모두 찾을 수 없습니다: %s", strings.Join(notFound, ", "))
	}
	return fmt.Sprintf("'%s'만 찾았습니다. 비교에는 2곳 이상이 필요합니다 (못 찾은 곳: %s)",
		strings.Join(found, "', '"), strings.Join(notFound, ", "))
}

// comparisonView is the flattened per-restaurant data the criteria run on.
type comparisonView struct {
	name         string
	hygieneScore int
	gradeRank    int
	rating       float64 // 0 when absent
	reviews      int
	overall      int
	valueScore   float64
}

func newView(name string, intel *models.RestaurantIntelligence) comparisonView {
	rating := 0.0
	if intel.Rating.Combined != nil {
		rating = *intel.Rating.Combined
	}
	weight, ok := priceWeights[intel.PriceRange]
	if !ok {
		weight = priceWeights[models.PriceUnknown]
	}
	return comparisonView{
		name:         name,
		hygieneScore: intel.Scores.Hygiene,
		gradeRank:    intel.Hygiene.Grade.Rank(),
		rating:       rating,
		reviews:      intel.Rating.TotalReviews(),
		overall:      intel.Scores.Overall,
		valueScore:   float64(intel.Scores.Overall) / weight,
	}
}

func requested(criteria []Criterion, want Criterion) bool {
	for _, c := range criteria {
		if c == want {
			return true
		}
	}
	return false
}

func analyze(views []comparisonView, criteria []Criterion) *models.ComparisonAnalysis {
	analysis := &models.ComparisonAnalysis{}

	if requested(criteria, CriterionHygiene) {
		name := bestHygiene(views)
		analysis.BestHygiene = &name
	}
	if requested(criteria, CriterionRating) {
		name := bestRating(views)
		analysis.BestRating = &name
	}
	if requested(criteria, CriterionPrice) {
		name := bestValue(views)
		analysis.BestValue = &name
	}

	analysis.Recommendation = buildRecommendation(views, analysis)
	return analysis
}

// bestHygiene: highest hygiene score, ties broken by grade rank, then by
// listing order.
func bestHygiene(views []comparisonView) string {
	best := 0
	for i := 1; i < len(views); i++ {
		if views[i].hygieneScore > views[best].hygieneScore ||
			(views[i].hygieneScore == views[best].hygieneScore && views[i].gradeRank > views[best].gradeRank) {
			best = i
		}
	}
	return views[best].name
}

// bestRating: highest combined rating (absent counts as 0), ties broken by
// total review count, then by listing order.
func bestRating(views []comparisonView) string {
	best := 0
	for i := 1; i < len(views); i++ {
		if views[i].rating > views[best].rating ||
			(views[i].rating == views[best].rating && views[i].reviews > views[best].reviews) {
			best = i
		}
	}
	return views[best].name
}

// bestValue: highest overall-score-per-price-weight; the first maximum
// wins, there is no further tie-break.
func bestValue(views []comparisonView) string {
	best := 0
	for i := 1; i < len(views); i++ {
		if views[i].valueScore > views[best].valueScore {
			best = i
		}
	}
	return views[best].name
}

// overallWinner: highest overall score, first maximum wins.
func overallWinner(views []comparisonView) string {
	best := 0
	for i := 1; i < len(views); i++ {
		if views[i].overall > views[best].overall {
			best = i
		}
	}
	return views[best].name
}

// buildRecommendation renders the analysis as one sentence. When a single
// restaurant sweeps hygiene, rating and the overall score it gets one
// combined sentence; otherwise one clause per distinct winner plus a
// closing clause naming the overall winner.
func buildRecommendation(views []comparisonView, analysis *models.ComparisonAnalysis) string {
	overall := overallWinner(views)

	if analysis.BestHygiene != nil && analysis.BestRating != nil &&
		*analysis.BestHygiene == *analysis.BestRating && *analysis.BestHygiene == overall {
		return fmt.Sprintf("'%s'이(가) 위생과 평점 모두 가장 우수하여 추천드립니다.", overall)
	}

	var clauses []string
	seen := map[string]bool{}
	if analysis.BestHygiene != nil && !seen[*analysis.BestHygiene] {
		seen[*analysis.BestHygiene] = true
		clauses = append(clauses, fmt.Sprintf("위생은 '%s'이(가) 가장 우수합니다", *analysis.BestHygiene))
	}
	if analysis.BestRating != nil && !seen[*analysis.BestRating] {
		seen[*analysis.BestRating] = true
		clauses = append(clauses, fmt.Sprintf("평점은 '%s'이(가) 가장 높습니다", *analysis.BestRating))
	}
	if analysis.BestValue != nil && !seen[*analysis.BestValue] {
		seen[*analysis.BestValue] = true
		clauses = append(clauses, fmt.Sprintf("가성비는 '%s'이(가) 가장 좋습니다", *analysis.BestValue))
	}
	clauses = append(clauses, fmt.Sprintf("종합적으로는 '%s'을(를) 추천드립니다", overall))

	return strings.Join(clauses, ". ") + "."
}
