// Package recommend ranks an area's restaurants with priority-weighted
// multi-criteria scoring and purpose-affinity boosting.
package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/restaurant-intel/app/config"
	"github.com/restaurant-intel/app/models"
	"github.com/restaurant-intel/app/responses"
	"github.com/restaurant-intel/internal/providers"
	"github.com/restaurant-intel/internal/resolver"
)

// Priority selects the weight profile used to combine sub-scores.
type Priority string

const (
	PriorityHygiene  Priority = "hygiene"
	PriorityRating   Priority = "rating"
	PriorityBalanced Priority = "balanced"
)

// Budget narrows candidates to one price tier.
type Budget string

const (
	BudgetAny    Budget = "any"
	BudgetLow    Budget = "low"
	BudgetMedium Budget = "medium"
	BudgetHigh   Budget = "high"
)

const (
	defaultLimit = 5
	maxLimit     = 10

	// CategoryAll disables category filtering.
	CategoryAll = "전체"
)

// Options parameterizes one recommendation request.
type Options struct {
	Area     string
	Purpose  string
	Category string
	Priority Priority
	Budget   Budget
	Limit    int
}

// normalized applies defaults and clamps Limit into [1, maxLimit].
func (o Options) normalized() Options {
	if _, known := weightProfiles[o.Priority]; !known {
		o.Priority = PriorityBalanced
	}
	if o.Budget == "" {
		o.Budget = BudgetAny
	}
	if o.Limit <= 0 {
		o.Limit = defaultLimit
	}
	if o.Limit > maxLimit {
		o.Limit = maxLimit
	}
	return o
}

// weights is one priority profile. penalty scales the violation deduction.
type weights struct {
	hygiene float64
	rating  float64
	reviews float64
	purpose float64
	penalty float64
}

var weightProfiles = map[Priority]weights{
	PriorityHygiene:  {hygiene: 0.50, rating: 0.20, reviews: 0.10, purpose: 0.20, penalty: 0.20},
	PriorityRating:   {hygiene: 0.20, rating: 0.50, reviews: 0.15, purpose: 0.15, penalty: 0.10},
	PriorityBalanced: {hygiene: 0.35, rating: 0.35, reviews: 0.10, purpose: 0.15, penalty: 0.15},
}

// Keyword lists backing the category filter.
var categoryKeywords = map[string][]string{
	"한식": {"한식", "국밥", "찌개", "한정식", "고기", "삼겹살", "갈비", "백반"},
	"중식": {"중식", "중국", "짬뽕", "짜장", "마라"},
	"일식": {"일식", "초밥", "스시", "라멘", "돈까스", "이자카야"},
	"양식": {"양식", "이탈리", "파스타", "피자", "스테이크", "버거", "브런치"},
	"카페": {"카페", "커피", "디저트", "베이커리", "브런치"},
}

// Ranker produces ranked recommendations for an area.
type Ranker struct {
	directory providers.DirectorySearch
	resolver  *resolver.Resolver
	cfg       *config.Config
	logger    *zap.Logger
}

// NewRanker builds a Ranker.
func NewRanker(directory providers.DirectorySearch, res *resolver.Resolver, cfg *config.Config, logger *zap.Logger) *Ranker {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{directory: directory, resolver: res, cfg: cfg, logger: logger}
}

// Recommend searches the area, filters by category and budget, resolves the
// survivors concurrently, scores them under the requested priority profile
// and returns the top entries, rank 1 first.
func (r *Ranker) Recommend(ctx context.Context, opts Options) (*responses.RecommendResult, error) {
	opts = opts.normalized()

	area, err := r.directory.SearchArea(ctx, opts.Area, opts.Category)
	if err != nil {
		return nil, fmt.Errorf("area search: %w", err)
	}

	switch area.Status {
	case providers.AreaStatusNotFound:
		return &responses.RecommendResult{
			Status:          responses.RecommendStatusNotFound,
			Recommendations: []models.RecommendedRestaurant{},
			Message:         fmt.Sprintf("'%s' 지역에서 음식점을 찾을 수 없습니다", opts.Area),
		}, nil
	case providers.AreaStatusTooMany:
		return &responses.RecommendResult{
			Status:          responses.RecommendStatusTooMany,
			Recommendations: []models.RecommendedRestaurant{},
			TotalCandidates: area.TotalCount,
			Suggestions:     area.Suggestions,
			Message:         fmt.Sprintf("'%s' 지역의 후보가 %d곳으로 너무 많습니다. 더 좁은 지역으로 검색해 주세요", opts.Area, area.TotalCount),
		}, nil
	}

	survivors := filterCandidates(area.Candidates, opts)
	if len(survivors) == 0 {
		return &responses.RecommendResult{
			Status:          responses.RecommendStatusNoResults,
			Recommendations: []models.RecommendedRestaurant{},
			TotalCandidates: len(area.Candidates),
			Message:         "조건에 맞는 음식점이 없습니다",
		}, nil
	}

	scored := r.scoreCandidates(ctx, survivors, opts)

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Scores.Total > scored[j].Scores.Total
	})
	if len(scored) > opts.Limit {
		scored = scored[:opts.Limit]
	}
	for i := range scored {
		scored[i].Rank = i + 1
	}

	return &responses.RecommendResult{
		Status:          responses.RecommendStatusOK,
		Recommendations: scored,
		TotalCandidates: len(area.Candidates),
		Message:         fmt.Sprintf("'%s' 지역 추천 %d곳입니다", opts.Area, len(scored)),
	}, nil
}

// filterCandidates applies the category and budget filters. A candidate
// with an unknown price tier always survives the budget filter.
func filterCandidates(candidates []providers.DirectoryPlace, opts Options) []providers.DirectoryPlace {
	var kept []providers.DirectoryPlace
	for _, cand := range candidates {
		if !categoryMatches(cand.Category, opts.Category) {
			continue
		}
		if !budgetMatches(cand.PriceRange, opts.Budget) {
			continue
		}
		kept = append(kept, cand)
	}
	return kept
}

func categoryMatches(candidateCategory, wanted string) bool {
	if wanted == "" || wanted == CategoryAll {
		return true
	}
	keywords, known := categoryKeywords[wanted]
	if !known {
		return true
	}
	for _, kw := range keywords {
		if strings.Contains(candidateCategory, kw) {
			return true
		}
	}
	return false
}

func budgetMatches(tier models.PriceRange, budget Budget) bool {
	if budget == BudgetAny {
		return true
	}
	if tier == models.PriceUnknown || tier == "" {
		return true
	}
	return string(tier) == string(budget)
}

// scoreCandidates resolves every survivor concurrently and scores each one.
// A failed resolution drops that candidate, never the request, and output
// order follows candidate order regardless of lookup finish order.
func (r *Ranker) scoreCandidates(ctx context.Context, survivors []providers.DirectoryPlace, opts Options) []models.RecommendedRestaurant {
	refs := make([]models.RestaurantRef, len(survivors))
	for i, cand := range survivors {
		refs[i] = models.RestaurantRef{Name: cand.Name, Region: opts.Area}
	}
	resolved := r.resolver.ResolveMany(ctx, refs)

	profile := weightProfiles[opts.Priority]
	scored := make([]models.RecommendedRestaurant, 0, len(survivors))
	for i, intel := range resolved {
		if intel == nil {
			r.logger.Debug("candidate dropped, resolution failed", zap.String("name", survivors[i].Name))
			continue
		}
		scored = append(scored, buildEntry(intel, opts, profile))
	}
	return scored
}

func buildEntry(intel *models.RestaurantIntelligence, opts Options, profile weights) models.RecommendedRestaurant {
	scores := scoreIntelligence(intel, opts.Purpose, profile)
	return models.RecommendedRestaurant{
		Name:        intel.Identity.Name,
		Address:     intel.Identity.Address,
		Category:    intel.Identity.Category,
		PriceRange:  intel.PriceRange,
		GradeLabel:  intel.Hygiene.GradeLabel,
		Rating:      intel.Rating.Combined,
		ReviewCount: intel.Rating.TotalReviews(),
		Scores:      scores,
		Highlights:  buildHighlights(intel),
	}
}

func scoreIntelligence(intel *models.RestaurantIntelligence, purpose string, profile weights) models.RecommendScores {
	hygiene := hygieneSubScore(intel.Hygiene.Grade)
	rating := ratingSubScore(intel.Rating.Combined)
	reviews := reviewsSubScore(intel.Rating.TotalReviews())
	purposeScore := purposeSubScore(purpose, intel.Identity.Category)
	penalty := violationPenalty(intel.Hygiene.ViolationCount)

	total := profile.hygiene*float64(hygiene) +
		profile.rating*float64(rating) +
		profile.reviews*float64(reviews) +
		profile.purpose*float64(purposeScore) -
		profile.penalty*float64(penalty)

	rounded := int(math.Round(total))
	if rounded < 0 {
		rounded = 0
	}
	return models.RecommendScores{
		Total:   rounded,
		Hygiene: hygiene,
		Rating:  rating,
		Reviews: reviews,
		Purpose: purposeScore,
		Penalty: penalty,
	}
}
