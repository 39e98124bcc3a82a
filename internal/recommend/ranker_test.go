package recommend

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restaurant-intel/app/config"
	"github.com/restaurant-intel/app/models"
	"github.com/restaurant-intel/app/responses"
	"github.com/restaurant-intel/internal/providers"
	"github.com/restaurant-intel/internal/resolver"
)

type fakeDirectory struct {
	area   *providers.AreaSearchResult
	places []providers.DirectoryPlace
}

func (d *fakeDirectory) SearchByText(_ context.Context, query, _ string) ([]providers.DirectoryPlace, error) {
	var hits []providers.DirectoryPlace
	for _, place := range d.places {
		if strings.Contains(query, place.Name) {
			hits = append(hits, place)
		}
	}
	return hits, nil
}

func (d *fakeDirectory) SearchArea(context.Context, string, string) (*providers.AreaSearchResult, error) {
	return d.area, nil
}

type fakeRegistry struct {
	exact map[string]*providers.GradeRecord
}

func (r *fakeRegistry) ByNameRegion(_ context.Context, name, region string) (*providers.GradeRecord, error) {
	return r.exact[name+"|"+region], nil
}

func (r *fakeRegistry) ByName(context.Context, string, int, int) ([]providers.GradeRecord, error) {
	return nil, nil
}

type noViolations struct{}

func (noViolations) ForRestaurant(context.Context, string, string, int) (*providers.ViolationHistory, error) {
	return &providers.ViolationHistory{}, nil
}

type noRatings struct{}

func (noRatings) Search(context.Context, string) ([]providers.RatingCandidate, error) {
	return nil, nil
}

func place(id, name, category string, tier models.PriceRange) providers.DirectoryPlace {
	return providers.DirectoryPlace{
		ID:         id,
		Name:       name,
		Address:    "서울특별시 강남구 역삼동 " + id,
		Category:   category,
		PriceRange: tier,
	}
}

func newTestRanker(dir *fakeDirectory, reg *fakeRegistry) *Ranker {
	cfg := config.Default()
	cfg.BatchDelay = time.Millisecond
	res := resolver.New(resolver.Deps{
		Directory:  dir,
		Registry:   reg,
		Violations: noViolations{},
		Ratings:    noRatings{},
		Config:     cfg,
	})
	return NewRanker(dir, res, cfg, nil)
}

func TestRecommend_HygienePriorityRanksByGrade(t *testing.T) {
	candidates := []providers.DirectoryPlace{
		place("1", "가게에이", "한식", models.PriceUnknown),
		place("2", "가게트리플", "한식", models.PriceUnknown),
		place("3", "가게더블", "한식", models.PriceUnknown),
	}
	dir := &fakeDirectory{
		area:   &providers.AreaSearchResult{Status: providers.AreaStatusReady, TotalCount: 3, Candidates: candidates},
		places: candidates,
	}
	reg := &fakeRegistry{exact: map[string]*providers.GradeRecord{
		"가게에이|역삼동":  {Name: "가게에이", Grade: models.GradeA},
		"가게트리플|역삼동": {Name: "가게트리플", Grade: models.GradeAAA},
		"가게더블|역삼동":  {Name: "가게더블", Grade: models.GradeAA},
	}}

	result, err := newTestRanker(dir, reg).Recommend(context.Background(), Options{
		Area:     "역삼동",
		Priority: PriorityHygiene,
	})
	require.NoError(t, err)
	require.Equal(t, responses.RecommendStatusOK, result.Status)
	require.Len(t, result.Recommendations, 3)

	assert.Equal(t, "가게트리플", result.Recommendations[0].Name)
	assert.Equal(t, "가게더블", result.Recommendations[1].Name)
	assert.Equal(t, "가게에이", result.Recommendations[2].Name)

	for i, rec := range result.Recommendations {
		assert.Equal(t, i+1, rec.Rank, "rank is 1-based and contiguous")
	}
	assert.Equal(t, 3, result.TotalCandidates)
}

func TestRecommend_LimitTruncation(t *testing.T) {
	candidates := []providers.DirectoryPlace{
		place("1", "가게일", "한식", models.PriceUnknown),
		place("2", "가게이", "한식", models.PriceUnknown),
		place("3", "가게삼", "한식", models.PriceUnknown),
	}
	dir := &fakeDirectory{
		area:   &providers.AreaSearchResult{Status: providers.AreaStatusReady, TotalCount: 3, Candidates: candidates},
		places: candidates,
	}
	reg := &fakeRegistry{exact: map[string]*providers.GradeRecord{}}

	result, err := newTestRanker(dir, reg).Recommend(context.Background(), Options{Area: "역삼동", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, result.Recommendations, 2)

	t.Run("limit above candidate count returns them all", func(t *testing.T) {
		result, err := newTestRanker(dir, reg).Recommend(context.Background(), Options{Area: "역삼동", Limit: 10})
		require.NoError(t, err)
		assert.Len(t, result.Recommendations, 3)
	})
}

func TestRecommend_ShortCircuitStatuses(t *testing.T) {
	t.Run("area not found", func(t *testing.T) {
		dir := &fakeDirectory{area: &providers.AreaSearchResult{Status: providers.AreaStatusNotFound}}
		result, err := newTestRanker(dir, &fakeRegistry{}).Recommend(context.Background(), Options{Area: "무인도"})
		require.NoError(t, err)
		assert.Equal(t, responses.RecommendStatusNotFound, result.Status)
		assert.Empty(t, result.Recommendations)
	})

	t.Run("too many candidates suggests narrower areas", func(t *testing.T) {
		dir := &fakeDirectory{area: &providers.AreaSearchResult{
			Status:      providers.AreaStatusTooMany,
			TotalCount:  180,
			Suggestions: []string{"역삼1동", "역삼2동"},
		}}
		result, err := newTestRanker(dir, &fakeRegistry{}).Recommend(context.Background(), Options{Area: "강남구"})
		require.NoError(t, err)
		assert.Equal(t, responses.RecommendStatusTooMany, result.Status)
		assert.Empty(t, result.Recommendations, "no scoring happens on too_many")
		assert.Equal(t, 180, result.TotalCandidates)
		assert.Equal(t, []string{"역삼1동", "역삼2동"}, result.Suggestions)
	})

	t.Run("filters removing everyone yields no_results", func(t *testing.T) {
		candidates := []providers.DirectoryPlace{place("1", "가게일", "한식 국밥", models.PriceUnknown)}
		dir := &fakeDirectory{
			area:   &providers.AreaSearchResult{Status: providers.AreaStatusReady, TotalCount: 1, Candidates: candidates},
			places: candidates,
		}
		result, err := newTestRanker(dir, &fakeRegistry{}).Recommend(context.Background(), Options{Area: "역삼동", Category: "카페"})
		require.NoError(t, err)
		assert.Equal(t, responses.RecommendStatusNoResults, result.Status)
	})
}

func TestFilterCandidates(t *testing.T) {
	candidates := []providers.DirectoryPlace{
		place("1", "국밥집", "한식 국밥", models.PriceLow),
		place("2", "스시야", "일식 초밥", models.PriceHigh),
		place("3", "어딘가", "한식 찌개", models.PriceUnknown),
	}

	t.Run("category keywords", func(t *testing.T) {
		kept := filterCandidates(candidates, Options{Category: "한식", Budget: BudgetAny}.normalized())
		require.Len(t, kept, 2)
		assert.Equal(t, "국밥집", kept[0].Name)
		assert.Equal(t, "어딘가", kept[1].Name)
	})

	t.Run("all category is a no-op", func(t *testing.T) {
		kept := filterCandidates(candidates, Options{Category: CategoryAll, Budget: BudgetAny}.normalized())
		assert.Len(t, kept, 3)
	})

	t.Run("budget keeps unknown tiers regardless", func(t *testing.T) {
		kept := filterCandidates(candidates, Options{Budget: BudgetLow}.normalized())
		require.Len(t, kept, 2)
		assert.Equal(t, "국밥집", kept[0].Name)
		assert.Equal(t, "어딘가", kept[1].Name, "unknown price tier always survives")

		kept = filterCandidates(candidates, Options{Budget: BudgetHigh}.normalized())
		require.Len(t, kept, 2)
		assert.Equal(t, "스시야", kept[0].Name)
		assert.Equal(t, "어딘가", kept[1].Name)
	})
}

func TestPurposeSubScore(t *testing.T) {
	testCases := []struct {
		name     string
		purpose  string
		category string
		want     int
	}{
		{"exact keyword hit", "회식", "음식점 > 고기 > 삼겹살", 100},
		{"single shared character", "혼밥", "밥집", 60},
		{"nothing shared", "혼밥", "피자", 30},
		{"omitted purpose is neutral", "", "한식", 50},
		{"unknown purpose is neutral", "등산모임", "한식", 50},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, purposeSubScore(tc.purpose, tc.category))
		})
	}
}

func TestReviewsSubScore(t *testing.T) {
	assert.Equal(t, 30, reviewsSubScore(0))
	assert.Equal(t, 100, reviewsSubScore(1000))
	assert.Equal(t, 100, reviewsSubScore(50000))
	assert.Equal(t, 55, reviewsSubScore(9))   // 30 + 25*log10(10)
	assert.Equal(t, 80, reviewsSubScore(100)) // 30 + 25*log10(101) = 80.1
}

func TestViolationPenalty(t *testing.T) {
	assert.Equal(t, 0, violationPenalty(0))
	assert.Equal(t, 50, violationPenalty(1))
	assert.Equal(t, 100, violationPenalty(2))
	assert.Equal(t, 100, violationPenalty(7), "penalty caps at 100")
}

func TestBuildHighlights(t *testing.T) {
	rating := 4.6
	intel := &models.RestaurantIntelligence{
		Identity:   models.RestaurantIdentity{Name: "국밥집", Category: "한식"},
		Hygiene:    models.NewHygieneInfo(models.GradeAAA, 0, nil),
		Rating:     models.RatingInfo{Combined: &rating, Platforms: []models.PlatformRating{{Platform: "naver", Score: &rating, ReviewCount: 250}}},
		PriceRange: models.PriceLow,
	}

	highlights := buildHighlights(intel)
	assert.Contains(t, highlights, "위생등급 매우우수")
	assert.Contains(t, highlights, "평점 4.6")
	assert.Contains(t, highlights, "행정처분 이력 없음")
	assert.Contains(t, highlights, "리뷰 250개")
	assert.Contains(t, highlights, "가성비 좋음")
}
