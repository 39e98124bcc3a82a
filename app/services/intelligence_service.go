package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/restaurant-intel/app/config"
	"github.com/restaurant-intel/app/models"
	"github.com/restaurant-intel/app/requests"
	"github.com/restaurant-intel/app/responses"
	"github.com/restaurant-intel/internal/compare"
	"github.com/restaurant-intel/internal/providers"
	"github.com/restaurant-intel/internal/recommend"
	"github.com/restaurant-intel/internal/resolver"
)

// IntelligenceService is the facade over resolution, recommendation and
// comparison. It owns the outermost error boundary: a panic anywhere below
// is recovered and reported as a generic error, never crashing the caller.
type IntelligenceService struct {
	resolver *resolver.Resolver
	ranker   *recommend.Ranker
	analyzer *compare.Analyzer
	cache    Cache
	logger   *zap.Logger
}

// NewIntelligenceService wires the facade. cache may be nil to disable
// caching entirely.
func NewIntelligenceService(
	directory providers.DirectorySearch,
	registry providers.RegistrySearch,
	violations providers.ViolationRegistry,
	ratings providers.RatingsProvider,
	cache Cache,
	cfg *config.Config,
	logger *zap.Logger,
) *IntelligenceService {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var snapshots resolver.SnapshotCache
	if cache != nil {
		snapshots = NewCachedFetcher(cache, cfg.CacheDisabled, logger)
	}

	res := resolver.New(resolver.Deps{
		Directory:  directory,
		Registry:   registry,
		Violations: violations,
		Ratings:    ratings,
		Cache:      snapshots,
		Config:     cfg,
		Logger:     logger,
	})

	return &IntelligenceService{
		resolver: res,
		ranker:   recommend.NewRanker(directory, res, cfg, logger),
		analyzer: compare.NewAnalyzer(res, logger),
		cache:    cache,
		logger:   logger,
	}
}

// GetIntelligence resolves one restaurant's aggregate record. Returns
// (nil, nil) when no provider knows the restaurant.
func (s *IntelligenceService) GetIntelligence(ctx context.Context, name, region string) (intel *models.RestaurantIntelligence, err error) {
	defer s.recoverTo(&err)
	return s.resolver.Resolve(ctx, name, region)
}

// FindRestaurant is the single-restaurant lookup: ambiguous registry
// matches are surfaced with their candidate list instead of auto-resolved.
func (s *IntelligenceService) FindRestaurant(ctx context.Context, req requests.LookupRequest) (result *responses.LookupResult, err error) {
	defer s.recoverTo(&err)
	return s.resolver.Lookup(ctx, req.Name, req.Region)
}

// Recommend ranks an area's restaurants under the requested priority
// profile, purpose and budget.
func (s *IntelligenceService) Recommend(ctx context.Context, req requests.RecommendRequest) (result *responses.RecommendResult, err error) {
	defer s.recoverTo(&err)
	return s.ranker.Recommend(ctx, recommend.Options{
		Area:     req.Area,
		Purpose:  req.Purpose,
		Category: req.Category,
		Priority: recommend.Priority(req.Priority),
		Budget:   recommend.Budget(req.Budget),
		Limit:    req.Limit,
	})
}

// Compare analyzes 2-5 restaurants against the requested criteria.
// Validation problems come back as *compare.ValidationError.
func (s *IntelligenceService) Compare(ctx context.Context, req requests.CompareRequest) (result *responses.CompareResult, err error) {
	defer s.recoverTo(&err)
	criteria := make([]compare.Criterion, 0, len(req.Criteria))
	for _, c := range req.Criteria {
		criteria = append(criteria, compare.Criterion(c))
	}
	return s.analyzer.Compare(ctx, req.Restaurants, criteria)
}

// CacheStats reports the configured backend's counters; zero stats when
// caching is disabled.
func (s *IntelligenceService) CacheStats(ctx context.Context) (*CacheStats, error) {
	if s.cache == nil {
		return &CacheStats{}, nil
	}
	return s.cache.Stats(ctx)
}

// recoverTo converts a panic below the facade into a generic error.
func (s *IntelligenceService) recoverTo(err *error) {
	if r := recover(); r != nil {
		s.logger.Error("recovered from panic", zap.Any("panic", r))
		*err = fmt.Errorf("internal error: %v", r)
	}
}
