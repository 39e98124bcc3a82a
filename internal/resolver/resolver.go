// Package resolver turns a (name, region) query into one authoritative
// RestaurantIntelligence record by combining the business directory, the
// hygiene registry, the violation registry and the consumer ratings
// platform, with fallback and disambiguation between them.
package resolver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/restaurant-intel/app/config"
	"github.com/restaurant-intel/app/models"
	"github.com/restaurant-intel/internal/matcher"
	"github.com/restaurant-intel/internal/providers"
	"github.com/restaurant-intel/internal/scoring"
)

// SnapshotCache caches whole resolution outcomes, negative ones included.
// *services.CachedFetcher satisfies this.
type SnapshotCache interface {
	FetchNullable(ctx context.Context, key string, compute func(ctx context.Context) (*models.RestaurantIntelligence, error)) (*models.RestaurantIntelligence, error)
}

// Deps wires a Resolver. Cache may be nil; Logger may be nil.
type Deps struct {
	Directory  providers.DirectorySearch
	Registry   providers.RegistrySearch
	Violations providers.ViolationRegistry
	Ratings    providers.RatingsProvider
	Cache      SnapshotCache
	Config     *config.Config
	Logger     *zap.Logger
}

// Resolver resolves restaurant identity across providers.
type Resolver struct {
	directory  providers.DirectorySearch
	registry   providers.RegistrySearch
	violations providers.ViolationRegistry
	ratings    providers.RatingsProvider
	cache      SnapshotCache
	cfg        *config.Config
	logger     *zap.Logger
}

// New builds a Resolver from its dependencies.
func New(deps Deps) *Resolver {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		directory:  deps.Directory,
		registry:   deps.Registry,
		violations: deps.Violations,
		ratings:    deps.Ratings,
		cache:      deps.Cache,
		cfg:        cfg,
		logger:     logger,
	}
}

// guard runs one provider lookup, downgrading a panic in the provider
// implementation to a logged failure. Lookup goroutines outlive the facade's
// recover, so they need their own.
func (r *Resolver) guard(lookup string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("provider panic recovered",
				zap.String("lookup", lookup), zap.Any("panic", rec))
		}
	}()
	fn()
}

// CacheKey fingerprints a (name, region) query for snapshot caching.
func CacheKey(name, region string) string {
	sum := sha256.Sum256([]byte(matcher.Normalize(name) + "|" + matcher.Normalize(region)))
	return hex.EncodeToString(sum[:])
}

// Resolve returns the intelligence snapshot for one restaurant, or nil when
// no provider knows it. Outcomes, including negative ones, are cached whole
// under the (name, region) fingerprint; a cache hit returns the stored
// snapshot verbatim.
func (r *Resolver) Resolve(ctx context.Context, name, region string) (*models.RestaurantIntelligence, error) {
	if r.cache == nil {
		return r.resolve(ctx, name, region)
	}
	return r.cache.FetchNullable(ctx, CacheKey(name, region), func(ctx context.Context) (*models.RestaurantIntelligence, error) {
		return r.resolve(ctx, name, region)
	})
}

// candidate is one chosen identity awaiting secondary lookups. grade is
// pre-filled when the identity came from the hygiene registry itself.
type candidate struct {
	identity models.RestaurantIdentity
	price    models.PriceRange
	hours    string
	grade    *providers.GradeRecord
}

// strategy tries one source for a candidate identity. (nil, nil, nil) means
// this source knows nothing; the pipeline moves on. The middle return is
// the ambiguous candidate list, populated only by the name-only fallback.
type strategy func(ctx context.Context, name, region string) (*candidate, []providers.GradeRecord, error)

func (r *Resolver) strategies() []strategy {
	return []strategy{r.fromDirectory, r.fromRegistryExact, r.fromRegistryByName}
}

func (r *Resolver) resolve(ctx context.Context, name, region string) (*models.RestaurantIntelligence, error) {
	for _, try := range r.strategies() {
		chosen, _, err := try(ctx, name, region)
		if err != nil {
			return nil, err
		}
		if chosen != nil {
			return r.enrich(ctx, region, chosen), nil
		}
	}
	return nil, nil
}

// fromDirectory queries the business directory with name+region free text
// against both category partitions concurrently, dedupes by provider id and
// caps the result count. Partition failures degrade to empty partitions.
func (r *Resolver) fromDirectory(ctx context.Context, name, region string) (*candidate, []providers.GradeRecord, error) {
	if r.directory == nil {
		return nil, nil, nil
	}

	query := fmt.Sprintf("%s %s", region, name)
	partitions := []string{providers.CategoryRestaurant, providers.CategoryCafe}
	results := make([][]providers.DirectoryPlace, len(partitions))

	var wg sync.WaitGroup
	for i, partition := range partitions {
		wg.Add(1)
		go func(i int, partition string) {
			defer wg.Done()
			r.guard("directory partition", func() {
				places, err := r.directory.SearchByText(ctx, query, partition)
				if err != nil {
					r.logger.Warn("directory partition search failed",
						zap.String("partition", partition), zap.Error(err))
					return
				}
				results[i] = places
			})
		}(i, partition)
	}
	wg.Wait()

	seen := make(map[string]bool)
	var places []providers.DirectoryPlace
	for _, partition := range results {
		for _, place := range partition {
			if seen[place.ID] {
				continue
			}
			seen[place.ID] = true
			places = append(places, place)
			if len(places) >= r.cfg.DirectoryResultCap {
				break
			}
		}
		if len(places) >= r.cfg.DirectoryResultCap {
			break
		}
	}
	if len(places) == 0 {
		return nil, nil, nil
	}

	return r.pickPlace(places, name, region), nil, nil
}

// pickPlace prefers a place matching both name and region, then one
// matching the name, then the directory's own top result.
func (r *Resolver) pickPlace(places []providers.DirectoryPlace, name, region string) *candidate {
	best := -1
	for i, place := range places {
		nameOK := matcher.MatchName(place.Name, name)
		if nameOK && matcher.MatchAddress(place.Address, region) {
			best = i
			break
		}
		if nameOK && best < 0 {
			best = i
		}
	}
	if best < 0 {
		best = 0
	}

	place := places[best]
	return &candidate{
		identity: models.RestaurantIdentity{
			Name:        place.Name,
			Address:     place.Address,
			RoadAddress: place.RoadAddress,
			Category:    place.Category,
			Phone:       place.Phone,
			ExternalRef: place.ID,
		},
		price: place.PriceRange,
		hours: place.BusinessHours,
	}
}

// fromRegistryExact asks the hygiene registry for an exact (name, region)
// record.
func (r *Resolver) fromRegistryExact(ctx context.Context, name, region string) (*candidate, []providers.GradeRecord, error) {
	record, err := r.registry.ByNameRegion(ctx, name, region)
	if err != nil {
		r.logger.Warn("registry exact lookup failed", zap.String("name", name), zap.Error(err))
		return nil, nil, nil
	}
	if record == nil {
		return nil, nil, nil
	}
	return registryCandidate(*record), nil, nil
}

// fromRegistryByName is the last resort: a name-only registry search,
// disambiguated by count. Several matches are resolved to the registry's
// first result here; callers wanting the ambiguity surfaced use Lookup.
func (r *Resolver) fromRegistryByName(ctx context.Context, name, _ string) (*candidate, []providers.GradeRecord, error) {
	records, err := r.registry.ByName(ctx, name, 1, r.cfg.RegistryPageSize)
	if err != nil {
		r.logger.Warn("registry name search failed", zap.String("name", name), zap.Error(err))
		return nil, nil, nil
	}
	if len(records) == 0 {
		return nil, nil, nil
	}
	if len(records) == 1 {
		return registryCandidate(records[0]), nil, nil
	}
	return registryCandidate(records[0]), records, nil
}

func registryCandidate(record providers.GradeRecord) *candidate {
	rec := record
	return &candidate{
		identity: models.RestaurantIdentity{
			Name:     record.Name,
			Address:  record.Address,
			Category: record.BusinessType,
		},
		price: models.PriceUnknown,
		grade: &rec,
	}
}

// enrich runs the three secondary lookups concurrently and merges everything
// into one scored snapshot. Each lookup degrades to an explicit "no data"
// default on failure; none of them can sink the resolution.
func (r *Resolver) enrich(ctx context.Context, region string, chosen *candidate) *models.RestaurantIntelligence {
	var (
		wg      sync.WaitGroup
		grade   = models.GradeNone
		history *providers.ViolationHistory
		rating  *providers.RatingCandidate
	)
	if chosen.grade != nil {
		grade = chosen.grade.Grade
	}

	if chosen.grade == nil && r.registry != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.guard("hygiene grade", func() {
				record, err := r.registry.ByNameRegion(ctx, chosen.identity.Name, region)
				if err != nil {
					r.logger.Warn("hygiene grade lookup failed",
						zap.String("name", chosen.identity.Name), zap.Error(err))
					return
				}
				if record != nil {
					grade = record.Grade
				}
			})
		}()
	}

	if r.violations != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.guard("violation history", func() {
				h, err := r.violations.ForRestaurant(ctx, chosen.identity.Name, region, r.cfg.ViolationHistoryLimit)
				if err != nil {
					r.logger.Warn("violation history lookup failed",
						zap.String("name", chosen.identity.Name), zap.Error(err))
					return
				}
				history = h
			})
		}()
	}

	if r.ratings != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.guard("consumer rating", func() {
				candidates, err := r.ratings.Search(ctx, chosen.identity.Name)
				if err != nil {
					r.logger.Warn("ratings lookup failed",
						zap.String("name", chosen.identity.Name), zap.Error(err))
					return
				}
				rating = bestRatingMatch(candidates, chosen.identity.Name, chosen.identity.Address)
			})
		}()
	}
	wg.Wait()

	violationCount := 0
	var recent []models.Violation
	if history != nil {
		violationCount = history.TotalCount
		recent = history.Recent
	}
	hygiene := models.NewHygieneInfo(grade, violationCount, recent)

	var ratingInfo models.RatingInfo
	if rating != nil {
		ratingInfo.Platforms = []models.PlatformRating{{
			Platform:    rating.Platform,
			Score:       rating.Score,
			ReviewCount: rating.ReviewCount,
		}}
	}
	ratingInfo.Combined = scoring.CombinedRating(ratingInfo.Platforms)

	return &models.RestaurantIntelligence{
		Identity:      chosen.identity,
		Hygiene:       hygiene,
		Rating:        ratingInfo,
		PriceRange:    chosen.price,
		BusinessHours: chosen.hours,
		Scores:        scoring.Compute(hygiene, ratingInfo),
		ResolvedAt:    time.Now(),
	}
}

// sortBySimilarity orders registry records most-similar-first relative to
// the searched name, for candidate lists surfaced to the caller.
func (r *Resolver) sortBySimilarity(records []providers.GradeRecord, name string) []providers.GradeRecord {
	sorted := make([]providers.GradeRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return matcher.SimilarityWeighted(sorted[i].Name, name, r.cfg.JWWeight, r.cfg.LevWeight) >
			matcher.SimilarityWeighted(sorted[j].Name, name, r.cfg.JWWeight, r.cfg.LevWeight)
	})
	return sorted
}
