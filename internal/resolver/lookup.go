package resolver

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/restaurant-intel/app/models"
	"github.com/restaurant-intel/app/responses"
)

// Lookup is the single-restaurant flow: registry-first resolution where an
// ambiguous name-only search is surfaced to the caller with the candidate
// list instead of silently taking the first result.
func (r *Resolver) Lookup(ctx context.Context, name, region string) (*responses.LookupResult, error) {
	record, err := r.registry.ByNameRegion(ctx, name, region)
	if err != nil {
		r.logger.Warn("registry exact lookup failed", zap.String("name", name), zap.Error(err))
		record = nil
	}
	if record != nil {
		intel := r.buildSnapshot(ctx, name, region, registryCandidate(*record))
		return &responses.LookupResult{Status: responses.LookupStatusFound, Intelligence: intel}, nil
	}

	records, err := r.registry.ByName(ctx, name, 1, r.cfg.RegistryPageSize)
	if err != nil {
		r.logger.Warn("registry name search failed", zap.String("name", name), zap.Error(err))
		records = nil
	}

	switch len(records) {
	case 0:
		return &responses.LookupResult{
			Status:  responses.LookupStatusNotFound,
			Message: fmt.Sprintf("'%s'에 해당하는 음식점을 찾을 수 없습니다", name),
		}, nil
	case 1:
		intel := r.buildSnapshot(ctx, name, region, registryCandidate(records[0]))
		return &responses.LookupResult{Status: responses.LookupStatusFound, Intelligence: intel}, nil
	default:
		sorted := r.sortBySimilarity(records, name)
		candidates := make([]models.RestaurantIdentity, 0, len(sorted))
		for _, rec := range sorted {
			candidates = append(candidates, models.RestaurantIdentity{
				Name:     rec.Name,
				Address:  rec.Address,
				Category: rec.BusinessType,
			})
		}
		return &responses.LookupResult{
			Status:     responses.LookupStatusAmbiguous,
			Candidates: candidates,
			Message:    fmt.Sprintf("'%s'에 해당하는 음식점이 %d곳 있습니다. 지역을 함께 지정해 주세요", name, len(sorted)),
		}, nil
	}
}

// buildSnapshot enriches one chosen candidate, going through the snapshot
// cache when one is configured.
func (r *Resolver) buildSnapshot(ctx context.Context, name, region string, chosen *candidate) *models.RestaurantIntelligence {
	if r.cache == nil {
		return r.enrich(ctx, region, chosen)
	}
	intel, err := r.cache.FetchNullable(ctx, CacheKey(name, region), func(ctx context.Context) (*models.RestaurantIntelligence, error) {
		return r.enrich(ctx, region, chosen), nil
	})
	if err != nil {
		return r.enrich(ctx, region, chosen)
	}
	return intel
}
