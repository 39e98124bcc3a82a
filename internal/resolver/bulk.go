package resolver

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/restaurant-intel/app/models"
)

// ResolveMany resolves a batch of restaurants. Within a batch resolutions
// fan out concurrently; batches are paced by a fixed delay to respect the
// providers' assumed rate limits. Results line up with refs by index, nil
// where a restaurant could not be resolved; a single failure never sinks
// the batch.
func (r *Resolver) ResolveMany(ctx context.Context, refs []models.RestaurantRef) []*models.RestaurantIntelligence {
	results := make([]*models.RestaurantIntelligence, len(refs))
	if len(refs) == 0 {
		return results
	}

	batchSize := r.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = len(refs)
	}
	limiter := rate.NewLimiter(rate.Every(r.cfg.BatchDelay), 1)

	for start := 0; start < len(refs); start += batchSize {
		if err := limiter.Wait(ctx); err != nil {
			r.logger.Warn("bulk resolution interrupted", zap.Error(err))
			return results
		}

		end := start + batchSize
		if end > len(refs) {
			end = len(refs)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				r.guard("bulk resolve", func() {
					intel, err := r.Resolve(ctx, refs[i].Name, refs[i].Region)
					if err != nil {
						r.logger.Warn("bulk resolution entry failed",
							zap.String("name", refs[i].Name),
							zap.String("region", refs[i].Region),
							zap.Error(err))
						return
					}
					results[i] = intel
				})
			}(i)
		}
		wg.Wait()
	}
	return results
}
