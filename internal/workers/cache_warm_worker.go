package workers

import (
	"context"
	"log"
	"time"

	"snowchase/basecamp/internal/constants"
	"snowchase/basecamp/internal/services"
)

// StartCacheWarmer periodically pre-computes the ranked-regions view and the
// chase alert feed so the first reader after an expiry never pays the full
// scoring cost.
func StartCacheWarmer(ctx context.Context, regionSvc *services.RegionService, alertSvc *services.ChaseAlertService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	warmTask(ctx, regionSvc, alertSvc)

	for {
		select {
		case <-ticker.C:
			warmTask(ctx, regionSvc, alertSvc)
		case <-ctx.Done():
			log.Printf("[CacheWarmer] Shutting down")
			return
		}
	}
}

func warmTask(ctx context.Context, regionSvc *services.RegionService, alertSvc *services.ChaseAlertService) {
	// The passless ranking is the most common read; pass-specific variants
	// warm on demand.
	if _, err := regionSvc.RankedRegions(ctx, "", constants.ForecastWindowDays); err != nil {
		log.Printf("[CacheWarmer] Error warming rankings: %v", err)
	}

	if _, err := alertSvc.ListAlerts(ctx, constants.ForecastWindowDays); err != nil {
		log.Printf("[CacheWarmer] Error warming chase alerts: %v", err)
	}
}
