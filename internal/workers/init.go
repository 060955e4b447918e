package workers

import (
	"context"
	"time"

	"snowchase/basecamp/internal/common"
	"snowchase/basecamp/internal/providers"
	"snowchase/basecamp/internal/services"
)

type WorkersContainer struct {
	Narrative *NarrativeWorker
}

// InitWorkers starts the background workers. The narrative worker only runs
// when a Redis queue is configured; the cache warmer always runs.
func InitWorkers(
	ctx context.Context,
	cache common.CacheInterface,
	redQ *common.RedisQueueService,
	regionSvc *services.RegionService,
	alertSvc *services.ChaseAlertService,
) *WorkersContainer {
	container := &WorkersContainer{}

	if redQ != nil {
		container.Narrative = NewNarrativeWorker("narrative", redQ, providers.NewNarrativeProvider(), cache)
		go container.Narrative.Start(ctx, 2)
	}

	go StartCacheWarmer(ctx, regionSvc, alertSvc, 30*time.Minute)

	return container
}
