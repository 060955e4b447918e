package jobs

import (
	"context"
	"time"

	"snowchase/basecamp/internal/common"
	"snowchase/basecamp/internal/config"
	"snowchase/basecamp/internal/db/repositories"
	"snowchase/basecamp/internal/metrics"
	"snowchase/basecamp/internal/providers"
	"snowchase/basecamp/internal/services"
)

// JobSet holds every background job so the admin trigger endpoint can run
// them by name.
type JobSet struct {
	ReportSync     *ReportSyncJob
	ConditionsSync *ConditionsSyncJob
	ForecastSync   *ForecastSyncJob
	TelemetrySync  *TelemetrySyncJob
}

// InitializeJobs initializes all background jobs and starts their schedules
func InitializeJobs(
	ctx context.Context,
	cfg *config.Config,
	cache common.CacheInterface,
	resortRepo *repositories.ResortRepository,
	regionRepo *repositories.RegionRepository,
	forecastRepo *repositories.ForecastRepo,
	telemetryRepo *repositories.TelemetryRepo,
	syncHistoryRepo *repositories.SyncHistoryRepo,
	patchService *services.ReportPatchService,
	mergeService *services.ConditionsMergeService,
	metricsReg *metrics.MetricsRegistry,
) *JobSet {
	set := &JobSet{
		ReportSync: NewReportSyncJob(
			providers.NewScrapeFeedProvider(),
			patchService,
			mergeService,
			syncHistoryRepo,
			metricsReg,
			cfg.BatchSize,
			cfg.ItemDelay,
		),
		ConditionsSync: NewConditionsSyncJob(
			providers.NewConditionsAPIProvider(),
			mergeService,
			syncHistoryRepo,
			metricsReg,
			cfg.ItemDelay,
		),
		ForecastSync: NewForecastSyncJob(
			providers.NewForecastProvider(),
			resortRepo,
			forecastRepo,
			syncHistoryRepo,
			cache,
			metricsReg,
			cfg.BatchSize,
			cfg.ItemDelay,
		),
		TelemetrySync: NewTelemetrySyncJob(
			providers.NewTelemetryProvider(),
			resortRepo,
			regionRepo,
			telemetryRepo,
			syncHistoryRepo,
			metricsReg,
			cfg.ItemDelay,
		),
	}

	go set.ReportSync.RunScheduled(ctx, cfg.ReportSyncInterval)
	go set.ConditionsSync.RunScheduled(ctx, cfg.ReportSyncInterval)
	go set.ForecastSync.RunScheduled(ctx, cfg.ForecastSyncInterval)
	go set.TelemetrySync.RunScheduled(ctx, 6*time.Hour)

	return set
}

// syncedWithin reports whether a completed sync for the event is newer than
// the interval. Used to skip the immediate first run after a quick restart.
func syncedWithin(ctx context.Context, repo *repositories.SyncHistoryRepo, event string, interval time.Duration) bool {
	last, err := repo.GetLastSyncTime(ctx, event)
	if err != nil || last == nil {
		return false
	}
	return time.Since(*last) < interval
}

// Run triggers one job by name. Returns false for an unknown name.
func (s *JobSet) Run(ctx context.Context, name string) (bool, error) {
	switch name {
	case "report_sync":
		return true, s.ReportSync.Run(ctx)
	case "conditions_sync":
		return true, s.ConditionsSync.Run(ctx)
	case "forecast_sync":
		return true, s.ForecastSync.Run(ctx)
	case "telemetry_sync":
		return true, s.TelemetrySync.Run(ctx)
	default:
		return false, nil
	}
}
