package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"snowchase/basecamp/internal/constants"
	"snowchase/basecamp/internal/db/repositories"
	"snowchase/basecamp/internal/metrics"
	gormModels "snowchase/basecamp/internal/models/gorm"
	"snowchase/basecamp/internal/providers"
)

// TelemetrySyncJob pulls snowpack station readings per resort and avalanche
// bulletins per region. The telemetry gateway keys stations by resort slug
// and bulletins by the region's airport code.
type TelemetrySyncJob struct {
	telemetryAPI    *providers.TelemetryProvider
	resortRepo      *repositories.ResortRepository
	regionRepo      *repositories.RegionRepository
	telemetryRepo   *repositories.TelemetryRepo
	syncHistoryRepo *repositories.SyncHistoryRepo
	metricsReg      *metrics.MetricsRegistry

	itemDelay time.Duration
}

// NewTelemetrySyncJob creates a new telemetry sync job instance
func NewTelemetrySyncJob(
	telemetryAPI *providers.TelemetryProvider,
	resortRepo *repositories.ResortRepository,
	regionRepo *repositories.RegionRepository,
	telemetryRepo *repositories.TelemetryRepo,
	syncHistoryRepo *repositories.SyncHistoryRepo,
	metricsReg *metrics.MetricsRegistry,
	itemDelay time.Duration,
) *TelemetrySyncJob {
	return &TelemetrySyncJob{
		telemetryAPI:    telemetryAPI,
		resortRepo:      resortRepo,
		regionRepo:      regionRepo,
		telemetryRepo:   telemetryRepo,
		syncHistoryRepo: syncHistoryRepo,
		metricsReg:      metricsReg,
		itemDelay:       itemDelay,
	}
}

// Run executes one telemetry sweep: snowpack per resort, bulletin per region
func (j *TelemetrySyncJob) Run(ctx context.Context) error {
	start := time.Now()
	log.Printf("[TelemetrySyncJob] Starting telemetry sync at %s", start.Format(time.RFC3339))

	synced := 0
	errorCount := 0

	resorts, err := j.resortRepo.GetAll(ctx)
	if err != nil {
		log.Printf("[TelemetrySyncJob] Error fetching resorts: %v", err)
		return fmt.Errorf("failed to fetch resorts: %w", err)
	}

	for _, resort := range resorts {
		reading, err := j.telemetryAPI.FetchSnowpack(ctx, resort.ID, resort.Slug)
		if err != nil {
			log.Printf("[TelemetrySyncJob] Error fetching snowpack for resort %s: %v", resort.Slug, err)
			errorCount++
			if j.metricsReg != nil {
				j.metricsReg.SyncJobErrors.WithLabelValues("telemetry_sync").Inc()
			}
			// Continue with other resorts even if one fails
			continue
		}
		if reading == nil || reading.Snowpack == nil {
			errorCount++
			continue
		}

		row := &gormModels.SnowpackReading{
			ResortID:  resort.ID,
			StationID: reading.Snowpack.StationID,
			Date:      reading.Snowpack.Date,
			DepthIn:   reading.Snowpack.DepthIn,
			SweIn:     reading.Snowpack.SweIn,
		}
		if err := j.telemetryRepo.UpsertSnowpack(ctx, row); err != nil {
			log.Printf("[TelemetrySyncJob] Error upserting snowpack for resort %s: %v", resort.Slug, err)
			errorCount++
			continue
		}
		synced++

		if j.itemDelay > 0 {
			select {
			case <-time.After(j.itemDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	regions, err := j.regionRepo.GetAll(ctx)
	if err != nil {
		log.Printf("[TelemetrySyncJob] Error fetching regions: %v", err)
		return fmt.Errorf("failed to fetch regions: %w", err)
	}

	for _, region := range regions {
		reading, err := j.telemetryAPI.FetchAvalancheBulletin(ctx, region.ID, region.BestAirport)
		if err != nil {
			log.Printf("[TelemetrySyncJob] Error fetching bulletin for region %s: %v", region.Name, err)
			errorCount++
			if j.metricsReg != nil {
				j.metricsReg.SyncJobErrors.WithLabelValues("telemetry_sync").Inc()
			}
			continue
		}
		if reading == nil || reading.Avalanche == nil {
			errorCount++
			continue
		}

		row := &gormModels.AvalancheBulletin{
			RegionID:    region.ID,
			Date:        reading.Avalanche.Date,
			DangerLevel: reading.Avalanche.DangerLevel,
			Summary:     reading.Avalanche.Summary,
		}
		if err := j.telemetryRepo.UpsertAvalanche(ctx, row); err != nil {
			log.Printf("[TelemetrySyncJob] Error upserting bulletin for region %s: %v", region.Name, err)
			errorCount++
			continue
		}
		synced++
	}

	if j.metricsReg != nil {
		j.metricsReg.SyncJobDuration.WithLabelValues("telemetry_sync").Observe(time.Since(start).Seconds())
	}

	if err := j.syncHistoryRepo.RecordSync(ctx, constants.SyncEventTelemetry); err != nil {
		log.Printf("[TelemetrySyncJob] Warning - failed to record sync history: %v", err)
	}

	log.Printf("[TelemetrySyncJob] Completed telemetry sync in %s. Synced: %d, Errors: %d",
		time.Since(start).Truncate(time.Millisecond), synced, errorCount)

	return nil
}

// RunScheduled runs the telemetry sync job on a schedule
func (j *TelemetrySyncJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if syncedWithin(ctx, j.syncHistoryRepo, constants.SyncEventTelemetry, interval) {
		log.Printf("[TelemetrySyncJob] Skipping initial run, last sync newer than %s", interval)
	} else if err := j.Run(ctx); err != nil {
		log.Printf("[TelemetrySyncJob] Error in initial run: %v", err)
	}

	for {
		select {
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				log.Printf("[TelemetrySyncJob] Error in scheduled run: %v", err)
			}
		case <-ctx.Done():
			log.Printf("[TelemetrySyncJob] Shutting down scheduled sync")
			return
		}
	}
}
