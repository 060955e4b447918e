package jobs

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"snowchase/basecamp/internal/common"
	"snowchase/basecamp/internal/constants"
	"snowchase/basecamp/internal/db/repositories"
	"snowchase/basecamp/internal/metrics"
	"snowchase/basecamp/internal/models/dtos"
	"snowchase/basecamp/internal/models/entities"
	gormModels "snowchase/basecamp/internal/models/gorm"
	"snowchase/basecamp/internal/providers"
	"snowchase/basecamp/internal/services"
)

// ForecastSyncJob fetches point forecasts for every resort, validates each
// record, and upserts the survivors. A bad record drops alone; the rest of
// its batch still persists. Derived caches are invalidated at the end of the
// sweep so rankings and alerts rebuild from fresh data.
type ForecastSyncJob struct {
	forecastAPI     *providers.ForecastProvider
	resortRepo      *repositories.ResortRepository
	forecastRepo    *repositories.ForecastRepo
	syncHistoryRepo *repositories.SyncHistoryRepo
	cache           common.CacheInterface
	metricsReg      *metrics.MetricsRegistry

	batchSize int
	itemDelay time.Duration
}

// NewForecastSyncJob creates a new forecast sync job instance
func NewForecastSyncJob(
	forecastAPI *providers.ForecastProvider,
	resortRepo *repositories.ResortRepository,
	forecastRepo *repositories.ForecastRepo,
	syncHistoryRepo *repositories.SyncHistoryRepo,
	cache common.CacheInterface,
	metricsReg *metrics.MetricsRegistry,
	batchSize int,
	itemDelay time.Duration,
) *ForecastSyncJob {
	return &ForecastSyncJob{
		forecastAPI:     forecastAPI,
		resortRepo:      resortRepo,
		forecastRepo:    forecastRepo,
		syncHistoryRepo: syncHistoryRepo,
		cache:           cache,
		metricsReg:      metricsReg,
		batchSize:       batchSize,
		itemDelay:       itemDelay,
	}
}

// Run executes one forecast sweep across all resorts
func (j *ForecastSyncJob) Run(ctx context.Context) error {
	start := time.Now()
	log.Printf("[ForecastSyncJob] Starting forecast sync at %s", start.Format(time.RFC3339))

	resorts, err := j.resortRepo.GetAll(ctx)
	if err != nil {
		log.Printf("[ForecastSyncJob] Error fetching resorts: %v", err)
		return fmt.Errorf("failed to fetch resorts: %w", err)
	}

	if len(resorts) == 0 {
		log.Printf("[ForecastSyncJob] No resorts to sync")
		return nil
	}

	persisted := 0
	rejectedTotal := 0
	errorCount := 0

	for i, resort := range resorts {
		p, r, err := j.syncResort(ctx, resort.ID, resort.Lat, resort.Lng)
		if err != nil {
			log.Printf("[ForecastSyncJob] Error syncing forecast for resort %s: %v", resort.Slug, err)
			errorCount++
			if j.metricsReg != nil {
				j.metricsReg.SyncJobErrors.WithLabelValues("forecast_sync").Inc()
			}
			// Continue with other resorts even if one fails
			continue
		}
		persisted += p
		rejectedTotal += r

		if j.itemDelay > 0 && (i+1)%j.batchSize == 0 {
			select {
			case <-time.After(j.itemDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	j.invalidateDerivedCaches(resorts)

	if j.metricsReg != nil {
		j.metricsReg.SyncJobDuration.WithLabelValues("forecast_sync").Observe(time.Since(start).Seconds())
	}

	if err := j.syncHistoryRepo.RecordSync(ctx, constants.SyncEventForecasts); err != nil {
		log.Printf("[ForecastSyncJob] Warning - failed to record sync history: %v", err)
	}

	log.Printf("[ForecastSyncJob] Completed forecast sync in %s. Persisted: %d, Rejected: %d, Resort errors: %d",
		time.Since(start).Truncate(time.Millisecond), persisted, rejectedTotal, errorCount)

	return nil
}

// RunScheduled runs the forecast sync job on a schedule
func (j *ForecastSyncJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if syncedWithin(ctx, j.syncHistoryRepo, constants.SyncEventForecasts, interval) {
		log.Printf("[ForecastSyncJob] Skipping initial run, last sync newer than %s", interval)
	} else if err := j.Run(ctx); err != nil {
		log.Printf("[ForecastSyncJob] Error in initial run: %v", err)
	}

	for {
		select {
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				log.Printf("[ForecastSyncJob] Error in scheduled run: %v", err)
			}
		case <-ctx.Done():
			log.Printf("[ForecastSyncJob] Scheduler stopped")
			return
		}
	}
}

// syncResort fetches and persists one resort's forecast. Returns persisted
// and rejected record counts.
func (j *ForecastSyncJob) syncResort(ctx context.Context, resortID string, lat, lng float64) (int, int, error) {
	reading, err := j.forecastAPI.FetchForecast(ctx, resortID, lat, lng)
	if err != nil {
		return 0, 0, err
	}
	if reading == nil || reading.Kind != dtos.SourceForecastAPI || reading.Forecast == nil {
		return 0, 0, fmt.Errorf("forecast adapter returned no payload")
	}

	validDaily, rejectedDaily := services.FilterDailyForecasts(reading.Forecast.Daily)
	validHourly, rejectedHourly := services.FilterHourlyForecasts(reading.Forecast.Hourly)

	for date, failures := range rejectedDaily {
		log.Printf("[ForecastSyncJob] Resort %s day %s rejected: %v", resortID, date, failures)
		if j.metricsReg != nil && len(failures) > 0 {
			j.metricsReg.ForecastRecordsDropped.WithLabelValues(rejectionField(failures[0])).Inc()
		}
	}
	for hour, failures := range rejectedHourly {
		log.Printf("[ForecastSyncJob] Resort %s hour %s rejected: %v", resortID, hour, failures)
		if j.metricsReg != nil && len(failures) > 0 {
			j.metricsReg.ForecastRecordsDropped.WithLabelValues(rejectionField(failures[0])).Inc()
		}
	}

	persisted := 0
	for _, rec := range validDaily {
		row := &gormModels.DailyForecast{
			ResortID:      resortID,
			Date:          rec.Date,
			SnowfallIn:    rec.SnowfallIn,
			TempHighF:     rec.TempHighF,
			TempLowF:      rec.TempLowF,
			WindMph:       rec.WindMph,
			CloudCoverPct: rec.CloudCoverPct,
			Confidence:    rec.Confidence,
		}
		if err := j.forecastRepo.UpsertDaily(ctx, row); err != nil {
			return persisted, len(rejectedDaily) + len(rejectedHourly), fmt.Errorf("failed to upsert daily forecast: %w", err)
		}
		persisted++
	}

	for _, rec := range validHourly {
		row := &gormModels.HourlyForecast{
			ResortID:      resortID,
			Hour:          rec.Hour,
			SnowfallIn:    rec.SnowfallIn,
			TempF:         rec.TempF,
			WindMph:       rec.WindMph,
			CloudCoverPct: rec.CloudCoverPct,
		}
		if err := j.forecastRepo.UpsertHourly(ctx, row); err != nil {
			return persisted, len(rejectedDaily) + len(rejectedHourly), fmt.Errorf("failed to upsert hourly forecast: %w", err)
		}
		persisted++
	}

	return persisted, len(rejectedDaily) + len(rejectedHourly), nil
}

// invalidateDerivedCaches clears every scoring view that reads forecasts.
// Derived keys vary by pass type, window, and radius, so whole key families
// go at once; a key surviving the sweep would serve pre-sweep data until its
// TTL. Resort details are keyed by id alone and deleted individually.
func (j *ForecastSyncJob) invalidateDerivedCaches(resorts []entities.Resort) {
	j.cache.DeletePrefix(constants.CachePrefixChaseAlerts)
	j.cache.DeletePrefix(constants.CachePrefixRegionRankings)
	j.cache.DeletePrefix(constants.CachePrefixRegionComparison)
	j.cache.DeletePrefix(constants.CachePrefixWorthKnowing)

	for _, r := range resorts {
		j.cache.Delete(constants.CacheKeyResortDetail(r.ID))
	}
}

// rejectionField strips the offending value from a validator failure string
// so metric labels stay bounded to field names.
func rejectionField(failure string) string {
	if i := strings.Index(failure, "="); i >= 0 {
		return failure[:i]
	}
	return failure
}
