package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"snowchase/basecamp/internal/constants"
	"snowchase/basecamp/internal/db/repositories"
	"snowchase/basecamp/internal/metrics"
	"snowchase/basecamp/internal/models/dtos"
	"snowchase/basecamp/internal/providers"
	"snowchase/basecamp/internal/services"
)

// ReportSyncJob pulls scraped resort reports from the scraper fleet feed,
// reconciles each against the stored row, and pushes accepted changes into
// the canonical conditions snapshot.
type ReportSyncJob struct {
	scrapeFeed      *providers.ScrapeFeedProvider
	patchService    *services.ReportPatchService
	mergeService    *services.ConditionsMergeService
	syncHistoryRepo *repositories.SyncHistoryRepo
	metricsReg      *metrics.MetricsRegistry

	batchSize int
	itemDelay time.Duration
}

// NewReportSyncJob creates a new report sync job instance
func NewReportSyncJob(
	scrapeFeed *providers.ScrapeFeedProvider,
	patchService *services.ReportPatchService,
	mergeService *services.ConditionsMergeService,
	syncHistoryRepo *repositories.SyncHistoryRepo,
	metricsReg *metrics.MetricsRegistry,
	batchSize int,
	itemDelay time.Duration,
) *ReportSyncJob {
	return &ReportSyncJob{
		scrapeFeed:      scrapeFeed,
		patchService:    patchService,
		mergeService:    mergeService,
		syncHistoryRepo: syncHistoryRepo,
		metricsReg:      metricsReg,
		batchSize:       batchSize,
		itemDelay:       itemDelay,
	}
}

// Run executes one full sweep of the scrape feed
func (j *ReportSyncJob) Run(ctx context.Context) error {
	start := time.Now()
	log.Printf("[ReportSyncJob] Starting report sync at %s", start.Format(time.RFC3339))

	readings, dropped, err := j.scrapeFeed.FetchReports(ctx)
	if err != nil {
		log.Printf("[ReportSyncJob] Error fetching scrape feed: %v", err)
		return fmt.Errorf("failed to fetch scrape feed: %w", err)
	}

	if dropped > 0 {
		log.Printf("[ReportSyncJob] Dropped %d malformed readings at the adapter boundary", dropped)
		if j.metricsReg != nil {
			j.metricsReg.ReportsRejectedTotal.WithLabelValues(string(dtos.SourceScrapedReport)).Add(float64(dropped))
		}
	}

	if len(readings) == 0 {
		log.Printf("[ReportSyncJob] No readings in feed")
		return nil
	}

	created := 0
	updated := 0
	noops := 0
	errorCount := 0

	for i, reading := range readings {
		if reading.Kind != dtos.SourceScrapedReport || reading.Scraped == nil {
			errorCount++
			continue
		}

		result, err := j.patchService.Reconcile(ctx, reading.ResortID, reading.Scraped)
		if err != nil {
			log.Printf("[ReportSyncJob] Error reconciling report for resort %s: %v", reading.ResortID, err)
			errorCount++
			if j.metricsReg != nil {
				j.metricsReg.SyncJobErrors.WithLabelValues("report_sync").Inc()
			}
			// Continue with other resorts even if one fails
			continue
		}

		switch {
		case result.Created:
			created++
		case result.Updated:
			updated++
		default:
			noops++
		}

		// Only touched rows fan out to the canonical snapshot.
		if result.Created || result.Updated {
			if err := j.applyToConditions(ctx, reading); err != nil {
				log.Printf("[ReportSyncJob] Error merging conditions for resort %s: %v", reading.ResortID, err)
				errorCount++
			}
		}

		// Pace the sweep so batches of scraped pages don't hammer the DB.
		if j.itemDelay > 0 && (i+1)%j.batchSize == 0 {
			select {
			case <-time.After(j.itemDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	if j.metricsReg != nil {
		j.metricsReg.ReportsProcessedTotal.WithLabelValues("created").Add(float64(created))
		j.metricsReg.ReportsProcessedTotal.WithLabelValues("updated").Add(float64(updated))
		j.metricsReg.ReportsProcessedTotal.WithLabelValues("noop").Add(float64(noops))
		j.metricsReg.SyncJobDuration.WithLabelValues("report_sync").Observe(time.Since(start).Seconds())
	}

	if err := j.syncHistoryRepo.RecordSync(ctx, constants.SyncEventSnowReports); err != nil {
		log.Printf("[ReportSyncJob] Warning - failed to record sync history: %v", err)
	}

	log.Printf("[ReportSyncJob] Completed report sync in %s. Created: %d, Updated: %d, NoOps: %d, Errors: %d",
		time.Since(start).Truncate(time.Millisecond), created, updated, noops, errorCount)

	return nil
}

// applyToConditions converts the accepted scraped report to inches and runs
// it through the freshness merger.
func (j *ReportSyncJob) applyToConditions(ctx context.Context, reading dtos.RawReading) error {
	report := services.ScrapedReportToSnowReport(reading.ResortID, reading.Scraped)
	incoming := services.NormalizeSnowReport(report)
	if incoming.ObservedAt.IsZero() {
		// Source gave no timestamp; treat the fetch time as the observation.
		incoming.ObservedAt = time.Now()
	}
	_, err := j.mergeService.Apply(ctx, incoming)
	return err
}

// RunScheduled runs the report sync job on a schedule
func (j *ReportSyncJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Run immediately on start unless a recent restart already synced.
	if syncedWithin(ctx, j.syncHistoryRepo, constants.SyncEventSnowReports, interval) {
		log.Printf("[ReportSyncJob] Skipping initial run, last sync newer than %s", interval)
	} else if err := j.Run(ctx); err != nil {
		log.Printf("[ReportSyncJob] Error in initial run: %v", err)
	}

	for {
		select {
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				log.Printf("[ReportSyncJob] Error in scheduled run: %v", err)
			}
		case <-ctx.Done():
			log.Printf("[ReportSyncJob] Shutting down scheduled sync")
			return
		}
	}
}
