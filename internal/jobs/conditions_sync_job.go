package jobs

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"snowchase/basecamp/internal/constants"
	"snowchase/basecamp/internal/db/repositories"
	"snowchase/basecamp/internal/metrics"
	"snowchase/basecamp/internal/models/dtos"
	"snowchase/basecamp/internal/providers"
	"snowchase/basecamp/internal/services"
)

// ConditionsSyncJob pulls the third-party conditions API state by state and
// feeds every reading through the freshness merger. The API delivers inches
// already, so readings go straight in with no unit conversion.
type ConditionsSyncJob struct {
	conditionsAPI   *providers.ConditionsAPIProvider
	mergeService    *services.ConditionsMergeService
	syncHistoryRepo *repositories.SyncHistoryRepo
	metricsReg      *metrics.MetricsRegistry

	states    []string
	itemDelay time.Duration
}

// NewConditionsSyncJob creates a new conditions sync job instance. States
// come from CONDITIONS_API_STATES (comma-separated) so deployments cover
// only the terrain they care about.
func NewConditionsSyncJob(
	conditionsAPI *providers.ConditionsAPIProvider,
	mergeService *services.ConditionsMergeService,
	syncHistoryRepo *repositories.SyncHistoryRepo,
	metricsReg *metrics.MetricsRegistry,
	itemDelay time.Duration,
) *ConditionsSyncJob {
	states := []string{"CO", "UT", "WY", "MT"}
	if env := os.Getenv("CONDITIONS_API_STATES"); env != "" {
		states = strings.Split(env, ",")
	}

	return &ConditionsSyncJob{
		conditionsAPI:   conditionsAPI,
		mergeService:    mergeService,
		syncHistoryRepo: syncHistoryRepo,
		metricsReg:      metricsReg,
		states:          states,
		itemDelay:       itemDelay,
	}
}

// Run executes one conditions sweep across all configured states
func (j *ConditionsSyncJob) Run(ctx context.Context) error {
	start := time.Now()
	log.Printf("[ConditionsSyncJob] Starting conditions sync at %s for states %v", start.Format(time.RFC3339), j.states)

	applied := 0
	skipped := 0
	errorCount := 0

	for _, state := range j.states {
		state = strings.TrimSpace(state)
		if state == "" {
			continue
		}

		readings, dropped, err := j.conditionsAPI.FetchStateConditions(ctx, state)
		if err != nil {
			log.Printf("[ConditionsSyncJob] Error fetching state %s: %v", state, err)
			errorCount++
			if j.metricsReg != nil {
				j.metricsReg.SyncJobErrors.WithLabelValues("conditions_sync").Inc()
			}
			// Continue with other states even if one fails
			continue
		}

		if dropped > 0 {
			log.Printf("[ConditionsSyncJob] State %s: dropped %d malformed readings", state, dropped)
			if j.metricsReg != nil {
				j.metricsReg.ReportsRejectedTotal.WithLabelValues(string(dtos.SourceConditionsAPI)).Add(float64(dropped))
			}
		}

		for _, reading := range readings {
			if reading.Kind != dtos.SourceConditionsAPI || reading.Conditions == nil {
				errorCount++
				continue
			}

			changed, err := j.mergeService.Apply(ctx, *reading.Conditions)
			if err != nil {
				log.Printf("[ConditionsSyncJob] Error merging reading for resort %s: %v", reading.ResortID, err)
				errorCount++
				continue
			}
			if changed {
				applied++
			} else {
				skipped++
			}
		}

		// One upstream call per state; pause between them.
		if j.itemDelay > 0 {
			select {
			case <-time.After(j.itemDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	if j.metricsReg != nil {
		j.metricsReg.SyncJobDuration.WithLabelValues("conditions_sync").Observe(time.Since(start).Seconds())
	}

	if err := j.syncHistoryRepo.RecordSync(ctx, constants.SyncEventConditions); err != nil {
		log.Printf("[ConditionsSyncJob] Warning - failed to record sync history: %v", err)
	}

	log.Printf("[ConditionsSyncJob] Completed conditions sync in %s. Applied: %d, Stale-skipped: %d, Errors: %d",
		time.Since(start).Truncate(time.Millisecond), applied, skipped, errorCount)

	if errorCount > 0 && applied == 0 && skipped == 0 {
		return fmt.Errorf("conditions sync produced no readings (%d errors)", errorCount)
	}
	return nil
}

// RunScheduled runs the conditions sync job on a schedule
func (j *ConditionsSyncJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if syncedWithin(ctx, j.syncHistoryRepo, constants.SyncEventConditions, interval) {
		log.Printf("[ConditionsSyncJob] Skipping initial run, last sync newer than %s", interval)
	} else if err := j.Run(ctx); err != nil {
		log.Printf("[ConditionsSyncJob] Error in initial run: %v", err)
	}

	for {
		select {
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				log.Printf("[ConditionsSyncJob] Error in scheduled run: %v", err)
			}
		case <-ctx.Done():
			log.Printf("[ConditionsSyncJob] Shutting down scheduled sync")
			return
		}
	}
}
