package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"snowchase/basecamp/internal/common"
	"snowchase/basecamp/internal/constants"
	"snowchase/basecamp/internal/db/repositories"
	"snowchase/basecamp/internal/jobs"
)

// JobsHandler handles manual job triggering endpoints
type JobsHandler struct {
	jobSet      *jobs.JobSet
	syncHistory *repositories.SyncHistoryRepo
}

// NewJobsHandler creates a new jobs handler
func NewJobsHandler(jobSet *jobs.JobSet, syncHistory *repositories.SyncHistoryRepo) *JobsHandler {
	return &JobsHandler{jobSet: jobSet, syncHistory: syncHistory}
}

// TriggerJob handles POST /api/v1/admin/jobs/{name}. The run is synchronous;
// the response reports how long it took.
func (h *JobsHandler) TriggerJob() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		name := chi.URLParam(r, "name")

		log.Printf("[JobsHandler] Job %s manually triggered from %s", name, r.RemoteAddr)

		known, err := h.jobSet.Run(r.Context(), name)
		if !known {
			common.RespondError(w, initTime, nil, fmt.Sprintf("Unknown job: %s", name), http.StatusNotFound)
			return
		}
		if err != nil {
			common.RespondError(w, initTime, err, "Job failed", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, fmt.Sprintf("Job %s completed", name), map[string]any{
			"job":         name,
			"duration_ms": time.Since(initTime).Milliseconds(),
		})
	}
}

// JobStatus handles GET /api/v1/admin/jobs. Reports the last recorded sync
// for each job, nil when it has never completed.
func (h *JobsHandler) JobStatus() http.HandlerFunc {
	jobEvents := map[string]string{
		"report_sync":     constants.SyncEventSnowReports,
		"conditions_sync": constants.SyncEventConditions,
		"forecast_sync":   constants.SyncEventForecasts,
		"telemetry_sync":  constants.SyncEventTelemetry,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		status := make(map[string]any, len(jobEvents))
		for name, event := range jobEvents {
			last, err := h.syncHistory.GetLastSyncTime(r.Context(), event)
			if err != nil {
				common.RespondError(w, initTime, err, "Failed to read sync history", http.StatusInternalServerError)
				return
			}
			status[name] = map[string]any{"last_sync_at": last}
		}

		common.RespondSuccess(w, initTime, "Job status retrieved", status)
	}
}
