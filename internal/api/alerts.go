package api

import (
	"net/http"
	"time"

	"snowchase/basecamp/internal/common"
	"snowchase/basecamp/internal/services"
)

// ListChaseAlertsHandler handles GET /api/v1/alerts
func ListChaseAlertsHandler(alertSvc *services.ChaseAlertService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		alerts, err := alertSvc.ListAlerts(r.Context(), windowDaysParam(r))
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to compute chase alerts", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Chase alerts retrieved", alerts)
	}
}
