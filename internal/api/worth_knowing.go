package api

import (
	"net/http"
	"strconv"
	"time"

	"snowchase/basecamp/internal/common"
	"snowchase/basecamp/internal/services"
)

// ListWorthKnowingHandler handles GET /api/v1/worth-knowing. Requires
// ?pass=; ?radius= (drive minutes) optionally bounds how far a
// recommendation may be.
func ListWorthKnowingHandler(worthSvc *services.WorthKnowingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		passType := r.URL.Query().Get("pass")
		if passType == "" {
			common.RespondError(w, initTime, nil, "pass query parameter is required", http.StatusBadRequest)
			return
		}

		radiusMinutes := 0
		if raw := r.URL.Query().Get("radius"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				common.RespondError(w, initTime, nil, "radius must be a non-negative integer", http.StatusBadRequest)
				return
			}
			radiusMinutes = n
		}

		entries, err := worthSvc.Compute(r.Context(), passType, windowDaysParam(r), radiusMinutes)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to compute recommendations", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Recommendations retrieved", entries)
	}
}
