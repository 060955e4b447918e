package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"snowchase/basecamp/internal/common"
	"snowchase/basecamp/internal/constants"
	"snowchase/basecamp/internal/services"
)

// windowDaysParam reads the optional ?window query parameter, clamped to
// the storable forecast horizon.
func windowDaysParam(r *http.Request) int {
	windowDays := constants.ForecastWindowDays
	if raw := r.URL.Query().Get("window"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= constants.ForecastWindowDays {
			windowDays = n
		}
	}
	return windowDays
}

// ListRegionsHandler handles GET /api/v1/regions. Regions come back ranked
// and tiered; ?pass= tailors the scoring to the caller's pass.
func ListRegionsHandler(regionSvc *services.RegionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		passType := r.URL.Query().Get("pass")

		ranked, err := regionSvc.RankedRegions(r.Context(), passType, windowDaysParam(r))
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to rank regions", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Regions ranked", ranked)
	}
}

// GetRegionComparisonHandler handles GET /api/v1/regions/{id}/comparison
func GetRegionComparisonHandler(regionSvc *services.RegionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		regionID := chi.URLParam(r, "id")

		comparison, err := regionSvc.RegionComparison(r.Context(), regionID, windowDaysParam(r))
		if err != nil {
			if errors.Is(err, services.ErrRegionNotFound) {
				common.RespondError(w, initTime, err, "Region not found", http.StatusNotFound)
				return
			}
			common.RespondError(w, initTime, err, "Failed to build comparison", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Region comparison retrieved", comparison)
	}
}
