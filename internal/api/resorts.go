package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"snowchase/basecamp/internal/common"
	"snowchase/basecamp/internal/services"
)

// ListResortsHandler handles GET /api/v1/resorts
func ListResortsHandler(resortSvc *services.ResortService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		resorts, err := resortSvc.ListResorts(r.Context())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to list resorts", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Resorts retrieved", resorts)
	}
}

// GetResortHandler handles GET /api/v1/resorts/{slug}
func GetResortHandler(resortSvc *services.ResortService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		slug := chi.URLParam(r, "slug")

		detail, err := resortSvc.GetResortDetail(r.Context(), slug)
		if err != nil {
			if errors.Is(err, services.ErrResortNotFound) {
				common.RespondError(w, initTime, err, "Resort not found", http.StatusNotFound)
				return
			}
			common.RespondError(w, initTime, err, "Failed to load resort", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Resort retrieved", detail)
	}
}
