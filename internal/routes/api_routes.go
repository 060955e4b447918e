package routes

import (
	"snowchase/basecamp/internal/api"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies, jobsHandler *api.JobsHandler) {

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Get("/resorts", api.ListResortsHandler(deps.Services.Resorts))
		v1.Get("/resorts/{slug}", api.GetResortHandler(deps.Services.Resorts))

		v1.Get("/regions", api.ListRegionsHandler(deps.Services.Regions))
		v1.Get("/regions/{id}/comparison", api.GetRegionComparisonHandler(deps.Services.Regions))

		v1.Get("/alerts", api.ListChaseAlertsHandler(deps.Services.ChaseAlerts))
		v1.Get("/worth-knowing", api.ListWorthKnowingHandler(deps.Services.WorthKnowing))

		// Background jobs management
		v1.Get("/admin/jobs", jobsHandler.JobStatus())
		v1.Post("/admin/jobs/{name}", jobsHandler.TriggerJob())
	})
}
