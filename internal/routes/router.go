package routes

import (
	"context"
	"net/http"
	"time"

	"snowchase/basecamp/internal/api"
	"snowchase/basecamp/internal/config"
	"snowchase/basecamp/internal/db"
	"snowchase/basecamp/internal/jobs"
	"snowchase/basecamp/internal/logging"
	"snowchase/basecamp/internal/metrics"
	"snowchase/basecamp/internal/middleware"
	"snowchase/basecamp/internal/workers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func RegisterRoutes(cfg *config.Config, upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// Initialize metrics registry
	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")
	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, upSince))

	// Initialize dependencies using DI pattern
	deps, err := api.InitDependencies(cfg)
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	// Setup scheduled jobs
	jobSet := jobs.InitializeJobs(
		context.Background(),
		cfg,
		deps.Services.Cache,
		deps.Repo.Resorts,
		deps.Repo.Regions,
		deps.Repo.Forecasts,
		deps.Repo.Telemetry,
		deps.Repo.SyncHistory,
		deps.Services.ReportPatch,
		deps.Services.Merge,
		metricsReg,
	)

	workers.InitWorkers(
		context.Background(),
		deps.Services.Cache,
		deps.Services.RedisQueue,
		deps.Services.Regions,
		deps.Services.ChaseAlerts,
	)

	// Initialize jobs handler for manual triggering
	jobsHandler := api.NewJobsHandler(jobSet, deps.Repo.SyncHistory)

	RegisterAPIRoutes(r, deps, jobsHandler)

	return r
}
