package api

import (
	"log"
	"os"

	"snowchase/basecamp/internal/common"
	"snowchase/basecamp/internal/config"
	"snowchase/basecamp/internal/db"
	"snowchase/basecamp/internal/db/repositories"
	"snowchase/basecamp/internal/services"
)

type Repositories struct {
	Resorts     *repositories.ResortRepository
	Regions     *repositories.RegionRepository
	SnowReports *repositories.SnowReportRepo
	Conditions  *repositories.ConditionsRepo
	Forecasts   *repositories.ForecastRepo
	Telemetry   *repositories.TelemetryRepo
	SyncHistory *repositories.SyncHistoryRepo
}

type Services struct {
	Cache        common.CacheInterface
	RedisQueue   *common.RedisQueueService
	ReportPatch  *services.ReportPatchService
	Merge        *services.ConditionsMergeService
	Resorts      *services.ResortService
	Regions      *services.RegionService
	ChaseAlerts  *services.ChaseAlertService
	WorthKnowing *services.WorthKnowingService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
}

// InitDependencies wires repositories and services. The cache backend is
// in-memory go-cache unless CACHE_BACKEND=redis, in which case cache and
// narrative queue share one Redis client.
func InitDependencies(cfg *config.Config) (*Dependencies, error) {
	repos := &Repositories{
		Resorts:     repositories.NewResortRepository(db.DB),
		Regions:     repositories.NewRegionRepository(db.DB),
		SnowReports: repositories.NewSnowReportRepo(db.PgDB),
		Conditions:  repositories.NewConditionsRepo(db.PgDB),
		Forecasts:   repositories.NewForecastRepo(db.PgDB),
		Telemetry:   repositories.NewTelemetryRepo(db.PgDB),
		SyncHistory: repositories.NewSyncHistoryRepo(db.PgDB),
	}

	var cacheSvc common.CacheInterface
	var redisQueue *common.RedisQueueService

	if os.Getenv("CACHE_BACKEND") == "redis" {
		redisCache, err := common.NewRedisCacheService()
		if err != nil {
			return nil, err
		}
		cacheSvc = redisCache
		redisQueue = common.NewRedisQueueService(common.NewRedisClient())
		log.Println("Cache backend: redis")
	} else {
		cacheSvc = common.NewCacheService(60000, 600)
		log.Println("Cache backend: in-memory")
	}

	alertSvc := services.NewChaseAlertService(repos.Resorts, repos.Regions, repos.Forecasts, cacheSvc, cfg.AlertTTL)

	svcs := &Services{
		Cache:        cacheSvc,
		RedisQueue:   redisQueue,
		ReportPatch:  services.NewReportPatchService(repos.SnowReports),
		Merge:        services.NewConditionsMergeService(repos.Conditions, cacheSvc),
		Resorts:      services.NewResortService(repos.Resorts, repos.Conditions, repos.Forecasts, repos.Telemetry, cacheSvc, cfg.ConditionsTTL, cfg.DetailTTL),
		Regions:      services.NewRegionService(repos.Regions, alertSvc, cacheSvc, cfg.RankingTTL),
		ChaseAlerts:  alertSvc,
		WorthKnowing: services.NewWorthKnowingService(repos.Resorts, repos.Forecasts, cacheSvc, redisQueue, cfg.RankingTTL),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
	}, nil
}
