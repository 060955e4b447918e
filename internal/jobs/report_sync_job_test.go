package jobs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	gormlib "gorm.io/gorm"
	"gorm.io/gorm/logger"

	"snowchase/basecamp/internal/common"
	"snowchase/basecamp/internal/constants"
	"snowchase/basecamp/internal/db/repositories"
	"snowchase/basecamp/internal/providers"
	"snowchase/basecamp/internal/services"
)

func newJobTestDB(t *testing.T) *gormlib.DB {
	t.Helper()

	db, err := gormlib.Open(sqlite.Open(":memory:"), &gormlib.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	ddl := []string{
		`CREATE TABLE snow_reports (
			id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
			resort_id TEXT NOT NULL,
			report_date TEXT NOT NULL,
			snowfall_24_cm REAL,
			snowfall_48_cm REAL,
			snowfall_72_cm REAL,
			base_depth_cm REAL,
			lifts_open INTEGER,
			trails_open INTEGER,
			surface TEXT,
			open_flag INTEGER DEFAULT 2,
			source TEXT,
			source_time DATETIME,
			created_at DATETIME,
			updated_at DATETIME,
			UNIQUE (resort_id, report_date)
		)`,
		`CREATE TABLE resort_conditions (
			id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
			resort_id TEXT NOT NULL UNIQUE,
			snow_24_in REAL,
			snow_48_in REAL,
			snow_72_in REAL,
			base_depth_in INTEGER,
			lifts_open INTEGER,
			trails_open INTEGER,
			surface TEXT,
			status TEXT DEFAULT 'closed',
			source TEXT,
			updated_at DATETIME
		)`,
		`CREATE TABLE sync_history (
			id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
			event TEXT UNIQUE,
			created_at DATETIME,
			last_sync_at DATETIME
		)`,
	}

	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to create test schema: %v", err)
		}
	}

	return db
}

func newReportSyncFixture(t *testing.T, feedBody string) (*ReportSyncJob, *gormlib.DB) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedBody))
	}))
	t.Cleanup(server.Close)

	db := newJobTestDB(t)
	cache := common.NewCacheService(60, 120)
	scrapeFeed := &providers.ScrapeFeedProvider{BaseURL: server.URL, Client: server.Client()}
	patchService := services.NewReportPatchService(repositories.NewSnowReportRepo(db))
	mergeService := services.NewConditionsMergeService(repositories.NewConditionsRepo(db), cache)
	syncHistoryRepo := repositories.NewSyncHistoryRepo(db)

	job := NewReportSyncJob(scrapeFeed, patchService, mergeService, syncHistoryRepo, nil, 50, 0)
	return job, db
}

func TestReportSyncJob_FullSweep(t *testing.T) {
	feedBody := `{
		"reports": [
			{
				"resortId": "resort-1",
				"reportDate": "2026-02-01",
				"snowfallCm24h": 100,
				"baseDepthCm": 150,
				"openFlag": 1,
				"updatedAt": "2026-02-01T07:30:00Z"
			},
			{
				"resortId": "",
				"reportDate": "2026-02-01"
			}
		]
	}`
	job, db := newReportSyncFixture(t, feedBody)
	ctx := context.Background()

	if err := job.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Report row stored in centimeters.
	report, err := repositories.NewSnowReportRepo(db).GetByResortAndDate(ctx, "resort-1", "2026-02-01")
	if err != nil {
		t.Fatalf("report lookup failed: %v", err)
	}
	if report == nil {
		t.Fatal("Expected stored snow report")
	}
	if report.Snowfall24Cm == nil || *report.Snowfall24Cm != 100 {
		t.Errorf("Expected 100cm stored, got %v", report.Snowfall24Cm)
	}

	// Canonical snapshot converted to inches by the merger.
	conditions, err := repositories.NewConditionsRepo(db).GetByResort(ctx, "resort-1")
	if err != nil {
		t.Fatalf("conditions lookup failed: %v", err)
	}
	if conditions == nil {
		t.Fatal("Expected canonical conditions row")
	}
	if conditions.Snow24In == nil || *conditions.Snow24In != 39.4 {
		t.Errorf("Expected 39.4in canonical snowfall, got %v", conditions.Snow24In)
	}
	if conditions.Status != "open" {
		t.Errorf("Expected open status, got %q", conditions.Status)
	}

	// Completed run recorded in sync history.
	lastSync, err := repositories.NewSyncHistoryRepo(db).GetLastSyncTime(ctx, constants.SyncEventSnowReports)
	if err != nil {
		t.Fatalf("sync history lookup failed: %v", err)
	}
	if lastSync == nil {
		t.Error("Expected sync history recorded")
	}
}

func TestReportSyncJob_RerunIsIdempotent(t *testing.T) {
	feedBody := `{
		"reports": [
			{
				"resortId": "resort-1",
				"reportDate": "2026-02-01",
				"snowfallCm24h": 100,
				"updatedAt": "2026-02-01T07:30:00Z"
			}
		]
	}`
	job, db := newReportSyncFixture(t, feedBody)
	ctx := context.Background()

	if err := job.Run(ctx); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}

	first, _ := repositories.NewConditionsRepo(db).GetByResort(ctx, "resort-1")

	if err := job.Run(ctx); err != nil {
		t.Fatalf("second Run failed: %v", err)
	}

	// Identical feed: patch no-ops, merge never runs, snapshot untouched.
	second, _ := repositories.NewConditionsRepo(db).GetByResort(ctx, "resort-1")
	if !second.UpdatedAt.Equal(first.UpdatedAt) {
		t.Errorf("Expected snapshot untouched on identical rerun, got %v then %v", first.UpdatedAt, second.UpdatedAt)
	}

	var count int64
	db.Table("snow_reports").Count(&count)
	if count != 1 {
		t.Errorf("Expected single report row after rerun, got %d", count)
	}
}

func TestReportSyncJob_FeedFailurePropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	db := newJobTestDB(t)
	cache := common.NewCacheService(60, 120)
	job := NewReportSyncJob(
		&providers.ScrapeFeedProvider{BaseURL: server.URL, Client: server.Client()},
		services.NewReportPatchService(repositories.NewSnowReportRepo(db)),
		services.NewConditionsMergeService(repositories.NewConditionsRepo(db), cache),
		repositories.NewSyncHistoryRepo(db),
		nil, 50, 0,
	)

	if err := job.Run(context.Background()); err == nil {
		t.Error("Expected error when the feed is down")
	}

	lastSync, _ := repositories.NewSyncHistoryRepo(db).GetLastSyncTime(context.Background(), constants.SyncEventSnowReports)
	if lastSync != nil {
		t.Error("Expected no sync history after failed run")
	}
}
