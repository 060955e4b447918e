package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	gormlib "gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the tables the services
// touch. Schemas are created with raw DDL because the production models
// carry postgres-only column defaults.
func newTestDB(t *testing.T) *gormlib.DB {
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
	}

	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to create test schema: %v", err)
		}
	}

	return db
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
