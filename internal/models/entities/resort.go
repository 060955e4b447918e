package entities

import "time"

// Resort is immutable reference data, loaded by the seed step.
type Resort struct {
	ID           string    `db:"id"`
	Slug         string    `db:"slug"`
	Name         string    `db:"name"`
	RegionID     string    `db:"region_id"`
	Lat          float64   `db:"lat"`
	Lng          float64   `db:"lng"`
	ElevationFt  int       `db:"elevation_ft"`
	PassType     string    `db:"pass_type"`
	DriveMinutes *int      `db:"drive_minutes"` // nullable: unknown origin
	CreatedAt    time.Time `db:"created_at"`
}
