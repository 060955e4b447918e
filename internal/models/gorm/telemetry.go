package gorm

import "time"

// SnowpackReading is one snow-telemetry observation for a resort's nearest
// station, upserted by (resort, date).
type SnowpackReading struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ResortID  string    `gorm:"column:resort_id;type:uuid;not null;uniqueIndex:uq_resort_snowpack_date" json:"resort_id"`
	StationID string    `gorm:"column:station_id;type:varchar(20)" json:"station_id"`
	Date      string    `gorm:"column:date;type:date;not null;uniqueIndex:uq_resort_snowpack_date" json:"date"`
	DepthIn   float64   `gorm:"column:depth_in" json:"depth_in"`
	SweIn     float64   `gorm:"column:swe_in" json:"swe_in"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (SnowpackReading) TableName() string {
	return "snowpack_readings"
}

// AvalancheBulletin is the daily avalanche danger rating for a region,
// upserted by (region, date).
type AvalancheBulletin struct {
	ID          string    `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	RegionID    string    `gorm:"column:region_id;type:uuid;not null;uniqueIndex:uq_region_bulletin_date" json:"region_id"`
	Date        string    `gorm:"column:date;type:date;not null;uniqueIndex:uq_region_bulletin_date" json:"date"`
	DangerLevel int       `gorm:"column:danger_level" json:"danger_level"` // 1 (low) .. 5 (extreme)
	Summary     string    `gorm:"column:summary;type:text" json:"summary"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (AvalancheBulletin) TableName() string {
	return "avalanche_bulletins"
}
