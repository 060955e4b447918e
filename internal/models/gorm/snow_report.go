package gorm

import "time"

// SnowReport is the raw extracted report for one resort and one report date.
// Depths and snowfall are centimeters, straight from the scraped source.
// Rows are mutated in place by the patch reconciler and never deleted.
type SnowReport struct {
	ID           string     `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ResortID     string     `gorm:"column:resort_id;type:uuid;not null;uniqueIndex:uq_resort_report_date" json:"resort_id"`
	ReportDate   string     `gorm:"column:report_date;type:date;not null;uniqueIndex:uq_resort_report_date" json:"report_date"`
	Snowfall24Cm *float64   `gorm:"column:snowfall_24_cm" json:"snowfall_24_cm"`
	Snowfall48Cm *float64   `gorm:"column:snowfall_48_cm" json:"snowfall_48_cm"`
	Snowfall72Cm *float64   `gorm:"column:snowfall_72_cm" json:"snowfall_72_cm"`
	BaseDepthCm  *float64   `gorm:"column:base_depth_cm" json:"base_depth_cm"`
	LiftsOpen    *int       `gorm:"column:lifts_open" json:"lifts_open"`
	TrailsOpen   *int       `gorm:"column:trails_open" json:"trails_open"`
	Surface      *string    `gorm:"column:surface;type:varchar(100)" json:"surface"`
	OpenFlag     int        `gorm:"column:open_flag;default:2" json:"open_flag"`
	Source       string     `gorm:"column:source;type:varchar(50)" json:"source"`
	SourceTime   *time.Time `gorm:"column:source_time" json:"source_time"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (SnowReport) TableName() string {
	return "snow_reports"
}
