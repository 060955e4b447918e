package gorm

import "time"

// Forecast confidence tiers.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// DailyForecast is one forecast day for one resort, upserted by date key.
// Historical dates are retained for analytics but not served.
type DailyForecast struct {
	ID            string    `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ResortID      string    `gorm:"column:resort_id;type:uuid;not null;uniqueIndex:uq_resort_forecast_date" json:"resort_id"`
	Date          string    `gorm:"column:date;type:date;not null;uniqueIndex:uq_resort_forecast_date" json:"date"`
	SnowfallIn    float64   `gorm:"column:snowfall_in" json:"snowfall_in"`
	TempHighF     float64   `gorm:"column:temp_high_f" json:"temp_high_f"`
	TempLowF      float64   `gorm:"column:temp_low_f" json:"temp_low_f"`
	WindMph       float64   `gorm:"column:wind_mph" json:"wind_mph"`
	CloudCoverPct float64   `gorm:"column:cloud_cover_pct" json:"cloud_cover_pct"`
	Confidence    string    `gorm:"column:confidence;type:varchar(10);default:medium" json:"confidence"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (DailyForecast) TableName() string {
	return "daily_forecasts"
}

// HourlyForecast is one forecast hour for one resort, upserted by hour key.
type HourlyForecast struct {
	ID            string    `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ResortID      string    `gorm:"column:resort_id;type:uuid;not null;uniqueIndex:uq_resort_forecast_hour" json:"resort_id"`
	Hour          time.Time `gorm:"column:hour;not null;uniqueIndex:uq_resort_forecast_hour" json:"hour"`
	SnowfallIn    float64   `gorm:"column:snowfall_in" json:"snowfall_in"`
	TempF         float64   `gorm:"column:temp_f" json:"temp_f"`
	WindMph       float64   `gorm:"column:wind_mph" json:"wind_mph"`
	CloudCoverPct float64   `gorm:"column:cloud_cover_pct" json:"cloud_cover_pct"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (HourlyForecast) TableName() string {
	return "hourly_forecasts"
}
