package dtos

import "time"

// SourceKind tags a RawReading with the adapter that produced it.
type SourceKind string

const (
	SourceScrapedReport SourceKind = "scraped_report"
	SourceConditionsAPI SourceKind = "conditions_api"
	SourceForecastAPI   SourceKind = "forecast_api"
	SourceSnowpack      SourceKind = "snowpack"
	SourceAvalanche     SourceKind = "avalanche"
)

// RawReading is the tagged union every adapter hands to the pipeline. Exactly
// one payload pointer is set, matching Kind. The reconciliation core never
// sees source-specific JSON; adapters normalize into these shapes first.
type RawReading struct {
	Kind     SourceKind `json:"kind"`
	ResortID string     `json:"resort_id,omitempty"`
	RegionID string     `json:"region_id,omitempty"`

	Scraped    *ScrapedReport        `json:"scraped,omitempty"`
	Conditions *ConditionsReading    `json:"conditions,omitempty"`
	Forecast   *ForecastReading      `json:"forecast,omitempty"`
	Snowpack   *SnowpackObservation  `json:"snowpack,omitempty"`
	Avalanche  *AvalancheObservation `json:"avalanche,omitempty"`
}

// ScrapedReport is a normalized scraped resort page, centimeter-based.
// Nil fields were absent from the page.
type ScrapedReport struct {
	ReportDate   string     `json:"report_date"`
	Snowfall24Cm *float64   `json:"snowfall_24_cm"`
	Snowfall48Cm *float64   `json:"snowfall_48_cm"`
	Snowfall72Cm *float64   `json:"snowfall_72_cm"`
	BaseDepthCm  *float64   `json:"base_depth_cm"`
	LiftsOpen    *int       `json:"lifts_open"`
	TrailsOpen   *int       `json:"trails_open"`
	Surface      *string    `json:"surface"`
	OpenFlag     *int       `json:"open_flag"` // 1 open, 2 closed, 3 partially open
	UpdatedAt    *time.Time `json:"updated_at"`
}

// ConditionsReading is the single canonical input shape the freshness merger
// accepts: inches-based, with a source tag and observation timestamp. The
// third-party conditions API maps onto it directly; scraped reports are
// converted from centimeters by the merge service.
type ConditionsReading struct {
	ResortID    string    `json:"resort_id"`
	Snow24In    *float64  `json:"snow_24_in"`
	Snow48In    *float64  `json:"snow_48_in"`
	Snow72In    *float64  `json:"snow_72_in"`
	BaseDepthIn *int      `json:"base_depth_in"`
	LiftsOpen   *int      `json:"lifts_open"`
	TrailsOpen  *int      `json:"trails_open"`
	Surface     *string   `json:"surface"`
	OpenFlag    *int      `json:"open_flag"`
	Source      string    `json:"source"`
	ObservedAt  time.Time `json:"observed_at"`
}

// ForecastReading is one batch of forecast records for a resort.
type ForecastReading struct {
	Daily  []DailyForecastRecord  `json:"daily"`
	Hourly []HourlyForecastRecord `json:"hourly"`
}

// DailyForecastRecord is one forecast day as delivered by the forecast
// adapter, pre-validation. Lift counts ride along when the upstream payload
// includes them so the validator can cross-check open against total.
type DailyForecastRecord struct {
	Date          string   `json:"date"`
	SnowfallIn    float64  `json:"snowfall_in"`
	TempHighF     float64  `json:"temp_high_f"`
	TempLowF      float64  `json:"temp_low_f"`
	WindMph       float64  `json:"wind_mph"`
	CloudCoverPct float64  `json:"cloud_cover_pct"`
	Confidence    string   `json:"confidence"`
	BaseDepthIn   *float64 `json:"base_depth_in,omitempty"`
	LiftsOpen     *int     `json:"lifts_open,omitempty"`
	LiftsTotal    *int     `json:"lifts_total,omitempty"`
}

type HourlyForecastRecord struct {
	Hour          time.Time `json:"hour"`
	SnowfallIn    float64   `json:"snowfall_in"`
	TempF         float64   `json:"temp_f"`
	WindMph       float64   `json:"wind_mph"`
	CloudCoverPct float64   `json:"cloud_cover_pct"`
}

// SnowpackObservation is a snow-telemetry station reading.
type SnowpackObservation struct {
	StationID string  `json:"station_id"`
	Date      string  `json:"date"`
	DepthIn   float64 `json:"depth_in"`
	SweIn     float64 `json:"swe_in"`
}

// AvalancheObservation is a regional avalanche bulletin entry.
type AvalancheObservation struct {
	Date        string `json:"date"`
	DangerLevel int    `json:"danger_level"`
	Summary     string `json:"summary"`
}
