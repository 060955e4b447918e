package dtos

import "time"

// Severity tiers for a region's upcoming snowfall, driven by the average
// forecast total per resort over the scoring window.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityLight    Severity = "light"
	SeverityModerate Severity = "moderate"
	SeverityHeavy    Severity = "heavy"
	SeverityEpic     Severity = "epic"
)

// Region tiers for the ranked view.
type RegionTier string

const (
	TierWithinReach  RegionTier = "within_reach"
	TierWorthTheTrip RegionTier = "worth_the_trip"
)

// ConditionsView is the canonical conditions snapshot served to clients.
type ConditionsView struct {
	Snow24    Inches     `json:"snow_24_in"`
	Snow48    Inches     `json:"snow_48_in"`
	Snow72    Inches     `json:"snow_72_in"`
	BaseDepth Inches     `json:"base_depth_in"`
	LiftsOpen *int       `json:"lifts_open"`
	TrailsOpen *int      `json:"trails_open"`
	Surface   string     `json:"surface,omitempty"`
	Status    string     `json:"status"`
	Source    string     `json:"source,omitempty"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// ResortSummary is one row of the list-resorts view. Conditions is nil when
// no canonical data exists yet for the resort.
type ResortSummary struct {
	ID           string          `json:"id"`
	Slug         string          `json:"slug"`
	Name         string          `json:"name"`
	RegionID     string          `json:"region_id"`
	PassType     string          `json:"pass_type"`
	DriveMinutes *int            `json:"drive_minutes"`
	Conditions   *ConditionsView `json:"conditions"`
}

// ForecastDayView is one served forecast day.
type ForecastDayView struct {
	Date          string  `json:"date"`
	SnowfallIn    float64 `json:"snowfall_in"`
	TempHighF     float64 `json:"temp_high_f"`
	TempLowF      float64 `json:"temp_low_f"`
	WindMph       float64 `json:"wind_mph"`
	CloudCoverPct float64 `json:"cloud_cover_pct"`
	Confidence    string  `json:"confidence"`
}

// SnowpackView is the latest telemetry reading for the resort detail page.
type SnowpackView struct {
	StationID string  `json:"station_id"`
	Date      string  `json:"date"`
	DepthIn   float64 `json:"depth_in"`
	SweIn     float64 `json:"swe_in"`
}

// AvalancheView is the latest regional bulletin for the resort detail page.
type AvalancheView struct {
	Date        string `json:"date"`
	DangerLevel int    `json:"danger_level"`
	Summary     string `json:"summary,omitempty"`
}

// ResortDetail is the full detail view: summary + forecast + telemetry.
type ResortDetail struct {
	ResortSummary
	Forecast  []ForecastDayView `json:"forecast"`
	Snowpack  *SnowpackView     `json:"snowpack"`
	Avalanche *AvalancheView    `json:"avalanche"`
}

// BestResortRef names the resort carrying a region's headline signal.
type BestResortRef struct {
	ResortID   string  `json:"resort_id"`
	Name       string  `json:"name"`
	SnowfallIn float64 `json:"snowfall_in"`
}

// RegionView is one ranked region entry. AvgSnow drives severity; BestResort
// carries the headline number — the asymmetry is intentional.
type RegionView struct {
	RegionID        string        `json:"region_id"`
	Name            string        `json:"name"`
	Severity        Severity      `json:"severity"`
	TotalSnowIn     Inches        `json:"total_snow_in"`
	AvgSnowIn       Inches        `json:"avg_snow_in"`
	BestResort      *BestResortRef `json:"best_resort"`
	MinDriveMinutes *int          `json:"min_drive_minutes"`
	PassTypes       []string      `json:"pass_types"`
	PassMatch       bool          `json:"pass_match"`
	ChaseScore      float64       `json:"chase_score"`
	Score           float64       `json:"score"`
	Tier            RegionTier    `json:"tier"`
}

// RankedRegions is the bounded, tiered ranking served to clients.
// HiddenCount is the number of regions trimmed past the visible cap.
type RankedRegions struct {
	WithinReach  []RegionView `json:"within_reach"`
	WorthTheTrip []RegionView `json:"worth_the_trip"`
	HiddenCount  int          `json:"hidden_count"`
}

// ChaseAlert is a derived, cache-lifetime-only notification that a region's
// best resort crosses the chase threshold.
type ChaseAlert struct {
	RegionID           string   `json:"region_id"`
	RegionName         string   `json:"region_name"`
	ExpectedSnowfallIn float64  `json:"expected_snowfall_in"`
	BestResort         string   `json:"best_resort"`
	PeakDays           []string `json:"peak_days"`
	Confidence         string   `json:"confidence"`
}

// RegionComparisonRow is one resort's line in the region comparison view.
type RegionComparisonRow struct {
	ResortID     string `json:"resort_id"`
	Name         string `json:"name"`
	PassType     string `json:"pass_type"`
	SnowTotalIn  Inches `json:"snow_total_in"`
	DriveMinutes *int   `json:"drive_minutes"`
}

// RegionComparison compares all resorts inside one region.
type RegionComparison struct {
	RegionID string                `json:"region_id"`
	Name     string                `json:"name"`
	Severity Severity              `json:"severity"`
	Resorts  []RegionComparisonRow `json:"resorts"`
}

// WorthKnowingEntry is a recommended resort that significantly outperforms
// the user's current best pass option.
type WorthKnowingEntry struct {
	ResortID      string  `json:"resort_id"`
	Name          string  `json:"name"`
	PassType      string  `json:"pass_type"`
	SnowTotalIn   float64 `json:"snow_total_in"`
	DiffIn        float64 `json:"diff_in"`
	Ratio         float64 `json:"ratio"`
	Score         float64 `json:"score"`
	Justification string  `json:"justification"`
}
