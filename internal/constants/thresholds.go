package constants

// Unit conversion.
const CmToInches = 0.393701

// Severity tiers, driven by average forecast snowfall (inches) per resort
// across a region over the scoring window.
const (
	SeverityEpicMin     = 24.0
	SeverityHeavyMin    = 12.0
	SeverityModerateMin = 6.0
	SeverityLightMin    = 2.0
)

// Chase alert thresholds (inches).
const (
	ChaseAlertMinInches = 6.0 // best resort total required to emit an alert
	PeakDayMinInches    = 3.0 // per-day snowfall that counts as a peak day
)

// Alert confidence by distance of the peak snowfall day from today.
const (
	ConfidenceHighMaxDays   = 3
	ConfidenceMediumMaxDays = 5
)

// Forward-looking scoring window, days.
const ForecastWindowDays = 5

// Region tiering and composite relevance scoring. The weights are a
// behavioral contract: pass match is worth roughly 10 inches of snow,
// proximity up to 10 points.
const (
	WithinReachMaxMinutes = 360
	WorthTripMinInches    = 6.0

	ScoreSnowWeight      = 2.0
	ScorePassMatchBonus  = 20.0
	ScoreProximityMax    = 10.0
	ScoreChaseAlertBonus = 5.0 // flat bump for regions with an active alert
	MaxVisibleRegions    = 15
	NearZeroSnowInches   = 0.5
)

// Worth-knowing delta engine.
const (
	WorthKnowingMinDiffInches = 4.0
	WorthKnowingMinRatio      = 1.5
	WorthKnowingMaxEntries    = 3
	WorthKnowingDiffWeight    = 0.6
	WorthKnowingRatioWeight   = 0.4
)

// Forecast validation ranges.
const (
	TempMinF        = -40.0
	TempMaxF        = 60.0
	Snow24MaxInches = 60.0
	DepthMaxInches  = 300.0
	WindMaxMph      = 200.0
)
