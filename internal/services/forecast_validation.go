package services

import (
	"fmt"

	"snowchase/basecamp/internal/constants"
	"snowchase/basecamp/internal/models/dtos"
)

// Forecast validation is a pure predicate set. A record failing any rule is
// rejected from the batch before persistence; the rest of the batch proceeds.

// ValidateDailyForecast returns the failing fields for one daily record,
// empty when the record is acceptable.
func ValidateDailyForecast(rec dtos.DailyForecastRecord) []string {
	var failures []string

	if rec.Date == "" {
		failures = append(failures, "date")
	}
	if rec.TempHighF < constants.TempMinF || rec.TempHighF > constants.TempMaxF {
		failures = append(failures, fmt.Sprintf("temp_high_f=%.1f", rec.TempHighF))
	}
	if rec.TempLowF < constants.TempMinF || rec.TempLowF > constants.TempMaxF {
		failures = append(failures, fmt.Sprintf("temp_low_f=%.1f", rec.TempLowF))
	}
	if rec.SnowfallIn < 0 || rec.SnowfallIn > constants.Snow24MaxInches {
		failures = append(failures, fmt.Sprintf("snowfall_in=%.1f", rec.SnowfallIn))
	}
	if rec.BaseDepthIn != nil && (*rec.BaseDepthIn < 0 || *rec.BaseDepthIn > constants.DepthMaxInches) {
		failures = append(failures, fmt.Sprintf("base_depth_in=%.1f", *rec.BaseDepthIn))
	}
	if rec.WindMph < 0 || rec.WindMph > constants.WindMaxMph {
		failures = append(failures, fmt.Sprintf("wind_mph=%.1f", rec.WindMph))
	}
	if rec.CloudCoverPct < 0 || rec.CloudCoverPct > 100 {
		failures = append(failures, fmt.Sprintf("cloud_cover_pct=%.1f", rec.CloudCoverPct))
	}
	if rec.LiftsOpen != nil && rec.LiftsTotal != nil && *rec.LiftsOpen > *rec.LiftsTotal {
		failures = append(failures, fmt.Sprintf("lifts_open=%d>total=%d", *rec.LiftsOpen, *rec.LiftsTotal))
	}

	return failures
}

// ValidateHourlyForecast returns the failing fields for one hourly record.
func ValidateHourlyForecast(rec dtos.HourlyForecastRecord) []string {
	var failures []string

	if rec.Hour.IsZero() {
		failures = append(failures, "hour")
	}
	if rec.TempF < constants.TempMinF || rec.TempF > constants.TempMaxF {
		failures = append(failures, fmt.Sprintf("temp_f=%.1f", rec.TempF))
	}
	if rec.SnowfallIn < 0 || rec.SnowfallIn > constants.Snow24MaxInches {
		failures = append(failures, fmt.Sprintf("snowfall_in=%.1f", rec.SnowfallIn))
	}
	if rec.WindMph < 0 || rec.WindMph > constants.WindMaxMph {
		failures = append(failures, fmt.Sprintf("wind_mph=%.1f", rec.WindMph))
	}
	if rec.CloudCoverPct < 0 || rec.CloudCoverPct > 100 {
		failures = append(failures, fmt.Sprintf("cloud_cover_pct=%.1f", rec.CloudCoverPct))
	}

	return failures
}

// FilterDailyForecasts splits a batch into records fit for persistence and
// per-record rejections keyed by date.
func FilterDailyForecasts(records []dtos.DailyForecastRecord) (valid []dtos.DailyForecastRecord, rejected map[string][]string) {
	rejected = make(map[string][]string)
	for _, rec := range records {
		if failures := ValidateDailyForecast(rec); len(failures) > 0 {
			rejected[rec.Date] = failures
			continue
		}
		valid = append(valid, rec)
	}
	return valid, rejected
}

// FilterHourlyForecasts is FilterDailyForecasts for hourly records.
func FilterHourlyForecasts(records []dtos.HourlyForecastRecord) (valid []dtos.HourlyForecastRecord, rejected map[string][]string) {
	rejected = make(map[string][]string)
	for _, rec := range records {
		if failures := ValidateHourlyForecast(rec); len(failures) > 0 {
			rejected[rec.Hour.Format("2006-01-02T15")] = failures
			continue
		}
		valid = append(valid, rec)
	}
	return valid, rejected
}
