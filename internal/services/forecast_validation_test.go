package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"snowchase/basecamp/internal/models/dtos"
)

func validDaily(date string) dtos.DailyForecastRecord {
	return dtos.DailyForecastRecord{
		Date:          date,
		SnowfallIn:    4,
		TempHighF:     28,
		TempLowF:      14,
		WindMph:       12,
		CloudCoverPct: 80,
		Confidence:    "high",
	}
}

func TestValidateDailyForecast_AcceptsSaneRecord(t *testing.T) {
	if failures := ValidateDailyForecast(validDaily("2026-02-01")); len(failures) > 0 {
		t.Errorf("Expected no failures, got %v", failures)
	}
}

func TestValidateDailyForecast_RejectsOutOfRangeTemp(t *testing.T) {
	rec := validDaily("2026-02-01")
	rec.TempHighF = 999

	failures := ValidateDailyForecast(rec)
	if len(failures) != 1 {
		t.Fatalf("Expected one failure, got %v", failures)
	}
	if failures[0] != "temp_high_f=999.0" {
		t.Errorf("Expected temp_high_f=999.0, got %q", failures[0])
	}
}

func TestValidateDailyForecast_RejectsLiftsOpenAboveTotal(t *testing.T) {
	rec := validDaily("2026-02-01")
	rec.LiftsOpen = intPtr(12)
	rec.LiftsTotal = intPtr(10)

	failures := ValidateDailyForecast(rec)
	if len(failures) != 1 || !strings.HasPrefix(failures[0], "lifts_open=") {
		t.Errorf("Expected lifts_open failure, got %v", failures)
	}
}

func TestValidateDailyForecast_CollectsMultipleFailures(t *testing.T) {
	rec := validDaily("")
	rec.SnowfallIn = -1
	rec.CloudCoverPct = 150

	failures := ValidateDailyForecast(rec)
	if len(failures) != 3 {
		t.Errorf("Expected 3 failures, got %v", failures)
	}
}

func TestFilterDailyForecasts_DropsOnlyBadRecords(t *testing.T) {
	var batch []dtos.DailyForecastRecord
	for i := 0; i < 10; i++ {
		batch = append(batch, validDaily(fmt.Sprintf("2026-02-%02d", i+1)))
	}
	batch[4].WindMph = 500

	valid, rejected := FilterDailyForecasts(batch)
	if len(valid) != 9 {
		t.Errorf("Expected 9 valid records, got %d", len(valid))
	}
	if len(rejected) != 1 {
		t.Fatalf("Expected 1 rejection, got %v", rejected)
	}
	if _, ok := rejected["2026-02-05"]; !ok {
		t.Errorf("Expected rejection keyed by date, got %v", rejected)
	}
}

func TestValidateHourlyForecast(t *testing.T) {
	good := dtos.HourlyForecastRecord{
		Hour:          time.Date(2026, 2, 1, 14, 0, 0, 0, time.UTC),
		SnowfallIn:    0.5,
		TempF:         20,
		WindMph:       8,
		CloudCoverPct: 40,
	}
	if failures := ValidateHourlyForecast(good); len(failures) > 0 {
		t.Errorf("Expected no failures, got %v", failures)
	}

	bad := good
	bad.Hour = time.Time{}
	bad.TempF = -100
	failures := ValidateHourlyForecast(bad)
	if len(failures) != 2 {
		t.Errorf("Expected 2 failures, got %v", failures)
	}
}

func TestFilterHourlyForecasts_KeysRejectionsByHour(t *testing.T) {
	hour := time.Date(2026, 2, 1, 14, 0, 0, 0, time.UTC)
	batch := []dtos.HourlyForecastRecord{
		{Hour: hour, TempF: 20},
		{Hour: hour.Add(time.Hour), TempF: 200},
	}

	valid, rejected := FilterHourlyForecasts(batch)
	if len(valid) != 1 {
		t.Errorf("Expected 1 valid record, got %d", len(valid))
	}
	if _, ok := rejected["2026-02-01T15"]; !ok {
		t.Errorf("Expected rejection keyed by hour, got %v", rejected)
	}
}
