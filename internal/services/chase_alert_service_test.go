package services

import (
	"testing"

	"snowchase/basecamp/internal/models/dtos"
	"snowchase/basecamp/internal/models/entities"
	gormModels "snowchase/basecamp/internal/models/gorm"
)

func TestSeverityForAverage(t *testing.T) {
	cases := []struct {
		avgIn float64
		want  dtos.Severity
	}{
		{24.0, dtos.SeverityEpic},
		{23.9, dtos.SeverityHeavy},
		{12.0, dtos.SeverityHeavy},
		{11.9, dtos.SeverityModerate},
		{6.0, dtos.SeverityModerate},
		{5.99, dtos.SeverityLight},
		{2.0, dtos.SeverityLight},
		{1.9, dtos.SeverityNone},
		{0, dtos.SeverityNone},
	}
	for _, c := range cases {
		if got := SeverityForAverage(c.avgIn); got != c.want {
			t.Errorf("SeverityForAverage(%v) = %q, want %q", c.avgIn, got, c.want)
		}
	}
}

func TestConfidenceForPeakDay(t *testing.T) {
	today := "2026-02-01"
	cases := []struct {
		peak string
		want string
	}{
		{"2026-02-01", gormModels.ConfidenceHigh},
		{"2026-02-04", gormModels.ConfidenceHigh},
		{"2026-02-05", gormModels.ConfidenceMedium},
		{"2026-02-06", gormModels.ConfidenceMedium},
		{"2026-02-07", gormModels.ConfidenceLow},
		{"not-a-date", gormModels.ConfidenceLow},
		{"", gormModels.ConfidenceLow},
	}
	for _, c := range cases {
		if got := ConfidenceForPeakDay(c.peak, today); got != c.want {
			t.Errorf("ConfidenceForPeakDay(%q) = %q, want %q", c.peak, got, c.want)
		}
	}
}

func testRegionFixture() ([]entities.ChaseRegion, []entities.Resort) {
	regions := []entities.ChaseRegion{
		{ID: "region-1", Name: "Summit County"},
	}
	resorts := []entities.Resort{
		{ID: "resort-a", Name: "North Bowl", RegionID: "region-1"},
		{ID: "resort-b", Name: "South Face", RegionID: "region-1"},
	}
	return regions, resorts
}

func TestBuildRegionSnapshots_MissingForecastDilutesAverage(t *testing.T) {
	regions, resorts := testRegionFixture()

	// Only resort-a has forecast rows; resort-b counts as zero.
	daily := []gormModels.DailyForecast{
		{ResortID: "resort-a", Date: "2026-02-01", SnowfallIn: 8},
		{ResortID: "resort-a", Date: "2026-02-02", SnowfallIn: 4},
	}

	snapshots := BuildRegionSnapshots(regions, resorts, daily)
	if len(snapshots) != 1 {
		t.Fatalf("Expected 1 snapshot, got %d", len(snapshots))
	}

	snap := snapshots[0]
	if snap.TotalIn != 12 {
		t.Errorf("Expected region total 12, got %v", snap.TotalIn)
	}
	if snap.AvgIn != 6 {
		t.Errorf("Expected average 6 over both resorts, got %v", snap.AvgIn)
	}
	if snap.Severity != dtos.SeverityModerate {
		t.Errorf("Expected moderate severity, got %q", snap.Severity)
	}
	if snap.BestResort == nil || snap.BestResort.Resort.ID != "resort-a" {
		t.Errorf("Expected resort-a as best resort, got %+v", snap.BestResort)
	}
	if snap.PeakDayDate != "2026-02-01" {
		t.Errorf("Expected peak day 2026-02-01, got %q", snap.PeakDayDate)
	}
}

func TestBuildRegionSnapshots_PeakDaysDedupedAndSorted(t *testing.T) {
	regions, resorts := testRegionFixture()

	daily := []gormModels.DailyForecast{
		{ResortID: "resort-a", Date: "2026-02-03", SnowfallIn: 5},
		{ResortID: "resort-b", Date: "2026-02-03", SnowfallIn: 4},
		{ResortID: "resort-a", Date: "2026-02-01", SnowfallIn: 3},
		{ResortID: "resort-a", Date: "2026-02-02", SnowfallIn: 1}, // below peak threshold
	}

	snapshots := BuildRegionSnapshots(regions, resorts, daily)
	peakDays := snapshots[0].PeakDays
	if len(peakDays) != 2 {
		t.Fatalf("Expected 2 peak days, got %v", peakDays)
	}
	if peakDays[0] != "2026-02-01" || peakDays[1] != "2026-02-03" {
		t.Errorf("Expected sorted deduped peak days, got %v", peakDays)
	}
}

func TestBuildChaseAlerts_ThresholdOnBestResort(t *testing.T) {
	regions, resorts := testRegionFixture()

	// Best resort at 5.9in: no alert.
	daily := []gormModels.DailyForecast{
		{ResortID: "resort-a", Date: "2026-02-01", SnowfallIn: 5.9},
	}
	snapshots := BuildRegionSnapshots(regions, resorts, daily)
	if alerts := BuildChaseAlerts(snapshots, "2026-02-01"); len(alerts) != 0 {
		t.Errorf("Expected no alerts below threshold, got %v", alerts)
	}

	// Exactly 6.0in: alert fires.
	daily[0].SnowfallIn = 6.0
	snapshots = BuildRegionSnapshots(regions, resorts, daily)
	alerts := BuildChaseAlerts(snapshots, "2026-02-01")
	if len(alerts) != 1 {
		t.Fatalf("Expected one alert at threshold, got %v", alerts)
	}
	if alerts[0].BestResort != "North Bowl" {
		t.Errorf("Expected best resort name in alert, got %q", alerts[0].BestResort)
	}
	if alerts[0].ExpectedSnowfallIn != 6.0 {
		t.Errorf("Expected 6.0in expected snowfall, got %v", alerts[0].ExpectedSnowfallIn)
	}
	if alerts[0].Confidence != gormModels.ConfidenceHigh {
		t.Errorf("Expected high confidence for same-day peak, got %q", alerts[0].Confidence)
	}
}

func TestBuildChaseAlerts_SortedBySnowfallDescending(t *testing.T) {
	regions := []entities.ChaseRegion{
		{ID: "region-1", Name: "Summit County"},
		{ID: "region-2", Name: "Wasatch"},
	}
	resorts := []entities.Resort{
		{ID: "resort-a", Name: "North Bowl", RegionID: "region-1"},
		{ID: "resort-c", Name: "Cottonwood", RegionID: "region-2"},
	}
	daily := []gormModels.DailyForecast{
		{ResortID: "resort-a", Date: "2026-02-01", SnowfallIn: 7},
		{ResortID: "resort-c", Date: "2026-02-01", SnowfallIn: 18},
	}

	alerts := BuildChaseAlerts(BuildRegionSnapshots(regions, resorts, daily), "2026-02-01")
	if len(alerts) != 2 {
		t.Fatalf("Expected 2 alerts, got %d", len(alerts))
	}
	if alerts[0].RegionName != "Wasatch" || alerts[1].RegionName != "Summit County" {
		t.Errorf("Expected alerts sorted by snowfall desc, got %v then %v", alerts[0].RegionName, alerts[1].RegionName)
	}
}
