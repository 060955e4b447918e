package services

import (
	"fmt"
	"math"
	"testing"

	"snowchase/basecamp/internal/models/dtos"
)

func TestCompositeScore(t *testing.T) {
	cases := []struct {
		name string
		in   RegionRankInput
		want float64
	}{
		{
			name: "snow only",
			in:   RegionRankInput{SnowIn: 5},
			want: 10,
		},
		{
			name: "pass match adds 20",
			in:   RegionRankInput{SnowIn: 5, PassMatch: true},
			want: 30,
		},
		{
			name: "proximity full credit at zero drive",
			in:   RegionRankInput{SnowIn: 5, DriveMinutes: intPtr(0)},
			want: 20,
		},
		{
			name: "proximity decays per hour",
			in:   RegionRankInput{SnowIn: 5, DriveMinutes: intPtr(180)},
			want: 17,
		},
		{
			name: "proximity never negative",
			in:   RegionRankInput{SnowIn: 5, DriveMinutes: intPtr(720)},
			want: 10,
		},
		{
			name: "chase score added flat",
			in:   RegionRankInput{SnowIn: 5, ChaseScore: 5},
			want: 15,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := CompositeScore(c.in); math.Abs(got-c.want) > 1e-9 {
				t.Errorf("CompositeScore = %v, want %v", got, c.want)
			}
		})
	}
}

// A close on-pass region with modest snow must outrank a farther off-pass
// region with more snow inside the same tier.
func TestRankRegions_PassMatchOutweighsSnow(t *testing.T) {
	inputs := []RegionRankInput{
		{RegionID: "x", Name: "Region X", SnowIn: 4, HasForecast: true, DriveMinutes: intPtr(0)},
		{RegionID: "y", Name: "Region Y", SnowIn: 2, HasForecast: true, DriveMinutes: intPtr(300), PassMatch: true},
	}

	ranked := RankRegions(inputs)
	if len(ranked.WithinReach) != 2 {
		t.Fatalf("Expected both regions within reach, got %d", len(ranked.WithinReach))
	}
	if ranked.WithinReach[0].RegionID != "y" {
		t.Errorf("Expected on-pass Region Y first, got %q", ranked.WithinReach[0].RegionID)
	}
}

func TestRankRegions_Tiering(t *testing.T) {
	inputs := []RegionRankInput{
		{RegionID: "near", SnowIn: 3, HasForecast: true, DriveMinutes: intPtr(360)},
		{RegionID: "far-big", SnowIn: 9, HasForecast: true, DriveMinutes: intPtr(500)},
		{RegionID: "far-small", SnowIn: 5.9, HasForecast: true, DriveMinutes: intPtr(500)},
	}

	ranked := RankRegions(inputs)

	if len(ranked.WithinReach) != 1 || ranked.WithinReach[0].RegionID != "near" {
		t.Errorf("Expected only near region within reach, got %v", ranked.WithinReach)
	}
	// Worth-the-trip demands real snow; 5.9in misses the 6in bar.
	if len(ranked.WorthTheTrip) != 1 || ranked.WorthTheTrip[0].RegionID != "far-big" {
		t.Errorf("Expected only far-big worth the trip, got %v", ranked.WorthTheTrip)
	}
	if ranked.WorthTheTrip[0].Tier != dtos.TierWorthTheTrip {
		t.Errorf("Expected worth_the_trip tier tag, got %q", ranked.WorthTheTrip[0].Tier)
	}
}

func TestRankRegions_WorthTripSortsPassMatchFirst(t *testing.T) {
	inputs := []RegionRankInput{
		{RegionID: "off-pass-dump", SnowIn: 20, HasForecast: true, DriveMinutes: intPtr(500)},
		{RegionID: "on-pass", SnowIn: 7, HasForecast: true, DriveMinutes: intPtr(500), PassMatch: true},
	}

	ranked := RankRegions(inputs)
	if len(ranked.WorthTheTrip) != 2 {
		t.Fatalf("Expected 2 worth-the-trip regions, got %d", len(ranked.WorthTheTrip))
	}
	if ranked.WorthTheTrip[0].RegionID != "on-pass" {
		t.Errorf("Expected pass-match region first, got %q", ranked.WorthTheTrip[0].RegionID)
	}
}

func TestRankRegions_ZeroSnowNeedsPassMatchWithinReach(t *testing.T) {
	inputs := []RegionRankInput{
		{RegionID: "dry", SnowIn: 0, HasForecast: true, DriveMinutes: intPtr(60)},
		{RegionID: "dry-on-pass", SnowIn: 0, HasForecast: true, DriveMinutes: intPtr(60), PassMatch: true},
	}

	ranked := RankRegions(inputs)
	if len(ranked.WithinReach) != 1 || ranked.WithinReach[0].RegionID != "dry-on-pass" {
		t.Errorf("Expected only the on-pass dry region kept, got %v", ranked.WithinReach)
	}
}

func TestRankRegions_NoDriveDataFallback(t *testing.T) {
	var inputs []RegionRankInput
	for i := 0; i < 20; i++ {
		inputs = append(inputs, RegionRankInput{
			RegionID:    fmt.Sprintf("region-%02d", i),
			SnowIn:      float64(i + 1),
			HasForecast: true,
		})
	}
	// Near-zero snow, off pass: dropped entirely.
	inputs = append(inputs, RegionRankInput{RegionID: "trace", SnowIn: 0.4, HasForecast: true})
	// Near-zero snow but on pass: kept.
	inputs = append(inputs, RegionRankInput{RegionID: "trace-on-pass", SnowIn: 0.4, HasForecast: true, PassMatch: true})

	ranked := RankRegions(inputs)

	if len(ranked.WorthTheTrip) != 0 {
		t.Errorf("Expected no worth-the-trip tier without drive data, got %d", len(ranked.WorthTheTrip))
	}
	if len(ranked.WithinReach) != 15 {
		t.Errorf("Expected visible cap of 15, got %d", len(ranked.WithinReach))
	}
	if ranked.HiddenCount != 6 {
		t.Errorf("Expected 6 hidden (21 kept - 15 visible), got %d", ranked.HiddenCount)
	}
	for _, view := range ranked.WithinReach {
		if view.RegionID == "trace" {
			t.Error("Expected near-zero off-pass region dropped")
		}
	}
}

func TestRankRegions_NoForecastEmitsUnknownInches(t *testing.T) {
	inputs := []RegionRankInput{
		{RegionID: "blank", SnowIn: 0, HasForecast: false, DriveMinutes: intPtr(30), PassMatch: true},
	}

	ranked := RankRegions(inputs)
	if len(ranked.WithinReach) != 1 {
		t.Fatalf("Expected 1 region, got %d", len(ranked.WithinReach))
	}
	view := ranked.WithinReach[0]
	if view.TotalSnowIn.Known {
		t.Error("Expected unknown total snow without forecast data")
	}
	if view.AvgSnowIn.Known {
		t.Error("Expected unknown average snow without forecast data")
	}
}
