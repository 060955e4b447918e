package services

import (
	"context"
	"testing"
	"time"

	"snowchase/basecamp/internal/common"
	"snowchase/basecamp/internal/constants"
	"snowchase/basecamp/internal/db/repositories"
	"snowchase/basecamp/internal/models/dtos"
	gormModels "snowchase/basecamp/internal/models/gorm"
)

func TestConvertSnowfallCmToIn(t *testing.T) {
	cases := []struct {
		cm   float64
		want float64
	}{
		{100, 39.4},
		{30, 11.8},
		{0, 0},
		{2.5, 1.0},
	}
	for _, c := range cases {
		if got := ConvertSnowfallCmToIn(c.cm); got != c.want {
			t.Errorf("ConvertSnowfallCmToIn(%v) = %v, want %v", c.cm, got, c.want)
		}
	}
}

func TestConvertDepthCmToIn(t *testing.T) {
	cases := []struct {
		cm   float64
		want int
	}{
		{100, 39},
		{150, 59},
		{0, 0},
	}
	for _, c := range cases {
		if got := ConvertDepthCmToIn(c.cm); got != c.want {
			t.Errorf("ConvertDepthCmToIn(%v) = %v, want %v", c.cm, got, c.want)
		}
	}
}

func TestStatusFromOpenFlag(t *testing.T) {
	if got := StatusFromOpenFlag(1); got != gormModels.ResortStatusOpen {
		t.Errorf("flag 1 = %q, want open", got)
	}
	for _, flag := range []int{0, 2, 3, 99} {
		if got := StatusFromOpenFlag(flag); got != gormModels.ResortStatusClosed {
			t.Errorf("flag %d = %q, want closed", flag, got)
		}
	}
}

func TestNormalizeSnowReport(t *testing.T) {
	sourceTime := time.Date(2026, 2, 1, 7, 30, 0, 0, time.UTC)
	report := &gormModels.SnowReport{
		ResortID:     "resort-1",
		Snowfall24Cm: floatPtr(100),
		BaseDepthCm:  floatPtr(150),
		LiftsOpen:    intPtr(8),
		OpenFlag:     1,
		Source:       string(dtos.SourceScrapedReport),
		SourceTime:   &sourceTime,
		UpdatedAt:    time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
	}

	reading := NormalizeSnowReport(report)

	if reading.Snow24In == nil || *reading.Snow24In != 39.4 {
		t.Errorf("Expected 100cm -> 39.4in, got %v", reading.Snow24In)
	}
	if reading.BaseDepthIn == nil || *reading.BaseDepthIn != 59 {
		t.Errorf("Expected 150cm -> 59in, got %v", reading.BaseDepthIn)
	}
	if reading.Snow48In != nil {
		t.Errorf("Expected nil 48h snowfall, got %v", *reading.Snow48In)
	}
	if !reading.ObservedAt.Equal(sourceTime) {
		t.Errorf("Expected observed-at from source time, got %v", reading.ObservedAt)
	}
	if reading.OpenFlag == nil || *reading.OpenFlag != 1 {
		t.Errorf("Expected open flag carried through, got %v", reading.OpenFlag)
	}
}

func TestNormalizeSnowReport_FallsBackToRowTime(t *testing.T) {
	rowTime := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	reading := NormalizeSnowReport(&gormModels.SnowReport{
		ResortID:  "resort-1",
		UpdatedAt: rowTime,
	})
	if !reading.ObservedAt.Equal(rowTime) {
		t.Errorf("Expected observed-at fallback to row time, got %v", reading.ObservedAt)
	}
}

func TestMergeConditions_NewRow(t *testing.T) {
	observed := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	merged, changed := MergeConditions(nil, dtos.ConditionsReading{
		ResortID:   "resort-1",
		Snow24In:   floatPtr(12.5),
		Source:     "conditions_api",
		ObservedAt: observed,
	})

	if !changed {
		t.Fatal("Expected change for new row")
	}
	if merged.ResortID != "resort-1" {
		t.Errorf("Expected resort id set, got %q", merged.ResortID)
	}
	if merged.Status != gormModels.ResortStatusClosed {
		t.Errorf("Expected default closed status, got %q", merged.Status)
	}
	if !merged.UpdatedAt.Equal(observed) {
		t.Errorf("Expected updated_at = observation time, got %v", merged.UpdatedAt)
	}
}

func TestMergeConditions_FreshnessGateSkipsStale(t *testing.T) {
	current := &gormModels.ResortConditions{
		ResortID:  "resort-1",
		Snow24In:  floatPtr(10),
		UpdatedAt: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
	}

	// Older than stored.
	_, changed := MergeConditions(current, dtos.ConditionsReading{
		ResortID:   "resort-1",
		Snow24In:   floatPtr(20),
		ObservedAt: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
	})
	if changed {
		t.Error("Expected stale reading skipped")
	}

	// Exactly equal is not newer either.
	_, changed = MergeConditions(current, dtos.ConditionsReading{
		ResortID:   "resort-1",
		Snow24In:   floatPtr(20),
		ObservedAt: current.UpdatedAt,
	})
	if changed {
		t.Error("Expected equal-timestamp reading skipped")
	}
}

func TestMergeConditions_NilNeverClears(t *testing.T) {
	current := &gormModels.ResortConditions{
		ResortID:    "resort-1",
		Snow24In:    floatPtr(10),
		BaseDepthIn: intPtr(60),
		Surface:     strPtr("powder"),
		Status:      gormModels.ResortStatusOpen,
		UpdatedAt:   time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
	}

	merged, changed := MergeConditions(current, dtos.ConditionsReading{
		ResortID:   "resort-1",
		Snow24In:   floatPtr(14),
		ObservedAt: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
	})

	if !changed {
		t.Fatal("Expected newer reading applied")
	}
	if *merged.Snow24In != 14 {
		t.Errorf("Expected snow24 overwritten to 14, got %v", *merged.Snow24In)
	}
	if merged.BaseDepthIn == nil || *merged.BaseDepthIn != 60 {
		t.Errorf("Expected base depth preserved, got %v", merged.BaseDepthIn)
	}
	if merged.Surface == nil || *merged.Surface != "powder" {
		t.Errorf("Expected surface preserved, got %v", merged.Surface)
	}
	if merged.Status != gormModels.ResortStatusOpen {
		t.Errorf("Expected status untouched without open flag, got %q", merged.Status)
	}
}

func TestApply_WritesAndInvalidatesCache(t *testing.T) {
	db := newTestDB(t)
	conditionsRepo := repositories.NewConditionsRepo(db)
	cache := common.NewCacheService(60, 120)
	svc := NewConditionsMergeService(conditionsRepo, cache)
	ctx := context.Background()

	detailKey := constants.CacheKeyResortDetail("resort-1")
	cache.Set(detailKey, "stale-detail", time.Minute)

	applied, err := svc.Apply(ctx, dtos.ConditionsReading{
		ResortID:   "resort-1",
		Snow24In:   floatPtr(8.5),
		OpenFlag:   intPtr(1),
		Source:     "conditions_api",
		ObservedAt: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !applied {
		t.Fatal("Expected first reading applied")
	}

	if _, found := cache.Get(detailKey); found {
		t.Error("Expected detail cache entry invalidated on write")
	}

	stored, err := conditionsRepo.GetByResort(ctx, "resort-1")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if stored == nil {
		t.Fatal("Expected stored conditions row")
	}
	if stored.Snow24In == nil || *stored.Snow24In != 8.5 {
		t.Errorf("Expected 8.5in stored, got %v", stored.Snow24In)
	}
	if stored.Status != gormModels.ResortStatusOpen {
		t.Errorf("Expected open status from flag 1, got %q", stored.Status)
	}
}

func TestApply_StaleReadingSkipsWrite(t *testing.T) {
	db := newTestDB(t)
	conditionsRepo := repositories.NewConditionsRepo(db)
	cache := common.NewCacheService(60, 120)
	svc := NewConditionsMergeService(conditionsRepo, cache)
	ctx := context.Background()

	if _, err := svc.Apply(ctx, dtos.ConditionsReading{
		ResortID:   "resort-1",
		Snow24In:   floatPtr(10),
		ObservedAt: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("seed Apply failed: %v", err)
	}

	applied, err := svc.Apply(ctx, dtos.ConditionsReading{
		ResortID:   "resort-1",
		Snow24In:   floatPtr(99),
		ObservedAt: time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if applied {
		t.Error("Expected stale reading skipped")
	}

	stored, _ := conditionsRepo.GetByResort(ctx, "resort-1")
	if stored.Snow24In == nil || *stored.Snow24In != 10 {
		t.Errorf("Expected stored value unchanged at 10, got %v", stored.Snow24In)
	}
}
