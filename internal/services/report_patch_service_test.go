package services

import (
	"context"
	"testing"
	"time"

	"snowchase/basecamp/internal/db/repositories"
	"snowchase/basecamp/internal/models/dtos"
)

func newPatchService(t *testing.T) (*ReportPatchService, *repositories.SnowReportRepo) {
	t.Helper()
	repo := repositories.NewSnowReportRepo(newTestDB(t))
	return NewReportPatchService(repo), repo
}

func TestReconcile_NewReportInserts(t *testing.T) {
	svc, repo := newPatchService(t)
	ctx := context.Background()

	scraped := &dtos.ScrapedReport{
		ReportDate:   "2026-02-01",
		Snowfall24Cm: floatPtr(30),
		LiftsOpen:    intPtr(8),
	}

	result, err := svc.Reconcile(ctx, "resort-1", scraped)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if !result.Created {
		t.Errorf("Expected Created, got %+v", result)
	}

	stored, err := repo.GetByResortAndDate(ctx, "resort-1", "2026-02-01")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if stored == nil {
		t.Fatal("Expected stored report, got nil")
	}
	if stored.Snowfall24Cm == nil || *stored.Snowfall24Cm != 30 {
		t.Errorf("Expected snowfall 30cm, got %v", stored.Snowfall24Cm)
	}
	if stored.OpenFlag != 2 {
		t.Errorf("Expected default open flag 2, got %d", stored.OpenFlag)
	}
}

func TestReconcile_IdenticalReportIsNoOp(t *testing.T) {
	svc, repo := newPatchService(t)
	ctx := context.Background()

	scraped := &dtos.ScrapedReport{
		ReportDate:   "2026-02-01",
		Snowfall24Cm: floatPtr(30),
		BaseDepthCm:  floatPtr(150),
		LiftsOpen:    intPtr(8),
		OpenFlag:     intPtr(1),
	}

	if _, err := svc.Reconcile(ctx, "resort-1", scraped); err != nil {
		t.Fatalf("first Reconcile failed: %v", err)
	}

	first, _ := repo.GetByResortAndDate(ctx, "resort-1", "2026-02-01")

	result, err := svc.Reconcile(ctx, "resort-1", scraped)
	if err != nil {
		t.Fatalf("second Reconcile failed: %v", err)
	}
	if !result.NoOp {
		t.Errorf("Expected NoOp for identical report, got %+v", result)
	}

	// A no-op must not touch the row.
	second, _ := repo.GetByResortAndDate(ctx, "resort-1", "2026-02-01")
	if !second.UpdatedAt.Equal(first.UpdatedAt) {
		t.Errorf("Expected updated_at untouched on no-op, got %v then %v", first.UpdatedAt, second.UpdatedAt)
	}
}

func TestReconcile_ChangedFieldPatchesOnlyThatColumn(t *testing.T) {
	svc, repo := newPatchService(t)
	ctx := context.Background()

	if _, err := svc.Reconcile(ctx, "resort-1", &dtos.ScrapedReport{
		ReportDate:   "2026-02-01",
		Snowfall24Cm: floatPtr(30),
		BaseDepthCm:  floatPtr(150),
		Surface:      strPtr("packed powder"),
	}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	result, err := svc.Reconcile(ctx, "resort-1", &dtos.ScrapedReport{
		ReportDate:   "2026-02-01",
		Snowfall24Cm: floatPtr(45),
		BaseDepthCm:  floatPtr(150),
		Surface:      strPtr("packed powder"),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if !result.Updated {
		t.Fatalf("Expected Updated, got %+v", result)
	}
	if len(result.ChangedFields) != 1 || result.ChangedFields[0] != "snowfall_24_cm" {
		t.Errorf("Expected only snowfall_24_cm changed, got %v", result.ChangedFields)
	}

	stored, _ := repo.GetByResortAndDate(ctx, "resort-1", "2026-02-01")
	if stored.Snowfall24Cm == nil || *stored.Snowfall24Cm != 45 {
		t.Errorf("Expected snowfall 45cm, got %v", stored.Snowfall24Cm)
	}
	if stored.BaseDepthCm == nil || *stored.BaseDepthCm != 150 {
		t.Errorf("Expected base depth preserved at 150cm, got %v", stored.BaseDepthCm)
	}
}

func TestReconcile_NilFieldNeverClearsStoredValue(t *testing.T) {
	svc, repo := newPatchService(t)
	ctx := context.Background()

	if _, err := svc.Reconcile(ctx, "resort-1", &dtos.ScrapedReport{
		ReportDate:   "2026-02-01",
		Snowfall24Cm: floatPtr(30),
		BaseDepthCm:  floatPtr(150),
	}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	// Later scrape failed to extract the base depth.
	result, err := svc.Reconcile(ctx, "resort-1", &dtos.ScrapedReport{
		ReportDate:   "2026-02-01",
		Snowfall24Cm: floatPtr(30),
	})
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if !result.NoOp {
		t.Errorf("Expected NoOp when only missing fields differ, got %+v", result)
	}

	stored, _ := repo.GetByResortAndDate(ctx, "resort-1", "2026-02-01")
	if stored.BaseDepthCm == nil || *stored.BaseDepthCm != 150 {
		t.Errorf("Expected base depth retained, got %v", stored.BaseDepthCm)
	}
}

func TestReconcile_SourceTimeChangeDetected(t *testing.T) {
	svc, _ := newPatchService(t)
	ctx := context.Background()

	t1 := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 2, 1, 14, 0, 0, 0, time.UTC)

	if _, err := svc.Reconcile(ctx, "resort-1", &dtos.ScrapedReport{
		ReportDate: "2026-02-01",
		UpdatedAt:  &t1,
	}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	result, err := svc.Reconcile(ctx, "resort-1", &dtos.ScrapedReport{
		ReportDate: "2026-02-01",
		UpdatedAt:  &t2,
	})
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if !result.Updated {
		t.Fatalf("Expected Updated on source time change, got %+v", result)
	}
	if len(result.ChangedFields) != 1 || result.ChangedFields[0] != "source_time" {
		t.Errorf("Expected source_time changed, got %v", result.ChangedFields)
	}
}

func TestReconcile_MissingReportDateFails(t *testing.T) {
	svc, _ := newPatchService(t)

	if _, err := svc.Reconcile(context.Background(), "resort-1", &dtos.ScrapedReport{}); err == nil {
		t.Error("Expected error for missing report date")
	}
}
