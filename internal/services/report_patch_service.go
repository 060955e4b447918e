package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"snowchase/basecamp/internal/db/repositories"
	"snowchase/basecamp/internal/models/dtos"
	gormModels "snowchase/basecamp/internal/models/gorm"
)

// default open flag for freshly inserted reports whose source omitted one
const defaultOpenFlag = 2 // closed

// PatchResult describes what a reconciliation pass did for one report.
// ChangedFields makes every update auditable.
type PatchResult struct {
	Created       bool     `json:"created"`
	Updated       bool     `json:"updated"`
	NoOp          bool     `json:"no_op"`
	ChangedFields []string `json:"changed_fields,omitempty"`
}

// ReportPatchService reconciles freshly extracted snow reports against the
// stored row for the same (resort, report date), writing only what changed.
type ReportPatchService struct {
	reports *repositories.SnowReportRepo
}

func NewReportPatchService(reports *repositories.SnowReportRepo) *ReportPatchService {
	return &ReportPatchService{reports: reports}
}

// Reconcile diffs the extracted field set against the stored report. A new
// key inserts; an identical row is a no-op with zero writes; anything else
// patches only the changed columns plus updated_at.
func (s *ReportPatchService) Reconcile(ctx context.Context, resortID string, scraped *dtos.ScrapedReport) (*PatchResult, error) {
	if scraped == nil {
		return nil, fmt.Errorf("nil scraped report for resort %s", resortID)
	}
	if scraped.ReportDate == "" {
		return nil, fmt.Errorf("missing report date for resort %s", resortID)
	}

	existing, err := s.reports.GetByResortAndDate(ctx, resortID, scraped.ReportDate)
	if err != nil {
		return nil, fmt.Errorf("failed to look up report: %w", err)
	}

	if existing == nil {
		report := ScrapedReportToSnowReport(resortID, scraped)
		if err := s.reports.Insert(ctx, report); err != nil {
			return nil, fmt.Errorf("failed to insert report: %w", err)
		}
		return &PatchResult{Created: true}, nil
	}

	fields, names := diffReport(existing, scraped)
	if len(fields) == 0 {
		return &PatchResult{NoOp: true}, nil
	}

	if err := s.reports.PatchUpdate(ctx, existing.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to patch report: %w", err)
	}

	log.Printf("[ReportPatch] Resort %s date %s: patched fields %v", resortID, scraped.ReportDate, names)

	return &PatchResult{Updated: true, ChangedFields: names}, nil
}

// ScrapedReportToSnowReport maps a normalized scraped report onto a storable
// row, defaulting the open flag to closed when the page omitted one.
func ScrapedReportToSnowReport(resortID string, scraped *dtos.ScrapedReport) *gormModels.SnowReport {
	report := &gormModels.SnowReport{
		ResortID:     resortID,
		ReportDate:   scraped.ReportDate,
		Snowfall24Cm: scraped.Snowfall24Cm,
		Snowfall48Cm: scraped.Snowfall48Cm,
		Snowfall72Cm: scraped.Snowfall72Cm,
		BaseDepthCm:  scraped.BaseDepthCm,
		LiftsOpen:    scraped.LiftsOpen,
		TrailsOpen:   scraped.TrailsOpen,
		Surface:      scraped.Surface,
		OpenFlag:     defaultOpenFlag,
		Source:       string(dtos.SourceScrapedReport),
		SourceTime:   scraped.UpdatedAt,
	}
	if scraped.OpenFlag != nil {
		report.OpenFlag = *scraped.OpenFlag
	}
	return report
}

// diffReport computes the changed-column set, excluding identity fields
// (id, resort id, report date, creation time). Fields absent from the
// extraction (nil) are skipped: a scraper that failed to read a value must
// not clear the stored one.
func diffReport(existing *gormModels.SnowReport, scraped *dtos.ScrapedReport) (map[string]interface{}, []string) {
	fields := make(map[string]interface{})
	var names []string

	addFloat := func(column string, stored *float64, extracted *float64) {
		if extracted == nil {
			return
		}
		if stored == nil || *stored != *extracted {
			fields[column] = *extracted
			names = append(names, column)
		}
	}
	addInt := func(column string, stored *int, extracted *int) {
		if extracted == nil {
			return
		}
		if stored == nil || *stored != *extracted {
			fields[column] = *extracted
			names = append(names, column)
		}
	}

	addFloat("snowfall_24_cm", existing.Snowfall24Cm, scraped.Snowfall24Cm)
	addFloat("snowfall_48_cm", existing.Snowfall48Cm, scraped.Snowfall48Cm)
	addFloat("snowfall_72_cm", existing.Snowfall72Cm, scraped.Snowfall72Cm)
	addFloat("base_depth_cm", existing.BaseDepthCm, scraped.BaseDepthCm)
	addInt("lifts_open", existing.LiftsOpen, scraped.LiftsOpen)
	addInt("trails_open", existing.TrailsOpen, scraped.TrailsOpen)

	if scraped.Surface != nil && (existing.Surface == nil || *existing.Surface != *scraped.Surface) {
		fields["surface"] = *scraped.Surface
		names = append(names, "surface")
	}
	if scraped.OpenFlag != nil && existing.OpenFlag != *scraped.OpenFlag {
		fields["open_flag"] = *scraped.OpenFlag
		names = append(names, "open_flag")
	}
	if scraped.UpdatedAt != nil && !equalTimePtr(existing.SourceTime, scraped.UpdatedAt) {
		fields["source_time"] = *scraped.UpdatedAt
		names = append(names, "source_time")
	}

	return fields, names
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
