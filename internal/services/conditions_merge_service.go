package services

import (
	"context"
	"fmt"
	"math"

	"snowchase/basecamp/internal/common"
	"snowchase/basecamp/internal/constants"
	"snowchase/basecamp/internal/db/repositories"
	"snowchase/basecamp/internal/models/dtos"
	gormModels "snowchase/basecamp/internal/models/gorm"
)

// ConvertSnowfallCmToIn converts snowfall centimeters to inches, rounded to
// one decimal.
func ConvertSnowfallCmToIn(cm float64) float64 {
	return math.Round(cm*constants.CmToInches*10) / 10
}

// ConvertDepthCmToIn converts depth centimeters to inches, rounded to the
// nearest integer.
func ConvertDepthCmToIn(cm float64) int {
	return int(math.Round(cm * constants.CmToInches))
}

// StatusFromOpenFlag maps the raw source open flag onto the status enum.
// Flag 1 means open; everything else collapses to closed.
func StatusFromOpenFlag(flag int) string {
	if flag == 1 {
		return gormModels.ResortStatusOpen
	}
	return gormModels.ResortStatusClosed
}

// NormalizeSnowReport converts a stored centimeter-based snow report into
// the canonical inches-based reading the merger accepts.
func NormalizeSnowReport(report *gormModels.SnowReport) dtos.ConditionsReading {
	reading := dtos.ConditionsReading{
		ResortID:   report.ResortID,
		LiftsOpen:  report.LiftsOpen,
		TrailsOpen: report.TrailsOpen,
		Surface:    report.Surface,
		Source:     report.Source,
		ObservedAt: report.UpdatedAt,
	}
	if report.SourceTime != nil {
		reading.ObservedAt = *report.SourceTime
	}

	flag := report.OpenFlag
	reading.OpenFlag = &flag

	if report.Snowfall24Cm != nil {
		v := ConvertSnowfallCmToIn(*report.Snowfall24Cm)
		reading.Snow24In = &v
	}
	if report.Snowfall48Cm != nil {
		v := ConvertSnowfallCmToIn(*report.Snowfall48Cm)
		reading.Snow48In = &v
	}
	if report.Snowfall72Cm != nil {
		v := ConvertSnowfallCmToIn(*report.Snowfall72Cm)
		reading.Snow72In = &v
	}
	if report.BaseDepthCm != nil {
		v := ConvertDepthCmToIn(*report.BaseDepthCm)
		reading.BaseDepthIn = &v
	}

	return reading
}

// MergeConditions combines the current canonical row with an incoming
// reading. Pure: no hidden state, no clock. Rules:
//   - freshness gate: an incoming reading not newer than the stored row is
//     skipped entirely (changed == false)
//   - only non-nil incoming fields overwrite; a nil incoming field never
//     clears an existing value
//   - status derives from the open flag when present
func MergeConditions(current *gormModels.ResortConditions, incoming dtos.ConditionsReading) (gormModels.ResortConditions, bool) {
	if current != nil && !incoming.ObservedAt.After(current.UpdatedAt) {
		return *current, false
	}

	var merged gormModels.ResortConditions
	if current != nil {
		merged = *current
	} else {
		merged.ResortID = incoming.ResortID
		merged.Status = gormModels.ResortStatusClosed
	}

	if incoming.Snow24In != nil {
		merged.Snow24In = incoming.Snow24In
	}
	if incoming.Snow48In != nil {
		merged.Snow48In = incoming.Snow48In
	}
	if incoming.Snow72In != nil {
		merged.Snow72In = incoming.Snow72In
	}
	if incoming.BaseDepthIn != nil {
		merged.BaseDepthIn = incoming.BaseDepthIn
	}
	if incoming.LiftsOpen != nil {
		merged.LiftsOpen = incoming.LiftsOpen
	}
	if incoming.TrailsOpen != nil {
		merged.TrailsOpen = incoming.TrailsOpen
	}
	if incoming.Surface != nil {
		merged.Surface = incoming.Surface
	}
	if incoming.OpenFlag != nil {
		merged.Status = StatusFromOpenFlag(*incoming.OpenFlag)
	}

	merged.Source = incoming.Source
	merged.UpdatedAt = incoming.ObservedAt

	return merged, true
}

// ConditionsMergeService applies readings to the canonical store and keeps
// the cache honest about it.
type ConditionsMergeService struct {
	conditions *repositories.ConditionsRepo
	cache      common.CacheInterface
}

func NewConditionsMergeService(conditions *repositories.ConditionsRepo, cache common.CacheInterface) *ConditionsMergeService {
	return &ConditionsMergeService{
		conditions: conditions,
		cache:      cache,
	}
}

// Apply merges one reading into the canonical row for its resort. Returns
// false when the freshness gate skipped the write. On a successful write the
// resort's conditions and detail cache entries are invalidated so reads are
// never staler than the last write.
func (s *ConditionsMergeService) Apply(ctx context.Context, incoming dtos.ConditionsReading) (bool, error) {
	if incoming.ResortID == "" {
		return false, fmt.Errorf("reading missing resort id")
	}

	current, err := s.conditions.GetByResort(ctx, incoming.ResortID)
	if err != nil {
		return false, fmt.Errorf("failed to load canonical conditions: %w", err)
	}

	merged, changed := MergeConditions(current, incoming)
	if !changed {
		// Stale source; skipped, not an error.
		return false, nil
	}

	if err := s.conditions.Upsert(ctx, &merged); err != nil {
		return false, fmt.Errorf("failed to upsert canonical conditions: %w", err)
	}

	s.cache.Delete(constants.CacheKeyResortConditions(incoming.ResortID))
	s.cache.Delete(constants.CacheKeyResortDetail(incoming.ResortID))
	s.cache.Delete(constants.CacheKeyResortList())

	return true, nil
}
