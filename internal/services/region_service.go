package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"snowchase/basecamp/internal/common"
	"snowchase/basecamp/internal/constants"
	"snowchase/basecamp/internal/db/repositories"
	"snowchase/basecamp/internal/models/dtos"
)

var ErrRegionNotFound = errors.New("region not found")

// RegionService assembles region snapshots into the ranked view and the
// per-region comparison.
type RegionService struct {
	regions    *repositories.RegionRepository
	alerts     *ChaseAlertService
	cache      common.CacheInterface
	rankingTTL time.Duration
}

func NewRegionService(
	regions *repositories.RegionRepository,
	alerts *ChaseAlertService,
	cache common.CacheInterface,
	rankingTTL time.Duration,
) *RegionService {
	return &RegionService{
		regions:    regions,
		alerts:     alerts,
		cache:      cache,
		rankingTTL: rankingTTL,
	}
}

// RankedRegions returns every region scored, tiered by drive time, and
// ordered for the given pass. Results are cached per (pass, window).
func (s *RegionService) RankedRegions(ctx context.Context, passType string, windowDays int) (*dtos.RankedRegions, error) {
	key := constants.CacheKeyRegionRankings(passType, windowDays)

	val, err := s.cache.GetOrSet(key, s.rankingTTL, func() (any, error) {
		return s.rankedRegions(ctx, passType, windowDays)
	})
	if err != nil {
		return nil, err
	}

	ranked, ok := val.(*dtos.RankedRegions)
	if !ok {
		return s.rankedRegions(ctx, passType, windowDays)
	}
	return ranked, nil
}

func (s *RegionService) rankedRegions(ctx context.Context, passType string, windowDays int) (*dtos.RankedRegions, error) {
	snapshots, err := s.alerts.Snapshots(ctx, windowDays)
	if err != nil {
		return nil, err
	}

	today := time.Now().Format("2006-01-02")
	alerted := make(map[string]bool)
	for _, a := range BuildChaseAlerts(snapshots, today) {
		alerted[a.RegionID] = true
	}

	inputs := make([]RegionRankInput, 0, len(snapshots))
	for _, snap := range snapshots {
		inputs = append(inputs, snapshotToRankInput(snap, passType, alerted[snap.Region.ID]))
	}

	ranked := RankRegions(inputs)
	return &ranked, nil
}

// snapshotToRankInput flattens a region snapshot for the ranker. The chase
// score is a flat bonus for regions currently carrying an active alert, so
// alert-worthy storms surface even against strong pass and proximity signals.
func snapshotToRankInput(snap RegionSnapshot, passType string, hasAlert bool) RegionRankInput {
	in := RegionRankInput{
		RegionID: snap.Region.ID,
		Name:     snap.Region.Name,
		AvgIn:    snap.AvgIn,
		Severity: snap.Severity,
	}

	passTypes := make(map[string]bool)
	for _, rf := range snap.Resorts {
		if len(rf.Daily) > 0 {
			in.HasForecast = true
		}
		if rf.Resort.PassType != "" {
			passTypes[rf.Resort.PassType] = true
		}
		if rf.Resort.DriveMinutes != nil {
			if in.DriveMinutes == nil || *rf.Resort.DriveMinutes < *in.DriveMinutes {
				mins := *rf.Resort.DriveMinutes
				in.DriveMinutes = &mins
			}
		}
	}

	for pt := range passTypes {
		in.PassTypes = append(in.PassTypes, pt)
	}
	sort.Strings(in.PassTypes)
	in.PassMatch = passType != "" && passTypes[passType]

	if snap.BestResort != nil {
		in.SnowIn = snap.BestResort.TotalIn
		in.BestResort = &dtos.BestResortRef{
			ResortID:   snap.BestResort.Resort.ID,
			Name:       snap.BestResort.Resort.Name,
			SnowfallIn: snap.BestResort.TotalIn,
		}
	}

	if hasAlert {
		in.ChaseScore = constants.ScoreChaseAlertBonus
	}

	return in
}

// RegionComparison lists every resort in one region with its window total,
// for the side-by-side view. Returns ErrRegionNotFound for an unknown id.
func (s *RegionService) RegionComparison(ctx context.Context, regionID string, windowDays int) (*dtos.RegionComparison, error) {
	if _, err := s.regions.GetByID(ctx, regionID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRegionNotFound
		}
		return nil, fmt.Errorf("failed to load region: %w", err)
	}

	key := constants.CacheKeyRegionComparison(regionID, windowDays)

	val, err := s.cache.GetOrSet(key, s.rankingTTL, func() (any, error) {
		return s.regionComparison(ctx, regionID, windowDays)
	})
	if err != nil {
		return nil, err
	}

	comparison, ok := val.(*dtos.RegionComparison)
	if !ok {
		return s.regionComparison(ctx, regionID, windowDays)
	}
	return comparison, nil
}

func (s *RegionService) regionComparison(ctx context.Context, regionID string, windowDays int) (*dtos.RegionComparison, error) {
	snapshots, err := s.alerts.Snapshots(ctx, windowDays)
	if err != nil {
		return nil, err
	}

	for _, snap := range snapshots {
		if snap.Region.ID != regionID {
			continue
		}

		comparison := &dtos.RegionComparison{
			RegionID: snap.Region.ID,
			Name:     snap.Region.Name,
			Severity: snap.Severity,
			Resorts:  make([]dtos.RegionComparisonRow, 0, len(snap.Resorts)),
		}

		for _, rf := range snap.Resorts {
			total := dtos.UnknownInches()
			if len(rf.Daily) > 0 {
				total = dtos.KnownInches(rf.TotalIn)
			}
			comparison.Resorts = append(comparison.Resorts, dtos.RegionComparisonRow{
				ResortID:     rf.Resort.ID,
				Name:         rf.Resort.Name,
				PassType:     rf.Resort.PassType,
				SnowTotalIn:  total,
				DriveMinutes: rf.Resort.DriveMinutes,
			})
		}

		return comparison, nil
	}

	return nil, ErrRegionNotFound
}
