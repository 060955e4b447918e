package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"snowchase/basecamp/internal/common"
	"snowchase/basecamp/internal/constants"
	"snowchase/basecamp/internal/db/repositories"
	"snowchase/basecamp/internal/models/dtos"
	"snowchase/basecamp/internal/models/entities"
	gormModels "snowchase/basecamp/internal/models/gorm"
)

// ResortForecastTotal is one resort's summed forecast over the window.
type ResortForecastTotal struct {
	Resort  entities.Resort
	TotalIn float64
	Daily   []gormModels.DailyForecast
}

// RegionSnapshot aggregates a region's forecast picture. AvgIn drives the
// severity tier; BestResort carries the headline number. The asymmetry is
// intentional: a region with one outstanding resort outranks one with
// uniformly decent conditions on the alert feed, while severity still
// reflects the region as a whole.
type RegionSnapshot struct {
	Region      entities.ChaseRegion
	Resorts     []ResortForecastTotal
	BestResort  *ResortForecastTotal
	TotalIn     float64
	AvgIn       float64
	Severity    dtos.Severity
	PeakDays    []string
	PeakDayDate string // the single day with the region's max daily snowfall
}

// SeverityForAverage maps average snowfall per resort onto the severity tier.
func SeverityForAverage(avgIn float64) dtos.Severity {
	switch {
	case avgIn >= constants.SeverityEpicMin:
		return dtos.SeverityEpic
	case avgIn >= constants.SeverityHeavyMin:
		return dtos.SeverityHeavy
	case avgIn >= constants.SeverityModerateMin:
		return dtos.SeverityModerate
	case avgIn >= constants.SeverityLightMin:
		return dtos.SeverityLight
	default:
		return dtos.SeverityNone
	}
}

// ConfidenceForPeakDay grades an alert by how far out the peak snowfall day
// falls. An unparseable or missing date degrades to low.
func ConfidenceForPeakDay(peakDate, today string) string {
	peak, err := time.Parse("2006-01-02", peakDate)
	if err != nil {
		return gormModels.ConfidenceLow
	}
	now, err := time.Parse("2006-01-02", today)
	if err != nil {
		return gormModels.ConfidenceLow
	}

	daysOut := int(peak.Sub(now).Hours() / 24)
	switch {
	case daysOut <= constants.ConfidenceHighMaxDays:
		return gormModels.ConfidenceHigh
	case daysOut <= constants.ConfidenceMediumMaxDays:
		return gormModels.ConfidenceMedium
	default:
		return gormModels.ConfidenceLow
	}
}

// BuildRegionSnapshots aggregates window forecasts per region. Resorts with
// no forecast rows count as zero snowfall; they still dilute the average,
// which is what keeps one-resort wonders out of the heavy tiers.
func BuildRegionSnapshots(regions []entities.ChaseRegion, resorts []entities.Resort, daily []gormModels.DailyForecast) []RegionSnapshot {
	dailyByResort := make(map[string][]gormModels.DailyForecast)
	for _, d := range daily {
		dailyByResort[d.ResortID] = append(dailyByResort[d.ResortID], d)
	}

	resortsByRegion := make(map[string][]entities.Resort)
	for _, r := range resorts {
		resortsByRegion[r.RegionID] = append(resortsByRegion[r.RegionID], r)
	}

	snapshots := make([]RegionSnapshot, 0, len(regions))
	for _, region := range regions {
		snap := RegionSnapshot{Region: region}

		peakDaySet := make(map[string]bool)
		maxDailyIn := 0.0

		for _, resort := range resortsByRegion[region.ID] {
			rt := ResortForecastTotal{Resort: resort, Daily: dailyByResort[resort.ID]}
			for _, d := range rt.Daily {
				rt.TotalIn += d.SnowfallIn
				if d.SnowfallIn >= constants.PeakDayMinInches {
					peakDaySet[d.Date] = true
				}
				if d.SnowfallIn > maxDailyIn {
					maxDailyIn = d.SnowfallIn
					snap.PeakDayDate = d.Date
				}
			}
			snap.TotalIn += rt.TotalIn
			snap.Resorts = append(snap.Resorts, rt)
		}

		for i := range snap.Resorts {
			if snap.BestResort == nil || snap.Resorts[i].TotalIn > snap.BestResort.TotalIn {
				snap.BestResort = &snap.Resorts[i]
			}
		}

		if len(snap.Resorts) > 0 {
			snap.AvgIn = snap.TotalIn / float64(len(snap.Resorts))
		}
		snap.Severity = SeverityForAverage(snap.AvgIn)

		for day := range peakDaySet {
			snap.PeakDays = append(snap.PeakDays, day)
		}
		sort.Strings(snap.PeakDays)

		snapshots = append(snapshots, snap)
	}

	return snapshots
}

// BuildChaseAlerts emits one alert per region whose best resort crosses the
// chase threshold, sorted by expected snowfall descending. The sort is
// stable, so ties keep the natural region order of the input.
func BuildChaseAlerts(snapshots []RegionSnapshot, today string) []dtos.ChaseAlert {
	var alerts []dtos.ChaseAlert

	for _, snap := range snapshots {
		if snap.BestResort == nil || snap.BestResort.TotalIn < constants.ChaseAlertMinInches {
			continue
		}

		alerts = append(alerts, dtos.ChaseAlert{
			RegionID:           snap.Region.ID,
			RegionName:         snap.Region.Name,
			ExpectedSnowfallIn: snap.BestResort.TotalIn,
			BestResort:         snap.BestResort.Resort.Name,
			PeakDays:           snap.PeakDays,
			Confidence:         ConfidenceForPeakDay(snap.PeakDayDate, today),
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].ExpectedSnowfallIn > alerts[j].ExpectedSnowfallIn
	})

	return alerts
}

// ChaseAlertService serves the derived alert feed under cache TTL.
type ChaseAlertService struct {
	resorts   *repositories.ResortRepository
	regions   *repositories.RegionRepository
	forecasts *repositories.ForecastRepo
	cache     common.CacheInterface
	alertTTL  time.Duration
}

func NewChaseAlertService(
	resorts *repositories.ResortRepository,
	regions *repositories.RegionRepository,
	forecasts *repositories.ForecastRepo,
	cache common.CacheInterface,
	alertTTL time.Duration,
) *ChaseAlertService {
	return &ChaseAlertService{
		resorts:   resorts,
		regions:   regions,
		forecasts: forecasts,
		cache:     cache,
		alertTTL:  alertTTL,
	}
}

// Snapshots computes fresh region snapshots for the window starting today.
func (s *ChaseAlertService) Snapshots(ctx context.Context, windowDays int) ([]RegionSnapshot, error) {
	regions, err := s.regions.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load regions: %w", err)
	}

	resorts, err := s.resorts.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load resorts: %w", err)
	}

	today := time.Now().Format("2006-01-02")
	daily, err := s.forecasts.GetAllDailyWindow(ctx, today, windowDays)
	if err != nil {
		return nil, fmt.Errorf("failed to load forecasts: %w", err)
	}

	return BuildRegionSnapshots(regions, resorts, daily), nil
}

// ListAlerts returns the cached alert feed, recomputing on miss. An empty
// feed is a valid result ("no significant storms"), not an error.
func (s *ChaseAlertService) ListAlerts(ctx context.Context, windowDays int) ([]dtos.ChaseAlert, error) {
	key := constants.CacheKeyChaseAlerts(windowDays)

	val, err := s.cache.GetOrSet(key, s.alertTTL, func() (any, error) {
		snapshots, err := s.Snapshots(ctx, windowDays)
		if err != nil {
			return nil, err
		}
		return BuildChaseAlerts(snapshots, time.Now().Format("2006-01-02")), nil
	})
	if err != nil {
		return nil, err
	}

	alerts, ok := val.([]dtos.ChaseAlert)
	if !ok {
		// Cache backend returned a foreign shape (e.g. Redis JSON); recompute.
		snapshots, err := s.Snapshots(ctx, windowDays)
		if err != nil {
			return nil, err
		}
		return BuildChaseAlerts(snapshots, time.Now().Format("2006-01-02")), nil
	}

	return alerts, nil
}
