package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"snowchase/basecamp/internal/common"
	"snowchase/basecamp/internal/constants"
	"snowchase/basecamp/internal/db/repositories"
	"snowchase/basecamp/internal/models/dtos"
	"snowchase/basecamp/internal/models/entities"
	gormModels "snowchase/basecamp/internal/models/gorm"
)

var ErrResortNotFound = errors.New("resort not found")

// ResortService serves the read side: resort lists with canonical conditions
// and the full detail view with forecast and telemetry.
type ResortService struct {
	resorts    *repositories.ResortRepository
	conditions *repositories.ConditionsRepo
	forecasts  *repositories.ForecastRepo
	telemetry  *repositories.TelemetryRepo
	cache      common.CacheInterface

	listTTL   time.Duration
	detailTTL time.Duration
}

func NewResortService(
	resorts *repositories.ResortRepository,
	conditions *repositories.ConditionsRepo,
	forecasts *repositories.ForecastRepo,
	telemetry *repositories.TelemetryRepo,
	cache common.CacheInterface,
	listTTL, detailTTL time.Duration,
) *ResortService {
	return &ResortService{
		resorts:    resorts,
		conditions: conditions,
		forecasts:  forecasts,
		telemetry:  telemetry,
		cache:      cache,
		listTTL:    listTTL,
		detailTTL:  detailTTL,
	}
}

// ListResorts returns every resort with its canonical conditions snapshot.
// Resorts without conditions rows still appear, with a nil snapshot.
func (s *ResortService) ListResorts(ctx context.Context) ([]dtos.ResortSummary, error) {
	val, err := s.cache.GetOrSet(constants.CacheKeyResortList(), s.listTTL, func() (any, error) {
		return s.listResorts(ctx)
	})
	if err != nil {
		return nil, err
	}

	summaries, ok := val.([]dtos.ResortSummary)
	if !ok {
		return s.listResorts(ctx)
	}
	return summaries, nil
}

func (s *ResortService) listResorts(ctx context.Context) ([]dtos.ResortSummary, error) {
	resorts, err := s.resorts.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load resorts: %w", err)
	}

	conditions, err := s.conditions.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load conditions: %w", err)
	}

	byResort := make(map[string]*gormModels.ResortConditions, len(conditions))
	for i := range conditions {
		byResort[conditions[i].ResortID] = &conditions[i]
	}

	summaries := make([]dtos.ResortSummary, 0, len(resorts))
	for _, r := range resorts {
		summaries = append(summaries, toResortSummary(r, byResort[r.ID]))
	}
	return summaries, nil
}

// GetResortDetail returns the full view for one resort: summary, conditions,
// the forecast window, and the latest telemetry. Returns ErrResortNotFound
// for an unknown slug. The slug resolves outside the cache so the detail
// entry is keyed by resort id, which is what writers invalidate.
func (s *ResortService) GetResortDetail(ctx context.Context, slug string) (*dtos.ResortDetail, error) {
	resort, err := s.resorts.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrResortNotFound
		}
		return nil, fmt.Errorf("failed to load resort: %w", err)
	}

	val, err := s.cache.GetOrSet(constants.CacheKeyResortDetail(resort.ID), s.detailTTL, func() (any, error) {
		return s.getResortDetail(ctx, resort)
	})
	if err != nil {
		return nil, err
	}

	detail, ok := val.(*dtos.ResortDetail)
	if !ok {
		return s.getResortDetail(ctx, resort)
	}
	return detail, nil
}

func (s *ResortService) getResortDetail(ctx context.Context, resort *entities.Resort) (*dtos.ResortDetail, error) {
	conditions, err := s.conditions.GetByResort(ctx, resort.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conditions: %w", err)
	}

	today := time.Now().Format("2006-01-02")
	daily, err := s.forecasts.GetDailyWindow(ctx, resort.ID, today, constants.ForecastWindowDays)
	if err != nil {
		return nil, fmt.Errorf("failed to load forecast: %w", err)
	}

	detail := &dtos.ResortDetail{
		ResortSummary: toResortSummary(*resort, conditions),
		Forecast:      make([]dtos.ForecastDayView, 0, len(daily)),
	}

	for _, d := range daily {
		detail.Forecast = append(detail.Forecast, dtos.ForecastDayView{
			Date:          d.Date,
			SnowfallIn:    d.SnowfallIn,
			TempHighF:     d.TempHighF,
			TempLowF:      d.TempLowF,
			WindMph:       d.WindMph,
			CloudCoverPct: d.CloudCoverPct,
			Confidence:    d.Confidence,
		})
	}

	// Telemetry is best-effort: a missing station or bulletin leaves the
	// fields nil rather than failing the detail page.
	if snowpack, err := s.telemetry.GetLatestSnowpack(ctx, resort.ID); err == nil && snowpack != nil {
		detail.Snowpack = &dtos.SnowpackView{
			StationID: snowpack.StationID,
			Date:      snowpack.Date,
			DepthIn:   snowpack.DepthIn,
			SweIn:     snowpack.SweIn,
		}
	}

	if bulletin, err := s.telemetry.GetLatestBulletin(ctx, resort.RegionID); err == nil && bulletin != nil {
		detail.Avalanche = &dtos.AvalancheView{
			Date:        bulletin.Date,
			DangerLevel: bulletin.DangerLevel,
			Summary:     bulletin.Summary,
		}
	}

	return detail, nil
}

func toResortSummary(r entities.Resort, c *gormModels.ResortConditions) dtos.ResortSummary {
	summary := dtos.ResortSummary{
		ID:           r.ID,
		Slug:         r.Slug,
		Name:         r.Name,
		RegionID:     r.RegionID,
		PassType:     r.PassType,
		DriveMinutes: r.DriveMinutes,
	}

	if c != nil {
		updatedAt := c.UpdatedAt
		view := &dtos.ConditionsView{
			Snow24:     dtos.InchesFromPtr(c.Snow24In),
			Snow48:     dtos.InchesFromPtr(c.Snow48In),
			Snow72:     dtos.InchesFromPtr(c.Snow72In),
			BaseDepth:  dtos.InchesFromIntPtr(c.BaseDepthIn),
			LiftsOpen:  c.LiftsOpen,
			TrailsOpen: c.TrailsOpen,
			Status:     c.Status,
			Source:     c.Source,
			UpdatedAt:  &updatedAt,
		}
		if c.Surface != nil {
			view.Surface = *c.Surface
		}
		summary.Conditions = view
	}

	return summary
}
