package repositories

import (
	"context"
	"time"

	gormModels "snowchase/basecamp/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// ForecastRepo handles daily and hourly forecast rows, upserted by date key.
type ForecastRepo struct {
	db *gormlib.DB
}

func NewForecastRepo(db *gormlib.DB) *ForecastRepo {
	return &ForecastRepo{db: db}
}

// UpsertDaily writes one forecast day keyed by (resort, date).
func (r *ForecastRepo) UpsertDaily(ctx context.Context, record *gormModels.DailyForecast) error {
	row := gormModels.DailyForecast{
		ResortID: record.ResortID,
		Date:     record.Date,
	}

	assign := gormModels.DailyForecast{
		SnowfallIn:    record.SnowfallIn,
		TempHighF:     record.TempHighF,
		TempLowF:      record.TempLowF,
		WindMph:       record.WindMph,
		CloudCoverPct: record.CloudCoverPct,
		Confidence:    record.Confidence,
		UpdatedAt:     time.Now(),
	}

	return r.db.WithContext(ctx).
		Where("resort_id = ? AND date = ?", record.ResortID, record.Date).
		Assign(assign).
		FirstOrCreate(&row).Error
}

// UpsertHourly writes one forecast hour keyed by (resort, hour).
func (r *ForecastRepo) UpsertHourly(ctx context.Context, record *gormModels.HourlyForecast) error {
	row := gormModels.HourlyForecast{
		ResortID: record.ResortID,
		Hour:     record.Hour,
	}

	assign := gormModels.HourlyForecast{
		SnowfallIn:    record.SnowfallIn,
		TempF:         record.TempF,
		WindMph:       record.WindMph,
		CloudCoverPct: record.CloudCoverPct,
		UpdatedAt:     time.Now(),
	}

	return r.db.WithContext(ctx).
		Where("resort_id = ? AND hour = ?", record.ResortID, record.Hour).
		Assign(assign).
		FirstOrCreate(&row).Error
}

// GetDailyWindow returns a resort's forecast days in [from, from+days),
// ordered by date ascending. Dates are ISO (YYYY-MM-DD) so string comparison
// matches date comparison.
func (r *ForecastRepo) GetDailyWindow(ctx context.Context, resortID string, from string, days int) ([]gormModels.DailyForecast, error) {
	to, err := addDays(from, days)
	if err != nil {
		return nil, err
	}

	var records []gormModels.DailyForecast
	err = r.db.WithContext(ctx).
		Where("resort_id = ? AND date >= ? AND date < ?", resortID, from, to).
		Order("date ASC").
		Find(&records).Error

	if err != nil {
		return nil, err
	}
	return records, nil
}

// GetAllDailyWindow returns every resort's forecast days in the window,
// for the region-level scorers.
func (r *ForecastRepo) GetAllDailyWindow(ctx context.Context, from string, days int) ([]gormModels.DailyForecast, error) {
	to, err := addDays(from, days)
	if err != nil {
		return nil, err
	}

	var records []gormModels.DailyForecast
	err = r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", from, to).
		Order("resort_id, date ASC").
		Find(&records).Error

	if err != nil {
		return nil, err
	}
	return records, nil
}

func addDays(date string, days int) (string, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, days).Format("2006-01-02"), nil
}
