package repositories

import (
	"context"
	"errors"
	"time"

	gormModels "snowchase/basecamp/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// TelemetryRepo handles snowpack readings and avalanche bulletins.
type TelemetryRepo struct {
	db *gormlib.DB
}

func NewTelemetryRepo(db *gormlib.DB) *TelemetryRepo {
	return &TelemetryRepo{db: db}
}

func (r *TelemetryRepo) UpsertSnowpack(ctx context.Context, reading *gormModels.SnowpackReading) error {
	row := gormModels.SnowpackReading{
		ResortID: reading.ResortID,
		Date:     reading.Date,
	}

	assign := gormModels.SnowpackReading{
		StationID: reading.StationID,
		DepthIn:   reading.DepthIn,
		SweIn:     reading.SweIn,
		UpdatedAt: time.Now(),
	}

	return r.db.WithContext(ctx).
		Where("resort_id = ? AND date = ?", reading.ResortID, reading.Date).
		Assign(assign).
		FirstOrCreate(&row).Error
}

func (r *TelemetryRepo) UpsertAvalanche(ctx context.Context, bulletin *gormModels.AvalancheBulletin) error {
	row := gormModels.AvalancheBulletin{
		RegionID: bulletin.RegionID,
		Date:     bulletin.Date,
	}

	assign := gormModels.AvalancheBulletin{
		DangerLevel: bulletin.DangerLevel,
		Summary:     bulletin.Summary,
		UpdatedAt:   time.Now(),
	}

	return r.db.WithContext(ctx).
		Where("region_id = ? AND date = ?", bulletin.RegionID, bulletin.Date).
		Assign(assign).
		FirstOrCreate(&row).Error
}

// GetLatestSnowpack returns the newest reading for a resort, or nil.
func (r *TelemetryRepo) GetLatestSnowpack(ctx context.Context, resortID string) (*gormModels.SnowpackReading, error) {
	var reading gormModels.SnowpackReading

	err := r.db.WithContext(ctx).
		Where("resort_id = ?", resortID).
		Order("date DESC").
		First(&reading).Error

	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &reading, nil
}

// GetLatestBulletin returns the newest avalanche bulletin for a region, or nil.
func (r *TelemetryRepo) GetLatestBulletin(ctx context.Context, regionID string) (*gormModels.AvalancheBulletin, error) {
	var bulletin gormModels.AvalancheBulletin

	err := r.db.WithContext(ctx).
		Where("region_id = ?", regionID).
		Order("date DESC").
		First(&bulletin).Error

	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &bulletin, nil
}
