package repositories

import (
	"context"
	"errors"
	"time"

	gormModels "snowchase/basecamp/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// SnowReportRepo handles raw snow report rows, one per (resort, report date).
type SnowReportRepo struct {
	db *gormlib.DB
}

func NewSnowReportRepo(db *gormlib.DB) *SnowReportRepo {
	return &SnowReportRepo{db: db}
}

// GetByResortAndDate returns the stored report for the key, or nil when none exists.
func (r *SnowReportRepo) GetByResortAndDate(ctx context.Context, resortID, reportDate string) (*gormModels.SnowReport, error) {
	var report gormModels.SnowReport

	err := r.db.WithContext(ctx).
		Where("resort_id = ? AND report_date = ?", resortID, reportDate).
		First(&report).Error

	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &report, nil
}

// GetLatestByResort returns the most recent report for a resort, or nil.
func (r *SnowReportRepo) GetLatestByResort(ctx context.Context, resortID string) (*gormModels.SnowReport, error) {
	var report gormModels.SnowReport

	err := r.db.WithContext(ctx).
		Where("resort_id = ?", resortID).
		Order("report_date DESC").
		First(&report).Error

	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &report, nil
}

func (r *SnowReportRepo) Insert(ctx context.Context, report *gormModels.SnowReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

// PatchUpdate writes only the given columns plus updated_at. Callers pass the
// changed-field set computed by the patch reconciler; an empty map is a
// caller bug, not a no-op.
func (r *SnowReportRepo) PatchUpdate(ctx context.Context, reportID string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()

	return r.db.WithContext(ctx).
		Model(&gormModels.SnowReport{}).
		Where("id = ?", reportID).
		Updates(fields).Error
}
