package repositories

import (
	"context"
	"errors"

	gormModels "snowchase/basecamp/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// ConditionsRepo handles canonical resort conditions, one row per resort.
type ConditionsRepo struct {
	db *gormlib.DB
}

func NewConditionsRepo(db *gormlib.DB) *ConditionsRepo {
	return &ConditionsRepo{db: db}
}

// GetByResort returns the canonical row for a resort, or nil when none exists yet.
func (r *ConditionsRepo) GetByResort(ctx context.Context, resortID string) (*gormModels.ResortConditions, error) {
	var conditions gormModels.ResortConditions

	err := r.db.WithContext(ctx).
		Where("resort_id = ?", resortID).
		First(&conditions).Error

	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &conditions, nil
}

func (r *ConditionsRepo) GetAll(ctx context.Context) ([]gormModels.ResortConditions, error) {
	var conditions []gormModels.ResortConditions
	if err := r.db.WithContext(ctx).Find(&conditions).Error; err != nil {
		return nil, err
	}
	return conditions, nil
}

// Upsert writes the merged canonical row. The save is a single row-level
// statement so readers never observe a half-written record.
func (r *ConditionsRepo) Upsert(ctx context.Context, conditions *gormModels.ResortConditions) error {
	if conditions.ID != "" {
		return r.db.WithContext(ctx).Save(conditions).Error
	}

	existing := gormModels.ResortConditions{}
	err := r.db.WithContext(ctx).
		Where("resort_id = ?", conditions.ResortID).
		First(&existing).Error

	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return r.db.WithContext(ctx).Create(conditions).Error
		}
		return err
	}

	conditions.ID = existing.ID
	return r.db.WithContext(ctx).Save(conditions).Error
}
