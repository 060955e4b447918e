package repositories

import (
	"context"
	"errors"
	"time"

	gormModels "snowchase/basecamp/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// SyncHistoryRepo handles sync history operations
type SyncHistoryRepo struct {
	db *gormlib.DB
}

// NewSyncHistoryRepo creates a new sync history repository
func NewSyncHistoryRepo(db *gormlib.DB) *SyncHistoryRepo {
	return &SyncHistoryRepo{db: db}
}

// RecordSync records a successful run of the given sync event.
func (r *SyncHistoryRepo) RecordSync(ctx context.Context, event string) error {
	now := time.Now()

	syncHistory := gormModels.SyncHistory{
		Event:      event,
		LastSyncAt: &now,
	}

	// Upsert: if a record exists for this event, update last_sync_at.
	// Otherwise, create a new record.
	err := r.db.WithContext(ctx).
		Where("event = ?", event).
		Assign(gormModels.SyncHistory{LastSyncAt: &now}).
		FirstOrCreate(&syncHistory).Error

	return err
}

// GetLastSyncTime retrieves the most recent sync timestamp for an event.
// Used to check if we should run initial sync on app restart.
func (r *SyncHistoryRepo) GetLastSyncTime(ctx context.Context, event string) (*time.Time, error) {
	var syncHistory gormModels.SyncHistory

	err := r.db.WithContext(ctx).
		Where("event = ?", event).
		Order("last_sync_at DESC").
		First(&syncHistory).Error

	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, nil // No sync history found
		}
		return nil, err
	}

	return syncHistory.LastSyncAt, nil
}
