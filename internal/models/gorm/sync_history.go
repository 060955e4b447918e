package gorm

import "time"

// SyncHistory tracks the last successful run of each ingestion job.
type SyncHistory struct {
	ID         string     `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	Event      string     `gorm:"column:event;type:varchar(30);uniqueIndex"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	LastSyncAt *time.Time `gorm:"column:last_sync_at"`
}

// TableName specifies the table name for GORM
func (SyncHistory) TableName() string {
	return "sync_history"
}
