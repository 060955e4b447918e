package gorm

import "time"

// Resort status values derived from the raw open flag.
const (
	ResortStatusOpen   = "open"
	ResortStatusClosed = "closed"
)

// ResortConditions is the canonical merged snapshot for one resort, in
// inches. One row per resort, always derived by the freshness merger and
// never hand-edited.
type ResortConditions struct {
	ID          string    `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ResortID    string    `gorm:"column:resort_id;type:uuid;not null;uniqueIndex" json:"resort_id"`
	Snow24In    *float64  `gorm:"column:snow_24_in" json:"snow_24_in"`
	Snow48In    *float64  `gorm:"column:snow_48_in" json:"snow_48_in"`
	Snow72In    *float64  `gorm:"column:snow_72_in" json:"snow_72_in"`
	BaseDepthIn *int      `gorm:"column:base_depth_in" json:"base_depth_in"`
	LiftsOpen   *int      `gorm:"column:lifts_open" json:"lifts_open"`
	TrailsOpen  *int      `gorm:"column:trails_open" json:"trails_open"`
	Surface     *string   `gorm:"column:surface;type:varchar(100)" json:"surface"`
	Status      string    `gorm:"column:status;type:varchar(10);default:closed" json:"status"`
	Source      string    `gorm:"column:source;type:varchar(50)" json:"source"`
	// Observation time of the newest merged reading, not row mtime. The
	// freshness gate compares against it, so GORM must not auto-touch it.
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (ResortConditions) TableName() string {
	return "resort_conditions"
}
