package jobs

import (
	"testing"
	"time"

	"snowchase/basecamp/internal/common"
	"snowchase/basecamp/internal/constants"
	"snowchase/basecamp/internal/models/entities"
)

// A forecast sweep must clear every cached window and parameter variant of
// the derived views, not just the defaults, or a narrower-window read keeps
// serving pre-sweep data until its TTL.
func TestInvalidateDerivedCaches_ClearsEveryWindowVariant(t *testing.T) {
	cache := common.NewCacheService(60, 120)
	job := NewForecastSyncJob(nil, nil, nil, nil, cache, nil, 50, 0)

	var seeded []string
	for w := 1; w <= constants.ForecastWindowDays; w++ {
		seeded = append(seeded,
			constants.CacheKeyChaseAlerts(w),
			constants.CacheKeyRegionRankings("", w),
			constants.CacheKeyRegionRankings("epic", w),
			constants.CacheKeyRegionComparison("region-1", w),
		)
	}
	seeded = append(seeded,
		constants.CacheKeyWorthKnowing("ikon", 3, 120),
		constants.CacheKeyWorthKnowing("epic", 5, 0),
		constants.CacheKeyResortDetail("resort-1"),
	)
	for _, key := range seeded {
		cache.Set(key, "stale", time.Minute)
	}
	cache.Set(constants.CacheKeyResortConditions("resort-1"), "kept", time.Minute)

	job.invalidateDerivedCaches([]entities.Resort{{ID: "resort-1"}})

	for _, key := range seeded {
		if _, found := cache.Get(key); found {
			t.Errorf("Expected %s invalidated by the sweep", key)
		}
	}
	if _, found := cache.Get(constants.CacheKeyResortConditions("resort-1")); !found {
		t.Error("Expected conditions key untouched, it is not forecast-derived")
	}
}

func TestRejectionField_StripsValue(t *testing.T) {
	cases := []struct {
		failure string
		want    string
	}{
		{"temp_high_f=999.0", "temp_high_f"},
		{"lifts_open=5>total=3", "lifts_open"},
		{"date", "date"},
	}
	for _, tc := range cases {
		if got := rejectionField(tc.failure); got != tc.want {
			t.Errorf("rejectionField(%q) = %q, want %q", tc.failure, got, tc.want)
		}
	}
}
