package constants

import "fmt"

// Cache keys are a stable composite of data-kind + resort/region id + window.
// Writers invalidate these explicitly; TTLs are a backstop, not the primary
// freshness mechanism.

// Key-family prefixes. Derived views vary by pass type, window, and radius,
// so sweep-time invalidation deletes whole families by prefix rather than
// enumerating every parameter combination.
const (
	CachePrefixRegionRankings   = "region_rankings:"
	CachePrefixRegionComparison = "region_comparison:"
	CachePrefixChaseAlerts      = "chase_alerts:"
	CachePrefixWorthKnowing     = "worth_knowing:"
)

func CacheKeyResortConditions(resortID string) string {
	return fmt.Sprintf("conditions:%s", resortID)
}

func CacheKeyResortDetail(resortID string) string {
	return fmt.Sprintf("resort_detail:%s", resortID)
}

func CacheKeyResortList() string {
	return "resort_list"
}

func CacheKeyRegionRankings(passType string, windowDays int) string {
	return fmt.Sprintf("%s%s:%dd", CachePrefixRegionRankings, passType, windowDays)
}

func CacheKeyRegionComparison(regionID string, windowDays int) string {
	return fmt.Sprintf("%s%s:%dd", CachePrefixRegionComparison, regionID, windowDays)
}

func CacheKeyChaseAlerts(windowDays int) string {
	return fmt.Sprintf("%s%dd", CachePrefixChaseAlerts, windowDays)
}

func CacheKeyWorthKnowing(passType string, windowDays int, radiusMinutes int) string {
	return fmt.Sprintf("%s%s:%dd:%dm", CachePrefixWorthKnowing, passType, windowDays, radiusMinutes)
}

func CacheKeyNarrative(resortID string, windowDays int) string {
	return fmt.Sprintf("narrative:%s:%dd", resortID, windowDays)
}
