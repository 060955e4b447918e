package services

import (
	"math"
	"sort"

	"snowchase/basecamp/internal/constants"
	"snowchase/basecamp/internal/models/dtos"
)

// RegionRankInput is one region's ranking signal set, assembled from a
// snapshot plus request-time user parameters (pass type).
type RegionRankInput struct {
	RegionID     string
	Name         string
	SnowIn       float64 // best-resort window total, the headline signal
	AvgIn        float64
	HasForecast  bool // false when no forecast rows existed for the region
	Severity     dtos.Severity
	BestResort   *dtos.BestResortRef
	DriveMinutes *int // minimum across the region's resorts; nil when unknown
	PassTypes    []string
	PassMatch    bool
	ChaseScore   float64
}

// CompositeScore is the ranking's main behavioral contract:
//
//	2×snow + 20×passMatch + max(0, 10 − driveHours) + chaseScore
//
// Pass match is worth roughly 10 inches of snow and proximity up to 10
// points, so a close on-pass region with modest snow can outrank a distant
// off-pass dump. Do not retune these weights casually.
func CompositeScore(in RegionRankInput) float64 {
	score := constants.ScoreSnowWeight * in.SnowIn

	if in.PassMatch {
		score += constants.ScorePassMatchBonus
	}

	if in.DriveMinutes != nil {
		driveHours := float64(*in.DriveMinutes) / 60
		score += math.Max(0, constants.ScoreProximityMax-driveHours)
	}

	return score + in.ChaseScore
}

// RankRegions splits regions into "within reach" and "worth the trip" tiers
// and orders each. With no drive-time data anywhere it falls back to a flat
// scored list capped at the visible maximum, with the remainder counted as
// hidden.
func RankRegions(inputs []RegionRankInput) dtos.RankedRegions {
	hasDriveData := false
	for _, in := range inputs {
		if in.DriveMinutes != nil {
			hasDriveData = true
			break
		}
	}

	if !hasDriveData {
		return rankWithoutDriveData(inputs)
	}

	var near, far []RegionRankInput
	for _, in := range inputs {
		if in.DriveMinutes != nil && *in.DriveMinutes <= constants.WithinReachMaxMinutes {
			near = append(near, in)
		} else {
			far = append(far, in)
		}
	}

	// Within reach: zero-snow regions only survive when the user's pass
	// matches there.
	var within []RegionRankInput
	for _, in := range near {
		if in.SnowIn <= 0 && !in.PassMatch {
			continue
		}
		within = append(within, in)
	}
	sort.SliceStable(within, func(i, j int) bool {
		return CompositeScore(within[i]) > CompositeScore(within[j])
	})

	// Worth the trip: needs real snow to justify the travel. Pass match
	// first, snowfall second.
	var worth []RegionRankInput
	for _, in := range far {
		if in.SnowIn < constants.WorthTripMinInches {
			continue
		}
		worth = append(worth, in)
	}
	sort.SliceStable(worth, func(i, j int) bool {
		if worth[i].PassMatch != worth[j].PassMatch {
			return worth[i].PassMatch
		}
		return worth[i].SnowIn > worth[j].SnowIn
	})

	return dtos.RankedRegions{
		WithinReach:  toViews(within, dtos.TierWithinReach),
		WorthTheTrip: toViews(worth, dtos.TierWorthTheTrip),
	}
}

func rankWithoutDriveData(inputs []RegionRankInput) dtos.RankedRegions {
	var kept []RegionRankInput
	for _, in := range inputs {
		if in.SnowIn < constants.NearZeroSnowInches && !in.PassMatch {
			continue
		}
		kept = append(kept, in)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return CompositeScore(kept[i]) > CompositeScore(kept[j])
	})

	hidden := 0
	if len(kept) > constants.MaxVisibleRegions {
		hidden = len(kept) - constants.MaxVisibleRegions
		kept = kept[:constants.MaxVisibleRegions]
	}

	return dtos.RankedRegions{
		WithinReach: toViews(kept, dtos.TierWithinReach),
		HiddenCount: hidden,
	}
}

func toViews(inputs []RegionRankInput, tier dtos.RegionTier) []dtos.RegionView {
	views := make([]dtos.RegionView, 0, len(inputs))
	for _, in := range inputs {
		totalSnow := dtos.UnknownInches()
		avgSnow := dtos.UnknownInches()
		if in.HasForecast {
			totalSnow = dtos.KnownInches(in.SnowIn)
			avgSnow = dtos.KnownInches(in.AvgIn)
		}
		views = append(views, dtos.RegionView{
			RegionID:        in.RegionID,
			Name:            in.Name,
			Severity:        in.Severity,
			TotalSnowIn:     totalSnow,
			AvgSnowIn:       avgSnow,
			BestResort:      in.BestResort,
			MinDriveMinutes: in.DriveMinutes,
			PassTypes:       in.PassTypes,
			PassMatch:       in.PassMatch,
			ChaseScore:      in.ChaseScore,
			Score:           CompositeScore(in),
			Tier:            tier,
		})
	}
	return views
}
