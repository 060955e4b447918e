package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"snowchase/basecamp/internal/common"
	"snowchase/basecamp/internal/constants"
	"snowchase/basecamp/internal/db/repositories"
	"snowchase/basecamp/internal/models/dtos"
)

// CandidateResort is one resort with its forecast snow total for the active
// time window.
type CandidateResort struct {
	ResortID     string
	Name         string
	PassType     string
	SnowTotalIn  float64
	DriveMinutes *int
}

// ComputeWorthKnowing finds resorts outside the user's pass set that
// significantly outperform the user's best forecasted pass resort. A
// candidate qualifies on absolute differential OR relative ratio — either
// alone is enough. Empty inputs yield an empty list, never an error.
func ComputeWorthKnowing(userResorts, allResorts []CandidateResort, userPassType string, radiusMinutes int) []dtos.WorthKnowingEntry {
	if len(userResorts) == 0 || len(allResorts) == 0 {
		return nil
	}

	best := userResorts[0]
	for _, r := range userResorts[1:] {
		if r.SnowTotalIn > best.SnowTotalIn {
			best = r
		}
	}

	owned := make(map[string]bool, len(userResorts))
	for _, r := range userResorts {
		owned[r.ResortID] = true
	}

	var entries []dtos.WorthKnowingEntry
	for _, cand := range allResorts {
		if owned[cand.ResortID] {
			continue
		}
		if radiusMinutes > 0 && cand.DriveMinutes != nil && *cand.DriveMinutes > radiusMinutes {
			continue
		}

		diff := cand.SnowTotalIn - best.SnowTotalIn
		ratio := 0.0
		if best.SnowTotalIn > 0 {
			ratio = cand.SnowTotalIn / best.SnowTotalIn
		}

		if diff < constants.WorthKnowingMinDiffInches && ratio < constants.WorthKnowingMinRatio {
			continue
		}

		score := constants.WorthKnowingDiffWeight*diff +
			constants.WorthKnowingRatioWeight*10*(ratio-1)

		entries = append(entries, dtos.WorthKnowingEntry{
			ResortID:      cand.ResortID,
			Name:          cand.Name,
			PassType:      cand.PassType,
			SnowTotalIn:   cand.SnowTotalIn,
			DiffIn:        diff,
			Ratio:         ratio,
			Score:         score,
			Justification: templatedJustification(cand, best, diff, ratio, userPassType),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	if len(entries) > constants.WorthKnowingMaxEntries {
		entries = entries[:constants.WorthKnowingMaxEntries]
	}

	return entries
}

// templatedJustification is the fallback sentence used until the narrative
// worker replaces it with generated text. Off-pass candidates also name the
// ratio, since those carry a ticket cost the differential alone can't argue.
func templatedJustification(cand, best CandidateResort, diff, ratio float64, userPassType string) string {
	if cand.PassType != userPassType && ratio > 0 {
		return fmt.Sprintf("%s is forecast for %.1f\" more than %s (%.1fx), worth the walk-up ticket.",
			cand.Name, diff, best.Name, ratio)
	}
	return fmt.Sprintf("%s is forecast for %.1f\" more than %s over the same window.",
		cand.Name, diff, best.Name)
}

// WorthKnowingService assembles candidates from canonical data and serves
// the derived list under cache TTL.
type WorthKnowingService struct {
	resorts   *repositories.ResortRepository
	forecasts *repositories.ForecastRepo
	cache     common.CacheInterface
	queue     *common.RedisQueueService
	ttl       time.Duration
}

func NewWorthKnowingService(
	resorts *repositories.ResortRepository,
	forecasts *repositories.ForecastRepo,
	cache common.CacheInterface,
	queue *common.RedisQueueService,
	ttl time.Duration,
) *WorthKnowingService {
	return &WorthKnowingService{
		resorts:   resorts,
		forecasts: forecasts,
		cache:     cache,
		queue:     queue,
		ttl:       ttl,
	}
}

// Compute resolves the user's pass resorts, totals everyone's forecast over
// the window, and runs the delta engine. Results are cached per
// (pass, window, radius); generated narratives overlay the templated
// sentences when the worker has produced them.
func (s *WorthKnowingService) Compute(ctx context.Context, passType string, windowDays, radiusMinutes int) ([]dtos.WorthKnowingEntry, error) {
	key := constants.CacheKeyWorthKnowing(passType, windowDays, radiusMinutes)

	val, err := s.cache.GetOrSet(key, s.ttl, func() (any, error) {
		return s.compute(ctx, passType, windowDays, radiusMinutes)
	})
	if err != nil {
		return nil, err
	}

	entries, ok := val.([]dtos.WorthKnowingEntry)
	if !ok {
		return s.compute(ctx, passType, windowDays, radiusMinutes)
	}

	return entries, nil
}

func (s *WorthKnowingService) compute(ctx context.Context, passType string, windowDays, radiusMinutes int) ([]dtos.WorthKnowingEntry, error) {
	all, err := s.resorts.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load resorts: %w", err)
	}

	today := time.Now().Format("2006-01-02")
	daily, err := s.forecasts.GetAllDailyWindow(ctx, today, windowDays)
	if err != nil {
		return nil, fmt.Errorf("failed to load forecasts: %w", err)
	}

	totals := make(map[string]float64)
	for _, d := range daily {
		totals[d.ResortID] += d.SnowfallIn
	}

	var userResorts, universe []CandidateResort
	for _, r := range all {
		cand := CandidateResort{
			ResortID:     r.ID,
			Name:         r.Name,
			PassType:     r.PassType,
			SnowTotalIn:  totals[r.ID],
			DriveMinutes: r.DriveMinutes,
		}
		universe = append(universe, cand)
		if r.PassType == passType {
			userResorts = append(userResorts, cand)
		}
	}

	entries := ComputeWorthKnowing(userResorts, universe, passType, radiusMinutes)

	for i := range entries {
		s.overlayNarrative(ctx, &entries[i], windowDays)
	}

	return entries, nil
}

// overlayNarrative swaps in generated justification text when available and
// otherwise enqueues a generation request. Queue failures keep the template;
// recommendations never block on the text service.
func (s *WorthKnowingService) overlayNarrative(ctx context.Context, entry *dtos.WorthKnowingEntry, windowDays int) {
	narrativeKey := constants.CacheKeyNarrative(entry.ResortID, windowDays)
	if text, found := s.cache.Get(narrativeKey); found {
		if str, ok := text.(string); ok && str != "" {
			entry.Justification = str
			return
		}
	}

	if s.queue == nil {
		return
	}

	req := &common.NarrativeRequest{
		ResortID:    entry.ResortID,
		ResortName:  entry.Name,
		PassType:    entry.PassType,
		WindowDays:  windowDays,
		SnowTotalIn: entry.SnowTotalIn,
		DiffIn:      entry.DiffIn,
		Ratio:       entry.Ratio,
	}
	if err := s.queue.Enqueue(ctx, common.NarrativeStreamName, req); err != nil {
		log.Printf("[WorthKnowing] Warning: failed to enqueue narrative request for %s: %v", entry.ResortID, err)
	}
}
