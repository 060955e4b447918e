package services

import (
	"testing"

	"snowchase/basecamp/internal/models/entities"
)

// Pass types are collected into a map for dedup, so the output slice must be
// sorted or the response order shifts between requests.
func TestSnapshotToRankInput_PassTypesSortedAndDeduped(t *testing.T) {
	snap := RegionSnapshot{
		Region: entities.ChaseRegion{ID: "region-1", Name: "Summit County"},
		Resorts: []ResortForecastTotal{
			{Resort: entities.Resort{ID: "a", PassType: "ikon"}},
			{Resort: entities.Resort{ID: "b", PassType: "epic"}},
			{Resort: entities.Resort{ID: "c", PassType: "indy"}},
			{Resort: entities.Resort{ID: "d", PassType: "epic"}},
		},
	}

	want := []string{"epic", "ikon", "indy"}

	// Map iteration order varies per run, so exercise it repeatedly.
	for run := 0; run < 20; run++ {
		in := snapshotToRankInput(snap, "epic", false)
		if len(in.PassTypes) != len(want) {
			t.Fatalf("Expected %d pass types, got %v", len(want), in.PassTypes)
		}
		for i := range want {
			if in.PassTypes[i] != want[i] {
				t.Fatalf("Run %d: expected %v, got %v", run, want, in.PassTypes)
			}
		}
		if !in.PassMatch {
			t.Fatal("Expected pass match for epic")
		}
	}
}
