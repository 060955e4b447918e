package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/google/uuid"

	"snowchase/basecamp/internal/config"
	"snowchase/basecamp/internal/db"
	"snowchase/basecamp/internal/db/repositories"
	"snowchase/basecamp/internal/models/entities"
)

// Seed file layout: regions first, resorts referencing them by region name so
// the file stays readable without UUIDs.
type seedFile struct {
	Regions []seedRegion `json:"regions"`
	Resorts []seedResort `json:"resorts"`
}

type seedRegion struct {
	Name        string  `json:"name"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	BestAirport string  `json:"best_airport"`
}

type seedResort struct {
	Slug         string  `json:"slug"`
	Name         string  `json:"name"`
	Region       string  `json:"region"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	ElevationFt  int     `json:"elevation_ft"`
	PassType     string  `json:"pass_type"`
	DriveMinutes *int    `json:"drive_minutes"`
}

func main() {
	log.SetOutput(os.Stdout)

	path := flag.String("file", "seed/resorts.json", "path to the seed JSON file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	if err := db.InitPostgres(cfg.PostgresDSN()); err != nil {
		log.Fatalf("failed to connect to Postgres: %v", err)
	}

	raw, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("failed to read seed file %s: %v", *path, err)
	}

	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		log.Fatalf("failed to parse seed file: %v", err)
	}

	ctx := context.Background()
	regionRepo := repositories.NewRegionRepository(db.DB)
	resortRepo := repositories.NewResortRepository(db.DB)

	// ON CONFLICT DO NOTHING makes reruns safe: existing names/slugs are
	// skipped, so the generated IDs below only land for new rows.
	regionIDs := make(map[string]string, len(seed.Regions))
	for _, sr := range seed.Regions {
		region := &entities.ChaseRegion{
			ID:          uuid.NewString(),
			Name:        sr.Name,
			Lat:         sr.Lat,
			Lng:         sr.Lng,
			BestAirport: sr.BestAirport,
		}
		if err := regionRepo.Insert(ctx, region); err != nil {
			log.Fatalf("failed to insert region %s: %v", sr.Name, err)
		}
		regionIDs[sr.Name] = region.ID
	}

	// Re-read regions so resorts link against stored IDs, not the freshly
	// generated ones a conflict skipped.
	stored, err := regionRepo.GetAll(ctx)
	if err != nil {
		log.Fatalf("failed to list regions: %v", err)
	}
	for _, region := range stored {
		regionIDs[region.Name] = region.ID
	}

	inserted := 0
	for _, sr := range seed.Resorts {
		regionID, ok := regionIDs[sr.Region]
		if !ok {
			log.Fatalf("resort %s references unknown region %q", sr.Slug, sr.Region)
		}

		resort := &entities.Resort{
			ID:           uuid.NewString(),
			Slug:         sr.Slug,
			Name:         sr.Name,
			RegionID:     regionID,
			Lat:          sr.Lat,
			Lng:          sr.Lng,
			ElevationFt:  sr.ElevationFt,
			PassType:     sr.PassType,
			DriveMinutes: sr.DriveMinutes,
		}
		if err := resortRepo.Insert(ctx, resort); err != nil {
			log.Fatalf("failed to insert resort %s: %v", sr.Slug, err)
		}
		inserted++
	}

	log.Printf("Seed complete: %d regions, %d resorts processed", len(seed.Regions), inserted)
}
