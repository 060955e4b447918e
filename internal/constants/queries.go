package constants

const (
	GetResortBySlug = `
	SELECT * FROM resorts WHERE slug = $1
	`

	GetAllResorts = `
	SELECT * FROM resorts ORDER BY name
	`

	GetResortsByRegion = `
	SELECT * FROM resorts WHERE region_id = $1 ORDER BY name
	`

	GetAllRegions = `
	SELECT * FROM chase_regions ORDER BY name
	`

	GetRegionByID = `
	SELECT * FROM chase_regions WHERE id = $1
	`

	GetResortsByPassType = `
	SELECT * FROM resorts WHERE pass_type = $1 ORDER BY name
	`

	InsertResort = `
	INSERT INTO resorts (id, slug, name, region_id, lat, lng, elevation_ft, pass_type, drive_minutes)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (slug) DO NOTHING
	`

	InsertChaseRegion = `
	INSERT INTO chase_regions (id, name, lat, lng, best_airport)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (name) DO NOTHING
	`
)
