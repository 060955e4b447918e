package entities

import "time"

// ChaseRegion is a geographic bucket grouping several resorts. Static
// reference data, loaded by the seed step.
type ChaseRegion struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Lat         float64   `db:"lat"`
	Lng         float64   `db:"lng"`
	BestAirport string    `db:"best_airport"`
	CreatedAt   time.Time `db:"created_at"`
}
