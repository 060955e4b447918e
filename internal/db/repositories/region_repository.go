package repositories

import (
	"context"
	"database/sql"
	"errors"

	"snowchase/basecamp/internal/constants"
	"snowchase/basecamp/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type RegionRepository struct {
	db *sqlx.DB
}

func NewRegionRepository(db *sqlx.DB) *RegionRepository {
	return &RegionRepository{db}
}

func (r *RegionRepository) GetAll(ctx context.Context) ([]entities.ChaseRegion, error) {
	var regions []entities.ChaseRegion
	if err := r.db.SelectContext(ctx, &regions, constants.GetAllRegions); err != nil {
		return nil, err
	}
	return regions, nil
}

func (r *RegionRepository) GetByID(ctx context.Context, id string) (*entities.ChaseRegion, error) {
	var region entities.ChaseRegion
	err := r.db.QueryRowxContext(ctx, constants.GetRegionByID, id).StructScan(&region)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &region, nil
}

func (r *RegionRepository) Insert(ctx context.Context, region *entities.ChaseRegion) error {
	_, err := r.db.ExecContext(ctx, constants.InsertChaseRegion,
		region.ID,
		region.Name,
		region.Lat,
		region.Lng,
		region.BestAirport,
	)
	return err
}
