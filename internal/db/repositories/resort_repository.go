package repositories

import (
	"context"
	"database/sql"
	"errors"

	"snowchase/basecamp/internal/constants"
	"snowchase/basecamp/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a looked-up row does not exist. Read handlers
// map it to a 404 instead of letting a driver error escape.
var ErrNotFound = errors.New("not found")

type ResortRepository struct {
	db *sqlx.DB
}

func NewResortRepository(db *sqlx.DB) *ResortRepository {
	return &ResortRepository{db}
}

func (r *ResortRepository) GetAll(ctx context.Context) ([]entities.Resort, error) {
	var resorts []entities.Resort
	if err := r.db.SelectContext(ctx, &resorts, constants.GetAllResorts); err != nil {
		return nil, err
	}
	return resorts, nil
}

func (r *ResortRepository) GetBySlug(ctx context.Context, slug string) (*entities.Resort, error) {
	var resort entities.Resort
	err := r.db.QueryRowxContext(ctx, constants.GetResortBySlug, slug).StructScan(&resort)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &resort, nil
}

func (r *ResortRepository) GetByRegion(ctx context.Context, regionID string) ([]entities.Resort, error) {
	var resorts []entities.Resort
	if err := r.db.SelectContext(ctx, &resorts, constants.GetResortsByRegion, regionID); err != nil {
		return nil, err
	}
	return resorts, nil
}

func (r *ResortRepository) GetByPassType(ctx context.Context, passType string) ([]entities.Resort, error) {
	var resorts []entities.Resort
	if err := r.db.SelectContext(ctx, &resorts, constants.GetResortsByPassType, passType); err != nil {
		return nil, err
	}
	return resorts, nil
}

func (r *ResortRepository) Insert(ctx context.Context, resort *entities.Resort) error {
	_, err := r.db.ExecContext(ctx, constants.InsertResort,
		resort.ID,
		resort.Slug,
		resort.Name,
		resort.RegionID,
		resort.Lat,
		resort.Lng,
		resort.ElevationFt,
		resort.PassType,
		resort.DriveMinutes,
	)
	return err
}
