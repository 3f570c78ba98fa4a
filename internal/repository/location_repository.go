package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/asafarviv55/attendance-system-backend/internal/models"
)

var ErrLocationNotFound = errors.New("authorized location not found")

// LocationRepository holds the geofence zone set. Admin CRUD and clock-in/out
// enforcement both read from here, so there is a single source of truth.
type LocationRepository struct {
	pool *pgxpool.Pool
}

func NewLocationRepository(pool *pgxpool.Pool) *LocationRepository {
	return &LocationRepository{pool: pool}
}

func (r *LocationRepository) Create(ctx context.Context, loc models.AuthorizedLocation) error {
	const query = `
		INSERT INTO authorized_locations (id, name, latitude, longitude, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`

	_, err := r.pool.Exec(ctx, query, loc.ID, loc.Name, loc.Latitude, loc.Longitude)
	return err
}

func (r *LocationRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM authorized_locations WHERE id = $1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrLocationNotFound
	}
	return nil
}

func (r *LocationRepository) List(ctx context.Context) ([]models.AuthorizedLocation, error) {
	const query = `
		SELECT id, name, latitude, longitude, created_at
		FROM authorized_locations
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []models.AuthorizedLocation
	for rows.Next() {
		var loc models.AuthorizedLocation
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Latitude, &loc.Longitude, &loc.CreatedAt); err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}
