package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/dokterku/presensi-backend-go/internal/domain/worklocation"
	"github.com/dokterku/presensi-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workLocationRepository struct {
	db *database.DB
}

func NewWorkLocationRepository(db *database.DB) worklocation.WorkLocationRepository {
	return &workLocationRepository{db: db}
}

// GetByID implements worklocation.WorkLocationRepository.
func (r *workLocationRepository) GetByID(ctx context.Context, id string) (worklocation.WorkLocation, error) {
	q := GetQuerier(ctx, r.db)

	// allowed_shifts is a text[]; NULL means every shift is permitted.
	query := `
		SELECT id, name, latitude, longitude, radius_meters,
		       allowed_shifts, active, created_at, updated_at
		FROM work_locations
		WHERE id = $1
	`

	var loc worklocation.WorkLocation
	err := q.QueryRow(ctx, query, id).Scan(
		&loc.ID, &loc.Name, &loc.Latitude, &loc.Longitude, &loc.RadiusMeters,
		&loc.AllowedShifts, &loc.Active, &loc.CreatedAt, &loc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worklocation.WorkLocation{}, worklocation.ErrWorkLocationNotFound
		}
		return worklocation.WorkLocation{}, fmt.Errorf("failed to get work location: %w", err)
	}

	return loc, nil
}

// ListActive implements worklocation.WorkLocationRepository.
func (r *workLocationRepository) ListActive(ctx context.Context) ([]worklocation.WorkLocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, latitude, longitude, radius_meters,
		       allowed_shifts, active, created_at, updated_at
		FROM work_locations
		WHERE active = TRUE
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list work locations: %w", err)
	}
	defer rows.Close()

	var result []worklocation.WorkLocation
	for rows.Next() {
		var loc worklocation.WorkLocation
		if err := rows.Scan(
			&loc.ID, &loc.Name, &loc.Latitude, &loc.Longitude, &loc.RadiusMeters,
			&loc.AllowedShifts, &loc.Active, &loc.CreatedAt, &loc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan work location: %w", err)
		}
		result = append(result, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read work location rows: %w", err)
	}

	return result, nil
}
