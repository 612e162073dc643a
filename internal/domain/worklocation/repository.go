package worklocation

import "context"

type WorkLocationRepository interface {
	// GetByID retrieves a work location by ID regardless of the active flag;
	// the validation engine turns an inactive location into its own rejection
	// code instead of treating the row as missing.
	GetByID(ctx context.Context, id string) (WorkLocation, error)

	// ListActive retrieves every active work location.
	ListActive(ctx context.Context) ([]WorkLocation, error)
}
