package catalog

import (
	"context"

	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

// Repository stores the reference scholarship catalog.
type Repository interface {
	// List returns the active scholarships ordered by id.
	List(ctx context.Context) ([]models.Scholarship, error)
	Count(ctx context.Context) (int, error)
	// Upsert inserts the scholarship or replaces the stored one with the same id.
	Upsert(ctx context.Context, s models.Scholarship) error
	// Deactivate hides a scholarship from List without deleting it.
	Deactivate(ctx context.Context, id string) error
}
