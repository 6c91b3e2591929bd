package repository

import (
	"context"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
)

// CatalogRepository defines persistence behavior for catalogs and their categories.
type CatalogRepository interface {
	// Create stores the catalog and its initial categories atomically.
	Create(ctx context.Context, clientID string, input entity.CatalogCreate) (*entity.Catalog, error)
	ListByClient(ctx context.Context, clientID string) ([]entity.Catalog, error)
	// GetByID returns the catalog with its categories ordered by name.
	GetByID(ctx context.Context, id string) (*entity.Catalog, error)
	// ApplyPatch runs the plan in a single transaction; nothing persists on error.
	ApplyPatch(ctx context.Context, plan entity.ReconcilePlan) (*entity.Catalog, error)
	Delete(ctx context.Context, clientID, id string) error
	GetCategory(ctx context.Context, id string) (*entity.Category, error)
}
