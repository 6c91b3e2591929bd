package repository

import (
	"context"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
)

// ProductRepository defines persistence behavior for products.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) (*entity.Product, error)
	ListByClient(ctx context.Context, clientID string) ([]entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// Update applies only the non-nil fields, scoped to the owning client.
	Update(ctx context.Context, clientID, id string, changes entity.ProductChanges) (*entity.Product, error)
	Delete(ctx context.Context, clientID, id string) error
}

// ProductContextRepository stores the 1:1 AI context of a product.
type ProductContextRepository interface {
	Upsert(ctx context.Context, productID, content string) (*entity.ProductContext, error)
	GetByProductID(ctx context.Context, productID string) (*entity.ProductContext, error)
}
