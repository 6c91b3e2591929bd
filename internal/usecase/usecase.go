package usecase

import (
	"context"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
)

// ClientUsecase exposes the client account operations.
type ClientUsecase interface {
	Ensure(ctx context.Context, identity entity.Identity) (*entity.Client, error)
	Get(ctx context.Context, externalID string) (*entity.Client, error)
	Dashboard(ctx context.Context, identity entity.Identity) (*entity.DashboardStats, error)
}

// CatalogUsecase exposes catalog operations, including the category reconciler.
type CatalogUsecase interface {
	Create(ctx context.Context, clientID string, input entity.CatalogCreate) (*entity.Catalog, error)
	List(ctx context.Context, externalID string) ([]entity.Catalog, error)
	Get(ctx context.Context, externalID, id string) (*entity.Catalog, error)
	Patch(ctx context.Context, externalID, id string, patch entity.CatalogPatch) (*entity.Catalog, error)
	Delete(ctx context.Context, externalID, id string) error
	GetCategory(ctx context.Context, externalID, id string) (*entity.Category, error)
}

// ProductUsecase exposes product operations.
type ProductUsecase interface {
	Create(ctx context.Context, externalID string, input entity.ProductCreate) (*entity.Product, error)
	List(ctx context.Context, externalID string) ([]entity.Product, error)
	Get(ctx context.Context, externalID, id string) (*entity.Product, error)
	Patch(ctx context.Context, externalID, id string, patch entity.ProductPatch) (*entity.Product, error)
	Delete(ctx context.Context, externalID, id string) error
}

// ProductContextUsecase exposes the AI context attached to products.
type ProductContextUsecase interface {
	Save(ctx context.Context, externalID, productID, content string) (*entity.ProductContext, error)
	Get(ctx context.Context, externalID, productID string) (*entity.ProductContext, error)
}

// ChatQueryUsecase exposes the read-only chat query log.
type ChatQueryUsecase interface {
	List(ctx context.Context, externalID string) ([]entity.ChatQuery, error)
}
