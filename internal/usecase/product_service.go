package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
	"github.com/wichananm65/merchant-backoffice/internal/domain/repository"
	"github.com/wichananm65/merchant-backoffice/internal/pkg/apperr"
)

// ProductService implements ProductUsecase.
type ProductService struct {
	products repository.ProductRepository
	clients  ClientUsecase
	owner    *OwnershipResolver
}

var _ ProductUsecase = (*ProductService)(nil)

func NewProductService(products repository.ProductRepository, clients ClientUsecase, owner *OwnershipResolver) *ProductService {
	return &ProductService{products: products, clients: clients, owner: owner}
}

// Create attaches a product to a category the caller owns. The product's
// catalog id is copied from that category.
func (s *ProductService) Create(ctx context.Context, externalID string, input entity.ProductCreate) (*entity.Product, error) {
	if strings.TrimSpace(externalID) == "" {
		return nil, apperr.ErrUnauthenticated
	}
	name := strings.TrimSpace(input.Name)
	categoryID := strings.TrimSpace(input.CategoryID)
	if name == "" || categoryID == "" {
		return nil, apperr.Validation("name and categoryId are required")
	}
	if input.Price.Valid {
		if err := validatePrice(input.Price.Decimal); err != nil {
			return nil, err
		}
	}

	chain, err := s.owner.Authorize(ctx, externalID, entity.KindCategory, categoryID)
	if err != nil {
		return nil, err
	}

	return s.products.Create(ctx, &entity.Product{
		CategoryID:  chain.CategoryID,
		CatalogID:   chain.CatalogID,
		Name:        name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
	})
}

func (s *ProductService) List(ctx context.Context, externalID string) ([]entity.Product, error) {
	c, err := s.clients.Get(ctx, externalID)
	if err != nil {
		return nil, err
	}
	return s.products.ListByClient(ctx, c.ID)
}

func (s *ProductService) Get(ctx context.Context, externalID, id string) (*entity.Product, error) {
	chain, err := s.owner.Authorize(ctx, externalID, entity.KindProduct, id)
	if err != nil {
		return nil, err
	}
	return s.products.GetByID(ctx, chain.ProductID)
}

// Patch updates only the fields present in patch. Moving a product to
// another category requires owning that category too, and recomputes the
// product's catalog id from it.
func (s *ProductService) Patch(ctx context.Context, externalID, id string, patch entity.ProductPatch) (*entity.Product, error) {
	chain, err := s.owner.Authorize(ctx, externalID, entity.KindProduct, id)
	if err != nil {
		return nil, err
	}

	changes := entity.ProductChanges{ProductPatch: patch}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, apperr.Validation("name must not be empty")
		}
		changes.Name = &name
	}
	if patch.Price != nil {
		if err := validatePrice(*patch.Price); err != nil {
			return nil, err
		}
	}
	if patch.CategoryID != nil {
		categoryID := strings.TrimSpace(*patch.CategoryID)
		if categoryID == "" {
			return nil, apperr.Validation("categoryId must not be empty")
		}
		if categoryID == chain.CategoryID {
			changes.CategoryID = nil
		} else {
			target, err := s.owner.Authorize(ctx, externalID, entity.KindCategory, categoryID)
			if err != nil {
				return nil, err
			}
			changes.CategoryID = &target.CategoryID
			changes.CatalogID = &target.CatalogID
		}
	}

	return s.products.Update(ctx, chain.ClientID, chain.ProductID, changes)
}

func (s *ProductService) Delete(ctx context.Context, externalID, id string) error {
	chain, err := s.owner.Authorize(ctx, externalID, entity.KindProduct, id)
	if err != nil {
		return err
	}
	return s.products.Delete(ctx, chain.ClientID, chain.ProductID)
}

// maxPrice is the first value that no longer fits NUMERIC(12,2).
var maxPrice = decimal.New(1, 10)

// validatePrice keeps prices within what the products table stores exactly.
func validatePrice(price decimal.Decimal) error {
	switch {
	case price.IsNegative():
		return apperr.Validation("price must be >= 0")
	case price.GreaterThanOrEqual(maxPrice):
		return apperr.Validation("price must be less than 10000000000")
	case !price.Equal(price.Round(2)):
		return apperr.Validation("price must have at most two decimal places")
	}
	return nil
}
