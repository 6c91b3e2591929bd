package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
	"github.com/wichananm65/merchant-backoffice/internal/domain/repository"
	"github.com/wichananm65/merchant-backoffice/internal/pkg/apperr"
)

// ProductContextService implements ProductContextUsecase.
type ProductContextService struct {
	contexts repository.ProductContextRepository
	owner    *OwnershipResolver
}

var _ ProductContextUsecase = (*ProductContextService)(nil)

func NewProductContextService(contexts repository.ProductContextRepository, owner *OwnershipResolver) *ProductContextService {
	return &ProductContextService{contexts: contexts, owner: owner}
}

// Save upserts the context keyed on the product id; saving the same content
// twice leaves exactly one row.
func (s *ProductContextService) Save(ctx context.Context, externalID, productID, content string) (*entity.ProductContext, error) {
	if strings.TrimSpace(externalID) == "" {
		return nil, apperr.ErrUnauthenticated
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("content is required")
	}
	chain, err := s.owner.Authorize(ctx, externalID, entity.KindProduct, productID)
	if err != nil {
		return nil, err
	}
	return s.contexts.Upsert(ctx, chain.ProductID, content)
}

func (s *ProductContextService) Get(ctx context.Context, externalID, productID string) (*entity.ProductContext, error) {
	chain, err := s.owner.Authorize(ctx, externalID, entity.KindProduct, productID)
	if err != nil {
		return nil, err
	}
	pc, err := s.contexts.GetByProductID(ctx, chain.ProductID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("product context not found")
	}
	return pc, err
}
