package inmemory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
	"github.com/wichananm65/merchant-backoffice/internal/domain/repository"
	"github.com/wichananm65/merchant-backoffice/internal/pkg/apperr"
)

// ProductContextRepository is an in-memory implementation of ProductContextRepository.
type ProductContextRepository struct {
	s *Store
}

var _ repository.ProductContextRepository = (*ProductContextRepository)(nil)

func (r *ProductContextRepository) Upsert(ctx context.Context, productID, content string) (*entity.ProductContext, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.products[productID]; !ok {
		return nil, apperr.NotFound("product not found")
	}

	productID = strings.Clone(productID)
	now := r.s.now()
	pc, ok := r.s.contexts[productID]
	if !ok {
		pc = &entity.ProductContext{ID: uuid.NewString(), ProductID: productID, CreatedAt: now}
		r.s.contexts[productID] = pc
	}
	pc.Content = strings.Clone(content)
	pc.UpdatedAt = now

	result := *pc
	return &result, nil
}

func (r *ProductContextRepository) GetByProductID(ctx context.Context, productID string) (*entity.ProductContext, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	pc, ok := r.s.contexts[productID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	result := *pc
	return &result, nil
}
