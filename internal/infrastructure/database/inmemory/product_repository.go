package inmemory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
	"github.com/wichananm65/merchant-backoffice/internal/domain/repository"
	"github.com/wichananm65/merchant-backoffice/internal/pkg/apperr"
)

// ProductRepository is an in-memory implementation of ProductRepository.
type ProductRepository struct {
	s *Store
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cat, ok := r.s.categories[product.CategoryID]
	if !ok {
		return nil, apperr.NotFound("category not found")
	}

	now := r.s.now()
	p := *product
	p.ID = uuid.NewString()
	p.CatalogID = cat.CatalogID
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Context = nil
	r.s.products[p.ID] = &p
	r.s.track(p.ID)

	return r.s.productView(p.ID), nil
}

func (r *ProductRepository) ListByClient(ctx context.Context, clientID string) ([]entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entity.Product, 0)
	for id, p := range r.s.products {
		if owner := r.s.ownerOfCatalog(p.CatalogID); owner != nil && owner.ID == clientID {
			out = append(out, *r.s.productView(id))
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.s.order[out[i].ID] > r.s.order[out[j].ID] })
	return out, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if _, ok := r.s.products[id]; !ok {
		return nil, apperr.NotFound("product not found")
	}
	return r.s.productView(id), nil
}

func (r *ProductRepository) Update(ctx context.Context, clientID, id string, changes entity.ProductChanges) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, apperr.NotFound("product not found")
	}
	if owner := r.s.ownerOfCatalog(p.CatalogID); owner == nil || owner.ID != clientID {
		return nil, apperr.NotFound("product not found")
	}

	if changes.Name != nil {
		p.Name = *changes.Name
	}
	if changes.Description != nil {
		p.Description = changes.Description
	}
	if changes.Price != nil {
		p.Price = decimal.NewNullDecimal(*changes.Price)
	}
	if changes.ImageURL != nil {
		p.ImageURL = changes.ImageURL
	}
	if changes.CategoryID != nil {
		cat, ok := r.s.categories[*changes.CategoryID]
		if !ok {
			return nil, apperr.NotFound("category not found")
		}
		p.CategoryID = cat.ID
		p.CatalogID = cat.CatalogID
	}
	p.UpdatedAt = r.s.now()

	return r.s.productView(id), nil
}

func (r *ProductRepository) Delete(ctx context.Context, clientID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok {
		return apperr.NotFound("product not found")
	}
	if owner := r.s.ownerOfCatalog(p.CatalogID); owner == nil || owner.ID != clientID {
		return apperr.NotFound("product not found")
	}
	r.s.deleteProduct(id)
	return nil
}

// productView copies a product with its read-side joins filled in.
func (s *Store) productView(id string) *entity.Product {
	p := *s.products[id]
	if pc, ok := s.contexts[id]; ok {
		ctxCopy := *pc
		p.Context = &ctxCopy
	}
	if cat, ok := s.categories[p.CategoryID]; ok {
		p.CategoryName = cat.Name
	}
	if cat, ok := s.catalogs[p.CatalogID]; ok {
		p.CatalogName = cat.Name
	}
	p.ChatQueryCount = 0
	for _, q := range s.queries {
		if q.ProductID != nil && *q.ProductID == id {
			p.ChatQueryCount++
		}
	}
	return &p
}
