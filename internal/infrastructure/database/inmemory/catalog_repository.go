package inmemory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
	"github.com/wichananm65/merchant-backoffice/internal/domain/repository"
	"github.com/wichananm65/merchant-backoffice/internal/pkg/apperr"
)

// CatalogRepository is an in-memory implementation of CatalogRepository.
type CatalogRepository struct {
	s *Store
}

var _ repository.CatalogRepository = (*CatalogRepository)(nil)

func (r *CatalogRepository) Create(ctx context.Context, clientID string, input entity.CatalogCreate) (*entity.Catalog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.clients[clientID]; !ok {
		return nil, apperr.NotFound("client not found")
	}

	now := r.s.now()
	cat := &entity.Catalog{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.s.catalogs[cat.ID] = cat
	r.s.track(cat.ID)
	for _, name := range input.Categories {
		r.s.insertCategory(cat.ID, name)
	}

	return r.s.catalogWithCategories(cat.ID), nil
}

func (r *CatalogRepository) ListByClient(ctx context.Context, clientID string) ([]entity.Catalog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entity.Catalog, 0)
	for _, cat := range r.s.catalogs {
		if cat.ClientID == clientID {
			out = append(out, *r.s.catalogWithCategories(cat.ID))
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.s.order[out[i].ID] > r.s.order[out[j].ID] })
	return out, nil
}

func (r *CatalogRepository) GetByID(ctx context.Context, id string) (*entity.Catalog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if _, ok := r.s.catalogs[id]; !ok {
		return nil, apperr.NotFound("catalog not found")
	}
	return r.s.catalogWithCategories(id), nil
}

// ApplyPatch checks every referenced category before mutating anything, so
// a failing plan leaves the store untouched.
func (r *CatalogRepository) ApplyPatch(ctx context.Context, plan entity.ReconcilePlan) (*entity.Catalog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cat, ok := r.s.catalogs[plan.CatalogID]
	if !ok {
		return nil, apperr.NotFound("catalog not found")
	}
	for _, id := range plan.Delete {
		if c, ok := r.s.categories[id]; !ok || c.CatalogID != plan.CatalogID {
			return nil, apperr.NotFound(fmt.Sprintf("category %s not found in catalog", id))
		}
	}
	for _, u := range plan.Update {
		if c, ok := r.s.categories[u.ID]; !ok || c.CatalogID != plan.CatalogID {
			return nil, apperr.NotFound(fmt.Sprintf("category %s not found in catalog", u.ID))
		}
	}

	now := r.s.now()
	if plan.Name != nil {
		cat.Name = *plan.Name
	}
	if plan.DescriptionSet {
		cat.Description = plan.Description
	}
	cat.UpdatedAt = now

	for _, id := range plan.Delete {
		r.s.deleteCategory(id)
	}
	for _, u := range plan.Update {
		c, ok := r.s.categories[u.ID]
		if !ok {
			continue
		}
		c.Name = u.Name
		c.UpdatedAt = now
	}
	for _, name := range plan.Create {
		r.s.insertCategory(plan.CatalogID, name)
	}

	result := *cat
	return &result, nil
}

func (r *CatalogRepository) Delete(ctx context.Context, clientID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cat, ok := r.s.catalogs[id]
	if !ok || cat.ClientID != clientID {
		return apperr.NotFound("catalog not found")
	}
	r.s.deleteCatalog(id)
	return nil
}

func (r *CatalogRepository) GetCategory(ctx context.Context, id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, apperr.NotFound("category not found")
	}
	category := *c
	category.ProductCount = r.s.productCountOf(id)
	return &category, nil
}

// insertCategory must be called with the write lock held.
func (s *Store) insertCategory(catalogID, name string) {
	now := s.now()
	c := &entity.Category{
		ID:        uuid.NewString(),
		CatalogID: catalogID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.categories[c.ID] = c
	s.track(c.ID)
}

// catalogWithCategories copies a catalog and its categories sorted by name.
func (s *Store) catalogWithCategories(id string) *entity.Catalog {
	cat := *s.catalogs[id]
	cats := s.categoriesOf(id)
	cat.Categories = make([]entity.Category, 0, len(cats))
	for _, c := range cats {
		item := *c
		item.ProductCount = s.productCountOf(c.ID)
		cat.Categories = append(cat.Categories, item)
	}
	sort.Slice(cat.Categories, func(i, j int) bool {
		if cat.Categories[i].Name != cat.Categories[j].Name {
			return cat.Categories[i].Name < cat.Categories[j].Name
		}
		return cat.Categories[i].ID < cat.Categories[j].ID
	})
	cat.CategoryCount = len(cat.Categories)
	return &cat
}
