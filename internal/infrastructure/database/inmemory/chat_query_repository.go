package inmemory

import (
	"context"
	"sort"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
	"github.com/wichananm65/merchant-backoffice/internal/domain/repository"
)

// ChatQueryRepository is an in-memory implementation of ChatQueryRepository.
type ChatQueryRepository struct {
	s *Store
}

var _ repository.ChatQueryRepository = (*ChatQueryRepository)(nil)

func (r *ChatQueryRepository) ListByClient(ctx context.Context, clientID string) ([]entity.ChatQuery, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entity.ChatQuery, 0)
	for _, q := range r.s.queries {
		if q.ClientID != clientID {
			continue
		}
		item := *q
		if q.ProductID != nil {
			if p, ok := r.s.products[*q.ProductID]; ok {
				view := &entity.ChatQueryProduct{ID: p.ID, Name: p.Name}
				if cat, ok := r.s.categories[p.CategoryID]; ok {
					view.CategoryName = cat.Name
				}
				if cat, ok := r.s.catalogs[p.CatalogID]; ok {
					view.CatalogName = cat.Name
				}
				item.Product = view
			}
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return r.s.order[out[i].ID] > r.s.order[out[j].ID]
	})
	return out, nil
}
