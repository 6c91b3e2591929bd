package inmemory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
	"github.com/wichananm65/merchant-backoffice/internal/domain/repository"
	"github.com/wichananm65/merchant-backoffice/internal/pkg/apperr"
)

// ClientRepository is an in-memory implementation of ClientRepository.
type ClientRepository struct {
	s *Store
}

var _ repository.ClientRepository = (*ClientRepository)(nil)

func (r *ClientRepository) GetByExternalID(ctx context.Context, externalID string) (*entity.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.clients {
		if c.ExternalID == externalID {
			found := *c
			return &found, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *ClientRepository) Create(ctx context.Context, client *entity.Client) (*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.clients {
		if c.ExternalID == client.ExternalID {
			return nil, apperr.ErrConflict
		}
	}

	now := r.s.now()
	c := *client
	c.ExternalID = strings.Clone(client.ExternalID)
	c.Email = strings.Clone(client.Email)
	c.Name = strings.Clone(client.Name)
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now
	r.s.clients[c.ID] = &c
	r.s.track(c.ID)

	result := c
	return &result, nil
}

func (r *ClientRepository) Stats(ctx context.Context, clientID string, recent int) (*entity.DashboardStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	stats := &entity.DashboardStats{RecentCatalogs: []entity.Catalog{}}
	owned := make([]*entity.Catalog, 0)
	for _, cat := range r.s.catalogs {
		if cat.ClientID == clientID {
			owned = append(owned, cat)
		}
	}
	stats.CatalogCount = len(owned)

	for _, p := range r.s.products {
		if cat, ok := r.s.catalogs[p.CatalogID]; ok && cat.ClientID == clientID {
			stats.ProductCount++
		}
	}
	for _, q := range r.s.queries {
		if q.ClientID == clientID {
			stats.ChatQueryCount++
		}
	}

	sort.Slice(owned, func(i, j int) bool { return r.s.order[owned[i].ID] > r.s.order[owned[j].ID] })
	for i, cat := range owned {
		if i == recent {
			break
		}
		item := *cat
		item.CategoryCount = len(r.s.categoriesOf(cat.ID))
		stats.RecentCatalogs = append(stats.RecentCatalogs, item)
	}
	return stats, nil
}
