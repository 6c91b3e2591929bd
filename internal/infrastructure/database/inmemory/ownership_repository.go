package inmemory

import (
	"context"
	"fmt"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
	"github.com/wichananm65/merchant-backoffice/internal/domain/repository"
	"github.com/wichananm65/merchant-backoffice/internal/pkg/apperr"
)

// OwnershipRepository resolves chains against the Store's maps.
type OwnershipRepository struct {
	s *Store
}

var _ repository.OwnershipRepository = (*OwnershipRepository)(nil)

func (r *OwnershipRepository) Chain(ctx context.Context, kind entity.Kind, id string) (entity.Chain, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	chain := entity.Chain{Kind: kind, ID: id}
	switch kind {
	case entity.KindProduct:
		p, ok := r.s.products[id]
		if !ok {
			return entity.Chain{}, apperr.ErrNotFound
		}
		chain.ProductID = p.ID
		id = p.CategoryID
		fallthrough
	case entity.KindCategory:
		c, ok := r.s.categories[id]
		if !ok {
			return entity.Chain{}, apperr.ErrNotFound
		}
		chain.CategoryID = c.ID
		id = c.CatalogID
		fallthrough
	case entity.KindCatalog:
		cat, ok := r.s.catalogs[id]
		if !ok {
			return entity.Chain{}, apperr.ErrNotFound
		}
		client, ok := r.s.clients[cat.ClientID]
		if !ok {
			return entity.Chain{}, apperr.ErrNotFound
		}
		chain.CatalogID = cat.ID
		chain.ClientID = client.ID
		chain.ExternalID = client.ExternalID
		return chain, nil
	default:
		return entity.Chain{}, fmt.Errorf("unknown entity kind %q", kind)
	}
}
