package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
	"github.com/wichananm65/merchant-backoffice/internal/domain/repository"
	"github.com/wichananm65/merchant-backoffice/internal/pkg/apperr"
)

// OwnershipRepository resolves ownership chains with one join per lookup.
type OwnershipRepository struct {
	db *sql.DB
}

var _ repository.OwnershipRepository = (*OwnershipRepository)(nil)

// Each query yields product_id, category_id, catalog_id, client_id, external_id.
var chainQueries = map[entity.Kind]string{
	entity.KindCatalog: `
		SELECT ''::text, ''::text, cl.id, c.id, c.external_id
		FROM catalogs cl
		JOIN clients c ON c.id = cl.client_id
		WHERE cl.id = $1
	`,
	entity.KindCategory: `
		SELECT ''::text, cat.id, cl.id, c.id, c.external_id
		FROM categories cat
		JOIN catalogs cl ON cl.id = cat.catalog_id
		JOIN clients c ON c.id = cl.client_id
		WHERE cat.id = $1
	`,
	entity.KindProduct: `
		SELECT p.id, cat.id, cl.id, c.id, c.external_id
		FROM products p
		JOIN categories cat ON cat.id = p.category_id
		JOIN catalogs cl ON cl.id = cat.catalog_id
		JOIN clients c ON c.id = cl.client_id
		WHERE p.id = $1
	`,
}

func NewOwnershipRepository(db *sql.DB) *OwnershipRepository {
	return &OwnershipRepository{db: db}
}

func (r *OwnershipRepository) Chain(ctx context.Context, kind entity.Kind, id string) (entity.Chain, error) {
	query, ok := chainQueries[kind]
	if !ok {
		return entity.Chain{}, fmt.Errorf("unknown entity kind %q", kind)
	}

	chain := entity.Chain{Kind: kind, ID: id}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&chain.ProductID, &chain.CategoryID, &chain.CatalogID, &chain.ClientID, &chain.ExternalID)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Chain{}, apperr.ErrNotFound
	}
	if err != nil {
		return entity.Chain{}, err
	}
	return chain, nil
}
