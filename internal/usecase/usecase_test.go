package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
	"github.com/wichananm65/merchant-backoffice/internal/infrastructure/database/inmemory"
	"github.com/wichananm65/merchant-backoffice/internal/usecase"
)

type fixture struct {
	store    *inmemory.Store
	clients  *usecase.ClientService
	catalogs *usecase.CatalogService
	products *usecase.ProductService
	contexts *usecase.ProductContextService
	queries  *usecase.ChatQueryService
}

func newFixture() *fixture {
	s := inmemory.NewStore()
	clients := usecase.NewClientService(s.Clients())
	owner := usecase.NewOwnershipResolver(s.Ownership())
	return &fixture{
		store:    s,
		clients:  clients,
		catalogs: usecase.NewCatalogService(s.Catalogs(), clients, owner),
		products: usecase.NewProductService(s.Products(), clients, owner),
		contexts: usecase.NewProductContextService(s.ProductContexts(), owner),
		queries:  usecase.NewChatQueryService(s.ChatQueries(), clients),
	}
}

// catalog ensures externalID's client and creates a catalog for it.
func (f *fixture) catalog(t *testing.T, externalID, name string, categories ...string) *entity.Catalog {
	t.Helper()
	ctx := context.Background()
	c, err := f.clients.Ensure(ctx, entity.Identity{ExternalID: externalID})
	require.NoError(t, err)
	cat, err := f.catalogs.Create(ctx, c.ID, entity.CatalogCreate{Name: name, Categories: categories})
	require.NoError(t, err)
	return cat
}

func ptr[T any](v T) *T { return &v }

func categoryByName(t *testing.T, cat *entity.Catalog, name string) entity.Category {
	t.Helper()
	for _, c := range cat.Categories {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("category %q not in catalog %s", name, cat.ID)
	return entity.Category{}
}
