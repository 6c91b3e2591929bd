//go:build integration
// +build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
	"github.com/wichananm65/merchant-backoffice/internal/infrastructure/database"
	"github.com/wichananm65/merchant-backoffice/internal/infrastructure/database/postgres"
	"github.com/wichananm65/merchant-backoffice/internal/pkg/apperr"
	"github.com/wichananm65/merchant-backoffice/internal/usecase"
)

// setupTestDB starts a PostgreSQL container with the schema migrated.
func setupTestDB(t *testing.T) (*sql.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:alpine",
		tcpostgres.WithDatabase("backoffice"),
		tcpostgres.WithUsername("backoffice"),
		tcpostgres.WithPassword("backoffice"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	db, err := database.Open(ctx, connStr, 5)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	cleanup := func() {
		_ = db.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}
	return db, cleanup
}

type services struct {
	clients  *usecase.ClientService
	catalogs *usecase.CatalogService
	products *usecase.ProductService
	contexts *usecase.ProductContextService
}

func newServices(db *sql.DB) services {
	clients := usecase.NewClientService(postgres.NewClientRepository(db))
	owner := usecase.NewOwnershipResolver(postgres.NewOwnershipRepository(db))
	return services{
		clients:  clients,
		catalogs: usecase.NewCatalogService(postgres.NewCatalogRepository(db), clients, owner),
		products: usecase.NewProductService(postgres.NewProductRepository(db), clients, owner),
		contexts: usecase.NewProductContextService(postgres.NewProductContextRepository(db), owner),
	}
}

func countRows(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(query, args...).Scan(&n))
	return n
}

func TestIntegration_MigrateIsIdempotent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, database.Migrate(context.Background(), db))
}

func TestIntegration_ToolsScenario(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	svc := newServices(db)

	owner, err := svc.clients.Ensure(ctx, entity.Identity{ExternalID: "ext-a", Email: "a@example.com"})
	require.NoError(t, err)

	cat, err := svc.catalogs.Create(ctx, owner.ID, entity.CatalogCreate{Name: "Tools", Categories: []string{"Saws", "Hammers"}})
	require.NoError(t, err)

	loaded, err := svc.catalogs.Get(ctx, "ext-a", cat.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Categories, 2)
	assert.Equal(t, "Hammers", loaded.Categories[0].Name)
	assert.Equal(t, "Saws", loaded.Categories[1].Name)
	hammers := loaded.Categories[0]

	price := decimal.NewNullDecimal(decimal.RequireFromString("24.50"))
	p, err := svc.products.Create(ctx, "ext-a", entity.ProductCreate{Name: "Claw hammer", CategoryID: hammers.ID, Price: price})
	require.NoError(t, err)
	assert.Equal(t, cat.ID, p.CatalogID)

	_, err = svc.contexts.Save(ctx, "ext-a", p.ID, "Forged steel head")
	require.NoError(t, err)
	_, err = svc.contexts.Save(ctx, "ext-a", p.ID, "Forged steel head")
	require.NoError(t, err)
	assert.Equal(t, 1, countRows(t, db, "SELECT count(*) FROM product_contexts WHERE product_id = $1", p.ID))

	newPrice := decimal.RequireFromString("19.99")
	updated, err := svc.products.Patch(ctx, "ext-a", p.ID, entity.ProductPatch{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, "Claw hammer", updated.Name)
	assert.True(t, updated.Price.Decimal.Equal(newPrice))

	_, err = svc.clients.Ensure(ctx, entity.Identity{ExternalID: "ext-b"})
	require.NoError(t, err)
	_, err = svc.catalogs.Get(ctx, "ext-b", cat.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	_, err = svc.products.Get(ctx, "ext-b", p.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	_, err = svc.catalogs.Get(ctx, "ext-a", "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestIntegration_ReconcileIsAtomic(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	svc := newServices(db)

	a, err := svc.clients.Ensure(ctx, entity.Identity{ExternalID: "ext-a"})
	require.NoError(t, err)
	tools, err := svc.catalogs.Create(ctx, a.ID, entity.CatalogCreate{Name: "Tools", Categories: []string{"Saws"}})
	require.NoError(t, err)
	garden, err := svc.catalogs.Create(ctx, a.ID, entity.CatalogCreate{Name: "Garden", Categories: []string{"Hoses"}})
	require.NoError(t, err)

	renamed := "Tools renamed"
	_, err = svc.catalogs.Patch(ctx, "ext-a", tools.ID, entity.CatalogPatch{
		Name:                &renamed,
		CategoryIDsToDelete: []string{garden.Categories[0].ID},
		CategoriesToCreate:  []entity.CategoryName{{Name: "Power tools"}},
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.Equal(t, 1, countRows(t, db, "SELECT count(*) FROM categories WHERE catalog_id = $1", tools.ID))
	assert.Equal(t, 1, countRows(t, db, "SELECT count(*) FROM categories WHERE catalog_id = $1", garden.ID))
	assert.Equal(t, 1, countRows(t, db, "SELECT count(*) FROM catalogs WHERE name = 'Tools'"))

	saws := tools.Categories[0]
	_, err = svc.catalogs.Patch(ctx, "ext-a", tools.ID, entity.CatalogPatch{
		CategoryIDsToDelete: []string{saws.ID},
		CategoriesToUpdate:  []entity.CategoryRename{{ID: saws.ID, Name: "Hand saws"}},
		CategoriesToCreate:  []entity.CategoryName{{Name: "Power tools"}},
	})
	require.NoError(t, err)

	loaded, err := svc.catalogs.Get(ctx, "ext-a", tools.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Categories, 1)
	assert.Equal(t, "Power tools", loaded.Categories[0].Name)
}

func TestIntegration_EnsureClientIsIdempotent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	svc := newServices(db)

	first, err := svc.clients.Ensure(ctx, entity.Identity{ExternalID: "ext-a", FirstName: "Ann", LastName: "Lee"})
	require.NoError(t, err)
	second, err := svc.clients.Ensure(ctx, entity.Identity{ExternalID: "ext-a"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Ann Lee", second.Name)
	assert.Equal(t, 1, countRows(t, db, "SELECT count(*) FROM clients WHERE external_id = 'ext-a'"))
}
