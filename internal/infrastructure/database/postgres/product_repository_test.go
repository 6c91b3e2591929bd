package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
	"github.com/wichananm65/merchant-backoffice/internal/pkg/apperr"
)

var productColumns = []string{
	"id", "category_id", "catalog_id", "name", "description", "price", "image_url",
	"created_at", "updated_at", "category_name", "catalog_name",
	"ctx_id", "ctx_content", "ctx_created_at", "ctx_updated_at", "chat_query_count",
}

func TestBuildProductUpdate_OnlyPrice(t *testing.T) {
	price := decimal.RequireFromString("19.99")
	now := time.Now()

	query, args := buildProductUpdate("client-1", "p-1", entity.ProductChanges{
		ProductPatch: entity.ProductPatch{Price: &price},
	}, now)

	assert.Equal(t,
		"UPDATE products SET price = $1, updated_at = $2 WHERE id = $3 AND catalog_id IN (SELECT id FROM catalogs WHERE client_id = $4)",
		query)
	assert.Equal(t, []any{price, now, "p-1", "client-1"}, args)
}

func TestBuildProductUpdate_MoveCategory(t *testing.T) {
	categoryID, catalogID := "c-2", "cat-2"
	query, args := buildProductUpdate("client-1", "p-1", entity.ProductChanges{
		ProductPatch: entity.ProductPatch{CategoryID: &categoryID},
		CatalogID:    &catalogID,
	}, time.Now())

	assert.Contains(t, query, "category_id = $1, catalog_id = $2, updated_at = $3")
	assert.Len(t, args, 5)
}

func TestProductRepository_GetByID_WithContext(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewProductRepository(db)

	now := time.Now()
	mock.ExpectQuery("FROM products p").WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow("p-1", "c-1", "cat-1", "Claw hammer", nil, "24.50", nil, now, now, "Hammers", "Tools",
				"pc-1", "Forged steel head", now, now, 3))

	p, err := repo.GetByID(context.Background(), "p-1")
	require.NoError(t, err)
	assert.True(t, p.Price.Valid)
	assert.Equal(t, "24.5", p.Price.Decimal.String())
	assert.Equal(t, "Hammers", p.CategoryName)
	assert.Equal(t, 3, p.ChatQueryCount)
	require.NotNil(t, p.Context)
	assert.Equal(t, "Forged steel head", p.Context.Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID_WithoutContextOrPrice(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewProductRepository(db)

	now := time.Now()
	mock.ExpectQuery("FROM products p").WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow("p-1", "c-1", "cat-1", "Claw hammer", nil, nil, nil, now, now, "Hammers", "Tools",
				nil, nil, nil, nil, 0))

	p, err := repo.GetByID(context.Background(), "p-1")
	require.NoError(t, err)
	assert.False(t, p.Price.Valid)
	assert.Nil(t, p.Context)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Update_ZeroRowsIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewProductRepository(db)

	name := "Sledge"
	mock.ExpectExec("UPDATE products SET name").
		WithArgs(name, sqlmock.AnyArg(), "p-1", "client-2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err = repo.Update(context.Background(), "client-2", "p-1", entity.ProductChanges{ProductPatch: entity.ProductPatch{Name: &name}})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewProductRepository(db)

	mock.ExpectExec("DELETE FROM products").WithArgs("p-1", "client-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "client-1", "p-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
