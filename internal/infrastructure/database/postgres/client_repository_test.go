package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
	"github.com/wichananm65/merchant-backoffice/internal/pkg/apperr"
)

func TestClientRepository_GetByExternalID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewClientRepository(db)

	mock.ExpectQuery("FROM clients").WithArgs("ext-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "external_id", "email", "name", "created_at", "updated_at"}))

	_, err = repo.GetByExternalID(context.Background(), "ext-1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_Create_UniqueViolationIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewClientRepository(db)

	mock.ExpectExec("INSERT INTO clients").
		WithArgs(sqlmock.AnyArg(), "ext-1", "a@b.c", "Ann Lee", sqlmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err = repo.Create(context.Background(), &entity.Client{ExternalID: "ext-1", Email: "a@b.c", Name: "Ann Lee"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_Stats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewClientRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT\\s+\\(SELECT count").WithArgs("client-1").
		WillReturnRows(sqlmock.NewRows([]string{"catalogs", "products", "queries"}).AddRow(2, 5, 1))
	mock.ExpectQuery("FROM catalogs c").WithArgs("client-1", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "client_id", "name", "description", "created_at", "updated_at", "count"}).
			AddRow("cat-2", "client-1", "Garden", nil, now, now, 0).
			AddRow("cat-1", "client-1", "Tools", "Hand tools", now, now, 3))

	stats, err := repo.Stats(context.Background(), "client-1", 5)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.CatalogCount)
	assert.Equal(t, 5, stats.ProductCount)
	assert.Equal(t, 1, stats.ChatQueryCount)
	require.Len(t, stats.RecentCatalogs, 2)
	assert.Nil(t, stats.RecentCatalogs[0].Description)
	assert.Equal(t, 3, stats.RecentCatalogs[1].CategoryCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
