package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatQueryRepository_ListByClient(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewChatQueryRepository(db)

	now := time.Now()
	mock.ExpectQuery("FROM chat_queries q").WithArgs("client-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "client_id", "product_id", "question", "answer", "created_at", "p_name", "cat_name", "cl_name"}).
			AddRow("q-2", "client-1", "p-1", "Is it forged?", nil, now, "Claw hammer", "Hammers", "Tools").
			AddRow("q-1", "client-1", nil, "Do you ship abroad?", "Yes", now.Add(-time.Hour), nil, nil, nil))

	queries, err := repo.ListByClient(context.Background(), "client-1")
	require.NoError(t, err)
	require.Len(t, queries, 2)

	assert.True(t, queries[0].Pending())
	require.NotNil(t, queries[0].Product)
	assert.Equal(t, "Tools", queries[0].Product.CatalogName)

	assert.False(t, queries[1].Pending())
	assert.Nil(t, queries[1].ProductID)
	assert.Nil(t, queries[1].Product)
	assert.NoError(t, mock.ExpectationsWereMet())
}
