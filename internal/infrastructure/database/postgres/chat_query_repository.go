package postgres

import (
	"context"
	"database/sql"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
	"github.com/wichananm65/merchant-backoffice/internal/domain/repository"
)

// ChatQueryRepository is a PostgreSQL implementation of ChatQueryRepository.
type ChatQueryRepository struct {
	db *sql.DB
}

var _ repository.ChatQueryRepository = (*ChatQueryRepository)(nil)

const listChatQueriesByClientQuery = `
	SELECT q.id, q.client_id, q.product_id, q.question, q.answer, q.created_at,
	       p.name, cat.name, cl.name
	FROM chat_queries q
	LEFT JOIN products p ON p.id = q.product_id
	LEFT JOIN categories cat ON cat.id = p.category_id
	LEFT JOIN catalogs cl ON cl.id = p.catalog_id
	WHERE q.client_id = $1
	ORDER BY q.created_at DESC, q.id DESC
`

func NewChatQueryRepository(db *sql.DB) *ChatQueryRepository {
	return &ChatQueryRepository{db: db}
}

func (r *ChatQueryRepository) ListByClient(ctx context.Context, clientID string) ([]entity.ChatQuery, error) {
	rows, err := r.db.QueryContext(ctx, listChatQueriesByClientQuery, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.ChatQuery, 0)
	for rows.Next() {
		var (
			q                                      entity.ChatQuery
			productID, answer                      sql.NullString
			productName, categoryName, catalogName sql.NullString
		)
		if err := rows.Scan(&q.ID, &q.ClientID, &productID, &q.Question, &answer, &q.CreatedAt,
			&productName, &categoryName, &catalogName); err != nil {
			return nil, err
		}
		q.ProductID = stringPtr(productID)
		q.Answer = stringPtr(answer)
		if productID.Valid && productName.Valid {
			q.Product = &entity.ChatQueryProduct{
				ID:           productID.String,
				Name:         productName.String,
				CategoryName: categoryName.String,
				CatalogName:  catalogName.String,
			}
		}
		out = append(out, q)
	}
	return out, rows.Err()
}
