package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
	"github.com/wichananm65/merchant-backoffice/internal/domain/repository"
	"github.com/wichananm65/merchant-backoffice/internal/infrastructure/database"
	"github.com/wichananm65/merchant-backoffice/internal/pkg/apperr"
)

// ProductContextRepository is a PostgreSQL implementation of ProductContextRepository.
type ProductContextRepository struct {
	db *sql.DB
}

var _ repository.ProductContextRepository = (*ProductContextRepository)(nil)

const (
	upsertProductContextQuery = `
		INSERT INTO product_contexts (id, product_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (product_id) DO UPDATE
		SET content = EXCLUDED.content,
			updated_at = EXCLUDED.updated_at
		RETURNING id, product_id, content, created_at, updated_at
	`
	getProductContextQuery = `
		SELECT id, product_id, content, created_at, updated_at
		FROM product_contexts
		WHERE product_id = $1
	`
)

func NewProductContextRepository(db *sql.DB) *ProductContextRepository {
	return &ProductContextRepository{db: db}
}

// Upsert keeps at most one row per product.
func (r *ProductContextRepository) Upsert(ctx context.Context, productID, content string) (*entity.ProductContext, error) {
	row := r.db.QueryRowContext(ctx, upsertProductContextQuery, uuid.NewString(), productID, content, time.Now().UTC())
	pc, err := scanProductContext(row)
	if database.IsForeignKeyViolation(err) {
		return nil, apperr.NotFound("product not found")
	}
	if err != nil {
		return nil, err
	}
	return &pc, nil
}

func (r *ProductContextRepository) GetByProductID(ctx context.Context, productID string) (*entity.ProductContext, error) {
	pc, err := scanProductContext(r.db.QueryRowContext(ctx, getProductContextQuery, productID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pc, nil
}

func scanProductContext(scanner rowScanner) (entity.ProductContext, error) {
	var pc entity.ProductContext
	if err := scanner.Scan(&pc.ID, &pc.ProductID, &pc.Content, &pc.CreatedAt, &pc.UpdatedAt); err != nil {
		return entity.ProductContext{}, err
	}
	return pc, nil
}
