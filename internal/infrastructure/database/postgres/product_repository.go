package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
	"github.com/wichananm65/merchant-backoffice/internal/domain/repository"
	"github.com/wichananm65/merchant-backoffice/internal/infrastructure/database"
	"github.com/wichananm65/merchant-backoffice/internal/pkg/apperr"
)

// ProductRepository is a PostgreSQL implementation of ProductRepository.
type ProductRepository struct {
	db *sql.DB
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

const (
	selectProductColumns = `
		SELECT p.id, p.category_id, p.catalog_id, p.name, p.description, p.price, p.image_url,
		       p.created_at, p.updated_at, cat.name, cl.name,
		       pc.id, pc.content, pc.created_at, pc.updated_at,
		       (SELECT count(*) FROM chat_queries q WHERE q.product_id = p.id)
		FROM products p
		JOIN categories cat ON cat.id = p.category_id
		JOIN catalogs cl ON cl.id = p.catalog_id
		LEFT JOIN product_contexts pc ON pc.product_id = p.id
	`
	listProductsByClientQuery = selectProductColumns + `
		WHERE cl.client_id = $1
		ORDER BY p.created_at DESC, p.id DESC
	`
	getProductByIDQuery = selectProductColumns + `
		WHERE p.id = $1
	`
	insertProductQuery = `
		INSERT INTO products (id, category_id, catalog_id, name, description, price, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`
	deleteProductQuery = `
		DELETE FROM products
		WHERE id = $1 AND catalog_id IN (SELECT id FROM catalogs WHERE client_id = $2)
	`
)

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, insertProductQuery,
		id,
		product.CategoryID,
		product.CatalogID,
		product.Name,
		nullString(product.Description),
		product.Price,
		nullString(product.ImageURL),
		time.Now().UTC(),
	)
	if database.IsForeignKeyViolation(err) {
		return nil, apperr.NotFound("category not found")
	}
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *ProductRepository) ListByClient(ctx context.Context, clientID string) ([]entity.Product, error) {
	rows, err := r.db.QueryContext(ctx, listProductsByClientQuery, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, getProductByIDQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("product not found")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update writes only the fields set in changes. The row must belong to one
// of clientID's catalogs.
func (r *ProductRepository) Update(ctx context.Context, clientID, id string, changes entity.ProductChanges) (*entity.Product, error) {
	query, args := buildProductUpdate(clientID, id, changes, time.Now().UTC())
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if err := expectRows(res, 1, "product not found"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *ProductRepository) Delete(ctx context.Context, clientID, id string) error {
	res, err := r.db.ExecContext(ctx, deleteProductQuery, id, clientID)
	if err != nil {
		return err
	}
	return expectRows(res, 1, "product not found")
}

func buildProductUpdate(clientID, id string, changes entity.ProductChanges, now time.Time) (string, []any) {
	sets := make([]string, 0, 7)
	args := make([]any, 0, 9)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if changes.Name != nil {
		set("name", *changes.Name)
	}
	if changes.Description != nil {
		set("description", *changes.Description)
	}
	if changes.Price != nil {
		set("price", *changes.Price)
	}
	if changes.ImageURL != nil {
		set("image_url", *changes.ImageURL)
	}
	if changes.CategoryID != nil {
		set("category_id", *changes.CategoryID)
	}
	if changes.CatalogID != nil {
		set("catalog_id", *changes.CatalogID)
	}
	set("updated_at", now)

	args = append(args, id, clientID)
	query := fmt.Sprintf(
		"UPDATE products SET %s WHERE id = $%d AND catalog_id IN (SELECT id FROM catalogs WHERE client_id = $%d)",
		strings.Join(sets, ", "), len(args)-1, len(args),
	)
	return query, args
}

func scanProduct(scanner rowScanner) (entity.Product, error) {
	var (
		p                      entity.Product
		desc, image            sql.NullString
		price                  decimal.NullDecimal
		ctxID, ctxContent      sql.NullString
		ctxCreated, ctxUpdated sql.NullTime
	)
	if err := scanner.Scan(
		&p.ID,
		&p.CategoryID,
		&p.CatalogID,
		&p.Name,
		&desc,
		&price,
		&image,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.CategoryName,
		&p.CatalogName,
		&ctxID,
		&ctxContent,
		&ctxCreated,
		&ctxUpdated,
		&p.ChatQueryCount,
	); err != nil {
		return entity.Product{}, err
	}

	p.Description = stringPtr(desc)
	p.ImageURL = stringPtr(image)
	p.Price = price
	if ctxID.Valid {
		p.Context = &entity.ProductContext{
			ID:        ctxID.String,
			ProductID: p.ID,
			Content:   ctxContent.String,
			CreatedAt: ctxCreated.Time,
			UpdatedAt: ctxUpdated.Time,
		}
	}
	return p, nil
}
