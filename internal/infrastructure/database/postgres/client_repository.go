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

// ClientRepository is a PostgreSQL implementation of ClientRepository.
type ClientRepository struct {
	db *sql.DB
}

var _ repository.ClientRepository = (*ClientRepository)(nil)

const (
	getClientByExternalIDQuery = `
		SELECT id, external_id, email, name, created_at, updated_at
		FROM clients
		WHERE external_id = $1
	`
	insertClientQuery = `
		INSERT INTO clients (id, external_id, email, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`
	clientCountsQuery = `
		SELECT
			(SELECT count(*) FROM catalogs WHERE client_id = $1),
			(SELECT count(*) FROM products p JOIN catalogs c ON c.id = p.catalog_id WHERE c.client_id = $1),
			(SELECT count(*) FROM chat_queries WHERE client_id = $1)
	`
	recentCatalogsQuery = `
		SELECT c.id, c.client_id, c.name, c.description, c.created_at, c.updated_at,
		       (SELECT count(*) FROM categories cat WHERE cat.catalog_id = c.id)
		FROM catalogs c
		WHERE c.client_id = $1
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT $2
	`
)

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) GetByExternalID(ctx context.Context, externalID string) (*entity.Client, error) {
	var c entity.Client
	err := r.db.QueryRowContext(ctx, getClientByExternalIDQuery, externalID).
		Scan(&c.ID, &c.ExternalID, &c.Email, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) Create(ctx context.Context, client *entity.Client) (*entity.Client, error) {
	c := *client
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt

	_, err := r.db.ExecContext(ctx, insertClientQuery, c.ID, c.ExternalID, c.Email, c.Name, c.CreatedAt)
	if database.IsUniqueViolation(err) {
		return nil, apperr.Wrap(apperr.ErrConflict, "client already exists", err)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) Stats(ctx context.Context, clientID string, recent int) (*entity.DashboardStats, error) {
	stats := &entity.DashboardStats{RecentCatalogs: []entity.Catalog{}}
	if err := r.db.QueryRowContext(ctx, clientCountsQuery, clientID).
		Scan(&stats.CatalogCount, &stats.ProductCount, &stats.ChatQueryCount); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, recentCatalogsQuery, clientID, recent)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		cat, err := scanCatalogSummary(rows)
		if err != nil {
			return nil, err
		}
		stats.RecentCatalogs = append(stats.RecentCatalogs, cat)
	}
	return stats, rows.Err()
}

// scanCatalogSummary reads a catalog row followed by its category count.
func scanCatalogSummary(scanner rowScanner) (entity.Catalog, error) {
	var (
		cat  entity.Catalog
		desc sql.NullString
	)
	if err := scanner.Scan(&cat.ID, &cat.ClientID, &cat.Name, &desc, &cat.CreatedAt, &cat.UpdatedAt, &cat.CategoryCount); err != nil {
		return entity.Catalog{}, err
	}
	cat.Description = stringPtr(desc)
	return cat, nil
}
