package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
	"github.com/wichananm65/merchant-backoffice/internal/domain/repository"
	"github.com/wichananm65/merchant-backoffice/internal/infrastructure/database"
	"github.com/wichananm65/merchant-backoffice/internal/pkg/apperr"
)

// CatalogRepository is a PostgreSQL implementation of CatalogRepository.
type CatalogRepository struct {
	db *sql.DB
}

var _ repository.CatalogRepository = (*CatalogRepository)(nil)

const (
	insertCatalogQuery = `
		INSERT INTO catalogs (id, client_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`
	insertCategoryQuery = `
		INSERT INTO categories (id, catalog_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
	`
	listCatalogsByClientQuery = `
		SELECT id, client_id, name, description, created_at, updated_at
		FROM catalogs
		WHERE client_id = $1
		ORDER BY created_at DESC, id DESC
	`
	getCatalogByIDQuery = `
		SELECT id, client_id, name, description, created_at, updated_at
		FROM catalogs
		WHERE id = $1
	`
	listCategoriesByCatalogsQuery = `
		SELECT cat.id, cat.catalog_id, cat.name, cat.created_at, cat.updated_at,
		       (SELECT count(*) FROM products p WHERE p.category_id = cat.id)
		FROM categories cat
		WHERE cat.catalog_id = ANY($1::text[])
		ORDER BY cat.name, cat.id
	`
	getCategoryByIDQuery = `
		SELECT cat.id, cat.catalog_id, cat.name, cat.created_at, cat.updated_at,
		       (SELECT count(*) FROM products p WHERE p.category_id = cat.id)
		FROM categories cat
		WHERE cat.id = $1
	`
	updateCatalogQuery = `
		UPDATE catalogs
		SET name = COALESCE($1::text, name),
			description = CASE WHEN $2::boolean THEN $3::text ELSE description END,
			updated_at = $4
		WHERE id = $5
		RETURNING id, client_id, name, description, created_at, updated_at
	`
	deleteCategoriesInCatalogQuery = `DELETE FROM categories WHERE catalog_id = $1 AND id = ANY($2::text[])`
	renameCategoryQuery            = `UPDATE categories SET name = $1, updated_at = $2 WHERE id = $3 AND catalog_id = $4`
	deleteCatalogQuery             = `DELETE FROM catalogs WHERE id = $1 AND client_id = $2`
)

func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Create stores the catalog and its categories in one transaction.
func (r *CatalogRepository) Create(ctx context.Context, clientID string, input entity.CatalogCreate) (*entity.Catalog, error) {
	now := time.Now().UTC()
	cat := &entity.Catalog{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		Name:        input.Name,
		Description: input.Description,
		Categories:  make([]entity.Category, 0, len(input.Categories)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, insertCatalogQuery, cat.ID, clientID, cat.Name, nullString(cat.Description), now); err != nil {
			return fmt.Errorf("insert catalog: %w", err)
		}
		for _, name := range input.Categories {
			c := entity.Category{ID: uuid.NewString(), CatalogID: cat.ID, Name: name, CreatedAt: now, UpdatedAt: now}
			if _, err := tx.ExecContext(ctx, insertCategoryQuery, c.ID, cat.ID, name, now); err != nil {
				return fmt.Errorf("insert category: %w", err)
			}
			cat.Categories = append(cat.Categories, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(cat.Categories, func(i, j int) bool { return cat.Categories[i].Name < cat.Categories[j].Name })
	cat.CategoryCount = len(cat.Categories)
	return cat, nil
}

func (r *CatalogRepository) ListByClient(ctx context.Context, clientID string) ([]entity.Catalog, error) {
	rows, err := r.db.QueryContext(ctx, listCatalogsByClientQuery, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Catalog, 0)
	ids := make([]string, 0)
	for rows.Next() {
		cat, err := scanCatalog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cat)
		ids = append(ids, cat.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return out, nil
	}

	byCatalog, err := r.categoriesOf(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Categories = byCatalog[out[i].ID]
		if out[i].Categories == nil {
			out[i].Categories = []entity.Category{}
		}
		out[i].CategoryCount = len(out[i].Categories)
	}
	return out, nil
}

func (r *CatalogRepository) GetByID(ctx context.Context, id string) (*entity.Catalog, error) {
	cat, err := scanCatalog(r.db.QueryRowContext(ctx, getCatalogByIDQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("catalog not found")
	}
	if err != nil {
		return nil, err
	}

	byCatalog, err := r.categoriesOf(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	cat.Categories = byCatalog[id]
	if cat.Categories == nil {
		cat.Categories = []entity.Category{}
	}
	cat.CategoryCount = len(cat.Categories)
	return &cat, nil
}

// ApplyPatch runs the reconcile plan in one transaction: catalog fields,
// then deletes, renames and creates. A category id outside the catalog
// rolls everything back.
func (r *CatalogRepository) ApplyPatch(ctx context.Context, plan entity.ReconcilePlan) (*entity.Catalog, error) {
	now := time.Now().UTC()
	var updated entity.Catalog

	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, updateCatalogQuery,
			nullString(plan.Name), plan.DescriptionSet, nullString(plan.Description), now, plan.CatalogID)
		cat, err := scanCatalog(row)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("catalog not found")
		}
		if err != nil {
			return fmt.Errorf("update catalog: %w", err)
		}
		updated = cat

		if len(plan.Delete) > 0 {
			res, err := tx.ExecContext(ctx, deleteCategoriesInCatalogQuery, plan.CatalogID, pq.Array(plan.Delete))
			if err != nil {
				return fmt.Errorf("delete categories: %w", err)
			}
			if err := expectRows(res, int64(len(plan.Delete)), "category not found in catalog"); err != nil {
				return err
			}
		}

		for _, u := range plan.Update {
			res, err := tx.ExecContext(ctx, renameCategoryQuery, u.Name, now, u.ID, plan.CatalogID)
			if err != nil {
				return fmt.Errorf("rename category %s: %w", u.ID, err)
			}
			if err := expectRows(res, 1, fmt.Sprintf("category %s not found in catalog", u.ID)); err != nil {
				return err
			}
		}

		for _, name := range plan.Create {
			if _, err := tx.ExecContext(ctx, insertCategoryQuery, uuid.NewString(), plan.CatalogID, name, now); err != nil {
				return fmt.Errorf("insert category: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *CatalogRepository) Delete(ctx context.Context, clientID, id string) error {
	res, err := r.db.ExecContext(ctx, deleteCatalogQuery, id, clientID)
	if err != nil {
		return err
	}
	return expectRows(res, 1, "catalog not found")
}

func (r *CatalogRepository) GetCategory(ctx context.Context, id string) (*entity.Category, error) {
	c, err := scanCategory(r.db.QueryRowContext(ctx, getCategoryByIDQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("category not found")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// categoriesOf loads the categories of several catalogs in one query.
func (r *CatalogRepository) categoriesOf(ctx context.Context, catalogIDs []string) (map[string][]entity.Category, error) {
	rows, err := r.db.QueryContext(ctx, listCategoriesByCatalogsQuery, pq.Array(catalogIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]entity.Category, len(catalogIDs))
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out[c.CatalogID] = append(out[c.CatalogID], c)
	}
	return out, rows.Err()
}

// expectRows turns a short write into apperr.ErrNotFound.
func expectRows(res sql.Result, want int64, message string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected != want {
		return apperr.NotFound(message)
	}
	return nil
}

func scanCatalog(scanner rowScanner) (entity.Catalog, error) {
	var (
		cat  entity.Catalog
		desc sql.NullString
	)
	if err := scanner.Scan(&cat.ID, &cat.ClientID, &cat.Name, &desc, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
		return entity.Catalog{}, err
	}
	cat.Description = stringPtr(desc)
	return cat, nil
}

func scanCategory(scanner rowScanner) (entity.Category, error) {
	var c entity.Category
	if err := scanner.Scan(&c.ID, &c.CatalogID, &c.Name, &c.CreatedAt, &c.UpdatedAt, &c.ProductCount); err != nil {
		return entity.Category{}, err
	}
	return c, nil
}
