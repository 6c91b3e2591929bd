package usecase

import (
	"context"
	"strings"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
	"github.com/wichananm65/merchant-backoffice/internal/domain/repository"
	"github.com/wichananm65/merchant-backoffice/internal/pkg/apperr"
)

// CatalogService implements CatalogUsecase.
type CatalogService struct {
	catalogs repository.CatalogRepository
	clients  ClientUsecase
	owner    *OwnershipResolver
}

var _ CatalogUsecase = (*CatalogService)(nil)

func NewCatalogService(catalogs repository.CatalogRepository, clients ClientUsecase, owner *OwnershipResolver) *CatalogService {
	return &CatalogService{catalogs: catalogs, clients: clients, owner: owner}
}

// Create stores a catalog for an already ensured client. Submitting the same
// body twice creates two catalogs.
func (s *CatalogService) Create(ctx context.Context, clientID string, input entity.CatalogCreate) (*entity.Catalog, error) {
	if clientID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	input, err := NormalizeCatalogCreate(input)
	if err != nil {
		return nil, err
	}
	return s.catalogs.Create(ctx, clientID, input)
}

// NormalizeCatalogCreate trims the catalog and category names and rejects
// blank ones.
func NormalizeCatalogCreate(input entity.CatalogCreate) (entity.CatalogCreate, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return entity.CatalogCreate{}, apperr.Validation("name is required")
	}

	names := make([]string, 0, len(input.Categories))
	for _, n := range input.Categories {
		n = strings.TrimSpace(n)
		if n == "" {
			return entity.CatalogCreate{}, apperr.Validation("category names must not be empty")
		}
		names = append(names, n)
	}
	input.Categories = names
	return input, nil
}

func (s *CatalogService) List(ctx context.Context, externalID string) ([]entity.Catalog, error) {
	c, err := s.clients.Get(ctx, externalID)
	if err != nil {
		return nil, err
	}
	return s.catalogs.ListByClient(ctx, c.ID)
}

func (s *CatalogService) Get(ctx context.Context, externalID, id string) (*entity.Catalog, error) {
	chain, err := s.owner.Authorize(ctx, externalID, entity.KindCatalog, id)
	if err != nil {
		return nil, err
	}
	return s.catalogs.GetByID(ctx, chain.CatalogID)
}

// Patch authorizes the caller, then applies the reconciled diff atomically.
func (s *CatalogService) Patch(ctx context.Context, externalID, id string, patch entity.CatalogPatch) (*entity.Catalog, error) {
	chain, err := s.owner.Authorize(ctx, externalID, entity.KindCatalog, id)
	if err != nil {
		return nil, err
	}
	plan, err := Reconcile(chain.CatalogID, patch)
	if err != nil {
		return nil, err
	}
	return s.catalogs.ApplyPatch(ctx, plan)
}

func (s *CatalogService) Delete(ctx context.Context, externalID, id string) error {
	chain, err := s.owner.Authorize(ctx, externalID, entity.KindCatalog, id)
	if err != nil {
		return err
	}
	return s.catalogs.Delete(ctx, chain.ClientID, chain.CatalogID)
}

func (s *CatalogService) GetCategory(ctx context.Context, externalID, id string) (*entity.Category, error) {
	chain, err := s.owner.Authorize(ctx, externalID, entity.KindCategory, id)
	if err != nil {
		return nil, err
	}
	return s.catalogs.GetCategory(ctx, chain.CategoryID)
}
