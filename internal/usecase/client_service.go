package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
	"github.com/wichananm65/merchant-backoffice/internal/domain/repository"
	"github.com/wichananm65/merchant-backoffice/internal/pkg/apperr"
)

const recentCatalogLimit = 5

// ClientService implements ClientUsecase with repository dependency.
type ClientService struct {
	repo repository.ClientRepository
}

var _ ClientUsecase = (*ClientService)(nil)

func NewClientService(repo repository.ClientRepository) *ClientService {
	return &ClientService{repo: repo}
}

// Ensure returns the caller's client row, creating it on first touch. Two
// first requests racing each other both end up with the same row: the loser
// of the insert sees a conflict and fetches instead.
func (s *ClientService) Ensure(ctx context.Context, identity entity.Identity) (*entity.Client, error) {
	identity.ExternalID = strings.TrimSpace(identity.ExternalID)
	if identity.ExternalID == "" {
		return nil, apperr.ErrUnauthenticated
	}

	existing, err := s.repo.GetByExternalID(ctx, identity.ExternalID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &entity.Client{
		ExternalID: identity.ExternalID,
		Email:      strings.TrimSpace(identity.Email),
		Name:       identity.DisplayName(),
	})
	if errors.Is(err, apperr.ErrConflict) {
		return s.repo.GetByExternalID(ctx, identity.ExternalID)
	}
	return created, err
}

func (s *ClientService) Get(ctx context.Context, externalID string) (*entity.Client, error) {
	if strings.TrimSpace(externalID) == "" {
		return nil, apperr.ErrUnauthenticated
	}
	c, err := s.repo.GetByExternalID(ctx, externalID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("client not found")
	}
	return c, err
}

func (s *ClientService) Dashboard(ctx context.Context, identity entity.Identity) (*entity.DashboardStats, error) {
	c, err := s.Ensure(ctx, identity)
	if err != nil {
		return nil, err
	}
	return s.repo.Stats(ctx, c.ID, recentCatalogLimit)
}
