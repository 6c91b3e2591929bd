package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
	"github.com/wichananm65/merchant-backoffice/internal/domain/repository"
	"github.com/wichananm65/merchant-backoffice/internal/pkg/apperr"
)

// OwnershipResolver is the single load-and-authorize step every handler
// goes through before touching an entity below Client.
type OwnershipResolver struct {
	repo repository.OwnershipRepository
}

func NewOwnershipResolver(repo repository.OwnershipRepository) *OwnershipResolver {
	return &OwnershipResolver{repo: repo}
}

// Authorize resolves the chain of (kind, id) and checks it ends at externalID.
// An unknown id yields apperr.ErrNotFound; a foreign owner yields apperr.ErrForbidden.
func (r *OwnershipResolver) Authorize(ctx context.Context, externalID string, kind entity.Kind, id string) (entity.Chain, error) {
	if strings.TrimSpace(externalID) == "" {
		return entity.Chain{}, apperr.ErrUnauthenticated
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return entity.Chain{}, apperr.Validation(fmt.Sprintf("%s id is required", kind))
	}

	chain, err := r.repo.Chain(ctx, kind, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return entity.Chain{}, apperr.NotFound(fmt.Sprintf("%s not found", kind))
		}
		return entity.Chain{}, fmt.Errorf("resolve %s %s: %w", kind, id, err)
	}
	if chain.ExternalID != externalID {
		return entity.Chain{}, apperr.Forbidden("forbidden")
	}
	return chain, nil
}
