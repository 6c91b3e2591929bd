package repository

import (
	"context"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
)

// OwnershipRepository walks foreign keys from an entity up to its client.
type OwnershipRepository interface {
	// Chain returns apperr.ErrNotFound when id does not resolve.
	Chain(ctx context.Context, kind entity.Kind, id string) (entity.Chain, error)
}
