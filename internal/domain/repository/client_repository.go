package repository

import (
	"context"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
)

// ClientRepository defines persistence behavior for the Client entity.
type ClientRepository interface {
	GetByExternalID(ctx context.Context, externalID string) (*entity.Client, error)
	// Create returns apperr.ErrConflict when the external id already has a row.
	Create(ctx context.Context, client *entity.Client) (*entity.Client, error)
	Stats(ctx context.Context, clientID string, recent int) (*entity.DashboardStats, error)
}
