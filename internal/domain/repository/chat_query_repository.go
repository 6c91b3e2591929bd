package repository

import (
	"context"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
)

// ChatQueryRepository reads queries written by the external chat integration.
type ChatQueryRepository interface {
	ListByClient(ctx context.Context, clientID string) ([]entity.ChatQuery, error)
}
