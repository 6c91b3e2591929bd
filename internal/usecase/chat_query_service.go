package usecase

import (
	"context"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
	"github.com/wichananm65/merchant-backoffice/internal/domain/repository"
)

// ChatQueryService implements ChatQueryUsecase. Queries are written by the
// chat integration; this service only reads them.
type ChatQueryService struct {
	queries repository.ChatQueryRepository
	clients ClientUsecase
}

var _ ChatQueryUsecase = (*ChatQueryService)(nil)

func NewChatQueryService(queries repository.ChatQueryRepository, clients ClientUsecase) *ChatQueryService {
	return &ChatQueryService{queries: queries, clients: clients}
}

func (s *ChatQueryService) List(ctx context.Context, externalID string) ([]entity.ChatQuery, error) {
	c, err := s.clients.Get(ctx, externalID)
	if err != nil {
		return nil, err
	}
	return s.queries.ListByClient(ctx, c.ID)
}
