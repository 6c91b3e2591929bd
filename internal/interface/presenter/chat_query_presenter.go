package presenter

import (
	"time"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
)

const (
	StatusPending  = "pending"
	StatusAnswered = "answered"
)

// ChatQueryPresenter shapes chat queries for the review page.
type ChatQueryPresenter struct{}

func NewChatQueryPresenter() *ChatQueryPresenter {
	return &ChatQueryPresenter{}
}

type ChatQueryResponse struct {
	ID           string  `json:"id"`
	Question     string  `json:"question"`
	Answer       *string `json:"answer"`
	Status       string  `json:"status"`
	ProductID    *string `json:"productId"`
	ProductName  string  `json:"productName,omitempty"`
	CategoryName string  `json:"categoryName,omitempty"`
	CatalogName  string  `json:"catalogName,omitempty"`
	CreatedAt    string  `json:"createdAt"`
}

func (p *ChatQueryPresenter) ToResponse(q entity.ChatQuery) ChatQueryResponse {
	resp := ChatQueryResponse{
		ID:        q.ID,
		Question:  q.Question,
		Answer:    q.Answer,
		Status:    StatusAnswered,
		ProductID: q.ProductID,
		CreatedAt: q.CreatedAt.Format(time.RFC3339),
	}
	if q.Pending() {
		resp.Status = StatusPending
	}
	if q.Product != nil {
		resp.ProductName = q.Product.Name
		resp.CategoryName = q.Product.CategoryName
		resp.CatalogName = q.Product.CatalogName
	}
	return resp
}

func (p *ChatQueryPresenter) ToList(queries []entity.ChatQuery) []ChatQueryResponse {
	result := make([]ChatQueryResponse, 0, len(queries))
	for _, q := range queries {
		result = append(result, p.ToResponse(q))
	}
	return result
}
