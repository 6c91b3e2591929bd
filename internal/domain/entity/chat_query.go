package entity

import "time"

// ChatQuery is a customer question logged by the external chat integration.
type ChatQuery struct {
	ID        string            `json:"id"`
	ClientID  string            `json:"clientId"`
	ProductID *string           `json:"productId"`
	Question  string            `json:"question"`
	Answer    *string           `json:"answer"`
	CreatedAt time.Time         `json:"createdAt"`
	Product   *ChatQueryProduct `json:"product,omitempty"`
}

// ChatQueryProduct names the product a query was asked about.
type ChatQueryProduct struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CategoryName string `json:"categoryName"`
	CatalogName  string `json:"catalogName"`
}

// Pending reports whether the query is still waiting for an answer.
func (q ChatQuery) Pending() bool {
	return q.Answer == nil
}
