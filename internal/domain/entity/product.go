package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string              `json:"id"`
	CategoryID  string              `json:"categoryId"`
	CatalogID   string              `json:"catalogId"`
	Name        string              `json:"name"`
	Description *string             `json:"description"`
	Price       decimal.NullDecimal `json:"price"`
	ImageURL    *string             `json:"imageUrl"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`

	// read-side joins, never written back
	Context        *ProductContext `json:"productContext,omitempty"`
	ChatQueryCount int             `json:"chatQueryCount"`
	CatalogName    string          `json:"catalogName,omitempty"`
	CategoryName   string          `json:"categoryName,omitempty"`
}

// ProductContext is free-text knowledge attached to a product for the AI integration.
type ProductContext struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ProductCreate struct {
	Name        string
	Description *string
	Price       decimal.NullDecimal
	ImageURL    *string
	CategoryID  string
}

// ProductPatch is a partial update: nil fields are left untouched.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	ImageURL    *string
	CategoryID  *string
}

// ProductChanges is a ProductPatch after authorization, with the derived
// catalog id filled in when the category moves.
type ProductChanges struct {
	ProductPatch
	CatalogID *string
}
