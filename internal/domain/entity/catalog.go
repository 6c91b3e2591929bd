package entity

import "time"

type Catalog struct {
	ID            string     `json:"id"`
	ClientID      string     `json:"clientId"`
	Name          string     `json:"name"`
	Description   *string    `json:"description"`
	Categories    []Category `json:"categories,omitempty"`
	CategoryCount int        `json:"categoryCount"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type Category struct {
	ID           string    `json:"id"`
	CatalogID    string    `json:"catalogId"`
	Name         string    `json:"name"`
	ProductCount int       `json:"productCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CatalogCreate carries a new catalog and the names of its initial categories.
type CatalogCreate struct {
	Name        string
	Description *string
	Categories  []string
}

// CategoryRename renames an existing category.
type CategoryRename struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryName is a category to be created.
type CategoryName struct {
	Name string `json:"name"`
}

// CatalogPatch is the client-submitted diff applied by the reconciler.
// A nil Name keeps the current name. Description is only written when
// DescriptionSet is true, in which case nil clears it.
type CatalogPatch struct {
	Name                *string
	Description         *string
	DescriptionSet      bool
	CategoryIDsToDelete []string
	CategoriesToUpdate  []CategoryRename
	CategoriesToCreate  []CategoryName
}

// ReconcilePlan is a validated CatalogPatch, ready to be applied in one transaction.
type ReconcilePlan struct {
	CatalogID      string
	Name           *string
	Description    *string
	DescriptionSet bool
	Delete         []string
	Update         []CategoryRename
	Create         []string
}
