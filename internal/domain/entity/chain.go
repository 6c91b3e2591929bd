package entity

// Kind names an entity type that sits below Client in the ownership chain.
type Kind string

const (
	KindCatalog  Kind = "catalog"
	KindCategory Kind = "category"
	KindProduct  Kind = "product"
)

// Chain is the resolved path from an entity up to its owning client.
// Fields below the entity's own level are empty.
type Chain struct {
	Kind       Kind
	ID         string
	ClientID   string
	ExternalID string
	CatalogID  string
	CategoryID string
	ProductID  string
}
