package entity

import (
	"strings"
	"time"
)

// Client is a merchant account, one per external identity.
type Client struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"externalId"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Identity is what the identity provider tells us about the caller.
type Identity struct {
	ExternalID string
	Email      string
	FirstName  string
	LastName   string
}

// DisplayName is "First Last" when both are known, else the email, else "User".
func (i Identity) DisplayName() string {
	first := strings.TrimSpace(i.FirstName)
	last := strings.TrimSpace(i.LastName)
	if first != "" && last != "" {
		return first + " " + last
	}
	if email := strings.TrimSpace(i.Email); email != "" {
		return email
	}
	return "User"
}

// DashboardStats summarises a client's account for the dashboard page.
type DashboardStats struct {
	CatalogCount   int       `json:"catalogCount"`
	ProductCount   int       `json:"productCount"`
	ChatQueryCount int       `json:"chatQueryCount"`
	RecentCatalogs []Catalog `json:"recentCatalogs"`
}
