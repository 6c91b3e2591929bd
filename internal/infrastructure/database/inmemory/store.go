package inmemory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
)

// Store is an in-memory implementation of every repository port. All
// repositories returned by one Store share the same dataset and lock, so
// foreign keys and cascades behave like the relational schema.
type Store struct {
	mu  sync.RWMutex
	seq int64
	now func() time.Time

	clients    map[string]*entity.Client
	catalogs   map[string]*entity.Catalog
	categories map[string]*entity.Category
	products   map[string]*entity.Product
	contexts   map[string]*entity.ProductContext // keyed by product id
	queries    map[string]*entity.ChatQuery
	order      map[string]int64 // insertion sequence per id
}

func NewStore() *Store {
	return &Store{
		now:        func() time.Time { return time.Now().UTC() },
		clients:    make(map[string]*entity.Client),
		catalogs:   make(map[string]*entity.Catalog),
		categories: make(map[string]*entity.Category),
		products:   make(map[string]*entity.Product),
		contexts:   make(map[string]*entity.ProductContext),
		queries:    make(map[string]*entity.ChatQuery),
		order:      make(map[string]int64),
	}
}

func (s *Store) Clients() *ClientRepository { return &ClientRepository{s: s} }
func (s *Store) Catalogs() *CatalogRepository { return &CatalogRepository{s: s} }
func (s *Store) Products() *ProductRepository { return &ProductRepository{s: s} }
func (s *Store) ProductContexts() *ProductContextRepository { return &ProductContextRepository{s: s} }
func (s *Store) ChatQueries() *ChatQueryRepository { return &ChatQueryRepository{s: s} }
func (s *Store) Ownership() *OwnershipRepository { return &OwnershipRepository{s: s} }

// SeedChatQuery inserts a query the way the external chat integration would.
func (s *Store) SeedChatQuery(q entity.ChatQuery) entity.ChatQuery {
	s.mu.Lock()
	defer s.mu.Unlock()

	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = s.now()
	}
	s.queries[q.ID] = &q
	s.track(q.ID)
	return q
}

// CountCategories reports how many category rows exist for a catalog.
func (s *Store) CountCategories(catalogID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.categoriesOf(catalogID))
}

// CountProductContexts reports how many context rows exist for a product.
func (s *Store) CountProductContexts(productID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.contexts[productID]; ok {
		return 1
	}
	return 0
}

// track must be called with the write lock held.
func (s *Store) track(id string) {
	s.seq++
	s.order[id] = s.seq
}

func (s *Store) categoriesOf(catalogID string) []*entity.Category {
	out := make([]*entity.Category, 0)
	for _, c := range s.categories {
		if c.CatalogID == catalogID {
			out = append(out, c)
		}
	}
	return out
}

func (s *Store) productCountOf(categoryID string) int {
	n := 0
	for _, p := range s.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n
}

// ownerOfCatalog returns the client that owns catalogID, or nil.
func (s *Store) ownerOfCatalog(catalogID string) *entity.Client {
	cat, ok := s.catalogs[catalogID]
	if !ok {
		return nil
	}
	return s.clients[cat.ClientID]
}

func (s *Store) deleteProduct(id string) {
	delete(s.products, id)
	delete(s.contexts, id)
	delete(s.order, id)
	for _, q := range s.queries {
		if q.ProductID != nil && *q.ProductID == id {
			q.ProductID = nil
		}
	}
}

func (s *Store) deleteCategory(id string) {
	for pid, p := range s.products {
		if p.CategoryID == id {
			s.deleteProduct(pid)
		}
	}
	delete(s.categories, id)
	delete(s.order, id)
}

func (s *Store) deleteCatalog(id string) {
	for _, c := range s.categoriesOf(id) {
		s.deleteCategory(c.ID)
	}
	delete(s.catalogs, id)
	delete(s.order, id)
}
