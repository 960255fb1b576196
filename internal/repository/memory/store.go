// Package memory is an in-process catalog backend used for local development
// and tests. It enforces the same uniqueness rules as the database backends.
package memory

import (
	"context"
	"sync"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/repository"

	"github.com/google/uuid"
)

// Store keeps every collection in insertion order behind a single lock.
type Store struct {
	mu         sync.RWMutex
	products   []*domain.Product
	categories []*domain.Category
	brands     []*domain.Brand
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) Products() repository.ProductRepository   { return &productRepository{s} }
func (s *Store) Categories() repository.CategoryRepository { return &categoryRepository{s} }
func (s *Store) Brands() repository.BrandRepository       { return &brandRepository{s} }

func (s *Store) Ping(ctx context.Context) error  { return ctx.Err() }
func (s *Store) Close(ctx context.Context) error { return nil }

func newID() string {
	return uuid.New().String()
}

func cloneProduct(p *domain.Product) *domain.Product {
	c := *p
	c.Specifications = append(domain.Specifications{}, p.Specifications...)
	return &c
}

func cloneCategory(c *domain.Category) *domain.Category {
	cp := *c
	return &cp
}

func cloneBrand(b *domain.Brand) *domain.Brand {
	cp := *b
	return &cp
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
