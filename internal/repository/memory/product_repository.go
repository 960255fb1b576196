package memory

import (
	"context"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/repository"
)

type productRepository struct {
	s *Store
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	product.ID = newID()
	r.s.products = append(r.s.products, cloneProduct(product))
	return nil
}

func (r *productRepository) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.products {
		if p.ID == id {
			patch.Apply(p)
			return cloneProduct(p), nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, p := range r.s.products {
		if p.ID == id {
			r.s.products = append(r.s.products[:i], r.s.products[i+1:]...)
			return nil
		}
	}
	return repository.ErrProductNotFound
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.products {
		if p.ID == id {
			return cloneProduct(p), nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	return r.filter(func(*domain.Product) bool { return true }), nil
}

func (r *productRepository) ListByCategory(ctx context.Context, categoryID string) ([]*domain.Product, error) {
	return r.filter(func(p *domain.Product) bool { return p.CategoryID == categoryID }), nil
}

func (r *productRepository) ListByBrand(ctx context.Context, brandID string) ([]*domain.Product, error) {
	return r.filter(func(p *domain.Product) bool { return p.BrandID == brandID }), nil
}

func (r *productRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	products, _ := r.ListByCategory(ctx, categoryID)
	return int64(len(products)), nil
}

func (r *productRepository) CountByBrand(ctx context.Context, brandID string) (int64, error) {
	products, _ := r.ListByBrand(ctx, brandID)
	return int64(len(products)), nil
}

func (r *productRepository) filter(keep func(*domain.Product) bool) []*domain.Product {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	products := []*domain.Product{}
	for _, p := range r.s.products {
		if keep(p) {
			products = append(products, cloneProduct(p))
		}
	}
	return products
}
