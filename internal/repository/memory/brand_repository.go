package memory

import (
	"context"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/repository"
)

type brandRepository struct {
	s *Store
}

// checkUnique must be called with the write lock held.
func (r *brandRepository) checkUnique(brand *domain.Brand) error {
	for _, b := range r.s.brands {
		if b.ID != brand.ID && b.Name == brand.Name {
			return &repository.DuplicateError{Entity: "brand", Field: "name"}
		}
	}
	return nil
}

func (r *brandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkUnique(brand); err != nil {
		return err
	}

	brand.ID = newID()
	r.s.brands = append(r.s.brands, cloneBrand(brand))
	return nil
}

func (r *brandRepository) Update(ctx context.Context, id string, patch domain.BrandPatch) (*domain.Brand, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, b := range r.s.brands {
		if b.ID != id {
			continue
		}
		updated := cloneBrand(b)
		patch.Apply(updated)
		if err := r.checkUnique(updated); err != nil {
			return nil, err
		}
		r.s.brands[i] = updated
		return cloneBrand(updated), nil
	}
	return nil, repository.ErrBrandNotFound
}

func (r *brandRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, b := range r.s.brands {
		if b.ID == id {
			r.s.brands = append(r.s.brands[:i], r.s.brands[i+1:]...)
			return nil
		}
	}
	return repository.ErrBrandNotFound
}

func (r *brandRepository) FindByID(ctx context.Context, id string) (*domain.Brand, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, b := range r.s.brands {
		if b.ID == id {
			return cloneBrand(b), nil
		}
	}
	return nil, repository.ErrBrandNotFound
}

func (r *brandRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Brand, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wanted := toSet(ids)
	brands := []*domain.Brand{}
	for _, b := range r.s.brands {
		if _, ok := wanted[b.ID]; ok {
			brands = append(brands, cloneBrand(b))
		}
	}
	return brands, nil
}

func (r *brandRepository) List(ctx context.Context) ([]*domain.Brand, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	brands := make([]*domain.Brand, 0, len(r.s.brands))
	for _, b := range r.s.brands {
		brands = append(brands, cloneBrand(b))
	}
	return brands, nil
}
