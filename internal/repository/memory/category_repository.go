package memory

import (
	"context"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/repository"
)

type categoryRepository struct {
	s *Store
}

// checkUnique must be called with the write lock held.
func (r *categoryRepository) checkUnique(category *domain.Category) error {
	for _, c := range r.s.categories {
		if c.ID == category.ID {
			continue
		}
		if c.Name == category.Name {
			return &repository.DuplicateError{Entity: "category", Field: "name"}
		}
		if c.Slug == category.Slug {
			return &repository.DuplicateError{Entity: "category", Field: "slug"}
		}
	}
	return nil
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkUnique(category); err != nil {
		return err
	}

	category.ID = newID()
	r.s.categories = append(r.s.categories, cloneCategory(category))
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, id string, patch domain.CategoryPatch) (*domain.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, c := range r.s.categories {
		if c.ID != id {
			continue
		}
		updated := cloneCategory(c)
		patch.Apply(updated)
		if err := r.checkUnique(updated); err != nil {
			return nil, err
		}
		r.s.categories[i] = updated
		return cloneCategory(updated), nil
	}
	return nil, repository.ErrCategoryNotFound
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, c := range r.s.categories {
		if c.ID == id {
			r.s.categories = append(r.s.categories[:i], r.s.categories[i+1:]...)
			return nil
		}
	}
	return repository.ErrCategoryNotFound
}

func (r *categoryRepository) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.categories {
		if c.ID == id {
			return cloneCategory(c), nil
		}
	}
	return nil, repository.ErrCategoryNotFound
}

func (r *categoryRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wanted := toSet(ids)
	categories := []*domain.Category{}
	for _, c := range r.s.categories {
		if _, ok := wanted[c.ID]; ok {
			categories = append(categories, cloneCategory(c))
		}
	}
	return categories, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	categories := make([]*domain.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		categories = append(categories, cloneCategory(c))
	}
	return categories, nil
}
