package service

import (
	"context"
	"fmt"
	"time"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/repository"
)

// CategoryInput carries the fields of a create or update request.
// Nil fields are left unchanged.
type CategoryInput struct {
	Name        *string
	Description *string
	Slug        *string
	Logo        *string
}

func (in CategoryInput) patch(now time.Time) domain.CategoryPatch {
	return domain.CategoryPatch{
		Name:        in.Name,
		Description: in.Description,
		Slug:        in.Slug,
		Logo:        in.Logo,
		UpdatedAt:   now,
	}
}

// CategoryService defines the interface for category business logic
type CategoryService interface {
	List(ctx context.Context) ([]*domain.Category, error)
	GetMany(ctx context.Context, ids []string) ([]*domain.Category, error)
	Create(ctx context.Context, in CategoryInput) (*domain.Category, error)
	Update(ctx context.Context, id string, in CategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

type categoryService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	strict     bool
	now        func() time.Time
}

// NewCategoryService creates a new instance of CategoryService. With strict
// set, a category still referenced by products cannot be deleted.
func NewCategoryService(store repository.Store, strict bool) CategoryService {
	return &categoryService{
		categories: store.Categories(),
		products:   store.Products(),
		strict:     strict,
		now:        time.Now,
	}
}

func (s *categoryService) List(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, translate("fetching categories", err)
	}
	return categories, nil
}

func (s *categoryService) GetMany(ctx context.Context, ids []string) ([]*domain.Category, error) {
	categories, err := s.categories.FindByIDs(ctx, ids)
	if err != nil {
		return nil, translate("fetching categories", err)
	}
	return categories, nil
}

func (s *categoryService) Create(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	now := s.now()
	category := &domain.Category{}
	in.patch(now).Apply(category)

	if err := validate.Struct(category); err != nil {
		return nil, translate("creating category", err)
	}

	category.Touch(now)
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, translate("creating category", err)
	}

	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id string, in CategoryInput) (*domain.Category, error) {
	current, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, translate("updating category", err)
	}

	patch := in.patch(s.now())
	patch.Apply(current)
	if err := validate.Struct(current); err != nil {
		return nil, translate("updating category", err)
	}

	category, err := s.categories.Update(ctx, id, patch)
	if err != nil {
		return nil, translate("updating category", err)
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	if s.strict {
		n, err := s.products.CountByCategory(ctx, id)
		if err != nil {
			return translate("deleting category", err)
		}
		if n > 0 {
			return validation("id", fmt.Sprintf("Category is still used by %d product(s)", n))
		}
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return translate("deleting category", err)
	}
	return nil
}
