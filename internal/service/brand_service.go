package service

import (
	"context"
	"fmt"
	"time"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/repository"
)

// BrandInput carries the fields of a create or update request.
// Nil fields are left unchanged.
type BrandInput struct {
	Name    *string
	Country *string
	Website *string
	Logo    *string
}

func (in BrandInput) patch(now time.Time) domain.BrandPatch {
	return domain.BrandPatch{
		Name:      in.Name,
		Country:   in.Country,
		Website:   in.Website,
		Logo:      in.Logo,
		UpdatedAt: now,
	}
}

// BrandService defines the interface for brand business logic
type BrandService interface {
	List(ctx context.Context) ([]*domain.Brand, error)
	GetMany(ctx context.Context, ids []string) ([]*domain.Brand, error)
	Create(ctx context.Context, in BrandInput) (*domain.Brand, error)
	Update(ctx context.Context, id string, in BrandInput) (*domain.Brand, error)
	Delete(ctx context.Context, id string) error
}

type brandService struct {
	brands   repository.BrandRepository
	products repository.ProductRepository
	strict   bool
	now      func() time.Time
}

// NewBrandService creates a new instance of BrandService. With strict set,
// a brand still referenced by products cannot be deleted.
func NewBrandService(store repository.Store, strict bool) BrandService {
	return &brandService{
		brands:   store.Brands(),
		products: store.Products(),
		strict:   strict,
		now:      time.Now,
	}
}

func (s *brandService) List(ctx context.Context) ([]*domain.Brand, error) {
	brands, err := s.brands.List(ctx)
	if err != nil {
		return nil, translate("fetching brands", err)
	}
	return brands, nil
}

func (s *brandService) GetMany(ctx context.Context, ids []string) ([]*domain.Brand, error) {
	brands, err := s.brands.FindByIDs(ctx, ids)
	if err != nil {
		return nil, translate("fetching brands", err)
	}
	return brands, nil
}

func (s *brandService) Create(ctx context.Context, in BrandInput) (*domain.Brand, error) {
	now := s.now()
	brand := &domain.Brand{}
	in.patch(now).Apply(brand)

	if err := validate.Struct(brand); err != nil {
		return nil, translate("creating brand", err)
	}

	brand.Touch(now)
	if err := s.brands.Create(ctx, brand); err != nil {
		return nil, translate("creating brand", err)
	}

	return brand, nil
}

func (s *brandService) Update(ctx context.Context, id string, in BrandInput) (*domain.Brand, error) {
	current, err := s.brands.FindByID(ctx, id)
	if err != nil {
		return nil, translate("updating brand", err)
	}

	patch := in.patch(s.now())
	patch.Apply(current)
	if err := validate.Struct(current); err != nil {
		return nil, translate("updating brand", err)
	}

	brand, err := s.brands.Update(ctx, id, patch)
	if err != nil {
		return nil, translate("updating brand", err)
	}
	return brand, nil
}

func (s *brandService) Delete(ctx context.Context, id string) error {
	if s.strict {
		n, err := s.products.CountByBrand(ctx, id)
		if err != nil {
			return translate("deleting brand", err)
		}
		if n > 0 {
			return validation("id", fmt.Sprintf("Brand is still used by %d product(s)", n))
		}
	}

	if err := s.brands.Delete(ctx, id); err != nil {
		return translate("deleting brand", err)
	}
	return nil
}
