package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/repository"

	"go.uber.org/zap"
)

// ProductInput carries the fields of a create or update request. A nil field
// was not supplied by the client and leaves the stored value untouched.
type ProductInput struct {
	Name           *string
	Description    *string
	Price          *float64
	Stock          *int
	CategoryID     *string
	BrandID        *string
	ImageURL       *string
	Specifications *[]domain.Specification
	Rating         *float64
}

// patch converts the input into a repository patch stamped with now.
func (in ProductInput) patch(now time.Time) domain.ProductPatch {
	pt := domain.ProductPatch{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
		BrandID:     in.BrandID,
		ImageURL:    in.ImageURL,
		Rating:      in.Rating,
		UpdatedAt:   now,
	}
	if in.Specifications != nil {
		specs := domain.NormalizeSpecifications(*in.Specifications)
		pt.Specifications = &specs
	}
	return pt
}

// ProductService defines the interface for product business logic
type ProductService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*domain.Product, error)
	ListByBrand(ctx context.Context, brandID string) ([]*domain.Product, error)
	Create(ctx context.Context, in ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type productService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	brands     repository.BrandRepository
	strict     bool
	logger     *zap.Logger
	now        func() time.Time
}

// NewProductService creates a new instance of ProductService. With strict
// set, writes naming an unknown category or brand are rejected; otherwise
// they are accepted and logged.
func NewProductService(store repository.Store, strict bool, logger *zap.Logger) ProductService {
	return &productService{
		products:   store.Products(),
		categories: store.Categories(),
		brands:     store.Brands(),
		strict:     strict,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *productService) List(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, translate("fetching products", err)
	}
	return products, nil
}

func (s *productService) Get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, translate("fetching product details", err)
	}
	return product, nil
}

func (s *productService) ListByCategory(ctx context.Context, categoryID string) ([]*domain.Product, error) {
	products, err := s.products.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, translate("fetching products by category", err)
	}
	return products, nil
}

func (s *productService) ListByBrand(ctx context.Context, brandID string) ([]*domain.Product, error) {
	products, err := s.products.ListByBrand(ctx, brandID)
	if err != nil {
		return nil, translate("fetching products by brand", err)
	}
	return products, nil
}

func (s *productService) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	now := s.now()
	product := &domain.Product{Specifications: domain.Specifications{}}
	in.patch(now).Apply(product)

	if err := s.check(ctx, product); err != nil {
		return nil, translate("creating product", err)
	}

	product.Touch(now)
	if err := s.products.Create(ctx, product); err != nil {
		return nil, translate("creating product", err)
	}

	return product, nil
}

// Update validates the patch against the current record, then hands only the
// supplied fields to the repository so concurrent updates of different
// fields do not overwrite each other.
func (s *productService) Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	current, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, translate("updating product", err)
	}

	patch := in.patch(s.now())
	patch.Apply(current)
	if err := s.check(ctx, current); err != nil {
		return nil, translate("updating product", err)
	}

	product, err := s.products.Update(ctx, id, patch)
	if err != nil {
		return nil, translate("updating product", err)
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return translate("deleting product", err)
	}
	return nil
}

// check validates the whole entity and applies the reference policy.
func (s *productService) check(ctx context.Context, product *domain.Product) error {
	if err := validate.Struct(product); err != nil {
		return err
	}

	if err := s.checkReference(ctx, "categoryId", product.CategoryID, func(ctx context.Context, id string) error {
		_, err := s.categories.FindByID(ctx, id)
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return errDangling
		}
		return err
	}); err != nil {
		return err
	}

	return s.checkReference(ctx, "brandId", product.BrandID, func(ctx context.Context, id string) error {
		_, err := s.brands.FindByID(ctx, id)
		if errors.Is(err, repository.ErrBrandNotFound) {
			return errDangling
		}
		return err
	})
}

var errDangling = errors.New("dangling reference")

func (s *productService) checkReference(ctx context.Context, field, id string, lookup func(context.Context, string) error) error {
	err := lookup(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errDangling):
		if s.strict {
			return validation(field, fmt.Sprintf("%s %q does not exist", field, id))
		}
		s.logger.Warn("Product references a missing record",
			zap.String("field", field),
			zap.String("id", id),
		)
		return nil
	case s.strict:
		return fmt.Errorf("failed to check %s: %w", field, err)
	default:
		s.logger.Warn("Could not verify product reference",
			zap.String("field", field),
			zap.String("id", id),
			zap.Error(err),
		)
		return nil
	}
}
