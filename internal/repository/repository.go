// Package repository defines the persistence contracts of the catalog and the
// errors shared by every storage backend.
package repository

import (
	"context"
	"errors"
	"fmt"

	"catalog-admin/internal/domain"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrBrandNotFound    = errors.New("brand not found")

	// ErrDuplicate matches any *DuplicateError via errors.Is.
	ErrDuplicate = errors.New("duplicate value")
)

// DuplicateError reports a write rejected by a unique constraint.
type DuplicateError struct {
	Entity string
	Field  string
	Err    error
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s with this %s already exists", e.Entity, e.Field)
}

func (e *DuplicateError) Unwrap() error { return e.Err }

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// InvalidReferenceError reports a foreign key value the backend cannot
// represent, such as a malformed ObjectID.
type InvalidReferenceError struct {
	Field string
	Value string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid %s: %q is not a valid id", e.Field, e.Value)
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	// Update writes only the fields set in patch and returns the stored record.
	Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*domain.Product, error)
	ListByBrand(ctx context.Context, brandID string) ([]*domain.Product, error)
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
	CountByBrand(ctx context.Context, brandID string) (int64, error)
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, id string, patch domain.CategoryPatch) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
}

// BrandRepository defines the interface for brand data access
type BrandRepository interface {
	Create(ctx context.Context, brand *domain.Brand) error
	Update(ctx context.Context, id string, patch domain.BrandPatch) (*domain.Brand, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Brand, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Brand, error)
	List(ctx context.Context) ([]*domain.Brand, error)
}

// Store groups the three collections of one backend together with the
// lifecycle of the underlying connection.
type Store interface {
	Products() ProductRepository
	Categories() CategoryRepository
	Brands() BrandRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
