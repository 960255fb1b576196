package service

import (
	"context"
	"errors"
	"testing"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/repository"
	"catalog-admin/internal/repository/memory"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func ptr[T any](v T) *T { return &v }

type fixture struct {
	store      *memory.Store
	products   ProductService
	categories CategoryService
	brands     BrandService
	stats      StatsService
}

func newFixture(strict bool) *fixture {
	store := memory.NewStore()
	svc := New(store, strict, zap.NewNop())
	return &fixture{
		store:      store,
		products:   svc.Products,
		categories: svc.Categories,
		brands:     svc.Brands,
		stats:      svc.Stats,
	}
}

func (f *fixture) seed(t *testing.T) (*domain.Category, *domain.Brand) {
	t.Helper()
	ctx := context.Background()

	category, err := f.categories.Create(ctx, CategoryInput{Name: ptr("Smartphones"), Slug: ptr("smartphones")})
	require.NoError(t, err)
	brand, err := f.brands.Create(ctx, BrandInput{Name: ptr("Apple"), Country: ptr("USA")})
	require.NoError(t, err)
	return category, brand
}

func productInput(categoryID, brandID string) ProductInput {
	return ProductInput{
		Name:        ptr("iPhone 15 Pro"),
		Description: ptr("Latest Apple smartphone"),
		Price:       ptr(999.99),
		Stock:       ptr(50),
		CategoryID:  ptr(categoryID),
		BrandID:     ptr(brandID),
	}
}

func requireKind(t *testing.T, err error, kind Kind) *Error {
	t.Helper()
	require.Error(t, err)
	var svcErr *Error
	require.True(t, errors.As(err, &svcErr), "expected *service.Error, got %T: %v", err, err)
	require.Equal(t, kind, svcErr.Kind, svcErr.Message)
	return svcErr
}

// failingStore wraps a memory store and fails every product listing.
type failingStore struct {
	*memory.Store
}

var errStorage = errors.New("connection reset")

func (s failingStore) Products() repository.ProductRepository {
	return failingProducts{s.Store.Products()}
}

type failingProducts struct {
	repository.ProductRepository
}

func (failingProducts) List(ctx context.Context) ([]*domain.Product, error) {
	return nil, errStorage
}
