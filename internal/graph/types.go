package graph

import (
	"context"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/service"

	"github.com/graph-gophers/graphql-go"
)

type productResolver struct {
	product  *domain.Product
	services *service.Services
}

func (r *productResolver) ID() graphql.ID         { return graphql.ID(r.product.ID) }
func (r *productResolver) Name() string           { return r.product.Name }
func (r *productResolver) Description() string    { return r.product.Description }
func (r *productResolver) Price() float64         { return r.product.Price }
func (r *productResolver) Stock() int32           { return int32(r.product.Stock) }
func (r *productResolver) CategoryID() graphql.ID { return graphql.ID(r.product.CategoryID) }
func (r *productResolver) BrandID() graphql.ID    { return graphql.ID(r.product.BrandID) }
func (r *productResolver) ImageURL() *string      { return optional(r.product.ImageURL) }
func (r *productResolver) Rating() float64        { return r.product.Rating }
func (r *productResolver) CreatedAt() *string     { return epochMillis(r.product.CreatedAt) }
func (r *productResolver) UpdatedAt() *string     { return epochMillis(r.product.UpdatedAt) }

// Category is null when the referenced category is missing. Storage
// failures are still reported.
func (r *productResolver) Category(ctx context.Context) (*categoryResolver, error) {
	var (
		category *domain.Category
		err      error
	)
	if loaders := loadersFrom(ctx); loaders != nil {
		category, err = loaders.Categories.Load(ctx, r.product.CategoryID)()
	} else {
		category, err = firstOf(r.services.Categories.GetMany(ctx, []string{r.product.CategoryID}))
	}
	if err != nil || category == nil {
		return nil, err
	}
	return &categoryResolver{category}, nil
}

// Brand is null when the referenced brand is missing.
func (r *productResolver) Brand(ctx context.Context) (*brandResolver, error) {
	var (
		brand *domain.Brand
		err   error
	)
	if loaders := loadersFrom(ctx); loaders != nil {
		brand, err = loaders.Brands.Load(ctx, r.product.BrandID)()
	} else {
		brand, err = firstOf(r.services.Brands.GetMany(ctx, []string{r.product.BrandID}))
	}
	if err != nil || brand == nil {
		return nil, err
	}
	return &brandResolver{brand}, nil
}

func (r *productResolver) Specifications() []*specificationResolver {
	resolvers := make([]*specificationResolver, len(r.product.Specifications))
	for i := range r.product.Specifications {
		resolvers[i] = &specificationResolver{r.product.Specifications[i]}
	}
	return resolvers
}

func firstOf[V any](items []V, err error) (V, error) {
	var zero V
	if err != nil || len(items) == 0 {
		return zero, err
	}
	return items[0], nil
}

type specificationResolver struct {
	spec domain.Specification
}

func (r *specificationResolver) Key() string   { return r.spec.Key }
func (r *specificationResolver) Value() string { return r.spec.Value }

type categoryResolver struct {
	category *domain.Category
}

func (r *categoryResolver) ID() graphql.ID       { return graphql.ID(r.category.ID) }
func (r *categoryResolver) Name() string         { return r.category.Name }
func (r *categoryResolver) Description() *string { return optional(r.category.Description) }
func (r *categoryResolver) Slug() string         { return r.category.Slug }
func (r *categoryResolver) Logo() *string        { return optional(r.category.Logo) }
func (r *categoryResolver) CreatedAt() *string   { return epochMillis(r.category.CreatedAt) }
func (r *categoryResolver) UpdatedAt() *string   { return epochMillis(r.category.UpdatedAt) }

type brandResolver struct {
	brand *domain.Brand
}

func (r *brandResolver) ID() graphql.ID     { return graphql.ID(r.brand.ID) }
func (r *brandResolver) Name() string       { return r.brand.Name }
func (r *brandResolver) Country() *string   { return optional(r.brand.Country) }
func (r *brandResolver) Website() *string   { return optional(r.brand.Website) }
func (r *brandResolver) Logo() *string      { return optional(r.brand.Logo) }
func (r *brandResolver) CreatedAt() *string { return epochMillis(r.brand.CreatedAt) }
func (r *brandResolver) UpdatedAt() *string { return epochMillis(r.brand.UpdatedAt) }

type statsResolver struct {
	stats *domain.CatalogStats
	root  *Resolver
}

func (r *statsResolver) TotalProducts() int32   { return int32(r.stats.TotalProducts) }
func (r *statsResolver) TotalBrands() int32     { return int32(r.stats.TotalBrands) }
func (r *statsResolver) TotalCategories() int32 { return int32(r.stats.TotalCategories) }
func (r *statsResolver) TotalValue() float64    { return r.stats.TotalValue }

func (r *statsResolver) ProductsByCategory() []*namedCountResolver {
	return namedCounts(r.stats.ProductsByCategory)
}

func (r *statsResolver) ProductsByBrand() []*namedCountResolver {
	return namedCounts(r.stats.ProductsByBrand)
}

func (r *statsResolver) TopRated() []*productResolver {
	return r.root.productResolvers(r.stats.TopRated)
}

type namedCountResolver struct {
	count domain.NamedCount
}

func (r *namedCountResolver) Name() string { return r.count.Name }
func (r *namedCountResolver) Count() int32 { return int32(r.count.Count) }

func namedCounts(counts []domain.NamedCount) []*namedCountResolver {
	resolvers := make([]*namedCountResolver, len(counts))
	for i, c := range counts {
		resolvers[i] = &namedCountResolver{c}
	}
	return resolvers
}
