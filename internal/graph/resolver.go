package graph

import (
	"context"
	"strconv"
	"time"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/service"

	"github.com/graph-gophers/graphql-go"
)

// Resolver is the root resolver for queries and mutations.
type Resolver struct {
	services *service.Services
}

func (r *Resolver) Products(ctx context.Context) ([]*productResolver, error) {
	products, err := r.services.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	return r.productResolvers(products), nil
}

func (r *Resolver) ProductDetails(ctx context.Context, args struct{ ID graphql.ID }) (*productResolver, error) {
	product, err := r.services.Products.Get(ctx, string(args.ID))
	if err != nil {
		return nil, err
	}
	return &productResolver{product: product, services: r.services}, nil
}

func (r *Resolver) ProductsByCategory(ctx context.Context, args struct{ CategoryID graphql.ID }) ([]*productResolver, error) {
	products, err := r.services.Products.ListByCategory(ctx, string(args.CategoryID))
	if err != nil {
		return nil, err
	}
	return r.productResolvers(products), nil
}

func (r *Resolver) ProductsByBrand(ctx context.Context, args struct{ BrandID graphql.ID }) ([]*productResolver, error) {
	products, err := r.services.Products.ListByBrand(ctx, string(args.BrandID))
	if err != nil {
		return nil, err
	}
	return r.productResolvers(products), nil
}

func (r *Resolver) Categories(ctx context.Context) ([]*categoryResolver, error) {
	categories, err := r.services.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	resolvers := make([]*categoryResolver, len(categories))
	for i, c := range categories {
		resolvers[i] = &categoryResolver{c}
	}
	return resolvers, nil
}

func (r *Resolver) Brands(ctx context.Context) ([]*brandResolver, error) {
	brands, err := r.services.Brands.List(ctx)
	if err != nil {
		return nil, err
	}
	resolvers := make([]*brandResolver, len(brands))
	for i, b := range brands {
		resolvers[i] = &brandResolver{b}
	}
	return resolvers, nil
}

func (r *Resolver) CatalogStats(ctx context.Context) (*statsResolver, error) {
	stats, err := r.services.Stats.CatalogStats(ctx)
	if err != nil {
		return nil, err
	}
	return &statsResolver{stats: stats, root: r}, nil
}

func (r *Resolver) productResolvers(products []*domain.Product) []*productResolver {
	resolvers := make([]*productResolver, len(products))
	for i, p := range products {
		resolvers[i] = &productResolver{product: p, services: r.services}
	}
	return resolvers
}

// epochMillis renders a timestamp the way the admin client parses it.
func epochMillis(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := strconv.FormatInt(t.UnixMilli(), 10)
	return &s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
