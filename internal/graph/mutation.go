package graph

import (
	"context"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/service"

	"github.com/graph-gophers/graphql-go"
)

type specificationInput struct {
	Key   string
	Value string
}

func specifications(in *[]specificationInput) *[]domain.Specification {
	if in == nil {
		return nil
	}
	specs := make([]domain.Specification, len(*in))
	for i, s := range *in {
		specs[i] = domain.Specification{Key: s.Key, Value: s.Value}
	}
	return &specs
}

func intPtr(v *int32) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

func idPtr(v *graphql.ID) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

type createProductArgs struct {
	Name           string
	Description    string
	Price          float64
	Stock          *int32
	CategoryID     graphql.ID
	BrandID        graphql.ID
	ImageURL       *string
	Specifications *[]specificationInput
	Rating         *float64
}

func (r *Resolver) CreateProduct(ctx context.Context, args createProductArgs) (*productResolver, error) {
	categoryID := string(args.CategoryID)
	brandID := string(args.BrandID)

	product, err := r.services.Products.Create(ctx, service.ProductInput{
		Name:           &args.Name,
		Description:    &args.Description,
		Price:          &args.Price,
		Stock:          intPtr(args.Stock),
		CategoryID:     &categoryID,
		BrandID:        &brandID,
		ImageURL:       args.ImageURL,
		Specifications: specifications(args.Specifications),
		Rating:         args.Rating,
	})
	if err != nil {
		return nil, err
	}
	return &productResolver{product: product, services: r.services}, nil
}

type updateProductArgs struct {
	ID             graphql.ID
	Name           *string
	Description    *string
	Price          *float64
	Stock          *int32
	CategoryID     *graphql.ID
	BrandID        *graphql.ID
	ImageURL       *string
	Specifications *[]specificationInput
	Rating         *float64
}

func (r *Resolver) UpdateProduct(ctx context.Context, args updateProductArgs) (*productResolver, error) {
	product, err := r.services.Products.Update(ctx, string(args.ID), service.ProductInput{
		Name:           args.Name,
		Description:    args.Description,
		Price:          args.Price,
		Stock:          intPtr(args.Stock),
		CategoryID:     idPtr(args.CategoryID),
		BrandID:        idPtr(args.BrandID),
		ImageURL:       args.ImageURL,
		Specifications: specifications(args.Specifications),
		Rating:         args.Rating,
	})
	if err != nil {
		return nil, err
	}
	return &productResolver{product: product, services: r.services}, nil
}

func (r *Resolver) DeleteProduct(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	if err := r.services.Products.Delete(ctx, string(args.ID)); err != nil {
		return false, err
	}
	return true, nil
}

type brandArgs struct {
	Name    string
	Country *string
	Website *string
	Logo    *string
}

func (r *Resolver) CreateBrand(ctx context.Context, args brandArgs) (*brandResolver, error) {
	brand, err := r.services.Brands.Create(ctx, service.BrandInput{
		Name:    &args.Name,
		Country: args.Country,
		Website: args.Website,
		Logo:    args.Logo,
	})
	if err != nil {
		return nil, err
	}
	return &brandResolver{brand}, nil
}

type updateBrandArgs struct {
	ID      graphql.ID
	Name    *string
	Country *string
	Website *string
	Logo    *string
}

func (r *Resolver) UpdateBrand(ctx context.Context, args updateBrandArgs) (*brandResolver, error) {
	brand, err := r.services.Brands.Update(ctx, string(args.ID), service.BrandInput{
		Name:    args.Name,
		Country: args.Country,
		Website: args.Website,
		Logo:    args.Logo,
	})
	if err != nil {
		return nil, err
	}
	return &brandResolver{brand}, nil
}

func (r *Resolver) DeleteBrand(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	if err := r.services.Brands.Delete(ctx, string(args.ID)); err != nil {
		return false, err
	}
	return true, nil
}

type categoryArgs struct {
	Name        string
	Description *string
	Slug        string
	Logo        *string
}

func (r *Resolver) CreateCategory(ctx context.Context, args categoryArgs) (*categoryResolver, error) {
	category, err := r.services.Categories.Create(ctx, service.CategoryInput{
		Name:        &args.Name,
		Description: args.Description,
		Slug:        &args.Slug,
		Logo:        args.Logo,
	})
	if err != nil {
		return nil, err
	}
	return &categoryResolver{category}, nil
}

type updateCategoryArgs struct {
	ID          graphql.ID
	Name        *string
	Description *string
	Slug        *string
	Logo        *string
}

func (r *Resolver) UpdateCategory(ctx context.Context, args updateCategoryArgs) (*categoryResolver, error) {
	category, err := r.services.Categories.Update(ctx, string(args.ID), service.CategoryInput{
		Name:        args.Name,
		Description: args.Description,
		Slug:        args.Slug,
		Logo:        args.Logo,
	})
	if err != nil {
		return nil, err
	}
	return &categoryResolver{category}, nil
}

func (r *Resolver) DeleteCategory(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	if err := r.services.Categories.Delete(ctx, string(args.ID)); err != nil {
		return false, err
	}
	return true, nil
}
