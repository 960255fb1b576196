package mongodb

import (
	"context"
	"errors"
	"fmt"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type productRepository struct {
	collection *mongo.Collection
}

func newProductDocument(p *domain.Product) (*productDocument, error) {
	categoryID, err := primitive.ObjectIDFromHex(p.CategoryID)
	if err != nil {
		return nil, &repository.InvalidReferenceError{Field: "categoryId", Value: p.CategoryID}
	}
	brandID, err := primitive.ObjectIDFromHex(p.BrandID)
	if err != nil {
		return nil, &repository.InvalidReferenceError{Field: "brandId", Value: p.BrandID}
	}
	specs, err := encodeSpecifications(p.Specifications)
	if err != nil {
		return nil, err
	}

	return &productDocument{
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		Stock:          p.Stock,
		CategoryID:     categoryID,
		BrandID:        brandID,
		ImageURL:       p.ImageURL,
		Specifications: specs,
		Rating:         p.Rating,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}, nil
}

// Create inserts a new product document and assigns its ObjectID
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	doc, err := newProductDocument(product)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create product: %w", translateWriteError("product", err))
	}

	product.ID = doc.ID.Hex()
	return nil
}

// Update sets only the patched fields and returns the updated product
func (r *productRepository) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrProductNotFound
	}
	set, err := productSet(patch)
	if err != nil {
		return nil, err
	}

	var doc productDocument
	if err := updateOne(ctx, r.collection, oid, set, &doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", translateWriteError("product", err))
	}
	return doc.toDomain()
}

// Delete removes a product document
func (r *productRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrProductNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrProductNotFound
	}
	return nil
}

// FindByID retrieves a product by its hex ObjectID
func (r *productRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrProductNotFound
	}

	var doc productDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return doc.toDomain()
}

func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	return r.find(ctx, bson.M{})
}

func (r *productRepository) ListByCategory(ctx context.Context, categoryID string) ([]*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return []*domain.Product{}, nil
	}
	return r.find(ctx, bson.M{"categoryId": oid})
}

func (r *productRepository) ListByBrand(ctx context.Context, brandID string) ([]*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(brandID)
	if err != nil {
		return []*domain.Product{}, nil
	}
	return r.find(ctx, bson.M{"brandId": oid})
}

func (r *productRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	return r.countRef(ctx, "categoryId", categoryID)
}

func (r *productRepository) CountByBrand(ctx context.Context, brandID string) (int64, error) {
	return r.countRef(ctx, "brandId", brandID)
}

func (r *productRepository) countRef(ctx context.Context, field, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	count, err := r.collection.CountDocuments(ctx, bson.M{field: oid})
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (r *productRepository) find(ctx context.Context, filter bson.M) ([]*domain.Product, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	products := make([]*domain.Product, 0, len(docs))
	for i := range docs {
		product, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}
