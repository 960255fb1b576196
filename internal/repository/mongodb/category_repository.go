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

type categoryRepository struct {
	collection *mongo.Collection
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	doc := newCategoryDocument(category)
	doc.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create category: %w", translateWriteError("category", err))
	}

	category.ID = doc.ID.Hex()
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, id string, patch domain.CategoryPatch) (*domain.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrCategoryNotFound
	}

	var doc categoryDocument
	if err := updateOne(ctx, r.collection, oid, categorySet(patch), &doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update category: %w", translateWriteError("category", err))
	}
	return doc.toDomain(), nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrCategoryNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrCategoryNotFound
	}

	var doc categoryDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *categoryRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Category, error) {
	oids := parseIDs(ids)
	if len(oids) == 0 {
		return []*domain.Category{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

func (r *categoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	return r.find(ctx, bson.M{})
}

func (r *categoryRepository) find(ctx context.Context, filter bson.M) ([]*domain.Category, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []categoryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	categories := make([]*domain.Category, 0, len(docs))
	for i := range docs {
		categories = append(categories, docs[i].toDomain())
	}
	return categories, nil
}
