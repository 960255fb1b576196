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

type brandRepository struct {
	collection *mongo.Collection
}

func (r *brandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	doc := newBrandDocument(brand)
	doc.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create brand: %w", translateWriteError("brand", err))
	}

	brand.ID = doc.ID.Hex()
	return nil
}

func (r *brandRepository) Update(ctx context.Context, id string, patch domain.BrandPatch) (*domain.Brand, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrBrandNotFound
	}

	var doc brandDocument
	if err := updateOne(ctx, r.collection, oid, brandSet(patch), &doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to update brand: %w", translateWriteError("brand", err))
	}
	return doc.toDomain(), nil
}

func (r *brandRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrBrandNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrBrandNotFound
	}
	return nil
}

func (r *brandRepository) FindByID(ctx context.Context, id string) (*domain.Brand, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrBrandNotFound
	}

	var doc brandDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to find brand by ID: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *brandRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Brand, error) {
	oids := parseIDs(ids)
	if len(oids) == 0 {
		return []*domain.Brand{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

func (r *brandRepository) List(ctx context.Context) ([]*domain.Brand, error) {
	return r.find(ctx, bson.M{})
}

func (r *brandRepository) find(ctx context.Context, filter bson.M) ([]*domain.Brand, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []brandDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode brands: %w", err)
	}

	brands := make([]*domain.Brand, 0, len(docs))
	for i := range docs {
		brands = append(brands, docs[i].toDomain())
	}
	return brands, nil
}
