// Package mongodb stores the catalog in MongoDB collections shaped like the
// documents the admin console has always written: camelCase fields, ObjectID
// keys and automatic createdAt/updatedAt timestamps.
package mongodb

import (
	"context"
	"fmt"
	"regexp"

	"catalog-admin/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	productsCollection   = "products"
	categoriesCollection = "categories"
	brandsCollection     = "brands"
)

// Store is the MongoDB catalog backend.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore wraps an already connected database handle.
func NewStore(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{client: client, db: db}
}

func (s *Store) Products() repository.ProductRepository {
	return &productRepository{collection: s.db.Collection(productsCollection)}
}

func (s *Store) Categories() repository.CategoryRepository {
	return &categoryRepository{collection: s.db.Collection(categoriesCollection)}
}

func (s *Store) Brands() repository.BrandRepository {
	return &brandRepository{collection: s.db.Collection(brandsCollection)}
}

// Ping checks the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects from MongoDB
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique and lookup indexes the repositories rely on.
// Index names follow the driver default (<field>_1) which duplicateField parses.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		categoriesCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		brandsCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		productsCollection: {
			{Keys: bson.D{{Key: "categoryId", Value: 1}}},
			{Keys: bson.D{{Key: "brandId", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}

var duplicateIndexPattern = regexp.MustCompile(`index: ([A-Za-z0-9]+)_1`)

// duplicateField extracts the field of the violated unique index from an
// E11000 error message. It falls back to "name", the field every uniquely
// constrained collection shares.
func duplicateField(err error) string {
	if m := duplicateIndexPattern.FindStringSubmatch(err.Error()); m != nil {
		return m[1]
	}
	return "name"
}

func translateWriteError(entity string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return &repository.DuplicateError{Entity: entity, Field: duplicateField(err), Err: err}
	}
	return err
}

// parseIDs converts hex ids to ObjectIDs, silently dropping malformed ones:
// they cannot match any document.
func parseIDs(ids []string) []primitive.ObjectID {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	return oids
}
