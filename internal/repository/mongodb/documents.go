package mongodb

import (
	"context"
	"fmt"
	"time"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type productDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	Description    string             `bson:"description"`
	Price          float64            `bson:"price"`
	Stock          int                `bson:"stock"`
	CategoryID     primitive.ObjectID `bson:"categoryId"`
	BrandID        primitive.ObjectID `bson:"brandId"`
	ImageURL       string             `bson:"imageUrl,omitempty"`
	Specifications bson.RawValue      `bson:"specifications,omitempty"`
	Rating         float64            `bson:"rating"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

type categoryDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Slug        string             `bson:"slug"`
	Logo        string             `bson:"logo,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

type brandDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Country   string             `bson:"country,omitempty"`
	Website   string             `bson:"website,omitempty"`
	Logo      string             `bson:"logo,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *productDocument) toDomain() (*domain.Product, error) {
	specs, err := decodeSpecifications(d.Specifications)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", d.ID.Hex(), err)
	}

	return &domain.Product{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		Description:    d.Description,
		Price:          d.Price,
		Stock:          d.Stock,
		CategoryID:     d.CategoryID.Hex(),
		BrandID:        d.BrandID.Hex(),
		ImageURL:       d.ImageURL,
		Specifications: specs,
		Rating:         d.Rating,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}, nil
}

func (d *categoryDocument) toDomain() *domain.Category {
	return &domain.Category{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Slug:        d.Slug,
		Logo:        d.Logo,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func newCategoryDocument(c *domain.Category) *categoryDocument {
	return &categoryDocument{
		Name:        c.Name,
		Description: c.Description,
		Slug:        c.Slug,
		Logo:        c.Logo,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (d *brandDocument) toDomain() *domain.Brand {
	return &domain.Brand{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Country:   d.Country,
		Website:   d.Website,
		Logo:      d.Logo,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func newBrandDocument(b *domain.Brand) *brandDocument {
	return &brandDocument{
		Name:      b.Name,
		Country:   b.Country,
		Website:   b.Website,
		Logo:      b.Logo,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// encodeSpecifications always writes the ordered array form.
func encodeSpecifications(specs domain.Specifications) (bson.RawValue, error) {
	if specs == nil {
		specs = domain.Specifications{}
	}
	t, data, err := bson.MarshalValue([]domain.Specification(specs))
	if err != nil {
		return bson.RawValue{}, fmt.Errorf("failed to encode specifications: %w", err)
	}
	return bson.RawValue{Type: t, Value: data}, nil
}

// decodeSpecifications accepts both the array form and the legacy embedded
// document form ({"RAM": "8GB", ...}), which is read in document order.
func decodeSpecifications(raw bson.RawValue) (domain.Specifications, error) {
	specs := domain.Specifications{}

	switch raw.Type {
	case 0, bsontype.Null, bsontype.Undefined:
		return specs, nil

	case bsontype.EmbeddedDocument:
		elements, err := raw.Document().Elements()
		if err != nil {
			return nil, fmt.Errorf("malformed specifications: %w", err)
		}
		for _, el := range elements {
			value, _ := el.Value().StringValueOK()
			specs = append(specs, domain.Specification{Key: el.Key(), Value: value})
		}

	case bsontype.Array:
		values, err := raw.Array().Values()
		if err != nil {
			return nil, fmt.Errorf("malformed specifications: %w", err)
		}
		for _, v := range values {
			doc, ok := v.DocumentOK()
			if !ok {
				continue
			}
			key, _ := doc.Lookup("key").StringValueOK()
			value, _ := doc.Lookup("value").StringValueOK()
			specs = append(specs, domain.Specification{Key: key, Value: value})
		}

	default:
		return nil, fmt.Errorf("unsupported specifications type %s", raw.Type)
	}

	return domain.NormalizeSpecifications(specs), nil
}

// productSet builds the $set document for the fields present in patch.
func productSet(patch domain.ProductPatch) (bson.D, error) {
	set := bson.D{}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if patch.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *patch.Description})
	}
	if patch.Price != nil {
		set = append(set, bson.E{Key: "price", Value: *patch.Price})
	}
	if patch.Stock != nil {
		set = append(set, bson.E{Key: "stock", Value: *patch.Stock})
	}
	if patch.CategoryID != nil {
		oid, err := primitive.ObjectIDFromHex(*patch.CategoryID)
		if err != nil {
			return nil, &repository.InvalidReferenceError{Field: "categoryId", Value: *patch.CategoryID}
		}
		set = append(set, bson.E{Key: "categoryId", Value: oid})
	}
	if patch.BrandID != nil {
		oid, err := primitive.ObjectIDFromHex(*patch.BrandID)
		if err != nil {
			return nil, &repository.InvalidReferenceError{Field: "brandId", Value: *patch.BrandID}
		}
		set = append(set, bson.E{Key: "brandId", Value: oid})
	}
	if patch.ImageURL != nil {
		set = append(set, bson.E{Key: "imageUrl", Value: *patch.ImageURL})
	}
	if patch.Specifications != nil {
		specs, err := encodeSpecifications(*patch.Specifications)
		if err != nil {
			return nil, err
		}
		set = append(set, bson.E{Key: "specifications", Value: specs})
	}
	if patch.Rating != nil {
		set = append(set, bson.E{Key: "rating", Value: *patch.Rating})
	}
	return withUpdatedAt(set, patch.UpdatedAt), nil
}

func categorySet(patch domain.CategoryPatch) bson.D {
	set := bson.D{}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if patch.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *patch.Description})
	}
	if patch.Slug != nil {
		set = append(set, bson.E{Key: "slug", Value: *patch.Slug})
	}
	if patch.Logo != nil {
		set = append(set, bson.E{Key: "logo", Value: *patch.Logo})
	}
	return withUpdatedAt(set, patch.UpdatedAt)
}

func brandSet(patch domain.BrandPatch) bson.D {
	set := bson.D{}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if patch.Country != nil {
		set = append(set, bson.E{Key: "country", Value: *patch.Country})
	}
	if patch.Website != nil {
		set = append(set, bson.E{Key: "website", Value: *patch.Website})
	}
	if patch.Logo != nil {
		set = append(set, bson.E{Key: "logo", Value: *patch.Logo})
	}
	return withUpdatedAt(set, patch.UpdatedAt)
}

func withUpdatedAt(set bson.D, at time.Time) bson.D {
	if !at.IsZero() {
		set = append(set, bson.E{Key: "updatedAt", Value: at})
	}
	return set
}

// updateOne applies set to the document with oid and decodes the result
// into out. An empty set only reads the document.
func updateOne(ctx context.Context, collection *mongo.Collection, oid primitive.ObjectID, set bson.D, out interface{}) error {
	if len(set) == 0 {
		return collection.FindOne(ctx, bson.M{"_id": oid}).Decode(out)
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.D{{Key: "$set", Value: set}}, opts).Decode(out)
}
