package mongodb

import (
	"errors"
	"testing"
	"time"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func rawField(t *testing.T, doc interface{}, field string) bson.RawValue {
	t.Helper()
	data, err := bson.Marshal(doc)
	require.NoError(t, err)
	return bson.Raw(data).Lookup(field)
}

func TestDecodeSpecifications_ArrayForm(t *testing.T) {
	raw, err := encodeSpecifications(domain.Specifications{
		{Key: "RAM", Value: "16GB"},
		{Key: "Color", Value: "Black"},
	})
	require.NoError(t, err)

	specs, err := decodeSpecifications(raw)
	require.NoError(t, err)
	assert.Equal(t, domain.Specifications{
		{Key: "RAM", Value: "16GB"},
		{Key: "Color", Value: "Black"},
	}, specs)
}

func TestDecodeSpecifications_LegacyMapForm(t *testing.T) {
	raw := rawField(t, bson.D{
		{Key: "specifications", Value: bson.D{
			{Key: "Display", Value: "6.1 inch"},
			{Key: "Storage", Value: "256GB"},
		}},
	}, "specifications")

	specs, err := decodeSpecifications(raw)
	require.NoError(t, err)
	assert.Equal(t, domain.Specifications{
		{Key: "Display", Value: "6.1 inch"},
		{Key: "Storage", Value: "256GB"},
	}, specs)
}

func TestDecodeSpecifications_Missing(t *testing.T) {
	specs, err := decodeSpecifications(bson.RawValue{})
	require.NoError(t, err)
	assert.Empty(t, specs)
}

func TestDecodeSpecifications_UnsupportedType(t *testing.T) {
	raw := rawField(t, bson.D{{Key: "specifications", Value: 42}}, "specifications")

	_, err := decodeSpecifications(raw)
	assert.Error(t, err)
}

func TestEncodeSpecifications_NilWritesEmptyArray(t *testing.T) {
	raw, err := encodeSpecifications(nil)
	require.NoError(t, err)

	values, err := raw.Array().Values()
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestDuplicateField(t *testing.T) {
	tests := []struct {
		msg  string
		want string
	}{
		{`E11000 duplicate key error collection: catalog.categories index: slug_1 dup key: { slug: "phones" }`, "slug"},
		{`E11000 duplicate key error collection: catalog.brands index: name_1 dup key: { name: "Apple" }`, "name"},
		{`E11000 duplicate key error`, "name"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, duplicateField(errors.New(tt.msg)))
	}
}

func TestProductSet_OnlyPatchedFields(t *testing.T) {
	stock := 7
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	set, err := productSet(domain.ProductPatch{Stock: &stock, UpdatedAt: at})
	require.NoError(t, err)
	assert.Equal(t, bson.D{{Key: "stock", Value: 7}, {Key: "updatedAt", Value: at}}, set)

	empty, err := productSet(domain.ProductPatch{})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestProductSet_MalformedReference(t *testing.T) {
	bad := "nope"
	_, err := productSet(domain.ProductPatch{BrandID: &bad})

	var refErr *repository.InvalidReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "brandId", refErr.Field)
}

func TestCategorySet_KeepsUnsetFieldsOut(t *testing.T) {
	slug := "phones"
	set := categorySet(domain.CategoryPatch{Slug: &slug})
	assert.Equal(t, bson.D{{Key: "slug", Value: "phones"}}, set)
}
