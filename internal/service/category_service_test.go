package service

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategory_DuplicateNameWritesNothing(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	_, err := f.categories.Create(ctx, CategoryInput{Name: ptr("Laptops"), Slug: ptr("laptops")})
	require.NoError(t, err)

	_, err = f.categories.Create(ctx, CategoryInput{Name: ptr("Laptops"), Slug: ptr("notebooks")})
	svcErr := requireKind(t, err, KindDuplicate)
	assert.Equal(t, "name", svcErr.Field)
	assert.Equal(t, "Category with this name already exists", svcErr.Message)
	assert.Equal(t, map[string]interface{}{"code": "DUPLICATE", "field": "name"}, svcErr.Extensions())

	all, err := f.categories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateCategory_NameIsCaseSensitive(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	_, err := f.categories.Create(ctx, CategoryInput{Name: ptr("Laptops"), Slug: ptr("laptops")})
	require.NoError(t, err)
	_, err = f.categories.Create(ctx, CategoryInput{Name: ptr("laptops"), Slug: ptr("laptops-2")})
	assert.NoError(t, err)
}

func TestCreateCategory_DuplicateSlug(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	_, err := f.categories.Create(ctx, CategoryInput{Name: ptr("Laptops"), Slug: ptr("laptops")})
	require.NoError(t, err)

	_, err = f.categories.Create(ctx, CategoryInput{Name: ptr("Notebooks"), Slug: ptr("laptops")})
	svcErr := requireKind(t, err, KindDuplicate)
	assert.Equal(t, "slug", svcErr.Field)
}

func TestCreateCategory_SlugIsStoredAsGiven(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	for _, slug := range []string{"Phones", "tv's", "Big Laptops"} {
		created, err := f.categories.Create(ctx, CategoryInput{Name: ptr("Category " + slug), Slug: ptr(slug)})
		require.NoError(t, err)
		assert.Equal(t, slug, created.Slug)
	}

	_, err := f.categories.Create(ctx, CategoryInput{Name: ptr("Empty"), Slug: ptr("")})
	svcErr := requireKind(t, err, KindValidation)
	assert.Equal(t, "slug", svcErr.Field)
}

func TestUpdateCategory_PartialAndNotFound(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	created, err := f.categories.Create(ctx, CategoryInput{Name: ptr("Laptops"), Slug: ptr("laptops"), Logo: ptr("/public/uploads/a.png")})
	require.NoError(t, err)

	updated, err := f.categories.Update(ctx, created.ID, CategoryInput{Description: ptr("Portable computers")})
	require.NoError(t, err)
	assert.Equal(t, "Laptops", updated.Name)
	assert.Equal(t, "laptops", updated.Slug)
	assert.Equal(t, "/public/uploads/a.png", updated.Logo)
	assert.Equal(t, "Portable computers", updated.Description)

	_, err = f.categories.Update(ctx, "missing", CategoryInput{Name: ptr("x")})
	requireKind(t, err, KindNotFound)
}

func TestDeleteCategory_LenientLeavesProductsDangling(t *testing.T) {
	f := newFixture(false)
	category, brand := f.seed(t)
	ctx := context.Background()

	product, err := f.products.Create(ctx, productInput(category.ID, brand.ID))
	require.NoError(t, err)

	require.NoError(t, f.categories.Delete(ctx, category.ID))
	requireKind(t, f.categories.Delete(ctx, category.ID), KindNotFound)

	stored, err := f.products.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, category.ID, stored.CategoryID)
}

func TestDeleteCategory_StrictRestrictsReferenced(t *testing.T) {
	f := newFixture(true)
	category, brand := f.seed(t)
	ctx := context.Background()

	product, err := f.products.Create(ctx, productInput(category.ID, brand.ID))
	require.NoError(t, err)

	svcErr := requireKind(t, f.categories.Delete(ctx, category.ID), KindValidation)
	assert.Equal(t, "id", svcErr.Field)

	require.NoError(t, f.products.Delete(ctx, product.ID))
	assert.NoError(t, f.categories.Delete(ctx, category.ID))
}

func TestProperty_DuplicateCategoryNamesAreRejected(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("a second category with the same name is never stored", prop.ForAll(
		func(name string) bool {
			f := newFixture(false)
			ctx := context.Background()

			if _, err := f.categories.Create(ctx, CategoryInput{Name: ptr(name), Slug: ptr("first")}); err != nil {
				return false
			}
			_, err := f.categories.Create(ctx, CategoryInput{Name: ptr(name), Slug: ptr("second")})
			if KindOf(err) != KindDuplicate {
				return false
			}

			all, err := f.categories.List(ctx)
			return err == nil && len(all) == 1
		},
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) > 0 }),
	))

	properties.TestingRun(t)
}
