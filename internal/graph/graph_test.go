package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync/atomic"
	"testing"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/repository"
	"catalog-admin/internal/repository/memory"
	"catalog-admin/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingStore struct {
	*memory.Store
	categoryBatches *int32
}

func (s countingStore) Categories() repository.CategoryRepository {
	return countingCategories{CategoryRepository: s.Store.Categories(), calls: s.categoryBatches}
}

type countingCategories struct {
	repository.CategoryRepository
	calls *int32
}

func (c countingCategories) FindByIDs(ctx context.Context, ids []string) ([]*domain.Category, error) {
	atomic.AddInt32(c.calls, 1)
	return c.CategoryRepository.FindByIDs(ctx, ids)
}

type testAPI struct {
	t      *testing.T
	schema *Schema
}

func newTestAPI(t *testing.T, store repository.Store, strict bool) *testAPI {
	t.Helper()
	schema, err := NewSchema(service.New(store, strict, zap.NewNop()), zap.NewNop())
	require.NoError(t, err)
	return &testAPI{t: t, schema: schema}
}

type gqlError struct {
	Message    string                 `json:"message"`
	Extensions map[string]interface{} `json:"extensions"`
}

// do runs query and decodes data into out. It returns the errors of the response.
func (a *testAPI) do(query string, variables map[string]interface{}, out interface{}) []gqlError {
	a.t.Helper()
	resp := a.schema.Exec(context.Background(), query, "", variables)

	raw, err := json.Marshal(resp)
	require.NoError(a.t, err)

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []gqlError      `json:"errors"`
	}
	require.NoError(a.t, json.Unmarshal(raw, &envelope))
	if out != nil && len(envelope.Data) > 0 {
		require.NoError(a.t, json.Unmarshal(envelope.Data, out))
	}
	return envelope.Errors
}

func (a *testAPI) mustDo(query string, variables map[string]interface{}, out interface{}) {
	a.t.Helper()
	errs := a.do(query, variables, out)
	require.Empty(a.t, errs)
}

func (a *testAPI) createCategory(name, slug string) string {
	var out struct {
		CreateCategory struct{ ID string } `json:"createCategory"`
	}
	a.mustDo(`mutation($name: String!, $slug: String!) { createCategory(name: $name, slug: $slug) { id } }`,
		map[string]interface{}{"name": name, "slug": slug}, &out)
	return out.CreateCategory.ID
}

func (a *testAPI) createBrand(name string) string {
	var out struct {
		CreateBrand struct{ ID string } `json:"createBrand"`
	}
	a.mustDo(`mutation($name: String!) { createBrand(name: $name, country: "USA") { id } }`,
		map[string]interface{}{"name": name}, &out)
	return out.CreateBrand.ID
}

const createProductMutation = `
mutation($name: String!, $categoryId: ID!, $brandId: ID!, $specs: [SpecificationInput!]) {
  createProduct(name: $name, description: "desc", price: 10.5, stock: 3,
                categoryId: $categoryId, brandId: $brandId, specifications: $specs) {
    id
  }
}`

func (a *testAPI) createProduct(name, categoryID, brandID string, specs []map[string]string) string {
	var out struct {
		CreateProduct struct{ ID string } `json:"createProduct"`
	}
	vars := map[string]interface{}{"name": name, "categoryId": categoryID, "brandId": brandID}
	if specs != nil {
		list := make([]interface{}, len(specs))
		for i, s := range specs {
			list[i] = map[string]interface{}{"key": s["key"], "value": s["value"]}
		}
		vars["specs"] = list
	}
	a.mustDo(createProductMutation, vars, &out)
	return out.CreateProduct.ID
}

type productView struct {
	ID             string
	Name           string
	Price          float64
	Stock          int
	CategoryID     string `json:"categoryId"`
	BrandID        string `json:"brandId"`
	Category       *struct{ Name string }
	Brand          *struct{ Name string }
	Specifications []struct{ Key, Value string }
	Rating         float64
	CreatedAt      *string `json:"createdAt"`
}

const productFields = `id name price stock categoryId brandId category { name } brand { name } specifications { key value } rating createdAt`

func TestSchemaParses(t *testing.T) {
	newTestAPI(t, memory.NewStore(), false)
}

func TestCreateAndFetchProductWithNestedRecords(t *testing.T) {
	api := newTestAPI(t, memory.NewStore(), false)
	categoryID := api.createCategory("Laptops", "laptops")
	brandID := api.createBrand("Dell")
	id := api.createProduct("Dell XPS 15", categoryID, brandID, []map[string]string{{"key": "Color", "value": "Black"}})

	var out struct{ ProductDetails productView }
	api.mustDo(`query($id: ID!) { productDetails(id: $id) { `+productFields+` } }`, map[string]interface{}{"id": id}, &out)

	p := out.ProductDetails
	assert.Equal(t, "Dell XPS 15", p.Name)
	assert.Equal(t, 10.5, p.Price)
	assert.Equal(t, 3, p.Stock)
	require.NotNil(t, p.Category)
	assert.Equal(t, "Laptops", p.Category.Name)
	require.NotNil(t, p.Brand)
	assert.Equal(t, "Dell", p.Brand.Name)
	require.Len(t, p.Specifications, 1)
	assert.Equal(t, "Color", p.Specifications[0].Key)
	assert.Equal(t, "Black", p.Specifications[0].Value)
	require.NotNil(t, p.CreatedAt)
	_, err := strconv.ParseInt(*p.CreatedAt, 10, 64)
	assert.NoError(t, err)
}

func TestDanglingCategoryResolvesToNull(t *testing.T) {
	api := newTestAPI(t, memory.NewStore(), false)
	brandID := api.createBrand("Apple")
	id := api.createProduct("Orphan", "no-such-category", brandID, nil)

	var out struct{ ProductDetails productView }
	errs := api.do(`query($id: ID!) { productDetails(id: $id) { `+productFields+` } }`, map[string]interface{}{"id": id}, &out)

	assert.Empty(t, errs)
	assert.Equal(t, "Orphan", out.ProductDetails.Name)
	assert.Nil(t, out.ProductDetails.Category)
	assert.NotNil(t, out.ProductDetails.Brand)
}

func TestProductDetailsNotFound(t *testing.T) {
	api := newTestAPI(t, memory.NewStore(), false)

	var out struct{ ProductDetails *productView }
	errs := api.do(`{ productDetails(id: "missing") { id } }`, nil, &out)

	require.Len(t, errs, 1)
	assert.Equal(t, "Product not found", errs[0].Message)
	assert.Equal(t, "NOT_FOUND", errs[0].Extensions["code"])
	assert.Nil(t, out.ProductDetails)
}

func TestUpdateProductWithOnlyStock(t *testing.T) {
	api := newTestAPI(t, memory.NewStore(), false)
	categoryID := api.createCategory("Phones", "phones")
	brandID := api.createBrand("Samsung")
	id := api.createProduct("Galaxy", categoryID, brandID, []map[string]string{{"key": "RAM", "value": "12GB"}})

	var out struct{ UpdateProduct productView }
	api.mustDo(`mutation($id: ID!) { updateProduct(id: $id, stock: 42) { `+productFields+` } }`,
		map[string]interface{}{"id": id}, &out)

	p := out.UpdateProduct
	assert.Equal(t, 42, p.Stock)
	assert.Equal(t, "Galaxy", p.Name)
	assert.Equal(t, 10.5, p.Price)
	assert.Equal(t, categoryID, p.CategoryID)
	assert.Equal(t, brandID, p.BrandID)
	require.Len(t, p.Specifications, 1)
	assert.Equal(t, "12GB", p.Specifications[0].Value)
}

func TestDuplicateSpecificationKeysOnCreate(t *testing.T) {
	api := newTestAPI(t, memory.NewStore(), false)
	categoryID := api.createCategory("Phones", "phones")
	brandID := api.createBrand("Samsung")
	id := api.createProduct("Galaxy", categoryID, brandID, []map[string]string{
		{"key": "RAM", "value": "8GB"},
		{"key": "RAM", "value": "16GB"},
	})

	var out struct{ ProductDetails productView }
	api.mustDo(`query($id: ID!) { productDetails(id: $id) { specifications { key value } } }`,
		map[string]interface{}{"id": id}, &out)

	require.Len(t, out.ProductDetails.Specifications, 1)
	assert.Equal(t, "RAM", out.ProductDetails.Specifications[0].Key)
	assert.Equal(t, "16GB", out.ProductDetails.Specifications[0].Value)
}

func TestDeleteProduct(t *testing.T) {
	api := newTestAPI(t, memory.NewStore(), false)
	id := api.createProduct("Temp", "c", "b", nil)

	errs := api.do(`mutation { deleteProduct(id: "missing") }`, nil, nil)
	require.Len(t, errs, 1)
	assert.Equal(t, "NOT_FOUND", errs[0].Extensions["code"])

	var out struct{ DeleteProduct bool }
	api.mustDo(`mutation($id: ID!) { deleteProduct(id: $id) }`, map[string]interface{}{"id": id}, &out)
	assert.True(t, out.DeleteProduct)

	errs = api.do(`query($id: ID!) { productDetails(id: $id) { id } }`, map[string]interface{}{"id": id}, nil)
	require.Len(t, errs, 1)
	assert.Equal(t, "NOT_FOUND", errs[0].Extensions["code"])
}

func TestDuplicateBrandNameError(t *testing.T) {
	api := newTestAPI(t, memory.NewStore(), false)
	api.createBrand("Apple")

	errs := api.do(`mutation { createBrand(name: "Apple") { id } }`, nil, nil)
	require.Len(t, errs, 1)
	assert.Equal(t, "DUPLICATE", errs[0].Extensions["code"])
	assert.Equal(t, "name", errs[0].Extensions["field"])
	assert.Equal(t, "Brand with this name already exists", errs[0].Message)

	var out struct{ Brands []struct{ Name string } }
	api.mustDo(`{ brands { name } }`, nil, &out)
	assert.Len(t, out.Brands, 1)
}

func TestValidationErrorNamesField(t *testing.T) {
	api := newTestAPI(t, memory.NewStore(), false)

	errs := api.do(`mutation { createProduct(name: "x", description: "y", price: -1, categoryId: "c", brandId: "b") { id } }`, nil, nil)
	require.Len(t, errs, 1)
	assert.Equal(t, "VALIDATION", errs[0].Extensions["code"])
	assert.Equal(t, "price", errs[0].Extensions["field"])
}

func TestStrictPolicyRejectsUnknownCategory(t *testing.T) {
	api := newTestAPI(t, memory.NewStore(), true)
	brandID := api.createBrand("Apple")

	errs := api.do(createProductMutation, map[string]interface{}{"name": "x", "categoryId": "nope", "brandId": brandID}, nil)
	require.Len(t, errs, 1)
	assert.Equal(t, "VALIDATION", errs[0].Extensions["code"])
	assert.Equal(t, "categoryId", errs[0].Extensions["field"])
}

func TestProductsByCategoryAndBrand(t *testing.T) {
	api := newTestAPI(t, memory.NewStore(), false)
	phones := api.createCategory("Phones", "phones")
	laptops := api.createCategory("Laptops", "laptops")
	apple := api.createBrand("Apple")
	dell := api.createBrand("Dell")
	api.createProduct("iPhone", phones, apple, nil)
	api.createProduct("MacBook", laptops, apple, nil)
	api.createProduct("XPS", laptops, dell, nil)

	var byCategory struct{ ProductsByCategory []productView }
	api.mustDo(`query($id: ID!) { productsByCategory(categoryId: $id) { name } }`, map[string]interface{}{"id": laptops}, &byCategory)
	assert.Len(t, byCategory.ProductsByCategory, 2)

	var byBrand struct{ ProductsByBrand []productView }
	api.mustDo(`query($id: ID!) { productsByBrand(brandId: $id) { name } }`, map[string]interface{}{"id": apple}, &byBrand)
	assert.Len(t, byBrand.ProductsByBrand, 2)
}

func TestNestedCategoriesAreBatched(t *testing.T) {
	var batches int32
	api := newTestAPI(t, countingStore{Store: memory.NewStore(), categoryBatches: &batches}, false)
	categoryID := api.createCategory("Phones", "phones")
	brandID := api.createBrand("Apple")
	const n = 10
	for i := 0; i < n; i++ {
		api.createProduct(fmt.Sprintf("p%d", i), categoryID, brandID, nil)
	}

	var out struct{ Products []productView }
	api.mustDo(`{ products { name category { name } } }`, nil, &out)

	require.Len(t, out.Products, n)
	for _, p := range out.Products {
		require.NotNil(t, p.Category)
		assert.Equal(t, "Phones", p.Category.Name)
	}
	assert.Less(t, atomic.LoadInt32(&batches), int32(n))
}

func TestCatalogStatsQuery(t *testing.T) {
	api := newTestAPI(t, memory.NewStore(), false)
	phones := api.createCategory("Phones", "phones")
	apple := api.createBrand("Apple")
	api.createProduct("iPhone", phones, apple, nil)
	api.createProduct("Orphan", "gone", apple, nil)

	var out struct {
		CatalogStats struct {
			TotalProducts      int
			TotalValue         float64
			ProductsByCategory []struct {
				Name  string
				Count int
			}
			TopRated []struct{ Name string }
		}
	}
	api.mustDo(`{ catalogStats { totalProducts totalValue productsByCategory { name count } topRated { name } } }`, nil, &out)

	assert.Equal(t, 2, out.CatalogStats.TotalProducts)
	assert.InDelta(t, 63.0, out.CatalogStats.TotalValue, 1e-9)
	require.Len(t, out.CatalogStats.ProductsByCategory, 2)
	assert.Equal(t, "Unknown", out.CatalogStats.ProductsByCategory[1].Name)
	assert.Len(t, out.CatalogStats.TopRated, 2)
}

func TestCategoryMutations(t *testing.T) {
	api := newTestAPI(t, memory.NewStore(), false)
	id := api.createCategory("Phones", "phones")

	var updated struct {
		UpdateCategory struct {
			Name        string
			Slug        string
			Description *string
		}
	}
	api.mustDo(`mutation($id: ID!) { updateCategory(id: $id, description: "Mobile") { name slug description } }`,
		map[string]interface{}{"id": id}, &updated)
	assert.Equal(t, "Phones", updated.UpdateCategory.Name)
	assert.Equal(t, "phones", updated.UpdateCategory.Slug)
	require.NotNil(t, updated.UpdateCategory.Description)
	assert.Equal(t, "Mobile", *updated.UpdateCategory.Description)

	errs := api.do(`mutation { createCategory(name: "Other", slug: "phones") { id } }`, nil, nil)
	require.Len(t, errs, 1)
	assert.Equal(t, "slug", errs[0].Extensions["field"])

	var deleted struct{ DeleteCategory bool }
	api.mustDo(`mutation($id: ID!) { deleteCategory(id: $id) }`, map[string]interface{}{"id": id}, &deleted)
	assert.True(t, deleted.DeleteCategory)
}
