package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/repository"

	"github.com/google/uuid"
)

const productColumns = `id, name, description, price, stock, category_id, brand_id, image_url, specifications, rating, created_at, updated_at`

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

type productRow struct {
	ID         uuid.UUID
	CategoryID uuid.UUID
	BrandID    uuid.UUID
	Specs      []byte
}

func productArgs(product *domain.Product) (categoryID, brandID uuid.UUID, specs []byte, err error) {
	categoryID, err = uuid.Parse(product.CategoryID)
	if err != nil {
		return uuid.Nil, uuid.Nil, nil, &repository.InvalidReferenceError{Field: "categoryId", Value: product.CategoryID}
	}
	brandID, err = uuid.Parse(product.BrandID)
	if err != nil {
		return uuid.Nil, uuid.Nil, nil, &repository.InvalidReferenceError{Field: "brandId", Value: product.BrandID}
	}

	list := product.Specifications
	if list == nil {
		list = domain.Specifications{}
	}
	specs, err = json.Marshal(list)
	if err != nil {
		return uuid.Nil, uuid.Nil, nil, fmt.Errorf("failed to encode specifications: %w", err)
	}
	return categoryID, brandID, specs, nil
}

// Create inserts a new product into the database using parameterized queries
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	categoryID, brandID, specs, err := productArgs(product)
	if err != nil {
		return err
	}

	id := uuid.New()
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		id,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		categoryID,
		brandID,
		product.ImageURL,
		specs,
		product.Rating,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	product.ID = id.String()
	return nil
}

func productAssignments(patch domain.ProductPatch) (*assignments, error) {
	a := &assignments{}
	if patch.Name != nil {
		a.set("name", *patch.Name)
	}
	if patch.Description != nil {
		a.set("description", *patch.Description)
	}
	if patch.Price != nil {
		a.set("price", *patch.Price)
	}
	if patch.Stock != nil {
		a.set("stock", *patch.Stock)
	}
	if patch.CategoryID != nil {
		id, err := uuid.Parse(*patch.CategoryID)
		if err != nil {
			return nil, &repository.InvalidReferenceError{Field: "categoryId", Value: *patch.CategoryID}
		}
		a.set("category_id", id)
	}
	if patch.BrandID != nil {
		id, err := uuid.Parse(*patch.BrandID)
		if err != nil {
			return nil, &repository.InvalidReferenceError{Field: "brandId", Value: *patch.BrandID}
		}
		a.set("brand_id", id)
	}
	if patch.ImageURL != nil {
		a.set("image_url", *patch.ImageURL)
	}
	if patch.Specifications != nil {
		list := *patch.Specifications
		if list == nil {
			list = domain.Specifications{}
		}
		specs, err := json.Marshal(list)
		if err != nil {
			return nil, fmt.Errorf("failed to encode specifications: %w", err)
		}
		a.set("specifications", specs)
	}
	if patch.Rating != nil {
		a.set("rating", *patch.Rating)
	}
	if !patch.UpdatedAt.IsZero() {
		a.set("updated_at", patch.UpdatedAt)
	}
	return a, nil
}

// Update writes only the patched columns in a single statement and returns the stored row
func (r *productRepository) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, repository.ErrProductNotFound
	}
	a, err := productAssignments(patch)
	if err != nil {
		return nil, err
	}
	if a.empty() {
		return r.FindByID(ctx, id)
	}

	query, args := a.updateQuery("products", productColumns, uid)
	product, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// Delete removes a product from the database using parameterized queries
func (r *productRepository) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return repository.ErrProductNotFound
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, uid)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// FindByID retrieves a product by ID using parameterized queries
func (r *productRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, repository.ErrProductNotFound
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	product, err := scanProduct(r.db.QueryRowContext(ctx, query, uid))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at ASC, id ASC`)
}

func (r *productRepository) ListByCategory(ctx context.Context, categoryID string) ([]*domain.Product, error) {
	uid, err := uuid.Parse(categoryID)
	if err != nil {
		return []*domain.Product{}, nil
	}
	return r.query(ctx, `SELECT `+productColumns+` FROM products WHERE category_id = $1 ORDER BY created_at ASC, id ASC`, uid)
}

func (r *productRepository) ListByBrand(ctx context.Context, brandID string) ([]*domain.Product, error) {
	uid, err := uuid.Parse(brandID)
	if err != nil {
		return []*domain.Product{}, nil
	}
	return r.query(ctx, `SELECT `+productColumns+` FROM products WHERE brand_id = $1 ORDER BY created_at ASC, id ASC`, uid)
}

func (r *productRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	return r.count(ctx, "category_id", categoryID)
}

func (r *productRepository) CountByBrand(ctx context.Context, brandID string) (int64, error) {
	return r.count(ctx, "brand_id", brandID)
}

// count is only called with the two fixed column names above.
func (r *productRepository) count(ctx context.Context, column, id string) (int64, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return 0, nil
	}

	var total int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM products WHERE %s = $1", column)
	if err := r.db.QueryRowContext(ctx, query, uid).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

func (r *productRepository) query(ctx context.Context, query string, args ...interface{}) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(s scanner) (*domain.Product, error) {
	var (
		product domain.Product
		row     productRow
	)

	err := s.Scan(
		&row.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Stock,
		&row.CategoryID,
		&row.BrandID,
		&product.ImageURL,
		&row.Specs,
		&product.Rating,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	var specs []domain.Specification
	if len(row.Specs) > 0 {
		if err := json.Unmarshal(row.Specs, &specs); err != nil {
			return nil, fmt.Errorf("failed to decode specifications: %w", err)
		}
	}

	product.ID = row.ID.String()
	product.CategoryID = row.CategoryID.String()
	product.BrandID = row.BrandID.String()
	product.Specifications = domain.NormalizeSpecifications(specs)
	return &product, nil
}
