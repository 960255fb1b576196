package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/repository"

	"github.com/google/uuid"
)

const categoryColumns = `id, name, description, slug, logo, created_at, updated_at`

type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new instance of CategoryRepository
func NewCategoryRepository(db *sql.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

// Create inserts a new category into the database using parameterized queries
func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	id := uuid.New()
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		id,
		category.Name,
		category.Description,
		category.Slug,
		category.Logo,
		category.CreatedAt,
		category.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", translateWriteError("category", "categories", err))
	}

	category.ID = id.String()
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, id string, patch domain.CategoryPatch) (*domain.Category, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, repository.ErrCategoryNotFound
	}

	a := &assignments{}
	if patch.Name != nil {
		a.set("name", *patch.Name)
	}
	if patch.Description != nil {
		a.set("description", *patch.Description)
	}
	if patch.Slug != nil {
		a.set("slug", *patch.Slug)
	}
	if patch.Logo != nil {
		a.set("logo", *patch.Logo)
	}
	if !patch.UpdatedAt.IsZero() {
		a.set("updated_at", patch.UpdatedAt)
	}
	if a.empty() {
		return r.FindByID(ctx, id)
	}

	query, args := a.updateQuery("categories", categoryColumns, uid)
	category, err := scanCategory(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update category: %w", translateWriteError("category", "categories", err))
	}
	return category, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return repository.ErrCategoryNotFound
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, uid)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrCategoryNotFound
	}
	return nil
}

// FindByID retrieves a category by ID using parameterized queries
func (r *categoryRepository) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, repository.ErrCategoryNotFound
	}

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	category, err := scanCategory(r.db.QueryRowContext(ctx, query, uid))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID: %w", err)
	}

	return category, nil
}

func (r *categoryRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Category, error) {
	uids := parseIDs(ids)
	if len(uids) == 0 {
		return []*domain.Category{}, nil
	}
	placeholders, args := inClause(uids)
	return r.query(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id IN (`+placeholders+`)`, args...)
}

// List retrieves all categories
func (r *categoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	return r.query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY created_at ASC, id ASC`)
}

func (r *categoryRepository) query(ctx context.Context, query string, args ...interface{}) ([]*domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

func scanCategory(s scanner) (*domain.Category, error) {
	var (
		category domain.Category
		id       uuid.UUID
	)
	err := s.Scan(
		&id,
		&category.Name,
		&category.Description,
		&category.Slug,
		&category.Logo,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	category.ID = id.String()
	return &category, nil
}
