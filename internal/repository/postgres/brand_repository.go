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

const brandColumns = `id, name, country, website, logo, created_at, updated_at`

type brandRepository struct {
	db *sql.DB
}

// NewBrandRepository creates a new instance of BrandRepository
func NewBrandRepository(db *sql.DB) repository.BrandRepository {
	return &brandRepository{db: db}
}

func (r *brandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	id := uuid.New()
	query := `
		INSERT INTO brands (` + brandColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		id,
		brand.Name,
		brand.Country,
		brand.Website,
		brand.Logo,
		brand.CreatedAt,
		brand.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create brand: %w", translateWriteError("brand", "brands", err))
	}

	brand.ID = id.String()
	return nil
}

func (r *brandRepository) Update(ctx context.Context, id string, patch domain.BrandPatch) (*domain.Brand, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, repository.ErrBrandNotFound
	}

	a := &assignments{}
	if patch.Name != nil {
		a.set("name", *patch.Name)
	}
	if patch.Country != nil {
		a.set("country", *patch.Country)
	}
	if patch.Website != nil {
		a.set("website", *patch.Website)
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

	query, args := a.updateQuery("brands", brandColumns, uid)
	brand, err := scanBrand(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to update brand: %w", translateWriteError("brand", "brands", err))
	}
	return brand, nil
}

func (r *brandRepository) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return repository.ErrBrandNotFound
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM brands WHERE id = $1`, uid)
	if err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrBrandNotFound
	}
	return nil
}

func (r *brandRepository) FindByID(ctx context.Context, id string) (*domain.Brand, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, repository.ErrBrandNotFound
	}

	query := `SELECT ` + brandColumns + ` FROM brands WHERE id = $1`
	brand, err := scanBrand(r.db.QueryRowContext(ctx, query, uid))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to find brand by ID: %w", err)
	}

	return brand, nil
}

func (r *brandRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Brand, error) {
	uids := parseIDs(ids)
	if len(uids) == 0 {
		return []*domain.Brand{}, nil
	}
	placeholders, args := inClause(uids)
	return r.query(ctx, `SELECT `+brandColumns+` FROM brands WHERE id IN (`+placeholders+`)`, args...)
}

// List retrieves all brands
func (r *brandRepository) List(ctx context.Context) ([]*domain.Brand, error) {
	return r.query(ctx, `SELECT `+brandColumns+` FROM brands ORDER BY created_at ASC, id ASC`)
}

func (r *brandRepository) query(ctx context.Context, query string, args ...interface{}) ([]*domain.Brand, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	defer rows.Close()

	brands := []*domain.Brand{}
	for rows.Next() {
		brand, err := scanBrand(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, brand)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating brands: %w", err)
	}

	return brands, nil
}

func scanBrand(s scanner) (*domain.Brand, error) {
	var (
		brand domain.Brand
		id       uuid.UUID
	)
	err := s.Scan(
		&id,
		&brand.Name,
		&brand.Country,
		&brand.Website,
		&brand.Logo,
		&brand.CreatedAt,
		&brand.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	brand.ID = id.String()
	return &brand, nil
}
