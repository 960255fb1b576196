// Package postgres is the relational catalog backend. Tables are created by
// the goose migrations in the top-level migrations directory.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"catalog-admin/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// Store is the PostgreSQL catalog backend.
type Store struct {
	db *sql.DB
}

// NewStore creates a store over an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Products() repository.ProductRepository   { return NewProductRepository(s.db) }
func (s *Store) Categories() repository.CategoryRepository { return NewCategoryRepository(s.db) }
func (s *Store) Brands() repository.BrandRepository       { return NewBrandRepository(s.db) }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	return s.db.Close()
}

// translateWriteError maps unique constraint violations (named
// <table>_<field>_key) to a DuplicateError.
func translateWriteError(entity, table string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		field := strings.TrimSuffix(strings.TrimPrefix(pgErr.ConstraintName, table+"_"), "_key")
		if field == "" {
			field = "name"
		}
		return &repository.DuplicateError{Entity: entity, Field: field, Err: err}
	}
	return err
}

func parseIDs(ids []string) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if u, err := uuid.Parse(id); err == nil {
			out = append(out, u)
		}
	}
	return out
}

// inClause builds "$1, $2, ..." and the matching argument list.
func inClause(ids []uuid.UUID) (string, []interface{}) {
	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	return strings.Join(placeholders, ", "), args
}

// assignments collects "col = $n" pairs for a partial UPDATE.
type assignments struct {
	cols []string
	args []interface{}
}

func (a *assignments) set(column string, value interface{}) {
	a.args = append(a.args, value)
	a.cols = append(a.cols, fmt.Sprintf("%s = $%d", column, len(a.args)))
}

func (a *assignments) empty() bool { return len(a.cols) == 0 }

// updateQuery renders UPDATE table SET ... WHERE id = $n RETURNING columns,
// appending id to the argument list.
func (a *assignments) updateQuery(table, columns string, id uuid.UUID) (string, []interface{}) {
	args := append(a.args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table, strings.Join(a.cols, ", "), len(args), columns)
	return query, args
}
