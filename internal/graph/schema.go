// Package graph exposes the catalog over GraphQL.
package graph

import (
	"context"
	_ "embed"
	"fmt"

	"catalog-admin/internal/service"

	"github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"
)

//go:embed schema.graphql
var schemaSDL string

// Schema is the executable catalog schema.
type Schema struct {
	schema   *graphql.Schema
	services *service.Services
}

// NewSchema parses the catalog SDL and binds it to the root resolver.
func NewSchema(services *service.Services, logger *zap.Logger) (*Schema, error) {
	schema, err := graphql.ParseSchema(schemaSDL, &Resolver{services: services},
		graphql.MaxParallelism(20),
		graphql.MaxDepth(12),
		graphql.Logger(&panicLogger{logger: logger}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse graphql schema: %w", err)
	}

	return &Schema{schema: schema, services: services}, nil
}

// Exec runs one GraphQL operation. Batching loaders are attached to ctx
// unless the caller already did so.
func (s *Schema) Exec(ctx context.Context, query, operationName string, variables map[string]interface{}) *graphql.Response {
	if loadersFrom(ctx) == nil {
		ctx = WithLoaders(ctx, NewLoaders(s.services))
	}
	return s.schema.Exec(ctx, query, operationName, variables)
}

type panicLogger struct {
	logger *zap.Logger
}

func (l *panicLogger) LogPanic(ctx context.Context, value interface{}) {
	l.logger.Error("Panic in graphql resolver", zap.Any("panic", value), zap.Stack("stack"))
}
