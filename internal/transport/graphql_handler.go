package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"catalog-admin/internal/graph"
	"catalog-admin/internal/middleware"
	"catalog-admin/internal/service"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/vektah/gqlparser/v2/ast"
	"go.uber.org/zap"
)

// GraphQLRequest is the standard GraphQL-over-HTTP request envelope
type GraphQLRequest struct {
	Query         string                 `json:"query" validate:"required"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// GraphQLHandler serves the catalog schema
type GraphQLHandler struct {
	schema *graph.Schema
	logger *zap.Logger
}

// NewGraphQLHandler creates a new GraphQLHandler
func NewGraphQLHandler(schema *graph.Schema, logger *zap.Logger) *GraphQLHandler {
	return &GraphQLHandler{
		schema: schema,
		logger: logger,
	}
}

// RegisterRoutes registers the GraphQL endpoint
func (h *GraphQLHandler) RegisterRoutes(r chi.Router) {
	r.Post("/graphql", h.Serve)
	r.Get("/graphql", h.Serve)
}

// Serve executes a single GraphQL operation
func (h *GraphQLHandler) Serve(w http.ResponseWriter, r *http.Request) {
	var req GraphQLRequest

	switch r.Method {
	case http.MethodGet:
		req.Query = r.URL.Query().Get("query")
		req.OperationName = r.URL.Query().Get("operationName")
		if vars := r.URL.Query().Get("variables"); vars != "" {
			if err := json.Unmarshal([]byte(vars), &req.Variables); err != nil {
				middleware.RespondWithError(w, http.StatusBadRequest, "variables must be a JSON object")
				return
			}
		}
		if err := middleware.ValidateRequest(&req); err != nil {
			middleware.RespondWithValidationErrors(w, middleware.FormatValidationErrors(err))
			return
		}
		// GET must stay free of side effects: only queries run here.
		if kind, err := graph.OperationKind(req.Query, req.OperationName); err != nil || kind != ast.Query {
			w.Header().Set("Allow", http.MethodPost)
			middleware.RespondWithError(w, http.StatusMethodNotAllowed, "only query operations may be sent with GET; use POST")
			return
		}
	default:
		if err := middleware.DecodeAndValidate(r, &req); err != nil {
			if errors.Is(err, middleware.ErrMalformedBody) {
				middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			middleware.RespondWithValidationErrors(w, middleware.FormatValidationErrors(err))
			return
		}
	}

	resp := h.schema.Exec(r.Context(), req.Query, req.OperationName, req.Variables)

	for _, qerr := range resp.Errors {
		code, _ := qerr.Extensions["code"].(string)
		fields := []zap.Field{
			zap.String("request_id", chimiddleware.GetReqID(r.Context())),
			zap.String("operation", req.OperationName),
			zap.String("message", qerr.Message),
			zap.String("code", code),
		}
		if code == "" || code == string(service.KindInternal) {
			h.logger.Error("GraphQL operation failed", append(fields, zap.Error(qerr.ResolverError))...)
		} else {
			h.logger.Debug("GraphQL operation rejected", fields...)
		}
	}

	middleware.RespondWithJSON(w, http.StatusOK, resp)
}
