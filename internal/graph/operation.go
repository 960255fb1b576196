package graph

import (
	"errors"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// ErrUnknownOperation is returned when a document has no operation matching
// the requested name, or several operations and no name.
var ErrUnknownOperation = errors.New("unknown operation")

// OperationKind reports whether the operation a request would execute is a
// query, mutation or subscription.
func OperationKind(query, operationName string) (ast.Operation, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: query})
	if err != nil {
		return "", err
	}

	if operationName == "" {
		if len(doc.Operations) != 1 {
			return "", ErrUnknownOperation
		}
		return doc.Operations[0].Operation, nil
	}
	for _, op := range doc.Operations {
		if op.Name == operationName {
			return op.Operation, nil
		}
	}
	return "", ErrUnknownOperation
}
