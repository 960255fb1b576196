package service

import (
	"errors"
	"fmt"
	"strings"

	"catalog-admin/internal/repository"

	"github.com/go-playground/validator/v10"
)

// Kind classifies a failure for API clients.
type Kind string

const (
	KindNotFound   Kind = "NOT_FOUND"
	KindValidation Kind = "VALIDATION"
	KindDuplicate  Kind = "DUPLICATE"
	KindInternal   Kind = "INTERNAL"
)

// Error is the error type returned by every service operation. It satisfies
// the graphql-go extensions interface so the kind and field reach the client.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": string(e.Kind)}
	if e.Field != "" {
		ext["field"] = e.Field
	}
	return ext
}

func notFound(message string, err error) *Error {
	return &Error{Kind: KindNotFound, Message: message, Err: err}
}

func validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// KindOf reports the kind of err, INTERNAL for anything not raised by this package.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}

// translate maps repository and validator errors onto the service taxonomy.
// action is the human readable operation, e.g. "creating product".
func translate(action string, err error) error {
	if err == nil {
		return nil
	}

	var (
		svcErr *Error
		dupErr *repository.DuplicateError
		refErr *repository.InvalidReferenceError
		valErr validator.ValidationErrors
	)

	switch {
	case errors.As(err, &svcErr):
		return svcErr
	case errors.As(err, &dupErr):
		return &Error{Kind: KindDuplicate, Field: dupErr.Field, Message: capitalize(dupErr.Error()), Err: err}
	case errors.As(err, &refErr):
		return &Error{Kind: KindValidation, Field: refErr.Field, Message: refErr.Error(), Err: err}
	case errors.As(err, &valErr):
		return validationFromFieldError(valErr[0])
	case errors.Is(err, repository.ErrProductNotFound):
		return notFound("Product not found", err)
	case errors.Is(err, repository.ErrCategoryNotFound):
		return notFound("Category not found", err)
	case errors.Is(err, repository.ErrBrandNotFound):
		return notFound("Brand not found", err)
	}

	return &Error{
		Kind:    KindInternal,
		Message: fmt.Sprintf("Error %s: %v", action, err),
		Err:     err,
	}
}

func validationFromFieldError(fe validator.FieldError) *Error {
	field := fe.Field()

	var message string
	switch fe.Tag() {
	case "required":
		message = field + " is required"
	case "gte":
		message = field + " must be greater than or equal to " + fe.Param()
	case "lte":
		message = field + " must be less than or equal to " + fe.Param()
	default:
		message = field + " is invalid"
	}

	return &Error{Kind: KindValidation, Field: field, Message: message, Err: fe}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
