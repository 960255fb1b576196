package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRequest struct {
	Query    string `json:"query" validate:"required"`
	PageSize int    `json:"pageSize" validate:"gte=0,lte=100"`
}

func newJSONRequest(t *testing.T, body interface{}) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/graphql", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestProperty_RequiredFieldValidationWorks(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("missing required fields are rejected", prop.ForAll(
		func(includeQuery bool, pageSize int) bool {
			reqMap := map[string]interface{}{"pageSize": pageSize}
			if includeQuery {
				reqMap["query"] = "{ products { id } }"
			}

			var req testRequest
			err := DecodeAndValidate(newJSONRequest(t, reqMap), &req)

			if includeQuery {
				return err == nil
			}
			return err != nil
		},
		gen.Bool(),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_RangeValidation(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("values outside the declared range are rejected", prop.ForAll(
		func(pageSize int) bool {
			var req testRequest
			err := DecodeAndValidate(newJSONRequest(t, map[string]interface{}{
				"query":    "{ brands { id } }",
				"pageSize": pageSize,
			}), &req)

			if pageSize >= 0 && pageSize <= 100 {
				return err == nil
			}
			return err != nil
		},
		gen.IntRange(-50, 150),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestFormatValidationErrorsUsesJSONNames(t *testing.T) {
	var req testRequest
	err := DecodeAndValidate(newJSONRequest(t, map[string]interface{}{"pageSize": 500}), &req)
	require.Error(t, err)

	formatted := FormatValidationErrors(err)
	require.Len(t, formatted, 2)
	assert.Equal(t, "query", formatted[0].Field)
	assert.Equal(t, "This field is required", formatted[0].Message)
	assert.Equal(t, "pageSize", formatted[1].Field)
	assert.Equal(t, "Value must be less than or equal to 100", formatted[1].Message)
}

func TestDecodeAndValidateMalformedBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/graphql", strings.NewReader("{not json"))

	var body testRequest
	err := DecodeAndValidate(req, &body)
	assert.True(t, errors.Is(err, ErrMalformedBody))
	assert.Empty(t, FormatValidationErrors(err))
}
