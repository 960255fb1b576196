package domain

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeSpecifications_LastValueWins(t *testing.T) {
	specs := NormalizeSpecifications([]Specification{
		{Key: "RAM", Value: "8GB"},
		{Key: "Color", Value: "Black"},
		{Key: "RAM", Value: "16GB"},
	})

	assert.Equal(t, Specifications{
		{Key: "RAM", Value: "16GB"},
		{Key: "Color", Value: "Black"},
	}, specs)
}

func TestNormalizeSpecifications_Nil(t *testing.T) {
	specs := NormalizeSpecifications(nil)
	assert.NotNil(t, specs)
	assert.Empty(t, specs)
}

func TestProperty_NormalizedSpecificationsHaveUniqueKeys(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every key appears once and carries its last submitted value", prop.ForAll(
		func(keys []string, values []string) bool {
			in := make([]Specification, 0, len(keys))
			last := make(map[string]string)
			for i, k := range keys {
				v := ""
				if i < len(values) {
					v = values[i]
				}
				in = append(in, Specification{Key: k, Value: v})
				last[k] = v
			}

			out := NormalizeSpecifications(in)
			if len(out) != len(last) {
				return false
			}

			seen := make(map[string]bool)
			for _, spec := range out {
				if seen[spec.Key] {
					return false
				}
				seen[spec.Key] = true
				if last[spec.Key] != spec.Value {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.OneConstOf("RAM", "CPU", "Color", "Storage", "Display")),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProduct_Touch(t *testing.T) {
	p := &Product{}
	first := mustTime(t, "2024-01-01T00:00:00Z")
	second := mustTime(t, "2024-02-01T00:00:00Z")

	p.Touch(first)
	p.Touch(second)

	assert.Equal(t, first, p.CreatedAt)
	assert.Equal(t, second, p.UpdatedAt)
}
