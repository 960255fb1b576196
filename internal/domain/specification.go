package domain

// Specification is a single key/value annotation on a product.
type Specification struct {
	Key   string `json:"key" bson:"key"`
	Value string `json:"value" bson:"value"`
}

// Specifications is an ordered list of product annotations. Keys are unique
// once the list has been normalized.
type Specifications []Specification

// NormalizeSpecifications merges duplicate keys. The value of the last
// occurrence wins and the pair keeps the position of the first occurrence.
// A nil input yields an empty, non-nil list.
func NormalizeSpecifications(in []Specification) Specifications {
	out := make(Specifications, 0, len(in))
	index := make(map[string]int, len(in))

	for _, spec := range in {
		if i, ok := index[spec.Key]; ok {
			out[i].Value = spec.Value
			continue
		}
		index[spec.Key] = len(out)
		out = append(out, spec)
	}

	return out
}

// Get returns the value stored for key.
func (s Specifications) Get(key string) (string, bool) {
	for _, spec := range s {
		if spec.Key == key {
			return spec.Value, true
		}
	}
	return "", false
}
