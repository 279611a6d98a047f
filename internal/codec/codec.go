// Package codec is the serialization boundary: schemas and value maps
// round-trip through plain JSON with no functions, classes, or other
// non-data payloads. Timestamps travel as RFC3339.
package codec

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/matthewbaird/formcanvas/internal/schema"
)

// MarshalSchema serializes a schema to its plain-data JSON form.
func MarshalSchema(s *schema.Schema) ([]byte, error) {
	buf, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %s: %w", s.ID, err)
	}
	return buf, nil
}

// UnmarshalSchema reconstructs a schema from its JSON form.
func UnmarshalSchema(data []byte) (*schema.Schema, error) {
	var s schema.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}
	return &s, nil
}

// MarshalValues serializes a response value map.
func MarshalValues(values map[string]any) ([]byte, error) {
	buf, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("marshal values: %w", err)
	}
	return buf, nil
}

// UnmarshalValues reconstructs a response value map.
func UnmarshalValues(data []byte) (map[string]any, error) {
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("unmarshal values: %w", err)
	}
	return values, nil
}
