package store

import (
	"github.com/matthewbaird/formcanvas/internal/schema"
	"github.com/matthewbaird/formcanvas/internal/validate"
)

// CuratedValue is one answered field of a response, paired with the
// field's label for display.
type CuratedValue struct {
	FieldID string `json:"fieldId"`
	Label   string `json:"label"`
	Value   any    `json:"value"`
}

// Curate walks the schema in document order and pairs each answered
// field with its value. Unanswered fields and auto-filled profile
// fields are omitted.
func Curate(s *schema.Schema, values map[string]any) []CuratedValue {
	var out []CuratedValue
	for _, f := range schema.Flatten(s) {
		if f.Type.IsUDF() {
			continue
		}
		v, ok := values[f.ID]
		if !ok || !validate.Answered(v) {
			continue
		}
		out = append(out, CuratedValue{FieldID: f.ID, Label: f.Label, Value: v})
	}
	return out
}
