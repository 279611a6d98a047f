// Package registry holds the field-type table: one Definition per field type
// with its palette label, icon, category, default properties, and the
// validation rules that apply to it.
//
// The registry is a constructed instance, not a package singleton, so tests
// and embedding hosts control exactly what is registered and in what order.
// Hosts may register additional field types at runtime; definitions arriving
// from outside the process are checked against a CUE schema and rejected
// without disturbing prior registrations.
package registry

import (
	"fmt"
	"sync"

	"github.com/matthewbaird/formcanvas/internal/schema"
)

// Category classifies a field type for palette grouping.
type Category string

const (
	CategoryInput   Category = "input"
	CategoryUDF     Category = "udf"
	CategorySpecial Category = "special"
)

// Rule names a validation concern the engine applies to a field type.
type Rule string

const (
	RuleRequired  Rule = "required"
	RuleLength    Rule = "length"
	RulePattern   Rule = "pattern"
	RuleRange     Rule = "range"
	RuleDate      Rule = "date"
	RuleSelection Rule = "selection"
	RuleFile      Rule = "file"
)

// Definition describes one field type.
type Definition struct {
	Type              schema.FieldType  `json:"type"`
	Label             string            `json:"label"`
	Icon              string            `json:"icon"`
	Category          Category          `json:"category"`
	DefaultProperties schema.Properties `json:"defaultProperties"`
	Rules             []Rule            `json:"rules,omitempty"`
}

func (d Definition) copy() Definition {
	out := d
	out.DefaultProperties = schema.CopyProperties(d.DefaultProperties)
	if d.Rules != nil {
		out.Rules = make([]Rule, len(d.Rules))
		copy(out.Rules, d.Rules)
	}
	return out
}

// Registry maps field-type tags to their definitions. Safe for concurrent
// read access after construction; registration takes the write lock.
type Registry struct {
	mu    sync.RWMutex
	defs  map[schema.FieldType]Definition
	order []schema.FieldType
}

// New creates a registry pre-populated with the built-in field types.
func New() *Registry {
	r := &Registry{defs: make(map[schema.FieldType]Definition)}
	for _, d := range builtins() {
		r.put(d)
	}
	return r
}

// put stores a definition, preserving first-registration order on override.
func (r *Registry) put(d Definition) {
	if _, exists := r.defs[d.Type]; !exists {
		r.order = append(r.order, d.Type)
	}
	r.defs[d.Type] = d
}

// Register adds or replaces a field-type definition. Malformed definitions
// are rejected with an error and the registry is left untouched.
func (r *Registry) Register(d Definition) error {
	if err := checkDefinition(d); err != nil {
		return fmt.Errorf("register %q: %w", d.Type, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.put(d.copy())
	return nil
}

// Lookup returns the definition for a type tag.
func (r *Registry) Lookup(t schema.FieldType) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.defs[t]
	if !ok {
		return Definition{}, false
	}
	return d.copy(), true
}

// Types returns every registered type tag in registration order.
func (r *Registry) Types() []schema.FieldType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]schema.FieldType, len(r.order))
	copy(out, r.order)
	return out
}

// ByCategory returns copies of every definition in the category, in
// registration order. Mutating the result never touches the live table.
func (r *Registry) ByCategory(c Category) []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Definition
	for _, t := range r.order {
		if d := r.defs[t]; d.Category == c {
			out = append(out, d.copy())
		}
	}
	return out
}

// DefaultField builds a new field of the given type using the registered
// default properties and label. Unregistered types degrade to the model's
// generic defaults.
func (r *Registry) DefaultField(t schema.FieldType) schema.Field {
	d, ok := r.Lookup(t)
	if !ok {
		return schema.DefaultField(t)
	}
	return schema.Field{
		ID:         schema.NewID(),
		Type:       t,
		Label:      d.Label,
		Properties: schema.CopyProperties(d.DefaultProperties),
	}
}

// IsUDF reports whether the type is registered in the auto-filled category.
// Unregistered types fall back to the tag-prefix convention.
func (r *Registry) IsUDF(t schema.FieldType) bool {
	if d, ok := r.Lookup(t); ok {
		return d.Category == CategoryUDF
	}
	return t.IsUDF()
}
