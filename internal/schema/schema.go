// Package schema defines the form-definition data model: a Schema is an
// ordered list of Items, each Item either a standalone Field or a Section
// grouping Fields one level deep. All helpers are pure; structural edits
// live in internal/canvas.
package schema

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// FieldType tags a Field with its input kind. The set is open: hosts may
// register additional types at runtime via internal/registry, and consumers
// must treat unrecognized tags as generic text.
type FieldType string

const (
	TypeShortText  FieldType = "short-text"
	TypeLongText   FieldType = "long-text"
	TypeNumber     FieldType = "number"
	TypeDatePicker FieldType = "date-picker"
	TypeDropdown   FieldType = "dropdown"
	TypeFileUpload FieldType = "file-upload"

	// Auto-filled user-data fields. Values come from the host's user
	// profile; they render disabled and are never validated.
	TypeUDFName       FieldType = "udf-name"
	TypeUDFEmail      FieldType = "udf-email"
	TypeUDFPhone      FieldType = "udf-phone"
	TypeUDFEmployeeID FieldType = "udf-employee-id"
)

// IsUDF reports whether the type belongs to the auto-filled family.
func (t FieldType) IsUDF() bool {
	return strings.HasPrefix(string(t), "udf-")
}

// SelectionType dictates the value shape of a dropdown: single expects a
// scalar, multi expects an array.
type SelectionType string

const (
	SelectSingle SelectionType = "single"
	SelectMulti  SelectionType = "multi"
)

// DateFormat enumerates the display formats a date-picker supports.
type DateFormat string

const (
	DateMDY DateFormat = "MM/DD/YYYY"
	DateDMY DateFormat = "DD/MM/YYYY"
	DateYMD DateFormat = "YYYY-MM-DD"
)

// Option is one choice in a dropdown field.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Properties is the type-specific property bag for a Field. Only the members
// relevant to the field's declared type are populated; everything else stays
// at its zero value and is omitted on the wire. Registered extension types
// keep arbitrary settings in Extra.
type Properties struct {
	// Text types.
	Placeholder string `json:"placeholder,omitempty"`
	MinLength   *int   `json:"minLength,omitempty"`
	MaxLength   *int   `json:"maxLength,omitempty"`
	Pattern     string `json:"pattern,omitempty"`

	// Number.
	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
	Step *float64 `json:"step,omitempty"`

	// Date picker.
	Format DateFormat `json:"format,omitempty"`

	// Dropdown.
	Options       []Option      `json:"options,omitempty"`
	SelectionType SelectionType `json:"selectionType,omitempty"`

	// File upload.
	Extensions   []string `json:"extensions,omitempty"`
	MaxSizeBytes int64    `json:"maxSizeBytes,omitempty"`
	Multiple     bool     `json:"multiple,omitempty"`

	// Extension field types registered at runtime.
	Extra map[string]any `json:"extra,omitempty"`
}

// Field is a single answerable input unit.
type Field struct {
	ID              string     `json:"id"`
	Type            FieldType  `json:"type"`
	Label           string     `json:"label"`
	Description     string     `json:"description,omitempty"`
	Required        bool       `json:"required"`
	ShowDescription bool       `json:"showDescription"`
	Properties      Properties `json:"properties"`
	Order           int        `json:"order"`
}

// Section groups Fields under a title. Sections never nest.
type Section struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Order       int     `json:"order"`
	Fields      []Field `json:"fields"`
}

// ItemKind discriminates the Item union on the wire.
type ItemKind string

const (
	KindField   ItemKind = "field"
	KindSection ItemKind = "section"
)

// Item is a Field or a Section, the unit of top-level ordering. Exactly one
// of Field/Section is non-nil; Kind matches the populated member.
type Item struct {
	Kind    ItemKind `json:"kind"`
	Field   *Field   `json:"field,omitempty"`
	Section *Section `json:"section,omitempty"`
}

// IsField reports whether the item carries a Field.
func (it Item) IsField() bool { return it.Field != nil }

// IsSection reports whether the item carries a Section.
func (it Item) IsSection() bool { return it.Field == nil && it.Section != nil }

// ID returns the id of whichever member is populated, or "".
func (it Item) ID() string {
	switch {
	case it.Field != nil:
		return it.Field.ID
	case it.Section != nil:
		return it.Section.ID
	}
	return ""
}

// FieldItem wraps a Field as an Item.
func FieldItem(f *Field) Item {
	return Item{Kind: KindField, Field: f}
}

// SectionItem wraps a Section as an Item.
func SectionItem(s *Section) Item {
	return Item{Kind: KindSection, Section: s}
}

// Schema is the root aggregate: the full form definition.
type Schema struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Items       []Item    `json:"items"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewID returns an opaque unique identifier. Uniqueness within a document is
// all that is required; this is never a security token.
func NewID() string {
	return uuid.NewString()
}

// New creates an empty Schema.
func New(title string) *Schema {
	now := time.Now().UTC()
	return &Schema{
		ID:        NewID(),
		Title:     title,
		Items:     []Item{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewWithSection creates a Schema pre-seeded with one empty Section, the
// alternate entry-point shape.
func NewWithSection(title, sectionTitle string) *Schema {
	s := New(title)
	sec := &Section{
		ID:     NewID(),
		Title:  sectionTitle,
		Fields: []Field{},
	}
	s.Items = append(s.Items, SectionItem(sec))
	RenumberItems(s.Items)
	return s
}

// Touch stamps UpdatedAt. Called by every persisted mutation.
func (s *Schema) Touch() {
	s.UpdatedAt = time.Now().UTC()
}
