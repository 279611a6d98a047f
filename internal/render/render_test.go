package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewbaird/formcanvas/internal/registry"
	"github.com/matthewbaird/formcanvas/internal/schema"
)

func fieldOf(t schema.FieldType, label string) schema.Field {
	f := schema.DefaultField(t)
	f.Label = label
	return f
}

// buildSchema assembles items in order; fields passed as values, sections as
// pointers.
func buildSchema(items ...schema.Item) *schema.Schema {
	s := schema.New("test")
	s.Items = items
	schema.RenumberItems(s.Items)
	return s
}

func TestFlatLayoutWithEmptySection(t *testing.T) {
	a := fieldOf(schema.TypeShortText, "A")
	b := fieldOf(schema.TypeNumber, "B")
	empty := schema.Section{ID: schema.NewID(), Title: "Empty"}

	s := buildSchema(
		schema.FieldItem(&a),
		schema.SectionItem(&empty),
		schema.FieldItem(&b),
	)

	v := New(registry.New()).Render(s, nil, ModePreview)
	assert.Equal(t, LayoutFlat, v.Layout)
	assert.Empty(t, v.Sections)
	require.Len(t, v.Fields, 2)
	assert.Equal(t, 1, v.Fields[0].Number)
	assert.Equal(t, 2, v.Fields[1].Number)
}

func TestSectionedLayoutFlipsWhenSectionGainsField(t *testing.T) {
	a := fieldOf(schema.TypeShortText, "A")
	b := fieldOf(schema.TypeNumber, "B")
	inner := fieldOf(schema.TypeDatePicker, "C")
	sec := schema.Section{ID: schema.NewID(), Title: "S", Fields: []schema.Field{inner}}
	schema.RenumberFields(sec.Fields)

	s := buildSchema(
		schema.FieldItem(&a),
		schema.SectionItem(&sec),
		schema.FieldItem(&b),
	)

	v := New(registry.New()).Render(s, nil, ModePreview)
	assert.Equal(t, LayoutSectioned, v.Layout)
	require.Len(t, v.Sections, 1)
	assert.Equal(t, "Section 1 of 1", v.Sections[0].Heading)

	// Standalone fields number first, the section continues the counter.
	require.Len(t, v.Fields, 2)
	assert.Equal(t, 1, v.Fields[0].Number)
	assert.Equal(t, 2, v.Fields[1].Number)
	require.Len(t, v.Sections[0].Fields, 1)
	assert.Equal(t, 3, v.Sections[0].Fields[0].Number)
}

func TestSectionCountExcludesEmptySections(t *testing.T) {
	inner1 := fieldOf(schema.TypeShortText, "A")
	inner2 := fieldOf(schema.TypeShortText, "B")
	s1 := schema.Section{ID: schema.NewID(), Title: "S1", Fields: []schema.Field{inner1}}
	empty := schema.Section{ID: schema.NewID(), Title: "Empty"}
	s2 := schema.Section{ID: schema.NewID(), Title: "S2", Fields: []schema.Field{inner2}}

	s := buildSchema(
		schema.SectionItem(&s1),
		schema.SectionItem(&empty),
		schema.SectionItem(&s2),
	)

	v := New(registry.New()).Render(s, nil, ModePreview)
	require.Len(t, v.Sections, 2)
	assert.Equal(t, "Section 1 of 2", v.Sections[0].Heading)
	assert.Equal(t, "Section 2 of 2", v.Sections[1].Heading)
}

func TestNavProgressCounts(t *testing.T) {
	f1 := fieldOf(schema.TypeShortText, "A")
	f2 := fieldOf(schema.TypeShortText, "B")
	udf := fieldOf(schema.TypeUDFEmail, "Email")
	sec := schema.Section{ID: schema.NewID(), Title: "S", Fields: []schema.Field{f1, f2, udf}}

	s := buildSchema(schema.SectionItem(&sec))
	values := map[string]any{f1.ID: "hello", f2.ID: ""}

	v := New(registry.New()).Render(s, values, ModeResponse)
	require.Len(t, v.Nav, 1)
	assert.Equal(t, 1, v.Nav[0].Answered)
	assert.Equal(t, 2, v.Nav[0].Total, "auto-filled fields do not count")
	assert.Equal(t, sec.ID, v.Nav[0].SectionID)
}

func TestControlDispatch(t *testing.T) {
	multi := fieldOf(schema.TypeDropdown, "M")
	multi.Properties.SelectionType = schema.SelectMulti

	cases := []struct {
		field schema.Field
		want  ControlKind
	}{
		{fieldOf(schema.TypeShortText, "x"), ControlTextInput},
		{fieldOf(schema.TypeLongText, "x"), ControlTextArea},
		{fieldOf(schema.TypeNumber, "x"), ControlNumber},
		{fieldOf(schema.TypeDatePicker, "x"), ControlDate},
		{fieldOf(schema.TypeDropdown, "x"), ControlSelect},
		{multi, ControlMultiSelect},
		{fieldOf(schema.TypeFileUpload, "x"), ControlFile},
		{fieldOf("mystery-type", "x"), ControlTextInput},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, controlFor(tc.field), "type %s", tc.field.Type)
	}
}

func TestUDFAlwaysDisabledWithProvenance(t *testing.T) {
	udf := fieldOf(schema.TypeUDFName, "Name")
	s := buildSchema(schema.FieldItem(&udf))

	for _, mode := range []Mode{ModePreview, ModeResponse} {
		v := New(registry.New()).Render(s, nil, mode)
		require.Len(t, v.Fields, 1)
		assert.True(t, v.Fields[0].Disabled, "mode %s", mode)
		assert.Equal(t, ControlAutoFilled, v.Fields[0].Control)
		assert.NotEmpty(t, v.Fields[0].Placeholder)
	}
}

func TestPreviewIsDisabledEverywhere(t *testing.T) {
	a := fieldOf(schema.TypeShortText, "A")
	s := buildSchema(schema.FieldItem(&a))

	v := New(registry.New()).Render(s, nil, ModePreview)
	assert.True(t, v.Fields[0].Disabled)

	v = New(registry.New()).Render(s, nil, ModeResponse)
	assert.False(t, v.Fields[0].Disabled)
}

func TestDescriptionGatedByShowDescription(t *testing.T) {
	a := fieldOf(schema.TypeShortText, "A")
	a.Description = "hidden"
	b := fieldOf(schema.TypeShortText, "B")
	b.Description = "shown"
	b.ShowDescription = true

	s := buildSchema(schema.FieldItem(&a), schema.FieldItem(&b))
	v := New(registry.New()).Render(s, nil, ModePreview)
	assert.Empty(t, v.Fields[0].Description)
	assert.Equal(t, "shown", v.Fields[1].Description)
}
