package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewbaird/formcanvas/internal/registry"
	"github.com/matthewbaird/formcanvas/internal/schema"
)

func newEditor() *Editor {
	return NewEditor(schema.New("test"), registry.New())
}

// assertDenseOrder checks the order invariant on every list in the schema.
func assertDenseOrder(t *testing.T, s *schema.Schema) {
	t.Helper()
	for i, it := range s.Items {
		switch {
		case it.Field != nil:
			assert.Equal(t, i, it.Field.Order, "root item %d", i)
		case it.Section != nil:
			assert.Equal(t, i, it.Section.Order, "root item %d", i)
			for j, f := range it.Section.Fields {
				assert.Equal(t, j, f.Order, "section %s field %d", it.Section.ID, j)
			}
		}
	}
}

// assertUniqueIDs checks that no two items or fields share an id.
func assertUniqueIDs(t *testing.T, s *schema.Schema) {
	t.Helper()
	seen := make(map[string]bool)
	note := func(id string) {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	for _, it := range s.Items {
		note(it.ID())
		if it.Section != nil {
			for _, f := range it.Section.Fields {
				note(f.ID)
			}
		}
	}
}

func TestInsertFieldSelectsAndNumbers(t *testing.T) {
	e := newEditor()
	e.InsertField(schema.TypeShortText, "", AppendIndex)
	e.InsertField(schema.TypeNumber, "", AppendIndex)
	e.InsertField(schema.TypeDropdown, "", 0)

	s := e.Schema()
	require.Len(t, s.Items, 3)
	assert.Equal(t, schema.TypeDropdown, s.Items[0].Field.Type)
	assert.Equal(t, schema.TypeShortText, s.Items[1].Field.Type)
	assertDenseOrder(t, s)
	assertUniqueIDs(t, s)
	assert.Equal(t, s.Items[0].Field.ID, e.Selected(), "newest insert is selected")
}

func TestInsertIntoMissingSectionIsNoOp(t *testing.T) {
	e := newEditor()
	before := e.Schema()
	after := e.InsertField(schema.TypeShortText, "ghost", AppendIndex)
	assert.Same(t, before, after)
	assert.Empty(t, after.Items)
}

func TestCopyOnWriteLeavesOldValueIntact(t *testing.T) {
	e := newEditor()
	e.InsertField(schema.TypeShortText, "", AppendIndex)
	before := e.Schema()

	e.InsertField(schema.TypeNumber, "", AppendIndex)
	assert.Len(t, before.Items, 1, "prior value must not change")
	assert.Len(t, e.Schema().Items, 2)
}

func TestMoveFieldBetweenLists(t *testing.T) {
	e := newEditor()
	e.InsertField(schema.TypeShortText, "", AppendIndex)
	f1 := e.Selected()
	e.AddSection()
	sec := e.Schema().Items[1].Section

	e.MoveField(f1, sec.ID, 0)

	s := e.Schema()
	require.Len(t, s.Items, 1, "standalone field moved away")
	require.True(t, s.Items[0].IsSection())
	require.Len(t, s.Items[0].Section.Fields, 1)
	assert.Equal(t, f1, s.Items[0].Section.Fields[0].ID)
	assertDenseOrder(t, s)
}

func TestMoveFieldWithinOneList(t *testing.T) {
	e := newEditor()
	e.InsertField(schema.TypeShortText, "", AppendIndex)
	a := e.Selected()
	e.InsertField(schema.TypeNumber, "", AppendIndex)
	e.InsertField(schema.TypeDatePicker, "", AppendIndex)

	e.MoveField(a, "", 2)

	s := e.Schema()
	assert.Equal(t, a, s.Items[2].Field.ID)
	assertDenseOrder(t, s)
}

func TestMoveFieldToMissingTargetsIsNoOp(t *testing.T) {
	e := newEditor()
	e.InsertField(schema.TypeShortText, "", AppendIndex)
	f1 := e.Selected()
	before := e.Schema()

	assert.Same(t, before, e.MoveField(f1, "ghost", 0))
	assert.Same(t, before, e.MoveField("ghost", "", 0))
	assert.Len(t, e.Schema().Items, 1, "field must not be lost")
}

func TestUpdateFieldMergesAndProtectsIdentity(t *testing.T) {
	e := newEditor()
	e.InsertField(schema.TypeShortText, "", AppendIndex)
	id := e.Selected()

	label := "Your name"
	req := true
	e.UpdateField(id, FieldUpdate{Label: &label, Required: &req})

	f, _, ok := schema.FindField(e.Schema(), id)
	require.True(t, ok)
	assert.Equal(t, "Your name", f.Label)
	assert.True(t, f.Required)
	assert.Equal(t, id, f.ID)
	assert.Equal(t, 0, f.Order)

	// Unknown id: no-op, no panic.
	before := e.Schema()
	assert.Same(t, before, e.UpdateField("ghost", FieldUpdate{Label: &label}))
}

func TestDeleteFieldClearsSelection(t *testing.T) {
	e := newEditor()
	e.InsertField(schema.TypeShortText, "", AppendIndex)
	a := e.Selected()
	e.InsertField(schema.TypeNumber, "", AppendIndex)

	e.Select(a)
	e.DeleteField(a)

	assert.Empty(t, e.Selected())
	require.Len(t, e.Schema().Items, 1)
	assertDenseOrder(t, e.Schema())
}

func TestCloneFieldInsertsAfterOriginal(t *testing.T) {
	e := newEditor()
	e.InsertField(schema.TypeDropdown, "", AppendIndex)
	orig := e.Selected()
	label := "Color"
	e.UpdateField(orig, FieldUpdate{Label: &label})
	e.InsertField(schema.TypeNumber, "", AppendIndex)

	e.CloneField(orig)

	s := e.Schema()
	require.Len(t, s.Items, 3)
	clone := s.Items[1].Field
	require.NotNil(t, clone)
	assert.NotEqual(t, orig, clone.ID)
	assert.Equal(t, "Color (Copy)", clone.Label)
	assert.Equal(t, s.Items[0].Field.Properties.Options[0].Label, clone.Properties.Options[0].Label)
	assertDenseOrder(t, s)
	assertUniqueIDs(t, s)

	// Clone's properties are an independent copy.
	clone.Properties.Options[0].Label = "mutated"
	assert.NotEqual(t, "mutated", s.Items[0].Field.Properties.Options[0].Label)
}

func TestDeleteSectionDeletesContainedFields(t *testing.T) {
	e := newEditor()
	e.AddSection()
	sec := e.Schema().Items[0].Section
	e.InsertField(schema.TypeShortText, sec.ID, AppendIndex)
	inner := e.Selected()
	e.Select(inner)

	e.DeleteSection(sec.ID)

	assert.Empty(t, e.Schema().Items)
	assert.Empty(t, e.Selected(), "selection inside the section is cleared")
	assert.False(t, schema.ContainsID(e.Schema(), inner))
}

func TestMoveSectionBoundaries(t *testing.T) {
	e := newEditor()
	e.AddSection()
	e.AddSection()
	first := e.Schema().Items[0].Section.ID
	second := e.Schema().Items[1].Section.ID

	// Boundary no-ops.
	e.MoveSectionUp(first)
	assert.Equal(t, first, e.Schema().Items[0].Section.ID)
	e.MoveSectionDown(second)
	assert.Equal(t, second, e.Schema().Items[1].Section.ID)

	e.MoveSectionDown(first)
	assert.Equal(t, second, e.Schema().Items[0].Section.ID)
	assert.Equal(t, first, e.Schema().Items[1].Section.ID)
	assertDenseOrder(t, e.Schema())
}

func TestSectionOpenState(t *testing.T) {
	e := newEditor()
	e.AddSection()
	sec := e.Schema().Items[0].Section.ID

	assert.True(t, e.IsSectionOpen(sec), "new sections open by default")
	e.ToggleSection(sec)
	assert.False(t, e.IsSectionOpen(sec))
	e.ToggleSection(sec)
	assert.True(t, e.IsSectionOpen(sec))

	// Unknown section: toggle no-ops, read defaults open.
	e.ToggleSection("ghost")
	assert.True(t, e.IsSectionOpen("ghost"))
}

func TestMoveOptionReordersInPlace(t *testing.T) {
	e := newEditor()
	e.InsertField(schema.TypeDropdown, "", AppendIndex)
	id := e.Selected()

	props := schema.DefaultProperties(schema.TypeDropdown)
	props.Options = []schema.Option{
		{ID: schema.NewID(), Label: "A", Value: "a"},
		{ID: schema.NewID(), Label: "B", Value: "b"},
		{ID: schema.NewID(), Label: "C", Value: "c"},
	}
	e.UpdateField(id, FieldUpdate{Properties: &props})

	e.MoveOption(id, 0, 2)

	f, _, _ := schema.FindField(e.Schema(), id)
	labels := []string{f.Properties.Options[0].Label, f.Properties.Options[1].Label, f.Properties.Options[2].Label}
	assert.Equal(t, []string{"B", "C", "A"}, labels)
	assert.Equal(t, 0, f.Order, "parent order untouched")

	// Out of range: no-op.
	before := e.Schema()
	assert.Same(t, before, e.MoveOption(id, 0, 9))
}

func TestUpdateHeaderAndSectionMeta(t *testing.T) {
	e := newEditor()
	e.UpdateHeader(HeaderTitle, "Survey")
	e.UpdateHeader(HeaderDescription, "About you")
	assert.Equal(t, "Survey", e.Schema().Title)
	assert.Equal(t, "About you", e.Schema().Description)

	e.AddSection()
	sec := e.Schema().Items[0].Section.ID
	e.UpdateSectionMeta(sec, SectionTitle, "Basics")
	e.UpdateSectionMeta(sec, SectionDescription, "Start here")
	got, _ := schema.FindSection(e.Schema(), sec)
	assert.Equal(t, "Basics", got.Title)
	assert.Equal(t, "Start here", got.Description)

	before := e.Schema()
	assert.Same(t, before, e.UpdateSectionMeta("ghost", SectionTitle, "x"))
}

func TestUpdatedAtStamped(t *testing.T) {
	e := newEditor()
	before := e.Schema().UpdatedAt
	e.InsertField(schema.TypeShortText, "", AppendIndex)
	assert.False(t, e.Schema().UpdatedAt.Before(before))
}

// TestEndToEndScenario covers: insert a field, add a section, move the field
// into the section at position 0.
func TestEndToEndScenario(t *testing.T) {
	e := newEditor()

	e.InsertField(schema.TypeShortText, "", AppendIndex)
	field1 := e.Selected()
	e.AddSection()
	section1 := e.Schema().Items[1].Section.ID

	e.MoveField(field1, section1, 0)

	s := e.Schema()
	require.Len(t, s.Items, 1)
	require.True(t, s.Items[0].IsSection())
	sec := s.Items[0].Section
	assert.Equal(t, section1, sec.ID)
	assert.Equal(t, 0, sec.Order)
	require.Len(t, sec.Fields, 1)
	assert.Equal(t, field1, sec.Fields[0].ID)
	assert.Equal(t, 0, sec.Fields[0].Order)
}

// TestOrderDensityUnderRandomishOps hammers the invariant across a mixed
// operation sequence.
func TestOrderDensityUnderMixedOps(t *testing.T) {
	e := newEditor()
	e.InsertField(schema.TypeShortText, "", AppendIndex)
	a := e.Selected()
	e.AddSection()
	sec1 := e.Schema().Items[1].Section.ID
	e.InsertField(schema.TypeNumber, sec1, AppendIndex)
	b := e.Selected()
	e.InsertField(schema.TypeDropdown, sec1, 0)
	e.CloneField(b)
	e.MoveField(a, sec1, 1)
	e.AddSection()
	sec2 := e.Schema().Items[1].Section.ID
	e.MoveField(b, "", AppendIndex)
	e.MoveSectionUp(sec2)
	e.DeleteField(a)
	e.DeleteSection(sec2)

	assertDenseOrder(t, e.Schema())
	assertUniqueIDs(t, e.Schema())
}
