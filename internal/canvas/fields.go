package canvas

import (
	"fmt"

	"github.com/matthewbaird/formcanvas/internal/event"
	"github.com/matthewbaird/formcanvas/internal/schema"
)

// AppendIndex requests insertion at the end of the target list.
const AppendIndex = -1

// InsertField builds a default field of the given type and splices it into
// the root items list, or into a section when sectionID is non-empty, at
// index (AppendIndex for the end). The new field becomes the selection.
// A missing target section is a no-op.
func (e *Editor) InsertField(t schema.FieldType, sectionID string, index int) *schema.Schema {
	s := e.current.Clone()
	f := e.reg.DefaultField(t)

	if !spliceField(s, f, sectionID, index) {
		return e.current
	}

	evt := event.NewChange(event.OpFieldInserted, s.ID, f.ID,
		fmt.Sprintf("inserted %s field %q", t, f.Label)).WithSection(sectionID)
	e.commit(s, evt)
	e.selected = f.ID
	return e.current
}

// MoveField relocates a field to the root list or a section. Moving within
// one list is still remove-then-insert; the index math stays uniform.
// A missing field or destination section is a no-op.
func (e *Editor) MoveField(fieldID, sectionID string, index int) *schema.Schema {
	s := e.current.Clone()

	// The destination must exist before the field is detached, or a bad
	// target would silently drop the field.
	if sectionID != "" {
		if _, ok := schema.FindSection(s, sectionID); !ok {
			return e.current
		}
	}
	f, ok := detachField(s, fieldID)
	if !ok {
		return e.current
	}
	if !spliceField(s, f, sectionID, index) {
		return e.current
	}

	evt := event.NewChange(event.OpFieldMoved, s.ID, fieldID,
		fmt.Sprintf("moved field %q", f.Label)).WithSection(sectionID)
	e.commit(s, evt)
	return e.current
}

// FieldUpdate carries the attributes UpdateField may change. Nil members are
// left untouched; id and order are never updatable.
type FieldUpdate struct {
	Label           *string
	Description     *string
	Required        *bool
	ShowDescription *bool
	Properties      *schema.Properties
}

// UpdateField shallow-merges an update into the field. Unknown ids no-op.
func (e *Editor) UpdateField(fieldID string, upd FieldUpdate) *schema.Schema {
	s := e.current.Clone()
	f, _, ok := schema.FindField(s, fieldID)
	if !ok {
		return e.current
	}
	if upd.Label != nil {
		f.Label = *upd.Label
	}
	if upd.Description != nil {
		f.Description = *upd.Description
	}
	if upd.Required != nil {
		f.Required = *upd.Required
	}
	if upd.ShowDescription != nil {
		f.ShowDescription = *upd.ShowDescription
	}
	if upd.Properties != nil {
		f.Properties = schema.CopyProperties(*upd.Properties)
	}

	e.commit(s, event.NewChange(event.OpFieldUpdated, s.ID, fieldID,
		fmt.Sprintf("updated field %q", f.Label)))
	return e.current
}

// DeleteField removes a field and renumbers its list. Deleting the selected
// field clears the selection. Unknown ids no-op.
func (e *Editor) DeleteField(fieldID string) *schema.Schema {
	s := e.current.Clone()
	f, ok := detachField(s, fieldID)
	if !ok {
		return e.current
	}

	evt := event.NewChange(event.OpFieldDeleted, s.ID, fieldID,
		fmt.Sprintf("deleted field %q", f.Label))
	e.commit(s, evt)
	if e.selected == fieldID {
		e.selected = ""
	}
	return e.current
}

// CloneField duplicates a field immediately after the original: fresh id,
// label suffixed " (Copy)", independent properties. Unknown ids no-op.
func (e *Editor) CloneField(fieldID string) *schema.Schema {
	e.cloneField(fieldID)
	return e.current
}

// cloneField performs the clone and reports the new field's id.
func (e *Editor) cloneField(fieldID string) (string, bool) {
	s := e.current.Clone()

	// Locate the original's list and position.
	for i := range s.Items {
		it := s.Items[i]
		if it.Field != nil && it.Field.ID == fieldID {
			dup := schema.CloneField(*it.Field)
			s.Items = insertItem(s.Items, schema.FieldItem(&dup), i+1)
			schema.RenumberItems(s.Items)
			e.commitClone(s, dup, "")
			return dup.ID, true
		}
		if it.Section != nil {
			for j := range it.Section.Fields {
				if it.Section.Fields[j].ID == fieldID {
					dup := schema.CloneField(it.Section.Fields[j])
					it.Section.Fields = insertField(it.Section.Fields, dup, j+1)
					schema.RenumberFields(it.Section.Fields)
					e.commitClone(s, dup, it.Section.ID)
					return dup.ID, true
				}
			}
		}
	}
	return "", false
}

func (e *Editor) commitClone(s *schema.Schema, dup schema.Field, sectionID string) {
	evt := event.NewChange(event.OpFieldCloned, s.ID, dup.ID,
		fmt.Sprintf("cloned field as %q", dup.Label)).WithSection(sectionID)
	e.commit(s, evt)
}

// MoveOption reorders a dropdown field's options in place. The parent
// field's order is untouched. Out-of-range indexes or non-option fields
// no-op.
func (e *Editor) MoveOption(fieldID string, from, to int) *schema.Schema {
	s := e.current.Clone()
	f, _, ok := schema.FindField(s, fieldID)
	if !ok {
		return e.current
	}
	opts := f.Properties.Options
	if from < 0 || from >= len(opts) || to < 0 || to >= len(opts) {
		return e.current
	}
	moved := opts[from]
	opts = append(opts[:from], opts[from+1:]...)
	opts = append(opts[:to], append([]schema.Option{moved}, opts[to:]...)...)
	f.Properties.Options = opts

	evt := event.NewChange(event.OpOptionMoved, s.ID, fieldID,
		fmt.Sprintf("reordered option %q", moved.Label))
	e.commit(s, evt)
	return e.current
}

// ── splice helpers ───────────────────────────────────────────────────────────

// detachField removes a field from wherever it lives and renumbers the
// source list.
func detachField(s *schema.Schema, fieldID string) (schema.Field, bool) {
	for i := range s.Items {
		it := s.Items[i]
		if it.Field != nil && it.Field.ID == fieldID {
			f := *it.Field
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			schema.RenumberItems(s.Items)
			return f, true
		}
		if it.Section != nil {
			for j := range it.Section.Fields {
				if it.Section.Fields[j].ID == fieldID {
					f := it.Section.Fields[j]
					it.Section.Fields = append(it.Section.Fields[:j], it.Section.Fields[j+1:]...)
					schema.RenumberFields(it.Section.Fields)
					return f, true
				}
			}
		}
	}
	return schema.Field{}, false
}

// spliceField inserts a field into the root list or a section at index,
// clamping out-of-range indexes, and renumbers the destination.
func spliceField(s *schema.Schema, f schema.Field, sectionID string, index int) bool {
	if sectionID == "" {
		index = clampIndex(index, len(s.Items))
		s.Items = insertItem(s.Items, fieldItemCopy(f), index)
		schema.RenumberItems(s.Items)
		return true
	}
	sec, ok := schema.FindSection(s, sectionID)
	if !ok {
		return false
	}
	index = clampIndex(index, len(sec.Fields))
	sec.Fields = insertField(sec.Fields, f, index)
	schema.RenumberFields(sec.Fields)
	return true
}

func fieldItemCopy(f schema.Field) schema.Item {
	c := f
	return schema.FieldItem(&c)
}

func clampIndex(index, length int) int {
	if index < 0 || index > length {
		return length
	}
	return index
}

func insertItem(items []schema.Item, it schema.Item, index int) []schema.Item {
	items = append(items, schema.Item{})
	copy(items[index+1:], items[index:])
	items[index] = it
	return items
}

func insertField(fields []schema.Field, f schema.Field, index int) []schema.Field {
	fields = append(fields, schema.Field{})
	copy(fields[index+1:], fields[index:])
	fields[index] = f
	return fields
}
