package canvas

import (
	"fmt"

	"github.com/matthewbaird/formcanvas/internal/event"
	"github.com/matthewbaird/formcanvas/internal/schema"
)

// AddSection appends an empty section and opens it.
func (e *Editor) AddSection() *schema.Schema {
	s := e.current.Clone()
	sec := schema.Section{
		ID:     schema.NewID(),
		Title:  "Untitled section",
		Fields: []schema.Field{},
	}
	s.Items = append(s.Items, schema.SectionItem(&sec))
	schema.RenumberItems(s.Items)

	delete(e.closed, sec.ID)
	e.registerSectionZone(sec.ID)
	e.commit(s, event.NewChange(event.OpSectionAdded, s.ID, sec.ID, "added section"))
	return e.current
}

// DeleteSection removes a section and every field it contains, renumbering
// the root list. Selection is cleared if it pointed inside the section.
// Unknown ids no-op.
func (e *Editor) DeleteSection(sectionID string) *schema.Schema {
	s := e.current.Clone()
	for i := range s.Items {
		sec := s.Items[i].Section
		if sec == nil || sec.ID != sectionID {
			continue
		}
		selectedInside := false
		for _, f := range sec.Fields {
			if f.ID == e.selected {
				selectedInside = true
				break
			}
		}
		s.Items = append(s.Items[:i], s.Items[i+1:]...)
		schema.RenumberItems(s.Items)

		delete(e.closed, sectionID)
		e.coord.UnregisterZone(sectionZone(sectionID))
		e.commit(s, event.NewChange(event.OpSectionDeleted, s.ID, sectionID,
			fmt.Sprintf("deleted section %q", sec.Title)))
		if selectedInside {
			e.selected = ""
		}
		return e.current
	}
	return e.current
}

// MoveSection relocates a section to newIndex among root items, clamping
// out-of-range targets. Unknown ids no-op.
func (e *Editor) MoveSection(sectionID string, newIndex int) *schema.Schema {
	s := e.current.Clone()
	for i := range s.Items {
		sec := s.Items[i].Section
		if sec == nil || sec.ID != sectionID {
			continue
		}
		it := s.Items[i]
		s.Items = append(s.Items[:i], s.Items[i+1:]...)
		newIndex = clampIndex(newIndex, len(s.Items))
		s.Items = insertItem(s.Items, it, newIndex)
		schema.RenumberItems(s.Items)

		e.commit(s, event.NewChange(event.OpSectionMoved, s.ID, sectionID,
			fmt.Sprintf("moved section %q to position %d", sec.Title, newIndex)))
		return e.current
	}
	return e.current
}

// MoveSectionUp swaps the section with its previous root sibling. At the top
// boundary it is a no-op.
func (e *Editor) MoveSectionUp(sectionID string) *schema.Schema {
	idx := e.sectionIndex(sectionID)
	if idx <= 0 {
		return e.current
	}
	return e.MoveSection(sectionID, idx-1)
}

// MoveSectionDown swaps the section with its next root sibling. At the
// bottom boundary it is a no-op.
func (e *Editor) MoveSectionDown(sectionID string) *schema.Schema {
	idx := e.sectionIndex(sectionID)
	if idx < 0 || idx >= len(e.current.Items)-1 {
		return e.current
	}
	return e.MoveSection(sectionID, idx+1)
}

func (e *Editor) sectionIndex(sectionID string) int {
	for i, it := range e.current.Items {
		if it.Section != nil && it.Section.ID == sectionID {
			return i
		}
	}
	return -1
}

// SectionPart names a section-level text attribute.
type SectionPart string

const (
	SectionTitle       SectionPart = "title"
	SectionDescription SectionPart = "description"
)

// UpdateSectionMeta sets a section's title or description. Unknown ids or
// parts no-op.
func (e *Editor) UpdateSectionMeta(sectionID string, part SectionPart, value string) *schema.Schema {
	s := e.current.Clone()
	sec, ok := schema.FindSection(s, sectionID)
	if !ok {
		return e.current
	}
	switch part {
	case SectionTitle:
		sec.Title = value
	case SectionDescription:
		sec.Description = value
	default:
		return e.current
	}
	e.commit(s, event.NewChange(event.OpSectionUpdated, s.ID, sectionID,
		"updated section "+string(part)))
	return e.current
}

// SectionSummary is one row in the rearrange view.
type SectionSummary struct {
	ID         string
	Title      string
	Order      int
	FieldCount int
}

// SectionSummaries lists every section in document order, for the rearrange
// dialog. Reordering from that view goes through the coordinator with
// section-reorder payloads.
func (e *Editor) SectionSummaries() []SectionSummary {
	var out []SectionSummary
	for _, sec := range schema.Sections(e.current) {
		out = append(out, SectionSummary{
			ID:         sec.ID,
			Title:      sec.Title,
			Order:      sec.Order,
			FieldCount: len(sec.Fields),
		})
	}
	return out
}
