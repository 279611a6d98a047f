package canvas

import (
	"strings"

	"github.com/matthewbaird/formcanvas/internal/dragdrop"
	"github.com/matthewbaird/formcanvas/internal/schema"
)

// Drop-zone id scheme. The root canvas accepts fields; each section is its
// own zone; the rearrange dialog is one zone for whole sections; each
// dropdown field exposes an options zone.
const (
	rootZone      = "canvas"
	rearrangeZone = "sections"
)

func sectionZone(sectionID string) string { return "section:" + sectionID }

// OptionsZone names the drop zone for a dropdown field's option list.
func OptionsZone(fieldID string) string { return "options:" + fieldID }

// RootZone names the root canvas drop zone.
func RootZone() string { return rootZone }

// SectionZone names a section's drop zone.
func SectionZone(sectionID string) string { return sectionZone(sectionID) }

// RearrangeZone names the section-rearrange dialog's drop zone.
func RearrangeZone() string { return rearrangeZone }

// registerZones announces the standing zones plus one per existing section
// and dropdown field.
func (e *Editor) registerZones() {
	e.coord.RegisterZone(rootZone, dragdrop.KindPaletteField, dragdrop.KindFieldReorder)
	e.coord.RegisterZone(rearrangeZone, dragdrop.KindSectionReorder)
	for _, sec := range schema.Sections(e.current) {
		e.registerSectionZone(sec.ID)
	}
	for _, f := range schema.Flatten(e.current) {
		if f.Type == schema.TypeDropdown {
			e.coord.RegisterZone(OptionsZone(f.ID), dragdrop.KindOptionReorder)
		}
	}
}

func (e *Editor) registerSectionZone(sectionID string) {
	e.coord.RegisterZone(sectionZone(sectionID), dragdrop.KindPaletteField, dragdrop.KindFieldReorder)
}

// applyDrop is the coordinator's reducer: it translates a completed gesture
// into the matching structural operation. Copy drops route through the clone
// path; everything the editor's own surfaces produce is a move.
func (e *Editor) applyDrop(p dragdrop.Payload, d dragdrop.Drop) {
	targetSection := ""
	if rest, ok := strings.CutPrefix(d.ZoneID, "section:"); ok {
		targetSection = rest
	}

	switch p.Kind {
	case dragdrop.KindPaletteField:
		t, ok := p.Data.(schema.FieldType)
		if !ok {
			if s, sok := p.Data.(string); sok {
				t = schema.FieldType(s)
			} else {
				return
			}
		}
		e.InsertField(t, targetSection, d.Index)
		if t == schema.TypeDropdown {
			e.coord.RegisterZone(OptionsZone(e.selected), dragdrop.KindOptionReorder)
		}

	case dragdrop.KindFieldReorder:
		if d.Action == dragdrop.ActionCopy {
			e.copyFieldTo(p.ID, targetSection, d.Index)
			return
		}
		e.MoveField(p.ID, targetSection, d.Index)

	case dragdrop.KindSectionReorder:
		if d.ZoneID != rearrangeZone {
			return
		}
		e.MoveSection(p.ID, d.Index)

	case dragdrop.KindOptionReorder:
		fieldID, ok := strings.CutPrefix(d.ZoneID, "options:")
		if !ok {
			return
		}
		from, ok := p.Data.(int)
		if !ok {
			return
		}
		e.MoveOption(fieldID, from, d.Index)
	}
}

// copyFieldTo clones the source field and moves the clone to the drop
// target, leaving the original in place.
func (e *Editor) copyFieldTo(fieldID, sectionID string, index int) {
	cloneID, ok := e.cloneField(fieldID)
	if !ok {
		return
	}
	e.MoveField(cloneID, sectionID, index)
}
