// Package canvas is the structural-edit surface for form schemas. The Editor
// owns the live Schema value and applies every mutation copy-on-write: each
// operation clones the current schema, edits the clone, renumbers the
// affected sibling lists, and swaps it in. Callers holding a previous value
// never observe a change, so the same value can be handed to the renderer
// without aliasing worries.
//
// The Editor is driven from a single event loop and is not safe for
// concurrent use; see the session Manager for multi-editor hosting.
package canvas

import (
	"context"
	"log"

	"github.com/matthewbaird/formcanvas/internal/dragdrop"
	"github.com/matthewbaird/formcanvas/internal/event"
	"github.com/matthewbaird/formcanvas/internal/registry"
	"github.com/matthewbaird/formcanvas/internal/schema"
)

// Editor mutates one schema through structural operations. Selection and
// section open-state live here, not on the schema: they are view state and
// never persist.
type Editor struct {
	current  *schema.Schema
	reg      *registry.Registry
	recorder event.Recorder
	coord    *dragdrop.Coordinator

	selected string
	closed   map[string]bool // section id -> explicitly collapsed
}

// NewEditor wraps a schema for editing. Every section present at mount
// starts open.
func NewEditor(s *schema.Schema, reg *registry.Registry) *Editor {
	e := &Editor{
		current: s,
		reg:     reg,
		closed:  make(map[string]bool),
	}
	e.coord = dragdrop.New(e.applyDrop)
	e.registerZones()
	return e
}

// SetRecorder attaches a change-event recorder. Nil disables recording.
func (e *Editor) SetRecorder(r event.Recorder) {
	e.recorder = r
}

// Schema returns the current schema value.
func (e *Editor) Schema() *schema.Schema {
	return e.current
}

// Coordinator exposes the editor's drag-drop coordinator for the host UI.
func (e *Editor) Coordinator() *dragdrop.Coordinator {
	return e.coord
}

// commit swaps in the mutated schema, records the change, and unsticks any
// drag hover state that pointed at structure which may no longer exist.
func (e *Editor) commit(s *schema.Schema, evt event.ChangeEvent) {
	s.Touch()
	e.current = s
	if e.recorder != nil {
		if err := e.recorder.Record(context.Background(), evt); err != nil {
			log.Printf("canvas: record %s: %v", evt.Op, err)
		}
	}
	if e.coord.State() == dragdrop.StateDragging {
		e.coord.InvalidateZones()
	}
}

// ── selection ────────────────────────────────────────────────────────────────

// Select marks a field as selected. Unknown ids are ignored.
func (e *Editor) Select(fieldID string) {
	if _, _, ok := schema.FindField(e.current, fieldID); ok {
		e.selected = fieldID
	}
}

// Selected returns the selected field id, or "".
func (e *Editor) Selected() string {
	return e.selected
}

// ClearSelection drops the selection.
func (e *Editor) ClearSelection() {
	e.selected = ""
}

// ── section open state ───────────────────────────────────────────────────────

// IsSectionOpen reports whether a section is expanded. Sections are open
// unless explicitly collapsed.
func (e *Editor) IsSectionOpen(sectionID string) bool {
	return !e.closed[sectionID]
}

// ToggleSection flips a section's collapsed state.
func (e *Editor) ToggleSection(sectionID string) {
	if _, ok := schema.FindSection(e.current, sectionID); !ok {
		return
	}
	e.closed[sectionID] = !e.closed[sectionID]
}

// ── header ───────────────────────────────────────────────────────────────────

// HeaderPart names a schema-level text attribute.
type HeaderPart string

const (
	HeaderTitle       HeaderPart = "title"
	HeaderDescription HeaderPart = "description"
)

// UpdateHeader sets the schema title or description.
func (e *Editor) UpdateHeader(part HeaderPart, value string) *schema.Schema {
	s := e.current.Clone()
	switch part {
	case HeaderTitle:
		s.Title = value
	case HeaderDescription:
		s.Description = value
	default:
		return e.current
	}
	e.commit(s, event.NewChange(event.OpHeaderUpdated, s.ID, "", "updated schema "+string(part)))
	return e.current
}
