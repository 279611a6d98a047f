// Package event defines the change events the canvas emits for every
// structural mutation. Events feed the change log and the in-process bus;
// because editor operations are copy-on-write, the event stream is a
// complete, replayable account of how a schema reached its current shape.
package event

import (
	"time"

	"github.com/google/uuid"
)

// Op identifies a structural operation on a schema.
type Op string

const (
	OpSchemaCreated  Op = "schema.created"
	OpHeaderUpdated  Op = "header.updated"
	OpFieldInserted  Op = "field.inserted"
	OpFieldMoved     Op = "field.moved"
	OpFieldUpdated   Op = "field.updated"
	OpFieldDeleted   Op = "field.deleted"
	OpFieldCloned    Op = "field.cloned"
	OpSectionAdded   Op = "section.added"
	OpSectionMoved   Op = "section.moved"
	OpSectionUpdated Op = "section.updated"
	OpSectionDeleted Op = "section.deleted"
	OpOptionMoved    Op = "option.moved"
)

// ChangeEvent records one structural mutation.
type ChangeEvent struct {
	ID         string         `json:"id"`
	Op         Op             `json:"op"`
	SchemaID   string         `json:"schemaId"`
	ItemID     string         `json:"itemId,omitempty"`    // field or section acted on
	SectionID  string         `json:"sectionId,omitempty"` // destination section, if any
	Summary    string         `json:"summary"`
	OccurredAt time.Time      `json:"occurredAt"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// NewChange builds a ChangeEvent with a fresh id and timestamp.
func NewChange(op Op, schemaID, itemID, summary string) ChangeEvent {
	return ChangeEvent{
		ID:         uuid.NewString(),
		Op:         op,
		SchemaID:   schemaID,
		ItemID:     itemID,
		Summary:    summary,
		OccurredAt: time.Now().UTC(),
	}
}

// WithSection tags the event with a destination section.
func (e ChangeEvent) WithSection(sectionID string) ChangeEvent {
	e.SectionID = sectionID
	return e
}

// WithPayload attaches structured detail.
func (e ChangeEvent) WithPayload(p map[string]any) ChangeEvent {
	e.Payload = p
	return e
}
