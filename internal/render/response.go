package render

import (
	"time"

	"github.com/matthewbaird/formcanvas/internal/registry"
	"github.com/matthewbaird/formcanvas/internal/schema"
	"github.com/matthewbaird/formcanvas/internal/validate"
)

// ResponseSession drives one respondent's pass through a form: it
// accumulates the value map, gates submission on required completeness, runs
// validation on submit, and holds the two-state submitted flag.
type ResponseSession struct {
	renderer *Renderer
	engine   *validate.Engine
	reg      *registry.Registry
	schema   *schema.Schema

	values      map[string]any
	issues      map[string]validate.Issues
	submitted   bool
	submittedAt time.Time
}

// NewResponseSession opens a response pass over the schema.
func NewResponseSession(s *schema.Schema, reg *registry.Registry) *ResponseSession {
	return &ResponseSession{
		renderer: New(reg),
		engine:   validate.New(reg),
		reg:      reg,
		schema:   s,
		values:   make(map[string]any),
		issues:   make(map[string]validate.Issues),
	}
}

// SetValue records a field's current value and clears that field's attached
// issues: correcting a value always wipes its stale error display. Ignored
// after submission.
func (rs *ResponseSession) SetValue(fieldID string, v any) {
	if rs.submitted {
		return
	}
	rs.values[fieldID] = v
	delete(rs.issues, fieldID)
}

// Value returns a field's current value.
func (rs *ResponseSession) Value(fieldID string) any {
	return rs.values[fieldID]
}

// Values returns a copy of the accumulated value map, for the host to
// persist or report upward.
func (rs *ResponseSession) Values() map[string]any {
	out := make(map[string]any, len(rs.values))
	for k, v := range rs.values {
		out[k] = v
	}
	return out
}

// Clear resets the whole value map and every attached issue. The schema is
// untouched. Ignored after submission.
func (rs *ResponseSession) Clear() {
	if rs.submitted {
		return
	}
	rs.values = make(map[string]any)
	rs.issues = make(map[string]validate.Issues)
}

// Ready reports whether every required field is answered. This gates the
// submit control; it is a passive affordance, not an error.
func (rs *ResponseSession) Ready() bool {
	for _, f := range schema.Flatten(rs.schema) {
		if rs.reg.IsUDF(f.Type) {
			continue
		}
		if f.Required && !validate.Answered(rs.values[f.ID]) {
			return false
		}
	}
	return true
}

// Submit validates synchronously. On failure the issues attach to their
// fields and the session stays open; on success the session flips to its
// terminal submitted state. The result is returned either way.
func (rs *ResponseSession) Submit() validate.Result {
	if rs.submitted {
		return validate.Result{Valid: true}
	}
	res := rs.engine.Validate(rs.schema, rs.values)
	if !res.Valid {
		rs.issues = res.ByField()
		return res
	}
	rs.submitted = true
	rs.submittedAt = time.Now().UTC()
	rs.issues = make(map[string]validate.Issues)
	return res
}

// Submitted reports the terminal state and its timestamp.
func (rs *ResponseSession) Submitted() (time.Time, bool) {
	return rs.submittedAt, rs.submitted
}

// View renders the current state: interactive while open, a read-only
// replay of the filled-in values once submitted.
func (rs *ResponseSession) View() View {
	return rs.renderer.render(rs.schema, rs.values, ModeResponse, rs.issues, rs.submitted, rs.submittedAt)
}
