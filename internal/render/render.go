// Package render turns a schema plus a value map into a presentation tree
// for either a read-only preview or an interactive response surface. The
// output is host-agnostic: field views name a control capability, and the
// embedding UI maps that to its own widgets.
package render

import (
	"fmt"
	"time"

	"github.com/matthewbaird/formcanvas/internal/registry"
	"github.com/matthewbaird/formcanvas/internal/schema"
	"github.com/matthewbaird/formcanvas/internal/validate"
)

// Mode selects the rendering contract.
type Mode string

const (
	// ModePreview renders read-only: no handlers, no validation, no submit.
	ModePreview Mode = "preview"
	// ModeResponse renders interactive and submittable.
	ModeResponse Mode = "response"
)

// Layout is the structural shape of the rendered form.
type Layout string

const (
	LayoutFlat      Layout = "flat"
	LayoutSectioned Layout = "sectioned"
)

// ControlKind names the leaf-control capability a field needs. Hosts map
// these to concrete widgets.
type ControlKind string

const (
	ControlTextInput   ControlKind = "text-input"
	ControlTextArea    ControlKind = "text-area"
	ControlNumber      ControlKind = "number-input"
	ControlDate        ControlKind = "date-picker"
	ControlSelect      ControlKind = "select"
	ControlMultiSelect ControlKind = "multi-select"
	ControlFile        ControlKind = "file-picker"
	ControlAutoFilled  ControlKind = "auto-filled"
)

// autoFilledNote is the placeholder shown on auto-filled fields in every mode.
const autoFilledNote = "Auto-filled from your profile"

// FieldView is one rendered field.
type FieldView struct {
	ID          string
	Type        schema.FieldType
	Label       string
	Description string // empty unless the field shows its description
	Number      int    // continuous 1-based numbering across the whole form
	Required    bool
	Control     ControlKind
	Options     []schema.Option
	Disabled    bool
	Placeholder string
	Value       any
	Answered    bool
	Issues      validate.Issues
}

// SectionView is one rendered, collapsible section block.
type SectionView struct {
	ID          string
	Title       string
	Description string
	Heading     string // e.g. "Section 2 of 3"
	Index       int    // 1-based position among qualifying sections
	Count       int    // qualifying section count
	Fields      []FieldView
	Answered    int
	Total       int
}

// NavEntry is one jump target in the section navigation aid.
type NavEntry struct {
	SectionID string
	Title     string
	Answered  int
	Total     int
}

// View is the full rendered form.
type View struct {
	SchemaID    string
	Title       string
	Description string
	Mode        Mode
	Layout      Layout
	Fields      []FieldView   // standalone fields
	Sections    []SectionView // qualifying sections, sectioned layout only
	Nav         []NavEntry
	Submitted   bool
	SubmittedAt time.Time
}

// Renderer builds Views. The registry resolves control dispatch for
// runtime-registered types and the auto-filled category.
type Renderer struct {
	reg *registry.Registry
}

// New creates a renderer over the registry.
func New(reg *registry.Registry) *Renderer {
	return &Renderer{reg: reg}
}

// Render walks the schema once and produces the presentation for the mode.
// Preview output carries no issues and marks every control disabled.
func (r *Renderer) Render(s *schema.Schema, values map[string]any, mode Mode) View {
	return r.render(s, values, mode, nil, false, time.Time{})
}

func (r *Renderer) render(s *schema.Schema, values map[string]any, mode Mode,
	issues map[string]validate.Issues, submitted bool, submittedAt time.Time) View {

	v := View{
		SchemaID:    s.ID,
		Title:       s.Title,
		Description: s.Description,
		Mode:        mode,
		Layout:      chooseLayout(s),
		Submitted:   submitted,
		SubmittedAt: submittedAt,
	}
	readOnly := mode == ModePreview || submitted

	number := 0
	next := func() int { number++; return number }

	// Standalone fields render first, in document order.
	for _, it := range s.Items {
		if it.Field != nil {
			v.Fields = append(v.Fields, r.fieldView(*it.Field, values, issues, readOnly, next()))
		}
	}

	if v.Layout == LayoutFlat {
		return v
	}

	qualifying := qualifyingSections(s)
	for i, sec := range qualifying {
		sv := SectionView{
			ID:          sec.ID,
			Title:       sec.Title,
			Description: sec.Description,
			Index:       i + 1,
			Count:       len(qualifying),
			Heading:     fmt.Sprintf("Section %d of %d", i+1, len(qualifying)),
		}
		for _, f := range sec.Fields {
			fv := r.fieldView(f, values, issues, readOnly, next())
			sv.Fields = append(sv.Fields, fv)
			if !r.reg.IsUDF(f.Type) {
				sv.Total++
				if fv.Answered {
					sv.Answered++
				}
			}
		}
		v.Sections = append(v.Sections, sv)
		v.Nav = append(v.Nav, NavEntry{
			SectionID: sec.ID,
			Title:     sec.Title,
			Answered:  sv.Answered,
			Total:     sv.Total,
		})
	}
	return v
}

// chooseLayout applies the single structural predicate: sectioned iff at
// least one section contains a field.
func chooseLayout(s *schema.Schema) Layout {
	for _, sec := range schema.Sections(s) {
		if len(sec.Fields) > 0 {
			return LayoutSectioned
		}
	}
	return LayoutFlat
}

// qualifyingSections returns the sections that render as blocks: those with
// at least one field.
func qualifyingSections(s *schema.Schema) []*schema.Section {
	var out []*schema.Section
	for _, sec := range schema.Sections(s) {
		if len(sec.Fields) > 0 {
			out = append(out, sec)
		}
	}
	return out
}

func (r *Renderer) fieldView(f schema.Field, values map[string]any,
	issues map[string]validate.Issues, readOnly bool, number int) FieldView {

	fv := FieldView{
		ID:       f.ID,
		Type:     f.Type,
		Label:    f.Label,
		Number:   number,
		Required: f.Required,
		Value:    values[f.ID],
		Disabled: readOnly,
	}
	if f.ShowDescription {
		fv.Description = f.Description
	}
	fv.Answered = validate.Answered(fv.Value)

	if r.reg.IsUDF(f.Type) {
		// Auto-filled fields are disabled in every mode and advertise
		// their external provenance.
		fv.Control = ControlAutoFilled
		fv.Disabled = true
		fv.Placeholder = autoFilledNote
		return fv
	}

	fv.Placeholder = f.Properties.Placeholder
	fv.Control = controlFor(f)
	if fv.Control == ControlSelect || fv.Control == ControlMultiSelect {
		fv.Options = append([]schema.Option(nil), f.Properties.Options...)
	}
	if issues != nil {
		fv.Issues = issues[f.ID]
	}
	return fv
}

// controlFor dispatches a field type to its control capability. Unknown
// types degrade to a plain text input.
func controlFor(f schema.Field) ControlKind {
	switch f.Type {
	case schema.TypeShortText:
		return ControlTextInput
	case schema.TypeLongText:
		return ControlTextArea
	case schema.TypeNumber:
		return ControlNumber
	case schema.TypeDatePicker:
		return ControlDate
	case schema.TypeDropdown:
		if f.Properties.SelectionType == schema.SelectMulti {
			return ControlMultiSelect
		}
		return ControlSelect
	case schema.TypeFileUpload:
		return ControlFile
	default:
		return ControlTextInput
	}
}
