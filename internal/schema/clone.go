package schema

// CopyProperties returns an independent deep copy of a property bag.
func CopyProperties(p Properties) Properties {
	out := p
	out.MinLength = copyInt(p.MinLength)
	out.MaxLength = copyInt(p.MaxLength)
	out.Min = copyFloat(p.Min)
	out.Max = copyFloat(p.Max)
	out.Step = copyFloat(p.Step)
	if p.Options != nil {
		out.Options = make([]Option, len(p.Options))
		copy(out.Options, p.Options)
	}
	if p.Extensions != nil {
		out.Extensions = make([]string, len(p.Extensions))
		copy(out.Extensions, p.Extensions)
	}
	if p.Extra != nil {
		out.Extra = make(map[string]any, len(p.Extra))
		for k, v := range p.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// CopyField returns an independent deep copy of a Field, id included.
func CopyField(f Field) Field {
	out := f
	out.Properties = CopyProperties(f.Properties)
	return out
}

// CopySection returns an independent deep copy of a Section, ids included.
func CopySection(sec Section) Section {
	out := sec
	out.Fields = make([]Field, len(sec.Fields))
	for i, f := range sec.Fields {
		out.Fields[i] = CopyField(f)
	}
	return out
}

// CloneField derives a duplicate of f for insertion next to the original:
// fresh id, label suffixed with " (Copy)", properties deep-copied. Order is
// left for the caller's renumbering pass.
func CloneField(f Field) Field {
	out := CopyField(f)
	out.ID = NewID()
	out.Label = f.Label + " (Copy)"
	return out
}

// Clone returns a deep copy of the whole Schema. Editor operations copy
// first and mutate the copy, so callers holding the previous value never
// observe a change.
func (s *Schema) Clone() *Schema {
	out := *s
	out.Items = make([]Item, len(s.Items))
	for i, it := range s.Items {
		switch {
		case it.Field != nil:
			f := CopyField(*it.Field)
			out.Items[i] = FieldItem(&f)
		case it.Section != nil:
			sec := CopySection(*it.Section)
			out.Items[i] = SectionItem(&sec)
		default:
			out.Items[i] = it
		}
	}
	return &out
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
