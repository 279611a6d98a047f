package schema

// RenumberItems rewrites Order on every item member so it equals the array
// index. Runs after every structural mutation; order is never sparse and
// never stale.
func RenumberItems(items []Item) {
	for i := range items {
		switch {
		case items[i].Field != nil:
			items[i].Field.Order = i
		case items[i].Section != nil:
			items[i].Section.Order = i
		}
	}
}

// RenumberFields rewrites Order on a section's field list to match index.
func RenumberFields(fields []Field) {
	for i := range fields {
		fields[i].Order = i
	}
}

// Flatten returns every Field in document order: items walked top to bottom,
// each section's fields expanded inline at the section's position. Returned
// fields are copies; mutating them does not touch the schema.
func Flatten(s *Schema) []Field {
	var out []Field
	for _, it := range s.Items {
		switch {
		case it.Field != nil:
			out = append(out, CopyField(*it.Field))
		case it.Section != nil:
			for _, f := range it.Section.Fields {
				out = append(out, CopyField(f))
			}
		}
	}
	return out
}

// FindField locates a field by id anywhere in the schema. The second return
// is the containing section's id, or "" for a root-level field.
func FindField(s *Schema, id string) (*Field, string, bool) {
	for i := range s.Items {
		it := s.Items[i]
		switch {
		case it.Field != nil:
			if it.Field.ID == id {
				return it.Field, "", true
			}
		case it.Section != nil:
			for j := range it.Section.Fields {
				if it.Section.Fields[j].ID == id {
					return &it.Section.Fields[j], it.Section.ID, true
				}
			}
		}
	}
	return nil, "", false
}

// FindSection locates a root-level section by id.
func FindSection(s *Schema, id string) (*Section, bool) {
	for i := range s.Items {
		if sec := s.Items[i].Section; sec != nil && sec.ID == id {
			return sec, true
		}
	}
	return nil, false
}

// Sections returns pointers to every section in document order.
func Sections(s *Schema) []*Section {
	var out []*Section
	for i := range s.Items {
		if sec := s.Items[i].Section; sec != nil {
			out = append(out, sec)
		}
	}
	return out
}

// ContainsID reports whether any item or nested field carries the id.
func ContainsID(s *Schema, id string) bool {
	for _, it := range s.Items {
		if it.ID() == id {
			return true
		}
		if it.Section != nil {
			for _, f := range it.Section.Fields {
				if f.ID == id {
					return true
				}
			}
		}
	}
	return false
}
