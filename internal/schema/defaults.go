package schema

// DefaultMaxUploadBytes is the initial size ceiling for file-upload fields.
const DefaultMaxUploadBytes = 5 << 20

// DefaultProperties returns the type-appropriate starting property bag for a
// new field. Unrecognized types get an empty bag; the registry may supply a
// richer one for registered extension types.
func DefaultProperties(t FieldType) Properties {
	switch t {
	case TypeShortText:
		return Properties{Placeholder: "Enter text"}
	case TypeLongText:
		return Properties{Placeholder: "Enter a longer answer"}
	case TypeNumber:
		step := 1.0
		return Properties{Step: &step}
	case TypeDatePicker:
		return Properties{Format: DateMDY}
	case TypeDropdown:
		return Properties{
			SelectionType: SelectSingle,
			Options: []Option{
				{ID: NewID(), Label: "Option 1", Value: "option-1"},
			},
		}
	case TypeFileUpload:
		return Properties{
			Extensions:   []string{".pdf", ".png", ".jpg"},
			MaxSizeBytes: DefaultMaxUploadBytes,
			Multiple:     false,
		}
	default:
		return Properties{}
	}
}

// DefaultLabel returns the starting label for a new field of the given type.
func DefaultLabel(t FieldType) string {
	switch t {
	case TypeShortText:
		return "Short answer"
	case TypeLongText:
		return "Long answer"
	case TypeNumber:
		return "Number"
	case TypeDatePicker:
		return "Date"
	case TypeDropdown:
		return "Dropdown"
	case TypeFileUpload:
		return "File upload"
	case TypeUDFName:
		return "Full name"
	case TypeUDFEmail:
		return "Email address"
	case TypeUDFPhone:
		return "Phone number"
	case TypeUDFEmployeeID:
		return "Employee ID"
	default:
		return "Untitled question"
	}
}

// DefaultField builds a new Field body for the given type. ID is assigned;
// Order is left for the inserting list's renumbering pass.
func DefaultField(t FieldType) Field {
	return Field{
		ID:         NewID(),
		Type:       t,
		Label:      DefaultLabel(t),
		Properties: DefaultProperties(t),
	}
}
