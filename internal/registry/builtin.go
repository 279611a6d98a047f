package registry

import "github.com/matthewbaird/formcanvas/internal/schema"

// builtins returns the core field-type table. Every entry here is also a
// type the validator and renderer special-case; anything registered on top
// of these is handled generically.
func builtins() []Definition {
	return []Definition{
		{
			Type:              schema.TypeShortText,
			Label:             "Short answer",
			Icon:              "text-cursor",
			Category:          CategoryInput,
			DefaultProperties: schema.DefaultProperties(schema.TypeShortText),
			Rules:             []Rule{RuleRequired, RuleLength, RulePattern},
		},
		{
			Type:              schema.TypeLongText,
			Label:             "Paragraph",
			Icon:              "align-left",
			Category:          CategoryInput,
			DefaultProperties: schema.DefaultProperties(schema.TypeLongText),
			Rules:             []Rule{RuleRequired, RuleLength, RulePattern},
		},
		{
			Type:              schema.TypeNumber,
			Label:             "Number",
			Icon:              "hash",
			Category:          CategoryInput,
			DefaultProperties: schema.DefaultProperties(schema.TypeNumber),
			Rules:             []Rule{RuleRequired, RuleRange},
		},
		{
			Type:              schema.TypeDatePicker,
			Label:             "Date",
			Icon:              "calendar",
			Category:          CategoryInput,
			DefaultProperties: schema.DefaultProperties(schema.TypeDatePicker),
			Rules:             []Rule{RuleRequired, RuleDate},
		},
		{
			Type:              schema.TypeDropdown,
			Label:             "Dropdown",
			Icon:              "chevron-down",
			Category:          CategoryInput,
			DefaultProperties: schema.DefaultProperties(schema.TypeDropdown),
			Rules:             []Rule{RuleRequired, RuleSelection},
		},
		{
			Type:              schema.TypeFileUpload,
			Label:             "File upload",
			Icon:              "paperclip",
			Category:          CategoryInput,
			DefaultProperties: schema.DefaultProperties(schema.TypeFileUpload),
			Rules:             []Rule{RuleRequired, RuleFile},
		},
		{
			Type:     schema.TypeUDFName,
			Label:    "Full name",
			Icon:     "user",
			Category: CategoryUDF,
		},
		{
			Type:     schema.TypeUDFEmail,
			Label:    "Email address",
			Icon:     "mail",
			Category: CategoryUDF,
		},
		{
			Type:     schema.TypeUDFPhone,
			Label:    "Phone number",
			Icon:     "phone",
			Category: CategoryUDF,
		},
		{
			Type:     schema.TypeUDFEmployeeID,
			Label:    "Employee ID",
			Icon:     "badge",
			Category: CategoryUDF,
		},
	}
}
