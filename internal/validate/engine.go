package validate

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/matthewbaird/formcanvas/internal/registry"
	"github.com/matthewbaird/formcanvas/internal/schema"
)

// Engine validates value maps against schemas. It consults the registry for
// category lookups so runtime-registered types behave like built-ins.
type Engine struct {
	registry *registry.Registry
}

// New creates an engine backed by the given registry.
func New(reg *registry.Registry) *Engine {
	return &Engine{registry: reg}
}

// Validate walks the schema's fields in document order and checks each
// against the value map. Required-and-empty short-circuits the field's
// remaining checks; non-required empty fields contribute nothing; auto-filled
// fields never participate.
func (e *Engine) Validate(s *schema.Schema, values map[string]any) Result {
	var issues Issues
	for _, f := range schema.Flatten(s) {
		if e.registry.IsUDF(f.Type) {
			continue
		}
		v := values[f.ID]
		if isEmpty(v) {
			if f.Required {
				issues = append(issues, issueAt(f.ID, CodeRequired, "This field is required", nil))
			}
			continue
		}
		issues = append(issues, e.checkValue(f, v)...)
	}
	return Result{Valid: len(issues) == 0, Issues: issues}
}

// checkValue applies the type-specific checks for a non-empty value.
// Unrecognized types get the generic text treatment.
func (e *Engine) checkValue(f schema.Field, v any) Issues {
	switch f.Type {
	case schema.TypeShortText, schema.TypeLongText:
		return checkText(f, v)
	case schema.TypeNumber:
		return checkNumber(f, v)
	case schema.TypeDatePicker:
		return checkDate(f, v)
	case schema.TypeDropdown:
		return checkSelection(f, v)
	case schema.TypeFileUpload:
		return checkFiles(f, v)
	default:
		return checkText(f, v)
	}
}

// checkText applies length and pattern constraints. Each is independent: a
// single value can emit several issues.
func checkText(f schema.Field, v any) Issues {
	s, ok := asString(v)
	if !ok {
		s = fmt.Sprint(v)
	}
	var out Issues
	p := f.Properties
	if p.MinLength != nil && len(s) < *p.MinLength {
		out = append(out, issueAt(f.ID, CodeTooShort,
			fmt.Sprintf("Must be at least %d characters", *p.MinLength),
			map[string]any{"min": *p.MinLength, "got": len(s)}))
	}
	if p.MaxLength != nil && len(s) > *p.MaxLength {
		out = append(out, issueAt(f.ID, CodeTooLong,
			fmt.Sprintf("Must be at most %d characters", *p.MaxLength),
			map[string]any{"max": *p.MaxLength, "got": len(s)}))
	}
	if p.Pattern != "" {
		// An uncompilable pattern is an authoring mistake; it must not
		// block the respondent, so the check is skipped.
		if re, err := regexp.Compile(p.Pattern); err == nil && !re.MatchString(s) {
			out = append(out, issueAt(f.ID, CodePattern, "Does not match the expected format",
				map[string]any{"pattern": p.Pattern}))
		}
	}
	return out
}

func checkNumber(f schema.Field, v any) Issues {
	n, ok := asNumber(v)
	if !ok {
		return Issues{issueAt(f.ID, CodeInvalidNumber, "Must be a valid number", nil)}
	}
	var out Issues
	p := f.Properties
	if p.Min != nil && n < *p.Min {
		out = append(out, issueAt(f.ID, CodeTooSmall,
			fmt.Sprintf("Must be at least %g", *p.Min),
			map[string]any{"min": *p.Min, "got": n}))
	}
	if p.Max != nil && n > *p.Max {
		out = append(out, issueAt(f.ID, CodeTooBig,
			fmt.Sprintf("Must be at most %g", *p.Max),
			map[string]any{"max": *p.Max, "got": n}))
	}
	return out
}

// dateLayouts maps the display format to its parse layout.
var dateLayouts = map[schema.DateFormat]string{
	schema.DateMDY: "01/02/2006",
	schema.DateDMY: "02/01/2006",
	schema.DateYMD: "2006-01-02",
}

func checkDate(f schema.Field, v any) Issues {
	s, ok := asString(v)
	if !ok {
		return Issues{issueAt(f.ID, CodeInvalidDate, "Must be a valid date", nil)}
	}
	layouts := []string{"2006-01-02", time.RFC3339}
	if l, ok := dateLayouts[f.Properties.Format]; ok {
		layouts = append([]string{l}, layouts...)
	}
	for _, layout := range layouts {
		if _, err := time.Parse(layout, s); err == nil {
			return nil
		}
	}
	return Issues{issueAt(f.ID, CodeInvalidDate, "Must be a valid date", nil)}
}

// checkSelection enforces the value shape a dropdown declares: single means
// scalar, multi means array. A mismatch is reported, never coerced.
func checkSelection(f schema.Field, v any) Issues {
	multi := f.Properties.SelectionType == schema.SelectMulti
	if multi != isArray(v) {
		want := "a single selection"
		if multi {
			want = "a list of selections"
		}
		return Issues{issueAt(f.ID, CodeSelectionMismatch,
			fmt.Sprintf("Expected %s", want),
			map[string]any{"selectionType": f.Properties.SelectionType})}
	}
	return nil
}

func checkFiles(f schema.Field, v any) Issues {
	files := asFiles(v)
	if len(files) == 0 {
		return Issues{issueAt(f.ID, CodeFileType, "Unrecognized file value", nil)}
	}
	var out Issues
	p := f.Properties
	if !p.Multiple && len(files) > 1 {
		out = append(out, issueAt(f.ID, CodeFileCount, "Only one file is allowed",
			map[string]any{"got": len(files)}))
	}
	for _, file := range files {
		if len(p.Extensions) > 0 && !extensionAllowed(file.Name, p.Extensions) {
			out = append(out, issueAt(f.ID, CodeFileType,
				fmt.Sprintf("%s: file type not accepted", file.Name),
				map[string]any{"accepted": p.Extensions}))
		}
		if p.MaxSizeBytes > 0 && file.Size > p.MaxSizeBytes {
			out = append(out, issueAt(f.ID, CodeFileSize,
				fmt.Sprintf("%s: exceeds the %d byte limit", file.Name, p.MaxSizeBytes),
				map[string]any{"max": p.MaxSizeBytes, "got": file.Size}))
		}
	}
	return out
}

// extensionAllowed matches the file name's suffix against the allow-list,
// case-insensitively.
func extensionAllowed(name string, allowed []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, a := range allowed {
		if strings.ToLower(a) == ext {
			return true
		}
	}
	return false
}
