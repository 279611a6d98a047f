// Package validate checks a response value map against a schema and reports
// per-field issues in document order. Issues are collected, never thrown:
// a malformed value is a reported entry, not an error return.
package validate

import (
	"fmt"
	"strings"
)

// Issue codes. String constants so hosts can key display logic on them.
const (
	CodeRequired          = "required"
	CodeTooShort          = "too_short"
	CodeTooLong           = "too_long"
	CodePattern           = "pattern"
	CodeInvalidNumber     = "invalid_number"
	CodeTooSmall          = "too_small"
	CodeTooBig            = "too_big"
	CodeInvalidDate       = "invalid_date"
	CodeSelectionMismatch = "selection_mismatch"
	CodeFileType          = "file_type"
	CodeFileSize          = "file_size"
	CodeFileCount         = "file_count"
)

// Issue is a single field-level validation entry.
type Issue struct {
	FieldID string         `json:"fieldId"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Params  map[string]any `json:"params,omitempty"`
}

// Issues is an ordered collection of validation entries. Order always equals
// document order of the offending fields.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s on %s", iss[i].Code, iss[i].FieldID)
	}
	if len(iss) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}

// Result is the outcome of validating a schema against a value map.
type Result struct {
	Valid  bool
	Issues Issues
}

// ByField groups issues under their field id, preserving per-field order.
func (r Result) ByField() map[string]Issues {
	out := make(map[string]Issues, len(r.Issues))
	for _, is := range r.Issues {
		out[is.FieldID] = append(out[is.FieldID], is)
	}
	return out
}

func issueAt(fieldID, code, msg string, params map[string]any) Issue {
	return Issue{FieldID: fieldID, Code: code, Message: msg, Params: params}
}
