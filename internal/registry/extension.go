package registry

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// LoadExtensions reads a YAML list of field-type definitions and registers
// each one. Definitions that fail validation are skipped; the return reports
// how many registered and the joined rejection errors. A partially invalid
// file never disturbs definitions that were already in the table.
func (r *Registry) LoadExtensions(src io.Reader) (int, error) {
	raw, err := io.ReadAll(src)
	if err != nil {
		return 0, fmt.Errorf("read extensions: %w", err)
	}

	var entries []map[string]any
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return 0, fmt.Errorf("parse extensions: %w", err)
	}

	added := 0
	var errs []error
	for i, entry := range entries {
		// Re-encode through JSON so the Definition's json tags apply to
		// YAML input as well.
		buf, err := json.Marshal(entry)
		if err != nil {
			errs = append(errs, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		var d Definition
		if err := json.Unmarshal(buf, &d); err != nil {
			errs = append(errs, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		if err := r.Register(d); err != nil {
			errs = append(errs, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		added++
	}
	return added, errors.Join(errs...)
}
