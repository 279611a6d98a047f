package validate

import (
	"math"
	"reflect"
	"strconv"

	"github.com/goccy/go-json"
)

// FileValue is the value shape of one uploaded file candidate. Hosts may
// supply it typed or as the equivalent plain map.
type FileValue struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Answered reports whether a value counts as a real answer. The renderer's
// progress counts and the validator's required check share this definition.
func Answered(v any) bool {
	return !isEmpty(v)
}

// isEmpty reports whether a value counts as unanswered: nil, empty string,
// or empty array.
func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			return rv.Len() == 0
		}
	}
	return false
}

// asString extracts a scalar string value.
func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asNumber attempts to interpret the value as a finite number.
func asNumber(v any) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// isArray reports whether the value is a slice of any element type.
func isArray(v any) bool {
	if v == nil {
		return false
	}
	return reflect.ValueOf(v).Kind() == reflect.Slice
}

// asFiles normalizes a file-upload value into a candidate list. Accepts a
// single FileValue, a slice of them, or the plain-map forms produced by JSON
// decoding.
func asFiles(v any) []FileValue {
	switch val := v.(type) {
	case FileValue:
		return []FileValue{val}
	case []FileValue:
		return val
	case map[string]any:
		if f, ok := fileFromMap(val); ok {
			return []FileValue{f}
		}
	case []any:
		var out []FileValue
		for _, el := range val {
			switch e := el.(type) {
			case FileValue:
				out = append(out, e)
			case map[string]any:
				if f, ok := fileFromMap(e); ok {
					out = append(out, f)
				}
			}
		}
		return out
	}
	return nil
}

func fileFromMap(m map[string]any) (FileValue, bool) {
	name, _ := m["name"].(string)
	if name == "" {
		return FileValue{}, false
	}
	size, ok := asNumber(m["size"])
	if !ok {
		size = 0
	}
	return FileValue{Name: name, Size: int64(size)}, true
}
