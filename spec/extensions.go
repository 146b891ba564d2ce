package spec

import "strings"

// Typed accessors over the Extra maps that capture "x-" specification
// extensions. YAML decoding is loose about scalar types (an integer may
// arrive as int, int64, uint64, or float64; a list may arrive as []any),
// so every accessor normalizes before returning.

// StringExt returns the string value of an extension key.
func StringExt(extra map[string]any, key string) (string, bool) {
	v, ok := extra[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// BoolExt returns the boolean value of an extension key.
// String forms "true"/"false" are accepted, matching how loosely authored
// documents in the wild declare flag extensions.
func BoolExt(extra map[string]any, key string) (bool, bool) {
	v, ok := extra[key]
	if !ok {
		return false, false
	}
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(b) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

// IntExt returns the integer value of an extension key.
func IntExt(extra map[string]any, key string) (int, bool) {
	v, ok := extra[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

// Float64Ext returns the floating-point value of an extension key.
func Float64Ext(extra map[string]any, key string) (float64, bool) {
	v, ok := extra[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// StringSliceExt returns the string list value of an extension key.
// A bare string value is treated as a single-element list.
func StringSliceExt(extra map[string]any, key string) ([]string, bool) {
	v, ok := extra[key]
	if !ok {
		return nil, false
	}
	switch list := v.(type) {
	case string:
		return []string{list}, true
	case []string:
		return list, true
	case []any:
		result := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			result = append(result, s)
		}
		return result, true
	}
	return nil, false
}
