// Package schemautil centralizes type assertion patterns for version-specific
// schema fields, particularly the difference between OAS 3.0 (string type,
// nullable flag) and OAS 3.1+ (type arrays that may include "null").
package schemautil

import "github.com/erraggy/oasbind/spec"

// SchemaTypes returns the type(s) from a schema, handling both string
// (OAS 3.0) and array (OAS 3.1+) representations.
//
// Examples:
//   - OAS 3.0: {"type": "string"} returns ["string"]
//   - OAS 3.1: {"type": ["string", "null"]} returns ["string", "null"]
func SchemaTypes(schema *spec.Schema) []string {
	if schema == nil {
		return nil
	}
	switch t := schema.Type.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []any:
		result := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				result = append(result, s)
			}
		}
		return result
	case []string:
		return t
	}
	return nil
}

// PrimaryType returns the first non-null type from a schema, or the type the
// schema implies when no explicit type is set (properties imply object, items
// imply array, a literal set implies string).
func PrimaryType(schema *spec.Schema) string {
	if schema == nil {
		return ""
	}
	types := SchemaTypes(schema)
	for _, t := range types {
		if t != "null" {
			return t
		}
	}
	if len(types) > 0 {
		return types[0]
	}

	switch {
	case len(schema.Properties) > 0:
		return "object"
	case schema.Items != nil || len(schema.PrefixItems) > 0:
		return "array"
	case len(schema.Enum) > 0:
		return "string"
	}
	return ""
}

// IsNullable reports whether the schema allows null values, either via the
// OAS 3.0 nullable flag or a "null" entry in the OAS 3.1+ type array.
func IsNullable(schema *spec.Schema) bool {
	if schema == nil {
		return false
	}
	if schema.Nullable {
		return true
	}
	for _, t := range SchemaTypes(schema) {
		if t == "null" {
			return true
		}
	}
	return false
}

// HasType checks if the schema includes the specified type.
func HasType(schema *spec.Schema, targetType string) bool {
	for _, t := range SchemaTypes(schema) {
		if t == targetType {
			return true
		}
	}
	return false
}
