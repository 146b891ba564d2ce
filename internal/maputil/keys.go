// Package maputil provides small helpers for deterministic map iteration.
package maputil

import "sort"

// SortedKeys returns the keys of a string-keyed map in lexicographic order.
// Binding output must be deterministic, so every map traversal in the engine
// goes through this helper (or an explicitly recorded declaration order).
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
