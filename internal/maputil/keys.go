// Package maputil provides small helpers for working with maps.
package maputil

import (
	"maps"
	"slices"
)

// SortedKeys returns the keys of m in ascending order. It never returns nil.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	keys = slices.AppendSeq(keys, maps.Keys(m))
	slices.Sort(keys)
	return keys
}
