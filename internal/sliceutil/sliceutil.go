// Package sliceutil holds small generic slice/map helpers shared by
// the world package.
package sliceutil

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// SortedKeys returns m's keys in ascending order. Map iteration order
// in Go is randomized; callers that need a deterministic traversal
// (spatial index bucket contents, entity snapshots consumed by tests)
// use this instead of ranging directly.
func SortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
