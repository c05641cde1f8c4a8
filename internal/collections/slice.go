// Package collections provides generic collection utilities.
package collections

import (
	"cmp"
	"slices"
)

// Concat concatenates multiple slices of the same type into a single slice.
// It preserves the order of elements from the input slices.
func Concat[T any](parts ...[]T) []T {
	var totalLen int
	for _, s := range parts {
		totalLen += len(s)
	}

	result := make([]T, 0, totalLen)
	for _, s := range parts {
		result = append(result, s...)
	}
	return result
}

// SortedBy returns items sorted in place by the key extracted with key.
func SortedBy[T any, K cmp.Ordered](items []T, key func(T) K) []T {
	slices.SortFunc(items, func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	})
	return items
}
