package form

import "slices"

// insertOrdered places item before the first element for which before
// reports true, or at the end when none does.
func insertOrdered[T any](items []T, item T, before func(existing, item T) bool) []T {
	for i, existing := range items {
		if before(existing, item) {
			return slices.Insert(items, i, item)
		}
	}
	return append(items, item)
}
