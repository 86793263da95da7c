// Package sliceutil provides generic slice helpers.
package sliceutil

// Deduplicate keeps the first item for each key, preserving order.
//
//	unmatched := sliceutil.Deduplicate(records, func(r comision.Record) string {
//		return comision.Label(r.SectionCode)
//	})
func Deduplicate[T any, K comparable](items []T, key func(T) K) []T {
	if len(items) == 0 {
		return items
	}

	seen := make(map[K]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Take returns at most the first n items. n <= 0 means no limit.
// The result shares the backing array of items.
func Take[T any](items []T, n int) []T {
	if n <= 0 || len(items) <= n {
		return items
	}
	return items[:n]
}

// Filter returns the items for which keep reports true, preserving order.
func Filter[T any](items []T, keep func(T) bool) []T {
	var out []T
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
