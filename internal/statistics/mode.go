package statistics

import (
	"cmp"
	"slices"
)

// Count is one distinct value and how many trips carry it
type Count[T cmp.Ordered] struct {
	Value T
	Count int
}

// tally counts occurrences of key over items
func tally[E any, T cmp.Ordered](items []E, key func(E) T) map[T]int {
	counts := make(map[T]int)
	for _, item := range items {
		counts[key(item)]++
	}
	return counts
}

// sortedCounts orders by count descending, then value ascending
func sortedCounts[T cmp.Ordered](counts map[T]int) []Count[T] {
	out := make([]Count[T], 0, len(counts))
	for v, n := range counts {
		out = append(out, Count[T]{Value: v, Count: n})
	}
	slices.SortFunc(out, func(a, b Count[T]) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})
	return out
}

// mode returns the most frequent key, ties going to the smallest value.
// ok is false when items is empty.
func mode[E any, T cmp.Ordered](items []E, key func(E) T) (value T, ok bool) {
	counts := sortedCounts(tally(items, key))
	if len(counts) == 0 {
		return value, false
	}
	return counts[0].Value, true
}
