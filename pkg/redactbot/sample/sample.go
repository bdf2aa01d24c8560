// Package sample draws ratio-sized random samples with replacement.
package sample

import "math"

// Source supplies uniform random integers in [0, n). *math/rand/v2.Rand
// satisfies it.
type Source interface {
	IntN(n int) int
}

// Count returns floor(ratio * n), clamped to [0, n].
func Count(n int, ratio float64) int {
	if n <= 0 || !(ratio > 0) {
		return 0
	}
	k := int(math.Floor(ratio * float64(n)))
	return min(k, n)
}

// Sample returns Count(len(items), ratio) items chosen uniformly with
// replacement. The same item may appear more than once and some items may be
// missing even at ratio 1.
func Sample[T any](src Source, items []T, ratio float64) []T {
	k := Count(len(items), ratio)
	if k == 0 {
		return nil
	}
	out := make([]T, k)
	for i := range out {
		out[i] = items[src.IntN(len(items))]
	}
	return out
}

// Choice returns one item chosen uniformly. It panics on an empty slice.
func Choice[T any](src Source, items []T) T {
	return items[src.IntN(len(items))]
}
