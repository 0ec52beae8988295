package partition

import (
	"iter"
)

// MaxSplitItems is the largest n for which [Splits] can enumerate.
const MaxSplitItems = 64

// Count returns the number of partitions of n items, 2^(n-1).
// It returns 0 for n <= 0 and saturates at the largest uint64.
func Count(n int) uint64 {
	switch {
	case n <= 0:
		return 0
	case n > MaxSplitItems:
		return ^uint64(0)
	}
	return uint64(1) << (n - 1)
}

// Splits enumerates every partition of n items into contiguous rows, one at
// a time. Bit j of the enumeration counter places a break after item j, so
// the single-row partition comes first.
//
// The yielded slice is reused between iterations and is only valid until
// the next one; clone it to keep it. The sequence can be ranged over any
// number of times. It yields nothing for n <= 0 and panics when n exceeds
// MaxSplitItems.
func Splits(n int) iter.Seq[[]Span] {
	if n > MaxSplitItems {
		panic("partition: Splits supports at most 64 items")
	}
	return func(yield func([]Span) bool) {
		if n <= 0 {
			return
		}
		spans := make([]Span, 0, n)
		last := Count(n) - 1
		for mask := uint64(0); ; mask++ {
			spans = spans[:0]
			start := 0
			for j := 0; j < n-1; j++ {
				if mask&(1<<j) != 0 {
					spans = append(spans, Span{Start: start, End: j + 1})
					start = j + 1
				}
			}
			spans = append(spans, Span{Start: start, End: n})
			if !yield(spans) || mask == last {
				return
			}
		}
	}
}
