package geometry

import (
	jerrors "github.com/matzehuels/jigsaw/pkg/errors"
)

// Prefix holds running sums of aspect ratios: Prefix[i] is the sum of the
// first i ratios, so len(Prefix) is one more than the number of items.
type Prefix []float64

// NewPrefix builds the running sums for ratios.
func NewPrefix(ratios []float64) Prefix {
	p := make(Prefix, len(ratios)+1)
	for i, r := range ratios {
		p[i+1] = p[i] + r
	}
	return p
}

// Len returns the number of items covered.
func (p Prefix) Len() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Sum returns the sum of ratios in the half-open range [start, end).
func (p Prefix) Sum(start, end int) float64 {
	return p[end] - p[start]
}

// Height returns the row height for items [start, end). The boolean is
// false when the row is geometrically invalid or empty.
func (p Prefix) Height(start, end int, margin float64) (float64, bool) {
	k := end - start
	if k <= 0 {
		return 0, false
	}
	avail := Available(k, margin)
	if avail <= 0 {
		return 0, false
	}
	return avail / p.Sum(start, end), true
}

// RowHeight is like Height but reports an invalid row as an error.
func (p Prefix) RowHeight(start, end int, margin float64) (float64, error) {
	if end <= start {
		return 0, jerrors.New(jerrors.ErrCodeInvalidInput, "empty row range [%d, %d)", start, end)
	}
	return height(end-start, p.Sum(start, end), margin)
}
