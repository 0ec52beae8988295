// Package geometry converts a contiguous run of aspect ratios into a
// justified row.
//
// All quantities are fractions of the container width. A row of k items
// with aspect ratios r_1..r_k (width / height) and margin m reserves k+1
// margins (one before the row, one between each adjacent pair, one after)
// and shares the remaining width among the items at a common height:
//
//	avail = 1 - (k+1)*m
//	h     = avail / Σ r_i
//	w_i   = h * r_i
//
// A row with avail <= 0 is geometrically invalid and is reported as an
// INVALID_ROW error; a non-positive height is never produced.
//
// [Prefix] precomputes running sums so that the height of any range is
// available in constant time, which the partition search relies on.
package geometry
