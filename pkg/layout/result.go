package layout

import (
	"fmt"
	"math"
	"sort"

	jerrors "github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/geometry"
	"github.com/matzehuels/jigsaw/pkg/partition"
)

// Tolerance is the slack allowed when checking that rows fill the container.
const Tolerance = 1e-9

// Row is one justified row: items [Start, End) share Height.
type Row struct {
	Start  int     `json:"start"`
	End    int     `json:"end"`
	Height float64 `json:"height"`
	Cost   float64 `json:"cost"`
}

// Len returns the number of items in the row.
func (r Row) Len() int { return r.End - r.Start }

// Result is a computed layout.
type Result struct {
	Margin float64   `json:"margin"`
	Cost   float64   `json:"cost"`
	Rows   []Row     `json:"rows"`
	Widths []float64 `json:"widths"`
}

// Items returns the number of laid out items.
func (r Result) Items() int { return len(r.Widths) }

// RowOf returns the index of the row containing item i, or -1.
func (r Result) RowOf(i int) int {
	if i < 0 || i >= len(r.Widths) {
		return -1
	}
	k := sort.Search(len(r.Rows), func(k int) bool { return r.Rows[k].End > i })
	if k == len(r.Rows) {
		return -1
	}
	return k
}

// Height returns the rendered height of item i.
func (r Result) Height(i int) float64 {
	if k := r.RowOf(i); k >= 0 {
		return r.Rows[k].Height
	}
	return 0
}

// Validate checks the structural invariants of a result: rows are
// contiguous and cover every item, heights are positive, and in every row
// the widths plus (len+1) margins add up to the container width.
func (r Result) Validate() error {
	spans := make([]partition.Span, len(r.Rows))
	for i, row := range r.Rows {
		spans[i] = partition.Span{Start: row.Start, End: row.End}
	}
	if err := partition.CheckSpans(spans, len(r.Widths)); err != nil {
		return err
	}
	for i, row := range r.Rows {
		if !(row.Height > 0) {
			return jerrors.New(jerrors.ErrCodeInvalidRow, "row %d has non-positive height %v", i, row.Height)
		}
		total := float64(row.Len()+1) * r.Margin
		for _, w := range r.Widths[row.Start:row.End] {
			total += w
		}
		if math.Abs(total-1) > Tolerance {
			return jerrors.New(jerrors.ErrCodeInternal, "row %d spans %v of the container width", i, total)
		}
	}
	return nil
}

// Build lays out ratios according to p. Every row must be geometrically
// valid; an invalid row is reported as INVALID_ROW.
func Build(ratios []float64, margin float64, p partition.Partition) (Result, error) {
	if err := partition.CheckSpans(p.Spans, len(ratios)); err != nil {
		return Result{}, err
	}

	res := Result{
		Margin: margin,
		Cost:   p.Cost,
		Rows:   make([]Row, len(p.Spans)),
		Widths: make([]float64, len(ratios)),
	}
	prefix := geometry.NewPrefix(ratios)

	for i, s := range p.Spans {
		h, err := prefix.RowHeight(s.Start, s.End, margin)
		if err != nil {
			return Result{}, fmt.Errorf("row %d: %w", i, err)
		}
		row := Row{Start: s.Start, End: s.End, Height: h}
		if len(p.Costs) == len(p.Spans) {
			row.Cost = p.Costs[i]
		}
		res.Rows[i] = row

		for j := s.Start; j < s.End; j++ {
			res.Widths[j] = h * ratios[j]
		}
	}
	return res, nil
}
