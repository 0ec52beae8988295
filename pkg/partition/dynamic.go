package partition

import (
	jerrors "github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/geometry"
	"github.com/matzehuels/jigsaw/pkg/objective"
)

// Dynamic finds the optimal partition by dynamic programming over row end
// positions. It runs in O(n²) time and O(n) space.
type Dynamic struct {
	Aggregation Aggregation
}

// cell is the best partition of items 0..i found so far.
type cell struct {
	cost    float64 // aggregate cost of the partition
	count   int     // number of rows contributing to cost
	prev    int     // last item of the previous row, -1 if none
	rowCost float64 // cost of the row ending at i
}

// Search implements Searcher.
func (d Dynamic) Search(ratios []float64, margin float64, obj objective.Objective) (Partition, error) {
	if err := validate(ratios, margin, obj); err != nil {
		return Partition{}, err
	}
	n := len(ratios)
	if n == 0 {
		return Partition{}, nil
	}

	prefix := geometry.NewPrefix(ratios)
	cells := make([]cell, n)

	for i := 0; i < n; i++ {
		var best cell
		found := false

		for p := -1; p < i; p++ {
			h, ok := prefix.Height(p+1, i+1, margin)
			if !ok {
				continue
			}
			c := obj.Cost(h)
			if err := jerrors.ValidateCost(c, h); err != nil {
				return Partition{}, err
			}

			cand := cell{cost: c, count: 1, prev: p, rowCost: c}
			if p >= 0 {
				cand.cost = d.Aggregation.extend(cells[p].cost, cells[p].count, c)
				cand.count = cells[p].count + 1
			}
			if !found || cand.cost < best.cost {
				best, found = cand, true
			}
		}

		if !found {
			return Partition{}, errNoValidPartition(i, margin)
		}
		cells[i] = best
	}

	return reconstruct(cells), nil
}

// reconstruct walks the recorded boundaries back from the last item.
func reconstruct(cells []cell) Partition {
	last := len(cells) - 1
	rows := cells[last].count
	p := Partition{
		Spans: make([]Span, rows),
		Costs: make([]float64, rows),
		Cost:  cells[last].cost,
	}
	for i, r := last, rows-1; i >= 0; r-- {
		c := cells[i]
		p.Spans[r] = Span{Start: c.prev + 1, End: i + 1}
		p.Costs[r] = c.rowCost
		i = c.prev
	}
	return p
}
