package partition

import (
	"fmt"

	jerrors "github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/geometry"
	"github.com/matzehuels/jigsaw/pkg/objective"
)

// Score evaluates a caller-chosen partition. Unlike the searchers, which
// skip invalid rows, Score reports the first invalid row as INVALID_ROW.
func Score(ratios []float64, margin float64, obj objective.Objective, spans []Span, agg Aggregation) (Partition, error) {
	if err := validate(ratios, margin, obj); err != nil {
		return Partition{}, err
	}
	if err := CheckSpans(spans, len(ratios)); err != nil {
		return Partition{}, err
	}

	prefix := geometry.NewPrefix(ratios)
	costs := make([]float64, len(spans))
	for i, s := range spans {
		h, err := prefix.RowHeight(s.Start, s.End, margin)
		if err != nil {
			return Partition{}, fmt.Errorf("row %d %s: %w", i, s, err)
		}
		c := obj.Cost(h)
		if err := jerrors.ValidateCost(c, h); err != nil {
			return Partition{}, err
		}
		costs[i] = c
	}

	return Partition{
		Spans: append([]Span(nil), spans...),
		Costs: costs,
		Cost:  agg.reduce(costs),
	}, nil
}
