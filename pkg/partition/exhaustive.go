package partition

import (
	"slices"

	jerrors "github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/geometry"
	"github.com/matzehuels/jigsaw/pkg/objective"
)

// DefaultMaxExhaustiveItems bounds Exhaustive when MaxItems is unset.
const DefaultMaxExhaustiveItems = 20

// Exhaustive scores every one of the 2^(n-1) partitions and keeps the best.
// It is a slow reference used to check Dynamic, never the production path.
// Inputs longer than MaxItems are refused with SEARCH_TOO_LARGE.
type Exhaustive struct {
	Aggregation Aggregation
	MaxItems    int
}

// Oracle returns the reference configuration: Sum aggregation with the
// default size limit.
func Oracle() Exhaustive {
	return Exhaustive{Aggregation: Sum, MaxItems: DefaultMaxExhaustiveItems}
}

func (e Exhaustive) limit() int {
	if e.MaxItems <= 0 {
		return DefaultMaxExhaustiveItems
	}
	return min(e.MaxItems, MaxSplitItems)
}

// Search implements Searcher. Ties keep the partition enumerated first.
func (e Exhaustive) Search(ratios []float64, margin float64, obj objective.Objective) (Partition, error) {
	if err := validate(ratios, margin, obj); err != nil {
		return Partition{}, err
	}
	n := len(ratios)
	if n == 0 {
		return Partition{}, nil
	}
	if limit := e.limit(); n > limit {
		return Partition{}, jerrors.New(jerrors.ErrCodeSearchTooLarge,
			"exhaustive search over %d items exceeds the limit of %d", n, limit)
	}

	prefix := geometry.NewPrefix(ratios)
	costs := make([]float64, 0, n)
	var best Partition
	found := false

	for spans := range Splits(n) {
		costs = costs[:0]
		valid := true
		for _, s := range spans {
			h, ok := prefix.Height(s.Start, s.End, margin)
			if !ok {
				valid = false
				break
			}
			c := obj.Cost(h)
			if err := jerrors.ValidateCost(c, h); err != nil {
				return Partition{}, err
			}
			costs = append(costs, c)
		}
		if !valid {
			continue
		}

		total := e.Aggregation.reduce(costs)
		if !found || total < best.Cost {
			best = Partition{Spans: slices.Clone(spans), Costs: slices.Clone(costs), Cost: total}
			found = true
		}
	}

	if !found {
		return Partition{}, jerrors.New(jerrors.ErrCodeNoValidPartition,
			"no partition of %d items fits within margin %v", n, margin)
	}
	return best, nil
}
