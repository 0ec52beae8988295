package partition

import (
	jerrors "github.com/matzehuels/jigsaw/pkg/errors"
)

// Aggregation combines per-row costs into a partition cost.
type Aggregation int

const (
	// Mean averages row costs. It is the default.
	Mean Aggregation = iota
	// Sum adds row costs.
	Sum
)

// String returns the aggregation name.
func (a Aggregation) String() string {
	switch a {
	case Mean:
		return "mean"
	case Sum:
		return "sum"
	}
	return "unknown"
}

// ParseAggregation parses "mean" or "sum". The empty string means Mean.
func ParseAggregation(s string) (Aggregation, error) {
	switch s {
	case "mean", "":
		return Mean, nil
	case "sum":
		return Sum, nil
	}
	return Mean, jerrors.New(jerrors.ErrCodeInvalidInput, "unknown aggregation %q (must be one of: mean, sum)", s)
}

// extend folds one more row cost into an aggregate over count rows.
func (a Aggregation) extend(agg float64, count int, cost float64) float64 {
	if a == Sum {
		return agg + cost
	}
	return (agg*float64(count) + cost) / float64(count+1)
}

// reduce aggregates a complete list of row costs.
func (a Aggregation) reduce(costs []float64) float64 {
	if len(costs) == 0 {
		return 0
	}
	var total float64
	for _, c := range costs {
		total += c
	}
	if a == Sum {
		return total
	}
	return total / float64(len(costs))
}
