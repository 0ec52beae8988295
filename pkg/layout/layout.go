package layout

import (
	"fmt"

	jerrors "github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/objective"
	"github.com/matzehuels/jigsaw/pkg/partition"
)

// Option configures Compute.
type Option func(*config)

type config struct {
	searcher    partition.Searcher
	aggregation partition.Aggregation
}

// WithSearcher sets the partition search strategy.
func WithSearcher(s partition.Searcher) Option {
	return func(c *config) { c.searcher = s }
}

// WithAggregation sets how the default dynamic searcher combines row costs.
// It has no effect when WithSearcher is also given.
func WithAggregation(a partition.Aggregation) Option {
	return func(c *config) { c.aggregation = a }
}

// Compute finds the lowest-cost justified layout of ratios.
//
// It fails with INVALID_INPUT for non-positive ratios, a negative margin, a
// nil objective or an objective returning a non-finite cost, and with
// NO_VALID_PARTITION when the margin leaves no room for some item. An empty
// input yields an empty result. ratios is never modified.
func Compute(ratios []float64, margin float64, obj objective.Objective, opts ...Option) (Result, error) {
	if obj == nil {
		return Result{}, jerrors.New(jerrors.ErrCodeInvalidInput, "objective is required")
	}
	if err := jerrors.ValidateMargin(margin); err != nil {
		return Result{}, err
	}
	if err := jerrors.ValidateAspectRatios(ratios); err != nil {
		return Result{}, err
	}

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.searcher == nil {
		cfg.searcher = partition.Dynamic{Aggregation: cfg.aggregation}
	}

	p, err := cfg.searcher.Search(ratios, margin, obj)
	if err != nil {
		return Result{}, fmt.Errorf("search: %w", err)
	}
	return Build(ratios, margin, p)
}
