// Package pipeline runs justified-grid layouts for the CLI and the HTTP API.
//
// It turns loosely specified [Options] (strategy and objective names,
// optional margin) into a configured [layout.Compute] call, reports timing
// through the logger and [observability] hooks, and can lay out many
// galleries concurrently. The CLI and the HTTP API share its defaults.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	res, err := runner.Run(ctx, ratios, pipeline.Options{
//	    Objective: "penalize-small",
//	    Margin:    pipeline.Float(0.02),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(res.Layout.Rows), "rows in", res.Stats.Duration)
//
// Lay out several galleries at once:
//
//	results, err := runner.RunBatch(ctx, []pipeline.Job{
//	    {Name: "summer", Ratios: summer},
//	    {Name: "winter", Ratios: winter},
//	}, opts)
package pipeline

import (
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	jerrors "github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/layout"
	"github.com/matzehuels/jigsaw/pkg/objective"
	"github.com/matzehuels/jigsaw/pkg/partition"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultMargin is the gap between items, as a fraction of container width.
	DefaultMargin = 0.01

	// DefaultIdealHeight is the target row height, as a fraction of
	// container width.
	DefaultIdealHeight = objective.DefaultIdealHeight

	// DefaultObjective is the default row cost function.
	DefaultObjective = objective.DefaultName

	// DefaultStrategy is the default partition search.
	DefaultStrategy = partition.StrategyDynamic

	// DefaultAggregation is the default way row costs are combined.
	DefaultAggregation = "mean"

	// DefaultMaxExhaustiveItems bounds the exhaustive search.
	DefaultMaxExhaustiveItems = partition.DefaultMaxExhaustiveItems
)

// Float returns a pointer to v, for optional fields such as Options.Margin.
func Float(v float64) *float64 { return &v }

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a layout run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Margin is optional because zero is a valid margin.
	Margin             *float64 `json:"margin,omitempty"`
	IdealHeight        float64  `json:"ideal_height,omitempty"`
	Objective          string   `json:"objective,omitempty"`
	Strategy           string   `json:"strategy,omitempty"`
	Aggregation        string   `json:"aggregation,omitempty"`
	MaxExhaustiveItems int      `json:"max_exhaustive_items,omitempty"`

	// Runtime options (not serialized)
	Concurrency int         `json:"-"` // parallel layouts in RunBatch
	Logger      *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a layout run.
type Result struct {
	Layout layout.Result
	Stats  Stats
}

// Stats contains run statistics.
type Stats struct {
	Items    int
	Rows     int
	Duration time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset fields with their defaults.
func (o *Options) SetDefaults() {
	if o.Margin == nil {
		o.Margin = Float(DefaultMargin)
	}
	if o.IdealHeight == 0 {
		o.IdealHeight = DefaultIdealHeight
	}
	if o.Objective == "" {
		o.Objective = DefaultObjective
	}
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if o.Aggregation == "" {
		o.Aggregation = DefaultAggregation
	}
	if o.MaxExhaustiveItems == 0 {
		o.MaxExhaustiveItems = DefaultMaxExhaustiveItems
	}
	if o.Concurrency == 0 {
		o.Concurrency = runtime.GOMAXPROCS(0)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks option values. Call SetDefaults first.
func (o *Options) Validate() error {
	if err := jerrors.ValidateMargin(o.MarginValue()); err != nil {
		return err
	}
	if err := jerrors.ValidateIdealHeight(o.IdealHeight); err != nil {
		return err
	}
	if err := objective.Validate(o.Objective); err != nil {
		return err
	}
	if _, err := partition.ParseAggregation(o.Aggregation); err != nil {
		return err
	}
	if _, err := partition.New(o.Strategy, partition.Mean, o.MaxExhaustiveItems); err != nil {
		return err
	}
	if o.MaxExhaustiveItems < 0 {
		return jerrors.New(jerrors.ErrCodeInvalidInput, "max_exhaustive_items must be non-negative, got %d", o.MaxExhaustiveItems)
	}
	if o.Concurrency < 0 {
		return jerrors.New(jerrors.ErrCodeInvalidInput, "concurrency must be non-negative, got %d", o.Concurrency)
	}
	return nil
}

// ValidateAndSetDefaults applies defaults and validates.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// MarginValue returns the margin, or DefaultMargin when unset.
func (o *Options) MarginValue() float64 {
	if o.Margin == nil {
		return DefaultMargin
	}
	return *o.Margin
}

// CostFunc returns the configured objective.
func (o *Options) CostFunc() (objective.Func, error) {
	return objective.Lookup(o.Objective, o.IdealHeight)
}

// Searcher returns the configured partition searcher.
func (o *Options) Searcher() (partition.Searcher, error) {
	agg, err := partition.ParseAggregation(o.Aggregation)
	if err != nil {
		return nil, err
	}
	return partition.New(o.Strategy, agg, o.MaxExhaustiveItems)
}
