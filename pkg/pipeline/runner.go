package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jigsaw/pkg/layout"
	"github.com/matzehuels/jigsaw/pkg/observability"
)

// Runner executes layouts with shared logging and hooks.
//
// The Runner is stateless except for the logger - it doesn't store
// results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Run computes the layout of ratios. ratios is not modified.
func (r *Runner) Run(ctx context.Context, ratios []float64, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	obj, err := opts.CostFunc()
	if err != nil {
		return nil, err
	}
	searcher, err := opts.Searcher()
	if err != nil {
		return nil, err
	}

	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, opts.Strategy, len(ratios))

	start := time.Now()
	res, err := layout.Compute(ratios, opts.MarginValue(), obj, layout.WithSearcher(searcher))
	elapsed := time.Since(start)

	hooks.OnLayoutComplete(ctx, opts.Strategy, len(res.Rows), elapsed, err)
	if err != nil {
		opts.Logger.Debug("layout failed", "items", len(ratios), "error", err)
		return nil, err
	}

	opts.Logger.Debug("computed layout",
		"items", len(ratios),
		"rows", len(res.Rows),
		"cost", res.Cost,
		"strategy", opts.Strategy,
		"duration", elapsed)

	return &Result{
		Layout: res,
		Stats: Stats{
			Items:    len(ratios),
			Rows:     len(res.Rows),
			Duration: elapsed,
		},
	}, nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
