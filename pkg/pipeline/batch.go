package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Job is one gallery in a batch.
type Job struct {
	Name   string
	Ratios []float64
}

// RunBatch lays out independent galleries concurrently, at most
// opts.Concurrency at a time. Results are returned in job order. The first
// failure cancels jobs that have not started and is returned wrapped with
// the job name.
func (r *Runner) RunBatch(ctx context.Context, jobs []Job, opts Options) ([]*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	results := make([]*Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i, job := range jobs {
		g.Go(func() error {
			res, err := r.Run(gctx, job.Ratios, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", job.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	opts.Logger.Debug("batch complete", "jobs", len(jobs), "concurrency", opts.Concurrency)
	return results, nil
}
