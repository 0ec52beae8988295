package cli

import (
	"context"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	jerrors "github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/gallery"
	"github.com/matzehuels/jigsaw/pkg/objective"
	"github.com/matzehuels/jigsaw/pkg/partition"
	"github.com/matzehuels/jigsaw/pkg/pipeline"
)

const costTolerance = 1e-9

// verifyFlagKeys leaves aggregation unbound: verify compares under sum
// unless the flag says otherwise.
var verifyFlagKeys = func() map[string]string {
	keys := make(map[string]string, len(layoutFlagKeys))
	for name, key := range layoutFlagKeys {
		if name != "aggregation" {
			keys[name] = key
		}
	}
	return keys
}()

func costsEqual(a, b float64) bool {
	return math.Abs(a-b) <= costTolerance*math.Max(1, math.Abs(b))
}

// verifyCommand creates the verify command, which checks the dynamic search
// against the exhaustive search on one gallery.
func (c *CLI) verifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [gallery]",
		Short: "Check the dynamic search against exhaustive search",
		Long: `Run both partition searches on a gallery under the same objective and
aggregation and compare the results.

Verify compares under sum aggregation unless --aggregation is given.
With sum aggregation the dynamic search is exact and any disagreement is an
error. With mean aggregation it may settle for a slightly costlier layout,
which is reported as a warning.

The exhaustive search scores all 2^(n-1) partitions and refuses galleries
larger than --max-exhaustive-items.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(c.v, cmd.Flags(), verifyFlagKeys)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := decodeConfig(c.v)
			if err != nil {
				return err
			}
			opts := cfg.Layout.Options()
			opts.Aggregation = partition.Sum.String()
			if cmd.Flags().Changed("aggregation") {
				opts.Aggregation, _ = cmd.Flags().GetString("aggregation")
			}
			return c.runVerify(cmd.Context(), args[0], opts)
		},
	}

	addLayoutFlags(cmd.Flags())
	registerLayoutCompletions(cmd)
	cmd.Flags().Lookup("aggregation").Usage = "row cost aggregation: sum (default here), mean"

	return cmd
}

func (c *CLI) runVerify(ctx context.Context, input string, opts pipeline.Options) error {
	g, err := gallery.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load gallery %s: %w", input, err)
	}
	ratios, err := g.AspectRatios()
	if err != nil {
		return fmt.Errorf("gallery %s: %w", input, err)
	}

	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	obj, err := opts.CostFunc()
	if err != nil {
		return err
	}
	agg, err := partition.ParseAggregation(opts.Aggregation)
	if err != nil {
		return err
	}

	dynamic, err := partition.Dynamic{Aggregation: agg}.Search(ratios, opts.MarginValue(), obj)
	if err != nil {
		return fmt.Errorf("dynamic search: %w", err)
	}

	search := partition.Exhaustive{Aggregation: agg, MaxItems: opts.MaxExhaustiveItems}
	exhaustive, err := searchExhaustive(ctx, search, ratios, opts.MarginValue(), obj)
	if err != nil {
		return fmt.Errorf("exhaustive search: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	printTitle(c.out, g.Name)
	printKeyValue(c.out, "objective", opts.Objective)
	printKeyValue(c.out, "aggregation", agg.String())
	printKeyValue(c.out, "margin", fmt.Sprint(opts.MarginValue()))
	fmt.Fprintln(c.out, verifyTable(dynamic, exhaustive))

	switch {
	case costsEqual(dynamic.Cost, exhaustive.Cost):
		printSuccess(c.out, "Dynamic search matches exhaustive search")
		return nil
	case agg == partition.Mean && dynamic.Cost > exhaustive.Cost:
		printWarning(c.out, "Dynamic search is %.3g above the optimum under mean aggregation", dynamic.Cost-exhaustive.Cost)
		return nil
	}
	printError(c.out, "Dynamic search disagrees with exhaustive search")
	return jerrors.New(jerrors.ErrCodeInternal, "dynamic cost %v, exhaustive cost %v", dynamic.Cost, exhaustive.Cost)
}

// searchExhaustive runs the exhaustive search behind a spinner.
func searchExhaustive(ctx context.Context, search partition.Exhaustive, ratios []float64, margin float64, obj objective.Objective) (partition.Partition, error) {
	n := partition.Count(len(ratios))
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Scoring %d partitions...", n))
	spinner.Start()
	p, err := search.Search(ratios, margin, obj)
	if err != nil {
		spinner.StopWithError("Exhaustive search failed")
		return partition.Partition{}, err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Scored %d partitions", n))
	return p, nil
}
