package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	jerrors "github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/gallery"
	"github.com/matzehuels/jigsaw/pkg/layout"
	"github.com/matzehuels/jigsaw/pkg/pipeline"
)

// layoutCommand creates the layout command for computing gallery layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "layout [gallery]...",
		Short: "Compute justified row layouts for galleries",
		Long: `Compute justified row layouts for one or more galleries.

A gallery is a .json, .toml or .txt file listing photo aspect ratios or
pixel sizes. For each gallery the rows are printed as a table; with -o the
layout is written as JSON for a renderer.

With several galleries, -o names a directory that receives one
<gallery>.layout.json per input. Galleries are laid out in parallel.`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(c.v, cmd.Flags(), layoutFlagKeys)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := decodeConfig(c.v)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args, cfg.Layout.Options(), output, asJSON)
		},
	}

	addLayoutFlags(cmd.Flags())
	registerLayoutCompletions(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, or directory for several galleries")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print layout JSON to stdout instead of a table")

	return cmd
}

// runLayout loads every gallery, computes the layouts and reports them.
func (c *CLI) runLayout(ctx context.Context, inputs []string, opts pipeline.Options, output string, asJSON bool) error {
	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	jobs := make([]pipeline.Job, len(inputs))
	galleries := make([]gallery.Gallery, len(inputs))
	for i, input := range inputs {
		g, err := gallery.ReadFile(input)
		if err != nil {
			return fmt.Errorf("load gallery %s: %w", input, err)
		}
		ratios, err := g.AspectRatios()
		if err != nil {
			return fmt.Errorf("gallery %s: %w", input, err)
		}
		galleries[i] = g
		jobs[i] = pipeline.Job{Name: input, Ratios: ratios}
		c.Logger.Debug("loaded gallery", "path", input, "items", g.Len())
	}

	runner := pipeline.NewRunner(c.Logger)
	results, err := runner.RunBatch(ctx, jobs, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Laid out %d galleries", len(results)))

	paths, err := outputPaths(inputs, output)
	if err != nil {
		return err
	}

	for i, res := range results {
		if asJSON {
			if err := layout.Write(res.Layout, c.out); err != nil {
				return err
			}
			continue
		}

		printTitle(c.out, galleries[i].Name)
		fmt.Fprintln(c.out, rowTable(res.Layout, galleries[i].IDs()))
		printStats(c.out, res.Stats, res.Layout.Cost)

		if paths != nil {
			if err := layout.WriteFile(res.Layout, paths[i]); err != nil {
				return fmt.Errorf("write output %s: %w", paths[i], err)
			}
			printFile(c.out, paths[i])
		}
		printNewline(c.out)
	}

	if paths != nil && !asJSON && len(inputs) == 1 {
		printNextStep(c.out, "Tune interactively", "jigsaw tune "+inputs[0])
	}
	return nil
}

// outputPaths resolves where layouts are written, or nil when they are not.
func outputPaths(inputs []string, output string) ([]string, error) {
	if output == "" {
		return nil, nil
	}
	if len(inputs) == 1 {
		if info, err := os.Stat(output); err == nil && info.IsDir() {
			return []string{filepath.Join(output, layoutFileName(inputs[0]))}, nil
		}
		return []string{output}, nil
	}

	info, err := os.Stat(output)
	if err != nil || !info.IsDir() {
		return nil, jerrors.New(jerrors.ErrCodeInvalidPath, "-o must be an existing directory when laying out %d galleries", len(inputs))
	}
	paths := make([]string, len(inputs))
	seen := make(map[string]string, len(inputs))
	for i, input := range inputs {
		name := layoutFileName(input)
		if prev, ok := seen[name]; ok {
			return nil, jerrors.New(jerrors.ErrCodeInvalidPath, "%s and %s would both write %s", prev, input, name)
		}
		seen[name] = input
		paths[i] = filepath.Join(output, name)
	}
	return paths, nil
}

func layoutFileName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".layout.json"
}
