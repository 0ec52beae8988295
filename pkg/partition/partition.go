package partition

import (
	"fmt"
	"strings"

	jerrors "github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/objective"
)

// Span is a half-open range [Start, End) of item indices forming one row.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of items in the span.
func (s Span) Len() int { return s.End - s.Start }

func (s Span) String() string { return fmt.Sprintf("[%d,%d)", s.Start, s.End) }

// Partition is an ordered set of rows covering every item exactly once.
type Partition struct {
	Spans []Span
	Costs []float64 // per-row objective cost, parallel to Spans
	Cost  float64   // aggregate cost under the searcher's Aggregation
}

// Rows returns the number of rows.
func (p Partition) Rows() int { return len(p.Spans) }

// Searcher finds the lowest-cost partition of a sequence of aspect ratios.
type Searcher interface {
	Search(ratios []float64, margin float64, obj objective.Objective) (Partition, error)
}

// Strategy names accepted by [New].
const (
	StrategyDynamic    = "dynamic"
	StrategyExhaustive = "exhaustive"
)

// New returns the searcher for a strategy name.
func New(strategy string, agg Aggregation, maxItems int) (Searcher, error) {
	switch strategy {
	case StrategyDynamic, "":
		return Dynamic{Aggregation: agg}, nil
	case StrategyExhaustive:
		return Exhaustive{Aggregation: agg, MaxItems: maxItems}, nil
	}
	return nil, jerrors.New(jerrors.ErrCodeInvalidInput,
		"unknown strategy %q (must be one of: %s, %s)", strategy, StrategyDynamic, StrategyExhaustive)
}

// CheckSpans verifies that spans are non-empty, contiguous, in order and
// cover exactly n items.
func CheckSpans(spans []Span, n int) error {
	next := 0
	for i, s := range spans {
		if s.Start != next {
			return jerrors.New(jerrors.ErrCodeInvalidInput, "row %d starts at %d, want %d", i, s.Start, next)
		}
		if s.End <= s.Start {
			return jerrors.New(jerrors.ErrCodeInvalidInput, "row %d is empty %s", i, s)
		}
		next = s.End
	}
	if next != n {
		return jerrors.New(jerrors.ErrCodeInvalidInput, "rows cover %d of %d items", next, n)
	}
	return nil
}

func formatSpans(spans []Span) string {
	parts := make([]string, len(spans))
	for i, s := range spans {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}

// String renders the spans compactly, e.g. "[0,3) [3,5)".
func (p Partition) String() string { return formatSpans(p.Spans) }

func validate(ratios []float64, margin float64, obj objective.Objective) error {
	if obj == nil {
		return jerrors.New(jerrors.ErrCodeInvalidInput, "objective is required")
	}
	if err := jerrors.ValidateMargin(margin); err != nil {
		return err
	}
	return jerrors.ValidateAspectRatios(ratios)
}

func errNoValidPartition(i int, margin float64) error {
	return jerrors.New(jerrors.ErrCodeNoValidPartition,
		"no row ending at item %d fits within margin %v", i, margin)
}
