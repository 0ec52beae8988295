package partition

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	jerrors "github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/objective"
)

const tol = 1e-12

var defaultObjective = objective.SquaredError(objective.DefaultIdealHeight)

func TestDynamicEmpty(t *testing.T) {
	p, err := Dynamic{}.Search(nil, 0.02, defaultObjective)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if p.Rows() != 0 || p.Cost != 0 {
		t.Errorf("Search(nil) = %+v, want empty partition", p)
	}
}

func TestDynamicSingleItem(t *testing.T) {
	p, err := Dynamic{}.Search([]float64{1.5}, 0.02, defaultObjective)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if diff := cmp.Diff([]Span{{0, 1}}, p.Spans); diff != "" {
		t.Errorf("Spans mismatch (-want +got):\n%s", diff)
	}
}

func TestDynamicScenarios(t *testing.T) {
	uniform := []float64{1.5, 1.5, 1.5, 1.5, 1.5, 1.5}

	tests := []struct {
		name     string
		ratios   []float64
		margin   float64
		obj      objective.Func
		want     []Span
		wantCost float64
	}{
		{
			name:     "mixed squared error fits one row",
			ratios:   []float64{1.5, 1.0, 2.0},
			margin:   0.02,
			obj:      defaultObjective,
			want:     []Span{{0, 3}},
			wantCost: math.Pow(0.92/4.5-0.25, 2),
		},
		{
			name:     "mixed penalize small splits short row",
			ratios:   []float64{1.5, 1.0, 2.0},
			margin:   0.02,
			obj:      objective.PenalizeSmall(0.25),
			want:     []Span{{0, 2}, {2, 3}},
			wantCost: (0.126 + 0.23) / 2,
		},
		{
			name:   "uniform no margin",
			ratios: uniform,
			margin: 0,
			obj:    defaultObjective,
			want:   []Span{{0, 3}, {3, 6}},
		},
		{
			name:   "uniform small margin",
			ratios: uniform,
			margin: 0.02,
			obj:    defaultObjective,
			want:   []Span{{0, 3}, {3, 6}},
		},
		{
			name:   "uniform larger margin",
			ratios: uniform,
			margin: 0.05,
			obj:    defaultObjective,
			want:   []Span{{0, 2}, {2, 4}, {4, 6}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Dynamic{}.Search(tt.ratios, tt.margin, tt.obj)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, p.Spans); diff != "" {
				t.Errorf("Spans mismatch (-want +got):\n%s", diff)
			}
			if tt.wantCost != 0 && math.Abs(p.Cost-tt.wantCost) > 1e-9 {
				t.Errorf("Cost = %v, want %v", p.Cost, tt.wantCost)
			}
			if len(p.Costs) != len(p.Spans) {
				t.Errorf("len(Costs) = %d, want %d", len(p.Costs), len(p.Spans))
			}
		})
	}
}

func TestDynamicNoValidPartition(t *testing.T) {
	for _, s := range []Searcher{Dynamic{}, Oracle()} {
		_, err := s.Search([]float64{1.0}, 0.6, defaultObjective)
		if !jerrors.IsNoValidPartition(err) {
			t.Errorf("%T.Search() error = %v, want NO_VALID_PARTITION", s, err)
		}
	}
}

func TestDynamicInvalidInput(t *testing.T) {
	nan := objective.Func(func(float64) float64 { return math.NaN() })

	tests := []struct {
		name   string
		ratios []float64
		margin float64
		obj    objective.Objective
	}{
		{"zero ratio", []float64{1, 0}, 0.01, defaultObjective},
		{"negative ratio", []float64{-1}, 0.01, defaultObjective},
		{"negative margin", []float64{1}, -0.01, defaultObjective},
		{"nil objective", []float64{1}, 0.01, nil},
		{"non-finite cost", []float64{1, 2}, 0.01, nan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, s := range []Searcher{Dynamic{}, Oracle()} {
				if _, err := s.Search(tt.ratios, tt.margin, tt.obj); !jerrors.IsInvalidInput(err) {
					t.Errorf("%T.Search() error = %v, want INVALID_INPUT", s, err)
				}
			}
		})
	}
}

func TestDynamicTiesPreferFewerRows(t *testing.T) {
	flat := objective.Func(func(float64) float64 { return 0 })
	p, err := Dynamic{}.Search([]float64{1, 2, 3, 4, 5}, 0.01, flat)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if diff := cmp.Diff([]Span{{0, 5}}, p.Spans); diff != "" {
		t.Errorf("Spans mismatch (-want +got):\n%s", diff)
	}
}

func TestDynamicCoversEveryItem(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for trial := 0; trial < 200; trial++ {
		ratios := randomRatios(rng, 1+rng.IntN(40))
		margin := rng.Float64() * 0.03

		p, err := Dynamic{}.Search(ratios, margin, defaultObjective)
		if err != nil {
			t.Fatalf("trial %d: Search() error = %v", trial, err)
		}
		if err := CheckSpans(p.Spans, len(ratios)); err != nil {
			t.Fatalf("trial %d: %v (spans %s)", trial, err, p)
		}
	}
}

func TestDynamicIsDeterministic(t *testing.T) {
	ratios := []float64{1.5, 0.67, 1.0, 2.2, 1.33, 0.8, 1.5, 1.78}
	original := append([]float64(nil), ratios...)

	a, err := Dynamic{}.Search(ratios, 0.01, defaultObjective)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	b, err := Dynamic{}.Search(ratios, 0.01, defaultObjective)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("repeated Search differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(original, ratios); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}

func TestDynamicRowsGrowWithMargin(t *testing.T) {
	ratios := []float64{1.5, 1.5, 1.5, 1.5, 1.5, 1.5}
	prev := 0
	for _, margin := range []float64{0, 0.01, 0.02, 0.05} {
		p, err := Dynamic{}.Search(ratios, margin, defaultObjective)
		if err != nil {
			t.Fatalf("margin %v: Search() error = %v", margin, err)
		}
		if p.Rows() < prev {
			t.Errorf("margin %v: %d rows, fewer than %d at a smaller margin", margin, p.Rows(), prev)
		}
		prev = p.Rows()
	}
}

func TestDynamicCostMatchesScore(t *testing.T) {
	ratios := []float64{1.5, 0.67, 1.0, 2.2, 1.33, 0.8, 1.5}
	for _, agg := range []Aggregation{Mean, Sum} {
		p, err := Dynamic{Aggregation: agg}.Search(ratios, 0.015, defaultObjective)
		if err != nil {
			t.Fatalf("%s: Search() error = %v", agg, err)
		}
		scored, err := Score(ratios, 0.015, defaultObjective, p.Spans, agg)
		if err != nil {
			t.Fatalf("%s: Score() error = %v", agg, err)
		}
		if math.Abs(scored.Cost-p.Cost) > tol {
			t.Errorf("%s: Score() = %v, Search() = %v", agg, scored.Cost, p.Cost)
		}
		for i := range p.Costs {
			if math.Abs(scored.Costs[i]-p.Costs[i]) > tol {
				t.Errorf("%s: row %d cost %v, want %v", agg, i, p.Costs[i], scored.Costs[i])
			}
		}
	}
}

func randomRatios(rng *rand.Rand, n int) []float64 {
	ratios := make([]float64, n)
	for i := range ratios {
		ratios[i] = 0.5 + 2*rng.Float64()
	}
	return ratios
}
