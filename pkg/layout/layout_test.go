package layout

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	jerrors "github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/objective"
	"github.com/matzehuels/jigsaw/pkg/partition"
)

const tol = 1e-12

var approx = cmpopts.EquateApprox(0, tol)

func TestComputeScenarios(t *testing.T) {
	mixed := []float64{1.5, 1.0, 2.0}
	h := 0.92 / 4.5

	tests := []struct {
		name     string
		ratios   []float64
		margin   float64
		obj      objective.Func
		opts     []Option
		want     []Row
		wantCost float64
	}{
		{
			name:     "squared error single row",
			ratios:   mixed,
			margin:   0.02,
			obj:      objective.SquaredError(0.25),
			want:     []Row{{Start: 0, End: 3, Height: h, Cost: math.Pow(h-0.25, 2)}},
			wantCost: math.Pow(h-0.25, 2),
		},
		{
			name:   "penalize small mean splits",
			ratios: mixed,
			margin: 0.02,
			obj:    objective.PenalizeSmall(0.25),
			want: []Row{
				{Start: 0, End: 2, Height: 0.376, Cost: 0.126},
				{Start: 2, End: 3, Height: 0.48, Cost: 0.23},
			},
			wantCost: 0.178,
		},
		{
			name:     "penalize small sum keeps one row",
			ratios:   mixed,
			margin:   0.02,
			obj:      objective.PenalizeSmall(0.25),
			opts:     []Option{WithAggregation(partition.Sum)},
			want:     []Row{{Start: 0, End: 3, Height: h, Cost: math.Log(0.25 / h)}},
			wantCost: math.Log(0.25 / h),
		},
		{
			name:     "oracle searcher",
			ratios:   mixed,
			margin:   0.02,
			obj:      objective.SquaredError(0.25),
			opts:     []Option{WithSearcher(partition.Oracle())},
			want:     []Row{{Start: 0, End: 3, Height: h, Cost: math.Pow(h-0.25, 2)}},
			wantCost: math.Pow(h-0.25, 2),
		},
		{
			name:   "wide margin three rows",
			ratios: []float64{1.5, 1.5, 1.5, 1.5, 1.5, 1.5},
			margin: 0.05,
			obj:    objective.SquaredError(0.25),
			want: []Row{
				{Start: 0, End: 2, Height: 0.85 / 3, Cost: math.Pow(0.85/3-0.25, 2)},
				{Start: 2, End: 4, Height: 0.85 / 3, Cost: math.Pow(0.85/3-0.25, 2)},
				{Start: 4, End: 6, Height: 0.85 / 3, Cost: math.Pow(0.85/3-0.25, 2)},
			},
			wantCost: math.Pow(0.85/3-0.25, 2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Compute(tt.ratios, tt.margin, tt.obj, tt.opts...)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, res.Rows, approx); diff != "" {
				t.Errorf("Rows mismatch (-want +got):\n%s", diff)
			}
			if math.Abs(res.Cost-tt.wantCost) > tol {
				t.Errorf("Cost = %v, want %v", res.Cost, tt.wantCost)
			}
			if err := res.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestComputeWidths(t *testing.T) {
	ratios := []float64{1.5, 1.0, 2.0}
	res, err := Compute(ratios, 0.02, objective.SquaredError(0.25))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	h := 0.92 / 4.5
	want := []float64{1.5 * h, 1.0 * h, 2.0 * h}
	if diff := cmp.Diff(want, res.Widths, approx); diff != "" {
		t.Errorf("Widths mismatch (-want +got):\n%s", diff)
	}
	if res.Items() != 3 {
		t.Errorf("Items() = %d, want 3", res.Items())
	}
}

func TestComputeEmpty(t *testing.T) {
	res, err := Compute(nil, 0.02, objective.SquaredError(0.25))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if len(res.Rows) != 0 || len(res.Widths) != 0 {
		t.Errorf("Compute(nil) = %+v, want empty", res)
	}
}

func TestComputeDoesNotModifyInput(t *testing.T) {
	ratios := []float64{2, 0.5, 1, 1.25}
	orig := append([]float64(nil), ratios...)
	if _, err := Compute(ratios, 0.01, objective.SquaredError(0.25)); err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if diff := cmp.Diff(orig, ratios); diff != "" {
		t.Errorf("input modified (-want +got):\n%s", diff)
	}
}

func TestComputeErrors(t *testing.T) {
	tests := []struct {
		name   string
		ratios []float64
		margin float64
		obj    objective.Objective
		code   jerrors.Code
	}{
		{"nil objective", []float64{1}, 0.01, nil, jerrors.ErrCodeInvalidInput},
		{"negative margin", []float64{1}, -0.01, objective.SquaredError(0.25), jerrors.ErrCodeInvalidInput},
		{"zero ratio", []float64{1, 0}, 0.01, objective.SquaredError(0.25), jerrors.ErrCodeInvalidInput},
		{"nan ratio", []float64{math.NaN()}, 0.01, objective.SquaredError(0.25), jerrors.ErrCodeInvalidInput},
		{"margin too wide", []float64{1, 1}, 0.5, objective.SquaredError(0.25), jerrors.ErrCodeNoValidPartition},
		{
			"non-finite cost", []float64{1}, 0.01,
			objective.Func(func(float64) float64 { return math.Inf(1) }),
			jerrors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.ratios, tt.margin, tt.obj)
			if err == nil {
				t.Fatal("Compute() error = nil, want error")
			}
			if got := jerrors.GetCode(err); got != tt.code {
				t.Errorf("code = %v, want %v (err: %v)", got, tt.code, err)
			}
		})
	}
}

type fixedSearcher struct{ spans []partition.Span }

func (f fixedSearcher) Search([]float64, float64, objective.Objective) (partition.Partition, error) {
	return partition.Partition{Spans: f.spans}, nil
}

func TestComputeWithSearcher(t *testing.T) {
	spans := []partition.Span{{Start: 0, End: 1}, {Start: 1, End: 3}}
	res, err := Compute([]float64{1, 1, 1}, 0, objective.SquaredError(0.25), WithSearcher(fixedSearcher{spans}))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if len(res.Rows) != 2 || res.Rows[1].Start != 1 {
		t.Errorf("Rows = %+v, want searcher's spans", res.Rows)
	}
	if math.Abs(res.Rows[1].Height-0.5) > tol {
		t.Errorf("Rows[1].Height = %v, want 0.5", res.Rows[1].Height)
	}
}

func TestBuildInvalidRow(t *testing.T) {
	p := partition.Partition{Spans: []partition.Span{{Start: 0, End: 2}}}
	_, err := Build([]float64{1, 1}, 0.4, p)
	if !jerrors.IsInvalidRow(err) {
		t.Errorf("Build() error = %v, want INVALID_ROW", err)
	}
}

func TestBuildBadSpans(t *testing.T) {
	p := partition.Partition{Spans: []partition.Span{{Start: 0, End: 1}}}
	_, err := Build([]float64{1, 1}, 0.01, p)
	if !jerrors.IsInvalidInput(err) {
		t.Errorf("Build() error = %v, want INVALID_INPUT", err)
	}
}

func TestRowOf(t *testing.T) {
	res, err := Compute([]float64{1.5, 1.5, 1.5, 1.5, 1.5, 1.5}, 0.05, objective.SquaredError(0.25))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	tests := []struct {
		item int
		want int
	}{
		{-1, -1}, {0, 0}, {1, 0}, {2, 1}, {3, 1}, {4, 2}, {5, 2}, {6, -1},
	}
	for _, tt := range tests {
		if got := res.RowOf(tt.item); got != tt.want {
			t.Errorf("RowOf(%d) = %d, want %d", tt.item, got, tt.want)
		}
	}
	if got := res.Height(6); got != 0 {
		t.Errorf("Height(6) = %v, want 0", got)
	}
}

func TestRowOfWithoutRows(t *testing.T) {
	res := Result{Widths: []float64{0.5, 0.5}}
	if got := res.RowOf(1); got != -1 {
		t.Errorf("RowOf(1) = %d, want -1 when no row covers the item", got)
	}
	if got := res.Height(1); got != 0 {
		t.Errorf("Height(1) = %v, want 0", got)
	}
}

func TestValidateDetectsOverflow(t *testing.T) {
	res, err := Compute([]float64{1.5, 1.0, 2.0}, 0.02, objective.SquaredError(0.25))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	res.Widths[1] += 0.01
	if err := res.Validate(); err == nil {
		t.Error("Validate() = nil, want error for overfull row")
	}
}

func TestValidateDetectsGap(t *testing.T) {
	res := Result{
		Margin: 0,
		Rows:   []Row{{Start: 0, End: 1, Height: 1}, {Start: 2, End: 3, Height: 1}},
		Widths: []float64{1, 1, 1},
	}
	if err := res.Validate(); !jerrors.IsInvalidInput(err) {
		t.Errorf("Validate() = %v, want INVALID_INPUT", err)
	}
}
