// Package objective scores a single justified row by its height.
//
// An [Objective] maps a row height (a fraction of container width) to a
// cost where lower is better. Two reference objectives are provided, both
// built around an ideal height that costs nothing:
//
//   - [SquaredError]: (h - ideal)², symmetric around the ideal.
//   - [PenalizeSmall]: log(ideal/h) below the ideal, h - ideal above it.
//     The cost diverges as rows get very short, so wide and thin rows are
//     discouraged harder than tall ones.
//
// The default ideal height of 0.25 corresponds to roughly three 4:3
// landscape photos per row, ignoring margins.
//
// Objectives are only ever evaluated for positive heights; callers filter
// invalid rows first. Any function of the right shape can be used through
// [Func]; the partition search treats objectives opaquely.
package objective

import (
	"math"
	"sort"

	jerrors "github.com/matzehuels/jigsaw/pkg/errors"
)

// DefaultIdealHeight is the zero-cost row height used by the CLI and API.
const DefaultIdealHeight = 0.25

// Names of the built-in objectives.
const (
	NameSquaredError  = "squared-error"
	NamePenalizeSmall = "penalize-small"
)

// DefaultName is the objective used when none is configured.
const DefaultName = NameSquaredError

// Objective scores a row by its height. Lower is better.
type Objective interface {
	Cost(height float64) float64
}

// Func adapts an ordinary function to the Objective interface.
type Func func(height float64) float64

// Cost calls f(height).
func (f Func) Cost(height float64) float64 { return f(height) }

// SquaredError returns (height - ideal)².
func SquaredError(ideal float64) Func {
	return func(h float64) float64 {
		d := h - ideal
		return d * d
	}
}

// PenalizeSmall returns log(ideal/height) for rows shorter than ideal and
// height - ideal otherwise.
func PenalizeSmall(ideal float64) Func {
	return func(h float64) float64 {
		if h < ideal {
			return math.Log(ideal / h)
		}
		return h - ideal
	}
}

var constructors = map[string]func(ideal float64) Func{
	NameSquaredError:  SquaredError,
	NamePenalizeSmall: PenalizeSmall,
}

// Lookup returns the named built-in objective for the given ideal height.
func Lookup(name string, ideal float64) (Func, error) {
	if err := jerrors.ValidateIdealHeight(ideal); err != nil {
		return nil, err
	}
	ctor, ok := constructors[name]
	if !ok {
		return nil, jerrors.New(jerrors.ErrCodeInvalidInput,
			"unknown objective %q (must be one of: %s, %s)", name, NameSquaredError, NamePenalizeSmall)
	}
	return ctor(ideal), nil
}

// Names returns the built-in objective names in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that name refers to a built-in objective.
func Validate(name string) error {
	if _, ok := constructors[name]; !ok {
		return jerrors.New(jerrors.ErrCodeInvalidInput, "unknown objective %q", name)
	}
	return nil
}
