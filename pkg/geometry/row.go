package geometry

import (
	jerrors "github.com/matzehuels/jigsaw/pkg/errors"
)

// Row is a justified row: a common height and one width per item.
type Row struct {
	Height float64
	Widths []float64
}

// Width returns the total width taken by the row's items, excluding margins.
func (r Row) Width() float64 {
	var sum float64
	for _, w := range r.Widths {
		sum += w
	}
	return sum
}

// Available returns the width left for k items once k+1 margins are taken.
func Available(k int, margin float64) float64 {
	return 1 - float64(k+1)*margin
}

// RowHeight returns the height at which ratios exactly fill the container.
// It fails with INVALID_INPUT for an empty slice and INVALID_ROW when the
// margins leave no positive width.
func RowHeight(ratios []float64, margin float64) (float64, error) {
	if len(ratios) == 0 {
		return 0, jerrors.New(jerrors.ErrCodeInvalidInput, "row must contain at least one item")
	}
	var sum float64
	for _, r := range ratios {
		sum += r
	}
	return height(len(ratios), sum, margin)
}

// Widths returns the width of each item in a row of the given height.
func Widths(ratios []float64, height float64) []float64 {
	widths := make([]float64, len(ratios))
	for i, r := range ratios {
		widths[i] = height * r
	}
	return widths
}

// MakeRow computes the height and item widths for ratios.
func MakeRow(ratios []float64, margin float64) (Row, error) {
	h, err := RowHeight(ratios, margin)
	if err != nil {
		return Row{}, err
	}
	return Row{Height: h, Widths: Widths(ratios, h)}, nil
}

func height(k int, ratioSum, margin float64) (float64, error) {
	avail := Available(k, margin)
	if avail <= 0 {
		return 0, jerrors.New(jerrors.ErrCodeInvalidRow,
			"%d margins of %v leave no room for %d items (available width %v)", k+1, margin, k, avail)
	}
	return avail / ratioSum, nil
}
