package gallery

import (
	"math"
	"strconv"

	jerrors "github.com/matzehuels/jigsaw/pkg/errors"
)

// Item is one gallery entry.
type Item struct {
	ID          string  `json:"id,omitempty" toml:"id"`
	AspectRatio float64 `json:"aspect_ratio,omitempty" toml:"aspect_ratio"`
	Width       float64 `json:"width,omitempty" toml:"width"`
	Height      float64 `json:"height,omitempty" toml:"height"`
}

// Ratio returns the item's width/height ratio. An explicit AspectRatio
// wins over Width and Height.
func (it Item) Ratio() (float64, error) {
	if it.AspectRatio != 0 {
		return it.AspectRatio, nil
	}
	if it.Width == 0 && it.Height == 0 {
		return 0, jerrors.New(jerrors.ErrCodeInvalidInput, "item %q has neither aspect_ratio nor width and height", it.ID)
	}
	if !(it.Width > 0) || !(it.Height > 0) || math.IsInf(it.Width, 0) || math.IsInf(it.Height, 0) {
		return 0, jerrors.New(jerrors.ErrCodeInvalidInput, "item %q has invalid size %vx%v", it.ID, it.Width, it.Height)
	}
	return it.Width / it.Height, nil
}

// Gallery is an ordered list of items.
type Gallery struct {
	Name  string `json:"name,omitempty" toml:"name"`
	Items []Item `json:"items" toml:"items"`
}

// FromRatios builds an anonymous gallery from bare ratios.
func FromRatios(ratios []float64) Gallery {
	g := Gallery{Items: make([]Item, len(ratios))}
	for i, r := range ratios {
		g.Items[i] = Item{AspectRatio: r}
	}
	return g
}

// Len returns the number of items.
func (g Gallery) Len() int { return len(g.Items) }

// AspectRatios returns the ratio of every item in order. The first item
// without a usable ratio is reported by index.
func (g Gallery) AspectRatios() ([]float64, error) {
	ratios := make([]float64, len(g.Items))
	for i, it := range g.Items {
		r, err := it.Ratio()
		if err != nil {
			return nil, jerrors.Wrap(jerrors.ErrCodeInvalidInput, err, "item %d", i)
		}
		ratios[i] = r
	}
	if err := jerrors.ValidateAspectRatios(ratios); err != nil {
		return nil, err
	}
	return ratios, nil
}

// IDs returns item IDs in order, using the 1-based position for items
// without one.
func (g Gallery) IDs() []string {
	ids := make([]string, len(g.Items))
	for i, it := range g.Items {
		ids[i] = it.ID
		if ids[i] == "" {
			ids[i] = strconv.Itoa(i + 1)
		}
	}
	return ids
}
