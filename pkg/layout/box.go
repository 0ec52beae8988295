package layout

import "encoding/json"

// Box is the placement of one item in container coordinates. The origin is
// the top-left corner and y grows downward; one unit is the container width.
type Box struct {
	Index  int
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 { return b.Right - b.Left }

// Height returns the vertical extent of the box.
func (b Box) Height() float64 { return b.Bottom - b.Top }

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 { return (b.Left + b.Right) / 2 }

// CenterY returns the vertical center of the box.
func (b Box) CenterY() float64 { return (b.Top + b.Bottom) / 2 }

type jsonBox struct {
	Index  int     `json:"index"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// MarshalJSON encodes the box as {index, x, y, width, height}.
func (b Box) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonBox{
		Index:  b.Index,
		X:      b.Left,
		Y:      b.Top,
		Width:  b.Width(),
		Height: b.Height(),
	})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (b *Box) UnmarshalJSON(data []byte) error {
	var j jsonBox
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*b = Box{Index: j.Index, Left: j.X, Right: j.X + j.Width, Top: j.Y, Bottom: j.Y + j.Height}
	return nil
}

// Boxes places every item, in input order. Items are separated from each
// other and from the container edges by one margin, horizontally and
// vertically.
func (r Result) Boxes() []Box {
	boxes := make([]Box, 0, len(r.Widths))
	y := r.Margin
	for _, row := range r.Rows {
		x := r.Margin
		for i := row.Start; i < row.End; i++ {
			w := r.Widths[i]
			boxes = append(boxes, Box{Index: i, Left: x, Right: x + w, Top: y, Bottom: y + row.Height})
			x += w + r.Margin
		}
		y += row.Height + r.Margin
	}
	return boxes
}

// TotalHeight is the height of the whole grid including outer margins.
func (r Result) TotalHeight() float64 {
	h := r.Margin
	for _, row := range r.Rows {
		h += row.Height + r.Margin
	}
	return h
}
