package runtime

import "math"

// Rect is an axis-aligned rectangle in cell coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether the rect covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersection returns the overlap of r and o, or a zero rect.
func (r Rect) Intersection(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.X+r.Width, o.X+o.Width)
	y1 := min(r.Y+r.Height, o.Y+o.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Size is a width/height pair.
type Size struct {
	Width  int
	Height int
}

// Constraints bound the size a widget may take.
type Constraints struct {
	MinWidth, MinHeight int
	MaxWidth, MaxHeight int
}

// Tight returns constraints that only admit size.
func Tight(size Size) Constraints {
	return Constraints{
		MinWidth:  size.Width,
		MinHeight: size.Height,
		MaxWidth:  size.Width,
		MaxHeight: size.Height,
	}
}

// Unbounded returns constraints with no upper limit.
func Unbounded() Constraints {
	return Constraints{MaxWidth: math.MaxInt32, MaxHeight: math.MaxInt32}
}

// Constrain clamps size into the constraints.
func (c Constraints) Constrain(size Size) Size {
	size.Width = min(max(size.Width, c.MinWidth), c.MaxWidth)
	size.Height = min(max(size.Height, c.MinHeight), c.MaxHeight)
	return size
}
