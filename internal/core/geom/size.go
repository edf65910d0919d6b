package geom

// Size represents a 2D dimension in the page coordinate system: X runs
// left-to-right, Y runs top-to-bottom.
type Size struct {
	X Length
	Y Length
}

// NewSize creates a new Size instance with the specified width and height.
func NewSize(w, h Length) Size {
	return Size{X: w, Y: h}
}

// Get returns the component of s along the given physical axis.
func (s Size) Get(axis Axis) Length {
	if axis == Horizontal {
		return s.X
	}
	return s.Y
}

// Set returns a copy of s with the component along axis replaced by v.
func (s Size) Set(axis Axis, v Length) Size {
	if axis == Horizontal {
		s.X = v
	} else {
		s.Y = v
	}
	return s
}

// IsZero checks whether both width and height are zero.
func (s Size) IsZero() bool {
	return s.X == 0 && s.Y == 0
}

// Point is a 2D position in the page coordinate system, measured from the
// top-left corner of the containing frame.
type Point struct {
	X Length
	Y Length
}

// NewPoint creates a new Point at (x, y).
func NewPoint(x, y Length) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// WithX returns a copy of p with the X coordinate replaced.
func (p Point) WithX(x Length) Point {
	p.X = x
	return p
}

// WithY returns a copy of p with the Y coordinate replaced.
func (p Point) WithY(y Length) Point {
	p.Y = y
	return p
}
