package webapp

// Rect is a screen-space rectangle. X and Y are the top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NewRect creates a new Rect with the given position and dimensions.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Translate returns a new Rect moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Contains returns true if the point (x, y) is inside the rectangle.
// Points on the left and top edges are inside; points on the right and bottom edges are outside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersects returns true if the two rectangles overlap.
// Touching edges do not count as overlapping. A zero-extent axis overlaps
// when its coordinate lies inside the other rectangle's span.
func (r Rect) Intersects(other Rect) bool {
	return spanOverlaps(r.X, r.Width, other.X, other.Width) &&
		spanOverlaps(r.Y, r.Height, other.Y, other.Height)
}

func spanOverlaps(a, alen, b, blen float64) bool {
	if alen == 0 {
		return a >= b && a < b+blen
	}
	return a < b+blen && a+alen > b
}
