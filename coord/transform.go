package coord

// Transform maps artwork coordinates (Y down) into machine coordinates (Y up)
// relative to an origin given in artwork space.
type Transform struct {
	Origin Point
}

// NewTransform returns a Transform that flips the Y axis and translates
// by the negated origin.
func NewTransform(origin Point) Transform {
	return Transform{Origin: origin}
}

// Apply converts a single artwork point.
func (t Transform) Apply(p Point) Point {
	p = p.Sub(t.Origin)
	p.Y = -p.Y
	return p
}

// ApplyAll converts a polyline, returning a new slice.
func (t Transform) ApplyAll(points []Point) []Point {
	res := make([]Point, len(points))
	for i, p := range points {
		res[i] = t.Apply(p)
	}
	return res
}
