package mandelview

import "math"

// Point is a position in screen space. Mouse positions arrive as floats
// from the window system and are kept that way until a zoom is committed.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// unset marks a selection corner that has not been placed. Any finite
// position is a placement, including negative ones reported while a drag
// leaves the window past its left or top edge.
var unset = Point{X: math.NaN(), Y: math.NaN()}

// IsSet reports whether p holds a real screen position.
func (p Point) IsSet() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y)
}
