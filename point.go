package svgpath

import (
	"fmt"
	"math"
)

// Point is a position in the plane. The y axis points down, as in SVG.
type Point struct {
	X float64
	Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (pt Point) String() string {
	return fmt.Sprintf("(%g, %g)", pt.X, pt.Y)
}

// Translate returns pt moved by o.
func (pt Point) Translate(o Vec2) Point {
	return Point{
		X: pt.X + o.X,
		Y: pt.Y + o.Y,
	}
}

func (pt Point) Transform(aff Affine) Point {
	return Point{
		X: aff.N0*pt.X + aff.N2*pt.Y + aff.N4,
		Y: aff.N1*pt.X + aff.N3*pt.Y + aff.N5,
	}
}

// Sub computes pt−o.
// To move a point by a vector, use Translate.
func (pt Point) Sub(o Point) Vec2 {
	return Vec2{
		X: pt.X - o.X,
		Y: pt.Y - o.Y,
	}
}

// Lerp linearly interpolates between two points.
func (pt Point) Lerp(o Point, t float64) Point {
	return Point(Vec2(pt).Lerp(Vec2(o), t))
}

// Midpoint returns the midpoint of two points.
func (pt Point) Midpoint(o Point) Point {
	return Point{
		X: 0.5 * (pt.X + o.X),
		Y: 0.5 * (pt.Y + o.Y),
	}
}

// ReflectAbout returns the point mirrored through center, that is 2·center − pt.
// This is how the implicit control point of the S and T commands is derived.
func (pt Point) ReflectAbout(center Point) Point {
	return Point{
		X: 2*center.X - pt.X,
		Y: 2*center.Y - pt.Y,
	}
}

// Distance returns the euclidean distance between two points.
func (pt Point) Distance(o Point) float64 {
	x := pt.X - o.X
	y := pt.Y - o.Y
	return math.Hypot(x, y)
}

// DistanceSquared returns the squared euclidean distance between two points.
func (pt Point) DistanceSquared(o Point) float64 {
	x := pt.X - o.X
	y := pt.Y - o.Y
	return x*x + y*y
}

// WithX returns pt with its x coordinate replaced.
func (pt Point) WithX(x float64) Point {
	pt.X = x
	return pt
}

// WithY returns pt with its y coordinate replaced.
func (pt Point) WithY(y float64) Point {
	pt.Y = y
	return pt
}

// IsInf reports whether at least one of x and y is infinite.
func (pt Point) IsInf() bool {
	return math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0)
}

// IsNaN reports whether at least one of x and y is NaN.
func (pt Point) IsNaN() bool {
	return math.IsNaN(pt.X) || math.IsNaN(pt.Y)
}

// isFinite reports whether both coordinates are neither infinite nor NaN.
func (pt Point) isFinite() bool {
	return !pt.IsInf() && !pt.IsNaN()
}
