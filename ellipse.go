package svgpath

import "math"

// Ellipse is the image of the unit circle under an affine map.
type Ellipse struct {
	inner Affine
}

// NewEllipse returns the ellipse with the given center, radii, and rotation.
//
// The returned ellipse will be the result of taking a circle, stretching it by
// radii along the x and y axes, then rotating it from the x axis by xRotation
// radians, before finally translating the center to center.
func NewEllipse(center Point, radii Vec2, xRotation float64) Ellipse {
	return Ellipse{
		inner: Translate(Vec2(center)).
			Mul(Rotate(xRotation)).
			Mul(Scale(math.Abs(radii.X), math.Abs(radii.Y))),
	}
}

// Affine returns the map from the unit circle to the ellipse.
func (e Ellipse) Affine() Affine {
	return e.inner
}

// Center returns the center of the ellipse.
func (e Ellipse) Center() Point {
	return Point(e.inner.Translation())
}

// Radii returns the two radii of the ellipse.
//
// The first number is the horizontal radius and the second is the
// vertical radius, before rotation.
func (e Ellipse) Radii() Vec2 {
	radii, _ := e.inner.svd()
	return radii
}

// Rotation returns the ellipse's rotation, in radians.
func (e Ellipse) Rotation() float64 {
	_, rot := e.inner.svd()
	return rot
}

// RadiiRotation returns the radii and the rotation of this ellipse.
//
// This is equivalent to, but more efficient than, using [Ellipse.Radii] and
// [Ellipse.Rotation].
func (e Ellipse) RadiiRotation() (Vec2, float64) {
	return e.inner.svd()
}

// BoundingBox returns the tight bounding box of the whole ellipse.
func (e Ellipse) BoundingBox() Rect {
	// The two radius vectors are the images of (1, 0) and (0, 1), (a, b) and
	// (c, d). See https://www.iquilezles.org/www/articles/ellipses/ellipses.htm.
	aff := e.inner
	rangeX := math.Hypot(aff.N0, aff.N2)
	rangeY := math.Hypot(aff.N1, aff.N3)
	return Rect{
		X0: aff.N4 - rangeX,
		Y0: aff.N5 - rangeY,
		X1: aff.N4 + rangeX,
		Y1: aff.N5 + rangeY,
	}
}

// Transform returns the image of the ellipse under aff.
func (e Ellipse) Transform(aff Affine) Ellipse {
	return Ellipse{
		inner: aff.Mul(e.inner),
	}
}

func (e Ellipse) IsInf() bool {
	return e.inner.IsInf()
}

func (e Ellipse) IsNaN() bool {
	return e.inner.IsNaN()
}
