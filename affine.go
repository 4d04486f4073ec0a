package svgpath

import (
	"math"
)

// Affine describes an affine transform via coefficients.
//
// If the coefficients are (a, b, c, d, e, f), then the resulting
// transformation represents this augmented matrix:
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
//
// This is the same order as the arguments of the SVG matrix(a b c d e f)
// transform function. The idea is that (A * B) * v == A * (B * v).
type Affine struct {
	N0, N1, N2, N3, N4, N5 float64
}

// Identity is the identity transform.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// FlipY is a transform that is flipped on the y-axis. Useful for converting
// between y-up and y-down spaces.
var FlipY = Affine{1, 0, 0, -1, 0, 0}

// Scale creates an affine transform representing non-uniform scaling with
// different scale values for x and y
func Scale(x, y float64) Affine {
	return Affine{x, 0, 0, y, 0, 0}
}

// Translate creates an affine transform representing translation.
func Translate(v Vec2) Affine {
	return Affine{1, 0, 0, 1, v.X, v.Y}
}

// Rotate creates an affine transform representing rotation.
//
// The convention for rotation is that a positive angle rotates a
// positive X direction into positive Y. Thus, in a Y-down coordinate
// system (as is common for graphics), it is a clockwise rotation, and
// in Y-up (traditional for math), it is anti-clockwise.
//
// The angle th is expressed in radians.
func Rotate(th float64) Affine {
	sin, cos := math.Sincos(th)
	return Affine{cos, sin, -sin, cos, 0, 0}
}

// RotateDeg is like [Rotate] but takes degrees, the unit used by SVG. Multiples
// of 30° and 45° produce exact sines and cosines.
func RotateDeg(deg float64) Affine {
	sin, cos := sincosDeg(deg)
	return Affine{cos, sin, -sin, cos, 0, 0}
}

// RotateAbout creates an affine transform representing a rotation of th radians
// about center.
//
// See [Rotate] for more info.
func RotateAbout(th float64, center Point) Affine {
	c := Vec2(center)
	return Translate(c).Mul(Rotate(th)).Mul(Translate(c.Negate()))
}

// Skew creates an affine transformation representing a skew.
//
// The x and y parameters represent skew factors for the horizontal and vertical
// directions, respectively. SVG's skewX(α) is Skew(tan α, 0).
func Skew(x, y float64) Affine {
	return Affine{1, y, x, 1, 0, 0}
}

// Coefficients returns the coefficients of the transform.
func (aff Affine) Coefficients() [6]float64 {
	return [6]float64{aff.N0, aff.N1, aff.N2, aff.N3, aff.N4, aff.N5}
}

// NewAffine creates a new affine transformation from an array of coefficients.
// Alternatively, you can initialize the fields of [Affine] manually.
func NewAffine(n [6]float64) Affine {
	return Affine{n[0], n[1], n[2], n[3], n[4], n[5]}
}

// Mul returns the composition aff * o, which applies o first.
func (aff Affine) Mul(o Affine) Affine {
	return Affine{
		aff.N0*o.N0 + aff.N2*o.N1,
		aff.N1*o.N0 + aff.N3*o.N1,
		aff.N0*o.N2 + aff.N2*o.N3,
		aff.N1*o.N2 + aff.N3*o.N3,
		aff.N0*o.N4 + aff.N2*o.N5 + aff.N4,
		aff.N1*o.N4 + aff.N3*o.N5 + aff.N5,
	}
}

// ThenTranslate creates aff followed by a translation of v.
//
// Equivalent to "Translate(v) * aff"
func (aff Affine) ThenTranslate(v Vec2) Affine {
	aff.N4 += v.X
	aff.N5 += v.Y
	return aff
}

// ThenScale creates aff followed by a scale of (x, y).
//
// Equivalent to "Scale(x, y) * aff"
func (aff Affine) ThenScale(x, y float64) Affine {
	return Scale(x, y).Mul(aff)
}

// ThenRotateDeg creates aff followed by a rotation of deg degrees.
//
// Equivalent to "RotateDeg(deg) * aff"
func (aff Affine) ThenRotateDeg(deg float64) Affine {
	return RotateDeg(deg).Mul(aff)
}

// Determinant computes the determinant.
func (aff Affine) Determinant() float64 {
	return aff.N0*aff.N3 - aff.N1*aff.N2
}

// Invert computes the inverse transform.
//
// Produces NaN values when the determinant is zero.
func (aff Affine) Invert() Affine {
	invDet := 1 / aff.Determinant()
	return Affine{
		+invDet * aff.N3,
		-invDet * aff.N1,
		-invDet * aff.N2,
		+invDet * aff.N0,
		+invDet * (aff.N2*aff.N5 - aff.N3*aff.N4),
		+invDet * (aff.N1*aff.N4 - aff.N0*aff.N5),
	}
}

func (aff Affine) IsInf() bool {
	return math.IsInf(aff.N0, 0) ||
		math.IsInf(aff.N1, 0) ||
		math.IsInf(aff.N2, 0) ||
		math.IsInf(aff.N3, 0) ||
		math.IsInf(aff.N4, 0) ||
		math.IsInf(aff.N5, 0)
}

func (aff Affine) IsNaN() bool {
	return math.IsNaN(aff.N0) ||
		math.IsNaN(aff.N1) ||
		math.IsNaN(aff.N2) ||
		math.IsNaN(aff.N3) ||
		math.IsNaN(aff.N4) ||
		math.IsNaN(aff.N5)
}

// Compute the singular value decomposition of the linear transformation (ignoring the
// translation).
//
// All non-degenerate linear transformations can be represented as
//
//  1. a rotation about the origin.
//  2. a scaling along the x and y axes
//  3. another rotation about the origin
//
// composed together. Decomposing a 2x2 matrix in this way is called a "singular value
// decomposition" and is written "U Σ V^T", where U and V^T are orthogonal (rotations) and Σ
// is a diagonal matrix (a scaling).
//
// This is only used to recover ellipse radii and rotation from an affine map of the
// unit circle, so V^T is not computed: rotating a circle about its center yields the
// same circle.
//
// Will return NaNs if the matrix (or equivalently the linear map) is singular.
//
// First part of the return tuple is the scaling, second part is the angle of rotation (in
// radians)
func (aff Affine) svd() (scale Vec2, th float64) {
	a := aff.N0
	a2 := a * a
	b := aff.N1
	b2 := b * b
	c := aff.N2
	c2 := c * c
	d := aff.N3
	d2 := d * d
	ab := a * b
	cd := c * d
	th = 0.5 * math.Atan2(2.0*(ab+cd), a2-b2+c2-d2)
	s1 := a2 + b2 + c2 + d2
	s2 := math.Sqrt(math.Pow(a2-b2+c2-d2, 2) + 4.0*math.Pow(ab+cd, 2))
	return Vec2{
		X: math.Sqrt(0.5 * (s1 + s2)),
		Y: math.Sqrt(max(0.5*(s1-s2), 0)),
	}, th
}

// Translation returns the translation component of this affine transformation.
func (aff Affine) Translation() Vec2 {
	return Vec2{
		X: aff.N4,
		Y: aff.N5,
	}
}

// WithTranslation replaces the translation portion of this affine
// transformation.
func (aff Affine) WithTranslation(v Vec2) Affine {
	aff.N4 = v.X
	aff.N5 = v.Y
	return aff
}

// Decomposition describes an affine transformation as translate · rotate ·
// skewX · scale. Angles are in degrees.
type Decomposition struct {
	TranslateX float64 `yaml:"translateX"`
	TranslateY float64 `yaml:"translateY"`
	Rotation   float64 `yaml:"rotation"`
	ScaleX     float64 `yaml:"scaleX"`
	ScaleY     float64 `yaml:"scaleY"`
	Skew       float64 `yaml:"skew"`
}

// Decompose splits the transformation into translation, rotation, horizontal
// skew and scale. A reflection is reported as a negative ScaleX.
//
// Singular transformations produce a zero scale and leave the remaining
// components at zero where they are undefined.
func (aff Affine) Decompose() Decomposition {
	a, b, c, d := aff.N0, aff.N1, aff.N2, aff.N3

	scaleX := math.Hypot(a, b)
	if scaleX != 0 {
		a /= scaleX
		b /= scaleX
	}
	skew := a*c + b*d
	c -= a * skew
	d -= b * skew
	scaleY := math.Hypot(c, d)
	if scaleY != 0 {
		c /= scaleY
		d /= scaleY
		skew /= scaleY
	}
	if a*d < b*c {
		a, b = -a, -b
		skew = -skew
		scaleX = -scaleX
	}
	return Decomposition{
		TranslateX: aff.N4,
		TranslateY: aff.N5,
		Rotation:   math.Atan2(b, a) * 180 / math.Pi,
		ScaleX:     scaleX,
		ScaleY:     scaleY,
		Skew:       math.Atan(skew) * 180 / math.Pi,
	}
}

// Affine recomposes the decomposition into a transformation.
func (dec Decomposition) Affine() Affine {
	return RotateDeg(dec.Rotation).
		Mul(Skew(tanDeg(dec.Skew), 0)).
		Mul(Scale(dec.ScaleX, dec.ScaleY)).
		WithTranslation(Vec(dec.TranslateX, dec.TranslateY))
}

// sincosDeg returns the sine and cosine of an angle given in degrees. Angles
// that are multiples of 30° or 45° return exact values so that axis-aligned
// arcs and rotations do not pick up rounding noise.
func sincosDeg(deg float64) (sin, cos float64) {
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	const h = 0.5
	s3 := math.Sqrt(3) / 2
	s2 := math.Sqrt2 / 2
	switch r {
	case 0:
		return 0, 1
	case 30:
		return h, s3
	case 45:
		return s2, s2
	case 60:
		return s3, h
	case 90:
		return 1, 0
	case 120:
		return s3, -h
	case 135:
		return s2, -s2
	case 150:
		return h, -s3
	case 180:
		return 0, -1
	case 210:
		return -h, -s3
	case 225:
		return -s2, -s2
	case 240:
		return -s3, -h
	case 270:
		return -1, 0
	case 300:
		return -s3, h
	case 315:
		return -s2, s2
	case 330:
		return -h, s3
	}
	return math.Sincos(deg * math.Pi / 180)
}
