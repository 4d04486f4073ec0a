package svgpath

import (
	"math"
	"sort"
)

const (
	// flatnessThreshold is the bound on [CubicBez.flatness] under which a
	// piece is measured by its chord.
	flatnessThreshold = 0.15
	// maxFlattenDepth bounds the recursion of length estimation. At this
	// depth a curve has been split into 65536 pieces.
	maxFlattenDepth = 16
	// extremaEpsilon treats nearly-degenerate derivative polynomials as
	// having lower degree.
	extremaEpsilon = 1e-9
)

// MaxExtrema is the maximum number of extrema that can be reported by
// [CubicBez.Extrema]: two per axis.
const MaxExtrema = 4

type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

func (c CubicBez) IsInf() bool {
	return c.P0.IsInf() || c.P1.IsInf() || c.P2.IsInf() || c.P3.IsInf()
}

func (c CubicBez) IsNaN() bool {
	return c.P0.IsNaN() || c.P1.IsNaN() || c.P2.IsNaN() || c.P3.IsNaN()
}

// Eval evaluates the Bernstein form of the curve at t. Values of t outside of
// [0, 1] extrapolate.
func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(c.P0).Mul(mt * mt * mt)
	b := Vec2(c.P1).Mul(mt * mt * 3.0)
	cc := Vec2(c.P2).Mul(mt * 3.0)
	d := Vec2(c.P3)
	v := a.Add(b.Add(cc.Add(d.Mul(t)).Mul(t)).Mul(t))
	return Point(v)
}

// Differentiate returns the derivative curve.
func (c CubicBez) Differentiate() QuadBez {
	return QuadBez{
		Point(c.P1.Sub(c.P0).Mul(3)),
		Point(c.P2.Sub(c.P1).Mul(3)),
		Point(c.P3.Sub(c.P2).Mul(3)),
	}
}

// Deriv returns the first derivative at t.
//
// Where the analytic derivative vanishes, typically because a control point
// coincides with its end point, the nearest non-degenerate control point
// difference is returned instead. The result is the zero vector only if all
// four points coincide.
func (c CubicBez) Deriv(t float64) Vec2 {
	d := Vec2(c.Differentiate().Eval(t))
	if !d.IsZero() {
		return d
	}
	var fallbacks [3]Vec2
	if t < 0.5 {
		fallbacks = [3]Vec2{c.P2.Sub(c.P0), c.P3.Sub(c.P0), c.P3.Sub(c.P1)}
	} else {
		fallbacks = [3]Vec2{c.P3.Sub(c.P1), c.P3.Sub(c.P0), c.P2.Sub(c.P0)}
	}
	for _, v := range fallbacks {
		if !v.IsZero() {
			return v
		}
	}
	return Vec2{}
}

// SplitAt subdivides the curve at t using de Casteljau's algorithm. Both
// halves share the point Eval(t).
func (c CubicBez) SplitAt(t float64) (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, t)
	p12 := c.P1.Lerp(c.P2, t)
	p23 := c.P2.Lerp(c.P3, t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	pm := p012.Lerp(p123, t)
	return CubicBez{c.P0, p01, p012, pm}, CubicBez{pm, p123, p23, c.P3}
}

// Subdivide subdivides the cubic into halves, using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	pm := c.Eval(0.5)
	return CubicBez{
			c.P0,
			c.P0.Midpoint(c.P1),
			Point(Vec2(c.P0).Add(Vec2(c.P1).Mul(2.0)).Add(Vec2(c.P2)).Mul(0.25)),
			pm,
		},
		CubicBez{
			pm,
			Point(Vec2(c.P1).Add(Vec2(c.P2).Mul(2.0)).Add(Vec2(c.P3)).Mul(0.25)),
			c.P2.Midpoint(c.P3),
			c.P3,
		}
}

// Extrema returns the parameters in (0, 1), sorted, at which the curve's x or y
// derivative is zero.
func (c CubicBez) Extrema() ([MaxExtrema]float64, int) {
	var out [MaxExtrema]float64
	var outN int
	oneCoord := func(d0, d1, d2 float64) {
		// Derivative is 3·(d0·(1−t)² + 2·d1·t(1−t) + d2·t²).
		a := d0 - 2*d1 + d2
		b := 2 * (d1 - d0)
		c := d0
		if math.Abs(a) < extremaEpsilon {
			if math.Abs(b) < extremaEpsilon {
				return
			}
			if t := -c / b; t > 0 && t < 1 {
				out[outN] = t
				outN++
			}
			return
		}
		roots, n := SolveQuadratic(c, b, a)
		for _, t := range roots[:n] {
			if t > 0.0 && t < 1.0 {
				out[outN] = t
				outN++
			}
		}
	}

	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)
	oneCoord(d0.X, d1.X, d2.X)
	oneCoord(d0.Y, d1.Y, d2.Y)
	sort.Float64s(out[:outN])
	return out, outN
}

// BoundingBox returns the tight axis-aligned bounding box of the curve over
// [0, 1].
func (c CubicBez) BoundingBox() Rect {
	bbox := NewRectFromPoints(c.P0, c.P3)
	ex, n := c.Extrema()
	for _, t := range ex[:n] {
		bbox = bbox.UnionPoint(c.Eval(t))
	}
	return bbox
}

// flatness estimates how far the curve deviates from its chord. The value is
// 16 times an upper bound of the squared distance.
func (c CubicBez) flatness() float64 {
	ux := 3*c.P1.X - 2*c.P0.X - c.P3.X
	uy := 3*c.P1.Y - 2*c.P0.Y - c.P3.Y
	vx := 3*c.P2.X - 2*c.P3.X - c.P0.X
	vy := 3*c.P2.Y - 2*c.P3.Y - c.P0.Y
	return max(ux*ux, vx*vx) + max(uy*uy, vy*vy)
}

// Length returns the arc length of the curve, approximated by recursive
// halving until every piece is flat enough to be measured by its chord.
func (c CubicBez) Length() float64 {
	return c.length(0)
}

func (c CubicBez) length(depth int) float64 {
	if c.flatness() <= flatnessThreshold {
		return c.P0.Distance(c.P3)
	}
	if depth >= maxFlattenDepth {
		Logger().Debug("cubic flattening depth exhausted",
			"p0", c.P0, "p3", c.P3, "flatness", c.flatness())
		return c.P0.Distance(c.P1) + c.P1.Distance(c.P2) + c.P2.Distance(c.P3)
	}
	c0, c1 := c.Subdivide()
	return c0.length(depth+1) + c1.length(depth+1)
}

// LengthAt returns the arc length of the curve between 0 and t.
func (c CubicBez) LengthAt(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return c.Length()
	}
	c0, _ := c.SplitAt(t)
	return c0.Length()
}

func (c CubicBez) Transform(aff Affine) CubicBez {
	return CubicBez{
		c.P0.Transform(aff),
		c.P1.Transform(aff),
		c.P2.Transform(aff),
		c.P3.Transform(aff),
	}
}

// Reverse returns the same curve traversed from P3 to P0.
func (c CubicBez) Reverse() CubicBez {
	return CubicBez{c.P3, c.P2, c.P1, c.P0}
}
