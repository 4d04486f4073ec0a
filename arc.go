package svgpath

import (
	"fmt"
	"math"
)

const (
	arcLengthTolerance = 1e-7
	arcMinDepth        = 3
	arcMaxDepth        = 20
	// arcCenterEpsilon is the value below which the center offset term of the
	// endpoint conversion is rounding noise. Its square root would otherwise
	// move the center of half ellipses.
	arcCenterEpsilon = 1e-12
)

// Arc is an elliptical arc in both of SVG's parameterizations: the endpoint
// form used by path data and the center form used for evaluation.
//
// The zero value is not a valid arc. Use [NewArc] or [NewArcFromCenter].
type Arc struct {
	From Point
	To   Point
	// Radii are the radii after out-of-range correction.
	Radii Vec2
	// Rotation is the x-axis rotation of the ellipse, in degrees.
	Rotation float64
	LargeArc bool
	Sweep    bool

	Center Point
	// StartAngle is the ellipse angle of From, in radians.
	StartAngle float64
	// SweepAngle is the signed angle swept from From to To, in radians. It is
	// positive if and only if Sweep is set.
	SweepAngle float64

	sin, cos float64
}

// NewArc converts SVG endpoint arc parameters to an arc.
//
// Negative radii are used by their absolute value, and radii too small to span
// the end points are scaled up uniformly. A zero radius or coinciding end
// points result in [ErrDegenerateArc]; the SVG rendering rules treat such arcs
// as straight lines. Non-finite input results in [ErrInvalidArc].
func NewArc(from Point, rx, ry, rotation float64, largeArc, sweep bool, to Point) (Arc, error) {
	for _, f := range [...]float64{rx, ry, rotation} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Arc{}, fmt.Errorf("arc from %s to %s: %w", from, to, ErrInvalidArc)
		}
	}
	if !from.isFinite() || !to.isFinite() {
		return Arc{}, fmt.Errorf("arc from %s to %s: %w", from, to, ErrInvalidArc)
	}
	if rx == 0 || ry == 0 {
		return Arc{}, fmt.Errorf("arc with radii %g, %g: %w", rx, ry, ErrDegenerateArc)
	}
	if from == to {
		return Arc{}, fmt.Errorf("arc from %s to itself: %w", from, ErrDegenerateArc)
	}
	rx = math.Abs(rx)
	ry = math.Abs(ry)
	sin, cos := sincosDeg(rotation)

	// Step 1: compute (x1′, y1′), the midpoint-relative start point in the
	// ellipse's own frame.
	dx2 := (from.X - to.X) / 2
	dy2 := (from.Y - to.Y) / 2
	x1p := cos*dx2 + sin*dy2
	y1p := -sin*dx2 + cos*dy2

	// Step 2: ensure the radii are large enough.
	if lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	// Step 3: compute (cx′, cy′).
	rxs, rys := rx*rx, ry*ry
	x1ps, y1ps := x1p*x1p, y1p*y1p
	var coef float64
	if q := (rxs*rys - rxs*y1ps - rys*x1ps) / (rxs*y1ps + rys*x1ps); q > arcCenterEpsilon {
		coef = math.Sqrt(q)
	}
	if largeArc == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx

	// Step 4: compute the center and the angles.
	center := Point{
		X: cos*cxp - sin*cyp + (from.X+to.X)/2,
		Y: sin*cxp + cos*cyp + (from.Y+to.Y)/2,
	}
	u := Vec((x1p-cxp)/rx, (y1p-cyp)/ry)
	v := Vec((-x1p-cxp)/rx, (-y1p-cyp)/ry)
	theta := unitVectorAngle(Vec(1, 0), u)
	delta := unitVectorAngle(u, v)
	if sweep && delta < 0 {
		delta += 2 * math.Pi
	} else if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	}

	return Arc{
		From:       from,
		To:         to,
		Radii:      Vec(rx, ry),
		Rotation:   rotation,
		LargeArc:   largeArc,
		Sweep:      sweep,
		Center:     center,
		StartAngle: theta,
		SweepAngle: delta,
		sin:        sin,
		cos:        cos,
	}, nil
}

// NewArcFromCenter returns the arc of the ellipse with the given center, radii
// and rotation (in degrees), starting at angle start and sweeping by sweep
// radians. The endpoint flags are derived from the sweep.
func NewArcFromCenter(center Point, radii Vec2, rotation, start, sweep float64) Arc {
	sin, cos := sincosDeg(rotation)
	a := Arc{
		Radii:      Vec(math.Abs(radii.X), math.Abs(radii.Y)),
		Rotation:   rotation,
		LargeArc:   math.Abs(sweep) > math.Pi,
		Sweep:      sweep > 0,
		Center:     center,
		StartAngle: start,
		SweepAngle: sweep,
		sin:        sin,
		cos:        cos,
	}
	a.From = a.pointAtAngle(start)
	a.To = a.pointAtAngle(start + sweep)
	return a
}

func unitVectorAngle(u, v Vec2) float64 {
	return math.Atan2(u.Cross(v), u.Dot(v))
}

func (a Arc) pointAtAngle(th float64) Point {
	sinth, costh := math.Sincos(th)
	rx, ry := a.Radii.X, a.Radii.Y
	return Point{
		X: rx*a.cos*costh - ry*a.sin*sinth + a.Center.X,
		Y: rx*a.sin*costh + ry*a.cos*sinth + a.Center.Y,
	}
}

// derivAtAngle is the derivative of pointAtAngle with respect to the angle.
func (a Arc) derivAtAngle(th float64) Vec2 {
	sinth, costh := math.Sincos(th)
	rx, ry := a.Radii.X, a.Radii.Y
	return Vec2{
		X: -rx*a.cos*sinth - ry*a.sin*costh,
		Y: -rx*a.sin*sinth + ry*a.cos*costh,
	}
}

// Eval returns the point at parameter t, which maps linearly to the ellipse
// angle. The end points are returned exactly.
func (a Arc) Eval(t float64) Point {
	switch {
	case t <= 0:
		return a.From
	case t >= 1:
		return a.To
	}
	return a.pointAtAngle(a.StartAngle + a.SweepAngle*t)
}

// Deriv returns the derivative with respect to t.
func (a Arc) Deriv(t float64) Vec2 {
	t = clamp01(t)
	return a.derivAtAngle(a.StartAngle + a.SweepAngle*t).Mul(a.SweepAngle)
}

// Ellipse returns the full ellipse the arc lies on.
func (a Arc) Ellipse() Ellipse {
	return NewEllipse(a.Center, a.Radii, a.Rotation*math.Pi/180)
}

// BoundingBox returns the tight axis-aligned bounding box of the arc.
func (a Arc) BoundingBox() Rect {
	bbox := NewRectFromPoints(a.From, a.To)
	if a.SweepAngle == 0 {
		return bbox
	}

	// Angles at which the ellipse has a vertical (x) or horizontal (y) tangent.
	var xAngle, yAngle float64
	switch {
	case a.sin == 0:
		xAngle, yAngle = 0, math.Pi/2
	case a.cos == 0:
		xAngle, yAngle = math.Pi/2, 0
	default:
		tan := a.sin / a.cos
		ratio := a.Radii.Y / a.Radii.X
		xAngle = math.Atan(-ratio * tan)
		yAngle = math.Atan(ratio / tan)
	}
	for k := -4; k <= 4; k++ {
		for _, base := range [2]float64{xAngle, yAngle} {
			th := base + float64(k)*math.Pi
			if t := (th - a.StartAngle) / a.SweepAngle; t > 0 && t < 1 {
				bbox = bbox.UnionPoint(a.pointAtAngle(th))
			}
		}
	}
	return bbox
}

// Length returns the arc length, computed by bisecting the arc until the
// chords converge.
func (a Arc) Length() float64 {
	return a.lengthRange(a.StartAngle, a.StartAngle+a.SweepAngle, a.From, a.To, 0)
}

func (a Arc) lengthRange(th0, th1 float64, p0, p1 Point, depth int) float64 {
	thm := 0.5 * (th0 + th1)
	pm := a.pointAtAngle(thm)
	chord := p0.Distance(p1)
	halves := p0.Distance(pm) + pm.Distance(p1)
	if depth >= arcMinDepth && (halves-chord <= arcLengthTolerance*halves || depth >= arcMaxDepth) {
		// The chord error shrinks by a factor of four per halving.
		return halves + (halves-chord)/3
	}
	return a.lengthRange(th0, thm, p0, pm, depth+1) +
		a.lengthRange(thm, th1, pm, p1, depth+1)
}

// LengthAt returns the arc length between 0 and t.
func (a Arc) LengthAt(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return a.Length()
	}
	first, _ := a.SplitAt(t)
	return first.Length()
}

// SplitAt splits the arc at t. Both halves lie on the same ellipse and share
// the point Eval(t).
func (a Arc) SplitAt(t float64) (Arc, Arc) {
	t = clamp01(t)
	mid := a.Eval(t)
	d0 := a.SweepAngle * t
	first := NewArcFromCenter(a.Center, a.Radii, a.Rotation, a.StartAngle, d0)
	second := NewArcFromCenter(a.Center, a.Radii, a.Rotation, a.StartAngle+d0, a.SweepAngle-d0)
	first.From, first.To = a.From, mid
	second.From, second.To = mid, a.To
	if d0 == 0 {
		first.Sweep = a.Sweep
	}
	if d0 == a.SweepAngle {
		second.Sweep = a.Sweep
	}
	return first, second
}

// Cubics approximates the arc with cubic Béziers, each spanning at most 90° of
// the ellipse. The last curve ends exactly at To. An arc with zero sweep
// produces no curves.
func (a Arc) Cubics() []CubicBez {
	if a.SweepAngle == 0 {
		return nil
	}
	n := max(int(math.Ceil(math.Abs(a.SweepAngle)/(math.Pi/2)-1e-9)), 1)
	step := a.SweepAngle / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)

	out := make([]CubicBez, 0, n)
	th0 := a.StartAngle
	p0 := a.From
	for i := range n {
		th1 := th0 + step
		p3 := a.To
		if i < n-1 {
			p3 = a.pointAtAngle(th1)
		}
		out = append(out, CubicBez{
			P0: p0,
			P1: p0.Translate(a.derivAtAngle(th0).Mul(k)),
			P2: p3.Translate(a.derivAtAngle(th1).Mul(-k)),
			P3: p3,
		})
		th0 = th1
		p0 = p3
	}
	return out
}

// Transform returns the image of the arc under aff.
//
// The ellipse is mapped as a whole and its new radii and rotation are
// recovered from the singular value decomposition. The end points are
// transformed exactly, and the large arc flag is kept. Transformations that
// mirror the plane reverse the sweep direction. If the transformation
// collapses the arc, [ErrDegenerateArc] is returned.
func (a Arc) Transform(aff Affine) (Arc, error) {
	e := a.Ellipse().Transform(aff)
	radii, rot := e.RadiiRotation()
	if radii.IsNaN() || radii.Y < 1e-12*radii.X || radii.X == 0 {
		return Arc{}, fmt.Errorf("transformed arc with radii %s: %w", radii, ErrDegenerateArc)
	}

	// The new angle parameter differs from the old one by a rotation, or by a
	// reflection if aff mirrors the plane, so the swept angle keeps its size.
	sweep := a.SweepAngle
	if aff.Determinant() < 0 {
		sweep = -sweep
	}
	from := a.From.Transform(aff)
	toUnit := NewEllipse(e.Center(), radii, rot).Affine().Invert()
	start := Vec2(from.Transform(toUnit)).Angle()

	out := NewArcFromCenter(e.Center(), radii, rot*180/math.Pi, start, sweep)
	out.From = from
	out.To = a.To.Transform(aff)
	out.LargeArc = a.LargeArc
	return out, nil
}

// Reverse returns the same arc traversed from To to From.
func (a Arc) Reverse() Arc {
	a.From, a.To = a.To, a.From
	a.Sweep = !a.Sweep
	a.StartAngle += a.SweepAngle
	a.SweepAngle = -a.SweepAngle
	return a
}

func clamp01(t float64) float64 {
	return min(max(t, 0), 1)
}
