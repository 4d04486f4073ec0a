package svgpath

// QuadBez is a quadratic Bézier curve.
type QuadBez struct {
	P0 Point
	P1 Point
	P2 Point
}

// Raise returns the cubic Bézier that traces exactly the same curve.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		q.P0,
		q.P0.Translate(q.P1.Sub(q.P0).Mul(2.0 / 3.0)),
		q.P2.Translate(q.P1.Sub(q.P2).Mul(2.0 / 3.0)),
		q.P2,
	}
}

func (q QuadBez) IsInf() bool {
	return q.P0.IsInf() || q.P1.IsInf() || q.P2.IsInf()
}

func (q QuadBez) IsNaN() bool {
	return q.P0.IsNaN() || q.P1.IsNaN() || q.P2.IsNaN()
}

func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(q.P0).Mul(mt * mt)
	b := Vec2(q.P1).Mul(mt * 2.0)
	c := Vec2(q.P2).Mul(t)
	d := b.Add(c)
	return Point(a.Add(d.Mul(t)))
}

// Deriv returns the first derivative at t. When the control point coincides
// with an end point, the derivative at that end vanishes; the chord direction
// is returned instead.
func (q QuadBez) Deriv(t float64) Vec2 {
	d := q.P1.Sub(q.P0).Mul(2 * (1 - t)).Add(q.P2.Sub(q.P1).Mul(2 * t))
	if d.IsZero() {
		return q.P2.Sub(q.P0)
	}
	return d
}

// SplitAt subdivides the curve at t using de Casteljau's algorithm.
func (q QuadBez) SplitAt(t float64) (QuadBez, QuadBez) {
	p01 := q.P0.Lerp(q.P1, t)
	p12 := q.P1.Lerp(q.P2, t)
	pm := p01.Lerp(p12, t)
	return QuadBez{q.P0, p01, pm}, QuadBez{pm, p12, q.P2}
}

func (q QuadBez) Transform(aff Affine) QuadBez {
	return QuadBez{
		q.P0.Transform(aff),
		q.P1.Transform(aff),
		q.P2.Transform(aff),
	}
}
