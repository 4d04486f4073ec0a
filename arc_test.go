package svgpath

import (
	"errors"
	"math"
	"testing"
)

func mustArc(t *testing.T, from Point, rx, ry, rotation float64, large, sweep bool, to Point) Arc {
	t.Helper()
	a, err := NewArc(from, rx, ry, rotation, large, sweep, to)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestNewArcSemicircle(t *testing.T) {
	a := mustArc(t, Pt(0, 0), 5, 5, 0, false, true, Pt(10, 0))
	diff(t, Pt(5, 0), a.Center, approx(1e-12))
	diff(t, Vec(5, 5), a.Radii)
	assertNearFloat(t, a.StartAngle, math.Pi, 1e-12)
	assertNearFloat(t, a.SweepAngle, math.Pi, 1e-12)
	assertNear(t, a.Eval(0.5), Pt(5, -5), 1e-12)

	a = mustArc(t, Pt(0, 0), 5, 5, 0, false, false, Pt(10, 0))
	assertNearFloat(t, a.SweepAngle, -math.Pi, 1e-12)
	assertNear(t, a.Eval(0.5), Pt(5, 5), 1e-12)
}

func TestNewArcHalfEllipseCenter(t *testing.T) {
	// Radii that are too small are scaled until the end points span a
	// diameter, which puts the center on their midpoint.
	a := mustArc(t, Pt(0, 0), 2, 1, 30, false, true, Pt(7, 3))
	diff(t, Pt(3.5, 1.5), a.Center, approx(1e-12))
	assertNearFloat(t, a.SweepAngle, math.Pi, 1e-9)

	b := mustArc(t, Pt(0, 0), 2, 1, 30, false, false, Pt(7, 3))
	diff(t, Pt(3.5, 1.5), b.Center, approx(1e-12))
	assertNearFloat(t, b.SweepAngle, -math.Pi, 1e-9)
}

func TestNewArcScalesRadii(t *testing.T) {
	a := mustArc(t, Pt(0, 0), 1, 1, 0, false, true, Pt(10, 0))
	diff(t, Vec(5, 5), a.Radii, approx(1e-12))
	diff(t, Pt(5, 0), a.Center, approx(1e-12))

	// Negative radii are used by their absolute value.
	b := mustArc(t, Pt(0, 0), -5, -5, 0, false, true, Pt(10, 0))
	diff(t, a, b, approx(1e-12))
}

func TestNewArcFlags(t *testing.T) {
	from, to := Pt(0, 0), Pt(8, 3)
	for _, large := range []bool{false, true} {
		for _, sweep := range []bool{false, true} {
			a := mustArc(t, from, 10, 5, 30, large, sweep, to)
			assertNear(t, a.pointAtAngle(a.StartAngle), from, 1e-9)
			assertNear(t, a.pointAtAngle(a.StartAngle+a.SweepAngle), to, 1e-9)
			if (a.SweepAngle > 0) != sweep {
				t.Errorf("large=%t sweep=%t: got sweep angle %v", large, sweep, a.SweepAngle)
			}
			if (math.Abs(a.SweepAngle) > math.Pi) != large {
				t.Errorf("large=%t sweep=%t: got sweep angle %v", large, sweep, a.SweepAngle)
			}
		}
	}
}

func TestNewArcErrors(t *testing.T) {
	tests := []struct {
		name string
		rx   float64
		from Point
		to   Point
		want error
	}{
		{"zero radius", 0, Pt(0, 0), Pt(10, 0), ErrDegenerateArc},
		{"same end points", 5, Pt(1, 1), Pt(1, 1), ErrDegenerateArc},
		{"NaN radius", math.NaN(), Pt(0, 0), Pt(10, 0), ErrInvalidArc},
		{"infinite end point", 5, Pt(0, 0), Pt(math.Inf(1), 0), ErrInvalidArc},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewArc(tt.from, tt.rx, 5, 0, false, true, tt.to)
			if !errors.Is(err, tt.want) {
				t.Errorf("got error %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewArcFromCenter(t *testing.T) {
	a := NewArcFromCenter(Pt(0, 0), Vec(1, 1), 0, 0, math.Pi/2)
	diff(t, Pt(1, 0), a.From, approx(1e-12))
	diff(t, Pt(0, 1), a.To, approx(1e-12))
	if !a.Sweep || a.LargeArc {
		t.Errorf("got flags large=%t sweep=%t", a.LargeArc, a.Sweep)
	}

	// The endpoint form describes the same arc.
	b := mustArc(t, a.From, 1, 1, 0, a.LargeArc, a.Sweep, a.To)
	for _, ts := range []float64{0, 0.3, 0.7, 1} {
		assertNear(t, a.Eval(ts), b.Eval(ts), 1e-9)
	}
}

func TestArcBoundingBox(t *testing.T) {
	a := mustArc(t, Pt(0, 0), 5, 5, 0, false, true, Pt(10, 0))
	diff(t, Rect{0, -5, 10, 0}, a.BoundingBox(), approx(1e-12))

	// Three quarters of a rotated ellipse, checked against dense sampling.
	a = mustArc(t, Pt(0, 0), 10, 4, 25, true, false, Pt(6, 6))
	box := a.BoundingBox()
	sampled := NewRectFromPoints(a.From, a.To)
	for i := range 10001 {
		sampled = sampled.UnionPoint(a.Eval(float64(i) / 10000))
	}
	diff(t, sampled, box, approx(1e-4))
}

func TestArcLength(t *testing.T) {
	a := mustArc(t, Pt(0, 0), 5, 5, 0, false, true, Pt(10, 0))
	assertNearFloat(t, a.Length(), 5*math.Pi, 1e-6)
	assertNearFloat(t, a.LengthAt(0.5), 2.5*math.Pi, 1e-6)
	assertNearFloat(t, a.LengthAt(0), 0, 0)

	// Whole ellipse with radii 2 and 1, against Ramanujan's approximation.
	e := NewArcFromCenter(Pt(0, 0), Vec(2, 1), 0, 0, 2*math.Pi)
	h := math.Pow(2-1, 2) / math.Pow(2+1, 2)
	want := math.Pi * 3 * (1 + 3*h/(10+math.Sqrt(4-3*h)))
	assertNearFloat(t, e.Length(), want, 1e-4)
}

func TestArcSplitAt(t *testing.T) {
	a := mustArc(t, Pt(0, 0), 5, 5, 0, false, true, Pt(10, 0))
	a0, a1 := a.SplitAt(0.5)
	diff(t, a.From, a0.From)
	diff(t, a.To, a1.To)
	diff(t, a0.To, a1.From)
	assertNear(t, a0.To, Pt(5, -5), 1e-12)
	if !a0.Sweep || !a1.Sweep || a0.LargeArc || a1.LargeArc {
		t.Errorf("got flags %t/%t and %t/%t", a0.LargeArc, a0.Sweep, a1.LargeArc, a1.Sweep)
	}
	for _, ts := range []float64{0.25, 0.5, 0.75} {
		assertNear(t, a.Eval(ts/2), a0.Eval(ts), 1e-9)
		assertNear(t, a.Eval(0.5+ts/2), a1.Eval(ts), 1e-9)
	}
}

func TestArcCubics(t *testing.T) {
	a := mustArc(t, Pt(0, 0), 5, 5, 0, false, true, Pt(10, 0))
	cs := a.Cubics()
	if len(cs) != 2 {
		t.Fatalf("got %d cubics, want 2", len(cs))
	}
	diff(t, a.From, cs[0].P0)
	diff(t, cs[0].P3, cs[1].P0)
	diff(t, a.To, cs[1].P3)
	for _, c := range cs {
		for i := range 11 {
			p := c.Eval(float64(i) / 10)
			if d := math.Abs(p.Distance(a.Center) - 5); d > 5e-3 {
				t.Errorf("cubic strays %g from the circle", d)
			}
		}
	}

	small := NewArcFromCenter(Pt(0, 0), Vec(1, 1), 0, 0, 0.1)
	if n := len(small.Cubics()); n != 1 {
		t.Errorf("got %d cubics for a small arc, want 1", n)
	}
}

func TestArcTransform(t *testing.T) {
	a := mustArc(t, Pt(0, 0), 5, 5, 0, false, true, Pt(10, 0))

	got, err := a.Transform(Scale(2, 1))
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Vec(10, 5), got.Radii, approx(1e-9))
	assertNear(t, got.Eval(0.5), Pt(10, -5), 1e-9)

	got, err = a.Transform(FlipY)
	if err != nil {
		t.Fatal(err)
	}
	if got.Sweep {
		t.Error("mirroring should reverse the sweep")
	}
	assertNear(t, got.Eval(0.5), Pt(5, 5), 1e-9)

	aff := Affine{0.1, 1.2, 2.3, 3.4, 4.5, 5.6}
	b := mustArc(t, Pt(1, 2), 7, 3, 20, true, true, Pt(6, -1))
	got, err = b.Transform(aff)
	if err != nil {
		t.Fatal(err)
	}
	for i := range 11 {
		ts := float64(i) / 10
		assertNear(t, got.Eval(ts), b.Eval(ts).Transform(aff), 1e-9)
	}

	if _, err := a.Transform(Scale(1, 0)); !errors.Is(err, ErrDegenerateArc) {
		t.Errorf("got error %v, want %v", err, ErrDegenerateArc)
	}
}

func TestArcTransformHalfEllipse(t *testing.T) {
	affs := []Affine{
		{0.1, 1.2, 2.3, 3.4, 4.5, 5.6},
		{1.2, 0.1, 2.3, 3.4, 4.5, 5.6},
	}
	for _, aff := range affs {
		for _, sweep := range []float64{math.Pi - 1e-7, math.Pi, math.Pi + 1e-7, -math.Pi} {
			for _, start := range []float64{0, 0.3, 2} {
				a := NewArcFromCenter(Pt(3, 4), Vec(10, 5), 90, start, sweep)
				got, err := a.Transform(aff)
				if err != nil {
					t.Fatal(err)
				}
				diff(t, a.To.Transform(aff), got.To)
				assertNear(t, got.Center, a.Center.Transform(aff), 1e-9)
				if got.LargeArc != a.LargeArc {
					t.Errorf("large arc flag changed from %t", a.LargeArc)
				}
				for i := range 11 {
					ts := float64(i) / 10
					assertNear(t, got.Eval(ts), a.Eval(ts).Transform(aff), 1e-9)
				}
			}
		}
	}
}

func TestArcReverse(t *testing.T) {
	a := mustArc(t, Pt(1, 2), 7, 3, 20, true, true, Pt(6, -1))
	r := a.Reverse()
	diff(t, a.To, r.From)
	diff(t, a.From, r.To)
	if r.Sweep == a.Sweep || r.LargeArc != a.LargeArc {
		t.Errorf("got flags large=%t sweep=%t", r.LargeArc, r.Sweep)
	}
	for _, ts := range []float64{0, 0.1, 0.5, 0.8, 1} {
		assertNear(t, a.Eval(ts), r.Eval(1-ts), 1e-9)
	}
}
