package svgpath

import (
	"math"
	"strings"
	"testing"
)

func TestKindString(t *testing.T) {
	for k, want := range map[Kind]string{
		MoveKind:  "Move",
		LineKind:  "Line",
		CloseKind: "Close",
		QuadKind:  "Quad",
		CubicKind: "Cubic",
		ArcKind:   "Arc",
		Kind(42):  "Kind(42)",
	} {
		if got := k.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}

func TestSegmentLine(t *testing.T) {
	seg := LineSegment(Pt(0, 0), Pt(10, 0))
	diff(t, Pt(2.5, 0), seg.PointAt(0.25))
	diff(t, Pt(10, 0), seg.PointAt(2))
	diff(t, Vec(10, 0), seg.SlopeAt(0.5))
	diff(t, Vec(1, 0), seg.TangentAt(0.5))
	diff(t, Rect{0, 0, 10, 0}, seg.BoundingBox())
	assertNearFloat(t, seg.Length(), 10, 0)
	assertNearFloat(t, seg.LengthAt(0.3), 3, 1e-12)
	if got, want := seg.String(), "M0,0 L10,0"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSegmentMove(t *testing.T) {
	seg := MoveSegment(Pt(3, 4))
	if seg.IsDrawing() {
		t.Error("a Move should not draw")
	}
	diff(t, Vec2{}, seg.SlopeAt(0.5))
	diff(t, Vec2{}, seg.TangentAt(0.5))
	diff(t, Rect{3, 4, 3, 4}, seg.BoundingBox())
	assertNearFloat(t, seg.Length(), 0, 0)
	if n := len(seg.Cubics()); n != 0 {
		t.Errorf("got %d cubics, want 0", n)
	}
	a, b := seg.SplitAt(0.5)
	diff(t, seg, a)
	diff(t, seg, b)
}

func TestSegmentPointAtEnds(t *testing.T) {
	segs := []Segment{
		LineSegment(Pt(0.1, 0.2), Pt(0.7, 0.3)),
		QuadSegment(QuadBez{Pt(0.1, 0.2), Pt(5, 5), Pt(0.7, 0.3)}),
		CubicSegment(CubicBez{Pt(0.1, 0.2), Pt(5, 5), Pt(-3, 2), Pt(0.7, 0.3)}),
		ArcSegment(mustArc(t, Pt(0.1, 0.2), 3, 1, 17, true, false, Pt(0.7, 0.3))),
	}
	for _, seg := range segs {
		if got := seg.PointAt(0); got != seg.Start {
			t.Errorf("%v: got start %s, want %s", seg.Kind, got, seg.Start)
		}
		if got := seg.PointAt(1); got != seg.End {
			t.Errorf("%v: got end %s, want %s", seg.Kind, got, seg.End)
		}
	}
}

func TestSegmentSplitAt(t *testing.T) {
	segs := []Segment{
		LineSegment(Pt(0, 0), Pt(10, 0)),
		QuadSegment(QuadBez{Pt(0, 0), Pt(5, 10), Pt(10, 0)}),
		CubicSegment(CubicBez{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)}),
		ArcSegment(mustArc(t, Pt(0, 0), 5, 5, 0, false, true, Pt(10, 0))),
	}
	for _, seg := range segs {
		t.Run(seg.Kind.String(), func(t *testing.T) {
			a, b := seg.SplitAt(0.3)
			if a.Kind != seg.Kind || b.Kind != seg.Kind {
				t.Errorf("got kinds %v and %v", a.Kind, b.Kind)
			}
			diff(t, seg.Start, a.Start)
			diff(t, seg.End, b.End)
			diff(t, a.End, b.Start)
			assertNear(t, a.End, seg.PointAt(0.3), 1e-9)
			assertNear(t, a.PointAt(0.5), seg.PointAt(0.15), 1e-9)
			assertNear(t, b.PointAt(0.5), seg.PointAt(0.65), 1e-9)
		})
	}
}

func TestSegmentSplitBoundingBox(t *testing.T) {
	segs := []Segment{
		QuadSegment(QuadBez{Pt(0, 0), Pt(5, 10), Pt(10, 0)}),
		CubicSegment(CubicBez{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)}),
		CubicSegment(CubicBez{Pt(0.1, 0.2), Pt(5, 5), Pt(-3, 2), Pt(0.7, 0.3)}),
		ArcSegment(mustArc(t, Pt(0, 0), 5, 5, 0, false, true, Pt(10, 0))),
		ArcSegment(mustArc(t, Pt(0.1, 0.2), 3, 1, 17, true, false, Pt(0.7, 0.3))),
	}
	for _, seg := range segs {
		for _, ts := range []float64{0.3, 0.5, 0.77} {
			a, b := seg.SplitAt(ts)
			diff(t, seg.BoundingBox(), a.BoundingBox().Union(b.BoundingBox()), approx(1e-9))
		}
	}
}

func TestSegmentSplitClose(t *testing.T) {
	seg := Segment{Kind: CloseKind, Start: Pt(10, 10), End: Pt(0, 0)}
	a, b := seg.SplitAt(0.5)
	diff(t, LineSegment(Pt(10, 10), Pt(5, 5)), a)
	diff(t, Segment{Kind: CloseKind, Start: Pt(5, 5), End: Pt(0, 0)}, b)
}

func TestSegmentCutCrop(t *testing.T) {
	seg := LineSegment(Pt(0, 0), Pt(10, 0))
	tests := []struct {
		name       string
		t0, t1     float64
		start, end Point
		ok         bool
	}{
		{"inner", 0.25, 0.75, Pt(2.5, 0), Pt(7.5, 0), true},
		{"swapped", 0.75, 0.25, Pt(2.5, 0), Pt(7.5, 0), true},
		{"negative", -0.25, 0.5, Pt(5, 0), Pt(7.5, 0), true},
		{"whole number", 2, 0.5, Pt(5, 0), Pt(10, 0), true},
		{"from start", 0, 0.5, Pt(0, 0), Pt(5, 0), true},
		{"everything", 0, 1, Pt(0, 0), Pt(10, 0), true},
		{"empty", 0.5, 0.5, Point{}, Point{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := seg.CropAt(tt.t0, tt.t1)
			if ok != tt.ok {
				t.Fatalf("got ok = %t, want %t", ok, tt.ok)
			}
			if !ok {
				return
			}
			assertNear(t, got.Start, tt.start, 1e-12)
			assertNear(t, got.End, tt.end, 1e-12)
		})
	}

	assertNear(t, seg.CutAt(0.25).End, Pt(2.5, 0), 1e-12)
	got := seg.CutAt(-0.25)
	assertNear(t, got.Start, Pt(7.5, 0), 1e-12)
	diff(t, Pt(10, 0), got.End)
}

func TestSegmentTransform(t *testing.T) {
	aff := Translate(Vec(1, 2)).Mul(Rotate(0.4)).Mul(Scale(2, 3))
	segs := []Segment{
		LineSegment(Pt(0, 0), Pt(10, 0)),
		QuadSegment(QuadBez{Pt(0, 0), Pt(5, 10), Pt(10, 0)}),
		CubicSegment(CubicBez{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)}),
		ArcSegment(mustArc(t, Pt(0, 0), 5, 3, 10, true, true, Pt(8, 1))),
	}
	for _, seg := range segs {
		got := seg.Transform(aff)
		if got.Kind != seg.Kind {
			t.Fatalf("got kind %v, want %v", got.Kind, seg.Kind)
		}
		for _, ts := range []float64{0, 0.2, 0.5, 0.9, 1} {
			assertNear(t, got.PointAt(ts), seg.PointAt(ts).Transform(aff), 1e-6)
		}
	}
}

func TestSegmentTransformCollapsedArc(t *testing.T) {
	buf := captureLog(t)
	seg := ArcSegment(mustArc(t, Pt(0, 0), 5, 5, 0, false, true, Pt(10, 0)))
	got := seg.Transform(Scale(1, 0))
	diff(t, LineSegment(Pt(0, 0), Pt(10, 0)), got)
	if !strings.Contains(buf.String(), "arc degraded to line") {
		t.Errorf("expected collapse to be logged, got: %s", buf.String())
	}
}

func TestSegmentReverse(t *testing.T) {
	segs := []Segment{
		LineSegment(Pt(0, 0), Pt(10, 0)),
		QuadSegment(QuadBez{Pt(0, 0), Pt(5, 10), Pt(10, 0)}),
		CubicSegment(CubicBez{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)}),
		ArcSegment(mustArc(t, Pt(0, 0), 5, 3, 10, true, true, Pt(8, 1))),
	}
	for _, seg := range segs {
		r := seg.Reverse()
		for _, ts := range []float64{0, 0.3, 0.5, 1} {
			assertNear(t, r.PointAt(ts), seg.PointAt(1-ts), 1e-9)
		}
	}

	closeSeg := Segment{Kind: CloseKind, Start: Pt(10, 10), End: Pt(0, 0)}
	diff(t, LineSegment(Pt(0, 0), Pt(10, 10)), closeSeg.Reverse())
}

func TestSegmentLengthAtParameter(t *testing.T) {
	seg := CubicSegment(CubicBez{Pt(0, 0), Pt(0, 100), Pt(100, 100), Pt(100, 0)})
	total := seg.Length()
	for _, frac := range []float64{0.1, 0.5, 0.9} {
		ts := seg.tAtLength(frac * total)
		assertNearFloat(t, seg.LengthAt(ts), frac*total, 1e-6)
	}
	if got := seg.tAtLength(-1); got != 0 {
		t.Errorf("got %v, want 0", got)
	}
	if got := seg.tAtLength(math.Inf(1)); got != 1 {
		t.Errorf("got %v, want 1", got)
	}
}

func TestSegmentCubics(t *testing.T) {
	seg := LineSegment(Pt(0, 0), Pt(9, 3))
	cs := seg.Cubics()
	if len(cs) != 1 {
		t.Fatalf("got %d cubics, want 1", len(cs))
	}
	assertNear(t, cs[0].P1, Pt(3, 1), 1e-12)
	assertNear(t, cs[0].P2, Pt(6, 2), 1e-12)

	q := QuadBez{Pt(0, 0), Pt(3, 6), Pt(6, 0)}
	diff(t, []CubicBez{q.Raise()}, QuadSegment(q).Cubics())
}
