package svgpath

import (
	"fmt"
	"math"
)

// Kind identifies the variant of a [Segment].
type Kind uint8

const (
	// MoveKind starts a subpath. It has no extent.
	MoveKind Kind = iota + 1
	LineKind
	// CloseKind is a straight line back to the point of the subpath's Move.
	CloseKind
	QuadKind
	CubicKind
	ArcKind
)

func (k Kind) String() string {
	switch k {
	case MoveKind:
		return "Move"
	case LineKind:
		return "Line"
	case CloseKind:
		return "Close"
	case QuadKind:
		return "Quad"
	case CubicKind:
		return "Cubic"
	case ArcKind:
		return "Arc"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Segment is one piece of a path.
//
// C1 is the control point of a quadratic, or the first control point of a
// cubic. C2 is the second control point of a cubic. Arc is only meaningful for
// ArcKind; its From and To equal Start and End.
//
// Methods taking a parameter t clamp it to [0, 1].
type Segment struct {
	Kind  Kind
	Start Point
	End   Point
	C1    Point
	C2    Point
	Arc   Arc
}

// MoveSegment returns a Move to pt.
func MoveSegment(pt Point) Segment {
	return Segment{Kind: MoveKind, Start: pt, End: pt}
}

// LineSegment returns a straight line from p0 to p1.
func LineSegment(p0, p1 Point) Segment {
	return Segment{Kind: LineKind, Start: p0, End: p1}
}

// QuadSegment returns the quadratic Bézier q.
func QuadSegment(q QuadBez) Segment {
	return Segment{Kind: QuadKind, Start: q.P0, C1: q.P1, End: q.P2}
}

// CubicSegment returns the cubic Bézier c.
func CubicSegment(c CubicBez) Segment {
	return Segment{Kind: CubicKind, Start: c.P0, C1: c.P1, C2: c.P2, End: c.P3}
}

// ArcSegment returns the elliptical arc a.
func ArcSegment(a Arc) Segment {
	return Segment{Kind: ArcKind, Start: a.From, End: a.To, Arc: a}
}

// Quad returns the quadratic Bézier of a QuadKind segment.
func (seg Segment) Quad() QuadBez {
	return QuadBez{seg.Start, seg.C1, seg.End}
}

// Cubic returns the cubic Bézier tracing the segment, for Line, Close, Quad and
// Cubic segments.
func (seg Segment) Cubic() CubicBez {
	switch seg.Kind {
	case QuadKind:
		return seg.Quad().Raise()
	case CubicKind:
		return CubicBez{seg.Start, seg.C1, seg.C2, seg.End}
	case LineKind, CloseKind:
		return CubicBez{
			seg.Start,
			seg.Start.Lerp(seg.End, 1.0/3.0),
			seg.Start.Lerp(seg.End, 2.0/3.0),
			seg.End,
		}
	default:
		panic(fmt.Sprintf("no cubic for %v segment", seg.Kind))
	}
}

// IsDrawing reports whether the segment contributes to the outline, that is
// whether it is anything but a Move.
func (seg Segment) IsDrawing() bool {
	return seg.Kind != MoveKind
}

// BoundingBox returns the tight axis-aligned bounding box of the segment. The
// box of a Move is the degenerate rectangle at its point.
func (seg Segment) BoundingBox() Rect {
	switch seg.Kind {
	case MoveKind:
		return NewRectFromPoints(seg.End, seg.End)
	case LineKind, CloseKind:
		return NewRectFromPoints(seg.Start, seg.End)
	case QuadKind, CubicKind:
		return seg.Cubic().BoundingBox()
	case ArcKind:
		return seg.Arc.BoundingBox()
	default:
		panic(fmt.Sprintf("unhandled case %v", seg.Kind))
	}
}

// Length returns the arc length of the segment.
func (seg Segment) Length() float64 {
	switch seg.Kind {
	case MoveKind:
		return 0
	case LineKind, CloseKind:
		return seg.Start.Distance(seg.End)
	case QuadKind, CubicKind:
		return seg.Cubic().Length()
	case ArcKind:
		return seg.Arc.Length()
	default:
		panic(fmt.Sprintf("unhandled case %v", seg.Kind))
	}
}

// LengthAt returns the arc length of the segment between 0 and t.
func (seg Segment) LengthAt(t float64) float64 {
	t = clamp01(t)
	switch seg.Kind {
	case MoveKind:
		return 0
	case LineKind, CloseKind:
		return seg.Start.Distance(seg.End) * t
	case QuadKind, CubicKind:
		return seg.Cubic().LengthAt(t)
	case ArcKind:
		return seg.Arc.LengthAt(t)
	default:
		panic(fmt.Sprintf("unhandled case %v", seg.Kind))
	}
}

// tAtLength returns the parameter at which the arc length from the start
// reaches l.
func (seg Segment) tAtLength(l float64) float64 {
	total := seg.Length()
	switch {
	case l <= 0 || total == 0:
		return 0
	case l >= total:
		return 1
	}
	if seg.Kind == LineKind || seg.Kind == CloseKind {
		return l / total
	}
	lo, hi := 0.0, 1.0
	for range 48 {
		mid := 0.5 * (lo + hi)
		if seg.LengthAt(mid) < l {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo < 1e-12 {
			break
		}
	}
	return 0.5 * (lo + hi)
}

// PointAt returns the point at parameter t.
func (seg Segment) PointAt(t float64) Point {
	t = clamp01(t)
	switch seg.Kind {
	case MoveKind:
		return seg.End
	case LineKind, CloseKind:
		switch t {
		case 0:
			return seg.Start
		case 1:
			return seg.End
		}
		return seg.Start.Lerp(seg.End, t)
	case QuadKind, CubicKind:
		switch t {
		case 0:
			return seg.Start
		case 1:
			return seg.End
		}
		return seg.Cubic().Eval(t)
	case ArcKind:
		return seg.Arc.Eval(t)
	default:
		panic(fmt.Sprintf("unhandled case %v", seg.Kind))
	}
}

// SlopeAt returns the derivative of the segment at t. Moves have no direction
// and return the zero vector.
func (seg Segment) SlopeAt(t float64) Vec2 {
	t = clamp01(t)
	switch seg.Kind {
	case MoveKind:
		return Vec2{}
	case LineKind, CloseKind:
		return seg.End.Sub(seg.Start)
	case QuadKind:
		return seg.Quad().Deriv(t)
	case CubicKind:
		return seg.Cubic().Deriv(t)
	case ArcKind:
		return seg.Arc.Deriv(t)
	default:
		panic(fmt.Sprintf("unhandled case %v", seg.Kind))
	}
}

// TangentAt returns the unit tangent at t, or the zero vector where the
// segment has no direction.
func (seg Segment) TangentAt(t float64) Vec2 {
	return seg.SlopeAt(t).Normalize()
}

// SplitAt splits the segment at t. The first half ends, and the second half
// starts, at PointAt(t). Splitting a Close yields a Line followed by a Close.
func (seg Segment) SplitAt(t float64) (Segment, Segment) {
	t = clamp01(t)
	switch seg.Kind {
	case MoveKind:
		return seg, seg
	case LineKind, CloseKind:
		mid := seg.PointAt(t)
		second := seg
		second.Start = mid
		return LineSegment(seg.Start, mid), second
	case QuadKind:
		q0, q1 := seg.Quad().SplitAt(t)
		return QuadSegment(q0), QuadSegment(q1)
	case CubicKind:
		c0, c1 := seg.Cubic().SplitAt(t)
		return CubicSegment(c0), CubicSegment(c1)
	case ArcKind:
		a0, a1 := seg.Arc.SplitAt(t)
		return ArcSegment(a0), ArcSegment(a1)
	default:
		panic(fmt.Sprintf("unhandled case %v", seg.Kind))
	}
}

// CutAt returns one half of the segment. A non-negative t selects the part
// before t; a negative t selects the part after 1+t.
func (seg Segment) CutAt(t float64) Segment {
	if t < 0 {
		_, after := seg.SplitAt(1 + t)
		return after
	}
	before, _ := seg.SplitAt(t)
	return before
}

// CropAt returns the part of the segment between t0 and t1. Parameters outside
// of [0, 1] wrap around, so -0.25 is equivalent to 0.75. The order of t0 and
// t1 does not matter. The result is false if the range is empty.
func (seg Segment) CropAt(t0, t1 float64) (Segment, bool) {
	t0, t1 = wrapT(t0), wrapT(t1)
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	switch {
	case t0 == t1:
		return Segment{}, false
	case t0 <= 0 && t1 >= 1:
		return seg, true
	case t0 <= 0:
		return seg.CutAt(t1), true
	case t1 >= 1:
		return seg.CutAt(t0 - 1), true
	default:
		return seg.CutAt(t0 - 1).CutAt((t1 - t0) / (1 - t0)), true
	}
}

// wrapT maps t into [0, 1]. Negative values count back from 1; positive whole
// numbers map to 1.
func wrapT(t float64) float64 {
	switch {
	case t < 0:
		return 1 + math.Mod(t, 1)
	case t > 1:
		if r := math.Mod(t, 1); r != 0 {
			return r
		}
		return 1
	}
	return t
}

// Transform returns the image of the segment under aff. An arc that the
// transformation collapses becomes a Line between the transformed end points.
func (seg Segment) Transform(aff Affine) Segment {
	out := Segment{
		Kind:  seg.Kind,
		Start: seg.Start.Transform(aff),
		End:   seg.End.Transform(aff),
	}
	switch seg.Kind {
	case QuadKind:
		out.C1 = seg.C1.Transform(aff)
	case CubicKind:
		out.C1 = seg.C1.Transform(aff)
		out.C2 = seg.C2.Transform(aff)
	case ArcKind:
		arc, err := seg.Arc.Transform(aff)
		if err != nil {
			Logger().Debug("arc degraded to line", "err", err)
			out.Kind = LineKind
			return out
		}
		// Keep the exactly transformed end points.
		arc.From, arc.To = out.Start, out.End
		out.Arc = arc
	}
	return out
}

// Reverse returns the segment traversed in the opposite direction. A reversed
// Close is a Line; closing is a property of the surrounding subpath.
func (seg Segment) Reverse() Segment {
	switch seg.Kind {
	case MoveKind:
		return seg
	case LineKind, CloseKind:
		return LineSegment(seg.End, seg.Start)
	case QuadKind:
		return Segment{Kind: QuadKind, Start: seg.End, C1: seg.C1, End: seg.Start}
	case CubicKind:
		return CubicSegment(seg.Cubic().Reverse())
	case ArcKind:
		return ArcSegment(seg.Arc.Reverse())
	default:
		panic(fmt.Sprintf("unhandled case %v", seg.Kind))
	}
}

// Cubics returns cubic Béziers tracing the segment. Moves produce none; arcs
// produce one curve per quarter turn or part thereof.
func (seg Segment) Cubics() []CubicBez {
	switch seg.Kind {
	case MoveKind:
		return nil
	case ArcKind:
		return seg.Arc.Cubics()
	default:
		return []CubicBez{seg.Cubic()}
	}
}

func (seg Segment) String() string {
	if seg.Kind == MoveKind {
		return pathFromSegments([]Segment{seg}).String()
	}
	return pathFromSegments([]Segment{MoveSegment(seg.Start), seg}).String()
}
