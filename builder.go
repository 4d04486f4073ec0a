package svgpath

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Builder constructs a [Path] one command at a time, in the manner of an SVG
// path or an HTML canvas.
//
// Drawing without a current point starts at the origin. Drawing after a
// closed subpath starts a new subpath at the closed subpath's start.
//
// The zero value is ready to use. A Builder must not be copied after first
// use, and is not safe for concurrent use.
type Builder struct {
	recs   []record
	closed bool
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// NewBuilderFrom returns a builder that extends p. The path itself is not
// modified.
func NewBuilderFrom(p Path) *Builder {
	b := &Builder{recs: slices.Clip(p.recs)}
	if tail, ok := p.Tail(); ok {
		b.closed = tail.Kind == CloseKind
	}
	return b
}

// Path returns the path built so far. Further use of the builder does not
// affect the returned path.
func (b *Builder) Path() Path {
	return Path{recs: slices.Clip(b.recs)}
}

// Reset discards everything built so far.
func (b *Builder) Reset() {
	*b = Builder{}
}

// CurrentPoint returns the end point of the last segment.
func (b *Builder) CurrentPoint() (Point, bool) {
	if len(b.recs) == 0 {
		return Point{}, false
	}
	return b.recs[len(b.recs)-1].end, true
}

func (b *Builder) last() (record, bool) {
	if len(b.recs) == 0 {
		return record{}, false
	}
	return b.recs[len(b.recs)-1], true
}

func (b *Builder) push(seg Segment) {
	b.recs = append(b.recs, recordOf(seg, int32(len(b.recs))-1))
	b.closed = seg.Kind == CloseKind
}

// begin makes sure that there is an open subpath to draw in and returns the
// current point.
func (b *Builder) begin() Point {
	cur, ok := b.CurrentPoint()
	if !ok || b.closed {
		b.MoveTo(cur)
	}
	return cur
}

// MoveTo starts a new subpath at pt.
func (b *Builder) MoveTo(pt Point) {
	b.push(MoveSegment(pt))
}

// LineTo draws a straight line to pt.
func (b *Builder) LineTo(pt Point) {
	cur := b.begin()
	b.push(LineSegment(cur, pt))
}

// QuadTo draws a quadratic Bézier with control point c to pt.
func (b *Builder) QuadTo(c, pt Point) {
	cur := b.begin()
	b.push(QuadSegment(QuadBez{cur, c, pt}))
}

// CurveTo draws a cubic Bézier with control points c1 and c2 to pt.
func (b *Builder) CurveTo(c1, c2, pt Point) {
	cur := b.begin()
	b.push(CubicSegment(CubicBez{cur, c1, c2, pt}))
}

// ArcTo draws an elliptical arc to pt, with the parameters of the SVG A
// command. The rotation is in degrees.
//
// Arcs with a zero radius or ending at the current point are drawn as lines.
// Non-finite parameters result in [ErrInvalidArc].
func (b *Builder) ArcTo(rx, ry, rotation float64, largeArc, sweep bool, pt Point) error {
	cur, _ := b.CurrentPoint()
	arc, err := NewArc(cur, rx, ry, rotation, largeArc, sweep, pt)
	switch {
	case err == nil:
		b.begin()
		b.push(ArcSegment(arc))
	case errors.Is(err, ErrDegenerateArc):
		Logger().Debug("arc drawn as line", "from", cur, "to", pt, "err", err)
		b.LineTo(pt)
	default:
		return err
	}
	return nil
}

// Arc draws a circular arc around center, in the manner of the HTML canvas
// arc method. Angles are in radians; positive angles turn clockwise in SVG's
// y-down space unless counterclockwise is set.
//
// If there is a current point, a line is drawn from it to the start of the
// arc. Otherwise a new subpath is started there.
func (b *Builder) Arc(center Point, radius, startAngle, endAngle float64, counterclockwise bool) error {
	for _, f := range [...]float64{center.X, center.Y, radius, startAngle, endAngle} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("arc around %s: %w", center, ErrInvalidArc)
		}
	}
	if radius < 0 {
		return fmt.Errorf("arc with radius %g: %w", radius, ErrNegativeRadius)
	}

	const tau = 2 * math.Pi
	sweep := endAngle - startAngle
	if !counterclockwise {
		if sweep >= tau {
			sweep = tau
		} else if sweep = math.Mod(sweep, tau); sweep < 0 {
			sweep += tau
		}
	} else {
		if sweep <= -tau {
			sweep = -tau
		} else if sweep = math.Mod(sweep, tau); sweep > 0 {
			sweep -= tau
		}
	}

	arc := NewArcFromCenter(center, Vec(radius, radius), 0, startAngle, sweep)
	if cur, ok := b.CurrentPoint(); !ok {
		b.MoveTo(arc.From)
	} else if cur != arc.From {
		b.LineTo(arc.From)
	}
	if radius == 0 || sweep == 0 {
		return nil
	}
	b.begin()
	if math.Abs(sweep) == tau {
		// Path data cannot express an arc that ends where it starts.
		arc.To = arc.From
		first, second := arc.SplitAt(0.5)
		b.push(ArcSegment(first))
		b.push(ArcSegment(second))
		return nil
	}
	b.push(ArcSegment(arc))
	return nil
}

// ArcTangentTo draws a circular arc of radius r that is tangent to the line
// from the current point to p1 and to the line from p1 to p2, in the manner
// of the HTML canvas arcTo method. A straight line connects the current point
// to the start of the arc if they differ.
//
// Without a current point, ArcTangentTo moves to p1. If the current point is
// p1 nothing is drawn, and if the three points are collinear or r is zero a
// line to p1 is drawn.
func (b *Builder) ArcTangentTo(p1, p2 Point, r float64) error {
	const eps = 1e-6

	if !p1.isFinite() || !p2.isFinite() || math.IsNaN(r) || math.IsInf(r, 0) {
		return fmt.Errorf("arc tangent at %s: %w", p1, ErrInvalidArc)
	}
	if r < 0 {
		return fmt.Errorf("arc with radius %g: %w", r, ErrNegativeRadius)
	}
	cur, ok := b.CurrentPoint()
	if !ok {
		b.MoveTo(p1)
		return nil
	}

	v01 := cur.Sub(p1)
	v21 := p2.Sub(p1)
	l01_2 := v01.Hypot2()
	if l01_2 <= eps {
		return nil
	}
	if math.Abs(v01.Cross(v21)) <= eps || r == 0 {
		b.LineTo(p1)
		return nil
	}

	l21_2 := v21.Hypot2()
	l20_2 := p2.DistanceSquared(cur)
	l21 := math.Sqrt(l21_2)
	l01 := math.Sqrt(l01_2)
	// Distance from p1 to the tangent points.
	l := r * math.Tan((math.Pi-math.Acos((l21_2+l01_2-l20_2)/(2*l21*l01)))/2)
	t01 := l / l01
	t21 := l / l21

	if math.Abs(t01-1) > eps {
		b.LineTo(p1.Translate(v01.Mul(t01)))
	}
	v20 := p2.Sub(cur)
	sweep := v01.Y*v20.X > v01.X*v20.Y
	return b.ArcTo(r, r, 0, false, sweep, p1.Translate(v21.Mul(t21)))
}

// Close closes the current subpath with a straight line back to its start.
// Closing a subpath that is already closed does nothing. Closing before any
// subpath was started results in [ErrNoMove].
func (b *Builder) Close() error {
	if b.closed {
		return nil
	}
	last, ok := b.last()
	if !ok {
		return ErrNoMove
	}
	i := int32(len(b.recs)) - 1
	for i >= 0 && b.recs[i].kind != MoveKind {
		i = b.recs[i].prev
	}
	if i < 0 {
		return ErrNoMove
	}
	b.push(Segment{Kind: CloseKind, Start: last.end, End: b.recs[i].end})
	return nil
}

// Rect draws a closed rectangle with origin (x, y), width w and height h.
func (b *Builder) Rect(x, y, w, h float64) {
	b.MoveTo(Pt(x, y))
	b.LineTo(Pt(x+w, y))
	b.LineTo(Pt(x+w, y+h))
	b.LineTo(Pt(x, y+h))
	// Cannot fail, the subpath was just started.
	_ = b.Close()
}
