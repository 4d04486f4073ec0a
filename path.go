package svgpath

import (
	"io"
	"iter"
	"slices"
	"strings"
)

// record is one link of a path. Links refer to their predecessor by index into
// the path's arena; the start point of a segment is the end point of its
// predecessor.
type record struct {
	kind Kind
	prev int32
	end  Point
	c1   Point
	c2   Point
	arc  Arc
}

func recordOf(seg Segment, prev int32) record {
	r := record{
		kind: seg.Kind,
		prev: prev,
		end:  seg.End,
		c1:   seg.C1,
		c2:   seg.C2,
	}
	if seg.Kind == ArcKind {
		r.arc = seg.Arc
	}
	return r
}

// Path is an immutable chain of segments, starting with a Move. It is
// represented by its last segment, the tail, and every segment links to its
// predecessor.
//
// The zero value is the empty path. Paths are created by [Builder] and
// [Parse], and by the operations on other paths. They are safe for concurrent
// use.
type Path struct {
	recs []record
}

// pathFromSegments links segs into a path. A leading Move is inserted if segs
// does not start with one.
func pathFromSegments(segs []Segment) Path {
	if len(segs) == 0 {
		return Path{}
	}
	recs := make([]record, 0, len(segs)+1)
	if segs[0].Kind != MoveKind {
		recs = append(recs, recordOf(MoveSegment(segs[0].Start), -1))
	}
	for _, seg := range segs {
		recs = append(recs, recordOf(seg, int32(len(recs))-1))
	}
	return Path{recs: recs}
}

func (p Path) tail() int32 {
	return int32(len(p.recs)) - 1
}

func (p Path) segment(i int32) Segment {
	r := &p.recs[i]
	start := r.end
	if r.kind != MoveKind && r.prev >= 0 {
		start = p.recs[r.prev].end
	}
	seg := Segment{
		Kind:  r.kind,
		Start: start,
		End:   r.end,
		C1:    r.c1,
		C2:    r.c2,
	}
	if r.kind == ArcKind {
		seg.Arc = r.arc
	}
	return seg
}

// chain returns the arena indices of the path's segments, from the tail back
// to the first Move.
func (p Path) chain() []int32 {
	if p.IsEmpty() {
		return nil
	}
	out := make([]int32, 0, len(p.recs))
	for i := p.tail(); i >= 0; i = p.recs[i].prev {
		out = append(out, i)
	}
	return out
}

// IsEmpty reports whether the path has no segments.
func (p Path) IsEmpty() bool {
	return len(p.recs) == 0
}

// Len returns the number of segments, Moves included.
func (p Path) Len() int {
	return len(p.chain())
}

// Tail returns the last segment.
func (p Path) Tail() (Segment, bool) {
	if p.IsEmpty() {
		return Segment{}, false
	}
	return p.segment(p.tail()), true
}

// First returns the first segment, which is always a Move.
func (p Path) First() (Segment, bool) {
	if p.IsEmpty() {
		return Segment{}, false
	}
	i := p.tail()
	for p.recs[i].prev >= 0 {
		i = p.recs[i].prev
	}
	return p.segment(i), true
}

// Prev returns the path without its tail. It shares storage with p and costs
// O(1).
func (p Path) Prev() Path {
	if p.IsEmpty() {
		return Path{}
	}
	prev := p.recs[p.tail()].prev
	if prev < 0 {
		return Path{}
	}
	return Path{recs: p.recs[: prev+1 : prev+1]}
}

// CurrentPoint returns the end point of the tail.
func (p Path) CurrentPoint() (Point, bool) {
	if p.IsEmpty() {
		return Point{}, false
	}
	return p.recs[p.tail()].end, true
}

// Backward iterates over the segments from the tail to the first Move.
func (p Path) Backward() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		if p.IsEmpty() {
			return
		}
		for i := p.tail(); i >= 0; i = p.recs[i].prev {
			if !yield(p.segment(i)) {
				return
			}
		}
	}
}

// Segments iterates over the segments from the first Move to the tail.
func (p Path) Segments() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for _, i := range slices.Backward(p.chain()) {
			if !yield(p.segment(i)) {
				return
			}
		}
	}
}

// Subpaths iterates over the subpaths of p, each starting with its Move.
func (p Path) Subpaths() iter.Seq[Path] {
	return func(yield func(Path) bool) {
		var cur []Segment
		for seg := range p.Segments() {
			if seg.Kind == MoveKind && len(cur) > 0 {
				if !yield(pathFromSegments(cur)) {
					return
				}
				cur = nil
			}
			cur = append(cur, seg)
		}
		if len(cur) > 0 {
			yield(pathFromSegments(cur))
		}
	}
}

// BoundingBox returns the union of the bounding boxes of the drawing segments.
// Moves only contribute if the path draws nothing. The empty path has the zero
// rectangle as its bounding box.
func (p Path) BoundingBox() Rect {
	bbox := emptyRect
	moves := emptyRect
	for seg := range p.Segments() {
		if seg.Kind == MoveKind {
			moves = moves.UnionPoint(seg.End)
			continue
		}
		bbox = bbox.Union(seg.BoundingBox())
	}
	if bbox.isEmpty() {
		bbox = moves
	}
	if bbox.isEmpty() {
		return Rect{}
	}
	return bbox
}

// Length returns the total arc length of the path.
func (p Path) Length() float64 {
	var l float64
	for seg := range p.Segments() {
		l += seg.Length()
	}
	return l
}

// measured is a path's segments in order together with their lengths.
type measured struct {
	segs  []Segment
	lens  []float64
	total float64
}

func (p Path) measure() measured {
	var m measured
	for seg := range p.Segments() {
		l := seg.Length()
		m.segs = append(m.segs, seg)
		m.lens = append(m.lens, l)
		m.total += l
	}
	return m
}

// locate finds the segment containing the point at arc length l, which must
// be within [0, total].
func (m measured) locate(l float64) (int, float64) {
	var acc float64
	for i, seg := range m.segs {
		if m.lens[i] > 0 && l <= acc+m.lens[i] {
			return i, seg.tAtLength(l - acc)
		}
		acc += m.lens[i]
	}
	return len(m.segs) - 1, 1
}

// normLength resolves l against the total length. Negative lengths count from
// the end. With clamp set, out-of-range lengths are clamped instead of
// rejected.
func (m measured) normLength(l float64, clamp bool) (float64, bool) {
	if len(m.segs) == 0 {
		return 0, false
	}
	if l < 0 {
		if clamp {
			l = 0
		} else if l += m.total; l < 0 {
			return 0, false
		}
	}
	if l > m.total {
		if !clamp {
			return 0, false
		}
		l = m.total
	}
	return l, true
}

// SegmentAtLength returns the segment at arc length l from the start of the
// path, and the segment parameter at which that length is reached. Negative
// lengths count back from the end of the path. If clamp is set, lengths
// beyond either end select the end; otherwise they are rejected.
func (p Path) SegmentAtLength(l float64, clamp bool) (Segment, float64, bool) {
	m := p.measure()
	l, ok := m.normLength(l, clamp)
	if !ok {
		return Segment{}, 0, false
	}
	i, t := m.locate(l)
	return m.segs[i], t, true
}

// SegmentAt is like [Path.SegmentAtLength], with the position given as a
// fraction of the total length.
func (p Path) SegmentAt(frac float64) (Segment, float64, bool) {
	m := p.measure()
	if len(m.segs) == 0 {
		return Segment{}, 0, false
	}
	i, t := m.locate(clamp01(frac) * m.total)
	return m.segs[i], t, true
}

// PointAtLength returns the point at arc length l. See [Path.SegmentAtLength]
// for the treatment of out-of-range lengths.
func (p Path) PointAtLength(l float64, clamp bool) (Point, bool) {
	seg, t, ok := p.SegmentAtLength(l, clamp)
	if !ok {
		return Point{}, false
	}
	return seg.PointAt(t), true
}

// PointAt returns the point at the given fraction of the path's length.
func (p Path) PointAt(frac float64) Point {
	seg, t, ok := p.SegmentAt(frac)
	if !ok {
		return Point{}
	}
	return seg.PointAt(t)
}

// SlopeAt returns the derivative of the segment at the given fraction of the
// path's length.
func (p Path) SlopeAt(frac float64) Vec2 {
	seg, t, ok := p.SegmentAt(frac)
	if !ok {
		return Vec2{}
	}
	return seg.SlopeAt(t)
}

// TangentAt returns the unit tangent at the given fraction of the path's
// length.
func (p Path) TangentAt(frac float64) Vec2 {
	return p.SlopeAt(frac).Normalize()
}

// openSegment turns a Close into a Line, for segments that end up in a
// subpath other than the one whose Move they close.
func openSegment(seg Segment) Segment {
	if seg.Kind == CloseKind {
		seg.Kind = LineKind
	}
	return seg
}

// SplitTail splits the tail segment at t. The first path is p with its tail
// replaced by the part before t; it keeps all preceding segments. The second
// path is a Move to the split point followed by the rest of the tail.
func (p Path) SplitTail(t float64) (Path, Path) {
	tail, ok := p.Tail()
	if !ok {
		return Path{}, Path{}
	}
	a, b := tail.SplitAt(t)
	n := p.tail()
	recs := slices.Clone(p.recs[:n])
	recs = append(recs, recordOf(a, p.recs[n].prev))
	after := []Segment{MoveSegment(b.Start)}
	if b.Kind != MoveKind {
		after = append(after, openSegment(b))
	}
	return Path{recs: recs}, pathFromSegments(after)
}

// SplitAt splits the path at the given fraction of its length. The second path
// starts with a Move to the split point. Close segments that are separated
// from their Move become Lines.
func (p Path) SplitAt(frac float64) (Path, Path) {
	m := p.measure()
	if len(m.segs) == 0 {
		return Path{}, Path{}
	}
	i, t := m.locate(clamp01(frac) * m.total)
	a, b := m.segs[i].SplitAt(t)

	before := slices.Clone(m.segs[:i])
	before = append(before, a)
	after := []Segment{MoveSegment(b.Start)}
	if b.Kind != MoveKind {
		after = append(after, openSegment(b))
	}
	open := true
	for _, seg := range m.segs[i+1:] {
		if seg.Kind == MoveKind {
			open = false
		}
		if open {
			seg = openSegment(seg)
		}
		after = append(after, seg)
	}
	return pathFromSegments(before), pathFromSegments(after)
}

// CutAt returns one part of the path. A non-negative frac selects the part
// before that fraction of the length; a negative frac selects the part after
// 1+frac.
func (p Path) CutAt(frac float64) Path {
	if frac < 0 {
		_, after := p.SplitAt(1 + frac)
		return after
	}
	before, _ := p.SplitAt(frac)
	return before
}

// CropAt returns the part of the path between two fractions of its length.
// The fractions wrap around and may be given in either order, like the
// parameters of [Segment.CropAt]. The result is false if the range is empty.
func (p Path) CropAt(frac0, frac1 float64) (Path, bool) {
	if p.IsEmpty() {
		return Path{}, false
	}
	frac0, frac1 = wrapT(frac0), wrapT(frac1)
	if frac0 > frac1 {
		frac0, frac1 = frac1, frac0
	}
	switch {
	case frac0 == frac1:
		return Path{}, false
	case frac0 <= 0 && frac1 >= 1:
		return p, true
	case frac0 <= 0:
		return p.CutAt(frac1), true
	case frac1 >= 1:
		return p.CutAt(frac0 - 1), true
	default:
		return p.CutAt(frac0 - 1).CutAt((frac1 - frac0) / (1 - frac0)), true
	}
}

// Transform returns the image of the path under aff.
func (p Path) Transform(aff Affine) Path {
	if p.IsEmpty() {
		return Path{}
	}
	recs := make([]record, len(p.recs))
	for i := range p.recs {
		recs[i] = recordOf(p.segment(int32(i)).Transform(aff), p.recs[i].prev)
	}
	return Path{recs: recs}
}

// Reverse returns the path traversed backwards: subpaths appear in reverse
// order and each is traced from its end to its start. Closed subpaths stay
// closed.
func (p Path) Reverse() Path {
	var subpaths [][]Segment
	var cur []Segment
	for seg := range p.Segments() {
		if seg.Kind == MoveKind && len(cur) > 0 {
			subpaths = append(subpaths, cur)
			cur = nil
		}
		cur = append(cur, seg)
	}
	if len(cur) > 0 {
		subpaths = append(subpaths, cur)
	}

	out := make([]Segment, 0, len(p.recs)+len(subpaths))
	for _, sub := range slices.Backward(subpaths) {
		out = append(out, reverseSubpath(sub)...)
	}
	return pathFromSegments(out)
}

// reverseSubpath reverses a subpath that starts with a Move. A closed
// subpath starts at its last drawn point and its Close becomes the closing
// edge of the reversed subpath.
func reverseSubpath(segs []Segment) []Segment {
	last := segs[len(segs)-1]
	closed := last.Kind == CloseKind
	body := segs[1:]
	if closed {
		body = body[:len(body)-1]
	}
	start := segs[0].End
	if len(body) > 0 {
		start = body[len(body)-1].End
	}

	out := make([]Segment, 0, len(segs))
	out = append(out, MoveSegment(start))
	for _, seg := range slices.Backward(body) {
		out = append(out, seg.Reverse())
	}
	if closed {
		out = append(out, Segment{Kind: CloseKind, Start: out[len(out)-1].End, End: start})
	}
	return out
}

// ToCurves returns the path with every arc replaced by cubic Béziers. Arcs
// without sweep become Lines.
func (p Path) ToCurves() Path {
	out := make([]Segment, 0, len(p.recs))
	for seg := range p.Segments() {
		if seg.Kind != ArcKind {
			out = append(out, seg)
			continue
		}
		cubics := seg.Arc.Cubics()
		if len(cubics) == 0 {
			out = append(out, LineSegment(seg.Start, seg.End))
			continue
		}
		for _, c := range cubics {
			out = append(out, CubicSegment(c))
		}
	}
	return pathFromSegments(out)
}

// SVG returns the path as SVG path data.
func (p Path) SVG(opts SVGOptions) string {
	sb := &strings.Builder{}
	p.WriteSVG(sb, opts)
	return sb.String()
}

// WriteSVG writes the path as SVG path data to w.
func (p Path) WriteSVG(w io.Writer, opts SVGOptions) error {
	return WriteSVG(w, p.Segments(), opts)
}

// String returns the path as SVG path data with absolute coordinates.
func (p Path) String() string {
	return p.SVG(SVGOptions{})
}
