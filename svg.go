package svgpath

import (
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
)

// SVGOptions specifies optional settings for [WriteSVG] and [Path.SVG].
type SVGOptions struct {
	// The maximum precision with which to format coordinates. A value of 0
	// chooses the highest precision necessary to unambiguously represent any
	// given coordinate.
	MaxPrecision int `yaml:"precision"`
	// Relative emits lowercase commands with coordinates relative to the
	// current point.
	Relative bool `yaml:"relative"`
	// Short emits H and V for horizontal and vertical lines.
	Short bool `yaml:"short"`
	// Smooth emits S and T when a control point is the reflection of the
	// previous one.
	Smooth bool `yaml:"smooth"`
}

// format returns the number formatter for the given precision.
func format(maxPrec int) func(float64) string {
	return func(n float64) string {
		if n == 0 {
			// Avoid "-0".
			n = 0
		}
		if maxPrec <= 0 {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
		s := strconv.FormatFloat(n, 'f', maxPrec, 64)
		if strings.IndexByte(s, '.') >= 0 {
			s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
		}
		if s == "-0" {
			s = "0"
		}
		return s
	}
}

// WriteSVG writes a sequence of segments as SVG path data to w.
//
// Segments are expected to be connected, as produced by [Path.Segments]: the
// start point of a segment is only written for Moves.
func WriteSVG(w io.Writer, seq iter.Seq[Segment], opts SVGOptions) error {
	sw := svgWriter{
		w:      w,
		opts:   opts,
		format: format(opts.MaxPrecision),
	}
	var prev Segment
	first := true
	for seg := range seq {
		if sw.err != nil {
			return sw.err
		}
		if !first {
			sw.write(" ")
		}
		first = false
		sw.segment(seg, prev)
		prev = seg
	}
	return sw.err
}

type svgWriter struct {
	w      io.Writer
	opts   SVGOptions
	format func(float64) string
	err    error
}

func (sw *svgWriter) write(s string) {
	if sw.err != nil {
		return
	}
	_, sw.err = io.WriteString(sw.w, s)
}

func (sw *svgWriter) writef(s string, v ...any) {
	if sw.err != nil {
		return
	}
	_, sw.err = fmt.Fprintf(sw.w, s, v...)
}

// pt formats a point, relative to origin if relative output was requested.
func (sw *svgWriter) pt(p, origin Point) string {
	if sw.opts.Relative {
		p = Point(p.Sub(origin))
	}
	return sw.format(p.X) + "," + sw.format(p.Y)
}

// cmd returns the command letter, lowercased for relative output.
func (sw *svgWriter) cmd(c byte) string {
	if sw.opts.Relative {
		c += 'a' - 'A'
	}
	return string(c)
}

func (sw *svgWriter) segment(seg, prev Segment) {
	o := seg.Start
	switch seg.Kind {
	case MoveKind:
		// The first move of a path is absolute either way, relative to the
		// origin.
		if prev.Kind == 0 {
			o = Point{}
		} else {
			o = prev.End
		}
		sw.writef("%s%s", sw.cmd('M'), sw.pt(seg.End, o))
	case LineKind:
		switch {
		case sw.opts.Short && seg.Start.Y == seg.End.Y:
			x := seg.End.X
			if sw.opts.Relative {
				x -= o.X
			}
			sw.writef("%s%s", sw.cmd('H'), sw.format(x))
		case sw.opts.Short && seg.Start.X == seg.End.X:
			y := seg.End.Y
			if sw.opts.Relative {
				y -= o.Y
			}
			sw.writef("%s%s", sw.cmd('V'), sw.format(y))
		default:
			sw.writef("%s%s", sw.cmd('L'), sw.pt(seg.End, o))
		}
	case QuadKind:
		if sw.opts.Smooth && seg.C1 == smoothControl(prev, QuadKind) {
			sw.writef("%s%s", sw.cmd('T'), sw.pt(seg.End, o))
			return
		}
		sw.writef("%s%s %s", sw.cmd('Q'), sw.pt(seg.C1, o), sw.pt(seg.End, o))
	case CubicKind:
		if sw.opts.Smooth && seg.C1 == smoothControl(prev, CubicKind) {
			sw.writef("%s%s %s", sw.cmd('S'), sw.pt(seg.C2, o), sw.pt(seg.End, o))
			return
		}
		sw.writef("%s%s %s %s", sw.cmd('C'),
			sw.pt(seg.C1, o), sw.pt(seg.C2, o), sw.pt(seg.End, o))
	case ArcKind:
		a := seg.Arc
		sw.writef("%s%s,%s %s %s,%s %s", sw.cmd('A'),
			sw.format(a.Radii.X), sw.format(a.Radii.Y), sw.format(a.Rotation),
			flag(a.LargeArc), flag(a.Sweep), sw.pt(seg.End, o))
	case CloseKind:
		sw.write(sw.cmd('Z'))
	default:
		panic(fmt.Sprintf("unhandled case %v", seg.Kind))
	}
}

// smoothControl returns the control point implied by an S (kind CubicKind) or
// T (kind QuadKind) command following prev.
func smoothControl(prev Segment, kind Kind) Point {
	if prev.Kind != kind {
		return prev.End
	}
	if kind == CubicKind {
		return prev.C2.ReflectAbout(prev.End)
	}
	return prev.C1.ReflectAbout(prev.End)
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
