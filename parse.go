package svgpath

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnexpectedToken is the cause of a [ParseError] where a command was
	// expected.
	ErrUnexpectedToken = errors.New("command expected")
	// ErrUnknownCommand is the cause of a [ParseError] for letters that are
	// not path commands.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrExpectedNumber is the cause of a [ParseError] where a command is
	// missing arguments.
	ErrExpectedNumber = errors.New("number expected")
	// ErrExpectedFlag is the cause of a [ParseError] for malformed arc flags.
	ErrExpectedFlag = errors.New("arc flag expected")
)

// ParseError describes malformed path data.
type ParseError struct {
	// Offset is the byte offset of the offending token.
	Offset int
	// Token is the offending token, empty at the end of input.
	Token string
	// Rest is the unconsumed input, starting at the offending token.
	Rest string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("path data: offset %d: %v at end of input", e.Offset, e.Err)
	}
	return fmt.Sprintf("path data: offset %d: %v, found %q", e.Offset, e.Err, e.Token)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

const commands = "MmZzLlHhVvCcSsQqTtAa"

// Parse parses SVG path data.
//
// Empty input yields the empty path. Malformed input yields a *[ParseError]
// and no path.
func Parse(d string) (Path, error) {
	p := parser{s: scanner{buf: []byte(d)}}
	if err := p.run(); err != nil {
		Logger().Debug("rejected path data", "err", err)
		return Path{}, err
	}
	return p.b.Path(), nil
}

// MustParse is like [Parse] but panics on malformed input.
func MustParse(d string) Path {
	p, err := Parse(d)
	if err != nil {
		panic(err)
	}
	return p
}

type parser struct {
	s scanner
	b Builder
}

func (p *parser) run() error {
	for {
		p.s.skip()
		if p.s.eof() {
			return nil
		}
		c := p.s.peek()
		if strings.IndexByte(commands, c) < 0 {
			if isNumberStart(c) || !isLetter(c) {
				return p.s.errorf(ErrUnexpectedToken)
			}
			return p.s.errorf(ErrUnknownCommand)
		}
		p.s.pos++
		if err := p.command(c); err != nil {
			return err
		}
	}
}

func isLetter(c byte) bool {
	return 'a' <= c|0x20 && c|0x20 <= 'z'
}

// command parses the arguments of command c. Commands repeat for as long as
// numbers follow.
func (p *parser) command(c byte) error {
	if c == 'Z' || c == 'z' {
		if _, ok := p.b.CurrentPoint(); !ok {
			return nil
		}
		return p.b.Close()
	}

	rel := c >= 'a'
	for first := true; first || p.s.atNumber(); first = false {
		cur, _ := p.b.CurrentPoint()
		origin := Point{}
		if rel {
			origin = cur
		}
		var err error
		switch c | 0x20 {
		case 'm':
			err = p.moveTo(origin, first)
		case 'l':
			err = p.lineTo(origin)
		case 'h':
			err = p.axisTo(cur, origin, true)
		case 'v':
			err = p.axisTo(cur, origin, false)
		case 'c':
			err = p.curveTo(origin)
		case 's':
			err = p.smoothCurveTo(cur, origin)
		case 'q':
			err = p.quadTo(origin)
		case 't':
			err = p.smoothQuadTo(cur, origin)
		case 'a':
			err = p.arcTo(origin)
		default:
			panic("unreachable")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) moveTo(origin Point, first bool) error {
	pt, err := p.s.point(origin)
	if err != nil {
		return err
	}
	if first {
		p.b.MoveTo(pt)
	} else {
		// Coordinate pairs following a move are implicit lines.
		p.b.LineTo(pt)
	}
	return nil
}

func (p *parser) lineTo(origin Point) error {
	pt, err := p.s.point(origin)
	if err != nil {
		return err
	}
	p.b.LineTo(pt)
	return nil
}

func (p *parser) axisTo(cur, origin Point, horizontal bool) error {
	n, err := p.s.number()
	if err != nil {
		return err
	}
	if horizontal {
		p.b.LineTo(cur.WithX(origin.X + n))
	} else {
		p.b.LineTo(cur.WithY(origin.Y + n))
	}
	return nil
}

func (p *parser) curveTo(origin Point) error {
	var pts [3]Point
	for i := range pts {
		var err error
		if pts[i], err = p.s.point(origin); err != nil {
			return err
		}
	}
	p.b.CurveTo(pts[0], pts[1], pts[2])
	return nil
}

// reflected returns the first control point implied by S (kind CubicKind) or
// T (kind QuadKind): the previous segment's last control point mirrored
// through the current point if the previous segment is of the same kind, and
// the current point otherwise.
func (p *parser) reflected(cur Point, kind Kind) Point {
	last, ok := p.b.last()
	if !ok || last.kind != kind {
		return cur
	}
	if kind == CubicKind {
		return last.c2.ReflectAbout(cur)
	}
	return last.c1.ReflectAbout(cur)
}

func (p *parser) smoothCurveTo(cur, origin Point) error {
	c1 := p.reflected(cur, CubicKind)
	c2, err := p.s.point(origin)
	if err != nil {
		return err
	}
	pt, err := p.s.point(origin)
	if err != nil {
		return err
	}
	p.b.CurveTo(c1, c2, pt)
	return nil
}

func (p *parser) quadTo(origin Point) error {
	c, err := p.s.point(origin)
	if err != nil {
		return err
	}
	pt, err := p.s.point(origin)
	if err != nil {
		return err
	}
	p.b.QuadTo(c, pt)
	return nil
}

func (p *parser) smoothQuadTo(cur, origin Point) error {
	c := p.reflected(cur, QuadKind)
	pt, err := p.s.point(origin)
	if err != nil {
		return err
	}
	p.b.QuadTo(c, pt)
	return nil
}

func (p *parser) arcTo(origin Point) error {
	var args [3]float64
	for i := range args {
		var err error
		if args[i], err = p.s.number(); err != nil {
			return err
		}
	}
	large, err := p.s.flag()
	if err != nil {
		return err
	}
	sweep, err := p.s.flag()
	if err != nil {
		return err
	}
	start := p.s.pos
	pt, err := p.s.point(origin)
	if err != nil {
		return err
	}
	if err := p.b.ArcTo(args[0], args[1], args[2], large, sweep, pt); err != nil {
		return &ParseError{
			Offset: start,
			Token:  string(p.s.buf[start:p.s.pos]),
			Rest:   string(p.s.buf[start:]),
			Err:    err,
		}
	}
	return nil
}
