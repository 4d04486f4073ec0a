package svgpath

import (
	"errors"
	"fmt"
	"slices"
)

// ErrTransformArgs is the cause of a [ParseError] for transform functions
// with the wrong number of arguments.
var ErrTransformArgs = errors.New("wrong number of transform arguments")

// transformArity lists the accepted argument counts of the SVG transform
// functions.
var transformArity = map[string][]int{
	"matrix":    {6},
	"translate": {1, 2},
	"scale":     {1, 2},
	"rotate":    {1, 3},
	"skewX":     {1},
	"skewY":     {1},
}

type transformFunc struct {
	name string
	args []float64
}

// ParseAffine parses an SVG transform list such as
// "translate(10 20) rotate(45 5 5)", or six bare numbers a, b, c, d, e and f
// with the meaning of matrix(a b c d e f). Angles are in degrees.
//
// Malformed input results in an error wrapping a *[ParseError].
func ParseAffine(s string) (Affine, error) {
	sc := scanner{buf: []byte(s)}
	if sc.atNumber() {
		var n [6]float64
		for i := range n {
			var err error
			if n[i], err = sc.number(); err != nil {
				return Affine{}, fmt.Errorf("transform: %w", err)
			}
		}
		if sc.skip(); !sc.eof() {
			return Affine{}, fmt.Errorf("transform: %w", sc.errorf(ErrUnexpectedToken))
		}
		return NewAffine(n), nil
	}

	var fns []transformFunc
	for sc.skip(); !sc.eof(); sc.skip() {
		fn, err := sc.transformFunc()
		if err != nil {
			return Affine{}, fmt.Errorf("transform: %w", err)
		}
		fns = append(fns, fn)
	}
	if len(fns) == 0 {
		return Affine{}, fmt.Errorf("transform: %w", sc.errorf(ErrUnexpectedToken))
	}

	// The last function of the list applies first.
	aff := Identity
	for _, fn := range slices.Backward(fns) {
		aff = fn.then(aff)
	}
	return aff, nil
}

// transformFunc scans one function of a transform list, name(args...).
func (s *scanner) transformFunc() (transformFunc, error) {
	start := s.pos
	for !s.eof() && isLetter(s.peek()) {
		s.pos++
	}
	fn := transformFunc{name: string(s.buf[start:s.pos])}
	counts, ok := transformArity[fn.name]
	if !ok {
		s.pos = start
		return transformFunc{}, s.errorf(ErrUnknownCommand)
	}
	for !s.eof() && isSpace(s.peek()) {
		s.pos++
	}
	if s.eof() || s.peek() != '(' {
		return transformFunc{}, s.errorf(ErrUnexpectedToken)
	}
	s.pos++

	for s.atNumber() {
		f, err := s.number()
		if err != nil {
			return transformFunc{}, err
		}
		fn.args = append(fn.args, f)
	}
	if s.eof() || s.peek() != ')' {
		return transformFunc{}, s.errorf(ErrExpectedNumber)
	}
	if !slices.Contains(counts, len(fn.args)) {
		s.pos = start
		return transformFunc{}, s.errorf(ErrTransformArgs)
	}
	s.pos++
	return fn, nil
}

// then returns aff followed by fn.
func (fn transformFunc) then(aff Affine) Affine {
	a := fn.args
	switch fn.name {
	case "matrix":
		return NewAffine([6]float64(a)).Mul(aff)
	case "translate":
		var ty float64
		if len(a) == 2 {
			ty = a[1]
		}
		return aff.ThenTranslate(Vec(a[0], ty))
	case "scale":
		sy := a[0]
		if len(a) == 2 {
			sy = a[1]
		}
		return aff.ThenScale(a[0], sy)
	case "rotate":
		if len(a) == 1 {
			return aff.ThenRotateDeg(a[0])
		}
		c := Vec(a[1], a[2])
		return aff.ThenTranslate(c.Negate()).ThenRotateDeg(a[0]).ThenTranslate(c)
	case "skewX":
		return Skew(tanDeg(a[0]), 0).Mul(aff)
	case "skewY":
		return Skew(0, tanDeg(a[0])).Mul(aff)
	default:
		panic(fmt.Sprintf("unhandled transform %q", fn.name))
	}
}

func tanDeg(deg float64) float64 {
	sin, cos := sincosDeg(deg)
	return sin / cos
}
