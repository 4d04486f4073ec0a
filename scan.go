package svgpath

import (
	"math"
	stdstrconv "strconv"

	"github.com/tdewolff/parse/v2/strconv"
)

// scanner splits path data into commands, numbers and flags. Whitespace and
// commas separate tokens but are otherwise insignificant.
type scanner struct {
	buf []byte
	pos int
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isNumberStart(c byte) bool {
	return isDigit(c) || c == '.' || c == '+' || c == '-'
}

func (s *scanner) skip() {
	for s.pos < len(s.buf) && (isSpace(s.buf[s.pos]) || s.buf[s.pos] == ',') {
		s.pos++
	}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.buf)
}

func (s *scanner) peek() byte {
	return s.buf[s.pos]
}

// atNumber reports whether the next token looks like a number.
func (s *scanner) atNumber() bool {
	s.skip()
	return !s.eof() && isNumberStart(s.peek())
}

// number scans a number. A second decimal point ends a number, so ".5.5" is
// scanned as two numbers.
func (s *scanner) number() (float64, error) {
	s.skip()
	if s.eof() {
		return 0, s.errorf(ErrExpectedNumber)
	}
	f, n := strconv.ParseFloat(s.buf[s.pos:])
	if n == 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, s.errorf(ErrExpectedNumber)
	}
	if lit := s.buf[s.pos : s.pos+n]; significantDigits(lit) > 15 {
		// The fast path can be off by an ulp on long mantissas.
		if g, err := stdstrconv.ParseFloat(string(lit), 64); err == nil {
			f = g
		}
	}
	s.pos += n
	return f, nil
}

// significantDigits counts the mantissa digits of a number literal, not
// counting leading zeros.
func significantDigits(lit []byte) int {
	n := 0
	for _, c := range lit {
		switch {
		case c == 'e' || c == 'E':
			return n
		case c == '0' && n == 0, c < '0' || c > '9':
		default:
			n++
		}
	}
	return n
}

// flag scans an arc flag. Flags are a single digit and need no separator from
// what follows them.
func (s *scanner) flag() (bool, error) {
	s.skip()
	if s.eof() {
		return false, s.errorf(ErrExpectedFlag)
	}
	switch s.peek() {
	case '0':
		s.pos++
		return false, nil
	case '1':
		s.pos++
		return true, nil
	default:
		return false, s.errorf(ErrExpectedFlag)
	}
}

// point scans a coordinate pair, offset by origin.
func (s *scanner) point(origin Point) (Point, error) {
	x, err := s.number()
	if err != nil {
		return Point{}, err
	}
	y, err := s.number()
	if err != nil {
		return Point{}, err
	}
	return Point{X: origin.X + x, Y: origin.Y + y}, nil
}

// token returns the text at the current position up to the next separator.
func (s *scanner) token() string {
	const maxToken = 16
	end := s.pos
	for end < len(s.buf) && end-s.pos < maxToken && !isSpace(s.buf[end]) && s.buf[end] != ',' {
		end++
	}
	return string(s.buf[s.pos:end])
}

func (s *scanner) errorf(err error) *ParseError {
	return &ParseError{
		Offset: s.pos,
		Token:  s.token(),
		Rest:   string(s.buf[s.pos:]),
		Err:    err,
	}
}
