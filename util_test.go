package svgpath

import (
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// diff reports differences between want and got. The cached trigonometry of
// arcs is not compared.
func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	opts = append(opts, cmpopts.IgnoreUnexported(Arc{}))
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// approx compares floats, and structs containing them, with an absolute
// tolerance.
func approx(margin float64) cmp.Option {
	return cmpopts.EquateApprox(0, margin)
}

func assertNear(t *testing.T, p0 Point, p1 Point, epsilon float64) {
	t.Helper()
	if d := p1.Sub(p0).Hypot(); d > epsilon {
		t.Fatalf("got %s, expected %s", p0, p1)
	}
}

func assertNearFloat(t *testing.T, got, want, epsilon float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("got %v, want %v (±%g)", got, want, epsilon)
	}
}

func kinds(p Path) []Kind {
	var out []Kind
	for seg := range p.Segments() {
		out = append(out, seg.Kind)
	}
	return out
}

func segments(p Path) []Segment {
	return slices.Collect(p.Segments())
}
