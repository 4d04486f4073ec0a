package svgpath

import (
	"testing"
)

func TestRectFromPoints(t *testing.T) {
	diff(t, Rect{1, 2, 5, 7}, NewRectFromPoints(Pt(5, 2), Pt(1, 7)))
}

func TestRectUnion(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	diff(t, Rect{-5, 0, 10, 20}, r.Union(Rect{-5, 5, 0, 20}))
	diff(t, Rect{0, -3, 10, 10}, r.UnionPoint(Pt(4, -3)))

	// The empty rectangle is the identity of Union.
	diff(t, r, emptyRect.Union(r))
	if !emptyRect.isEmpty() {
		t.Error("emptyRect is not empty")
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	for _, pt := range []Point{{0, 0}, {10, 10}, {5, 5}} {
		if !r.Contains(pt) {
			t.Errorf("%v does not contain %s", r, pt)
		}
	}
	if r.Contains(Pt(10.5, 5)) {
		t.Errorf("%v contains (10.5, 5)", r)
	}
}
