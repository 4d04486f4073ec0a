package svgpath

import "errors"

var (
	// ErrInvalidArc is returned for arcs with non-finite parameters.
	ErrInvalidArc = errors.New("invalid arc parameters")
	// ErrDegenerateArc is returned when an arc has a zero radius or coinciding
	// end points, or collapses under a transformation. Such an arc is drawn as
	// a straight line.
	ErrDegenerateArc = errors.New("degenerate arc")
	// ErrNegativeRadius is returned by [Builder.Arc] for negative radii.
	ErrNegativeRadius = errors.New("negative radius")
	// ErrNoMove is returned when closing a subpath that was never started.
	ErrNoMove = errors.New("close without a preceding move")
	// ErrEmptyPath is returned by operations that need at least one segment.
	ErrEmptyPath = errors.New("empty path")
)
