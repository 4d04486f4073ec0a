// Package svgpath parses SVG path data and answers geometric questions about
// it: points and tangents, subdivision, bounding boxes, arc length, affine
// transformation and reversal.
//
// # Paths and segments
//
// A [Path] is an immutable chain of [Segment] values. Every segment knows its
// predecessor, and the path is represented by its last segment, the tail.
// [Path.Prev] drops the tail in constant time without copying, and
// [Path.Backward] walks the chain from the tail. [Path.Segments] iterates in
// drawing order.
//
// Segments are a tagged union over six kinds: Moves, which start subpaths,
// straight Lines, Closes, which are lines back to the start of their subpath,
// quadratic and cubic Béziers, and elliptical arcs. All kinds share one
// geometry contract: [Segment.BoundingBox], [Segment.Length],
// [Segment.PointAt], [Segment.SlopeAt], [Segment.SplitAt], [Segment.CropAt],
// [Segment.Transform] and [Segment.Reverse]. Segment methods take a parameter
// t ∈ [0, 1]. Path methods of the same name take a fraction of the path's
// total length instead.
//
// # Building paths
//
// [Parse] reads the SVG path grammar, including relative commands, implicit
// command repetition, the smooth S and T commands, and packed numbers such as
// "M.5.5" and packed arc flags. [Builder] offers the same commands as methods,
// plus a circular arc in the style of the HTML canvas ([Builder.Arc]).
// [WriteSVG] and [Path.SVG] produce path data again.
//
// # Curves and arcs
//
// The numerical kernels are available on their own. [CubicBez] and [QuadBez]
// evaluate, split and measure Béziers. Quadratic segments are evaluated as
// their exact cubic equivalent, see [QuadBez.Raise]. [Arc] converts between
// the endpoint parameterization of path data and the center parameterization
// used for evaluation, following the SVG implementation notes, and
// approximates arcs with cubic Béziers ([Arc.Cubics], [Path.ToCurves]).
//
// Transforming an arc maps its whole ellipse and recovers the new radii and
// rotation from a singular value decomposition. Transformations that mirror
// the plane flip the arc's sweep flag.
//
// # Coordinates
//
// The coordinate system is SVG's: the y axis points down, and positive angles
// turn clockwise on screen. Angles in path data and in [Arc.Rotation] are in
// degrees; all other angles are in radians.
//
// # Literature
//
//   - [SVG 1.1, Implementation notes, Elliptical arc implementation]
//   - [A Primer on Bézier Curves]
//   - [Approximate a circle with cubic Bézier curves] by Spencer Mortensen
//
// [SVG 1.1, Implementation notes, Elliptical arc implementation]: https://www.w3.org/TR/SVG11/implnote.html#ArcImplementationNotes
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/
// [Approximate a circle with cubic Bézier curves]: https://spencermortensen.com/articles/bezier-circle/
package svgpath
