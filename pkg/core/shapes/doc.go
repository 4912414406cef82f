// Package shapes generates and composites the translucent shape layers of a
// design.
//
// A layer is one [Shape]: a closed set of variants ([Circle], [Square],
// [Rect], [Poly] and [Line]) produced by [Random] from the general random
// stream. [Composite] draws a number of layers in generation order with
// source-over blending, so later shapes paint over earlier ones.
//
// Filled shapes carry an alpha in [100, 200]. Lines are always stroked at
// full opacity.
package shapes
