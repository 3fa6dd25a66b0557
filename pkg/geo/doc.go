// Package geo provides the 2D geometry primitives the placement engine
// is built on: points, axis-aligned rectangles, circles, and vertex rings,
// plus the intersection, containment, and distance tests between them.
//
// All coordinates are real-world inches in screen orientation: x grows
// right, y grows down. Every function is total - degenerate input (a ring
// with fewer than three vertices, a zero-length segment) produces a
// conservative result instead of panicking, because the engine must stay
// usable mid-edit while the user is still drawing a shape.
//
// Display rounding (eighths of an inch, see [RoundToIncrement]) is
// cosmetic only and never feeds back into the containment or overlap
// tests, which always use unrounded coordinates.
package geo
