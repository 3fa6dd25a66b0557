// Package footprint decomposes placed furniture into the precise
// axis-aligned primitives the collision validator tests: one rectangle
// for rectangular items, two for L-shaped items, or a circle. The
// right-angle-only rotation rule keeps every rectangle axis-aligned,
// which is what makes the validator's overlap fast paths sound.
package footprint

import (
	"github.com/planwright/planwright/pkg/geo"
	"github.com/planwright/planwright/pkg/shape"
)

// Footprint is the precise collision geometry of one placed entity.
// Rects holds one or two axis-aligned rectangles; circular entities
// carry a circle instead.
type Footprint struct {
	Rects    []geo.Rect
	Circle   geo.Circle
	IsCircle bool
}

// Compute decomposes a shape template at the given position and
// rotation. Position is the world offset of the unrotated shape's
// top-left corner; rotation spins the shape about its own center, so
// the bounding box swaps width and height at 90° and 270°.
func Compute(t shape.Template, pos geo.Point, rot shape.Rotation) Footprint {
	if t.Kind == shape.KindCircle {
		r := t.Radius
		if r < 0 {
			r = 0
		}
		return Footprint{
			IsCircle: true,
			Circle:   geo.Circle{Center: geo.Point{X: pos.X + r, Y: pos.Y + r}, Radius: r},
		}
	}

	center := geo.Point{X: pos.X + t.Width/2, Y: pos.Y + t.Height/2}
	rects := localRects(t, pos)
	for i := range rects {
		rects[i] = shape.RotateRect(rects[i], center, rot)
	}
	return Footprint{Rects: rects}
}

// localRects decomposes the unrotated template at pos into one or two
// rectangles. An L-shape splits along the cut edge into the full-width
// bar opposite the cut plus the remaining leg; degenerate cuts fall
// back to the single bounding rectangle.
func localRects(t shape.Template, pos geo.Point) []geo.Rect {
	w, h := t.Width, t.Height
	full := geo.Rect{Min: pos, W: w, H: h}
	if t.Kind != shape.KindLShaped {
		return []geo.Rect{full}
	}

	cw, ch := t.CutWidth, t.CutHeight
	if cw >= w {
		cw = w - geo.Increment
	}
	if ch >= h {
		ch = h - geo.Increment
	}
	if cw <= 0 || ch <= 0 {
		return []geo.Rect{full}
	}

	switch t.CutCorner {
	case shape.CornerNW:
		return []geo.Rect{
			{Min: geo.Point{X: pos.X + cw, Y: pos.Y}, W: w - cw, H: ch},
			{Min: geo.Point{X: pos.X, Y: pos.Y + ch}, W: w, H: h - ch},
		}
	case shape.CornerNE:
		return []geo.Rect{
			{Min: pos, W: w - cw, H: ch},
			{Min: geo.Point{X: pos.X, Y: pos.Y + ch}, W: w, H: h - ch},
		}
	case shape.CornerSW:
		return []geo.Rect{
			{Min: pos, W: w, H: h - ch},
			{Min: geo.Point{X: pos.X + cw, Y: pos.Y + h - ch}, W: w - cw, H: ch},
		}
	default: // SE
		return []geo.Rect{
			{Min: pos, W: w, H: h - ch},
			{Min: geo.Point{X: pos.X, Y: pos.Y + h - ch}, W: w - cw, H: ch},
		}
	}
}

// BoundingBox returns the axis-aligned union box of the footprint,
// used for coarse checks and door-swing tests.
func (f Footprint) BoundingBox() geo.Rect {
	if f.IsCircle {
		return f.Circle.Bounds()
	}
	if len(f.Rects) == 0 {
		return geo.Rect{}
	}
	box := f.Rects[0]
	for _, r := range f.Rects[1:] {
		box = box.Union(r)
	}
	return box
}

// Center returns the footprint's reference point.
func (f Footprint) Center() geo.Point {
	if f.IsCircle {
		return f.Circle.Center
	}
	return f.BoundingBox().Center()
}

// Overlaps reports whether two footprints overlap, dispatching to the
// rect/rect, circle/rect, or circle/circle fast path. Touching counts.
func (f Footprint) Overlaps(g Footprint) bool {
	switch {
	case f.IsCircle && g.IsCircle:
		return geo.CirclesOverlap(f.Circle, g.Circle)
	case f.IsCircle:
		for _, r := range g.Rects {
			if geo.CircleRectOverlap(f.Circle, r) {
				return true
			}
		}
		return false
	case g.IsCircle:
		return g.Overlaps(f)
	default:
		for _, a := range f.Rects {
			for _, b := range g.Rects {
				if geo.RectsOverlap(a, b) {
					return true
				}
			}
		}
		return false
	}
}
