// Package shape resolves declarative shape templates into concrete
// geometry. A template describes a footprint (rectangle, circle,
// L-shape, beveled rectangle) in its own local coordinates; Resolve
// turns it into a world-space vertex ring or circle given a position
// and a right-angle rotation.
//
// Rotation is restricted to the four right angles and is applied about
// the shape's own bounding-box center using exact vertex swaps rather
// than trigonometry, so four successive 90° turns reproduce the input
// coordinates exactly. This restriction is what lets wall extraction
// assume axis-aligned walls.
package shape

import (
	"fmt"

	"github.com/planwright/planwright/pkg/geo"
)

// Kind identifies the template variant.
type Kind string

// Template kinds.
const (
	KindRectangle Kind = "rectangle"
	KindCircle    Kind = "circle"
	KindLShaped   Kind = "l-shaped"
	KindBeveled   Kind = "beveled"
)

// Corner names a compass corner in screen orientation (NW = top-left).
type Corner string

// Compass corners.
const (
	CornerNW Corner = "nw"
	CornerNE Corner = "ne"
	CornerSW Corner = "sw"
	CornerSE Corner = "se"
)

// Rotation is a right-angle rotation in degrees. Only 0, 90, 180 and
// 270 are meaningful; Normalize collapses any multiple of 90 into that
// range. Positive rotation is clockwise on screen (y grows down).
type Rotation int

// The four supported rotations.
const (
	Rot0   Rotation = 0
	Rot90  Rotation = 90
	Rot180 Rotation = 180
	Rot270 Rotation = 270
)

// Normalize maps the rotation into {0, 90, 180, 270}. Values that are
// not multiples of 90 round down to the nearest supported angle;
// arbitrary-angle rotation is out of scope by design.
func (r Rotation) Normalize() Rotation {
	n := int(r) % 360
	if n < 0 {
		n += 360
	}
	return Rotation(n / 90 * 90)
}

// Quarter returns how many 90° turns the rotation represents (0-3).
func (r Rotation) Quarter() int { return int(r.Normalize()) / 90 }

// Template is a tagged shape description. Width/Height apply to every
// kind except Circle; the Cut* fields apply to L-shapes and the Bevel*
// fields to beveled rectangles (room outlines only).
type Template struct {
	Kind   Kind    `json:"kind" bson:"kind"`
	Width  float64 `json:"width,omitempty" bson:"width,omitempty"`
	Height float64 `json:"height,omitempty" bson:"height,omitempty"`
	Radius float64 `json:"radius,omitempty" bson:"radius,omitempty"`

	CutWidth  float64 `json:"cut_width,omitempty" bson:"cut_width,omitempty"`
	CutHeight float64 `json:"cut_height,omitempty" bson:"cut_height,omitempty"`
	CutCorner Corner  `json:"cut_corner,omitempty" bson:"cut_corner,omitempty"`

	BevelSize   float64 `json:"bevel_size,omitempty" bson:"bevel_size,omitempty"`
	BevelCorner Corner  `json:"bevel_corner,omitempty" bson:"bevel_corner,omitempty"`
}

// Rect returns a rectangle template.
func Rect(width, height float64) Template {
	return Template{Kind: KindRectangle, Width: width, Height: height}
}

// CircleOf returns a circle template.
func CircleOf(radius float64) Template {
	return Template{Kind: KindCircle, Radius: radius}
}

// LShape returns an L-shaped template with the given corner cut away.
func LShape(width, height, cutWidth, cutHeight float64, corner Corner) Template {
	return Template{
		Kind: KindLShaped, Width: width, Height: height,
		CutWidth: cutWidth, CutHeight: cutHeight, CutCorner: corner,
	}
}

// Bevel returns a beveled rectangle template with one corner replaced
// by a diagonal chord.
func Bevel(width, height, bevelSize float64, corner Corner) Template {
	return Template{
		Kind: KindBeveled, Width: width, Height: height,
		BevelSize: bevelSize, BevelCorner: corner,
	}
}

// Validate checks template parameters for construction errors.
// The editing UI calls this before persisting a shape; Resolve does not
// require it and clamps bad cuts instead of failing.
func (t Template) Validate() error {
	switch t.Kind {
	case KindCircle:
		if t.Radius <= 0 {
			return fmt.Errorf("circle radius must be positive, got %v", t.Radius)
		}
	case KindRectangle:
		if t.Width <= 0 || t.Height <= 0 {
			return fmt.Errorf("rectangle dimensions must be positive, got %vx%v", t.Width, t.Height)
		}
	case KindLShaped:
		if t.Width <= 0 || t.Height <= 0 {
			return fmt.Errorf("l-shape dimensions must be positive, got %vx%v", t.Width, t.Height)
		}
		if t.CutWidth >= t.Width || t.CutHeight >= t.Height {
			return fmt.Errorf("l-shape cut %vx%v must be smaller than shape %vx%v",
				t.CutWidth, t.CutHeight, t.Width, t.Height)
		}
		if !validCorner(t.CutCorner) {
			return fmt.Errorf("invalid cut corner %q", t.CutCorner)
		}
	case KindBeveled:
		if t.Width <= 0 || t.Height <= 0 {
			return fmt.Errorf("beveled dimensions must be positive, got %vx%v", t.Width, t.Height)
		}
		if t.BevelSize >= t.Width || t.BevelSize >= t.Height {
			return fmt.Errorf("bevel size %v must be smaller than both sides %vx%v",
				t.BevelSize, t.Width, t.Height)
		}
		if !validCorner(t.BevelCorner) {
			return fmt.Errorf("invalid bevel corner %q", t.BevelCorner)
		}
	default:
		return fmt.Errorf("unknown shape kind %q", t.Kind)
	}
	return nil
}

func validCorner(c Corner) bool {
	switch c {
	case CornerNW, CornerNE, CornerSW, CornerSE:
		return true
	}
	return false
}

// Size returns the unrotated bounding-box size of the template.
func (t Template) Size() (w, h float64) {
	if t.Kind == KindCircle {
		return 2 * t.Radius, 2 * t.Radius
	}
	return t.Width, t.Height
}

// Outline is the resolved geometry of a template: either a vertex ring
// or a circle, never both.
type Outline struct {
	Ring     geo.Ring
	Circle   geo.Circle
	IsCircle bool
}

// Bounds returns the outline's axis-aligned bounding box.
func (o Outline) Bounds() geo.Rect {
	if o.IsCircle {
		return o.Circle.Bounds()
	}
	return o.Ring.Bounds()
}

// Contains reports whether p lies inside the outline.
func (o Outline) Contains(p geo.Point) bool {
	if o.IsCircle {
		return o.Circle.Contains(p)
	}
	return o.Ring.Contains(p)
}

// Resolve turns a template into concrete geometry. origin is the
// world position of the template's local (0,0) corner; rot spins the
// resolved ring about the shape's bounding-box center.
//
// Oversized L-shape cuts and bevels are clamped to one measurement
// increment short of the side so the ring can never self-touch; a cut
// that is zero or negative on either axis degrades to the plain
// rectangle. Resolve never panics and never emits a self-intersecting
// ring.
func Resolve(t Template, rot Rotation, origin geo.Point) Outline {
	if t.Kind == KindCircle {
		r := t.Radius
		if r < 0 {
			r = 0
		}
		return Outline{
			IsCircle: true,
			Circle:   geo.Circle{Center: geo.Point{X: origin.X + r, Y: origin.Y + r}, Radius: r},
		}
	}

	ring := localRing(t)
	center := geo.Point{X: t.Width / 2, Y: t.Height / 2}
	for i, p := range ring {
		ring[i] = rotateAbout(p, center, rot).Add(origin)
	}
	return Outline{Ring: ring}
}

// localRing builds the unrotated ring at local origin (0,0), in one
// fixed winding: counterclockwise on screen (y down), starting from the
// top-left corner. This winding makes each wall's +90° perpendicular
// point out of the shape, which is the normal the door swing
// convention relies on.
func localRing(t Template) geo.Ring {
	w, h := t.Width, t.Height
	switch t.Kind {
	case KindLShaped:
		cw := clampInset(t.CutWidth, w)
		ch := clampInset(t.CutHeight, h)
		if cw <= 0 || ch <= 0 {
			return geo.Ring{{X: 0, Y: 0}, {X: 0, Y: h}, {X: w, Y: h}, {X: w, Y: 0}}
		}
		switch t.CutCorner {
		case CornerNW:
			return geo.Ring{{X: 0, Y: ch}, {X: 0, Y: h}, {X: w, Y: h}, {X: w, Y: 0}, {X: cw, Y: 0}, {X: cw, Y: ch}}
		case CornerNE:
			return geo.Ring{{X: 0, Y: 0}, {X: 0, Y: h}, {X: w, Y: h}, {X: w, Y: ch}, {X: w - cw, Y: ch}, {X: w - cw, Y: 0}}
		case CornerSW:
			return geo.Ring{{X: 0, Y: 0}, {X: 0, Y: h - ch}, {X: cw, Y: h - ch}, {X: cw, Y: h}, {X: w, Y: h}, {X: w, Y: 0}}
		default: // SE
			return geo.Ring{{X: 0, Y: 0}, {X: 0, Y: h}, {X: w - cw, Y: h}, {X: w - cw, Y: h - ch}, {X: w, Y: h - ch}, {X: w, Y: 0}}
		}
	case KindBeveled:
		b := clampInset(t.BevelSize, w)
		b = clampInset(b, h)
		if b <= 0 {
			return geo.Ring{{X: 0, Y: 0}, {X: 0, Y: h}, {X: w, Y: h}, {X: w, Y: 0}}
		}
		switch t.BevelCorner {
		case CornerNW:
			return geo.Ring{{X: 0, Y: b}, {X: 0, Y: h}, {X: w, Y: h}, {X: w, Y: 0}, {X: b, Y: 0}}
		case CornerNE:
			return geo.Ring{{X: 0, Y: 0}, {X: 0, Y: h}, {X: w, Y: h}, {X: w, Y: b}, {X: w - b, Y: 0}}
		case CornerSW:
			return geo.Ring{{X: 0, Y: 0}, {X: 0, Y: h - b}, {X: b, Y: h}, {X: w, Y: h}, {X: w, Y: 0}}
		default: // SE
			return geo.Ring{{X: 0, Y: 0}, {X: 0, Y: h}, {X: w - b, Y: h}, {X: w, Y: h - b}, {X: w, Y: 0}}
		}
	default:
		return geo.Ring{{X: 0, Y: 0}, {X: 0, Y: h}, {X: w, Y: h}, {X: w, Y: 0}}
	}
}

// clampInset keeps an inset (cut or bevel) at least one measurement
// increment short of the side it is carved from.
func clampInset(inset, side float64) float64 {
	limit := side - geo.Increment
	if inset > limit {
		return limit
	}
	return inset
}

// rotateAbout rotates p about c by a right angle using exact swaps.
// In screen coordinates (y down) positive rotation appears clockwise.
func rotateAbout(p, c geo.Point, rot Rotation) geo.Point {
	dx, dy := p.X-c.X, p.Y-c.Y
	switch rot.Normalize() {
	case Rot90:
		return geo.Point{X: c.X - dy, Y: c.Y + dx}
	case Rot180:
		return geo.Point{X: c.X - dx, Y: c.Y - dy}
	case Rot270:
		return geo.Point{X: c.X + dy, Y: c.Y - dx}
	default:
		return p
	}
}

// RotateRect rotates an axis-aligned rectangle about a center by a
// right angle. The result stays axis-aligned, which is the property
// the collision fast paths rely on.
func RotateRect(r geo.Rect, c geo.Point, rot Rotation) geo.Rect {
	switch rot.Normalize() {
	case Rot90:
		// (dx,dy) -> (-dy,dx): the new min corner comes from the old
		// bottom-left corner.
		min := rotateAbout(geo.Point{X: r.Min.X, Y: r.Min.Y + r.H}, c, Rot90)
		return geo.Rect{Min: min, W: r.H, H: r.W}
	case Rot180:
		min := rotateAbout(r.Max(), c, Rot180)
		return geo.Rect{Min: min, W: r.W, H: r.H}
	case Rot270:
		min := rotateAbout(geo.Point{X: r.Min.X + r.W, Y: r.Min.Y}, c, Rot270)
		return geo.Rect{Min: min, W: r.H, H: r.W}
	default:
		return r
	}
}
