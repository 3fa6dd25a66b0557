// Package planview renders a floor plan to SVG: room outlines, placed
// furniture, door leaves with their swing arcs, and wall-length labels.
//
// The drawing is world-space inches scaled to pixels; nothing here
// feeds back into the engine, so rounding to whole pixels is fine.
package planview

import (
	"bytes"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/planwright/planwright/pkg/door"
	"github.com/planwright/planwright/pkg/footprint"
	"github.com/planwright/planwright/pkg/geo"
	"github.com/planwright/planwright/pkg/plan"
)

// DefaultScale is the default render scale in pixels per inch. One
// measurement increment (1/8 inch) maps to one pixel.
const DefaultScale = 8.0

// marginInches is the blank border around the plan's bounding box.
const marginInches = 6.0

// gridSpacing is the grid line spacing in inches (one foot).
const gridSpacing = 12.0

const (
	backgroundFill  = "#ffffff"
	gridStroke      = "#e8e4db"
	roomFill        = "#faf7f0"
	roomStroke      = "#2d2a26"
	furnitureFill   = "#cfdff2"
	furnitureStroke = "#4a6fa5"
	doorStroke      = "#8a6d3b"
	labelFill       = "#5c5850"
)

// Options configures plan-view rendering.
type Options struct {
	// Scale is the render scale in pixels per inch. Zero means
	// DefaultScale.
	Scale float64

	// ShowGrid draws a one-foot grid behind the rooms.
	ShowGrid bool

	// ShowSwings draws door swing arcs in addition to the leaf.
	ShowSwings bool

	// ShowLabels draws room names, furniture names, and wall lengths.
	ShowLabels bool
}

// DefaultOptions returns the options the CLI and server use when the
// caller specifies nothing: swings and labels on, grid off.
func DefaultOptions() Options {
	return Options{Scale: DefaultScale, ShowSwings: true, ShowLabels: true}
}

// Render draws the plan to SVG bytes.
func Render(p *plan.Plan, opts Options) []byte {
	if opts.Scale <= 0 {
		opts.Scale = DefaultScale
	}

	f := newFrame(p, opts.Scale)
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(f.width, f.height)
	canvas.Rect(0, 0, f.width, f.height, "fill:"+backgroundFill)

	if opts.ShowGrid {
		drawGrid(canvas, f)
	}
	for i := range p.Rooms {
		drawRoom(canvas, f, &p.Rooms[i], opts)
	}

	canvas.End()
	return buf.Bytes()
}

// frame maps world inches to pixel coordinates.
type frame struct {
	scale         float64
	origin        geo.Point // world point at the canvas top-left
	width, height int
}

// newFrame computes the canvas size from the plan's world bounds plus a
// margin wide enough for outward door swings and wall labels.
func newFrame(p *plan.Plan, scale float64) frame {
	bounds, ok := worldBounds(p)
	if !ok {
		bounds = geo.Rect{W: 4 * gridSpacing, H: 4 * gridSpacing}
	}
	origin := geo.Point{X: bounds.Min.X - marginInches, Y: bounds.Min.Y - marginInches}
	return frame{
		scale:  scale,
		origin: origin,
		width:  int(math.Ceil((bounds.W + 2*marginInches) * scale)),
		height: int(math.Ceil((bounds.H + 2*marginInches) * scale)),
	}
}

// worldBounds unions every room outline and door swing extent. Swing
// ends matter because outward doors open past the room's own box.
func worldBounds(p *plan.Plan) (geo.Rect, bool) {
	var bounds geo.Rect
	found := false
	grow := func(r geo.Rect) {
		if !found {
			bounds = r
			found = true
			return
		}
		bounds = bounds.Union(r)
	}
	for i := range p.Rooms {
		r := &p.Rooms[i]
		grow(r.Outline().Bounds())
		for _, d := range r.Doors {
			if g, ok := door.ComputeForRoom(r, d); ok {
				grow(geo.Rect{Min: g.SwingEnd})
			}
		}
	}
	return bounds, found
}

func (f frame) px(p geo.Point) (int, int) {
	return int(math.Round((p.X - f.origin.X) * f.scale)), int(math.Round((p.Y - f.origin.Y) * f.scale))
}

// pxf is the float variant used inside SVG path data, where there is no
// reason to round.
func (f frame) pxf(p geo.Point) (float64, float64) {
	return (p.X - f.origin.X) * f.scale, (p.Y - f.origin.Y) * f.scale
}

func drawGrid(canvas *svg.SVG, f frame) {
	style := fmt.Sprintf("stroke:%s;stroke-width:1", gridStroke)
	// Align grid lines to whole-foot world coordinates.
	startX := math.Floor(f.origin.X/gridSpacing) * gridSpacing
	for x := startX; (x-f.origin.X)*f.scale <= float64(f.width); x += gridSpacing {
		gx, _ := f.px(geo.Point{X: x, Y: f.origin.Y})
		canvas.Line(gx, 0, gx, f.height, style)
	}
	startY := math.Floor(f.origin.Y/gridSpacing) * gridSpacing
	for y := startY; (y-f.origin.Y)*f.scale <= float64(f.height); y += gridSpacing {
		_, gy := f.px(geo.Point{X: f.origin.X, Y: y})
		canvas.Line(0, gy, f.width, gy, style)
	}
}

func drawRoom(canvas *svg.SVG, f frame, r *plan.Room, opts Options) {
	out := r.Outline()
	style := fmt.Sprintf("fill:%s;stroke:%s;stroke-width:2", roomFill, roomStroke)
	if out.IsCircle {
		cx, cy := f.px(out.Circle.Center)
		canvas.Circle(cx, cy, int(math.Round(out.Circle.Radius*f.scale)), style)
	} else {
		xs, ys := ringPx(f, out.Ring)
		canvas.Polygon(xs, ys, style)
	}

	for _, d := range r.Doors {
		if g, ok := door.ComputeForRoom(r, d); ok {
			drawDoor(canvas, f, g, opts)
		}
	}
	for i := range r.Furniture {
		drawFurniture(canvas, f, &r.Furniture[i], opts)
	}

	if opts.ShowLabels {
		drawRoomLabels(canvas, f, r, out.Bounds())
	}
}

func ringPx(f frame, ring geo.Ring) ([]int, []int) {
	xs := make([]int, len(ring))
	ys := make([]int, len(ring))
	for i, p := range ring {
		xs[i], ys[i] = f.px(p)
	}
	return xs, ys
}

// drawDoor cuts the wall open, draws the leaf in its open position, and
// optionally the quarter-circle swing arc between the closed and open
// leaf ends. Sweep comes straight from the geometry and is already the
// SVG arc sweep flag.
func drawDoor(canvas *svg.SVG, f frame, g door.Geometry, opts Options) {
	sx, sy := f.px(g.Start)
	ex, ey := f.px(g.End)
	canvas.Line(sx, sy, ex, ey, fmt.Sprintf("stroke:%s;stroke-width:4", backgroundFill))

	hx, hy := f.px(g.Hinge)
	ox, oy := f.px(g.SwingEnd)
	canvas.Line(hx, hy, ox, oy, fmt.Sprintf("stroke:%s;stroke-width:2", doorStroke))

	if opts.ShowSwings {
		ax, ay := f.pxf(g.SwingStart)
		bx, by := f.pxf(g.SwingEnd)
		r := g.Radius * f.scale
		path := fmt.Sprintf("M %.1f %.1f A %.1f %.1f 0 0 %d %.1f %.1f", ax, ay, r, r, g.Sweep, bx, by)
		canvas.Path(path, fmt.Sprintf("fill:none;stroke:%s;stroke-width:1;stroke-dasharray:4,3", doorStroke))
	}
}

func drawFurniture(canvas *svg.SVG, f frame, item *plan.Furniture, opts Options) {
	fp := footprint.Compute(item.Shape, item.Position, item.Rotation)
	style := fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", furnitureFill, furnitureStroke)
	if fp.IsCircle {
		cx, cy := f.px(fp.Circle.Center)
		canvas.Circle(cx, cy, int(math.Round(fp.Circle.Radius*f.scale)), style)
	} else {
		for _, r := range fp.Rects {
			x, y := f.px(r.Min)
			canvas.Rect(x, y, int(math.Round(r.W*f.scale)), int(math.Round(r.H*f.scale)), style)
		}
	}

	if opts.ShowLabels && item.Name != "" {
		cx, cy := f.px(fp.Center())
		canvas.Text(cx, cy, item.Name, "text-anchor:middle;font-size:11px;fill:"+furnitureStroke)
	}
}

func drawRoomLabels(canvas *svg.SVG, f frame, r *plan.Room, bounds geo.Rect) {
	center := bounds.Center()
	cx, cy := f.px(center)
	if r.Name != "" {
		canvas.Text(cx, cy, r.Name, "text-anchor:middle;font-size:14px;font-weight:bold;fill:"+roomStroke)
	}
	sqft := r.Area() / 144
	canvas.Text(cx, cy+16, fmt.Sprintf("%.0f sq ft", sqft), "text-anchor:middle;font-size:11px;fill:"+labelFill)

	for _, w := range r.Walls() {
		drawWallLabel(canvas, f, w)
	}
}

// drawWallLabel places the wall's rounded length just outside its
// midpoint, along the outward normal.
func drawWallLabel(canvas *svg.SVG, f frame, w plan.Wall) {
	length := w.UnroundedLength()
	if length < gridSpacing {
		return
	}
	mid := geo.Lerp(w.Start, w.End, 0.5)
	nx := -(w.End.Y - w.Start.Y) / length
	ny := (w.End.X - w.Start.X) / length
	x, y := f.px(geo.Point{X: mid.X + nx*2.5, Y: mid.Y + ny*2.5})
	canvas.Text(x, y+4, FormatLength(w.Length), "text-anchor:middle;font-size:11px;fill:"+labelFill)
}

// FormatLength formats a length in inches as feet and inches, the way
// wall labels read on the drawing: 126.5 becomes 10'6.5".
func FormatLength(inches float64) string {
	inches = geo.RoundToIncrement(inches)
	feet := math.Floor(inches / 12)
	rem := inches - feet*12
	if feet == 0 {
		return fmt.Sprintf("%g\"", rem)
	}
	if rem == 0 {
		return fmt.Sprintf("%g'", feet)
	}
	return fmt.Sprintf("%g'%g\"", feet, rem)
}
