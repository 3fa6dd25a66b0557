// Package door computes door geometry: the leaf endpoints on the wall,
// the hinge, and the quarter-circle swing arc, from a door's wall
// reference, center fraction, width, hinge side, and swing direction.
//
// The sign conventions live here and nowhere else. "Outward" swings
// toward the wall's default perpendicular (wall angle + 90° in screen
// coordinates), which room outlines wind to point out of the room;
// "inward" flips to the opposite side. The hinge side
// never flips the swing side - it only picks which leaf endpoint
// pivots. Callers that used to hand-roll these sign flips go through
// Compute instead.
package door

import (
	"math"

	"github.com/planwright/planwright/pkg/geo"
	"github.com/planwright/planwright/pkg/plan"
)

// Geometry is the complete derived geometry of one door. It is a pure
// function output - recomputing from identical inputs yields identical
// values - and is never stored on the document.
//
// SwingStart equals OpenEnd: the swing arc runs from the free end of
// the closed leaf to SwingEnd, the free end of the fully open leaf.
// Sweep is the SVG arc sweep flag (1 = positive-angle direction in
// screen coordinates) selecting which of the two quarter arcs between
// those points to draw.
type Geometry struct {
	Start      geo.Point `json:"start"`
	End        geo.Point `json:"end"`
	Hinge      geo.Point `json:"hinge"`
	OpenEnd    geo.Point `json:"open_end"`
	SwingStart geo.Point `json:"swing_start"`
	SwingEnd   geo.Point `json:"swing_end"`
	Radius     float64   `json:"radius"`
	Sweep      int       `json:"sweep"`
}

// ComputeForRoom resolves the door's wall on its room and computes the
// geometry. It returns false when the wall index no longer exists or
// the wall cannot hold the door; the caller skips rendering and
// validation for that door instead of failing.
func ComputeForRoom(r *plan.Room, d plan.Door) (Geometry, bool) {
	wall, ok := r.WallByIndex(d.Wall)
	if !ok {
		return Geometry{}, false
	}
	return Compute(wall, d)
}

// Compute derives the door geometry on the given wall.
//
// The door's Position is the CENTER fraction along the wall. The center
// is clamped so the full leaf stays inside the wall; a wall shorter
// than the door width (or a non-positive width) yields no geometry.
func Compute(w plan.Wall, d plan.Door) (Geometry, bool) {
	length := w.UnroundedLength()
	if d.Width <= 0 || length < d.Width {
		return Geometry{}, false
	}

	half := d.Width / 2
	center := geo.Lerp(w.Start, w.End, clampFraction(d.Position, half, length))
	angle := math.Atan2(w.End.Y-w.Start.Y, w.End.X-w.Start.X)
	dir := geo.Point{X: math.Cos(angle), Y: math.Sin(angle)}

	start := geo.Point{X: center.X - dir.X*half, Y: center.Y - dir.Y*half}
	end := geo.Point{X: center.X + dir.X*half, Y: center.Y + dir.Y*half}

	hinge, openEnd := start, end
	if d.Hinge == plan.HingeRight {
		hinge, openEnd = end, start
	}

	swingAngle := angle + math.Pi/2
	if d.Swing == plan.SwingInward {
		swingAngle += math.Pi
	}
	swingEnd := geo.Point{
		X: hinge.X + d.Width*math.Cos(swingAngle),
		Y: hinge.Y + d.Width*math.Sin(swingAngle),
	}

	// Cross product of (openEnd-hinge) x (swingEnd-hinge) picks the arc
	// side: positive means the sweep goes in the positive-angle
	// direction on screen.
	cross := (openEnd.X-hinge.X)*(swingEnd.Y-hinge.Y) - (openEnd.Y-hinge.Y)*(swingEnd.X-hinge.X)
	sweep := 0
	if cross > 0 {
		sweep = 1
	}

	return Geometry{
		Start:      start,
		End:        end,
		Hinge:      hinge,
		OpenEnd:    openEnd,
		SwingStart: openEnd,
		SwingEnd:   swingEnd,
		Radius:     d.Width,
		Sweep:      sweep,
	}, true
}

// clampFraction keeps the door center far enough from both wall ends
// that the full width fits: center distance within [half, length-half].
func clampFraction(frac, half, length float64) float64 {
	lo := half / length
	hi := 1 - half/length
	if frac < lo {
		return lo
	}
	if frac > hi {
		return hi
	}
	return frac
}

// AtStartOffset converts a legacy start-offset position (distance from
// the wall start to the door's leading edge, in inches) into the center
// fraction Compute expects. The offset is clamped so the door fits:
// offset within [0, wallLength-width].
func AtStartOffset(offset, width, wallLength float64) float64 {
	if wallLength <= 0 {
		return 0
	}
	maxOffset := wallLength - width
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset < 0 {
		offset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	return (offset + width/2) / wallLength
}
