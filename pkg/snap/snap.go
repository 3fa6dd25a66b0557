// Package snap quantizes and aligns positions during interactive edits:
// grid snapping, room-to-room edge alignment while dragging, and
// wall-point snapping for door placement.
//
// Snapping is exact alignment, not physics: each function returns the
// corrective value that makes a pair coincide, and the caller applies
// it (or ignores it) on the current drag frame. Like the rest of the
// engine the package is stateless; thresholds and grid sizes arrive as
// parameters.
package snap

import (
	"math"

	"github.com/planwright/planwright/pkg/door"
	"github.com/planwright/planwright/pkg/geo"
	"github.com/planwright/planwright/pkg/plan"
)

// DefaultThreshold is the capture distance in inches: 20 px at the
// default eighth-inch render scale.
const DefaultThreshold = 2.5

// Grid quantizes v to the nearest multiple of size.
// A non-positive size leaves v unchanged.
func Grid(v, size float64) float64 {
	if size <= 0 {
		return v
	}
	return math.Round(v/size) * size
}

// PointToGrid quantizes both coordinates of p.
func PointToGrid(p geo.Point, size float64) geo.Point {
	return geo.Point{X: Grid(p.X, size), Y: Grid(p.Y, size)}
}

// Delta is the corrective offset that brings a dragged rectangle into
// exact alignment with an anchor. Axes snap independently. A zero
// component is ambiguous on its own - the axis may have found no
// candidate or already be exactly aligned - so callers consult the
// boolean returned by [RoomDelta], not the component values.
type Delta struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RoomDelta compares the moving rectangle's edges and centerline
// against every anchor's, per axis, and returns the smallest correction
// within the threshold for each axis. The boolean reports whether
// either axis snapped.
func RoomDelta(moving geo.Rect, anchors []geo.Rect, threshold float64) (Delta, bool) {
	if threshold <= 0 || len(anchors) == 0 {
		return Delta{}, false
	}

	var d Delta
	bestX, bestY := math.Inf(1), math.Inf(1)
	for _, a := range anchors {
		if dx, ok := axisDelta(axisLines(moving.Min.X, moving.W), axisLines(a.Min.X, a.W), threshold); ok && math.Abs(dx) < math.Abs(bestX) {
			bestX = dx
		}
		if dy, ok := axisDelta(axisLines(moving.Min.Y, moving.H), axisLines(a.Min.Y, a.H), threshold); ok && math.Abs(dy) < math.Abs(bestY) {
			bestY = dy
		}
	}

	snapped := false
	if !math.IsInf(bestX, 1) {
		d.X = bestX
		snapped = true
	}
	if !math.IsInf(bestY, 1) {
		d.Y = bestY
		snapped = true
	}
	return d, snapped
}

// axisLines returns the alignment lines of one rectangle axis: both
// edges and the centerline.
func axisLines(min, size float64) [3]float64 {
	return [3]float64{min, min + size, min + size/2}
}

// axisDelta finds the smallest correction aligning any moving line with
// any anchor line, within the threshold.
func axisDelta(moving, anchor [3]float64, threshold float64) (float64, bool) {
	best := math.Inf(1)
	for _, m := range moving {
		for _, a := range anchor {
			if diff := a - m; math.Abs(diff) <= threshold && math.Abs(diff) < math.Abs(best) {
				best = diff
			}
		}
	}
	if math.IsInf(best, 1) {
		return 0, false
	}
	return best, true
}

// WallPoint is a cursor snapped onto a wall for door placement. Point
// is the resulting door center on the wall; Fraction and StartOffset
// carry the same position in both conventions, clamped so the full door
// width stays inside the wall.
type WallPoint struct {
	Wall        int       `json:"wall"`
	Point       geo.Point `json:"point"`
	Distance    float64   `json:"distance"`
	Fraction    float64   `json:"fraction"`
	StartOffset float64   `json:"start_offset"`
}

// NearestWallPoint projects the cursor onto every wall and picks the
// closest one within the threshold. Walls shorter than the door width
// are skipped; false means no wall qualified.
func NearestWallPoint(cursor geo.Point, walls []plan.Wall, threshold, doorWidth float64) (WallPoint, bool) {
	best := WallPoint{Distance: math.Inf(1)}
	found := false
	for _, w := range walls {
		length := w.UnroundedLength()
		if doorWidth <= 0 || length < doorWidth {
			continue
		}
		t, closest := geo.ProjectOntoSegment(cursor, w.Start, w.End)
		dist := cursor.Dist(closest)
		if dist > threshold || dist >= best.Distance {
			continue
		}

		offset := clampOffset(t*length-doorWidth/2, length-doorWidth)
		frac := door.AtStartOffset(offset, doorWidth, length)
		best = WallPoint{
			Wall:        w.Index,
			Point:       geo.Lerp(w.Start, w.End, frac),
			Distance:    dist,
			Fraction:    frac,
			StartOffset: offset,
		}
		found = true
	}
	if !found {
		return WallPoint{}, false
	}
	return best, true
}

func clampOffset(offset, max float64) float64 {
	if max < 0 {
		max = 0
	}
	if offset < 0 {
		return 0
	}
	if offset > max {
		return max
	}
	return offset
}
