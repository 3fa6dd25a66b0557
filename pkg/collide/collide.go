// Package collide decides whether a candidate furniture placement is
// geometrically valid inside a room: within the room boundary, clear of
// every other furniture item, and clear of every door's swing arc. It
// also searches outward from an invalid position for the nearest valid
// one.
//
// Every function is a pure function of its input snapshot; calling it
// twice with identical inputs yields identical output. The engine holds
// no state, so callers re-invoke it freely on every mouse move, passing
// the current snapshot of the other entities each time.
package collide

import (
	"github.com/planwright/planwright/pkg/door"
	"github.com/planwright/planwright/pkg/footprint"
	"github.com/planwright/planwright/pkg/geo"
	"github.com/planwright/planwright/pkg/plan"
	"github.com/planwright/planwright/pkg/shape"
)

// Kind names a placement violation category.
type Kind string

// Violation kinds, in the order the checks run.
const (
	KindOutOfBounds Kind = "OUT_OF_BOUNDS"
	KindOverlap     Kind = "OVERLAP"
	KindDoorSwing   Kind = "DOOR_SWING"
)

// Violation describes one reason a placement is invalid.
// EntityID is set for overlaps, DoorID and Wall for swing intrusions.
type Violation struct {
	Kind     Kind   `json:"kind"`
	EntityID string `json:"entity_id,omitempty"`
	DoorID   string `json:"door_id,omitempty"`
	Wall     int    `json:"wall,omitempty"`
}

// Verdict is the ephemeral result of one placement check. Violations
// accumulate in check order (boundary, overlap, door swing); callers
// may surface only the first or all of them.
type Verdict struct {
	OK         bool        `json:"ok"`
	Violations []Violation `json:"violations,omitempty"`
}

// Options configures a placement check.
type Options struct {
	// ExcludeID skips one entity during the pairwise check - normally
	// the candidate's own previous state while it is being dragged.
	ExcludeID string
}

// Check validates a candidate placement against the room boundary, the
// other furniture, and the room's doors. Doors whose wall reference no
// longer resolves are skipped, not treated as violations.
func Check(candidate plan.Furniture, room *plan.Room, others []plan.Furniture, opts Options) Verdict {
	fp := footprint.Compute(candidate.Shape, candidate.Position, candidate.Rotation)
	outline := room.Outline()

	var violations []Violation

	if !insideRoom(fp, outline) {
		violations = append(violations, Violation{Kind: KindOutOfBounds})
	}

	for _, other := range others {
		if other.ID == opts.ExcludeID || other.ID == candidate.ID {
			continue
		}
		ofp := footprint.Compute(other.Shape, other.Position, other.Rotation)
		if fp.Overlaps(ofp) {
			violations = append(violations, Violation{Kind: KindOverlap, EntityID: other.ID})
		}
	}

	for _, d := range room.Doors {
		g, ok := door.ComputeForRoom(room, d)
		if !ok {
			continue
		}
		if intrudesSwing(fp, g) {
			violations = append(violations, Violation{Kind: KindDoorSwing, DoorID: d.ID, Wall: d.Wall})
		}
	}

	return Verdict{OK: len(violations) == 0, Violations: violations}
}

// insideRoom reports whether the footprint lies entirely inside the
// room outline. Every corner of every precise rectangle must be inside,
// and so must the footprint's center: a non-convex room can pass edges
// through a box whose corners are all inside, and the center test
// catches the worst of those. Circles get an exact test: center inside
// and no wall segment closer than the radius, which catches diagonal
// excursions into L-cuts and bevel chords that extreme-point probes
// miss.
func insideRoom(fp footprint.Footprint, outline shape.Outline) bool {
	if fp.IsCircle {
		return circleInside(fp.Circle, outline)
	}

	for _, r := range fp.Rects {
		for _, corner := range r.Corners() {
			if !outline.Contains(corner) {
				return false
			}
		}
	}
	return outline.Contains(fp.Center())
}

func circleInside(c geo.Circle, outline shape.Outline) bool {
	if outline.IsCircle {
		return outline.Circle.Center.Dist(c.Center)+c.Radius <= outline.Circle.Radius
	}
	ring := outline.Ring
	if !ring.Contains(c.Center) {
		return false
	}
	for i := range ring {
		a, b := ring[i], ring[(i+1)%len(ring)]
		if geo.DistanceToSegment(c.Center, a, b) < c.Radius {
			return false
		}
	}
	return true
}

// intrudesSwing reports whether any bounding-box corner (or the center,
// for non-convex coverage) of the footprint lies inside the door's
// quarter-circle swing region: within the swing disk and within the arc
// between the closed and open leaf positions.
func intrudesSwing(fp footprint.Footprint, g door.Geometry) bool {
	box := fp.BoundingBox()
	corners := box.Corners()
	probes := append(corners[:], box.Center())

	openAngle := geo.Angle(g.Hinge, g.OpenEnd)
	swingAngle := geo.Angle(g.Hinge, g.SwingEnd)

	for _, p := range probes {
		if g.Hinge.Dist(p) > g.Radius {
			continue
		}
		if geo.WithinArc(geo.Angle(g.Hinge, p), openAngle, swingAngle) {
			return true
		}
	}
	return false
}
