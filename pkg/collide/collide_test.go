package collide

import (
	"testing"

	"github.com/planwright/planwright/pkg/geo"
	"github.com/planwright/planwright/pkg/plan"
	"github.com/planwright/planwright/pkg/shape"
)

// testRoom is a 10x8 ft rectangular room in inches.
func testRoom() plan.Room {
	return plan.Room{ID: "room", Name: "den", Shape: shape.Rect(120, 96)}
}

// chair returns a 24x24 in item whose CENTER sits at (cx, cy).
func chair(id string, cx, cy float64) plan.Furniture {
	return plan.Furniture{
		ID:       id,
		Shape:    shape.Rect(24, 24),
		Position: geo.Point{X: cx - 12, Y: cy - 12},
	}
}

func TestCheckValidPlacement(t *testing.T) {
	room := testRoom()
	v := Check(chair("a", 60, 48), &room, nil, Options{})
	if !v.OK {
		t.Errorf("placement should be valid, got %+v", v.Violations)
	}
	if len(v.Violations) != 0 {
		t.Errorf("valid verdict should carry no violations, got %d", len(v.Violations))
	}
}

func TestCheckBoundaryViolation(t *testing.T) {
	room := testRoom()
	// Centered at (5,5): corners at (-7,-7) fall outside.
	v := Check(chair("a", 5, 5), &room, nil, Options{})
	if v.OK {
		t.Fatal("placement should be invalid")
	}
	if v.Violations[0].Kind != KindOutOfBounds {
		t.Errorf("first violation = %s, want %s", v.Violations[0].Kind, KindOutOfBounds)
	}
}

func TestCheckOverlap(t *testing.T) {
	room := testRoom()
	other := chair("b", 60, 48)
	v := Check(chair("a", 70, 48), &room, []plan.Furniture{other}, Options{})
	if v.OK {
		t.Fatal("overlapping placement should be invalid")
	}
	if v.Violations[0].Kind != KindOverlap || v.Violations[0].EntityID != "b" {
		t.Errorf("violation = %+v, want overlap with b", v.Violations[0])
	}
}

func TestCheckExcludeID(t *testing.T) {
	// During a drag the entity's previous state is excluded.
	room := testRoom()
	prev := chair("a", 60, 48)
	v := Check(chair("a", 62, 48), &room, []plan.Furniture{prev}, Options{ExcludeID: "a"})
	if !v.OK {
		t.Errorf("self-overlap should be excluded, got %+v", v.Violations)
	}
}

func TestCheckMonotonicUnderRemoval(t *testing.T) {
	// Invalid solely due to collision with X; removing X makes it valid.
	room := testRoom()
	x := chair("x", 60, 48)
	candidate := chair("a", 70, 48)

	with := Check(candidate, &room, []plan.Furniture{x}, Options{})
	if with.OK {
		t.Fatal("expected collision with x")
	}
	for _, viol := range with.Violations {
		if viol.Kind != KindOverlap || viol.EntityID != "x" {
			t.Fatalf("expected only an overlap with x, got %+v", with.Violations)
		}
	}

	without := Check(candidate, &room, nil, Options{})
	if !without.OK {
		t.Errorf("removing the colliding entity should make the placement valid, got %+v", without.Violations)
	}
}

func TestCheckDoorSwing(t *testing.T) {
	room := testRoom()
	// 32" door at the midpoint of the bottom wall (index 1, from
	// (0,96) to (120,96)), hinge left, opening inward (into the room).
	room.Doors = []plan.Door{{
		ID: "door", Wall: 1, Position: 0.5, Width: 32,
		Hinge: plan.HingeLeft, Swing: plan.SwingInward,
	}}

	// Furniture overlapping the swing quadrant near the bottom wall.
	v := Check(chair("a", 60, 80), &room, nil, Options{})
	if v.OK {
		t.Fatal("placement inside the swing should be invalid")
	}
	found := false
	for _, viol := range v.Violations {
		if viol.Kind == KindDoorSwing {
			found = true
			if viol.DoorID != "door" || viol.Wall != 1 {
				t.Errorf("violation = %+v, want door/wall identifiers", viol)
			}
		}
	}
	if !found {
		t.Errorf("want a door-swing violation, got %+v", v.Violations)
	}

	// The same furniture on the opposite side of the room is fine.
	v = Check(chair("a", 60, 20), &room, nil, Options{})
	if !v.OK {
		t.Errorf("placement across the room should be valid, got %+v", v.Violations)
	}
}

func TestCheckSkipsDanglingDoor(t *testing.T) {
	room := testRoom()
	room.Doors = []plan.Door{{ID: "ghost", Wall: 9, Position: 0.5, Width: 32}}
	v := Check(chair("a", 60, 48), &room, nil, Options{})
	if !v.OK {
		t.Errorf("dangling door reference should be skipped, got %+v", v.Violations)
	}
}

func TestCheckLShapedRoomNotch(t *testing.T) {
	// L-shaped room with the SE quadrant cut away; furniture in the
	// notch is out of bounds even though the bounding ring spans it.
	room := plan.Room{ID: "room", Shape: shape.LShape(120, 96, 60, 48, shape.CornerSE)}
	v := Check(chair("a", 90, 72), &room, nil, Options{})
	if v.OK {
		t.Fatal("placement in the notch should be invalid")
	}
	if v.Violations[0].Kind != KindOutOfBounds {
		t.Errorf("violation = %+v, want out of bounds", v.Violations[0])
	}

	v = Check(chair("a", 30, 48), &room, nil, Options{})
	if !v.OK {
		t.Errorf("placement in the leg should be valid, got %+v", v.Violations)
	}
}

func TestCheckCircleDiagonalExcursion(t *testing.T) {
	// Circle near the inner corner of an L-cut: all four axis-aligned
	// extremes and the center sit inside the room, but the rim crosses
	// the corner diagonally. Position is the bounding-box top-left, so
	// the center is at (50, 40), 12.8 in from the corner at (60, 48).
	room := plan.Room{ID: "room", Shape: shape.LShape(120, 96, 60, 48, shape.CornerSE)}
	table := plan.Furniture{ID: "t", Shape: shape.CircleOf(15), Position: geo.Point{X: 35, Y: 25}}

	v := Check(table, &room, nil, Options{})
	if v.OK {
		t.Fatal("circle poking into the notch corner should be invalid")
	}
	if v.Violations[0].Kind != KindOutOfBounds {
		t.Errorf("violation = %+v, want out of bounds", v.Violations[0])
	}

	// Pulled clear of the corner the same circle is fine.
	table.Position = geo.Point{X: 15, Y: 15}
	v = Check(table, &room, nil, Options{})
	if !v.OK {
		t.Errorf("circle clear of the notch should be valid, got %+v", v.Violations)
	}
}

func TestCheckCircularFurniture(t *testing.T) {
	room := testRoom()
	table := plan.Furniture{ID: "t", Shape: shape.CircleOf(15), Position: geo.Point{X: 45, Y: 33}}
	v := Check(table, &room, nil, Options{})
	if !v.OK {
		t.Errorf("circle inside the room should be valid, got %+v", v.Violations)
	}

	table.Position = geo.Point{X: -5, Y: 33}
	v = Check(table, &room, nil, Options{})
	if v.OK {
		t.Error("circle poking out of the room should be invalid")
	}
}

func TestCheckDeterministic(t *testing.T) {
	room := testRoom()
	room.Doors = []plan.Door{{ID: "d", Wall: 0, Position: 0.3, Width: 30, Hinge: plan.HingeRight, Swing: plan.SwingInward}}
	others := []plan.Furniture{chair("b", 30, 30), chair("c", 90, 70)}
	candidate := chair("a", 40, 40)

	first := Check(candidate, &room, others, Options{})
	for i := 0; i < 20; i++ {
		v := Check(candidate, &room, others, Options{})
		if v.OK != first.OK || len(v.Violations) != len(first.Violations) {
			t.Fatal("verdict changed across identical calls")
		}
	}
}
