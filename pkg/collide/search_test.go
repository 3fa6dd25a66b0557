package collide

import (
	"math"
	"testing"

	"github.com/planwright/planwright/pkg/geo"
	"github.com/planwright/planwright/pkg/plan"
	"github.com/planwright/planwright/pkg/shape"
)

func TestNearestValidKeepsValidOrigin(t *testing.T) {
	room := testRoom()
	// An off-grid but valid position comes back untouched.
	c := plan.Furniture{ID: "a", Shape: shape.Rect(24, 24), Position: geo.Point{X: 33.3, Y: 40.2}}
	pos, ok := NearestValid(c, &room, nil, SearchOptions{})
	if !ok {
		t.Fatal("expected a valid position")
	}
	if pos != c.Position {
		t.Errorf("pos = %v, want the unchanged origin %v", pos, c.Position)
	}
}

func TestNearestValidResolvesStackedDuplicate(t *testing.T) {
	// A second identical chair dropped directly on top of the first, in
	// a room with plenty of free floor: the search must find a spot, and
	// the spot must re-validate.
	room := testRoom()
	existing := chair("a", 60, 48)
	dup := chair("b", 60, 48)

	pos, ok := NearestValid(dup, &room, []plan.Furniture{existing}, SearchOptions{})
	if !ok {
		t.Fatal("search exhausted; expected a valid position")
	}

	dup.Position = pos
	if v := Check(dup, &room, []plan.Furniture{existing}, Options{}); !v.OK {
		t.Errorf("returned position %v does not re-validate: %+v", pos, v.Violations)
	}

	// The found spot snaps to the half-inch grid.
	for _, coord := range []float64{pos.X, pos.Y} {
		if snapped := math.Round(coord/DefaultSearchGrid) * DefaultSearchGrid; snapped != coord {
			t.Errorf("coordinate %v is off the search grid", coord)
		}
	}
}

func TestNearestValidStaysNearOrigin(t *testing.T) {
	// Scanning ring by ring means the hit is close: the duplicate needs
	// to move about one footprint away, not across the room.
	room := testRoom()
	existing := chair("a", 60, 48)
	dup := chair("b", 60, 48)

	pos, ok := NearestValid(dup, &room, []plan.Furniture{existing}, SearchOptions{})
	if !ok {
		t.Fatal("expected a valid position")
	}
	if d := pos.Dist(dup.Position); d > 40 {
		t.Errorf("found position %v is %v in from the origin, want a nearby spot", pos, d)
	}
}

func TestNearestValidExhaustsSmallRoom(t *testing.T) {
	// The furniture cannot fit in the room at all; the search reports
	// failure instead of a bogus position.
	room := plan.Room{ID: "closet", Shape: shape.Rect(20, 20)}
	c := plan.Furniture{ID: "a", Shape: shape.Rect(24, 24), Position: geo.Point{X: -2, Y: -2}}
	pos, ok := NearestValid(c, &room, nil, SearchOptions{MaxRadius: 30})
	if ok {
		t.Errorf("expected exhaustion, got %v", pos)
	}
	if pos != (geo.Point{}) {
		t.Errorf("exhausted search should return the zero point, got %v", pos)
	}
}

func TestNearestValidAvoidsDoorSwing(t *testing.T) {
	room := testRoom()
	room.Doors = []plan.Door{{
		ID: "door", Wall: 1, Position: 0.5, Width: 32,
		Hinge: plan.HingeLeft, Swing: plan.SwingInward,
	}}

	// Starting inside the swing region near the bottom wall.
	c := chair("a", 50, 80)
	pos, ok := NearestValid(c, &room, nil, SearchOptions{})
	if !ok {
		t.Fatal("expected a valid position")
	}
	c.Position = pos
	if v := Check(c, &room, nil, Options{}); !v.OK {
		t.Errorf("returned position %v does not re-validate: %+v", pos, v.Violations)
	}
}

func TestNearestValidDeterministic(t *testing.T) {
	room := testRoom()
	existing := chair("a", 60, 48)
	dup := chair("b", 60, 48)

	first, ok := NearestValid(dup, &room, []plan.Furniture{existing}, SearchOptions{})
	if !ok {
		t.Fatal("expected a valid position")
	}
	for i := 0; i < 10; i++ {
		pos, ok := NearestValid(dup, &room, []plan.Furniture{existing}, SearchOptions{})
		if !ok || pos != first {
			t.Fatalf("search result changed across identical calls: %v vs %v", pos, first)
		}
	}
}
