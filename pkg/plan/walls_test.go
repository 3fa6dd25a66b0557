package plan

import (
	"math"
	"testing"

	"github.com/planwright/planwright/pkg/geo"
	"github.com/planwright/planwright/pkg/shape"
)

func TestWallsRectangularRoom(t *testing.T) {
	r := NewRoom("den", shape.Rect(120, 96), geo.Point{})
	walls := r.Walls()
	if len(walls) != 4 {
		t.Fatalf("got %d walls, want 4", len(walls))
	}

	want := []struct {
		start, end  geo.Point
		orientation Orientation
		length      float64
	}{
		{geo.Point{X: 0, Y: 0}, geo.Point{X: 0, Y: 96}, Vertical, 96},
		{geo.Point{X: 0, Y: 96}, geo.Point{X: 120, Y: 96}, Horizontal, 120},
		{geo.Point{X: 120, Y: 96}, geo.Point{X: 120, Y: 0}, Vertical, 96},
		{geo.Point{X: 120, Y: 0}, geo.Point{X: 0, Y: 0}, Horizontal, 120},
	}
	for i, w := range walls {
		if w.Index != i {
			t.Errorf("wall %d carries index %d", i, w.Index)
		}
		if w.Start != want[i].start || w.End != want[i].end {
			t.Errorf("wall %d = %v..%v, want %v..%v", i, w.Start, w.End, want[i].start, want[i].end)
		}
		if w.Orientation != want[i].orientation {
			t.Errorf("wall %d orientation = %s, want %s", i, w.Orientation, want[i].orientation)
		}
		if w.Length != want[i].length {
			t.Errorf("wall %d length = %v, want %v", i, w.Length, want[i].length)
		}
	}
}

func TestWallsFollowRoomPosition(t *testing.T) {
	r := NewRoom("den", shape.Rect(120, 96), geo.Point{X: 50, Y: 30})
	walls := r.Walls()
	if walls[0].Start != (geo.Point{X: 50, Y: 30}) {
		t.Errorf("wall 0 start = %v, want world position (50,30)", walls[0].Start)
	}
}

func TestWallsLShapedRoom(t *testing.T) {
	r := NewRoom("den", shape.LShape(120, 96, 60, 48, shape.CornerSE), geo.Point{})
	walls := r.Walls()
	if len(walls) != 6 {
		t.Fatalf("got %d walls, want 6", len(walls))
	}
	// Six orthogonal walls, each horizontal or vertical, total perimeter
	// unchanged by the notch: 2*(120+96).
	perimeter := 0.0
	for _, w := range walls {
		if w.Orientation != Horizontal && w.Orientation != Vertical {
			t.Errorf("wall %d has orientation %q", w.Index, w.Orientation)
		}
		perimeter += w.UnroundedLength()
	}
	if math.Abs(perimeter-432) > 1e-9 {
		t.Errorf("perimeter = %v, want 432", perimeter)
	}
}

func TestWallsCircularRoom(t *testing.T) {
	r := NewRoom("nook", shape.CircleOf(30), geo.Point{})
	if walls := r.Walls(); walls != nil {
		t.Errorf("circular room should have no walls, got %d", len(walls))
	}
	if _, ok := r.WallByIndex(0); ok {
		t.Error("WallByIndex on a circular room should report false")
	}
}

func TestWallLengthRounding(t *testing.T) {
	// Display length rounds to the eighth-inch increment; the exact
	// length stays available for geometry.
	walls := WallSegments(geo.Ring{{X: 0, Y: 0}, {X: 0, Y: 5}, {X: 10.06, Y: 5}, {X: 10.06, Y: 0}})
	top := walls[3]
	if top.Length != 10.0 {
		t.Errorf("rounded length = %v, want 10", top.Length)
	}
	if math.Abs(top.UnroundedLength()-10.06) > 1e-9 {
		t.Errorf("unrounded length = %v, want 10.06", top.UnroundedLength())
	}
}

func TestWallSegmentsDegenerateRing(t *testing.T) {
	if walls := WallSegments(nil); walls != nil {
		t.Error("nil ring should yield no walls")
	}
	if walls := WallSegments(geo.Ring{{X: 0, Y: 0}, {X: 10, Y: 0}}); walls != nil {
		t.Error("two-vertex ring should yield no walls")
	}
}

func TestWallByIndex(t *testing.T) {
	r := NewRoom("den", shape.Rect(120, 96), geo.Point{})
	if w, ok := r.WallByIndex(1); !ok || w.Index != 1 {
		t.Errorf("WallByIndex(1) = %+v, %v", w, ok)
	}
	for _, i := range []int{-1, 4, 100} {
		if _, ok := r.WallByIndex(i); ok {
			t.Errorf("WallByIndex(%d) should report false", i)
		}
	}
}
