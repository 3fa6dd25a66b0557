package plan

import (
	"bytes"
	"math"
	"path/filepath"
	"testing"

	"github.com/planwright/planwright/pkg/geo"
	"github.com/planwright/planwright/pkg/shape"
)

func TestNewPlan(t *testing.T) {
	p := New("apartment")
	if p.ID == "" {
		t.Error("new plan should have an ID")
	}
	if p.Name != "apartment" {
		t.Errorf("name = %q", p.Name)
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt != p.CreatedAt {
		t.Error("timestamps should be set and equal at creation")
	}

	before := p.UpdatedAt
	p.Touch()
	if p.UpdatedAt.Before(before) {
		t.Error("Touch should advance UpdatedAt")
	}
}

func TestPlanRoomLookup(t *testing.T) {
	p := New("test")
	den := NewRoom("den", shape.Rect(120, 96), geo.Point{})
	p.Rooms = append(p.Rooms, den)

	if got := p.Room(den.ID); got == nil || got.Name != "den" {
		t.Errorf("Room(%q) = %+v", den.ID, got)
	}
	if got := p.Room("missing"); got != nil {
		t.Errorf("Room(missing) = %+v, want nil", got)
	}

	// The returned pointer aliases the plan so edits stick.
	p.Room(den.ID).Name = "office"
	if p.Rooms[0].Name != "office" {
		t.Error("Room should return a pointer into the plan")
	}
}

func TestRoomFurnitureLookup(t *testing.T) {
	r := NewRoom("den", shape.Rect(120, 96), geo.Point{})
	r.Furniture = []Furniture{
		{ID: "a", Name: "sofa"},
		{ID: "b", Name: "lamp"},
		{ID: "c", Name: "desk"},
	}

	if got := r.FurnitureByID("b"); got == nil || got.Name != "lamp" {
		t.Errorf("FurnitureByID(b) = %+v", got)
	}
	if got := r.FurnitureByID("zzz"); got != nil {
		t.Errorf("FurnitureByID(zzz) = %+v, want nil", got)
	}

	others := r.Others("b")
	if len(others) != 2 {
		t.Fatalf("Others(b) has %d items, want 2", len(others))
	}
	for _, f := range others {
		if f.ID == "b" {
			t.Error("Others must exclude the given ID")
		}
	}
}

func TestRoomArea(t *testing.T) {
	rect := NewRoom("den", shape.Rect(120, 96), geo.Point{})
	if got := rect.Area(); math.Abs(got-11520) > 1e-9 {
		t.Errorf("rect area = %v, want 11520", got)
	}

	round := NewRoom("nook", shape.CircleOf(30), geo.Point{})
	if got := round.Area(); math.Abs(got-math.Pi*900) > 1e-9 {
		t.Errorf("circle area = %v, want %v", got, math.Pi*900)
	}
}

func TestPlanJSONRoundTrip(t *testing.T) {
	p := New("apartment")
	room := NewRoom("den", shape.LShape(120, 96, 60, 48, shape.CornerSE), geo.Point{X: 10, Y: 20})
	room.Furniture = []Furniture{{
		ID: "sofa", Name: "sofa", Shape: shape.Rect(84, 36),
		Position: geo.Point{X: 30, Y: 30}, Rotation: shape.Rot90,
	}}
	room.Doors = []Door{NewDoor(1, 0.5, 32, HingeLeft, SwingInward)}
	p.Rooms = append(p.Rooms, room)

	data, err := Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got.ID != p.ID || len(got.Rooms) != 1 {
		t.Fatalf("round trip lost the document: %+v", got)
	}
	r := got.Rooms[0]
	if r.Shape.Kind != shape.KindLShaped || r.Shape.CutCorner != shape.CornerSE {
		t.Errorf("room shape = %+v", r.Shape)
	}
	if r.Furniture[0].Rotation != shape.Rot90 {
		t.Errorf("furniture rotation = %v, want 90", r.Furniture[0].Rotation)
	}
	if r.Doors[0].Swing != SwingInward || r.Doors[0].Position != 0.5 {
		t.Errorf("door = %+v", r.Doors[0])
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("not json"))); err == nil {
		t.Error("expected a decode error")
	}
}

func TestReadWriteFile(t *testing.T) {
	p := New("apartment")
	p.Rooms = append(p.Rooms, NewRoom("den", shape.Rect(120, 96), geo.Point{}))

	path := filepath.Join(t.TempDir(), "plan.json")
	if err := WriteFile(p, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got.ID != p.ID || got.Rooms[0].Name != "den" {
		t.Errorf("round trip = %+v", got)
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
