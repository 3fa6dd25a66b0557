package plan

import (
	"testing"

	apperrors "github.com/planwright/planwright/pkg/errors"
	"github.com/planwright/planwright/pkg/geo"
	"github.com/planwright/planwright/pkg/shape"
)

func validPlan() *Plan {
	p := New("apartment")
	room := NewRoom("den", shape.Rect(120, 96), geo.Point{})
	room.Furniture = []Furniture{{ID: "sofa", Shape: shape.Rect(84, 36), Position: geo.Point{X: 10, Y: 10}}}
	room.Doors = []Door{{ID: "door", Wall: 1, Position: 0.5, Width: 32, Hinge: HingeLeft, Swing: SwingInward}}
	p.Rooms = append(p.Rooms, room)
	return p
}

func TestValidatePlan(t *testing.T) {
	if err := validPlan().Validate(); err != nil {
		t.Errorf("valid plan rejected: %v", err)
	}
}

func TestValidatePlanErrors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Plan)
		wantCode apperrors.Code
	}{
		{
			"empty plan ID",
			func(p *Plan) { p.ID = "" },
			apperrors.ErrCodeInvalidPlan,
		},
		{
			"empty room ID",
			func(p *Plan) { p.Rooms[0].ID = "" },
			apperrors.ErrCodeInvalidPlan,
		},
		{
			"duplicate room ID",
			func(p *Plan) { p.Rooms = append(p.Rooms, Room{ID: p.Rooms[0].ID, Shape: shape.Rect(60, 60)}) },
			apperrors.ErrCodeInvalidPlan,
		},
		{
			"bad room shape",
			func(p *Plan) { p.Rooms[0].Shape = shape.Rect(0, 96) },
			apperrors.ErrCodeInvalidShape,
		},
		{
			"bad furniture shape",
			func(p *Plan) { p.Rooms[0].Furniture[0].Shape = shape.Template{Kind: "hexagon"} },
			apperrors.ErrCodeInvalidShape,
		},
		{
			"dangling door wall",
			func(p *Plan) { p.Rooms[0].Doors[0].Wall = 9 },
			apperrors.ErrCodeInvalidWall,
		},
		{
			"negative door wall",
			func(p *Plan) { p.Rooms[0].Doors[0].Wall = -1 },
			apperrors.ErrCodeInvalidWall,
		},
		{
			"zero door width",
			func(p *Plan) { p.Rooms[0].Doors[0].Width = 0 },
			apperrors.ErrCodeInvalidDoor,
		},
		{
			"door wider than wall",
			func(p *Plan) { p.Rooms[0].Doors[0].Width = 200 },
			apperrors.ErrCodeInvalidDoor,
		},
		{
			"door position out of range",
			func(p *Plan) { p.Rooms[0].Doors[0].Position = 1.5 },
			apperrors.ErrCodeInvalidDoor,
		},
		{
			"bad hinge",
			func(p *Plan) { p.Rooms[0].Doors[0].Hinge = Hinge("middle") },
			apperrors.ErrCodeInvalidDoor,
		},
		{
			"bad swing",
			func(p *Plan) { p.Rooms[0].Doors[0].Swing = Swing("sideways") },
			apperrors.ErrCodeInvalidDoor,
		},
		{
			"door on circular room",
			func(p *Plan) { p.Rooms[0].Shape = shape.CircleOf(60) },
			apperrors.ErrCodeInvalidWall,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPlan()
			tt.mutate(p)
			err := p.Validate()
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := apperrors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %q, want %q (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}
