// Package plan defines the floor-plan document model: plans, rooms,
// furniture, and doors, plus wall extraction from room outlines.
//
// The model is the snapshot the engine packages (collide, door, snap,
// roomgraph) read on every interaction. They never mutate it; walls are
// derived on demand from the room outline and never stored, so a wall
// can never go stale against moved vertices.
//
// Plans serialize to JSON (files, HTTP API) and BSON (Mongo store).
package plan

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/planwright/planwright/pkg/geo"
	"github.com/planwright/planwright/pkg/shape"
)

// Hinge names which end of a door opening is fixed. Left and right are
// relative to the wall's direction of travel (start toward end).
type Hinge string

// Hinge sides.
const (
	HingeLeft  Hinge = "left"
	HingeRight Hinge = "right"
)

// Swing names which side of the wall the door leaf opens toward.
// Outward swings toward the wall's default perpendicular; inward flips
// to the opposite side.
type Swing string

// Swing directions.
const (
	SwingInward  Swing = "inward"
	SwingOutward Swing = "outward"
)

// Door is attached to one wall of its owning room. Position is the
// fraction of the wall length at the door's CENTER - that is the one
// position convention in the engine; callers holding a start offset
// convert at the boundary (see door.AtStartOffset). A door is invalid
// once its wall index no longer exists; the geometry functions report
// that as "no geometry" rather than an error.
type Door struct {
	ID       string  `json:"id" bson:"id"`
	Wall     int     `json:"wall" bson:"wall"`
	Position float64 `json:"position" bson:"position"`
	Width    float64 `json:"width" bson:"width"`
	Hinge    Hinge   `json:"hinge" bson:"hinge"`
	Swing    Swing   `json:"swing" bson:"swing"`
}

// Furniture is a placed entity inside a room. Position is the world
// offset of the shape's local origin (its unrotated top-left corner);
// rotation spins the shape in place about its own center.
type Furniture struct {
	ID       string         `json:"id" bson:"id"`
	Name     string         `json:"name" bson:"name"`
	Shape    shape.Template `json:"shape" bson:"shape"`
	Position geo.Point      `json:"position" bson:"position"`
	Rotation shape.Rotation `json:"rotation" bson:"rotation"`
}

// Room is a world-positioned outline holding furniture and doors.
type Room struct {
	ID        string         `json:"id" bson:"id"`
	Name      string         `json:"name" bson:"name"`
	Shape     shape.Template `json:"shape" bson:"shape"`
	Position  geo.Point      `json:"position" bson:"position"`
	Rotation  shape.Rotation `json:"rotation" bson:"rotation"`
	Furniture []Furniture    `json:"furniture,omitempty" bson:"furniture,omitempty"`
	Doors     []Door         `json:"doors,omitempty" bson:"doors,omitempty"`
}

// Plan is the top-level document.
type Plan struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Rooms     []Room    `json:"rooms,omitempty" bson:"rooms,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// New creates an empty plan with a fresh ID and timestamps.
func New(name string) *Plan {
	now := time.Now().UTC()
	return &Plan{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewRoom creates a room with a fresh ID.
func NewRoom(name string, tpl shape.Template, pos geo.Point) Room {
	return Room{ID: uuid.NewString(), Name: name, Shape: tpl, Position: pos}
}

// NewFurniture creates a furniture item with a fresh ID.
func NewFurniture(name string, tpl shape.Template, pos geo.Point) Furniture {
	return Furniture{ID: uuid.NewString(), Name: name, Shape: tpl, Position: pos}
}

// NewDoor creates a door with a fresh ID on the given wall.
// position is the center fraction along the wall, width in inches.
func NewDoor(wall int, position, width float64, hinge Hinge, swing Swing) Door {
	return Door{ID: uuid.NewString(), Wall: wall, Position: position, Width: width, Hinge: hinge, Swing: swing}
}

// Room lookups.

// Room returns the room with the given ID, or nil.
func (p *Plan) Room(id string) *Room {
	for i := range p.Rooms {
		if p.Rooms[i].ID == id {
			return &p.Rooms[i]
		}
	}
	return nil
}

// Touch updates the plan's modification timestamp.
func (p *Plan) Touch() { p.UpdatedAt = time.Now().UTC() }

// Outline resolves the room's shape to world-space geometry.
func (r *Room) Outline() shape.Outline {
	return shape.Resolve(r.Shape, r.Rotation, r.Position)
}

// Area returns the room's floor area in square inches (display only).
func (r *Room) Area() float64 {
	out := r.Outline()
	if out.IsCircle {
		return math.Pi * out.Circle.Radius * out.Circle.Radius
	}
	return out.Ring.Area()
}

// FurnitureByID returns the furniture item with the given ID, or nil.
func (r *Room) FurnitureByID(id string) *Furniture {
	for i := range r.Furniture {
		if r.Furniture[i].ID == id {
			return &r.Furniture[i]
		}
	}
	return nil
}

// Others returns the room's furniture excluding the given ID.
// Used to build the "other entities" snapshot for collision checks.
func (r *Room) Others(excludeID string) []Furniture {
	others := make([]Furniture, 0, len(r.Furniture))
	for _, f := range r.Furniture {
		if f.ID != excludeID {
			others = append(others, f)
		}
	}
	return others
}
