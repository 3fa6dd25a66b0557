package plan

import (
	apperrors "github.com/planwright/planwright/pkg/errors"
)

// Validate checks referential integrity of the whole document: shape
// parameters, door wall references, and door widths against their
// walls. It returns the first problem found as a structured error so
// callers can surface the code, or nil when the plan is sound.
//
// Geometry functions do not require a validated plan (they degrade to
// empty results on dangling references), but the store and the API
// reject writes that fail this check.
func (p *Plan) Validate() error {
	if p.ID == "" {
		return apperrors.New(apperrors.ErrCodeInvalidPlan, "plan ID must not be empty")
	}
	seen := make(map[string]bool)
	for i := range p.Rooms {
		r := &p.Rooms[i]
		if r.ID == "" {
			return apperrors.New(apperrors.ErrCodeInvalidPlan, "room %d has an empty ID", i)
		}
		if seen[r.ID] {
			return apperrors.New(apperrors.ErrCodeInvalidPlan, "duplicate room ID %s", r.ID)
		}
		seen[r.ID] = true
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a single room: its shape template, its furniture
// shapes, and every door against the room's current walls.
func (r *Room) Validate() error {
	if err := r.Shape.Validate(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidShape, err, "room %s shape", r.ID)
	}
	for _, f := range r.Furniture {
		if err := f.Shape.Validate(); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidShape, err, "furniture %s shape", f.ID)
		}
	}
	walls := r.Walls()
	for _, d := range r.Doors {
		if err := validateDoor(d, walls); err != nil {
			return err
		}
	}
	return nil
}

func validateDoor(d Door, walls []Wall) error {
	if d.Width <= 0 {
		return apperrors.New(apperrors.ErrCodeInvalidDoor, "door %s width must be positive, got %v", d.ID, d.Width)
	}
	if d.Wall < 0 || d.Wall >= len(walls) {
		return apperrors.New(apperrors.ErrCodeInvalidWall, "door %s references wall %d of %d", d.ID, d.Wall, len(walls))
	}
	if d.Position < 0 || d.Position > 1 {
		return apperrors.New(apperrors.ErrCodeInvalidDoor, "door %s position %v outside [0,1]", d.ID, d.Position)
	}
	if wallLen := walls[d.Wall].UnroundedLength(); d.Width > wallLen {
		return apperrors.New(apperrors.ErrCodeInvalidDoor, "door %s width %v exceeds wall length %v", d.ID, d.Width, wallLen)
	}
	switch d.Hinge {
	case HingeLeft, HingeRight:
	default:
		return apperrors.New(apperrors.ErrCodeInvalidDoor, "door %s has invalid hinge %q", d.ID, d.Hinge)
	}
	switch d.Swing {
	case SwingInward, SwingOutward:
	default:
		return apperrors.New(apperrors.ErrCodeInvalidDoor, "door %s has invalid swing %q", d.ID, d.Swing)
	}
	return nil
}
