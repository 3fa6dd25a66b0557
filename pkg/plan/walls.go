package plan

import (
	"math"

	"github.com/planwright/planwright/pkg/geo"
)

// Orientation classifies a wall segment. Orthogonal outlines make every
// wall one or the other; the diagonal chord of a beveled room falls into
// the vertical bucket (its y-delta is nonzero).
type Orientation string

// Wall orientations.
const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// Wall is one segment of a room outline, derived on demand from the
// vertex ring. Length is rounded to the measurement increment for
// display; Start and End carry the unrounded coordinates the collision
// math uses.
type Wall struct {
	Index       int         `json:"index"`
	Start       geo.Point   `json:"start"`
	End         geo.Point   `json:"end"`
	Orientation Orientation `json:"orientation"`
	Length      float64     `json:"length"`
}

// UnroundedLength returns the exact segment length.
func (w Wall) UnroundedLength() float64 { return w.Start.Dist(w.End) }

// Walls extracts one segment per consecutive vertex pair (with
// wraparound) from the room's world-space outline. Circular rooms have
// no walls; doors cannot be attached to them.
func (r *Room) Walls() []Wall {
	out := r.Outline()
	if out.IsCircle {
		return nil
	}
	return WallSegments(out.Ring)
}

// WallSegments derives wall segments from a vertex ring.
// Rings with fewer than three vertices yield no walls.
func WallSegments(ring geo.Ring) []Wall {
	if len(ring) < 3 {
		return nil
	}
	walls := make([]Wall, len(ring))
	for i := range ring {
		start := ring[i]
		end := ring[(i+1)%len(ring)]
		orient := Vertical
		if math.Abs(end.Y-start.Y) < geo.Epsilon {
			orient = Horizontal
		}
		walls[i] = Wall{
			Index:       i,
			Start:       start,
			End:         end,
			Orientation: orient,
			Length:      geo.RoundToIncrement(start.Dist(end)),
		}
	}
	return walls
}

// WallByIndex returns the wall with the given index and true, or the
// zero wall and false when the index is out of range (for example after
// the room shape changed under a door).
func (r *Room) WallByIndex(i int) (Wall, bool) {
	walls := r.Walls()
	if i < 0 || i >= len(walls) {
		return Wall{}, false
	}
	return walls[i], true
}
