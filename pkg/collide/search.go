package collide

import (
	"math"

	"github.com/planwright/planwright/pkg/geo"
	"github.com/planwright/planwright/pkg/plan"
)

// Search defaults, in inches.
const (
	// DefaultSearchStep is the ring spacing of the outward search.
	DefaultSearchStep = 2.0

	// DefaultSearchRadius is how far out the search probes (10 ft).
	DefaultSearchRadius = 120.0

	// DefaultSearchGrid is the grid the probe positions snap to.
	DefaultSearchGrid = 0.5
)

// SearchOptions configures NearestValid.
type SearchOptions struct {
	Options

	// Step is the radius increment between rings. Defaults to
	// DefaultSearchStep when zero or negative.
	Step float64

	// MaxRadius bounds the search. Defaults to DefaultSearchRadius
	// when zero or negative.
	MaxRadius float64

	// Grid is the grid probe positions snap to. Defaults to
	// DefaultSearchGrid when zero or negative.
	Grid float64
}

func (o SearchOptions) withDefaults() SearchOptions {
	if o.Step <= 0 {
		o.Step = DefaultSearchStep
	}
	if o.MaxRadius <= 0 {
		o.MaxRadius = DefaultSearchRadius
	}
	if o.Grid <= 0 {
		o.Grid = DefaultSearchGrid
	}
	return o
}

// NearestValid searches outward from the candidate's current position
// for the closest position Check accepts. It probes the starting
// position first, then rings of radius step, 2·step, ... up to
// maxRadius with max(8, ceil(2πr/step)) evenly spaced samples per ring,
// each snapped to the search grid. Scanning ring by ring makes the
// first hit the closest valid position to within one ring's angular
// resolution.
//
// The boolean is false when the search exhausts maxRadius with no valid
// position; the caller picks the fallback policy (revert to the last
// known-valid position, or reject the move).
func NearestValid(candidate plan.Furniture, room *plan.Room, others []plan.Furniture, opts SearchOptions) (geo.Point, bool) {
	opts = opts.withDefaults()
	origin := candidate.Position

	probe := func(pos geo.Point) bool {
		c := candidate
		c.Position = pos
		return Check(c, room, others, opts.Options).OK
	}

	if probe(origin) {
		return origin, true
	}

	for r := opts.Step; r <= opts.MaxRadius; r += opts.Step {
		samples := int(math.Ceil(2 * math.Pi * r / opts.Step))
		if samples < 8 {
			samples = 8
		}
		for i := 0; i < samples; i++ {
			theta := 2 * math.Pi * float64(i) / float64(samples)
			pos := geo.Point{
				X: snap(origin.X+r*math.Cos(theta), opts.Grid),
				Y: snap(origin.Y+r*math.Sin(theta), opts.Grid),
			}
			if probe(pos) {
				return pos, true
			}
		}
	}
	return geo.Point{}, false
}

func snap(v, grid float64) float64 {
	return math.Round(v/grid) * grid
}
