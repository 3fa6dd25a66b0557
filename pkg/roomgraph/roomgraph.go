// Package roomgraph derives a connectivity graph from a floor plan:
// one node per room plus a synthetic exterior node, one undirected edge
// per door. A door connects its room to whichever room lies on the far
// side of its wall at the door's position, or to the exterior when
// nothing is there.
//
// The graph answers layout-review questions the geometric validator
// cannot: which rooms a given room opens into, how many doors connect a
// pair, and whether any room is unreachable from the exterior.
package roomgraph

import (
	"errors"
	"maps"
	"slices"

	"github.com/planwright/planwright/pkg/door"
	"github.com/planwright/planwright/pkg/geo"
	"github.com/planwright/planwright/pkg/plan"
)

// ExteriorID is the node representing everything outside the plan.
const ExteriorID = "exterior"

// probeInset is how far beyond a door's wall (in inches) the far-side
// room lookup samples. Small enough not to skip over a neighboring
// room, large enough to clear the shared edge.
const probeInset = 1.0

var (
	// ErrUnknownRoom is returned by traversals starting at a node that
	// is not in the graph.
	ErrUnknownRoom = errors.New("roomgraph: unknown room")

	// ErrDanglingEdge is returned by Validate when an edge references a
	// node that does not exist. This indicates graph corruption.
	ErrDanglingEdge = errors.New("roomgraph: edge references a missing node")
)

// Edge is one door connection. From is the room owning the door; To is
// the room on the far side of the wall, or ExteriorID.
type Edge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	DoorID string `json:"door_id"`
	Wall   int    `json:"wall"`
}

// Graph is the derived connectivity graph. It is a snapshot: rebuilding
// after every plan edit is cheap and keeps it consistent with the
// geometry. Not safe for concurrent mutation.
type Graph struct {
	names     map[string]string // node ID -> display name
	adjacency map[string][]string
	edges     []Edge
}

// Build derives the graph from a plan. Doors whose wall reference no
// longer resolves are skipped, matching the validator's behavior.
func Build(p *plan.Plan) *Graph {
	g := &Graph{
		names:     map[string]string{ExteriorID: "exterior"},
		adjacency: make(map[string][]string),
	}
	for i := range p.Rooms {
		g.names[p.Rooms[i].ID] = p.Rooms[i].Name
	}

	for i := range p.Rooms {
		r := &p.Rooms[i]
		for _, d := range r.Doors {
			geom, ok := door.ComputeForRoom(r, d)
			if !ok {
				continue
			}
			wall, _ := r.WallByIndex(d.Wall)
			to := g.farSide(p, r.ID, doorProbe(wall, geom))
			g.addEdge(Edge{From: r.ID, To: to, DoorID: d.ID, Wall: d.Wall})
		}
	}
	return g
}

// doorProbe returns a sample point just beyond the wall, on its outward
// side, at the door center.
func doorProbe(w plan.Wall, g door.Geometry) geo.Point {
	center := geo.Lerp(g.Start, g.End, 0.5)
	length := w.UnroundedLength()
	if length == 0 {
		return center
	}
	// Outward normal: the wall direction rotated +90°, which room
	// outlines wind to point out of the room.
	nx := -(w.End.Y - w.Start.Y) / length
	ny := (w.End.X - w.Start.X) / length
	return geo.Point{X: center.X + nx*probeInset, Y: center.Y + ny*probeInset}
}

// farSide finds the room containing the probe point, excluding the
// door's own room. No match means the door opens to the exterior.
func (g *Graph) farSide(p *plan.Plan, ownID string, probe geo.Point) string {
	for i := range p.Rooms {
		r := &p.Rooms[i]
		if r.ID == ownID {
			continue
		}
		if r.Outline().Contains(probe) {
			return r.ID
		}
	}
	return ExteriorID
}

func (g *Graph) addEdge(e Edge) {
	g.edges = append(g.edges, e)
	g.adjacency[e.From] = append(g.adjacency[e.From], e.To)
	g.adjacency[e.To] = append(g.adjacency[e.To], e.From)
}

// Nodes returns all node IDs (rooms plus the exterior), sorted.
func (g *Graph) Nodes() []string {
	return slices.Sorted(maps.Keys(g.names))
}

// Name returns the display name of a node, or the ID itself when the
// node is unknown.
func (g *Graph) Name(id string) string {
	if name, ok := g.names[id]; ok && name != "" {
		return name
	}
	return id
}

// Edges returns a copy of all door edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Neighbors returns the distinct nodes connected to id, sorted.
func (g *Graph) Neighbors(id string) []string {
	seen := make(map[string]bool)
	for _, n := range g.adjacency[id] {
		seen[n] = true
	}
	return slices.Sorted(maps.Keys(seen))
}

// DoorCount returns the number of doors connecting a and b, in either
// direction.
func (g *Graph) DoorCount(a, b string) int {
	count := 0
	for _, e := range g.edges {
		if (e.From == a && e.To == b) || (e.From == b && e.To == a) {
			count++
		}
	}
	return count
}

// Reachable returns the set of nodes reachable from the given node,
// including itself. ErrUnknownRoom when the start node does not exist.
func (g *Graph) Reachable(from string) (map[string]bool, error) {
	if _, ok := g.names[from]; !ok {
		return nil, ErrUnknownRoom
	}
	seen := map[string]bool{from: true}
	queue := []string{from}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, n := range g.adjacency[id] {
			if !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return seen, nil
}

// Unreachable returns the rooms with no door path to the exterior,
// sorted. A plan where every room connects outward returns nil.
func (g *Graph) Unreachable() []string {
	reachable, err := g.Reachable(ExteriorID)
	if err != nil {
		return nil
	}
	var out []string
	for id := range g.names {
		if id != ExteriorID && !reachable[id] {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

// Validate checks that every edge references existing nodes.
func (g *Graph) Validate() error {
	for _, e := range g.edges {
		if _, ok := g.names[e.From]; !ok {
			return ErrDanglingEdge
		}
		if _, ok := g.names[e.To]; !ok {
			return ErrDanglingEdge
		}
	}
	return nil
}
