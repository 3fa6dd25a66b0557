package server

import (
	"net/http"

	"github.com/planwright/planwright/pkg/collide"
	"github.com/planwright/planwright/pkg/door"
	"github.com/planwright/planwright/pkg/geo"
	"github.com/planwright/planwright/pkg/plan"
	"github.com/planwright/planwright/pkg/snap"
)

// The engine endpoints are stateless: the client sends the room
// snapshot it is editing and gets the engine's answer back. Nothing is
// read from or written to the store.

// placementRequest is the payload for the placement endpoints. The
// candidate is checked against the room's furniture; if an item with
// the candidate's ID is already in the room it is excluded, so clients
// can send the room as-is while dragging.
type placementRequest struct {
	Room      plan.Room      `json:"room"`
	Candidate plan.Furniture `json:"candidate"`
}

func (s *Server) handlePlacementCheck(w http.ResponseWriter, r *http.Request) {
	var req placementRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	verdict := collide.Check(req.Candidate, &req.Room, req.Room.Others(req.Candidate.ID), collide.Options{})
	writeJSON(w, http.StatusOK, verdict)
}

// nearestResponse carries the search result. Found is false when the
// search exhausted its radius; Position is meaningless then.
type nearestResponse struct {
	Found    bool      `json:"found"`
	Position geo.Point `json:"position"`
}

func (s *Server) handlePlacementNearest(w http.ResponseWriter, r *http.Request) {
	var req placementRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	opts := collide.SearchOptions{
		Step:      s.Config.Engine.SearchStep,
		MaxRadius: s.Config.Engine.SearchRadius,
		Grid:      s.Config.Engine.GridSize,
	}
	pos, found := collide.NearestValid(req.Candidate, &req.Room, req.Room.Others(req.Candidate.ID), opts)
	writeJSON(w, http.StatusOK, nearestResponse{Found: found, Position: pos})
}

// doorGeometryResponse lists the derived geometry of every door in the
// room. Doors whose wall reference does not resolve come back with
// OK=false and no geometry.
type doorGeometryResponse struct {
	Doors []doorGeometry `json:"doors"`
}

type doorGeometry struct {
	DoorID   string         `json:"door_id"`
	Wall     int            `json:"wall"`
	OK       bool           `json:"ok"`
	Geometry *door.Geometry `json:"geometry,omitempty"`
}

func (s *Server) handleDoorGeometry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Room plan.Room `json:"room"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp := doorGeometryResponse{Doors: make([]doorGeometry, 0, len(req.Room.Doors))}
	for _, d := range req.Room.Doors {
		dg := doorGeometry{DoorID: d.ID, Wall: d.Wall}
		if g, ok := door.ComputeForRoom(&req.Room, d); ok {
			dg.OK = true
			dg.Geometry = &g
		}
		resp.Doors = append(resp.Doors, dg)
	}
	writeJSON(w, http.StatusOK, resp)
}

// snapRoomsRequest aligns a dragged room rectangle against anchors.
// A zero threshold uses the configured default.
type snapRoomsRequest struct {
	Moving    geo.Rect   `json:"moving"`
	Anchors   []geo.Rect `json:"anchors"`
	Threshold float64    `json:"threshold,omitempty"`
}

type snapRoomsResponse struct {
	Snapped bool       `json:"snapped"`
	Delta   snap.Delta `json:"delta"`
}

func (s *Server) handleSnapRooms(w http.ResponseWriter, r *http.Request) {
	var req snapRoomsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Threshold <= 0 {
		req.Threshold = s.Config.Engine.SnapThreshold
	}
	delta, snapped := snap.RoomDelta(req.Moving, req.Anchors, req.Threshold)
	writeJSON(w, http.StatusOK, snapRoomsResponse{Snapped: snapped, Delta: delta})
}

// snapWallsRequest snaps a cursor onto the room's walls for door
// placement.
type snapWallsRequest struct {
	Room      plan.Room `json:"room"`
	Cursor    geo.Point `json:"cursor"`
	DoorWidth float64   `json:"door_width"`
	Threshold float64   `json:"threshold,omitempty"`
}

type snapWallsResponse struct {
	Found bool           `json:"found"`
	Point snap.WallPoint `json:"point"`
}

func (s *Server) handleSnapWalls(w http.ResponseWriter, r *http.Request) {
	var req snapWallsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Threshold <= 0 {
		req.Threshold = s.Config.Engine.SnapThreshold
	}
	point, found := snap.NearestWallPoint(req.Cursor, req.Room.Walls(), req.Threshold, req.DoorWidth)
	writeJSON(w, http.StatusOK, snapWallsResponse{Found: found, Point: point})
}
