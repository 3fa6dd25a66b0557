package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/planwright/planwright/pkg/cache"
	apperrors "github.com/planwright/planwright/pkg/errors"
	"github.com/planwright/planwright/pkg/plan"
	"github.com/planwright/planwright/pkg/render/adjacency"
	"github.com/planwright/planwright/pkg/render/planview"
	"github.com/planwright/planwright/pkg/roomgraph"
	"github.com/planwright/planwright/pkg/session"
)

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.Store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var p plan.Plan
	if err := decode(r, &p); err != nil {
		writeError(w, err)
		return
	}
	if p.ID == "" {
		fresh := plan.New(p.Name)
		p.ID = fresh.ID
		p.CreatedAt = fresh.CreatedAt
	}
	p.Touch()
	if err := s.Store.Put(r.Context(), &p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &p)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	p, err := s.Store.Get(r.Context(), chi.URLParam(r, "planID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePutPlan(w http.ResponseWriter, r *http.Request) {
	var p plan.Plan
	if err := decode(r, &p); err != nil {
		writeError(w, err)
		return
	}
	if id := chi.URLParam(r, "planID"); p.ID != id {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidPlan, "plan ID %q does not match URL %q", p.ID, id))
		return
	}
	p.Touch()
	if err := s.Store.Put(r.Context(), &p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &p)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "planID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleReport runs the inspect stage on a stored plan, cached on its
// content hash like the CLI pipeline.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	p, err := s.Store.Get(r.Context(), chi.URLParam(r, "planID"))
	if err != nil {
		writeError(w, err)
		return
	}

	opts := s.Config.PipelineOptions()
	opts.Refresh = r.URL.Query().Get("refresh") == "true"

	hash := ""
	if data, err := plan.Marshal(p); err == nil {
		hash = cache.Hash(data)
	}
	report, _, err := s.Runner.InspectWithCacheInfo(r.Context(), p, hash, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleRenderSVG(w http.ResponseWriter, r *http.Request) {
	p, err := s.Store.Get(r.Context(), chi.URLParam(r, "planID"))
	if err != nil {
		writeError(w, err)
		return
	}

	opts := planview.Options{
		Scale:      s.Config.Render.Scale,
		ShowGrid:   s.Config.Render.ShowGrid,
		ShowSwings: s.Config.Render.ShowSwings,
		ShowLabels: s.Config.Render.ShowLabels,
	}
	q := r.URL.Query()
	if v := q.Get("grid"); v != "" {
		opts.ShowGrid = v == "true"
	}
	if v := q.Get("swings"); v != "" {
		opts.ShowSwings = v == "true"
	}
	if v := q.Get("labels"); v != "" {
		opts.ShowLabels = v == "true"
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(planview.Render(p, opts))
}

func (s *Server) handleGraphDOT(w http.ResponseWriter, r *http.Request) {
	p, err := s.Store.Get(r.Context(), chi.URLParam(r, "planID"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	_, _ = w.Write([]byte(adjacency.ToDOT(roomgraph.Build(p))))
}

// Presence endpoints. Sessions are created against an existing plan and
// kept alive by heartbeats; listing prunes nothing, the stores filter
// expired sessions on read.

type createSessionRequest struct {
	Editor string `json:"editor"`
	Color  string `json:"color,omitempty"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planID")
	if _, err := s.Store.Get(r.Context(), planID); err != nil {
		writeError(w, err)
		return
	}

	var req createSessionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Editor == "" {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "editor is required"))
		return
	}

	sess, err := session.New(planID, req.Editor, req.Color, session.DefaultTTL)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.Sessions.Set(r.Context(), sess); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.Sessions.ByPlan(r.Context(), chi.URLParam(r, "planID"))
	if err != nil {
		writeError(w, err)
		return
	}
	if sessions == nil {
		sessions = []*session.Session{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleHeartbeat(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if err := s.Sessions.Touch(r.Context(), id, session.DefaultTTL); err != nil {
		writeError(w, err)
		return
	}
	sess, err := s.Sessions.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
