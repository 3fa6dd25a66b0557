// Package store persists plan documents. Three backends share one
// interface: an in-memory map for tests and ephemeral servers, a JSON
// file directory for local single-user use, and MongoDB for the hosted
// deployment.
//
// Every backend is safe for concurrent use and returns detached copies:
// mutating a plan obtained from Get never changes stored state until
// the caller Puts it back.
package store

import (
	"context"

	apperrors "github.com/planwright/planwright/pkg/errors"
	"github.com/planwright/planwright/pkg/plan"
)

// Store is the plan persistence interface.
type Store interface {
	// Get returns the plan with the given ID, or an error carrying
	// ErrCodePlanNotFound.
	Get(ctx context.Context, id string) (*plan.Plan, error)

	// Put inserts or replaces a plan. The plan must pass Validate.
	Put(ctx context.Context, p *plan.Plan) error

	// Delete removes a plan. Deleting a missing plan returns
	// ErrCodePlanNotFound.
	Delete(ctx context.Context, id string) error

	// List returns all stored plans, ordered by ID.
	List(ctx context.Context) ([]*plan.Plan, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

func notFound(id string) error {
	return apperrors.New(apperrors.ErrCodePlanNotFound, "plan %s not found", id)
}

func checkPlan(p *plan.Plan) error {
	if p == nil || p.ID == "" {
		return apperrors.New(apperrors.ErrCodeInvalidPlan, "plan must have an ID")
	}
	return p.Validate()
}
