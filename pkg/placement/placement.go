// Package placement drives the add-furniture and move-furniture
// workflows as an explicit state machine. The UI used to track these
// with scattered booleans; here every transition is a method that
// either advances the machine or returns a sentinel error, so an
// illegal call order cannot leave the workflow half-open.
//
// The machine owns nothing: it holds a snapshot of the room and the
// other furniture for the duration of one workflow and delegates every
// validity decision to the collide package. Confirm on an invalid
// candidate falls back to the last position that validated during the
// drag, and rejects only when there was none.
package placement

import (
	"errors"

	"github.com/planwright/planwright/pkg/collide"
	"github.com/planwright/planwright/pkg/geo"
	"github.com/planwright/planwright/pkg/plan"
)

// Phase is the workflow state.
type Phase string

// Workflow phases. Confirmed and Cancelled are terminal for one
// workflow; a new Begin call starts the next one.
const (
	PhaseIdle      Phase = "idle"
	PhasePlacing   Phase = "placing"
	PhaseMoving    Phase = "moving"
	PhaseConfirmed Phase = "confirmed"
	PhaseCancelled Phase = "cancelled"
)

// Transition errors.
var (
	ErrWorkflowActive  = errors.New("placement: a workflow is already active")
	ErrNoWorkflow      = errors.New("placement: no active workflow")
	ErrNoValidPosition = errors.New("placement: no valid position to confirm")
)

// Machine runs one placement workflow at a time.
type Machine struct {
	phase   Phase
	entity  plan.Furniture
	room    *plan.Room
	others  []plan.Furniture
	opts    collide.Options
	verdict collide.Verdict

	lastValid geo.Point
	hasValid  bool
}

// NewMachine returns an idle machine.
func NewMachine() *Machine {
	return &Machine{phase: PhaseIdle}
}

// Phase returns the current workflow phase.
func (m *Machine) Phase() Phase { return m.phase }

// Entity returns the candidate snapshot at its current position.
func (m *Machine) Entity() plan.Furniture { return m.entity }

// Verdict returns the result of the most recent validity check.
func (m *Machine) Verdict() collide.Verdict { return m.verdict }

// BeginPlacing starts an add workflow for a new entity. The entity's
// current position is checked immediately so Confirm works without an
// intervening Update.
func (m *Machine) BeginPlacing(entity plan.Furniture, room *plan.Room, others []plan.Furniture) error {
	return m.begin(PhasePlacing, entity, room, others, collide.Options{})
}

// BeginMoving starts a move workflow for an existing entity. The
// entity's own previous state is excluded from the pairwise check, and
// its starting position seeds the fallback if it validates.
func (m *Machine) BeginMoving(entity plan.Furniture, room *plan.Room, others []plan.Furniture) error {
	return m.begin(PhaseMoving, entity, room, others, collide.Options{ExcludeID: entity.ID})
}

func (m *Machine) begin(phase Phase, entity plan.Furniture, room *plan.Room, others []plan.Furniture, opts collide.Options) error {
	if m.phase == PhasePlacing || m.phase == PhaseMoving {
		return ErrWorkflowActive
	}
	m.phase = phase
	m.entity = entity
	m.room = room
	m.others = others
	m.opts = opts
	m.hasValid = false

	m.verdict = collide.Check(m.entity, m.room, m.others, m.opts)
	if m.verdict.OK {
		m.lastValid = entity.Position
		m.hasValid = true
	}
	return nil
}

// Update moves the candidate to pos and re-checks it. Valid positions
// are remembered as the Confirm fallback.
func (m *Machine) Update(pos geo.Point) (collide.Verdict, error) {
	if m.phase != PhasePlacing && m.phase != PhaseMoving {
		return collide.Verdict{}, ErrNoWorkflow
	}
	m.entity.Position = pos
	m.verdict = collide.Check(m.entity, m.room, m.others, m.opts)
	if m.verdict.OK {
		m.lastValid = pos
		m.hasValid = true
	}
	return m.verdict, nil
}

// Confirm finishes the workflow and returns the entity to commit. An
// invalid current position falls back to the last valid one seen during
// the workflow; with no valid position at all, the workflow stays
// active and ErrNoValidPosition is returned.
func (m *Machine) Confirm() (plan.Furniture, error) {
	if m.phase != PhasePlacing && m.phase != PhaseMoving {
		return plan.Furniture{}, ErrNoWorkflow
	}
	if !m.verdict.OK {
		if !m.hasValid {
			return plan.Furniture{}, ErrNoValidPosition
		}
		m.entity.Position = m.lastValid
	}
	m.phase = PhaseConfirmed
	return m.entity, nil
}

// Cancel abandons the workflow. The caller discards the candidate (or,
// for a move, leaves the original entity untouched).
func (m *Machine) Cancel() error {
	if m.phase != PhasePlacing && m.phase != PhaseMoving {
		return ErrNoWorkflow
	}
	m.phase = PhaseCancelled
	return nil
}
