package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/planwright/planwright/pkg/geo"
	"github.com/planwright/planwright/pkg/pipeline"
	"github.com/planwright/planwright/pkg/plan"
	"github.com/planwright/planwright/pkg/shape"
)

func browserFixture(t *testing.T) PlanModel {
	t.Helper()

	p := plan.New("Test House")
	den := plan.NewRoom("Den", shape.Rect(120, 96), geo.Point{})
	den.Furniture = append(den.Furniture,
		plan.NewFurniture("Chair", shape.Rect(24, 24), geo.Point{X: 10, Y: 10}))
	den.Doors = append(den.Doors,
		plan.NewDoor(1, 0.5, 36, plan.HingeLeft, plan.SwingInward))
	hall := plan.NewRoom("Hall", shape.Rect(60, 96), geo.Point{X: 120})
	p.Rooms = append(p.Rooms, den, hall)

	report := pipeline.Inspect(context.Background(), p, pipeline.Options{})
	return NewPlanModel(p, report)
}

func TestPlanModelNavigation(t *testing.T) {
	m := browserFixture(t)

	if m.Cursor != 0 {
		t.Fatalf("initial cursor = %d", m.Cursor)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(PlanModel)
	if m.Cursor != 1 {
		t.Errorf("cursor after down = %d, want 1", m.Cursor)
	}

	// Down at the last room stays put.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(PlanModel)
	if m.Cursor != 1 {
		t.Errorf("cursor past end = %d, want 1", m.Cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(PlanModel)
	if m.Cursor != 0 {
		t.Errorf("cursor after up = %d, want 0", m.Cursor)
	}
}

func TestPlanModelDetailToggle(t *testing.T) {
	m := browserFixture(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(PlanModel)
	if !m.Detail {
		t.Fatal("enter should open detail view")
	}

	if view := m.View(); !strings.Contains(view, "Chair") {
		t.Errorf("detail view should list furniture, got:\n%s", view)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(PlanModel)
	if m.Detail {
		t.Error("esc should close detail view")
	}
}

func TestPlanModelListView(t *testing.T) {
	m := browserFixture(t)

	view := m.View()
	for _, want := range []string{"Test House", "Den", "Hall"} {
		if !strings.Contains(view, want) {
			t.Errorf("list view missing %q:\n%s", want, view)
		}
	}
}

func TestPlanModelQuit(t *testing.T) {
	m := browserFixture(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should quit")
	}
}
