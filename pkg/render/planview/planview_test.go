package planview

import (
	"strings"
	"testing"

	"github.com/planwright/planwright/pkg/geo"
	"github.com/planwright/planwright/pkg/plan"
	"github.com/planwright/planwright/pkg/shape"
)

func testPlan() *plan.Plan {
	room := plan.Room{
		ID:    "den",
		Name:  "Den",
		Shape: shape.Rect(120, 96),
		Furniture: []plan.Furniture{
			{ID: "chair-1", Name: "Chair", Shape: shape.Rect(24, 24), Position: geo.Point{X: 60, Y: 20}},
		},
		Doors: []plan.Door{
			{ID: "door-1", Wall: 1, Position: 0.5, Width: 36, Hinge: plan.HingeLeft, Swing: plan.SwingInward},
		},
	}
	return &plan.Plan{ID: "p1", Name: "test", Rooms: []plan.Room{room}}
}

func TestRenderBasics(t *testing.T) {
	out := string(Render(testPlan(), DefaultOptions()))

	for _, want := range []string{"<svg", "<polygon", "Den", "Chair", "sq ft"} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	// Wall labels: 120 in and 96 in walls.
	if !strings.Contains(out, "10&#39;") && !strings.Contains(out, "10'") {
		t.Error("SVG missing 10-foot wall label")
	}
}

func TestRenderSwingArc(t *testing.T) {
	p := testPlan()

	with := string(Render(p, Options{ShowSwings: true}))
	// A 36-inch door at the default 8 px/inch scale has a 288 px arc radius.
	if !strings.Contains(with, "A 288.0 288.0") {
		t.Error("swing arc path missing at default scale")
	}

	without := string(Render(p, Options{ShowSwings: false}))
	if strings.Contains(without, "A 288.0") {
		t.Error("swing arc drawn with swings disabled")
	}
}

func TestRenderGridToggle(t *testing.T) {
	p := testPlan()

	with := string(Render(p, Options{ShowGrid: true}))
	if !strings.Contains(with, gridStroke) {
		t.Error("grid lines missing with grid enabled")
	}
	without := string(Render(p, Options{ShowGrid: false}))
	if strings.Contains(without, gridStroke) {
		t.Error("grid lines drawn with grid disabled")
	}
}

func TestRenderLabelsToggle(t *testing.T) {
	out := string(Render(testPlan(), Options{ShowLabels: false}))
	if strings.Contains(out, "Chair") || strings.Contains(out, "sq ft") {
		t.Error("labels drawn with labels disabled")
	}
}

func TestRenderCircularRoom(t *testing.T) {
	p := &plan.Plan{ID: "p1", Rooms: []plan.Room{
		{ID: "r1", Name: "Turret", Shape: shape.CircleOf(48)},
	}}
	out := string(Render(p, DefaultOptions()))
	if !strings.Contains(out, "<circle") {
		t.Error("circular room should render a circle element")
	}
}

func TestRenderEmptyPlan(t *testing.T) {
	out := string(Render(&plan.Plan{ID: "p1"}, DefaultOptions()))
	if !strings.Contains(out, "<svg") {
		t.Error("empty plan should still render a canvas")
	}
}

func TestFormatLength(t *testing.T) {
	tests := []struct {
		inches float64
		want   string
	}{
		{120, "10'"},
		{96, "8'"},
		{126.5, `10'6.5"`},
		{8, `8"`},
		{0, `0"`},
		{12.0001, "1'"}, // rounds to the measurement increment
	}
	for _, tt := range tests {
		if got := FormatLength(tt.inches); got != tt.want {
			t.Errorf("FormatLength(%v) = %q, want %q", tt.inches, got, tt.want)
		}
	}
}
