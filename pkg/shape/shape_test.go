package shape

import (
	"math"
	"testing"

	"github.com/planwright/planwright/pkg/geo"
)

func TestResolveRectangle(t *testing.T) {
	out := Resolve(Rect(24, 12), Rot0, geo.Point{X: 10, Y: 20})
	want := geo.Ring{{X: 10, Y: 20}, {X: 10, Y: 32}, {X: 34, Y: 32}, {X: 34, Y: 20}}
	if out.IsCircle {
		t.Fatal("rectangle resolved to a circle")
	}
	if len(out.Ring) != 4 {
		t.Fatalf("ring has %d vertices, want 4", len(out.Ring))
	}
	for i := range want {
		if out.Ring[i] != want[i] {
			t.Errorf("vertex %d = %v, want %v", i, out.Ring[i], want[i])
		}
	}
}

func TestResolveCircle(t *testing.T) {
	out := Resolve(CircleOf(15), Rot90, geo.Point{X: 0, Y: 0})
	if !out.IsCircle {
		t.Fatal("circle resolved to a ring")
	}
	if out.Circle.Center != (geo.Point{X: 15, Y: 15}) {
		t.Errorf("center = %v, want (15,15)", out.Circle.Center)
	}
	if out.Circle.Radius != 15 {
		t.Errorf("radius = %v, want 15", out.Circle.Radius)
	}
}

func TestResolveLShapedCorners(t *testing.T) {
	// 10x10 with a 4x4 cut; the notch area is always 100-16.
	for _, corner := range []Corner{CornerNW, CornerNE, CornerSW, CornerSE} {
		out := Resolve(LShape(10, 10, 4, 4, corner), Rot0, geo.Point{})
		if len(out.Ring) != 6 {
			t.Errorf("%s: ring has %d vertices, want 6", corner, len(out.Ring))
		}
		if got := out.Ring.Area(); math.Abs(got-84) > 1e-9 {
			t.Errorf("%s: area = %v, want 84", corner, got)
		}
	}
}

func TestResolveLShapedNotchIsOutside(t *testing.T) {
	out := Resolve(LShape(10, 10, 4, 4, CornerSE), Rot0, geo.Point{})
	if out.Ring.Contains(geo.Point{X: 9, Y: 9}) {
		t.Error("point in the SE notch should be outside")
	}
	if !out.Ring.Contains(geo.Point{X: 2, Y: 2}) {
		t.Error("point in the body should be inside")
	}
}

func TestResolveLShapedClampsOversizedCut(t *testing.T) {
	// Cut wider than the shape: clamp instead of emitting a bad ring.
	out := Resolve(LShape(10, 10, 50, 4, CornerSE), Rot0, geo.Point{})
	if len(out.Ring) != 6 {
		t.Fatalf("ring has %d vertices, want 6", len(out.Ring))
	}
	bounds := out.Ring.Bounds()
	if bounds.W != 10 || bounds.H != 10 {
		t.Errorf("bounds = %vx%v, want 10x10", bounds.W, bounds.H)
	}
	if got := out.Ring.Area(); got <= 0 {
		t.Errorf("area = %v, want positive", got)
	}
}

func TestResolveLShapedZeroCutDegradesToRectangle(t *testing.T) {
	out := Resolve(LShape(10, 10, 0, 4, CornerSE), Rot0, geo.Point{})
	if len(out.Ring) != 4 {
		t.Errorf("ring has %d vertices, want 4", len(out.Ring))
	}
}

func TestResolveBeveled(t *testing.T) {
	out := Resolve(Bevel(10, 10, 3, CornerNE), Rot0, geo.Point{})
	if len(out.Ring) != 5 {
		t.Fatalf("ring has %d vertices, want 5", len(out.Ring))
	}
	// Chord removes half of a 3x3 corner square.
	if got := out.Ring.Area(); math.Abs(got-95.5) > 1e-9 {
		t.Errorf("area = %v, want 95.5", got)
	}
}

func TestRotationIdempotence(t *testing.T) {
	// Four successive 90° turns reproduce the original vertices exactly.
	base := Resolve(Rect(24, 12), Rot0, geo.Point{X: 5, Y: 7})

	ring := make(geo.Ring, len(base.Ring))
	copy(ring, base.Ring)
	center := geo.Point{X: 5 + 12, Y: 7 + 6}
	for turn := 0; turn < 4; turn++ {
		for i, p := range ring {
			ring[i] = rotateAbout(p, center, Rot90)
		}
	}
	for i := range base.Ring {
		if ring[i] != base.Ring[i] {
			t.Errorf("vertex %d = %v, want %v after four turns", i, ring[i], base.Ring[i])
		}
	}
}

func TestResolveRotation90SwapsExtent(t *testing.T) {
	out := Resolve(Rect(24, 12), Rot90, geo.Point{})
	bounds := out.Ring.Bounds()
	if bounds.W != 12 || bounds.H != 24 {
		t.Errorf("bounds = %vx%v, want 12x24", bounds.W, bounds.H)
	}
	// Rotation is about the shape center, so the center must not move.
	if got := bounds.Center(); got != (geo.Point{X: 12, Y: 6}) {
		t.Errorf("center = %v, want (12,6)", got)
	}
}

func TestRotationNormalize(t *testing.T) {
	tests := []struct {
		in   Rotation
		want Rotation
	}{
		{0, Rot0}, {90, Rot90}, {360, Rot0}, {450, Rot90}, {-90, Rot270}, {180, Rot180},
	}
	for _, tt := range tests {
		if got := tt.in.Normalize(); got != tt.want {
			t.Errorf("Normalize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRotateRect(t *testing.T) {
	r := geo.Rect{Min: geo.Point{X: 0, Y: 0}, W: 4, H: 2}
	c := geo.Point{X: 2, Y: 1}

	got := RotateRect(r, c, Rot90)
	if got.W != 2 || got.H != 4 {
		t.Errorf("90°: size = %vx%v, want 2x4", got.W, got.H)
	}
	if got.Min != (geo.Point{X: 1, Y: -1}) {
		t.Errorf("90°: min = %v, want (1,-1)", got.Min)
	}

	// Four turns bring the rect back exactly.
	back := r
	for i := 0; i < 4; i++ {
		back = RotateRect(back, c, Rot90)
	}
	if back != r {
		t.Errorf("four turns = %+v, want %+v", back, r)
	}
}

func TestTemplateValidate(t *testing.T) {
	tests := []struct {
		name    string
		tpl     Template
		wantErr bool
	}{
		{"valid rect", Rect(10, 10), false},
		{"zero rect", Rect(0, 10), true},
		{"valid circle", CircleOf(5), false},
		{"zero circle", CircleOf(0), true},
		{"valid l-shape", LShape(10, 10, 4, 4, CornerSE), false},
		{"cut too wide", LShape(10, 10, 10, 4, CornerSE), true},
		{"bad corner", LShape(10, 10, 4, 4, Corner("north")), true},
		{"valid bevel", Bevel(10, 10, 3, CornerNE), false},
		{"bevel too big", Bevel(10, 10, 10, CornerNE), true},
		{"unknown kind", Template{Kind: "hexagon"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.tpl.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
