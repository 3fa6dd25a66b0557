package footprint

import (
	"math"
	"testing"

	"github.com/planwright/planwright/pkg/geo"
	"github.com/planwright/planwright/pkg/shape"
)

func TestComputeRectangle(t *testing.T) {
	f := Compute(shape.Rect(24, 12), geo.Point{X: 10, Y: 20}, shape.Rot0)
	if f.IsCircle || len(f.Rects) != 1 {
		t.Fatalf("want one rect, got %+v", f)
	}
	want := geo.Rect{Min: geo.Point{X: 10, Y: 20}, W: 24, H: 12}
	if f.Rects[0] != want {
		t.Errorf("rect = %+v, want %+v", f.Rects[0], want)
	}
}

func TestComputeRotationSwapsBoundingBox(t *testing.T) {
	for _, rot := range []shape.Rotation{shape.Rot90, shape.Rot270} {
		f := Compute(shape.Rect(24, 12), geo.Point{}, rot)
		box := f.BoundingBox()
		if box.W != 12 || box.H != 24 {
			t.Errorf("rot %d: bbox = %vx%v, want 12x24", rot, box.W, box.H)
		}
		// Rotation is in place about the shape center.
		if got := box.Center(); got != (geo.Point{X: 12, Y: 6}) {
			t.Errorf("rot %d: center = %v, want (12,6)", rot, got)
		}
	}
	f := Compute(shape.Rect(24, 12), geo.Point{}, shape.Rot180)
	if box := f.BoundingBox(); box.W != 24 || box.H != 12 {
		t.Errorf("rot 180: bbox = %vx%v, want 24x12", box.W, box.H)
	}
}

func TestComputeCircle(t *testing.T) {
	f := Compute(shape.CircleOf(9), geo.Point{X: 1, Y: 2}, shape.Rot90)
	if !f.IsCircle {
		t.Fatal("want circle footprint")
	}
	if f.Circle.Center != (geo.Point{X: 10, Y: 11}) || f.Circle.Radius != 9 {
		t.Errorf("circle = %+v", f.Circle)
	}
	box := f.BoundingBox()
	if box.W != 18 || box.H != 18 {
		t.Errorf("bbox = %vx%v, want 18x18", box.W, box.H)
	}
}

func TestComputeLShape(t *testing.T) {
	// 30x20 desk with a 10x10 SE cut.
	f := Compute(shape.LShape(30, 20, 10, 10, shape.CornerSE), geo.Point{}, shape.Rot0)
	if len(f.Rects) != 2 {
		t.Fatalf("want two rects, got %d", len(f.Rects))
	}
	area := 0.0
	for _, r := range f.Rects {
		area += r.W * r.H
	}
	if math.Abs(area-500) > 1e-9 {
		t.Errorf("decomposed area = %v, want 500", area)
	}
	// The notch must not be covered.
	notch := geo.Point{X: 25, Y: 15}
	for _, r := range f.Rects {
		if notch.X > r.Min.X && notch.X < r.Max().X && notch.Y > r.Min.Y && notch.Y < r.Max().Y {
			t.Errorf("rect %+v covers the notch", r)
		}
	}
}

func TestComputeLShapeAllRotations(t *testing.T) {
	// The two rects stay axis-aligned and keep their total area at
	// every right-angle rotation.
	for _, rot := range []shape.Rotation{shape.Rot0, shape.Rot90, shape.Rot180, shape.Rot270} {
		f := Compute(shape.LShape(30, 20, 10, 10, shape.CornerNE), geo.Point{X: 5, Y: 5}, rot)
		if len(f.Rects) != 2 {
			t.Fatalf("rot %d: want two rects, got %d", rot, len(f.Rects))
		}
		area := 0.0
		for _, r := range f.Rects {
			if r.W <= 0 || r.H <= 0 {
				t.Errorf("rot %d: degenerate rect %+v", rot, r)
			}
			area += r.W * r.H
		}
		if math.Abs(area-500) > 1e-9 {
			t.Errorf("rot %d: area = %v, want 500", rot, area)
		}
		box := f.BoundingBox()
		wantW, wantH := 30.0, 20.0
		if rot == shape.Rot90 || rot == shape.Rot270 {
			wantW, wantH = 20, 30
		}
		if box.W != wantW || box.H != wantH {
			t.Errorf("rot %d: bbox = %vx%v, want %vx%v", rot, box.W, box.H, wantW, wantH)
		}
	}
}

func TestComputeLShapeDegenerateCut(t *testing.T) {
	f := Compute(shape.LShape(30, 20, 0, 10, shape.CornerSE), geo.Point{}, shape.Rot0)
	if len(f.Rects) != 1 {
		t.Errorf("zero cut should fall back to one rect, got %d", len(f.Rects))
	}
}

func TestOverlaps(t *testing.T) {
	rect := Compute(shape.Rect(24, 24), geo.Point{}, shape.Rot0)
	tests := []struct {
		name  string
		other Footprint
		want  bool
	}{
		{"overlapping rect", Compute(shape.Rect(24, 24), geo.Point{X: 12, Y: 12}, shape.Rot0), true},
		{"touching rect", Compute(shape.Rect(24, 24), geo.Point{X: 24, Y: 0}, shape.Rot0), true},
		{"distant rect", Compute(shape.Rect(24, 24), geo.Point{X: 100, Y: 100}, shape.Rot0), false},
		{"overlapping circle", Compute(shape.CircleOf(10), geo.Point{X: 10, Y: 10}, shape.Rot0), true},
		{"distant circle", Compute(shape.CircleOf(10), geo.Point{X: 100, Y: 100}, shape.Rot0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rect.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			if got := tt.other.Overlaps(rect); got != tt.want {
				t.Errorf("Overlaps (reversed) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverlapsCircleCircle(t *testing.T) {
	a := Compute(shape.CircleOf(5), geo.Point{}, shape.Rot0)
	b := Compute(shape.CircleOf(5), geo.Point{X: 10, Y: 0}, shape.Rot0)
	if !a.Overlaps(b) {
		t.Error("touching circles overlap")
	}
	c := Compute(shape.CircleOf(5), geo.Point{X: 11, Y: 0}, shape.Rot0)
	if a.Overlaps(c) {
		t.Error("separated circles do not overlap")
	}
}
