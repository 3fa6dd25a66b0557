package geo

import "math"

const (
	// Epsilon is the tolerance used when comparing coordinates.
	// Anything closer than a thousandth of an inch is treated as equal.
	Epsilon = 1e-3

	// Increment is the minimum measurement increment (1/8 inch).
	// Displayed lengths are rounded to it; collision math is not.
	Increment = 0.125
)

// Point is an immutable 2D coordinate in inches.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p minus q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Lerp linearly interpolates between a and b. t=0 yields a, t=1 yields b.
// t is not clamped.
func Lerp(a, b Point, t float64) Point {
	return Point{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// RoundToIncrement rounds v to the nearest measurement increment.
func RoundToIncrement(v float64) float64 {
	return math.Round(v/Increment) * Increment
}

// Rect is an axis-aligned rectangle described by its top-left corner
// (minimum x and y in screen orientation) and non-negative size.
type Rect struct {
	Min Point   `json:"min" bson:"min"`
	W   float64 `json:"w" bson:"w"`
	H   float64 `json:"h" bson:"h"`
}

// Max returns the bottom-right corner.
func (r Rect) Max() Point { return Point{r.Min.X + r.W, r.Min.Y + r.H} }

// Center returns the rectangle's center point.
func (r Rect) Center() Point { return Point{r.Min.X + r.W/2, r.Min.Y + r.H/2} }

// Corners returns the four corners in ring order starting at Min.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		r.Min,
		{r.Min.X + r.W, r.Min.Y},
		{r.Min.X + r.W, r.Min.Y + r.H},
		{r.Min.X, r.Min.Y + r.H},
	}
}

// Ring returns the rectangle outline as a vertex ring.
func (r Rect) Ring() Ring {
	c := r.Corners()
	return Ring{c[0], c[1], c[2], c[3]}
}

// Union returns the smallest rectangle covering both r and s.
func (r Rect) Union(s Rect) Rect {
	minX := math.Min(r.Min.X, s.Min.X)
	minY := math.Min(r.Min.Y, s.Min.Y)
	maxX := math.Max(r.Max().X, s.Max().X)
	maxY := math.Max(r.Max().Y, s.Max().Y)
	return Rect{Min: Point{minX, minY}, W: maxX - minX, H: maxY - minY}
}

// RectsOverlap reports whether two axis-aligned rectangles overlap.
// Edges are inclusive, so touching rectangles count as overlapping,
// consistent with [RingsIntersect] on the touching case.
func RectsOverlap(a, b Rect) bool {
	return a.Min.X <= b.Max().X && a.Max().X >= b.Min.X &&
		a.Min.Y <= b.Max().Y && a.Max().Y >= b.Min.Y
}

// Circle is a center plus radius.
type Circle struct {
	Center Point   `json:"center" bson:"center"`
	Radius float64 `json:"radius" bson:"radius"`
}

// Bounds returns the circle's axis-aligned bounding box.
func (c Circle) Bounds() Rect {
	return Rect{Min: Point{c.Center.X - c.Radius, c.Center.Y - c.Radius}, W: 2 * c.Radius, H: 2 * c.Radius}
}

// Contains reports whether p lies inside or on the circle.
// A zero-radius circle contains only its center.
func (c Circle) Contains(p Point) bool {
	return c.Center.Dist(p) <= c.Radius
}

// CirclesOverlap reports whether two circles overlap (touch counts).
func CirclesOverlap(a, b Circle) bool {
	return a.Center.Dist(b.Center) <= a.Radius+b.Radius
}

// CircleRectOverlap reports whether a circle overlaps an axis-aligned
// rectangle, via the clamped closest point on the rectangle.
func CircleRectOverlap(c Circle, r Rect) bool {
	closest := Point{
		X: clamp(c.Center.X, r.Min.X, r.Max().X),
		Y: clamp(c.Center.Y, r.Min.Y, r.Max().Y),
	}
	return c.Center.Dist(closest) <= c.Radius
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Ring is an ordered vertex list describing a simple closed polygon.
// The closing edge from the last vertex back to the first is implicit.
// Room and furniture outlines are orthogonal rings (axis-aligned edges),
// but the containment and intersection tests do not assume that.
type Ring []Point

// Contains reports whether p lies inside the ring, using the standard
// ray-casting algorithm with the half-open (yi > y) != (yj > y) edge
// comparison so vertices exactly on the ray are not double-counted.
//
// Points exactly on the boundary get a defined, stable answer: the
// half-open comparison counts the bottom/left edges as inside and the
// top/right edges as outside. Rings with fewer than three vertices
// contain nothing.
func (r Ring) Contains(p Point) bool {
	if len(r) < 3 {
		return false
	}
	inside := false
	j := len(r) - 1
	for i := 0; i < len(r); i++ {
		vi, vj := r[i], r[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) {
			xCross := (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y) + vi.X
			if p.X < xCross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// Area returns the absolute shoelace area of the ring.
// Used for displayed square footage only, never for validity decisions.
// Rings with fewer than three vertices have zero area.
func (r Ring) Area() float64 {
	if len(r) < 3 {
		return 0
	}
	sum := 0.0
	j := len(r) - 1
	for i := 0; i < len(r); i++ {
		sum += (r[j].X + r[i].X) * (r[j].Y - r[i].Y)
		j = i
	}
	return math.Abs(sum) / 2
}

// Bounds returns the ring's axis-aligned bounding box.
// An empty ring returns the zero rectangle.
func (r Ring) Bounds() Rect {
	if len(r) == 0 {
		return Rect{}
	}
	minX, minY := r[0].X, r[0].Y
	maxX, maxY := minX, minY
	for _, p := range r[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{Min: Point{minX, minY}, W: maxX - minX, H: maxY - minY}
}

// orientation returns 0 for collinear points, 1 for a clockwise turn
// and 2 for a counterclockwise turn (in screen coordinates).
//
// The cross product scales with the product of the two edge lengths,
// so the collinearity cutoff scales with it; a fixed cutoff would
// swallow sub-inch segments whole. The floor keeps exact-zero crosses
// of degenerate input classified as collinear.
func orientation(p, q, r Point) int {
	val := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	tol := Epsilon * math.Max(Epsilon, p.Dist(q)*q.Dist(r))
	switch {
	case math.Abs(val) < tol:
		return 0
	case val > 0:
		return 1
	default:
		return 2
	}
}

// onSegment reports whether q lies on segment pr, assuming the three
// points are collinear.
func onSegment(p, q, r Point) bool {
	return q.X <= math.Max(p.X, r.X)+Epsilon && q.X >= math.Min(p.X, r.X)-Epsilon &&
		q.Y <= math.Max(p.Y, r.Y)+Epsilon && q.Y >= math.Min(p.Y, r.Y)-Epsilon
}

// SegmentsIntersect reports whether segments p1q1 and p2q2 intersect.
// Touching endpoints and collinear overlap both count as intersecting.
func SegmentsIntersect(p1, q1, p2, q2 Point) bool {
	o1 := orientation(p1, q1, p2)
	o2 := orientation(p1, q1, q2)
	o3 := orientation(p2, q2, p1)
	o4 := orientation(p2, q2, q1)

	if o1 != o2 && o3 != o4 {
		return true
	}

	// Collinear special cases.
	if o1 == 0 && onSegment(p1, p2, q1) {
		return true
	}
	if o2 == 0 && onSegment(p1, q2, q1) {
		return true
	}
	if o3 == 0 && onSegment(p2, p1, q2) {
		return true
	}
	if o4 == 0 && onSegment(p2, q1, q2) {
		return true
	}
	return false
}

// RingsIntersect reports whether two polygons overlap. Three checks are
// required: a vertex of a inside b, a vertex of b inside a, or any edge
// pair crossing. The first two catch full containment in either
// direction; the edge check catches crossings where neither polygon
// holds a vertex of the other. The test is symmetric.
func RingsIntersect(a, b Ring) bool {
	if len(a) < 3 || len(b) < 3 {
		return false
	}
	for _, p := range a {
		if b.Contains(p) {
			return true
		}
	}
	for _, p := range b {
		if a.Contains(p) {
			return true
		}
	}
	for i := 0; i < len(a); i++ {
		a1, a2 := a[i], a[(i+1)%len(a)]
		for j := 0; j < len(b); j++ {
			if SegmentsIntersect(a1, a2, b[j], b[(j+1)%len(b)]) {
				return true
			}
		}
	}
	return false
}

// ProjectOntoSegment projects p onto the infinite line through a and b
// and returns the projection parameter clamped to [0,1] together with
// the clamped point. A degenerate segment (a == b) returns t=0 and a.
func ProjectOntoSegment(p, a, b Point) (t float64, closest Point) {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return 0, a
	}
	t = ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = clamp(t, 0, 1)
	return t, Point{a.X + t*dx, a.Y + t*dy}
}

// DistanceToSegment returns the distance from p to segment ab.
// A degenerate segment returns the distance to the single point.
func DistanceToSegment(p, a, b Point) float64 {
	_, closest := ProjectOntoSegment(p, a, b)
	return p.Dist(closest)
}
