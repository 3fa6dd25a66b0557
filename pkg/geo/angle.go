package geo

import "math"

// NormalizeAngle maps an angle in radians into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Angle returns the angle of the vector from a to b, normalized to [0, 2π).
func Angle(a, b Point) float64 {
	return NormalizeAngle(math.Atan2(b.Y-a.Y, b.X-a.X))
}

// WithinArc reports whether theta lies on the minor arc between the two
// angles, handling the wraparound where the arc spans the 0/2π boundary.
// Door swings are quarter arcs, so the minor arc is always the right one.
func WithinArc(theta, a, b float64) bool {
	theta = NormalizeAngle(theta)
	a = NormalizeAngle(a)
	b = NormalizeAngle(b)

	span := NormalizeAngle(b - a)
	if span > math.Pi {
		// The arc from a to b going counterclockwise is the major one;
		// walk it the other way.
		a, b = b, a
		span = NormalizeAngle(b - a)
	}
	return NormalizeAngle(theta-a) <= span+Epsilon
}
