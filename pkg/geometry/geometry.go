// Package geometry provides the 2D primitives the hull engine is built on:
// lines, rays, segments and the small set of predicates over them.
// Points are sdfx v2.Vec values.
package geometry

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

// Line is an infinite line through Point along Direction. Direction need
// not be normalized.
type Line struct {
	Point     v2.Vec `json:"point"`
	Direction v2.Vec `json:"direction"`
}

// LineThrough returns the line passing through a then b.
func LineThrough(a, b v2.Vec) Line {
	return Line{Point: a, Direction: b.Sub(a)}
}

// IsValid reports whether the line has a finite, non-zero direction and a
// finite point.
func (l Line) IsValid() bool {
	return IsFinite(l.Point) && IsFinite(l.Direction) && l.Direction.Length2() > 0
}

// Ray is a half-line starting at Origin along Direction.
type Ray struct {
	Origin    v2.Vec `json:"origin"`
	Direction v2.Vec `json:"direction"`
}

// Line returns the supporting line of the ray.
func (r Ray) Line() Line {
	return Line{Point: r.Origin, Direction: r.Direction}
}

// IsValid reports whether the ray has a finite, non-zero direction and a
// finite origin.
func (r Ray) IsValid() bool {
	return r.Line().IsValid()
}

// Segment is the closed segment from A to B.
type Segment struct {
	A v2.Vec `json:"a"`
	B v2.Vec `json:"b"`
}

// Length returns |B - A|.
func (s Segment) Length() float64 { return s.B.Sub(s.A).Length() }

// Direction returns B - A.
func (s Segment) Direction() v2.Vec { return s.B.Sub(s.A) }

// Midpoint returns the point halfway between A and B.
func (s Segment) Midpoint() v2.Vec { return Interpolate(s.A, s.B, 0.5) }

// Reverse returns the segment from B to A.
func (s Segment) Reverse() Segment { return Segment{A: s.B, B: s.A} }

// Line returns the supporting line of the segment.
func (s Segment) Line() Line { return LineThrough(s.A, s.B) }

// ---------------------------------------------------------------------------
// Point predicates
// ---------------------------------------------------------------------------

// Cross returns the z component of a x b.
func Cross(a, b v2.Vec) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Cross3 returns the cross product of (a - o) and (b - o). It is positive
// when o, a, b make a left (counter-clockwise) turn.
func Cross3(o, a, b v2.Vec) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// Perpendicular returns v rotated a quarter turn counter-clockwise.
func Perpendicular(v v2.Vec) v2.Vec {
	return v2.Vec{X: -v.Y, Y: v.X}
}

// IsFinite reports whether both components are neither NaN nor infinite.
func IsFinite(p v2.Vec) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// ContainsNaN reports whether either component is NaN.
func ContainsNaN(p v2.Vec) bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y)
}

// EpsilonEquals compares component-wise within epsilon.
func EpsilonEquals(a, b v2.Vec, epsilon float64) bool {
	return math.Abs(a.X-b.X) <= epsilon && math.Abs(a.Y-b.Y) <= epsilon
}

// Distance returns |a - b|.
func Distance(a, b v2.Vec) float64 { return a.Sub(b).Length() }

// DistanceSquared returns |a - b|².
func DistanceSquared(a, b v2.Vec) float64 { return a.Sub(b).Length2() }

// Interpolate returns a + t(b - a).
func Interpolate(a, b v2.Vec, t float64) v2.Vec {
	return a.Add(b.Sub(a).MulScalar(t))
}

// Normalize returns v scaled to unit length, or the zero vector when v has
// no length.
func Normalize(v v2.Vec) v2.Vec {
	l := v.Length()
	if l == 0 {
		return v2.Vec{}
	}
	return v.MulScalar(1 / l)
}

// TriangleArea returns the unsigned area of triangle abc.
func TriangleArea(a, b, c v2.Vec) float64 {
	return 0.5 * math.Abs(Cross3(a, b, c))
}

// ---------------------------------------------------------------------------
// Lines and segments
// ---------------------------------------------------------------------------

// PercentageAlongSegment returns the unclamped parameter t such that
// a + t(b-a) is the projection of p onto the line ab. A degenerate segment
// yields 0.
func PercentageAlongSegment(p, a, b v2.Vec) float64 {
	d := b.Sub(a)
	l2 := d.Length2()
	if l2 == 0 {
		return 0
	}
	return p.Sub(a).Dot(d) / l2
}

// ProjectOnSegment returns the point of segment ab closest to p.
func ProjectOnSegment(p, a, b v2.Vec) v2.Vec {
	t := PercentageAlongSegment(p, a, b)
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return Interpolate(a, b, t)
}

// DistanceToSegment returns the distance from p to segment ab.
func DistanceToSegment(p, a, b v2.Vec) float64 {
	return Distance(p, ProjectOnSegment(p, a, b))
}

// ProjectOnLine returns the orthogonal projection of p onto l.
func ProjectOnLine(p v2.Vec, l Line) v2.Vec {
	d2 := l.Direction.Length2()
	if d2 == 0 {
		return l.Point
	}
	t := p.Sub(l.Point).Dot(l.Direction) / d2
	return l.Point.Add(l.Direction.MulScalar(t))
}

// DistanceToLine returns the perpendicular distance from p to l. A line
// without direction degrades to the distance to its point.
func DistanceToLine(p v2.Vec, l Line) float64 {
	dl := l.Direction.Length()
	if dl == 0 {
		return Distance(p, l.Point)
	}
	return math.Abs(Cross(l.Direction, p.Sub(l.Point))) / dl
}

// DistanceToRay returns the distance from p to the ray r.
func DistanceToRay(p v2.Vec, r Ray) float64 {
	if p.Sub(r.Origin).Dot(r.Direction) <= 0 {
		return Distance(p, r.Origin)
	}
	return DistanceToLine(p, r.Line())
}

// SignedDistanceToLine returns the distance from p to the line through a
// and b, positive when p lies to the right of a→b. A degenerate line
// yields the distance to a.
func SignedDistanceToLine(p, a, b v2.Vec) float64 {
	d := b.Sub(a)
	l := d.Length()
	if l == 0 {
		return Distance(p, a)
	}
	return -Cross(d, p.Sub(a)) / l
}

// IsOnLeftSide reports whether p lies strictly left of a→b.
func IsOnLeftSide(p, a, b v2.Vec) bool {
	return Cross3(a, b, p) > 0
}

// IsOnRightSide reports whether p lies strictly right of a→b.
func IsOnRightSide(p, a, b v2.Vec) bool {
	return Cross3(a, b, p) < 0
}

// IsInFrontOfRay reports whether p lies ahead of the ray origin, allowing
// tolerance behind it.
func IsInFrontOfRay(p v2.Vec, r Ray, tolerance float64) bool {
	dl := r.Direction.Length()
	if dl == 0 {
		return false
	}
	return p.Sub(r.Origin).Dot(r.Direction)/dl >= -tolerance
}

// LineSegmentParameter returns t such that a + t(b-a) lies on l. ok is
// false when the segment is parallel to the line, degenerate, or any input
// is NaN.
func LineSegmentParameter(l Line, a, b v2.Vec) (t float64, ok bool) {
	d := b.Sub(a)
	den := Cross(d, l.Direction)
	if den == 0 || math.IsNaN(den) {
		return 0, false
	}
	t = Cross(l.Point.Sub(a), l.Direction) / den
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0, false
	}
	return t, true
}

// AreParallel reports whether directions u and v are parallel within an
// angular tolerance expressed as |sin θ|.
func AreParallel(u, v v2.Vec, tolerance float64) bool {
	lu, lv := u.Length(), v.Length()
	if lu == 0 || lv == 0 {
		return false
	}
	return math.Abs(Cross(u, v))/(lu*lv) <= tolerance
}

// InteriorBisector returns a unit vector bisecting the angle prev-v-next,
// pointing between the two neighbors. When the neighbors are opposite the
// perpendicular to next-v is used.
func InteriorBisector(prev, v, next v2.Vec) v2.Vec {
	b := Normalize(prev.Sub(v)).Add(Normalize(next.Sub(v)))
	if b.Length2() < 1e-24 {
		return Normalize(Perpendicular(next.Sub(v)))
	}
	return Normalize(b)
}
