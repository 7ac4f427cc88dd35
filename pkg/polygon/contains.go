package polygon

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/planar/pkg/geometry"
)

// PerimeterEpsilon is the distance within which a point counts as lying on
// the boundary.
const PerimeterEpsilon = 1e-10

// IsPointInside reports whether q lies inside the hull grown by epsilon.
// A negative epsilon shrinks it. For a point hull the test is a disc of
// radius epsilon; for a segment hull it is a stadium. An empty hull
// contains nothing.
func (p *ConvexPolygon) IsPointInside(q v2.Vec, epsilon float64) bool {
	p.ensure()
	vs := p.vertices
	switch len(vs) {
	case 0:
		return false
	case 1:
		return geometry.Distance(q, vs[0]) <= epsilon
	case 2:
		a, b := vs[0], vs[1]
		if !(geometry.DistanceToLine(q, geometry.LineThrough(a, b)) <= epsilon) {
			return false
		}
		margin := epsilon / geometry.Distance(a, b)
		t := geometry.PercentageAlongSegment(q, a, b)
		return t >= -margin && t <= 1+margin
	}
	for i := range vs {
		if !(geometry.SignedDistanceToLine(q, vs[i], vs[next(i, len(vs))]) <= epsilon) {
			return false
		}
	}
	return true
}

// IsPointInsideStrict is IsPointInside with zero epsilon; boundary points
// count as inside.
func (p *ConvexPolygon) IsPointInsideStrict(q v2.Vec) bool {
	return p.IsPointInside(q, 0)
}

// SignedDistance returns the distance from q to the hull boundary,
// negative inside. Outside a polygon it is the Euclidean distance to the
// nearest edge; inside it is minus the depth below the nearest edge line.
// Point and segment hulls have no interior. NaN for an empty hull or a NaN
// query.
func (p *ConvexPolygon) SignedDistance(q v2.Vec) float64 {
	p.ensure()
	vs := p.vertices
	if len(vs) == 0 || geometry.ContainsNaN(q) {
		return math.NaN()
	}
	switch len(vs) {
	case 1:
		return geometry.Distance(q, vs[0])
	case 2:
		return geometry.DistanceToSegment(q, vs[0], vs[1])
	}

	outside := false
	maxSigned := math.Inf(-1)
	minEdge := math.Inf(1)
	for i := range vs {
		a, b := vs[i], vs[next(i, len(vs))]
		d := geometry.SignedDistanceToLine(q, a, b)
		if d > 0 {
			outside = true
		}
		maxSigned = math.Max(maxSigned, d)
		minEdge = math.Min(minEdge, geometry.DistanceToSegment(q, a, b))
	}
	if outside {
		return minEdge
	}
	return maxSigned
}

// Distance returns the distance from q to the hull, 0 inside.
func (p *ConvexPolygon) Distance(q v2.Vec) float64 {
	d := p.SignedDistance(q)
	if d < 0 {
		return 0
	}
	return d
}

// OrthogonalProjectionInto writes into dst the point of the hull nearest
// to q and reports whether it did. Points already inside a polygon, empty
// hulls and NaN queries produce no projection. A point hull projects
// everything onto its vertex and a segment hull clamps onto the segment.
func (p *ConvexPolygon) OrthogonalProjectionInto(q v2.Vec, dst *v2.Vec) bool {
	p.ensure()
	vs := p.vertices
	if len(vs) == 0 || geometry.ContainsNaN(q) {
		return false
	}
	switch len(vs) {
	case 1:
		*dst = vs[0]
		return true
	case 2:
		*dst = geometry.ProjectOnSegment(q, vs[0], vs[1])
		return true
	}
	if p.IsPointInside(q, 0) {
		return false
	}
	best := math.Inf(1)
	for i := range vs {
		c := geometry.ProjectOnSegment(q, vs[i], vs[next(i, len(vs))])
		if d := geometry.DistanceSquared(q, c); d < best {
			best = d
			*dst = c
		}
	}
	return true
}

// OrthogonalProjection returns the point of the hull nearest to q. ok is
// false when q is inside a polygon, the hull is empty, or q is NaN.
func (p *ConvexPolygon) OrthogonalProjection(q v2.Vec) (v2.Vec, bool) {
	var out v2.Vec
	ok := p.OrthogonalProjectionInto(q, &out)
	return out, ok
}

// PointIsOnPerimeter reports whether q lies on the hull boundary within
// PerimeterEpsilon.
func (p *ConvexPolygon) PointIsOnPerimeter(q v2.Vec) bool {
	return math.Abs(p.SignedDistance(q)) <= PerimeterEpsilon
}
