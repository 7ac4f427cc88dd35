package polygon

import (
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/planar/pkg/geometry"
)

// edgeTieEpsilon is the distance difference under which two edges count
// as equally close to a query.
const edgeTieEpsilon = 1e-12

// ---------------------------------------------------------------------------
// Closest vertex
// ---------------------------------------------------------------------------

// ClosestVertexIndex returns the index of the hull vertex nearest to q,
// the lowest index on ties, or -1 for an empty hull or NaN query.
func (p *ConvexPolygon) ClosestVertexIndex(q v2.Vec) int {
	p.ensure()
	if geometry.ContainsNaN(q) {
		return -1
	}
	best, bestD := -1, math.Inf(1)
	for i, v := range p.vertices {
		if d := geometry.DistanceSquared(q, v); d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

// ClosestVertexInto writes the vertex nearest to q into dst and reports
// whether one exists.
func (p *ConvexPolygon) ClosestVertexInto(q v2.Vec, dst *v2.Vec) bool {
	i := p.ClosestVertexIndex(q)
	if i < 0 {
		return false
	}
	*dst = p.vertices[i]
	return true
}

// ClosestVertex returns the vertex nearest to q.
func (p *ConvexPolygon) ClosestVertex(q v2.Vec) (v2.Vec, bool) {
	var out v2.Vec
	ok := p.ClosestVertexInto(q, &out)
	return out, ok
}

// ClosestVertexIndexToLine returns the index of the vertex nearest to
// line, or -1 for an empty hull or invalid line.
func (p *ConvexPolygon) ClosestVertexIndexToLine(line geometry.Line) int {
	p.ensure()
	if !line.IsValid() {
		return -1
	}
	best, bestD := -1, math.Inf(1)
	for i, v := range p.vertices {
		if d := geometry.DistanceToLine(v, line); d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

// ---------------------------------------------------------------------------
// Closest edge
// ---------------------------------------------------------------------------

// ClosestEdgeIndex returns the index i of the edge from vertex i to its
// successor nearest to q, or -1 when the hull has fewer than two vertices
// or q is NaN.
//
// For a query outside the hull only edges facing it are considered. When
// the two nearest edges share a vertex and are equally distant, the side
// of the interior bisector at that vertex on which q falls picks the edge;
// a query exactly on the bisector picks the edge leaving the vertex.
func (p *ConvexPolygon) ClosestEdgeIndex(q v2.Vec) int {
	p.ensure()
	vs := p.vertices
	n := len(vs)
	if n <= 1 || geometry.ContainsNaN(q) {
		return -1
	}
	if n == 2 {
		return 0
	}

	dist := make([]float64, n)
	facing := make([]bool, n)
	outside := false
	for i := range vs {
		a, b := vs[i], vs[next(i, n)]
		dist[i] = geometry.DistanceToSegment(q, a, b)
		facing[i] = geometry.IsOnRightSide(q, a, b)
		outside = outside || facing[i]
	}

	best := -1
	for i := range vs {
		if facing[i] != outside {
			continue
		}
		if best < 0 || dist[i] < dist[best] {
			best = i
		}
	}

	prev, nxt := previous(best, n), next(best, n)
	switch {
	case facing[nxt] == outside && math.Abs(dist[nxt]-dist[best]) <= edgeTieEpsilon:
		return p.bisectorEdge(nxt, q)
	case facing[prev] == outside && math.Abs(dist[prev]-dist[best]) <= edgeTieEpsilon:
		return p.bisectorEdge(best, q)
	}
	return best
}

// bisectorEdge picks between the two edges meeting at vertex k: the one
// ending at k or the one leaving it.
func (p *ConvexPolygon) bisectorEdge(k int, q v2.Vec) int {
	vs := p.vertices
	n := len(vs)
	v, prev, nxt := vs[k], vs[previous(k, n)], vs[next(k, n)]
	bis := geometry.InteriorBisector(prev, v, nxt)
	side := geometry.Cross(bis, q.Sub(v))
	if side == 0 {
		return k
	}
	nextSide := geometry.Cross(bis, nxt.Sub(v))
	if (side > 0) == (nextSide > 0) {
		return k
	}
	return previous(k, n)
}

// ClosestEdgeInto writes the edge nearest to q into dst and reports
// whether one exists.
func (p *ConvexPolygon) ClosestEdgeInto(q v2.Vec, dst *geometry.Segment) bool {
	i := p.ClosestEdgeIndex(q)
	if i < 0 {
		return false
	}
	*dst = geometry.Segment{A: p.vertices[i], B: p.vertices[next(i, len(p.vertices))]}
	return true
}

// ClosestEdge returns the edge nearest to q.
func (p *ConvexPolygon) ClosestEdge(q v2.Vec) (geometry.Segment, bool) {
	var out geometry.Segment
	ok := p.ClosestEdgeInto(q, &out)
	return out, ok
}

// ---------------------------------------------------------------------------
// Rays
// ---------------------------------------------------------------------------

// ClosestPointWithRay returns the hull point nearest to a ray that misses
// the hull. ok is false when the hull is empty, the ray is invalid, or the
// ray meets the hull. A point hull always returns its vertex.
func (p *ConvexPolygon) ClosestPointWithRay(ray geometry.Ray) (v2.Vec, bool) {
	p.ensure()
	vs := p.vertices
	switch {
	case len(vs) == 0:
		return v2.Vec{}, false
	case len(vs) == 1:
		return vs[0], true
	case !ray.IsValid():
		return v2.Vec{}, false
	}
	if p.IntersectRay(ray, nil, nil) > 0 {
		return v2.Vec{}, false
	}

	var best v2.Vec
	bestD := math.Inf(1)
	for i := 0; i < edgeCount(len(vs)); i++ {
		c := geometry.ProjectOnSegment(ray.Origin, vs[i], vs[next(i, len(vs))])
		if d := geometry.Distance(ray.Origin, c); d < bestD {
			best, bestD = c, d
		}
	}
	for _, v := range vs {
		if d := geometry.DistanceToRay(v, ray); d < bestD-IntersectionEpsilon {
			best, bestD = v, d
		}
	}
	return best, true
}

// ---------------------------------------------------------------------------
// Visibility
// ---------------------------------------------------------------------------

// CanObserverSeeEdge reports whether observer lies strictly outside the
// supporting line of the edge leaving vertex edgeIndex. Hulls with fewer
// than two vertices have no edges and always report false. It panics when
// edgeIndex is out of range.
func (p *ConvexPolygon) CanObserverSeeEdge(edgeIndex int, observer v2.Vec) bool {
	p.ensure()
	n := len(p.vertices)
	if n <= 1 {
		return false
	}
	if edgeIndex < 0 || edgeIndex >= n {
		panic(fmt.Sprintf("polygon: edge index %d out of range [0,%d)", edgeIndex, n))
	}
	return geometry.IsOnRightSide(observer, p.vertices[edgeIndex], p.vertices[next(edgeIndex, n)])
}

// LineOfSightIndices returns the vertex indices bounding the part of the
// boundary visible from observer, in CCW order. ok is false when nothing
// is visible: an empty hull, or an observer inside or on the hull.
func (p *ConvexPolygon) LineOfSightIndices(observer v2.Vec) (start, end int, ok bool) {
	p.ensure()
	n := len(p.vertices)
	switch {
	case n == 0 || geometry.ContainsNaN(observer):
		return -1, -1, false
	case n == 1:
		if geometry.EpsilonEquals(observer, p.vertices[0], DuplicateEpsilon) {
			return -1, -1, false
		}
		return 0, 0, true
	}

	first := -1
	for i := 0; i < n; i++ {
		if p.CanObserverSeeEdge(i, observer) && !p.CanObserverSeeEdge(previous(i, n), observer) {
			first = i
			break
		}
	}
	if first < 0 {
		return -1, -1, false
	}
	last := first
	for steps := 1; steps < n && p.CanObserverSeeEdge(next(last, n), observer); steps++ {
		last = next(last, n)
	}
	return first, next(last, n), true
}

// LineOfSightVertices returns the vertices at LineOfSightIndices.
func (p *ConvexPolygon) LineOfSightVertices(observer v2.Vec) (start, end v2.Vec, ok bool) {
	i, j, ok := p.LineOfSightIndices(observer)
	if !ok {
		return v2.Vec{}, v2.Vec{}, false
	}
	return p.vertices[i], p.vertices[j], true
}
