package polygon

import (
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/planar/pkg/geometry"
)

// IntersectionEpsilon is the tolerance used when deciding that a query
// touches a hull vertex or edge, and when merging coincident results.
const IntersectionEpsilon = 1e-10

// hits collects at most two distinct boundary points.
type hits struct {
	pts [2]v2.Vec
	n   int
}

func (h *hits) add(q v2.Vec) {
	if h.n == 2 {
		return
	}
	for i := 0; i < h.n; i++ {
		if geometry.EpsilonEquals(h.pts[i], q, IntersectionEpsilon) {
			return
		}
	}
	h.pts[h.n] = q
	h.n++
}

func (h *hits) full() bool { return h.n == 2 }

// pack writes the collected points into the optional outputs.
func (h *hits) pack(first, second *v2.Vec) int {
	if h.n > 0 && first != nil {
		*first = h.pts[0]
	}
	if h.n > 1 && second != nil {
		*second = h.pts[1]
	}
	return h.n
}

func (h *hits) slice() []v2.Vec {
	if h.n == 0 {
		return nil
	}
	out := make([]v2.Vec, h.n)
	copy(out, h.pts[:h.n])
	return out
}

// edgeCount returns how many distinct edges the hull has: a segment hull
// has one, not two.
func edgeCount(n int) int {
	if n == 2 {
		return 1
	}
	return n
}

// ---------------------------------------------------------------------------
// Line
// ---------------------------------------------------------------------------

func (p *ConvexPolygon) intersectLine(line geometry.Line, h *hits) {
	p.ensure()
	vs := p.vertices
	if len(vs) == 0 || !line.IsValid() {
		return
	}
	if len(vs) == 1 {
		if geometry.DistanceToLine(vs[0], line) <= IntersectionEpsilon {
			h.add(vs[0])
		}
		return
	}
	for i := 0; i < edgeCount(len(vs)) && !h.full(); i++ {
		a, b := vs[i], vs[next(i, len(vs))]
		if geometry.DistanceToLine(a, line) <= IntersectionEpsilon &&
			geometry.DistanceToLine(b, line) <= IntersectionEpsilon {
			h.add(a)
			h.add(b)
			continue
		}
		t, ok := geometry.LineSegmentParameter(line, a, b)
		if !ok || !(t >= -IntersectionEpsilon && t <= 1+IntersectionEpsilon) {
			continue
		}
		h.add(geometry.Interpolate(a, b, clamp01(t)))
	}
}

// IntersectLine writes up to two boundary points where line meets the
// hull into first and second, either of which may be nil, and returns how
// many were found. An edge lying on the line contributes both endpoints.
// Invalid lines (zero or NaN direction) never intersect.
func (p *ConvexPolygon) IntersectLine(line geometry.Line, first, second *v2.Vec) int {
	var h hits
	p.intersectLine(line, &h)
	return h.pack(first, second)
}

// IntersectionWithLine returns the boundary points where line meets the
// hull, or nil.
func (p *ConvexPolygon) IntersectionWithLine(line geometry.Line) []v2.Vec {
	var h hits
	p.intersectLine(line, &h)
	return h.slice()
}

// ---------------------------------------------------------------------------
// Ray
// ---------------------------------------------------------------------------

func (p *ConvexPolygon) intersectRay(ray geometry.Ray, h *hits) {
	var onLine hits
	p.intersectLine(ray.Line(), &onLine)
	for i := 0; i < onLine.n; i++ {
		if geometry.IsInFrontOfRay(onLine.pts[i], ray, IntersectionEpsilon) {
			h.add(onLine.pts[i])
		}
	}
}

// IntersectRay is IntersectLine restricted to points at or ahead of the
// ray origin.
func (p *ConvexPolygon) IntersectRay(ray geometry.Ray, first, second *v2.Vec) int {
	var h hits
	p.intersectRay(ray, &h)
	return h.pack(first, second)
}

// IntersectionWithRay returns the boundary points the ray meets, or nil.
func (p *ConvexPolygon) IntersectionWithRay(ray geometry.Ray) []v2.Vec {
	var h hits
	p.intersectRay(ray, &h)
	return h.slice()
}

// ---------------------------------------------------------------------------
// Segment
// ---------------------------------------------------------------------------

func (p *ConvexPolygon) intersectSegment(seg geometry.Segment, h *hits) {
	p.ensure()
	vs := p.vertices
	if len(vs) == 0 || geometry.ContainsNaN(seg.A) || geometry.ContainsNaN(seg.B) {
		return
	}
	onSegment := func(q v2.Vec) bool {
		return geometry.DistanceToSegment(q, seg.A, seg.B) <= IntersectionEpsilon
	}
	if len(vs) == 1 {
		if onSegment(vs[0]) {
			h.add(vs[0])
		}
		return
	}
	if len(vs) == 2 {
		for _, v := range vs {
			if onSegment(v) {
				h.add(v)
			}
		}
	}

	line := seg.Line()
	for i := 0; i < edgeCount(len(vs)) && !h.full(); i++ {
		a, b := vs[i], vs[next(i, len(vs))]
		if geometry.DistanceToSegment(seg.A, a, b) <= IntersectionEpsilon {
			h.add(seg.A)
		}
		if geometry.DistanceToSegment(seg.B, a, b) <= IntersectionEpsilon {
			h.add(seg.B)
		}
		if h.full() {
			break
		}
		t, ok := geometry.LineSegmentParameter(line, a, b)
		if !ok || !(t >= -IntersectionEpsilon && t <= 1+IntersectionEpsilon) {
			continue
		}
		c := geometry.Interpolate(a, b, clamp01(t))
		if !onSegment(c) {
			continue
		}
		h.add(c)
	}
}

// IntersectSegment writes up to two points where the closed segment meets
// the hull boundary and returns how many were found. A segment wholly
// inside a polygon does not touch its boundary and yields 0.
func (p *ConvexPolygon) IntersectSegment(seg geometry.Segment, first, second *v2.Vec) int {
	var h hits
	p.intersectSegment(seg, &h)
	return h.pack(first, second)
}

// IntersectionWithSegment returns the boundary points the segment meets,
// or nil.
func (p *ConvexPolygon) IntersectionWithSegment(seg geometry.Segment) []v2.Vec {
	var h hits
	p.intersectSegment(seg, &h)
	return h.slice()
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
