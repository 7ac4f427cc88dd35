package polygon

import (
	"sort"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/planar/pkg/geometry"
)

// DuplicateEpsilon is the distance under which two points are merged into
// one hull vertex.
const DuplicateEpsilon = 1e-12

// collinearEpsilon bounds |sin θ| under which three points count as
// collinear during the hull sweep. The bound is relative, so tiny hulls
// keep their corners.
const collinearEpsilon = 1e-12

// Update recomputes the CCW hull from the stored points using a monotone
// chain sweep. Duplicate, interior and collinear points are dropped.
// Running it on an up-to-date polygon leaves the hull unchanged.
//
// Points with NaN coordinates cannot be ordered, so a store containing
// any is left as is and only flagged up to date.
func (p *ConvexPolygon) Update() {
	input := len(p.vertices)
	if p.storeContainsNaN() {
		Logger().Warn("hull input contains NaN coordinates", "input", input)
	} else {
		p.vertices = p.sweep(p.vertices)
	}
	p.stale = false
	p.cache.valid = false
	Logger().Debug("hull updated", "input", input, "vertices", len(p.vertices))
}

func (p *ConvexPolygon) storeContainsNaN() bool {
	for _, v := range p.vertices {
		if geometry.ContainsNaN(v) {
			return true
		}
	}
	return false
}

// sweep writes the hull of pts back into pts and returns the shortened
// slice. pts is reordered.
func (p *ConvexPolygon) sweep(pts []v2.Vec) []v2.Vec {
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	uniq := pts[:0]
	for _, q := range pts {
		if !hasNearDuplicate(uniq, q) {
			uniq = append(uniq, q)
		}
	}
	n := len(uniq)
	if n <= 2 {
		return uniq
	}

	if cap(p.scratch) < 2*n {
		p.scratch = make([]v2.Vec, 0, 2*n)
	}
	hull := p.scratch[:0]
	for _, q := range uniq {
		for len(hull) >= 2 && !isLeftTurn(hull[len(hull)-2], hull[len(hull)-1], q) {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, q)
	}
	lower := len(hull) + 1
	for i := n - 2; i >= 0; i-- {
		q := uniq[i]
		for len(hull) >= lower && !isLeftTurn(hull[len(hull)-2], hull[len(hull)-1], q) {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, q)
	}
	hull = hull[:len(hull)-1]
	hull = dropCyclicDuplicates(hull)

	out := pts[:len(hull)]
	copy(out, hull)
	p.scratch = hull[:0]
	return out
}

// isLeftTurn reports whether o, a, b turn strictly counter-clockwise,
// with the turn measured relative to the lengths involved.
func isLeftTurn(o, a, b v2.Vec) bool {
	c := geometry.Cross3(o, a, b)
	return c > collinearEpsilon*a.Sub(o).Length()*b.Sub(o).Length()
}

// hasNearDuplicate reports whether q lies within DuplicateEpsilon of a
// point already in accepted. accepted is sorted by x, so only its tail
// within DuplicateEpsilon of q.X needs checking.
func hasNearDuplicate(accepted []v2.Vec, q v2.Vec) bool {
	for j := len(accepted) - 1; j >= 0 && accepted[j].X >= q.X-DuplicateEpsilon; j-- {
		if isDuplicate(accepted[j], q) {
			return true
		}
	}
	return false
}

func isDuplicate(a, b v2.Vec) bool {
	return geometry.DistanceSquared(a, b) <= DuplicateEpsilon*DuplicateEpsilon
}

// dropCyclicDuplicates removes consecutive near-duplicates that are not
// adjacent in sort order, including the wrap from last to first.
func dropCyclicDuplicates(hull []v2.Vec) []v2.Vec {
	out := hull[:0]
	for _, q := range hull {
		if len(out) > 0 && isDuplicate(out[len(out)-1], q) {
			continue
		}
		out = append(out, q)
	}
	for len(out) > 1 && isDuplicate(out[len(out)-1], out[0]) {
		out = out[:len(out)-1]
	}
	return out
}
