package interop

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/quasilyte/gmath"

	"github.com/chazu/planar/pkg/polygon"
)

// ToGmath returns the hull vertices as gmath vectors in CCW order.
func ToGmath(p *polygon.ConvexPolygon) []gmath.Vec {
	vs := p.Vertices()
	out := make([]gmath.Vec, len(vs))
	for i, v := range vs {
		out[i] = gmath.Vec{X: v.X, Y: v.Y}
	}
	return out
}

// FromGmath returns the hull of pts.
func FromGmath(pts []gmath.Vec) *polygon.ConvexPolygon {
	vs := make([]v2.Vec, len(pts))
	for i, q := range pts {
		vs[i] = v2.Vec{X: q.X, Y: q.Y}
	}
	return polygon.FromPoints(vs...)
}

// Rect returns the hull's bounding box as a gmath.Rect.
func Rect(p *polygon.ConvexPolygon) gmath.Rect {
	box := p.BoundingBox()
	return gmath.Rect{
		Min: gmath.Vec{X: box.Min.X, Y: box.Min.Y},
		Max: gmath.Vec{X: box.Max.X, Y: box.Max.Y},
	}
}

// Lerp blends two hulls vertex by vertex. Both must have the same number
// of vertices; the result is re-hulled, so t outside [0, 1] still yields a
// convex polygon.
func Lerp(a, b *polygon.ConvexPolygon, t float64) *polygon.ConvexPolygon {
	va, vb := ToGmath(a), ToGmath(b)
	if len(va) != len(vb) {
		panic("interop: Lerp needs hulls with equal vertex counts")
	}
	out := make([]gmath.Vec, len(va))
	for i := range va {
		out[i] = gmath.Vec{
			X: gmath.Lerp(va[i].X, vb[i].X, t),
			Y: gmath.Lerp(va[i].Y, vb[i].Y, t),
		}
	}
	return FromGmath(out)
}
